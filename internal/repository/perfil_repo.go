package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/LilDeus06/trazabilidad-sub000/internal/model"
)

type PerfilRepository interface {
	Create(ctx context.Context, p *model.Perfil) error
	FindByEmail(ctx context.Context, email string) (*model.Perfil, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Perfil, error)
	List(ctx context.Context) ([]model.Perfil, error)
	ListAll(ctx context.Context) ([]model.Perfil, error)
	Update(ctx context.Context, p *model.Perfil) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type perfilRepo struct{ db *gorm.DB }

func NewPerfilRepository(db *gorm.DB) PerfilRepository { return &perfilRepo{db: db} }

func (r *perfilRepo) Create(ctx context.Context, p *model.Perfil) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *perfilRepo) FindByEmail(ctx context.Context, email string) (*model.Perfil, error) {
	var p model.Perfil
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?) AND activo = true", email).
		First(&p).Error
	return &p, err
}

func (r *perfilRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Perfil, error) {
	var p model.Perfil
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *perfilRepo) List(ctx context.Context) ([]model.Perfil, error) {
	var perfiles []model.Perfil
	err := r.db.WithContext(ctx).Where("activo = true").Order("apellido, nombre").Find(&perfiles).Error
	return perfiles, err
}

func (r *perfilRepo) ListAll(ctx context.Context) ([]model.Perfil, error) {
	var perfiles []model.Perfil
	err := r.db.WithContext(ctx).Order("apellido, nombre").Find(&perfiles).Error
	return perfiles, err
}

func (r *perfilRepo) Update(ctx context.Context, p *model.Perfil) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *perfilRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Perfil{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *perfilRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Perfil{}).Where("id = ?", id).Update("activo", true).Error
}
