package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/LilDeus06/trazabilidad-sub000/internal/authz"
	"github.com/LilDeus06/trazabilidad-sub000/internal/model"
)

type FundoRepository interface {
	Create(ctx context.Context, f *model.Fundo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Fundo, error)
	List(ctx context.Context, alcance authz.Alcance, incluirInactivos bool) ([]model.Fundo, error)
	Update(ctx context.Context, f *model.Fundo) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type fundoRepo struct{ db *gorm.DB }

func NewFundoRepository(db *gorm.DB) FundoRepository { return &fundoRepo{db: db} }

func (r *fundoRepo) Create(ctx context.Context, f *model.Fundo) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *fundoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Fundo, error) {
	var f model.Fundo
	err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error
	return &f, err
}

func (r *fundoRepo) List(ctx context.Context, alcance authz.Alcance, incluirInactivos bool) ([]model.Fundo, error) {
	q := r.db.WithContext(ctx).Order("nombre")
	if !alcance.Todos {
		q = q.Where("id IN ?", alcance.FundoIDs)
	}
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	var fundos []model.Fundo
	err := q.Find(&fundos).Error
	return fundos, err
}

func (r *fundoRepo) Update(ctx context.Context, f *model.Fundo) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *fundoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Fundo{}).Where("id = ?", id).Update("activo", false).Error
}
