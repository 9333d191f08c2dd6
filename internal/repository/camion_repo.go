package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/LilDeus06/trazabilidad-sub000/internal/authz"
	"github.com/LilDeus06/trazabilidad-sub000/internal/model"
)

type CamionFilter struct {
	// Desde/Hasta filter on created_at; Hasta is exclusive.
	Desde            *time.Time
	Hasta            *time.Time
	IncluirInactivos bool
}

type CamionRepository interface {
	Create(ctx context.Context, c *model.Camion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Camion, error)
	List(ctx context.Context, alcance authz.Alcance, filter CamionFilter) ([]model.Camion, error)
	Update(ctx context.Context, c *model.Camion) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type camionRepo struct{ db *gorm.DB }

func NewCamionRepository(db *gorm.DB) CamionRepository { return &camionRepo{db: db} }

func (r *camionRepo) Create(ctx context.Context, c *model.Camion) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *camionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Camion, error) {
	var c model.Camion
	err := r.db.WithContext(ctx).Preload("Fundo").Preload("Lote").First(&c, "id = ?", id).Error
	return &c, err
}

func (r *camionRepo) List(ctx context.Context, alcance authz.Alcance, filter CamionFilter) ([]model.Camion, error) {
	q := r.db.WithContext(ctx).Preload("Fundo").Preload("Lote").Order("placa")
	if !alcance.Todos {
		// Unassigned trucks (id_fundo NULL) stay visible to scoped users.
		q = q.Where("id_fundo IN ? OR id_fundo IS NULL", alcance.FundoIDs)
	}
	if !filter.IncluirInactivos {
		q = q.Where("activo = true")
	}
	if filter.Desde != nil {
		q = q.Where("created_at >= ?", *filter.Desde)
	}
	if filter.Hasta != nil {
		q = q.Where("created_at < ?", *filter.Hasta)
	}
	var camiones []model.Camion
	err := q.Find(&camiones).Error
	return camiones, err
}

func (r *camionRepo) Update(ctx context.Context, c *model.Camion) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *camionRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Camion{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *camionRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Camion{}).Where("id = ?", id).Update("activo", true).Error
}
