package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/LilDeus06/trazabilidad-sub000/internal/authz"
	"github.com/LilDeus06/trazabilidad-sub000/internal/model"
)

type PackingFilter struct {
	FundoID *uuid.UUID
	Desde   *time.Time
	Hasta   *time.Time
}

type PackingRepository interface {
	Create(ctx context.Context, p *model.Packing) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Packing, error)
	List(ctx context.Context, alcance authz.Alcance, filter PackingFilter) ([]model.Packing, error)
	Update(ctx context.Context, p *model.Packing) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type packingRepo struct{ db *gorm.DB }

func NewPackingRepository(db *gorm.DB) PackingRepository { return &packingRepo{db: db} }

func (r *packingRepo) Create(ctx context.Context, p *model.Packing) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *packingRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Packing, error) {
	var p model.Packing
	err := r.db.WithContext(ctx).
		Preload("Fundo").Preload("Lote").Preload("Responsable").
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *packingRepo) List(ctx context.Context, alcance authz.Alcance, filter PackingFilter) ([]model.Packing, error) {
	q := r.db.WithContext(ctx).
		Preload("Fundo").Preload("Lote").Preload("Responsable").
		Order("fecha DESC")
	if !alcance.Todos {
		q = q.Where("id_fundo IN ?", alcance.FundoIDs)
	}
	if filter.FundoID != nil {
		q = q.Where("id_fundo = ?", *filter.FundoID)
	}
	if filter.Desde != nil {
		q = q.Where("fecha >= ?", *filter.Desde)
	}
	if filter.Hasta != nil {
		q = q.Where("fecha < ?", *filter.Hasta)
	}
	var packings []model.Packing
	err := q.Find(&packings).Error
	return packings, err
}

func (r *packingRepo) Update(ctx context.Context, p *model.Packing) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *packingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Packing{}, "id = ?", id).Error
}
