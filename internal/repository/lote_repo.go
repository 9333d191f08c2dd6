package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/LilDeus06/trazabilidad-sub000/internal/authz"
	"github.com/LilDeus06/trazabilidad-sub000/internal/model"
)

type LoteFilter struct {
	FundoID *uuid.UUID
	Estado  string
}

type LoteRepository interface {
	Create(ctx context.Context, l *model.Lote) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Lote, error)
	List(ctx context.Context, alcance authz.Alcance, filter LoteFilter) ([]model.Lote, error)
	Update(ctx context.Context, l *model.Lote) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type loteRepo struct{ db *gorm.DB }

func NewLoteRepository(db *gorm.DB) LoteRepository { return &loteRepo{db: db} }

func (r *loteRepo) Create(ctx context.Context, l *model.Lote) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *loteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Lote, error) {
	var l model.Lote
	err := r.db.WithContext(ctx).Preload("Fundo").First(&l, "id = ?", id).Error
	return &l, err
}

func (r *loteRepo) List(ctx context.Context, alcance authz.Alcance, filter LoteFilter) ([]model.Lote, error) {
	q := r.db.WithContext(ctx).Preload("Fundo").Order("nombre")
	if !alcance.Todos {
		q = q.Where("id_fundo IN ?", alcance.FundoIDs)
	}
	if filter.FundoID != nil {
		q = q.Where("id_fundo = ?", *filter.FundoID)
	}
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	var lotes []model.Lote
	err := q.Find(&lotes).Error
	return lotes, err
}

func (r *loteRepo) Update(ctx context.Context, l *model.Lote) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *loteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Lote{}, "id = ?", id).Error
}
