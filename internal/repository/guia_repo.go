package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/LilDeus06/trazabilidad-sub000/internal/authz"
	"github.com/LilDeus06/trazabilidad-sub000/internal/model"
)

type GuiaFilter struct {
	// Desde/Hasta filter on fecha_hora; Hasta is exclusive.
	Desde    *time.Time
	Hasta    *time.Time
	CamionID *uuid.UUID
	FundoID  *uuid.UUID
}

type GuiaRepository interface {
	// CreateConLotes persists the guía and its per-lote breakdown atomically.
	CreateConLotes(ctx context.Context, g *model.Guia, lotes []model.GuiaLote) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Guia, error)
	List(ctx context.Context, alcance authz.Alcance, filter GuiaFilter) ([]model.Guia, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type guiaRepo struct{ db *gorm.DB }

func NewGuiaRepository(db *gorm.DB) GuiaRepository { return &guiaRepo{db: db} }

func (r *guiaRepo) CreateConLotes(ctx context.Context, g *model.Guia, lotes []model.GuiaLote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(g).Error; err != nil {
			return err
		}
		for i := range lotes {
			lotes[i].GuiaID = g.ID
			if err := tx.Create(&lotes[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *guiaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Guia, error) {
	var g model.Guia
	err := r.db.WithContext(ctx).
		Preload("Camion").
		Preload("Fundo").
		Preload("Lotes").
		Preload("Lotes.Lote").
		First(&g, "id = ?", id).Error
	return &g, err
}

func (r *guiaRepo) List(ctx context.Context, alcance authz.Alcance, filter GuiaFilter) ([]model.Guia, error) {
	q := r.db.WithContext(ctx).
		Preload("Camion").
		Preload("Fundo").
		Preload("Lotes").
		Order("fecha_hora DESC")
	if !alcance.Todos {
		q = q.Where("id_fundo IN ?", alcance.FundoIDs)
	}
	if filter.Desde != nil {
		q = q.Where("fecha_hora >= ?", *filter.Desde)
	}
	if filter.Hasta != nil {
		q = q.Where("fecha_hora < ?", *filter.Hasta)
	}
	if filter.CamionID != nil {
		q = q.Where("id_camion = ?", *filter.CamionID)
	}
	if filter.FundoID != nil {
		q = q.Where("id_fundo = ?", *filter.FundoID)
	}
	var guias []model.Guia
	err := q.Find(&guias).Error
	return guias, err
}

func (r *guiaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.GuiaLote{}, "guia_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Guia{}, "id = ?", id).Error
	})
}
