package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/LilDeus06/trazabilidad-sub000/internal/authz"
	"github.com/LilDeus06/trazabilidad-sub000/internal/model"
)

// ErrPalletSinCapacidad reports that the guarded pallet update matched no row:
// the pallet is despachado or the carga would exceed capacidad_jabas.
var ErrPalletSinCapacidad = errors.New("el pallet no admite la carga")

type RecepcionFilter struct {
	LoteID *uuid.UUID
	Desde  *time.Time
	Hasta  *time.Time
}

type AcopioRepository interface {
	CreateRecepcion(ctx context.Context, rec *model.AcopioRecepcion) error
	FindRecepcion(ctx context.Context, id uuid.UUID) (*model.AcopioRecepcion, error)
	ListRecepciones(ctx context.Context, alcance authz.Alcance, filter RecepcionFilter) ([]model.AcopioRecepcion, error)
	UpdateRecepcion(ctx context.Context, rec *model.AcopioRecepcion) error
	DeleteRecepcion(ctx context.Context, id uuid.UUID) error

	CreatePallet(ctx context.Context, p *model.AcopioPallet) error
	FindPallet(ctx context.Context, id uuid.UUID) (*model.AcopioPallet, error)
	ListPallets(ctx context.Context, alcance authz.Alcance, estado string) ([]model.AcopioPallet, error)
	UpdatePallet(ctx context.Context, p *model.AcopioPallet) error

	// CreateCarga persists the carga and advances the pallet counters in one
	// transaction. The increment runs guarded in SQL against the stored row,
	// so two concurrent cargas can never overfill the pallet even when both
	// read the same snapshot; a lost race surfaces as ErrPalletSinCapacidad.
	CreateCarga(ctx context.Context, carga *model.AcopioCarga, jabas int) error
	ListCargas(ctx context.Context, palletID uuid.UUID) ([]model.AcopioCarga, error)
}

type acopioRepo struct{ db *gorm.DB }

func NewAcopioRepository(db *gorm.DB) AcopioRepository { return &acopioRepo{db: db} }

func (r *acopioRepo) CreateRecepcion(ctx context.Context, rec *model.AcopioRecepcion) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *acopioRepo) FindRecepcion(ctx context.Context, id uuid.UUID) (*model.AcopioRecepcion, error) {
	var rec model.AcopioRecepcion
	err := r.db.WithContext(ctx).
		Preload("Lote").Preload("Lote.Fundo").Preload("Responsable").
		First(&rec, "id = ?", id).Error
	return &rec, err
}

func (r *acopioRepo) ListRecepciones(ctx context.Context, alcance authz.Alcance, filter RecepcionFilter) ([]model.AcopioRecepcion, error) {
	q := r.db.WithContext(ctx).
		Preload("Lote").Preload("Responsable").
		Order("fecha DESC")
	if !alcance.Todos {
		q = q.Joins("JOIN lotes ON lotes.id = acopio_recepcions.id_lote").
			Where("lotes.id_fundo IN ?", alcance.FundoIDs)
	}
	if filter.LoteID != nil {
		q = q.Where("id_lote = ?", *filter.LoteID)
	}
	if filter.Desde != nil {
		q = q.Where("fecha >= ?", *filter.Desde)
	}
	if filter.Hasta != nil {
		q = q.Where("fecha < ?", *filter.Hasta)
	}
	var recs []model.AcopioRecepcion
	err := q.Find(&recs).Error
	return recs, err
}

func (r *acopioRepo) UpdateRecepcion(ctx context.Context, rec *model.AcopioRecepcion) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *acopioRepo) DeleteRecepcion(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.AcopioRecepcion{}, "id = ?", id).Error
}

func (r *acopioRepo) CreatePallet(ctx context.Context, p *model.AcopioPallet) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *acopioRepo) FindPallet(ctx context.Context, id uuid.UUID) (*model.AcopioPallet, error) {
	var p model.AcopioPallet
	err := r.db.WithContext(ctx).Preload("Fundo").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *acopioRepo) ListPallets(ctx context.Context, alcance authz.Alcance, estado string) ([]model.AcopioPallet, error) {
	q := r.db.WithContext(ctx).Preload("Fundo").Order("codigo")
	if !alcance.Todos {
		q = q.Where("id_fundo IN ?", alcance.FundoIDs)
	}
	if estado != "" {
		q = q.Where("estado = ?", estado)
	}
	var pallets []model.AcopioPallet
	err := q.Find(&pallets).Error
	return pallets, err
}

func (r *acopioRepo) UpdatePallet(ctx context.Context, p *model.AcopioPallet) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *acopioRepo) CreateCarga(ctx context.Context, carga *model.AcopioCarga, jabas int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.AcopioPallet{}).
			Where("id = ? AND estado <> ? AND jabas_actuales + ? <= capacidad_jabas",
				carga.IDPallet, model.PalletDespachado, jabas).
			Updates(map[string]interface{}{
				"jabas_actuales": gorm.Expr("jabas_actuales + ?", jabas),
				"estado": gorm.Expr(
					"CASE WHEN jabas_actuales + ? = capacidad_jabas THEN ? ELSE ? END",
					jabas, model.PalletLleno, model.PalletParcial),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPalletSinCapacidad
		}
		return tx.Create(carga).Error
	})
}

func (r *acopioRepo) ListCargas(ctx context.Context, palletID uuid.UUID) ([]model.AcopioCarga, error) {
	var cargas []model.AcopioCarga
	err := r.db.WithContext(ctx).
		Preload("Recepcion").Preload("Responsable").
		Where("id_pallet = ?", palletID).
		Order("fecha DESC").
		Find(&cargas).Error
	return cargas, err
}
