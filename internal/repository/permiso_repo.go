package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/LilDeus06/trazabilidad-sub000/internal/model"
)

// PermisoRepository persists the explicit per-user módulo overrides and the
// per-user fundo allow-list. It also satisfies authz.PermisoStore.
type PermisoRepository interface {
	PermisosModulo(ctx context.Context, userID uuid.UUID) ([]model.PermisoModulo, error)
	FundosPermitidos(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	// Replace reconciles the stored rows of one user against the desired set
	// inside a single transaction: rows missing are inserted, rows whose flags
	// changed are updated, rows absent from the desired set are removed.
	// Re-running with the same input is a no-op (idempotent), and the
	// delete-everything-then-insert window of the naive approach is gone.
	Replace(ctx context.Context, userID uuid.UUID, modulos []model.PermisoModulo, fundoIDs []uuid.UUID) error
}

type permisoRepo struct{ db *gorm.DB }

func NewPermisoRepository(db *gorm.DB) PermisoRepository { return &permisoRepo{db: db} }

func (r *permisoRepo) PermisosModulo(ctx context.Context, userID uuid.UUID) ([]model.PermisoModulo, error) {
	var rows []model.PermisoModulo
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error
	return rows, err
}

func (r *permisoRepo) FundosPermitidos(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&model.PermisoFundo{}).
		Where("user_id = ?", userID).
		Pluck("fundo_id", &ids).Error
	return ids, err
}

func (r *permisoRepo) Replace(ctx context.Context, userID uuid.UUID, modulos []model.PermisoModulo, fundoIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := reconcileModulos(tx, userID, modulos); err != nil {
			return err
		}
		return reconcileFundos(tx, userID, fundoIDs)
	})
}

func reconcileModulos(tx *gorm.DB, userID uuid.UUID, desired []model.PermisoModulo) error {
	var existing []model.PermisoModulo
	if err := tx.Where("user_id = ?", userID).Find(&existing).Error; err != nil {
		return err
	}
	current := make(map[string]model.PermisoModulo, len(existing))
	for _, row := range existing {
		current[row.Modulo] = row
	}

	wanted := make(map[string]bool, len(desired))
	for _, d := range desired {
		wanted[d.Modulo] = true
		row, ok := current[d.Modulo]
		if !ok {
			d.ID = uuid.Nil // let the DB assign
			d.UserID = userID
			if err := tx.Create(&d).Error; err != nil {
				return err
			}
			continue
		}
		if row.CanRead != d.CanRead || row.CanWrite != d.CanWrite || row.CanDelete != d.CanDelete {
			updates := map[string]interface{}{
				"can_read":   d.CanRead,
				"can_write":  d.CanWrite,
				"can_delete": d.CanDelete,
			}
			if err := tx.Model(&model.PermisoModulo{}).Where("id = ?", row.ID).Updates(updates).Error; err != nil {
				return err
			}
		}
	}

	for modulo, row := range current {
		if !wanted[modulo] {
			if err := tx.Delete(&model.PermisoModulo{}, "id = ?", row.ID).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func reconcileFundos(tx *gorm.DB, userID uuid.UUID, desired []uuid.UUID) error {
	var existing []model.PermisoFundo
	if err := tx.Where("user_id = ?", userID).Find(&existing).Error; err != nil {
		return err
	}
	current := make(map[uuid.UUID]model.PermisoFundo, len(existing))
	for _, row := range existing {
		current[row.FundoID] = row
	}

	wanted := make(map[uuid.UUID]bool, len(desired))
	for _, fundoID := range desired {
		wanted[fundoID] = true
		if _, ok := current[fundoID]; !ok {
			row := model.PermisoFundo{UserID: userID, FundoID: fundoID}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
	}

	for fundoID, row := range current {
		if !wanted[fundoID] {
			if err := tx.Delete(&model.PermisoFundo{}, "id = ?", row.ID).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
