package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Fundo is an agricultural site; top-level ownership scope for trucks, plots
// and all downstream operational records.
type Fundo struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre        string          `gorm:"index;not null"`
	Ubicacion     string          `gorm:"not null"`
	AreaHectareas decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Activo        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
