package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Lote is a cultivated plot within a Fundo.
// Estado: "activo" | "inactivo" | "cosechado"
type Lote struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	IDFundo       uuid.UUID       `gorm:"column:id_fundo;type:uuid;not null;index"`
	Nombre        string          `gorm:"not null"`
	AreaHectareas decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TipoCultivo   string          `gorm:"not null"`
	Variedad      string          `gorm:"not null"`
	FechaSiembra  *time.Time
	Estado        string `gorm:"type:varchar(20);not null;default:'activo'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Fundo *Fundo `gorm:"foreignKey:IDFundo"`
}
