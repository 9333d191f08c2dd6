package model

import (
	"time"

	"github.com/google/uuid"
)

// Camion is a fleet truck. Capacidad is expressed in jabas (crates).
// Placa is normalized to upper case before persisting.
type Camion struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Chofer    string    `gorm:"not null"`
	Placa     string    `gorm:"uniqueIndex;not null"`
	Capacidad int       `gorm:"not null"`
	Activo    bool      `gorm:"not null;default:true"`
	// Optional assignment: nil = truck not pinned to a fundo/lote
	IDFundo *uuid.UUID `gorm:"column:id_fundo;type:uuid;index"`
	IDLote  *uuid.UUID `gorm:"column:id_lote;type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Fundo *Fundo `gorm:"foreignKey:IDFundo"`
	Lote  *Lote  `gorm:"foreignKey:IDLote"`
}
