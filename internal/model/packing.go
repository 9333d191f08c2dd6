package model

import (
	"time"

	"github.com/google/uuid"
)

// Packing is a packing-stage run: jabas processed into export boxes.
type Packing struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	IDFundo         uuid.UUID  `gorm:"column:id_fundo;type:uuid;not null;index"`
	IDLote          *uuid.UUID `gorm:"column:id_lote;type:uuid"`
	Fecha           time.Time  `gorm:"not null;index"`
	JabasProcesadas int        `gorm:"not null"`
	CajasProducidas int        `gorm:"not null"`
	Destino         string     `gorm:"not null"`
	ResponsableID   uuid.UUID  `gorm:"type:uuid;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Fundo       *Fundo  `gorm:"foreignKey:IDFundo"`
	Lote        *Lote   `gorm:"foreignKey:IDLote"`
	Responsable *Perfil `gorm:"foreignKey:ResponsableID"`
}
