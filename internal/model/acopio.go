package model

import (
	"time"

	"github.com/google/uuid"
)

// Pallet lifecycle states. Transitions only move forward:
// vacio → parcial → lleno → despachado.
const (
	PalletVacio      = "vacio"
	PalletParcial    = "parcial"
	PalletLleno      = "lleno"
	PalletDespachado = "despachado"
)

// AcopioRecepcion is a warehouse reception batch of jabas arriving from a lote.
type AcopioRecepcion struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	IDLote         uuid.UUID `gorm:"column:id_lote;type:uuid;not null;index"`
	Fecha          time.Time `gorm:"not null;index"`
	JabasRecibidas int       `gorm:"not null"`
	ResponsableID  uuid.UUID `gorm:"type:uuid;not null"`
	Observacion    *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Lote        *Lote   `gorm:"foreignKey:IDLote"`
	Responsable *Perfil `gorm:"foreignKey:ResponsableID"`
}

// AcopioPallet is a staging unit filled by cargas. Estado is derived from
// JabasActuales against CapacidadJabas, except despachado which is terminal.
type AcopioPallet struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo         string    `gorm:"uniqueIndex;not null"`
	IDFundo        uuid.UUID `gorm:"column:id_fundo;type:uuid;not null;index"`
	CapacidadJabas int       `gorm:"not null"`
	JabasActuales  int       `gorm:"not null;default:0"`
	Estado         string    `gorm:"type:varchar(20);not null;default:'vacio'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Fundo *Fundo `gorm:"foreignKey:IDFundo"`
}

// AcopioCarga records moving jabas from a reception batch onto a pallet.
type AcopioCarga struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	IDPallet      uuid.UUID `gorm:"column:id_pallet;type:uuid;not null;index"`
	IDRecepcion   uuid.UUID `gorm:"column:id_recepcion;type:uuid;not null"`
	Jabas         int       `gorm:"not null"`
	Fecha         time.Time `gorm:"not null"`
	ResponsableID uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt     time.Time

	Pallet      *AcopioPallet    `gorm:"foreignKey:IDPallet"`
	Recepcion   *AcopioRecepcion `gorm:"foreignKey:IDRecepcion"`
	Responsable *Perfil          `gorm:"foreignKey:ResponsableID"`
}
