package model

import (
	"time"

	"github.com/google/uuid"
)

// Guia is a dispatch note for a truck's outbound shipment of jabas.
// IDFundo is derived from the camión's assignment at creation time, never
// taken from the client. Codigo is normalized to upper case.
type Guia struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo    string    `gorm:"uniqueIndex;not null"`
	FechaHora time.Time `gorm:"not null;index"`
	IDCamion  uuid.UUID `gorm:"column:id_camion;type:uuid;not null"`
	IDFundo   uuid.UUID `gorm:"column:id_fundo;type:uuid;not null;index"`
	Enviadas  int       `gorm:"not null"`
	UsuarioID uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Camion *Camion    `gorm:"foreignKey:IDCamion"`
	Fundo  *Fundo     `gorm:"foreignKey:IDFundo"`
	Lotes  []GuiaLote `gorm:"foreignKey:GuiaID"`
}

// GuiaLote is the per-lote quantity breakdown of a Guia. Populated whenever
// the guía draws from more than one lote; single-lote guías store one row too
// so the breakdown is always queryable.
type GuiaLote struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GuiaID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_guia_lote"`
	LoteID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_guia_lote"`
	Cantidad int       `gorm:"not null"`

	Lote *Lote `gorm:"foreignKey:LoteID"`
}
