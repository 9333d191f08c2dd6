package model

import (
	"time"

	"github.com/google/uuid"
)

// PermisoModulo is an explicit per-user override of the role defaults for one
// módulo. At most one row per (user, módulo); an explicit row always wins over
// the role default, whether it grants or revokes.
type PermisoModulo struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_permiso_user_modulo"`
	Modulo    string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_permiso_user_modulo"`
	CanRead   bool      `gorm:"not null;default:false"`
	CanWrite  bool      `gorm:"not null;default:false"`
	CanDelete bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PermisoFundo allow-lists one fundo for a user. Zero rows for a user means
// unrestricted access to every fundo.
type PermisoFundo struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_permiso_user_fundo"`
	FundoID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_permiso_user_fundo"`
	CreatedAt time.Time

	Fundo *Fundo `gorm:"foreignKey:FundoID"`
}
