package model

import (
	"time"

	"github.com/google/uuid"
)

// Perfil stores system users with role-based access.
// Rol: "admin" | "operador" | "usuario"
type Perfil struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"not null"`
	Apellido     string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	Rol          string    `gorm:"type:varchar(20);not null;default:'usuario'"`
	Activo       bool      `gorm:"not null;default:true"`
	AvatarURL    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
