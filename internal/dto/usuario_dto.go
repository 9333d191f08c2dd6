package dto

type CrearUsuarioRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Nombre   string `json:"nombre"   validate:"required,min=2,max=80"`
	Apellido string `json:"apellido" validate:"required,min=2,max=80"`
	Rol      string `json:"rol"      validate:"required,oneof=admin operador usuario"`
}

type ActualizarUsuarioRequest struct {
	Nombre   string `json:"nombre"   validate:"omitempty,min=2,max=80"`
	Apellido string `json:"apellido" validate:"omitempty,min=2,max=80"`
	Rol      string `json:"rol"      validate:"omitempty,oneof=admin operador usuario"`
	Password string `json:"password" validate:"omitempty,min=8"`
}

// PermisoModuloEntry is one row of the explicit override set.
type PermisoModuloEntry struct {
	Modulo    string `json:"modulo"     validate:"required"`
	CanRead   bool   `json:"can_read"`
	CanWrite  bool   `json:"can_write"`
	CanDelete bool   `json:"can_delete"`
}

// ReemplazarPermisosRequest is the full desired permission state of one user:
// explicit módulo overrides plus the fundo allow-list (empty = all fundos).
// The stored rows are reconciled against this set; resubmitting the same
// payload is a no-op.
type ReemplazarPermisosRequest struct {
	Modulos []PermisoModuloEntry `json:"modulos" validate:"dive"`
	Fundos  []string             `json:"fundos"  validate:"dive,uuid"`
}

type PermisosResponse struct {
	Modulos []PermisoModuloEntry `json:"modulos"`
	Fundos  []string             `json:"fundos"`
}
