package dto

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Nombre   string `json:"nombre"   validate:"required,min=2,max=80"`
	Apellido string `json:"apellido" validate:"required,min=2,max=80"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	User         PerfilResponse  `json:"user"`
}

type PerfilResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Nombre    string  `json:"nombre"`
	Apellido  string  `json:"apellido"`
	Rol       string  `json:"rol"`
	Activo    bool    `json:"activo"`
	AvatarURL *string `json:"avatar_url"`
}

// MeResponse bundles the perfil with its effective permissions so the client
// builds its menu in a single round trip.
type MeResponse struct {
	Perfil   PerfilResponse            `json:"perfil"`
	Permisos map[string]PermisoFlags   `json:"permisos"`
	Fundos   *[]string                 `json:"fundos"` // nil = all fundos
}

type PermisoFlags struct {
	CanRead   bool `json:"can_read"`
	CanWrite  bool `json:"can_write"`
	CanDelete bool `json:"can_delete"`
}
