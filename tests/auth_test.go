package tests

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/LilDeus06/trazabilidad-sub000/internal/authz"
	"github.com/LilDeus06/trazabilidad-sub000/internal/config"
	"github.com/LilDeus06/trazabilidad-sub000/internal/dto"
	"github.com/LilDeus06/trazabilidad-sub000/internal/model"
	"github.com/LilDeus06/trazabilidad-sub000/internal/service"
)

func authConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "secreto-de-prueba",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
}

func seedPerfil(t *testing.T, repo *stubPerfilRepo, email, password, rol string) *model.Perfil {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	p := &model.Perfil{
		ID:           uuid.New(),
		Email:        email,
		Nombre:       "Eva",
		Apellido:     "Torres",
		PasswordHash: string(hash),
		Rol:          rol,
		Activo:       true,
	}
	repo.perfiles[p.ID] = p
	return p
}

func TestLoginEmiteTokens(t *testing.T) {
	repo := newStubPerfilRepo()
	perfil := seedPerfil(t, repo, "eva@uvatracer.com", "clave123", authz.RolOperador)
	cfg := authConfig()
	svc := service.NewAuthService(repo, authz.NewResolver(newStubPermisoStore()), nil, cfg)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "eva@uvatracer.com", Password: "clave123"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, perfil.ID.String(), resp.User.ID)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(resp.AccessToken, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, perfil.ID.String(), claims["user_id"])
	assert.Equal(t, authz.RolOperador, claims["rol"])
}

func TestLoginRechazaCredencialesInvalidas(t *testing.T) {
	repo := newStubPerfilRepo()
	seedPerfil(t, repo, "eva@uvatracer.com", "clave123", authz.RolOperador)
	svc := service.NewAuthService(repo, authz.NewResolver(newStubPermisoStore()), nil, authConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "eva@uvatracer.com", Password: "otra"})
	assert.EqualError(t, err, "credenciales invalidas")

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "nadie@uvatracer.com", Password: "clave123"})
	assert.EqualError(t, err, "credenciales invalidas")
}

func TestRegisterBootstrapRolUsuario(t *testing.T) {
	repo := newStubPerfilRepo()
	svc := service.NewAuthService(repo, authz.NewResolver(newStubPermisoStore()), nil, authConfig())

	resp, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:    "nuevo@uvatracer.com",
		Nombre:   "Nuevo",
		Apellido: "Usuario",
		Password: "clave123",
	})
	require.NoError(t, err)
	assert.Equal(t, authz.RolUsuario, resp.User.Rol)
	assert.True(t, resp.User.Activo)

	// Same email again collides.
	_, err = svc.Register(context.Background(), dto.RegisterRequest{
		Email:    "nuevo@uvatracer.com",
		Nombre:   "Otro",
		Apellido: "Usuario",
		Password: "clave456",
	})
	assert.EqualError(t, err, "el email ya esta registrado")
}

func TestRefreshRechazaInactivo(t *testing.T) {
	repo := newStubPerfilRepo()
	perfil := seedPerfil(t, repo, "eva@uvatracer.com", "clave123", authz.RolOperador)
	svc := service.NewAuthService(repo, authz.NewResolver(newStubPermisoStore()), nil, authConfig())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "eva@uvatracer.com", Password: "clave123"})
	require.NoError(t, err)

	// A valid refresh rotates the pair.
	rotated, err := svc.Refresh(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.AccessToken)

	perfil.Activo = false
	_, err = svc.Refresh(context.Background(), resp.RefreshToken)
	assert.EqualError(t, err, "usuario no encontrado o inactivo")

	_, err = svc.Refresh(context.Background(), "no-es-un-jwt")
	assert.EqualError(t, err, "refresh token invalido o expirado")
}

func TestMeIncluyePermisosYAlcance(t *testing.T) {
	repo := newStubPerfilRepo()
	perfil := seedPerfil(t, repo, "eva@uvatracer.com", "clave123", authz.RolOperador)
	store := newStubPermisoStore()
	svc := service.NewAuthService(repo, authz.NewResolver(store), nil, authConfig())

	resp, err := svc.Me(context.Background(), perfil.ID)
	require.NoError(t, err)
	assert.Equal(t, perfil.Email, resp.Perfil.Email)
	assert.Nil(t, resp.Fundos, "sin filas de alcance el acceso es total")

	guias := resp.Permisos[string(authz.ModuloGuias)]
	assert.True(t, guias.CanRead)
	assert.True(t, guias.CanWrite)
	admin := resp.Permisos[string(authz.ModuloAdmin)]
	assert.False(t, admin.CanRead)

	fundoID := uuid.New()
	store.fundos[perfil.ID] = []uuid.UUID{fundoID}
	resp, err = svc.Me(context.Background(), perfil.ID)
	require.NoError(t, err)
	require.NotNil(t, resp.Fundos)
	assert.Equal(t, []string{fundoID.String()}, *resp.Fundos)
}
