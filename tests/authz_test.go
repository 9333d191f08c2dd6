package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilDeus06/trazabilidad-sub000/internal/authz"
	"github.com/LilDeus06/trazabilidad-sub000/internal/model"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubPermisoStore is an in-memory PermisoStore; failErr simulates a storage
// outage on every call.
type stubPermisoStore struct {
	modulos map[uuid.UUID][]model.PermisoModulo
	fundos  map[uuid.UUID][]uuid.UUID
	failErr error
}

func newStubPermisoStore() *stubPermisoStore {
	return &stubPermisoStore{
		modulos: make(map[uuid.UUID][]model.PermisoModulo),
		fundos:  make(map[uuid.UUID][]uuid.UUID),
	}
}

func (s *stubPermisoStore) PermisosModulo(_ context.Context, userID uuid.UUID) ([]model.PermisoModulo, error) {
	if s.failErr != nil {
		return nil, s.failErr
	}
	return s.modulos[userID], nil
}

func (s *stubPermisoStore) FundosPermitidos(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if s.failErr != nil {
		return nil, s.failErr
	}
	return s.fundos[userID], nil
}

var _ authz.PermisoStore = (*stubPermisoStore)(nil)

// ── Role defaults ─────────────────────────────────────────────────────────────

func TestCanRolDefaults(t *testing.T) {
	store := newStubPermisoStore()
	resolver := authz.NewResolver(store)
	ctx := context.Background()
	userID := uuid.New()

	cases := []struct {
		name   string
		rol    string
		modulo authz.Modulo
		accion authz.Accion
		want   bool
	}{
		{"admin escribe usuarios", authz.RolAdmin, authz.ModuloUsuarios, authz.AccionWrite, true},
		{"admin elimina guias", authz.RolAdmin, authz.ModuloGuias, authz.AccionDelete, true},
		{"operador lee camiones", authz.RolOperador, authz.ModuloCamiones, authz.AccionRead, true},
		{"operador escribe guias", authz.RolOperador, authz.ModuloGuias, authz.AccionWrite, true},
		{"operador no elimina guias", authz.RolOperador, authz.ModuloGuias, authz.AccionDelete, false},
		{"operador no lee admin", authz.RolOperador, authz.ModuloAdmin, authz.AccionRead, false},
		{"operador no lee usuarios", authz.RolOperador, authz.ModuloUsuarios, authz.AccionRead, false},
		{"usuario lee dashboard", authz.RolUsuario, authz.ModuloDashboard, authz.AccionRead, true},
		{"usuario lee guias", authz.RolUsuario, authz.ModuloGuias, authz.AccionRead, true},
		{"usuario no escribe guias", authz.RolUsuario, authz.ModuloGuias, authz.AccionWrite, false},
		{"usuario no lee fundos", authz.RolUsuario, authz.ModuloFundos, authz.AccionRead, false},
		{"rol desconocido cae a usuario", "gerente", authz.ModuloDashboard, authz.AccionRead, true},
		{"rol desconocido no escribe", "gerente", authz.ModuloFundos, authz.AccionWrite, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := resolver.Can(ctx, userID, tc.rol, tc.modulo, tc.accion)
			assert.Equal(t, tc.want, got)
		})
	}
}

// ── Explicit overrides ────────────────────────────────────────────────────────

func TestCanExplicitWinsOverDefault(t *testing.T) {
	store := newStubPermisoStore()
	resolver := authz.NewResolver(store)
	ctx := context.Background()
	userID := uuid.New()

	// Explicit grant widens a usuario beyond its defaults.
	store.modulos[userID] = []model.PermisoModulo{
		{UserID: userID, Modulo: string(authz.ModuloFundos), CanRead: true, CanWrite: true},
	}
	assert.True(t, resolver.Can(ctx, userID, authz.RolUsuario, authz.ModuloFundos, authz.AccionWrite))
	assert.False(t, resolver.Can(ctx, userID, authz.RolUsuario, authz.ModuloFundos, authz.AccionDelete))
}

func TestCanExplicitRevokeBeatsAdminDefault(t *testing.T) {
	store := newStubPermisoStore()
	resolver := authz.NewResolver(store)
	ctx := context.Background()
	userID := uuid.New()

	// An all-false row revokes even an admin's default on that módulo.
	store.modulos[userID] = []model.PermisoModulo{
		{UserID: userID, Modulo: string(authz.ModuloGuias)},
	}
	assert.False(t, resolver.Can(ctx, userID, authz.RolAdmin, authz.ModuloGuias, authz.AccionRead))
	assert.False(t, resolver.Can(ctx, userID, authz.RolAdmin, authz.ModuloGuias, authz.AccionDelete))
	// Other módulos keep the admin defaults.
	assert.True(t, resolver.Can(ctx, userID, authz.RolAdmin, authz.ModuloCamiones, authz.AccionDelete))
}

func TestCanDegradesToDefaultsOnStoreError(t *testing.T) {
	store := newStubPermisoStore()
	store.failErr = errors.New("db down")
	resolver := authz.NewResolver(store)
	ctx := context.Background()
	userID := uuid.New()

	// Role defaults still answer; nothing hangs or panics.
	assert.True(t, resolver.Can(ctx, userID, authz.RolOperador, authz.ModuloLotes, authz.AccionWrite))
	assert.False(t, resolver.Can(ctx, userID, authz.RolUsuario, authz.ModuloLotes, authz.AccionWrite))
}

// ── Resolve (effective map) ───────────────────────────────────────────────────

func TestResolveOverlaysExplicitRows(t *testing.T) {
	store := newStubPermisoStore()
	resolver := authz.NewResolver(store)
	ctx := context.Background()
	userID := uuid.New()

	store.modulos[userID] = []model.PermisoModulo{
		{UserID: userID, Modulo: string(authz.ModuloAcopio), CanRead: true},
		{UserID: userID, Modulo: "inventado", CanRead: true}, // stale row, skipped
	}

	effective := resolver.Resolve(ctx, userID, authz.RolUsuario)
	assert.Equal(t, authz.Permiso{Read: true}, effective[authz.ModuloAcopio])
	assert.Equal(t, authz.Permiso{Read: true}, effective[authz.ModuloDashboard])
	_, ok := effective[authz.ModuloFundos]
	assert.False(t, ok)
	// The unknown módulo never leaks into the map.
	_, ok = effective[authz.Modulo("inventado")]
	assert.False(t, ok)
}

// ── Scope ─────────────────────────────────────────────────────────────────────

func TestScopeSinFilasEsTodos(t *testing.T) {
	store := newStubPermisoStore()
	resolver := authz.NewResolver(store)

	alcance, err := resolver.Scope(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, alcance.Todos)
	assert.True(t, alcance.Permite(uuid.New()))
}

func TestScopeConFilasRestringe(t *testing.T) {
	store := newStubPermisoStore()
	resolver := authz.NewResolver(store)
	userID := uuid.New()
	permitido := uuid.New()
	store.fundos[userID] = []uuid.UUID{permitido}

	alcance, err := resolver.Scope(context.Background(), userID)
	require.NoError(t, err)
	assert.False(t, alcance.Todos)
	assert.True(t, alcance.Permite(permitido))
	assert.False(t, alcance.Permite(uuid.New()))
}

func TestScopeFallaCerradoEnError(t *testing.T) {
	store := newStubPermisoStore()
	store.failErr = errors.New("db down")
	resolver := authz.NewResolver(store)

	alcance, err := resolver.Scope(context.Background(), uuid.New())
	require.Error(t, err)
	assert.False(t, alcance.Todos)
	assert.False(t, alcance.Permite(uuid.New()))
}

// ── ParseModulo ───────────────────────────────────────────────────────────────

func TestParseModuloRechazaDesconocidos(t *testing.T) {
	for _, m := range authz.Modulos {
		parsed, err := authz.ParseModulo(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
	_, err := authz.ParseModulo("ventas")
	assert.Error(t, err)
	_, err = authz.ParseModulo("")
	assert.Error(t, err)
}
