package tests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilDeus06/trazabilidad-sub000/internal/authz"
	"github.com/LilDeus06/trazabilidad-sub000/internal/middleware"
	"github.com/LilDeus06/trazabilidad-sub000/internal/model"
)

const testSecret = "secreto-de-prueba"

func signToken(t *testing.T, userID uuid.UUID, rol string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"email":   "eva@uvatracer.com",
		"rol":     rol,
		"exp":     time.Now().Add(time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func guardedRouter(resolver *authz.Resolver, roles middleware.RolLookup) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	grupo := r.Group("/v1", middleware.JWTAuth(testSecret))
	grupo.GET("/guias", middleware.RequireModulo(resolver, roles, authz.ModuloGuias, authz.AccionRead), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	grupo.DELETE("/guias/:id", middleware.RequireModulo(resolver, roles, authz.ModuloGuias, authz.AccionDelete), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func doRequest(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthRechazaSinToken(t *testing.T) {
	r := guardedRouter(authz.NewResolver(newStubPermisoStore()), nil)

	w := doRequest(r, http.MethodGet, "/v1/guias", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodGet, "/v1/guias", "token-inventado")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireModuloPorRol(t *testing.T) {
	r := guardedRouter(authz.NewResolver(newStubPermisoStore()), nil)
	userID := uuid.New()

	// operador lee guias pero no borra
	token := signToken(t, userID, authz.RolOperador)
	w := doRequest(r, http.MethodGet, "/v1/guias", token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodDelete, "/v1/guias/"+uuid.NewString(), token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Permisos insuficientes")

	// admin borra
	w = doRequest(r, http.MethodDelete, "/v1/guias/"+uuid.NewString(), signToken(t, userID, authz.RolAdmin))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequireModuloFilaExplicitaRevoca(t *testing.T) {
	store := newStubPermisoStore()
	userID := uuid.New()
	store.modulos[userID] = []model.PermisoModulo{
		{UserID: userID, Modulo: string(authz.ModuloGuias)},
	}
	r := guardedRouter(authz.NewResolver(store), nil)

	w := doRequest(r, http.MethodGet, "/v1/guias", signToken(t, userID, authz.RolAdmin))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireModuloDegradaADefaultsSiFallaStore(t *testing.T) {
	store := newStubPermisoStore()
	store.failErr = context.DeadlineExceeded
	r := guardedRouter(authz.NewResolver(store), nil)
	userID := uuid.New()

	// Con el store caido los defaults del rol siguen mandando.
	w := doRequest(r, http.MethodGet, "/v1/guias", signToken(t, userID, authz.RolOperador))
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/v1/guias", signToken(t, userID, authz.RolUsuario))
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodDelete, "/v1/guias/"+uuid.NewString(), signToken(t, userID, authz.RolOperador))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireModuloUsaRolActualNoElDelToken(t *testing.T) {
	userID := uuid.New()
	rolActual := authz.RolAdmin
	lookup := middleware.RolLookup(func(_ context.Context, id uuid.UUID) (string, bool) {
		if id != userID {
			return "", false
		}
		return rolActual, true
	})
	r := guardedRouter(authz.NewResolver(newStubPermisoStore()), lookup)

	// Token emitido cuando el usuario aun era admin.
	token := signToken(t, userID, authz.RolAdmin)
	w := doRequest(r, http.MethodDelete, "/v1/guias/"+uuid.NewString(), token)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Degradado a usuario: el mismo token deja de poder borrar de inmediato.
	rolActual = authz.RolUsuario
	w = doRequest(r, http.MethodDelete, "/v1/guias/"+uuid.NewString(), token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Si el perfil no se puede resolver se usa el rol del token.
	sinPerfil := signToken(t, uuid.New(), authz.RolAdmin)
	w = doRequest(r, http.MethodDelete, "/v1/guias/"+uuid.NewString(), sinPerfil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
