package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/LilDeus06/trazabilidad-sub000/internal/apierror"
	"github.com/LilDeus06/trazabilidad-sub000/internal/authz"
)

// RolLookup resolves the user's current rol from storage (through the perfil
// cache). It exists so a role change takes effect on the next request instead
// of waiting for the JWT to expire. A false return means the rol could not be
// resolved and the claim embedded in the token is used instead.
type RolLookup func(ctx context.Context, userID uuid.UUID) (string, bool)

// RequireModulo guards a route with the access resolver: the authenticated
// user must hold the given acción on the módulo. Runs after JWTAuth.
// Deny ⇒ 403 with the standard error envelope — never partial data.
func RequireModulo(resolver *authz.Resolver, roles RolLookup, modulo authz.Modulo, accion authz.Accion) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, exists := c.Get(ClaimsKey)
		claims, ok := raw.(*JWTClaims)
		if !exists || !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
			return
		}
		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token mal formado"))
			return
		}
		rol := claims.Rol
		if roles != nil {
			if current, found := roles(c.Request.Context(), userID); found {
				rol = current
			}
		}
		if !resolver.Can(c.Request.Context(), userID, rol, modulo, accion) {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Permisos insuficientes"))
			return
		}
		c.Next()
	}
}
