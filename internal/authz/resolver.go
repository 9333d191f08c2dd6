package authz

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/LilDeus06/trazabilidad-sub000/internal/model"
)

// loadTimeout bounds every permission-store round trip. On timeout or store
// failure the resolver degrades to role defaults instead of blocking or
// failing the request.
const loadTimeout = 10 * time.Second

// PermisoStore is the persistence contract the resolver needs. Implemented by
// repository.PermisoRepository.
type PermisoStore interface {
	PermisosModulo(ctx context.Context, userID uuid.UUID) ([]model.PermisoModulo, error)
	FundosPermitidos(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// Alcance is the fundo-level data scope of a user. Todos=true grants every
// fundo; otherwise FundoIDs is the exact allow-list.
type Alcance struct {
	Todos    bool
	FundoIDs []uuid.UUID
}

// Permite reports whether the scope covers the given fundo.
func (a Alcance) Permite(fundoID uuid.UUID) bool {
	if a.Todos {
		return true
	}
	for _, id := range a.FundoIDs {
		if id == fundoID {
			return true
		}
	}
	return false
}

// Resolver answers "can user U perform action A on módulo M?" and "which
// fundos can user U see?". Stateless per request; precedence is:
// explicit PermisoModulo row → role default → deny.
type Resolver struct {
	store PermisoStore
}

func NewResolver(store PermisoStore) *Resolver {
	return &Resolver{store: store}
}

// Can resolves a single (módulo, acción) decision for the user. An explicit
// row always wins, even when it is more restrictive than the role default.
// Missing everywhere ⇒ deny (fail closed).
func (r *Resolver) Can(ctx context.Context, userID uuid.UUID, rol string, modulo Modulo, accion Accion) bool {
	explicit, ok, err := r.explicitPermiso(ctx, userID, modulo)
	if err != nil {
		// Degrade to role defaults rather than leave the caller hanging.
		log.Warn().Err(err).Str("user_id", userID.String()).Str("modulo", string(modulo)).
			Msg("fallo al cargar permisos explicitos, usando defaults de rol")
	} else if ok {
		return allowed(explicit, accion)
	}

	def, ok := RolDefaults(rol)[modulo]
	if !ok {
		return false
	}
	return allowed(def, accion)
}

// Resolve returns the effective grant triple for every módulo: role defaults
// overlaid with the user's explicit rows. Used by the /auth/me surface so the
// client can build its menu in one round trip.
func (r *Resolver) Resolve(ctx context.Context, userID uuid.UUID, rol string) map[Modulo]Permiso {
	effective := RolDefaults(rol)

	lctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()
	rows, err := r.store.PermisosModulo(lctx, userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).
			Msg("fallo al cargar permisos explicitos, usando defaults de rol")
		return effective
	}
	for _, row := range rows {
		m, err := ParseModulo(row.Modulo)
		if err != nil {
			// A stale row naming a módulo outside the closed set is skipped.
			log.Warn().Str("modulo", row.Modulo).Msg("permiso con modulo desconocido ignorado")
			continue
		}
		effective[m] = Permiso{Read: row.CanRead, Write: row.CanWrite, Delete: row.CanDelete}
	}
	return effective
}

// Scope resolves the fundo-level data scope. Zero PermisoFundo rows means the
// user may access every fundo; a store failure scopes to nothing rather than
// everything (fail closed — the opposite default would widen access on error).
func (r *Resolver) Scope(ctx context.Context, userID uuid.UUID) (Alcance, error) {
	lctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()
	ids, err := r.store.FundosPermitidos(lctx, userID)
	if err != nil {
		return Alcance{}, err
	}
	if len(ids) == 0 {
		return Alcance{Todos: true}, nil
	}
	return Alcance{FundoIDs: ids}, nil
}

func (r *Resolver) explicitPermiso(ctx context.Context, userID uuid.UUID, modulo Modulo) (Permiso, bool, error) {
	lctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()
	rows, err := r.store.PermisosModulo(lctx, userID)
	if err != nil {
		return Permiso{}, false, err
	}
	for _, row := range rows {
		if row.Modulo == string(modulo) {
			return Permiso{Read: row.CanRead, Write: row.CanWrite, Delete: row.CanDelete}, true, nil
		}
	}
	return Permiso{}, false, nil
}

func allowed(p Permiso, accion Accion) bool {
	switch accion {
	case AccionRead:
		return p.Read
	case AccionWrite:
		return p.Write
	case AccionDelete:
		return p.Delete
	default:
		return false
	}
}
