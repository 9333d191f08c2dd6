package authz

// Roles known to the system. An unknown role string falls back to RolUsuario
// defaults (documented fallback — never silently admin).
const (
	RolAdmin    = "admin"
	RolOperador = "operador"
	RolUsuario  = "usuario"
)

// Permiso is one (read, write, delete) grant triple.
type Permiso struct {
	Read   bool
	Write  bool
	Delete bool
}

// RolDefaults returns the default grants of a role as a total function over
// the closed módulo set. Módulos absent from the map carry no access at all.
//
//   - admin: full read/write/delete everywhere.
//   - operador: read/write (no delete) everywhere except admin and usuarios,
//     which are excluded entirely.
//   - usuario: read-only on dashboard and guias.
func RolDefaults(rol string) map[Modulo]Permiso {
	switch rol {
	case RolAdmin:
		defaults := make(map[Modulo]Permiso, len(Modulos))
		for _, m := range Modulos {
			defaults[m] = Permiso{Read: true, Write: true, Delete: true}
		}
		return defaults
	case RolOperador:
		defaults := make(map[Modulo]Permiso, len(Modulos))
		for _, m := range Modulos {
			if m == ModuloAdmin || m == ModuloUsuarios {
				continue // no entry ⇒ no access
			}
			defaults[m] = Permiso{Read: true, Write: true}
		}
		return defaults
	default:
		// usuario — and the documented fallback for unknown roles
		return map[Modulo]Permiso{
			ModuloDashboard: {Read: true},
			ModuloGuias:     {Read: true},
		}
	}
}
