// Package authz implements the permission model: a closed catalog of módulos,
// per-role default grants, and a resolver that layers explicit per-user
// overrides and per-fundo data scoping on top of those defaults.
package authz

import "fmt"

// Modulo identifies a functional area of the application; it is the unit of
// permission granularity. The set is closed: an unrecognized name is a
// validation error, never a silent no-op.
type Modulo string

const (
	ModuloDashboard Modulo = "dashboard"
	ModuloAdmin     Modulo = "admin"
	ModuloUsuarios  Modulo = "usuarios"
	ModuloFundos    Modulo = "fundos"
	ModuloLotes     Modulo = "lotes"
	ModuloCamiones  Modulo = "camiones"
	ModuloGuias     Modulo = "guias"
	ModuloCampo     Modulo = "campo"
	ModuloAcopio    Modulo = "acopio"
	ModuloPacking   Modulo = "packing"
)

// Modulos lists every valid módulo in menu order.
var Modulos = []Modulo{
	ModuloDashboard,
	ModuloAdmin,
	ModuloUsuarios,
	ModuloFundos,
	ModuloLotes,
	ModuloCamiones,
	ModuloGuias,
	ModuloCampo,
	ModuloAcopio,
	ModuloPacking,
}

// ParseModulo validates a free-form string against the closed set.
func ParseModulo(s string) (Modulo, error) {
	for _, m := range Modulos {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("modulo desconocido: %q", s)
}

// Accion is one of the three permission flags.
type Accion string

const (
	AccionRead   Accion = "read"
	AccionWrite  Accion = "write"
	AccionDelete Accion = "delete"
)
