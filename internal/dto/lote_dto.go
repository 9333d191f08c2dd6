package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CrearLoteRequest struct {
	IDFundo       string          `json:"id_fundo"       validate:"required,uuid"`
	Nombre        string          `json:"nombre"         validate:"required,min=1,max=120"`
	AreaHectareas decimal.Decimal `json:"area_hectareas" validate:"required"`
	TipoCultivo   string          `json:"tipo_cultivo"   validate:"required"`
	Variedad      string          `json:"variedad"       validate:"required"`
	FechaSiembra  *time.Time      `json:"fecha_siembra"`
}

type ActualizarLoteRequest struct {
	Nombre        *string          `json:"nombre"         validate:"omitempty,min=1,max=120"`
	AreaHectareas *decimal.Decimal `json:"area_hectareas"`
	TipoCultivo   *string          `json:"tipo_cultivo"`
	Variedad      *string          `json:"variedad"`
	FechaSiembra  *time.Time       `json:"fecha_siembra"`
	Estado        *string          `json:"estado" validate:"omitempty,oneof=activo inactivo cosechado"`
}

type LoteFilterQuery struct {
	FundoID string `form:"fundo_id" validate:"omitempty,uuid"`
	Estado  string `form:"estado"   validate:"omitempty,oneof=activo inactivo cosechado"`
}

type LoteResponse struct {
	ID            string          `json:"id"`
	IDFundo       string          `json:"id_fundo"`
	FundoNombre   string          `json:"fundo_nombre,omitempty"`
	Nombre        string          `json:"nombre"`
	AreaHectareas decimal.Decimal `json:"area_hectareas"`
	TipoCultivo   string          `json:"tipo_cultivo"`
	Variedad      string          `json:"variedad"`
	FechaSiembra  *time.Time      `json:"fecha_siembra"`
	Estado        string          `json:"estado"`
}
