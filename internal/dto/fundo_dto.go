package dto

import "github.com/shopspring/decimal"

type CrearFundoRequest struct {
	Nombre        string          `json:"nombre"         validate:"required,min=2,max=120"`
	Ubicacion     string          `json:"ubicacion"      validate:"required"`
	AreaHectareas decimal.Decimal `json:"area_hectareas" validate:"required"`
}

type ActualizarFundoRequest struct {
	Nombre        *string          `json:"nombre"         validate:"omitempty,min=2,max=120"`
	Ubicacion     *string          `json:"ubicacion"`
	AreaHectareas *decimal.Decimal `json:"area_hectareas"`
	Activo        *bool            `json:"activo"`
}

type FundoResponse struct {
	ID            string          `json:"id"`
	Nombre        string          `json:"nombre"`
	Ubicacion     string          `json:"ubicacion"`
	AreaHectareas decimal.Decimal `json:"area_hectareas"`
	Activo        bool            `json:"activo"`
}
