package dto

import "time"

type CrearPackingRequest struct {
	IDFundo         string     `json:"id_fundo"         validate:"required,uuid"`
	IDLote          *string    `json:"id_lote"          validate:"omitempty,uuid"`
	Fecha           *time.Time `json:"fecha"`
	JabasProcesadas int        `json:"jabas_procesadas" validate:"required,gt=0"`
	CajasProducidas int        `json:"cajas_producidas" validate:"required,gte=0"`
	Destino         string     `json:"destino"          validate:"required"`
}

type ActualizarPackingRequest struct {
	JabasProcesadas *int    `json:"jabas_procesadas" validate:"omitempty,gt=0"`
	CajasProducidas *int    `json:"cajas_producidas" validate:"omitempty,gte=0"`
	Destino         *string `json:"destino"`
}

type PackingResponse struct {
	ID              string    `json:"id"`
	IDFundo         string    `json:"id_fundo"`
	FundoNombre     string    `json:"fundo_nombre,omitempty"`
	IDLote          *string   `json:"id_lote"`
	LoteNombre      *string   `json:"lote_nombre,omitempty"`
	Fecha           time.Time `json:"fecha"`
	JabasProcesadas int       `json:"jabas_procesadas"`
	CajasProducidas int       `json:"cajas_producidas"`
	Destino         string    `json:"destino"`
	ResponsableID   string    `json:"responsable_id"`
	Responsable     string    `json:"responsable,omitempty"`
}
