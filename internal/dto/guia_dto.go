package dto

import "time"

// GuiaLoteEntry is one lote's share of the dispatched quantity.
type GuiaLoteEntry struct {
	LoteID   string `json:"lote_id"  validate:"required,uuid"`
	Cantidad int    `json:"cantidad" validate:"omitempty,gt=0"`
}

// CrearGuiaRequest carries no fundo: the fundo is derived from the camión's
// assignment server-side. With one lote, Cantidad may be omitted (it defaults
// to Enviadas); with several lotes every cantidad is required and they must
// sum exactly to Enviadas.
type CrearGuiaRequest struct {
	Codigo    string          `json:"codigo"    validate:"required,min=3,max=40"`
	FechaHora *time.Time      `json:"fecha_hora"`
	IDCamion  string          `json:"id_camion" validate:"required,uuid"`
	Enviadas  int             `json:"enviadas"  validate:"required,gt=0"`
	Lotes     []GuiaLoteEntry `json:"lotes"     validate:"required,min=1,dive"`
}

type GuiaFilterQuery struct {
	StartDate string `form:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   validate:"omitempty,datetime=2006-01-02"`
	CamionID  string `form:"camion_id"  validate:"omitempty,uuid"`
	FundoID   string `form:"fundo_id"   validate:"omitempty,uuid"`
}

type GuiaLoteResponse struct {
	LoteID     string `json:"lote_id"`
	LoteNombre string `json:"lote_nombre,omitempty"`
	Cantidad   int    `json:"cantidad"`
}

type GuiaResponse struct {
	ID          string             `json:"id"`
	Codigo      string             `json:"codigo"`
	FechaHora   time.Time          `json:"fecha_hora"`
	IDCamion    string             `json:"id_camion"`
	CamionPlaca string             `json:"camion_placa,omitempty"`
	IDFundo     string             `json:"id_fundo"`
	FundoNombre string             `json:"fundo_nombre,omitempty"`
	Enviadas    int                `json:"enviadas"`
	UsuarioID   string             `json:"usuario_id"`
	Lotes       []GuiaLoteResponse `json:"lotes"`
}
