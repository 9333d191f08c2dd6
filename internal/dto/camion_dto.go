package dto

type CrearCamionRequest struct {
	Chofer    string  `json:"chofer"    validate:"required,min=2,max=120"`
	Placa     string  `json:"placa"     validate:"required,min=5,max=12"`
	Capacidad int     `json:"capacidad" validate:"required,gt=0"`
	IDFundo   *string `json:"id_fundo"  validate:"omitempty,uuid"`
	IDLote    *string `json:"id_lote"   validate:"omitempty,uuid"`
}

type ActualizarCamionRequest struct {
	Chofer    *string `json:"chofer"    validate:"omitempty,min=2,max=120"`
	Placa     *string `json:"placa"     validate:"omitempty,min=5,max=12"`
	Capacidad *int    `json:"capacidad" validate:"omitempty,gt=0"`
	IDFundo   *string `json:"id_fundo"  validate:"omitempty,uuid"`
	IDLote    *string `json:"id_lote"   validate:"omitempty,uuid"`
}

type CamionResponse struct {
	ID          string  `json:"id"`
	Chofer      string  `json:"chofer"`
	Placa       string  `json:"placa"`
	Capacidad   int     `json:"capacidad"`
	Activo      bool    `json:"activo"`
	IDFundo     *string `json:"id_fundo"`
	FundoNombre *string `json:"fundo_nombre,omitempty"`
	IDLote      *string `json:"id_lote"`
	LoteNombre  *string `json:"lote_nombre,omitempty"`
}
