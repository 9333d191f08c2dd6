package dto

import "time"

// ── Recepciones ──────────────────────────────────────────────────────────────

type CrearRecepcionRequest struct {
	IDLote         string     `json:"id_lote"         validate:"required,uuid"`
	Fecha          *time.Time `json:"fecha"`
	JabasRecibidas int        `json:"jabas_recibidas" validate:"required,gt=0"`
	Observacion    *string    `json:"observacion"`
}

type ActualizarRecepcionRequest struct {
	JabasRecibidas *int    `json:"jabas_recibidas" validate:"omitempty,gt=0"`
	Observacion    *string `json:"observacion"`
}

type RecepcionResponse struct {
	ID             string    `json:"id"`
	IDLote         string    `json:"id_lote"`
	LoteNombre     string    `json:"lote_nombre,omitempty"`
	Fecha          time.Time `json:"fecha"`
	JabasRecibidas int       `json:"jabas_recibidas"`
	ResponsableID  string    `json:"responsable_id"`
	Responsable    string    `json:"responsable,omitempty"`
	Observacion    *string   `json:"observacion"`
}

// ── Pallets ──────────────────────────────────────────────────────────────────

type CrearPalletRequest struct {
	Codigo         string `json:"codigo"          validate:"required,min=2,max=30"`
	IDFundo        string `json:"id_fundo"        validate:"required,uuid"`
	CapacidadJabas int    `json:"capacidad_jabas" validate:"required,gt=0"`
}

type PalletResponse struct {
	ID             string `json:"id"`
	Codigo         string `json:"codigo"`
	IDFundo        string `json:"id_fundo"`
	FundoNombre    string `json:"fundo_nombre,omitempty"`
	CapacidadJabas int    `json:"capacidad_jabas"`
	JabasActuales  int    `json:"jabas_actuales"`
	Estado         string `json:"estado"`
}

// ── Cargas ───────────────────────────────────────────────────────────────────

type CrearCargaRequest struct {
	IDPallet    string     `json:"id_pallet"    validate:"required,uuid"`
	IDRecepcion string     `json:"id_recepcion" validate:"required,uuid"`
	Jabas       int        `json:"jabas"        validate:"required,gt=0"`
	Fecha       *time.Time `json:"fecha"`
}

type CargaResponse struct {
	ID            string    `json:"id"`
	IDPallet      string    `json:"id_pallet"`
	IDRecepcion   string    `json:"id_recepcion"`
	Jabas         int       `json:"jabas"`
	Fecha         time.Time `json:"fecha"`
	ResponsableID string    `json:"responsable_id"`
}
