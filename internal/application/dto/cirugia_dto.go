package dto

import "time"

// CreateCirugiaRequest body para POST /api/cirugias.
type CreateCirugiaRequest struct {
	PacienteNombre string `json:"paciente_nombre" validate:"required,min=1,max=160"`
	Edad           int    `json:"edad" validate:"omitempty,min=0,max=130"`
	Sexo           string `json:"sexo" validate:"omitempty,max=10"`
	Telefono       string `json:"telefono" validate:"omitempty,max=30"`

	FolioExpediente string `json:"folio_expediente" validate:"omitempty,max=80"`
	Especialidad    string `json:"especialidad" validate:"omitempty,max=120"`
	Procedimiento   string `json:"procedimiento" validate:"required,min=1,max=200"`

	Cirujano       string `json:"cirujano" validate:"required,min=1,max=160"`
	Anestesiologo  string `json:"anestesiologo" validate:"omitempty,max=160"`
	Ayudantes      string `json:"ayudantes"`
	Instrumentista string `json:"instrumentista" validate:"omitempty,max=160"`

	IndicacionesEspeciales string `json:"indicaciones_especiales"`
	Programo               string `json:"programo" validate:"omitempty,max=160"`

	FechaProgramada string `json:"fecha_programada" validate:"required"` // "2006-01-02"
	Hora            string `json:"hora" validate:"omitempty,max=5"`      // "HH:MM"
}

// CambiarEstadoRequest body para POST /api/cirugias/:id/estado.
type CambiarEstadoRequest struct {
	Estado string `json:"estado" validate:"required"`
	Nota   string `json:"nota" validate:"omitempty,max=255"`
}

// CirugiaEventoResponse entrada de la bitácora de una cirugía.
type CirugiaEventoResponse struct {
	ID             string    `json:"id"`
	EstadoAnterior string    `json:"estado_anterior,omitempty"`
	EstadoNuevo    string    `json:"estado_nuevo"`
	Usuario        string    `json:"usuario"`
	Nota           string    `json:"nota,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// CirugiaResponse salida de una cirugía.
type CirugiaResponse struct {
	ID string `json:"id"`

	PacienteNombre string `json:"paciente_nombre"`
	Edad           int    `json:"edad,omitempty"`
	Sexo           string `json:"sexo,omitempty"`
	Telefono       string `json:"telefono,omitempty"`

	FolioExpediente string `json:"folio_expediente,omitempty"`
	Especialidad    string `json:"especialidad,omitempty"`
	Procedimiento   string `json:"procedimiento"`

	Cirujano       string `json:"cirujano"`
	Anestesiologo  string `json:"anestesiologo,omitempty"`
	Ayudantes      string `json:"ayudantes,omitempty"`
	Instrumentista string `json:"instrumentista,omitempty"`

	IndicacionesEspeciales string `json:"indicaciones_especiales,omitempty"`
	Estado                 string `json:"estado"`
	Programo               string `json:"programo,omitempty"`
	OrdenFoto              string `json:"orden_foto,omitempty"`

	FechaProgramada string `json:"fecha_programada"` // "2006-01-02"
	Hora            string `json:"hora,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Eventos []CirugiaEventoResponse `json:"eventos,omitempty"`
}

// CirugiaListResponse listado de cirugías.
type CirugiaListResponse struct {
	Items []CirugiaResponse `json:"items"`
	Total int               `json:"total"`
}
