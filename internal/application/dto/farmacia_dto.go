package dto

import "time"

// CreateRegistroRequest body para POST /api/farmacia/registros.
type CreateRegistroRequest struct {
	Fecha       string `json:"fecha" validate:"required"` // "2006-01-02"
	Titulo      string `json:"titulo" validate:"required,min=1,max=160"`
	Descripcion string `json:"descripcion"`
}

// FotoRegistroResponse foto de evidencia adjunta a un registro.
type FotoRegistroResponse struct {
	ID        string    `json:"id"`
	Archivo   string    `json:"archivo"` // nombre de archivo bajo /uploads
	SubidoPor string    `json:"subido_por"`
	CreatedAt time.Time `json:"created_at"`
}

// RegistroResponse salida de un registro pendiente de farmacia.
type RegistroResponse struct {
	ID          string                 `json:"id"`
	Fecha       string                 `json:"fecha"` // "2006-01-02"
	Titulo      string                 `json:"titulo"`
	Descripcion string                 `json:"descripcion,omitempty"`
	Estado      string                 `json:"estado"`
	CreadoPor   string                 `json:"creado_por"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	Fotos       []FotoRegistroResponse `json:"fotos"`
}

// RegistroListResponse listado de registros.
type RegistroListResponse struct {
	Items []RegistroResponse `json:"items"`
	Total int                `json:"total"`
}
