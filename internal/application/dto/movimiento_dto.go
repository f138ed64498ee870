package dto

import "time"

// RegistrarMovimientoRequest body para POST /api/movimientos.
// Cantidad SIEMPRE en piezas, positiva.
type RegistrarMovimientoRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Tipo       string `json:"tipo" validate:"required,oneof=entrada salida"`
	Cantidad   int64  `json:"cantidad" validate:"required,gt=0"`
	Nota       string `json:"nota" validate:"omitempty,max=255"`
}

// MovimientoResponse salida de un asiento del libro de movimientos.
type MovimientoResponse struct {
	ID             string    `json:"id"`
	ProductoID     string    `json:"producto_id"`
	ProductoNombre string    `json:"producto_nombre,omitempty"`
	ProductoCodigo string    `json:"producto_codigo,omitempty"`
	Tipo           string    `json:"tipo"`
	Cantidad       int64     `json:"cantidad"`
	Fecha          time.Time `json:"fecha"`
	Nota           string    `json:"nota,omitempty"`
	CreadoPor      string    `json:"creado_por,omitempty"`
}

// MovimientoListResponse listado de movimientos con el stock resultante.
type MovimientoListResponse struct {
	Items []MovimientoResponse `json:"items"`
	Total int                  `json:"total"`
}
