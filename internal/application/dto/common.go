package dto

// ErrorResponse cuerpo de error HTTP. Code es un identificador estable
// (INVALID_INPUT, NOT_FOUND, STOCK_INSUFICIENTE...) para que el frontend
// no dependa del texto del mensaje.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PageResponse metadatos de página en los listados.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}
