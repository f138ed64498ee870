package entity

import "time"

// Estados de un registro pendiente de farmacia.
const (
	RegistroEstadoPendiente = "pendiente"
	RegistroEstadoResuelto  = "resuelto"
)

// RegistroPendiente es un pendiente de papelería de farmacia para una fecha
// (recetas por surtir, vales sin firma, etc.) con evidencia fotográfica.
type RegistroPendiente struct {
	ID          string
	Fecha       time.Time // fecha del pendiente (solo día)
	Titulo      string
	Descripcion string
	Estado      string // pendiente | resuelto
	CreadoPor   string // UserID
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Fotos []FotoRegistro
}

// FotoRegistro es una foto de evidencia adjunta a un RegistroPendiente.
type FotoRegistro struct {
	ID         string
	RegistroID string
	Archivo    string // nombre de archivo en uploads
	SubidoPor  string // UserID
	CreatedAt  time.Time
}
