package repository

import (
	"time"

	"github.com/clinicadelvalle/ops-api/internal/domain/entity"
)

// RegistroFiltro filtros para listar registros pendientes de farmacia.
type RegistroFiltro struct {
	Fecha  *time.Time // solo registros de ese día
	Estado string     // pendiente | resuelto | "" = todos
	Limit  int
	Offset int
}

// FarmaciaRepository define el puerto de persistencia para los registros
// pendientes de farmacia y sus fotos (DIP).
type FarmaciaRepository interface {
	CreateRegistro(reg *entity.RegistroPendiente) error
	GetRegistro(id string) (*entity.RegistroPendiente, error)
	UpdateRegistro(reg *entity.RegistroPendiente) error
	// ListRegistros devuelve los registros con sus fotos cargadas.
	ListRegistros(filtro RegistroFiltro) ([]*entity.RegistroPendiente, error)
	AddFoto(foto *entity.FotoRegistro) error
	ContarPendientes() (int64, error)
}
