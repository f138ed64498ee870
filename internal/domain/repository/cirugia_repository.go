package repository

import (
	"time"

	"github.com/clinicadelvalle/ops-api/internal/domain/entity"
)

// CirugiaFiltro filtros para listar cirugías.
type CirugiaFiltro struct {
	Fecha  *time.Time // solo cirugías programadas ese día
	Estado string     // "" = todos
	Limit  int
	Offset int
}

// CirugiaRepository define el puerto de persistencia para cirugías y su bitácora (DIP).
type CirugiaRepository interface {
	Create(cirugia *entity.Cirugia) error
	GetByID(id string) (*entity.Cirugia, error)
	// GetForUpdate bloquea la fila de la cirugía (SELECT FOR UPDATE) para
	// cambios de estado; solo tiene sentido dentro de una transacción.
	GetForUpdate(id string) (*entity.Cirugia, error)
	Update(cirugia *entity.Cirugia) error
	List(filtro CirugiaFiltro) ([]*entity.Cirugia, error)
	AddEvento(evento *entity.CirugiaEvento) error
	ListEventos(cirugiaID string) ([]*entity.CirugiaEvento, error)
	ContarPorEstado(fecha *time.Time) (map[string]int64, error)
}
