package repository

import "github.com/clinicadelvalle/ops-api/internal/domain/entity"

// MovimientoRepository define el puerto de persistencia para el libro de movimientos (DIP).
type MovimientoRepository interface {
	Create(mov *entity.Movimiento) error
	// ListRecientes devuelve los movimientos más recientes de todos los productos,
	// con nombre y código de producto para el listado.
	ListRecientes(limit int) ([]*entity.MovimientoConProducto, error)
	// ListByProducto devuelve los movimientos de un producto, más recientes primero.
	ListByProducto(productoID string, limit, offset int) ([]*entity.MovimientoConProducto, error)
}
