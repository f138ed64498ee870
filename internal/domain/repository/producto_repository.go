package repository

import "github.com/clinicadelvalle/ops-api/internal/domain/entity"

// ProductoRepository define el puerto de persistencia para Producto (DIP).
type ProductoRepository interface {
	Create(producto *entity.Producto) error
	GetByID(id string) (*entity.Producto, error)
	GetByCodigo(codigo string) (*entity.Producto, error)
	// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE);
	// solo tiene sentido dentro de una transacción.
	GetForUpdate(id string) (*entity.Producto, error)
	Update(producto *entity.Producto) error
	// UpdateStock persiste únicamente los campos de stock y la última modificación
	// (lo usa el motor de movimientos dentro de la transacción).
	UpdateStock(producto *entity.Producto) error
	// List lista productos ordenados por última modificación descendente.
	// q filtra por nombre, código o categoría (insensible a mayúsculas y acentos).
	List(q string, limit, offset int) ([]*entity.Producto, error)
	Delete(id string) error
}
