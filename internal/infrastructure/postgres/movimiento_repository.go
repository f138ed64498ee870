package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/clinicadelvalle/ops-api/internal/domain"
	"github.com/clinicadelvalle/ops-api/internal/domain/entity"
	"github.com/clinicadelvalle/ops-api/internal/domain/repository"
)

// Ensure MovimientoRepository implements the interface.
var _ repository.MovimientoRepository = (*MovimientoRepository)(nil)

// MovimientoRepository implementa repository.MovimientoRepository con PostgreSQL.
type MovimientoRepository struct {
	db Querier
}

// NewMovimientoRepository construye el repositorio.
func NewMovimientoRepository(db Querier) *MovimientoRepository {
	return &MovimientoRepository{db: db}
}

// Create inserta un asiento en el libro de movimientos.
func (r *MovimientoRepository) Create(mov *entity.Movimiento) error {
	_, err := r.db.Exec(context.Background(), `
		INSERT INTO movimientos (id, producto_id, tipo, cantidad, fecha, nota, creado_por)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, '')::uuid)`,
		mov.ID, mov.ProductoID, mov.Tipo, mov.Cantidad, mov.Fecha, mov.Nota, mov.CreadoPor,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insertar movimiento: %w", err)
	}
	return nil
}

const movimientoConProductoQuery = `
	SELECT m.id, m.producto_id, m.tipo, m.cantidad, m.fecha, m.nota,
	       COALESCE(m.creado_por::text, ''),
	       p.nombre, p.codigo
	FROM movimientos m
	JOIN productos p ON p.id = m.producto_id`

func scanMovimientos(rows pgx.Rows) ([]*entity.MovimientoConProducto, error) {
	defer rows.Close()
	movimientos := make([]*entity.MovimientoConProducto, 0)
	for rows.Next() {
		var m entity.MovimientoConProducto
		err := rows.Scan(
			&m.ID, &m.ProductoID, &m.Tipo, &m.Cantidad, &m.Fecha, &m.Nota,
			&m.CreadoPor, &m.ProductoNombre, &m.ProductoCodigo,
		)
		if err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		movimientos = append(movimientos, &m)
	}
	return movimientos, rows.Err()
}

// ListRecientes devuelve los movimientos más recientes de todos los productos.
func (r *MovimientoRepository) ListRecientes(limit int) ([]*entity.MovimientoConProducto, error) {
	rows, err := r.db.Query(context.Background(),
		movimientoConProductoQuery+`
		ORDER BY m.fecha DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	return scanMovimientos(rows)
}

// ListByProducto devuelve los movimientos de un producto, más recientes primero.
func (r *MovimientoRepository) ListByProducto(productoID string, limit, offset int) ([]*entity.MovimientoConProducto, error) {
	rows, err := r.db.Query(context.Background(),
		movimientoConProductoQuery+`
		WHERE m.producto_id = $1
		ORDER BY m.fecha DESC
		LIMIT $2 OFFSET $3`, productoID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos de producto: %w", err)
	}
	return scanMovimientos(rows)
}
