package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/clinicadelvalle/ops-api/internal/domain"
	"github.com/clinicadelvalle/ops-api/internal/domain/entity"
	"github.com/clinicadelvalle/ops-api/internal/domain/repository"
)

// Ensure ProductoRepository implements the interface.
var _ repository.ProductoRepository = (*ProductoRepository)(nil)

// ProductoRepository implementa repository.ProductoRepository con PostgreSQL.
// Recibe un Querier para poder operar sobre el pool o dentro de una transacción.
type ProductoRepository struct {
	db Querier
}

// NewProductoRepository construye el repositorio.
func NewProductoRepository(db Querier) *ProductoRepository {
	return &ProductoRepository{db: db}
}

const productoColumns = `
	id, nombre, codigo, descripcion, proveedor, lote, categoria, unidad,
	cantidad, unidad_compra, piezas_por_unidad, cantidad_piezas, stock_minimo,
	costo, margen, aplica_iva, precio,
	fecha_ingreso, caducidad, imagen, ultima_modificacion`

func scanProducto(row pgx.Row) (*entity.Producto, error) {
	var p entity.Producto
	err := row.Scan(
		&p.ID, &p.Nombre, &p.Codigo, &p.Descripcion, &p.Proveedor, &p.Lote, &p.Categoria, &p.Unidad,
		&p.Cantidad, &p.UnidadCompra, &p.PiezasPorUnidad, &p.CantidadPiezas, &p.StockMinimo,
		&p.Costo, &p.Margen, &p.AplicaIVA, &p.Precio,
		&p.FechaIngreso, &p.Caducidad, &p.Imagen, &p.UltimaModificacion,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan producto: %w", err)
	}
	return &p, nil
}

// Create inserta un producto nuevo.
func (r *ProductoRepository) Create(producto *entity.Producto) error {
	ctx := context.Background()
	_, err := r.db.Exec(ctx, `
		INSERT INTO productos (
			id, nombre, codigo, descripcion, proveedor, lote, categoria, unidad,
			cantidad, unidad_compra, piezas_por_unidad, cantidad_piezas, stock_minimo,
			costo, margen, aplica_iva, precio,
			fecha_ingreso, caducidad, imagen, ultima_modificacion
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12, $13,
			$14, $15, $16, $17,
			$18, $19, $20, $21
		)`,
		producto.ID, producto.Nombre, producto.Codigo, producto.Descripcion,
		producto.Proveedor, producto.Lote, producto.Categoria, producto.Unidad,
		producto.Cantidad, producto.UnidadCompra, producto.PiezasPorUnidad,
		producto.CantidadPiezas, producto.StockMinimo,
		producto.Costo, producto.Margen, producto.AplicaIVA, producto.Precio,
		producto.FechaIngreso, producto.Caducidad, producto.Imagen, producto.UltimaModificacion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insertar producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por su ID.
func (r *ProductoRepository) GetByID(id string) (*entity.Producto, error) {
	row := r.db.QueryRow(context.Background(),
		`SELECT `+productoColumns+` FROM productos WHERE id = $1`, id)
	return scanProducto(row)
}

// GetByCodigo obtiene un producto por su código único.
func (r *ProductoRepository) GetByCodigo(codigo string) (*entity.Producto, error) {
	row := r.db.QueryRow(context.Background(),
		`SELECT `+productoColumns+` FROM productos WHERE codigo = $1`, codigo)
	return scanProducto(row)
}

// GetForUpdate obtiene el producto bloqueando la fila para el movimiento en curso.
func (r *ProductoRepository) GetForUpdate(id string) (*entity.Producto, error) {
	row := r.db.QueryRow(context.Background(),
		`SELECT `+productoColumns+` FROM productos WHERE id = $1 FOR UPDATE`, id)
	return scanProducto(row)
}

// Update actualiza todos los campos editables del producto.
func (r *ProductoRepository) Update(producto *entity.Producto) error {
	ctx := context.Background()
	tag, err := r.db.Exec(ctx, `
		UPDATE productos SET
			nombre = $2, codigo = $3, descripcion = $4, proveedor = $5, lote = $6,
			categoria = $7, unidad = $8,
			cantidad = $9, unidad_compra = $10, piezas_por_unidad = $11,
			cantidad_piezas = $12, stock_minimo = $13,
			costo = $14, margen = $15, aplica_iva = $16, precio = $17,
			fecha_ingreso = $18, caducidad = $19, imagen = $20,
			ultima_modificacion = $21
		WHERE id = $1`,
		producto.ID, producto.Nombre, producto.Codigo, producto.Descripcion,
		producto.Proveedor, producto.Lote, producto.Categoria, producto.Unidad,
		producto.Cantidad, producto.UnidadCompra, producto.PiezasPorUnidad,
		producto.CantidadPiezas, producto.StockMinimo,
		producto.Costo, producto.Margen, producto.AplicaIVA, producto.Precio,
		producto.FechaIngreso, producto.Caducidad, producto.Imagen, producto.UltimaModificacion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("actualizar producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock persiste únicamente los campos de stock del producto.
func (r *ProductoRepository) UpdateStock(producto *entity.Producto) error {
	tag, err := r.db.Exec(context.Background(), `
		UPDATE productos SET
			cantidad = $2, cantidad_piezas = $3, ultima_modificacion = $4
		WHERE id = $1`,
		producto.ID, producto.Cantidad, producto.CantidadPiezas, producto.UltimaModificacion,
	)
	if err != nil {
		return fmt.Errorf("actualizar stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos ordenados por última modificación descendente.
// q filtra por nombre, código o categoría sin distinguir mayúsculas ni acentos.
func (r *ProductoRepository) List(q string, limit, offset int) ([]*entity.Producto, error) {
	ctx := context.Background()

	query := `SELECT ` + productoColumns + ` FROM productos`
	args := []any{}
	if q != "" {
		query += `
		WHERE unaccent(nombre) ILIKE unaccent('%' || $1 || '%')
		   OR unaccent(codigo) ILIKE unaccent('%' || $1 || '%')
		   OR unaccent(categoria) ILIKE unaccent('%' || $1 || '%')`
		args = append(args, q)
	}
	query += fmt.Sprintf(`
		ORDER BY ultima_modificacion DESC
		LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	defer rows.Close()

	productos := make([]*entity.Producto, 0)
	for rows.Next() {
		p, err := scanProducto(rows)
		if err != nil {
			return nil, err
		}
		productos = append(productos, p)
	}
	return productos, rows.Err()
}

// Delete elimina un producto; los movimientos asociados caen en cascada.
func (r *ProductoRepository) Delete(id string) error {
	tag, err := r.db.Exec(context.Background(), `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("eliminar producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
