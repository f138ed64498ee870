package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicadelvalle/ops-api/internal/domain/entity"
	"github.com/clinicadelvalle/ops-api/internal/domain/repository"
)

// Ensure DashboardRepository implements the interface.
var _ repository.DashboardRepository = (*DashboardRepository)(nil)

// DashboardRepository implementa las consultas de lectura del resumen por rol.
type DashboardRepository struct {
	db Querier
}

// NewDashboardRepository construye el repositorio.
func NewDashboardRepository(db Querier) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// ListBajoStock devuelve los productos en o por debajo de su stock mínimo.
func (r *DashboardRepository) ListBajoStock(ctx context.Context, limit int) ([]*entity.Producto, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+productoColumns+`
		FROM productos
		WHERE cantidad <= stock_minimo
		ORDER BY cantidad ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("listar bajo stock: %w", err)
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

// ListPorCaducar devuelve los productos que caducan dentro de la ventana de días.
func (r *DashboardRepository) ListPorCaducar(ctx context.Context, dias, limit int) ([]*entity.Producto, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+productoColumns+`
		FROM productos
		WHERE caducidad IS NOT NULL
		  AND caducidad <= CURRENT_DATE + $1::int
		ORDER BY caducidad ASC
		LIMIT $2`, dias, limit)
	if err != nil {
		return nil, fmt.Errorf("listar por caducar: %w", err)
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

// ContarMovimientosDelDia cuenta entradas y salidas registradas el día dado.
func (r *DashboardRepository) ContarMovimientosDelDia(ctx context.Context, dia time.Time) (int64, int64, error) {
	inicio := time.Date(dia.Year(), dia.Month(), dia.Day(), 0, 0, 0, 0, dia.Location())
	fin := inicio.AddDate(0, 0, 1)

	var entradas, salidas int64
	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE tipo = 'entrada'),
			COUNT(*) FILTER (WHERE tipo = 'salida')
		FROM movimientos
		WHERE fecha >= $1 AND fecha < $2`, inicio, fin,
	).Scan(&entradas, &salidas)
	if err != nil {
		return 0, 0, fmt.Errorf("contar movimientos del dia: %w", err)
	}
	return entradas, salidas, nil
}

// ContarRegistrosPendientes cuenta los registros de farmacia sin resolver.
func (r *DashboardRepository) ContarRegistrosPendientes(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM farmacia_registros WHERE estado = $1`,
		entity.RegistroEstadoPendiente,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("contar registros pendientes: %w", err)
	}
	return total, nil
}

// ListCirugiasDelDia devuelve las cirugías programadas para el día dado.
func (r *DashboardRepository) ListCirugiasDelDia(ctx context.Context, dia time.Time) ([]*entity.Cirugia, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+cirugiaColumns+`
		FROM cirugias
		WHERE fecha_programada = $1
		ORDER BY hora ASC`, dia)
	if err != nil {
		return nil, fmt.Errorf("listar cirugias del dia: %w", err)
	}
	defer rows.Close()

	cirugias := make([]*entity.Cirugia, 0)
	for rows.Next() {
		c, err := scanCirugia(rows)
		if err != nil {
			return nil, err
		}
		cirugias = append(cirugias, c)
	}
	return cirugias, rows.Err()
}

// ContarCirugiasPorEstado cuenta cirugías agrupadas por estado.
func (r *DashboardRepository) ContarCirugiasPorEstado(ctx context.Context, dia *time.Time) (map[string]int64, error) {
	query := `SELECT estado, COUNT(*) FROM cirugias`
	args := []any{}
	if dia != nil {
		query += ` WHERE fecha_programada = $1`
		args = append(args, *dia)
	}
	query += ` GROUP BY estado`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("contar cirugias por estado: %w", err)
	}
	defer rows.Close()

	conteos := make(map[string]int64)
	for rows.Next() {
		var estado string
		var total int64
		if err := rows.Scan(&estado, &total); err != nil {
			return nil, fmt.Errorf("scan conteo: %w", err)
		}
		conteos[estado] = total
	}
	return conteos, rows.Err()
}
