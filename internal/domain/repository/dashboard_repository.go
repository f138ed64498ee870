package repository

import (
	"context"
	"time"

	"github.com/clinicadelvalle/ops-api/internal/domain/entity"
)

// DashboardRepository define las consultas de lectura para el resumen por rol.
// Las implementaciones son read-only (no modifican datos).
type DashboardRepository interface {
	// ListBajoStock devuelve los productos en o por debajo de su stock mínimo.
	ListBajoStock(ctx context.Context, limit int) ([]*entity.Producto, error)
	// ListPorCaducar devuelve los productos que caducan dentro de la ventana de
	// días indicada, ordenados por caducidad ascendente.
	ListPorCaducar(ctx context.Context, dias, limit int) ([]*entity.Producto, error)
	// ContarMovimientosDelDia cuenta entradas y salidas registradas el día dado.
	ContarMovimientosDelDia(ctx context.Context, dia time.Time) (entradas, salidas int64, err error)
	// ContarRegistrosPendientes cuenta los registros de farmacia sin resolver.
	ContarRegistrosPendientes(ctx context.Context) (int64, error)
	// ListCirugiasDelDia devuelve las cirugías programadas para el día dado.
	ListCirugiasDelDia(ctx context.Context, dia time.Time) ([]*entity.Cirugia, error)
	// ContarCirugiasPorEstado cuenta cirugías agrupadas por estado; si dia es nil
	// cuenta sobre todo el histórico.
	ContarCirugiasPorEstado(ctx context.Context, dia *time.Time) (map[string]int64, error)
}
