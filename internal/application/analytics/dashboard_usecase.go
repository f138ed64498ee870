// Package analytics contiene el caso de uso del dashboard por rol.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicadelvalle/ops-api/internal/application/dto"
	"github.com/clinicadelvalle/ops-api/internal/domain/entity"
	"github.com/clinicadelvalle/ops-api/internal/domain/repository"
)

const (
	dashboardAlertasMax  = 10 // productos por widget de alertas
	dashboardCaducarDias = 30 // ventana de caducidad próxima
)

// DashboardUseCase construye el resumen operativo del día según el rol.
//
// Fuente de datos: DashboardRepository (consultas read-only).
type DashboardUseCase struct {
	repo repository.DashboardRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// GetResumen arma el DashboardResumenDTO para el rol indicado:
//   - farmacia: bloque de inventario (bajo stock, por caducar, movimientos de
//     hoy, registros pendientes).
//   - quirofano: bloque de cirugías (las de hoy y conteo por estado).
//   - admin: ambos bloques.
//
// Las consultas de cada bloque corren en paralelo.
func (uc *DashboardUseCase) GetResumen(ctx context.Context, rol string) (*dto.DashboardResumenDTO, error) {
	now := time.Now()
	hoy := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	out := &dto.DashboardResumenDTO{
		Rol:        rol,
		FechaLabel: mesLabel(now),
	}

	quiereInventario := rol == entity.RoleAdmin || rol == entity.RoleFarmacia
	quiereCirugias := rol == entity.RoleAdmin || rol == entity.RoleQuirofano

	invCh := make(chan invResult, 1)
	cirCh := make(chan cirResult, 1)

	if quiereInventario {
		go func() { invCh <- uc.resumenInventario(ctx, hoy) }()
	}
	if quiereCirugias {
		go func() { cirCh <- uc.resumenCirugias(ctx, hoy) }()
	}

	if quiereInventario {
		res := <-invCh
		if res.err != nil {
			return nil, fmt.Errorf("dashboard: inventario: %w", res.err)
		}
		out.Inventario = res.bloque
	}
	if quiereCirugias {
		res := <-cirCh
		if res.err != nil {
			return nil, fmt.Errorf("dashboard: cirugías: %w", res.err)
		}
		out.Cirugias = res.bloque
	}

	return out, nil
}

type invResult struct {
	bloque *dto.InventarioResumenDTO
	err    error
}

type cirResult struct {
	bloque *dto.CirugiaResumenDTO
	err    error
}

// resumenInventario corre las 4 consultas del bloque de farmacia en paralelo.
func (uc *DashboardUseCase) resumenInventario(ctx context.Context, hoy time.Time) invResult {
	type bajoStockR struct {
		productos []*entity.Producto
		err       error
	}
	type caducarR struct {
		productos []*entity.Producto
		err       error
	}
	type movsR struct {
		entradas, salidas int64
		err               error
	}
	type pendR struct {
		total int64
		err   error
	}

	bajoCh := make(chan bajoStockR, 1)
	cadCh := make(chan caducarR, 1)
	movCh := make(chan movsR, 1)
	penCh := make(chan pendR, 1)

	go func() {
		p, err := uc.repo.ListBajoStock(ctx, dashboardAlertasMax)
		bajoCh <- bajoStockR{p, err}
	}()
	go func() {
		p, err := uc.repo.ListPorCaducar(ctx, dashboardCaducarDias, dashboardAlertasMax)
		cadCh <- caducarR{p, err}
	}()
	go func() {
		e, s, err := uc.repo.ContarMovimientosDelDia(ctx, hoy)
		movCh <- movsR{e, s, err}
	}()
	go func() {
		n, err := uc.repo.ContarRegistrosPendientes(ctx)
		penCh <- pendR{n, err}
	}()

	bajo := <-bajoCh
	cad := <-cadCh
	mov := <-movCh
	pen := <-penCh

	for _, err := range []error{bajo.err, cad.err, mov.err, pen.err} {
		if err != nil {
			return invResult{err: err}
		}
	}

	return invResult{bloque: &dto.InventarioResumenDTO{
		BajoStock:           toAlertas(bajo.productos),
		PorCaducar:          toAlertas(cad.productos),
		EntradasHoy:         mov.entradas,
		SalidasHoy:          mov.salidas,
		RegistrosPendientes: pen.total,
	}}
}

// resumenCirugias corre las 2 consultas del bloque de quirófano en paralelo.
func (uc *DashboardUseCase) resumenCirugias(ctx context.Context, hoy time.Time) cirResult {
	type hoyR struct {
		cirugias []*entity.Cirugia
		err      error
	}
	type estadoR struct {
		conteo map[string]int64
		err    error
	}

	hoyCh := make(chan hoyR, 1)
	estCh := make(chan estadoR, 1)

	go func() {
		c, err := uc.repo.ListCirugiasDelDia(ctx, hoy)
		hoyCh <- hoyR{c, err}
	}()
	go func() {
		m, err := uc.repo.ContarCirugiasPorEstado(ctx, &hoy)
		estCh <- estadoR{m, err}
	}()

	h := <-hoyCh
	e := <-estCh
	if h.err != nil {
		return cirResult{err: h.err}
	}
	if e.err != nil {
		return cirResult{err: e.err}
	}

	items := make([]dto.CirugiaResponse, 0, len(h.cirugias))
	for _, c := range h.cirugias {
		items = append(items, dto.CirugiaResponse{
			ID:              c.ID,
			PacienteNombre:  c.PacienteNombre,
			Procedimiento:   c.Procedimiento,
			Especialidad:    c.Especialidad,
			Cirujano:        c.Cirujano,
			Estado:          c.Estado,
			FechaProgramada: c.FechaProgramada.Format("2006-01-02"),
			Hora:            c.Hora,
			CreatedAt:       c.CreatedAt,
			UpdatedAt:       c.UpdatedAt,
		})
	}
	return cirResult{bloque: &dto.CirugiaResumenDTO{
		CirugiasHoy: items,
		PorEstado:   e.conteo,
	}}
}

func toAlertas(productos []*entity.Producto) []dto.ProductoAlertaDTO {
	out := make([]dto.ProductoAlertaDTO, 0, len(productos))
	for _, p := range productos {
		a := dto.ProductoAlertaDTO{
			ProductoID:     p.ID,
			Codigo:         p.Codigo,
			Nombre:         p.Nombre,
			CantidadPiezas: p.CantidadPiezas,
			Cantidad:       p.Cantidad,
			StockMinimo:    p.StockMinimo,
		}
		if p.Caducidad != nil {
			a.Caducidad = p.Caducidad.Format("2006-01-02")
		}
		out = append(out, a)
	}
	return out
}

// mesLabel devuelve una etiqueta legible del mes, ej: "Agosto 2026".
func mesLabel(t time.Time) string {
	meses := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", meses[t.Month()-1], t.Year())
}
