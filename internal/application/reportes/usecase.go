// Package reportes contiene los casos de uso de reportes PDF: corte de
// inventario y programa diario de quirófano.
package reportes

import (
	"context"
	"time"

	"github.com/clinicadelvalle/ops-api/internal/domain"
	"github.com/clinicadelvalle/ops-api/internal/domain/entity"
	"github.com/clinicadelvalle/ops-api/internal/domain/repository"
)

const fechaLayout = "2006-01-02"

// Tope de filas del corte de inventario; suficiente para una farmacia de clínica.
const reporteProductosMax = 1000

// ReporteGenerator genera los PDF. Lo implementa infrastructure/pdf (Maroto).
type ReporteGenerator interface {
	GenerarInventario(ctx context.Context, productos []*entity.Producto, corte time.Time) ([]byte, error)
	GenerarProgramaCirugias(ctx context.Context, fecha time.Time, cirugias []*entity.Cirugia) ([]byte, error)
}

// ReportesUseCase arma los datos y delega el render al generador.
type ReportesUseCase struct {
	productoRepo repository.ProductoRepository
	cirugiaRepo  repository.CirugiaRepository
	generator    ReporteGenerator
}

// NewReportesUseCase construye el caso de uso.
func NewReportesUseCase(
	productoRepo repository.ProductoRepository,
	cirugiaRepo repository.CirugiaRepository,
	generator ReporteGenerator,
) *ReportesUseCase {
	return &ReportesUseCase{
		productoRepo: productoRepo,
		cirugiaRepo:  cirugiaRepo,
		generator:    generator,
	}
}

// Inventario genera el corte de inventario en PDF (todos los productos, con
// marcas de bajo stock y caducidad próxima).
func (uc *ReportesUseCase) Inventario(ctx context.Context) ([]byte, error) {
	productos, err := uc.productoRepo.List("", reporteProductosMax, 0)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerarInventario(ctx, productos, time.Now())
}

// ProgramaCirugias genera el programa de quirófano en PDF para un día.
// fecha en formato "2006-01-02"; vacío = hoy.
func (uc *ReportesUseCase) ProgramaCirugias(ctx context.Context, fecha string) ([]byte, error) {
	dia := time.Now()
	if fecha != "" {
		f, err := time.Parse(fechaLayout, fecha)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		dia = f
	}
	dia = time.Date(dia.Year(), dia.Month(), dia.Day(), 0, 0, 0, 0, dia.Location())

	cirugias, err := uc.cirugiaRepo.List(repository.CirugiaFiltro{Fecha: &dia, Limit: 200})
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerarProgramaCirugias(ctx, dia, cirugias)
}
