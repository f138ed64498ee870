// Package pdf genera los reportes en PDF de la clínica: corte de inventario
// de farmacia y programa diario de quirófano.
//
// Layout del corte de inventario (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Clínica del Valle  │  Corte de inventario + Fecha  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Producto | Cant | Piezas | Mínimo | Cad.   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PIE: total de productos y alertas de stock                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/clinicadelvalle/ops-api/internal/application/reportes"
	"github.com/clinicadelvalle/ops-api/internal/domain/entity"
)

// Ventana de caducidad que se marca en el corte de inventario.
const caducidadDias = 30

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 90, Blue: 84}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// Ensure MarotoReporteGenerator implements reportes.ReporteGenerator.
var _ reportes.ReporteGenerator = (*MarotoReporteGenerator)(nil)

// MarotoReporteGenerator implementa reportes.ReporteGenerator usando Maroto v2.
type MarotoReporteGenerator struct {
	clinica string // nombre que encabeza los reportes
}

// NewMarotoReporteGenerator construye el generador.
func NewMarotoReporteGenerator(clinica string) *MarotoReporteGenerator {
	return &MarotoReporteGenerator{clinica: clinica}
}

func (g *MarotoReporteGenerator) nuevoDocumento(titulo string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(titulo, true).
		WithAuthor(g.clinica, true).
		Build()
	return maroto.New(cfg)
}

// ── Corte de inventario ───────────────────────────────────────────────────────

// GenerarInventario genera el corte de inventario y devuelve los bytes del PDF.
func (g *MarotoReporteGenerator) GenerarInventario(
	_ context.Context,
	productos []*entity.Producto,
	corte time.Time,
) ([]byte, error) {
	m := g.nuevoDocumento("Corte de inventario")

	m.AddRows(g.headerRow("Corte de inventario", corte.Format("02/01/2006 15:04")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(inventarioHeaderRow())
	bajoStock := 0
	for _, p := range productos {
		if p.BajoStock() {
			bajoStock++
		}
		m.AddRows(inventarioDetailRow(p, corte))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(
		col.New(12).Add(
			text.New(
				fmt.Sprintf("%d productos, %d en o bajo stock mínimo", len(productos), bajoStock),
				props.Text{Size: 8, Color: colorGray, Top: 2},
			),
		),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar corte de inventario: %w", err)
	}
	return doc.GetBytes(), nil
}

func inventarioHeaderRow() core.Row {
	estilo := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}
	return row.New(7).Add(
		col.New(2).Add(text.New("Código", estilo)),
		col.New(4).Add(text.New("Producto", estilo)),
		col.New(1).Add(text.New("Cant.", estiloDerecha(estilo))),
		col.New(2).Add(text.New("Piezas", estiloDerecha(estilo))),
		col.New(1).Add(text.New("Mínimo", estiloDerecha(estilo))),
		col.New(2).Add(text.New("Caducidad", estilo)),
	)
}

func inventarioDetailRow(p *entity.Producto, corte time.Time) core.Row {
	estilo := props.Text{Size: 8, Top: 1}
	if p.BajoStock() || p.PorCaducar(corte, caducidadDias) {
		estilo.Color = colorAlert
	}

	caducidad := "—"
	if p.Caducidad != nil {
		caducidad = p.Caducidad.Format("02/01/2006")
	}

	return row.New(6).Add(
		col.New(2).Add(text.New(p.Codigo, estilo)),
		col.New(4).Add(text.New(p.Nombre, estilo)),
		col.New(1).Add(text.New(fmt.Sprintf("%d", p.Cantidad), estiloDerecha(estilo))),
		col.New(2).Add(text.New(fmt.Sprintf("%d", p.CantidadPiezas), estiloDerecha(estilo))),
		col.New(1).Add(text.New(fmt.Sprintf("%d", p.StockMinimo), estiloDerecha(estilo))),
		col.New(2).Add(text.New(caducidad, estilo)),
	)
}

// ── Programa de quirófano ─────────────────────────────────────────────────────

// GenerarProgramaCirugias genera el programa de quirófano de un día.
func (g *MarotoReporteGenerator) GenerarProgramaCirugias(
	_ context.Context,
	fecha time.Time,
	cirugias []*entity.Cirugia,
) ([]byte, error) {
	m := g.nuevoDocumento("Programa de quirófano")

	m.AddRows(g.headerRow("Programa de quirófano", fecha.Format("02/01/2006")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if len(cirugias) == 0 {
		m.AddRows(row.New(10).Add(
			col.New(12).Add(
				text.New("Sin cirugías programadas para este día", props.Text{
					Size: 10, Color: colorGray, Top: 3, Align: align.Center,
				}),
			),
		))
	} else {
		m.AddRows(cirugiaHeaderRow())
		for _, c := range cirugias {
			m.AddRows(cirugiaDetailRow(c))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar programa de quirófano: %w", err)
	}
	return doc.GetBytes(), nil
}

func cirugiaHeaderRow() core.Row {
	estilo := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}
	return row.New(7).Add(
		col.New(1).Add(text.New("Hora", estilo)),
		col.New(3).Add(text.New("Paciente", estilo)),
		col.New(3).Add(text.New("Procedimiento", estilo)),
		col.New(2).Add(text.New("Cirujano", estilo)),
		col.New(2).Add(text.New("Anestesiólogo", estilo)),
		col.New(1).Add(text.New("Estado", estilo)),
	)
}

func cirugiaDetailRow(c *entity.Cirugia) core.Row {
	estilo := props.Text{Size: 8, Top: 1}
	if c.Estado == entity.CirugiaCancelada {
		estilo.Color = colorGray
	}
	return row.New(6).Add(
		col.New(1).Add(text.New(c.Hora, estilo)),
		col.New(3).Add(text.New(c.PacienteNombre, estilo)),
		col.New(3).Add(text.New(c.Procedimiento, estilo)),
		col.New(2).Add(text.New(c.Cirujano, estilo)),
		col.New(2).Add(text.New(c.Anestesiologo, estilo)),
		col.New(1).Add(text.New(c.Estado, estilo)),
	)
}

// ── Secciones comunes ─────────────────────────────────────────────────────────

// headerRow: nombre de la clínica (izq) y título del reporte + fecha (der).
func (g *MarotoReporteGenerator) headerRow(titulo, fecha string) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.clinica, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(titulo, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New(fecha, props.Text{
				Size: 9, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func estiloDerecha(t props.Text) props.Text {
	t.Align = align.Right
	return t
}
