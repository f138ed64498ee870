package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/clinicadelvalle/ops-api/internal/domain"
)

// Producto representa un insumo del inventario de la farmacia.
//
// El stock vive en dos campos que deben mantenerse coherentes:
//   - CantidadPiezas: inventario real, siempre en piezas sueltas.
//   - Cantidad: campo legacy en unidades de compra (cajas), conservado porque
//     reportes y pantallas antiguas todavía lo leen.
//
// La conversión entre ambos es responsabilidad de los métodos de esta entidad;
// ningún otro componente debe recalcularla por su cuenta.
type Producto struct {
	ID          string
	Nombre      string
	Codigo      string // código único de producto
	Descripcion string
	Proveedor   string // marca/proveedor
	Lote        string
	Categoria   string
	Unidad      string // unidad de despacho, ej. "pieza"

	// Stock
	Cantidad        int64  // legacy: unidades de compra
	UnidadCompra    string // ej. "caja"
	PiezasPorUnidad int64  // ej. 50; 0 = el producto se maneja por pieza
	CantidadPiezas  int64  // inventario real en piezas
	StockMinimo     int64

	// Precios
	Costo     decimal.Decimal
	Margen    decimal.Decimal
	AplicaIVA bool
	Precio    decimal.Decimal

	FechaIngreso *time.Time // fecha de alta en inventario
	Caducidad    *time.Time

	Imagen             string // nombre de archivo en uploads
	UltimaModificacion time.Time
}

// SincronizarPiezas recalcula CantidadPiezas a partir del campo legacy Cantidad.
// Se usa al crear o editar un producto, donde el formulario captura unidades de compra.
func (p *Producto) SincronizarPiezas() {
	if p.PiezasPorUnidad > 0 {
		p.CantidadPiezas = p.Cantidad * p.PiezasPorUnidad
		return
	}
	p.CantidadPiezas = p.Cantidad
}

// AplicarMovimiento ajusta el stock en piezas según el tipo de movimiento y
// reconcilia el campo legacy Cantidad.
//
// Reglas:
//   - cantidad siempre en piezas y > 0.
//   - salida exige CantidadPiezas >= cantidad.
//   - Cantidad legacy = CantidadPiezas / PiezasPorUnidad (división entera)
//     cuando el producto se maneja por unidad de compra.
func (p *Producto) AplicarMovimiento(tipo string, cantidad int64, ahora time.Time) error {
	if cantidad <= 0 {
		return domain.ErrInvalidInput
	}
	switch tipo {
	case MovimientoEntrada:
		p.CantidadPiezas += cantidad
	case MovimientoSalida:
		if p.CantidadPiezas < cantidad {
			return domain.ErrStockInsuficiente
		}
		p.CantidadPiezas -= cantidad
	default:
		return domain.ErrInvalidInput
	}

	if p.PiezasPorUnidad > 0 {
		p.Cantidad = p.CantidadPiezas / p.PiezasPorUnidad
	} else {
		p.Cantidad = p.CantidadPiezas
	}
	p.UltimaModificacion = ahora
	return nil
}

// BajoStock indica si el producto está en o por debajo de su stock mínimo.
// El mínimo se captura en unidades de compra, igual que el campo legacy.
func (p *Producto) BajoStock() bool {
	return p.Cantidad <= p.StockMinimo
}

// PorCaducar indica si el producto caduca dentro de la ventana de días indicada.
func (p *Producto) PorCaducar(ahora time.Time, dias int) bool {
	if p.Caducidad == nil {
		return false
	}
	limite := ahora.AddDate(0, 0, dias)
	return !p.Caducidad.After(limite)
}
