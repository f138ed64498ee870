package entity

import "time"

// Tipos de movimiento de inventario. Se conservan los literales del sistema
// original porque ya existen en datos históricos.
const (
	MovimientoEntrada = "entrada"
	MovimientoSalida  = "salida"
)

// Movimiento es un asiento del libro de movimientos de stock.
// Cantidad SIEMPRE en piezas, positiva; el signo lo da Tipo.
type Movimiento struct {
	ID         string
	ProductoID string
	Tipo       string // entrada | salida
	Cantidad   int64  // en piezas
	Fecha      time.Time
	Nota       string
	CreadoPor  string // UserID
}

// MovimientoConProducto incluye el nombre y código del producto para listados.
type MovimientoConProducto struct {
	Movimiento
	ProductoNombre string
	ProductoCodigo string
}
