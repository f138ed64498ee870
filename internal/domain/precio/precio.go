// Package precio implementa el cálculo de precio sugerido de venta
// (servicio de dominio, sin dependencias de infraestructura).
package precio

import "github.com/shopspring/decimal"

// Parámetros comerciales de la farmacia.
var (
	// MargenDefault margen de utilidad por defecto (35%).
	MargenDefault = decimal.NewFromFloat(0.35)
	// TasaIVA tasa de IVA aplicable a productos gravados (16%).
	TasaIVA = decimal.NewFromFloat(0.16)
)

// Sugerido calcula el precio de venta sugerido:
//
//	precio = costo * (1 + margen)          [* (1 + TasaIVA) si aplicaIVA]
//
// redondeado a 2 decimales. Un margen negativo se sustituye por MargenDefault.
func Sugerido(costo, margen decimal.Decimal, aplicaIVA bool) decimal.Decimal {
	if margen.IsNegative() {
		margen = MargenDefault
	}
	p := costo.Mul(decimal.NewFromInt(1).Add(margen))
	if aplicaIVA {
		p = p.Mul(decimal.NewFromInt(1).Add(TasaIVA))
	}
	return p.Round(2)
}
