package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicadelvalle/ops-api/internal/domain"
	"github.com/clinicadelvalle/ops-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// SincronizarPiezas
// ──────────────────────────────────────────────────────────────────────────────

// Producto por caja: piezas = cantidad * piezas_por_unidad.
func TestSincronizarPiezas_PorCaja(t *testing.T) {
	p := &entity.Producto{Cantidad: 3, PiezasPorUnidad: 50}
	p.SincronizarPiezas()
	assert.Equal(t, int64(150), p.CantidadPiezas)
}

// Producto por pieza (piezas_por_unidad = 0): piezas = cantidad.
func TestSincronizarPiezas_PorPieza(t *testing.T) {
	p := &entity.Producto{Cantidad: 7, PiezasPorUnidad: 0}
	p.SincronizarPiezas()
	assert.Equal(t, int64(7), p.CantidadPiezas)
}

// ──────────────────────────────────────────────────────────────────────────────
// AplicarMovimiento
// ──────────────────────────────────────────────────────────────────────────────

// Entrada: suma piezas y reconcilia la cantidad legacy con división entera.
func TestAplicarMovimiento_Entrada(t *testing.T) {
	ahora := time.Now()
	p := &entity.Producto{Cantidad: 2, PiezasPorUnidad: 50, CantidadPiezas: 100}

	require.NoError(t, p.AplicarMovimiento(entity.MovimientoEntrada, 75, ahora))

	assert.Equal(t, int64(175), p.CantidadPiezas)
	// 175 / 50 = 3 (división entera: las piezas sueltas no cuentan como caja)
	assert.Equal(t, int64(3), p.Cantidad)
	assert.Equal(t, ahora, p.UltimaModificacion)
}

// Salida: resta piezas cuando hay stock suficiente.
func TestAplicarMovimiento_Salida(t *testing.T) {
	p := &entity.Producto{Cantidad: 2, PiezasPorUnidad: 50, CantidadPiezas: 100}

	require.NoError(t, p.AplicarMovimiento(entity.MovimientoSalida, 30, time.Now()))

	assert.Equal(t, int64(70), p.CantidadPiezas)
	assert.Equal(t, int64(1), p.Cantidad)
}

// Salida mayor al stock disponible → ErrStockInsuficiente y sin cambios.
func TestAplicarMovimiento_SalidaSinStock(t *testing.T) {
	p := &entity.Producto{Cantidad: 1, PiezasPorUnidad: 50, CantidadPiezas: 50}

	err := p.AplicarMovimiento(entity.MovimientoSalida, 51, time.Now())

	assert.ErrorIs(t, err, domain.ErrStockInsuficiente)
	assert.Equal(t, int64(50), p.CantidadPiezas, "el stock no debe modificarse")
	assert.Equal(t, int64(1), p.Cantidad)
}

// Salida exacta del stock completo deja el producto en cero.
func TestAplicarMovimiento_SalidaTotal(t *testing.T) {
	p := &entity.Producto{Cantidad: 1, PiezasPorUnidad: 50, CantidadPiezas: 50}

	require.NoError(t, p.AplicarMovimiento(entity.MovimientoSalida, 50, time.Now()))

	assert.Equal(t, int64(0), p.CantidadPiezas)
	assert.Equal(t, int64(0), p.Cantidad)
}

// Producto manejado por pieza: cantidad legacy sigue a las piezas una a una.
func TestAplicarMovimiento_ProductoPorPieza(t *testing.T) {
	p := &entity.Producto{Cantidad: 10, PiezasPorUnidad: 0, CantidadPiezas: 10}

	require.NoError(t, p.AplicarMovimiento(entity.MovimientoEntrada, 5, time.Now()))

	assert.Equal(t, int64(15), p.CantidadPiezas)
	assert.Equal(t, int64(15), p.Cantidad)
}

// Cantidad cero o negativa → ErrInvalidInput.
func TestAplicarMovimiento_CantidadInvalida(t *testing.T) {
	p := &entity.Producto{CantidadPiezas: 10}

	assert.ErrorIs(t, p.AplicarMovimiento(entity.MovimientoEntrada, 0, time.Now()), domain.ErrInvalidInput)
	assert.ErrorIs(t, p.AplicarMovimiento(entity.MovimientoSalida, -5, time.Now()), domain.ErrInvalidInput)
}

// Tipo desconocido → ErrInvalidInput.
func TestAplicarMovimiento_TipoDesconocido(t *testing.T) {
	p := &entity.Producto{CantidadPiezas: 10}
	assert.ErrorIs(t, p.AplicarMovimiento("ajuste", 1, time.Now()), domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Alertas
// ──────────────────────────────────────────────────────────────────────────────

func TestBajoStock(t *testing.T) {
	assert.True(t, (&entity.Producto{Cantidad: 2, StockMinimo: 5}).BajoStock())
	assert.True(t, (&entity.Producto{Cantidad: 5, StockMinimo: 5}).BajoStock(), "igual al mínimo también alerta")
	assert.False(t, (&entity.Producto{Cantidad: 6, StockMinimo: 5}).BajoStock())
}

func TestPorCaducar(t *testing.T) {
	ahora := time.Now()

	pronto := ahora.AddDate(0, 0, 10)
	lejos := ahora.AddDate(0, 0, 60)

	assert.True(t, (&entity.Producto{Caducidad: &pronto}).PorCaducar(ahora, 30))
	assert.False(t, (&entity.Producto{Caducidad: &lejos}).PorCaducar(ahora, 30))
	assert.False(t, (&entity.Producto{}).PorCaducar(ahora, 30), "sin caducidad no alerta")
}
