package precio_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/clinicadelvalle/ops-api/internal/domain/precio"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

// costo 100, margen 35%, sin IVA → 135.00
func TestSugerido_SinIVA(t *testing.T) {
	got := precio.Sugerido(d("100"), d("0.35"), false)
	assert.True(t, d("135").Equal(got), "esperado 135, obtenido %s", got)
}

// costo 100, margen 35%, con IVA 16% → 156.60
func TestSugerido_ConIVA(t *testing.T) {
	got := precio.Sugerido(d("100"), d("0.35"), true)
	assert.True(t, d("156.6").Equal(got), "esperado 156.60, obtenido %s", got)
}

// El resultado se redondea a 2 decimales.
func TestSugerido_RedondeaADosDecimales(t *testing.T) {
	// 33.33 * 1.35 = 44.9955 → 45.00
	got := precio.Sugerido(d("33.33"), d("0.35"), false)
	assert.True(t, d("45").Equal(got), "esperado 45.00, obtenido %s", got)

	// 10.01 * 1.35 * 1.16 = 15.675660 → 15.68
	got = precio.Sugerido(d("10.01"), d("0.35"), true)
	assert.True(t, d("15.68").Equal(got), "esperado 15.68, obtenido %s", got)
}

// Un margen negativo se sustituye por el margen por defecto (35%).
func TestSugerido_MargenNegativoUsaDefault(t *testing.T) {
	got := precio.Sugerido(d("200"), d("-1"), false)
	assert.True(t, d("270").Equal(got), "esperado 270 (200 * 1.35), obtenido %s", got)
}

// Margen cero es válido: precio = costo (más IVA si aplica).
func TestSugerido_MargenCero(t *testing.T) {
	got := precio.Sugerido(d("50"), d("0"), false)
	assert.True(t, d("50").Equal(got))

	got = precio.Sugerido(d("50"), d("0"), true)
	assert.True(t, d("58").Equal(got), "esperado 58 (50 * 1.16), obtenido %s", got)
}

// Costo cero produce precio cero.
func TestSugerido_CostoCero(t *testing.T) {
	got := precio.Sugerido(d("0"), d("0.35"), true)
	assert.True(t, got.IsZero())
}
