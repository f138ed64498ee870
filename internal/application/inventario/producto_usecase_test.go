package inventario_test

import (
	"errors"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicadelvalle/ops-api/internal/application/dto"
	"github.com/clinicadelvalle/ops-api/internal/application/inventario"
	"github.com/clinicadelvalle/ops-api/internal/domain"
	"github.com/clinicadelvalle/ops-api/internal/domain/entity"
)

type fakeFotoStorage struct{}

func (f *fakeFotoStorage) Guardar(nombreOriginal string, r io.Reader) (string, error) {
	_, _ = io.Copy(io.Discard, r)
	return "uuid_" + nombreOriginal, nil
}

func altaRequest(codigo string) dto.CreateProductoRequest {
	return dto.CreateProductoRequest{
		Nombre:          "Paracetamol 500mg",
		Codigo:          codigo,
		Unidad:          "pieza",
		Cantidad:        2,
		PiezasPorUnidad: 50,
		Costo:           decimal.RequireFromString("100"),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

// Un código ya existente se rechaza como duplicado.
func TestCreateProducto_CodigoDuplicado(t *testing.T) {
	repo := &fakeProductoRepo{producto: &entity.Producto{ID: "p1", Codigo: "PAR-500"}}
	uc := inventario.NewProductoUseCase(repo, &fakeFotoStorage{})

	_, err := uc.Create(altaRequest("PAR-500"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Un fallo real de la consulta de código no debe confundirse con "no existe":
// se propaga, no se sigue con el alta.
func TestCreateProducto_ErrorDeConsulta(t *testing.T) {
	repo := &fakeProductoRepo{codigoErr: errors.New("conexión perdida")}
	uc := inventario.NewProductoUseCase(repo, &fakeFotoStorage{})

	_, err := uc.Create(altaRequest("PAR-500"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDuplicate)
	assert.Contains(t, err.Error(), "conexión perdida")
}

// Con el código libre el alta procede y deriva las piezas.
func TestCreateProducto_AltaNormal(t *testing.T) {
	repo := &fakeProductoRepo{}
	uc := inventario.NewProductoUseCase(repo, &fakeFotoStorage{})

	out, err := uc.Create(altaRequest("PAR-500"))
	require.NoError(t, err)
	assert.Equal(t, int64(100), out.CantidadPiezas, "2 cajas × 50 piezas")
	assert.True(t, out.Precio.Equal(decimal.RequireFromString("135")),
		"sin precio explícito se usa el sugerido, got %s", out.Precio)
}
