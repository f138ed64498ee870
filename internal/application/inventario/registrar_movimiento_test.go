package inventario_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicadelvalle/ops-api/internal/application/dto"
	"github.com/clinicadelvalle/ops-api/internal/application/inventario"
	"github.com/clinicadelvalle/ops-api/internal/domain"
	"github.com/clinicadelvalle/ops-api/internal/domain/entity"
	"github.com/clinicadelvalle/ops-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductoRepo struct {
	producto  *entity.Producto
	updated   bool
	codigoErr error // fallo simulado de GetByCodigo (si nil, comportamiento normal)
}

func (f *fakeProductoRepo) Create(*entity.Producto) error { return nil }
func (f *fakeProductoRepo) GetByID(id string) (*entity.Producto, error) {
	return f.GetForUpdate(id)
}
func (f *fakeProductoRepo) GetByCodigo(codigo string) (*entity.Producto, error) {
	if f.codigoErr != nil {
		return nil, f.codigoErr
	}
	if f.producto != nil && f.producto.Codigo == codigo {
		return f.producto, nil
	}
	return nil, domain.ErrNotFound
}
func (f *fakeProductoRepo) GetForUpdate(id string) (*entity.Producto, error) {
	if f.producto == nil || f.producto.ID != id {
		return nil, domain.ErrNotFound
	}
	return f.producto, nil
}
func (f *fakeProductoRepo) Update(*entity.Producto) error { return nil }
func (f *fakeProductoRepo) UpdateStock(p *entity.Producto) error {
	f.updated = true
	return nil
}
func (f *fakeProductoRepo) List(string, int, int) ([]*entity.Producto, error) { return nil, nil }
func (f *fakeProductoRepo) Delete(string) error                               { return nil }

type fakeMovimientoRepo struct {
	creados []*entity.Movimiento
}

func (f *fakeMovimientoRepo) Create(mov *entity.Movimiento) error {
	f.creados = append(f.creados, mov)
	return nil
}
func (f *fakeMovimientoRepo) ListRecientes(limit int) ([]*entity.MovimientoConProducto, error) {
	out := make([]*entity.MovimientoConProducto, 0, len(f.creados))
	for i := len(f.creados) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, &entity.MovimientoConProducto{Movimiento: *f.creados[i]})
	}
	return out, nil
}
func (f *fakeMovimientoRepo) ListByProducto(productoID string, limit, offset int) ([]*entity.MovimientoConProducto, error) {
	out := make([]*entity.MovimientoConProducto, 0)
	for _, m := range f.creados {
		if m.ProductoID == productoID {
			out = append(out, &entity.MovimientoConProducto{Movimiento: *m})
		}
	}
	return out, nil
}

// fakeTxRunner ejecuta el callback directamente, sin transacción real.
// Si el callback falla simula el rollback descartando el flag de update.
type fakeTxRunner struct {
	movRepo      *fakeMovimientoRepo
	productoRepo *fakeProductoRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovimientoRepository,
	productoRepo repository.ProductoRepository,
) error) error {
	return fn(f.movRepo, f.productoRepo)
}

func nuevoUseCase(p *entity.Producto) (*inventario.RegistrarMovimientoUseCase, *fakeProductoRepo, *fakeMovimientoRepo) {
	productoRepo := &fakeProductoRepo{producto: p}
	movRepo := &fakeMovimientoRepo{}
	runner := &fakeTxRunner{movRepo: movRepo, productoRepo: productoRepo}
	return inventario.NewRegistrarMovimientoUseCase(runner, movRepo), productoRepo, movRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Registrar
// ──────────────────────────────────────────────────────────────────────────────

// Entrada válida: ajusta el stock, reconcilia la cantidad legacy y asienta el movimiento.
func TestRegistrar_Entrada(t *testing.T) {
	p := &entity.Producto{ID: "p1", Nombre: "Paracetamol", Codigo: "PAR-500",
		Cantidad: 2, PiezasPorUnidad: 50, CantidadPiezas: 100}
	uc, productoRepo, movRepo := nuevoUseCase(p)

	out, err := uc.Registrar(context.Background(), "u1", dto.RegistrarMovimientoRequest{
		ProductoID: "p1", Tipo: "entrada", Cantidad: 75, Nota: "  compra mensual  ",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(175), p.CantidadPiezas)
	assert.Equal(t, int64(3), p.Cantidad, "175 piezas / 50 por caja = 3 cajas (división entera)")
	assert.True(t, productoRepo.updated, "el stock debe persistirse dentro de la transacción")
	require.Len(t, movRepo.creados, 1)

	assert.Equal(t, "entrada", out.Tipo)
	assert.Equal(t, int64(75), out.Cantidad)
	assert.Equal(t, "Paracetamol", out.ProductoNombre)
	assert.Equal(t, "PAR-500", out.ProductoCodigo)
	assert.Equal(t, "compra mensual", out.Nota, "la nota debe guardarse sin espacios alrededor")
	assert.Equal(t, "u1", out.CreadoPor)
}

// Salida válida descuenta piezas.
func TestRegistrar_Salida(t *testing.T) {
	p := &entity.Producto{ID: "p1", Cantidad: 2, PiezasPorUnidad: 50, CantidadPiezas: 100}
	uc, _, movRepo := nuevoUseCase(p)

	_, err := uc.Registrar(context.Background(), "u1", dto.RegistrarMovimientoRequest{
		ProductoID: "p1", Tipo: "salida", Cantidad: 60,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(40), p.CantidadPiezas)
	assert.Equal(t, int64(0), p.Cantidad)
	assert.Len(t, movRepo.creados, 1)
}

// Salida mayor al stock → ErrStockInsuficiente y no se asienta nada.
func TestRegistrar_SalidaSinStock(t *testing.T) {
	p := &entity.Producto{ID: "p1", Cantidad: 1, PiezasPorUnidad: 50, CantidadPiezas: 50}
	uc, productoRepo, movRepo := nuevoUseCase(p)

	_, err := uc.Registrar(context.Background(), "u1", dto.RegistrarMovimientoRequest{
		ProductoID: "p1", Tipo: "salida", Cantidad: 51,
	})

	assert.ErrorIs(t, err, domain.ErrStockInsuficiente)
	assert.Equal(t, int64(50), p.CantidadPiezas, "el stock no debe modificarse")
	assert.False(t, productoRepo.updated)
	assert.Empty(t, movRepo.creados, "no debe asentarse movimiento")
}

// Producto inexistente → ErrNotFound.
func TestRegistrar_ProductoInexistente(t *testing.T) {
	uc, _, _ := nuevoUseCase(&entity.Producto{ID: "p1"})

	_, err := uc.Registrar(context.Background(), "u1", dto.RegistrarMovimientoRequest{
		ProductoID: "otro", Tipo: "entrada", Cantidad: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Validaciones de entrada: tipo y cantidad.
func TestRegistrar_EntradaInvalida(t *testing.T) {
	uc, _, _ := nuevoUseCase(&entity.Producto{ID: "p1", CantidadPiezas: 10})

	casos := []dto.RegistrarMovimientoRequest{
		{ProductoID: "p1", Tipo: "ajuste", Cantidad: 1},
		{ProductoID: "p1", Tipo: "entrada", Cantidad: 0},
		{ProductoID: "p1", Tipo: "salida", Cantidad: -3},
		{ProductoID: "", Tipo: "entrada", Cantidad: 1},
	}
	for _, in := range casos {
		_, err := uc.Registrar(context.Background(), "u1", in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput,
			"tipo=%q cantidad=%d producto=%q debe rechazarse", in.Tipo, in.Cantidad, in.ProductoID)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Listar
// ──────────────────────────────────────────────────────────────────────────────

// El listado global respeta el tope de 200 asientos.
func TestListar_AplicaTope(t *testing.T) {
	p := &entity.Producto{ID: "p1", PiezasPorUnidad: 1, CantidadPiezas: 0}
	uc, _, movRepo := nuevoUseCase(p)

	for i := 0; i < 250; i++ {
		movRepo.creados = append(movRepo.creados, &entity.Movimiento{ID: "m", ProductoID: "p1", Tipo: "entrada", Cantidad: 1})
	}

	out, err := uc.Listar("", 0, 0)
	require.NoError(t, err)
	assert.Len(t, out.Items, 200, "el listado global se limita a 200 movimientos")

	out, err = uc.Listar("", 500, 0)
	require.NoError(t, err)
	assert.Len(t, out.Items, 200, "un límite mayor al tope se recorta")
}

// Con producto_id filtra solo los asientos de ese producto.
func TestListar_PorProducto(t *testing.T) {
	uc, _, movRepo := nuevoUseCase(&entity.Producto{ID: "p1"})
	movRepo.creados = []*entity.Movimiento{
		{ID: "m1", ProductoID: "p1"},
		{ID: "m2", ProductoID: "p2"},
		{ID: "m3", ProductoID: "p1"},
	}

	out, err := uc.Listar("p1", 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Total)
}
