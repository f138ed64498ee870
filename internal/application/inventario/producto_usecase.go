package inventario

import (
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/clinicadelvalle/ops-api/internal/application/dto"
	"github.com/clinicadelvalle/ops-api/internal/domain"
	"github.com/clinicadelvalle/ops-api/internal/domain/entity"
	"github.com/clinicadelvalle/ops-api/internal/domain/precio"
	"github.com/clinicadelvalle/ops-api/internal/domain/repository"
)

const fechaLayout = "2006-01-02"

// ProductoUseCase casos de uso CRUD para productos del inventario de farmacia.
// El stock NO se modifica por aquí después del alta: eso es del motor de movimientos.
type ProductoUseCase struct {
	repo    repository.ProductoRepository
	storage FotoStorage
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(repo repository.ProductoRepository, storage FotoStorage) *ProductoUseCase {
	return &ProductoUseCase{repo: repo, storage: storage}
}

// Create da de alta un producto. La cantidad llega en unidades de compra y las
// piezas se derivan; si no viene precio se usa el sugerido (costo, margen, IVA).
func (uc *ProductoUseCase) Create(in dto.CreateProductoRequest) (*dto.ProductoResponse, error) {
	existing, err := uc.repo.GetByCodigo(in.Codigo)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.Cantidad < 0 || in.PiezasPorUnidad < 0 || in.StockMinimo < 0 {
		return nil, domain.ErrInvalidInput
	}
	fechaIngreso, err := parseFecha(in.FechaIngreso)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	caducidad, err := parseFecha(in.Caducidad)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	p := &entity.Producto{
		ID:          uuid.New().String(),
		Nombre:      in.Nombre,
		Codigo:      in.Codigo,
		Descripcion: in.Descripcion,
		Proveedor:   in.Proveedor,
		Lote:        in.Lote,
		Categoria:   in.Categoria,
		Unidad:      in.Unidad,

		Cantidad:        in.Cantidad,
		UnidadCompra:    in.UnidadCompra,
		PiezasPorUnidad: in.PiezasPorUnidad,
		StockMinimo:     in.StockMinimo,

		Costo:     in.Costo,
		Margen:    precio.MargenDefault,
		AplicaIVA: in.AplicaIVA,

		FechaIngreso:       fechaIngreso,
		Caducidad:          caducidad,
		UltimaModificacion: now,
	}
	p.SincronizarPiezas()

	if in.Precio != nil {
		p.Precio = *in.Precio
	} else {
		p.Precio = precio.Sugerido(p.Costo, p.Margen, p.AplicaIVA)
	}

	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	return toProductoResponse(p), nil
}

// Update edita un producto con semántica de formulario completo: reemplaza los
// campos capturados, resincroniza piezas y recalcula el precio sugerido si no
// viene precio explícito. El margen almacenado se conserva.
func (uc *ProductoUseCase) Update(id string, in dto.UpdateProductoRequest) (*dto.ProductoResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	if in.Cantidad < 0 || in.PiezasPorUnidad < 0 || in.StockMinimo < 0 {
		return nil, domain.ErrInvalidInput
	}
	fechaIngreso, err := parseFecha(in.FechaIngreso)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	caducidad, err := parseFecha(in.Caducidad)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	p.Nombre = in.Nombre
	p.Codigo = in.Codigo
	p.Descripcion = in.Descripcion
	p.Proveedor = in.Proveedor
	p.Lote = in.Lote
	p.Categoria = in.Categoria
	p.Unidad = in.Unidad

	p.Cantidad = in.Cantidad
	p.UnidadCompra = in.UnidadCompra
	p.PiezasPorUnidad = in.PiezasPorUnidad
	p.StockMinimo = in.StockMinimo
	p.SincronizarPiezas()

	p.Costo = in.Costo
	p.AplicaIVA = in.AplicaIVA
	if in.Precio != nil {
		p.Precio = *in.Precio
	} else {
		p.Precio = precio.Sugerido(p.Costo, p.Margen, p.AplicaIVA)
	}

	p.FechaIngreso = fechaIngreso
	p.Caducidad = caducidad
	p.UltimaModificacion = time.Now()

	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return toProductoResponse(p), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductoUseCase) GetByID(id string) (*dto.ProductoResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return toProductoResponse(p), nil
}

// List lista productos; q busca en nombre, código y categoría.
func (uc *ProductoUseCase) List(q string, limit, offset int) (*dto.ProductoListResponse, error) {
	list, err := uc.repo.List(q, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductoResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductoResponse(p))
	}
	return &dto.ProductoListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto; sus movimientos caen en cascada.
func (uc *ProductoUseCase) Delete(id string) error {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// GuardarImagen almacena la imagen del producto y actualiza la referencia.
func (uc *ProductoUseCase) GuardarImagen(id, nombreOriginal string, r io.Reader) (*dto.ProductoResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	archivo, err := uc.storage.Guardar(nombreOriginal, r)
	if err != nil {
		return nil, err
	}
	p.Imagen = archivo
	p.UltimaModificacion = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return toProductoResponse(p), nil
}

func parseFecha(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(fechaLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatFecha(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(fechaLayout)
	return &s
}

func toProductoResponse(p *entity.Producto) *dto.ProductoResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductoResponse{
		ID:          p.ID,
		Nombre:      p.Nombre,
		Codigo:      p.Codigo,
		Descripcion: p.Descripcion,
		Proveedor:   p.Proveedor,
		Lote:        p.Lote,
		Categoria:   p.Categoria,
		Unidad:      p.Unidad,

		Cantidad:        p.Cantidad,
		UnidadCompra:    p.UnidadCompra,
		PiezasPorUnidad: p.PiezasPorUnidad,
		CantidadPiezas:  p.CantidadPiezas,
		StockMinimo:     p.StockMinimo,
		BajoStock:       p.BajoStock(),

		Costo:     p.Costo,
		Margen:    p.Margen,
		AplicaIVA: p.AplicaIVA,
		Precio:    p.Precio,

		FechaIngreso: formatFecha(p.FechaIngreso),
		Caducidad:    formatFecha(p.Caducidad),

		Imagen:             p.Imagen,
		UltimaModificacion: p.UltimaModificacion,
	}
}
