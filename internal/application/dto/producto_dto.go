package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductoRequest entrada para crear un producto.
// Cantidad se captura en unidades de compra (legacy); las piezas se derivan.
// Si Precio viene nil o vacío se usa el precio sugerido (costo, margen, IVA).
type CreateProductoRequest struct {
	Nombre      string `json:"nombre" validate:"required,min=1,max=100"`
	Codigo      string `json:"codigo" validate:"required,min=1,max=50"`
	Descripcion string `json:"descripcion"`
	Proveedor   string `json:"proveedor"`
	Lote        string `json:"lote"`
	Categoria   string `json:"categoria"`
	Unidad      string `json:"unidad" validate:"required"`

	Cantidad        int64  `json:"cantidad"`
	UnidadCompra    string `json:"unidad_compra"`
	PiezasPorUnidad int64  `json:"piezas_por_unidad"`
	StockMinimo     int64  `json:"stock_minimo"`

	Costo     decimal.Decimal  `json:"costo"`
	AplicaIVA bool             `json:"aplica_iva"`
	Precio    *decimal.Decimal `json:"precio,omitempty"`

	FechaIngreso *string `json:"fecha_ingreso,omitempty"` // "2006-01-02"
	Caducidad    *string `json:"caducidad,omitempty"`     // "2006-01-02"
}

// UpdateProductoRequest entrada para editar un producto. El formulario de
// edición reenvía todos los campos, no es un PATCH parcial.
type UpdateProductoRequest struct {
	Nombre      string `json:"nombre" validate:"required,min=1,max=100"`
	Codigo      string `json:"codigo" validate:"required,min=1,max=50"`
	Descripcion string `json:"descripcion"`
	Proveedor   string `json:"proveedor"`
	Lote        string `json:"lote"`
	Categoria   string `json:"categoria"`
	Unidad      string `json:"unidad" validate:"required"`

	Cantidad        int64  `json:"cantidad"`
	UnidadCompra    string `json:"unidad_compra"`
	PiezasPorUnidad int64  `json:"piezas_por_unidad"`
	StockMinimo     int64  `json:"stock_minimo"`

	Costo     decimal.Decimal  `json:"costo"`
	AplicaIVA bool             `json:"aplica_iva"`
	Precio    *decimal.Decimal `json:"precio,omitempty"`

	FechaIngreso *string `json:"fecha_ingreso,omitempty"`
	Caducidad    *string `json:"caducidad,omitempty"`
}

// ProductoResponse salida de un producto.
type ProductoResponse struct {
	ID          string `json:"id"`
	Nombre      string `json:"nombre"`
	Codigo      string `json:"codigo"`
	Descripcion string `json:"descripcion"`
	Proveedor   string `json:"proveedor"`
	Lote        string `json:"lote"`
	Categoria   string `json:"categoria"`
	Unidad      string `json:"unidad"`

	Cantidad        int64  `json:"cantidad"`
	UnidadCompra    string `json:"unidad_compra"`
	PiezasPorUnidad int64  `json:"piezas_por_unidad"`
	CantidadPiezas  int64  `json:"cantidad_piezas"`
	StockMinimo     int64  `json:"stock_minimo"`
	BajoStock       bool   `json:"bajo_stock"`

	Costo     decimal.Decimal `json:"costo"`
	Margen    decimal.Decimal `json:"margen"`
	AplicaIVA bool            `json:"aplica_iva"`
	Precio    decimal.Decimal `json:"precio"`

	FechaIngreso *string `json:"fecha_ingreso,omitempty"`
	Caducidad    *string `json:"caducidad,omitempty"`

	Imagen             string    `json:"imagen,omitempty"`
	UltimaModificacion time.Time `json:"ultima_modificacion"`
}

// ProductoListResponse lista paginada de productos.
type ProductoListResponse struct {
	Items []ProductoResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
