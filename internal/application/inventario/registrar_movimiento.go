package inventario

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicadelvalle/ops-api/internal/application/dto"
	"github.com/clinicadelvalle/ops-api/internal/domain"
	"github.com/clinicadelvalle/ops-api/internal/domain/entity"
	"github.com/clinicadelvalle/ops-api/internal/domain/repository"
)

// Tope del listado global de movimientos.
const movimientosListadoMax = 200

// RegistrarMovimientoUseCase registra entradas y salidas de stock de forma
// transaccional, con bloqueo de fila (SELECT FOR UPDATE) sobre el producto y
// reconciliación del campo legacy de unidades de compra.
type RegistrarMovimientoUseCase struct {
	txRunner TxRunner
	movRepo  repository.MovimientoRepository
}

// NewRegistrarMovimientoUseCase construye el caso de uso. movRepo se usa solo
// para listados (fuera de transacción).
func NewRegistrarMovimientoUseCase(txRunner TxRunner, movRepo repository.MovimientoRepository) *RegistrarMovimientoUseCase {
	return &RegistrarMovimientoUseCase{txRunner: txRunner, movRepo: movRepo}
}

// Registrar valida y aplica un movimiento:
//  1. tipo ∈ {entrada, salida} y cantidad > 0 (en piezas).
//  2. Dentro de la transacción: bloquea la fila del producto, aplica el delta
//     a cantidad_piezas (salida exige stock suficiente), reconcilia el campo
//     legacy cantidad y persiste el asiento del libro.
func (uc *RegistrarMovimientoUseCase) Registrar(ctx context.Context, userID string, in dto.RegistrarMovimientoRequest) (*dto.MovimientoResponse, error) {
	if in.Tipo != entity.MovimientoEntrada && in.Tipo != entity.MovimientoSalida {
		return nil, domain.ErrInvalidInput
	}
	if in.Cantidad <= 0 || in.ProductoID == "" {
		return nil, domain.ErrInvalidInput
	}
	nota := strings.TrimSpace(in.Nota)

	now := time.Now()
	mov := &entity.Movimiento{
		ID:         uuid.New().String(),
		ProductoID: in.ProductoID,
		Tipo:       in.Tipo,
		Cantidad:   in.Cantidad,
		Fecha:      now,
		Nota:       nota,
		CreadoPor:  userID,
	}

	var productoNombre, productoCodigo string
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovimientoRepository,
		productoRepo repository.ProductoRepository,
	) error {
		p, err := productoRepo.GetForUpdate(in.ProductoID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if err := p.AplicarMovimiento(in.Tipo, in.Cantidad, now); err != nil {
			return err
		}
		if err := productoRepo.UpdateStock(p); err != nil {
			return err
		}
		productoNombre = p.Nombre
		productoCodigo = p.Codigo
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}

	return &dto.MovimientoResponse{
		ID:             mov.ID,
		ProductoID:     mov.ProductoID,
		ProductoNombre: productoNombre,
		ProductoCodigo: productoCodigo,
		Tipo:           mov.Tipo,
		Cantidad:       mov.Cantidad,
		Fecha:          mov.Fecha,
		Nota:           mov.Nota,
		CreadoPor:      mov.CreadoPor,
	}, nil
}

// Listar devuelve el libro de movimientos: si productoID no es vacío, solo los
// de ese producto; si no, los más recientes de todos (tope 200).
func (uc *RegistrarMovimientoUseCase) Listar(productoID string, limit, offset int) (*dto.MovimientoListResponse, error) {
	if limit <= 0 || limit > movimientosListadoMax {
		limit = movimientosListadoMax
	}
	var (
		list []*entity.MovimientoConProducto
		err  error
	)
	if productoID != "" {
		list, err = uc.movRepo.ListByProducto(productoID, limit, offset)
	} else {
		list, err = uc.movRepo.ListRecientes(limit)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovimientoResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.MovimientoResponse{
			ID:             m.ID,
			ProductoID:     m.ProductoID,
			ProductoNombre: m.ProductoNombre,
			ProductoCodigo: m.ProductoCodigo,
			Tipo:           m.Tipo,
			Cantidad:       m.Cantidad,
			Fecha:          m.Fecha,
			Nota:           m.Nota,
			CreadoPor:      m.CreadoPor,
		})
	}
	return &dto.MovimientoListResponse{Items: items, Total: len(items)}, nil
}
