package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/clinicadelvalle/ops-api/internal/application/dto"
	"github.com/clinicadelvalle/ops-api/internal/application/inventario"
	"github.com/clinicadelvalle/ops-api/internal/domain"
)

// MovimientoHandler maneja el libro de movimientos de stock (protegido).
type MovimientoHandler struct {
	uc *inventario.RegistrarMovimientoUseCase
}

// NewMovimientoHandler construye el handler.
func NewMovimientoHandler(uc *inventario.RegistrarMovimientoUseCase) *MovimientoHandler {
	return &MovimientoHandler{uc: uc}
}

// Registrar godoc
// @Summary      Registrar entrada o salida de stock (cantidad en piezas)
// @Tags         movimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarMovimientoRequest  true  "producto_id, tipo, cantidad, nota"
// @Success      201   {object}  dto.MovimientoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movimientos [post]
func (h *MovimientoHandler) Registrar(c *fiber.Ctx) error {
	var in dto.RegistrarMovimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductoID == "" || in.Tipo == "" || in.Cantidad <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "producto_id, tipo y cantidad > 0 son requeridos"})
	}
	out, err := h.uc.Registrar(c.UserContext(), GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrStockInsuficiente) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STOCK_INSUFICIENTE", Message: "stock insuficiente para la salida"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo debe ser entrada o salida y cantidad > 0"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar movimientos (todos o de un producto)
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        producto_id  query  string  false  "Filtrar por producto"
// @Param        limit        query  int     false  "Límite"  default(200)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovimientoListResponse
// @Router       /api/movimientos [get]
func (h *MovimientoHandler) List(c *fiber.Ctx) error {
	productoID := c.Query("producto_id")
	limit := c.QueryInt("limit", 0)
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	out, err := h.uc.Listar(productoID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
