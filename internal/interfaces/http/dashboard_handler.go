package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicadelvalle/ops-api/internal/application/analytics"
	"github.com/clinicadelvalle/ops-api/internal/application/dto"
)

// DashboardHandler maneja el resumen por rol (protegido).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Resumen godoc
// @Summary      Resumen del dashboard según el rol del usuario
// @Description  admin recibe inventario y quirófano; farmacia solo inventario; quirofano solo cirugías.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResumenDTO
// @Router       /api/dashboard/resumen [get]
func (h *DashboardHandler) Resumen(c *fiber.Ctx) error {
	out, err := h.uc.GetResumen(c.UserContext(), GetRole(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
