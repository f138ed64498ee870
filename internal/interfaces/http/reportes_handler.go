package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/clinicadelvalle/ops-api/internal/application/dto"
	"github.com/clinicadelvalle/ops-api/internal/application/reportes"
	"github.com/clinicadelvalle/ops-api/internal/domain"
)

// ReportesHandler sirve los reportes en PDF (protegido).
type ReportesHandler struct {
	uc *reportes.ReportesUseCase
}

// NewReportesHandler construye el handler.
func NewReportesHandler(uc *reportes.ReportesUseCase) *ReportesHandler {
	return &ReportesHandler{uc: uc}
}

// Inventario godoc
// @Summary      Corte de inventario en PDF
// @Tags         reportes
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reportes/inventario [get]
func (h *ReportesHandler) Inventario(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.Inventario(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	nombre := "inventario_" + time.Now().Format("20060102") + ".pdf"
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+nombre+`"`)
	return c.Send(pdfBytes)
}

// ProgramaCirugias godoc
// @Summary      Programa de quirófano del día en PDF
// @Tags         reportes
// @Security     Bearer
// @Produce      application/pdf
// @Param        fecha  query  string  false  "Día (AAAA-MM-DD); vacío = hoy"
// @Success      200    {file}  binary
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/reportes/cirugias [get]
func (h *ReportesHandler) ProgramaCirugias(c *fiber.Ctx) error {
	fecha := c.Query("fecha")
	pdfBytes, err := h.uc.ProgramaCirugias(c.UserContext(), fecha)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha debe tener formato AAAA-MM-DD"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if fecha == "" {
		fecha = time.Now().Format("2006-01-02")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="quirofano_`+fecha+`.pdf"`)
	return c.Send(pdfBytes)
}
