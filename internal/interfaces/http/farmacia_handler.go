package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/clinicadelvalle/ops-api/internal/application/dto"
	"github.com/clinicadelvalle/ops-api/internal/application/farmacia"
	"github.com/clinicadelvalle/ops-api/internal/domain"
)

// FarmaciaHandler maneja los registros pendientes de farmacia (protegido).
type FarmaciaHandler struct {
	uc *farmacia.PendientesUseCase
}

// NewFarmaciaHandler construye el handler.
func NewFarmaciaHandler(uc *farmacia.PendientesUseCase) *FarmaciaHandler {
	return &FarmaciaHandler{uc: uc}
}

// CrearRegistro godoc
// @Summary      Crear registro pendiente de farmacia
// @Tags         farmacia
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRegistroRequest  true  "fecha, titulo, descripcion"
// @Success      201   {object}  dto.RegistroResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/farmacia/registros [post]
func (h *FarmaciaHandler) CrearRegistro(c *fiber.Ctx) error {
	var in dto.CreateRegistroRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Fecha == "" || in.Titulo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha y titulo son requeridos"})
	}
	out, err := h.uc.CrearRegistro(GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha debe tener formato AAAA-MM-DD"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar registros pendientes
// @Tags         farmacia
// @Security     Bearer
// @Produce      json
// @Param        fecha   query  string  false  "Filtrar por día (AAAA-MM-DD)"
// @Param        estado  query  string  false  "pendiente | resuelto"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.RegistroListResponse
// @Router       /api/farmacia/registros [get]
func (h *FarmaciaHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.uc.Listar(c.Query("fecha"), c.Query("estado"), limit, offset)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// SubirFoto godoc
// @Summary      Adjuntar foto de evidencia a un registro
// @Tags         farmacia
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "ID del registro"
// @Param        foto  formData  file    true  "Foto de evidencia"
// @Success      201   {object}  dto.FotoRegistroResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/farmacia/registros/{id}/fotos [post]
func (h *FarmaciaHandler) SubirFoto(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	fileHeader, err := c.FormFile("foto")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo foto requerido"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
	}
	defer f.Close()

	out, err := h.uc.SubirFoto(id, GetUserID(c), fileHeader.Filename, f)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "registro no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// MarcarResuelto godoc
// @Summary      Marcar un registro como resuelto
// @Tags         farmacia
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del registro"
// @Success      200  {object}  dto.RegistroResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/farmacia/registros/{id}/resolver [post]
func (h *FarmaciaHandler) MarcarResuelto(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.MarcarResuelto(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "registro no encontrado"})
		}
		if errors.Is(err, domain.ErrRegistroResuelto) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "YA_RESUELTO", Message: "el registro ya está resuelto"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
