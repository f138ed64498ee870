package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/clinicadelvalle/ops-api/internal/application/cirugia"
	"github.com/clinicadelvalle/ops-api/internal/application/dto"
	"github.com/clinicadelvalle/ops-api/internal/domain"
)

// CirugiaHandler maneja la programación de quirófano (protegido).
type CirugiaHandler struct {
	uc *cirugia.CirugiaUseCase
}

// NewCirugiaHandler construye el handler.
func NewCirugiaHandler(uc *cirugia.CirugiaUseCase) *CirugiaHandler {
	return &CirugiaHandler{uc: uc}
}

// Programar godoc
// @Summary      Programar una cirugía
// @Tags         cirugias
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCirugiaRequest  true  "Datos de la cirugía"
// @Success      201   {object}  dto.CirugiaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cirugias [post]
func (h *CirugiaHandler) Programar(c *fiber.Ctx) error {
	var in dto.CreateCirugiaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.PacienteNombre == "" || in.Procedimiento == "" || in.Cirujano == "" || in.FechaProgramada == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paciente_nombre, procedimiento, cirujano y fecha_programada son requeridos"})
	}
	out, err := h.uc.Programar(c.UserContext(), GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha AAAA-MM-DD y hora HH:MM"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Detalle de una cirugía con su bitácora
// @Tags         cirugias
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la cirugía"
// @Success      200  {object}  dto.CirugiaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cirugias/{id} [get]
func (h *CirugiaHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetDetalle(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cirugía no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar cirugías
// @Tags         cirugias
// @Security     Bearer
// @Produce      json
// @Param        fecha   query  string  false  "Filtrar por día (AAAA-MM-DD)"
// @Param        estado  query  string  false  "programada | confirmada | en_quirofano | realizada | cancelada"
// @Param        limit   query  int     false  "Límite"  default(50)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.CirugiaListResponse
// @Router       /api/cirugias [get]
func (h *CirugiaHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
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

// CambiarEstado godoc
// @Summary      Cambiar el estado de una cirugía (con bitácora)
// @Tags         cirugias
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la cirugía"
// @Param        body  body  dto.CambiarEstadoRequest  true  "estado, nota"
// @Success      200   {object}  dto.CirugiaResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cirugias/{id}/estado [post]
func (h *CirugiaHandler) CambiarEstado(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.CambiarEstadoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Estado == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "estado es requerido"})
	}
	out, err := h.uc.CambiarEstado(c.UserContext(), id, GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cirugía no encontrada"})
		}
		if errors.Is(err, domain.ErrTransicionInvalida) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TRANSICION_INVALIDA", Message: "el estado solicitado no es alcanzable desde el estado actual"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "estado desconocido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// SubirOrdenFoto godoc
// @Summary      Subir foto de la orden quirúrgica
// @Tags         cirugias
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "ID de la cirugía"
// @Param        foto  formData  file    true  "Foto de la orden"
// @Success      200   {object}  dto.CirugiaResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cirugias/{id}/orden [post]
func (h *CirugiaHandler) SubirOrdenFoto(c *fiber.Ctx) error {
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

	out, err := h.uc.SubirOrdenFoto(id, fileHeader.Filename, f)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cirugía no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
