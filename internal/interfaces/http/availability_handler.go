package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/usecase"
)

// AvailabilityHandler lista maestra de localizaciones.
type AvailabilityHandler struct {
	uc *usecase.AvailabilityUseCase
}

// NewAvailabilityHandler construye el handler.
func NewAvailabilityHandler(uc *usecase.AvailabilityUseCase) *AvailabilityHandler {
	return &AvailabilityHandler{uc: uc}
}

// List godoc
// @Summary      Disponibilidad de localizaciones
// @Tags         availability
// @Produce      json
// @Param        q     query  string  false  "Búsqueda por etiqueta"
// @Param        page  query  int     false  "Página"  default(1)
// @Success      200  {object}  dto.Page[dto.AvailabilityResponse]
// @Router       /api/availability [get]
func (h *AvailabilityHandler) List(c *fiber.Ctx) error {
	q, err := listQuery(c)
	if err != nil {
		return invalidBody(c)
	}
	return c.JSON(h.uc.List(q))
}

// Add godoc
// @Summary      Registrar etiqueta de localización
// @Tags         availability
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddLocationRequest  true  "name"
// @Success      201   {object}  dto.AvailabilityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/availability [post]
func (h *AvailabilityHandler) Add(c *fiber.Ctx) error {
	var in dto.AddLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Add(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar etiqueta libre
// @Tags         availability
// @Param        name  path  string  true  "Etiqueta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/availability/{name} [delete]
func (h *AvailabilityHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), pathParam(c, "name")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
