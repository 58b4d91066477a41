package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/usecase"
)

// ExitHandler registros de salida.
type ExitHandler struct {
	uc *usecase.ExitUseCase
}

// NewExitHandler construye el handler.
func NewExitHandler(uc *usecase.ExitUseCase) *ExitHandler {
	return &ExitHandler{uc: uc}
}

// List godoc
// @Summary      Listar salidas
// @Tags         exits
// @Produce      json
// @Param        q        query  string  false  "Búsqueda por nombre, SKU u observación"
// @Param        page     query  int     false  "Página"  default(1)
// @Param        refresh  query  bool    false  "Releer desde la API"
// @Success      200  {object}  dto.Page[dto.ExitResponse]
// @Router       /api/exits [get]
func (h *ExitHandler) List(c *fiber.Ctx) error {
	q, err := listQuery(c)
	if err != nil {
		return invalidBody(c)
	}
	if q.Refresh {
		if err := h.uc.Refresh(c.UserContext()); err != nil {
			return respondError(c, err)
		}
	}
	return c.JSON(h.uc.List(q))
}

// UpdateObservation godoc
// @Summary      Editar observación de una salida
// @Tags         exits
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la salida"
// @Param        body  body  dto.UpdateObservationRequest  true  "observation"
// @Success      200   {object}  dto.ExitResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/exits/{id}/observation [put]
func (h *ExitHandler) UpdateObservation(c *fiber.Ctx) error {
	var in dto.UpdateObservationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateObservation(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
