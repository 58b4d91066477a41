package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/inventory"
)

// InventoryHandler lotes por localización: listado, inclusión, movimiento y salida.
type InventoryHandler struct {
	uc *inventory.LocationUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.LocationUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// List godoc
// @Summary      Listar lotes
// @Tags         locations
// @Produce      json
// @Param        q          query  string  false  "Búsqueda por nombre, SKU o localización"
// @Param        page       query  int     false  "Página"  default(1)
// @Param        page_size  query  int     false  "Ítems por página"  default(12)
// @Param        refresh    query  bool    false  "Releer desde la API"
// @Success      200  {object}  dto.Page[dto.LotResponse]
// @Router       /api/locations [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
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

// Place godoc
// @Summary      Incluir cajas en una localización
// @Description  Suma al lote con la misma tripla (SKU, localización, unidades por caja) o crea uno nuevo.
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlaceRequest  true  "sku, location, units_per_box, containers"
// @Success      201   {object}  dto.OperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/locations [post]
func (h *InventoryHandler) Place(c *fiber.Ctx) error {
	var in dto.PlaceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Place(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Transfer godoc
// @Summary      Mover cajas a otra localización
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del lote de origen"
// @Param        body  body  dto.TransferRequest  true  "destination, containers"
// @Success      200   {object}  dto.OperationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/locations/{id}/transfer [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Transfer(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Ship godoc
// @Summary      Dar salida de cajas
// @Description  Registra la salida (Expedição o Full con tienda) y descuenta el lote.
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del lote"
// @Param        body  body  dto.ShipRequest  true  "exit_type, store, observation, containers"
// @Success      201   {object}  dto.OperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/locations/{id}/ship [post]
func (h *InventoryHandler) Ship(c *fiber.Ctx) error {
	var in dto.ShipRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Ship(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// listQuery lee q, page, page_size y refresh. Sin page_size usa el configurado.
func listQuery(c *fiber.Ctx) (dto.ListQuery, error) {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return dto.ListQuery{}, err
	}
	if q.PageSize <= 0 {
		q.PageSize, _ = c.Locals(localPageSize).(int)
	}
	return q, nil
}
