package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/domain"
)

// errorMapping código HTTP y código de error para un error de dominio.
type errorMapping struct {
	target error
	status int
	code   string
}

// El orden importa: ErrPartialSequence envuelve también ErrRemote, y los errores remotos
// 404/409 se resuelven por su error específico antes que por ErrRemote.
var errorMappings = []errorMapping{
	{domain.ErrPartialSequence, fiber.StatusBadGateway, "PARTIAL_SEQUENCE"},
	{domain.ErrSubmissionInProgress, fiber.StatusConflict, "SUBMISSION_IN_PROGRESS"},
	{domain.ErrNoSession, fiber.StatusUnauthorized, "NO_SESSION"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrProductNotFound, fiber.StatusNotFound, "PRODUCT_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrStoreRequired, fiber.StatusBadRequest, "STORE_REQUIRED"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrInsufficientStock, fiber.StatusUnprocessableEntity, "INSUFFICIENT_STOCK"},
	{domain.ErrLocationOccupied, fiber.StatusConflict, "LOCATION_OCCUPIED"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrRemote, fiber.StatusBadGateway, "REMOTE_ERROR"},
}

// respondError traduce err a dto.ErrorResponse con el status correspondiente.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
