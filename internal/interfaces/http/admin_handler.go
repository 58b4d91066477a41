package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/usecase"
)

// AdminHandler rutas de administración (solo ADMIN).
type AdminHandler struct {
	uc *usecase.AdminUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(uc *usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// ListDeletionRequests GET /api/admin/deletion-requests
func (h *AdminHandler) ListDeletionRequests(c *fiber.Ctx) error {
	out, err := h.uc.ListDeletionRequests(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PendingCount GET /api/admin/deletion-requests/count
func (h *AdminHandler) PendingCount(c *fiber.Ctx) error {
	out, err := h.uc.PendingCount(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Approve POST /api/admin/deletion-requests/:id/approve
func (h *AdminHandler) Approve(c *fiber.Ctx) error {
	if err := h.uc.ApproveDeletion(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reject POST /api/admin/deletion-requests/:id/reject
func (h *AdminHandler) Reject(c *fiber.Ctx) error {
	if err := h.uc.RejectDeletion(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListUsers GET /api/admin/users
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	out, err := h.uc.ListUsers(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateUser POST /api/admin/users
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateUser(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateRole PUT /api/admin/users/:id
func (h *AdminHandler) UpdateRole(c *fiber.Ctx) error {
	var in dto.UpdateRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateRole(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListAuditLogs GET /api/admin/audit-logs
func (h *AdminHandler) ListAuditLogs(c *fiber.Ctx) error {
	out, err := h.uc.ListAuditLogs(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
