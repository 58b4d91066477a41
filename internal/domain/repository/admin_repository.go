package repository

import (
	"context"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// DeletionRequestRepository solicitudes de eliminación de productos (/admin/deletion-requests).
type DeletionRequestRepository interface {
	List(ctx context.Context) ([]entity.DeletionRequest, error)
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
	CountPending(ctx context.Context) (int, error)
}

// UserRepository administración de usuarios (/admin/users).
type UserRepository interface {
	List(ctx context.Context) ([]entity.User, error)
	Create(ctx context.Context, name, password, role string) (entity.User, error)
	UpdateRole(ctx context.Context, id, role string) (entity.User, error)
}

// AuditLogRepository lectura del log de auditoría (/admin/audit-logs).
type AuditLogRepository interface {
	List(ctx context.Context) ([]entity.AuditLog, error)
}
