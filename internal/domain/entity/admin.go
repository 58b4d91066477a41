package entity

import "time"

// Estados de una solicitud de eliminación.
const (
	DeletionStatusPending  = "PENDING"
	DeletionStatusApproved = "APPROVED"
	DeletionStatusRejected = "REJECTED"
)

// DeletionRequest solicitud de un USUARIO para eliminar un producto; la aprueba un ADMIN.
type DeletionRequest struct {
	ID            string
	ProductSKU    string
	Status        string
	RequestedByID string
	CreatedAt     time.Time
}

// AuditLog entrada del log de auditoría mantenido por la API remota.
type AuditLog struct {
	ID         string
	ActionType string
	UserID     string
	Details    string
	Timestamp  time.Time
}
