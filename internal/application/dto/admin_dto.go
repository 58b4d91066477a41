package dto

// DeletionRequestResponse solicitud de eliminación pendiente.
type DeletionRequestResponse struct {
	ID            string `json:"id"`
	ProductSKU    string `json:"product_sku"`
	Status        string `json:"status"`
	RequestedByID string `json:"requested_by_id"`
	CreatedAt     string `json:"created_at"`
}

// PendingCountResponse cantidad de solicitudes pendientes.
type PendingCountResponse struct {
	PendingRequests int `json:"pending_requests"`
}

// CreateUserRequest alta de usuario (la contraseña la hashea la API remota).
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=ADMIN USUARIO"`
}

// UpdateRoleRequest cambio de rol.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=ADMIN USUARIO"`
}

// UserResponse usuario.
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// AuditLogResponse entrada del log de auditoría.
type AuditLogResponse struct {
	ID         string `json:"id"`
	ActionType string `json:"action_type"`
	UserID     string `json:"user_id"`
	Details    string `json:"details"`
	Timestamp  string `json:"timestamp"`
}
