package dto

// LoginRequest credenciales para POST /login de la API remota.
type LoginRequest struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// IdentityResponse datos del usuario decodificados del token (solo para mostrar).
type IdentityResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	IsAdmin bool   `json:"is_admin"`
}

// SessionResponse estado de la sesión de la consola.
type SessionResponse struct {
	Authenticated bool              `json:"authenticated"`
	User          *IdentityResponse `json:"user,omitempty"`
	Warning       string            `json:"warning,omitempty"` // sesión abierta pero la carga inicial falló
}
