package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "ADMIN"
	RoleUsuario = "USUARIO"
)

// ValidRole indica si r es un rol conocido.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleUsuario
}

// User usuario del sistema tal como lo lista la administración.
type User struct {
	ID        string
	Name      string
	Role      string
	CreatedAt time.Time
}

// Identity datos del usuario decodificados del token. Es una pista de visualización:
// la API remota vuelve a autorizar cada llamada.
type Identity struct {
	ID   string
	Name string
	Role string
}

// IsAdmin indica si la identidad tiene rol ADMIN.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
