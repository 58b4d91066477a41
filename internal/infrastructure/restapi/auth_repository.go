package restapi

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
)

var _ repository.AuthRepository = (*AuthRepository)(nil)

// AuthRepository POST /login.
type AuthRepository struct {
	c *Client
}

// NewAuthRepository construye el repositorio.
func NewAuthRepository(c *Client) *AuthRepository {
	return &AuthRepository{c: c}
}

// Login devuelve el token emitido por el servidor.
func (r *AuthRepository) Login(ctx context.Context, name, password string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := r.c.post(ctx, "/login", map[string]string{"name": name, "password": password}, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("%w: login sin token en la respuesta", domain.ErrRemote)
	}
	return resp.Token, nil
}
