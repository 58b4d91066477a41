package repository

import "context"

// AuthRepository emisión de tokens (POST /login). La firma y expiración son del servidor.
type AuthRepository interface {
	Login(ctx context.Context, name, password string) (token string, err error)
}
