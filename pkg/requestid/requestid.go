// Package requestid identificador de operación compartido por todas las llamadas remotas de una acción.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header nombre de la cabecera HTTP que transporta el identificador.
const Header = "X-Request-ID"

type ctxKey struct{}

// New genera un identificador nuevo (UUID v4).
func New() string {
	return uuid.New().String()
}

// With devuelve un contexto que transporta id.
func With(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// From devuelve el identificador del contexto o "" si no hay.
func From(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Ensure devuelve ctx con un identificador, generando uno si no lo tiene.
func Ensure(ctx context.Context) (context.Context, string) {
	if id := From(ctx); id != "" {
		return ctx, id
	}
	id := New()
	return With(ctx, id), id
}
