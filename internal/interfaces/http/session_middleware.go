package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/pkg/requestid"
)

// LocalIdentity key en c.Locals para la identidad de la sesión.
const LocalIdentity = "identity"

const localPageSize = "page_size"

// identitySource lo implementa *auth.SessionUseCase.
type identitySource interface {
	Identity() (entity.Identity, bool)
}

// stateLoader lo implementa *state.Store.
type stateLoader interface {
	Loaded() bool
	Load(ctx context.Context) error
}

// RequestID propaga X-Request-ID: usa el de la petición o genera uno, lo guarda en el
// contexto de usuario (el cliente REST lo reenvía a la API) y lo devuelve en la respuesta.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(requestid.Header)
		if id == "" {
			id = requestid.New()
		}
		c.SetUserContext(requestid.With(c.UserContext(), id))
		c.Set(requestid.Header, id)
		return c.Next()
	}
}

func defaultPageSize(n int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if n > 0 {
			c.Locals(localPageSize, n)
		}
		return c.Next()
	}
}

// SessionMiddleware exige una sesión abierta y carga la identidad en c.Locals.
func SessionMiddleware(sessions identitySource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := sessions.Identity()
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_SESSION", Message: "inicie sesión"})
		}
		c.Locals(LocalIdentity, id)
		return c.Next()
	}
}

// RequireRole permite el acceso solo a las identidades con alguno de los roles indicados.
// Debe usarse DESPUÉS de SessionMiddleware. Es control de interfaz: la API remota
// vuelve a verificar el rol.
//
// Comportamiento:
//   - 401 si no hay identidad en el contexto o el token no trae rol.
//   - 403 si el rol no está entre los permitidos.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := GetIdentity(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_SESSION", Message: "inicie sesión"})
		}
		if id.Role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		for _, r := range roles {
			if id.Role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso restringido a " + strings.Join(roles, ", ")})
	}
}

// RequireState garantiza que el estado esté cargado antes de servir la ruta; si no lo
// está intenta cargarlo.
//
//   - 503 Service Unavailable si la carga falla (la API remota no responde).
func RequireState(loader stateLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if loader.Loaded() {
			return c.Next()
		}
		if err := loader.Load(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "STATE_UNAVAILABLE",
				Message: "no se pudieron cargar los datos: " + err.Error(),
			})
		}
		return c.Next()
	}
}

// GetIdentity identidad de la sesión (después de SessionMiddleware).
func GetIdentity(c *fiber.Ctx) (entity.Identity, bool) {
	id, ok := c.Locals(LocalIdentity).(entity.Identity)
	return id, ok
}
