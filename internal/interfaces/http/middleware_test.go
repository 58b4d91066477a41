package http_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	apphttp "github.com/jhoicas/Inventario-console/internal/interfaces/http"
	"github.com/jhoicas/Inventario-console/pkg/requestid"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// fakeSession identidad fija; nil simula sesión cerrada.
type fakeSession struct{ id *entity.Identity }

func (f fakeSession) Identity() (entity.Identity, bool) {
	if f.id == nil {
		return entity.Identity{}, false
	}
	return *f.id, true
}

// fakeLoader estado que se carga con el error indicado.
type fakeLoader struct {
	loaded bool
	err    error
	calls  int
}

func (f *fakeLoader) Loaded() bool { return f.loaded }

func (f *fakeLoader) Load(context.Context) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.loaded = true
	return nil
}

// buildTestApp aplicación mínima con SessionMiddleware + RequireRole.
func buildTestApp(session fakeSession, allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.SessionMiddleware(session),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			id, _ := apphttp.GetIdentity(c)
			return c.JSON(fiber.Map{"ok": true, "role": id.Role})
		},
	)
	return app
}

func identity(role string) fakeSession {
	return fakeSession{id: &entity.Identity{ID: "u-1", Name: "Ana", Role: role}}
}

func get(t *testing.T, app *fiber.App, path string, headers ...string) (int, map[string]any, string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode, decodeBody(t, resp), resp.Header.Get(requestid.Header)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminPermitido(t *testing.T) {
	app := buildTestApp(identity(entity.RoleAdmin), entity.RoleAdmin)

	status, body, _ := get(t, app, "/protected")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, entity.RoleAdmin, body["role"])
}

func TestRequireRole_VariosRolesPermitidos(t *testing.T) {
	app := buildTestApp(identity(entity.RoleUsuario), entity.RoleAdmin, entity.RoleUsuario)

	status, _, _ := get(t, app, "/protected")
	assert.Equal(t, fiber.StatusOK, status)
}

func TestRequireRole_UsuarioRechazado(t *testing.T) {
	app := buildTestApp(identity(entity.RoleUsuario), entity.RoleAdmin)

	status, body, _ := get(t, app, "/protected")
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body["code"])
	assert.Contains(t, body["message"], entity.RoleAdmin)
}

func TestRequireRole_TokenSinRol(t *testing.T) {
	app := buildTestApp(identity(""), entity.RoleAdmin)

	status, body, _ := get(t, app, "/protected")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_ROLE", body["code"])
}

func TestSessionMiddleware_SinSesion(t *testing.T) {
	app := buildTestApp(fakeSession{}, entity.RoleAdmin)

	status, body, _ := get(t, app, "/protected")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "NO_SESSION", body["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireState / RequestID
// ──────────────────────────────────────────────────────────────────────────────

func stateApp(loader *fakeLoader) *fiber.App {
	app := fiber.New()
	app.Get("/data", apphttp.RequireState(loader), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func TestRequireState_CargaUnaSolaVez(t *testing.T) {
	loader := &fakeLoader{}
	app := stateApp(loader)

	for range 2 {
		status, _, _ := get(t, app, "/data")
		assert.Equal(t, fiber.StatusOK, status)
	}
	assert.Equal(t, 1, loader.calls)
}

func TestRequireState_CargaFallida(t *testing.T) {
	loader := &fakeLoader{err: errors.New("api caída")}
	app := stateApp(loader)

	status, body, _ := get(t, app, "/data")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, "STATE_UNAVAILABLE", body["code"])
	assert.Contains(t, body["message"], "api caída")
}

func TestRequestID_PropagaOGenera(t *testing.T) {
	app := fiber.New()
	app.Get("/id", apphttp.RequestID(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"id": requestid.From(c.UserContext())})
	})

	_, body, header := get(t, app, "/id", requestid.Header, "req-7")
	assert.Equal(t, "req-7", header)
	assert.Equal(t, "req-7", body["id"])

	_, body, header = get(t, app, "/id")
	assert.NotEmpty(t, header)
	assert.Equal(t, header, body["id"])
}
