package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/Inventario-console/internal/application/analytics"
	"github.com/jhoicas/Inventario-console/internal/application/auth"
	"github.com/jhoicas/Inventario-console/internal/application/inventory"
	"github.com/jhoicas/Inventario-console/internal/application/ports"
	"github.com/jhoicas/Inventario-console/internal/application/state"
	"github.com/jhoicas/Inventario-console/internal/application/usecase"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/export"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/restapi"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/restapi/restapitest"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/tokenstore"
	apphttp "github.com/jhoicas/Inventario-console/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Harness: API remota falsa + cliente REST + casos de uso + router
// ──────────────────────────────────────────────────────────────────────────────

type harness struct {
	app    *fiber.App
	srv    *restapitest.Server
	tokens *tokenstore.MemoryStore
}

func tokenFor(t *testing.T, role string) string {
	t.Helper()
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"sub":  "u-1",
		"name": "Ana",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secreto-del-servidor"))
	require.NoError(t, err)
	return tok
}

func newHarness(t *testing.T, role string) *harness {
	t.Helper()
	srv := restapitest.NewServer(tokenFor(t, role))
	t.Cleanup(srv.Close)
	srv.Passwords["ana"] = "segredo"
	srv.Products = []restapitest.Product{
		{SKU: "BRC-01", Name: "Brinco Dourado", Brand: "Kualie", CostPrice: 10, RepurchaseRule: 5},
		{SKU: "COL-02", Name: "Colar Prata", Brand: "Bijux", CostPrice: 25.5},
	}
	srv.Lots = []restapitest.Lot{
		{ID: "L1", SKU: "BRC-01", Name: "Brinco Dourado", Location: "A-01", UnitsPerBox: 10, Volume: 3, Date: "01/05/2026"},
		{ID: "L2", SKU: "COL-02", Name: "Colar Prata", Location: "B-01", UnitsPerBox: 6, Volume: 2, Date: "01/05/2026"},
	}
	srv.MasterLocations = []string{"A-01", "B-01", "B-02"}
	srv.Exits = []restapitest.Exit{
		{ID: "E1", SKU: "BRC-01", Name: "Brinco Dourado", Quantity: 20, Date: "10/05/2026", ExitType: entity.ExitTypeFull, Store: entity.StoreShopee},
	}

	client := restapi.NewClient(srv.URL, 5*time.Second, nil)
	products := restapi.NewProductRepository(client)
	lots := restapi.NewStockLotRepository(client)
	exits := restapi.NewOutboundRepository(client)
	requests := restapi.NewDeletionRequestRepository(client)

	store := state.NewStore(state.Repositories{
		Products:        products,
		Lots:            lots,
		MasterLocations: restapi.NewMasterLocationRepository(client),
		Exits:           exits,
	}, nil)
	tokens := &tokenstore.MemoryStore{}

	productUC := usecase.NewProductUseCase(products, store, nil)
	locationUC := inventory.NewLocationUseCase(lots, exits, store, nil)
	exitUC := usecase.NewExitUseCase(exits, store, nil)
	availabilityUC := usecase.NewAvailabilityUseCase(store, nil)
	dashboardUC := appanalytics.NewDashboardUseCase(store, requests, nil, nil)
	exportUC := usecase.NewExportUseCase(map[string]ports.SheetExporter{
		usecase.FormatXLSX: export.NewXLSXExporter(),
		usecase.FormatCSV:  export.NewCSVExporter(','),
	}, nil).
		Register(usecase.DatasetLocations, "localizacao_produtos", locationUC.Records).
		Register(usecase.DatasetAvailability, "disponibilidade_localizacao", availabilityUC.Records)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		SessionUC:      auth.NewSessionUseCase(restapi.NewAuthRepository(client), tokens, client, store, nil),
		Store:          store,
		LocationUC:     locationUC,
		ProductUC:      productUC,
		ExitUC:         exitUC,
		AvailabilityUC: availabilityUC,
		AdminUC: usecase.NewAdminUseCase(requests, restapi.NewUserRepository(client),
			restapi.NewAuditLogRepository(client), store, nil),
		ExportUC:    exportUC,
		DashboardUC: dashboardUC,
		PageSize:    1,
	})
	return &harness{app: app, srv: srv, tokens: tokens}
}

func (h *harness) do(t *testing.T, method, path, body string, headers ...string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	resp := h.do(t, fiber.MethodPost, "/api/session/login", `{"name":"ana","password":"segredo"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	h.srv.ResetCalls()
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_SinSesionDevuelve401(t *testing.T) {
	h := newHarness(t, entity.RoleAdmin)

	for _, path := range []string{"/api/locations", "/api/products", "/api/home", "/api/admin/users"} {
		resp := h.do(t, fiber.MethodGet, path, "")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, path)
		assert.Equal(t, "NO_SESSION", decodeBody(t, resp)["code"], path)
	}
	assert.Empty(t, h.srv.Calls, "sin sesión no se llama a la API")
}

func TestRouter_LoginPersisteTokenYCargaEstado(t *testing.T) {
	h := newHarness(t, entity.RoleAdmin)

	resp := h.do(t, fiber.MethodPost, "/api/session/login", `{"name":"ana","password":"segredo"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["authenticated"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "Ana", user["name"])
	assert.Equal(t, true, user["is_admin"])

	tok, err := h.tokens.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, h.srv.Token, tok)

	resp = h.do(t, fiber.MethodGet, "/api/home", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	home := decodeBody(t, resp)
	assert.EqualValues(t, 2, home["unique_products"])
	assert.EqualValues(t, 3*10+2*6, home["items_in_stock"])
	assert.EqualValues(t, 2, home["occupied_locations"])
	assert.EqualValues(t, 1, home["free_locations"])
}

func TestRouter_LoginCredencialesInvalidas(t *testing.T) {
	h := newHarness(t, entity.RoleAdmin)

	resp := h.do(t, fiber.MethodPost, "/api/session/login", `{"name":"ana","password":"errada"}`)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = h.do(t, fiber.MethodPost, "/api/session/login", `{"name":"ana"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRouter_LogoutCierraSesion(t *testing.T) {
	h := newHarness(t, entity.RoleAdmin)
	h.login(t)

	resp := h.do(t, fiber.MethodDelete, "/api/session", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, false, decodeBody(t, resp)["authenticated"])

	tok, err := h.tokens.LoadToken()
	require.NoError(t, err)
	assert.Empty(t, tok)

	resp = h.do(t, fiber.MethodGet, "/api/locations", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_CargaFallidaReintentaEnLaSiguientePeticion(t *testing.T) {
	h := newHarness(t, entity.RoleAdmin)
	h.srv.Fail["GET /exits"] = http.StatusInternalServerError

	resp := h.do(t, fiber.MethodPost, "/api/session/login", `{"name":"ana","password":"segredo"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["authenticated"])
	assert.NotEmpty(t, body["warning"])

	resp = h.do(t, fiber.MethodGet, "/api/locations", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "STATE_UNAVAILABLE", decodeBody(t, resp)["code"])

	delete(h.srv.Fail, "GET /exits")
	resp = h.do(t, fiber.MethodGet, "/api/locations", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Operaciones de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_PlaceComparteRequestIDConLaAPI(t *testing.T) {
	h := newHarness(t, entity.RoleAdmin)
	h.login(t)

	resp := h.do(t, fiber.MethodPost, "/api/locations",
		`{"sku":"brc-01","location":"C-01","units_per_box":10,"containers":2}`,
		"X-Request-ID", "req-place")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "req-place", resp.Header.Get("X-Request-ID"))
	body := decodeBody(t, resp)
	assert.Equal(t, "req-place", body["operation_id"])
	assert.EqualValues(t, 1, body["remote_calls"])

	require.NotEmpty(t, h.srv.Calls)
	assert.Equal(t, "POST /location", h.srv.Calls[0].Key())
	assert.Contains(t, h.srv.CallKeys(), "POST /master-location")
	for _, c := range h.srv.Calls {
		assert.Equal(t, "req-place", c.RequestID, c.Key())
	}
	assert.Contains(t, h.srv.MasterLocations, "C-01")
}

func TestRouter_PlaceProductoInexistente(t *testing.T) {
	h := newHarness(t, entity.RoleAdmin)
	h.login(t)

	resp := h.do(t, fiber.MethodPost, "/api/locations", `{"sku":"NOPE","location":"C-01","units_per_box":10,"containers":2}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "PRODUCT_NOT_FOUND", decodeBody(t, resp)["code"])
	assert.Empty(t, h.srv.MutationKeys())
}

func TestRouter_TransferAOcupadaPorOtroSKU(t *testing.T) {
	h := newHarness(t, entity.RoleAdmin)
	h.login(t)

	resp := h.do(t, fiber.MethodPost, "/api/locations/L1/transfer", `{"destination":"b-01","containers":1}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "LOCATION_OCCUPIED", decodeBody(t, resp)["code"])
	assert.Empty(t, h.srv.MutationKeys())
}

func TestRouter_TransferCantidadInsuficiente(t *testing.T) {
	h := newHarness(t, entity.RoleAdmin)
	h.login(t)

	resp := h.do(t, fiber.MethodPost, "/api/locations/L1/transfer", `{"destination":"B-02","containers":4}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decodeBody(t, resp)["code"])
}

func TestRouter_ShipFullExigeTienda(t *testing.T) {
	h := newHarness(t, entity.RoleAdmin)
	h.login(t)

	resp := h.do(t, fiber.MethodPost, "/api/locations/L1/ship", `{"exit_type":"Full","containers":1}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "STORE_REQUIRED", decodeBody(t, resp)["code"])
	assert.Empty(t, h.srv.MutationKeys())
}

func TestRouter_ShipRegistraSalidaYDescuentaLote(t *testing.T) {
	h := newHarness(t, entity.RoleAdmin)
	h.login(t)

	resp := h.do(t, fiber.MethodPost, "/api/locations/L1/ship",
		`{"exit_type":"Full","store":"Amazon","observation":"pedido 42","containers":1}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	exit := body["exit"].(map[string]any)
	assert.EqualValues(t, 10, exit["quantity"])
	assert.Equal(t, "Amazon", exit["store"])

	assert.Equal(t, []string{"POST /exit", "PUT /location/L1"}, h.srv.MutationKeys())
	require.Len(t, h.srv.Exits, 2)
	assert.Equal(t, 2, h.srv.Lots[0].Volume)
}

func TestRouter_ShipFallaParcialDevuelve502(t *testing.T) {
	h := newHarness(t, entity.RoleAdmin)
	h.login(t)
	h.srv.Fail["DELETE /location/L1"] = http.StatusInternalServerError

	resp := h.do(t, fiber.MethodPost, "/api/locations/L1/ship", `{"exit_type":"Expedição","containers":3}`)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "PARTIAL_SEQUENCE", decodeBody(t, resp)["code"])
	// La salida quedó registrada en la API y la consola releyó el estado.
	assert.Len(t, h.srv.Exits, 2)
	assert.Contains(t, h.srv.CallKeys(), "GET /locations")
}

func TestRouter_ListadoUsaPageSizeConfigurado(t *testing.T) {
	h := newHarness(t, entity.RoleAdmin)
	h.login(t)

	resp := h.do(t, fiber.MethodGet, "/api/locations", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Len(t, body["items"], 1)
	page := body["page"].(map[string]any)
	assert.EqualValues(t, 2, page["total"])
	assert.EqualValues(t, 2, page["total_pages"])

	resp = h.do(t, fiber.MethodGet, "/api/locations?q=colar&page_size=5", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	require.Len(t, body["items"], 1)
	assert.Equal(t, "L2", body["items"].([]any)[0].(map[string]any)["id"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Roles
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_UsuarioNoAccedeAAdministracion(t *testing.T) {
	h := newHarness(t, entity.RoleUsuario)
	h.login(t)

	resp := h.do(t, fiber.MethodGet, "/api/admin/users", "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = h.do(t, fiber.MethodDelete, "/api/products/BRC-01", "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Empty(t, h.srv.MutationKeys())

	resp = h.do(t, fiber.MethodPost, "/api/products/BRC-01/deletion-request", "")
	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)
	require.Len(t, h.srv.DeletionRequests, 1)
	assert.Equal(t, "BRC-01", h.srv.DeletionRequests[0].ProductSKU)
}

func TestRouter_AdminEliminaProducto(t *testing.T) {
	h := newHarness(t, entity.RoleAdmin)
	h.login(t)

	resp := h.do(t, fiber.MethodDelete, "/api/products/COL-02", "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, []string{"DELETE /product/COL-02"}, h.srv.MutationKeys())

	resp = h.do(t, fiber.MethodGet, "/api/products/COL-02", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard y exportación
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_DashboardBarrasPorTienda(t *testing.T) {
	h := newHarness(t, entity.RoleAdmin)
	h.login(t)

	resp := h.do(t, fiber.MethodGet, "/api/dashboard?stores=Shopee,Amazon", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	bars := body["bars"].([]any)
	require.Len(t, bars, 4)
	assert.Equal(t, "Shopee", bars[2].(map[string]any)["label"])
	assert.EqualValues(t, 20, bars[2].(map[string]any)["quantity"])
	assert.EqualValues(t, 0, bars[3].(map[string]any)["quantity"])

	resp = h.do(t, fiber.MethodGet, "/api/dashboard?stores=Netshoes", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRouter_ExportaPlanilla(t *testing.T) {
	h := newHarness(t, entity.RoleAdmin)
	h.login(t)

	resp := h.do(t, fiber.MethodGet, "/api/export/locations", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "localizacao_produtos.xlsx")
	content, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, len(content) > 0)

	resp = h.do(t, fiber.MethodGet, "/api/export/availability?format=csv", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "disponibilidade_localizacao.csv")
	content, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(content), "B-02")

	resp = h.do(t, fiber.MethodGet, "/api/export/nada", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
