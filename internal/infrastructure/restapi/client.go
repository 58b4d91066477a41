// Package restapi adaptador de los puertos de repositorio sobre la API REST remota
// del gerenciador de estoque. La API es la autoridad de todos los datos y de la autorización.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-console/pkg/logger"
	"github.com/jhoicas/Inventario-console/pkg/requestid"
)

func init() {
	// La API remota espera precios como números JSON, no como strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// maxResponseBody límite de lectura de una respuesta (los listados vienen completos, sin paginar).
const maxResponseBody = 32 << 20

// Client cliente HTTP de la API remota. Guarda el token bearer de la sesión activa;
// es seguro para uso concurrente.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger

	mu    sync.RWMutex
	token string
}

// NewClient construye el cliente. timeout cero deja el límite en manos del contexto de cada llamada.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.Named("restapi"),
	}
}

// SetToken fija el token bearer de todas las llamadas siguientes.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken elimina la cabecera Authorization por defecto.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// HasToken indica si hay un token configurado.
func (c *Client) HasToken() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// ── Transporte ────────────────────────────────────────────────────────────────

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

func (c *Client) put(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPut, path, in, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// do ejecuta la llamada. Respuestas no 2xx se convierten en *APIError; out nil descarta el cuerpo.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("restapi: serializar request %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("restapi: crear request %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.bearer(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	reqID := requestid.From(ctx)
	if reqID != "" {
		req.Header.Set(requestid.Header, reqID)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("method", method).Str("path", path).Str("request_id", reqID).Msg("llamada a la API remota fallida")
		if ctx.Err() != nil {
			return &APIError{Method: method, Path: path, Message: "timeout o cancelación", cause: ctx.Err()}
		}
		return &APIError{Method: method, Path: path, Message: "API remota inalcanzable", cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return &APIError{Method: method, Path: path, Status: resp.StatusCode, Message: "leer respuesta", cause: err}
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Str("request_id", reqID).
		Msg("api remota")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Method: method, Path: path, Status: resp.StatusCode, Message: serverMessage(raw)}
		c.log.Warn().Int("status", resp.StatusCode).Str("method", method).Str("path", path).Str("request_id", reqID).Str("message", apiErr.Message).Msg("api remota respondió con error")
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{Method: method, Path: path, Status: resp.StatusCode, Message: "respuesta no es JSON válido", cause: err}
	}
	return nil
}

// serverMessage extrae el mensaje de error del cuerpo ({"error": ...} o {"message": ...}).
func serverMessage(raw []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	msg := strings.TrimSpace(string(raw))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}

// pathEscape escapa un segmento de ruta (etiquetas de localización con espacios o barras).
func pathEscape(s string) string {
	return url.PathEscape(s)
}
