// Package restapitest API remota en memoria sobre httptest para tests de integración
// del cliente, los casos de uso y los handlers.
package restapitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
)

// Product forma JSON de un producto en la API.
type Product struct {
	SKU            string   `json:"sku"`
	Name           string   `json:"name"`
	CostPrice      float64  `json:"costPrice"`
	Quantity       int      `json:"quantity"`
	Brand          string   `json:"brand"`
	UnitsPerBox    int      `json:"unitsPerBox,omitempty"`
	Color          string   `json:"color"`
	RepurchaseRule int      `json:"repurchaseRule"`
	History        *History `json:"history,omitempty"`
}

// History historial de precios de un producto.
type History struct {
	LastEditDate  string  `json:"lastEditDate"`
	PreviousPrice float64 `json:"previousPrice"`
	BestPrice     float64 `json:"bestPrice"`
}

// Lot forma JSON de un lote por localización.
type Lot struct {
	ID          string `json:"id"`
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	UnitsPerBox int    `json:"unitsPerBox"`
	Volume      int    `json:"volume"`
	Date        string `json:"date"`
}

// Exit forma JSON de un registro de salida.
type Exit struct {
	ID          string `json:"id"`
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	Date        string `json:"date"`
	ExitType    string `json:"exitType"`
	Store       string `json:"store,omitempty"`
	Observation string `json:"observation,omitempty"`
}

// DeletionRequest solicitud de eliminación.
type DeletionRequest struct {
	ID            string `json:"id"`
	ProductSKU    string `json:"productSku"`
	Status        string `json:"status"`
	RequestedByID string `json:"requestedById"`
	CreatedAt     string `json:"create_at"`
}

// User usuario administrado.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt string `json:"create_at"`
}

// AuditLog entrada de auditoría.
type AuditLog struct {
	ID         string  `json:"id"`
	ActionType string  `json:"actionType"`
	UserID     string  `json:"userId"`
	Details    *string `json:"details"`
	Timestamp  string  `json:"timestamp"`
}

// Call llamada recibida.
type Call struct {
	Method    string
	Path      string
	RequestID string
	Auth      string
	Body      string
}

// Key "METHOD /path" de la llamada.
func (c Call) Key() string { return c.Method + " " + c.Path }

// Server API remota falsa. Los campos exportados pueden sembrarse antes de usarla
// y leerse después; acceder a ellos con Lock/Unlock si hay llamadas en curso.
type Server struct {
	*httptest.Server
	sync.Mutex

	// Token emitido por /login y exigido en el resto de rutas.
	Token string
	// Passwords credenciales válidas por nombre.
	Passwords map[string]string

	Products         []Product
	Lots             []Lot
	Exits            []Exit
	MasterLocations  []string
	DeletionRequests []DeletionRequest
	Users            []User
	AuditLogs        []AuditLog

	// Fail respuestas forzadas por "METHOD /path": status HTTP.
	Fail map[string]int

	Calls []Call

	seq int
}

// NewServer arranca el servidor. Cerrar con Close.
func NewServer(token string) *Server {
	s := &Server{
		Token:     token,
		Passwords: map[string]string{},
		Fail:      map[string]int{},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", s.login)
	mux.HandleFunc("GET /products", s.auth(s.listProducts))
	mux.HandleFunc("POST /product", s.auth(s.createProduct))
	mux.HandleFunc("PUT /product/{sku}", s.auth(s.updateProduct))
	mux.HandleFunc("DELETE /product/{sku}", s.auth(s.deleteProduct))
	mux.HandleFunc("POST /product/request-deletion/{sku}", s.auth(s.requestDeletion))
	mux.HandleFunc("GET /locations", s.auth(s.listLots))
	mux.HandleFunc("POST /location", s.auth(s.createLot))
	mux.HandleFunc("PUT /location/{id}", s.auth(s.updateLot))
	mux.HandleFunc("DELETE /location/{id}", s.auth(s.deleteLot))
	mux.HandleFunc("GET /master-locations", s.auth(s.listMasters))
	mux.HandleFunc("POST /master-location", s.auth(s.createMaster))
	mux.HandleFunc("DELETE /master-location/{name}", s.auth(s.deleteMaster))
	mux.HandleFunc("GET /exits", s.auth(s.listExits))
	mux.HandleFunc("POST /exit", s.auth(s.createExit))
	mux.HandleFunc("PUT /exit/{id}/observation", s.auth(s.updateObservation))
	mux.HandleFunc("GET /admin/deletion-requests", s.auth(s.listDeletionRequests))
	mux.HandleFunc("GET /admin/deletion-requests/count", s.auth(s.countDeletionRequests))
	mux.HandleFunc("POST /admin/deletion-requests/{id}/approve", s.auth(s.resolveDeletion("APPROVED")))
	mux.HandleFunc("POST /admin/deletion-requests/{id}/reject", s.auth(s.resolveDeletion("REJECTED")))
	mux.HandleFunc("GET /admin/users", s.auth(s.listUsers))
	mux.HandleFunc("POST /admin/user", s.auth(s.createUser))
	mux.HandleFunc("PUT /admin/user/{id}", s.auth(s.updateUser))
	mux.HandleFunc("GET /admin/audit-logs", s.auth(s.listAuditLogs))

	s.Server = httptest.NewServer(s.record(mux))
	return s
}

// CallKeys claves "METHOD /path" de las llamadas recibidas, en orden.
func (s *Server) CallKeys() []string {
	s.Lock()
	defer s.Unlock()
	keys := make([]string, 0, len(s.Calls))
	for _, c := range s.Calls {
		keys = append(keys, c.Key())
	}
	return keys
}

// MutationKeys como CallKeys pero sin las lecturas (GET).
func (s *Server) MutationKeys() []string {
	var out []string
	for _, k := range s.CallKeys() {
		if !strings.HasPrefix(k, http.MethodGet+" ") {
			out = append(out, k)
		}
	}
	return out
}

// ResetCalls vacía el registro de llamadas.
func (s *Server) ResetCalls() {
	s.Lock()
	s.Calls = nil
	s.Unlock()
}

// ── Middleware ────────────────────────────────────────────────────────────────

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body strings.Builder
		if r.Body != nil {
			var raw json.RawMessage
			if err := json.NewDecoder(r.Body).Decode(&raw); err == nil {
				body.Write(raw)
			}
			r.Body = io.NopCloser(strings.NewReader(body.String()))
		}
		call := Call{
			Method:    r.Method,
			Path:      r.URL.Path,
			RequestID: r.Header.Get("X-Request-ID"),
			Auth:      r.Header.Get("Authorization"),
			Body:      body.String(),
		}
		s.Lock()
		s.Calls = append(s.Calls, call)
		status, fail := s.Fail[call.Key()]
		s.Unlock()
		if fail {
			writeJSON(w, status, map[string]string{"error": fmt.Sprintf("falla forzada en %s", call.Key())})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) auth(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.Token {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "token inválido"})
			return
		}
		s.Lock()
		defer s.Unlock()
		h(w, r)
	}
}

// ── Handlers ──────────────────────────────────────────────────────────────────

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in struct{ Name, Password string }
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "corpo inválido"})
		return
	}
	s.Lock()
	pw, ok := s.Passwords[in.Name]
	s.Unlock()
	if !ok || pw != in.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "credenciais inválidas"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": s.Token})
}

func (s *Server) listProducts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, nonNil(s.Products))
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var p Product
	if !decode(w, r, &p) {
		return
	}
	for _, e := range s.Products {
		if strings.EqualFold(e.SKU, p.SKU) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "SKU já cadastrado"})
			return
		}
	}
	s.Products = append([]Product{p}, s.Products...)
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	var p Product
	if !decode(w, r, &p) {
		return
	}
	sku := r.PathValue("sku")
	for i := range s.Products {
		if s.Products[i].SKU == sku {
			s.Products[i] = p
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "produto não encontrado"})
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	sku := r.PathValue("sku")
	for i := range s.Products {
		if s.Products[i].SKU == sku {
			s.Products = append(s.Products[:i], s.Products[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "produto não encontrado"})
}

func (s *Server) requestDeletion(w http.ResponseWriter, r *http.Request) {
	s.DeletionRequests = append(s.DeletionRequests, DeletionRequest{
		ID:         s.nextID("req"),
		ProductSKU: r.PathValue("sku"),
		Status:     "PENDING",
	})
	writeJSON(w, http.StatusCreated, map[string]string{"message": "solicitação registrada"})
}

func (s *Server) listLots(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, nonNil(s.Lots))
}

func (s *Server) createLot(w http.ResponseWriter, r *http.Request) {
	var l Lot
	if !decode(w, r, &l) {
		return
	}
	l.ID = s.nextID("lot")
	s.Lots = append(s.Lots, l)
	writeJSON(w, http.StatusCreated, l)
}

func (s *Server) updateLot(w http.ResponseWriter, r *http.Request) {
	var l Lot
	if !decode(w, r, &l) {
		return
	}
	id := r.PathValue("id")
	for i := range s.Lots {
		if s.Lots[i].ID == id {
			l.ID = id
			s.Lots[i] = l
			writeJSON(w, http.StatusOK, l)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "localização não encontrada"})
}

func (s *Server) deleteLot(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	for i := range s.Lots {
		if s.Lots[i].ID == id {
			s.Lots = append(s.Lots[:i], s.Lots[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "localização não encontrada"})
}

func (s *Server) listMasters(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, nonNil(s.MasterLocations))
}

func (s *Server) createMaster(w http.ResponseWriter, r *http.Request) {
	var in struct{ Name string }
	if !decode(w, r, &in) {
		return
	}
	s.MasterLocations = append(s.MasterLocations, in.Name)
	sort.Strings(s.MasterLocations)
	writeJSON(w, http.StatusCreated, in)
}

func (s *Server) deleteMaster(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	for i, m := range s.MasterLocations {
		if m == name {
			s.MasterLocations = append(s.MasterLocations[:i], s.MasterLocations[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "localização não encontrada"})
}

func (s *Server) listExits(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, nonNil(s.Exits))
}

func (s *Server) createExit(w http.ResponseWriter, r *http.Request) {
	var e Exit
	if !decode(w, r, &e) {
		return
	}
	e.ID = s.nextID("exit")
	s.Exits = append(s.Exits, e)
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) updateObservation(w http.ResponseWriter, r *http.Request) {
	var in struct{ Observation string }
	if !decode(w, r, &in) {
		return
	}
	id := r.PathValue("id")
	for i := range s.Exits {
		if s.Exits[i].ID == id {
			s.Exits[i].Observation = in.Observation
			writeJSON(w, http.StatusOK, s.Exits[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "saída não encontrada"})
}

func (s *Server) listDeletionRequests(w http.ResponseWriter, _ *http.Request) {
	var pending []DeletionRequest
	for _, d := range s.DeletionRequests {
		if d.Status == "PENDING" {
			pending = append(pending, d)
		}
	}
	writeJSON(w, http.StatusOK, nonNil(pending))
}

func (s *Server) countDeletionRequests(w http.ResponseWriter, _ *http.Request) {
	n := 0
	for _, d := range s.DeletionRequests {
		if d.Status == "PENDING" {
			n++
		}
	}
	writeJSON(w, http.StatusOK, map[string]int{"pendingRequests": n})
}

func (s *Server) resolveDeletion(status string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		for i := range s.DeletionRequests {
			if s.DeletionRequests[i].ID == id {
				s.DeletionRequests[i].Status = status
				writeJSON(w, http.StatusOK, s.DeletionRequests[i])
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "solicitação não encontrada"})
	}
}

func (s *Server) listUsers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, nonNil(s.Users))
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var in struct{ Name, Password, Role string }
	if !decode(w, r, &in) {
		return
	}
	u := User{ID: s.nextID("user"), Name: in.Name, Role: in.Role}
	s.Users = append(s.Users, u)
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	var in struct{ Role string }
	if !decode(w, r, &in) {
		return
	}
	id := r.PathValue("id")
	for i := range s.Users {
		if s.Users[i].ID == id {
			s.Users[i].Role = in.Role
			writeJSON(w, http.StatusOK, s.Users[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "usuário não encontrado"})
}

func (s *Server) listAuditLogs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, nonNil(s.AuditLogs))
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *Server) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "corpo inválido"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
