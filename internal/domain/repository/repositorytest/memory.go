// Package repositorytest implementaciones en memoria de los puertos de repositorio,
// con registro de llamadas e inyección de fallas, para tests de casos de uso.
package repositorytest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
)

var (
	_ repository.ProductRepository         = (*Backend)(nil)
	_ repository.AuthRepository            = (*Backend)(nil)
	_ repository.DeletionRequestRepository = (*DeletionRequests)(nil)
	_ repository.UserRepository            = (*Users)(nil)
	_ repository.AuditLogRepository        = (*AuditLogs)(nil)
	_ repository.StockLotRepository        = (*Lots)(nil)
	_ repository.MasterLocationRepository  = (*Masters)(nil)
	_ repository.OutboundRepository        = (*Exits)(nil)
)

// Backend estado remoto simulado. Cada puerto se obtiene con su accesor
// (Lots(), Exits(), ...) y comparte el mismo estado y registro de llamadas.
type Backend struct {
	mu sync.Mutex

	ProductsData         []entity.Product
	LotsData             []entity.StockLot
	ExitsData            []entity.OutboundRecord
	MasterData           []string
	DeletionRequestsData []entity.DeletionRequest
	UsersData            []entity.User
	AuditLogsData        []entity.AuditLog

	// Token devuelto por Login cuando Passwords[name] coincide.
	Token     string
	Passwords map[string]string

	// FailOn llamadas que fallan: clave "lots.create", "exits.list", etc.
	FailOn map[string]error
	// FailAfter la N-ésima mutación (1 = primera) falla con domain.ErrRemote.
	FailAfter int

	Calls     []string
	mutations int
	seq       int
}

// NewBackend backend vacío.
func NewBackend() *Backend {
	return &Backend{Passwords: map[string]string{}, FailOn: map[string]error{}}
}

// CallLog copia del registro de llamadas.
func (b *Backend) CallLog() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.Calls...)
}

// Mutations llamadas registradas que no son lecturas.
func (b *Backend) Mutations() []string {
	var out []string
	for _, c := range b.CallLog() {
		if !strings.HasSuffix(c, ".list") && !strings.HasSuffix(c, ".count") {
			out = append(out, c)
		}
	}
	return out
}

// ResetCalls limpia el registro.
func (b *Backend) ResetCalls() {
	b.mu.Lock()
	b.Calls = nil
	b.mutations = 0
	b.mu.Unlock()
}

// enter registra la llamada y devuelve la falla configurada. Se llama con b.mu tomado.
func (b *Backend) enter(call string, mutation bool) error {
	b.Calls = append(b.Calls, call)
	if err, ok := b.FailOn[call]; ok {
		return err
	}
	if mutation {
		b.mutations++
		if b.FailAfter > 0 && b.mutations == b.FailAfter {
			return fmt.Errorf("%w: falla simulada en %s", domain.ErrRemote, call)
		}
	}
	return nil
}

func (b *Backend) nextID(prefix string) string {
	b.seq++
	return fmt.Sprintf("%s-%d", prefix, b.seq)
}

// ── Productos ─────────────────────────────────────────────────────────────────

func (b *Backend) List(ctx context.Context) ([]entity.Product, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("products.list", false); err != nil {
		return nil, err
	}
	return append([]entity.Product(nil), b.ProductsData...), nil
}

func (b *Backend) Create(ctx context.Context, p entity.Product) (entity.Product, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("products.create", true); err != nil {
		return entity.Product{}, err
	}
	for _, e := range b.ProductsData {
		if strings.EqualFold(e.SKU, p.SKU) {
			return entity.Product{}, domain.ErrConflict
		}
	}
	b.ProductsData = append([]entity.Product{p}, b.ProductsData...)
	return p, nil
}

func (b *Backend) Update(ctx context.Context, p entity.Product) (entity.Product, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("products.update", true); err != nil {
		return entity.Product{}, err
	}
	for i := range b.ProductsData {
		if b.ProductsData[i].SKU == p.SKU {
			b.ProductsData[i] = p
			return p, nil
		}
	}
	return entity.Product{}, domain.ErrNotFound
}

func (b *Backend) Delete(ctx context.Context, sku string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("products.delete", true); err != nil {
		return err
	}
	for i := range b.ProductsData {
		if b.ProductsData[i].SKU == sku {
			b.ProductsData = append(b.ProductsData[:i], b.ProductsData[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (b *Backend) RequestDeletion(ctx context.Context, sku string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("products.request_deletion", true); err != nil {
		return err
	}
	b.DeletionRequestsData = append(b.DeletionRequestsData, entity.DeletionRequest{
		ID: b.nextID("req"), ProductSKU: sku, Status: entity.DeletionStatusPending,
	})
	return nil
}

// Login implementa repository.AuthRepository.
func (b *Backend) Login(ctx context.Context, name, password string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("auth.login", false); err != nil {
		return "", err
	}
	if pw, ok := b.Passwords[name]; !ok || pw != password {
		return "", fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthorized)
	}
	return b.Token, nil
}

// ── Lotes ─────────────────────────────────────────────────────────────────────

// Lots puerto de lotes.
type Lots struct{ b *Backend }

func (b *Backend) Lots() *Lots { return &Lots{b} }

func (r *Lots) List(ctx context.Context) ([]entity.StockLot, error) {
	b := r.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("lots.list", false); err != nil {
		return nil, err
	}
	return append([]entity.StockLot(nil), b.LotsData...), nil
}

func (r *Lots) Create(ctx context.Context, lot entity.StockLot) error {
	b := r.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("lots.create", true); err != nil {
		return err
	}
	lot.ID = b.nextID("lot")
	b.LotsData = append(b.LotsData, lot)
	return nil
}

func (r *Lots) Update(ctx context.Context, lot entity.StockLot) error {
	b := r.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("lots.update", true); err != nil {
		return err
	}
	for i := range b.LotsData {
		if b.LotsData[i].ID == lot.ID {
			b.LotsData[i] = lot
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *Lots) Delete(ctx context.Context, id string) error {
	b := r.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("lots.delete", true); err != nil {
		return err
	}
	for i := range b.LotsData {
		if b.LotsData[i].ID == id {
			b.LotsData = append(b.LotsData[:i], b.LotsData[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// ── Lista maestra ─────────────────────────────────────────────────────────────

// Masters puerto de la lista maestra.
type Masters struct{ b *Backend }

func (b *Backend) Masters() *Masters { return &Masters{b} }

func (r *Masters) List(ctx context.Context) ([]string, error) {
	b := r.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("masters.list", false); err != nil {
		return nil, err
	}
	return append([]string{}, b.MasterData...), nil
}

func (r *Masters) Create(ctx context.Context, name string) error {
	b := r.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("masters.create", true); err != nil {
		return err
	}
	b.MasterData = append(b.MasterData, name)
	return nil
}

func (r *Masters) Delete(ctx context.Context, name string) error {
	b := r.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("masters.delete", true); err != nil {
		return err
	}
	for i, m := range b.MasterData {
		if m == name {
			b.MasterData = append(b.MasterData[:i], b.MasterData[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// ── Salidas ───────────────────────────────────────────────────────────────────

// Exits puerto de salidas.
type Exits struct{ b *Backend }

func (b *Backend) Exits() *Exits { return &Exits{b} }

func (r *Exits) List(ctx context.Context) ([]entity.OutboundRecord, error) {
	b := r.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("exits.list", false); err != nil {
		return nil, err
	}
	return append([]entity.OutboundRecord(nil), b.ExitsData...), nil
}

func (r *Exits) Create(ctx context.Context, rec entity.OutboundRecord) (entity.OutboundRecord, error) {
	b := r.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("exits.create", true); err != nil {
		return entity.OutboundRecord{}, err
	}
	rec.ID = b.nextID("exit")
	b.ExitsData = append(b.ExitsData, rec)
	return rec, nil
}

func (r *Exits) UpdateObservation(ctx context.Context, id, observation string) (entity.OutboundRecord, error) {
	b := r.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("exits.update_observation", true); err != nil {
		return entity.OutboundRecord{}, err
	}
	for i := range b.ExitsData {
		if b.ExitsData[i].ID == id {
			b.ExitsData[i].Observation = observation
			return b.ExitsData[i], nil
		}
	}
	return entity.OutboundRecord{}, domain.ErrNotFound
}

// ── Administración ────────────────────────────────────────────────────────────

// DeletionRequests puerto de solicitudes de eliminación.
type DeletionRequests struct{ b *Backend }

func (b *Backend) DeletionRequests() *DeletionRequests { return &DeletionRequests{b} }

func (r *DeletionRequests) List(ctx context.Context) ([]entity.DeletionRequest, error) {
	b := r.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("deletion_requests.list", false); err != nil {
		return nil, err
	}
	var out []entity.DeletionRequest
	for _, d := range b.DeletionRequestsData {
		if d.Status == entity.DeletionStatusPending {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *DeletionRequests) resolve(call, id, status string) error {
	b := r.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(call, true); err != nil {
		return err
	}
	for i := range b.DeletionRequestsData {
		if b.DeletionRequestsData[i].ID == id {
			b.DeletionRequestsData[i].Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *DeletionRequests) Approve(ctx context.Context, id string) error {
	return r.resolve("deletion_requests.approve", id, entity.DeletionStatusApproved)
}

func (r *DeletionRequests) Reject(ctx context.Context, id string) error {
	return r.resolve("deletion_requests.reject", id, entity.DeletionStatusRejected)
}

func (r *DeletionRequests) CountPending(ctx context.Context) (int, error) {
	b := r.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("deletion_requests.count", false); err != nil {
		return 0, err
	}
	n := 0
	for _, d := range b.DeletionRequestsData {
		if d.Status == entity.DeletionStatusPending {
			n++
		}
	}
	return n, nil
}

// Users puerto de usuarios.
type Users struct{ b *Backend }

func (b *Backend) Users() *Users { return &Users{b} }

func (r *Users) List(ctx context.Context) ([]entity.User, error) {
	b := r.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("users.list", false); err != nil {
		return nil, err
	}
	return append([]entity.User(nil), b.UsersData...), nil
}

func (r *Users) Create(ctx context.Context, name, password, role string) (entity.User, error) {
	b := r.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("users.create", true); err != nil {
		return entity.User{}, err
	}
	u := entity.User{ID: b.nextID("user"), Name: name, Role: role}
	b.UsersData = append(b.UsersData, u)
	return u, nil
}

func (r *Users) UpdateRole(ctx context.Context, id, role string) (entity.User, error) {
	b := r.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("users.update_role", true); err != nil {
		return entity.User{}, err
	}
	for i := range b.UsersData {
		if b.UsersData[i].ID == id {
			b.UsersData[i].Role = role
			return b.UsersData[i], nil
		}
	}
	return entity.User{}, domain.ErrNotFound
}

// AuditLogs puerto del log de auditoría.
type AuditLogs struct{ b *Backend }

func (b *Backend) AuditLogs() *AuditLogs { return &AuditLogs{b} }

func (r *AuditLogs) List(ctx context.Context) ([]entity.AuditLog, error) {
	b := r.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("audit_logs.list", false); err != nil {
		return nil, err
	}
	return append([]entity.AuditLog(nil), b.AuditLogsData...), nil
}
