// Package state contenedor en memoria de los datos cargados de la API remota
// (productos, lotes, salidas y lista maestra de localizaciones). Es la única copia
// local; se reemplaza entera después de cada operación que toca la API.
package state

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
	"github.com/jhoicas/Inventario-console/pkg/logger"
)

// Repositories puertos de lectura/escritura que el store necesita.
type Repositories struct {
	Products        repository.ProductRepository
	Lots            repository.StockLotRepository
	MasterLocations repository.MasterLocationRepository
	Exits           repository.OutboundRepository
}

// Snapshot copia consistente del estado.
type Snapshot struct {
	Products        []entity.Product
	Lots            []entity.StockLot
	Exits           []entity.OutboundRecord
	MasterLocations []string
	LoadedAt        time.Time
}

// Store estado compartido por todos los casos de uso. Seguro para uso concurrente;
// los accesores devuelven copias.
type Store struct {
	repos Repositories
	log   *logger.Logger
	now   func() time.Time

	mu     sync.RWMutex
	snap   Snapshot
	loaded bool
}

// NewStore construye el store vacío.
func NewStore(repos Repositories, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{repos: repos, log: log.Named("state"), now: time.Now}
}

// Load trae productos, lotes, lista maestra y salidas en paralelo. Si alguna lectura
// falla el estado anterior queda intacto.
func (s *Store) Load(ctx context.Context) error {
	var next Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.repos.Products.List(gctx)
		if err != nil {
			return fmt.Errorf("cargar productos: %w", err)
		}
		next.Products = p
		return nil
	})
	g.Go(func() error {
		l, err := s.repos.Lots.List(gctx)
		if err != nil {
			return fmt.Errorf("cargar localizaciones: %w", err)
		}
		next.Lots = l
		return nil
	})
	g.Go(func() error {
		m, err := s.repos.MasterLocations.List(gctx)
		if err != nil {
			return fmt.Errorf("cargar lista maestra: %w", err)
		}
		next.MasterLocations = m
		return nil
	})
	g.Go(func() error {
		e, err := s.repos.Exits.List(gctx)
		if err != nil {
			return fmt.Errorf("cargar salidas: %w", err)
		}
		next.Exits = e
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.Error().Err(err).Msg("carga inicial fallida")
		return err
	}

	sort.Strings(next.MasterLocations)
	next.LoadedAt = s.now()

	s.mu.Lock()
	s.snap = next
	s.loaded = true
	s.mu.Unlock()

	s.log.Info().
		Int("products", len(next.Products)).
		Int("lots", len(next.Lots)).
		Int("exits", len(next.Exits)).
		Int("master_locations", len(next.MasterLocations)).
		Msg("estado cargado")
	return nil
}

// Clear vacía el estado (cierre de sesión).
func (s *Store) Clear() {
	s.mu.Lock()
	s.snap = Snapshot{}
	s.loaded = false
	s.mu.Unlock()
}

// Loaded indica si hubo una carga completa desde el último Clear.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Snapshot copia de todo el estado bajo un mismo lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Products:        clone(s.snap.Products),
		Lots:            clone(s.snap.Lots),
		Exits:           clone(s.snap.Exits),
		MasterLocations: clone(s.snap.MasterLocations),
		LoadedAt:        s.snap.LoadedAt,
	}
}

func (s *Store) Products() []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.snap.Products)
}

func (s *Store) Lots() []entity.StockLot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.snap.Lots)
}

func (s *Store) Exits() []entity.OutboundRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.snap.Exits)
}

func (s *Store) MasterLocations() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.snap.MasterLocations)
}

// ── Reemplazo completo ───────────────────────────────────────────────────────

func (s *Store) ReplaceProducts(p []entity.Product) {
	s.mu.Lock()
	s.snap.Products = clone(p)
	s.mu.Unlock()
}

func (s *Store) ReplaceLots(l []entity.StockLot) {
	s.mu.Lock()
	s.snap.Lots = clone(l)
	s.mu.Unlock()
}

func (s *Store) ReplaceExits(e []entity.OutboundRecord) {
	s.mu.Lock()
	s.snap.Exits = clone(e)
	s.mu.Unlock()
}

func (s *Store) ReplaceMasterLocations(m []string) {
	m = clone(m)
	sort.Strings(m)
	s.mu.Lock()
	s.snap.MasterLocations = m
	s.mu.Unlock()
}

// RefreshLots relee /locations y reemplaza los lotes.
func (s *Store) RefreshLots(ctx context.Context) error {
	l, err := s.repos.Lots.List(ctx)
	if err != nil {
		return err
	}
	s.ReplaceLots(l)
	return nil
}

// RefreshExits relee /exits y reemplaza las salidas.
func (s *Store) RefreshExits(ctx context.Context) error {
	e, err := s.repos.Exits.List(ctx)
	if err != nil {
		return err
	}
	s.ReplaceExits(e)
	return nil
}

// RefreshProducts relee /products.
func (s *Store) RefreshProducts(ctx context.Context) error {
	p, err := s.repos.Products.List(ctx)
	if err != nil {
		return err
	}
	s.ReplaceProducts(p)
	return nil
}

// ── Actualizaciones puntuales (respuesta del servidor a una sola llamada) ──────

// PutProduct reemplaza el producto con el mismo SKU o lo inserta al principio.
func (s *Store) PutProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.snap.Products {
		if strings.EqualFold(s.snap.Products[i].SKU, p.SKU) {
			s.snap.Products[i] = p
			return
		}
	}
	s.snap.Products = append([]entity.Product{p}, s.snap.Products...)
}

// RemoveProduct quita el producto del SKU (sin distinguir mayúsculas).
func (s *Store) RemoveProduct(sku string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.snap.Products[:0:0]
	for _, p := range s.snap.Products {
		if !strings.EqualFold(p.SKU, sku) {
			out = append(out, p)
		}
	}
	s.snap.Products = out
}

// PutExit reemplaza la salida con el mismo ID.
func (s *Store) PutExit(e entity.OutboundRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.snap.Exits {
		if s.snap.Exits[i].ID == e.ID {
			s.snap.Exits[i] = e
			return
		}
	}
	s.snap.Exits = append(s.snap.Exits, e)
}

// ── Lista maestra ─────────────────────────────────────────────────────────────

// HasMasterLocation indica si la etiqueta ya está registrada (sin distinguir mayúsculas).
func (s *Store) HasMasterLocation(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return containsFold(s.snap.MasterLocations, name)
}

// AddMasterLocation registra la etiqueta en la API y la inserta ordenada. Idempotente:
// si ya existe no hace ninguna llamada.
func (s *Store) AddMasterLocation(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrInvalidInput
	}
	if s.HasMasterLocation(name) {
		return nil
	}
	if err := s.repos.MasterLocations.Create(ctx, name); err != nil {
		return fmt.Errorf("registrar localización %q: %w", name, err)
	}
	s.mu.Lock()
	if !containsFold(s.snap.MasterLocations, name) {
		s.snap.MasterLocations = append(s.snap.MasterLocations, name)
		sort.Strings(s.snap.MasterLocations)
	}
	s.mu.Unlock()
	return nil
}

// RemoveMasterLocation elimina la etiqueta en la API y en memoria.
func (s *Store) RemoveMasterLocation(ctx context.Context, name string) error {
	if err := s.repos.MasterLocations.Delete(ctx, name); err != nil {
		return fmt.Errorf("eliminar localización %q: %w", name, err)
	}
	s.mu.Lock()
	out := s.snap.MasterLocations[:0:0]
	for _, m := range s.snap.MasterLocations {
		if !strings.EqualFold(m, name) {
			out = append(out, m)
		}
	}
	s.snap.MasterLocations = out
	s.mu.Unlock()
	return nil
}

func containsFold(list []string, name string) bool {
	for _, m := range list {
		if strings.EqualFold(m, name) {
			return true
		}
	}
	return false
}

func clone[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
