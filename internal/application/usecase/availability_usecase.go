package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/ports"
	"github.com/jhoicas/Inventario-console/internal/application/state"
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/inventory"
	"github.com/jhoicas/Inventario-console/pkg/logger"
	"github.com/jhoicas/Inventario-console/pkg/search"
)

// AvailabilityUseCase lista maestra de localizaciones con su estado de ocupación.
type AvailabilityUseCase struct {
	store *state.Store
	log   *logger.Logger
}

// NewAvailabilityUseCase construye el caso de uso.
func NewAvailabilityUseCase(store *state.Store, log *logger.Logger) *AvailabilityUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AvailabilityUseCase{store: store, log: log.Named("availability")}
}

// List etiquetas filtradas por nombre con estado Ocupado/Livre, paginadas.
func (uc *AvailabilityUseCase) List(q dto.ListQuery) dto.Page[dto.AvailabilityResponse] {
	return dto.Paginate(uc.filtered(q), q.Page, q.PageSize)
}

// Add registra una etiqueta en la lista maestra. Si ya existe no hace nada.
func (uc *AvailabilityUseCase) Add(ctx context.Context, in dto.AddLocationRequest) (*dto.AvailabilityResponse, error) {
	name := strings.TrimSpace(in.Name)
	if err := uc.store.AddMasterLocation(ctx, name); err != nil {
		return nil, err
	}
	return &dto.AvailabilityResponse{Location: name, Status: uc.status(name)}, nil
}

// Delete quita una etiqueta libre de la lista maestra.
func (uc *AvailabilityUseCase) Delete(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrInvalidInput
	}
	if inventory.IsOccupied(uc.store.Lots(), name) {
		return fmt.Errorf("%w: %q tiene lotes, vacíela antes de eliminarla", domain.ErrLocationOccupied, name)
	}
	stored, ok := uc.lookup(name)
	if !ok {
		return domain.ErrNotFound
	}
	if err := uc.store.RemoveMasterLocation(ctx, stored); err != nil {
		uc.log.Error().Err(err).Str("location", stored).Msg("eliminar localización")
		return err
	}
	uc.log.Info().Str("location", stored).Msg("localización eliminada")
	return nil
}

// Records filas de la exportación de disponibilidad.
func (uc *AvailabilityUseCase) Records(q dto.ListQuery) []ports.Record {
	rows := uc.filtered(q)
	out := make([]ports.Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, ports.Record{
			{Key: "location", Value: r.Location},
			{Key: "status", Value: r.Status},
		})
	}
	return out
}

func (uc *AvailabilityUseCase) filtered(q dto.ListQuery) []dto.AvailabilityResponse {
	occupied := inventory.OccupiedLocations(uc.store.Lots())
	names := search.Filter(uc.store.MasterLocations(), q.Search, func(s string) []string { return []string{s} })
	out := make([]dto.AvailabilityResponse, 0, len(names))
	for _, n := range names {
		status := dto.AvailabilityFree
		if occupied[strings.ToLower(n)] {
			status = dto.AvailabilityOccupied
		}
		out = append(out, dto.AvailabilityResponse{Location: n, Status: status})
	}
	return out
}

func (uc *AvailabilityUseCase) status(name string) string {
	if inventory.IsOccupied(uc.store.Lots(), name) {
		return dto.AvailabilityOccupied
	}
	return dto.AvailabilityFree
}

func (uc *AvailabilityUseCase) lookup(name string) (string, bool) {
	for _, m := range uc.store.MasterLocations() {
		if strings.EqualFold(m, name) {
			return m, true
		}
	}
	return "", false
}
