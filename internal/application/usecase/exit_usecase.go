package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/ports"
	"github.com/jhoicas/Inventario-console/internal/application/state"
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
	"github.com/jhoicas/Inventario-console/pkg/logger"
	"github.com/jhoicas/Inventario-console/pkg/search"
)

// ExitUseCase consulta de salidas y edición de la observación.
type ExitUseCase struct {
	repo  repository.OutboundRepository
	store *state.Store
	log   *logger.Logger
}

// NewExitUseCase construye el caso de uso.
func NewExitUseCase(repo repository.OutboundRepository, store *state.Store, log *logger.Logger) *ExitUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ExitUseCase{repo: repo, store: store, log: log.Named("exits")}
}

// Refresh relee las salidas desde la API.
func (uc *ExitUseCase) Refresh(ctx context.Context) error {
	return uc.store.RefreshExits(ctx)
}

// List salidas filtradas por nombre, SKU u observación, paginadas.
func (uc *ExitUseCase) List(q dto.ListQuery) dto.Page[dto.ExitResponse] {
	return dto.Paginate(uc.filtered(q), q.Page, q.PageSize)
}

// UpdateObservation reemplaza la nota libre de la salida id.
func (uc *ExitUseCase) UpdateObservation(ctx context.Context, id string, in dto.UpdateObservationRequest) (*dto.ExitResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidInput
	}
	updated, err := uc.repo.UpdateObservation(ctx, id, strings.TrimSpace(in.Observation))
	if err != nil {
		uc.log.Error().Err(err).Str("exit_id", id).Msg("editar observación")
		return nil, err
	}
	if updated.ID == "" {
		// Respuesta sin cuerpo: se conserva el registro local con la nota nueva.
		stored, ok := uc.storedExit(id)
		stored.ID = id
		stored.Observation = strings.TrimSpace(in.Observation)
		updated = stored
		if !ok {
			resp := dto.FromExit(updated)
			return &resp, nil
		}
	}
	uc.store.PutExit(updated)
	resp := dto.FromExit(updated)
	return &resp, nil
}

func (uc *ExitUseCase) storedExit(id string) (entity.OutboundRecord, bool) {
	for _, e := range uc.store.Exits() {
		if e.ID == id {
			return e, true
		}
	}
	return entity.OutboundRecord{}, false
}

// Records filas de la exportación de salidas. La tienda solo aparece en salidas Full.
func (uc *ExitUseCase) Records(q dto.ListQuery) []ports.Record {
	exits := uc.filteredEntities(q)
	out := make([]ports.Record, 0, len(exits))
	for _, e := range exits {
		r := ports.Record{
			{Key: "id", Value: e.ID},
			{Key: "sku", Value: e.SKU},
			{Key: "name", Value: e.Name},
			{Key: "quantity", Value: e.Quantity},
			{Key: "date", Value: e.Date},
			{Key: "exitType", Value: e.ExitType},
		}
		if e.Store != "" {
			r = append(r, ports.Field{Key: "store", Value: e.Store})
		}
		r = append(r, ports.Field{Key: "observation", Value: e.Observation})
		out = append(out, r)
	}
	return out
}

func (uc *ExitUseCase) filteredEntities(q dto.ListQuery) []entity.OutboundRecord {
	return search.Filter(uc.store.Exits(), q.Search, func(e entity.OutboundRecord) []string {
		return []string{e.Name, e.SKU, e.Observation}
	})
}

func (uc *ExitUseCase) filtered(q dto.ListQuery) []dto.ExitResponse {
	exits := uc.filteredEntities(q)
	out := make([]dto.ExitResponse, 0, len(exits))
	for _, e := range exits {
		out = append(out, dto.FromExit(e))
	}
	return out
}
