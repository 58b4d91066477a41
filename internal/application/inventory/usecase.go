package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/ports"
	"github.com/jhoicas/Inventario-console/internal/application/state"
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/inventory"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
	"github.com/jhoicas/Inventario-console/pkg/logger"
	"github.com/jhoicas/Inventario-console/pkg/requestid"
	"github.com/jhoicas/Inventario-console/pkg/search"
)

// LocationUseCase ejecuta los planes del motor de reconciliación contra la API remota:
// incluir, movimentar y dar salida de cajas. Una sola operación a la vez.
type LocationUseCase struct {
	lots  repository.StockLotRepository
	exits repository.OutboundRepository
	store *state.Store
	log   *logger.Logger
	now   func() time.Time
	gate  state.Gate
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(
	lots repository.StockLotRepository,
	exits repository.OutboundRepository,
	store *state.Store,
	log *logger.Logger,
) *LocationUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &LocationUseCase{
		lots:  lots,
		exits: exits,
		store: store,
		log:   log.Named("locations"),
		now:   time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *LocationUseCase) WithClock(now func() time.Time) *LocationUseCase {
	uc.now = now
	return uc
}

// List lotes filtrados por nombre, SKU o localización, paginados.
func (uc *LocationUseCase) List(q dto.ListQuery) dto.Page[dto.LotResponse] {
	lots := search.Filter(uc.store.Lots(), q.Search, func(l entity.StockLot) []string {
		return []string{l.Name, l.SKU, l.Location}
	})
	out := make([]dto.LotResponse, 0, len(lots))
	for _, l := range lots {
		out = append(out, dto.FromLot(l))
	}
	return dto.Paginate(out, q.Page, q.PageSize)
}

// All lotes filtrados sin paginar.
func (uc *LocationUseCase) All(q dto.ListQuery) []dto.LotResponse {
	q.Page, q.PageSize = 1, 1<<30
	return uc.List(q).Items
}

// Refresh relee los lotes desde la API.
func (uc *LocationUseCase) Refresh(ctx context.Context) error {
	return uc.store.RefreshLots(ctx)
}

// Records filas de la exportación de localizaciones.
func (uc *LocationUseCase) Records(q dto.ListQuery) []ports.Record {
	lots := uc.All(q)
	out := make([]ports.Record, 0, len(lots))
	for _, l := range lots {
		out = append(out, ports.Record{
			{Key: "id", Value: l.ID},
			{Key: "sku", Value: l.SKU},
			{Key: "name", Value: l.Name},
			{Key: "location", Value: l.Location},
			{Key: "unitsPerBox", Value: l.UnitsPerBox},
			{Key: "volume", Value: l.Volume},
			{Key: "date", Value: l.Date},
		})
	}
	return out
}

// Place incluye cajas de un SKU del catálogo en una localización.
func (uc *LocationUseCase) Place(ctx context.Context, in dto.PlaceRequest) (*dto.OperationResponse, error) {
	release, err := uc.gate.Enter()
	if err != nil {
		return nil, err
	}
	defer release()
	ctx, opID := requestid.Ensure(ctx)

	product, ok := inventory.FindProductBySKU(uc.store.Products(), strings.TrimSpace(in.SKU))
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	plan, err := inventory.Place(uc.store.Lots(), inventory.PlaceRequest{
		SKU:         product.SKU,
		ProductName: product.Name,
		Location:    in.Location,
		UnitsPerBox: in.UnitsPerBox,
		Containers:  in.Containers,
	}, uc.now())
	if err != nil {
		return nil, err
	}

	log := uc.opLog("place", opID)
	if err := uc.apply(ctx, log, plan.Ops, nil); err != nil {
		return nil, err
	}
	uc.registerLocation(ctx, log, in.Location)
	uc.refresh(ctx, log, plan.Lots, false)

	log.Info().Str("sku", product.SKU).Str("location", in.Location).Int("containers", in.Containers).Msg("inclusión aplicada")
	return &dto.OperationResponse{OperationID: opID, RemoteCalls: len(plan.Ops)}, nil
}

// Transfer mueve cajas del lote sourceID a otra localización.
func (uc *LocationUseCase) Transfer(ctx context.Context, sourceID string, in dto.TransferRequest) (*dto.OperationResponse, error) {
	release, err := uc.gate.Enter()
	if err != nil {
		return nil, err
	}
	defer release()
	ctx, opID := requestid.Ensure(ctx)

	plan, err := inventory.Transfer(uc.store.Lots(), inventory.TransferRequest{
		SourceID:    sourceID,
		Destination: in.Destination,
		Containers:  in.Containers,
	}, uc.now())
	if err != nil {
		return nil, err
	}

	log := uc.opLog("transfer", opID)
	if err := uc.apply(ctx, log, plan.Ops, nil); err != nil {
		return nil, err
	}
	uc.registerLocation(ctx, log, in.Destination)
	uc.refresh(ctx, log, plan.Lots, false)

	log.Info().Str("source_id", sourceID).Str("destination", in.Destination).Int("containers", in.Containers).Msg("movimiento aplicado")
	return &dto.OperationResponse{OperationID: opID, RemoteCalls: len(plan.Ops)}, nil
}

// Ship registra la salida y descuenta las cajas del lote sourceID.
func (uc *LocationUseCase) Ship(ctx context.Context, sourceID string, in dto.ShipRequest) (*dto.OperationResponse, error) {
	release, err := uc.gate.Enter()
	if err != nil {
		return nil, err
	}
	defer release()
	ctx, opID := requestid.Ensure(ctx)

	plan, err := inventory.Ship(uc.store.Lots(), inventory.ShipRequest{
		SourceID:    sourceID,
		ExitType:    in.ExitType,
		Store:       in.Store,
		Observation: in.Observation,
		Containers:  in.Containers,
	}, uc.now())
	if err != nil {
		return nil, err
	}

	log := uc.opLog("ship", opID)
	exit := plan.Exit
	createExit := func(ctx context.Context) error {
		created, err := uc.exits.Create(ctx, plan.Exit)
		if err != nil {
			return err
		}
		exit = created
		return nil
	}
	if err := uc.apply(ctx, log, plan.Ops, createExit); err != nil {
		return nil, err
	}
	uc.refresh(ctx, log, plan.Lots, true)

	log.Info().Str("source_id", sourceID).Str("exit_type", exit.ExitType).Int("quantity", exit.Quantity).Msg("salida aplicada")
	resp := dto.FromExit(exit)
	return &dto.OperationResponse{OperationID: opID, RemoteCalls: len(plan.Ops) + 1, Exit: &resp}, nil
}

// ── Ejecución ─────────────────────────────────────────────────────────────────

// apply emite first (si no es nil) y luego ops, en orden, deteniéndose en la primera falla.
// Si la falla ocurre después de alguna llamada exitosa, relee lotes y salidas para que la
// vista local refleje lo que realmente quedó en la API y devuelve ErrPartialSequence.
func (uc *LocationUseCase) apply(ctx context.Context, log *logger.Logger, ops []inventory.LotOp, first func(context.Context) error) error {
	calls := make([]func(context.Context) error, 0, len(ops)+1)
	names := make([]string, 0, len(ops)+1)
	if first != nil {
		calls = append(calls, first)
		names = append(names, "exit.create")
	}
	for _, op := range ops {
		calls = append(calls, func(ctx context.Context) error { return uc.emit(ctx, op) })
		names = append(names, "lot."+string(op.Kind))
	}

	for i, call := range calls {
		if err := call(ctx); err != nil {
			log.Error().Err(err).Str("call", names[i]).Int("step", i+1).Int("steps", len(calls)).Msg("llamada remota fallida")
			if i == 0 {
				return err
			}
			uc.repair(ctx, log)
			return fmt.Errorf("%w: %d de %d llamadas aplicadas, falló %s: %w", domain.ErrPartialSequence, i, len(calls), names[i], err)
		}
	}
	return nil
}

func (uc *LocationUseCase) emit(ctx context.Context, op inventory.LotOp) error {
	switch op.Kind {
	case inventory.OpCreate:
		return uc.lots.Create(ctx, op.Lot)
	case inventory.OpUpdate:
		return uc.lots.Update(ctx, op.Lot)
	case inventory.OpDelete:
		return uc.lots.Delete(ctx, op.Lot.ID)
	default:
		return fmt.Errorf("operación desconocida %q", op.Kind)
	}
}

// repair relee lotes y salidas después de una secuencia parcial.
func (uc *LocationUseCase) repair(ctx context.Context, log *logger.Logger) {
	// La lectura de reparación no debe heredar la cancelación de la petición que falló.
	rctx := requestid.With(context.WithoutCancel(ctx), requestid.From(ctx))
	if err := uc.store.RefreshLots(rctx); err != nil {
		log.Error().Err(err).Msg("relectura de lotes tras secuencia parcial fallida")
	}
	if err := uc.store.RefreshExits(rctx); err != nil {
		log.Error().Err(err).Msg("relectura de salidas tras secuencia parcial fallida")
	}
}

// refresh relee la colección completa después de una secuencia exitosa. Si la relectura
// falla se publica el conjunto previsto por el plan; los lotes nuevos quedan sin ID
// hasta la próxima relectura.
func (uc *LocationUseCase) refresh(ctx context.Context, log *logger.Logger, planned []entity.StockLot, withExits bool) {
	if err := uc.store.RefreshLots(ctx); err != nil {
		log.Warn().Err(err).Msg("relectura de lotes fallida, usando el estado previsto")
		uc.store.ReplaceLots(planned)
	}
	if withExits {
		if err := uc.store.RefreshExits(ctx); err != nil {
			log.Warn().Err(err).Msg("relectura de salidas fallida")
		}
	}
}

// registerLocation agrega la etiqueta a la lista maestra. Best effort: la falla solo se registra.
func (uc *LocationUseCase) registerLocation(ctx context.Context, log *logger.Logger, location string) {
	if err := uc.store.AddMasterLocation(ctx, location); err != nil && !errors.Is(err, domain.ErrInvalidInput) {
		log.Warn().Err(err).Str("location", location).Msg("registrar localización en la lista maestra")
	}
}

func (uc *LocationUseCase) opLog(action, opID string) *logger.Logger {
	l := uc.log.Zerolog().With().Str("action", action).Str("operation_id", opID).Logger()
	return logger.From(l)
}
