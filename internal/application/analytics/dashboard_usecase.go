// Package analytics contiene los casos de uso de la página inicial y del Dashboard:
// gráfico de salidas, clasificación del catálogo e informe imprimible.
package analytics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/ports"
	"github.com/jhoicas/Inventario-console/internal/application/state"
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/inventory"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
	"github.com/jhoicas/Inventario-console/pkg/logger"
)

// Etiquetas fijas del gráfico de barras.
const (
	BarDispatch = "Expedição"
	BarFull     = "Full (Total)"
)

// DashboardUseCase calcula los indicadores a partir del estado cargado en memoria.
//
// Fuente de datos: state.Store (productos, lotes, salidas, lista maestra).
// La única llamada remota es el contador de solicitudes pendientes de la página inicial.
type DashboardUseCase struct {
	store    *state.Store
	requests repository.DeletionRequestRepository
	pdf      ports.ReportPDFGenerator
	log      *logger.Logger
	now      func() time.Time
}

// NewDashboardUseCase construye el caso de uso. pdf puede ser nil si no se sirve el informe.
func NewDashboardUseCase(
	store *state.Store,
	requests repository.DeletionRequestRepository,
	pdf ports.ReportPDFGenerator,
	log *logger.Logger,
) *DashboardUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardUseCase{store: store, requests: requests, pdf: pdf, log: log.Named("dashboard"), now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// ── Dashboard ─────────────────────────────────────────────────────────────────

// Dashboard construye el gráfico de barras (Expedição, Full total y una barra por tienda
// seleccionada, en el orden pedido), el gráfico de torta y las dos listas paginadas.
func (uc *DashboardUseCase) Dashboard(q dto.DashboardQuery) (*dto.DashboardResponse, error) {
	stores, err := selectedStores(q.Stores)
	if err != nil {
		return nil, err
	}

	snap := uc.store.Snapshot()
	bars := exitBars(snap.Exits, stores)
	repurchase, stagnant, okCount := classifyAll(snap, uc.now())

	return &dto.DashboardResponse{
		Bars: bars,
		Pie: dto.PieDTO{
			OK:         okCount,
			Repurchase: len(repurchase),
			Stagnant:   len(stagnant),
		},
		Repurchase: dto.Paginate(repurchase, q.RepurchasePage, dto.ModalPageSize),
		Stagnant:   dto.Paginate(stagnant, q.StagnantPage, dto.ModalPageSize),
	}, nil
}

// Home tarjetas de la página inicial. El contador de solicitudes pendientes solo se
// consulta para ADMIN; si falla se omite y la página se sirve igual.
func (uc *DashboardUseCase) Home(ctx context.Context, who entity.Identity) *dto.HomeResponse {
	snap := uc.store.Snapshot()

	items := 0
	for _, l := range snap.Lots {
		items += l.Quantity()
	}
	occupied := len(inventory.OccupiedLocations(snap.Lots))

	out := &dto.HomeResponse{
		UniqueProducts:    len(snap.Products),
		ItemsInStock:      items,
		OccupiedLocations: occupied,
		FreeLocations:     max(0, len(snap.MasterLocations)-occupied),
	}
	if who.IsAdmin() && uc.requests != nil {
		n, err := uc.requests.CountPending(ctx)
		if err != nil {
			uc.log.Warn().Err(err).Msg("contador de solicitudes pendientes")
		} else {
			out.PendingRequests = &n
		}
	}
	return out
}

// ── Exportación e informe ─────────────────────────────────────────────────────

// RepurchaseRecords filas de la exportación de la lista de recompra.
func (uc *DashboardUseCase) RepurchaseRecords(dto.ListQuery) []ports.Record {
	repurchase, _, _ := classifyAll(uc.store.Snapshot(), uc.now())
	out := make([]ports.Record, 0, len(repurchase))
	for _, r := range repurchase {
		out = append(out, ports.Record{
			{Key: "Nome do Produto", Value: r.Name},
			{Key: "SKU", Value: r.SKU},
			{Key: "Quantidade Atual", Value: r.CurrentQuantity},
			{Key: "Regra (Minimo)", Value: r.RepurchaseRule},
		})
	}
	return out
}

// StagnantRecords filas de la exportación de productos sin salida.
func (uc *DashboardUseCase) StagnantRecords(dto.ListQuery) []ports.Record {
	_, stagnant, _ := classifyAll(uc.store.Snapshot(), uc.now())
	out := make([]ports.Record, 0, len(stagnant))
	for _, s := range stagnant {
		out = append(out, ports.Record{
			{Key: "Nome do Produto", Value: s.Name},
			{Key: "SKU", Value: s.SKU},
			{Key: "Quantidade Atual", Value: s.CurrentQuantity},
			{Key: "Dias Sem Saida", Value: s.DaysSinceLastMovement},
		})
	}
	return out
}

// Report genera el PDF con las listas de recompra y de productos parados.
func (uc *DashboardUseCase) Report(ctx context.Context) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("%w: informe PDF no configurado", domain.ErrNotFound)
	}
	now := uc.now()
	repurchase, stagnant, _ := classifyAll(uc.store.Snapshot(), now)

	rs := ports.ReportSection{Title: "Produtos para Recompra"}
	for _, r := range repurchase {
		rs.Rows = append(rs.Rows, ports.ReportRow{
			SKU:    r.SKU,
			Name:   r.Name,
			Detail: fmt.Sprintf("%d / mín. %d", r.CurrentQuantity, r.RepurchaseRule),
		})
	}
	ss := ports.ReportSection{Title: fmt.Sprintf("Itens Sem Saída (> %d dias)", inventory.StagnantAfterDays)}
	for _, s := range stagnant {
		ss.Rows = append(ss.Rows, ports.ReportRow{
			SKU:    s.SKU,
			Name:   s.Name,
			Detail: strconv.Itoa(s.CurrentQuantity) + " un. · " + strconv.Itoa(s.DaysSinceLastMovement) + " dias",
		})
	}

	out, err := uc.pdf.GenerateReport(ctx, "Relatório de Estoque", now, []ports.ReportSection{rs, ss})
	if err != nil {
		uc.log.Error().Err(err).Msg("generar informe PDF")
		return nil, err
	}
	return out, nil
}

// ── Cálculos ──────────────────────────────────────────────────────────────────

// selectedStores valida las tiendas elegidas y descarta repetidas conservando el orden.
func selectedStores(in []string) ([]string, error) {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !entity.ValidStore(s) {
			return nil, fmt.Errorf("%w: tienda desconocida %q", domain.ErrInvalidInput, s)
		}
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out, nil
}

func exitBars(exits []entity.OutboundRecord, stores []string) []dto.BarDTO {
	var dispatch, full int
	byStore := map[string]int{}
	for _, e := range exits {
		switch e.ExitType {
		case entity.ExitTypeDispatch:
			dispatch += e.Quantity
		case entity.ExitTypeFull:
			full += e.Quantity
			byStore[e.Store] += e.Quantity
		}
	}
	bars := []dto.BarDTO{
		{Label: BarDispatch, Quantity: dispatch},
		{Label: BarFull, Quantity: full},
	}
	for _, s := range stores {
		bars = append(bars, dto.BarDTO{Label: s, Quantity: byStore[s]})
	}
	return bars
}

// classifyAll clasifica cada producto del catálogo; cada uno cae en una sola categoría.
func classifyAll(snap state.Snapshot, now time.Time) (repurchase []dto.RepurchaseItemDTO, stagnant []dto.StagnantItemDTO, okCount int) {
	repurchase = []dto.RepurchaseItemDTO{}
	stagnant = []dto.StagnantItemDTO{}
	for _, p := range snap.Products {
		c := inventory.Classify(p, snap.Lots, snap.Exits, now)
		switch c.Status {
		case inventory.StatusRepurchase:
			repurchase = append(repurchase, dto.RepurchaseItemDTO{
				SKU:             p.SKU,
				Name:            p.Name,
				CurrentQuantity: c.CurrentQuantity,
				RepurchaseRule:  p.RepurchaseRule,
			})
		case inventory.StatusStagnant:
			stagnant = append(stagnant, dto.StagnantItemDTO{
				SKU:                   p.SKU,
				Name:                  p.Name,
				CurrentQuantity:       c.CurrentQuantity,
				DaysSinceLastMovement: c.DaysSinceLastMovement,
			})
		default:
			okCount++
		}
	}
	return repurchase, stagnant, okCount
}
