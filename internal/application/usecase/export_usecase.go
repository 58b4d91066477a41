package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/ports"
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/pkg/logger"
)

// Conjuntos exportables y nombre base del archivo generado.
const (
	DatasetInventory    = "inventory"
	DatasetLocations    = "locations"
	DatasetExits        = "exits"
	DatasetAvailability = "availability"
	DatasetRepurchase   = "repurchase"
	DatasetStagnant     = "stagnant"
)

// Formatos de exportación.
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// RecordSource produce las filas de un conjunto aplicando el mismo filtro que el listado.
type RecordSource func(q dto.ListQuery) []ports.Record

type dataset struct {
	fileName string
	source   RecordSource
}

// ExportFile archivo listo para descargar.
type ExportFile struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ExportUseCase genera planillas de los listados de la consola.
type ExportUseCase struct {
	exporters map[string]ports.SheetExporter
	datasets  map[string]dataset
	log       *logger.Logger
}

// NewExportUseCase construye el caso de uso con un exportador por formato ("xlsx", "csv").
func NewExportUseCase(exporters map[string]ports.SheetExporter, log *logger.Logger) *ExportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ExportUseCase{exporters: exporters, datasets: map[string]dataset{}, log: log.Named("export")}
}

// Register asocia un conjunto con su fuente de filas y el nombre base del archivo.
func (uc *ExportUseCase) Register(name, fileName string, source RecordSource) *ExportUseCase {
	uc.datasets[name] = dataset{fileName: fileName, source: source}
	return uc
}

// Datasets nombres registrados, ordenados.
func (uc *ExportUseCase) Datasets() []string {
	out := make([]string, 0, len(uc.datasets))
	for k := range uc.datasets {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Export genera el archivo del conjunto name en el formato pedido (xlsx por defecto).
func (uc *ExportUseCase) Export(ctx context.Context, name, format string, q dto.ListQuery) (*ExportFile, error) {
	ds, ok := uc.datasets[name]
	if !ok {
		return nil, fmt.Errorf("%w: conjunto de exportación %q", domain.ErrNotFound, name)
	}
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatXLSX
	}
	exp, ok := uc.exporters[format]
	if !ok {
		return nil, fmt.Errorf("%w: formato %q", domain.ErrInvalidInput, format)
	}

	records := ds.source(q)
	content, err := exp.Export(ctx, records)
	if err != nil {
		uc.log.Error().Err(err).Str("dataset", name).Str("format", format).Msg("exportar")
		return nil, err
	}
	uc.log.Debug().Str("dataset", name).Str("format", format).Int("rows", len(records)).Msg("exportación generada")
	return &ExportFile{
		FileName:    ds.fileName + exp.Extension(),
		ContentType: exp.ContentType(),
		Content:     content,
	}, nil
}
