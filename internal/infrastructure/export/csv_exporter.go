package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/jhoicas/Inventario-console/internal/application/ports"
)

var _ ports.SheetExporter = (*CSVExporter)(nil)

// CSVExporter misma regla de columnas que XLSXExporter, separador configurable.
type CSVExporter struct {
	comma rune
}

// NewCSVExporter construye el exportador; comma cero usa ','.
func NewCSVExporter(comma rune) *CSVExporter {
	if comma == 0 {
		comma = ','
	}
	return &CSVExporter{comma: comma}
}

func (e *CSVExporter) ContentType() string { return "text/csv; charset=utf-8" }

func (e *CSVExporter) Extension() string { return ".csv" }

func (e *CSVExporter) Export(ctx context.Context, records []ports.Record) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	writer.Comma = e.comma

	cols := ports.Columns(records)
	if len(cols) > 0 {
		if err := writer.Write(cols); err != nil {
			return nil, fmt.Errorf("csv: cabecera: %w", err)
		}
	}
	for i, r := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := make([]string, len(cols))
		for j, c := range cols {
			line[j] = ports.FormatValue(r.Get(c))
		}
		if err := writer.Write(line); err != nil {
			return nil, fmt.Errorf("csv: fila %d: %w", i+1, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	return buf.Bytes(), nil
}
