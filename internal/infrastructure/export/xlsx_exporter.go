// Package export genera planillas (XLSX y CSV) a partir de registros ordenados.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Inventario-console/internal/application/ports"
)

// SheetName nombre de la única hoja del libro.
const SheetName = "Dados"

var _ ports.SheetExporter = (*XLSXExporter)(nil)

// XLSXExporter libro con una hoja "Dados": cabecera en la fila 1 y un registro por fila.
type XLSXExporter struct{}

// NewXLSXExporter construye el exportador.
func NewXLSXExporter() *XLSXExporter { return &XLSXExporter{} }

func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *XLSXExporter) Extension() string { return ".xlsx" }

// Export devuelve los bytes del libro.
func (e *XLSXExporter) Export(ctx context.Context, records []ports.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	cols := ports.Columns(records)
	if len(cols) > 0 {
		header := make([]any, len(cols))
		for i, c := range cols {
			header[i] = c
		}
		if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
			return nil, fmt.Errorf("xlsx: cabecera: %w", err)
		}
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return nil, fmt.Errorf("xlsx: estilo: %w", err)
		}
		last, _ := excelize.CoordinatesToCellName(len(cols), 1)
		if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
			return nil, fmt.Errorf("xlsx: estilo cabecera: %w", err)
		}
	}

	for i, r := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := make([]any, len(cols))
		for j, c := range cols {
			row[j] = cellValue(r.Get(c))
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

// cellValue números como números (para que la planilla pueda sumarlos); fechas como dd/mm/aaaa.
func cellValue(v any) any {
	switch x := v.(type) {
	case nil:
		return ""
	case decimal.Decimal:
		return x.InexactFloat64()
	case time.Time:
		return ports.FormatValue(x)
	default:
		return x
	}
}
