package ports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Field columna de una fila exportada.
type Field struct {
	Key   string
	Value any
}

// Record fila exportada; el orden de los campos define el orden de las columnas.
type Record []Field

// Columns cabecera de una exportación: claves del primer registro en orden, seguidas de
// las claves nuevas que aparezcan en registros posteriores.
func Columns(records []Record) []string {
	seen := map[string]bool{}
	var cols []string
	for _, r := range records {
		for _, f := range r {
			if !seen[f.Key] {
				seen[f.Key] = true
				cols = append(cols, f.Key)
			}
		}
	}
	return cols
}

// Get valor de la columna key; nil si el registro no la tiene.
func (r Record) Get(key string) any {
	for _, f := range r {
		if f.Key == key {
			return f.Value
		}
	}
	return nil
}

// FormatValue representación textual de un valor exportado (fechas dd/mm/aaaa).
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case decimal.Decimal:
		return x.String()
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format("02/01/2006")
	default:
		return fmt.Sprint(x)
	}
}

// SheetExporter genera el archivo de una exportación tabular.
type SheetExporter interface {
	Export(ctx context.Context, records []Record) ([]byte, error)
	ContentType() string
	Extension() string
}

// ReportRow línea del informe PDF del dashboard.
type ReportRow struct {
	SKU    string
	Name   string
	Detail string
}

// ReportSection sección del informe (lista de recompra, lista de productos parados).
type ReportSection struct {
	Title string
	Rows  []ReportRow
}

// ReportPDFGenerator genera el informe imprimible del dashboard.
type ReportPDFGenerator interface {
	GenerateReport(ctx context.Context, title string, generatedAt time.Time, sections []ReportSection) ([]byte, error)
}
