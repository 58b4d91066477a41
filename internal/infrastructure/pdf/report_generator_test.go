package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-console/internal/application/ports"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/pdf"
)

func TestGenerateReport_DevuelvePDF(t *testing.T) {
	sections := []ports.ReportSection{
		{Title: "Recompra", Rows: []ports.ReportRow{
			{SKU: "BRC-01", Name: "Brinco", Detail: "8 un."},
			{SKU: "COL-02", Name: "Colar", Detail: "0 un."},
		}},
		{Title: "Parados"},
	}
	raw, err := pdf.NewMarotoReportGenerator().GenerateReport(context.Background(), "Relatório", time.Now(), sections)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")), "el documento debe empezar con la firma PDF")
}
