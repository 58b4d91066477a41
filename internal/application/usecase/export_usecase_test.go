package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/ports"
	"github.com/jhoicas/Inventario-console/internal/application/usecase"
	"github.com/jhoicas/Inventario-console/internal/domain"
)

// stubExporter devuelve las claves de la cabecera separadas por coma.
type stubExporter struct {
	got []ports.Record
}

func (s *stubExporter) Export(_ context.Context, records []ports.Record) ([]byte, error) {
	s.got = records
	out := ""
	for i, c := range ports.Columns(records) {
		if i > 0 {
			out += ","
		}
		out += c
	}
	return []byte(out), nil
}

func (s *stubExporter) ContentType() string { return "text/plain" }
func (s *stubExporter) Extension() string   { return ".stub" }

func TestExport_GeneraArchivoConNombreDelConjunto(t *testing.T) {
	b := seededBackend()
	products := usecase.NewProductUseCase(b, loadedStore(t, b), nil)
	exp := &stubExporter{}

	uc := usecase.NewExportUseCase(map[string]ports.SheetExporter{usecase.FormatXLSX: exp}, nil).
		Register(usecase.DatasetInventory, "inventario_kualie_bijux", products.Records)

	f, err := uc.Export(context.Background(), usecase.DatasetInventory, "", dto.ListQuery{Search: "colar"})
	require.NoError(t, err)
	assert.Equal(t, "inventario_kualie_bijux.stub", f.FileName)
	assert.Equal(t, "text/plain", f.ContentType)
	assert.Len(t, exp.got, 1, "la exportación respeta el filtro del listado")
	assert.Contains(t, string(f.Content), "SKU,Nome do Produto,Cor")
}

func TestExport_Errores(t *testing.T) {
	uc := usecase.NewExportUseCase(map[string]ports.SheetExporter{usecase.FormatXLSX: &stubExporter{}}, nil).
		Register(usecase.DatasetExits, "registo_de_saidas", func(dto.ListQuery) []ports.Record { return nil })

	_, err := uc.Export(context.Background(), "nope", "xlsx", dto.ListQuery{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Export(context.Background(), usecase.DatasetExits, "pdf", dto.ListQuery{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, []string{usecase.DatasetExits}, uc.Datasets())
}
