package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-console/internal/application/usecase"
)

// ExportHandler descargas XLSX/CSV de los listados.
type ExportHandler struct {
	uc *usecase.ExportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *usecase.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Export godoc
// @Summary      Exportar listado
// @Description  Genera la planilla del conjunto con el mismo filtro que el listado.
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        dataset  path   string  true   "inventory | locations | exits | availability | repurchase | stagnant"
// @Param        format   query  string  false  "xlsx | csv"  default(xlsx)
// @Param        q        query  string  false  "Búsqueda"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/export/{dataset} [get]
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	q, err := listQuery(c)
	if err != nil {
		return invalidBody(c)
	}
	f, err := h.uc.Export(c.UserContext(), c.Params("dataset"), c.Query("format"), q)
	if err != nil {
		return respondError(c, err)
	}
	c.Attachment(f.FileName)
	c.Set(fiber.HeaderContentType, f.ContentType)
	return c.Send(f.Content)
}
