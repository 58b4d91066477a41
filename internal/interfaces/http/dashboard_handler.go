package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Inventario-console/internal/application/analytics"
	"github.com/jhoicas/Inventario-console/internal/application/dto"
)

// DashboardHandler maneja la página inicial, el Dashboard y su informe PDF.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Dashboard devuelve barras de salidas, torta de clasificación y las listas paginadas.
// GET /api/dashboard?stores=Amazon,Shein&repurchase_page=1&stagnant_page=1
//
// stores puede repetirse o venir separado por comas; el orden define el de las barras.
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	q := dto.DashboardQuery{
		Stores:         storesQuery(c),
		RepurchasePage: c.QueryInt("repurchase_page", 1),
		StagnantPage:   c.QueryInt("stagnant_page", 1),
	}
	out, err := h.uc.Dashboard(q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Home tarjetas de la página inicial. GET /api/home
func (h *DashboardHandler) Home(c *fiber.Ctx) error {
	who, _ := GetIdentity(c)
	return c.JSON(h.uc.Home(c.UserContext(), who))
}

// Report descarga el informe PDF de recompra y productos parados.
// GET /api/dashboard/report
func (h *DashboardHandler) Report(c *fiber.Ctx) error {
	pdf, err := h.uc.Report(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	c.Attachment("relatorio_estoque.pdf")
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdf)
}

func storesQuery(c *fiber.Ctx) []string {
	var out []string
	for _, raw := range c.Context().QueryArgs().PeekMulti("stores") {
		for _, s := range strings.Split(string(raw), ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
