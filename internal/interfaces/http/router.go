package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Inventario-console/internal/application/analytics"
	"github.com/jhoicas/Inventario-console/internal/application/auth"
	"github.com/jhoicas/Inventario-console/internal/application/inventory"
	"github.com/jhoicas/Inventario-console/internal/application/state"
	"github.com/jhoicas/Inventario-console/internal/application/usecase"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SessionUC      *auth.SessionUseCase
	Store          *state.Store
	LocationUC     *inventory.LocationUseCase
	ProductUC      *usecase.ProductUseCase
	ExitUC         *usecase.ExitUseCase
	AvailabilityUC *usecase.AvailabilityUseCase
	AdminUC        *usecase.AdminUseCase
	ExportUC       *usecase.ExportUseCase
	DashboardUC    *appanalytics.DashboardUseCase
	PageSize       int // ítems por página cuando la petición no trae page_size; 0 = dto.DefaultPageSize
}

// Router registra las rutas de la consola.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestID(), defaultPageSize(deps.PageSize))

	// Sesión (público)
	session := api.Group("/session")
	authHandler := NewAuthHandler(deps.SessionUC)
	session.Post("/login", authHandler.Login)
	session.Get("/", authHandler.Session)
	session.Delete("/", authHandler.Logout)

	// Rutas protegidas: sesión abierta y estado cargado
	protected := []fiber.Handler{SessionMiddleware(deps.SessionUC), RequireState(deps.Store)}

	// Home / Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/home", append(protected, dashboardHandler.Home)...)
	dashboard := api.Group("/dashboard", protected...)
	dashboard.Get("/", dashboardHandler.Dashboard)
	dashboard.Get("/report", dashboardHandler.Report)

	// Lotes por localización
	locations := api.Group("/locations", protected...)
	inventoryHandler := NewInventoryHandler(deps.LocationUC)
	locations.Get("/", inventoryHandler.List)
	locations.Post("/", inventoryHandler.Place)
	locations.Post("/:id/transfer", inventoryHandler.Transfer)
	locations.Post("/:id/ship", inventoryHandler.Ship)

	// Catálogo
	products := api.Group("/products", protected...)
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:sku", productHandler.Get)
	products.Put("/:sku", productHandler.Update)
	products.Delete("/:sku", RequireRole(entity.RoleAdmin), productHandler.Delete)
	products.Post("/:sku/clone", productHandler.Clone)
	products.Post("/:sku/deletion-request", productHandler.RequestDeletion)

	// Salidas
	exits := api.Group("/exits", protected...)
	exitHandler := NewExitHandler(deps.ExitUC)
	exits.Get("/", exitHandler.List)
	exits.Put("/:id/observation", exitHandler.UpdateObservation)

	// Disponibilidad
	availability := api.Group("/availability", protected...)
	availabilityHandler := NewAvailabilityHandler(deps.AvailabilityUC)
	availability.Get("/", availabilityHandler.List)
	availability.Post("/", availabilityHandler.Add)
	availability.Delete("/:name", availabilityHandler.Delete)

	// Exportaciones
	export := api.Group("/export", protected...)
	exportHandler := NewExportHandler(deps.ExportUC)
	export.Get("/:dataset", exportHandler.Export)

	// Administración (solo ADMIN; la API remota vuelve a verificar)
	admin := api.Group("/admin", SessionMiddleware(deps.SessionUC), RequireRole(entity.RoleAdmin))
	adminHandler := NewAdminHandler(deps.AdminUC)
	admin.Get("/deletion-requests", adminHandler.ListDeletionRequests)
	admin.Get("/deletion-requests/count", adminHandler.PendingCount)
	admin.Post("/deletion-requests/:id/approve", adminHandler.Approve)
	admin.Post("/deletion-requests/:id/reject", adminHandler.Reject)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Post("/users", adminHandler.CreateUser)
	admin.Put("/users/:id", adminHandler.UpdateRole)
	admin.Get("/audit-logs", adminHandler.ListAuditLogs)
}
