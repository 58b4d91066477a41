package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appanalytics "github.com/jhoicas/Inventario-console/internal/application/analytics"
	"github.com/jhoicas/Inventario-console/internal/application/auth"
	"github.com/jhoicas/Inventario-console/internal/application/inventory"
	"github.com/jhoicas/Inventario-console/internal/application/ports"
	"github.com/jhoicas/Inventario-console/internal/application/state"
	"github.com/jhoicas/Inventario-console/internal/application/usecase"
	infraexport "github.com/jhoicas/Inventario-console/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/Inventario-console/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/restapi"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/tokenstore"
	httpRouter "github.com/jhoicas/Inventario-console/internal/interfaces/http"
	"github.com/jhoicas/Inventario-console/pkg/config"
	"github.com/jhoicas/Inventario-console/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("api", cfg.API.BaseURL).
		Msg("iniciando consola")

	// Cliente de la API remota y repositorios
	client := restapi.NewClient(cfg.API.BaseURL, cfg.API.Timeout(), log)
	productRepo := restapi.NewProductRepository(client)
	lotRepo := restapi.NewStockLotRepository(client)
	masterRepo := restapi.NewMasterLocationRepository(client)
	exitRepo := restapi.NewOutboundRepository(client)
	requestRepo := restapi.NewDeletionRequestRepository(client)
	userRepo := restapi.NewUserRepository(client)
	auditRepo := restapi.NewAuditLogRepository(client)
	tokens := tokenstore.NewFileStore(cfg.Session.TokenStorePath)

	store := state.NewStore(state.Repositories{
		Products:        productRepo,
		Lots:            lotRepo,
		MasterLocations: masterRepo,
		Exits:           exitRepo,
	}, log)

	sessionUC := auth.NewSessionUseCase(restapi.NewAuthRepository(client), tokens, client, store, log)
	locationUC := inventory.NewLocationUseCase(lotRepo, exitRepo, store, log)
	productUC := usecase.NewProductUseCase(productRepo, store, log)
	exitUC := usecase.NewExitUseCase(exitRepo, store, log)
	availabilityUC := usecase.NewAvailabilityUseCase(store, log)
	adminUC := usecase.NewAdminUseCase(requestRepo, userRepo, auditRepo, store, log)

	// PDF: informe de recompra y productos parados
	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	dashboardUC := appanalytics.NewDashboardUseCase(store, requestRepo, pdfGenerator, log)

	exportUC := usecase.NewExportUseCase(map[string]ports.SheetExporter{
		usecase.FormatXLSX: infraexport.NewXLSXExporter(),
		usecase.FormatCSV:  infraexport.NewCSVExporter(','),
	}, log).
		Register(usecase.DatasetInventory, "inventario_kualie_bijux", productUC.Records).
		Register(usecase.DatasetLocations, "localizacao_produtos", locationUC.Records).
		Register(usecase.DatasetExits, "registo_de_saidas", exitUC.Records).
		Register(usecase.DatasetAvailability, "disponibilidade_localizacao", availabilityUC.Records).
		Register(usecase.DatasetRepurchase, "produtos_para_recompra", dashboardUC.RepurchaseRecords).
		Register(usecase.DatasetStagnant, "itens_sem_saida", dashboardUC.StagnantRecords)

	// Sesión persistida: si la API no responde la consola arranca igual y reintenta
	// la carga en la primera petición.
	restoreCtx, cancelRestore := context.WithTimeout(context.Background(), 30*time.Second)
	if s, err := sessionUC.Restore(restoreCtx); err != nil {
		log.Warn().Err(err).Msg("restaurar sesión")
	} else if s.Authenticated {
		log.Info().Str("user", s.User.Name).Msg("sesión restaurada al arrancar")
	}
	cancelRestore()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gerenciador de Estoque",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": cfg.App.Name,
			"session": sessionUC.Current().Authenticated,
			"loaded":  store.Loaded(),
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SessionUC:      sessionUC,
		Store:          store,
		LocationUC:     locationUC,
		ProductUC:      productUC,
		ExitUC:         exitUC,
		AvailabilityUC: availabilityUC,
		AdminUC:        adminUC,
		ExportUC:       exportUC,
		DashboardUC:    dashboardUC,
		PageSize:       cfg.UI.PageSize,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("consola detenida")
}
