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

	"github.com/cozinhapro/backoffice-api/internal/application/auth"
	"github.com/cozinhapro/backoffice-api/internal/application/catalog"
	"github.com/cozinhapro/backoffice-api/internal/application/ingest"
	"github.com/cozinhapro/backoffice-api/internal/application/ledger"
	"github.com/cozinhapro/backoffice-api/internal/application/menu"
	"github.com/cozinhapro/backoffice-api/internal/application/recipe"
	"github.com/cozinhapro/backoffice-api/internal/application/report"
	"github.com/cozinhapro/backoffice-api/internal/application/sales"
	"github.com/cozinhapro/backoffice-api/internal/application/waste"
	infrapdf "github.com/cozinhapro/backoffice-api/internal/infrastructure/pdf"
	"github.com/cozinhapro/backoffice-api/internal/infrastructure/postgres"
	httpRouter "github.com/cozinhapro/backoffice-api/internal/interfaces/http"
	"github.com/cozinhapro/backoffice-api/pkg/config"
	"github.com/cozinhapro/backoffice-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migração do esquema")
	}

	productRepo := postgres.NewProductRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	overheadRepo := postgres.NewOverheadRepository(pool)
	menuRepo := postgres.NewMenuRepository(pool)
	wasteRepo := postgres.NewWasteRepository(pool)
	salesRepo := postgres.NewSalesRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := ledger.NewUseCase(txRunner, productRepo)
	ingestUC := ingest.NewUseCase(txRunner, ledgerUC, invoiceRepo)
	recipeUC := recipe.NewUseCase(txRunner, recipeRepo, productRepo, overheadRepo)
	menuUC := menu.NewUseCase(menuRepo, recipeRepo, recipeUC)
	wasteUC := waste.NewUseCase(wasteRepo, productRepo, recipeUC)
	salesUC := sales.NewUseCase(salesRepo)
	reportUC := report.NewUseCase(reportRepo, overheadRepo, productRepo)
	catalogUC := catalog.NewUseCase(productRepo, supplierRepo, invoiceRepo, ledgerRepo)
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	pdfGen := infrapdf.NewCostSheetGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "CozinhaPro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		CatalogUC: catalogUC,
		LedgerUC:  ledgerUC,
		IngestUC:  ingestUC,
		RecipeUC:  recipeUC,
		MenuUC:    menuUC,
		WasteUC:   wasteUC,
		SalesUC:   salesUC,
		ReportUC:  reportUC,
		PDFGen:    pdfGen,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
