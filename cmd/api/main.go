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

	appanalytics "github.com/jhoicas/profit-ledger/internal/application/analytics"
	"github.com/jhoicas/profit-ledger/internal/application/ledger"
	"github.com/jhoicas/profit-ledger/internal/application/report"
	"github.com/jhoicas/profit-ledger/internal/domain/inventory"
	"github.com/jhoicas/profit-ledger/internal/infrastructure/export"
	"github.com/jhoicas/profit-ledger/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/profit-ledger/internal/interfaces/http"
	"github.com/jhoicas/profit-ledger/pkg/config"
	"github.com/jhoicas/profit-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		panic(err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacén")
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar almacén")
		}
	}()

	rates := inventory.Rates{
		MarketplaceFeeRate: cfg.Profit.MarketplaceFeeRate,
		FixedFeePerUnit:    cfg.Profit.FixedFeePerUnit,
		TaxRate:            cfg.Profit.TaxRate,
	}
	ledgerUC := ledger.NewLedgerUseCase(backend.Purchases, backend.Sales, backend.Tx, log)
	reportUC := report.NewMonthlyReportUseCase(backend.Tx, rates, cfg.Report.Strict, log)
	dashboardUC := appanalytics.NewDashboardUseCase(reportUC)
	exporter := export.NewExporter(export.NewMoney(cfg.Report.CurrencySymbol, cfg.Report.Locale), cfg.App.Name)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // el PDF del mes puede tardar
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Profit Ledger API",
		}))
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger no disponible")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:     cfg.App.Name,
		LedgerUC:    ledgerUC,
		ReportUC:    reportUC,
		DashboardUC: dashboardUC,
		Exporter:    exporter,
		Ping:        backend.Ping,
		Log:         log,
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

	log.Info().Msg("aplicación detenida")
}
