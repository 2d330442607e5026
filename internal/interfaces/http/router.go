package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/profit-ledger/internal/application/analytics"
	"github.com/jhoicas/profit-ledger/internal/application/ledger"
	"github.com/jhoicas/profit-ledger/internal/application/report"
	"github.com/jhoicas/profit-ledger/internal/infrastructure/export"
	"github.com/jhoicas/profit-ledger/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName     string
	LedgerUC    *ledger.LedgerUseCase
	ReportUC    *report.MonthlyReportUseCase
	DashboardUC *appanalytics.DashboardUseCase
	Exporter    *export.Exporter
	Ping        func(ctx context.Context) error // health check del almacén
	Log         *logger.Logger
}

// Router registra las rutas de la API. Operador único: no hay autenticación.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.Ping != nil {
			if err := deps.Ping(c.UserContext()); err != nil {
				return writeError(c, log, err)
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")

	ledgerHandler := NewLedgerHandler(deps.LedgerUC, log)

	// Compras
	purchases := api.Group("/purchases")
	purchases.Post("/", ledgerHandler.RecordPurchase)
	purchases.Get("/", ledgerHandler.ListPurchases)

	// Ventas
	sales := api.Group("/sales")
	sales.Post("/", ledgerHandler.RecordSale)
	sales.Get("/", ledgerHandler.ListSales)

	// Costos
	costs := api.Group("/costs")
	costs.Get("/:sku", ledgerHandler.CostAsOf)
	costs.Get("/:sku/history", ledgerHandler.CostHistory)

	// Reportes
	reportHandler := NewReportHandler(deps.ReportUC, deps.Exporter, log)
	reports := api.Group("/reports")
	reports.Get("/monthly", reportHandler.Monthly)
	reports.Get("/monthly/export", reportHandler.Export)

	// Dashboard
	if deps.DashboardUC != nil {
		dashboardHandler := NewDashboardHandler(deps.DashboardUC, log)
		api.Get("/dashboard/summary", dashboardHandler.GetSummary)
	}
}
