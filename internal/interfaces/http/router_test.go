package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/profit-ledger/internal/application/analytics"
	"github.com/jhoicas/profit-ledger/internal/application/dto"
	"github.com/jhoicas/profit-ledger/internal/application/ledger"
	"github.com/jhoicas/profit-ledger/internal/application/report"
	"github.com/jhoicas/profit-ledger/internal/domain/inventory"
	"github.com/jhoicas/profit-ledger/internal/infrastructure/export"
	"github.com/jhoicas/profit-ledger/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/profit-ledger/internal/interfaces/http"
	"github.com/jhoicas/profit-ledger/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp arma la API completa sobre el almacén en memoria.
func buildTestApp(strict bool) *fiber.App {
	store := memory.NewStore()
	log := logger.Nop()
	reportUC := report.NewMonthlyReportUseCase(store, inventory.DefaultRates(), strict, log)

	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		AppName:     "profit-ledger-test",
		LedgerUC:    ledger.NewLedgerUseCase(store.Purchases(), store.Sales(), store, log),
		ReportUC:    reportUC,
		DashboardUC: appanalytics.NewDashboardUseCase(reportUC),
		Exporter:    export.NewExporter(export.NewMoney("R$", "pt-BR"), "Loja"),
		Ping:        store.Ping,
		Log:         log,
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, target, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func seedReference(t *testing.T, app *fiber.App) {
	t.Helper()
	for _, body := range []string{
		`{"sku":"A","date":"2024-01-05","unit_cost":"10","quantity":10}`,
		`{"sku":"A","date":"2024-01-20","unit_cost":14,"quantity":10}`,
	} {
		resp := do(t, app, http.MethodPost, "/api/purchases", body)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}
	resp := do(t, app, http.MethodPost, "/api/sales", `{"sku":"A","marketplace":"Shopee","date":"2024-01-25","unit_price":30,"quantity":5}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	resp := do(t, buildTestApp(false), http.MethodGet, "/health", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRecordPurchase_Validacion400(t *testing.T) {
	app := buildTestApp(false)

	resp := do(t, app, http.MethodPost, "/api/purchases", `{"sku":"A","date":"2024-01-05","unit_cost":-1,"quantity":0}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Equal(t, "gte", body.Details["unit_cost"])
	assert.Equal(t, "gt", body.Details["quantity"])

	list := decode[dto.PurchaseListDTO](t, do(t, app, http.MethodGet, "/api/purchases?year=2024&month=1", ""))
	assert.Empty(t, list.Purchases, "nada se guarda si la entrada es inválida")
}

func TestRecordSale_CuerpoInvalido(t *testing.T) {
	resp := do(t, buildTestApp(false), http.MethodPost, "/api/sales", `{"sku":`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, resp).Code)
}

func TestMonthlyReport_EscenarioDeReferencia(t *testing.T) {
	app := buildTestApp(false)
	seedReference(t, app)

	resp := do(t, app, http.MethodGet, "/api/reports/monthly?year=2024&month=1", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	rep := decode[dto.MonthlyReportDTO](t, resp)
	require.Len(t, rep.Sales, 1)
	assert.True(t, rep.Complete)
	assert.Equal(t, "28", rep.Indicators.Profit.String())
	assert.Equal(t, "12", rep.Sales[0].UnitCost.String())
}

func TestMonthlyReport_NoCostBasis(t *testing.T) {
	sale := `{"sku":"Z","date":"2024-01-25","unit_price":30,"quantity":1}`

	t.Run("excluye y reporta", func(t *testing.T) {
		app := buildTestApp(false)
		require.Equal(t, fiber.StatusCreated, do(t, app, http.MethodPost, "/api/sales", sale).StatusCode)

		rep := decode[dto.MonthlyReportDTO](t, do(t, app, http.MethodGet, "/api/reports/monthly?year=2024&month=1", ""))
		assert.False(t, rep.Complete)
		require.Len(t, rep.Unresolved, 1)
		assert.Equal(t, "Z", rep.Unresolved[0].SKU)
	})

	t.Run("estricto 422", func(t *testing.T) {
		app := buildTestApp(true)
		require.Equal(t, fiber.StatusCreated, do(t, app, http.MethodPost, "/api/sales", sale).StatusCode)

		resp := do(t, app, http.MethodGet, "/api/reports/monthly?year=2024&month=1", "")
		require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
		body := decode[dto.ErrorResponse](t, resp)
		assert.Equal(t, "NO_COST_BASIS", body.Code)
		assert.Equal(t, "Z", body.Details["sku"])
		assert.Equal(t, "2024-01-25", body.Details["date"])
	})
}

func TestMonthlyReport_MesInvalido(t *testing.T) {
	resp := do(t, buildTestApp(false), http.MethodGet, "/api/reports/monthly?year=2024&month=13", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestExport_CSV(t *testing.T) {
	app := buildTestApp(false)
	seedReference(t, app)

	resp := do(t, app, http.MethodGet, "/api/reports/monthly/export?year=2024&month=1&format=csv", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "relatorio_lucro_2024_01.csv")
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/csv")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "lucro,28.00")
}

func TestExport_FormatoInvalido(t *testing.T) {
	resp := do(t, buildTestApp(false), http.MethodGet, "/api/reports/monthly/export?year=2024&month=1&format=doc", "")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "oneof=csv xlsx pdf", decode[dto.ErrorResponse](t, resp).Details["format"])
}

func TestCosts(t *testing.T) {
	app := buildTestApp(false)
	seedReference(t, app)

	snap := decode[dto.CostSnapshotDTO](t, do(t, app, http.MethodGet, "/api/costs/A?as_of=2024-01-25", ""))
	assert.Equal(t, "12", snap.WeightedAvgCost.String())

	resp := do(t, app, http.MethodGet, "/api/costs/A?as_of=2024-01-01", "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	history := decode[[]dto.CostHistoryEntryDTO](t, do(t, app, http.MethodGet, "/api/costs/A/history?as_of=2024-12-31", ""))
	require.Len(t, history, 2)
	assert.Equal(t, "12", history[1].AvgCost.String())
}

func TestListSales_FiltroMarketplace(t *testing.T) {
	app := buildTestApp(false)
	seedReference(t, app)
	require.Equal(t, fiber.StatusCreated, do(t, app, http.MethodPost, "/api/sales",
		`{"sku":"A","marketplace":"Mercado Livre","date":"2024-01-26","unit_price":10,"quantity":1}`).StatusCode)

	list := decode[dto.SaleListDTO](t, do(t, app, http.MethodGet, "/api/sales?year=2024&month=1&marketplace=Mercado%20Livre", ""))
	require.Len(t, list.Sales, 1)
	assert.Equal(t, "Mercado Livre", list.Sales[0].Marketplace)
}

func TestDashboardSummary(t *testing.T) {
	resp := do(t, buildTestApp(false), http.MethodGet, "/api/dashboard/summary", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	summary := decode[dto.DashboardSummaryDTO](t, resp)
	assert.NotEmpty(t, summary.DateLabel)
}
