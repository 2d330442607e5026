// Package analytics contiene el resumen del mes en curso para la pantalla inicial.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/profit-ledger/internal/application/dto"
	"github.com/jhoicas/profit-ledger/internal/domain"
)

const dashboardTopSKUs = 5 // número de SKUs en el widget del dashboard

// MonthlyReporter fuente del dashboard: el reporte mensual ya calculado.
type MonthlyReporter interface {
	GetMonthlyReport(ctx context.Context, q dto.MonthQuery) (*dto.MonthlyReportDTO, error)
}

// DashboardUseCase genera el resumen del día y del mes en curso.
//
// No consulta el almacén directamente; reutiliza el reporte mensual para que
// los números coincidan con la exportación.
type DashboardUseCase struct {
	reports MonthlyReporter
	now     func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(reports MonthlyReporter) *DashboardUseCase {
	return &DashboardUseCase{reports: reports, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO del mes de hoy.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	today := domain.DayOf(uc.now())

	rep, err := uc.reports.GetMonthlyReport(ctx, dto.MonthQuery{Year: today.Year(), Month: int(today.Month())})
	if err != nil {
		return nil, fmt.Errorf("dashboard: reporte del mes: %w", err)
	}

	// ── Hoy ────────────────────────────────────────────────────────────────────
	todayLabel := today.Format(domain.DateLayout)
	todaySales, todayProfit := decimal.Zero, decimal.Zero
	for _, s := range rep.Sales {
		if s.Date == todayLabel {
			todaySales = todaySales.Add(s.Revenue)
			todayProfit = todayProfit.Add(s.Profit)
		}
	}

	return &dto.DashboardSummaryDTO{
		TodaySales:       todaySales,
		TodayProfit:      todayProfit,
		MonthlySales:     rep.Indicators.Revenue,
		MonthlyProfit:    rep.Indicators.Profit,
		MonthlyMarginPct: rep.Indicators.MarginPct,
		TopSKUs:          topSKUs(rep.Sales, dashboardTopSKUs),
		UnresolvedSales:  len(rep.Unresolved),
		DateLabel:        domain.MonthLabel(today.Year(), today.Month()),
	}, nil
}

// topSKUs agrupa por SKU y ordena por ganancia descendente (empate: SKU ascendente).
func topSKUs(sales []dto.ProfitBreakdownDTO, limit int) []dto.TopSKUDTO {
	bySKU := map[string]*dto.TopSKUDTO{}
	for _, s := range sales {
		row, ok := bySKU[s.SKU]
		if !ok {
			row = &dto.TopSKUDTO{SKU: s.SKU, Name: s.Name, Revenue: decimal.Zero, Profit: decimal.Zero}
			bySKU[s.SKU] = row
		}
		if row.Name == "" {
			row.Name = s.Name
		}
		row.QuantitySold += s.Quantity
		row.Revenue = row.Revenue.Add(s.Revenue)
		row.Profit = row.Profit.Add(s.Profit)
	}

	out := make([]dto.TopSKUDTO, 0, len(bySKU))
	for _, row := range bySKU {
		row.MarginPct = decimal.Zero
		if !row.Revenue.IsZero() {
			row.MarginPct = row.Profit.Div(row.Revenue).Mul(decimal.NewFromInt(100)).Round(2)
		}
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Profit.Cmp(out[j].Profit); c != 0 {
			return c > 0
		}
		return out[i].SKU < out[j].SKU
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
