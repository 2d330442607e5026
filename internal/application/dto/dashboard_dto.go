package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// KPIs del día y del mes en curso, más el Top-5 SKUs del mes por ganancia.
type DashboardSummaryDTO struct {
	// Métricas del día actual
	TodaySales  decimal.Decimal `json:"today_sales"`  // ingreso bruto de hoy
	TodayProfit decimal.Decimal `json:"today_profit"` // ganancia neta de hoy

	// Métricas del mes en curso
	MonthlySales     decimal.Decimal `json:"monthly_sales"`
	MonthlyProfit    decimal.Decimal `json:"monthly_profit"`
	MonthlyMarginPct decimal.Decimal `json:"monthly_margin_pct"`

	TopSKUs []TopSKUDTO `json:"top_skus"`

	// ventas del mes excluidas por falta de base de costo
	UnresolvedSales int `json:"unresolved_sales"`

	DateLabel string `json:"date_label"` // ej: "Fevereiro 2026"
}

// TopSKUDTO resumen de un SKU para el widget del dashboard.
type TopSKUDTO struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name,omitempty"`
	QuantitySold int64           `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
	Profit       decimal.Decimal `json:"profit"`
	MarginPct    decimal.Decimal `json:"margin_pct"` // profit / revenue * 100
}
