package dto

import "github.com/shopspring/decimal"

// RatesDTO reglas de deducción usadas en el cálculo.
type RatesDTO struct {
	MarketplaceFeeRate decimal.Decimal `json:"marketplace_fee_rate"`
	FixedFeePerUnit    decimal.Decimal `json:"fixed_fee_per_unit"`
	TaxRate            decimal.Decimal `json:"tax_rate"`
}

// ProfitBreakdownDTO desglose de una venta resuelta.
type ProfitBreakdownDTO struct {
	SaleID         string          `json:"sale_id"`
	Date           string          `json:"date"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name,omitempty"`
	Marketplace    string          `json:"marketplace"`
	Quantity       int64           `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	UnitCost       decimal.Decimal `json:"unit_cost"` // costo promedio ponderado a la fecha de la venta
	Revenue        decimal.Decimal `json:"revenue"`
	MarketplaceFee decimal.Decimal `json:"marketplace_fee"`
	FixedFee       decimal.Decimal `json:"fixed_fee"`
	Tax            decimal.Decimal `json:"tax"`
	CostOfGoods    decimal.Decimal `json:"cost_of_goods"`
	Profit         decimal.Decimal `json:"profit"`
	MarginPct      decimal.Decimal `json:"margin_pct"`
}

// UnresolvedSaleDTO venta excluida de los totales por falta de base de costo.
type UnresolvedSaleDTO struct {
	SaleID      string          `json:"sale_id"`
	Date        string          `json:"date"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name,omitempty"`
	Marketplace string          `json:"marketplace"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Reason      string          `json:"reason"`
}

// MonthlyIndicatorsDTO totales del mes sobre las ventas resueltas.
type MonthlyIndicatorsDTO struct {
	SalesCount      int             `json:"sales_count"`
	UnitsSold       decimal.Decimal `json:"units_sold"`
	Revenue         decimal.Decimal `json:"revenue"`
	MarketplaceFees decimal.Decimal `json:"marketplace_fees"`
	FixedFees       decimal.Decimal `json:"fixed_fees"`
	Tax             decimal.Decimal `json:"tax"`
	CostOfGoods     decimal.Decimal `json:"cost_of_goods"`
	Profit          decimal.Decimal `json:"profit"`
	MarginPct       decimal.Decimal `json:"margin_pct"`
}

// MonthlyReportDTO respuesta de GET /api/reports/monthly.
// Complete=false indica que hay ventas en Unresolved y que los totales son parciales.
type MonthlyReportDTO struct {
	Period      PeriodDTO            `json:"period"`
	Marketplace string               `json:"marketplace,omitempty"`
	Rates       RatesDTO             `json:"rates"`
	Indicators  MonthlyIndicatorsDTO `json:"indicators"`
	Sales       []ProfitBreakdownDTO `json:"sales"`
	Unresolved  []UnresolvedSaleDTO  `json:"unresolved"`
	Complete    bool                 `json:"complete"`
}
