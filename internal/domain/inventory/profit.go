package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/profit-ledger/internal/domain/entity"
)

// centavos de precisión para cada línea del desglose.
const moneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// Rates reglas de deducción configurables.
type Rates struct {
	MarketplaceFeeRate decimal.Decimal // fracción del ingreso (0.20)
	FixedFeePerUnit    decimal.Decimal // monto por unidad vendida (4.00)
	TaxRate            decimal.Decimal // fracción del ingreso (0.08)
}

// DefaultRates reglas vigentes: 20% marketplace, 4,00 por unidad, 8% impuesto.
func DefaultRates() Rates {
	return Rates{
		MarketplaceFeeRate: decimal.RequireFromString("0.20"),
		FixedFeePerUnit:    decimal.RequireFromString("4.00"),
		TaxRate:            decimal.RequireFromString("0.08"),
	}
}

// ProfitBreakdown desglose de una venta. Todas las líneas quedan en centavos y
// Profit = Revenue − MarketplaceFee − FixedFee − Tax − CostOfGoods sobre esos valores redondeados.
type ProfitBreakdown struct {
	Sale           *entity.Sale
	UnitCost       decimal.Decimal // costo promedio ponderado a la fecha de la venta (sin redondear)
	Revenue        decimal.Decimal
	MarketplaceFee decimal.Decimal
	FixedFee       decimal.Decimal
	Tax            decimal.Decimal
	CostOfGoods    decimal.Decimal
	Profit         decimal.Decimal
	MarginPct      decimal.Decimal // Profit / Revenue × 100; 0 si no hay ingreso
}

// ComputeProfit aplica las reglas de deducción a una venta con el costo unitario ya resuelto.
func ComputeProfit(sale *entity.Sale, unitCost decimal.Decimal, rates Rates) ProfitBreakdown {
	qty := decimal.NewFromInt(sale.Quantity)

	revenue := sale.Revenue().Round(moneyPlaces)
	fee := revenue.Mul(rates.MarketplaceFeeRate).Round(moneyPlaces)
	fixed := rates.FixedFeePerUnit.Mul(qty).Round(moneyPlaces)
	tax := revenue.Mul(rates.TaxRate).Round(moneyPlaces)
	cogs := unitCost.Mul(qty).Round(moneyPlaces)
	profit := revenue.Sub(fee).Sub(fixed).Sub(tax).Sub(cogs)

	margin := decimal.Zero
	if !revenue.IsZero() {
		margin = profit.Div(revenue).Mul(hundred).Round(moneyPlaces)
	}

	return ProfitBreakdown{
		Sale:           sale,
		UnitCost:       unitCost,
		Revenue:        revenue,
		MarketplaceFee: fee,
		FixedFee:       fixed,
		Tax:            tax,
		CostOfGoods:    cogs,
		Profit:         profit,
		MarginPct:      margin,
	}
}
