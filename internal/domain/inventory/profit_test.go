package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/profit-ledger/internal/domain/entity"
	"github.com/jhoicas/profit-ledger/internal/domain/inventory"
)

func sale(price string, qty int64) *entity.Sale {
	return &entity.Sale{SKU: "A", Date: day(2024, 1, 25), UnitPrice: dec(price), Quantity: qty}
}

func assertDec(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), "%s: want %s, got %s", field, want, got)
}

func TestComputeProfit_VentaUnitaria(t *testing.T) {
	b := inventory.ComputeProfit(sale("100", 1), dec("40"), inventory.DefaultRates())

	assertDec(t, "100", b.Revenue, "revenue")
	assertDec(t, "20", b.MarketplaceFee, "marketplace_fee")
	assertDec(t, "4", b.FixedFee, "fixed_fee")
	assertDec(t, "8", b.Tax, "tax")
	assertDec(t, "40", b.CostOfGoods, "cost_of_goods")
	assertDec(t, "28", b.Profit, "profit")
	assertDec(t, "28", b.MarginPct, "margin_pct")
}

func TestComputeProfit_EscenarioDeReferencia(t *testing.T) {
	b := inventory.ComputeProfit(sale("30", 5), dec("12"), inventory.DefaultRates())

	assertDec(t, "150", b.Revenue, "revenue")
	assertDec(t, "30", b.MarketplaceFee, "marketplace_fee")
	assertDec(t, "20", b.FixedFee, "fixed_fee")
	assertDec(t, "12", b.Tax, "tax")
	assertDec(t, "60", b.CostOfGoods, "cost_of_goods")
	assertDec(t, "28", b.Profit, "profit")
	assertDec(t, "18.67", b.MarginPct, "margin_pct")
}

func TestComputeProfit_LineasCuadranEnCentavos(t *testing.T) {
	// costo promedio con decimales periódicos: 10/3 = 3.3333...
	unitCost := dec("10").Div(dec("3"))
	b := inventory.ComputeProfit(sale("19.99", 3), unitCost, inventory.DefaultRates())

	assertDec(t, "59.97", b.Revenue, "revenue")
	assertDec(t, "11.99", b.MarketplaceFee, "marketplace_fee") // 11.994
	assertDec(t, "12", b.FixedFee, "fixed_fee")
	assertDec(t, "4.8", b.Tax, "tax") // 4.7976
	assertDec(t, "10", b.CostOfGoods, "cost_of_goods")

	sum := b.MarketplaceFee.Add(b.FixedFee).Add(b.Tax).Add(b.CostOfGoods).Add(b.Profit)
	assert.True(t, sum.Equal(b.Revenue), "deducciones + ganancia deben sumar el ingreso")
	assert.True(t, b.UnitCost.Equal(unitCost), "el costo unitario se conserva sin redondear")
}

func TestComputeProfit_TasasConfigurables(t *testing.T) {
	rates := inventory.Rates{
		MarketplaceFeeRate: dec("0.10"),
		FixedFeePerUnit:    dec("0"),
		TaxRate:            dec("0"),
	}
	b := inventory.ComputeProfit(sale("50", 2), dec("20"), rates)

	assertDec(t, "10", b.MarketplaceFee, "marketplace_fee")
	assertDec(t, "0", b.FixedFee, "fixed_fee")
	assertDec(t, "50", b.Profit, "profit")
}

func TestComputeProfit_PrecioCero(t *testing.T) {
	b := inventory.ComputeProfit(sale("0", 2), dec("5"), inventory.DefaultRates())

	assertDec(t, "0", b.Revenue, "revenue")
	assertDec(t, "-18", b.Profit, "profit") // 8 fijos + 10 costo
	assertDec(t, "0", b.MarginPct, "margin_pct")
}
