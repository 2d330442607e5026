package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/profit-ledger/internal/domain"
	"github.com/jhoicas/profit-ledger/internal/domain/entity"
)

// CostSnapshot costo promedio ponderado de un SKU a una fecha de corte. No se persiste.
type CostSnapshot struct {
	SKU              string
	AsOf             time.Time
	WeightedAvgCost  decimal.Decimal
	PurchasedQty     decimal.Decimal
	TotalPurchaseAmt decimal.Decimal
}

// WeightedAverageCost calcula el costo promedio ponderado del SKU con las compras de fecha <= asOf.
// CostoPromedio = Σ(CostoUnit_i × Cant_i) / Σ(Cant_i)
//
// purchases puede venir en cualquier orden y contener otros SKUs; las sumas son exactas en decimal,
// así que el resultado no depende del orden ni desborda con cantidades grandes. Sin cantidad calificada devuelve *domain.NoCostBasisError.
func WeightedAverageCost(sku string, asOf time.Time, purchases []*entity.Purchase) (CostSnapshot, error) {
	cutoff := domain.DayOf(asOf)
	totalCost, totalQty := decimal.Zero, decimal.Zero

	for _, p := range purchases {
		if p == nil || p.SKU != sku || domain.DayOf(p.Date).After(cutoff) {
			continue
		}
		totalCost = totalCost.Add(p.Total())
		totalQty = totalQty.Add(decimal.NewFromInt(p.Quantity))
	}

	if !totalQty.IsPositive() {
		return CostSnapshot{}, &domain.NoCostBasisError{SKU: sku, Date: cutoff}
	}

	return CostSnapshot{
		SKU:              sku,
		AsOf:             cutoff,
		WeightedAvgCost:  totalCost.Div(totalQty),
		PurchasedQty:     totalQty,
		TotalPurchaseAmt: totalCost,
	}, nil
}

// RunningAverageCost es la forma incremental del mismo promedio:
// NuevoCosto = ((StockActual × CostoActual) + (CantEntrada × CostoEntrada)) / (StockActual + CantEntrada)
// Se usa para mostrar el costo tras cada compra en los listados; con stock resultante <= 0 devuelve cero.
func RunningAverageCost(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum)
}
