// Package report contiene el agregador mensual de ganancias.
package report

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/profit-ledger/internal/application/dto"
	"github.com/jhoicas/profit-ledger/internal/application/ledger"
	"github.com/jhoicas/profit-ledger/internal/application/ports"
	"github.com/jhoicas/profit-ledger/internal/domain"
	"github.com/jhoicas/profit-ledger/internal/domain/entity"
	"github.com/jhoicas/profit-ledger/internal/domain/inventory"
	"github.com/jhoicas/profit-ledger/internal/domain/repository"
	"github.com/jhoicas/profit-ledger/pkg/logger"
)

var hundred = decimal.NewFromInt(100)

// MonthlyReportUseCase arma el estado de resultados de un mes.
//
// Cada llamada lee las ventas del mes y las compras de cada SKU dentro de una
// misma transacción y recalcula todo; no guarda resultados entre llamadas.
type MonthlyReportUseCase struct {
	txRunner ports.TxRunner
	rates    inventory.Rates
	strict   bool
	log      *logger.Logger
}

// NewMonthlyReportUseCase construye el caso de uso.
// strict=true hace fallar todo el reporte ante la primera venta sin base de costo.
func NewMonthlyReportUseCase(txRunner ports.TxRunner, rates inventory.Rates, strict bool, log *logger.Logger) *MonthlyReportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &MonthlyReportUseCase{
		txRunner: txRunner,
		rates:    rates,
		strict:   strict,
		log:      log.Component("report"),
	}
}

// GetMonthlyReport calcula el desglose de cada venta del mes y los totales.
//
// Las ventas sin compras previas del SKU quedan fuera de los totales y se listan en
// Unresolved (Complete=false). En modo estricto se devuelve *domain.NoCostBasisError.
func (uc *MonthlyReportUseCase) GetMonthlyReport(ctx context.Context, q dto.MonthQuery) (*dto.MonthlyReportDTO, error) {
	period, err := ledger.NewPeriod(q.Year, q.Month)
	if err != nil {
		return nil, err
	}
	marketplace := ledger.MarketplaceFilter(q.Marketplace)
	_, nextMonth := domain.MonthRange(q.Year, time.Month(q.Month))
	lastDay := nextMonth.AddDate(0, 0, -1)

	// ── Lectura consistente ────────────────────────────────────────────────────
	var sales []*entity.Sale
	purchasesBySKU := map[string][]*entity.Purchase{}
	err = uc.txRunner.Run(ctx, func(purchaseRepo repository.PurchaseRepository, saleRepo repository.SaleRepository) error {
		var err error
		sales, err = saleRepo.ListByMonth(ctx, q.Year, time.Month(q.Month), marketplace)
		if err != nil {
			return err
		}
		for _, s := range sales {
			if _, ok := purchasesBySKU[s.SKU]; ok {
				continue
			}
			// hasta el último día del mes; el corte por fecha de venta lo aplica el calculador
			list, err := purchaseRepo.ListBySKU(ctx, s.SKU, lastDay)
			if err != nil {
				return err
			}
			purchasesBySKU[s.SKU] = list
		}
		return nil
	})
	if err != nil {
		uc.log.Error().Err(err).Int("year", q.Year).Int("month", q.Month).Msg("no se pudo leer el mes")
		return nil, err
	}

	// ── Desglose por venta ─────────────────────────────────────────────────────
	out := &dto.MonthlyReportDTO{
		Period:      period,
		Marketplace: marketplace,
		Rates: dto.RatesDTO{
			MarketplaceFeeRate: uc.rates.MarketplaceFeeRate,
			FixedFeePerUnit:    uc.rates.FixedFeePerUnit,
			TaxRate:            uc.rates.TaxRate,
		},
		Sales:      make([]dto.ProfitBreakdownDTO, 0, len(sales)),
		Unresolved: []dto.UnresolvedSaleDTO{},
	}

	var breakdowns []inventory.ProfitBreakdown
	for _, s := range sales {
		snap, err := inventory.WeightedAverageCost(s.SKU, s.Date, purchasesBySKU[s.SKU])
		if err != nil {
			var nc *domain.NoCostBasisError
			if !errors.As(err, &nc) || uc.strict {
				return nil, err
			}
			uc.log.Warn().
				Str("sale_id", s.ID).
				Str("sku", s.SKU).
				Str("date", s.Date.Format(domain.DateLayout)).
				Msg("venta sin base de costo, excluida de los totales")
			out.Unresolved = append(out.Unresolved, toUnresolved(s, err))
			continue
		}
		uc.log.Debug().
			Str("sale_id", s.ID).
			Str("sku", s.SKU).
			Str("date", s.Date.Format(domain.DateLayout)).
			Str("unit_cost", snap.WeightedAvgCost.Round(4).String()).
			Str("purchased_qty", snap.PurchasedQty.String()).
			Msg("costo promedio resuelto")
		b := inventory.ComputeProfit(s, snap.WeightedAvgCost, uc.rates)
		breakdowns = append(breakdowns, b)
		out.Sales = append(out.Sales, toBreakdownDTO(b))
	}

	out.Indicators = Summarize(breakdowns)
	out.Complete = len(out.Unresolved) == 0

	uc.log.Info().
		Int("year", q.Year).
		Int("month", q.Month).
		Str("marketplace", marketplace).
		Int("sales", len(out.Sales)).
		Int("unresolved", len(out.Unresolved)).
		Str("profit", out.Indicators.Profit.String()).
		Msg("reporte mensual generado")

	return out, nil
}

// Summarize suma los desgloses. Las sumas son exactas; el margen se redondea a 2 decimales.
func Summarize(breakdowns []inventory.ProfitBreakdown) dto.MonthlyIndicatorsDTO {
	ind := dto.MonthlyIndicatorsDTO{
		UnitsSold:       decimal.Zero,
		Revenue:         decimal.Zero,
		MarketplaceFees: decimal.Zero,
		FixedFees:       decimal.Zero,
		Tax:             decimal.Zero,
		CostOfGoods:     decimal.Zero,
		Profit:          decimal.Zero,
		MarginPct:       decimal.Zero,
	}
	for _, b := range breakdowns {
		ind.SalesCount++
		ind.UnitsSold = ind.UnitsSold.Add(decimal.NewFromInt(b.Sale.Quantity))
		ind.Revenue = ind.Revenue.Add(b.Revenue)
		ind.MarketplaceFees = ind.MarketplaceFees.Add(b.MarketplaceFee)
		ind.FixedFees = ind.FixedFees.Add(b.FixedFee)
		ind.Tax = ind.Tax.Add(b.Tax)
		ind.CostOfGoods = ind.CostOfGoods.Add(b.CostOfGoods)
		ind.Profit = ind.Profit.Add(b.Profit)
	}
	if !ind.Revenue.IsZero() {
		ind.MarginPct = ind.Profit.Div(ind.Revenue).Mul(hundred).Round(2)
	}
	return ind
}

func toBreakdownDTO(b inventory.ProfitBreakdown) dto.ProfitBreakdownDTO {
	s := b.Sale
	return dto.ProfitBreakdownDTO{
		SaleID:         s.ID,
		Date:           s.Date.Format(domain.DateLayout),
		SKU:            s.SKU,
		Name:           s.Name,
		Marketplace:    s.Marketplace,
		Quantity:       s.Quantity,
		UnitPrice:      s.UnitPrice,
		UnitCost:       b.UnitCost.Round(4),
		Revenue:        b.Revenue,
		MarketplaceFee: b.MarketplaceFee,
		FixedFee:       b.FixedFee,
		Tax:            b.Tax,
		CostOfGoods:    b.CostOfGoods,
		Profit:         b.Profit,
		MarginPct:      b.MarginPct,
	}
}

func toUnresolved(s *entity.Sale, reason error) dto.UnresolvedSaleDTO {
	return dto.UnresolvedSaleDTO{
		SaleID:      s.ID,
		Date:        s.Date.Format(domain.DateLayout),
		SKU:         s.SKU,
		Name:        s.Name,
		Marketplace: s.Marketplace,
		Quantity:    s.Quantity,
		UnitPrice:   s.UnitPrice,
		Reason:      reason.Error(),
	}
}
