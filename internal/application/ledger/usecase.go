package ledger

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/profit-ledger/internal/application/dto"
	"github.com/jhoicas/profit-ledger/internal/application/ports"
	"github.com/jhoicas/profit-ledger/internal/domain"
	"github.com/jhoicas/profit-ledger/internal/domain/entity"
	"github.com/jhoicas/profit-ledger/internal/domain/inventory"
	"github.com/jhoicas/profit-ledger/internal/domain/repository"
	"github.com/jhoicas/profit-ledger/pkg/logger"
)

// LedgerUseCase registra compras y ventas (append-only) y consulta costos por SKU.
// Cada registro es un único INSERT; la validación ocurre antes de tocar el almacén.
type LedgerUseCase struct {
	purchaseRepo repository.PurchaseRepository
	saleRepo     repository.SaleRepository
	txRunner     ports.TxRunner
	validate     *validator.Validate
	log          *logger.Logger
	now          func() time.Time
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	purchaseRepo repository.PurchaseRepository,
	saleRepo repository.SaleRepository,
	txRunner ports.TxRunner,
	log *logger.Logger,
) *LedgerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &LedgerUseCase{
		purchaseRepo: purchaseRepo,
		saleRepo:     saleRepo,
		txRunner:     txRunner,
		validate:     newValidator(),
		log:          log.Component("ledger"),
		now:          time.Now,
	}
}

// RecordPurchase valida y persiste una compra. Si algo es inválido no se guarda nada.
func (uc *LedgerUseCase) RecordPurchase(ctx context.Context, in dto.RecordPurchaseRequest) (*dto.PurchaseResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)

	date, err := uc.check(in, map[string]*decimal.Decimal{"unit_cost": in.UnitCost}, in.Date)
	if err != nil {
		return nil, err
	}

	p := &entity.Purchase{
		ID:        uuid.New().String(),
		SKU:       in.SKU,
		Name:      in.Name,
		Date:      date,
		UnitCost:  *in.UnitCost,
		Quantity:  in.Quantity,
		CreatedAt: uc.now().UTC(),
	}
	if err := uc.purchaseRepo.Create(ctx, p); err != nil {
		uc.log.Error().Err(err).Str("sku", p.SKU).Msg("no se pudo registrar la compra")
		return nil, err
	}

	uc.log.Info().
		Str("id", p.ID).
		Str("sku", p.SKU).
		Str("date", p.Date.Format(domain.DateLayout)).
		Int64("quantity", p.Quantity).
		Str("unit_cost", p.UnitCost.String()).
		Msg("compra registrada")

	resp := toPurchaseResponse(p)
	return &resp, nil
}

// RecordSale valida y persiste una venta. El marketplace se normaliza (Shopee, Mercado Livre, Outros).
func (uc *LedgerUseCase) RecordSale(ctx context.Context, in dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)

	date, err := uc.check(in, map[string]*decimal.Decimal{"unit_price": in.UnitPrice}, in.Date)
	if err != nil {
		return nil, err
	}

	marketplace := entity.MarketplaceShopee
	if strings.TrimSpace(in.Marketplace) != "" {
		marketplace = entity.NormalizeMarketplace(in.Marketplace)
	}

	s := &entity.Sale{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Marketplace: marketplace,
		Date:        date,
		UnitPrice:   *in.UnitPrice,
		Quantity:    in.Quantity,
		CreatedAt:   uc.now().UTC(),
	}
	if err := uc.saleRepo.Create(ctx, s); err != nil {
		uc.log.Error().Err(err).Str("sku", s.SKU).Msg("no se pudo registrar la venta")
		return nil, err
	}

	uc.log.Info().
		Str("id", s.ID).
		Str("sku", s.SKU).
		Str("marketplace", s.Marketplace).
		Str("date", s.Date.Format(domain.DateLayout)).
		Int64("quantity", s.Quantity).
		Str("unit_price", s.UnitPrice.String()).
		Msg("venta registrada")

	resp := toSaleResponse(s)
	return &resp, nil
}

// check valida el struct, los montos (obligatorios y >= 0) y parsea la fecha.
// Reúne todos los campos inválidos en un solo error.
func (uc *LedgerUseCase) check(in any, money map[string]*decimal.Decimal, rawDate string) (time.Time, error) {
	fields := map[string]string{}

	if err := validateStruct(uc.validate, in); err != nil {
		var inv *domain.InvalidInputError
		if !errors.As(err, &inv) {
			return time.Time{}, err
		}
		for k, v := range inv.Fields {
			fields[k] = v
		}
	}
	for name, amount := range money {
		switch {
		case amount == nil:
			fields[name] = "required"
		case amount.IsNegative():
			fields[name] = "gte"
		}
	}
	if len(fields) > 0 {
		return time.Time{}, &domain.InvalidInputError{Fields: fields}
	}

	return domain.ParseDate(rawDate)
}

// ListPurchases compras del mes con el total comprado.
func (uc *LedgerUseCase) ListPurchases(ctx context.Context, year, month int) (*dto.PurchaseListDTO, error) {
	period, err := NewPeriod(year, month)
	if err != nil {
		return nil, err
	}
	list, err := uc.purchaseRepo.ListByMonth(ctx, year, time.Month(month))
	if err != nil {
		return nil, err
	}

	out := &dto.PurchaseListDTO{Period: period, Total: decimal.Zero, Purchases: make([]dto.PurchaseResponse, 0, len(list))}
	for _, p := range list {
		r := toPurchaseResponse(p)
		out.Total = out.Total.Add(r.Total)
		out.Purchases = append(out.Purchases, r)
	}
	return out, nil
}

// ListSales ventas del mes, más recientes primero, con el ingreso bruto.
func (uc *LedgerUseCase) ListSales(ctx context.Context, q dto.MonthQuery) (*dto.SaleListDTO, error) {
	period, err := NewPeriod(q.Year, q.Month)
	if err != nil {
		return nil, err
	}
	marketplace := MarketplaceFilter(q.Marketplace)
	list, err := uc.saleRepo.ListByMonth(ctx, q.Year, time.Month(q.Month), marketplace)
	if err != nil {
		return nil, err
	}

	out := &dto.SaleListDTO{Period: period, Marketplace: marketplace, Revenue: decimal.Zero, Sales: make([]dto.SaleResponse, 0, len(list))}
	for i := len(list) - 1; i >= 0; i-- {
		r := toSaleResponse(list[i])
		out.Revenue = out.Revenue.Add(r.Revenue)
		out.Sales = append(out.Sales, r)
	}
	return out, nil
}

// CostAsOf costo promedio ponderado del SKU con las compras hasta asOf (inclusive).
func (uc *LedgerUseCase) CostAsOf(ctx context.Context, sku, asOf string) (*dto.CostSnapshotDTO, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, domain.Invalid("sku", "required")
	}
	date, err := uc.dateOrToday(asOf)
	if err != nil {
		return nil, err
	}

	purchases, err := uc.purchaseRepo.ListBySKU(ctx, sku, date)
	if err != nil {
		return nil, err
	}
	snap, err := inventory.WeightedAverageCost(sku, date, purchases)
	if err != nil {
		return nil, err
	}
	return &dto.CostSnapshotDTO{
		SKU:             snap.SKU,
		AsOf:            snap.AsOf.Format(domain.DateLayout),
		WeightedAvgCost: snap.WeightedAvgCost.Round(4),
		PurchasedQty:    snap.PurchasedQty,
	}, nil
}

// CostHistory evolución del costo promedio del SKU tras cada compra hasta asOf.
func (uc *LedgerUseCase) CostHistory(ctx context.Context, sku, asOf string) ([]dto.CostHistoryEntryDTO, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, domain.Invalid("sku", "required")
	}
	date, err := uc.dateOrToday(asOf)
	if err != nil {
		return nil, err
	}

	var purchases []*entity.Purchase
	err = uc.txRunner.Run(ctx, func(purchaseRepo repository.PurchaseRepository, _ repository.SaleRepository) error {
		var err error
		purchases, err = purchaseRepo.ListBySKU(ctx, sku, date)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(purchases) == 0 {
		return nil, &domain.NoCostBasisError{SKU: sku, Date: date}
	}

	sort.SliceStable(purchases, func(i, j int) bool {
		if !purchases[i].Date.Equal(purchases[j].Date) {
			return purchases[i].Date.Before(purchases[j].Date)
		}
		return purchases[i].CreatedAt.Before(purchases[j].CreatedAt)
	})

	history := make([]dto.CostHistoryEntryDTO, 0, len(purchases))
	stock, avg := decimal.Zero, decimal.Zero
	for _, p := range purchases {
		qty := decimal.NewFromInt(p.Quantity)
		avg = inventory.RunningAverageCost(stock, avg, qty, p.UnitCost)
		stock = stock.Add(qty)
		history = append(history, dto.CostHistoryEntryDTO{
			PurchaseID: p.ID,
			Date:       p.Date.Format(domain.DateLayout),
			Quantity:   p.Quantity,
			UnitCost:   p.UnitCost,
			StockQty:   stock,
			AvgCost:    avg.Round(4),
		})
	}
	return history, nil
}

func (uc *LedgerUseCase) dateOrToday(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return domain.DayOf(uc.now()), nil
	}
	return domain.ParseDate(raw)
}

// ── helpers compartidos con el reporte ────────────────────────────────────────

// NewPeriod valida year/month y arma el PeriodDTO del mes.
func NewPeriod(year, month int) (dto.PeriodDTO, error) {
	if month < 1 || month > 12 {
		return dto.PeriodDTO{}, domain.Invalid("month", "oneof=1..12")
	}
	if year < 1 || year > 9999 {
		return dto.PeriodDTO{}, domain.Invalid("year", "range=1..9999")
	}
	start, next := domain.MonthRange(year, time.Month(month))
	return dto.PeriodDTO{
		Year:      year,
		Month:     month,
		StartDate: start.Format(domain.DateLayout),
		EndDate:   next.AddDate(0, 0, -1).Format(domain.DateLayout),
	}, nil
}

// MarketplaceFilter "" o "Todos" = sin filtro; otro valor se normaliza.
func MarketplaceFilter(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "todos") {
		return ""
	}
	return entity.NormalizeMarketplace(raw)
}

func toPurchaseResponse(p *entity.Purchase) dto.PurchaseResponse {
	return dto.PurchaseResponse{
		ID:        p.ID,
		SKU:       p.SKU,
		Name:      p.Name,
		Date:      p.Date.Format(domain.DateLayout),
		UnitCost:  p.UnitCost,
		Quantity:  p.Quantity,
		Total:     p.Total(),
		CreatedAt: p.CreatedAt,
	}
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:          s.ID,
		SKU:         s.SKU,
		Name:        s.Name,
		Marketplace: s.Marketplace,
		Date:        s.Date.Format(domain.DateLayout),
		UnitPrice:   s.UnitPrice,
		Quantity:    s.Quantity,
		Revenue:     s.Revenue(),
		CreatedAt:   s.CreatedAt,
	}
}
