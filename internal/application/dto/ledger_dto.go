package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordPurchaseRequest body para POST /api/purchases.
type RecordPurchaseRequest struct {
	SKU      string           `json:"sku" validate:"required,max=60"`
	Name     string           `json:"name" validate:"max=120"`
	Date     string           `json:"date" validate:"required,datetime=2006-01-02"` // YYYY-MM-DD
	UnitCost *decimal.Decimal `json:"unit_cost"`                                     // >= 0, obligatorio
	Quantity int64            `json:"quantity" validate:"gt=0,lte=1000000000"`
}

// RecordSaleRequest body para POST /api/sales.
type RecordSaleRequest struct {
	SKU         string           `json:"sku" validate:"required,max=60"`
	Name        string           `json:"name" validate:"max=120"`
	Marketplace string           `json:"marketplace" validate:"max=60"` // Shopee, Mercado Livre, Outros
	Date        string           `json:"date" validate:"required,datetime=2006-01-02"`
	UnitPrice   *decimal.Decimal `json:"unit_price"` // >= 0, obligatorio
	Quantity    int64            `json:"quantity" validate:"gt=0,lte=1000000000"`
}

// PurchaseResponse compra registrada.
type PurchaseResponse struct {
	ID        string          `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name,omitempty"`
	Date      string          `json:"date"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Quantity  int64           `json:"quantity"`
	Total     decimal.Decimal `json:"total"` // UnitCost × Quantity
	CreatedAt time.Time       `json:"created_at"`
}

// SaleResponse venta registrada.
type SaleResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name,omitempty"`
	Marketplace string          `json:"marketplace"`
	Date        string          `json:"date"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int64           `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"` // UnitPrice × Quantity
	CreatedAt   time.Time       `json:"created_at"`
}

// PurchaseListDTO compras del mes.
type PurchaseListDTO struct {
	Period    PeriodDTO          `json:"period"`
	Total     decimal.Decimal    `json:"total"`
	Purchases []PurchaseResponse `json:"purchases"`
}

// SaleListDTO ventas del mes.
type SaleListDTO struct {
	Period      PeriodDTO       `json:"period"`
	Marketplace string          `json:"marketplace,omitempty"`
	Revenue     decimal.Decimal `json:"revenue"`
	Sales       []SaleResponse  `json:"sales"`
}

// CostSnapshotDTO costo promedio ponderado de un SKU a una fecha.
type CostSnapshotDTO struct {
	SKU             string          `json:"sku"`
	AsOf            string          `json:"as_of"`
	WeightedAvgCost decimal.Decimal `json:"weighted_avg_cost"`
	PurchasedQty    decimal.Decimal `json:"purchased_qty"`
}

// CostHistoryEntryDTO costo promedio resultante después de cada compra.
type CostHistoryEntryDTO struct {
	PurchaseID string          `json:"purchase_id"`
	Date       string          `json:"date"`
	Quantity   int64           `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	StockQty   decimal.Decimal `json:"stock_qty"` // unidades compradas acumuladas
	AvgCost    decimal.Decimal `json:"avg_cost"`
}
