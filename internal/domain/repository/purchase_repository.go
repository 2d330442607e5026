package repository

import (
	"context"
	"time"

	"github.com/jhoicas/profit-ledger/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para compras (append-only).
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	// ListBySKU devuelve las compras del SKU con fecha <= until (inclusive), sin orden garantizado.
	ListBySKU(ctx context.Context, sku string, until time.Time) ([]*entity.Purchase, error)
	// ListByMonth devuelve las compras del mes, más recientes primero.
	ListByMonth(ctx context.Context, year int, month time.Month) ([]*entity.Purchase, error)
}
