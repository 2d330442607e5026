package repository

import (
	"context"
	"time"

	"github.com/jhoicas/profit-ledger/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas (append-only).
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	// ListByMonth devuelve las ventas del mes ordenadas por fecha ascendente.
	// marketplace vacío = todos.
	ListByMonth(ctx context.Context, year int, month time.Month, marketplace string) ([]*entity.Sale, error)
}
