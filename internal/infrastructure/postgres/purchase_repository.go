package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/profit-ledger/internal/domain"
	"github.com/jhoicas/profit-ledger/internal/domain/entity"
	"github.com/jhoicas/profit-ledger/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación sobre PostgreSQL (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste una compra.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	query := `
		INSERT INTO purchases (id, sku, name, date, unit_cost, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, p.ID, p.SKU, p.Name, p.Date, p.UnitCost, p.Quantity, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			err = fmt.Errorf("id %s duplicado: %w", p.ID, err)
		}
		return domain.Unavailable("insertar compra", err)
	}
	return nil
}

// ListBySKU compras del SKU con fecha <= until.
func (r *PurchaseRepo) ListBySKU(ctx context.Context, sku string, until time.Time) ([]*entity.Purchase, error) {
	query := `
		SELECT id, sku, name, date, unit_cost, quantity, created_at
		FROM purchases WHERE sku = $1 AND date <= $2
		ORDER BY date, seq`
	rows, err := r.q.Query(ctx, query, sku, domain.DayOf(until))
	if err != nil {
		return nil, domain.Unavailable("listar compras por SKU", err)
	}
	return collectPurchases(rows)
}

// ListByMonth compras del mes, más recientes primero.
func (r *PurchaseRepo) ListByMonth(ctx context.Context, year int, month time.Month) ([]*entity.Purchase, error) {
	start, end := domain.MonthRange(year, month)
	query := `
		SELECT id, sku, name, date, unit_cost, quantity, created_at
		FROM purchases WHERE date >= $1 AND date < $2
		ORDER BY date DESC, seq DESC`
	rows, err := r.q.Query(ctx, query, start, end)
	if err != nil {
		return nil, domain.Unavailable("listar compras del mes", err)
	}
	return collectPurchases(rows)
}

func collectPurchases(rows pgx.Rows) ([]*entity.Purchase, error) {
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Purchase, error) {
		var p entity.Purchase
		err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Date, &p.UnitCost, &p.Quantity, &p.CreatedAt)
		p.Date = domain.DayOf(p.Date)
		return &p, err
	})
	if err != nil {
		return nil, domain.Unavailable("leer compras", err)
	}
	return list, nil
}
