package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/jhoicas/profit-ledger/internal/domain"
	"github.com/jhoicas/profit-ledger/internal/domain/entity"
	"github.com/jhoicas/profit-ledger/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación sobre SQLite (usable con db o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar db o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const purchaseColumns = `id, sku, name, date, unit_cost, quantity, created_at`

// Create inserta la compra en una sola sentencia.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	query := `INSERT INTO purchases (` + purchaseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.q.ExecContext(ctx, query,
		p.ID, p.SKU, p.Name,
		p.Date.Format(domain.DateLayout),
		p.UnitCost.String(),
		p.Quantity,
		p.CreatedAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		return domain.Unavailable("insertar compra", err)
	}
	return nil
}

// ListBySKU compras del SKU con fecha <= until.
func (r *PurchaseRepo) ListBySKU(ctx context.Context, sku string, until time.Time) ([]*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE sku = ? AND date <= ? ORDER BY date, rowid`
	rows, err := r.q.QueryContext(ctx, query, sku, domain.DayOf(until).Format(domain.DateLayout))
	if err != nil {
		return nil, domain.Unavailable("listar compras por SKU", err)
	}
	return scanPurchases(rows)
}

// ListByMonth compras del mes, más recientes primero.
func (r *PurchaseRepo) ListByMonth(ctx context.Context, year int, month time.Month) ([]*entity.Purchase, error) {
	start, end := domain.MonthRange(year, month)
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE date >= ? AND date < ? ORDER BY date DESC, rowid DESC`
	rows, err := r.q.QueryContext(ctx, query, start.Format(domain.DateLayout), end.Format(domain.DateLayout))
	if err != nil {
		return nil, domain.Unavailable("listar compras del mes", err)
	}
	return scanPurchases(rows)
}

func scanPurchases(rows *sql.Rows) ([]*entity.Purchase, error) {
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		var (
			p                     entity.Purchase
			date, cost, createdAt string
		)
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &date, &cost, &p.Quantity, &createdAt); err != nil {
			return nil, domain.Unavailable("leer compra", err)
		}
		var err error
		if p.Date, err = parseDate(date); err != nil {
			return nil, domain.Unavailable("leer fecha de compra", err)
		}
		if p.UnitCost, err = parseDecimal(cost); err != nil {
			return nil, domain.Unavailable("leer costo de compra", err)
		}
		if p.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, domain.Unavailable("leer created_at de compra", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Unavailable("iterar compras", err)
	}
	return list, nil
}
