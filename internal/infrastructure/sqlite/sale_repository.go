package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/jhoicas/profit-ledger/internal/domain"
	"github.com/jhoicas/profit-ledger/internal/domain/entity"
	"github.com/jhoicas/profit-ledger/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación sobre SQLite (usable con db o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar db o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, sku, name, marketplace, date, unit_price, quantity, created_at`

// Create inserta la venta en una sola sentencia.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `INSERT INTO sales (` + saleColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.q.ExecContext(ctx, query,
		s.ID, s.SKU, s.Name, s.Marketplace,
		s.Date.Format(domain.DateLayout),
		s.UnitPrice.String(),
		s.Quantity,
		s.CreatedAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		return domain.Unavailable("insertar venta", err)
	}
	return nil
}

// ListByMonth ventas del mes en orden cronológico; marketplace vacío = todas.
func (r *SaleRepo) ListByMonth(ctx context.Context, year int, month time.Month, marketplace string) ([]*entity.Sale, error) {
	start, end := domain.MonthRange(year, month)
	query := `SELECT ` + saleColumns + ` FROM sales WHERE date >= ? AND date < ?`
	args := []any{start.Format(domain.DateLayout), end.Format(domain.DateLayout)}
	if marketplace != "" {
		query += ` AND marketplace = ?`
		args = append(args, marketplace)
	}
	query += ` ORDER BY date, rowid`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.Unavailable("listar ventas del mes", err)
	}
	return scanSales(rows)
}

func scanSales(rows *sql.Rows) ([]*entity.Sale, error) {
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var (
			s                      entity.Sale
			date, price, createdAt string
		)
		if err := rows.Scan(&s.ID, &s.SKU, &s.Name, &s.Marketplace, &date, &price, &s.Quantity, &createdAt); err != nil {
			return nil, domain.Unavailable("leer venta", err)
		}
		var err error
		if s.Date, err = parseDate(date); err != nil {
			return nil, domain.Unavailable("leer fecha de venta", err)
		}
		if s.UnitPrice, err = parseDecimal(price); err != nil {
			return nil, domain.Unavailable("leer precio de venta", err)
		}
		if s.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, domain.Unavailable("leer created_at de venta", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Unavailable("iterar ventas", err)
	}
	return list, nil
}
