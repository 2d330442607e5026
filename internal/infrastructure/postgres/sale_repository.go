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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, sku, name, marketplace, date, unit_price, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, s.ID, s.SKU, s.Name, s.Marketplace, s.Date, s.UnitPrice, s.Quantity, s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			err = fmt.Errorf("id %s duplicado: %w", s.ID, err)
		}
		return domain.Unavailable("insertar venta", err)
	}
	return nil
}

// ListByMonth ventas del mes en orden cronológico; marketplace vacío = todas.
func (r *SaleRepo) ListByMonth(ctx context.Context, year int, month time.Month, marketplace string) ([]*entity.Sale, error) {
	start, end := domain.MonthRange(year, month)
	query := `
		SELECT id, sku, name, marketplace, date, unit_price, quantity, created_at
		FROM sales WHERE date >= $1 AND date < $2`
	args := []any{start, end}
	if marketplace != "" {
		query += ` AND marketplace = $3`
		args = append(args, marketplace)
	}
	query += ` ORDER BY date, seq`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Unavailable("listar ventas del mes", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Sale, error) {
		var s entity.Sale
		err := row.Scan(&s.ID, &s.SKU, &s.Name, &s.Marketplace, &s.Date, &s.UnitPrice, &s.Quantity, &s.CreatedAt)
		s.Date = domain.DayOf(s.Date)
		return &s, err
	})
	if err != nil {
		return nil, domain.Unavailable("leer ventas", err)
	}
	return list, nil
}
