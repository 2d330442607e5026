package postgres

import (
	"context"

	"github.com/jhoicas/profit-ledger/internal/domain"
)

// schemaDDL tablas append-only del libro. seq desempata registros del mismo día.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS purchases (
    seq        BIGSERIAL,
    id         TEXT PRIMARY KEY,
    sku        TEXT NOT NULL,
    name       TEXT NOT NULL DEFAULT '',
    date       DATE NOT NULL,
    unit_cost  NUMERIC NOT NULL CHECK (unit_cost >= 0),
    quantity   BIGINT NOT NULL CHECK (quantity > 0),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_purchases_sku_date ON purchases (sku, date);
CREATE INDEX IF NOT EXISTS idx_purchases_date ON purchases (date);

CREATE TABLE IF NOT EXISTS sales (
    seq         BIGSERIAL,
    id          TEXT PRIMARY KEY,
    sku         TEXT NOT NULL,
    name        TEXT NOT NULL DEFAULT '',
    marketplace TEXT NOT NULL DEFAULT 'Shopee',
    date        DATE NOT NULL,
    unit_price  NUMERIC NOT NULL CHECK (unit_price >= 0),
    quantity    BIGINT NOT NULL CHECK (quantity > 0),
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_sales_date ON sales (date);
CREATE INDEX IF NOT EXISTS idx_sales_sku ON sales (sku);
`

// EnsureSchema crea las tablas si no existen. Es idempotente.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schemaDDL); err != nil {
		return domain.Unavailable("crear esquema postgres", err)
	}
	return nil
}
