// Package sqlite implementa los repositorios sobre un archivo SQLite embebido
// (modernc.org/sqlite, sin cgo). El archivo se crea en el primer arranque.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/jhoicas/profit-ledger/internal/application/ports"
	"github.com/jhoicas/profit-ledger/internal/domain"
	"github.com/jhoicas/profit-ledger/internal/domain/repository"
)

var _ ports.TxRunner = (*Store)(nil)

// timestampLayout formato de created_at.
const timestampLayout = time.RFC3339Nano

// Querier abstrae *sql.DB y *sql.Tx para que los repos funcionen con o sin transacción.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Store conexión al archivo SQLite.
type Store struct {
	db *sql.DB
}

// Open crea el directorio si falta, abre la base y aplica las migraciones.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, domain.Unavailable("crear directorio de la base", err)
		}
	}
	dsn := path + "?_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, domain.Unavailable("abrir sqlite", err)
	}
	// un solo escritor; las transacciones de lectura quedan serializadas con las escrituras
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, domain.Unavailable("ping sqlite", err)
	}
	if path != ":memory:" {
		if err := RunMigrations(dsn); err != nil {
			db.Close()
			return nil, domain.Unavailable("migrar sqlite", err)
		}
	} else if err := createSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// createSchema aplica la migración inicial sobre la misma conexión (bases :memory:).
func createSchema(ctx context.Context, db *sql.DB) error {
	ddl, err := migrationsFS.ReadFile("migrations/000001_create_ledger.up.sql")
	if err != nil {
		return fmt.Errorf("leer migración: %w", err)
	}
	if _, err := db.ExecContext(ctx, string(ddl)); err != nil {
		return domain.Unavailable("crear esquema", err)
	}
	return nil
}

// Close cierra la base.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ping verifica la conexión (health check).
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return domain.Unavailable("ping sqlite", err)
	}
	return nil
}

// Purchases repositorio de compras fuera de transacción.
func (s *Store) Purchases() *PurchaseRepo {
	return NewPurchaseRepository(s.db)
}

// Sales repositorio de ventas fuera de transacción.
func (s *Store) Sales() *SaleRepo {
	return NewSaleRepository(s.db)
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (s *Store) Run(ctx context.Context, fn func(
	purchaseRepo repository.PurchaseRepository,
	saleRepo repository.SaleRepository,
) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Unavailable("iniciar transacción", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewPurchaseRepository(tx), NewSaleRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return domain.Unavailable("confirmar transacción", err)
	}
	return nil
}

// ── conversión de columnas ────────────────────────────────────────────────────

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(domain.DateLayout, s, time.UTC)
}

func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(timestampLayout, s)
}
