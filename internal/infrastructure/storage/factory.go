// Package storage elige el almacén según STORAGE_DRIVER y expone repos, TxRunner y cierre.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/profit-ledger/internal/application/ports"
	"github.com/jhoicas/profit-ledger/internal/domain"
	"github.com/jhoicas/profit-ledger/internal/domain/repository"
	"github.com/jhoicas/profit-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/profit-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/profit-ledger/internal/infrastructure/sqlite"
	"github.com/jhoicas/profit-ledger/pkg/config"
	"github.com/jhoicas/profit-ledger/pkg/logger"
)

// Backend almacén listo para usar. Close libera conexiones; nunca es nil.
type Backend struct {
	Driver    string
	Purchases repository.PurchaseRepository
	Sales     repository.SaleRepository
	Tx        ports.TxRunner
	Ping      func(ctx context.Context) error
	Close     func() error
}

// Open inicializa el almacén configurado. Se llama una vez al arrancar y el
// Backend se pasa explícitamente a los casos de uso.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Backend, error) {
	log = log.Component("storage")

	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("inicializar sqlite: %w", err)
		}
		log.Info().Str("path", cfg.Storage.SQLitePath).Msg("almacén sqlite listo")
		return &Backend{
			Driver:    cfg.Storage.Driver,
			Purchases: store.Purchases(),
			Sales:     store.Sales(),
			Tx:        store,
			Ping:      store.Ping,
			Close:     store.Close,
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("inicializar postgres: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("almacén postgres listo")
		return &Backend{
			Driver:    cfg.Storage.Driver,
			Purchases: postgres.NewPurchaseRepository(pool),
			Sales:     postgres.NewSaleRepository(pool),
			Tx:        postgres.NewTxRunner(pool),
			Ping: func(ctx context.Context) error {
				if err := pool.Ping(ctx); err != nil {
					return domain.Unavailable("ping postgres", err)
				}
				return nil
			},
			Close: func() error {
				pool.Close()
				return nil
			},
		}, nil

	case config.DriverMemory:
		store := memory.NewStore()
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		return &Backend{
			Driver:    cfg.Storage.Driver,
			Purchases: store.Purchases(),
			Sales:     store.Sales(),
			Tx:        store,
			Ping:      store.Ping,
			Close:     func() error { return nil },
		}, nil

	default:
		return nil, fmt.Errorf("STORAGE_DRIVER desconocido: %q", cfg.Storage.Driver)
	}
}
