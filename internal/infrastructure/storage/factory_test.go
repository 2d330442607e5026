package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/profit-ledger/pkg/config"
	"github.com/jhoicas/profit-ledger/pkg/logger"
)

func TestOpen_Drivers(t *testing.T) {
	ctx := context.Background()

	for _, driver := range []string{config.DriverSQLite, config.DriverMemory} {
		t.Run(driver, func(t *testing.T) {
			cfg := &config.Config{Storage: config.StorageConfig{
				Driver:     driver,
				SQLitePath: filepath.Join(t.TempDir(), "dados.db"),
			}}

			b, err := Open(ctx, cfg, logger.Nop())
			require.NoError(t, err)
			defer b.Close()

			assert.Equal(t, driver, b.Driver)
			assert.NotNil(t, b.Purchases)
			assert.NotNil(t, b.Sales)
			assert.NotNil(t, b.Tx)
			assert.NoError(t, b.Ping(ctx))
		})
	}
}

func TestOpen_DriverDesconocido(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: "mongo"}}

	_, err := Open(context.Background(), cfg, logger.Nop())
	assert.ErrorContains(t, err, "mongo")
}
