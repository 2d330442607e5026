package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "./data/dados.db", cfg.Storage.SQLitePath)
	assert.Equal(t, "127.0.0.1:8501", cfg.HTTP.Addr())
	assert.True(t, cfg.Profit.MarketplaceFeeRate.Equal(decimal.RequireFromString("0.20")))
	assert.True(t, cfg.Profit.FixedFeePerUnit.Equal(decimal.RequireFromString("4")))
	assert.True(t, cfg.Profit.TaxRate.Equal(decimal.RequireFromString("0.08")))
	assert.False(t, cfg.Report.Strict)
	assert.Equal(t, "R$", cfg.Report.CurrencySymbol)
	require.NoError(t, cfg.Validate())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "MEMORY")
	v.Set("HTTP_PORT", "9000")
	v.Set("PROFIT_MARKETPLACE_FEE_RATE", "0.15")
	v.Set("PROFIT_FIXED_FEE_PER_UNIT", "5.5")
	v.Set("REPORT_STRICT", true)

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.True(t, cfg.Profit.MarketplaceFeeRate.Equal(decimal.RequireFromString("0.15")))
	assert.True(t, cfg.Profit.FixedFeePerUnit.Equal(decimal.RequireFromString("5.5")))
	assert.True(t, cfg.Report.Strict)
}

func TestFromViper_DecimalInvalido(t *testing.T) {
	v := viper.New()
	v.Set("PROFIT_TAX_RATE", "ocho por ciento")

	_, err := fromViper(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROFIT_TAX_RATE")
}

func TestFromViper_PuertoInvalido(t *testing.T) {
	for _, key := range []string{"HTTP_PORT", "DB_PORT"} {
		t.Run(key, func(t *testing.T) {
			v := viper.New()
			v.Set(key, "abc")

			_, err := fromViper(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		cfg, err := fromViper(viper.New())
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:    "puerto fuera de rango",
			mutate:  func(c *Config) { c.HTTP.Port = 70000 },
			wantErr: "HTTP_PORT 70000",
		},
		{
			name:    "driver desconocido",
			mutate:  func(c *Config) { c.Storage.Driver = "mysql" },
			wantErr: "STORAGE_DRIVER 'mysql'",
		},
		{
			name:    "sqlite sin ruta",
			mutate:  func(c *Config) { c.Storage.SQLitePath = " " },
			wantErr: "SQLITE_PATH",
		},
		{
			name:    "comisión >= 1",
			mutate:  func(c *Config) { c.Profit.MarketplaceFeeRate = decimal.NewFromInt(1) },
			wantErr: "PROFIT_MARKETPLACE_FEE_RATE",
		},
		{
			name:    "impuesto negativo",
			mutate:  func(c *Config) { c.Profit.TaxRate = decimal.RequireFromString("-0.01") },
			wantErr: "PROFIT_TAX_RATE",
		},
		{
			name:    "tarifa fija negativa",
			mutate:  func(c *Config) { c.Profit.FixedFeePerUnit = decimal.NewFromInt(-4) },
			wantErr: "PROFIT_FIXED_FEE_PER_UNIT",
		},
		{
			name: "postgres sin host ni url",
			mutate: func(c *Config) {
				c.Storage.Driver = DriverPostgres
				c.DB.Host = ""
			},
			wantErr: "DATABASE_URL o DB_HOST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "ledger", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/ledger?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
