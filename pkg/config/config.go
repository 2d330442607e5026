package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Drivers de almacenamiento soportados.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	Log     LogConfig
	HTTP    HTTPConfig
	Storage StorageConfig
	DB      DBConfig
	Profit  ProfitConfig
	Report  ReportConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env         string // development, staging, production
	Name        string
	SwaggerFile string // ruta a docs/swagger.json; si no existe no se monta /docs
}

// LogConfig nivel de log (trace, debug, info, warn, error).
type LogConfig struct {
	Level string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig selecciona el almacén de registros.
// sqlite es el modo embebido por defecto: el archivo se crea en el primer arranque.
type StorageConfig struct {
	Driver     string
	SQLitePath string
}

// DBConfig configuración de PostgreSQL (solo con STORAGE_DRIVER=postgres).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// ProfitConfig reglas de deducción aplicadas a cada venta.
type ProfitConfig struct {
	MarketplaceFeeRate decimal.Decimal // sobre el ingreso (0.20 = 20%)
	FixedFeePerUnit    decimal.Decimal // monto fijo por unidad vendida
	TaxRate            decimal.Decimal // sobre el ingreso (0.08 = 8%)
}

// ReportConfig opciones del reporte mensual y de su presentación.
type ReportConfig struct {
	// Strict: una venta sin base de costo hace fallar todo el reporte
	// en lugar de excluirse y listarse como no resuelta.
	Strict         bool
	CurrencySymbol string
	Locale         string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, STORAGE_DRIVER, SQLITE_PATH, PROFIT_TAX_RATE, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	fee, err := getDecimal(v, "PROFIT_MARKETPLACE_FEE_RATE", "0.20")
	if err != nil {
		return nil, err
	}
	fixed, err := getDecimal(v, "PROFIT_FIXED_FEE_PER_UNIT", "4.00")
	if err != nil {
		return nil, err
	}
	tax, err := getDecimal(v, "PROFIT_TAX_RATE", "0.08")
	if err != nil {
		return nil, err
	}
	httpPort, err := getInt(v, "HTTP_PORT", 8501)
	if err != nil {
		return nil, err
	}
	dbPort, err := getInt(v, "DB_PORT", 5432)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Env:         getString(v, "APP_ENV", "development"),
			Name:        getString(v, "APP_NAME", "profit-ledger"),
			SwaggerFile: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: httpPort,
		},
		Storage: StorageConfig{
			Driver:     strings.ToLower(getString(v, "STORAGE_DRIVER", DriverSQLite)),
			SQLitePath: getString(v, "SQLITE_PATH", "./data/dados.db"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        dbPort,
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "profit_ledger"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Profit: ProfitConfig{
			MarketplaceFeeRate: fee,
			FixedFeePerUnit:    fixed,
			TaxRate:            tax,
		},
		Report: ReportConfig{
			Strict:         getBool(v, "REPORT_STRICT", false),
			CurrencySymbol: getString(v, "CURRENCY_SYMBOL", "R$"),
			Locale:         getString(v, "LOCALE", "pt-BR"),
		},
	}
	return cfg, nil
}

// Validate revisa la configuración y devuelve un único error con todos los problemas encontrados.
func (c *Config) Validate() error {
	var problems []string

	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		problems = append(problems, fmt.Sprintf("HTTP_PORT %d fuera de rango (1-65535)", c.HTTP.Port))
	}

	switch c.Storage.Driver {
	case DriverSQLite:
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			problems = append(problems, "SQLITE_PATH no puede estar vacío con STORAGE_DRIVER=sqlite")
		}
	case DriverPostgres:
		if c.DB.DatabaseURL == "" && c.DB.Host == "" {
			problems = append(problems, "DATABASE_URL o DB_HOST es obligatorio con STORAGE_DRIVER=postgres")
		}
	case DriverMemory:
	default:
		problems = append(problems, fmt.Sprintf("STORAGE_DRIVER '%s' inválido: use sqlite, postgres o memory", c.Storage.Driver))
	}

	one := decimal.NewFromInt(1)
	if c.Profit.MarketplaceFeeRate.IsNegative() || c.Profit.MarketplaceFeeRate.GreaterThanOrEqual(one) {
		problems = append(problems, fmt.Sprintf("PROFIT_MARKETPLACE_FEE_RATE %s debe estar en [0, 1)", c.Profit.MarketplaceFeeRate))
	}
	if c.Profit.TaxRate.IsNegative() || c.Profit.TaxRate.GreaterThanOrEqual(one) {
		problems = append(problems, fmt.Sprintf("PROFIT_TAX_RATE %s debe estar en [0, 1)", c.Profit.TaxRate))
	}
	if c.Profit.FixedFeePerUnit.IsNegative() {
		problems = append(problems, fmt.Sprintf("PROFIT_FIXED_FEE_PER_UNIT %s no puede ser negativo", c.Profit.FixedFeePerUnit))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuración inválida:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) (int, error) {
	if !v.IsSet(key) {
		return def, nil
	}
	if n, ok := v.Get(key).(int); ok {
		return n, nil
	}
	raw := strings.TrimSpace(v.GetString(key))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: valor entero inválido %q: %w", key, raw, err)
	}
	return n, nil
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}

func getDecimal(v *viper.Viper, key, def string) (decimal.Decimal, error) {
	raw := getString(v, key, def)
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: valor decimal inválido %q: %w", key, raw, err)
	}
	return d, nil
}
