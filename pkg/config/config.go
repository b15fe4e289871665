package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Billing BillingConfig
	Storage StorageConfig
	Redis   RedisConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo (ej. DATABASE_URL de Supabase).
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
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

// JWTConfig configuración de los tokens emitidos por el proveedor de identidad externo.
// Secret es el secreto HS256 compartido; Issuer vacío desactiva la verificación del emisor.
type JWTConfig struct {
	Secret     string
	Issuer     string
	Expiration int // minutos, solo para tokens de desarrollo
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

// BillingConfig parámetros de cálculo y numeración de facturas.
type BillingConfig struct {
	TaxRate        decimal.Decimal // fracción, ej. 0.10 = 10%
	MoneyScale     int32           // decimales de precios e impuesto, 0..2
	DefaultPattern string
}

// StorageConfig selecciona el backend de persistencia.
type StorageConfig struct {
	Backend     string // postgres | memory
	AutoMigrate bool
}

// RedisConfig almacén de claves de idempotencia. URL vacía = caché en memoria.
type RedisConfig struct {
	URL            string
	IdempotencyTTL int // minutos
}

// Backends de almacenamiento soportados.
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

const maxMoneyScale = 2

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, TAX_RATE, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	taxRate, err := decimal.NewFromString(getString(v, "TAX_RATE", "0.10"))
	if err != nil {
		return nil, fmt.Errorf("TAX_RATE inválido: %w", err)
	}
	if taxRate.IsNegative() || taxRate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("TAX_RATE debe estar entre 0 y 1, recibido %s", taxRate)
	}

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "facturador-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "facturador"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 25),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Issuer:     getString(v, "JWT_ISSUER", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Billing: BillingConfig{
			TaxRate:        taxRate,
			MoneyScale:     int32(getInt(v, "MONEY_SCALE", 2)),
			DefaultPattern: getString(v, "INVOICE_DEFAULT_PATTERN", "INV{YY}{MM}{DD}-{###}"),
		},
		Storage: StorageConfig{
			Backend:     strings.ToLower(getString(v, "STORAGE_BACKEND", BackendPostgres)),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			URL:            getString(v, "REDIS_URL", ""),
			IdempotencyTTL: getInt(v, "IDEMPOTENCY_TTL_MINUTES", 60*24),
		},
	}

	// las columnas monetarias del esquema son NUMERIC(18, 2)
	if cfg.Billing.MoneyScale < 0 || cfg.Billing.MoneyScale > maxMoneyScale {
		return nil, fmt.Errorf("MONEY_SCALE debe estar entre 0 y %d, recibido %d", maxMoneyScale, cfg.Billing.MoneyScale)
	}

	switch cfg.Storage.Backend {
	case BackendPostgres, BackendMemory:
	default:
		return nil, fmt.Errorf("STORAGE_BACKEND desconocido: %q", cfg.Storage.Backend)
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	if s, ok := v.Get(key).(string); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return def
		}
		return n
	}
	return v.GetInt(key)
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	if s, ok := v.Get(key).(string); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return def
		}
		return b
	}
	return v.GetBool(key)
}
