package config_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("0.10").Equal(cfg.Billing.TaxRate))
	assert.Equal(t, int32(2), cfg.Billing.MoneyScale)
	assert.Equal(t, "INV{YY}{MM}{DD}-{###}", cfg.Billing.DefaultPattern)
	assert.Equal(t, config.BackendPostgres, cfg.Storage.Backend)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("TAX_RATE", "0.11")
	t.Setenv("MONEY_SCALE", "0")
	t.Setenv("STORAGE_BACKEND", "MEMORY")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_AUTO_MIGRATE", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("0.11").Equal(cfg.Billing.TaxRate))
	assert.Equal(t, int32(0), cfg.Billing.MoneyScale)
	assert.Equal(t, config.BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Storage.AutoMigrate)
}

func TestLoad_TaxRateFueraDeRango(t *testing.T) {
	t.Setenv("TAX_RATE", "1.5")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_BackendDesconocido(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "mongo")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss", DBName: "facturador", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss@db:5432/facturador?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}

func TestLoad_MoneyScaleMayorQueElEsquema(t *testing.T) {
	t.Setenv("MONEY_SCALE", "4")
	_, err := config.Load()
	assert.Error(t, err)

	t.Setenv("MONEY_SCALE", "-1")
	_, err = config.Load()
	assert.Error(t, err)
}
