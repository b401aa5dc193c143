package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panaderia-erp/pkg/config"
)

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoad_ValoresPorDefecto(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "NIO", cfg.Currency.Primary)
	assert.Equal(t, "USD", cfg.Currency.Secondary)
	assert.Equal(t, 300*time.Second, cfg.Cache.TTL)
	assert.Empty(t, cfg.Cache.RedisURL)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("API_BASE_URL", "https://erp.example.com/api/")
	t.Setenv("API_MAX_RETRIES", "4")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CURRENCY_SECONDARY", "eur")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "https://erp.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 4, cfg.API.MaxRetries)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "EUR", cfg.Currency.Secondary)
}

func TestLoad_MonedasIguales(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CURRENCY_PRIMARY", "USD")
	_, err := config.Load()
	assert.Error(t, err)
}
