package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crowdfund/internal/config/configs"
)

func TestDefaults(t *testing.T) {
	cfg, err := parse(env.Options{Environment: map[string]string{"AUTH_SECRET": "s3cret"}})
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, uint16(8080), cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, configs.DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "./data/crowdfund.db", cfg.SQLite.Path)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, common.HexToAddress("0xfac70"), cfg.Factory.Address)
	assert.Equal(t, "localhost:5432", cfg.Psql.Addr.Host)
	assert.False(t, cfg.Psql.RunMigrations)
}

func TestOverrides(t *testing.T) {
	cfg, err := parse(env.Options{Environment: map[string]string{
		"AUTH_SECRET":         "s3cret",
		"HTTP_PORT":           "9090",
		"LOG_LEVEL":           "debug",
		"LOG_FORMAT":          "tint",
		"STORAGE_DRIVER":      "sqlite",
		"SQLITE_PATH":         "/tmp/c.db",
		"AUTH_TOKEN_TTL":      "1h",
		"FACTORY_ADDRESS":     "0x1000000000000000000000000000000000000001",
		"PSQL_RUN_MIGRATIONS": "true",
	}})
	require.NoError(t, err)

	assert.Equal(t, uint16(9090), cfg.HTTP.Port)
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
	assert.Equal(t, "tint", cfg.Log.SlogFormat())
	assert.Equal(t, configs.DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/c.db", cfg.SQLite.Path)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, common.HexToAddress("0x1000000000000000000000000000000000000001"), cfg.Factory.Address)
	assert.True(t, cfg.Psql.RunMigrations)
}

func TestUnknownDriver(t *testing.T) {
	_, err := parse(env.Options{Environment: map[string]string{
		"AUTH_SECRET":    "s3cret",
		"STORAGE_DRIVER": "redis",
	}})
	require.Error(t, err)
}

func TestAuthSecretIsRequired(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, err := parse(env.Options{Environment: map[string]string{}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "AUTH_SECRET")
	})

	t.Run("empty", func(t *testing.T) {
		_, err := parse(env.Options{Environment: map[string]string{"AUTH_SECRET": ""}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "AUTH_SECRET")
	})

	t.Run("set", func(t *testing.T) {
		cfg, err := parse(env.Options{Environment: map[string]string{"AUTH_SECRET": "s3cret"}})
		require.NoError(t, err)
		assert.Equal(t, "s3cret", cfg.Auth.Secret)
	})
}

func TestLoggerFallbacks(t *testing.T) {
	l := configs.Logger{Level: "verbose", Format: "xml"}
	assert.Equal(t, slog.LevelInfo, l.SlogLevel())
	assert.Equal(t, "text", l.SlogFormat())
}
