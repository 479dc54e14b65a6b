package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "market", cfg.ServiceName)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "marketdb", cfg.DB.DBName)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.True(t, cfg.IsDevelopment())
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MARKET_HTTP_PORT", "9999")
	t.Setenv("MARKET_DB_HOST", "db.internal")
	t.Setenv("MARKET_KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("MARKET_AUTH_TOKEN_TTL", "2h")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.HTTPPort)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "market.yaml")
	content := "environment: production\nrate_limit:\n  requests: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 5, cfg.RateLimit.Requests)
}

func TestValidate(t *testing.T) {
	cfg := Config{HTTPPort: "8080"}
	assert.Error(t, cfg.Validate())

	cfg.Auth.JWTSecret = "s"
	assert.NoError(t, cfg.Validate())
}
