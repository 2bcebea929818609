package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withEnvFiles apunta la carga de .env a un fichero temporal (o a ninguno).
func withEnvFiles(t *testing.T, paths ...string) {
	t.Helper()
	prev := EnvFiles
	EnvFiles = paths
	t.Cleanup(func() { EnvFiles = prev })
}

func TestLoadConfig_Defaults(t *testing.T) {
	withEnvFiles(t)
	cfg := LoadConfig()

	assert.Equal(t, "3000", cfg.HTTPPort)
	assert.Equal(t, "sqlite", cfg.OutboxDriver)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 10, cfg.OutboxLimit)
	assert.False(t, cfg.UseKafka)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "einvoice", cfg.KafkaTopic)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.ClickHouseAddr)
	assert.Equal(t, int64(0), cfg.RandomSeed)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	withEnvFiles(t)
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("USE_KAFKA", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("OUTBOX_DRIVER", "Postgres")
	t.Setenv("OUTBOX_PERIOD", "250ms")
	t.Setenv("OUTBOX_LIMIT", "50")
	t.Setenv("RATE_LIMIT", "5")
	t.Setenv("RANDOM_SEED", "42")

	cfg := LoadConfig()

	assert.Equal(t, "8081", cfg.HTTPPort)
	assert.True(t, cfg.UseKafka)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "postgres", cfg.OutboxDriver)
	assert.Equal(t, 250*time.Millisecond, cfg.OutboxPeriod)
	assert.Equal(t, 50, cfg.OutboxLimit)
	assert.Equal(t, 5, cfg.RateLimit)
	assert.Equal(t, int64(42), cfg.RandomSeed)
}

func TestLoadConfig_BadValuesFallBack(t *testing.T) {
	withEnvFiles(t)
	t.Setenv("CACHE_TTL", "soon")
	t.Setenv("OUTBOX_LIMIT", "many")
	t.Setenv("RANDOM_SEED", "x")

	cfg := LoadConfig()

	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 10, cfg.OutboxLimit)
	assert.Equal(t, int64(0), cfg.RandomSeed)
}

func TestLoadConfig_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("EINVOICELAB_TEST_DOTENV=from-file\nLOG_LEVEL=DEBUG\n"), 0o600))
	withEnvFiles(t, filepath.Join(t.TempDir(), "missing.env"), path)

	t.Setenv("LOG_LEVEL", "warn")
	t.Cleanup(func() { os.Unsetenv("EINVOICELAB_TEST_DOTENV") })

	cfg := LoadConfig()

	assert.Equal(t, "from-file", os.Getenv("EINVOICELAB_TEST_DOTENV"))
	assert.Equal(t, "warn", cfg.LogLevel)
}
