package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"CINEMA_STORE", "CINEMA_DATA_FILE", "CINEMA_DB_DSN", "CINEMA_COLOR", "REDIS_ADDR", "REDIS_HOST", "REDIS_PORT", "RABBITMQ_URL", "CINEMA_REDIS_KEY", "CINEMA_EVENTS_QUEUE"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreFile, cfg.Store)
	assert.Equal(t, "data.json", cfg.DataFile)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address())
	assert.Equal(t, "cinema:halls", cfg.Redis.Key)
	assert.Equal(t, "cinema.halls", cfg.EventsQueue)
	assert.Empty(t, cfg.RabbitURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CINEMA_STORE", " SQLite ")
	t.Setenv("CINEMA_DB_DSN", "file:halls.db")
	t.Setenv("CINEMA_COLOR", "never")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_DB", "2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, "sqlite", cfg.SQLDriver())
	assert.Equal(t, "file:halls.db", cfg.SQLDSN())
	assert.Equal(t, ColorNever, cfg.Color)
	assert.Equal(t, "cache:6380", cfg.Redis.Address())
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestLoadRejectsUnknownValues(t *testing.T) {
	t.Setenv("CINEMA_STORE", "mongo")
	_, err := Load()
	assert.ErrorContains(t, err, "CINEMA_STORE")

	t.Setenv("CINEMA_STORE", "file")
	t.Setenv("CINEMA_COLOR", "sometimes")
	_, err = Load()
	assert.ErrorContains(t, err, "CINEMA_COLOR")

	t.Setenv("CINEMA_COLOR", "auto")
	t.Setenv("REDIS_DB", "zero")
	_, err = Load()
	assert.Error(t, err)
}

func TestSQLDSNFallbacks(t *testing.T) {
	t.Parallel()
	cfg := Config{Store: StoreMySQL, DBUser: "app", DBPass: "secret", DBHost: "db", DBPort: "3306", DBName: "cinema"}
	assert.Equal(t, "mysql", cfg.SQLDriver())
	assert.Equal(t, "app:secret@tcp(db:3306)/cinema?charset=utf8mb4&parseTime=true&loc=UTC", cfg.SQLDSN())

	cfg = Config{Store: StoreSQLite}
	assert.Equal(t, "cinema.db", cfg.SQLDSN())

	cfg = Config{Store: StorePostgres, Color: ColorAuto}
	assert.Equal(t, "pgx", cfg.SQLDriver())
	assert.ErrorContains(t, cfg.Validate(), "CINEMA_DB_DSN")
}
