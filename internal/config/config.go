package config // package config loads application configuration from environment variables

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/iliyamo/cinema-hall-console/internal/database"
)

// Store kinds accepted in CINEMA_STORE.
const (
	StoreFile     = "file"
	StoreSQLite   = "sqlite"
	StoreMySQL    = "mysql"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Colour modes accepted in CINEMA_COLOR.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds all runtime configuration values.  Every field has a
// default, so an empty environment gives the plain data.json setup.
type Config struct {
	Store    string `env:"CINEMA_STORE" envDefault:"file"`          // where halls are persisted
	DataFile string `env:"CINEMA_DATA_FILE" envDefault:"data.json"` // file store path
	DSN      string `env:"CINEMA_DB_DSN"`                           // sqlite/mysql/postgres DSN

	// MySQL parts, used only when CINEMA_DB_DSN is empty.
	DBUser string `env:"DB_USER"`
	DBPass string `env:"DB_PASS"`
	DBHost string `env:"DB_HOST" envDefault:"localhost"`
	DBPort string `env:"DB_PORT" envDefault:"3306"`
	DBName string `env:"DB_NAME" envDefault:"cinema"`

	Redis RedisConfig

	RabbitURL   string `env:"RABBITMQ_URL"`                                  // empty disables hall events
	EventsQueue string `env:"CINEMA_EVENTS_QUEUE" envDefault:"cinema.halls"` // durable queue for hall events

	Color   string `env:"CINEMA_COLOR" envDefault:"auto"` // auto | always | never
	LogFile string `env:"CINEMA_LOG_FILE"`                // append logs here instead of stderr
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	_ = godotenv.Load() // .env is optional
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	cfg.Color = strings.ToLower(strings.TrimSpace(cfg.Color))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects unknown store kinds and colour modes.
func (c Config) Validate() error {
	switch c.Store {
	case StoreFile, StoreSQLite, StoreMySQL, StorePostgres, StoreRedis:
	default:
		return fmt.Errorf("unknown CINEMA_STORE %q", c.Store)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("unknown CINEMA_COLOR %q", c.Color)
	}
	if c.Store == StoreFile && strings.TrimSpace(c.DataFile) == "" {
		return errors.New("CINEMA_DATA_FILE must not be empty")
	}
	if c.Store == StorePostgres && c.DSN == "" {
		return errors.New("CINEMA_DB_DSN is required for the postgres store")
	}
	return nil
}

// SQLDriver returns the database/sql driver name for the SQL stores.
func (c Config) SQLDriver() string {
	switch c.Store {
	case StoreMySQL:
		return database.DriverMySQL
	case StorePostgres:
		return database.DriverPostgres
	}
	return database.DriverSQLite
}

// SQLDSN returns the DSN for the SQL stores, falling back to cinema.db
// for SQLite and the DB_* parts for MySQL.
func (c Config) SQLDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	switch c.Store {
	case StoreMySQL:
		return database.MySQLDSN(c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName)
	case StoreSQLite:
		return "cinema.db"
	}
	return ""
}
