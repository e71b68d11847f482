package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Drivers de almacenamiento soportados.
const (
	DriverMemory   = "memory"
	DriverJSONFile = "jsonfile"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

type Config struct {
	HTTP      HTTP
	Store     Store
	Log       Log
	RateLimit RateLimit
	CORS      CORS
	Game      Game
	Tracing   Tracing
}

type HTTP struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func (h HTTP) Addr() string { return ":" + strings.TrimPrefix(h.Port, ":") }

type Store struct {
	Driver      string `env:"STORE_DRIVER" envDefault:"jsonfile"`
	Path        string `env:"STORE_PATH" envDefault:"petverse_pets.json"`
	SQLitePath  string `env:"STORE_SQLITE_PATH" envDefault:"petverse.db"`
	DSN         string `env:"DB_DSN"`
	RedisURL    string `env:"REDIS_URL"`
	RedisKey    string `env:"REDIS_KEY" envDefault:"petverse:pets"`
	PersistMode string `env:"PERSIST_MODE" envDefault:"full"`
	ActivityCap int    `env:"ACTIVITY_CAP" envDefault:"100"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
	App    string `env:"APP_NAME" envDefault:"petverse"`
}

// RateLimit por IP; RPS <= 0 lo desactiva.
type RateLimit struct {
	RPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"20"`
	Burst int     `env:"RATE_LIMIT_BURST" envDefault:"40"`
}

type CORS struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

type Game struct {
	// CatalogPath: YAML opcional con especies, tienda y reglas.
	CatalogPath string `env:"CATALOG_PATH"`
	// Timezone para el reclamo diario (IANA, p.ej. "America/Argentina/Buenos_Aires"). Vacío = hora local.
	Timezone string `env:"GAME_TIMEZONE"`
}

// Location resuelve Timezone; vacío => time.Local.
func (g Game) Location() (*time.Location, error) {
	if strings.TrimSpace(g.Timezone) == "" {
		return time.Local, nil
	}
	return time.LoadLocation(strings.TrimSpace(g.Timezone))
}

type Tracing struct {
	Enabled     bool    `env:"PETVERSE_OTEL_ENABLED" envDefault:"false"`
	Endpoint    string  `env:"PETVERSE_OTEL_ENDPOINT"`
	ServiceName string  `env:"PETVERSE_OTEL_SERVICE_NAME" envDefault:"petverse"`
	SampleRatio float64 `env:"PETVERSE_OTEL_SAMPLE_RATIO" envDefault:"1"`
}

// Load lee un .env opcional y luego el entorno.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse lee solo variables de entorno (sin .env).
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	cfg.Store.PersistMode = strings.ToLower(strings.TrimSpace(cfg.Store.PersistMode))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	switch c.Store.Driver {
	case DriverMemory, DriverJSONFile, DriverSQLite:
	case DriverPostgres:
		if strings.TrimSpace(c.Store.DSN) == "" {
			errs = append(errs, errors.New("DB_DSN is required for the postgres driver"))
		}
	case DriverRedis:
		if strings.TrimSpace(c.Store.RedisURL) == "" {
			errs = append(errs, errors.New("REDIS_URL is required for the redis driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver))
	}

	switch c.Store.PersistMode {
	case "full", "incremental":
	default:
		errs = append(errs, fmt.Errorf("PERSIST_MODE must be full or incremental, got %q", c.Store.PersistMode))
	}

	if c.RateLimit.RPS > 0 && c.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_BURST must be positive when rate limiting is enabled"))
	}
	if _, err := c.Game.Location(); err != nil {
		errs = append(errs, fmt.Errorf("GAME_TIMEZONE: %w", err))
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		errs = append(errs, errors.New("PETVERSE_OTEL_SAMPLE_RATIO must be between 0 and 1"))
	}

	return errors.Join(errs...)
}
