package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var ErrUnknownDriver = errors.New("unknown storage driver")
var ErrMissingDSN = errors.New("postgres driver needs LOL_POSTGRES_DSN")

// Config is the server configuration, read from LOL_* variables.
type Config struct {
	Addr         string        `env:"LOL_ADDR" envDefault:":8080"`
	DataDir      string        `env:"LOL_DATA_DIR"` // empty uses the embedded fixtures
	DataURL      string        `env:"LOL_DATA_URL"` // takes precedence over DataDir
	LoadTimeout  time.Duration `env:"LOL_LOAD_TIMEOUT" envDefault:"10s"`
	Driver       string        `env:"LOL_STORAGE_DRIVER" envDefault:"memory"`
	SQLitePath   string        `env:"LOL_SQLITE_PATH" envDefault:"lol-portal.db"`
	PostgresDSN  string        `env:"LOL_POSTGRES_DSN"`
	FavoritesKey string        `env:"LOL_FAVORITES_KEY" envDefault:"lol-favorites"`
	SessionIdle  time.Duration `env:"LOL_SESSION_IDLE" envDefault:"30m"`
	LogLevel     string        `env:"LOL_LOG_LEVEL" envDefault:"info"`
	Dev          bool          `env:"LOL_DEV"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the given .env files (missing ones are skipped) and then the
// environment. Variables already set win over the files.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Driver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return ErrMissingDSN
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Driver)
	}
	return nil
}
