package config

import (
	"errors"
	"fmt"
	"io/fs"

	env "github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/josh-kwaku/payments-engine/internal/domain"
	"github.com/josh-kwaku/payments-engine/internal/repository"
)

const (
	InputCSV      = "csv"
	InputPostgres = "postgres"
)

type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv   string `env:"APP_ENV" envDefault:"production"`

	InputSource   string `env:"INPUT_SOURCE" envDefault:"csv" validate:"oneof=csv postgres"`
	DatabaseURL   string `env:"DATABASE_URL" validate:"required_if=InputSource postgres"`
	EventPageSize int    `env:"EVENT_PAGE_SIZE" envDefault:"500" validate:"gt=0"`

	DisputableKinds []string `env:"DISPUTABLE_KINDS" envSeparator:"," envDefault:"deposit" validate:"min=1,dive,oneof=deposit withdrawal"`

	ReportFormat string `env:"REPORT_FORMAT" envDefault:"csv" validate:"oneof=csv json"`
	SortReport   bool   `env:"SORT_REPORT" envDefault:"true"`

	DBMaxOpenConns     int `env:"DB_MAX_OPEN_CONNS" envDefault:"4"`
	DBMaxIdleConns     int `env:"DB_MAX_IDLE_CONNS" envDefault:"2"`
	DBConnMaxLifetimeS int `env:"DB_CONN_MAX_LIFETIME_S" envDefault:"300"`
	DBConnMaxIdleTimeS int `env:"DB_CONN_MAX_IDLE_TIME_S" envDefault:"60"`
	DBConnectAttempts  int `env:"DB_CONNECT_ATTEMPTS" envDefault:"30" validate:"gt=0"`
}

// Load reads an optional .env file from the working directory, then the
// process environment. Variables already set in the environment win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config.Load: .env: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Disputable() []domain.Kind {
	kinds := make([]domain.Kind, len(c.DisputableKinds))
	for i, k := range c.DisputableKinds {
		kinds[i] = domain.Kind(k)
	}
	return kinds
}

func (c *Config) Pool() repository.PoolConfig {
	return repository.PoolConfig{
		MaxOpenConns:     c.DBMaxOpenConns,
		MaxIdleConns:     c.DBMaxIdleConns,
		ConnMaxLifetimeS: c.DBConnMaxLifetimeS,
		ConnMaxIdleTimeS: c.DBConnMaxIdleTimeS,
		ConnectAttempts:  c.DBConnectAttempts,
	}
}
