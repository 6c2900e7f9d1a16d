package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const envPrefix = "LIBRARY"

// Log selects the zap level and encoder.
type Log struct {
	Level  string `envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format string `envconfig:"FORMAT" default:"console" validate:"oneof=console json"`
}

// Config is the process configuration, read from LIBRARY_* variables.
type Config struct {
	Name        string `envconfig:"NAME" default:"Central City Library" validate:"required"`
	LoanDays    int    `envconfig:"LOAN_DAYS" default:"14" validate:"min=1"`
	RecentLimit int    `envconfig:"RECENT_LIMIT" default:"5" validate:"min=1"`
	Log         Log
}

// Option overrides a loaded value, typically from a command-line flag.
type Option func(*Config)

// WithLogLevel overrides LIBRARY_LOG_LEVEL.
func WithLogLevel(level string) Option {
	return func(c *Config) { c.Log.Level = level }
}

// WithLoanDays overrides LIBRARY_LOAN_DAYS.
func WithLoanDays(days int) Option {
	return func(c *Config) { c.LoanDays = days }
}

// Load reads LIBRARY_* variables, after merging a .env file from the working
// directory when one exists. Options are applied last.
func Load(ops ...Option) (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, errors.Wrap(err, "load .env")
	}

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "process env")
	}
	for _, op := range ops {
		op(&cfg)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, errors.Wrap(err, "validate config")
	}
	return cfg, nil
}
