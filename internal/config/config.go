package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds the application configuration.
type Config struct {
	PuzzlePath     string        `env:"CONNECTIONS_PUZZLE"`
	PuzzleDir      string        `env:"CONNECTIONS_PUZZLE_DIR" envDefault:"puzzles"`
	AttemptLimit   int           `env:"CONNECTIONS_ATTEMPTS" envDefault:"4"`
	OneAway        bool          `env:"CONNECTIONS_ONE_AWAY" envDefault:"true"`
	MessageTimeout time.Duration `env:"CONNECTIONS_MESSAGE_TIMEOUT" envDefault:"3.5s"`
	LogLevel       string        `env:"CONNECTIONS_LOG_LEVEL" envDefault:"info"`
	LogFile        string        `env:"CONNECTIONS_LOG_FILE" envDefault:"connections.log"`
	Addr           string        `env:"CONNECTIONS_ADDR" envDefault:":5175"`
}

// LoadConfig loads the configuration from environment variables, reading a
// .env file first when one is present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.AttemptLimit < 1 {
		return fmt.Errorf("CONNECTIONS_ATTEMPTS must be at least 1, got %d", c.AttemptLimit)
	}
	if c.MessageTimeout <= 0 {
		return fmt.Errorf("CONNECTIONS_MESSAGE_TIMEOUT must be positive, got %s", c.MessageTimeout)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("CONNECTIONS_LOG_LEVEL: %w", err)
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
