// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"seabattle/internal/game"
)

const (
	MinGridSize = game.DefaultSize
	MaxGridSize = game.MaxSize
)

type Config struct {
	GridSize    int    `env:"SEABATTLE_GRID_SIZE"    envDefault:"6"`
	MaxAttempts int    `env:"SEABATTLE_MAX_ATTEMPTS" envDefault:"2000"`
	Seed        int64  `env:"SEABATTLE_SEED"         envDefault:"0"`
	LogLevel    string `env:"SEABATTLE_LOG_LEVEL"    envDefault:"info"`
	KeysDir     string `env:"SEABATTLE_KEYS_DIR"     envDefault:"./keys"`
	VerifyShots bool   `env:"SEABATTLE_VERIFY_SHOTS" envDefault:"false"`
}

// Load reads an optional dotenv file, then the environment. Variables that
// are already set win over the file.
func Load(dotenv string) (Config, error) {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", dotenv, err)
		}
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate is called after flags have been applied.
func (c Config) Validate() error {
	if c.GridSize < MinGridSize || c.GridSize > MaxGridSize {
		return fmt.Errorf("grid size must be between %d and %d, got %d", MinGridSize, MaxGridSize, c.GridSize)
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("max attempts must be positive, got %d", c.MaxAttempts)
	}
	return nil
}
