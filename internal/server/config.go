// Package server exposes the knowledge base over HTTP.
package server

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the server configuration, read from the environment with an
// optional .env file on top.
type Config struct {
	Addr        string `env:"ZETTEL_ADDR" env-default:":8080"`
	DataDir     string `env:"ZETTEL_DATA_DIR" env-default:"./data"`
	LogLevel    string `env:"ZETTEL_LOG_LEVEL" env-default:"info"`
	WatchStore  bool   `env:"ZETTEL_WATCH" env-default:"true"`
	APIKey      string `env:"ANTHROPIC_API_KEY"`
	Model       string `env:"ZETTEL_MODEL"`
}

// LoadConfig reads the configuration from .env (when present) and the
// process environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if _, err := os.Stat(".env"); err == nil {
		if err := cleanenv.ReadConfig(".env", &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to read .env: %w", err)
		}
		return cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return cfg, nil
}

// SlogLevel maps the configured level name onto a slog level.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
