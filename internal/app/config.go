package app

import (
	"errors"
	"fmt"
	"strings"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Declarations []string `mapstructure:"declarations"` // hcl files or directories

	Title      string `mapstructure:"title"`
	Path       string `mapstructure:"path"`
	Exportable bool   `mapstructure:"exportable"`
	Port       int    `mapstructure:"port"`

	LogFormat string `mapstructure:"log_format"`
	LogLevel  string `mapstructure:"log_level"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() Config {
	return Config{
		Title:     "CodeApi",
		Path:      "/code-api",
		Port:      8080,
		LogFormat: "text",
		LogLevel:  "info",
	}
}

// NewConfig validates cfg and returns a normalized copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Declarations) == 0 {
		return nil, errors.New("declarations is a required configuration field and cannot be empty")
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, errors.New("invalid log-format: must be 'text' or 'json'")
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d: must be between 0 and 65535", cfg.Port)
	}

	cfg.Path = "/" + strings.Trim(strings.TrimSpace(cfg.Path), "/")
	if cfg.Path == "/" {
		return nil, errors.New("path must name a route below the server root")
	}

	if strings.TrimSpace(cfg.Title) == "" {
		cfg.Title = DefaultConfig().Title
	}

	return &cfg, nil
}
