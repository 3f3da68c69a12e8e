package lruserver

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"gitlab.com/slon/lrucache/lrucache"
)

// Config describes a cache server.
type Config struct {
	Listen          string        `yaml:"listen"`
	Capacity        int           `yaml:"capacity"`
	MaxValueBytes   int64         `yaml:"max_value_bytes"`
	LogLevel        string        `yaml:"log_level"`
	MetricsPath     string        `yaml:"metrics_path"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DefaultConfig returns the configuration used for fields missing from the file.
func DefaultConfig() Config {
	return Config{
		Listen:          ":8080",
		Capacity:        1024,
		MaxValueBytes:   1 << 20,
		LogLevel:        "info",
		MetricsPath:     "/metrics",
		ShutdownTimeout: 5 * time.Second,
	}
}

// LoadConfig reads a YAML config from path on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	// Пустой файл - конфигурация по умолчанию.
	if len(data) != 0 {
		if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values.
func (c Config) Validate() error {
	var errs []error
	if c.Capacity < 1 {
		errs = append(errs, fmt.Errorf("%w: got %d", lrucache.ErrInvalidCapacity, c.Capacity))
	}
	if c.Listen == "" {
		errs = append(errs, errors.New("listen address is empty"))
	}
	if c.MaxValueBytes < 1 {
		errs = append(errs, fmt.Errorf("max_value_bytes must be positive, got %d", c.MaxValueBytes))
	}
	if !strings.HasPrefix(c.MetricsPath, "/") {
		errs = append(errs, fmt.Errorf("metrics_path must start with /, got %q", c.MetricsPath))
	} else if isReservedPath(c.MetricsPath) {
		errs = append(errs, fmt.Errorf("metrics_path %q clashes with API routes", c.MetricsPath))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("shutdown_timeout must be positive, got %s", c.ShutdownTimeout))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// isReservedPath reports whether p collides with a route registered by the server
// or is a gin pattern rather than a plain path.
func isReservedPath(p string) bool {
	return p == "/ping" ||
		p == "/v1" ||
		strings.HasPrefix(p, "/v1/") ||
		strings.ContainsAny(p, ":*")
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// NewLogger builds the JSON logger the server writes to stdout.
func NewLogger(c Config) (*slog.Logger, error) {
	level, err := c.Level()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})), nil
}
