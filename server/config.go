package server

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config configures the HTTP service.
type Config struct {
	// Addr is the listen address.
	Addr string `yaml:"addr" validate:"required"`

	// MaxConcurrentSolves bounds the number of searches running at once.
	// Zero means one.
	MaxConcurrentSolves int64 `yaml:"max_concurrent_solves" validate:"gte=0"`

	// RequestsPerSecond limits request admission. Zero means unlimited.
	RequestsPerSecond float64 `yaml:"requests_per_second" validate:"gte=0"`

	// Burst is the number of requests admitted above the sustained rate.
	Burst int `yaml:"burst" validate:"gte=0"`

	// AdmissionWait is how long a request may wait for the rate limiter
	// before it is rejected. Zero rejects immediately.
	AdmissionWait time.Duration `yaml:"admission_wait" validate:"gte=0"`

	// SolveTimeout bounds a single search, including the wait for a solve
	// slot. Zero means no timeout; a request then fails fast if every slot
	// is taken.
	SolveTimeout time.Duration `yaml:"solve_timeout" validate:"gte=0"`

	// MaxBodyBytes caps the request body. Zero means unlimited.
	MaxBodyBytes int64 `yaml:"max_body_bytes" validate:"gte=0"`

	// Workers is the default number of search goroutines per request.
	Workers int `yaml:"workers" validate:"gte=0,lte=64"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// DefaultConfig returns the default service configuration.
func DefaultConfig() Config {
	return Config{
		Addr:                ":8080",
		MaxConcurrentSolves: 4,
		SolveTimeout:        30 * time.Second,
		MaxBodyBytes:        64 << 10,
		Workers:             1,
		LogLevel:            "info",
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Level returns the slog level for LogLevel.
func (c Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// LoadConfig reads a YAML file on top of DefaultConfig and validates the
// result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
