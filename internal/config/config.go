// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and environment variables over the defaults.
// - Errors returned from Load wrap ErrLoadConfig or ErrInvalidConfig.
package config

import (
	"fmt"
	"runtime"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// BatchConcurrency bounds the reports built in parallel by one batch call.
	BatchConcurrency int `koanf:"batch_concurrency"`

	// MaxBatchSize caps the number of requests in POST /reports/batch.
	MaxBatchSize int `koanf:"max_batch_size"`

	// MaxUploadMB caps the multipart body accepted by POST /ingest/xlsx.
	MaxUploadMB int `koanf:"max_upload_mb"`

	// SentinelName is the administrative entity skipped by executive views.
	SentinelName string `koanf:"sentinel_name"`

	// Branches names the branch sheets of the combined report, in order.
	Branches []string `koanf:"branches"`

	// StrategicUnit scales StrategicTargets into currency (100000 = lakhs).
	StrategicUnit float64 `koanf:"strategic_unit"`

	// StrategicTargets maps brand names to their strategic target in units.
	StrategicTargets map[string]float64 `koanf:"strategic_targets"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		BatchConcurrency: runtime.NumCPU(),
		MaxBatchSize:     64,
		MaxUploadMB:      10,
		SentinelName:     "Admin",
		Branches:         []string{"CellPoint 1", "CellPoint 2"},
		StrategicUnit:    100_000,
		StrategicTargets: DefaultStrategicTargets(),
	}
}

// DefaultStrategicTargets returns the brand target table in lakhs.
func DefaultStrategicTargets() map[string]float64 {
	return map[string]float64{
		"IPHONE":  70,
		"REALME":  32,
		"OPPO":    31,
		"VIVO":    45,
		"NOTHING": 15,
		"REDMI":   10,
		"MOTO":    20,
		"OTHERS":  10,
		"SAMSUNG": 20,
		"ONEPLUS": 25,
	}
}

// Validate reports the first invalid setting, wrapped with ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.BatchConcurrency <= 0:
		return fmt.Errorf("%w: batch_concurrency must be positive, got %d", ErrInvalidConfig, c.BatchConcurrency)
	case c.MaxBatchSize <= 0:
		return fmt.Errorf("%w: max_batch_size must be positive, got %d", ErrInvalidConfig, c.MaxBatchSize)
	case c.MaxUploadMB <= 0:
		return fmt.Errorf("%w: max_upload_mb must be positive, got %d", ErrInvalidConfig, c.MaxUploadMB)
	case len(c.Branches) == 0:
		return fmt.Errorf("%w: at least one branch is required", ErrInvalidConfig)
	case c.StrategicUnit <= 0:
		return fmt.Errorf("%w: strategic_unit must be positive, got %v", ErrInvalidConfig, c.StrategicUnit)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	for name, v := range c.StrategicTargets {
		if v < 0 {
			return fmt.Errorf("%w: strategic target for %s is negative", ErrInvalidConfig, name)
		}
	}
	return nil
}
