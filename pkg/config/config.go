// Package config loads the verification service configuration from YAML
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/Caqil/schnorr-verify/pkg/cache"
	"github.com/Caqil/schnorr-verify/pkg/logger"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Service ServiceConfig `yaml:"service"`
	Cache   CacheConfig   `yaml:"cache"`
}

// LogConfig configures logging
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// ServiceConfig configures the verification service
type ServiceConfig struct {
	// Workers is the number of verification goroutines
	Workers int `yaml:"workers"`

	// QueueSize bounds pending requests; 0 makes submission synchronous
	// with a free worker
	QueueSize int `yaml:"queue_size"`

	// InitialValidationRatio is the fraction of events verified from a
	// source that has not yet earned trust
	InitialValidationRatio float64 `yaml:"initial_validation_ratio"`

	// LowestValidationRatio is the floor the ratio decays to
	LowestValidationRatio float64 `yaml:"lowest_validation_ratio"`

	// RatioUpdateInterval is how often ratios are recalculated; 0 disables
	// the background recalculation
	RatioUpdateInterval time.Duration `yaml:"ratio_update_interval"`

	// TrustedSources are never sampled for verification
	TrustedSources []string `yaml:"trusted_sources"`

	// AutoBlacklist marks a source as blacklisted after its first invalid
	// signature
	AutoBlacklist bool `yaml:"auto_blacklist"`
}

// CacheConfig configures the verified-signature cache
type CacheConfig struct {
	// Capacity is the number of remembered signatures; 0 disables the cache
	Capacity int `yaml:"capacity"`
}

// Default returns the default configuration
func Default() *Config {
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Service: ServiceConfig{
			Workers:                workers,
			QueueSize:              workers * 64,
			InitialValidationRatio: 1.0,
			LowestValidationRatio:  0.1,
			RatioUpdateInterval:    30 * time.Second,
		},
		Cache: CacheConfig{
			Capacity: cache.DefaultCapacity,
		},
	}
}

// Parse decodes YAML over the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if !logger.ValidLevel(c.Log.Level) {
		return fmt.Errorf("%w: %q", ErrInvalidLevel, c.Log.Level)
	}

	return c.Service.Validate()
}

// Validate checks the service section
func (s ServiceConfig) Validate() error {
	if s.Workers <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkers, s.Workers)
	}
	if s.QueueSize < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidQueueSize, s.QueueSize)
	}
	if !inUnitInterval(s.InitialValidationRatio) {
		return fmt.Errorf("%w: initial %v", ErrInvalidRatio, s.InitialValidationRatio)
	}
	if !inUnitInterval(s.LowestValidationRatio) {
		return fmt.Errorf("%w: lowest %v", ErrInvalidRatio, s.LowestValidationRatio)
	}
	if s.LowestValidationRatio > s.InitialValidationRatio {
		return fmt.Errorf("%w: lowest %v above initial %v",
			ErrInvalidRatio, s.LowestValidationRatio, s.InitialValidationRatio)
	}
	if s.RatioUpdateInterval < 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidInterval, s.RatioUpdateInterval)
	}
	return nil
}

// LoggerConfig converts the log section for logger.New
func (c *Config) LoggerConfig() *logger.Config {
	lc := logger.DefaultConfig()
	lc.Level = c.Log.Level
	lc.Pretty = c.Log.Pretty
	return lc
}

func inUnitInterval(v float64) bool {
	return v >= 0 && v <= 1
}
