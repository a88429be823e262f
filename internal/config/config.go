// Package config provides configuration management for jobscout.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"jobscout/pkg/utils"
)

// DefaultPath is where the CLI looks for a config file when none is given.
const DefaultPath = "configs/jobscout.yaml"

// Configuration validation errors.
var (
	ErrMissingStoragePath       = errors.New("storage.path is required")
	ErrMissingBaseURL           = errors.New("source.base_url is required")
	ErrInvalidBaseURL           = errors.New("source.base_url must be an absolute http(s) URL")
	ErrInvalidPerPage           = errors.New("source.per_page must be between 1 and 100")
	ErrInvalidMaxPages          = errors.New("source.max_pages must be at least 1")
	ErrInvalidMaxAttempts       = errors.New("retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("retry.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout           = errors.New("retry.timeout_sec must be at least 1")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidScheduleSpec      = errors.New("schedule.spec is not a valid cron spec")
	ErrNoScheduleKeywords       = errors.New("schedule.keywords must not be empty when the schedule is enabled")
	ErrInvalidTopN              = errors.New("display.top_n must be at least 1")
)

// Config represents the complete jobscout configuration.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Source   SourceConfig   `yaml:"source"`
	Logging  LoggingConfig  `yaml:"logging"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Display  DisplayConfig  `yaml:"display"`
}

// StorageConfig points at the vacancies file.
type StorageConfig struct {
	Path           string `yaml:"path"`
	ValidateSchema bool   `yaml:"validate_schema"`
}

// SourceConfig describes the job listings API.
type SourceConfig struct {
	BaseURL   string      `yaml:"base_url"`
	UserAgent string      `yaml:"user_agent"`
	Area      string      `yaml:"area"`
	Retry     RetryPolicy `yaml:"retry"`
	PerPage   int         `yaml:"per_page"`
	MaxPages  int         `yaml:"max_pages"`
}

// RetryPolicy defines retry behavior.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutSec        int     `yaml:"timeout_sec"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ScheduleConfig drives periodic re-searching.
type ScheduleConfig struct {
	Spec     string   `yaml:"spec"`
	Keywords []string `yaml:"keywords"`
	Enabled  bool     `yaml:"enabled"`
}

// DisplayConfig tunes console output.
type DisplayConfig struct {
	MaxColumnWidth int `yaml:"max_column_width"`
	TopN           int `yaml:"top_n"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Path:           "data/vacancies.json",
			ValidateSchema: true,
		},
		Source: SourceConfig{
			BaseURL:   "https://api.hh.ru/vacancies",
			UserAgent: "HH-User-Agent",
			PerPage:   100,
			MaxPages:  20,
			Retry: RetryPolicy{
				MaxAttempts:       3,
				InitialDelayMs:    500,
				MaxDelayMs:        30000,
				BackoffMultiplier: 2.0,
				TimeoutSec:        30,
			},
		},
		Logging: LoggingConfig{Level: "info"},
		Schedule: ScheduleConfig{
			Spec: "@every 6h",
		},
		Display: DisplayConfig{
			MaxColumnWidth: 48,
			TopN:           10,
		},
	}
}

// LoadConfig loads configuration from a YAML file. Keys missing from the file
// keep their Default values.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads filepath when it exists and falls back to Default otherwise.
func LoadOrDefault(filepath string) (*Config, error) {
	if _, err := os.Stat(filepath); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return LoadConfig(filepath)
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Storage.Path == "" {
		return ErrMissingStoragePath
	}

	if c.Source.BaseURL == "" {
		return ErrMissingBaseURL
	}

	if !utils.NewHTTPHelper(c.Source.UserAgent).IsValidURL(c.Source.BaseURL) {
		return ErrInvalidBaseURL
	}

	if c.Source.PerPage < 1 || c.Source.PerPage > 100 {
		return ErrInvalidPerPage
	}

	if c.Source.MaxPages < 1 {
		return ErrInvalidMaxPages
	}

	if err := c.Source.Retry.Validate(); err != nil {
		return err
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Schedule.Enabled {
		if _, err := cron.ParseStandard(c.Schedule.Spec); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidScheduleSpec, err)
		}

		if len(c.Schedule.Keywords) == 0 {
			return ErrNoScheduleKeywords
		}
	}

	if c.Display.TopN < 1 {
		return ErrInvalidTopN
	}

	return nil
}

// Validate checks the retry policy bounds.
func (rp *RetryPolicy) Validate() error {
	if rp.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if rp.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if rp.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if rp.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	return nil
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 1; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	if int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// GetTimeout returns the timeout duration.
func (rp *RetryPolicy) GetTimeout() time.Duration {
	return time.Duration(rp.TimeoutSec) * time.Second
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Storage: %s, Source: %s, MaxPages: %d, Schedule: %t}",
		c.Storage.Path,
		c.Source.BaseURL,
		c.Source.MaxPages,
		c.Schedule.Enabled,
	)
}
