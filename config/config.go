// Package config loads and validates the pipeline configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tradegate/tradegate/engine"
	"github.com/tradegate/tradegate/report"
	"github.com/tradegate/tradegate/risk"
	"github.com/tradegate/tradegate/signal"
)

// Config represents the complete pipeline configuration.
type Config struct {
	Signal  signal.Config    `json:"signal" yaml:"signal"`
	Risk    risk.SizerConfig `json:"risk" yaml:"risk"`
	Limits  risk.Limits      `json:"limits" yaml:"limits"`
	Data    DataConfig       `json:"data" yaml:"data"`
	Journal JournalConfig    `json:"journal" yaml:"journal"`
	Queue   QueueConfig      `json:"queue" yaml:"queue"`
}

// DataConfig contains data-quality parameters.
type DataConfig struct {
	// StaleAfter is the price staleness window, e.g. "300s" or "5m".
	StaleAfter string `json:"stale_after" yaml:"stale_after"`
}

// ParseStaleAfter converts the staleness window to a duration.
func (d DataConfig) ParseStaleAfter() (time.Duration, error) {
	if d.StaleAfter == "" {
		return engine.DefaultStaleAfter, nil
	}
	return time.ParseDuration(d.StaleAfter)
}

// JournalConfig contains audit journal parameters.
type JournalConfig struct {
	Type string `json:"type" yaml:"type"` // "csv" or "sqlite"
	Path string `json:"path" yaml:"path"`
}

// QueueConfig contains report queue parameters.
type QueueConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`

	report.RedisQueueConfig `yaml:",inline"`
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (format chosen by extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks every section. Weight-sum and threshold validation
// happens here once, at load time, not per evaluation.
func (c *Config) Validate() error {
	if err := c.Signal.Validate(); err != nil {
		return fmt.Errorf("signal: %w", err)
	}
	if err := c.Risk.Validate(); err != nil {
		return fmt.Errorf("risk: %w", err)
	}
	if err := c.Limits.Validate(); err != nil {
		return fmt.Errorf("limits: %w", err)
	}
	if _, err := c.Data.ParseStaleAfter(); err != nil {
		return fmt.Errorf("data.stale_after: %w", err)
	}
	if c.Journal.Type != "csv" && c.Journal.Type != "sqlite" {
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite', got %q", c.Journal.Type)
	}
	if c.Journal.Path == "" {
		return fmt.Errorf("journal.path is required")
	}
	if c.Queue.Enabled && c.Queue.Addr == "" {
		return fmt.Errorf("queue.addr required when queue is enabled")
	}
	return nil
}

// PipelineConfig converts the file configuration into the engine's
// form.
func (c *Config) PipelineConfig() (engine.Config, error) {
	stale, err := c.Data.ParseStaleAfter()
	if err != nil {
		return engine.Config{}, err
	}
	return engine.Config{
		Signal:     c.Signal,
		Sizer:      c.Risk,
		Limits:     c.Limits,
		StaleAfter: stale,
	}, nil
}

// Default returns a configuration with the standard parameters.
func Default() *Config {
	return &Config{
		Signal: signal.DefaultConfig(),
		Risk:   risk.DefaultSizerConfig(),
		Limits: risk.DefaultLimits(),
		Data:   DataConfig{StaleAfter: "300s"},
		Journal: JournalConfig{
			Type: "sqlite",
			Path: "./decisions.db",
		},
		Queue: QueueConfig{
			Enabled: false,
			RedisQueueConfig: report.RedisQueueConfig{
				Addr: "localhost:6379",
				Key:  "reports:pending",
			},
		},
	}
}
