// Package config provides configuration management.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"webtoq-cost/core/types"
	"webtoq-cost/core/usage"
	"webtoq-cost/internal/errors"
	"webtoq-cost/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" yaml:"version"`

	// Pricing contains pricing configuration
	Pricing PricingConfig `json:"pricing" yaml:"pricing"`

	// Estimator holds the load and cost model constants
	Estimator EstimatorConfig `json:"estimator" yaml:"estimator"`

	// Business contains revenue settings
	Business BusinessConfig `json:"business" yaml:"business"`

	// Output contains output configuration
	Output OutputConfig `json:"output" yaml:"output"`

	// Server contains HTTP API settings
	Server ServerConfig `json:"server" yaml:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" yaml:"logging"`
}

// PricingConfig contains pricing-related settings
type PricingConfig struct {
	// File is an HCL rate card; empty uses the embedded card
	File string `json:"file,omitempty" yaml:"file,omitempty"`

	// Currency is the expected rate card currency
	Currency types.Currency `json:"currency" yaml:"currency"`
}

// EstimatorConfig mirrors usage.Assumptions with plain numbers for config files
type EstimatorConfig struct {
	MinRequestsPerSession   int64   `json:"min_requests_per_session" yaml:"min_requests_per_session"`
	MinutesPerRequest       int     `json:"minutes_per_request" yaml:"minutes_per_request"`
	PeakConcurrencyFraction float64 `json:"peak_concurrency_fraction" yaml:"peak_concurrency_fraction"`
	PerSessionCacheMB       float64 `json:"per_session_cache_mb" yaml:"per_session_cache_mb"`
	PerAgentCacheMB         float64 `json:"per_agent_cache_mb" yaml:"per_agent_cache_mb"`

	FunctionMemoryMB   int `json:"function_memory_mb" yaml:"function_memory_mb"`
	FunctionDurationMS int `json:"function_duration_ms" yaml:"function_duration_ms"`

	Gateway usage.GatewayMix `json:"gateway" yaml:"gateway"`

	EmailsPerSession        int64   `json:"emails_per_session" yaml:"emails_per_session"`
	ObjectGBPerSession      float64 `json:"object_gb_per_session" yaml:"object_gb_per_session"`
	PutsPerSession          int64   `json:"puts_per_session" yaml:"puts_per_session"`
	GetsPerSession          int64   `json:"gets_per_session" yaml:"gets_per_session"`
	NotificationsPerSession int64   `json:"notifications_per_session" yaml:"notifications_per_session"`
}

// BusinessConfig contains revenue settings
type BusinessConfig struct {
	// RevenuePerAgent is the monthly subscription price per agent
	RevenuePerAgent float64 `json:"revenue_per_agent" yaml:"revenue_per_agent"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format" yaml:"default_format"`

	// NoColor disables terminal styling
	NoColor bool `json:"no_color" yaml:"no_color"`

	// ShowDetails adds formulas and assumptions to CLI output
	ShowDetails bool `json:"show_details" yaml:"show_details"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr" yaml:"addr"`
}

// FromAssumptions converts model constants to their config form
func FromAssumptions(a usage.Assumptions) EstimatorConfig {
	return EstimatorConfig{
		MinRequestsPerSession:   a.MinRequestsPerSession,
		MinutesPerRequest:       a.MinutesPerRequest,
		PeakConcurrencyFraction: a.PeakConcurrencyFraction.InexactFloat64(),
		PerSessionCacheMB:       a.PerSessionCacheMB.InexactFloat64(),
		PerAgentCacheMB:         a.PerAgentCacheMB.InexactFloat64(),
		FunctionMemoryMB:        a.Compute.MemoryMB,
		FunctionDurationMS:      a.Compute.DurationMS,
		Gateway:                 a.Gateway,
		EmailsPerSession:        a.EmailsPerSession,
		ObjectGBPerSession:      a.ObjectGBPerSession.InexactFloat64(),
		PutsPerSession:          a.PutsPerSession,
		GetsPerSession:          a.GetsPerSession,
		NotificationsPerSession: a.NotificationsPerSession,
	}
}

// ToAssumptions converts the config form back to validated model constants
func (c EstimatorConfig) ToAssumptions() (usage.Assumptions, error) {
	a := usage.Assumptions{
		MinRequestsPerSession:   c.MinRequestsPerSession,
		MinutesPerRequest:       c.MinutesPerRequest,
		PeakConcurrencyFraction: decimal.NewFromFloat(c.PeakConcurrencyFraction),
		PerSessionCacheMB:       decimal.NewFromFloat(c.PerSessionCacheMB),
		PerAgentCacheMB:         decimal.NewFromFloat(c.PerAgentCacheMB),
		Compute:                 usage.ComputeProfile{MemoryMB: c.FunctionMemoryMB, DurationMS: c.FunctionDurationMS},
		Gateway:                 c.Gateway,
		EmailsPerSession:        c.EmailsPerSession,
		ObjectGBPerSession:      decimal.NewFromFloat(c.ObjectGBPerSession),
		PutsPerSession:          c.PutsPerSession,
		GetsPerSession:          c.GetsPerSession,
		NotificationsPerSession: c.NotificationsPerSession,
	}
	if err := a.Validate(); err != nil {
		return usage.Assumptions{}, errors.Wrap(errors.TypeConfig, "invalid estimator settings", err)
	}
	return a, nil
}

// RevenuePerAgentDecimal returns the configured revenue as a decimal
func (b BusinessConfig) RevenuePerAgentDecimal() decimal.Decimal {
	return decimal.NewFromFloat(b.RevenuePerAgent)
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Pricing: PricingConfig{
			Currency: types.CurrencyUSD,
		},
		Estimator: FromAssumptions(usage.DefaultAssumptions()),
		Business: BusinessConfig{
			RevenuePerAgent: 5,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns ~/.webtoq-cost/config.yaml
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".webtoq-cost", "config.yaml")
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Load loads configuration from a file. A missing file yields the defaults;
// fields absent from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Config("failed to read config", err).WithContext("path", path)
	}

	config := Default()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, errors.Parsing("invalid config file", err).WithContext("path", path)
	}

	if config.Pricing.Currency != types.CurrencyUSD {
		return nil, errors.New(errors.TypeConfig, fmt.Sprintf("unsupported currency %q", config.Pricing.Currency))
	}
	return config, nil
}

// Save saves configuration to a file, as YAML or JSON by extension
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
