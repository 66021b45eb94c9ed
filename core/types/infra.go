// Package types - Infrastructure configuration
package types

import (
	"strings"

	"github.com/shopspring/decimal"

	"webtoq-cost/internal/errors"
)

// CacheMode selects how the Valkey cache is deployed and billed
type CacheMode string

const (
	// CacheServerless is pay-per-use: storage GB-hours plus ECPU-hours
	CacheServerless CacheMode = "serverless"

	// CacheProvisioned is a fixed-size node billed at a flat monthly rate
	CacheProvisioned CacheMode = "provisioned"
)

// ParseCacheMode accepts the mode names plus the "on-demand" and "cluster" aliases
func ParseCacheMode(s string) (CacheMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "serverless", "on-demand", "ondemand":
		return CacheServerless, nil
	case "provisioned", "cluster":
		return CacheProvisioned, nil
	default:
		return "", errors.InvalidInput("cache_mode", "unknown cache mode %q (want serverless or provisioned)", s)
	}
}

// UnmarshalText accepts the same names and aliases as ParseCacheMode.
// Empty text leaves the mode unset.
func (m *CacheMode) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*m = ""
		return nil
	}
	mode, err := ParseCacheMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// ECPURange is the expected min/max ElastiCache Processing Units for serverless mode
type ECPURange struct {
	Min decimal.Decimal `json:"min" yaml:"min"`
	Max decimal.Decimal `json:"max" yaml:"max"`
}

// NewECPURange builds a range from float literals
func NewECPURange(min, max float64) ECPURange {
	return ECPURange{Min: decimal.NewFromFloat(min), Max: decimal.NewFromFloat(max)}
}

// Average returns the midpoint of the range
func (r ECPURange) Average() decimal.Decimal {
	return r.Min.Add(r.Max).Div(decimal.NewFromInt(2))
}

// String renders the range as "min-max"
func (r ECPURange) String() string {
	return r.Min.String() + "-" + r.Max.String()
}

// DatabaseConfig is the relational database deployment
type DatabaseConfig struct {
	Instance  string `json:"instance" yaml:"instance"`
	MultiAZ   bool   `json:"multi_az" yaml:"multi_az"`
	StorageGB int    `json:"storage_gb" yaml:"storage_gb"`
}

// CacheConfig is the cache deployment
type CacheConfig struct {
	Mode CacheMode `json:"mode" yaml:"mode"`

	// Provisioned mode
	Node    string `json:"node,omitempty" yaml:"node,omitempty"`
	Nodes   int    `json:"nodes,omitempty" yaml:"nodes,omitempty"`
	MultiAZ bool   `json:"multi_az" yaml:"multi_az"`

	// Serverless mode
	ECPU              ECPURange       `json:"ecpu" yaml:"ecpu"`
	ActiveHoursPerDay decimal.Decimal `json:"active_hours_per_day" yaml:"active_hours_per_day"`
}

// InfraConfig is the full set of instance and redundancy choices for one estimate
type InfraConfig struct {
	Database DatabaseConfig `json:"database" yaml:"database"`
	Cache    CacheConfig    `json:"cache" yaml:"cache"`
}

// Validate checks quantities; instance names are checked against the pricing table later
func (c InfraConfig) Validate() error {
	if c.Database.Instance == "" {
		return errors.InvalidInput("database.instance", "database instance is required")
	}
	if c.Database.StorageGB < 0 {
		return errors.InvalidInput("database.storage_gb", "database storage cannot be negative, got %d", c.Database.StorageGB)
	}

	switch c.Cache.Mode {
	case CacheServerless:
		if c.Cache.ECPU.Min.IsNegative() || c.Cache.ECPU.Max.LessThan(c.Cache.ECPU.Min) {
			return errors.InvalidInput("cache.ecpu", "invalid ECPU range %s", c.Cache.ECPU)
		}
		hours := c.Cache.ActiveHoursPerDay
		if hours.IsNegative() || hours.GreaterThan(decimal.NewFromInt(24)) {
			return errors.InvalidInput("cache.active_hours_per_day", "active hours per day must be within 0-24, got %s", hours)
		}
	case CacheProvisioned:
		if c.Cache.Node == "" {
			return errors.InvalidInput("cache.node", "provisioned cache requires a node type")
		}
		if c.Cache.Nodes < 1 {
			return errors.InvalidInput("cache.nodes", "provisioned cache needs at least one node, got %d", c.Cache.Nodes)
		}
	default:
		return errors.InvalidInput("cache.mode", "unknown cache mode %q", c.Cache.Mode)
	}
	return nil
}

// Overrides carries explicit choices that replace tier defaults.
// Zero values and nil pointers mean "keep the default".
type Overrides struct {
	DatabaseInstance  string           `json:"database_instance,omitempty" yaml:"database_instance,omitempty"`
	DatabaseMultiAZ   *bool            `json:"database_multi_az,omitempty" yaml:"database_multi_az,omitempty"`
	DatabaseStorageGB int              `json:"database_storage_gb,omitempty" yaml:"database_storage_gb,omitempty"`
	CacheMode         CacheMode        `json:"cache_mode,omitempty" yaml:"cache_mode,omitempty"`
	CacheNode         string           `json:"cache_node,omitempty" yaml:"cache_node,omitempty"`
	CacheNodes        int              `json:"cache_nodes,omitempty" yaml:"cache_nodes,omitempty"`
	CacheMultiAZ      *bool            `json:"cache_multi_az,omitempty" yaml:"cache_multi_az,omitempty"`
	ECPU              *ECPURange       `json:"ecpu,omitempty" yaml:"ecpu,omitempty"`
	ActiveHoursPerDay *decimal.Decimal `json:"active_hours_per_day,omitempty" yaml:"active_hours_per_day,omitempty"`
}

// IsEmpty reports whether no override is set
func (o Overrides) IsEmpty() bool {
	return o == Overrides{}
}

// Validate rejects overrides that can never describe a deployment
func (o Overrides) Validate() error {
	if o.DatabaseStorageGB < 0 {
		return errors.InvalidInput("database_storage_gb", "database storage cannot be negative, got %d", o.DatabaseStorageGB)
	}
	if o.CacheNodes < 0 {
		return errors.InvalidInput("cache_nodes", "cache node count cannot be negative, got %d", o.CacheNodes)
	}
	if o.CacheMode != "" && o.CacheMode != CacheServerless && o.CacheMode != CacheProvisioned {
		return errors.InvalidInput("cache_mode", "unknown cache mode %q", o.CacheMode)
	}
	return nil
}

// Apply returns base with every set override applied
func (o Overrides) Apply(base InfraConfig) InfraConfig {
	out := base
	if o.DatabaseInstance != "" {
		out.Database.Instance = o.DatabaseInstance
	}
	if o.DatabaseMultiAZ != nil {
		out.Database.MultiAZ = *o.DatabaseMultiAZ
	}
	if o.DatabaseStorageGB > 0 {
		out.Database.StorageGB = o.DatabaseStorageGB
	}
	if o.CacheMode != "" {
		out.Cache.Mode = o.CacheMode
	}
	if o.CacheNode != "" {
		out.Cache.Node = o.CacheNode
	}
	if o.CacheNodes > 0 {
		out.Cache.Nodes = o.CacheNodes
	}
	if o.CacheMultiAZ != nil {
		out.Cache.MultiAZ = *o.CacheMultiAZ
	}
	if o.ECPU != nil {
		out.Cache.ECPU = *o.ECPU
	}
	if o.ActiveHoursPerDay != nil {
		out.Cache.ActiveHoursPerDay = *o.ActiveHoursPerDay
	}
	if out.Cache.Mode == CacheProvisioned && out.Cache.Nodes == 0 {
		out.Cache.Nodes = 1
	}
	return out
}

// Bool returns a pointer to b, for building Overrides literals
func Bool(b bool) *bool {
	return &b
}
