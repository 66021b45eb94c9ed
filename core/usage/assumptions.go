// Package usage - Load assumptions
// Every constant that turns a workload into billable quantities lives here,
// so a config file can override it and a report can list it.
package usage

import (
	"fmt"

	"github.com/shopspring/decimal"

	"webtoq-cost/internal/errors"
)

// ComputeProfile is the serverless function sizing
type ComputeProfile struct {
	MemoryMB   int `json:"memory_mb" yaml:"memory_mb"`
	DurationMS int `json:"duration_ms" yaml:"duration_ms"`
}

// String renders the profile as "512MB / 400ms"
func (p ComputeProfile) String() string {
	return fmt.Sprintf("%dMB / %dms", p.MemoryMB, p.DurationMS)
}

// GatewayMix is the number of gateway calls of each style per application request
type GatewayMix struct {
	REST      int `json:"rest" yaml:"rest"`
	HTTP      int `json:"http" yaml:"http"`
	WebSocket int `json:"websocket" yaml:"websocket"`
}

// Assumptions are the tunable constants of the load and cost models
type Assumptions struct {
	// Load model
	MinRequestsPerSession   int64           `json:"min_requests_per_session"`
	MinutesPerRequest       int             `json:"minutes_per_request"`
	PeakConcurrencyFraction decimal.Decimal `json:"peak_concurrency_fraction"`
	PerSessionCacheMB       decimal.Decimal `json:"per_session_cache_mb"`
	PerAgentCacheMB         decimal.Decimal `json:"per_agent_cache_mb"`

	// Cost model
	Compute                 ComputeProfile  `json:"compute"`
	Gateway                 GatewayMix      `json:"gateway"`
	EmailsPerSession        int64           `json:"emails_per_session"`
	ObjectGBPerSession      decimal.Decimal `json:"object_gb_per_session"`
	PutsPerSession          int64           `json:"puts_per_session"`
	GetsPerSession          int64           `json:"gets_per_session"`
	NotificationsPerSession int64           `json:"notifications_per_session"`
}

// DefaultAssumptions returns the calibrated production constants
func DefaultAssumptions() Assumptions {
	return Assumptions{
		MinRequestsPerSession:   20,
		MinutesPerRequest:       2,
		PeakConcurrencyFraction: decimal.RequireFromString("0.35"),
		PerSessionCacheMB:       decimal.RequireFromString("0.04"),
		PerAgentCacheMB:         decimal.RequireFromString("0.02"),

		Compute:                 ComputeProfile{MemoryMB: 512, DurationMS: 400},
		Gateway:                 GatewayMix{REST: 1, HTTP: 7, WebSocket: 2},
		EmailsPerSession:        2,
		ObjectGBPerSession:      decimal.RequireFromString("0.0005"),
		PutsPerSession:          5,
		GetsPerSession:          2,
		NotificationsPerSession: 5,
	}
}

// WithCompute returns a copy using a different function profile
func (a Assumptions) WithCompute(p ComputeProfile) Assumptions {
	a.Compute = p
	return a
}

// Validate rejects constants that would produce negative or undefined quantities
func (a Assumptions) Validate() error {
	if a.MinRequestsPerSession < 0 {
		return errors.InvalidInput("min_requests_per_session", "min requests per session cannot be negative")
	}
	if a.MinutesPerRequest < 1 {
		return errors.InvalidInput("minutes_per_request", "minutes per request must be at least 1, got %d", a.MinutesPerRequest)
	}
	if a.PeakConcurrencyFraction.IsNegative() || a.PeakConcurrencyFraction.GreaterThan(decimal.NewFromInt(1)) {
		return errors.InvalidInput("peak_concurrency_fraction", "peak concurrency fraction must be within 0-1, got %s", a.PeakConcurrencyFraction)
	}
	if a.PerSessionCacheMB.IsNegative() || a.PerAgentCacheMB.IsNegative() {
		return errors.InvalidInput("cache_mb", "cache size estimates cannot be negative")
	}
	if a.Compute.MemoryMB < 0 || a.Compute.DurationMS < 0 {
		return errors.InvalidInput("compute", "compute profile cannot be negative (%s)", a.Compute)
	}
	if a.Gateway.REST < 0 || a.Gateway.HTTP < 0 || a.Gateway.WebSocket < 0 {
		return errors.InvalidInput("gateway", "gateway call counts cannot be negative")
	}
	if a.EmailsPerSession < 0 || a.PutsPerSession < 0 || a.GetsPerSession < 0 || a.NotificationsPerSession < 0 {
		return errors.InvalidInput("per_session", "per-session counts cannot be negative")
	}
	if a.ObjectGBPerSession.IsNegative() {
		return errors.InvalidInput("object_gb_per_session", "object storage per session cannot be negative")
	}
	return nil
}

// Assumption is one documented constant, as shown in reports
type Assumption struct {
	Component string `json:"component"`
	Attribute string `json:"attribute"`
	Value     string `json:"value"`
	Unit      string `json:"unit,omitempty"`
}

// Describe lists every assumption in a stable order
func (a Assumptions) Describe() []Assumption {
	return []Assumption{
		{"load", "min_requests_per_session", fmt.Sprint(a.MinRequestsPerSession), "requests"},
		{"load", "minutes_per_request", fmt.Sprint(a.MinutesPerRequest), "minutes"},
		{"load", "peak_concurrency_fraction", a.PeakConcurrencyFraction.String(), "of agents"},
		{"cache", "per_session_cache", a.PerSessionCacheMB.String(), "MB"},
		{"cache", "per_agent_cache", a.PerAgentCacheMB.String(), "MB"},
		{"compute", "memory", fmt.Sprint(a.Compute.MemoryMB), "MB"},
		{"compute", "duration", fmt.Sprint(a.Compute.DurationMS), "ms"},
		{"gateway", "calls_per_request", fmt.Sprintf("%d REST + %d HTTP + %d WebSocket", a.Gateway.REST, a.Gateway.HTTP, a.Gateway.WebSocket), ""},
		{"email", "per_session", fmt.Sprint(a.EmailsPerSession), "emails"},
		{"object_storage", "per_session", a.ObjectGBPerSession.String(), "GB"},
		{"object_storage", "puts_per_session", fmt.Sprint(a.PutsPerSession), "requests"},
		{"object_storage", "gets_per_session", fmt.Sprint(a.GetsPerSession), "requests"},
		{"notification", "per_session", fmt.Sprint(a.NotificationsPerSession), "messages"},
	}
}
