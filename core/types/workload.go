// Package types - Workload input and derived load
package types

import (
	"math"
	"math/bits"

	"github.com/shopspring/decimal"

	"webtoq-cost/internal/errors"
)

// Upper bounds on workload parameters
const (
	MaxAgentCount             = 10_000_000
	MaxClientsPerAgent        = 100_000
	MaxWorkDaysPerMonth       = 31
	MaxSessionDurationMinutes = 1440
)

// WorkloadInput holds the only true independent variables of an estimate
type WorkloadInput struct {
	// AgentCount is the number of paying agents (tenants' operators)
	AgentCount int `json:"agent_count" yaml:"agent_count"`

	// ClientsPerAgent is the number of client sessions an agent serves per work day
	ClientsPerAgent int `json:"clients_per_agent" yaml:"clients_per_agent"`

	// WorkDaysPerMonth is the number of working days in a billing month
	WorkDaysPerMonth int `json:"work_days_per_month" yaml:"work_days_per_month"`

	// SessionDurationMinutes is the average client session length
	SessionDurationMinutes int `json:"session_duration_minutes" yaml:"session_duration_minutes"`
}

// Validate rejects missing, non-positive or out-of-range parameters
func (w WorkloadInput) Validate() error {
	checks := []struct {
		field string
		value int
		max   int
	}{
		{"agent_count", w.AgentCount, MaxAgentCount},
		{"clients_per_agent", w.ClientsPerAgent, MaxClientsPerAgent},
		{"work_days_per_month", w.WorkDaysPerMonth, MaxWorkDaysPerMonth},
		{"session_duration_minutes", w.SessionDurationMinutes, MaxSessionDurationMinutes},
	}
	for _, c := range checks {
		if c.value < 1 {
			return errors.InvalidInput(c.field, "%s must be a positive integer, got %d", c.field, c.value)
		}
		if c.value > c.max {
			return errors.InvalidInput(c.field, "%s cannot exceed %d, got %d", c.field, c.max, c.value)
		}
	}
	return nil
}

// MulCount multiplies two non-negative counts, failing with InvalidInput
// instead of wrapping when the product does not fit in an int64.
func MulCount(field string, a, b int64) (int64, error) {
	if a < 0 || b < 0 {
		return 0, errors.InvalidInput(field, "%s cannot be negative, got %d x %d", field, a, b)
	}
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > math.MaxInt64 {
		return 0, errors.InvalidInput(field, "%s is too large: %d x %d overflows", field, a, b)
	}
	return int64(lo), nil
}

// WithAgents returns a copy of the workload with a different agent count
func (w WorkloadInput) WithAgents(agents int) WorkloadInput {
	w.AgentCount = agents
	return w
}

// DerivedLoad is computed deterministically from a WorkloadInput
type DerivedLoad struct {
	SessionsPerMonth          int64 `json:"sessions_per_month"`
	SessionsPerDay            int64 `json:"sessions_per_day"`
	RequestsPerSession        int64 `json:"requests_per_session"`
	RequestsPerMonth          int64 `json:"requests_per_month"`
	ConcurrentPeakConnections int64 `json:"concurrent_peak_connections"`
	CacheStorageMB            int64 `json:"cache_storage_mb"`
}

// Validate rejects negative quantities
func (l DerivedLoad) Validate() error {
	checks := []struct {
		field string
		value int64
	}{
		{"sessions_per_month", l.SessionsPerMonth},
		{"sessions_per_day", l.SessionsPerDay},
		{"requests_per_session", l.RequestsPerSession},
		{"requests_per_month", l.RequestsPerMonth},
		{"concurrent_peak_connections", l.ConcurrentPeakConnections},
		{"cache_storage_mb", l.CacheStorageMB},
	}
	for _, c := range checks {
		if c.value < 0 {
			return errors.InvalidInput(c.field, "%s cannot be negative, got %d", c.field, c.value)
		}
	}
	return nil
}

// CacheStorageGB converts the cache estimate to GB (1024 MB per GB)
func (l DerivedLoad) CacheStorageGB() decimal.Decimal {
	return decimal.NewFromInt(l.CacheStorageMB).Div(decimal.NewFromInt(1024))
}
