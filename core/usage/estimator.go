// Package usage turns workload parameters into the derived load every
// service formula consumes. Usage is decoupled from pricing so the same
// load can be priced under different infrastructure choices.
package usage

import (
	"github.com/shopspring/decimal"

	"webtoq-cost/core/types"
)

// EstimateLoad derives sessions, requests, peak concurrency and cache size
func EstimateLoad(input types.WorkloadInput, a Assumptions) (types.DerivedLoad, error) {
	if err := input.Validate(); err != nil {
		return types.DerivedLoad{}, err
	}
	if err := a.Validate(); err != nil {
		return types.DerivedLoad{}, err
	}

	agents := int64(input.AgentCount)
	sessionsPerDay, err := types.MulCount("sessions_per_day", agents, int64(input.ClientsPerAgent))
	if err != nil {
		return types.DerivedLoad{}, err
	}
	sessionsPerMonth, err := types.MulCount("sessions_per_month", sessionsPerDay, int64(input.WorkDaysPerMonth))
	if err != nil {
		return types.DerivedLoad{}, err
	}

	requestsPerSession := max(a.MinRequestsPerSession, roundInt(decimal.NewFromInt(int64(input.SessionDurationMinutes)).
		Div(decimal.NewFromInt(int64(max(a.MinutesPerRequest, 1))))))

	concurrent := roundInt(decimal.NewFromInt(agents).Mul(a.PeakConcurrencyFraction))

	cacheMB := roundInt(decimal.NewFromInt(concurrent).Mul(a.PerSessionCacheMB).
		Add(decimal.NewFromInt(agents).Mul(a.PerAgentCacheMB)))

	requestsPerMonth, err := types.MulCount("requests_per_month", sessionsPerMonth, requestsPerSession)
	if err != nil {
		return types.DerivedLoad{}, err
	}

	load := types.DerivedLoad{
		SessionsPerMonth:          sessionsPerMonth,
		SessionsPerDay:            sessionsPerDay,
		RequestsPerSession:        requestsPerSession,
		RequestsPerMonth:          requestsPerMonth,
		ConcurrentPeakConnections: concurrent,
		CacheStorageMB:            cacheMB,
	}
	return load, load.Validate()
}

// roundInt rounds half away from zero
func roundInt(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}
