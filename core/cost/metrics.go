package cost

import (
	"github.com/shopspring/decimal"

	"webtoq-cost/core/types"
	"webtoq-cost/internal/errors"
)

// DefaultRevenuePerAgent is the monthly subscription price per agent
var DefaultRevenuePerAgent = decimal.NewFromInt(5)

var (
	hundred          = decimal.NewFromInt(100)
	excellentMargin  = decimal.NewFromInt(85)
	acceptableMargin = decimal.NewFromInt(70)
)

// RateMargin classifies a margin percentage
func RateMargin(percent decimal.Decimal) types.MarginRating {
	switch {
	case percent.GreaterThanOrEqual(excellentMargin):
		return types.MarginExcellent
	case percent.GreaterThanOrEqual(acceptableMargin):
		return types.MarginAcceptable
	default:
		return types.MarginLow
	}
}

// ComputeMetrics derives unit economics from a breakdown.
// Zero agents, sessions or revenue would divide by zero and return a DivisionGuard error.
func ComputeMetrics(b *types.CostBreakdown, agentCount int, sessionsPerMonth int64, revenuePerAgent decimal.Decimal) (types.BusinessMetrics, error) {
	if b == nil {
		return types.BusinessMetrics{}, errors.New(errors.TypeInvalidInput, "cost breakdown is required")
	}
	if agentCount <= 0 {
		return types.BusinessMetrics{}, errors.DivisionGuard("agent_count")
	}
	if sessionsPerMonth <= 0 {
		return types.BusinessMetrics{}, errors.DivisionGuard("sessions_per_month")
	}
	if revenuePerAgent.IsNegative() {
		return types.BusinessMetrics{}, errors.InvalidInput("revenue_per_agent", "revenue per agent cannot be negative, got %s", revenuePerAgent)
	}

	agents := decimal.NewFromInt(int64(agentCount))
	revenue := agents.Mul(revenuePerAgent)
	if revenue.IsZero() {
		return types.BusinessMetrics{}, errors.DivisionGuard("revenue")
	}

	profit := revenue.Sub(b.Total)
	margin := profit.Div(revenue).Mul(hundred)

	m := types.BusinessMetrics{
		CostPerAgent:    b.Total.Div(agents),
		CostPerSession:  b.Total.Div(decimal.NewFromInt(sessionsPerMonth)),
		RevenuePerAgent: revenuePerAgent,
		Revenue:         revenue,
		Profit:          profit,
		MarginPercent:   margin,
		MarginRating:    RateMargin(margin),
		MonthlyTotal:    b.Total,
		YearlyTotal:     b.Yearly(),
	}
	if top, ok := b.Largest(); ok {
		m.TopCostService = top.Service
	}
	return m, nil
}
