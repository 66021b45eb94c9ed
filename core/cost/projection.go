package cost

import (
	"github.com/shopspring/decimal"

	"webtoq-cost/core/tier"
	"webtoq-cost/core/types"
	"webtoq-cost/internal/errors"
)

// Projection compares an estimate with the same workload scaled by a growth factor
type Projection struct {
	GrowthFactor          decimal.Decimal `json:"growth_factor"`
	Current               *Estimate       `json:"current"`
	Projected             *Estimate       `json:"projected"`
	MonthlyDelta          decimal.Decimal `json:"monthly_delta"`
	CostPerAgentBefore    decimal.Decimal `json:"cost_per_agent_before"`
	CostPerAgentAfter     decimal.Decimal `json:"cost_per_agent_after"`
	CostPerAgentDecreases bool            `json:"cost_per_agent_decreases"`
	TierChanged           bool            `json:"tier_changed"`
}

// ProjectedAgents scales an agent count, rounding half away from zero, never below one
func ProjectedAgents(agents int, growthFactor decimal.Decimal) int {
	scaled := decimal.NewFromInt(int64(agents)).Mul(growthFactor).Round(0).IntPart()
	return int(max(scaled, 1))
}

// ProjectScaling re-runs the pipeline with the agent count scaled by growthFactor.
// Clients per agent, work days and session length stay the same. Explicit infrastructure
// overrides are dropped so the projected tier picks its own defaults.
func (e *Estimator) ProjectScaling(current *Estimate, growthFactor decimal.Decimal) (*Projection, error) {
	if current == nil {
		return nil, errors.New(errors.TypeInvalidInput, "current estimate is required")
	}
	if !growthFactor.IsPositive() {
		return nil, errors.InvalidInput("growth_factor", "growth factor must be positive, got %s", growthFactor)
	}

	workload := current.Workload()
	req := Request{
		Workload:        workload.WithAgents(ProjectedAgents(workload.AgentCount, growthFactor)),
		Compute:         current.Request.Compute,
		RevenuePerAgent: current.Request.RevenuePerAgent,
	}

	projected, err := e.Estimate(req)
	if err != nil {
		return nil, err
	}

	before := current.Metrics.CostPerAgent
	after := projected.Metrics.CostPerAgent
	return &Projection{
		GrowthFactor:          growthFactor,
		Current:               current,
		Projected:             projected,
		MonthlyDelta:          projected.Breakdown.Total.Sub(current.Breakdown.Total),
		CostPerAgentBefore:    before,
		CostPerAgentAfter:     after,
		CostPerAgentDecreases: after.LessThan(before),
		TierChanged:           projected.Tier != current.Tier,
	}, nil
}

// TierEntryEstimates prices a workload shape at the smallest agent count of every tier
func (e *Estimator) TierEntryEstimates(w types.WorkloadInput) ([]*Estimate, error) {
	counts := []int{1}
	for _, bp := range tier.Breakpoints {
		counts = append(counts, bp.MaxAgents+1)
	}

	out := make([]*Estimate, 0, len(counts))
	for _, n := range counts {
		est, err := e.Estimate(Request{Workload: w.WithAgents(n)})
		if err != nil {
			return nil, err
		}
		out = append(out, est)
	}
	return out, nil
}
