package cost

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"webtoq-cost/core/pricing"
	"webtoq-cost/core/tier"
	"webtoq-cost/core/types"
	"webtoq-cost/core/usage"
	"webtoq-cost/internal/errors"
	"webtoq-cost/internal/logging"
)

// Request is one estimation: the workload plus any explicit choices
type Request struct {
	Workload  types.WorkloadInput `json:"workload" yaml:"workload"`
	Overrides types.Overrides     `json:"overrides,omitempty" yaml:"overrides,omitempty"`

	// Compute replaces the function profile from the assumptions
	Compute *usage.ComputeProfile `json:"compute,omitempty" yaml:"compute,omitempty"`

	// RevenuePerAgent replaces the estimator default
	RevenuePerAgent *decimal.Decimal `json:"revenue_per_agent,omitempty" yaml:"-"`
}

// Estimate is the full result of one request. Identical requests give identical estimates.
type Estimate struct {
	Request     Request               `json:"request"`
	Load        types.DerivedLoad     `json:"load"`
	Tier        types.Tier            `json:"tier"`
	AgentRange  string                `json:"agent_range"`
	Infra       types.InfraConfig     `json:"infra"`
	Breakdown   *types.CostBreakdown  `json:"breakdown"`
	Metrics     types.BusinessMetrics `json:"metrics"`
	Assumptions usage.Assumptions     `json:"assumptions"`
	PricingHash string                `json:"pricing_hash"`
}

// Workload returns the workload the estimate was computed for
func (e *Estimate) Workload() types.WorkloadInput {
	return e.Request.Workload
}

// Estimator runs the full pipeline against one pricing table
type Estimator struct {
	table           *pricing.Table
	assumptions     usage.Assumptions
	revenuePerAgent decimal.Decimal
}

// NewEstimator creates an estimator. A zero revenuePerAgent uses DefaultRevenuePerAgent.
func NewEstimator(table *pricing.Table, assumptions usage.Assumptions, revenuePerAgent decimal.Decimal) *Estimator {
	if revenuePerAgent.IsZero() {
		revenuePerAgent = DefaultRevenuePerAgent
	}
	return &Estimator{
		table:           table,
		assumptions:     assumptions,
		revenuePerAgent: revenuePerAgent,
	}
}

// Table returns the pricing table
func (e *Estimator) Table() *pricing.Table {
	return e.table
}

// Assumptions returns the default assumptions
func (e *Estimator) Assumptions() usage.Assumptions {
	return e.assumptions
}

// RevenuePerAgent returns the default revenue per agent
func (e *Estimator) RevenuePerAgent() decimal.Decimal {
	return e.revenuePerAgent
}

// Estimate validates the request, derives load, classifies the tier,
// merges tier defaults with overrides and prices the result.
func (e *Estimator) Estimate(req Request) (*Estimate, error) {
	if e.table == nil {
		return nil, errors.New(errors.TypeInvalidConfiguration, "estimator has no pricing table")
	}

	assumptions := e.assumptions
	if req.Compute != nil {
		assumptions = assumptions.WithCompute(*req.Compute)
	}
	revenue := e.revenuePerAgent
	if req.RevenuePerAgent != nil {
		revenue = *req.RevenuePerAgent
	}

	if err := req.Overrides.Validate(); err != nil {
		return nil, err
	}

	load, err := usage.EstimateLoad(req.Workload, assumptions)
	if err != nil {
		return nil, err
	}

	t := tier.Classify(req.Workload.AgentCount, load.RequestsPerMonth)
	profile, err := tier.Lookup(t)
	if err != nil {
		return nil, err
	}
	infra := req.Overrides.Apply(profile.Infra)

	breakdown, err := Calculate(t, load, infra, e.table, assumptions)
	if err != nil {
		return nil, err
	}

	metrics, err := ComputeMetrics(breakdown, req.Workload.AgentCount, load.SessionsPerMonth, revenue)
	if err != nil {
		return nil, err
	}

	logging.For("estimator").Debug("estimate computed",
		zap.Int("agents", req.Workload.AgentCount),
		zap.Int64("requests", load.RequestsPerMonth),
		zap.Stringer("tier", t),
		zap.Bool("overrides", !req.Overrides.IsEmpty()),
		logging.Money("monthly", breakdown.Total),
	)

	return &Estimate{
		Request:     req,
		Load:        load,
		Tier:        t,
		AgentRange:  profile.AgentRange,
		Infra:       infra,
		Breakdown:   breakdown,
		Metrics:     metrics,
		Assumptions: assumptions,
		PricingHash: e.table.ContentHash(),
	}, nil
}
