package advisor

import (
	"github.com/shopspring/decimal"

	"webtoq-cost/core/cost"
	"webtoq-cost/core/types"
	"webtoq-cost/internal/errors"
)

// CacheComparison prices both cache modes for the same load
type CacheComparison struct {
	Current     types.CacheMode   `json:"current"`
	Recommended types.CacheMode   `json:"recommended"`
	Serverless  decimal.Decimal   `json:"serverless"`
	Provisioned decimal.Decimal   `json:"provisioned"`
	Savings     decimal.Decimal   `json:"savings"`
	Alternative types.CacheConfig `json:"alternative"`
}

func (c *CacheComparison) cost(mode types.CacheMode) decimal.Decimal {
	if mode == types.CacheServerless {
		return c.Serverless
	}
	return c.Provisioned
}

// SavingsPercent is Savings as a percentage of the current cache cost
func (c *CacheComparison) SavingsPercent() decimal.Decimal {
	current := c.cost(c.Current)
	if current.IsZero() {
		return decimal.Zero
	}
	return c.Savings.Div(current).Mul(decimal.NewFromInt(100))
}

// CompareCacheModes re-prices the estimate's cache in both modes. The other mode
// uses the node type or ECPU range already on the config, which the tier defaults fill in.
// The cheaper mode is recommended; ties keep the current mode.
func (a *Advisor) CompareCacheModes(est *cost.Estimate) (*CacheComparison, error) {
	if est == nil {
		return nil, errors.New(errors.TypeInvalidInput, "estimate is required")
	}

	serverless := est.Infra
	serverless.Cache.Mode = types.CacheServerless

	provisioned := est.Infra
	provisioned.Cache.Mode = types.CacheProvisioned
	if provisioned.Cache.Nodes < 1 {
		provisioned.Cache.Nodes = 1
	}

	sCost, err := a.cacheCost(est, serverless)
	if err != nil {
		return nil, err
	}
	pCost, err := a.cacheCost(est, provisioned)
	if err != nil {
		return nil, err
	}

	cmp := &CacheComparison{
		Current:     est.Infra.Cache.Mode,
		Recommended: est.Infra.Cache.Mode,
		Serverless:  sCost,
		Provisioned: pCost,
		Savings:     decimal.Zero,
	}

	switch {
	case sCost.LessThan(pCost):
		cmp.Recommended = types.CacheServerless
	case pCost.LessThan(sCost):
		cmp.Recommended = types.CacheProvisioned
	}

	if cmp.Recommended != cmp.Current {
		cmp.Savings = cmp.cost(cmp.Current).Sub(cmp.cost(cmp.Recommended))
	}
	if cmp.Current == types.CacheServerless {
		cmp.Alternative = provisioned.Cache
	} else {
		cmp.Alternative = serverless.Cache
	}
	return cmp, nil
}

func (a *Advisor) cacheCost(est *cost.Estimate, infra types.InfraConfig) (decimal.Decimal, error) {
	b, err := cost.Calculate(est.Tier, est.Load, infra, a.estimator.Table(), est.Assumptions)
	if err != nil {
		return decimal.Zero, err
	}
	return b.Monthly(types.ServiceCache), nil
}
