// Package advisor turns an estimate into tier advice, optimization tips and warnings.
package advisor

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"webtoq-cost/core/cost"
	"webtoq-cost/core/types"
)

// Kind groups recommendations for display
type Kind string

const (
	KindTier         Kind = "tier"
	KindOptimization Kind = "optimization"
	KindWarning      Kind = "warning"
)

// Recommendation is one piece of advice
type Recommendation struct {
	Kind        Kind            `json:"kind"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Service     types.Service   `json:"service,omitempty"`
	Savings     decimal.Decimal `json:"savings"`
	SavingsNote string          `json:"savings_note,omitempty"`
}

// Thresholds are the monthly amounts above which a tip is emitted
type Thresholds struct {
	ReservedDatabase   decimal.Decimal
	BatchEmail         decimal.Decimal
	IntelligentTierGB  decimal.Decimal
	LogRetention       decimal.Decimal
	ComputeTuning      decimal.Decimal
	ReservedDiscount   decimal.Decimal
	RightSizeInstance  string
	RightSizeBelowTier types.Tier
}

// DefaultThresholds returns the standard advice thresholds
func DefaultThresholds() Thresholds {
	return Thresholds{
		ReservedDatabase:   decimal.NewFromInt(200),
		BatchEmail:         decimal.NewFromInt(5),
		IntelligentTierGB:  decimal.NewFromInt(50),
		LogRetention:       decimal.NewFromInt(20),
		ComputeTuning:      decimal.NewFromInt(50),
		ReservedDiscount:   decimal.RequireFromString("0.4"),
		RightSizeInstance:  "db.r6g.2xlarge",
		RightSizeBelowTier: types.TierLarge,
	}
}

var tierAdvice = map[types.Tier]string{
	types.TierMicro:      "Serverless cache and a burstable single-AZ database keep fixed costs minimal while usage is low.",
	types.TierStarter:    "Stay serverless on the cache; move to a provisioned node once load is sustained through the day.",
	types.TierSmall:      "A provisioned cache node and a memory-optimized database give predictable latency at this size.",
	types.TierMedium:     "Multi-AZ on the database and cache is recommended for production availability.",
	types.TierLarge:      "Scale the database and cache vertically and review reserved capacity for the stable baseline.",
	types.TierEnterprise: "Consider read replicas and cache sharding; negotiate savings plans for committed spend.",
}

// Advisor produces recommendations for estimates made by one estimator
type Advisor struct {
	estimator  *cost.Estimator
	thresholds Thresholds
}

// New creates an advisor
func New(e *cost.Estimator, thresholds Thresholds) *Advisor {
	return &Advisor{estimator: e, thresholds: thresholds}
}

// Recommend returns tier advice first, then warnings, then optimization tips
func (a *Advisor) Recommend(est *cost.Estimate) []Recommendation {
	if est == nil || est.Breakdown == nil {
		return nil
	}
	th := a.thresholds
	b := est.Breakdown

	recs := []Recommendation{{
		Kind:        KindTier,
		Title:       fmt.Sprintf("%s tier (%s agents)", cases.Title(language.English).String(est.Tier.String()), est.AgentRange),
		Description: tierAdvice[est.Tier],
	}}

	recs = append(recs, a.warnings(est)...)

	if cmp, err := a.CompareCacheModes(est); err == nil && cmp.Recommended != cmp.Current && cmp.Savings.IsPositive() {
		recs = append(recs, Recommendation{
			Kind:  KindOptimization,
			Title: fmt.Sprintf("Switch cache to %s", cmp.Recommended),
			Description: fmt.Sprintf("For this load a %s cache costs $%s/month against $%s/month for %s.",
				cmp.Recommended, cmp.cost(cmp.Recommended).StringFixed(2), cmp.cost(cmp.Current).StringFixed(2), cmp.Current),
			Service:     types.ServiceCache,
			Savings:     cmp.Savings,
			SavingsNote: fmt.Sprintf("%s%%", cmp.SavingsPercent().StringFixed(0)),
		})
	}

	if db := b.Monthly(types.ServiceDatabase); db.GreaterThan(th.ReservedDatabase) {
		save := db.Mul(th.ReservedDiscount)
		pct := th.ReservedDiscount.Mul(decimal.NewFromInt(100))
		recs = append(recs, Recommendation{
			Kind:        KindOptimization,
			Title:       "Reserved database instances",
			Description: fmt.Sprintf("With a sustained load, 1-year reserved instances save about %s%% on the database ($%s/month).", pct, save.StringFixed(2)),
			Service:     types.ServiceDatabase,
			Savings:     save,
			SavingsNote: fmt.Sprintf("~%s%%", pct),
		})
	}

	if email := b.Monthly(types.ServiceEmail); email.GreaterThan(th.BatchEmail) {
		recs = append(recs, Recommendation{
			Kind:        KindOptimization,
			Title:       "Batch email notifications",
			Description: "Group notifications into digests to stay closer to the free email allowance.",
			Service:     types.ServiceEmail,
		})
	}

	if gb := cost.ObjectStorageGB(est.Load, est.Assumptions); gb.GreaterThan(th.IntelligentTierGB) {
		recs = append(recs, Recommendation{
			Kind:        KindOptimization,
			Title:       "Intelligent tiering for object storage",
			Description: fmt.Sprintf("%sGB of new objects per month; move chat logs and attachments to intelligent tiering.", gb.StringFixed(0)),
			Service:     types.ServiceObjectStorage,
		})
	}

	if logs := b.Monthly(types.ServiceLogging); logs.GreaterThan(th.LogRetention) {
		recs = append(recs, Recommendation{
			Kind:        KindOptimization,
			Title:       "Shorter log retention",
			Description: "Reduce retention on debug log groups and export older logs to object storage.",
			Service:     types.ServiceLogging,
		})
	}

	if compute := b.Monthly(types.ServiceCompute); compute.GreaterThan(th.ComputeTuning) {
		recs = append(recs, Recommendation{
			Kind:        KindOptimization,
			Title:       "Tune function memory",
			Description: fmt.Sprintf("Profile function memory (currently %s); duration dominates compute cost.", est.Assumptions.Compute),
			Service:     types.ServiceCompute,
		})
	}

	if est.Infra.Database.MultiAZ && est.Tier <= types.TierStarter {
		save := b.Monthly(types.ServiceDatabase).Div(decimal.NewFromInt(2))
		recs = append(recs, Recommendation{
			Kind:        KindOptimization,
			Title:       "Disable Multi-AZ in development",
			Description: fmt.Sprintf("High availability is rarely needed at this size. Saves about $%s/month on the database.", save.StringFixed(2)),
			Service:     types.ServiceDatabase,
			Savings:     save,
			SavingsNote: "50%",
		})
	}

	if est.Infra.Database.Instance == th.RightSizeInstance && est.Tier < th.RightSizeBelowTier {
		recs = append(recs, Recommendation{
			Kind:        KindOptimization,
			Title:       "Right-size the database",
			Description: fmt.Sprintf("%s is likely oversized for the %s tier; consider db.r6g.large or db.r6g.xlarge.", est.Infra.Database.Instance, est.Tier),
			Service:     types.ServiceDatabase,
			SavingsNote: "30-50%",
		})
	}

	recs = append(recs,
		Recommendation{
			Kind:        KindOptimization,
			Title:       "Cache TTLs",
			Description: "Set explicit TTLs on session and lookup keys so cache memory tracks active sessions.",
			Service:     types.ServiceCache,
		},
		Recommendation{
			Kind:        KindOptimization,
			Title:       "Monitor with Cost Explorer",
			Description: "Compare actual spend against this estimate monthly and set budget alarms.",
		},
	)

	return recs
}

func (a *Advisor) warnings(est *cost.Estimate) []Recommendation {
	var out []Recommendation
	c := est.Infra.Cache
	if c.Mode == types.CacheProvisioned {
		if node, err := a.estimator.Table().CacheNode(c.Node); err == nil && node.Burstable {
			out = append(out, Recommendation{
				Kind:        KindWarning,
				Title:       "Burstable cache node",
				Description: fmt.Sprintf("%s throttles once CPU credits run out under sustained load; use cache.r7g.large for production.", c.Node),
				Service:     types.ServiceCache,
			})
		}
	}
	return out
}

// Savings sums the quantified savings of a set of recommendations
func Savings(recs []Recommendation) decimal.Decimal {
	total := decimal.Zero
	for _, r := range recs {
		total = total.Add(r.Savings)
	}
	return total
}
