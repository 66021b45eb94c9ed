package output

import (
	"github.com/shopspring/decimal"

	"webtoq-cost/core/advisor"
	"webtoq-cost/core/cost"
)

// ReportOptions selects the optional report sections
type ReportOptions struct {
	// Scenario, Title and Warning label a preset run
	Scenario string
	Title    string
	Warning  string

	// ProjectGrowth adds a scaling projection when set
	ProjectGrowth *decimal.Decimal

	// CompareCache adds a serverless vs provisioned comparison
	CompareCache bool
}

// Builder runs one request through the estimator and advisor
type Builder struct {
	estimator *cost.Estimator
	advisor   *advisor.Advisor
}

// NewBuilder creates a report builder
func NewBuilder(e *cost.Estimator, a *advisor.Advisor) *Builder {
	return &Builder{estimator: e, advisor: a}
}

// Estimator returns the estimator reports are built with
func (b *Builder) Estimator() *cost.Estimator {
	return b.estimator
}

// Build estimates the request and fills in every requested section
func (b *Builder) Build(req cost.Request, opts ReportOptions) (*Report, error) {
	est, err := b.estimator.Estimate(req)
	if err != nil {
		return nil, err
	}

	report := NewReport(est, b.estimator.Table().Snapshot())
	report.Scenario = opts.Scenario
	report.Title = opts.Title
	report.Warning = opts.Warning
	report.Recommendations = b.advisor.Recommend(est)

	if opts.CompareCache {
		cmp, err := b.advisor.CompareCacheModes(est)
		if err != nil {
			return nil, err
		}
		report.CacheComparison = cmp
	}
	if opts.ProjectGrowth != nil {
		projection, err := b.estimator.ProjectScaling(est, *opts.ProjectGrowth)
		if err != nil {
			return nil, err
		}
		report.Projection = projection
	}
	return report, nil
}
