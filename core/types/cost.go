// Package types - Cost breakdown types
package types

import "github.com/shopspring/decimal"

// MonthsPerYear converts monthly totals to yearly totals
var MonthsPerYear = decimal.NewFromInt(12)

// ServiceCost is a single billable service line in a breakdown
type ServiceCost struct {
	// Service identifies the billed service
	Service Service `json:"service"`

	// Label is a human-readable product name
	Label string `json:"label"`

	// Monthly is the calculated monthly cost, unrounded
	Monthly decimal.Decimal `json:"monthly"`

	// Config describes the sized configuration (instance, volume, ...)
	Config string `json:"config"`

	// Justification explains why the service is part of the stack
	Justification string `json:"justification"`

	// Formula describes how the cost was calculated
	Formula string `json:"formula"`
}

// CostBreakdown maps services to monthly cost plus a computed total.
// Build it with NewCostBreakdown; it is never mutated afterwards.
type CostBreakdown struct {
	// Lines holds one entry per service, in Services() order
	Lines []ServiceCost `json:"lines"`

	// Total is the exact sum of every line
	Total decimal.Decimal `json:"total"`

	// Currency is the cost currency
	Currency Currency `json:"currency"`
}

// NewCostBreakdown builds a breakdown whose total is the sum of its lines
func NewCostBreakdown(currency Currency, lines ...ServiceCost) *CostBreakdown {
	b := &CostBreakdown{
		Lines:    append([]ServiceCost(nil), lines...),
		Currency: currency,
	}
	b.Total = b.Sum()
	return b
}

// Sum adds every line. It always equals Total for a breakdown built by NewCostBreakdown.
func (b *CostBreakdown) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, line := range b.Lines {
		sum = sum.Add(line.Monthly)
	}
	return sum
}

// Get returns the line for a service
func (b *CostBreakdown) Get(service Service) (ServiceCost, bool) {
	for _, line := range b.Lines {
		if line.Service == service {
			return line, true
		}
	}
	return ServiceCost{}, false
}

// Monthly returns the monthly cost of a service, zero if absent
func (b *CostBreakdown) Monthly(service Service) decimal.Decimal {
	line, _ := b.Get(service)
	return line.Monthly
}

// Yearly returns the total multiplied by twelve
func (b *CostBreakdown) Yearly() decimal.Decimal {
	return b.Total.Mul(MonthsPerYear)
}

// Share returns the percentage of the total a service accounts for.
// An all-zero breakdown has no meaningful share, so every share is zero.
func (b *CostBreakdown) Share(service Service) decimal.Decimal {
	if b.Total.IsZero() {
		return decimal.Zero
	}
	return b.Monthly(service).Div(b.Total).Mul(decimal.NewFromInt(100))
}

// Largest returns the most expensive line; ties go to the earlier service
func (b *CostBreakdown) Largest() (ServiceCost, bool) {
	if len(b.Lines) == 0 {
		return ServiceCost{}, false
	}
	top := b.Lines[0]
	for _, line := range b.Lines[1:] {
		if line.Monthly.GreaterThan(top.Monthly) {
			top = line
		}
	}
	return top, true
}

// MarginRating classifies a profit margin
type MarginRating string

const (
	MarginExcellent  MarginRating = "excellent"
	MarginAcceptable MarginRating = "acceptable"
	MarginLow        MarginRating = "low"
)

// BusinessMetrics are derived from a breakdown total and per-agent revenue
type BusinessMetrics struct {
	CostPerAgent    decimal.Decimal `json:"cost_per_agent"`
	CostPerSession  decimal.Decimal `json:"cost_per_session"`
	RevenuePerAgent decimal.Decimal `json:"revenue_per_agent"`
	Revenue         decimal.Decimal `json:"revenue"`
	Profit          decimal.Decimal `json:"profit"`
	MarginPercent   decimal.Decimal `json:"margin_percent"`
	MarginRating    MarginRating    `json:"margin_rating"`
	MonthlyTotal    decimal.Decimal `json:"monthly_total"`
	YearlyTotal     decimal.Decimal `json:"yearly_total"`
	TopCostService  Service         `json:"top_cost_service"`
}
