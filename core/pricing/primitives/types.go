// Package primitives - Centralized pricing math
// Service formulas declare quantities, not do math.
// All unit conversion and free-tier logic flows through these primitives.
package primitives

import "github.com/shopspring/decimal"

var (
	thousand        = decimal.NewFromInt(1_000)
	hundredThousand = decimal.NewFromInt(100_000)
	million         = decimal.NewFromInt(1_000_000)
	mbPerGB         = decimal.NewFromInt(1024)
	msPerSecond     = decimal.NewFromInt(1000)
	hoursPerDay     = decimal.NewFromInt(24)
)

// HoursPerMonth is the AWS billing convention for monthly rates
var HoursPerMonth = decimal.NewFromInt(730)

// PricingTier represents a tiered pricing level
type PricingTier struct {
	UpTo     int64           // Upper limit (0 = unlimited)
	UnitRate decimal.Decimal // Rate per unit in this tier
}
