// Package primitives - Tiered pricing primitives
// Handles free allowances and stepped per-unit rates
package primitives

import "github.com/shopspring/decimal"

// CalculateTieredCost computes the cost of quantity across ascending tiers
func CalculateTieredCost(quantity int64, tiers []PricingTier) decimal.Decimal {
	if quantity <= 0 || len(tiers) == 0 {
		return decimal.Zero
	}

	total := decimal.Zero
	remaining := quantity
	var previousLimit int64

	for _, tier := range tiers {
		if remaining <= 0 {
			break
		}

		if tier.UpTo == 0 {
			// Unlimited tier - all remaining goes here
			total = total.Add(decimal.NewFromInt(remaining).Mul(tier.UnitRate))
			remaining = 0
			continue
		}

		usageInTier := min(remaining, tier.UpTo-previousLimit)
		total = total.Add(decimal.NewFromInt(usageInTier).Mul(tier.UnitRate))
		remaining -= usageInTier
		previousLimit = tier.UpTo
	}

	return total
}

// Billable returns the quantity left after a free allowance, never negative
func Billable(quantity, freeAmount int64) int64 {
	if quantity <= freeAmount {
		return 0
	}
	return quantity - freeAmount
}

// FreeTier prices quantity at unitRate after freeAmount units at no charge
func FreeTier(quantity, freeAmount int64, unitRate decimal.Decimal) decimal.Decimal {
	if freeAmount <= 0 {
		return CalculateTieredCost(quantity, []PricingTier{{UnitRate: unitRate}})
	}
	return CalculateTieredCost(quantity, []PricingTier{
		{UpTo: freeAmount, UnitRate: decimal.Zero},
		{UnitRate: unitRate},
	})
}

// Floor returns cost, or minimum when cost falls below it
func Floor(cost, minimum decimal.Decimal) decimal.Decimal {
	return decimal.Max(cost, minimum)
}
