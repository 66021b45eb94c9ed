// Package primitives - Request and usage-based pricing primitives
// Requests, API calls, messages
package primitives

import "github.com/shopspring/decimal"

// PerMillion prices count units at a per-million rate
func PerMillion(count int64, rate decimal.Decimal) decimal.Decimal {
	return perUnit(count, million, rate)
}

// PerHundredThousand prices count units at a per-100k rate
func PerHundredThousand(count int64, rate decimal.Decimal) decimal.Decimal {
	return perUnit(count, hundredThousand, rate)
}

// PerThousand prices count units at a per-thousand rate (S3 PUT/GET, SES)
func PerThousand(count int64, rate decimal.Decimal) decimal.Decimal {
	return perUnit(count, thousand, rate)
}

// FreeTierPerThousand prices count after a free allowance at a per-thousand rate
func FreeTierPerThousand(count, freeAmount int64, rate decimal.Decimal) decimal.Decimal {
	return FreeTier(count, freeAmount, rate.Div(thousand))
}

// FreeTierPerMillion prices count after a free allowance at a per-million rate
func FreeTierPerMillion(count, freeAmount int64, rate decimal.Decimal) decimal.Decimal {
	return FreeTier(count, freeAmount, rate.Div(million))
}

func perUnit(count int64, unit, rate decimal.Decimal) decimal.Decimal {
	if count <= 0 {
		return decimal.Zero // No cost for zero requests
	}
	return decimal.NewFromInt(count).Div(unit).Mul(rate)
}
