// Package primitives - Compute pricing primitives
// Function GB-seconds
package primitives

import "github.com/shopspring/decimal"

// GBSeconds is the billed duration of count invocations at memoryMB for durationMS each
func GBSeconds(count int64, memoryMB, durationMS int) decimal.Decimal {
	if count <= 0 || memoryMB <= 0 || durationMS <= 0 {
		return decimal.Zero
	}
	memoryGB := decimal.NewFromInt(int64(memoryMB)).Div(mbPerGB)
	seconds := decimal.NewFromInt(int64(durationMS)).Div(msPerSecond)
	return decimal.NewFromInt(count).Mul(memoryGB).Mul(seconds)
}

// Duration prices GB-seconds at a per-GB-second rate
func Duration(gbSeconds, rate decimal.Decimal) decimal.Decimal {
	if !gbSeconds.IsPositive() {
		return decimal.Zero
	}
	return gbSeconds.Mul(rate)
}

// NodeMonthly prices a fleet of fixed-rate nodes, doubled (or scaled) for Multi-AZ
func NodeMonthly(rate decimal.Decimal, nodes int, multiAZ bool, multiAZMultiplier decimal.Decimal) decimal.Decimal {
	if nodes <= 0 {
		return decimal.Zero
	}
	cost := rate.Mul(decimal.NewFromInt(int64(nodes)))
	if multiAZ {
		cost = cost.Mul(multiAZMultiplier)
	}
	return cost
}
