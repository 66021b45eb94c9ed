// Package primitives - Storage pricing primitives
// GB-months, GB-hours, active hours
package primitives

import "github.com/shopspring/decimal"

// StorageGBMonth prices gb at a per-GB-month rate
func StorageGBMonth(gb, rate decimal.Decimal) decimal.Decimal {
	if !gb.IsPositive() {
		return decimal.Zero
	}
	return gb.Mul(rate)
}

// StorageGBHours prices gb held for the whole month at a per-GB-hour rate
func StorageGBHours(gb, rate decimal.Decimal) decimal.Decimal {
	return StorageGBMonth(gb, rate).Mul(HoursPerMonth)
}

// ActiveHoursPerMonth converts active hours per day into billed hours per month
func ActiveHoursPerMonth(perDay decimal.Decimal) decimal.Decimal {
	if !perDay.IsPositive() {
		return decimal.Zero
	}
	return perDay.Div(hoursPerDay).Mul(HoursPerMonth)
}

// UnitHours prices units running for hours at a per-unit-hour rate (ECPU-hours)
func UnitHours(units, hours, rate decimal.Decimal) decimal.Decimal {
	if !units.IsPositive() || !hours.IsPositive() {
		return decimal.Zero
	}
	return units.Mul(hours).Mul(rate)
}
