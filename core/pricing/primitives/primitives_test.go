package primitives

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestFreeTier(t *testing.T) {
	rate := dec("0.0001")

	tests := []struct {
		name     string
		quantity int64
		free     int64
		want     string
	}{
		{"below allowance", 50_000, 62_000, "0"},
		{"at allowance", 62_000, 62_000, "0"},
		{"above allowance", 80_000, 62_000, "1.8"},
		{"no allowance", 1_000, 0, "0.1"},
		{"zero quantity", 0, 62_000, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FreeTier(tt.quantity, tt.free, rate)
			if !got.Equal(dec(tt.want)) {
				t.Errorf("FreeTier(%d, %d) = %s, want %s", tt.quantity, tt.free, got, tt.want)
			}
		})
	}
}

func TestFreeTierMatchesPerThousand(t *testing.T) {
	// 40,000 sessions x 2 emails, 62,000 free, $0.10 per thousand
	perThousand := dec("0.10")
	a := FreeTierPerThousand(80_000, 62_000, perThousand)
	b := FreeTier(80_000, 62_000, perThousand.Div(thousand))
	if !a.Equal(b) || !a.Equal(dec("1.8")) {
		t.Errorf("FreeTierPerThousand = %s, FreeTier = %s, want 1.8", a, b)
	}
}

func TestCalculateTieredCost(t *testing.T) {
	tiers := []PricingTier{
		{UpTo: 10, UnitRate: dec("1")},
		{UpTo: 20, UnitRate: dec("0.5")},
		{UnitRate: dec("0.1")},
	}
	if got := CalculateTieredCost(25, tiers); !got.Equal(dec("15.5")) {
		t.Errorf("CalculateTieredCost(25) = %s, want 15.5", got)
	}
	if got := CalculateTieredCost(-1, tiers); !got.IsZero() {
		t.Errorf("negative quantity should cost nothing, got %s", got)
	}
}

func TestRequests(t *testing.T) {
	if got := PerMillion(1_760_000, dec("0.20")); !got.Equal(dec("0.352")) {
		t.Errorf("PerMillion = %s, want 0.352", got)
	}
	if got := PerHundredThousand(1_760_000, dec("0.50")); !got.Equal(dec("8.8")) {
		t.Errorf("PerHundredThousand = %s, want 8.8", got)
	}
	if got := PerThousand(0, dec("5")); !got.IsZero() {
		t.Errorf("PerThousand(0) = %s, want 0", got)
	}
	if got := FreeTierPerMillion(900_000, 1_000_000, dec("0.50")); !got.IsZero() {
		t.Errorf("FreeTierPerMillion within allowance = %s, want 0", got)
	}
}

func TestCompute(t *testing.T) {
	gbs := GBSeconds(1_760_000, 512, 400)
	if !gbs.Equal(dec("352000")) {
		t.Fatalf("GBSeconds = %s, want 352000", gbs)
	}
	if got := NodeMonthly(dec("146"), 2, true, dec("2")); !got.Equal(dec("584")) {
		t.Errorf("NodeMonthly multi-AZ = %s, want 584", got)
	}
	if got := NodeMonthly(dec("146"), 0, false, dec("2")); !got.IsZero() {
		t.Errorf("NodeMonthly with no nodes = %s, want 0", got)
	}
}

func TestStorage(t *testing.T) {
	if got := ActiveHoursPerMonth(dec("24")); !got.Equal(HoursPerMonth) {
		t.Errorf("ActiveHoursPerMonth(24) = %s, want 730", got)
	}
	if got := ActiveHoursPerMonth(dec("12")); !got.Equal(dec("365")) {
		t.Errorf("ActiveHoursPerMonth(12) = %s, want 365", got)
	}
	if got := StorageGBHours(dec("1"), dec("0.084")); !got.Equal(dec("61.32")) {
		t.Errorf("StorageGBHours = %s, want 61.32", got)
	}
	if got := UnitHours(dec("2"), dec("365"), dec("0.14")); !got.Equal(dec("102.2")) {
		t.Errorf("UnitHours = %s, want 102.2", got)
	}
}
