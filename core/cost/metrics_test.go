package cost

import (
	"testing"

	"github.com/shopspring/decimal"

	"webtoq-cost/core/types"
	"webtoq-cost/internal/errors"
)

func TestComputeMetrics(t *testing.T) {
	b := types.NewCostBreakdown(types.CurrencyUSD,
		types.ServiceCost{Service: types.ServiceDatabase, Monthly: dec("600")},
		types.ServiceCost{Service: types.ServiceCache, Monthly: dec("200")},
	)

	m, err := ComputeMetrics(b, 1000, 88_000, dec("5"))
	if err != nil {
		t.Fatal(err)
	}

	checks := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"cost per agent", m.CostPerAgent, "0.8"},
		{"revenue", m.Revenue, "5000"},
		{"profit", m.Profit, "4200"},
		{"margin", m.MarginPercent, "84"},
		{"yearly", m.YearlyTotal, "9600"},
	}
	for _, c := range checks {
		if !c.got.Equal(dec(c.want)) {
			t.Errorf("%s = %s, want %s", c.name, c.got, c.want)
		}
	}
	if m.CostPerSession.StringFixed(6) != "0.009091" {
		t.Errorf("cost per session = %s, want 0.009091", m.CostPerSession.StringFixed(6))
	}
	if m.MarginRating != types.MarginAcceptable {
		t.Errorf("rating = %s, want acceptable", m.MarginRating)
	}
	if m.TopCostService != types.ServiceDatabase {
		t.Errorf("top cost = %s, want database", m.TopCostService)
	}
}

func TestComputeMetricsDivisionGuards(t *testing.T) {
	b := types.NewCostBreakdown(types.CurrencyUSD, types.ServiceCost{Service: types.ServiceNetwork, Monthly: dec("32.85")})

	tests := []struct {
		name     string
		agents   int
		sessions int64
		revenue  decimal.Decimal
	}{
		{"zero agents", 0, 100, dec("5")},
		{"zero sessions", 10, 0, dec("5")},
		{"zero revenue", 10, 100, decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeMetrics(b, tt.agents, tt.sessions, tt.revenue)
			if !errors.IsType(err, errors.TypeDivisionGuard) {
				t.Errorf("expected DivisionGuard, got %v", err)
			}
		})
	}

	if _, err := ComputeMetrics(b, 10, 100, dec("-1")); !errors.IsType(err, errors.TypeInvalidInput) {
		t.Errorf("negative revenue: expected InvalidInput, got %v", err)
	}
}

func TestRateMargin(t *testing.T) {
	tests := []struct {
		percent string
		want    types.MarginRating
	}{
		{"95", types.MarginExcellent},
		{"85", types.MarginExcellent},
		{"84.99", types.MarginAcceptable},
		{"70", types.MarginAcceptable},
		{"69.9", types.MarginLow},
		{"-20", types.MarginLow},
	}
	for _, tt := range tests {
		if got := RateMargin(dec(tt.percent)); got != tt.want {
			t.Errorf("RateMargin(%s) = %s, want %s", tt.percent, got, tt.want)
		}
	}
}
