package cost

import (
	"testing"

	"github.com/shopspring/decimal"

	"webtoq-cost/core/types"
	"webtoq-cost/internal/errors"
)

func TestProjectScalingWithinTier(t *testing.T) {
	e := newTestEstimator()
	current := mustEstimate(t, e, Request{Workload: workload(1000)})

	p, err := e.ProjectScaling(current, dec("2"))
	if err != nil {
		t.Fatal(err)
	}

	if p.Projected.Workload().AgentCount != 2000 {
		t.Errorf("projected agents = %d, want 2000", p.Projected.Workload().AgentCount)
	}
	if p.Projected.Tier != types.TierMedium || p.TierChanged {
		t.Errorf("projected tier = %s, want medium unchanged", p.Projected.Tier)
	}
	if !p.Projected.Breakdown.Total.Equal(dec("852.4121568")) {
		t.Errorf("projected total = %s, want 852.4121568", p.Projected.Breakdown.Total)
	}
	if !p.CostPerAgentDecreases {
		t.Errorf("cost per agent should fall: %s -> %s", p.CostPerAgentBefore, p.CostPerAgentAfter)
	}
	if !p.MonthlyDelta.Equal(dec("57.9010784")) {
		t.Errorf("delta = %s, want 57.9010784", p.MonthlyDelta)
	}
}

func TestProjectScalingAcrossTier(t *testing.T) {
	e := newTestEstimator()
	current := mustEstimate(t, e, Request{Workload: workload(500)})
	if current.Tier != types.TierSmall {
		t.Fatalf("500 agents should be small, got %s", current.Tier)
	}
	if !current.Breakdown.Total.Equal(dec("413.6805392")) {
		t.Errorf("current total = %s, want 413.6805392", current.Breakdown.Total)
	}

	p, err := e.ProjectScaling(current, dec("1.1"))
	if err != nil {
		t.Fatal(err)
	}

	if p.Projected.Workload().AgentCount != 550 {
		t.Errorf("projected agents = %d, want 550", p.Projected.Workload().AgentCount)
	}
	if !p.TierChanged || p.Projected.Tier != types.TierMedium {
		t.Errorf("projected tier = %s, want medium", p.Projected.Tier)
	}
	if !p.Projected.Breakdown.Total.Equal(dec("768.61559312")) {
		t.Errorf("projected total = %s, want 768.61559312", p.Projected.Breakdown.Total)
	}
	if p.CostPerAgentDecreases {
		t.Errorf("cost per agent should rise across a tier step: %s -> %s", p.CostPerAgentBefore, p.CostPerAgentAfter)
	}
}

func TestProjectScalingDropsInfraOverrides(t *testing.T) {
	e := newTestEstimator()
	current := mustEstimate(t, e, Request{
		Workload:  workload(1000),
		Overrides: types.Overrides{DatabaseInstance: "db.r6g.2xlarge"},
	})

	p, err := e.ProjectScaling(current, dec("1.5"))
	if err != nil {
		t.Fatal(err)
	}
	if p.Projected.Infra.Database.Instance != "db.r6g.large" {
		t.Errorf("projected instance = %s, want tier default db.r6g.large", p.Projected.Infra.Database.Instance)
	}
}

func TestProjectedAgents(t *testing.T) {
	tests := []struct {
		agents int
		factor string
		want   int
	}{
		{1000, "2", 2000},
		{500, "1.1", 550},
		{3, "0.5", 2},
		{1, "0.1", 1},
		{10, "1.25", 13},
	}
	for _, tt := range tests {
		if got := ProjectedAgents(tt.agents, dec(tt.factor)); got != tt.want {
			t.Errorf("ProjectedAgents(%d, %s) = %d, want %d", tt.agents, tt.factor, got, tt.want)
		}
	}
}

func TestProjectScalingRejectsBadFactor(t *testing.T) {
	e := newTestEstimator()
	current := mustEstimate(t, e, Request{Workload: workload(100)})

	for _, f := range []decimal.Decimal{decimal.Zero, dec("-1")} {
		if _, err := e.ProjectScaling(current, f); !errors.IsType(err, errors.TypeInvalidInput) {
			t.Errorf("factor %s: expected InvalidInput, got %v", f, err)
		}
	}
	if _, err := e.ProjectScaling(nil, dec("2")); err == nil {
		t.Error("nil estimate should fail")
	}
}
