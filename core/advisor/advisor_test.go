package advisor

import (
	"testing"

	"github.com/shopspring/decimal"

	"webtoq-cost/core/cost"
	"webtoq-cost/core/pricing"
	"webtoq-cost/core/scenario"
	"webtoq-cost/core/types"
	"webtoq-cost/core/usage"
)

func setup(t *testing.T) (*cost.Estimator, *Advisor) {
	t.Helper()
	e := cost.NewEstimator(pricing.MustDefault(), usage.DefaultAssumptions(), decimal.Zero)
	return e, New(e, DefaultThresholds())
}

func estimate(t *testing.T, e *cost.Estimator, agents int, o types.Overrides) *cost.Estimate {
	t.Helper()
	est, err := e.Estimate(cost.Request{
		Workload:  types.WorkloadInput{AgentCount: agents, ClientsPerAgent: 4, WorkDaysPerMonth: 22, SessionDurationMinutes: 30},
		Overrides: o,
	})
	if err != nil {
		t.Fatal(err)
	}
	return est
}

func titles(recs []Recommendation) map[string]Recommendation {
	out := make(map[string]Recommendation, len(recs))
	for _, r := range recs {
		out[r.Title] = r
	}
	return out
}

func TestRecommendWebToQ(t *testing.T) {
	e, a := setup(t)
	s, _ := scenario.Default().Get("webtoq")
	est, err := s.Run(e)
	if err != nil {
		t.Fatal(err)
	}

	recs := a.Recommend(est)
	if recs[0].Kind != KindTier || recs[0].Title != "Medium tier (500-2000 agents)" {
		t.Errorf("first recommendation = %+v, want medium tier advice", recs[0])
	}

	got := titles(recs)
	for _, want := range []string{"Reserved database instances", "Batch email notifications", "Cache TTLs", "Monitor with Cost Explorer"} {
		if _, ok := got[want]; !ok {
			t.Errorf("missing recommendation %q", want)
		}
	}
	for _, unwanted := range []string{"Intelligent tiering for object storage", "Shorter log retention", "Tune function memory", "Burstable cache node"} {
		if _, ok := got[unwanted]; ok {
			t.Errorf("unexpected recommendation %q", unwanted)
		}
	}

	reserved := got["Reserved database instances"]
	if !reserved.Savings.Equal(decimal.RequireFromString("84.592")) {
		t.Errorf("reserved savings = %s, want 84.592", reserved.Savings)
	}
	if reserved.SavingsNote != "~40%" {
		t.Errorf("savings note = %q, want ~40%%", reserved.SavingsNote)
	}
}

func TestRecommendBurstableWarning(t *testing.T) {
	e, a := setup(t)
	s, _ := scenario.Default().Get("burstable")
	est, err := s.Run(e)
	if err != nil {
		t.Fatal(err)
	}

	got := titles(a.Recommend(est))
	w, ok := got["Burstable cache node"]
	if !ok {
		t.Fatal("burstable node should produce a warning")
	}
	if w.Kind != KindWarning {
		t.Errorf("kind = %s, want warning", w.Kind)
	}
}

func TestRecommendHighUsage(t *testing.T) {
	e, a := setup(t)
	got := titles(a.Recommend(estimate(t, e, 3000, types.Overrides{})))

	if _, ok := got["Intelligent tiering for object storage"]; !ok {
		t.Error("132GB of objects should suggest intelligent tiering")
	}
	if _, ok := got["Shorter log retention"]; !ok {
		t.Error("logging above $20 should suggest shorter retention")
	}
}

func TestRecommendMultiAZInDev(t *testing.T) {
	e, a := setup(t)
	est := estimate(t, e, 10, types.Overrides{DatabaseMultiAZ: types.Bool(true)})

	rec, ok := titles(a.Recommend(est))["Disable Multi-AZ in development"]
	if !ok {
		t.Fatal("Multi-AZ at micro tier should be flagged")
	}
	// (53.29 x 2 + 30 x 0.10) / 2
	if !rec.Savings.Equal(decimal.RequireFromString("54.79")) {
		t.Errorf("savings = %s, want 54.79", rec.Savings)
	}
}

func TestRecommendRightSizing(t *testing.T) {
	e, a := setup(t)

	oversized := estimate(t, e, 1000, types.Overrides{DatabaseInstance: "db.r6g.2xlarge"})
	if _, ok := titles(a.Recommend(oversized))["Right-size the database"]; !ok {
		t.Error("2xlarge at medium tier should be flagged")
	}

	enterprise := estimate(t, e, 6000, types.Overrides{})
	if _, ok := titles(a.Recommend(enterprise))["Right-size the database"]; ok {
		t.Error("2xlarge at enterprise tier is the default and should not be flagged")
	}
}

func TestCompareCacheModes(t *testing.T) {
	e, a := setup(t)

	tests := []struct {
		name        string
		est         *cost.Estimate
		current     types.CacheMode
		recommended types.CacheMode
	}{
		{"micro stays serverless", estimate(t, e, 10, types.Overrides{}), types.CacheServerless, types.CacheServerless},
		{"medium stays provisioned", estimate(t, e, 1000, types.Overrides{}), types.CacheProvisioned, types.CacheProvisioned},
		{"sustained serverless should provision", estimate(t, e, 1000, types.Overrides{CacheMode: types.CacheServerless}), types.CacheServerless, types.CacheProvisioned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmp, err := a.CompareCacheModes(tt.est)
			if err != nil {
				t.Fatal(err)
			}
			if cmp.Current != tt.current || cmp.Recommended != tt.recommended {
				t.Errorf("current/recommended = %s/%s, want %s/%s", cmp.Current, cmp.Recommended, tt.current, tt.recommended)
			}
			if cmp.Savings.IsNegative() {
				t.Errorf("savings = %s, want non-negative", cmp.Savings)
			}
			if tt.current == tt.recommended && !cmp.Savings.IsZero() {
				t.Errorf("no switch should mean no savings, got %s", cmp.Savings)
			}
		})
	}
}

func TestSwitchCacheRecommendation(t *testing.T) {
	e, a := setup(t)
	s, _ := scenario.Default().Get("medio")
	est, err := s.Run(e)
	if err != nil {
		t.Fatal(err)
	}

	rec, ok := titles(a.Recommend(est))["Switch cache to provisioned"]
	if !ok {
		t.Fatal("16h/day serverless at 5-15 ECPU should recommend a provisioned node")
	}
	cmp, _ := a.CompareCacheModes(est)
	if !rec.Savings.Equal(cmp.Savings) {
		t.Errorf("recommendation savings %s != comparison savings %s", rec.Savings, cmp.Savings)
	}
	if !Savings([]Recommendation{rec}).Equal(cmp.Savings) {
		t.Error("Savings() should sum quantified savings")
	}
}
