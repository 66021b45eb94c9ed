package tier

import (
	"testing"

	"webtoq-cost/core/pricing"
	"webtoq-cost/core/types"
	"webtoq-cost/internal/errors"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		agents int
		want   types.Tier
	}{
		{1, types.TierMicro},
		{10, types.TierMicro},
		{20, types.TierMicro},
		{21, types.TierStarter},
		{100, types.TierStarter},
		{101, types.TierSmall},
		{500, types.TierSmall},
		{501, types.TierMedium},
		{1000, types.TierMedium},
		{2000, types.TierMedium},
		{2001, types.TierLarge},
		{5000, types.TierLarge},
		{5001, types.TierEnterprise},
		{50000, types.TierEnterprise},
	}

	for _, tt := range tests {
		if got := Classify(tt.agents, 0); got != tt.want {
			t.Errorf("Classify(%d) = %s, want %s", tt.agents, got, tt.want)
		}
	}
}

func TestClassifyIsMonotonic(t *testing.T) {
	prev := types.TierMicro
	for agents := 1; agents <= 10000; agents++ {
		got := Classify(agents, int64(agents)*1760)
		if got < prev {
			t.Fatalf("tier decreased at %d agents: %s after %s", agents, got, prev)
		}
		prev = got
	}
}

func TestClassifyIgnoresRequests(t *testing.T) {
	if Classify(50, 0) != Classify(50, 1_000_000_000) {
		t.Error("request volume should not change the tier")
	}
}

func TestProfilesCoverEveryTier(t *testing.T) {
	table := pricing.MustDefault()

	for _, tr := range types.Tiers() {
		p, err := Lookup(tr)
		if err != nil {
			t.Fatalf("no profile for %s: %v", tr, err)
		}
		if p.Tier != tr {
			t.Errorf("profile for %s is labelled %s", tr, p.Tier)
		}
		if err := p.Infra.Validate(); err != nil {
			t.Errorf("profile %s is invalid: %v", tr, err)
		}
		if _, err := table.DatabaseInstance(p.Infra.Database.Instance); err != nil {
			t.Errorf("profile %s: %v", tr, err)
		}
		if _, err := table.CacheNode(p.Infra.Cache.Node); err != nil {
			t.Errorf("profile %s: %v", tr, err)
		}
	}

	if len(All()) != len(types.Tiers()) {
		t.Errorf("All() returned %d profiles, want %d", len(All()), len(types.Tiers()))
	}
}

func TestCacheModeRule(t *testing.T) {
	for _, tr := range types.Tiers() {
		infra, err := DefaultInfra(tr)
		if err != nil {
			t.Fatal(err)
		}
		want := types.CacheProvisioned
		if tr < types.TierSmall {
			want = types.CacheServerless
		}
		if infra.Cache.Mode != want {
			t.Errorf("%s cache mode = %s, want %s", tr, infra.Cache.Mode, want)
		}
	}
}

func TestDefaultInfraReturnsCopy(t *testing.T) {
	infra, _ := DefaultInfra(types.TierMedium)
	infra.Database.Instance = "db.changed"

	again, _ := DefaultInfra(types.TierMedium)
	if again.Database.Instance != "db.r6g.large" {
		t.Errorf("profile table was mutated: %s", again.Database.Instance)
	}
}

func TestLookupUnknownTier(t *testing.T) {
	if _, err := Lookup(types.Tier(42)); !errors.IsType(err, errors.TypeInvalidConfiguration) {
		t.Errorf("expected InvalidConfiguration, got %v", err)
	}
}
