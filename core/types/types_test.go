package types

import (
	"encoding/json"
	"math"
	"testing"

	"webtoq-cost/internal/errors"
)

func TestMulCount(t *testing.T) {
	tests := []struct {
		name    string
		a, b    int64
		want    int64
		wantErr bool
	}{
		{"small", 88_000, 20, 1_760_000, false},
		{"zero", 0, math.MaxInt64, 0, false},
		{"max", math.MaxInt64, 1, math.MaxInt64, false},
		{"overflow", math.MaxInt64/2 + 1, 2, 0, true},
		{"wraps to positive", 1 << 40, 1 << 30, 0, true},
		{"negative", -1, 5, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MulCount("count", tt.a, tt.b)
			if tt.wantErr {
				if !errors.IsType(err, errors.TypeInvalidInput) {
					t.Fatalf("MulCount(%d, %d) error = %v, want InvalidInput", tt.a, tt.b, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("MulCount(%d, %d) failed: %v", tt.a, tt.b, err)
			}
			if got != tt.want {
				t.Errorf("MulCount(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestWorkloadBounds(t *testing.T) {
	ok := WorkloadInput{AgentCount: MaxAgentCount, ClientsPerAgent: MaxClientsPerAgent, WorkDaysPerMonth: MaxWorkDaysPerMonth, SessionDurationMinutes: MaxSessionDurationMinutes}
	if err := ok.Validate(); err != nil {
		t.Fatalf("workload at bounds rejected: %v", err)
	}

	over := []WorkloadInput{
		ok.WithAgents(MaxAgentCount + 1),
		{AgentCount: 1, ClientsPerAgent: MaxClientsPerAgent + 1, WorkDaysPerMonth: 22, SessionDurationMinutes: 30},
		{AgentCount: 1, ClientsPerAgent: 4, WorkDaysPerMonth: 32, SessionDurationMinutes: 30},
		{AgentCount: 1, ClientsPerAgent: 4, WorkDaysPerMonth: 22, SessionDurationMinutes: MaxSessionDurationMinutes + 1},
	}
	for _, w := range over {
		if err := w.Validate(); !errors.IsType(err, errors.TypeInvalidInput) {
			t.Errorf("Validate(%+v) = %v, want InvalidInput", w, err)
		}
	}
}

func TestParseCacheMode(t *testing.T) {
	tests := []struct {
		in   string
		want CacheMode
	}{
		{"serverless", CacheServerless},
		{"On-Demand", CacheServerless},
		{" provisioned ", CacheProvisioned},
		{"cluster", CacheProvisioned},
	}
	for _, tt := range tests {
		got, err := ParseCacheMode(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseCacheMode(%q) = %q, %v, want %q", tt.in, got, err, tt.want)
		}
	}

	if _, err := ParseCacheMode("redis"); !errors.IsType(err, errors.TypeInvalidInput) {
		t.Errorf("ParseCacheMode(redis) error = %v, want InvalidInput", err)
	}
}

func TestOverridesDecodeCacheModeAliases(t *testing.T) {
	var o Overrides
	if err := json.Unmarshal([]byte(`{"cache_mode": "cluster"}`), &o); err != nil {
		t.Fatal(err)
	}
	if o.CacheMode != CacheProvisioned {
		t.Errorf("CacheMode = %q, want provisioned", o.CacheMode)
	}

	o = Overrides{}
	if err := json.Unmarshal([]byte(`{"cache_mode": ""}`), &o); err != nil || o.CacheMode != "" {
		t.Errorf("empty cache_mode = %q, %v, want unset", o.CacheMode, err)
	}

	if err := json.Unmarshal([]byte(`{"cache_mode": "redis"}`), &o); err == nil {
		t.Error("unknown cache mode should fail to decode")
	}
}

func TestOverridesValidate(t *testing.T) {
	tests := []struct {
		name    string
		o       Overrides
		wantErr bool
	}{
		{"empty", Overrides{}, false},
		{"positive", Overrides{DatabaseStorageGB: 200, CacheNodes: 2, CacheMode: CacheProvisioned}, false},
		{"negative storage", Overrides{DatabaseStorageGB: -50}, true},
		{"negative nodes", Overrides{CacheNodes: -3}, true},
		{"unknown mode", Overrides{CacheMode: "redis"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.o.Validate()
			if tt.wantErr != (err != nil) {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.IsType(err, errors.TypeInvalidInput) {
				t.Errorf("Validate() = %v, want InvalidInput", err)
			}
		})
	}
}
