package usage

import (
	"math"
	"testing"

	"webtoq-cost/core/types"
	"webtoq-cost/internal/errors"
)

func TestEstimateLoad(t *testing.T) {
	tests := []struct {
		name  string
		input types.WorkloadInput
		want  types.DerivedLoad
	}{
		{
			name:  "webtoq production",
			input: types.WorkloadInput{AgentCount: 1000, ClientsPerAgent: 4, WorkDaysPerMonth: 22, SessionDurationMinutes: 30},
			want: types.DerivedLoad{
				SessionsPerMonth:          88_000,
				SessionsPerDay:            4_000,
				RequestsPerSession:        20,
				RequestsPerMonth:          1_760_000,
				ConcurrentPeakConnections: 350,
				CacheStorageMB:            34,
			},
		},
		{
			name:  "long sessions exceed the floor",
			input: types.WorkloadInput{AgentCount: 100, ClientsPerAgent: 5, WorkDaysPerMonth: 20, SessionDurationMinutes: 60},
			want: types.DerivedLoad{
				SessionsPerMonth:          10_000,
				SessionsPerDay:            500,
				RequestsPerSession:        30,
				RequestsPerMonth:          300_000,
				ConcurrentPeakConnections: 35,
				CacheStorageMB:            3,
			},
		},
		{
			name:  "tiny team",
			input: types.WorkloadInput{AgentCount: 10, ClientsPerAgent: 4, WorkDaysPerMonth: 22, SessionDurationMinutes: 30},
			want: types.DerivedLoad{
				SessionsPerMonth:          880,
				SessionsPerDay:            40,
				RequestsPerSession:        20,
				RequestsPerMonth:          17_600,
				ConcurrentPeakConnections: 4,
				CacheStorageMB:            0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EstimateLoad(tt.input, DefaultAssumptions())
			if err != nil {
				t.Fatalf("EstimateLoad() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("EstimateLoad() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEstimateLoadRejectsInvalidInput(t *testing.T) {
	inputs := []types.WorkloadInput{
		{AgentCount: 0, ClientsPerAgent: 4, WorkDaysPerMonth: 22, SessionDurationMinutes: 30},
		{AgentCount: 10, ClientsPerAgent: -1, WorkDaysPerMonth: 22, SessionDurationMinutes: 30},
		{AgentCount: 10, ClientsPerAgent: 4, WorkDaysPerMonth: 0, SessionDurationMinutes: 30},
		{AgentCount: 10, ClientsPerAgent: 4, WorkDaysPerMonth: 32, SessionDurationMinutes: 30},
		{AgentCount: 10, ClientsPerAgent: 4, WorkDaysPerMonth: 22, SessionDurationMinutes: 0},
		{AgentCount: 1000, ClientsPerAgent: 1 << 40, WorkDaysPerMonth: 22, SessionDurationMinutes: 1 << 30},
		{AgentCount: 3_000_000_000, ClientsPerAgent: 3_000_000_000, WorkDaysPerMonth: 22, SessionDurationMinutes: 30},
		{AgentCount: types.MaxAgentCount + 1, ClientsPerAgent: 4, WorkDaysPerMonth: 22, SessionDurationMinutes: 30},
		{AgentCount: 10, ClientsPerAgent: 4, WorkDaysPerMonth: 22, SessionDurationMinutes: 1441},
	}

	for _, in := range inputs {
		if _, err := EstimateLoad(in, DefaultAssumptions()); !errors.IsType(err, errors.TypeInvalidInput) {
			t.Errorf("EstimateLoad(%+v) error = %v, want InvalidInput", in, err)
		}
	}
}

func TestEstimateLoadRejectsInvalidAssumptions(t *testing.T) {
	a := DefaultAssumptions()
	a.MinutesPerRequest = 0

	in := types.WorkloadInput{AgentCount: 10, ClientsPerAgent: 4, WorkDaysPerMonth: 22, SessionDurationMinutes: 30}
	if _, err := EstimateLoad(in, a); !errors.IsType(err, errors.TypeInvalidInput) {
		t.Errorf("expected InvalidInput, got %v", err)
	}
}

func TestEstimateLoadAtUpperBounds(t *testing.T) {
	in := types.WorkloadInput{
		AgentCount:             types.MaxAgentCount,
		ClientsPerAgent:        types.MaxClientsPerAgent,
		WorkDaysPerMonth:       types.MaxWorkDaysPerMonth,
		SessionDurationMinutes: types.MaxSessionDurationMinutes,
	}
	load, err := EstimateLoad(in, DefaultAssumptions())
	if err != nil {
		t.Fatalf("EstimateLoad at bounds failed: %v", err)
	}
	if load.SessionsPerMonth != 31_000_000_000_000 {
		t.Errorf("SessionsPerMonth = %d, want 31000000000000", load.SessionsPerMonth)
	}
	if load.RequestsPerMonth != load.SessionsPerMonth*load.RequestsPerSession {
		t.Errorf("RequestsPerMonth = %d, want %d x %d", load.RequestsPerMonth, load.SessionsPerMonth, load.RequestsPerSession)
	}
}

func TestEstimateLoadRejectsOverflowingAssumptions(t *testing.T) {
	a := DefaultAssumptions()
	a.MinRequestsPerSession = math.MaxInt64 / 2

	in := types.WorkloadInput{AgentCount: 10, ClientsPerAgent: 4, WorkDaysPerMonth: 22, SessionDurationMinutes: 30}
	if _, err := EstimateLoad(in, a); !errors.IsType(err, errors.TypeInvalidInput) {
		t.Errorf("expected InvalidInput, got %v", err)
	}
}

func TestEstimateLoadIsMonotonicInAgents(t *testing.T) {
	prev := types.DerivedLoad{}
	for agents := 1; agents <= 6000; agents += 37 {
		in := types.WorkloadInput{AgentCount: agents, ClientsPerAgent: 4, WorkDaysPerMonth: 22, SessionDurationMinutes: 30}
		load, err := EstimateLoad(in, DefaultAssumptions())
		if err != nil {
			t.Fatal(err)
		}
		if load.RequestsPerMonth < prev.RequestsPerMonth || load.CacheStorageMB < prev.CacheStorageMB {
			t.Fatalf("load decreased at %d agents: %+v after %+v", agents, load, prev)
		}
		prev = load
	}
}

func TestDescribeListsEveryAssumption(t *testing.T) {
	described := DefaultAssumptions().Describe()
	if len(described) != 13 {
		t.Errorf("Describe() returned %d assumptions, want 13", len(described))
	}
	for _, a := range described {
		if a.Component == "" || a.Attribute == "" || a.Value == "" {
			t.Errorf("incomplete assumption %+v", a)
		}
	}
}
