// Package scenario provides named, reproducible estimation presets.
// A scenario is a workload plus explicit infrastructure choices; running it
// goes through the same estimator as any ad-hoc request.
package scenario

import (
	"github.com/shopspring/decimal"

	"webtoq-cost/core/cost"
	"webtoq-cost/core/types"
	"webtoq-cost/core/usage"
)

// Scenario is a named estimation preset
type Scenario struct {
	Name        string                `json:"name"`
	Title       string                `json:"title"`
	Description string                `json:"description,omitempty"`
	Workload    types.WorkloadInput   `json:"workload"`
	Compute     *usage.ComputeProfile `json:"compute,omitempty"`
	Overrides   types.Overrides       `json:"overrides"`
	Warning     string                `json:"warning,omitempty"`
}

// Request converts the scenario into an estimator request
func (s Scenario) Request() cost.Request {
	req := cost.Request{
		Workload:  s.Workload,
		Overrides: s.Overrides,
	}
	if s.Compute != nil {
		c := *s.Compute
		req.Compute = &c
	}
	return req
}

// Run estimates the scenario
func (s Scenario) Run(e *cost.Estimator) (*cost.Estimate, error) {
	return e.Estimate(s.Request())
}

// Pin returns overrides that fix every infrastructure choice to infra
func Pin(infra types.InfraConfig) types.Overrides {
	ecpu := infra.Cache.ECPU
	hours := infra.Cache.ActiveHoursPerDay
	return types.Overrides{
		DatabaseInstance:  infra.Database.Instance,
		DatabaseMultiAZ:   types.Bool(infra.Database.MultiAZ),
		DatabaseStorageGB: infra.Database.StorageGB,
		CacheMode:         infra.Cache.Mode,
		CacheNode:         infra.Cache.Node,
		CacheNodes:        infra.Cache.Nodes,
		CacheMultiAZ:      types.Bool(infra.Cache.MultiAZ),
		ECPU:              &ecpu,
		ActiveHoursPerDay: &hours,
	}
}

func standardWorkload(agents int) types.WorkloadInput {
	return types.WorkloadInput{
		AgentCount:             agents,
		ClientsPerAgent:        4,
		WorkDaysPerMonth:       22,
		SessionDurationMinutes: 30,
	}
}

func serverless(instance string, multiAZ bool, storageGB int, ecpuMin, ecpuMax float64, hours int64) types.InfraConfig {
	return types.InfraConfig{
		Database: types.DatabaseConfig{Instance: instance, MultiAZ: multiAZ, StorageGB: storageGB},
		Cache: types.CacheConfig{
			Mode:              types.CacheServerless,
			ECPU:              types.NewECPURange(ecpuMin, ecpuMax),
			ActiveHoursPerDay: decimal.NewFromInt(hours),
		},
	}
}

func provisioned(instance string, multiAZ bool, storageGB int, node string, nodes int, cacheMultiAZ bool) types.InfraConfig {
	return types.InfraConfig{
		Database: types.DatabaseConfig{Instance: instance, MultiAZ: multiAZ, StorageGB: storageGB},
		Cache: types.CacheConfig{
			Mode:              types.CacheProvisioned,
			Node:              node,
			Nodes:             nodes,
			MultiAZ:           cacheMultiAZ,
			ECPU:              types.NewECPURange(30, 50),
			ActiveHoursPerDay: decimal.NewFromInt(24),
		},
	}
}

// BurstableWarning describes how a burstable cache node behaves under sustained load
const BurstableWarning = "cache.t4g.medium runs at a 20% CPU baseline: ~100 launch credits drain " +
	"in about 4 hours of steady traffic, after which latency climbs from 1-5ms to 200-500ms " +
	"for the rest of the day. Not suitable for production."

// Presets returns the built-in scenarios in display order
func Presets() []Scenario {
	return []Scenario{
		{
			Name:        "base",
			Title:       "Base usage",
			Description: "Development and pilot environment",
			Workload:    standardWorkload(10),
			Compute:     &usage.ComputeProfile{MemoryMB: 256, DurationMS: 300},
			Overrides:   Pin(serverless("db.t4g.medium", false, 50, 1, 5, 8)),
		},
		{
			Name:        "medio",
			Title:       "Medium usage",
			Description: "Staging or early production",
			Workload:    standardWorkload(200),
			Compute:     &usage.ComputeProfile{MemoryMB: 512, DurationMS: 400},
			Overrides:   Pin(serverless("db.r6g.large", false, 100, 5, 15, 16)),
		},
		{
			Name:        "alto",
			Title:       "High usage",
			Description: "Production with high availability",
			Workload:    standardWorkload(3000),
			Compute:     &usage.ComputeProfile{MemoryMB: 512, DurationMS: 500},
			Overrides:   Pin(serverless("db.r6g.xlarge", true, 200, 30, 50, 24)),
		},
		{
			Name:        "webtoq",
			Title:       "WebToQ projection",
			Description: "1,000 agents x 4 clients/day, sustained 24/7 load on a provisioned cluster",
			Workload:    standardWorkload(1000),
			Compute:     &usage.ComputeProfile{MemoryMB: 512, DurationMS: 450},
			Overrides:   Pin(provisioned("db.r6g.large", false, 100, "cache.r7g.large", 2, false)),
		},
		{
			Name:        "burstable",
			Title:       "Burstable (t4g)",
			Description: "Economy burstable cache node, not recommended",
			Workload:    standardWorkload(1000),
			Compute:     &usage.ComputeProfile{MemoryMB: 512, DurationMS: 450},
			Overrides:   Pin(provisioned("db.r6g.large", false, 100, "cache.t4g.medium", 1, false)),
			Warning:     BurstableWarning,
		},
	}
}
