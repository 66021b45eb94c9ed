// Package scenario - HCL scenario files
package scenario

import (
	"os"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/shopspring/decimal"

	"webtoq-cost/core/types"
	"webtoq-cost/core/usage"
	"webtoq-cost/internal/errors"
)

// scenarioFile is the HCL schema:
//
//	scenario "pilot" {
//	  agents            = 40
//	  clients_per_agent = 3
//	  work_days         = 20
//	  session_minutes   = 25
//
//	  database { instance = "db.t4g.medium" }
//	  cache    { mode = "serverless" ecpu_min = 1 ecpu_max = 3 active_hours = 10 }
//	}
type scenarioFile struct {
	Scenarios []scenarioBlock `hcl:"scenario,block"`
}

type scenarioBlock struct {
	Name            string         `hcl:"name,label"`
	Title           string         `hcl:"title,optional"`
	Description     string         `hcl:"description,optional"`
	Warning         string         `hcl:"warning,optional"`
	Agents          int            `hcl:"agents"`
	ClientsPerAgent int            `hcl:"clients_per_agent"`
	WorkDays        int            `hcl:"work_days"`
	SessionMinutes  int            `hcl:"session_minutes"`
	Compute         *computeBlock  `hcl:"compute,block"`
	Database        *databaseBlock `hcl:"database,block"`
	Cache           *cacheBlock    `hcl:"cache,block"`
}

type computeBlock struct {
	MemoryMB   int `hcl:"memory_mb"`
	DurationMS int `hcl:"duration_ms"`
}

type databaseBlock struct {
	Instance  string `hcl:"instance,optional"`
	MultiAZ   *bool  `hcl:"multi_az,optional"`
	StorageGB int    `hcl:"storage_gb,optional"`
}

type cacheBlock struct {
	Mode        string   `hcl:"mode,optional"`
	Node        string   `hcl:"node,optional"`
	Nodes       int      `hcl:"nodes,optional"`
	MultiAZ     *bool    `hcl:"multi_az,optional"`
	ECPUMin     *float64 `hcl:"ecpu_min,optional"`
	ECPUMax     *float64 `hcl:"ecpu_max,optional"`
	ActiveHours *float64 `hcl:"active_hours,optional"`
}

// ParseFile decodes scenarios from HCL source. The filename must end in .hcl.
func ParseFile(filename string, src []byte) ([]Scenario, error) {
	var f scenarioFile
	if err := hclsimple.Decode(filename, src, nil, &f); err != nil {
		return nil, errors.Parsing("invalid scenario file", err).WithContext("file", filename)
	}

	out := make([]Scenario, 0, len(f.Scenarios))
	for _, b := range f.Scenarios {
		s, err := b.scenario()
		if err != nil {
			return nil, errors.Wrapf(errors.TypeInvalidInput, err, "scenario %s in %s", b.Name, filename)
		}
		out = append(out, s)
	}
	return out, nil
}

// LoadFile reads a scenario file and registers every scenario in it
func (r *Registry) LoadFile(path string) ([]Scenario, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Config("failed to read scenario file", err).WithContext("path", path)
	}
	scenarios, err := ParseFile(path, src)
	if err != nil {
		return nil, err
	}
	for _, s := range scenarios {
		if err := r.Register(s); err != nil {
			return nil, err
		}
	}
	return scenarios, nil
}

func (b scenarioBlock) scenario() (Scenario, error) {
	s := Scenario{
		Name:        b.Name,
		Title:       b.Title,
		Description: b.Description,
		Warning:     b.Warning,
		Workload: types.WorkloadInput{
			AgentCount:             b.Agents,
			ClientsPerAgent:        b.ClientsPerAgent,
			WorkDaysPerMonth:       b.WorkDays,
			SessionDurationMinutes: b.SessionMinutes,
		},
	}
	if s.Title == "" {
		s.Title = b.Name
	}
	if b.Compute != nil {
		s.Compute = &usage.ComputeProfile{MemoryMB: b.Compute.MemoryMB, DurationMS: b.Compute.DurationMS}
	}

	if db := b.Database; db != nil {
		s.Overrides.DatabaseInstance = db.Instance
		s.Overrides.DatabaseMultiAZ = db.MultiAZ
		if db.StorageGB < 0 {
			return Scenario{}, errors.InvalidInput("database.storage_gb", "storage cannot be negative")
		}
		s.Overrides.DatabaseStorageGB = db.StorageGB
	}

	if c := b.Cache; c != nil {
		if c.Mode != "" {
			mode, err := types.ParseCacheMode(c.Mode)
			if err != nil {
				return Scenario{}, errors.InvalidInput("cache.mode", "%v", err)
			}
			s.Overrides.CacheMode = mode
		}
		s.Overrides.CacheNode = c.Node
		s.Overrides.CacheNodes = c.Nodes
		s.Overrides.CacheMultiAZ = c.MultiAZ
		if c.ECPUMin != nil || c.ECPUMax != nil {
			if c.ECPUMin == nil || c.ECPUMax == nil {
				return Scenario{}, errors.InvalidInput("cache.ecpu", "ecpu_min and ecpu_max must be set together")
			}
			r := types.NewECPURange(*c.ECPUMin, *c.ECPUMax)
			s.Overrides.ECPU = &r
		}
		if c.ActiveHours != nil {
			h := decimal.NewFromFloat(*c.ActiveHours)
			s.Overrides.ActiveHoursPerDay = &h
		}
	}

	return s, s.Workload.Validate()
}
