// Package tier classifies a workload into a size tier and maps each tier
// to its default infrastructure. The mapping is data, not a switch.
package tier

import (
	"github.com/shopspring/decimal"

	"webtoq-cost/core/types"
	"webtoq-cost/internal/errors"
)

// Breakpoint is the inclusive upper agent count of a tier
type Breakpoint struct {
	MaxAgents int
	Tier      types.Tier
}

// Breakpoints are ascending; anything above the last one is enterprise
var Breakpoints = []Breakpoint{
	{MaxAgents: 20, Tier: types.TierMicro},
	{MaxAgents: 100, Tier: types.TierStarter},
	{MaxAgents: 500, Tier: types.TierSmall},
	{MaxAgents: 2000, Tier: types.TierMedium},
	{MaxAgents: 5000, Tier: types.TierLarge},
}

// Classify maps a workload to its tier. Only the agent count decides;
// requestsPerMonth is accepted so callers need not change if that rule ever does.
func Classify(agentCount int, requestsPerMonth int64) types.Tier {
	for _, bp := range Breakpoints {
		if agentCount <= bp.MaxAgents {
			return bp.Tier
		}
	}
	return types.TierEnterprise
}

// Profile is the default infrastructure for one tier
type Profile struct {
	Tier        types.Tier        `json:"tier"`
	AgentRange  string            `json:"agent_range"`
	Description string            `json:"description"`
	Infra       types.InfraConfig `json:"infra"`
}

func profile(t types.Tier, agents, desc, rds string, rdsMultiAZ bool, storageGB int,
	mode types.CacheMode, node string, cacheMultiAZ bool, ecpuMin, ecpuMax float64, hours int64) Profile {
	return Profile{
		Tier:        t,
		AgentRange:  agents,
		Description: desc,
		Infra: types.InfraConfig{
			Database: types.DatabaseConfig{Instance: rds, MultiAZ: rdsMultiAZ, StorageGB: storageGB},
			Cache: types.CacheConfig{
				Mode:              mode,
				Node:              node,
				Nodes:             1,
				MultiAZ:           cacheMultiAZ,
				ECPU:              types.NewECPURange(ecpuMin, ecpuMax),
				ActiveHoursPerDay: decimal.NewFromInt(hours),
			},
		},
	}
}

// Profiles is the tier to default-configuration table.
// Serverless tiers still carry a node type and provisioned tiers an ECPU range,
// used when an override switches cache mode.
var Profiles = map[types.Tier]Profile{
	types.TierMicro: profile(types.TierMicro, "5-20", "Pilot and early customers",
		"db.t4g.medium", false, 30, types.CacheServerless, "cache.r7g.large", false, 0.5, 2, 8),
	types.TierStarter: profile(types.TierStarter, "20-100", "Growing customer base",
		"db.t4g.medium", false, 50, types.CacheServerless, "cache.r7g.large", false, 1, 5, 8),
	types.TierSmall: profile(types.TierSmall, "100-500", "Established operation",
		"db.r6g.large", false, 100, types.CacheProvisioned, "cache.r7g.large", false, 5, 15, 16),
	types.TierMedium: profile(types.TierMedium, "500-2000", "Production with high availability",
		"db.r6g.large", true, 150, types.CacheProvisioned, "cache.r7g.large", true, 20, 40, 24),
	types.TierLarge: profile(types.TierLarge, "2000-5000", "Large production",
		"db.r6g.xlarge", true, 250, types.CacheProvisioned, "cache.r7g.xlarge", true, 30, 50, 24),
	types.TierEnterprise: profile(types.TierEnterprise, "5000+", "Enterprise scale",
		"db.r6g.2xlarge", true, 500, types.CacheProvisioned, "cache.r7g.2xlarge", true, 50, 100, 24),
}

// Lookup returns the profile of a tier
func Lookup(t types.Tier) (Profile, error) {
	p, ok := Profiles[t]
	if !ok {
		return Profile{}, errors.InvalidConfiguration("tier", t.String())
	}
	return p, nil
}

// DefaultInfra returns a copy of the default infrastructure for a tier
func DefaultInfra(t types.Tier) (types.InfraConfig, error) {
	p, err := Lookup(t)
	if err != nil {
		return types.InfraConfig{}, err
	}
	return p.Infra, nil
}

// All returns every profile in tier order
func All() []Profile {
	out := make([]Profile, 0, len(Profiles))
	for _, t := range types.Tiers() {
		if p, ok := Profiles[t]; ok {
			out = append(out, p)
		}
	}
	return out
}
