// Package cmd - estimate command
package cmd

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"webtoq-cost/core/cost"
	"webtoq-cost/core/output"
	"webtoq-cost/core/types"
	"webtoq-cost/core/usage"
	"webtoq-cost/internal/config"
	"webtoq-cost/internal/errors"
)

// estimateOptions holds every estimate flag
type estimateOptions struct {
	agents   int
	clients  int
	days     int
	duration int

	rdsInstance string
	rdsMultiAZ  bool
	rdsStorage  int

	cacheMode    string
	cacheNode    string
	cacheNodes   int
	cacheMultiAZ bool
	ecpuMin      float64
	ecpuMax      float64
	activeHours  float64

	memoryMB   int
	durationMS int
	revenue    float64

	format       string
	project      float64
	compareCache bool
}

var estimateOpts estimateOptions

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate monthly costs for a workload",
	Long: `Derive load from the workload, pick a tier and price every service.

Infrastructure flags override the tier defaults; anything left unset keeps
the default for the inferred tier.

Examples:
  webtoq-cost estimate --agents 1000
  webtoq-cost estimate --agents 250 --clients 6 --duration 45
  webtoq-cost estimate --agents 1000 --cache-mode provisioned --cache-node cache.r7g.large --cache-nodes 2
  webtoq-cost estimate --agents 1000 --project 2 --format json`,
	Args: cobra.NoArgs,
	RunE: runEstimate,
}

func init() {
	estimateOpts.bind(estimateCmd)
	_ = estimateCmd.MarkFlagRequired("agents")
}

// bind registers the estimate flags on cmd
func (o *estimateOptions) bind(cmd *cobra.Command) {
	f := cmd.Flags()

	f.IntVarP(&o.agents, "agents", "a", 0, "number of agents (required)")
	f.IntVar(&o.clients, "clients", 4, "clients served per agent per day")
	f.IntVar(&o.days, "days", 22, "work days per month")
	f.IntVar(&o.duration, "duration", 30, "average session length in minutes")

	f.StringVar(&o.rdsInstance, "rds-instance", "", "database instance class, e.g. db.r6g.large")
	f.BoolVar(&o.rdsMultiAZ, "rds-multi-az", false, "run the database Multi-AZ")
	f.IntVar(&o.rdsStorage, "rds-storage", 0, "database storage in GB")

	f.StringVar(&o.cacheMode, "cache-mode", "", "cache mode: serverless or provisioned")
	f.StringVar(&o.cacheNode, "cache-node", "", "provisioned cache node type, e.g. cache.r7g.large")
	f.IntVar(&o.cacheNodes, "cache-nodes", 0, "provisioned cache node count")
	f.BoolVar(&o.cacheMultiAZ, "cache-multi-az", false, "run the provisioned cache Multi-AZ")
	f.Float64Var(&o.ecpuMin, "ecpu-min", 0, "serverless cache minimum ECPUs (with --ecpu-max)")
	f.Float64Var(&o.ecpuMax, "ecpu-max", 0, "serverless cache maximum ECPUs (with --ecpu-min)")
	f.Float64Var(&o.activeHours, "active-hours", 0, "serverless cache active hours per day")

	f.IntVar(&o.memoryMB, "memory", 0, "function memory in MB")
	f.IntVar(&o.durationMS, "duration-ms", 0, "function duration in ms")
	f.Float64Var(&o.revenue, "revenue", 0, "monthly revenue per agent")

	f.StringVarP(&o.format, "format", "f", "", "output format (cli, json, csv)")
	f.Float64Var(&o.project, "project", 0, "also project costs with agents scaled by this factor")
	f.BoolVar(&o.compareCache, "compare-cache", false, "compare serverless and provisioned cache costs")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	req, err := estimateOpts.request(cmd)
	if err != nil {
		return err
	}
	opts, err := estimateOpts.reportOptions(cmd)
	if err != nil {
		return err
	}

	builder, err := newBuilder()
	if err != nil {
		return err
	}
	report, err := builder.Build(req, opts)
	if err != nil {
		return err
	}
	return render(cmd, report, estimateOpts.format)
}

// request converts flags into an estimator request. Only flags the user set become overrides.
func (o *estimateOptions) request(cmd *cobra.Command) (cost.Request, error) {
	changed := cmd.Flags().Changed

	req := cost.Request{
		Workload: types.WorkloadInput{
			AgentCount:             o.agents,
			ClientsPerAgent:        o.clients,
			WorkDaysPerMonth:       o.days,
			SessionDurationMinutes: o.duration,
		},
		Overrides: types.Overrides{
			DatabaseInstance:  o.rdsInstance,
			DatabaseStorageGB: o.rdsStorage,
			CacheNode:         o.cacheNode,
			CacheNodes:        o.cacheNodes,
		},
	}
	if err := req.Workload.Validate(); err != nil {
		return cost.Request{}, err
	}

	ov := &req.Overrides
	if changed("rds-multi-az") {
		ov.DatabaseMultiAZ = types.Bool(o.rdsMultiAZ)
	}
	if changed("cache-multi-az") {
		ov.CacheMultiAZ = types.Bool(o.cacheMultiAZ)
	}
	if o.cacheMode != "" {
		mode, err := types.ParseCacheMode(o.cacheMode)
		if err != nil {
			return cost.Request{}, err
		}
		ov.CacheMode = mode
	}
	if changed("ecpu-min") != changed("ecpu-max") {
		return cost.Request{}, errors.InvalidInput("ecpu", "--ecpu-min and --ecpu-max must be set together")
	}
	if changed("ecpu-min") {
		r := types.NewECPURange(o.ecpuMin, o.ecpuMax)
		ov.ECPU = &r
	}
	if changed("active-hours") {
		h := decimal.NewFromFloat(o.activeHours)
		ov.ActiveHoursPerDay = &h
	}

	if changed("memory") || changed("duration-ms") {
		defaults := config.Get().Estimator
		profile := usage.ComputeProfile{MemoryMB: defaults.FunctionMemoryMB, DurationMS: defaults.FunctionDurationMS}
		if changed("memory") {
			profile.MemoryMB = o.memoryMB
		}
		if changed("duration-ms") {
			profile.DurationMS = o.durationMS
		}
		req.Compute = &profile
	}
	if changed("revenue") {
		rev := decimal.NewFromFloat(o.revenue)
		req.RevenuePerAgent = &rev
	}
	if err := req.Overrides.Validate(); err != nil {
		return cost.Request{}, err
	}
	return req, nil
}

func (o *estimateOptions) reportOptions(cmd *cobra.Command) (output.ReportOptions, error) {
	opts := output.ReportOptions{CompareCache: o.compareCache}
	if cmd.Flags().Changed("project") {
		if o.project <= 0 {
			return opts, errors.InvalidInput("project", "growth factor must be positive, got %v", o.project)
		}
		g := decimal.NewFromFloat(o.project)
		opts.ProjectGrowth = &g
	}
	return opts, nil
}
