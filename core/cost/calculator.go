// Package cost prices a derived load against the rate table.
// Every service is an independent formula; the breakdown total is their exact sum.
package cost

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"webtoq-cost/core/pricing"
	"webtoq-cost/core/pricing/primitives"
	"webtoq-cost/core/tier"
	"webtoq-cost/core/types"
	"webtoq-cost/core/usage"
	"webtoq-cost/internal/errors"
)

// Inputs is everything a service formula may read
type Inputs struct {
	Tier        types.Tier
	Load        types.DerivedLoad
	Infra       types.InfraConfig
	Table       *pricing.Table
	Assumptions usage.Assumptions
}

// Formula prices one service
type Formula func(in *Inputs) (types.ServiceCost, error)

// Formulas holds one formula per service, in types.Services() order
var Formulas = []struct {
	Service types.Service
	Price   Formula
}{
	{types.ServiceCompute, computeCost},
	{types.ServiceGateway, gatewayCost},
	{types.ServiceDatabase, databaseCost},
	{types.ServiceCache, cacheCost},
	{types.ServiceNetwork, networkCost},
	{types.ServiceLogging, loggingCost},
	{types.ServiceEmail, emailCost},
	{types.ServiceObjectStorage, objectStorageCost},
	{types.ServiceNotification, notificationCost},
}

// Calculate prices every service and returns the full breakdown.
// It never returns a partial result.
func Calculate(t types.Tier, load types.DerivedLoad, infra types.InfraConfig, table *pricing.Table, a usage.Assumptions) (*types.CostBreakdown, error) {
	if table == nil {
		return nil, errors.New(errors.TypeInvalidConfiguration, "pricing table is required")
	}
	if _, err := tier.Lookup(t); err != nil {
		return nil, err
	}
	if err := load.Validate(); err != nil {
		return nil, err
	}
	if err := infra.Validate(); err != nil {
		return nil, err
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	in := &Inputs{Tier: t, Load: load, Infra: infra, Table: table, Assumptions: a}

	lines := make([]types.ServiceCost, 0, len(Formulas))
	for _, f := range Formulas {
		line, err := f.Price(in)
		if err != nil {
			return nil, err
		}
		if line.Monthly.IsNegative() {
			return nil, errors.Newf(errors.TypeInternal, "%s priced negative (%s)", f.Service, line.Monthly)
		}
		line.Service = f.Service
		line.Label = f.Service.Label()
		lines = append(lines, line)
	}

	return types.NewCostBreakdown(table.Currency(), lines...), nil
}

func computeCost(in *Inputs) (types.ServiceCost, error) {
	rates := in.Table.Compute()
	profile := in.Assumptions.Compute
	requests := in.Load.RequestsPerMonth

	gbSeconds := primitives.GBSeconds(requests, profile.MemoryMB, profile.DurationMS)
	invocations := primitives.PerMillion(requests, rates.PerMillionRequests)
	duration := primitives.Duration(gbSeconds, rates.PerGBSecond)

	return types.ServiceCost{
		Monthly:       invocations.Add(duration),
		Config:        fmt.Sprintf("%s, %s invocations", profile, humanize.Comma(requests)),
		Justification: "Serverless compute for API endpoints",
		Formula: fmt.Sprintf("%s req x $%s/M + %s GB-s x $%s",
			humanize.Comma(requests), rates.PerMillionRequests, gbSeconds.StringFixed(0), rates.PerGBSecond),
	}, nil
}

func gatewayCost(in *Inputs) (types.ServiceCost, error) {
	rates := in.Table.Gateway()
	mix := in.Assumptions.Gateway
	requests := in.Load.RequestsPerMonth

	calls := make([]int64, 3)
	for i, n := range []int{mix.REST, mix.HTTP, mix.WebSocket} {
		c, err := types.MulCount("gateway_requests", requests, int64(n))
		if err != nil {
			return types.ServiceCost{}, err
		}
		calls[i] = c
	}
	rest := primitives.PerMillion(calls[0], rates.RESTPerMillion)
	http := primitives.PerMillion(calls[1], rates.HTTPPerMillion)
	ws := primitives.PerMillion(calls[2], rates.WebSocketPerMillion)

	return types.ServiceCost{
		Monthly:       rest.Add(http).Add(ws),
		Config:        fmt.Sprintf("%d REST + %d HTTP + %d WebSocket APIs", mix.REST, mix.HTTP, mix.WebSocket),
		Justification: "Gateway for every API and WebSocket",
		Formula: fmt.Sprintf("%s req x (%d x $%s + %d x $%s + %d x $%s)/M",
			humanize.Comma(requests), mix.REST, rates.RESTPerMillion, mix.HTTP, rates.HTTPPerMillion, mix.WebSocket, rates.WebSocketPerMillion),
	}, nil
}

func databaseCost(in *Inputs) (types.ServiceCost, error) {
	db := in.Infra.Database
	rates := in.Table.Database()
	instance, err := in.Table.DatabaseInstance(db.Instance)
	if err != nil {
		return types.ServiceCost{}, err
	}

	storageGB := decimal.NewFromInt(int64(db.StorageGB))
	compute := primitives.NodeMonthly(instance.Monthly, 1, db.MultiAZ, rates.MultiAZMultiplier)
	storage := primitives.StorageGBMonth(storageGB, rates.StoragePerGBMonth)

	config := fmt.Sprintf("%s + %dGB storage", db.Instance, db.StorageGB)
	justification := "Primary relational database"
	multiplier := ""
	if db.MultiAZ {
		config = fmt.Sprintf("%s Multi-AZ + %dGB storage", db.Instance, db.StorageGB)
		justification = "High availability required"
		multiplier = fmt.Sprintf(" x %s", rates.MultiAZMultiplier)
	}

	return types.ServiceCost{
		Monthly:       compute.Add(storage),
		Config:        config,
		Justification: justification,
		Formula: fmt.Sprintf("$%s%s + %dGB x $%s",
			instance.Monthly, multiplier, db.StorageGB, rates.StoragePerGBMonth),
	}, nil
}

func cacheCost(in *Inputs) (types.ServiceCost, error) {
	c := in.Infra.Cache
	rates := in.Table.Cache()

	switch c.Mode {
	case types.CacheServerless:
		storageGB := in.Load.CacheStorageGB()
		hours := primitives.ActiveHoursPerMonth(c.ActiveHoursPerDay)
		storage := primitives.StorageGBHours(storageGB, rates.ServerlessStoragePerGBHour)
		ecpu := primitives.UnitHours(c.ECPU.Average(), hours, rates.ServerlessECPUPerHour)

		return types.ServiceCost{
			Monthly:       storage.Add(ecpu),
			Config:        fmt.Sprintf("Serverless %s ECPUs, %sh/day", c.ECPU, c.ActiveHoursPerDay),
			Justification: "Pay-per-use cache with automatic scaling",
			Formula: fmt.Sprintf("%sGB x $%s x 730h + %s ECPU x $%s x %sh",
				storageGB.StringFixed(3), rates.ServerlessStoragePerGBHour,
				c.ECPU.Average(), rates.ServerlessECPUPerHour, hours.StringFixed(1)),
		}, nil

	case types.CacheProvisioned:
		node, err := in.Table.CacheNode(c.Node)
		if err != nil {
			return types.ServiceCost{}, err
		}

		config := fmt.Sprintf("%d x %s", c.Nodes, c.Node)
		multiplier := ""
		if c.MultiAZ {
			config += " Multi-AZ"
			multiplier = fmt.Sprintf(" x %s", rates.MultiAZMultiplier)
		}
		justification := "High-performance production cache"
		if node.Burstable {
			justification = "Burstable node, may throttle under sustained load"
		}

		return types.ServiceCost{
			Monthly:       primitives.NodeMonthly(node.Monthly, c.Nodes, c.MultiAZ, rates.MultiAZMultiplier),
			Config:        config,
			Justification: justification,
			Formula:       fmt.Sprintf("$%s x %d%s", node.Monthly, c.Nodes, multiplier),
		}, nil
	}

	return types.ServiceCost{}, errors.InvalidInput("cache.mode", "unknown cache mode %q", c.Mode)
}

func networkCost(in *Inputs) (types.ServiceCost, error) {
	rates := in.Table.Network()
	return types.ServiceCost{
		Monthly:       rates.NATGatewayMonthly,
		Config:        "1 NAT Gateway",
		Justification: "Private network egress",
		Formula:       fmt.Sprintf("$%s flat", rates.NATGatewayMonthly),
	}, nil
}

func loggingCost(in *Inputs) (types.ServiceCost, error) {
	rates := in.Table.Logging()
	requests := in.Load.RequestsPerMonth
	usageCost := primitives.PerHundredThousand(requests, rates.Per100kRequests)

	return types.ServiceCost{
		Monthly:       primitives.Floor(usageCost, rates.MinimumMonthly),
		Config:        "Logs, metrics and alarms",
		Justification: "Monitoring and observability",
		Formula: fmt.Sprintf("max($%s, %s req / 100k x $%s)",
			rates.MinimumMonthly, humanize.Comma(requests), rates.Per100kRequests),
	}, nil
}

func emailCost(in *Inputs) (types.ServiceCost, error) {
	rates := in.Table.Email()
	emails, err := types.MulCount("emails_per_month", in.Load.SessionsPerMonth, in.Assumptions.EmailsPerSession)
	if err != nil {
		return types.ServiceCost{}, err
	}
	billable := primitives.Billable(emails, rates.FreePerMonth)

	return types.ServiceCost{
		Monthly:       primitives.FreeTierPerThousand(emails, rates.FreePerMonth, rates.PerThousand),
		Config:        fmt.Sprintf("%s emails/month", humanize.Comma(emails)),
		Justification: fmt.Sprintf("Email notifications (first %s free)", humanize.Comma(rates.FreePerMonth)),
		Formula:       fmt.Sprintf("%s billable / 1000 x $%s", humanize.Comma(billable), rates.PerThousand),
	}, nil
}

func objectStorageCost(in *Inputs) (types.ServiceCost, error) {
	rates := in.Table.ObjectStorage()
	a := in.Assumptions
	sessions := in.Load.SessionsPerMonth

	storageGB := ObjectStorageGB(in.Load, a)
	puts, err := types.MulCount("puts_per_month", sessions, a.PutsPerSession)
	if err != nil {
		return types.ServiceCost{}, err
	}
	gets, err := types.MulCount("gets_per_month", sessions, a.GetsPerSession)
	if err != nil {
		return types.ServiceCost{}, err
	}

	storage := primitives.StorageGBMonth(storageGB, rates.StoragePerGBMonth)
	putCost := primitives.PerThousand(puts, rates.PutPerThousand)
	getCost := primitives.PerThousand(gets, rates.GetPerThousand)

	return types.ServiceCost{
		Monthly:       storage.Add(putCost).Add(getCost),
		Config:        fmt.Sprintf("%sGB storage + requests", storageGB.StringFixed(2)),
		Justification: "Chat logs, attachments and backups",
		Formula: fmt.Sprintf("%sGB x $%s + %s PUT x $%s/1k + %s GET x $%s/1k",
			storageGB.StringFixed(2), rates.StoragePerGBMonth,
			humanize.Comma(puts), rates.PutPerThousand, humanize.Comma(gets), rates.GetPerThousand),
	}, nil
}

func notificationCost(in *Inputs) (types.ServiceCost, error) {
	rates := in.Table.Notification()
	messages, err := types.MulCount("notifications_per_month", in.Load.SessionsPerMonth, in.Assumptions.NotificationsPerSession)
	if err != nil {
		return types.ServiceCost{}, err
	}
	billable := primitives.Billable(messages, rates.FreePerMonth)

	return types.ServiceCost{
		Monthly:       primitives.FreeTierPerMillion(messages, rates.FreePerMonth, rates.PerMillion),
		Config:        fmt.Sprintf("%s messages/month", humanize.Comma(messages)),
		Justification: fmt.Sprintf("Push notifications (first %s free)", humanize.Comma(rates.FreePerMonth)),
		Formula:       fmt.Sprintf("%s billable / 1M x $%s", humanize.Comma(billable), rates.PerMillion),
	}, nil
}

// ObjectStorageGB returns the monthly object storage volume for a load
func ObjectStorageGB(load types.DerivedLoad, a usage.Assumptions) decimal.Decimal {
	return decimal.NewFromInt(load.SessionsPerMonth).Mul(a.ObjectGBPerSession)
}
