// Package pricing - HCL rate card loading
package pricing

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/shopspring/decimal"

	"webtoq-cost/core/types"
	"webtoq-cost/internal/errors"
)

// DefaultRateCard is the embedded rate card used when no --pricing file is given
const DefaultRateCard = "rates/aws-us-east-1-2025-11.hcl"

//go:embed rates/*.hcl
var rateCards embed.FS

var (
	defaultOnce  sync.Once
	defaultTable *Table
	defaultErr   error
)

// Default returns the embedded rate card, decoded once
func Default() (*Table, error) {
	defaultOnce.Do(func() {
		src, err := rateCards.ReadFile(DefaultRateCard)
		if err != nil {
			defaultErr = errors.Internal("embedded rate card missing", err)
			return
		}
		defaultTable, defaultErr = Parse(filepath.Base(DefaultRateCard), src)
	})
	return defaultTable, defaultErr
}

// MustDefault is Default for tests and package-level wiring
func MustDefault() *Table {
	t, err := Default()
	if err != nil {
		panic(err)
	}
	return t
}

// LoadFile decodes a rate card from disk
func LoadFile(path string) (*Table, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Config("failed to read rate card", err).WithContext("path", path)
	}
	return Parse(path, src)
}

// Load returns the rate card at path, or the embedded default when path is empty
func Load(path string) (*Table, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// Parse decodes an HCL rate card. The filename must end in .hcl.
func Parse(filename string, src []byte) (*Table, error) {
	var f rateCardFile
	if err := hclsimple.Decode(filename, src, nil, &f); err != nil {
		return nil, errors.Parsing("invalid rate card", err).WithContext("file", filename)
	}
	return f.build(filename)
}

type rateCardFile struct {
	Snapshot      snapshotBlock      `hcl:"snapshot,block"`
	Database      databaseBlock      `hcl:"database,block"`
	Cache         cacheBlock         `hcl:"cache,block"`
	Compute       computeBlock       `hcl:"compute,block"`
	Gateway       gatewayBlock       `hcl:"gateway,block"`
	Network       networkBlock       `hcl:"network,block"`
	Logging       loggingBlock       `hcl:"logging,block"`
	Email         emailBlock         `hcl:"email,block"`
	ObjectStorage objectStorageBlock `hcl:"object_storage,block"`
	Notification  notificationBlock  `hcl:"notification,block"`
}

type snapshotBlock struct {
	Provider  string `hcl:"provider"`
	Region    string `hcl:"region"`
	Effective string `hcl:"effective"`
	Currency  string `hcl:"currency,optional"`
	Source    string `hcl:"source,optional"`
}

type databaseBlock struct {
	StoragePerGBMonth float64         `hcl:"storage_per_gb_month"`
	MultiAZMultiplier float64         `hcl:"multi_az_multiplier"`
	Instances         []instanceBlock `hcl:"instance,block"`
}

type instanceBlock struct {
	Class    string  `hcl:"class,label"`
	Monthly  float64 `hcl:"monthly"`
	VCPU     int     `hcl:"vcpu,optional"`
	MemoryGB float64 `hcl:"memory_gb,optional"`
	Label    string  `hcl:"label,optional"`
}

type cacheBlock struct {
	MultiAZMultiplier float64         `hcl:"multi_az_multiplier"`
	Serverless        serverlessBlock `hcl:"serverless,block"`
	Nodes             []nodeBlock     `hcl:"node,block"`
}

type serverlessBlock struct {
	StoragePerGBHour float64 `hcl:"storage_per_gb_hour"`
	ECPUPerHour      float64 `hcl:"ecpu_per_hour"`
}

type nodeBlock struct {
	Type      string  `hcl:"type,label"`
	Monthly   float64 `hcl:"monthly"`
	MemoryGB  float64 `hcl:"memory_gb,optional"`
	Burstable bool    `hcl:"burstable,optional"`
	Label     string  `hcl:"label,optional"`
}

type computeBlock struct {
	PerMillionRequests float64 `hcl:"per_million_requests"`
	PerGBSecond        float64 `hcl:"per_gb_second"`
}

type gatewayBlock struct {
	RESTPerMillion      float64 `hcl:"rest_per_million"`
	HTTPPerMillion      float64 `hcl:"http_per_million"`
	WebSocketPerMillion float64 `hcl:"websocket_per_million"`
}

type networkBlock struct {
	NATGatewayMonthly float64 `hcl:"nat_gateway_monthly"`
}

type loggingBlock struct {
	MinimumMonthly  float64 `hcl:"minimum_monthly"`
	Per100kRequests float64 `hcl:"per_100k_requests"`
}

type emailBlock struct {
	FreePerMonth int64   `hcl:"free_per_month"`
	PerThousand  float64 `hcl:"per_thousand"`
}

type objectStorageBlock struct {
	StoragePerGBMonth float64 `hcl:"storage_per_gb_month"`
	PutPerThousand    float64 `hcl:"put_per_thousand"`
	GetPerThousand    float64 `hcl:"get_per_thousand"`
}

type notificationBlock struct {
	FreePerMonth int64   `hcl:"free_per_month"`
	PerMillion   float64 `hcl:"per_million"`
}

// rateChecker collects the first invalid rate while converting floats
type rateChecker struct {
	file string
	err  error
}

func (c *rateChecker) rate(name string, v float64) decimal.Decimal {
	if v < 0 && c.err == nil {
		c.err = errors.Newf(errors.TypeInvalidConfiguration, "rate %s cannot be negative (%v)", name, v).
			WithContext("file", c.file)
	}
	return decimal.NewFromFloat(v)
}

func (c *rateChecker) multiplier(name string, v float64) decimal.Decimal {
	if v < 1 && c.err == nil {
		c.err = errors.Newf(errors.TypeInvalidConfiguration, "multiplier %s must be at least 1 (%v)", name, v).
			WithContext("file", c.file)
	}
	return decimal.NewFromFloat(v)
}

func (c *rateChecker) count(name string, v int64) int64 {
	if v < 0 && c.err == nil {
		c.err = errors.Newf(errors.TypeInvalidConfiguration, "allowance %s cannot be negative (%d)", name, v).
			WithContext("file", c.file)
	}
	return v
}

func (f *rateCardFile) build(filename string) (*Table, error) {
	c := &rateChecker{file: filename}

	currency := types.Currency(f.Snapshot.Currency)
	if currency == "" {
		currency = types.CurrencyUSD
	}

	t := &Table{
		snapshot: Snapshot{
			Provider:  f.Snapshot.Provider,
			Region:    f.Snapshot.Region,
			Effective: f.Snapshot.Effective,
			Currency:  currency,
			Source:    f.Snapshot.Source,
		},
		instances: make(map[string]InstanceRate, len(f.Database.Instances)),
		nodes:     make(map[string]NodeRate, len(f.Cache.Nodes)),
		database: DatabaseRates{
			StoragePerGBMonth: c.rate("database.storage_per_gb_month", f.Database.StoragePerGBMonth),
			MultiAZMultiplier: c.multiplier("database.multi_az_multiplier", f.Database.MultiAZMultiplier),
		},
		cache: CacheRates{
			MultiAZMultiplier:          c.multiplier("cache.multi_az_multiplier", f.Cache.MultiAZMultiplier),
			ServerlessStoragePerGBHour: c.rate("cache.serverless.storage_per_gb_hour", f.Cache.Serverless.StoragePerGBHour),
			ServerlessECPUPerHour:      c.rate("cache.serverless.ecpu_per_hour", f.Cache.Serverless.ECPUPerHour),
		},
		compute: ComputeRates{
			PerMillionRequests: c.rate("compute.per_million_requests", f.Compute.PerMillionRequests),
			PerGBSecond:        c.rate("compute.per_gb_second", f.Compute.PerGBSecond),
		},
		gateway: GatewayRates{
			RESTPerMillion:      c.rate("gateway.rest_per_million", f.Gateway.RESTPerMillion),
			HTTPPerMillion:      c.rate("gateway.http_per_million", f.Gateway.HTTPPerMillion),
			WebSocketPerMillion: c.rate("gateway.websocket_per_million", f.Gateway.WebSocketPerMillion),
		},
		network: NetworkRates{
			NATGatewayMonthly: c.rate("network.nat_gateway_monthly", f.Network.NATGatewayMonthly),
		},
		logging: LoggingRates{
			MinimumMonthly:  c.rate("logging.minimum_monthly", f.Logging.MinimumMonthly),
			Per100kRequests: c.rate("logging.per_100k_requests", f.Logging.Per100kRequests),
		},
		email: EmailRates{
			FreePerMonth: c.count("email.free_per_month", f.Email.FreePerMonth),
			PerThousand:  c.rate("email.per_thousand", f.Email.PerThousand),
		},
		objectStorage: ObjectStorageRates{
			StoragePerGBMonth: c.rate("object_storage.storage_per_gb_month", f.ObjectStorage.StoragePerGBMonth),
			PutPerThousand:    c.rate("object_storage.put_per_thousand", f.ObjectStorage.PutPerThousand),
			GetPerThousand:    c.rate("object_storage.get_per_thousand", f.ObjectStorage.GetPerThousand),
		},
		notification: NotificationRates{
			FreePerMonth: c.count("notification.free_per_month", f.Notification.FreePerMonth),
			PerMillion:   c.rate("notification.per_million", f.Notification.PerMillion),
		},
	}

	for _, in := range f.Database.Instances {
		if _, dup := t.instances[in.Class]; dup {
			return nil, errors.Newf(errors.TypeInvalidConfiguration, "duplicate database instance %q", in.Class)
		}
		t.instances[in.Class] = InstanceRate{
			Class:    in.Class,
			Monthly:  c.rate("database.instance."+in.Class, in.Monthly),
			VCPU:     in.VCPU,
			MemoryGB: decimal.NewFromFloat(in.MemoryGB),
			Label:    in.Label,
		}
	}
	for _, n := range f.Cache.Nodes {
		if _, dup := t.nodes[n.Type]; dup {
			return nil, errors.Newf(errors.TypeInvalidConfiguration, "duplicate cache node %q", n.Type)
		}
		t.nodes[n.Type] = NodeRate{
			Type:      n.Type,
			Monthly:   c.rate("cache.node."+n.Type, n.Monthly),
			MemoryGB:  decimal.NewFromFloat(n.MemoryGB),
			Burstable: n.Burstable,
			Label:     n.Label,
		}
	}

	if c.err != nil {
		return nil, c.err
	}
	if len(t.instances) == 0 {
		return nil, errors.New(errors.TypeInvalidConfiguration, fmt.Sprintf("%s: rate card has no database instances", filename))
	}
	if len(t.nodes) == 0 {
		return nil, errors.New(errors.TypeInvalidConfiguration, fmt.Sprintf("%s: rate card has no cache nodes", filename))
	}

	t.seal()
	return t, nil
}
