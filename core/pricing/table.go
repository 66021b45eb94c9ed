// Package pricing provides the immutable AWS rate table used by every estimate.
// A Table is decoded once from an HCL rate card and never mutated afterwards;
// all accessors return copies.
package pricing

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"github.com/shopspring/decimal"

	"webtoq-cost/core/pricing/primitives"
	"webtoq-cost/core/types"
	"webtoq-cost/internal/errors"
)

// HoursPerMonth is the AWS billing convention for monthly rates
var HoursPerMonth = primitives.HoursPerMonth

// Snapshot identifies the rate card a table was built from
type Snapshot struct {
	Provider  string         `json:"provider"`
	Region    string         `json:"region"`
	Effective string         `json:"effective"`
	Currency  types.Currency `json:"currency"`
	Source    string         `json:"source,omitempty"`
}

// InstanceRate is a flat monthly rate for one RDS instance class
type InstanceRate struct {
	Class    string          `json:"class"`
	Monthly  decimal.Decimal `json:"monthly"`
	VCPU     int             `json:"vcpu,omitempty"`
	MemoryGB decimal.Decimal `json:"memory_gb"`
	Label    string          `json:"label,omitempty"`
}

// NodeRate is a flat monthly rate for one cache node type
type NodeRate struct {
	Type      string          `json:"type"`
	Monthly   decimal.Decimal `json:"monthly"`
	MemoryGB  decimal.Decimal `json:"memory_gb"`
	Burstable bool            `json:"burstable,omitempty"`
	Label     string          `json:"label,omitempty"`
}

// DatabaseRates prices relational storage
type DatabaseRates struct {
	StoragePerGBMonth decimal.Decimal `json:"storage_per_gb_month"`
	MultiAZMultiplier decimal.Decimal `json:"multi_az_multiplier"`
}

// CacheRates prices the cache in both deployment modes
type CacheRates struct {
	MultiAZMultiplier          decimal.Decimal `json:"multi_az_multiplier"`
	ServerlessStoragePerGBHour decimal.Decimal `json:"serverless_storage_per_gb_hour"`
	ServerlessECPUPerHour      decimal.Decimal `json:"serverless_ecpu_per_hour"`
}

// ComputeRates prices serverless functions
type ComputeRates struct {
	PerMillionRequests decimal.Decimal `json:"per_million_requests"`
	PerGBSecond        decimal.Decimal `json:"per_gb_second"`
}

// GatewayRates prices the three API routing styles
type GatewayRates struct {
	RESTPerMillion      decimal.Decimal `json:"rest_per_million"`
	HTTPPerMillion      decimal.Decimal `json:"http_per_million"`
	WebSocketPerMillion decimal.Decimal `json:"websocket_per_million"`
}

// NetworkRates prices egress
type NetworkRates struct {
	NATGatewayMonthly decimal.Decimal `json:"nat_gateway_monthly"`
}

// LoggingRates prices observability
type LoggingRates struct {
	MinimumMonthly  decimal.Decimal `json:"minimum_monthly"`
	Per100kRequests decimal.Decimal `json:"per_100k_requests"`
}

// EmailRates prices transactional email
type EmailRates struct {
	FreePerMonth int64           `json:"free_per_month"`
	PerThousand  decimal.Decimal `json:"per_thousand"`
}

// ObjectStorageRates prices object storage
type ObjectStorageRates struct {
	StoragePerGBMonth decimal.Decimal `json:"storage_per_gb_month"`
	PutPerThousand    decimal.Decimal `json:"put_per_thousand"`
	GetPerThousand    decimal.Decimal `json:"get_per_thousand"`
}

// NotificationRates prices push notifications
type NotificationRates struct {
	FreePerMonth int64           `json:"free_per_month"`
	PerMillion   decimal.Decimal `json:"per_million"`
}

// Table is the complete rate card
type Table struct {
	snapshot      Snapshot
	instances     map[string]InstanceRate
	nodes         map[string]NodeRate
	database      DatabaseRates
	cache         CacheRates
	compute       ComputeRates
	gateway       GatewayRates
	network       NetworkRates
	logging       LoggingRates
	email         EmailRates
	objectStorage ObjectStorageRates
	notification  NotificationRates
	hash          string
}

func (t *Table) Snapshot() Snapshot { return t.snapshot }
func (t *Table) Database() DatabaseRates { return t.database }
func (t *Table) Cache() CacheRates { return t.cache }
func (t *Table) Compute() ComputeRates { return t.compute }
func (t *Table) Gateway() GatewayRates { return t.gateway }
func (t *Table) Network() NetworkRates { return t.network }
func (t *Table) Logging() LoggingRates { return t.logging }
func (t *Table) Email() EmailRates { return t.email }
func (t *Table) ObjectStorage() ObjectStorageRates { return t.objectStorage }
func (t *Table) Notification() NotificationRates { return t.notification }
func (t *Table) Currency() types.Currency { return t.snapshot.Currency }

// ContentHash is the SHA-256 of the canonical HCL rendering of the table
func (t *Table) ContentHash() string {
	return t.hash
}

// DatabaseInstance looks up an RDS instance class
func (t *Table) DatabaseInstance(class string) (InstanceRate, error) {
	rate, ok := t.instances[class]
	if !ok {
		return InstanceRate{}, errors.InvalidConfiguration("database instance", class)
	}
	return rate, nil
}

// CacheNode looks up a cache node type
func (t *Table) CacheNode(nodeType string) (NodeRate, error) {
	rate, ok := t.nodes[nodeType]
	if !ok {
		return NodeRate{}, errors.InvalidConfiguration("cache node", nodeType)
	}
	return rate, nil
}

// DatabaseInstances returns all instance classes ordered by monthly rate
func (t *Table) DatabaseInstances() []InstanceRate {
	out := make([]InstanceRate, 0, len(t.instances))
	for _, r := range t.instances {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Monthly.Equal(out[j].Monthly) {
			return out[i].Monthly.LessThan(out[j].Monthly)
		}
		return out[i].Class < out[j].Class
	})
	return out
}

// CacheNodes returns all node types ordered by monthly rate
func (t *Table) CacheNodes() []NodeRate {
	out := make([]NodeRate, 0, len(t.nodes))
	for _, r := range t.nodes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Monthly.Equal(out[j].Monthly) {
			return out[i].Monthly.LessThan(out[j].Monthly)
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// View is a serializable copy of the table
type View struct {
	Snapshot      Snapshot           `json:"snapshot"`
	ContentHash   string             `json:"content_hash"`
	Instances     []InstanceRate     `json:"database_instances"`
	Nodes         []NodeRate         `json:"cache_nodes"`
	Database      DatabaseRates      `json:"database"`
	Cache         CacheRates         `json:"cache"`
	Compute       ComputeRates       `json:"compute"`
	Gateway       GatewayRates       `json:"gateway"`
	Network       NetworkRates       `json:"network"`
	Logging       LoggingRates       `json:"logging"`
	Email         EmailRates         `json:"email"`
	ObjectStorage ObjectStorageRates `json:"object_storage"`
	Notification  NotificationRates  `json:"notification"`
}

// View returns a serializable copy
func (t *Table) View() View {
	return View{
		Snapshot:      t.snapshot,
		ContentHash:   t.hash,
		Instances:     t.DatabaseInstances(),
		Nodes:         t.CacheNodes(),
		Database:      t.database,
		Cache:         t.cache,
		Compute:       t.compute,
		Gateway:       t.gateway,
		Network:       t.network,
		Logging:       t.logging,
		Email:         t.email,
		ObjectStorage: t.objectStorage,
		Notification:  t.notification,
	}
}

func (t *Table) seal() {
	sum := sha256.Sum256(Export(t))
	t.hash = hex.EncodeToString(sum[:])
}
