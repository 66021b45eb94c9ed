package pricing

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"
)

// Export renders the table as a canonical HCL rate card.
// Instances and nodes are written in DatabaseInstances/CacheNodes order,
// so the output is stable and Parse(Export(t)) has the same content hash.
func Export(t *Table) []byte {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	snap := root.AppendNewBlock("snapshot", nil).Body()
	snap.SetAttributeValue("provider", cty.StringVal(t.snapshot.Provider))
	snap.SetAttributeValue("region", cty.StringVal(t.snapshot.Region))
	snap.SetAttributeValue("effective", cty.StringVal(t.snapshot.Effective))
	snap.SetAttributeValue("currency", cty.StringVal(string(t.snapshot.Currency)))
	if t.snapshot.Source != "" {
		snap.SetAttributeValue("source", cty.StringVal(t.snapshot.Source))
	}
	root.AppendNewline()

	db := root.AppendNewBlock("database", nil).Body()
	setNumber(db, "storage_per_gb_month", t.database.StoragePerGBMonth)
	setNumber(db, "multi_az_multiplier", t.database.MultiAZMultiplier)
	for _, in := range t.DatabaseInstances() {
		db.AppendNewline()
		b := db.AppendNewBlock("instance", []string{in.Class}).Body()
		setNumber(b, "monthly", in.Monthly)
		if in.VCPU > 0 {
			b.SetAttributeValue("vcpu", cty.NumberIntVal(int64(in.VCPU)))
		}
		if !in.MemoryGB.IsZero() {
			setNumber(b, "memory_gb", in.MemoryGB)
		}
		if in.Label != "" {
			b.SetAttributeValue("label", cty.StringVal(in.Label))
		}
	}
	root.AppendNewline()

	cache := root.AppendNewBlock("cache", nil).Body()
	setNumber(cache, "multi_az_multiplier", t.cache.MultiAZMultiplier)
	cache.AppendNewline()
	sl := cache.AppendNewBlock("serverless", nil).Body()
	setNumber(sl, "storage_per_gb_hour", t.cache.ServerlessStoragePerGBHour)
	setNumber(sl, "ecpu_per_hour", t.cache.ServerlessECPUPerHour)
	for _, n := range t.CacheNodes() {
		cache.AppendNewline()
		b := cache.AppendNewBlock("node", []string{n.Type}).Body()
		setNumber(b, "monthly", n.Monthly)
		if !n.MemoryGB.IsZero() {
			setNumber(b, "memory_gb", n.MemoryGB)
		}
		if n.Burstable {
			b.SetAttributeValue("burstable", cty.True)
		}
		if n.Label != "" {
			b.SetAttributeValue("label", cty.StringVal(n.Label))
		}
	}
	root.AppendNewline()

	compute := root.AppendNewBlock("compute", nil).Body()
	setNumber(compute, "per_million_requests", t.compute.PerMillionRequests)
	setNumber(compute, "per_gb_second", t.compute.PerGBSecond)
	root.AppendNewline()

	gw := root.AppendNewBlock("gateway", nil).Body()
	setNumber(gw, "rest_per_million", t.gateway.RESTPerMillion)
	setNumber(gw, "http_per_million", t.gateway.HTTPPerMillion)
	setNumber(gw, "websocket_per_million", t.gateway.WebSocketPerMillion)
	root.AppendNewline()

	net := root.AppendNewBlock("network", nil).Body()
	setNumber(net, "nat_gateway_monthly", t.network.NATGatewayMonthly)
	root.AppendNewline()

	logs := root.AppendNewBlock("logging", nil).Body()
	setNumber(logs, "minimum_monthly", t.logging.MinimumMonthly)
	setNumber(logs, "per_100k_requests", t.logging.Per100kRequests)
	root.AppendNewline()

	email := root.AppendNewBlock("email", nil).Body()
	email.SetAttributeValue("free_per_month", cty.NumberIntVal(t.email.FreePerMonth))
	setNumber(email, "per_thousand", t.email.PerThousand)
	root.AppendNewline()

	obj := root.AppendNewBlock("object_storage", nil).Body()
	setNumber(obj, "storage_per_gb_month", t.objectStorage.StoragePerGBMonth)
	setNumber(obj, "put_per_thousand", t.objectStorage.PutPerThousand)
	setNumber(obj, "get_per_thousand", t.objectStorage.GetPerThousand)
	root.AppendNewline()

	sns := root.AppendNewBlock("notification", nil).Body()
	sns.SetAttributeValue("free_per_month", cty.NumberIntVal(t.notification.FreePerMonth))
	setNumber(sns, "per_million", t.notification.PerMillion)

	return f.Bytes()
}

func setNumber(body *hclwrite.Body, name string, d decimal.Decimal) {
	body.SetAttributeValue(name, cty.MustParseNumberVal(d.String()))
}
