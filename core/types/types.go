// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions and validation.
package types

import (
	"fmt"
	"strings"
)

// Currency represents a currency code
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// Tier is an infrastructure sizing class. Tiers are ordered: a larger
// value always means larger default instances and more redundancy.
type Tier int

const (
	TierMicro Tier = iota
	TierStarter
	TierSmall
	TierMedium
	TierLarge
	TierEnterprise
)

var tierNames = [...]string{"micro", "starter", "small", "medium", "large", "enterprise"}

// Tiers returns every tier in ascending order
func Tiers() []Tier {
	return []Tier{TierMicro, TierStarter, TierSmall, TierMedium, TierLarge, TierEnterprise}
}

// String returns the tier name
func (t Tier) String() string {
	if t < TierMicro || t > TierEnterprise {
		return fmt.Sprintf("tier(%d)", int(t))
	}
	return tierNames[t]
}

// IsValid checks if the tier is a known tier
func (t Tier) IsValid() bool {
	return t >= TierMicro && t <= TierEnterprise
}

// ParseTier resolves a tier name, case-insensitively
func ParseTier(s string) (Tier, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range tierNames {
		if n == name {
			return Tier(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tier %q", s)
}

// MarshalText renders the tier by name in JSON and YAML
func (t Tier) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid tier %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText parses a tier name
func (t *Tier) UnmarshalText(text []byte) error {
	parsed, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Service identifies one billable AWS service in a breakdown
type Service string

const (
	ServiceCompute       Service = "compute"
	ServiceGateway       Service = "gateway"
	ServiceDatabase      Service = "database"
	ServiceCache         Service = "cache"
	ServiceNetwork       Service = "network"
	ServiceLogging       Service = "logging"
	ServiceEmail         Service = "email"
	ServiceObjectStorage Service = "object_storage"
	ServiceNotification  Service = "notification"
)

// Services returns all services in breakdown order
func Services() []Service {
	return []Service{
		ServiceCompute,
		ServiceGateway,
		ServiceDatabase,
		ServiceCache,
		ServiceNetwork,
		ServiceLogging,
		ServiceEmail,
		ServiceObjectStorage,
		ServiceNotification,
	}
}

// Label returns the AWS product name for display
func (s Service) Label() string {
	switch s {
	case ServiceCompute:
		return "AWS Lambda"
	case ServiceGateway:
		return "API Gateway"
	case ServiceDatabase:
		return "RDS Aurora PostgreSQL"
	case ServiceCache:
		return "ElastiCache Valkey"
	case ServiceNetwork:
		return "VPC NAT Gateway"
	case ServiceLogging:
		return "CloudWatch Logs"
	case ServiceEmail:
		return "Amazon SES"
	case ServiceObjectStorage:
		return "Amazon S3"
	case ServiceNotification:
		return "Amazon SNS"
	default:
		return string(s)
	}
}
