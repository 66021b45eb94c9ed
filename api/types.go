// Package api - Request and response types
package api

import (
	"github.com/shopspring/decimal"

	"webtoq-cost/core/cost"
	"webtoq-cost/core/output"
)

// EstimateRequest is the POST /estimate body: a cost.Request plus report options
type EstimateRequest struct {
	cost.Request

	// ProjectGrowth adds a scaling projection (e.g. 2 for doubling agents)
	ProjectGrowth *decimal.Decimal `json:"project_growth,omitempty"`

	// CompareCache adds a serverless vs provisioned comparison
	CompareCache bool `json:"compare_cache,omitempty"`
}

// ScenarioRunRequest is the optional POST /scenarios/{name} body
type ScenarioRunRequest struct {
	ProjectGrowth *decimal.Decimal `json:"project_growth,omitempty"`
	CompareCache  bool             `json:"compare_cache,omitempty"`
}

// EstimateResponse is a report plus request metadata
type EstimateResponse struct {
	*output.Report
	Metadata *ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains execution metadata
type ResponseMetadata struct {
	// InputHash is a SHA-256 of the canonical request
	InputHash string `json:"input_hash"`

	// EngineVersion is the server version
	EngineVersion string `json:"engine_version"`

	// PricingHash identifies the rate card
	PricingHash string `json:"pricing_hash"`

	// DurationMs is the time spent estimating
	DurationMs int64 `json:"duration_ms"`
}

// ScenarioSummary is one entry of GET /scenarios
type ScenarioSummary struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Agents      int    `json:"agents"`
	Warning     string `json:"warning,omitempty"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries a stable code and a readable message
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
