package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webtoq-cost/core/advisor"
	"webtoq-cost/core/cost"
	"webtoq-cost/core/output"
	"webtoq-cost/core/pricing"
	"webtoq-cost/core/scenario"
	"webtoq-cost/core/usage"
	"webtoq-cost/internal/errors"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	e := cost.NewEstimator(pricing.MustDefault(), usage.DefaultAssumptions(), decimal.Zero)
	b := output.NewBuilder(e, advisor.New(e, advisor.DefaultThresholds()))
	return NewServer("test", b, scenario.Default())
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

type estimateBody struct {
	RunID    string `json:"run_id"`
	Scenario string `json:"scenario"`
	Estimate struct {
		Tier      string `json:"tier"`
		Breakdown struct {
			Total string `json:"total"`
		} `json:"breakdown"`
	} `json:"estimate"`
	Projection *struct {
		MonthlyDelta string `json:"monthly_delta"`
	} `json:"projection"`
	CacheComparison *struct {
		Recommended string `json:"recommended"`
	} `json:"cache_comparison"`
	Metadata struct {
		InputHash   string `json:"input_hash"`
		PricingHash string `json:"pricing_hash"`
	} `json:"metadata"`
}

func TestEstimate(t *testing.T) {
	s := newTestServer(t)

	body := `{
		"workload": {"agent_count": 1000, "clients_per_agent": 4, "work_days_per_month": 22, "session_duration_minutes": 30},
		"project_growth": 2,
		"compare_cache": true
	}`
	rec := do(t, s, http.MethodPost, "/estimate", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got estimateBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.NotEmpty(t, got.RunID)
	assert.Equal(t, "medium", got.Estimate.Tier)
	assert.Equal(t, "794.5110784", got.Estimate.Breakdown.Total)
	require.NotNil(t, got.Projection)
	assert.Equal(t, "57.9010784", got.Projection.MonthlyDelta)
	require.NotNil(t, got.CacheComparison)
	assert.Len(t, got.Metadata.InputHash, 64)
	assert.Equal(t, pricing.MustDefault().ContentHash(), got.Metadata.PricingHash)
}

func TestEstimateInputHashIsStable(t *testing.T) {
	s := newTestServer(t)
	body := `{"workload": {"agent_count": 50, "clients_per_agent": 4, "work_days_per_month": 22, "session_duration_minutes": 30}}`

	var first, second estimateBody
	require.NoError(t, json.Unmarshal(do(t, s, http.MethodPost, "/estimate", body).Body.Bytes(), &first))
	require.NoError(t, json.Unmarshal(do(t, s, http.MethodPost, "/estimate", body).Body.Bytes(), &second))

	assert.Equal(t, first.Metadata.InputHash, second.Metadata.InputHash)
	assert.Equal(t, first.Estimate.Breakdown.Total, second.Estimate.Breakdown.Total)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestEstimateErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"empty body", ``, http.StatusBadRequest, "INVALID_JSON"},
		{"malformed", `{"workload":`, http.StatusBadRequest, "INVALID_JSON"},
		{"unknown field", `{"agents": 10}`, http.StatusBadRequest, "INVALID_JSON"},
		{"zero agents", `{"workload": {"agent_count": 0, "clients_per_agent": 4, "work_days_per_month": 22, "session_duration_minutes": 30}}`,
			http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown instance", `{"workload": {"agent_count": 10, "clients_per_agent": 4, "work_days_per_month": 22, "session_duration_minutes": 30},
			"overrides": {"database_instance": "db.x1.huge"}}`,
			http.StatusUnprocessableEntity, "INVALID_CONFIGURATION"},
		{"zero revenue", `{"workload": {"agent_count": 10, "clients_per_agent": 4, "work_days_per_month": 22, "session_duration_minutes": 30},
			"revenue_per_agent": 0}`,
			http.StatusUnprocessableEntity, "DIVISION_GUARD"},
		{"negative storage", `{"workload": {"agent_count": 10, "clients_per_agent": 4, "work_days_per_month": 22, "session_duration_minutes": 30},
			"overrides": {"database_storage_gb": -50}}`,
			http.StatusBadRequest, "INVALID_INPUT"},
		{"oversized workload", `{"workload": {"agent_count": 3000000000, "clients_per_agent": 3000000000, "work_days_per_month": 22, "session_duration_minutes": 30}}`,
			http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown cache mode", `{"workload": {"agent_count": 10, "clients_per_agent": 4, "work_days_per_month": 22, "session_duration_minutes": 30},
			"overrides": {"cache_mode": "redis"}}`,
			http.StatusBadRequest, "INVALID_JSON"},
		{"negative growth", `{"workload": {"agent_count": 10, "clients_per_agent": 4, "work_days_per_month": 22, "session_duration_minutes": 30},
			"project_growth": -1}`,
			http.StatusBadRequest, "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/estimate", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())

			var got ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.code, got.Error.Code)
			assert.NotEmpty(t, got.Error.Message)
		})
	}
}

func TestEstimateCacheModeAlias(t *testing.T) {
	s := newTestServer(t)
	body := `{"workload": {"agent_count": 10, "clients_per_agent": 4, "work_days_per_month": 22, "session_duration_minutes": 30},
		"overrides": {"cache_mode": "cluster"}}`

	rec := do(t, s, http.MethodPost, "/estimate", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		Estimate struct {
			Infra struct {
				Cache struct {
					Mode string `json:"mode"`
				} `json:"cache"`
			} `json:"infra"`
		} `json:"estimate"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "provisioned", got.Estimate.Infra.Cache.Mode)
}

func TestScenarios(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/scenarios", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Scenarios []ScenarioSummary `json:"scenarios"`
		Count     int               `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 5, list.Count)
	assert.Equal(t, "base", list.Scenarios[0].Name)

	rec = do(t, s, http.MethodPost, "/scenarios/webtoq", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got estimateBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "webtoq", got.Scenario)
	assert.Equal(t, "588.7644132", got.Estimate.Breakdown.Total)
	assert.Nil(t, got.Projection)

	rec = do(t, s, http.MethodPost, "/scenarios/medio", `{"compare_cache": true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got = estimateBody{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotNil(t, got.CacheComparison)
	assert.Equal(t, "provisioned", got.CacheComparison.Recommended)

	rec = do(t, s, http.MethodPost, "/scenarios/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPricingAndInfo(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/pricing", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var view pricing.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "us-east-1", view.Snapshot.Region)
	assert.NotEmpty(t, view.Instances)

	for _, path := range []string{"/health", "/version", "/tiers"} {
		rec := do(t, s, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec = do(t, s, http.MethodGet, "/estimate", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	do(t, s, http.MethodGet, "/health", "")
	do(t, s, http.MethodPost, "/scenarios/base", "")

	rec := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `webtoq_cost_http_requests_total{code="200",route="GET /health"} 1`)
	assert.Contains(t, body, `webtoq_cost_estimates_total{tier="micro"} 1`)
	assert.Contains(t, body, "webtoq_cost_estimate_monthly_usd_count 1")
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{errors.InvalidInput("agent_count", "bad"), http.StatusBadRequest},
		{errors.InvalidConfiguration("instance", "x"), http.StatusUnprocessableEntity},
		{errors.DivisionGuard("revenue"), http.StatusUnprocessableEntity},
		{errors.NotFound("scenario", "x"), http.StatusNotFound},
		{errors.Internal("boom", nil), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		_, status := errorStatus(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
	}
}
