// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: input decoding, estimator orchestration, output serialization.
// The API NEVER performs cost logic.
package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"webtoq-cost/core/cost"
	"webtoq-cost/core/output"
	"webtoq-cost/core/scenario"
	"webtoq-cost/core/tier"
	werrors "webtoq-cost/internal/errors"
	"webtoq-cost/internal/logging"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// Server is the API server
type Server struct {
	builder   *output.Builder
	scenarios *scenario.Registry
	mux       *http.ServeMux
	handler   http.Handler
	metrics   *metrics
	version   string
	log       *zap.Logger
}

// NewServer creates a new API server
func NewServer(version string, builder *output.Builder, scenarios *scenario.Registry) *Server {
	s := &Server{
		builder:   builder,
		scenarios: scenarios,
		mux:       http.NewServeMux(),
		metrics:   newMetrics(),
		version:   version,
		log:       logging.For("api"),
	}

	s.registerRoutes()
	s.handler = s.metrics.instrument(s.mux)
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Core endpoints
	s.mux.HandleFunc("POST /estimate", s.handleEstimate)
	s.mux.HandleFunc("GET /scenarios", s.handleListScenarios)
	s.mux.HandleFunc("POST /scenarios/{name}", s.handleRunScenario)

	// Supporting endpoints
	s.mux.HandleFunc("GET /pricing", s.handlePricing)
	s.mux.HandleFunc("GET /tiers", s.handleTiers)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
	s.mux.Handle("GET /metrics", s.metrics.handler())
}

// handleEstimate handles POST /estimate
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req EstimateRequest
	if err := decodeBody(w, r, &req, true); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	s.estimate(w, req.Request, output.ReportOptions{
		ProjectGrowth: req.ProjectGrowth,
		CompareCache:  req.CompareCache,
	})
}

// handleListScenarios handles GET /scenarios
func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	list := s.scenarios.List()
	out := make([]ScenarioSummary, 0, len(list))
	for _, sc := range list {
		out = append(out, ScenarioSummary{
			Name:        sc.Name,
			Title:       sc.Title,
			Description: sc.Description,
			Agents:      sc.Workload.AgentCount,
			Warning:     sc.Warning,
		})
	}
	s.writeJSON(w, map[string]interface{}{
		"scenarios": out,
		"count":     len(out),
	}, http.StatusOK)
}

// handleRunScenario handles POST /scenarios/{name}
func (s *Server) handleRunScenario(w http.ResponseWriter, r *http.Request) {
	sc, err := s.scenarios.Get(r.PathValue("name"))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	var req ScenarioRunRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	s.estimate(w, sc.Request(), output.ReportOptions{
		Scenario:      sc.Name,
		Title:         sc.Title,
		Warning:       sc.Warning,
		ProjectGrowth: req.ProjectGrowth,
		CompareCache:  req.CompareCache,
	})
}

// handlePricing handles GET /pricing
func (s *Server) handlePricing(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.builder.Estimator().Table().View(), http.StatusOK)
}

// handleTiers handles GET /tiers
func (s *Server) handleTiers(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"tiers": tier.All(),
	}, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":      s.version,
		"engine":       "webtoq-cost",
		"api_version":  "v1",
		"pricing_hash": s.builder.Estimator().Table().ContentHash(),
	}, http.StatusOK)
}

// estimate builds a report and writes it (NO COST LOGIC HERE)
func (s *Server) estimate(w http.ResponseWriter, req cost.Request, opts output.ReportOptions) {
	start := time.Now()

	report, err := s.builder.Build(req, opts)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	est := report.Estimate
	s.metrics.estimates.WithLabelValues(est.Tier.String()).Inc()
	s.metrics.monthly.Observe(est.Breakdown.Total.InexactFloat64())
	s.log.Info("estimate served",
		zap.String("run_id", report.RunID),
		zap.String("scenario", opts.Scenario),
		zap.Int("agents", est.Workload().AgentCount),
		zap.Stringer("tier", est.Tier),
		logging.Money("monthly", est.Breakdown.Total),
	)

	s.writeJSON(w, EstimateResponse{
		Report: report,
		Metadata: &ResponseMetadata{
			InputHash:     computeInputHash(req),
			EngineVersion: s.version,
			PricingHash:   est.PricingHash,
			DurationMs:    time.Since(start).Milliseconds(),
		},
	}, http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Warn("failed to write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, ErrorResponse{Error: ErrorBody{Code: code, Message: message}}, status)
}

// writeEngineError maps typed errors to status codes
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	code, status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("estimate failed", zap.Error(err))
	}
	s.writeError(w, code, err.Error(), status)
}

func errorStatus(err error) (string, int) {
	switch werrors.TypeOf(err) {
	case werrors.TypeInvalidInput:
		return "INVALID_INPUT", http.StatusBadRequest
	case werrors.TypeInvalidConfiguration:
		return "INVALID_CONFIGURATION", http.StatusUnprocessableEntity
	case werrors.TypeDivisionGuard:
		return "DIVISION_GUARD", http.StatusUnprocessableEntity
	case werrors.TypeNotFound:
		return "NOT_FOUND", http.StatusNotFound
	default:
		return "ENGINE_ERROR", http.StatusInternalServerError
	}
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe starts the server
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info("listening", zap.String("addr", addr), zap.String("version", s.version))
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// Helper functions

// decodeBody decodes a JSON body, rejecting unknown fields. An empty body is an
// error only when required is set.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}, required bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	err := dec.Decode(v)
	if errors.Is(err, io.EOF) && !required {
		return nil
	}
	return err
}

func computeInputHash(req cost.Request) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
