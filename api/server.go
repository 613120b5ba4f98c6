// Package api is the thin, deterministic HTTP layer over the pricing
// engine: input ingestion, engine orchestration, output serialization.
// The API never performs pricing logic.
package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"quote-engine/core/engine"
	"quote-engine/core/quote"
	"quote-engine/internal/errors"
	"quote-engine/internal/logging"
)

// Server is the HTTP API server
type Server struct {
	engine  *engine.Engine
	router  chi.Router
	version string
}

// NewServer creates the API server around an engine
func NewServer(eng *engine.Engine, version string, corsOrigins []string) *Server {
	s := &Server{
		engine:  eng,
		version: version,
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(metricsMiddleware)

	r.Post("/v1/quote", s.handleQuote)
	r.Get("/v1/rates", s.handleRates)
	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Handle("/metrics", promhttp.Handler())

	s.router = r
	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// handleQuote handles POST /v1/quote. The quote form recomputes on every
// change, so this path stays allocation-light and fully stateless.
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetReqID(r.Context())

	var in quote.PricingInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.engine.Quote(&in)
	if err != nil {
		if errors.IsType(err, errors.TypeValidation) {
			s.writeError(w, string(errors.TypeValidation), err.Error(), http.StatusBadRequest)
			return
		}
		logging.Error("quote failed", zap.String("request_id", requestID), zap.Error(err))
		s.writeError(w, "ENGINE_ERROR", err.Error(), http.StatusInternalServerError)
		return
	}

	observeQuote(result.RequiresManualReview)

	s.writeJSON(w, &QuoteResponse{
		RequestID:     requestID,
		InputHash:     computeInputHash(&in),
		EngineVersion: s.version,
		DurationMs:    time.Since(start).Milliseconds(),
		Result:        result,
	}, http.StatusOK)
}

// handleRates handles GET /v1/rates
func (s *Server) handleRates(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, &RatesResponse{
		Table:  s.engine.Table(),
		Policy: s.engine.Policy(),
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
		"version":     s.version,
		"engine":      "quote-engine",
		"api_version": "v1",
	}, http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, &ErrorResponse{Error: ErrorBody{Code: code, Message: message}}, status)
}

// computeInputHash hashes the canonical JSON encoding of the input.
// Struct field order makes the encoding deterministic.
func computeInputHash(in *quote.PricingInput) string {
	data, _ := json.Marshal(in)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}
