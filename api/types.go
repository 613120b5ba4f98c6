package api

import (
	"quote-engine/core/quote"
	"quote-engine/core/rates"
)

// QuoteResponse wraps a pricing result with request metadata. The result
// itself comes from the engine untouched.
type QuoteResponse struct {
	RequestID string `json:"request_id"`

	// InputHash is a deterministic hash of the canonical input, so the
	// caller can correlate recomputes of the same form state.
	InputHash string `json:"input_hash"`

	EngineVersion string `json:"engine_version"`
	DurationMs    int64  `json:"duration_ms"`

	Result *quote.PricingResult `json:"result"`
}

// RatesResponse exposes the active tables for the quote form UI
type RatesResponse struct {
	Table  *rates.Table `json:"table"`
	Policy rates.Policy `json:"policy"`
}

// ErrorResponse is the error envelope for non-200 responses
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries a stable error code plus a human-readable message
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
