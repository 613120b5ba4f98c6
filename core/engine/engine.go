// Package engine orchestrates the pricing pipeline. All other interfaces
// (CLI, HTTP) are thin wrappers around Engine.Quote.
package engine

import (
	"fmt"

	"quote-engine/core/bundle"
	"quote-engine/core/estimate"
	"quote-engine/core/money"
	"quote-engine/core/pricing"
	"quote-engine/core/quote"
	"quote-engine/core/rates"
	"quote-engine/core/review"
	"quote-engine/core/safeguard"
)

// Engine prices quotes against a fixed rate table and review policy.
// It holds no mutable state: concurrent Quote calls are independent, and
// identical input always produces an identical result.
type Engine struct {
	table  *rates.Table
	policy rates.Policy
	rules  []review.Rule
}

// New creates an engine, validating the tables up front so that a
// configuration gap surfaces at startup instead of mid-quote.
func New(tbl *rates.Table, pol rates.Policy) (*Engine, error) {
	if err := tbl.Validate(); err != nil {
		return nil, err
	}
	if err := pol.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		table:  tbl,
		policy: pol,
		rules:  review.DefaultRules(),
	}, nil
}

// Default creates an engine on the compiled-in tables
func Default() *Engine {
	eng, err := New(rates.Defaults(), rates.DefaultPolicy())
	if err != nil {
		panic(fmt.Sprintf("built-in rate tables failed validation: %v", err))
	}
	return eng
}

// Table returns the active rate table
func (e *Engine) Table() *rates.Table {
	return e.table
}

// Policy returns the active review policy
func (e *Engine) Policy() rates.Policy {
	return e.policy
}

// Quote prices one request: validate, base price, floors, review decision,
// bundle recommendation, estimate range. Returns a validation error and no
// partial result when the input breaks the caller contract.
func (e *Engine) Quote(in *quote.PricingInput) (*quote.PricingResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	base, err := pricing.ComputeBase(e.table, in)
	if err != nil {
		return nil, err
	}

	adjusted, safeguardReasons := safeguard.Apply(e.table, base, in)

	// The single rounding step of the pipeline
	finalPrice := adjusted.RoundDollars()

	decision := review.EvaluateRules(e.rules, e.policy, in, money.FromInt(finalPrice))

	recommended := quote.BundleNone
	if !decision.RequiresManualReview {
		recommended = bundle.Recommend(in)
	}

	low, high := estimate.BuildRange(finalPrice)

	return &quote.PricingResult{
		LowEstimate:          low,
		HighEstimate:         high,
		FinalPrice:           finalPrice,
		MinimumPriceEnforced: len(safeguardReasons) > 0,
		RequiresManualReview: decision.RequiresManualReview,
		ReviewReasons:        decision.Reasons,
		SafeguardReasons:     safeguardReasons,
		RecommendedBundle:    recommended,
	}, nil
}
