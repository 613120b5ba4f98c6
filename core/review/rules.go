// Package review decides auto-approve versus manual review. The policy is
// an explicit, ordered list of independent predicate checks; every violated
// check reports its coded reason, not just the first, so the quote form can
// offer every applicable quick fix at once.
package review

import (
	"fmt"

	"quote-engine/core/money"
	"quote-engine/core/quote"
	"quote-engine/core/rates"
)

// Rule is a single named policy check. Check returns whether the rule is
// violated and, if so, the display message for its reason code.
type Rule struct {
	// Code is the stable reason code this rule emits
	Code quote.ReasonCode

	// Legacy marks superseded frequency-based rules that stay in the
	// table but only run when Policy.EnableLegacyFrequencyRules is set
	Legacy bool

	Check func(pol rates.Policy, in *quote.PricingInput, adjusted money.Money) (bool, string)
}

// DefaultRules returns the policy checks in evaluation order. Order is part
// of the contract: ReviewReasons surfaces in this order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Code: quote.ReasonPriceCeiling,
			Check: func(pol rates.Policy, in *quote.PricingInput, adjusted money.Money) (bool, string) {
				if !adjusted.GreaterThan(pol.ReviewCeiling) {
					return false, ""
				}
				return true, fmt.Sprintf(
					"monthly price $%s exceeds the $%s auto-approval ceiling",
					adjusted.String(), pol.ReviewCeiling.String())
			},
		},
		{
			Code: quote.ReasonDumpsterCount,
			Check: func(pol rates.Policy, in *quote.PricingInput, adjusted money.Money) (bool, string) {
				if in.PropertyType != quote.PropertyCommercial {
					return false, ""
				}
				if in.DumpsterCount < pol.MaxAutoApproveDumpsters {
					return false, ""
				}
				return true, fmt.Sprintf(
					"dumpster count %d is at or above the auto-approval maximum of %d; reduce dumpster count for an instant quote",
					in.DumpsterCount, pol.MaxAutoApproveDumpsters)
			},
		},
		{
			Code: quote.ReasonSpecialRequirements,
			Check: func(pol rates.Policy, in *quote.PricingInput, adjusted money.Money) (bool, string) {
				if !in.HasSpecialRequirements() {
					return false, ""
				}
				return true, "special requirements cannot be auto-priced; clear the field for an instant quote"
			},
		},
		{
			Code:   quote.ReasonWeeklyRestaurant,
			Legacy: true,
			Check: func(pol rates.Policy, in *quote.PricingInput, adjusted money.Money) (bool, string) {
				if in.PropertyType != quote.PropertyCommercial ||
					in.CommercialType != quote.CommercialRestaurant ||
					in.Frequency != quote.FrequencyWeekly {
					return false, ""
				}
				return true, "weekly restaurant service requires manual review"
			},
		},
		{
			Code:   quote.ReasonWeeklyDumpsterPad,
			Legacy: true,
			Check: func(pol rates.Policy, in *quote.PricingInput, adjusted money.Money) (bool, string) {
				if in.PropertyType != quote.PropertyCommercial ||
					!in.HasDumpsterPad ||
					in.Frequency != quote.FrequencyWeekly {
					return false, ""
				}
				return true, "weekly service with a dumpster pad requires manual review"
			},
		},
	}
}
