// Package safeguard enforces pricing floors for underpriced combinations.
// This stage is monotonic: it can only raise a price, never lower it, and
// every raise is explained by a coded reason — no silent clamps.
package safeguard

import (
	"fmt"

	"quote-engine/core/money"
	"quote-engine/core/quote"
	"quote-engine/core/rates"
)

// floor pairs a minimum price with the coded reason emitted when it fires
type floor struct {
	minimum money.Money
	code    quote.ReasonCode
	message string
}

// Apply raises the base price to every applicable floor, in a fixed order:
// the property-type minimum first, then the dumpster pad floor. The result
// is the maximum of the base price and all applicable floors, with one
// reason per floor that actually raised the price.
func Apply(tbl *rates.Table, base money.Money, in *quote.PricingInput) (money.Money, []quote.Reason) {
	price := base
	reasons := make([]quote.Reason, 0, 2)

	for _, f := range applicableFloors(tbl, in) {
		if price.LessThan(f.minimum) {
			price = f.minimum
			reasons = append(reasons, quote.Reason{Code: f.code, Message: f.message})
		}
	}

	return price, reasons
}

func applicableFloors(tbl *rates.Table, in *quote.PricingInput) []floor {
	floors := make([]floor, 0, 2)

	if min := tbl.Minimum(in.PropertyType); min.IsPositive() {
		floors = append(floors, floor{
			minimum: min,
			code:    minimumCode(in.PropertyType),
			message: fmt.Sprintf("monthly price raised to the $%s minimum job size for %s service", min.String(), in.PropertyType),
		})
	}

	if in.PropertyType == quote.PropertyCommercial && in.HasDumpsterPad {
		floors = append(floors, floor{
			minimum: tbl.DumpsterPadFloor,
			code:    quote.ReasonDumpsterPadMinimum,
			message: fmt.Sprintf("monthly price raised to the $%s dumpster pad service minimum", tbl.DumpsterPadFloor.String()),
		})
	}

	return floors
}

func minimumCode(pt quote.PropertyType) quote.ReasonCode {
	switch pt {
	case quote.PropertyResidential:
		return quote.ReasonResidentialMinimum
	case quote.PropertyCommercial:
		return quote.ReasonCommercialMinimum
	default:
		return quote.ReasonHOAMinimum
	}
}
