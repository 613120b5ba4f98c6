// Package pricing implements the base price calculator: structural inputs
// in, raw monthly price out. Floors and review policy are applied by later
// stages; this stage only prices what the tables describe.
package pricing

import (
	"github.com/shopspring/decimal"

	"quote-engine/core/money"
	"quote-engine/core/quote"
	"quote-engine/core/rates"
	"quote-engine/internal/errors"
)

var oneHundred = decimal.NewFromInt(100)

// ComputeBase converts structural inputs into a raw monthly price.
// All arithmetic stays in exact decimals; rounding happens once, at the end
// of the engine pipeline, never here.
func ComputeBase(tbl *rates.Table, in *quote.PricingInput) (money.Money, error) {
	switch in.PropertyType {
	case quote.PropertyResidential:
		return residentialBase(tbl, in)
	case quote.PropertyCommercial:
		return commercialBase(tbl, in)
	case quote.PropertyHOA:
		return hoaBase(tbl, in)
	default:
		return money.Zero(), errors.Validationf("unknown property type %q", in.PropertyType)
	}
}

func residentialBase(tbl *rates.Table, in *quote.PricingInput) (money.Money, error) {
	rate, err := tbl.ResidentialRate(in.Frequency)
	if err != nil {
		return money.Zero(), err
	}
	return rate.MulInt(int64(in.ResidentialBins)), nil
}

// commercialBase prices a commercial account as a fixed service fee for the
// (type, frequency) pair plus a per-dumpster rate, plus the pad surcharge.
// The per-dumpster rate is frequency-independent so that removing one
// dumpster always saves exactly that rate ($20 restaurant, $15 otherwise).
func commercialBase(tbl *rates.Table, in *quote.PricingInput) (money.Money, error) {
	fee, err := tbl.ServiceFee(in.CommercialType, in.Frequency)
	if err != nil {
		return money.Zero(), err
	}
	perDumpster, err := tbl.PerDumpster(in.CommercialType)
	if err != nil {
		return money.Zero(), err
	}

	price := fee.Add(perDumpster.MulInt(int64(in.DumpsterCount)))
	if in.HasDumpsterPad {
		price = price.Add(tbl.DumpsterPadSurcharge)
	}
	return price, nil
}

func hoaBase(tbl *rates.Table, in *quote.PricingInput) (money.Money, error) {
	unitRate, err := tbl.HOAUnitRate(in.Frequency)
	if err != nil {
		return money.Zero(), err
	}
	binRate, err := tbl.HOABinRate(in.Frequency)
	if err != nil {
		return money.Zero(), err
	}

	price := unitRate.MulInt(int64(in.HOAUnits)).Add(binRate.MulInt(int64(in.HOABins)))
	if in.BulkPricing {
		factor := oneHundred.Sub(tbl.BulkDiscountPercent).Div(oneHundred)
		price = price.Mul(factor)
	}
	return price, nil
}
