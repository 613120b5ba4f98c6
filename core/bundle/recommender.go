// Package bundle recommends a marketing bundle for auto-approved quotes.
// Pure lookup over a small decision table; manual-review quotes never get a
// recommendation because their price is not yet trusted.
package bundle

import (
	"quote-engine/core/quote"
)

// entry is one row of the recommendation table. A zero CommercialType or
// Frequency matches any value.
type entry struct {
	commercialType quote.CommercialType
	frequency      quote.Frequency
	bundle         quote.BundleID
}

// table is consulted top-down; the first matching row wins. It only covers
// commercial quotes with the dumpster pad add-on. Restaurant + Monthly is
// deliberately outside the table and yields no recommendation.
var table = []entry{
	{quote.CommercialRestaurant, quote.FrequencyWeekly, quote.BundlePremiumPropertyProtection},
	{quote.CommercialRestaurant, quote.FrequencyBiWeekly, quote.BundleRestaurantCompliance},
	{quote.CommercialOfficeBuilding, "", quote.BundleCommercialCleanSite},
	{quote.CommercialRetailStore, "", quote.BundleCommercialCleanSite},
	{quote.CommercialWarehouse, "", quote.BundleCommercialCleanSite},
	{quote.CommercialOther, "", quote.BundleCommercialCleanSite},
}

// Recommend returns the bundle for an input, or BundleNone. Only invoked by
// the engine when the quote is auto-approved.
func Recommend(in *quote.PricingInput) quote.BundleID {
	if in.PropertyType != quote.PropertyCommercial || !in.HasDumpsterPad {
		return quote.BundleNone
	}

	for _, e := range table {
		if e.commercialType != in.CommercialType {
			continue
		}
		if e.frequency != "" && e.frequency != in.Frequency {
			continue
		}
		return e.bundle
	}
	return quote.BundleNone
}
