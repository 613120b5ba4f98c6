package engine

import (
	"encoding/json"
	"reflect"
	"testing"

	"quote-engine/core/quote"
	"quote-engine/core/rates"
	"quote-engine/internal/errors"
)

func mustQuote(t *testing.T, eng *Engine, in *quote.PricingInput) *quote.PricingResult {
	t.Helper()
	res, err := eng.Quote(in)
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}
	return res
}

func TestResidentialAutoApproved(t *testing.T) {
	eng := Default()
	res := mustQuote(t, eng, &quote.PricingInput{
		PropertyType:    quote.PropertyResidential,
		ResidentialBins: 2,
		Frequency:       quote.FrequencyMonthly,
	})

	if res.FinalPrice != 60 {
		t.Errorf("final price = %d, want 60 (2 bins x $30)", res.FinalPrice)
	}
	if res.RequiresManualReview {
		t.Errorf("expected auto-approval, got reasons %v", res.ReviewReasons)
	}
	if len(res.ReviewReasons) != 0 {
		t.Errorf("expected empty review reasons, got %v", res.ReviewReasons)
	}
	if res.MinimumPriceEnforced {
		t.Error("no floor should apply at $60")
	}
}

func TestDumpsterCountTriggersReview(t *testing.T) {
	eng := Default()
	res := mustQuote(t, eng, &quote.PricingInput{
		PropertyType:   quote.PropertyCommercial,
		CommercialType: quote.CommercialRestaurant,
		DumpsterCount:  4,
		Frequency:      quote.FrequencyMonthly,
	})

	if !res.RequiresManualReview {
		t.Fatal("4 dumpsters should require review")
	}
	if !res.HasReviewReason(quote.ReasonDumpsterCount) {
		t.Errorf("expected dumpster_count reason, got %v", res.ReviewReasons)
	}
	if res.RecommendedBundle != quote.BundleNone {
		t.Errorf("manual-review quote got bundle %q", res.RecommendedBundle)
	}
}

func TestPadFloorEnforced(t *testing.T) {
	eng := Default()
	res := mustQuote(t, eng, &quote.PricingInput{
		PropertyType:   quote.PropertyCommercial,
		CommercialType: quote.CommercialRetailStore,
		DumpsterCount:  1,
		HasDumpsterPad: true,
		Frequency:      quote.FrequencyMonthly,
	})

	// Raw price 40 + 15 + 75 = 130, floored to 150
	if res.FinalPrice != 150 {
		t.Errorf("final price = %d, want 150", res.FinalPrice)
	}
	if !res.MinimumPriceEnforced {
		t.Error("expected minimum price enforcement")
	}
	if len(res.SafeguardReasons) == 0 {
		t.Error("expected safeguard reasons")
	}
	if res.RequiresManualReview {
		t.Errorf("floored quote under every threshold should auto-approve, got %v", res.ReviewReasons)
	}
}

func TestRestaurantWeeklyPadBundle(t *testing.T) {
	eng := Default()
	res := mustQuote(t, eng, &quote.PricingInput{
		PropertyType:   quote.PropertyCommercial,
		CommercialType: quote.CommercialRestaurant,
		DumpsterCount:  2,
		HasDumpsterPad: true,
		Frequency:      quote.FrequencyWeekly,
	})

	// 140 + 2x20 + 75 = 255, under the $500 ceiling
	if res.FinalPrice != 255 {
		t.Errorf("final price = %d, want 255", res.FinalPrice)
	}
	if res.RequiresManualReview {
		t.Fatalf("expected auto-approval, got %v", res.ReviewReasons)
	}
	if res.RecommendedBundle != quote.BundlePremiumPropertyProtection {
		t.Errorf("bundle = %q, want %q", res.RecommendedBundle, quote.BundlePremiumPropertyProtection)
	}
}

func TestSpecialRequirementsQuickFix(t *testing.T) {
	eng := Default()
	in := &quote.PricingInput{
		PropertyType:        quote.PropertyResidential,
		ResidentialBins:     1,
		Frequency:           quote.FrequencyMonthly,
		SpecialRequirements: "remove the wasp nest first",
	}

	res := mustQuote(t, eng, in)
	if !res.RequiresManualReview || !res.HasReviewReason(quote.ReasonSpecialRequirements) {
		t.Fatalf("expected special_requirements reason, got %v", res.ReviewReasons)
	}

	// Clearing the field flips the decision, everything else held constant
	cleared := *in
	cleared.SpecialRequirements = ""
	resCleared := mustQuote(t, eng, &cleared)
	if resCleared.RequiresManualReview {
		t.Errorf("clearing free text should auto-approve, got %v", resCleared.ReviewReasons)
	}
}

func TestCeilingQuickFix(t *testing.T) {
	eng := Default()
	// 140 fee + 15x20 dumpsters + 75 pad = 515, just over the $500 ceiling
	in := &quote.PricingInput{
		PropertyType:   quote.PropertyCommercial,
		CommercialType: quote.CommercialRestaurant,
		DumpsterCount:  15,
		HasDumpsterPad: true,
		Frequency:      quote.FrequencyWeekly,
	}

	res := mustQuote(t, eng, in)
	if res.FinalPrice != 515 {
		t.Fatalf("final price = %d, want 515", res.FinalPrice)
	}
	if !res.HasReviewReason(quote.ReasonPriceCeiling) {
		t.Fatalf("expected price_ceiling reason, got %v", res.ReviewReasons)
	}

	// One fewer dumpster saves exactly the $20 restaurant per-unit rate
	// and drops the quote back under the ceiling
	reduced := *in
	reduced.DumpsterCount--
	resReduced := mustQuote(t, eng, &reduced)

	if got := res.FinalPrice - resReduced.FinalPrice; got != 20 {
		t.Errorf("removing a dumpster saved %d, want 20", got)
	}
	if resReduced.HasReviewReason(quote.ReasonPriceCeiling) {
		t.Error("ceiling reason should disappear once under the ceiling")
	}
	// The count reason is still legitimately present at 14 dumpsters
	if !resReduced.HasReviewReason(quote.ReasonDumpsterCount) {
		t.Error("count reason should remain at 14 dumpsters")
	}
}

// TestDeterminism proves identical input produces a byte-identical result
func TestDeterminism(t *testing.T) {
	eng := Default()
	in := &quote.PricingInput{
		PropertyType:   quote.PropertyCommercial,
		CommercialType: quote.CommercialWarehouse,
		DumpsterCount:  2,
		HasDumpsterPad: true,
		Frequency:      quote.FrequencyBiWeekly,
	}

	first := mustQuote(t, eng, in)
	second := mustQuote(t, eng, in)

	if !reflect.DeepEqual(first, second) {
		t.Error("two calls with identical input disagreed")
	}

	b1, _ := json.Marshal(first)
	b2, _ := json.Marshal(second)
	if string(b1) != string(b2) {
		t.Errorf("serialized results differ:\n%s\n%s", b1, b2)
	}
}

// TestResultInvariants sweeps a grid of valid inputs and checks every
// published invariant of the result type.
func TestResultInvariants(t *testing.T) {
	eng := Default()

	var inputs []*quote.PricingInput
	for _, f := range quote.Frequencies() {
		for bins := 1; bins <= 6; bins++ {
			inputs = append(inputs, &quote.PricingInput{
				PropertyType: quote.PropertyResidential, ResidentialBins: bins, Frequency: f,
			})
		}
		for _, ct := range quote.CommercialTypes() {
			for count := 1; count <= 6; count++ {
				for _, pad := range []bool{false, true} {
					inputs = append(inputs, &quote.PricingInput{
						PropertyType: quote.PropertyCommercial, CommercialType: ct,
						DumpsterCount: count, HasDumpsterPad: pad, Frequency: f,
					})
				}
			}
		}
		for _, bulk := range []bool{false, true} {
			inputs = append(inputs, &quote.PricingInput{
				PropertyType: quote.PropertyHOA, HOAUnits: 40, HOABins: 16,
				BulkPricing: bulk, Frequency: f,
			})
		}
	}

	for _, in := range inputs {
		res := mustQuote(t, eng, in)

		if res.FinalPrice <= 0 {
			t.Fatalf("%+v: non-positive final price %d", in, res.FinalPrice)
		}
		if res.LowEstimate > res.FinalPrice || res.HighEstimate < res.FinalPrice {
			t.Fatalf("%+v: range (%d, %d) does not contain %d", in, res.LowEstimate, res.HighEstimate, res.FinalPrice)
		}
		if res.RequiresManualReview != (len(res.ReviewReasons) > 0) {
			t.Fatalf("%+v: review flag disagrees with reasons", in)
		}
		if res.MinimumPriceEnforced != (len(res.SafeguardReasons) > 0) {
			t.Fatalf("%+v: floor flag disagrees with safeguard reasons", in)
		}
		if res.RequiresManualReview && res.RecommendedBundle != quote.BundleNone {
			t.Fatalf("%+v: manual-review quote got bundle %q", in, res.RecommendedBundle)
		}
	}
}

// TestQuickFixNeverAddsReasons proves remediation monotonicity: removing a
// dumpster or clearing free text never introduces a review reason that was
// not already present.
func TestQuickFixNeverAddsReasons(t *testing.T) {
	eng := Default()

	codes := func(res *quote.PricingResult) map[quote.ReasonCode]bool {
		set := make(map[quote.ReasonCode]bool)
		for _, r := range res.ReviewReasons {
			set[r.Code] = true
		}
		return set
	}

	for _, ct := range quote.CommercialTypes() {
		for _, f := range quote.Frequencies() {
			for count := 2; count <= 20; count++ {
				in := &quote.PricingInput{
					PropertyType: quote.PropertyCommercial, CommercialType: ct,
					DumpsterCount: count, HasDumpsterPad: true, Frequency: f,
					SpecialRequirements: "gate code 4411",
				}
				before := codes(mustQuote(t, eng, in))

				fewer := *in
				fewer.DumpsterCount--
				afterFewer := codes(mustQuote(t, eng, &fewer))
				for code := range afterFewer {
					if !before[code] {
						t.Fatalf("%s/%s count %d: removing a dumpster introduced %s", ct, f, count, code)
					}
				}

				cleared := *in
				cleared.SpecialRequirements = ""
				afterCleared := codes(mustQuote(t, eng, &cleared))
				if afterCleared[quote.ReasonSpecialRequirements] {
					t.Fatalf("%s/%s: clearing free text did not remove its reason", ct, f)
				}
				for code := range afterCleared {
					if !before[code] {
						t.Fatalf("%s/%s: clearing free text introduced %s", ct, f, code)
					}
				}
			}
		}
	}
}

func TestHOABulkDiscountDoesNotMoveTheThreshold(t *testing.T) {
	eng := Default()
	in := &quote.PricingInput{
		PropertyType: quote.PropertyHOA,
		HOAUnits:     100, HOABins: 50,
		Frequency: quote.FrequencyWeekly,
	}

	// 100x12 + 50x20 = 2200, far over the ceiling either way
	res := mustQuote(t, eng, in)
	bulk := *in
	bulk.BulkPricing = true
	resBulk := mustQuote(t, eng, &bulk)

	if resBulk.FinalPrice >= res.FinalPrice {
		t.Errorf("bulk pricing should lower the price: %d vs %d", resBulk.FinalPrice, res.FinalPrice)
	}
	if !res.HasReviewReason(quote.ReasonPriceCeiling) || !resBulk.HasReviewReason(quote.ReasonPriceCeiling) {
		t.Error("both quotes are over the same ceiling; bulk pricing never moves the threshold")
	}
}

func TestRoundingHappensOnce(t *testing.T) {
	eng := Default()
	// 21x5 + 1x10 = 115, x0.9 = 103.5, rounded once at the end to 104
	res := mustQuote(t, eng, &quote.PricingInput{
		PropertyType: quote.PropertyHOA,
		HOAUnits:     21, HOABins: 1,
		BulkPricing: true,
		Frequency:   quote.FrequencyMonthly,
	})

	if res.FinalPrice != 104 {
		t.Errorf("final price = %d, want 104 (103.5 rounded at the end)", res.FinalPrice)
	}
}

func TestInvalidInputReturnsNoPartialResult(t *testing.T) {
	eng := Default()
	res, err := eng.Quote(&quote.PricingInput{
		PropertyType: quote.PropertyCommercial,
		Frequency:    quote.FrequencyMonthly,
	})

	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.IsType(err, errors.TypeValidation) {
		t.Errorf("expected VALIDATION_ERROR, got %v", err)
	}
	if res != nil {
		t.Errorf("expected nil result on validation failure, got %+v", res)
	}
}

func TestNewRejectsBrokenTables(t *testing.T) {
	tbl := rates.Defaults()
	delete(tbl.CommercialPerDumpster, quote.CommercialOther)

	if _, err := New(tbl, rates.DefaultPolicy()); err == nil {
		t.Fatal("expected error for table with a gap")
	}
}
