package quote

// ReasonCode is a stable machine-readable identifier for a policy check or
// safeguard. UI code matches on codes, never on prose, to decide which
// corrective "quick fix" action to offer.
type ReasonCode string

const (
	// Review policy codes
	ReasonPriceCeiling        ReasonCode = "price_ceiling"
	ReasonDumpsterCount       ReasonCode = "dumpster_count"
	ReasonSpecialRequirements ReasonCode = "special_requirements"

	// Legacy frequency-based codes, disabled by default
	ReasonWeeklyRestaurant  ReasonCode = "weekly_restaurant"
	ReasonWeeklyDumpsterPad ReasonCode = "weekly_dumpster_pad"

	// Safeguard codes
	ReasonDumpsterPadMinimum ReasonCode = "dumpster_pad_minimum"
	ReasonResidentialMinimum ReasonCode = "residential_minimum"
	ReasonCommercialMinimum  ReasonCode = "commercial_minimum"
	ReasonHOAMinimum         ReasonCode = "hoa_minimum"
)

// Reason pairs a stable code with the display string derived from it
type Reason struct {
	Code    ReasonCode `json:"code"`
	Message string     `json:"message"`
}

// BundleID names a marketing bundle recommendation
type BundleID string

const (
	BundleNone                      BundleID = ""
	BundlePremiumPropertyProtection BundleID = "Premium Property Protection"
	BundleRestaurantCompliance      BundleID = "Restaurant Compliance Bundle"
	BundleCommercialCleanSite       BundleID = "Commercial Clean Site Bundle"
)

// PricingResult is the single immutable output of a pricing request.
// Identical input always produces an identical result.
type PricingResult struct {
	// LowEstimate and HighEstimate bound the customer-facing range,
	// in whole dollars. LowEstimate <= FinalPrice <= HighEstimate.
	LowEstimate  int64 `json:"low_estimate"`
	HighEstimate int64 `json:"high_estimate"`

	// FinalPrice is the single authoritative monthly price after floor
	// enforcement, in whole dollars. Always positive.
	FinalPrice int64 `json:"final_price"`

	// MinimumPriceEnforced is true iff a pricing floor replaced the raw
	// computed price.
	MinimumPriceEnforced bool `json:"minimum_price_enforced"`

	RequiresManualReview bool `json:"requires_manual_review"`

	// ReviewReasons is ordered, one entry per violated policy check.
	// Non-empty exactly when RequiresManualReview is true.
	ReviewReasons []Reason `json:"review_reasons"`

	// SafeguardReasons describes floor adjustments, in application order.
	// Non-empty exactly when MinimumPriceEnforced is true.
	SafeguardReasons []Reason `json:"safeguard_reasons"`

	// RecommendedBundle is always BundleNone when review is required.
	RecommendedBundle BundleID `json:"recommended_bundle,omitempty"`
}

// HasReviewReason reports whether a review reason with the code is present
func (r *PricingResult) HasReviewReason(code ReasonCode) bool {
	for _, reason := range r.ReviewReasons {
		if reason.Code == code {
			return true
		}
	}
	return false
}

// HasSafeguardReason reports whether a safeguard reason with the code is present
func (r *PricingResult) HasSafeguardReason(code ReasonCode) bool {
	for _, reason := range r.SafeguardReasons {
		if reason.Code == code {
			return true
		}
	}
	return false
}
