// Package quote defines the value types of the pricing engine: the
// caller-supplied PricingInput and the engine-produced PricingResult.
// Both are constructed fresh per request and never mutated.
package quote

import (
	"strings"

	"quote-engine/internal/errors"
)

// PropertyType classifies the serviced property
type PropertyType string

const (
	PropertyResidential PropertyType = "residential"
	PropertyCommercial  PropertyType = "commercial"
	PropertyHOA         PropertyType = "hoa"
)

// Valid reports whether the property type is a known member
func (p PropertyType) Valid() bool {
	switch p {
	case PropertyResidential, PropertyCommercial, PropertyHOA:
		return true
	}
	return false
}

// CommercialType classifies a commercial property
type CommercialType string

const (
	CommercialRestaurant     CommercialType = "Restaurant"
	CommercialOfficeBuilding CommercialType = "OfficeBuilding"
	CommercialRetailStore    CommercialType = "RetailStore"
	CommercialWarehouse      CommercialType = "Warehouse"
	CommercialOther          CommercialType = "Other"
)

// Valid reports whether the commercial type is a known member
func (c CommercialType) Valid() bool {
	switch c {
	case CommercialRestaurant, CommercialOfficeBuilding, CommercialRetailStore,
		CommercialWarehouse, CommercialOther:
		return true
	}
	return false
}

// CommercialTypes lists all commercial types in stable order
func CommercialTypes() []CommercialType {
	return []CommercialType{
		CommercialRestaurant,
		CommercialOfficeBuilding,
		CommercialRetailStore,
		CommercialWarehouse,
		CommercialOther,
	}
}

// Frequency is the cleaning service frequency
type Frequency string

const (
	FrequencyMonthly  Frequency = "Monthly"
	FrequencyBiWeekly Frequency = "BiWeekly"
	FrequencyWeekly   Frequency = "Weekly"
)

// Valid reports whether the frequency is a known member
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyMonthly, FrequencyBiWeekly, FrequencyWeekly:
		return true
	}
	return false
}

// Frequencies lists all frequencies from least to most frequent
func Frequencies() []Frequency {
	return []Frequency{FrequencyMonthly, FrequencyBiWeekly, FrequencyWeekly}
}

// PricingInput is the structured service request the engine prices.
// Fields outside the declared property type are ignored.
type PricingInput struct {
	PropertyType   PropertyType   `json:"property_type"`
	CommercialType CommercialType `json:"commercial_type,omitempty"`

	// DumpsterCount is the commercial bin/dumpster count (commercial only)
	DumpsterCount int `json:"dumpster_count,omitempty"`

	// HasDumpsterPad is the dumpster pad cleaning add-on (commercial only)
	HasDumpsterPad bool `json:"has_dumpster_pad,omitempty"`

	Frequency Frequency `json:"frequency"`

	// SpecialRequirements is free text; presence signals unpriceable
	// customization and always routes the quote to manual review.
	SpecialRequirements string `json:"special_requirements,omitempty"`

	// ResidentialBins is the bin count (residential only)
	ResidentialBins int `json:"residential_bins,omitempty"`

	HOAUnits int `json:"hoa_units,omitempty"`
	HOABins  int `json:"hoa_bins,omitempty"`

	// BulkPricing applies the HOA bulk discount. Informational: it
	// changes the price, never the auto-approval threshold.
	BulkPricing bool `json:"bulk_pricing,omitempty"`
}

// HasSpecialRequirements reports whether the free-text field is non-empty
// after trimming
func (in *PricingInput) HasSpecialRequirements() bool {
	return strings.TrimSpace(in.SpecialRequirements) != ""
}

// Validate re-validates the caller contract defensively. The form layer
// validates required fields before invoking the engine, but the engine
// does not trust that: missing or out-of-domain fields for the declared
// property type fail fast instead of silently defaulting.
func (in *PricingInput) Validate() error {
	if !in.PropertyType.Valid() {
		return errors.Validationf("unknown property type %q", in.PropertyType)
	}
	if !in.Frequency.Valid() {
		return errors.Validationf("unknown frequency %q", in.Frequency)
	}

	switch in.PropertyType {
	case PropertyResidential:
		if in.ResidentialBins < 1 {
			return errors.Validation("residential quote requires residential_bins >= 1")
		}
	case PropertyCommercial:
		if !in.CommercialType.Valid() {
			return errors.Validationf("commercial quote requires a known commercial_type, got %q", in.CommercialType)
		}
		if in.DumpsterCount < 1 {
			return errors.Validation("commercial quote requires dumpster_count >= 1")
		}
	case PropertyHOA:
		if in.HOAUnits < 1 {
			return errors.Validation("hoa quote requires hoa_units >= 1")
		}
		if in.HOABins < 1 {
			return errors.Validation("hoa quote requires hoa_bins >= 1")
		}
	}

	return nil
}
