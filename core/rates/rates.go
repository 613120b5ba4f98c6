// Package rates centralizes every tunable number in the pricing engine:
// per-unit rates, surcharges, floors, the review ceiling and count limits.
// The business tunes these without code changes, so nothing in the engine
// packages carries a pricing literal of its own.
package rates

import (
	"github.com/shopspring/decimal"

	"quote-engine/core/money"
	"quote-engine/core/quote"
	"quote-engine/internal/errors"
)

// Table holds the rate tables used by the base price calculator and the
// safeguard adjustor. Treat as immutable after construction.
type Table struct {
	// ResidentialPerBin is the monthly price per residential bin,
	// keyed by frequency. Rates rise with frequency.
	ResidentialPerBin map[quote.Frequency]money.Money `json:"residential_per_bin"`

	// CommercialServiceFee is the fixed monthly account fee,
	// keyed by commercial type and frequency.
	CommercialServiceFee map[quote.CommercialType]map[quote.Frequency]money.Money `json:"commercial_service_fee"`

	// CommercialPerDumpster is the monthly price per dumpster. Removing
	// one dumpster always drops the quote by exactly this amount.
	CommercialPerDumpster map[quote.CommercialType]money.Money `json:"commercial_per_dumpster"`

	// DumpsterPadSurcharge is the fixed monthly add-on for pad cleaning
	DumpsterPadSurcharge money.Money `json:"dumpster_pad_surcharge"`

	// DumpsterPadFloor is the absolute monthly minimum whenever the pad
	// add-on is selected
	DumpsterPadFloor money.Money `json:"dumpster_pad_floor"`

	// HOAPerUnit and HOAPerBin are the monthly HOA rates by frequency
	HOAPerUnit map[quote.Frequency]money.Money `json:"hoa_per_unit"`
	HOAPerBin  map[quote.Frequency]money.Money `json:"hoa_per_bin"`

	// BulkDiscountPercent is the HOA bulk pricing discount (0-100)
	BulkDiscountPercent decimal.Decimal `json:"bulk_discount_percent"`

	// PropertyMinimum is the minimum viable monthly job size per
	// property type
	PropertyMinimum map[quote.PropertyType]money.Money `json:"property_minimum"`
}

// Policy holds the review policy thresholds
type Policy struct {
	// ReviewCeiling is the monthly price above which a quote is routed
	// to manual review. Deployments have run both $500 and $600.
	ReviewCeiling money.Money `json:"review_ceiling"`

	// MaxAutoApproveDumpsters is the lowest dumpster count that triggers
	// manual review: counts at or above it are not auto-approved.
	MaxAutoApproveDumpsters int `json:"max_auto_approve_dumpsters"`

	// EnableLegacyFrequencyRules revives the superseded weekly-restaurant
	// and weekly-dumpster-pad review triggers. Off unless product
	// restores them.
	EnableLegacyFrequencyRules bool `json:"enable_legacy_frequency_rules"`
}

// Defaults returns the compiled-in rate table
func Defaults() *Table {
	return &Table{
		ResidentialPerBin: map[quote.Frequency]money.Money{
			quote.FrequencyMonthly:  money.FromInt(30),
			quote.FrequencyBiWeekly: money.FromInt(45),
			quote.FrequencyWeekly:   money.FromInt(60),
		},
		CommercialServiceFee: map[quote.CommercialType]map[quote.Frequency]money.Money{
			quote.CommercialRestaurant: {
				quote.FrequencyMonthly:  money.FromInt(50),
				quote.FrequencyBiWeekly: money.FromInt(85),
				quote.FrequencyWeekly:   money.FromInt(140),
			},
			quote.CommercialOfficeBuilding: {
				quote.FrequencyMonthly:  money.FromInt(40),
				quote.FrequencyBiWeekly: money.FromInt(70),
				quote.FrequencyWeekly:   money.FromInt(115),
			},
			quote.CommercialRetailStore: {
				quote.FrequencyMonthly:  money.FromInt(40),
				quote.FrequencyBiWeekly: money.FromInt(70),
				quote.FrequencyWeekly:   money.FromInt(115),
			},
			quote.CommercialWarehouse: {
				quote.FrequencyMonthly:  money.FromInt(45),
				quote.FrequencyBiWeekly: money.FromInt(75),
				quote.FrequencyWeekly:   money.FromInt(125),
			},
			quote.CommercialOther: {
				quote.FrequencyMonthly:  money.FromInt(40),
				quote.FrequencyBiWeekly: money.FromInt(70),
				quote.FrequencyWeekly:   money.FromInt(115),
			},
		},
		CommercialPerDumpster: map[quote.CommercialType]money.Money{
			quote.CommercialRestaurant:     money.FromInt(20),
			quote.CommercialOfficeBuilding: money.FromInt(15),
			quote.CommercialRetailStore:    money.FromInt(15),
			quote.CommercialWarehouse:      money.FromInt(15),
			quote.CommercialOther:          money.FromInt(15),
		},
		DumpsterPadSurcharge: money.FromInt(75),
		DumpsterPadFloor:     money.FromInt(150),
		HOAPerUnit: map[quote.Frequency]money.Money{
			quote.FrequencyMonthly:  money.FromInt(5),
			quote.FrequencyBiWeekly: money.FromInt(8),
			quote.FrequencyWeekly:   money.FromInt(12),
		},
		HOAPerBin: map[quote.Frequency]money.Money{
			quote.FrequencyMonthly:  money.FromInt(10),
			quote.FrequencyBiWeekly: money.FromInt(15),
			quote.FrequencyWeekly:   money.FromInt(20),
		},
		BulkDiscountPercent: decimal.NewFromInt(10),
		PropertyMinimum: map[quote.PropertyType]money.Money{
			quote.PropertyResidential: money.FromInt(25),
			quote.PropertyCommercial:  money.FromInt(75),
			quote.PropertyHOA:         money.FromInt(100),
		},
	}
}

// DefaultPolicy returns the compiled-in review policy
func DefaultPolicy() Policy {
	return Policy{
		ReviewCeiling:              money.FromInt(500),
		MaxAutoApproveDumpsters:    3,
		EnableLegacyFrequencyRules: false,
	}
}

// ResidentialRate resolves the per-bin rate for a frequency
func (t *Table) ResidentialRate(f quote.Frequency) (money.Money, error) {
	rate, ok := t.ResidentialPerBin[f]
	if !ok {
		return money.Zero(), errors.Configf("no residential rate for frequency %q", f)
	}
	return rate, nil
}

// ServiceFee resolves the commercial service fee for a (type, frequency) pair
func (t *Table) ServiceFee(ct quote.CommercialType, f quote.Frequency) (money.Money, error) {
	fees, ok := t.CommercialServiceFee[ct]
	if !ok {
		return money.Zero(), errors.Configf("no commercial service fees for type %q", ct)
	}
	fee, ok := fees[f]
	if !ok {
		return money.Zero(), errors.Configf("no commercial service fee for type %q at frequency %q", ct, f)
	}
	return fee, nil
}

// PerDumpster resolves the per-dumpster rate for a commercial type
func (t *Table) PerDumpster(ct quote.CommercialType) (money.Money, error) {
	rate, ok := t.CommercialPerDumpster[ct]
	if !ok {
		return money.Zero(), errors.Configf("no per-dumpster rate for commercial type %q", ct)
	}
	return rate, nil
}

// HOAUnitRate resolves the per-unit HOA rate for a frequency
func (t *Table) HOAUnitRate(f quote.Frequency) (money.Money, error) {
	rate, ok := t.HOAPerUnit[f]
	if !ok {
		return money.Zero(), errors.Configf("no hoa per-unit rate for frequency %q", f)
	}
	return rate, nil
}

// HOABinRate resolves the per-bin HOA rate for a frequency
func (t *Table) HOABinRate(f quote.Frequency) (money.Money, error) {
	rate, ok := t.HOAPerBin[f]
	if !ok {
		return money.Zero(), errors.Configf("no hoa per-bin rate for frequency %q", f)
	}
	return rate, nil
}

// Minimum returns the minimum viable job size for a property type.
// Zero when no minimum is configured.
func (t *Table) Minimum(pt quote.PropertyType) money.Money {
	return t.PropertyMinimum[pt]
}

// Validate checks the table for gaps and nonsense values. A gap here is a
// CONFIG_ERROR caught in tests, never discovered in production.
func (t *Table) Validate() error {
	for _, f := range quote.Frequencies() {
		if rate, ok := t.ResidentialPerBin[f]; !ok || !rate.IsPositive() {
			return errors.Configf("residential rate for %q missing or not positive", f)
		}
		if rate, ok := t.HOAPerUnit[f]; !ok || !rate.IsPositive() {
			return errors.Configf("hoa per-unit rate for %q missing or not positive", f)
		}
		if rate, ok := t.HOAPerBin[f]; !ok || !rate.IsPositive() {
			return errors.Configf("hoa per-bin rate for %q missing or not positive", f)
		}
	}

	if err := t.validateFrequencyOrder(t.ResidentialPerBin, "residential"); err != nil {
		return err
	}

	for _, ct := range quote.CommercialTypes() {
		for _, f := range quote.Frequencies() {
			fee, err := t.ServiceFee(ct, f)
			if err != nil {
				return err
			}
			if !fee.IsPositive() {
				return errors.Configf("commercial service fee for %q/%q not positive", ct, f)
			}
		}
		rate, err := t.PerDumpster(ct)
		if err != nil {
			return err
		}
		if !rate.IsPositive() {
			return errors.Configf("per-dumpster rate for %q not positive", ct)
		}
		if err := t.validateFrequencyOrder(t.CommercialServiceFee[ct], string(ct)); err != nil {
			return err
		}
	}

	if !t.DumpsterPadSurcharge.IsPositive() {
		return errors.Config("dumpster pad surcharge not positive")
	}
	if !t.DumpsterPadFloor.IsPositive() {
		return errors.Config("dumpster pad floor not positive")
	}
	if t.BulkDiscountPercent.IsNegative() || t.BulkDiscountPercent.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return errors.Config("bulk discount percent must be in [0, 100)")
	}
	for pt, min := range t.PropertyMinimum {
		if !min.IsPositive() {
			return errors.Configf("property minimum for %q not positive", pt)
		}
	}

	return nil
}

// validateFrequencyOrder enforces Monthly < BiWeekly < Weekly
func (t *Table) validateFrequencyOrder(rates map[quote.Frequency]money.Money, label string) error {
	prev := money.Zero()
	for _, f := range quote.Frequencies() {
		rate, ok := rates[f]
		if !ok {
			return errors.Configf("%s rate for frequency %q missing", label, f)
		}
		if !rate.GreaterThan(prev) {
			return errors.Configf("%s rates must rise with frequency, %q does not", label, f)
		}
		prev = rate
	}
	return nil
}

// Validate checks the policy thresholds
func (p Policy) Validate() error {
	if !p.ReviewCeiling.IsPositive() {
		return errors.Config("review ceiling not positive")
	}
	if p.MaxAutoApproveDumpsters < 1 {
		return errors.Config("max auto-approve dumpster count must be >= 1")
	}
	return nil
}
