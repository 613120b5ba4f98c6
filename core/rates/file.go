package rates

import (
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/shopspring/decimal"

	"quote-engine/core/money"
	"quote-engine/core/quote"
	"quote-engine/internal/errors"
)

// ratesFile is the HCL schema for rate overrides. Every block is optional;
// whatever is present is overlaid on the compiled-in defaults so a tuning
// file only needs to name the numbers it changes.
//
//	policy {
//	  review_ceiling             = 600
//	  max_auto_approve_dumpsters = 3
//	}
//
//	commercial "Restaurant" {
//	  monthly      = 50
//	  biweekly     = 85
//	  weekly       = 140
//	  per_dumpster = 20
//	}
type ratesFile struct {
	Policy      *policyBlock      `hcl:"policy,block"`
	Residential *frequencyBlock   `hcl:"residential,block"`
	Commercial  []commercialBlock `hcl:"commercial,block"`
	HOA         *hoaBlock         `hcl:"hoa,block"`
	Surcharges  *surchargesBlock  `hcl:"surcharges,block"`
	Minimums    *minimumsBlock    `hcl:"minimums,block"`
}

type policyBlock struct {
	ReviewCeiling              *int64 `hcl:"review_ceiling,optional"`
	MaxAutoApproveDumpsters    *int   `hcl:"max_auto_approve_dumpsters,optional"`
	EnableLegacyFrequencyRules *bool  `hcl:"enable_legacy_frequency_rules,optional"`
}

type frequencyBlock struct {
	Monthly  int64 `hcl:"monthly"`
	BiWeekly int64 `hcl:"biweekly"`
	Weekly   int64 `hcl:"weekly"`
}

type commercialBlock struct {
	Type        string `hcl:"type,label"`
	Monthly     int64  `hcl:"monthly"`
	BiWeekly    int64  `hcl:"biweekly"`
	Weekly      int64  `hcl:"weekly"`
	PerDumpster int64  `hcl:"per_dumpster"`
}

type hoaBlock struct {
	PerUnit             *frequencyBlock `hcl:"per_unit,block"`
	PerBin              *frequencyBlock `hcl:"per_bin,block"`
	BulkDiscountPercent *float64        `hcl:"bulk_discount_percent,optional"`
}

type surchargesBlock struct {
	DumpsterPad      *int64 `hcl:"dumpster_pad,optional"`
	DumpsterPadFloor *int64 `hcl:"dumpster_pad_floor,optional"`
}

type minimumsBlock struct {
	Residential *int64 `hcl:"residential,optional"`
	Commercial  *int64 `hcl:"commercial,optional"`
	HOA         *int64 `hcl:"hoa,optional"`
}

// Load reads an HCL rates file and overlays it on the defaults.
// An empty path returns the validated defaults unchanged.
func Load(path string) (*Table, Policy, error) {
	tbl := Defaults()
	pol := DefaultPolicy()

	if path != "" {
		var file ratesFile
		if err := hclsimple.DecodeFile(path, nil, &file); err != nil {
			return nil, Policy{}, errors.Parsing("failed to parse rates file "+path, err)
		}
		if err := overlay(tbl, &pol, &file); err != nil {
			return nil, Policy{}, err
		}
	}

	if err := tbl.Validate(); err != nil {
		return nil, Policy{}, err
	}
	if err := pol.Validate(); err != nil {
		return nil, Policy{}, err
	}
	return tbl, pol, nil
}

func overlay(tbl *Table, pol *Policy, file *ratesFile) error {
	if p := file.Policy; p != nil {
		if p.ReviewCeiling != nil {
			pol.ReviewCeiling = money.FromInt(*p.ReviewCeiling)
		}
		if p.MaxAutoApproveDumpsters != nil {
			pol.MaxAutoApproveDumpsters = *p.MaxAutoApproveDumpsters
		}
		if p.EnableLegacyFrequencyRules != nil {
			pol.EnableLegacyFrequencyRules = *p.EnableLegacyFrequencyRules
		}
	}

	if r := file.Residential; r != nil {
		tbl.ResidentialPerBin = r.toMap()
	}

	for _, c := range file.Commercial {
		ct := quote.CommercialType(c.Type)
		if !ct.Valid() {
			return errors.Configf("rates file names unknown commercial type %q", c.Type)
		}
		tbl.CommercialServiceFee[ct] = map[quote.Frequency]money.Money{
			quote.FrequencyMonthly:  money.FromInt(c.Monthly),
			quote.FrequencyBiWeekly: money.FromInt(c.BiWeekly),
			quote.FrequencyWeekly:   money.FromInt(c.Weekly),
		}
		tbl.CommercialPerDumpster[ct] = money.FromInt(c.PerDumpster)
	}

	if h := file.HOA; h != nil {
		if h.PerUnit != nil {
			tbl.HOAPerUnit = h.PerUnit.toMap()
		}
		if h.PerBin != nil {
			tbl.HOAPerBin = h.PerBin.toMap()
		}
		if h.BulkDiscountPercent != nil {
			tbl.BulkDiscountPercent = decimal.NewFromFloat(*h.BulkDiscountPercent)
		}
	}

	if s := file.Surcharges; s != nil {
		if s.DumpsterPad != nil {
			tbl.DumpsterPadSurcharge = money.FromInt(*s.DumpsterPad)
		}
		if s.DumpsterPadFloor != nil {
			tbl.DumpsterPadFloor = money.FromInt(*s.DumpsterPadFloor)
		}
	}

	if m := file.Minimums; m != nil {
		if m.Residential != nil {
			tbl.PropertyMinimum[quote.PropertyResidential] = money.FromInt(*m.Residential)
		}
		if m.Commercial != nil {
			tbl.PropertyMinimum[quote.PropertyCommercial] = money.FromInt(*m.Commercial)
		}
		if m.HOA != nil {
			tbl.PropertyMinimum[quote.PropertyHOA] = money.FromInt(*m.HOA)
		}
	}

	return nil
}

func (b *frequencyBlock) toMap() map[quote.Frequency]money.Money {
	return map[quote.Frequency]money.Money{
		quote.FrequencyMonthly:  money.FromInt(b.Monthly),
		quote.FrequencyBiWeekly: money.FromInt(b.BiWeekly),
		quote.FrequencyWeekly:   money.FromInt(b.Weekly),
	}
}
