// Package output renders pricing results for humans and machines.
// It never computes anything; the engine's result is the single source of
// truth and this package only presents it.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"quote-engine/core/quote"
	"quote-engine/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable text report
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	Format() Format
	Render(w io.Writer, in *quote.PricingInput, res *quote.PricingResult) error
}

// New returns the formatter for a format name
func New(f Format) (Formatter, error) {
	switch f {
	case FormatCLI:
		return &cliFormatter{}, nil
	case FormatJSON:
		return &jsonFormatter{}, nil
	default:
		return nil, errors.Validationf("unknown output format %q", f)
	}
}

// QuickFix maps a review reason code to the corrective action the quote
// form offers for it. Matching happens on the code, never on prose.
func QuickFix(code quote.ReasonCode) string {
	switch code {
	case quote.ReasonPriceCeiling:
		return "Reduce service scope to bring the monthly price under the ceiling"
	case quote.ReasonDumpsterCount:
		return "Reduce the dumpster count"
	case quote.ReasonSpecialRequirements:
		return "Clear the special requirements field"
	case quote.ReasonWeeklyRestaurant, quote.ReasonWeeklyDumpsterPad:
		return "Choose a less frequent service schedule"
	default:
		return ""
	}
}

type cliFormatter struct{}

func (f *cliFormatter) Format() Format { return FormatCLI }

func (f *cliFormatter) Render(w io.Writer, in *quote.PricingInput, res *quote.PricingResult) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Estimated range: $%d - $%d / month\n", res.LowEstimate, res.HighEstimate))
	sb.WriteString(fmt.Sprintf("Quoted price:    $%d / month\n", res.FinalPrice))

	if res.MinimumPriceEnforced {
		sb.WriteString("\nPricing safeguards applied:\n")
		for _, r := range res.SafeguardReasons {
			sb.WriteString(fmt.Sprintf("  • %s\n", r.Message))
		}
	}

	if res.RequiresManualReview {
		sb.WriteString("\nStatus: MANUAL REVIEW\n")
		for _, r := range res.ReviewReasons {
			sb.WriteString(fmt.Sprintf("  ✗ %s\n", r.Message))
			if fix := QuickFix(r.Code); fix != "" {
				sb.WriteString(fmt.Sprintf("    Fix: %s\n", fix))
			}
		}
	} else {
		sb.WriteString("\nStatus: AUTO-APPROVED\n")
		if res.RecommendedBundle != quote.BundleNone {
			sb.WriteString(fmt.Sprintf("Recommended bundle: %s\n", res.RecommendedBundle))
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

type jsonFormatter struct{}

func (f *jsonFormatter) Format() Format { return FormatJSON }

func (f *jsonFormatter) Render(w io.Writer, in *quote.PricingInput, res *quote.PricingResult) error {
	envelope := struct {
		Input  *quote.PricingInput  `json:"input"`
		Result *quote.PricingResult `json:"result"`
	}{Input: in, Result: res}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(envelope)
}
