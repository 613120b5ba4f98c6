// Package cmd - quote command
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quote-engine/core/engine"
	"quote-engine/core/output"
	"quote-engine/core/quote"
	"quote-engine/core/rates"
	"quote-engine/internal/config"
	"quote-engine/internal/logging"
)

var (
	inputPath    string
	outputFormat string
)

// quoteCmd represents the quote command
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a service request",
	Long: `Price one structured service request and print the result.

The input is a JSON PricingInput document read from a file, or from stdin
when the path is "-".

Examples:
  quote-engine quote --input request.json
  quote-engine quote --input request.json --format json
  quote-engine quote --input - < request.json`,
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().StringVarP(&inputPath, "input", "i", "", "path to a JSON service request, or - for stdin (required)")
	quoteCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json)")
	_ = quoteCmd.MarkFlagRequired("input")
}

func runQuote(cmd *cobra.Command, args []string) error {
	in, err := readInput(inputPath)
	if err != nil {
		return err
	}

	eng, err := buildEngine()
	if err != nil {
		return err
	}

	logging.Debug("pricing request",
		zap.String("property_type", string(in.PropertyType)),
		zap.String("frequency", string(in.Frequency)))

	result, err := eng.Quote(in)
	if err != nil {
		return err
	}

	format := output.Format(outputFormat)
	if format == "" {
		format = output.Format(config.Get().Output.DefaultFormat)
	}
	formatter, err := output.New(format)
	if err != nil {
		return err
	}

	return formatter.Render(cmd.OutOrStdout(), in, result)
}

func readInput(path string) (*quote.PricingInput, error) {
	var data []byte
	var err error

	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	var in quote.PricingInput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}
	return &in, nil
}

func buildEngine() (*engine.Engine, error) {
	tbl, pol, err := rates.Load(activeRatesFile())
	if err != nil {
		return nil, err
	}
	return engine.New(tbl, pol)
}
