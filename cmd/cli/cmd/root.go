// Package cmd provides the CLI commands for quote-engine.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quote-engine/internal/config"
	"quote-engine/internal/logging"
)

var (
	cfgFile   string
	ratesFile string
	verbose   bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "quote-engine",
	Short: "Price cleaning service quotes with review safeguards",
	Long: `quote-engine is a deterministic pricing tool for bin and dumpster
cleaning quotes.

It turns a structured service request into a monthly price estimate, applies
pricing floors, decides auto-approval versus manual review with explainable
reasons, and recommends an upsell bundle when eligible.

Examples:
  quote-engine quote --input request.json
  quote-engine quote --input - --format json < request.json
  quote-engine rates --rates custom-rates.hcl`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.quote-engine.json)")
	rootCmd.PersistentFlags().StringVar(&ratesFile, "rates", "", "HCL rates file overlaid on the built-in defaults")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(ratesCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// activeRatesFile resolves the rates file from the flag or the config
func activeRatesFile() string {
	if ratesFile != "" {
		return ratesFile
	}
	return config.Get().Rates.File
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("quote-engine version 0.1.0")
	},
}
