// Package cmd - rates command
package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"quote-engine/core/rates"
)

// ratesCmd prints the active rate tables and review policy, after any HCL
// overlay, so a tuning change can be inspected before deployment.
var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Print the active rate tables and review policy",
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, pol, err := rates.Load(activeRatesFile())
		if err != nil {
			return err
		}

		view := struct {
			Table  *rates.Table `json:"table"`
			Policy rates.Policy `json:"policy"`
		}{Table: tbl, Policy: pol}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	},
}
