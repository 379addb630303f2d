package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// newFactorsCmd creates the "factors" command group.
func newFactorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "factors",
		Short: "Inspect the active emission factor table",
	}
	cmd.AddCommand(newFactorsListCmd())
	return cmd
}

// newFactorsListCmd creates "factors list": dump every factor row.
func newFactorsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all emission factors in the active table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromContext(cmd.Context())

			table, err := loadFactorTable(cmd, cfg)
			if err != nil {
				return err
			}
			factors := table.All()

			if outputFormat(cmd, cfg) == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(factors)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tSUBTYPE\tFACTOR (kg CO2e)\tUNIT")
			for _, f := range factors {
				fmt.Fprintf(w, "%s\t%s\t%g\tper %s\n", f.Category, f.Subtype, f.PerUnit, f.Unit)
			}
			return w.Flush()
		},
	}

	cmd.Flags().String("factors", "", "path to a region-specific factor table YAML")
	return cmd
}
