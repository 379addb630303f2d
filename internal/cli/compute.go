package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mfleet/ecotally/internal/emission"
	"github.com/mfleet/ecotally/internal/ingest"
)

// computeRow pairs a record with its computed emission for output.
type computeRow struct {
	ID       string  `json:"id"`
	Category string  `json:"category"`
	Subtype  string  `json:"subtype"`
	Quantity float64 `json:"quantity"`
	CO2Kg    float64 `json:"co2_kg"`
}

// newComputeCmd creates the "compute" subcommand: per-activity emissions for
// every record in a snapshot.
func newComputeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute per-activity CO2 emissions from a records export",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)

			table, err := loadFactorTable(cmd, cfg)
			if err != nil {
				return err
			}

			recordsPath, _ := cmd.Flags().GetString("records")
			records, err := ingest.ReadFile(ctx, recordsPath, table)
			if err != nil {
				return err
			}

			results, err := emission.ComputeAll(ctx, records, table)
			if err != nil {
				return err
			}

			rows := make([]computeRow, len(records))
			var totalKg float64
			for i, rec := range records {
				rows[i] = computeRow{
					ID:       rec.ID,
					Category: string(rec.Category),
					Subtype:  rec.Subtype,
					Quantity: rec.Quantity,
					CO2Kg:    results[i].CO2Kg,
				}
				totalKg += results[i].CO2Kg
			}

			logger.Info().
				Int("record_count", len(rows)).
				Float64("total_co2_kg", totalKg).
				Msg("computed emissions")

			if outputFormat(cmd, cfg) == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			return renderComputeTable(cmd, rows, totalKg)
		},
	}

	cmd.Flags().String("records", "", "path to activity records export (JSON array or NDJSON)")
	cmd.Flags().String("factors", "", "path to a region-specific factor table YAML")
	_ = cmd.MarkFlagRequired("records")

	return cmd
}

// renderComputeTable writes the per-record table with a total row.
func renderComputeTable(cmd *cobra.Command, rows []computeRow, totalKg float64) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCATEGORY\tSUBTYPE\tQUANTITY\tCO2 (kg)")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%s\n",
			row.ID, row.Category, row.Subtype, row.Quantity, formatKg(row.CO2Kg))
	}
	fmt.Fprintf(w, "\tTOTAL\t\t\t%s\n", formatKg(totalKg))
	return w.Flush()
}
