package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mfleet/ecotally/internal/config"
	"github.com/mfleet/ecotally/internal/engine"
	"github.com/mfleet/ecotally/internal/equiv"
	"github.com/mfleet/ecotally/internal/ingest"
	"github.com/mfleet/ecotally/internal/tui"
)

// reportPeriod is one period row of the report output.
type reportPeriod struct {
	PeriodStart    time.Time             `json:"period_start"`
	PeriodEnd      time.Time             `json:"period_end"`
	TotalCO2Kg     float64               `json:"total_co2_kg"`
	Ratio          float64               `json:"ratio"`
	Classification engine.Classification `json:"classification"`
	ActivityCount  int                   `json:"activity_count"`
}

// report is the full report document for JSON output.
type report struct {
	Granularity engine.Granularity `json:"granularity"`
	BaselineKg  float64            `json:"baseline_avg_kg"`
	TargetKg    float64            `json:"baseline_target_kg"`
	Periods     []reportPeriod     `json:"periods"`
	Tips        []engine.Tip       `json:"tips"`
	// Equivalent describes the most recent period's total in relatable
	// terms; nil when the total is below the display threshold.
	Equivalent *equiv.Output `json:"equivalent,omitempty"`
}

// newReportCmd creates the "report" subcommand: period aggregates classified
// against the configured baseline, with tips for the most recent period.
func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate emissions by period and classify against the baseline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)

			granFlag, _ := cmd.Flags().GetString("granularity")
			granularity, err := engine.ParseGranularity(granFlag)
			if err != nil {
				return err
			}

			loc, err := resolveLocation(cmd, cfg)
			if err != nil {
				return err
			}

			table, err := loadFactorTable(cmd, cfg)
			if err != nil {
				return err
			}

			recordsPath, _ := cmd.Flags().GetString("records")
			records, err := ingest.ReadFile(ctx, recordsPath, table)
			if err != nil {
				return err
			}

			aggregates, err := engine.AggregateByPeriod(ctx, records, table, granularity, loc)
			if err != nil {
				return err
			}

			baseline := cfg.Baseline.Baseline(granularity)
			doc := report{Granularity: granularity, BaselineKg: baseline.AverageKg, TargetKg: baseline.TargetKg}
			for _, agg := range aggregates {
				class, classErr := engine.Classify(ctx, agg, baseline)
				if classErr != nil {
					return classErr
				}
				ratio, ratioErr := engine.Ratio(agg, baseline)
				if ratioErr != nil {
					return ratioErr
				}
				doc.Periods = append(doc.Periods, reportPeriod{
					PeriodStart:    agg.PeriodStart,
					PeriodEnd:      agg.PeriodEnd,
					TotalCO2Kg:     agg.TotalCO2Kg,
					Ratio:          ratio,
					Classification: class,
					ActivityCount:  agg.ActivityCount,
				})
			}
			if len(aggregates) > 0 {
				latest := aggregates[len(aggregates)-1]
				doc.Tips = engine.TipList(latest)
				equivalent, equivErr := equiv.Calculate(latest.TotalCO2Kg)
				if equivErr != nil {
					return equivErr
				}
				if !equivalent.IsEmpty {
					doc.Equivalent = &equivalent
				}
			}

			logger.Info().
				Str("granularity", string(granularity)).
				Int("period_count", len(doc.Periods)).
				Msg("report generated")

			if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
				model := tui.NewReportModel(aggregates, baseline, granularity)
				program := tea.NewProgram(model, tea.WithOutput(cmd.OutOrStdout()))
				_, runErr := program.Run()
				return runErr
			}

			if outputFormat(cmd, cfg) == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(doc)
			}
			return renderReportTable(cmd, doc)
		},
	}

	cmd.Flags().String("records", "", "path to activity records export (JSON array or NDJSON)")
	cmd.Flags().String("factors", "", "path to a region-specific factor table YAML")
	cmd.Flags().String("granularity", "week", "period granularity: day, week, or month")
	cmd.Flags().String("tz", "", "IANA timezone for period boundaries (default from config)")
	cmd.Flags().Bool("interactive", false, "browse the report in an interactive view")
	_ = cmd.MarkFlagRequired("records")

	return cmd
}

// resolveLocation picks the period-boundary timezone: --tz flag first, then
// config, then local time.
func resolveLocation(cmd *cobra.Command, cfg *config.Config) (*time.Location, error) {
	if tz, _ := cmd.Flags().GetString("tz"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("unknown timezone %q: %w", tz, err)
		}
		return loc, nil
	}
	return cfg.Location()
}

// renderReportTable writes the period table followed by the tip list.
func renderReportTable(cmd *cobra.Command, doc report) error {
	out := cmd.OutOrStdout()

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PERIOD\tACTIVITIES\tCO2 (kg)\tVS AVG\tRATING")
	for _, p := range doc.Periods {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
			p.PeriodStart.Format("2006-01-02"),
			p.ActivityCount,
			formatKg(p.TotalCO2Kg),
			formatRatio(p.Ratio),
			classBadge(out, p.Classification))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(doc.Periods) == 0 {
		fmt.Fprintln(out, "no activity in the requested window")
		return nil
	}

	fmt.Fprintf(out, "\nBaseline: %s kg average, %s kg target per %s\n",
		formatKg(doc.BaselineKg), formatKg(doc.TargetKg), doc.Granularity)

	if doc.Equivalent != nil {
		fmt.Fprintf(out, "Latest period: %s\n", doc.Equivalent.DisplayText)
	}

	if len(doc.Tips) > 0 {
		fmt.Fprintf(out, "\nTips (focus: %s):\n", doc.Tips[0].Category)
		for i, tip := range doc.Tips {
			fmt.Fprintf(out, "  %d. %s (saves ~%s kg/week)\n     %s\n",
				i+1, tip.Title, formatKg(tip.EstSavingsKg), tip.Detail)
		}
	}
	return nil
}
