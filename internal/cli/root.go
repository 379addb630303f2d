// Package cli wires the ecotally command tree: computing per-activity
// emissions, aggregating periods against the configured baseline, and
// inspecting the active factor table.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mfleet/ecotally/internal/config"
	"github.com/mfleet/ecotally/internal/factor"
	"github.com/mfleet/ecotally/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the ecotally CLI and wires
// up logging, configuration loading, and subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var cleanup func()

	cmd := &cobra.Command{
		Use:     "ecotally",
		Short:   "Personal carbon footprint calculator",
		Long:    "ecotally: compute CO2-equivalent emissions from activity records, aggregate them by period, and compare against reference baselines",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			loggingCfg := logging.Config{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				Output: logging.OutputStderr,
				File:   cfg.Logging.File,
			}
			if cfg.Logging.File != "" {
				loggingCfg.Output = logging.OutputFile
			}
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				loggingCfg.Level = "debug"
				loggingCfg.Format = logging.FormatConsole
				loggingCfg.Output = logging.OutputStderr
				loggingCfg.File = ""
			}

			base, loggingCleanup, err := logging.New(loggingCfg)
			if err != nil {
				return err
			}
			cleanup = loggingCleanup
			logger = logging.ComponentLogger(base, "cli")

			ctx := logging.WithContext(cmd.Context(), base)
			ctx = withConfig(ctx, cfg)
			cmd.SetContext(ctx)

			logger.Debug().Str("command", cmd.Name()).Msg("command started")
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if cleanup != nil {
				cleanup()
			}
		},
	}

	cmd.PersistentFlags().String("config", "", "path to ecotally config YAML")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringP("output", "o", "", "output format: table or json (default from config)")

	cmd.AddCommand(newComputeCmd(), newReportCmd(), newFactorsCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Compute per-activity emissions from a records export
  ecotally compute --records activities.json

  # Weekly report with classification and tips
  ecotally report --records activities.json --granularity week

  # Browse the report interactively
  ecotally report --records activities.json --granularity month --interactive

  # Show the active emission factor table
  ecotally factors list

  # Scaffold a config file
  ecotally config init > ~/.config/ecotally/config.yaml`

// configKey is the context key for the loaded configuration.
type configKey struct{}

// withConfig stores the loaded config in ctx.
func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFromContext returns the loaded config, or defaults when the command
// runs outside the root PreRun (tests).
func configFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

// loadConfig reads the --config flag, falling back to defaults when unset.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadFile(path)
}

// loadFactorTable resolves the active factor table: the --factors flag wins,
// then the configured region table, then the built-in one.
func loadFactorTable(cmd *cobra.Command, cfg *config.Config) (*factor.Table, error) {
	path, _ := cmd.Flags().GetString("factors")
	if path == "" {
		path = cfg.Factors.Path
	}
	if path == "" {
		return factor.Builtin(), nil
	}
	table, err := factor.Load(cmd.Context(), path)
	if err != nil {
		return nil, fmt.Errorf("loading factor table: %w", err)
	}
	return table, nil
}

// outputFormat resolves the effective output format for a command.
func outputFormat(cmd *cobra.Command, cfg *config.Config) string {
	if flag, _ := cmd.Flags().GetString("output"); flag != "" {
		return flag
	}
	if cfg.Output.DefaultFormat != "" {
		return cfg.Output.DefaultFormat
	}
	return "table"
}
