// File: main.go
// Role: gemflux root command: global flags, configuration, logging, and
//       subcommand registration.

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/gemflux/internal/cli/config"
)

// Build-time version information, injected with -ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Shared command state, populated by the root PersistentPreRunE before any
// subcommand runs.
var (
	cfgPath string
	verbose bool
	noColor bool

	cfg    *config.Config
	logger *zap.Logger
	runID  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gemflux",
		Short: "Constraint-based analysis of genome-scale metabolic models",
		Long: `gemflux loads genome-scale metabolic models from SBML, applies growth
media, and runs flux balance analysis, flux variability, knockout screens,
and multi-organism community simulations from the command line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(cfgPath)
			if err != nil {
				return err
			}
			if noColor || cfg.NoColor {
				color.NoColor = true
			}

			logger = zap.NewNop()
			if verbose || cfg.Verbose {
				if logger, err = zap.NewDevelopment(); err != nil {
					return fmt.Errorf("logger: %w", err)
				}
			}
			runID = uuid.NewString()
			logger.Info("run started",
				zap.String("run_id", runID),
				zap.String("command", cmd.Name()),
				zap.Strings("args", args))

			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Info("run finished", zap.String("run_id", runID))
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ./gemflux.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "structured debug logs on stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(fbaCmd)
	rootCmd.AddCommand(fvaCmd)
	rootCmd.AddCommand(knockoutCmd)
	rootCmd.AddCommand(mediumCmd)
	rootCmd.AddCommand(communityCmd)
	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(reconstructCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gemflux:", err)
		os.Exit(1)
	}
}
