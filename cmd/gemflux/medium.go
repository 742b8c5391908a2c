// File: medium.go
// Role: Growth-medium workflows: show, apply, minimal.

package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/gemflux/internal/cli/ui"
	"github.com/katalvlaran/gemflux/medium"
	"github.com/katalvlaran/gemflux/sbml"
)

var mediumCmd = &cobra.Command{
	Use:   "medium",
	Short: "Inspect and edit growth media",
}

func init() {
	mediumCmd.AddCommand(mediumShowCmd)
	mediumCmd.AddCommand(mediumApplyCmd)
	mediumCmd.AddCommand(mediumMinimalCmd)

	mediumApplyCmd.Flags().StringVar(&mediumTable, "medium", "", "media table (CSV) to apply (required)")
	mediumApplyCmd.Flags().BoolVar(&mediumStrict, "strict", false, "fail on exchanges missing from the model")
	mediumApplyCmd.Flags().StringVarP(&mediumOutput, "output", "o", "", "where to save the constrained model (required)")

	mediumMinimalCmd.Flags().Float64Var(&mediumFraction, "fraction", 0, "growth fraction to retain, in (0,1] (default from config)")
	mediumMinimalCmd.Flags().StringVarP(&mediumMinOutput, "output", "o", "", "write the minimal media table here instead of stdout")
}

var (
	mediumTable     string
	mediumStrict    bool
	mediumOutput    string
	mediumFraction  float64
	mediumMinOutput string
)

var mediumShowCmd = &cobra.Command{
	Use:   "show <model>",
	Short: "Print the model's current growth medium",
	Long:  "Derive the environment from the model's exchange bounds and print it; negative lower bounds mark consumable compounds.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		m, err := loadModel(ctx, args[0])
		if err != nil {
			return err
		}
		env, err := medium.FromModel(m)
		if err != nil {
			return err
		}

		ui.Header(os.Stdout, "Growth medium: "+m.ID())
		tab := ui.NewTable(os.Stdout, "Exchange", "Compound", "Lower", "Upper").
			Align(2, ui.AlignRight).
			Align(3, ui.AlignRight)
		consumable := 0
		for _, id := range env.Exchanges() {
			lo, hi, _ := env.Bounds(id)
			if lo < 0 {
				consumable++
			}
			tab.AddRow(id, env.Name(id), num(lo), num(hi))
		}
		tab.Render()
		fmt.Println()
		ui.OK(os.Stdout, "%d exchanges, %d consumable", env.Len(), consumable)

		return nil
	},
}

var mediumApplyCmd = &cobra.Command{
	Use:   "apply <model>",
	Short: "Apply a media table to a model and save it",
	Long: `Load a media table, transfer its bounds onto the model's exchange
reactions, and save the constrained model as SBML. Exchanges absent from
the table keep their bounds; table rows absent from the model are skipped
unless --strict.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if mediumTable == "" {
			return fmt.Errorf("--medium is required")
		}
		if mediumOutput == "" {
			return fmt.Errorf("-o is required")
		}

		ctx := cmd.Context()
		m, err := loadModel(ctx, args[0])
		if err != nil {
			return err
		}
		env, err := medium.LoadTable(ctx, mediumTable, medium.Options{Ctx: ctx})
		if err != nil {
			return err
		}

		skipped, err := env.Apply(m, medium.Options{Ctx: ctx, Strict: mediumStrict})
		if err != nil {
			return err
		}
		for _, id := range skipped {
			ui.Warn(os.Stderr, "media table names %s, not in model", id)
		}

		if err := sbml.Save(ctx, m, mediumOutput); err != nil {
			return err
		}
		logger.Info("medium applied",
			zap.String("run_id", runID),
			zap.Int("exchanges", env.Len()),
			zap.Int("skipped", len(skipped)))
		ui.OK(os.Stdout, "%d exchange bounds applied, model saved to %s", env.Len()-len(skipped), mediumOutput)

		return nil
	},
}

var mediumMinimalCmd = &cobra.Command{
	Use:   "minimal <model>",
	Short: "Compute a minimal growth medium",
	Long: `Find a small set of consumable compounds that still supports growth at
the requested fraction of the optimum, greedily closing unused uptakes.
The result is written as a media table.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		m, err := loadModel(ctx, args[0])
		if err != nil {
			return err
		}
		env, err := medium.FromModel(m)
		if err != nil {
			return err
		}

		opts := medium.Options{Ctx: ctx, Epsilon: cfg.Solver.Epsilon, FractionOfOptimum: cfg.Solver.FractionOfOptimum}
		if mediumFraction > 0 {
			opts.FractionOfOptimum = mediumFraction
		}
		minimal, err := medium.Minimal(m, env, opts)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := medium.WriteTable(&buf, minimal); err != nil {
			return err
		}
		if err := writeData(ctx, mediumMinOutput, buf.Bytes()); err != nil {
			return err
		}
		if mediumMinOutput != "" && mediumMinOutput != "-" {
			ui.OK(os.Stdout, "minimal medium with %d compounds written to %s", minimal.Len(), mediumMinOutput)
		}

		return nil
	},
}
