// File: fva.go
// Role: Flux variability command.

package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/gemflux/fba"
	"github.com/katalvlaran/gemflux/internal/cli/ui"
)

var (
	fvaFraction  float64
	fvaWorkers   int
	fvaReactions []string
	fvaMedium    string
	fvaBounds    []string
	fvaJSON      bool
	fvaOutput    string
)

func init() {
	fvaCmd.Flags().Float64Var(&fvaFraction, "fraction", 0, "objective fraction to hold, in (0,1] (default from config)")
	fvaCmd.Flags().IntVar(&fvaWorkers, "workers", 0, "concurrent LP solves (default from config)")
	fvaCmd.Flags().StringSliceVar(&fvaReactions, "reactions", nil, "restrict to these reaction IDs (comma separated)")
	fvaCmd.Flags().StringVar(&fvaMedium, "medium", "", "media table (CSV) applied before solving")
	fvaCmd.Flags().StringArrayVar(&fvaBounds, "bound", nil, "override bounds, RXN=LO:HI (repeatable)")
	fvaCmd.Flags().BoolVar(&fvaJSON, "json", false, "emit a JSON report instead of the table")
	fvaCmd.Flags().StringVarP(&fvaOutput, "output", "o", "", "write the JSON report to this path (implies --json)")
}

var fvaCmd = &cobra.Command{
	Use:   "fva <model>",
	Short: "Run flux variability analysis",
	Long: `For each reaction, find the minimum and maximum flux attainable while
the objective stays at a fraction of its optimum. Wide ranges reveal
alternate pathways; zero-width ranges are forced fluxes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		m, err := loadModel(ctx, args[0])
		if err != nil {
			return err
		}
		if err := applyModelFlags(ctx, m, fvaMedium, "", fvaBounds); err != nil {
			return err
		}

		opts := baseSolverOptions(ctx)
		if fvaFraction > 0 {
			opts.FractionOfOptimum = fvaFraction
		}
		if fvaWorkers > 0 {
			opts.Workers = fvaWorkers
		}
		opts.Reactions = fvaReactions

		ranges, err := fba.Variability(m, opts)
		if err != nil {
			return err
		}
		logger.Info("variability done",
			zap.String("run_id", runID),
			zap.Int("reactions", len(ranges)))

		ids := make([]string, 0, len(ranges))
		for id := range ranges {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		if fvaJSON || fvaOutput != "" {
			type rangeJSON struct {
				Min float64 `json:"min"`
				Max float64 `json:"max"`
			}
			out := make(map[string]rangeJSON, len(ranges))
			for id, r := range ranges {
				out[id] = rangeJSON{Min: r.Min, Max: r.Max}
			}
			rep := struct {
				RunID    string               `json:"run_id"`
				Command  string               `json:"command"`
				Model    string               `json:"model"`
				Fraction float64              `json:"fraction_of_optimum"`
				Ranges   map[string]rangeJSON `json:"ranges"`
			}{
				RunID:    runID,
				Command:  "fva",
				Model:    m.ID(),
				Fraction: opts.FractionOfOptimum,
				Ranges:   out,
			}

			return writeJSON(ctx, fvaOutput, rep)
		}

		ui.Header(os.Stdout, fmt.Sprintf("Flux variability: %s (fraction %.2f)", m.ID(), opts.FractionOfOptimum))
		tab := ui.NewTable(os.Stdout, "Reaction", "Min", "Max", "Width").
			Align(1, ui.AlignRight).
			Align(2, ui.AlignRight).
			Align(3, ui.AlignRight)
		for _, id := range ids {
			r := ranges[id]
			tab.AddRow(id, num(r.Min), num(r.Max), num(r.Width()))
		}
		tab.Render()
		fmt.Println()
		ui.OK(os.Stdout, "%d reactions screened", len(ranges))

		return nil
	},
}
