// File: fba.go
// Role: Flux balance analysis command, parsimonious variant included.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/gemflux/fba"
	"github.com/katalvlaran/gemflux/internal/cli/ui"
)

var (
	fbaObjective    string
	fbaBounds       []string
	fbaMedium       string
	fbaParsimonious bool
	fbaFraction     float64
	fbaTop          int
	fbaJSON         bool
	fbaOutput       string
)

func init() {
	fbaCmd.Flags().StringVar(&fbaObjective, "objective", "", "reaction to maximize instead of the model's objective")
	fbaCmd.Flags().StringArrayVar(&fbaBounds, "bound", nil, "override bounds, RXN=LO:HI (repeatable)")
	fbaCmd.Flags().StringVar(&fbaMedium, "medium", "", "media table (CSV) applied before solving")
	fbaCmd.Flags().BoolVar(&fbaParsimonious, "parsimonious", false, "pFBA: minimize total flux at the optimum")
	fbaCmd.Flags().Float64Var(&fbaFraction, "fraction", 0, "pFBA growth fraction in (0,1] (default from config)")
	fbaCmd.Flags().IntVar(&fbaTop, "top", 10, "rows in the flux table, 0 for all")
	fbaCmd.Flags().BoolVar(&fbaJSON, "json", false, "emit a JSON report instead of tables")
	fbaCmd.Flags().StringVarP(&fbaOutput, "output", "o", "", "write the JSON report to this path (implies --json)")
}

var fbaCmd = &cobra.Command{
	Use:   "fba <model>",
	Short: "Run flux balance analysis",
	Long: `Solve max c'v subject to S*v = 0 and the model's bounds, print the
objective and the largest fluxes. --parsimonious additionally minimizes
total flux while holding the objective, collapsing degenerate optima.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		m, err := loadModel(ctx, args[0])
		if err != nil {
			return err
		}
		if err := applyModelFlags(ctx, m, fbaMedium, fbaObjective, fbaBounds); err != nil {
			return err
		}

		opts := baseSolverOptions(ctx)
		if fbaFraction > 0 {
			opts.FractionOfOptimum = fbaFraction
		}

		var sol *fba.Solution
		if fbaParsimonious {
			sol, err = fba.Parsimonious(m, opts)
		} else {
			sol, err = fba.Solve(m, opts)
		}
		if err != nil {
			return err
		}
		logger.Info("solved",
			zap.String("run_id", runID),
			zap.Float64("objective", sol.Objective),
			zap.Duration("elapsed", sol.Elapsed))

		if fbaJSON || fbaOutput != "" {
			rep := struct {
				RunID        string             `json:"run_id"`
				Command      string             `json:"command"`
				Model        string             `json:"model"`
				Parsimonious bool               `json:"parsimonious,omitempty"`
				Status       string             `json:"status"`
				Objective    float64            `json:"objective"`
				TotalFlux    float64            `json:"total_flux"`
				ElapsedMS    float64            `json:"elapsed_ms"`
				Fluxes       map[string]float64 `json:"fluxes"`
			}{
				RunID:        runID,
				Command:      "fba",
				Model:        m.ID(),
				Parsimonious: fbaParsimonious,
				Status:       sol.Status.String(),
				Objective:    sol.Objective,
				TotalFlux:    sol.TotalFlux,
				ElapsedMS:    float64(sol.Elapsed) / float64(time.Millisecond),
				Fluxes:       sol.Fluxes(),
			}

			return writeJSON(ctx, fbaOutput, rep)
		}

		ui.Header(os.Stdout, "Flux balance analysis: "+m.ID())
		kv := ui.NewKeyValueTable(os.Stdout)
		kv.AddRow("Status", sol.Status.String())
		kv.AddRow("Objective", num(sol.Objective))
		kv.AddRow("Total flux", num(sol.TotalFlux))
		kv.Render()
		fmt.Println()

		rows := topFluxes(sol.Fluxes(), fbaTop, opts.Epsilon)
		tab := ui.NewTable(os.Stdout, "Reaction", "Name", "Flux").Align(2, ui.AlignRight)
		for _, row := range rows {
			r, err := m.Reaction(row.ID)
			if err != nil {
				return err
			}
			tab.AddRow(row.ID, r.Name, num(row.Flux))
		}
		tab.Render()
		fmt.Println()
		ui.OK(os.Stdout, "optimal in %s", sol.Elapsed.Round(time.Millisecond))

		return nil
	},
}
