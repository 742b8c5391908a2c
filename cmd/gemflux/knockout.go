// File: knockout.go
// Role: Gene and reaction deletion screens.

package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/gemflux/fba"
	"github.com/katalvlaran/gemflux/internal/cli/ui"
)

var (
	koGenes     []string
	koReactions []string
	koWorkers   int
	koMedium    string
	koJSON      bool
	koOutput    string
)

func init() {
	knockoutCmd.Flags().StringSliceVar(&koGenes, "genes", nil, "genes to delete one at a time (comma separated, or 'all')")
	knockoutCmd.Flags().StringSliceVar(&koReactions, "reactions", nil, "reactions to delete one at a time (comma separated, or 'all')")
	knockoutCmd.Flags().IntVar(&koWorkers, "workers", 0, "concurrent LP solves (default from config)")
	knockoutCmd.Flags().StringVar(&koMedium, "medium", "", "media table (CSV) applied before screening")
	knockoutCmd.Flags().BoolVar(&koJSON, "json", false, "emit a JSON report instead of the table")
	knockoutCmd.Flags().StringVarP(&koOutput, "output", "o", "", "write the JSON report to this path (implies --json)")
}

var knockoutCmd = &cobra.Command{
	Use:   "knockout <model>",
	Short: "Run a single-deletion screen",
	Long: `Delete each listed gene or reaction in turn, re-solve, and report the
residual growth. Rows are sorted lethal-first. Pass --genes all or
--reactions all to screen the whole catalog.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if (len(koGenes) == 0) == (len(koReactions) == 0) {
			return fmt.Errorf("exactly one of --genes or --reactions is required")
		}

		ctx := cmd.Context()
		m, err := loadModel(ctx, args[0])
		if err != nil {
			return err
		}
		if err := applyModelFlags(ctx, m, koMedium, "", nil); err != nil {
			return err
		}

		opts := baseSolverOptions(ctx)
		if koWorkers > 0 {
			opts.Workers = koWorkers
		}

		// Wild-type growth anchors the ratio column.
		wild, err := fba.Solve(m, opts)
		if err != nil {
			return err
		}

		var (
			kind    string
			results []fba.KnockoutResult
		)
		if len(koGenes) > 0 {
			kind = "gene"
			results, err = fba.DeleteGenes(m, expandAll(koGenes, m.GeneIDs()), opts)
		} else {
			kind = "reaction"
			results, err = fba.DeleteReactions(m, expandAll(koReactions, m.ReactionIDs()), opts)
		}
		if err != nil {
			return err
		}
		logger.Info("screen done",
			zap.String("run_id", runID),
			zap.String("kind", kind),
			zap.Int("deletions", len(results)))

		sort.Slice(results, func(i, j int) bool {
			if results[i].Growth != results[j].Growth {
				return results[i].Growth < results[j].Growth
			}
			return results[i].ID < results[j].ID
		})

		if koJSON || koOutput != "" {
			type rowJSON struct {
				ID       string   `json:"id"`
				Growth   float64  `json:"growth"`
				Ratio    float64  `json:"ratio"`
				Status   string   `json:"status"`
				Disabled []string `json:"disabled,omitempty"`
			}
			rows := make([]rowJSON, 0, len(results))
			for _, res := range results {
				rows = append(rows, rowJSON{
					ID:       res.ID,
					Growth:   res.Growth,
					Ratio:    ratio(res.Growth, wild.Objective),
					Status:   res.Status.String(),
					Disabled: res.Disabled,
				})
			}
			rep := struct {
				RunID     string    `json:"run_id"`
				Command   string    `json:"command"`
				Model     string    `json:"model"`
				Kind      string    `json:"kind"`
				WildType  float64   `json:"wild_type_growth"`
				Deletions []rowJSON `json:"deletions"`
			}{
				RunID:     runID,
				Command:   "knockout",
				Model:     m.ID(),
				Kind:      kind,
				WildType:  wild.Objective,
				Deletions: rows,
			}

			return writeJSON(ctx, koOutput, rep)
		}

		label := strings.ToUpper(kind[:1]) + kind[1:]
		ui.Header(os.Stdout, fmt.Sprintf("%s knockout screen: %s (wild type %s)",
			label, m.ID(), num(wild.Objective)))
		tab := ui.NewTable(os.Stdout, label, "Growth", "Ratio", "Status", "Disabled").
			Align(1, ui.AlignRight).
			Align(2, ui.AlignRight)
		lethal := 0
		for _, res := range results {
			rt := ratio(res.Growth, wild.Objective)
			if rt < 0.01 {
				lethal++
			}
			tab.AddRow(res.ID, num(res.Growth), fmt.Sprintf("%.2f", rt),
				res.Status.String(), strings.Join(res.Disabled, " "))
		}
		tab.Render()
		fmt.Println()
		ui.OK(os.Stdout, "%d deletions screened, %d lethal", len(results), lethal)

		return nil
	},
}

// expandAll substitutes the full catalog for the single value "all".
func expandAll(requested, catalog []string) []string {
	if len(requested) == 1 && strings.EqualFold(requested[0], "all") {
		return catalog
	}

	return requested
}

// ratio guards the wild-type division for zero-growth models.
func ratio(growth, wild float64) float64 {
	if wild == 0 {
		return 0
	}

	return growth / wild
}
