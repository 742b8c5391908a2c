// File: summary.go
// Role: Model statistics table.

package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/gemflux/gem"
	"github.com/katalvlaran/gemflux/internal/cli/ui"
)

var summaryExchanges bool

func init() {
	summaryCmd.Flags().BoolVar(&summaryExchanges, "exchanges", false, "also list every exchange reaction with its bounds")
}

var summaryCmd = &cobra.Command{
	Use:   "summary <model>",
	Short: "Print model statistics",
	Long:  "Load an SBML model and print its catalog sizes, objective, and optionally the exchange reactions.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		m, err := loadModel(ctx, args[0])
		if err != nil {
			return err
		}

		title := m.ID()
		if name := m.Name(); name != "" && name != title {
			title += " (" + name + ")"
		}
		ui.Header(os.Stdout, title)

		st := m.Stats()
		kv := ui.NewKeyValueTable(os.Stdout)
		kv.AddRow("Compartments", strconv.Itoa(st.CompartmentCount))
		kv.AddRow("Metabolites", strconv.Itoa(st.MetaboliteCount))
		kv.AddRow("Reactions", strconv.Itoa(st.ReactionCount))
		kv.AddRow("Genes", strconv.Itoa(st.GeneCount))
		kv.AddRow("Exchanges", strconv.Itoa(st.ExchangeCount))
		kv.AddRow("Reversible", strconv.Itoa(st.ReversibleCount))
		kv.AddRow("Objective", objectiveString(m))
		kv.Render()

		if summaryExchanges {
			fmt.Println()
			tab := ui.NewTable(os.Stdout, "Exchange", "Name", "Lower", "Upper").
				Align(2, ui.AlignRight).
				Align(3, ui.AlignRight)
			for _, id := range m.Exchanges() {
				r, err := m.Reaction(id)
				if err != nil {
					return err
				}
				tab.AddRow(id, r.Name, num(r.Lower), num(r.Upper))
			}
			tab.Render()
		}

		return nil
	},
}

// objectiveString renders the objective map as "RXN" or "0.5*RXN + ...",
// sorted for determinism.
func objectiveString(m *gem.Model) string {
	obj := m.Objective()
	if len(obj) == 0 {
		return "(none)"
	}
	ids := make([]string, 0, len(obj))
	for id := range obj {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		if w := obj[id]; w == 1 {
			parts = append(parts, id)
		} else {
			parts = append(parts, num(w)+"*"+id)
		}
	}

	return strings.Join(parts, " + ")
}
