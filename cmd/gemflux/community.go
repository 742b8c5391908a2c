// File: community.go
// Role: Multi-organism workflows: community FBA and SteadyCom.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/gemflux/community"
	"github.com/katalvlaran/gemflux/gem"
	"github.com/katalvlaran/gemflux/internal/cli/ui"
	"github.com/katalvlaran/gemflux/medium"
)

var communityCmd = &cobra.Command{
	Use:   "community",
	Short: "Simulate multi-organism communities",
	Long: `Merge the member models named by a community manifest (YAML) into one
stoichiometric system with a shared extracellular pool, then analyze it.`,
}

var (
	commMedium  string
	commBiomass bool
	commTotal   float64
	commMaxMu   float64
	commJSON    bool
	commOutput  string
)

func init() {
	communityCmd.AddCommand(communityFBACmd)
	communityCmd.AddCommand(communitySteadycomCmd)

	for _, c := range []*cobra.Command{communityFBACmd, communitySteadycomCmd} {
		c.Flags().StringVar(&commMedium, "medium", "", "media table (CSV) applied to the shared pool exchanges")
		c.Flags().BoolVar(&commJSON, "json", false, "emit a JSON report instead of tables")
		c.Flags().StringVarP(&commOutput, "output", "o", "", "write the JSON report to this path (implies --json)")
	}
	communityFBACmd.Flags().BoolVar(&commBiomass, "community-biomass", false, "optimize an aggregate biomass over all members")
	communitySteadycomCmd.Flags().Float64Var(&commTotal, "total", 0, "total community biomass to distribute (default 1)")
	communitySteadycomCmd.Flags().Float64Var(&commMaxMu, "max-growth", 0, "upper bracket for the growth search (default 10)")
}

// loadCommunity resolves a manifest into member models plus shared options.
func loadCommunity(cmd *cobra.Command, specRef string) (*community.Spec, []*gem.Model, community.Options, error) {
	ctx := cmd.Context()
	spec, err := community.LoadSpec(ctx, specRef)
	if err != nil {
		return nil, nil, community.Options{}, err
	}
	models, err := spec.Models(ctx)
	if err != nil {
		return nil, nil, community.Options{}, err
	}
	logger.Info("community loaded",
		zap.String("run_id", runID),
		zap.Int("members", len(models)))

	opts := community.Options{Ctx: ctx, Epsilon: cfg.Solver.Epsilon}
	if commMedium != "" {
		env, err := medium.LoadTable(ctx, commMedium, medium.Options{Ctx: ctx})
		if err != nil {
			return nil, nil, community.Options{}, err
		}
		opts.Environment = env
	}

	return spec, models, opts, nil
}

var communityFBACmd = &cobra.Command{
	Use:   "fba <spec.yaml>",
	Short: "Joint flux balance analysis of a community",
	Long: `Merge the community and maximize the summed member objectives. Without
abundance coupling the pool goes to whichever member uses it best; see
'community steadycom' for the balanced-growth alternative.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		spec, models, opts, err := loadCommunity(cmd, args[0])
		if err != nil {
			return err
		}
		opts.CommunityBiomass = commBiomass

		res, err := community.FBA(models, opts)
		if err != nil {
			return err
		}

		if commJSON || commOutput != "" {
			rep := struct {
				RunID     string             `json:"run_id"`
				Command   string             `json:"command"`
				Members   int                `json:"members"`
				Objective float64            `json:"objective"`
				Growth    map[string]float64 `json:"growth"`
				Fluxes    map[string]float64 `json:"fluxes"`
			}{
				RunID:     runID,
				Command:   "community fba",
				Members:   len(models),
				Objective: res.Solution.Objective,
				Growth:    res.Growth,
				Fluxes:    res.Solution.Fluxes(),
			}

			return writeJSON(ctx, commOutput, rep)
		}

		ui.Header(os.Stdout, fmt.Sprintf("Community FBA: %d members", len(models)))
		tab := ui.NewTable(os.Stdout, "Member", "Growth").Align(1, ui.AlignRight)
		for _, ms := range spec.Members {
			tab.AddRow(ms.ID, num(res.Growth[ms.ID]))
		}
		tab.Render()
		fmt.Println()
		ui.OK(os.Stdout, "community objective %s", num(res.Solution.Objective))

		return nil
	},
}

var communitySteadycomCmd = &cobra.Command{
	Use:   "steadycom <spec.yaml>",
	Short: "Find the balanced community growth rate",
	Long: `Search for the largest growth rate every member can sustain
simultaneously, with fluxes coupled to member abundances. Reports the
growth rate and the abundance split.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		spec, models, opts, err := loadCommunity(cmd, args[0])
		if err != nil {
			return err
		}
		if commTotal > 0 {
			opts.TotalBiomass = commTotal
		}
		if commMaxMu > 0 {
			opts.MaxGrowth = commMaxMu
		}

		st, err := community.SteadyCom(models, opts)
		if err != nil {
			return err
		}
		logger.Info("steadycom done",
			zap.String("run_id", runID),
			zap.Float64("growth", st.Growth),
			zap.Int("iterations", st.Iterations))

		if commJSON || commOutput != "" {
			rep := struct {
				RunID      string             `json:"run_id"`
				Command    string             `json:"command"`
				Members    int                `json:"members"`
				Growth     float64            `json:"growth"`
				Iterations int                `json:"iterations"`
				Abundance  map[string]float64 `json:"abundance"`
				Fluxes     map[string]float64 `json:"fluxes"`
			}{
				RunID:      runID,
				Command:    "community steadycom",
				Members:    len(models),
				Growth:     st.Growth,
				Iterations: st.Iterations,
				Abundance:  st.Abundance,
				Fluxes:     st.Fluxes,
			}

			return writeJSON(ctx, commOutput, rep)
		}

		total := 0.0
		for _, x := range st.Abundance {
			total += x
		}
		ui.Header(os.Stdout, fmt.Sprintf("SteadyCom: %d members", len(models)))
		tab := ui.NewTable(os.Stdout, "Member", "Abundance", "Share").
			Align(1, ui.AlignRight).
			Align(2, ui.AlignRight)
		for _, ms := range spec.Members {
			x := st.Abundance[ms.ID]
			share := 0.0
			if total > 0 {
				share = 100 * x / total
			}
			tab.AddRow(ms.ID, num(x), fmt.Sprintf("%.1f%%", share))
		}
		tab.Render()
		fmt.Println()
		ui.OK(os.Stdout, "balanced growth %s after %d probes", num(st.Growth), st.Iterations)

		return nil
	},
}
