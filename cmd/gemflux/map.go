// File: map.go
// Role: Flux map export: solve or load fluxes, render DOT/JSON/YAML.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"go.uber.org/zap"

	"github.com/katalvlaran/gemflux/fba"
	"github.com/katalvlaran/gemflux/fluxmap"
	"github.com/katalvlaran/gemflux/internal/cli/ui"
)

var (
	mapSolution     string
	mapParsimonious bool
	mapMedium       string
	mapFormat       string
	mapPrune        float64
	mapTitle        string
	mapOutput       string
)

func init() {
	mapCmd.Flags().StringVar(&mapSolution, "solution", "", "reuse fluxes from a JSON report or CSV flux table instead of solving")
	mapCmd.Flags().BoolVar(&mapParsimonious, "parsimonious", false, "solve with pFBA for a cleaner map")
	mapCmd.Flags().StringVar(&mapMedium, "medium", "", "media table (CSV) applied before solving")
	mapCmd.Flags().StringVar(&mapFormat, "format", "dot", "output format: dot, json, or yaml")
	mapCmd.Flags().Float64Var(&mapPrune, "prune", 0, "drop links carrying less than this flux")
	mapCmd.Flags().StringVar(&mapTitle, "title", "", "map title (DOT label)")
	mapCmd.Flags().StringVarP(&mapOutput, "output", "o", "", "write here instead of stdout")
}

var mapCmd = &cobra.Command{
	Use:   "map <model>",
	Short: "Export a flux map of the network",
	Long: `Build a bipartite metabolite/reaction graph annotated with a flux
distribution and render it as Graphviz DOT or a node-link JSON/YAML
document. Fluxes come from a fresh solve, or from --solution.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		m, err := loadModel(ctx, args[0])
		if err != nil {
			return err
		}
		if err := applyModelFlags(ctx, m, mapMedium, "", nil); err != nil {
			return err
		}

		var mapOpts []fluxmap.Option
		if mapPrune > 0 {
			mapOpts = append(mapOpts, fluxmap.WithPrune(mapPrune))
		}
		if mapTitle != "" {
			mapOpts = append(mapOpts, fluxmap.WithTitle(mapTitle))
		}

		var fm *fluxmap.Map
		if mapSolution != "" {
			fluxes, err := readFluxes(ctx, mapSolution)
			if err != nil {
				return err
			}
			fm, err = fluxmap.FromFluxes(m, fluxes, mapOpts...)
			if err != nil {
				return err
			}
		} else {
			var sol *fba.Solution
			opts := baseSolverOptions(ctx)
			if mapParsimonious {
				sol, err = fba.Parsimonious(m, opts)
			} else {
				sol, err = fba.Solve(m, opts)
			}
			if err != nil {
				return err
			}
			fm, err = fluxmap.New(m, sol, mapOpts...)
			if err != nil {
				return err
			}
		}
		logger.Info("map assembled",
			zap.String("run_id", runID),
			zap.Int("nodes", len(fm.Nodes())),
			zap.Int("links", len(fm.Links())))

		var data []byte
		switch strings.ToLower(mapFormat) {
		case "dot":
			data = []byte(fm.ToDOT())
		case "json":
			var buf bytes.Buffer
			if err := fm.WriteJSON(&buf); err != nil {
				return err
			}
			data = buf.Bytes()
		case "yaml":
			var buf bytes.Buffer
			if err := fm.WriteYAML(&buf); err != nil {
				return err
			}
			data = buf.Bytes()
		default:
			return fmt.Errorf("unknown --format %q, want dot, json, or yaml", mapFormat)
		}

		if err := writeData(ctx, mapOutput, data); err != nil {
			return err
		}
		if mapOutput != "" && mapOutput != "-" {
			ui.OK(os.Stdout, "map with %d nodes and %d links written to %s",
				len(fm.Nodes()), len(fm.Links()), mapOutput)
		}

		return nil
	},
}

// readFluxes loads a reaction-to-flux table: a gemflux JSON report (its
// "fluxes" object), a bare JSON object, or a CSV flux table.
func readFluxes(ctx context.Context, ref string) (map[string]float64, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ref, err)
	}

	if strings.HasSuffix(strings.ToLower(ref), ".json") {
		var rep struct {
			Fluxes map[string]float64 `json:"fluxes"`
		}
		if err := json.Unmarshal(data, &rep); err == nil && len(rep.Fluxes) > 0 {
			return rep.Fluxes, nil
		}
		var plain map[string]float64
		if err := json.Unmarshal(data, &plain); err != nil {
			return nil, fmt.Errorf("parse %s: %w", ref, err)
		}

		return plain, nil
	}

	fluxes, err := fba.ReadFluxCSV(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", ref, err)
	}

	return fluxes, nil
}
