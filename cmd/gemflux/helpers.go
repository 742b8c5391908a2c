// File: helpers.go
// Role: Shared plumbing for the subcommands: model loading, flag parsing,
//       solver option assembly, output writing, and JSON reports.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"go.uber.org/zap"

	"github.com/katalvlaran/gemflux/fba"
	"github.com/katalvlaran/gemflux/gem"
	"github.com/katalvlaran/gemflux/internal/cli/ui"
	"github.com/katalvlaran/gemflux/medium"
	"github.com/katalvlaran/gemflux/sbml"
)

// loadModel reads one SBML model; ref may be a local path or any afs URL.
func loadModel(ctx context.Context, ref string) (*gem.Model, error) {
	m, err := sbml.Load(ctx, ref)
	if err != nil {
		return nil, err
	}
	st := m.Stats()
	logger.Info("model loaded",
		zap.String("run_id", runID),
		zap.String("model", m.ID()),
		zap.Int("metabolites", st.MetaboliteCount),
		zap.Int("reactions", st.ReactionCount))

	return m, nil
}

// boundEdit is one parsed --bound flag.
type boundEdit struct {
	rxnID  string
	lo, hi float64
}

// parseBounds turns repeated --bound RXN=LO:HI values into bound edits,
// preserving flag order.
func parseBounds(specs []string) ([]boundEdit, error) {
	edits := make([]boundEdit, 0, len(specs))
	for _, s := range specs {
		id, bounds, ok := strings.Cut(s, "=")
		if !ok || id == "" {
			return nil, fmt.Errorf("bad --bound %q, want RXN=LO:HI", s)
		}
		loStr, hiStr, ok := strings.Cut(bounds, ":")
		if !ok {
			return nil, fmt.Errorf("bad --bound %q, want RXN=LO:HI", s)
		}
		lo, err := strconv.ParseFloat(loStr, 64)
		if err != nil {
			return nil, fmt.Errorf("bad --bound %q: %v", s, err)
		}
		hi, err := strconv.ParseFloat(hiStr, 64)
		if err != nil {
			return nil, fmt.Errorf("bad --bound %q: %v", s, err)
		}
		edits = append(edits, boundEdit{rxnID: id, lo: lo, hi: hi})
	}

	return edits, nil
}

// applyModelFlags mutates the freshly loaded model with the common
// --medium, --bound, and --objective flags, in that order so explicit
// bounds win over the media table.
func applyModelFlags(ctx context.Context, m *gem.Model, mediumRef, objective string, bounds []string) error {
	if mediumRef != "" {
		env, err := medium.LoadTable(ctx, mediumRef, medium.Options{Ctx: ctx})
		if err != nil {
			return err
		}
		skipped, err := env.Apply(m, medium.Options{Ctx: ctx})
		if err != nil {
			return err
		}
		for _, id := range skipped {
			ui.Warn(os.Stderr, "media table names %s, not in model", id)
		}
	}

	edits, err := parseBounds(bounds)
	if err != nil {
		return err
	}
	for _, e := range edits {
		if err := m.SetBounds(e.rxnID, e.lo, e.hi); err != nil {
			return fmt.Errorf("--bound %s: %w", e.rxnID, err)
		}
	}

	if objective != "" {
		if err := m.SetObjectiveReaction(objective); err != nil {
			return fmt.Errorf("--objective %s: %w", objective, err)
		}
	}

	return nil
}

// baseSolverOptions projects the configuration onto fba.Options; commands
// override individual fields from their own flags.
func baseSolverOptions(ctx context.Context) fba.Options {
	return fba.Options{
		Ctx:               ctx,
		Epsilon:           cfg.Solver.Epsilon,
		FractionOfOptimum: cfg.Solver.FractionOfOptimum,
		Workers:           cfg.Solver.Workers,
	}
}

// writeData sends bytes to stdout when target is empty or "-", otherwise to
// the target URL (local path, mem://, or a registered cloud scheme).
func writeData(ctx context.Context, target string, data []byte) error {
	if target == "" || target == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	fs := afs.New()
	if err := fs.Upload(ctx, target, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}

	return nil
}

// writeJSON emits v indented to stdout or the -o target.
func writeJSON(ctx context.Context, target string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	return writeData(ctx, target, append(data, '\n'))
}

// fluxRow pairs a reaction with its flux for sorted rendering.
type fluxRow struct {
	ID   string
	Flux float64
}

// topFluxes returns the n largest fluxes by magnitude, ties broken by ID;
// n < 1 keeps every reaction. Near-zero fluxes are dropped.
func topFluxes(fluxes map[string]float64, n int, eps float64) []fluxRow {
	rows := make([]fluxRow, 0, len(fluxes))
	for id, v := range fluxes {
		if v > eps || v < -eps {
			rows = append(rows, fluxRow{ID: id, Flux: v})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		ai, aj := abs(rows[i].Flux), abs(rows[j].Flux)
		if ai != aj {
			return ai > aj
		}
		return rows[i].ID < rows[j].ID
	})
	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}

	return rows
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// num renders a float the way the tables expect: compact, six significant
// digits.
func num(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
