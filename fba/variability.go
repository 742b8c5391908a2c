// File: variability.go
// Role: Flux-variability analysis: per-reaction min/max fluxes compatible
//       with near-optimal growth.

package fba

import (
	"fmt"
	"math"

	"github.com/katalvlaran/gemflux/gem"
	"github.com/katalvlaran/gemflux/linprog"
	"github.com/katalvlaran/gemflux/stoich"
)

// Variability computes, for every reaction (or Options.Reactions when set),
// the minimal and maximal flux attainable while the model objective stays at
// FractionOfOptimum of its optimum.
//
// Steps:
//  1. Solve plain FBA for the optimum Z*.
//  2. Per target reaction, assemble the network LP plus the growth floor
//     c·v ≥ γ·Z* and solve twice: minimize v_r, then maximize v_r.
//  3. An unbounded direction is reported as ±Inf, never as an error.
//
// Targets are solved independently; Options.Workers > 1 fans them out over a
// bounded pool. The result map has exactly one Range per target.
//
// Complexity: 2·T simplex solves for T target reactions.
func Variability(m *gem.Model, opts Options) (map[string]Range, error) {
	opts.normalize()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNilModel
	}

	// 1) The reference optimum.
	primal, err := Solve(m, opts)
	if err != nil {
		return nil, err
	}
	floor := opts.FractionOfOptimum*primal.Objective - opts.Epsilon

	// Resolve targets up front so index i means the same reaction everywhere.
	targets := opts.Reactions
	if len(targets) == 0 {
		targets = m.ReactionIDs()
	} else {
		for _, id := range targets {
			if !m.HasReaction(id) {
				return nil, fmt.Errorf("fba: variability target %s: %w", id, gem.ErrUnknownReaction)
			}
		}
	}

	sm, err := stoich.Build(m)
	if err != nil {
		return nil, fmt.Errorf("fba: build stoichiometric matrix: %w", err)
	}
	objective := m.Objective()

	// 2) Two directed solves per target, each on its own problem instance.
	ranges := make([]Range, len(targets))
	err = forEachIndex(opts.Ctx, opts.Workers, len(targets), func(i int) error {
		rxnID := targets[i]
		p, perr := buildProblemFrom(m, sm)
		if perr != nil {
			return perr
		}
		if perr = p.AddGreaterEq(objective, floor); perr != nil {
			return fmt.Errorf("fba: growth floor: %w", perr)
		}

		lo, derr := directedFlux(p, rxnID, linprog.Minimize, opts)
		if derr != nil {
			return fmt.Errorf("fba: min flux of %s: %w", rxnID, derr)
		}
		hi, derr := directedFlux(p, rxnID, linprog.Maximize, opts)
		if derr != nil {
			return fmt.Errorf("fba: max flux of %s: %w", rxnID, derr)
		}
		ranges[i] = Range{Min: lo, Max: hi}

		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make(map[string]Range, len(targets))
	for i, rxnID := range targets {
		out[rxnID] = ranges[i]
	}

	return out, nil
}

// directedFlux optimizes a single reaction's flux in the given sense over an
// already-constrained problem. Unbounded optima map to ±Inf.
func directedFlux(p *linprog.Problem, rxnID string, sense linprog.Sense, opts Options) (float64, error) {
	if err := p.SetObjective(sense, map[string]float64{rxnID: 1}); err != nil {
		return 0, err
	}
	sol, err := p.Solve(opts.lpOptions())
	if err != nil {
		return 0, err
	}
	switch sol.Status {
	case linprog.StatusOptimal:
		return sol.Value(rxnID), nil
	case linprog.StatusUnbounded:
		if sense == linprog.Minimize {
			return math.Inf(-1), nil
		}

		return math.Inf(1), nil
	default:
		// The floor was taken from a feasible solve; reaching here means the
		// numerics collapsed.
		return 0, statusErr(sol.Status)
	}
}
