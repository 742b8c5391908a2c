// File: fba.go
// Role: Problem assembly from a model (S·v = 0 plus bounds) and the plain
//       FBA entry point.

package fba

import (
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/gemflux/gem"
	"github.com/katalvlaran/gemflux/linprog"
	"github.com/katalvlaran/gemflux/stoich"
)

// Solve maximizes the model objective c·v subject to S·v = 0 and the
// per-reaction bounds.
//
// Steps:
//  1. Normalize and validate options; reject nil models and empty objectives.
//  2. Assemble the stoichiometric matrix (package stoich).
//  3. Translate rows into LP equalities, reactions into bounded variables.
//  4. Solve with the configured tolerance and map the LP status:
//     infeasible → ErrInfeasible, unbounded → ErrUnbounded.
//  5. Wrap the flux vector in an immutable Solution with wall time.
//
// Complexity: assembly O(M·N) for M metabolites and N reactions, plus the
// simplex iterations.
func Solve(m *gem.Model, opts Options) (*Solution, error) {
	// 1) Options and model validation.
	opts.normalize()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNilModel
	}
	objective := m.Objective()
	if len(objective) == 0 {
		return nil, ErrNoObjective
	}

	// 2)-3) Assemble the LP.
	p, err := Problem(m)
	if err != nil {
		return nil, err
	}
	if err = p.SetObjective(linprog.Maximize, objective); err != nil {
		return nil, fmt.Errorf("fba: set objective: %w", err)
	}

	// 4) Solve and map the status.
	start := time.Now()
	sol, err := p.Solve(opts.lpOptions())
	if err != nil {
		return nil, err
	}
	if err = statusErr(sol.Status); err != nil {
		return nil, err
	}

	// 5) Package the result.
	return &Solution{
		Objective: sol.Objective,
		TotalFlux: totalFlux(sol.Values),
		Status:    sol.Status,
		Elapsed:   time.Since(start),
		fluxes:    sol.Values,
	}, nil
}

// Problem translates a model into its network LP: one bounded variable per
// reaction, one zero-RHS equality per metabolite row of S, no objective.
// Analyses that need extra variables or constraints (medium minimization,
// community coupling) build on this and add their own.
func Problem(m *gem.Model) (*linprog.Problem, error) {
	sm, err := stoich.Build(m)
	if err != nil {
		return nil, fmt.Errorf("fba: build stoichiometric matrix: %w", err)
	}

	return buildProblemFrom(m, sm)
}

// buildProblemFrom assembles the LP from an already-built matrix, letting
// screens that solve many variants share one stoich.Build.
func buildProblemFrom(m *gem.Model, sm *stoich.Matrix) (*linprog.Problem, error) {
	p := linprog.NewProblem()
	rxns := sm.ReactionIDs()
	for _, rxnID := range rxns {
		lo, hi, berr := m.Bounds(rxnID)
		if berr != nil {
			return nil, fmt.Errorf("fba: bounds of %s: %w", rxnID, berr)
		}
		if aerr := p.AddVariable(rxnID, lo, hi); aerr != nil {
			return nil, fmt.Errorf("fba: declare %s: %w", rxnID, aerr)
		}
	}

	nMets, _ := sm.Dims()
	for i := 0; i < nMets; i++ {
		row := make(map[string]float64)
		for j, rxnID := range rxns {
			if c := sm.At(i, j); c != 0 {
				row[rxnID] = c
			}
		}
		if len(row) == 0 {
			continue // orphan metabolite, trivially balanced
		}
		if aerr := p.AddEquality(row, 0); aerr != nil {
			return nil, fmt.Errorf("fba: mass balance row %d: %w", i, aerr)
		}
	}

	return p, nil
}

// statusErr maps non-optimal LP statuses onto package sentinels.
func statusErr(st linprog.Status) error {
	switch st {
	case linprog.StatusOptimal:
		return nil
	case linprog.StatusInfeasible:
		return ErrInfeasible
	case linprog.StatusUnbounded:
		return ErrUnbounded
	default:
		return fmt.Errorf("fba: unexpected solver status %s", st)
	}
}

// totalFlux sums |v| over a flux vector.
func totalFlux(values map[string]float64) float64 {
	var sum float64
	for _, v := range values {
		sum += math.Abs(v)
	}

	return sum
}
