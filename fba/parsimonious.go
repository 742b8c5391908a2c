// File: parsimonious.go
// Role: Two-stage parsimonious FBA: fix the growth optimum, then minimize
//       total flux through the network.

package fba

import (
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/gemflux/gem"
	"github.com/katalvlaran/gemflux/linprog"
)

// fluxAuxPrefix names the stage-2 auxiliary variables t_r ≥ |v_r|.
// The "::" keeps them out of any legal reaction namespace.
const fluxAuxPrefix = "abs::"

// Parsimonious computes a parsimonious FBA solution: among all flux
// distributions achieving FractionOfOptimum·Z* of the FBA optimum Z*, it
// returns one minimizing total flux Σ|v|.
//
// Steps:
//  1. Stage 1 — plain Solve for the optimum Z*.
//  2. Rebuild the problem and add one auxiliary t_r per reaction with
//     t_r ≥ v_r and t_r ≥ −v_r, so t_r ≥ |v_r|.
//  3. Pin growth: c·v ≥ γ·Z*.
//  4. Stage 2 — minimize Σ t_r; at the optimum every t_r = |v_r|.
//  5. Report the reaction fluxes only; Objective is the achieved c·v,
//     TotalFlux the minimized Σ|v|.
//
// The returned Objective never falls below γ·Z*. Errors follow Solve.
func Parsimonious(m *gem.Model, opts Options) (*Solution, error) {
	opts.normalize()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	// 1) Stage 1: the growth optimum.
	start := time.Now()
	primal, err := Solve(m, opts)
	if err != nil {
		return nil, err
	}

	// 2) Stage 2 problem: same network plus |v| envelopes.
	p, err := Problem(m)
	if err != nil {
		return nil, err
	}
	auxObjective := make(map[string]float64, len(m.ReactionIDs()))
	for _, rxnID := range m.ReactionIDs() {
		lo, hi, berr := m.Bounds(rxnID)
		if berr != nil {
			return nil, fmt.Errorf("fba: bounds of %s: %w", rxnID, berr)
		}
		aux := fluxAuxPrefix + rxnID
		if aerr := p.AddVariable(aux, 0, absCap(lo, hi)); aerr != nil {
			return nil, fmt.Errorf("fba: declare %s: %w", aux, aerr)
		}
		//  v − t ≤ 0  and  −v − t ≤ 0
		if aerr := p.AddLessEq(map[string]float64{rxnID: 1, aux: -1}, 0); aerr != nil {
			return nil, fmt.Errorf("fba: envelope of %s: %w", rxnID, aerr)
		}
		if aerr := p.AddLessEq(map[string]float64{rxnID: -1, aux: -1}, 0); aerr != nil {
			return nil, fmt.Errorf("fba: envelope of %s: %w", rxnID, aerr)
		}
		auxObjective[aux] = 1
	}

	// 3) Growth floor at γ·Z*. The epsilon slack keeps stage 2 feasible at
	// γ = 1 despite stage-1 rounding.
	floor := opts.FractionOfOptimum*primal.Objective - opts.Epsilon
	if aerr := p.AddGreaterEq(m.Objective(), floor); aerr != nil {
		return nil, fmt.Errorf("fba: growth floor: %w", aerr)
	}

	// 4) Minimize Σ t.
	if aerr := p.SetObjective(linprog.Minimize, auxObjective); aerr != nil {
		return nil, fmt.Errorf("fba: set parsimonious objective: %w", aerr)
	}
	sol, err := p.Solve(opts.lpOptions())
	if err != nil {
		return nil, err
	}
	if err = statusErr(sol.Status); err != nil {
		return nil, err
	}

	// 5) Strip auxiliaries; recompute the achieved growth.
	fluxes := make(map[string]float64, len(sol.Values))
	for name, v := range sol.Values {
		if len(name) >= len(fluxAuxPrefix) && name[:len(fluxAuxPrefix)] == fluxAuxPrefix {
			continue
		}
		fluxes[name] = v
	}
	var growth float64
	for rxnID, coeff := range m.Objective() {
		growth += coeff * fluxes[rxnID]
	}

	return &Solution{
		Objective: growth,
		TotalFlux: totalFlux(fluxes),
		Status:    sol.Status,
		Elapsed:   time.Since(start),
		fluxes:    fluxes,
	}, nil
}

// absCap returns an upper bound for |v| given v's bounds, +Inf when either
// side is open.
func absCap(lo, hi float64) float64 {
	if math.IsInf(lo, -1) || math.IsInf(hi, 1) {
		return math.Inf(1)
	}

	return math.Max(math.Abs(lo), math.Abs(hi))
}
