// File: minimal.go
// Role: Minimal-medium computation: the least total uptake that still
//       supports a required growth rate.

package medium

import (
	"fmt"

	"github.com/katalvlaran/gemflux/fba"
	"github.com/katalvlaran/gemflux/gem"
	"github.com/katalvlaran/gemflux/linprog"
)

// uptakeAuxPrefix names the auxiliary variables u_e ≥ uptake of exchange e.
const uptakeAuxPrefix = "uptake::"

// Minimal computes a minimal sub-environment of env: the set of compounds,
// with just-sufficient uptake bounds, that lets the model grow at
// FractionOfOptimum of the optimum it reaches under the full env.
//
// Steps:
//  1. Clone the model and apply env (lenient: unknown exchanges are ignored,
//     they cannot matter for this model).
//  2. Solve FBA for the reference optimum Z* under the full environment.
//  3. Extend the network LP with one u_e ≥ max(0, −v_e) per env exchange
//     that allows uptake, pin growth to γ·Z*, and minimize Σ u_e.
//  4. Exchanges with u_e above Epsilon form the result; each keeps its
//     original upper bound and gets lower = −u_e, the minimal uptake.
//
// The input model and env are never mutated. Errors follow fba.Solve;
// a model that cannot grow under env at all surfaces fba.ErrInfeasible.
func Minimal(m *gem.Model, env *Environment, opts Options) (*Environment, error) {
	opts.normalize()
	if m == nil {
		return nil, ErrNilModel
	}
	if env == nil {
		return nil, ErrNilEnvironment
	}

	// 1) Work on a clone under the candidate environment.
	clone := m.Clone()
	if _, err := env.Apply(clone, opts); err != nil {
		return nil, err
	}

	// 2) Reference optimum.
	fbaOpts := fba.Options{Ctx: opts.Ctx, Epsilon: opts.Epsilon}
	ref, err := fba.Solve(clone, fbaOpts)
	if err != nil {
		return nil, err
	}

	// 3) Uptake-minimization LP.
	p, err := fba.Problem(clone)
	if err != nil {
		return nil, err
	}
	objective := make(map[string]float64)
	candidates := make([]string, 0, env.Len())
	for _, rxnID := range env.Exchanges() {
		lo, _, _ := env.Bounds(rxnID)
		if lo >= 0 || !clone.HasReaction(rxnID) {
			continue // secretion-only or foreign exchange: no uptake to pay for
		}
		aux := uptakeAuxPrefix + rxnID
		if aerr := p.AddVariable(aux, 0, -lo); aerr != nil {
			return nil, fmt.Errorf("medium: declare %s: %w", aux, aerr)
		}
		// u_e ≥ −v_e, so u_e covers exactly the uptake part of the flux.
		if aerr := p.AddLessEq(map[string]float64{rxnID: -1, aux: -1}, 0); aerr != nil {
			return nil, fmt.Errorf("medium: uptake envelope of %s: %w", rxnID, aerr)
		}
		objective[aux] = 1
		candidates = append(candidates, rxnID)
	}
	if len(candidates) == 0 {
		return New(), nil // nothing is consumable, the minimal medium is empty
	}

	floor := opts.FractionOfOptimum*ref.Objective - opts.Epsilon
	if aerr := p.AddGreaterEq(clone.Objective(), floor); aerr != nil {
		return nil, fmt.Errorf("medium: growth floor: %w", aerr)
	}
	if aerr := p.SetObjective(linprog.Minimize, objective); aerr != nil {
		return nil, fmt.Errorf("medium: set objective: %w", aerr)
	}

	sol, err := p.Solve(linprog.Options{Ctx: opts.Ctx, Epsilon: opts.Epsilon})
	if err != nil {
		return nil, err
	}
	if sol.Status != linprog.StatusOptimal {
		return nil, fmt.Errorf("medium: uptake minimization: %w", fba.ErrInfeasible)
	}

	// 4) Collect the survivors in env order.
	minimal := New()
	for _, rxnID := range candidates {
		uptake := sol.Value(uptakeAuxPrefix + rxnID)
		if uptake <= opts.Epsilon {
			continue
		}
		_, hi, _ := env.Bounds(rxnID)
		if serr := minimal.SetNamed(rxnID, env.Name(rxnID), -uptake, hi); serr != nil {
			return nil, fmt.Errorf("medium: record %s: %w", rxnID, serr)
		}
	}

	return minimal, nil
}
