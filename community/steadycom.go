// File: steadycom.go
// Role: Abundance-coupled community growth (the SteadyCom formulation).

package community

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/gemflux/fba"
	"github.com/katalvlaran/gemflux/gem"
	"github.com/katalvlaran/gemflux/linprog"
)

// abundancePrefix names the per-member abundance variables inside the
// coupled LP. The "::" cannot occur in an SBML identifier, so the prefix
// can never collide with a reaction.
const abundancePrefix = "abundance::"

// memberCoupling carries the per-member data the coupled LP needs: the
// member's namespaced reactions and its growth weights.
type memberCoupling struct {
	id     string
	rxns   []string
	growth map[string]float64
}

// SteadyCom finds the largest growth rate μ every member can sustain
// simultaneously, together with the abundance split that sustains it.
//
// The coupled LP at a candidate μ has one abundance variable x_k per member
// and scales each member's capacity by its abundance:
//
//	lo·x_k ≤ v ≤ hi·x_k   for every member reaction,
//	Σ w·v = μ·x_k         member growth pinned to μ,
//	Σ x_k = TotalBiomass.
//
// Shared exchange bounds stay fixed, so members compete for the pool. The
// LP is feasible exactly when the community as a whole can grow at μ, and
// feasibility is monotone in μ, so the maximum is found by bisection.
//
// Steps:
//  1. Merge the members (member-level objectives stay in place; the
//     aggregate biomass reaction has no role here).
//  2. Collect each member's reaction block and growth weights.
//  3. Probe μ=0: a community that cannot even balance at rest is
//     ErrInfeasibleCommunity.
//  4. Probe μ=MaxGrowth: if feasible, the optimum is outside the bracket
//     and the capped value is returned as-is.
//  5. Bisect on μ until the bracket is narrower than GrowthTolerance.
//
// Complexity: O(log(MaxGrowth/GrowthTolerance)) LP solves.
func SteadyCom(members []*gem.Model, opts Options) (*SteadyState, error) {
	// 1) Validate and merge. The coupling needs per-member growth reactions,
	//    so the aggregate biomass stays off regardless of opts.
	opts.normalize()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	ids, err := memberIDs(members)
	if err != nil {
		return nil, err
	}
	mergeOpts := opts
	mergeOpts.CommunityBiomass = false
	merged, err := Merge(members, mergeOpts)
	if err != nil {
		return nil, err
	}

	// 2) Per-member coupling data, namespaced against the merged model.
	rxnIDs := merged.ReactionIDs()
	couplings := make([]memberCoupling, 0, len(ids))
	for k, m := range members {
		org := ids[k]
		obj := m.Objective()
		if len(obj) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoBiomass, org)
		}
		mc := memberCoupling{id: org, growth: make(map[string]float64, len(obj))}
		prefix := org + Separator
		for _, rxnID := range rxnIDs {
			if strings.HasPrefix(rxnID, prefix) {
				mc.rxns = append(mc.rxns, rxnID)
			}
		}
		for rxnID, w := range obj {
			nsID := org + Separator + rxnID
			if !merged.HasReaction(nsID) {
				return nil, fmt.Errorf("%w: %s: objective reaction %s folded into the pool", ErrNoBiomass, org, rxnID)
			}
			mc.growth[nsID] = w
		}
		couplings = append(couplings, mc)
	}

	probe := func(mu float64) (*linprog.Solution, error) {
		p, perr := coupledProblem(merged, couplings, mu, opts.TotalBiomass)
		if perr != nil {
			return nil, perr
		}
		return p.Solve(opts.lpOptions())
	}

	// 3) The resting community must at least balance.
	best, err := probe(0)
	iterations := 1
	if err != nil {
		return nil, err
	}
	if best.Status != linprog.StatusOptimal {
		return nil, ErrInfeasibleCommunity
	}
	growth := 0.0

	// 4) + 5) Short-circuit on a feasible bracket top, otherwise bisect.
	top, err := probe(opts.MaxGrowth)
	iterations++
	if err != nil {
		return nil, err
	}
	if top.Status == linprog.StatusOptimal {
		growth, best = opts.MaxGrowth, top
	} else {
		lo, hi := 0.0, opts.MaxGrowth
		for hi-lo > opts.GrowthTolerance {
			select {
			case <-opts.Ctx.Done():
				return nil, opts.Ctx.Err()
			default:
			}
			mid := (lo + hi) / 2
			sol, serr := probe(mid)
			iterations++
			if serr != nil {
				return nil, serr
			}
			if sol.Status == linprog.StatusOptimal {
				lo, growth, best = mid, mid, sol
			} else {
				hi = mid
			}
		}
	}

	// 6) Split the solution into abundances and reaction fluxes.
	abundance := make(map[string]float64, len(ids))
	fluxes := make(map[string]float64, len(best.Values))
	for name, v := range best.Values {
		if strings.HasPrefix(name, abundancePrefix) {
			abundance[strings.TrimPrefix(name, abundancePrefix)] = v
			continue
		}
		fluxes[name] = v
	}

	return &SteadyState{
		Growth:     growth,
		Abundance:  abundance,
		Fluxes:     fluxes,
		Iterations: iterations,
	}, nil
}

// coupledProblem assembles the SteadyCom LP at a fixed growth rate. It
// starts from the plain mass-balance LP of the merged model and adds the
// abundance block for each member.
func coupledProblem(merged *gem.Model, couplings []memberCoupling, mu, total float64) (*linprog.Problem, error) {
	p, err := fba.Problem(merged)
	if err != nil {
		return nil, err
	}

	sumRow := make(map[string]float64, len(couplings))
	for i := range couplings {
		mc := &couplings[i]
		xName := abundancePrefix + mc.id
		if err = p.AddVariable(xName, 0, total); err != nil {
			return nil, fmt.Errorf("community: abundance of %s: %w", mc.id, err)
		}
		sumRow[xName] = 1

		for _, rxnID := range mc.rxns {
			lo, hi, berr := merged.Bounds(rxnID)
			if berr != nil {
				return nil, fmt.Errorf("community: bounds of %s: %w", rxnID, berr)
			}
			// Re-box the flux with the hull of lo·x..hi·x over x ∈ [0,total];
			// the exact scaling rides on the coupling rows below.
			if err = p.SetBounds(rxnID, math.Min(0, lo*total), math.Max(0, hi*total)); err != nil {
				return nil, fmt.Errorf("community: rebox %s: %w", rxnID, err)
			}
			if hi != 0 && !math.IsInf(hi, 1) {
				if err = p.AddLessEq(map[string]float64{rxnID: 1, xName: -hi}, 0); err != nil {
					return nil, fmt.Errorf("community: couple %s: %w", rxnID, err)
				}
			}
			if lo != 0 && !math.IsInf(lo, -1) {
				if err = p.AddLessEq(map[string]float64{rxnID: -1, xName: lo}, 0); err != nil {
					return nil, fmt.Errorf("community: couple %s: %w", rxnID, err)
				}
			}
		}

		row := make(map[string]float64, len(mc.growth)+1)
		for rxnID, w := range mc.growth {
			row[rxnID] = w
		}
		row[xName] = -mu
		if err = p.AddEquality(row, 0); err != nil {
			return nil, fmt.Errorf("community: growth of %s: %w", mc.id, err)
		}
	}

	if err = p.AddEquality(sumRow, total); err != nil {
		return nil, fmt.Errorf("community: abundance total: %w", err)
	}
	// Any bounded objective works for a feasibility probe; Σx is pinned by
	// the equality above, so it is as safe as they come.
	if err = p.SetObjective(linprog.Maximize, sumRow); err != nil {
		return nil, fmt.Errorf("community: objective: %w", err)
	}

	return p, nil
}
