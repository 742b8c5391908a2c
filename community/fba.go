// File: fba.go
// Role: Plain flux-balance analysis over the merged community.

package community

import (
	"fmt"

	"github.com/katalvlaran/gemflux/fba"
	"github.com/katalvlaran/gemflux/gem"
)

// FBA merges the members and maximizes the community objective: the sum of
// the member objectives, or the aggregate biomass with
// Options.CommunityBiomass. The result keeps the merged model so fluxes can
// be inspected and re-solved, and reports each member's own biomass flux.
//
// Unlike SteadyCom, nothing couples member growth rates here: one fast
// grower may take the whole pool.
func FBA(members []*gem.Model, opts Options) (*FBAResult, error) {
	opts.normalize()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	ids, err := memberIDs(members)
	if err != nil {
		return nil, err
	}
	for k, m := range members {
		if len(m.Objective()) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoBiomass, ids[k])
		}
	}

	merged, err := Merge(members, opts)
	if err != nil {
		return nil, err
	}

	sol, err := fba.Solve(merged, opts.fbaOptions())
	if err != nil {
		return nil, err
	}

	growth := make(map[string]float64, len(ids))
	for k, m := range members {
		var g float64
		for rxnID, w := range m.Objective() {
			g += w * sol.Flux(ids[k]+Separator+rxnID)
		}
		growth[ids[k]] = g
	}

	return &FBAResult{Model: merged, Solution: sol, Growth: growth}, nil
}
