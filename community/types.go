// File: types.go
// Role: Sentinel errors, options, result types, and the namespace helpers
//       MemberOf and Split.

package community

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/gemflux/fba"
	"github.com/katalvlaran/gemflux/gem"
	"github.com/katalvlaran/gemflux/linprog"
	"github.com/katalvlaran/gemflux/medium"
)

// Separator joins a member ID and a local ID in merged models. Member IDs
// must not contain it.
const Separator = "__"

// Default option values; DefaultOptions is the single source of truth.
const (
	// DefaultExtracellular is the compartment whose metabolites are pooled.
	DefaultExtracellular = "e"

	// DefaultTotalBiomass is the abundance total SteadyCom enforces.
	DefaultTotalBiomass = 1.0

	// DefaultGrowthTolerance is the bisection stopping width on μ.
	DefaultGrowthTolerance = 1e-6

	// DefaultMaxGrowth is the top of the bisection bracket, in 1/h. Community
	// growth rates above this are reported as DefaultMaxGrowth.
	DefaultMaxGrowth = 10.0
)

// Sentinel errors.
var (
	// ErrTooFewMembers indicates fewer than two member models.
	ErrTooFewMembers = errors.New("community: need at least two member models")

	// ErrNilMember indicates a nil model in the member list.
	ErrNilMember = errors.New("community: member model is nil")

	// ErrDuplicateMember indicates two members share an ID.
	ErrDuplicateMember = errors.New("community: duplicate member ID")

	// ErrBadMemberID indicates an empty member ID or one containing the
	// namespace separator.
	ErrBadMemberID = errors.New("community: member ID is empty or contains the separator")

	// ErrNoBiomass indicates a member without objective coefficients where
	// growth analysis needs one.
	ErrNoBiomass = errors.New("community: member has no objective reaction")

	// ErrInfeasibleCommunity indicates the merged model cannot balance even
	// at zero growth.
	ErrInfeasibleCommunity = errors.New("community: infeasible at zero growth")

	// ErrBadOption indicates a negative tolerance, total, or bracket option.
	ErrBadOption = errors.New("community: invalid option value")

	// ErrBadSpec indicates a community manifest that fails to parse or
	// validate.
	ErrBadSpec = errors.New("community: malformed community spec")
)

// Options configures Merge, FBA, and SteadyCom.
//   - Ctx: cancellation between bisection solves (default context.Background).
//   - Epsilon: LP tolerance handed to linprog (default 1e-9).
//   - Extracellular: the pooled compartment ID (default "e").
//   - Environment: bounds applied to the community exchanges after merging;
//     nil keeps the union bounds. Unknown exchange IDs are skipped.
//   - CommunityBiomass: Merge adds an aggregate biomass reaction consuming
//     one growth token per member and moves the objective onto it.
//   - TotalBiomass: Σ abundance SteadyCom enforces (default 1).
//   - GrowthTolerance: bisection stopping width on μ (default 1e-6).
//   - MaxGrowth: bisection bracket top (default 10).
type Options struct {
	Ctx              context.Context
	Epsilon          float64
	Extracellular    string
	Environment      *medium.Environment
	CommunityBiomass bool
	TotalBiomass     float64
	GrowthTolerance  float64
	MaxGrowth        float64
}

// DefaultOptions returns the baseline configuration.
func DefaultOptions() Options {
	return Options{
		Ctx:             context.Background(),
		Epsilon:         linprog.DefaultEpsilon,
		Extracellular:   DefaultExtracellular,
		TotalBiomass:    DefaultTotalBiomass,
		GrowthTolerance: DefaultGrowthTolerance,
		MaxGrowth:       DefaultMaxGrowth,
	}
}

// normalize fills zero values so a zero Options literal works like
// DefaultOptions.
func (o *Options) normalize() {
	if o.Ctx == nil {
		o.Ctx = context.Background()
	}
	if o.Epsilon == 0 {
		o.Epsilon = linprog.DefaultEpsilon
	}
	if o.Extracellular == "" {
		o.Extracellular = DefaultExtracellular
	}
	if o.TotalBiomass == 0 {
		o.TotalBiomass = DefaultTotalBiomass
	}
	if o.GrowthTolerance == 0 {
		o.GrowthTolerance = DefaultGrowthTolerance
	}
	if o.MaxGrowth == 0 {
		o.MaxGrowth = DefaultMaxGrowth
	}
}

// validate rejects unusable option values after normalization.
func (o *Options) validate() error {
	if o.Epsilon < 0 {
		return fmt.Errorf("%w: Epsilon %g", ErrBadOption, o.Epsilon)
	}
	if o.TotalBiomass < 0 {
		return fmt.Errorf("%w: TotalBiomass %g", ErrBadOption, o.TotalBiomass)
	}
	if o.GrowthTolerance < 0 {
		return fmt.Errorf("%w: GrowthTolerance %g", ErrBadOption, o.GrowthTolerance)
	}
	if o.MaxGrowth < 0 {
		return fmt.Errorf("%w: MaxGrowth %g", ErrBadOption, o.MaxGrowth)
	}

	return nil
}

// lpOptions forwards the shared knobs to linprog.
func (o *Options) lpOptions() linprog.Options {
	return linprog.Options{Ctx: o.Ctx, Epsilon: o.Epsilon}
}

// fbaOptions forwards the shared knobs to fba.
func (o *Options) fbaOptions() fba.Options {
	opts := fba.DefaultOptions()
	opts.Ctx = o.Ctx
	opts.Epsilon = o.Epsilon

	return opts
}

// FBAResult is a community FBA outcome.
type FBAResult struct {
	// Model is the merged community model the solution refers to.
	Model *gem.Model

	// Solution holds fluxes over the merged (namespaced) reaction IDs.
	Solution *fba.Solution

	// Growth maps member ID → that member's biomass flux.
	Growth map[string]float64
}

// SteadyState is a SteadyCom outcome.
type SteadyState struct {
	// Growth is μ*, the largest shared growth rate found feasible.
	Growth float64

	// Abundance maps member ID → biomass fraction x_k; the values sum to
	// Options.TotalBiomass within tolerance.
	Abundance map[string]float64

	// Fluxes is the supporting flux distribution at μ*, on merged IDs.
	Fluxes map[string]float64

	// Iterations counts the feasibility LPs solved.
	Iterations int
}

// MemberOf splits a merged ID into its member and local parts. IDs without
// the separator are community-level (pool metabolites, community exchanges):
// member is "" and local is the ID itself. Local IDs that naturally contain
// the separator (BiGG's glc__D and friends) are only distinguishable against
// a member list; use Split for that.
func MemberOf(id string) (member, local string) {
	if i := strings.Index(id, Separator); i > 0 {
		return id[:i], id[i+len(Separator):]
	}

	return "", id
}

// Split partitions a merged value map (fluxes, reduced costs) by member.
// Keys whose prefix is not a known member land under "" together with the
// community-level entries.
func Split(values map[string]float64, members []string) map[string]map[string]float64 {
	known := make(map[string]bool, len(members))
	for _, id := range members {
		known[id] = true
	}

	out := make(map[string]map[string]float64, len(members)+1)
	for id, v := range values {
		member, local := MemberOf(id)
		if !known[member] {
			member, local = "", id
		}
		if out[member] == nil {
			out[member] = make(map[string]float64)
		}
		out[member][local] = v
	}

	return out
}
