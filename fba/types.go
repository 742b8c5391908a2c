// File: types.go
// Role: Sentinel errors, solver options, and the Solution/Range/KnockoutResult
//       result types shared by every analysis in this package.

package fba

import (
	"context"
	"errors"
	"time"

	"github.com/katalvlaran/gemflux/linprog"
)

// Default option values; DefaultOptions is the single source of truth.
const (
	// DefaultEpsilon is the numeric tolerance handed to the LP layer and used
	// to clamp near-zero fluxes.
	DefaultEpsilon = 1e-9

	// DefaultFractionOfOptimum keeps secondary analyses (pFBA, FVA) at the
	// full primary optimum.
	DefaultFractionOfOptimum = 1.0

	// DefaultWorkers runs screens sequentially.
	DefaultWorkers = 1
)

var (
	// ErrNilModel is returned when the model argument is nil.
	ErrNilModel = errors.New("fba: model is nil")

	// ErrNoObjective is returned when no reaction carries an objective
	// coefficient, leaving nothing to optimize.
	ErrNoObjective = errors.New("fba: model has no objective reaction")

	// ErrInfeasible is returned when the constraints admit no flux
	// distribution at all (typically after aggressive bound edits).
	ErrInfeasible = errors.New("fba: problem is infeasible")

	// ErrUnbounded is returned when the objective can grow without limit,
	// which almost always means a missing exchange bound.
	ErrUnbounded = errors.New("fba: problem is unbounded")

	// ErrBadFraction is returned when FractionOfOptimum lies outside (0, 1].
	ErrBadFraction = errors.New("fba: fraction of optimum outside (0, 1]")

	// ErrBadFluxTable is returned by ReadFluxCSV for rows that are not a
	// (reaction, flux) pair.
	ErrBadFluxTable = errors.New("fba: malformed flux table")

	// ErrNoOverlap is returned by Pearson when fewer than two reactions are
	// shared between the two flux sets.
	ErrNoOverlap = errors.New("fba: fewer than two shared reactions")
)

// Options configures every analysis in this package.
//   - Ctx: cancellation/deadline for long screens (default context.Background).
//   - Epsilon: numeric tolerance (default 1e-9).
//   - FractionOfOptimum: γ ∈ (0,1]; pFBA and FVA hold the objective at
//     γ·optimum (default 1.0).
//   - Workers: upper bound on concurrent LP solves in Variability and the
//     deletion screens (default 1 = sequential).
//   - Reactions: restrict Variability to these reaction IDs (default all).
type Options struct {
	Ctx               context.Context
	Epsilon           float64
	FractionOfOptimum float64
	Workers           int
	Reactions         []string
}

// DefaultOptions returns the baseline configuration used throughout the
// documentation and tests.
func DefaultOptions() Options {
	return Options{
		Ctx:               context.Background(),
		Epsilon:           DefaultEpsilon,
		FractionOfOptimum: DefaultFractionOfOptimum,
		Workers:           DefaultWorkers,
	}
}

// normalize fills zero values with defaults so that a zero Options literal
// behaves like DefaultOptions.
func (o *Options) normalize() {
	if o.Ctx == nil {
		o.Ctx = context.Background()
	}
	if o.Epsilon <= 0 {
		o.Epsilon = DefaultEpsilon
	}
	if o.FractionOfOptimum == 0 {
		o.FractionOfOptimum = DefaultFractionOfOptimum
	}
	if o.Workers < 1 {
		o.Workers = DefaultWorkers
	}
}

// validate rejects option values that normalize cannot repair.
func (o *Options) validate() error {
	if o.FractionOfOptimum <= 0 || o.FractionOfOptimum > 1 {
		return ErrBadFraction
	}

	return nil
}

// lpOptions projects the package options onto the LP layer.
func (o *Options) lpOptions() linprog.Options {
	return linprog.Options{Ctx: o.Ctx, Epsilon: o.Epsilon}
}

// Solution is the outcome of a successful solve. Values are immutable after
// return: Flux and Fluxes hand out copies only.
type Solution struct {
	// Objective is the achieved objective value c·v.
	Objective float64

	// TotalFlux is Σ|v| over all reactions, the quantity pFBA minimizes.
	TotalFlux float64

	// Status is the LP status; a Solution returned without error is always
	// StatusOptimal, screens may carry the others.
	Status linprog.Status

	// Elapsed is the wall time spent inside the solver.
	Elapsed time.Duration

	fluxes map[string]float64
}

// Flux returns the flux carried by one reaction (0 for unknown IDs).
func (s *Solution) Flux(rxnID string) float64 { return s.fluxes[rxnID] }

// Fluxes returns a fresh copy of the full reaction → flux map.
func (s *Solution) Fluxes() map[string]float64 {
	out := make(map[string]float64, len(s.fluxes))
	for id, v := range s.fluxes {
		out[id] = v
	}

	return out
}

// Range is the attainable flux interval of one reaction under an objective
// constraint, as computed by Variability.
type Range struct {
	Min, Max float64
}

// Width returns Max − Min.
func (r Range) Width() float64 { return r.Max - r.Min }

// KnockoutResult is one row of a deletion screen.
type KnockoutResult struct {
	// ID is the deleted reaction or gene.
	ID string

	// Growth is the objective value after the deletion; 0 when the knockout
	// makes the model infeasible.
	Growth float64

	// Status distinguishes a genuine zero optimum from infeasibility.
	Status linprog.Status

	// Disabled lists the reactions closed by the deletion. For reaction
	// screens it is the reaction itself; for gene screens it is every
	// reaction whose rule no longer evaluates true.
	Disabled []string
}
