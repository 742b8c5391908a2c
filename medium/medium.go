// File: medium.go
// Role: The Environment type with its ordered entries, derivation from and
//       application to models, and the complete (fully open) medium.

package medium

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/gemflux/gem"
)

// Default option values; DefaultOptions is the single source of truth.
const (
	// DefaultEpsilon is the numeric tolerance for Minimal's uptake cutoff.
	DefaultEpsilon = 1e-9

	// DefaultFractionOfOptimum requires Minimal to preserve the full optimum.
	DefaultFractionOfOptimum = 1.0

	// DefaultUptake and DefaultSecretion are the bounds Complete opens every
	// exchange to: (−DefaultUptake, +DefaultSecretion).
	DefaultUptake    = 1000.0
	DefaultSecretion = 1000.0
)

var (
	// ErrNilModel is returned when the model argument is nil.
	ErrNilModel = errors.New("medium: model is nil")

	// ErrNilEnvironment is returned when the environment argument is nil.
	ErrNilEnvironment = errors.New("medium: environment is nil")

	// ErrUnknownExchange is returned in strict mode when the target model
	// lacks an exchange reaction named by the environment.
	ErrUnknownExchange = errors.New("medium: exchange reaction not in model")

	// ErrBadTable is returned by ReadTable for rows that are not a
	// (compound, exchange, lower, upper) record.
	ErrBadTable = errors.New("medium: malformed media table")
)

// Options configures Apply, ReadTable, and Minimal.
//   - Ctx: cancellation for Minimal's solves (default context.Background).
//   - Epsilon: uptake below this is treated as unused by Minimal (default 1e-9).
//   - FractionOfOptimum: growth Minimal must retain, γ ∈ (0,1] (default 1.0).
//   - Strict: Apply fails on unknown exchange IDs instead of skipping them.
//   - Comma: media-table delimiter (default ',', use '\t' for TSV).
type Options struct {
	Ctx               context.Context
	Epsilon           float64
	FractionOfOptimum float64
	Strict            bool
	Comma             rune
}

// DefaultOptions returns the baseline configuration.
func DefaultOptions() Options {
	return Options{
		Ctx:               context.Background(),
		Epsilon:           DefaultEpsilon,
		FractionOfOptimum: DefaultFractionOfOptimum,
		Comma:             ',',
	}
}

// normalize fills zero values so a zero Options literal works like
// DefaultOptions.
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
	if o.Comma == 0 {
		o.Comma = ','
	}
}

type entry struct {
	name   string
	lo, hi float64
}

// Environment is an ordered set of exchange-reaction bounds. Entries keep
// their insertion order, so tables and applications are deterministic.
// The zero value is not usable; construct with New or FromModel.
type Environment struct {
	order   []string
	entries map[string]entry
}

// New returns an empty environment.
func New() *Environment {
	return &Environment{entries: make(map[string]entry)}
}

// Set stores bounds for an exchange reaction, keeping the first insertion's
// position on update. Returns gem.ErrEmptyID or gem.ErrBoundOrder.
func (e *Environment) Set(rxnID string, lo, hi float64) error {
	return e.SetNamed(rxnID, e.entries[rxnID].name, lo, hi)
}

// SetNamed is Set with a human-readable compound name attached.
func (e *Environment) SetNamed(rxnID, name string, lo, hi float64) error {
	if rxnID == "" {
		return gem.ErrEmptyID
	}
	if lo > hi {
		return gem.ErrBoundOrder
	}
	if _, seen := e.entries[rxnID]; !seen {
		e.order = append(e.order, rxnID)
	}
	e.entries[rxnID] = entry{name: name, lo: lo, hi: hi}

	return nil
}

// Bounds returns the stored bounds of one exchange.
func (e *Environment) Bounds(rxnID string) (lo, hi float64, ok bool) {
	ent, ok := e.entries[rxnID]

	return ent.lo, ent.hi, ok
}

// Name returns the compound name attached to an exchange ("" when unset).
func (e *Environment) Name(rxnID string) string { return e.entries[rxnID].name }

// Exchanges returns the exchange IDs in insertion order (a fresh slice).
func (e *Environment) Exchanges() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)

	return out
}

// Len returns the number of exchanges in the environment.
func (e *Environment) Len() int { return len(e.order) }

// FromModel derives the environment of a reference model: the current bounds
// of every boundary reaction, in sorted ID order, named after the reaction.
func FromModel(m *gem.Model) (*Environment, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	env := New()
	for _, rxnID := range m.Exchanges() {
		r, err := m.Reaction(rxnID)
		if err != nil {
			return nil, fmt.Errorf("medium: derive %s: %w", rxnID, err)
		}
		if err = env.SetNamed(rxnID, r.Name, r.Lower, r.Upper); err != nil {
			return nil, fmt.Errorf("medium: derive %s: %w", rxnID, err)
		}
	}

	return env, nil
}

// Apply imposes the environment's bounds on the target model, in entry
// order. Exchange IDs the model does not know are collected and returned;
// with Options.Strict they abort with ErrUnknownExchange instead. The model
// is mutated; clone first to keep the original.
func (e *Environment) Apply(m *gem.Model, opts Options) (skipped []string, err error) {
	opts.normalize()
	if m == nil {
		return nil, ErrNilModel
	}
	for _, rxnID := range e.order {
		if !m.HasReaction(rxnID) {
			if opts.Strict {
				return nil, fmt.Errorf("%w: %s", ErrUnknownExchange, rxnID)
			}
			skipped = append(skipped, rxnID)

			continue
		}
		ent := e.entries[rxnID]
		if err = m.SetBounds(rxnID, ent.lo, ent.hi); err != nil {
			return nil, fmt.Errorf("medium: apply %s: %w", rxnID, err)
		}
	}

	return skipped, nil
}

// Complete opens every boundary reaction of the model to
// (−DefaultUptake, +DefaultSecretion): the "rich medium" baseline used
// before narrowing an environment down.
func Complete(m *gem.Model) error {
	if m == nil {
		return ErrNilModel
	}
	for _, rxnID := range m.Exchanges() {
		if err := m.SetBounds(rxnID, -DefaultUptake, DefaultSecretion); err != nil {
			return fmt.Errorf("medium: open %s: %w", rxnID, err)
		}
	}

	return nil
}
