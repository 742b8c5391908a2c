// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Value types, sentinel errors, defaults, and option constructors for
//       the gem package. The Model container itself lives in model.go.

package gem

import (
	"errors"
	"math"
	"sort"
)

// Default flux bounds applied to reactions added without WithBounds, in the
// conventional mmol/gDW/h scale used by constraint-based models.
const (
	// DefaultLowerBound is the default lower flux bound for new reactions.
	DefaultLowerBound = -1000.0

	// DefaultUpperBound is the default upper flux bound for new reactions.
	DefaultUpperBound = 1000.0

	// DefaultCompartment is the fallback compartment for auto-declared
	// metabolites whose IDs carry no "_<tag>" suffix (cytosol by convention).
	DefaultCompartment = "c"
)

// Sentinel errors for model construction and queries.
var (
	// ErrEmptyID indicates that a provided identifier is the empty string.
	ErrEmptyID = errors.New("gem: identifier is empty")

	// ErrDuplicateID indicates that an identifier is already in use in its catalog.
	ErrDuplicateID = errors.New("gem: identifier already in use")

	// ErrUnknownMetabolite indicates an operation referenced a non-existent metabolite.
	ErrUnknownMetabolite = errors.New("gem: metabolite not found")

	// ErrUnknownReaction indicates an operation referenced a non-existent reaction.
	ErrUnknownReaction = errors.New("gem: reaction not found")

	// ErrUnknownGene indicates an operation referenced a non-existent gene.
	ErrUnknownGene = errors.New("gem: gene not found")

	// ErrUnknownCompartment indicates a metabolite referenced an undeclared compartment.
	ErrUnknownCompartment = errors.New("gem: compartment not found")

	// ErrEmptyStoichiometry indicates a reaction was added with no participants.
	ErrEmptyStoichiometry = errors.New("gem: reaction has no stoichiometry")

	// ErrZeroCoefficient indicates a stoichiometric coefficient of zero, NaN, or ±Inf.
	ErrZeroCoefficient = errors.New("gem: stoichiometric coefficient is zero or not finite")

	// ErrBoundOrder indicates a lower bound strictly above its upper bound.
	ErrBoundOrder = errors.New("gem: lower bound exceeds upper bound")
)

// Metabolite represents a compound located in one compartment.
//
// Metabolite values returned by Model accessors are copies; mutating them has
// no effect on the model.
type Metabolite struct {
	// ID uniquely identifies the metabolite within its Model.
	ID string

	// Name is the human-readable compound name (optional).
	Name string

	// Compartment is the declared compartment the metabolite lives in.
	Compartment string

	// Formula is the chemical formula, e.g. "C6H12O6" (optional).
	Formula string

	// Charge is the net charge at physiological pH (optional).
	Charge int
}

// Gene represents a gene referenced by gene-protein-reaction rules.
type Gene struct {
	// ID uniquely identifies the gene within its Model.
	ID string

	// Name is the human-readable locus or symbol (optional).
	Name string
}

// Reaction represents a conversion between metabolites with flux bounds.
//
// The stoichiometry map (metabolite ID → coefficient; negative consumed,
// positive produced) is fixed at AddReaction time. Reaction values returned
// by Model accessors are deep copies; the only way to change a live bound or
// objective coefficient is through Model.SetBounds / Model.SetObjective.
type Reaction struct {
	// ID uniquely identifies the reaction within its Model.
	ID string

	// Name is the human-readable reaction name (optional).
	Name string

	// Subsystem is the pathway or functional grouping (optional).
	Subsystem string

	// GPR is the gene-protein-reaction boolean rule, e.g. "(b0001 and b0002) or b0003".
	// An empty rule means the reaction is not gene-associated.
	GPR string

	// Lower and Upper are the flux bounds; Lower < 0 makes the reaction reversible.
	Lower, Upper float64

	// Objective is this reaction's coefficient in the model objective
	// (0 for reactions that do not contribute).
	Objective float64

	stoich map[string]float64
}

// Stoichiometry returns a fresh copy of the stoichiometry map
// (metabolite ID → coefficient). Complexity: O(k) for k participants.
func (r Reaction) Stoichiometry() map[string]float64 {
	out := make(map[string]float64, len(r.stoich))
	for id, coeff := range r.stoich {
		out[id] = coeff
	}

	return out
}

// Coefficient returns the stoichiometric coefficient of metID in this
// reaction, or 0 when the metabolite does not participate.
func (r Reaction) Coefficient(metID string) float64 {
	return r.stoich[metID]
}

// Metabolites returns the sorted IDs of all participating metabolites.
func (r Reaction) Metabolites() []string {
	ids := make([]string, 0, len(r.stoich))
	for id := range r.stoich {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// Reversible reports whether the reaction can carry negative flux.
func (r Reaction) Reversible() bool { return r.Lower < 0 }

// Boundary reports whether the reaction exchanges matter with the model
// boundary: it touches exactly one metabolite (exchange, sink, or demand).
func (r Reaction) Boundary() bool { return len(r.stoich) == 1 }

// ModelOption configures a Model at construction time.
type ModelOption func(*Model)

// WithModelName sets the human-readable model name.
func WithModelName(name string) ModelOption {
	return func(m *Model) { m.name = name }
}

// WithAutoMetabolites relaxes AddReaction's referential check: metabolites
// referenced by a reaction but not yet declared are created on the fly, in
// the compartment named by the ID's trailing "_<tag>" token (declared as
// needed). Intended for ingest paths that stream reactions before species.
func WithAutoMetabolites() ModelOption {
	return func(m *Model) { m.autoMetabolites = true }
}

// MetaboliteOption configures a metabolite as it is added.
type MetaboliteOption func(*Metabolite)

// WithMetaboliteName sets the compound name.
func WithMetaboliteName(name string) MetaboliteOption {
	return func(met *Metabolite) { met.Name = name }
}

// WithFormula sets the chemical formula.
func WithFormula(formula string) MetaboliteOption {
	return func(met *Metabolite) { met.Formula = formula }
}

// WithCharge sets the net charge.
func WithCharge(charge int) MetaboliteOption {
	return func(met *Metabolite) { met.Charge = charge }
}

// ReactionOption configures a reaction as it is added.
type ReactionOption func(*Reaction)

// WithReactionName sets the reaction name.
func WithReactionName(name string) ReactionOption {
	return func(r *Reaction) { r.Name = name }
}

// WithSubsystem sets the pathway grouping.
func WithSubsystem(subsystem string) ReactionOption {
	return func(r *Reaction) { r.Subsystem = subsystem }
}

// WithBounds sets the lower/upper flux bounds, overriding the defaults.
// Order is validated by AddReaction (ErrBoundOrder).
func WithBounds(lower, upper float64) ReactionOption {
	return func(r *Reaction) { r.Lower, r.Upper = lower, upper }
}

// WithGPR attaches a gene-protein-reaction rule string.
func WithGPR(rule string) ReactionOption {
	return func(r *Reaction) { r.GPR = rule }
}

// WithObjective sets the reaction's objective coefficient.
func WithObjective(coeff float64) ReactionOption {
	return func(r *Reaction) { r.Objective = coeff }
}

// finite reports whether v is a usable coefficient or bound component
// (not NaN; ±Inf is rejected for coefficients but legal for bounds).
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
