// Package gem defines the central Model, Metabolite, Reaction, and Gene types,
// and provides thread-safe primitives for building, querying, and cloning
// genome-scale metabolic models.
//
// A metabolic model is a bipartite network: metabolites (compounds located in
// a compartment) are connected by reactions (directed or reversible
// conversions with one stoichiometric coefficient per participating
// metabolite and a lower/upper flux bound pair). gem stores that network in
// catalog maps guarded by two sync.RWMutex locks (muMet for compartments,
// metabolites, and genes; muRxn for reactions and the objective), so models
// can be mutated across goroutines with minimal contention.
//
// # Invariants
//
//   - Stoichiometric coefficients are fixed once a reaction is added:
//     AddReaction copies the caller's map, and every accessor returns fresh
//     copies. There is no API to rewrite a coefficient in place.
//   - Flux bounds are the only numeric fields a caller mutates after
//     construction, via SetBounds (and the objective via SetObjective).
//   - Every metabolite referenced by a reaction must already be declared, and
//     every metabolite must live in a declared compartment.
//   - Accessors with plural names (MetaboliteIDs, ReactionIDs, Exchanges, …)
//     return deterministically sorted slices.
//
// # Bounds
//
// Bounds are float64 flux limits in the conventional mmol/gDW/h scale.
// Reactions added without WithBounds default to (DefaultLowerBound,
// DefaultUpperBound) when reversible semantics are wanted, callers pass a
// negative lower bound; Reversible() reports lower < 0.
//
// # Errors
//
//	ErrEmptyID            - an identifier is the empty string.
//	ErrDuplicateID        - an identifier is already in use in its catalog.
//	ErrUnknownMetabolite  - a referenced metabolite does not exist.
//	ErrUnknownReaction    - a referenced reaction does not exist.
//	ErrUnknownGene        - a referenced gene does not exist.
//	ErrUnknownCompartment - a metabolite names an undeclared compartment.
//	ErrEmptyStoichiometry - a reaction was added with no participants.
//	ErrZeroCoefficient    - a stoichiometric coefficient is zero or not finite.
//	ErrBoundOrder         - a lower bound exceeds its upper bound.
//
// Construction is explicit and validating; see the package example for the
// canonical build order (compartments → metabolites → genes → reactions).
package gem
