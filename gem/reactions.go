// File: reactions.go
// Role: Reaction catalog operations, the mutation surface of a Model.
// Invariant: stoichiometry is copied on the way in and on the way out; bounds
// and objective coefficients are the only fields SetBounds/SetObjective touch.

package gem

import (
	"fmt"
	"sort"
	"strings"
)

// AddReaction inserts a reaction with the given stoichiometry
// (metabolite ID → coefficient; negative consumed, positive produced).
//
// Bounds default to (DefaultLowerBound, DefaultUpperBound) unless WithBounds
// is supplied. The stoichiometry map is copied; later changes to the caller's
// map do not affect the model.
//
// Returns:
//   - ErrEmptyID when id is empty,
//   - ErrDuplicateID when the reaction ID is taken,
//   - ErrEmptyStoichiometry when stoich has no entries,
//   - ErrZeroCoefficient when any coefficient is 0, NaN, or ±Inf,
//   - ErrUnknownMetabolite when a participant is not declared and the model
//     was built without WithAutoMetabolites,
//   - ErrBoundOrder when the provided bounds are out of order.
//
// Complexity: O(k) for k participants.
func (m *Model) AddReaction(id string, stoich map[string]float64, opts ...ReactionOption) error {
	// 1) Validate the identifier and participants before taking locks.
	if id == "" {
		return ErrEmptyID
	}
	if len(stoich) == 0 {
		return ErrEmptyStoichiometry
	}

	// 2) Assemble the reaction record and apply options.
	r := &Reaction{
		ID:     id,
		Lower:  DefaultLowerBound,
		Upper:  DefaultUpperBound,
		stoich: make(map[string]float64, len(stoich)),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Lower > r.Upper {
		return ErrBoundOrder
	}
	for metID, coeff := range stoich {
		if coeff == 0 || !finite(coeff) {
			return fmt.Errorf("%w: %q in reaction %q", ErrZeroCoefficient, metID, id)
		}
		r.stoich[metID] = coeff
	}

	// 3) Verify every participant exists (metabolite lock first, by convention).
	//    Under WithAutoMetabolites, missing participants are declared instead.
	if m.autoMetabolites {
		m.muMet.Lock()
		for metID := range r.stoich {
			if _, ok := m.metabolites[metID]; ok {
				continue
			}
			comp := compartmentTag(metID)
			if _, declared := m.compartments[comp]; !declared {
				m.compartments[comp] = ""
			}
			m.metabolites[metID] = &Metabolite{ID: metID, Compartment: comp}
		}
		m.muMet.Unlock()
	} else {
		m.muMet.RLock()
		for metID := range r.stoich {
			if _, ok := m.metabolites[metID]; !ok {
				m.muMet.RUnlock()

				return fmt.Errorf("%w: %q in reaction %q", ErrUnknownMetabolite, metID, id)
			}
		}
		m.muMet.RUnlock()
	}

	// 4) Insert under the reaction lock.
	m.muRxn.Lock()
	defer m.muRxn.Unlock()
	if _, exists := m.reactions[id]; exists {
		return ErrDuplicateID
	}
	m.reactions[id] = r

	return nil
}

// HasReaction reports whether a reaction exists. Complexity: O(1).
func (m *Model) HasReaction(id string) bool {
	m.muRxn.RLock()
	defer m.muRxn.RUnlock()
	_, ok := m.reactions[id]

	return ok
}

// Reaction returns a deep copy of the reaction with the given ID
// (stoichiometry included), or ErrUnknownReaction. Complexity: O(k).
func (m *Model) Reaction(id string) (Reaction, error) {
	m.muRxn.RLock()
	defer m.muRxn.RUnlock()
	r, ok := m.reactions[id]
	if !ok {
		return Reaction{}, ErrUnknownReaction
	}

	return copyReaction(r), nil
}

// ReactionIDs returns all reaction IDs in sorted order.
// Complexity: O(E log E).
func (m *Model) ReactionIDs() []string {
	m.muRxn.RLock()
	defer m.muRxn.RUnlock()
	ids := make([]string, 0, len(m.reactions))
	for id := range m.reactions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// Reactions returns deep copies of all reactions, sorted by ID.
// Complexity: O(E log E + total participants).
func (m *Model) Reactions() []Reaction {
	m.muRxn.RLock()
	defer m.muRxn.RUnlock()
	out := make([]Reaction, 0, len(m.reactions))
	for _, r := range m.reactions {
		out = append(out, copyReaction(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// RemoveReaction deletes a reaction from the model.
// Returns ErrUnknownReaction when absent. Complexity: O(1).
func (m *Model) RemoveReaction(id string) error {
	m.muRxn.Lock()
	defer m.muRxn.Unlock()
	if _, ok := m.reactions[id]; !ok {
		return ErrUnknownReaction
	}
	delete(m.reactions, id)

	return nil
}

// RemoveMetabolite deletes a metabolite and cascades: every reaction that
// references it is removed too, so no reaction is left with a dangling
// participant. Returns ErrUnknownMetabolite when absent. Complexity: O(E · k).
func (m *Model) RemoveMetabolite(id string) error {
	m.muMet.Lock()
	defer m.muMet.Unlock()
	if _, ok := m.metabolites[id]; !ok {
		return ErrUnknownMetabolite
	}
	delete(m.metabolites, id)

	m.muRxn.Lock()
	defer m.muRxn.Unlock()
	for rid, r := range m.reactions {
		if _, uses := r.stoich[id]; uses {
			delete(m.reactions, rid)
		}
	}

	return nil
}

// SetBounds replaces the flux bounds of a reaction. This is the canonical
// mutation a simulation performs between solves (closing an uptake, forcing
// a flux window, knocking a reaction out with 0,0).
//
// Returns ErrUnknownReaction or ErrBoundOrder. Complexity: O(1).
func (m *Model) SetBounds(id string, lower, upper float64) error {
	if lower > upper {
		return ErrBoundOrder
	}
	m.muRxn.Lock()
	defer m.muRxn.Unlock()
	r, ok := m.reactions[id]
	if !ok {
		return ErrUnknownReaction
	}
	r.Lower, r.Upper = lower, upper

	return nil
}

// Bounds returns the current flux bounds of a reaction.
// Returns ErrUnknownReaction. Complexity: O(1).
func (m *Model) Bounds(id string) (lower, upper float64, err error) {
	m.muRxn.RLock()
	defer m.muRxn.RUnlock()
	r, ok := m.reactions[id]
	if !ok {
		return 0, 0, ErrUnknownReaction
	}

	return r.Lower, r.Upper, nil
}

// SetObjective replaces the whole objective: every reaction's coefficient is
// cleared, then the provided coefficients are applied.
//
// Returns ErrUnknownReaction when a key does not exist (the objective is left
// untouched in that case). Complexity: O(E).
func (m *Model) SetObjective(coeffs map[string]float64) error {
	m.muRxn.Lock()
	defer m.muRxn.Unlock()

	// Validate first so a bad key cannot half-apply the objective.
	for id := range coeffs {
		if _, ok := m.reactions[id]; !ok {
			return fmt.Errorf("%w: %q in objective", ErrUnknownReaction, id)
		}
	}
	for _, r := range m.reactions {
		r.Objective = 0
	}
	for id, coeff := range coeffs {
		m.reactions[id].Objective = coeff
	}

	return nil
}

// SetObjectiveReaction makes a single reaction the objective with
// coefficient 1. Returns ErrUnknownReaction. Complexity: O(E).
func (m *Model) SetObjectiveReaction(id string) error {
	return m.SetObjective(map[string]float64{id: 1})
}

// Objective returns the nonzero objective coefficients (reaction ID → coeff).
// Complexity: O(E).
func (m *Model) Objective() map[string]float64 {
	m.muRxn.RLock()
	defer m.muRxn.RUnlock()
	out := make(map[string]float64)
	for id, r := range m.reactions {
		if r.Objective != 0 {
			out[id] = r.Objective
		}
	}

	return out
}

// Exchanges returns the sorted IDs of boundary reactions: reactions touching
// exactly one metabolite (exchanges, sinks, demands). Complexity: O(E log E).
func (m *Model) Exchanges() []string {
	m.muRxn.RLock()
	defer m.muRxn.RUnlock()
	ids := make([]string, 0)
	for id, r := range m.reactions {
		if len(r.stoich) == 1 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	return ids
}

// copyReaction duplicates a reaction record including its stoichiometry map.
func copyReaction(r *Reaction) Reaction {
	out := *r
	out.stoich = make(map[string]float64, len(r.stoich))
	for id, coeff := range r.stoich {
		out.stoich[id] = coeff
	}

	return out
}

// compartmentTag extracts the compartment token from a conventional
// metabolite ID ("glc__D_e" → "e"). IDs without an underscore fall back to
// DefaultCompartment.
func compartmentTag(metID string) string {
	if i := strings.LastIndexByte(metID, '_'); i >= 0 && i+1 < len(metID) {
		return metID[i+1:]
	}

	return DefaultCompartment
}
