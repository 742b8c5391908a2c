// SPDX-License-Identifier: MIT

// File: stoich.go
// Role: The Matrix type, its builder, and ID-addressed accessors.

package stoich

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gemflux/gem"
)

// Sentinel errors. Tests match them via errors.Is.
var (
	// ErrNilModel is returned when a nil *gem.Model is passed to Build.
	ErrNilModel = errors.New("stoich: model is nil")

	// ErrEmptyModel is returned when the model has no metabolites or no reactions.
	ErrEmptyModel = errors.New("stoich: model has no metabolites or no reactions")

	// ErrUnknownMetabolite indicates a metabolite ID outside the row index.
	ErrUnknownMetabolite = errors.New("stoich: metabolite not in matrix")

	// ErrUnknownReaction indicates a reaction ID outside the column index.
	ErrUnknownReaction = errors.New("stoich: reaction not in matrix")

	// ErrDimensionMismatch indicates a vector length incompatible with the matrix.
	ErrDimensionMismatch = errors.New("stoich: dimension mismatch")
)

// Matrix is an immutable stoichiometric matrix with deterministic ID
// indexing: rows are metabolites, columns are reactions, both sorted by ID.
type Matrix struct {
	dense *mat.Dense

	rows []string // metabolite IDs in row order
	cols []string // reaction IDs in column order

	rowIndex map[string]int
	colIndex map[string]int
}

// Build assembles the stoichiometric matrix of m.
//
// Steps:
//  1. Snapshot sorted metabolite and reaction IDs.
//  2. Under WithDropBoundary, exclude metabolites touched by boundary reactions.
//  3. Allocate the dense backing and fill one column per reaction.
//
// Returns ErrNilModel or ErrEmptyModel on degenerate input.
// Complexity: O(V + E·k) plus the O(V·E) dense allocation.
func Build(m *gem.Model, opts ...Option) (*Matrix, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	o := gatherOptions(opts...)

	// 1) Deterministic axes.
	metIDs := m.MetaboliteIDs()
	reactions := m.Reactions()
	if len(metIDs) == 0 || len(reactions) == 0 {
		return nil, ErrEmptyModel
	}

	// 2) Optionally drop rows of boundary-touched metabolites.
	if o.dropBoundary {
		boundary := make(map[string]struct{})
		for _, r := range reactions {
			if r.Boundary() {
				for _, metID := range r.Metabolites() {
					boundary[metID] = struct{}{}
				}
			}
		}
		kept := metIDs[:0]
		for _, id := range metIDs {
			if _, drop := boundary[id]; !drop {
				kept = append(kept, id)
			}
		}
		metIDs = kept
		if len(metIDs) == 0 {
			return nil, ErrEmptyModel
		}
	}

	sm := &Matrix{
		rows:     metIDs,
		cols:     make([]string, len(reactions)),
		rowIndex: make(map[string]int, len(metIDs)),
		colIndex: make(map[string]int, len(reactions)),
	}
	for i, id := range metIDs {
		sm.rowIndex[id] = i
	}
	for j, r := range reactions {
		sm.cols[j] = r.ID
		sm.colIndex[r.ID] = j
	}

	// 3) Fill columns. Reactions() is sorted, so the fill order is stable.
	sm.dense = mat.NewDense(len(metIDs), len(reactions), nil)
	var (
		row int
		ok  bool
	)
	for j, r := range reactions {
		for metID, coeff := range r.Stoichiometry() {
			if row, ok = sm.rowIndex[metID]; !ok {
				continue // dropped boundary row
			}
			if o.binary {
				coeff = sign(coeff)
			}
			sm.dense.Set(row, j, coeff)
		}
	}

	return sm, nil
}

// Dims returns (metabolites, reactions).
func (sm *Matrix) Dims() (mets, rxns int) { return len(sm.rows), len(sm.cols) }

// MetaboliteIDs returns the row labels in row order. The slice is shared;
// callers must not mutate it.
func (sm *Matrix) MetaboliteIDs() []string { return sm.rows }

// ReactionIDs returns the column labels in column order. The slice is
// shared; callers must not mutate it.
func (sm *Matrix) ReactionIDs() []string { return sm.cols }

// RowOf returns the row index of a metabolite ID.
func (sm *Matrix) RowOf(metID string) (int, error) {
	i, ok := sm.rowIndex[metID]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMetabolite, metID)
	}

	return i, nil
}

// ColOf returns the column index of a reaction ID.
func (sm *Matrix) ColOf(rxnID string) (int, error) {
	j, ok := sm.colIndex[rxnID]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownReaction, rxnID)
	}

	return j, nil
}

// At returns the entry at (row i, column j). Indexes follow gonum semantics
// and panic when out of range; use Coefficient for ID-checked access.
func (sm *Matrix) At(i, j int) float64 { return sm.dense.At(i, j) }

// Coefficient returns the entry addressed by IDs.
func (sm *Matrix) Coefficient(metID, rxnID string) (float64, error) {
	i, err := sm.RowOf(metID)
	if err != nil {
		return 0, err
	}
	j, err := sm.ColOf(rxnID)
	if err != nil {
		return 0, err
	}

	return sm.dense.At(i, j), nil
}

// Dense returns a deep copy of the backing matrix, safe to mutate.
func (sm *Matrix) Dense() *mat.Dense {
	var out mat.Dense
	out.CloneFrom(sm.dense)

	return &out
}

// Apply computes the mass-balance residual S·v for a flux vector v given in
// column (reaction) order. A zero residual within solver tolerance means v
// is a steady state.
//
// Returns ErrDimensionMismatch when len(v) differs from the reaction count.
// Complexity: O(V·E).
func (sm *Matrix) Apply(v []float64) ([]float64, error) {
	if len(v) != len(sm.cols) {
		return nil, fmt.Errorf("%w: flux vector has %d entries, matrix has %d reactions",
			ErrDimensionMismatch, len(v), len(sm.cols))
	}

	var residual mat.VecDense
	residual.MulVec(sm.dense, mat.NewVecDense(len(v), v))

	out := make([]float64, len(sm.rows))
	copy(out, residual.RawVector().Data)

	return out, nil
}

// sign maps a nonzero coefficient to ±1.
func sign(v float64) float64 {
	if v < 0 {
		return -1
	}

	return 1
}
