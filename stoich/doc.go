// SPDX-License-Identifier: MIT

// Package stoich assembles the stoichiometric matrix S of a metabolic model.
//
// S has one row per metabolite and one column per reaction, both in sorted
// ID order, with S[i,j] holding the stoichiometric coefficient of metabolite
// i in reaction j (negative = consumed, positive = produced). The matrix is
// backed by a gonum mat.Dense, so it plugs straight into linear-algebra
// pipelines; index maps are kept in both directions so rows and columns can
// be addressed by ID.
//
// The steady-state condition of flux-balance analysis is S·v = 0: every
// internal metabolite is produced exactly as fast as it is consumed. Apply
// computes that residual for a candidate flux vector, which is how tests
// check mass balance on solver output.
//
// # Options
//
//   - WithBinary: store the sign structure (±1) instead of coefficients.
//   - WithDropBoundary: omit rows for metabolites touched by a boundary
//     (single-participant) reaction, exempting those pools from mass
//     balance the way SBML boundary species are exempt.
//
// Determinism: rows and columns are always sorted by ID; two builds of the
// same model are entry-for-entry identical.
//
// Complexity: Build is O(V + E·k) over k participants per reaction plus the
// dense allocation; Apply is O(V·E).
package stoich
