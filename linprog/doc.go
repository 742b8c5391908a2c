// Package linprog builds bounded-variable linear programs and solves them
// with gonum's simplex implementation.
//
// The package owns the bookkeeping that constraint-based analyses need and
// that raw LP solvers do not provide: named variables with individual
// (lower, upper) bound pairs, named-coefficient constraints, objective
// sense, pre-solve reductions, and the mapping from gonum's standard-form
// solution back to the caller's variables.
//
// # Problem shape
//
//	minimize/maximize  c·x
//	subject to         A·x  =  b     (AddEquality)
//	                   G·x  ≤  h     (AddLessEq)
//	                   lo ≤ x ≤ hi   (per-variable bounds; ±Inf opens a side)
//
// Solve converts this to gonum's general form (variable bounds become
// inequality rows), runs lp.Convert + lp.Simplex, and maps the split
// variables of the standard-form answer back to the original names.
//
// # Statuses, not exceptions
//
// A decided LP is not an error: Solve returns a Solution whose Status is
// StatusOptimal, StatusInfeasible, or StatusUnbounded (mapped from the
// solver's lp.ErrInfeasible / lp.ErrUnbounded sentinels). Errors are
// reserved for malformed problems and numeric solver failures. Every
// Solution carries freshly allocated values; solving again never mutates a
// previously returned Solution.
//
// # Pre-solve
//
// Before conversion, Solve drops constraint rows with no surviving
// coefficients (an all-zero row with nonzero right-hand side decides the
// problem as infeasible on the spot) and eliminates variables that appear
// in no constraint and carry no finite bound (a negative-cost free variable
// decides the problem as unbounded). This keeps degenerate toy models out
// of the solver's zero-row/zero-column error paths.
//
// Complexity: assembly is O(vars + nonzeros); the simplex itself is
// exponential worst-case and fast in practice at this package's scale.
package linprog
