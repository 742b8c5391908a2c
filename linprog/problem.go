// File: problem.go
// Role: The Problem builder: validated variables, constraints, objective.

package linprog

import (
	"fmt"
	"math"
)

// variable is one named LP variable with its bound pair.
type variable struct {
	name   string
	lo, hi float64
}

// constraint is one linear row: Σ coeffs[name]·x[name] (= | ≤) rhs.
type constraint struct {
	coeffs map[string]float64
	rhs    float64
}

// Problem accumulates variables, constraints, and an objective, then hands
// the assembled system to Solve. The zero Problem is not usable; call
// NewProblem.
type Problem struct {
	vars  []variable
	index map[string]int

	eqs   []constraint // A·x = b
	ineqs []constraint // G·x ≤ h

	objective map[string]float64
	sense     Sense
}

// NewProblem returns an empty minimization problem.
func NewProblem() *Problem {
	return &Problem{
		index:     make(map[string]int),
		objective: make(map[string]float64),
		sense:     Minimize,
	}
}

// AddVariable declares a variable with bounds lo ≤ x ≤ hi. ±Inf opens the
// respective side; NaN is rejected.
//
// Returns ErrDuplicateVariable, ErrBoundOrder, or ErrNotFinite.
// Complexity: O(1).
func (p *Problem) AddVariable(name string, lo, hi float64) error {
	if _, exists := p.index[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateVariable, name)
	}
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return fmt.Errorf("%w: bounds of %q", ErrNotFinite, name)
	}
	if lo > hi {
		return fmt.Errorf("%w: %q has lo=%g > hi=%g", ErrBoundOrder, name, lo, hi)
	}
	p.index[name] = len(p.vars)
	p.vars = append(p.vars, variable{name: name, lo: lo, hi: hi})

	return nil
}

// NumVariables returns the number of declared variables.
func (p *Problem) NumVariables() int { return len(p.vars) }

// Bounds returns the bound pair of a declared variable.
func (p *Problem) Bounds(name string) (lo, hi float64, err error) {
	i, ok := p.index[name]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownVariable, name)
	}

	return p.vars[i].lo, p.vars[i].hi, nil
}

// SetBounds replaces the bound pair of a declared variable.
func (p *Problem) SetBounds(name string, lo, hi float64) error {
	i, ok := p.index[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownVariable, name)
	}
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return fmt.Errorf("%w: bounds of %q", ErrNotFinite, name)
	}
	if lo > hi {
		return fmt.Errorf("%w: %q has lo=%g > hi=%g", ErrBoundOrder, name, lo, hi)
	}
	p.vars[i].lo, p.vars[i].hi = lo, hi

	return nil
}

// AddEquality appends the constraint Σ coeffs·x = rhs.
//
// Returns ErrUnknownVariable or ErrNotFinite. The map is copied.
// Complexity: O(len(coeffs)).
func (p *Problem) AddEquality(coeffs map[string]float64, rhs float64) error {
	row, err := p.buildRow(coeffs, rhs)
	if err != nil {
		return err
	}
	p.eqs = append(p.eqs, row)

	return nil
}

// AddLessEq appends the constraint Σ coeffs·x ≤ rhs.
//
// Returns ErrUnknownVariable or ErrNotFinite. The map is copied.
// Complexity: O(len(coeffs)).
func (p *Problem) AddLessEq(coeffs map[string]float64, rhs float64) error {
	row, err := p.buildRow(coeffs, rhs)
	if err != nil {
		return err
	}
	p.ineqs = append(p.ineqs, row)

	return nil
}

// AddGreaterEq appends Σ coeffs·x ≥ rhs by negating into ≤ form.
// Complexity: O(len(coeffs)).
func (p *Problem) AddGreaterEq(coeffs map[string]float64, rhs float64) error {
	neg := make(map[string]float64, len(coeffs))
	for name, c := range coeffs {
		neg[name] = -c
	}

	return p.AddLessEq(neg, -rhs)
}

// SetObjective replaces the objective with sense and coefficients.
//
// Returns ErrUnknownVariable or ErrNotFinite; on error the previous
// objective is kept. Complexity: O(len(coeffs)).
func (p *Problem) SetObjective(sense Sense, coeffs map[string]float64) error {
	next := make(map[string]float64, len(coeffs))
	for name, c := range coeffs {
		if _, ok := p.index[name]; !ok {
			return fmt.Errorf("%w: %q in objective", ErrUnknownVariable, name)
		}
		if !isFinite(c) {
			return fmt.Errorf("%w: objective coefficient of %q", ErrNotFinite, name)
		}
		next[name] = c
	}
	p.sense = sense
	p.objective = next

	return nil
}

// buildRow validates and copies a coefficient map into a constraint.
func (p *Problem) buildRow(coeffs map[string]float64, rhs float64) (constraint, error) {
	if !isFinite(rhs) {
		return constraint{}, fmt.Errorf("%w: right-hand side %g", ErrNotFinite, rhs)
	}
	row := constraint{coeffs: make(map[string]float64, len(coeffs)), rhs: rhs}
	for name, c := range coeffs {
		if _, ok := p.index[name]; !ok {
			return constraint{}, fmt.Errorf("%w: %q in constraint", ErrUnknownVariable, name)
		}
		if !isFinite(c) {
			return constraint{}, fmt.Errorf("%w: coefficient of %q", ErrNotFinite, name)
		}
		row.coeffs[name] = c
	}

	return row, nil
}

// isFinite reports whether v is neither NaN nor ±Inf.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
