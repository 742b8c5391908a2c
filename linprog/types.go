// File: types.go
// Role: Sentinel errors, option set, statuses, and the Solution value type.

package linprog

import (
	"context"
	"errors"
)

// DefaultEpsilon is the numeric tolerance: the simplex convergence
// tolerance, the pre-solve zero threshold, and the cutoff below which
// solution values are clamped to exactly zero.
const DefaultEpsilon = 1e-9

// Sentinel errors for problem construction and solving.
var (
	// ErrNoVariables indicates Solve was called on a problem without variables.
	ErrNoVariables = errors.New("linprog: problem has no variables")

	// ErrDuplicateVariable indicates AddVariable reused a name.
	ErrDuplicateVariable = errors.New("linprog: variable already declared")

	// ErrUnknownVariable indicates a constraint or objective referenced an
	// undeclared variable.
	ErrUnknownVariable = errors.New("linprog: variable not declared")

	// ErrBoundOrder indicates a variable lower bound above its upper bound.
	ErrBoundOrder = errors.New("linprog: lower bound exceeds upper bound")

	// ErrNotFinite indicates a NaN where a number is required, or a ±Inf
	// coefficient (infinity is only legal in variable bounds).
	ErrNotFinite = errors.New("linprog: coefficient is NaN or infinite")

	// ErrOverdetermined indicates more equality rows than standard-form
	// variables; the simplex cannot start from such a system.
	ErrOverdetermined = errors.New("linprog: more equality constraints than standard-form variables")
)

// Sense selects the optimization direction.
type Sense int

const (
	// Minimize seeks the smallest objective value.
	Minimize Sense = iota

	// Maximize seeks the largest objective value.
	Maximize
)

// String implements fmt.Stringer.
func (s Sense) String() string {
	if s == Maximize {
		return "maximize"
	}

	return "minimize"
}

// Status classifies a decided linear program.
type Status int

const (
	// StatusOptimal: an optimal vertex was found.
	StatusOptimal Status = iota

	// StatusInfeasible: the constraint set admits no point.
	StatusInfeasible

	// StatusUnbounded: the objective improves without limit.
	StatusUnbounded
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	default:
		return "unknown"
	}
}

// Options configures a Solve call.
//   - Ctx: checked before the solver runs; lets batch drivers abort early.
//   - Epsilon: numeric tolerance (simplex convergence, zero clamping).
type Options struct {
	Ctx     context.Context
	Epsilon float64
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		Epsilon: DefaultEpsilon,
	}
}

// normalize fills zero-valued fields with defaults.
func (o *Options) normalize() {
	if o.Ctx == nil {
		o.Ctx = context.Background()
	}
	if o.Epsilon <= 0 {
		o.Epsilon = DefaultEpsilon
	}
}

// Solution is the immutable outcome of one Solve call. Values is freshly
// allocated per solve and never mutated afterward; Objective and Values are
// only meaningful when Status is StatusOptimal.
type Solution struct {
	// Status classifies the outcome.
	Status Status

	// Objective is the optimal objective value in the problem's Sense.
	Objective float64

	// Values maps variable name → optimal value.
	Values map[string]float64
}

// Value returns the optimal value of a variable (0 when absent).
func (s *Solution) Value(name string) float64 { return s.Values[name] }
