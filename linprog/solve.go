// File: solve.go
// Role: General-form assembly, pre-solve reductions, the gonum simplex
//       call, and the standard-form → named-variable mapping.

package linprog

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// Solve assembles the problem and solves it with lp.Simplex.
//
// Steps:
//  1. Normalize options; honor an already-canceled context.
//  2. Pre-solve: decide empty constraint rows, eliminate free unconstrained
//     variables (a costed one decides the problem as unbounded).
//  3. Assemble general form: bounds become inequality rows.
//  4. lp.Convert to standard form, lp.Simplex, map sentinel errors to
//     statuses.
//  5. Recombine split variables into named values; clamp |v| ≤ Epsilon to 0.
//
// Returns a Solution with Status Optimal/Infeasible/Unbounded, or an error
// for malformed problems (ErrNoVariables, ErrOverdetermined) and numeric
// solver failures.
//
// Complexity: O(vars + nonzeros) assembly plus the simplex iterations.
func (p *Problem) Solve(opts Options) (*Solution, error) {
	// 1) Options and context.
	opts.normalize()
	if err := opts.Ctx.Err(); err != nil {
		return nil, err
	}
	if len(p.vars) == 0 {
		return nil, ErrNoVariables
	}
	eps := opts.Epsilon

	// 2a) Pre-solve constraint rows: a row whose coefficients are all ~0 is
	// either vacuous or decides the whole problem.
	eqs := make([]constraint, 0, len(p.eqs))
	for _, row := range p.eqs {
		if rowEmpty(row, eps) {
			if math.Abs(row.rhs) > eps {
				return &Solution{Status: StatusInfeasible, Values: p.zeroValues()}, nil
			}

			continue
		}
		eqs = append(eqs, row)
	}
	ineqs := make([]constraint, 0, len(p.ineqs))
	for _, row := range p.ineqs {
		if rowEmpty(row, eps) {
			if row.rhs < -eps {
				return &Solution{Status: StatusInfeasible, Values: p.zeroValues()}, nil
			}

			continue
		}
		ineqs = append(ineqs, row)
	}

	// 2b) Variables used by surviving rows.
	used := make(map[string]struct{}, len(p.vars))
	for _, row := range eqs {
		for name, c := range row.coeffs {
			if math.Abs(c) > eps {
				used[name] = struct{}{}
			}
		}
	}
	for _, row := range ineqs {
		for name, c := range row.coeffs {
			if math.Abs(c) > eps {
				used[name] = struct{}{}
			}
		}
	}

	// 2c) Eliminate free, unconstrained variables. With a cost attached the
	// problem is unbounded (both directions are open); without one the
	// variable is fixed at 0 and dropped.
	active := make([]int, 0, len(p.vars))
	for i, v := range p.vars {
		free := math.IsInf(v.lo, -1) && math.IsInf(v.hi, 1)
		if _, inUse := used[v.name]; !inUse && free {
			if math.Abs(p.objective[v.name]) > eps {
				return &Solution{Status: StatusUnbounded, Values: p.zeroValues()}, nil
			}

			continue
		}
		active = append(active, i)
	}
	if len(active) == 0 {
		// Every variable dropped at cost 0: the constant problem is optimal.
		return &Solution{Status: StatusOptimal, Objective: 0, Values: p.zeroValues()}, nil
	}
	col := make(map[string]int, len(active))
	for j, i := range active {
		col[p.vars[i].name] = j
	}
	n := len(active)

	// 3) General form. Minimize-form objective (negate for Maximize).
	c := make([]float64, n)
	for name, coeff := range p.objective {
		if j, ok := col[name]; ok {
			if p.sense == Maximize {
				c[j] = -coeff
			} else {
				c[j] = coeff
			}
		}
	}

	// Bounds become inequality rows: x_j ≤ hi and -x_j ≤ -lo.
	type denseRow struct {
		entries map[int]float64
		rhs     float64
	}
	gRows := make([]denseRow, 0, 2*n+len(ineqs))
	for j, i := range active {
		v := p.vars[i]
		if !math.IsInf(v.hi, 1) {
			gRows = append(gRows, denseRow{entries: map[int]float64{j: 1}, rhs: v.hi})
		}
		if !math.IsInf(v.lo, -1) {
			gRows = append(gRows, denseRow{entries: map[int]float64{j: -1}, rhs: -v.lo})
		}
	}
	for _, row := range ineqs {
		entries := make(map[int]float64, len(row.coeffs))
		for name, coeff := range row.coeffs {
			entries[col[name]] = coeff
		}
		gRows = append(gRows, denseRow{entries: entries, rhs: row.rhs})
	}

	// 4) Overdetermination guard: the simplex requires standard-form rows ≤
	// standard-form columns, which reduces to nEq ≤ 2·n.
	if len(eqs) > 2*n {
		return nil, fmt.Errorf("%w: %d equalities over %d variables", ErrOverdetermined, len(eqs), n)
	}

	var (
		gMat mat.Matrix
		h    []float64
	)
	if len(gRows) > 0 {
		g := mat.NewDense(len(gRows), n, nil)
		h = make([]float64, len(gRows))
		for r, row := range gRows {
			for j, coeff := range row.entries {
				g.Set(r, j, coeff)
			}
			h[r] = row.rhs
		}
		gMat = g
	}

	var (
		aMat mat.Matrix
		b    []float64
	)
	if len(eqs) > 0 {
		a := mat.NewDense(len(eqs), n, nil)
		b = make([]float64, len(eqs))
		for r, row := range eqs {
			for name, coeff := range row.coeffs {
				a.Set(r, col[name], coeff)
			}
			b[r] = row.rhs
		}
		aMat = a
	}

	// 5) Delegate: general form → standard form → simplex.
	cStd, aStd, bStd := lp.Convert(c, gMat, h, aMat, b)
	optF, optX, err := lp.Simplex(cStd, aStd, bStd, eps, nil)
	switch {
	case errors.Is(err, lp.ErrInfeasible):
		return &Solution{Status: StatusInfeasible, Values: p.zeroValues()}, nil
	case errors.Is(err, lp.ErrUnbounded):
		return &Solution{Status: StatusUnbounded, Values: p.zeroValues()}, nil
	case err != nil:
		return nil, fmt.Errorf("linprog: simplex failed: %w", err)
	}

	// 6) Recombine split variables (standard form is [x⁺ x⁻ slack]).
	values := p.zeroValues()
	for j, i := range active {
		v := optX[j] - optX[n+j]
		if math.Abs(v) <= eps {
			v = 0
		}
		values[p.vars[i].name] = v
	}
	objective := optF
	if p.sense == Maximize {
		objective = -objective
	}
	if math.Abs(objective) <= eps {
		objective = 0
	}

	return &Solution{Status: StatusOptimal, Objective: objective, Values: values}, nil
}

// zeroValues allocates a fresh all-zero value map over every declared
// variable, keeping returned Solutions self-contained.
func (p *Problem) zeroValues() map[string]float64 {
	values := make(map[string]float64, len(p.vars))
	for _, v := range p.vars {
		values[v.name] = 0
	}

	return values
}

// rowEmpty reports whether every coefficient's magnitude is within eps.
func rowEmpty(row constraint, eps float64) bool {
	for _, c := range row.coeffs {
		if math.Abs(c) > eps {
			return false
		}
	}

	return true
}
