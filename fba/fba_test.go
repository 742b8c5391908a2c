// File: fba_test.go
// Role: Plain-FBA behavior on the toy fixtures: optima, bound edits, status
//       mapping, mass balance, and Solution immutability.

package fba_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gemflux/fba"
	"github.com/katalvlaran/gemflux/gem"
	"github.com/katalvlaran/gemflux/stoich"
	"github.com/katalvlaran/gemflux/toy"
)

func TestSolve_ChainOptimum(t *testing.T) {
	m := toy.Chain()
	sol, err := fba.Solve(m, fba.DefaultOptions())
	require.NoError(t, err)

	assert.InDelta(t, 10.0, sol.Objective, 1e-6, "growth is capped by the uptake limit")
	assert.InDelta(t, -10.0, sol.Flux("EX_glc"), 1e-6)
	assert.InDelta(t, 10.0, sol.Flux("PTS"), 1e-6)
	assert.InDelta(t, 10.0, sol.Flux("GLYC"), 1e-6)
	assert.InDelta(t, 10.0, sol.Flux("BIOMASS"), 1e-6)
	assert.Positive(t, sol.Elapsed)
}

func TestSolve_MassBalance(t *testing.T) {
	m := toy.Diamond()
	sol, err := fba.Solve(m, fba.DefaultOptions())
	require.NoError(t, err)

	sm, err := stoich.Build(m)
	require.NoError(t, err)
	v := make([]float64, 0, len(sm.ReactionIDs()))
	for _, rxnID := range sm.ReactionIDs() {
		v = append(v, sol.Flux(rxnID))
	}
	residual, err := sm.Apply(v)
	require.NoError(t, err)
	for i, r := range residual {
		assert.InDeltaf(t, 0.0, r, 1e-6, "metabolite %s accumulates", sm.MetaboliteIDs()[i])
	}
}

func TestSolve_RespectsBoundEdits(t *testing.T) {
	m := toy.Chain()
	require.NoError(t, m.SetBounds("EX_glc", -4, 0))

	sol, err := fba.Solve(m, fba.DefaultOptions())
	require.NoError(t, err)
	assert.InDelta(t, 4.0, sol.Objective, 1e-6)
}

func TestSolve_Infeasible(t *testing.T) {
	m := toy.Chain()
	// Force transport while closing the only supply.
	require.NoError(t, m.SetBounds("EX_glc", 0, 0))
	require.NoError(t, m.SetBounds("PTS", 5, 1000))

	_, err := fba.Solve(m, fba.DefaultOptions())
	require.ErrorIs(t, err, fba.ErrInfeasible)
}

func TestSolve_Unbounded(t *testing.T) {
	m := gem.NewModel("loop")
	require.NoError(t, m.AddCompartment("c", "cytosol"))
	require.NoError(t, m.AddMetabolite("a_c", "c"))
	require.NoError(t, m.AddReaction("SRC", map[string]float64{"a_c": 1},
		gem.WithBounds(0, math.Inf(1))))
	require.NoError(t, m.AddReaction("SNK", map[string]float64{"a_c": -1},
		gem.WithBounds(0, math.Inf(1)), gem.WithObjective(1)))

	_, err := fba.Solve(m, fba.DefaultOptions())
	require.ErrorIs(t, err, fba.ErrUnbounded)
}

func TestSolve_Validation(t *testing.T) {
	t.Run("nil model", func(t *testing.T) {
		_, err := fba.Solve(nil, fba.DefaultOptions())
		require.ErrorIs(t, err, fba.ErrNilModel)
	})

	t.Run("no objective", func(t *testing.T) {
		m := toy.Chain()
		require.NoError(t, m.SetObjective(map[string]float64{}))
		_, err := fba.Solve(m, fba.DefaultOptions())
		require.ErrorIs(t, err, fba.ErrNoObjective)
	})

	t.Run("bad fraction", func(t *testing.T) {
		opts := fba.DefaultOptions()
		opts.FractionOfOptimum = 1.5
		_, err := fba.Solve(toy.Chain(), opts)
		require.ErrorIs(t, err, fba.ErrBadFraction)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		opts := fba.DefaultOptions()
		opts.Ctx = ctx
		_, err := fba.Solve(toy.Chain(), opts)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestSolution_FluxesAreCopies(t *testing.T) {
	sol, err := fba.Solve(toy.Chain(), fba.DefaultOptions())
	require.NoError(t, err)

	leaked := sol.Fluxes()
	leaked["BIOMASS"] = -999
	assert.InDelta(t, 10.0, sol.Flux("BIOMASS"), 1e-6, "mutating the copy must not reach the solution")
	assert.Zero(t, sol.Flux("no-such-reaction"))
}

func TestSolve_ZeroOptionsBehaveAsDefaults(t *testing.T) {
	sol, err := fba.Solve(toy.Chain(), fba.Options{})
	require.NoError(t, err)
	assert.InDelta(t, 10.0, sol.Objective, 1e-6)
}
