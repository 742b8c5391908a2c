// Package stoich_test verifies matrix assembly determinism and residuals.
package stoich_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gemflux/gem"
	"github.com/katalvlaran/gemflux/stoich"
)

// chainModel builds: EX_a: ∅→a_e (uptake), CONV: a_e → 2 b_c, SINK: b_c → ∅.
func chainModel(t *testing.T) *gem.Model {
	t.Helper()
	m := gem.NewModel("chain")
	require.NoError(t, m.AddCompartment("e", ""))
	require.NoError(t, m.AddCompartment("c", ""))
	require.NoError(t, m.AddMetabolite("a_e", "e"))
	require.NoError(t, m.AddMetabolite("b_c", "c"))
	require.NoError(t, m.AddReaction("EX_a", map[string]float64{"a_e": 1}, gem.WithBounds(0, 10)))
	require.NoError(t, m.AddReaction("CONV", map[string]float64{"a_e": -1, "b_c": 2}, gem.WithBounds(0, 1000)))
	require.NoError(t, m.AddReaction("SINK", map[string]float64{"b_c": -1}, gem.WithBounds(0, 1000)))

	return m
}

func TestBuild_Validation(t *testing.T) {
	_, err := stoich.Build(nil)
	require.ErrorIs(t, err, stoich.ErrNilModel)

	empty := gem.NewModel("empty")
	_, err = stoich.Build(empty)
	require.ErrorIs(t, err, stoich.ErrEmptyModel)
}

func TestBuild_ShapeAndEntries(t *testing.T) {
	sm, err := stoich.Build(chainModel(t))
	require.NoError(t, err)

	mets, rxns := sm.Dims()
	assert.Equal(t, 2, mets)
	assert.Equal(t, 3, rxns)
	assert.Equal(t, []string{"a_e", "b_c"}, sm.MetaboliteIDs(), "rows sorted by metabolite ID")
	assert.Equal(t, []string{"CONV", "EX_a", "SINK"}, sm.ReactionIDs(), "columns sorted by reaction ID")

	for _, tc := range []struct {
		met, rxn string
		want     float64
	}{
		{"a_e", "EX_a", 1},
		{"a_e", "CONV", -1},
		{"b_c", "CONV", 2},
		{"b_c", "SINK", -1},
		{"b_c", "EX_a", 0},
	} {
		got, err := sm.Coefficient(tc.met, tc.rxn)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "S[%s,%s]", tc.met, tc.rxn)
	}

	_, err = sm.Coefficient("nope", "CONV")
	require.ErrorIs(t, err, stoich.ErrUnknownMetabolite)
	_, err = sm.Coefficient("a_e", "nope")
	require.ErrorIs(t, err, stoich.ErrUnknownReaction)
}

func TestBuild_Deterministic(t *testing.T) {
	m := chainModel(t)
	first, err := stoich.Build(m)
	require.NoError(t, err)
	second, err := stoich.Build(m)
	require.NoError(t, err)

	assert.Equal(t, first.MetaboliteIDs(), second.MetaboliteIDs())
	assert.Equal(t, first.ReactionIDs(), second.ReactionIDs())
	rows, cols := first.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			assert.Equal(t, first.At(i, j), second.At(i, j), "entry (%d,%d)", i, j)
		}
	}
}

func TestBuild_Binary(t *testing.T) {
	sm, err := stoich.Build(chainModel(t), stoich.WithBinary())
	require.NoError(t, err)

	got, err := sm.Coefficient("b_c", "CONV")
	require.NoError(t, err)
	assert.Equal(t, 1.0, got, "coefficient 2 reduces to sign +1")
	got, err = sm.Coefficient("a_e", "CONV")
	require.NoError(t, err)
	assert.Equal(t, -1.0, got)
}

func TestBuild_DropBoundaryAllRowsGone(t *testing.T) {
	// a_e is touched by EX_a and b_c by SINK: dropping both empties the
	// row set, which Build rejects.
	_, err := stoich.Build(chainModel(t), stoich.WithDropBoundary())
	require.ErrorIs(t, err, stoich.ErrEmptyModel)
}

func TestBuild_DropBoundaryPartial(t *testing.T) {
	m := chainModel(t)
	// Add an interior metabolite chain so some rows survive.
	require.NoError(t, m.AddMetabolite("c_c", "c"))
	require.NoError(t, m.AddReaction("INT", map[string]float64{"b_c": -1, "c_c": 1}))
	require.NoError(t, m.AddReaction("INT2", map[string]float64{"c_c": -1, "b_c": 1}))

	sm, err := stoich.Build(m, stoich.WithDropBoundary())
	require.NoError(t, err)

	assert.Equal(t, []string{"c_c"}, sm.MetaboliteIDs(),
		"a_e (EX_a) and b_c (SINK) lose their balance rows; interior c_c stays")
	_, rxns := sm.Dims()
	assert.Equal(t, 5, rxns, "columns still cover every reaction")
}

func TestApply_Residual(t *testing.T) {
	sm, err := stoich.Build(chainModel(t))
	require.NoError(t, err)

	// Steady state: uptake 4, conversion 4 (making 8 b_c), sink 8.
	// Column order is [CONV EX_a SINK].
	residual, err := sm.Apply([]float64{4, 4, 8})
	require.NoError(t, err)
	assert.InDelta(t, 0, residual[0], 1e-12, "a_e balanced")
	assert.InDelta(t, 0, residual[1], 1e-12, "b_c balanced")

	// Unbalanced: conversion without sink accumulates b_c at rate 8.
	residual, err = sm.Apply([]float64{4, 4, 0})
	require.NoError(t, err)
	assert.InDelta(t, 8, residual[1], 1e-12, "b_c accumulates")

	_, err = sm.Apply([]float64{1, 2})
	require.ErrorIs(t, err, stoich.ErrDimensionMismatch)
}

func TestDense_IsACopy(t *testing.T) {
	sm, err := stoich.Build(chainModel(t))
	require.NoError(t, err)

	d := sm.Dense()
	d.Set(0, 0, 99)
	assert.NotEqual(t, 99.0, sm.At(0, 0), "Dense() must hand out an isolated copy")
}
