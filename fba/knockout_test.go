package fba_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gemflux/fba"
	"github.com/katalvlaran/gemflux/gem"
	"github.com/katalvlaran/gemflux/toy"
)

func TestDeleteGenes_SingleKnockouts(t *testing.T) {
	m := toy.Diamond()

	results, err := fba.DeleteGenes(m, []string{"g0", "g1", "g3", "g4"}, fba.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, results, 4)

	byGene := make(map[string]fba.KnockoutResult, len(results))
	for _, res := range results {
		byGene[res.ID] = res
	}

	// g0 guards the only transporter: essential.
	assert.InDelta(t, 0.0, byGene["g0"].Growth, 1e-6)
	assert.Equal(t, []string{"T_a"}, byGene["g0"].Disabled)

	// g1 kills the direct route, the detour compensates.
	assert.InDelta(t, 10.0, byGene["g1"].Growth, 1e-5)
	assert.Equal(t, []string{"P1"}, byGene["g1"].Disabled)

	// g3 closes the detour's first leg only; P2b survives on g4.
	assert.InDelta(t, 10.0, byGene["g3"].Growth, 1e-5)
	assert.Equal(t, []string{"P2a"}, byGene["g3"].Disabled)

	// g4 alone disables nothing.
	assert.InDelta(t, 10.0, byGene["g4"].Growth, 1e-5)
	assert.Empty(t, byGene["g4"].Disabled)
}

func TestDeleteGenes_InputModelUntouched(t *testing.T) {
	m := toy.Diamond()
	_, err := fba.DeleteGenes(m, []string{"g0"}, fba.DefaultOptions())
	require.NoError(t, err)

	lo, hi, err := m.Bounds("T_a")
	require.NoError(t, err)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1000.0, hi, "screens must work on clones")
}

func TestDeleteGenes_UnknownGene(t *testing.T) {
	_, err := fba.DeleteGenes(toy.Diamond(), []string{"gX"}, fba.DefaultOptions())
	require.ErrorIs(t, err, gem.ErrUnknownGene)
}

func TestDeleteReactions_Screen(t *testing.T) {
	m := toy.Diamond()

	results, err := fba.DeleteReactions(m, []string{"T_a", "P1"}, fba.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "T_a", results[0].ID)
	assert.InDelta(t, 0.0, results[0].Growth, 1e-6, "no transport, no growth")
	assert.Equal(t, "P1", results[1].ID)
	assert.InDelta(t, 10.0, results[1].Growth, 1e-5, "the detour keeps growth at the optimum")
}

func TestDisableGenes_SyntheticLethalPair(t *testing.T) {
	m := toy.Diamond().Clone()

	disabled, err := fba.DisableGenes(m, []string{"g1", "g3"})
	require.NoError(t, err)
	assert.Equal(t, []string{"P1", "P2a"}, disabled)

	sol, err := fba.Solve(m, fba.DefaultOptions())
	require.NoError(t, err)
	assert.InDelta(t, 0.0, sol.Objective, 1e-6, "both routes severed")
}

func TestDeleteGenes_WorkersAgreeWithSequential(t *testing.T) {
	m := toy.Diamond()
	genes := []string{"g0", "g1", "g2", "g3", "g4"}

	seq, err := fba.DeleteGenes(m, genes, fba.DefaultOptions())
	require.NoError(t, err)

	opts := fba.DefaultOptions()
	opts.Workers = 3
	par, err := fba.DeleteGenes(m, genes, opts)
	require.NoError(t, err)

	require.Len(t, par, len(seq))
	for i := range seq {
		assert.Equal(t, seq[i].ID, par[i].ID, "result order must follow input order")
		assert.InDelta(t, seq[i].Growth, par[i].Growth, 1e-9)
	}
}
