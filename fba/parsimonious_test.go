package fba_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gemflux/fba"
	"github.com/katalvlaran/gemflux/toy"
)

func TestParsimonious_CollapsesDegenerateOptimum(t *testing.T) {
	m := toy.Diamond()

	plain, err := fba.Solve(m, fba.DefaultOptions())
	require.NoError(t, err)
	parsim, err := fba.Parsimonious(m, fba.DefaultOptions())
	require.NoError(t, err)

	// Growth is preserved...
	assert.InDelta(t, plain.Objective, parsim.Objective, 1e-5)
	// ...while total flux can only shrink.
	assert.LessOrEqual(t, parsim.TotalFlux, plain.TotalFlux+1e-6)

	// The two-step detour is abandoned for the direct route.
	assert.InDelta(t, 10.0, parsim.Flux("P1"), 1e-5)
	assert.InDelta(t, 0.0, parsim.Flux("P2a"), 1e-5)
	assert.InDelta(t, 0.0, parsim.Flux("P2b"), 1e-5)
}

func TestParsimonious_AuxiliariesDoNotLeak(t *testing.T) {
	parsim, err := fba.Parsimonious(toy.Chain(), fba.DefaultOptions())
	require.NoError(t, err)

	for id := range parsim.Fluxes() {
		assert.NotContains(t, id, "::", "internal variables must not appear in the flux map")
	}
}

func TestParsimonious_FractionRelaxesGrowth(t *testing.T) {
	m := toy.Chain()
	opts := fba.DefaultOptions()
	opts.FractionOfOptimum = 0.5

	parsim, err := fba.Parsimonious(m, opts)
	require.NoError(t, err)

	// The chain has no shortcuts: at half growth every flux halves.
	assert.InDelta(t, 5.0, parsim.Objective, 1e-5)
	assert.InDelta(t, 5.0, parsim.Flux("GLYC"), 1e-5)
	assert.InDelta(t, -5.0, parsim.Flux("EX_glc"), 1e-5)
}
