package fba_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gemflux/fba"
	"github.com/katalvlaran/gemflux/toy"
)

func TestReadFluxCSV(t *testing.T) {
	const table = `reaction,flux
# central carbon measurements, replicate 2
EX_glc,-9.7
PTS,9.7
GLYC,9.65
BIOMASS,9.6
`
	fluxes, err := fba.ReadFluxCSV(strings.NewReader(table))
	require.NoError(t, err)
	require.Len(t, fluxes, 4)
	assert.Equal(t, -9.7, fluxes["EX_glc"])
	assert.Equal(t, 9.6, fluxes["BIOMASS"])
}

func TestReadFluxCSV_NoHeader(t *testing.T) {
	fluxes, err := fba.ReadFluxCSV(strings.NewReader("PTS,1.5\nGLYC,2.5\n"))
	require.NoError(t, err)
	assert.Len(t, fluxes, 2)
}

func TestReadFluxCSV_Malformed(t *testing.T) {
	t.Run("bad flux value", func(t *testing.T) {
		_, err := fba.ReadFluxCSV(strings.NewReader("PTS,1.5\nGLYC,fast\n"))
		require.ErrorIs(t, err, fba.ErrBadFluxTable)
	})

	t.Run("duplicate reaction", func(t *testing.T) {
		_, err := fba.ReadFluxCSV(strings.NewReader("PTS,1.5\nPTS,2.5\n"))
		require.ErrorIs(t, err, fba.ErrBadFluxTable)
	})

	t.Run("wrong column count", func(t *testing.T) {
		_, err := fba.ReadFluxCSV(strings.NewReader("PTS,1.5,extra\n"))
		require.ErrorIs(t, err, fba.ErrBadFluxTable)
	})
}

func TestPearson_AgainstMeasurements(t *testing.T) {
	sol, err := fba.Solve(toy.Chain(), fba.DefaultOptions())
	require.NoError(t, err)

	// Slightly noisy measurements of the same distribution.
	measured := map[string]float64{
		"EX_glc":  -9.7,
		"PTS":     9.8,
		"GLYC":    9.6,
		"BIOMASS": 9.9,
	}
	r, n, err := fba.Pearson(sol.Fluxes(), measured)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Greater(t, r, 0.99, "predictions should track the measurements")
}

func TestPearson_NoOverlap(t *testing.T) {
	_, _, err := fba.Pearson(map[string]float64{"A": 1}, map[string]float64{"B": 2})
	require.ErrorIs(t, err, fba.ErrNoOverlap)

	_, _, err = fba.Pearson(map[string]float64{"A": 1, "B": 2}, map[string]float64{"A": 1})
	require.ErrorIs(t, err, fba.ErrNoOverlap)
}

func TestPearson_AntiCorrelated(t *testing.T) {
	a := map[string]float64{"r1": 1, "r2": 2, "r3": 3}
	b := map[string]float64{"r1": 3, "r2": 2, "r3": 1}
	r, n, err := fba.Pearson(a, b)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.InDelta(t, -1.0, r, 1e-9)
}
