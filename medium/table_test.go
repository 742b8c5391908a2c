package medium_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/katalvlaran/gemflux/medium"
)

const glucoseMinimalTable = `compound,exchange,lower,upper
# M9-style minimal medium, carbon only
D-glucose,EX_glc,-10,0
oxygen,EX_o2,-20,0
`

func TestReadTable(t *testing.T) {
	env, err := medium.ReadTable(strings.NewReader(glucoseMinimalTable), medium.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"EX_glc", "EX_o2"}, env.Exchanges())
	lo, hi, ok := env.Bounds("EX_o2")
	require.True(t, ok)
	assert.Equal(t, -20.0, lo)
	assert.Equal(t, 0.0, hi)
	assert.Equal(t, "D-glucose", env.Name("EX_glc"))
}

func TestReadTable_TSV(t *testing.T) {
	opts := medium.DefaultOptions()
	opts.Comma = '\t'
	env, err := medium.ReadTable(strings.NewReader("glucose\tEX_glc\t-10\t0\n"), opts)
	require.NoError(t, err)
	assert.Equal(t, 1, env.Len())
}

func TestReadTable_Malformed(t *testing.T) {
	t.Run("bad bound", func(t *testing.T) {
		_, err := medium.ReadTable(strings.NewReader("glucose,EX_glc,-10,0\nn2,EX_n2,none,0\n"), medium.DefaultOptions())
		require.ErrorIs(t, err, medium.ErrBadTable)
	})

	t.Run("missing column", func(t *testing.T) {
		_, err := medium.ReadTable(strings.NewReader("glucose,EX_glc,-10\n"), medium.DefaultOptions())
		require.ErrorIs(t, err, medium.ErrBadTable)
	})

	t.Run("empty exchange", func(t *testing.T) {
		_, err := medium.ReadTable(strings.NewReader("glucose,EX_glc,-10,0\nwater,,-1,0\n"), medium.DefaultOptions())
		require.ErrorIs(t, err, medium.ErrBadTable)
	})
}

func TestWriteTable_RoundTrip(t *testing.T) {
	env := medium.New()
	require.NoError(t, env.SetNamed("EX_glc", "D-glucose", -10, 0))
	require.NoError(t, env.SetNamed("EX_nh4", "ammonium", -5.5, 0))

	var buf bytes.Buffer
	require.NoError(t, medium.WriteTable(&buf, env))

	back, err := medium.ReadTable(&buf, medium.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, env.Exchanges(), back.Exchanges())
	for _, rxnID := range env.Exchanges() {
		wantLo, wantHi, _ := env.Bounds(rxnID)
		gotLo, gotHi, ok := back.Bounds(rxnID)
		require.True(t, ok)
		assert.Equal(t, wantLo, gotLo)
		assert.Equal(t, wantHi, gotHi)
		assert.Equal(t, env.Name(rxnID), back.Name(rxnID))
	}
}

func TestLoadTable_ByURL(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	url := "mem://localhost/media/minimal.csv"
	require.NoError(t, fs.Upload(ctx, url, file.DefaultFileOsMode,
		strings.NewReader(glucoseMinimalTable)))

	env, err := medium.LoadTable(ctx, url, medium.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, env.Len())

	_, err = medium.LoadTable(ctx, "mem://localhost/media/absent.csv", medium.DefaultOptions())
	require.Error(t, err)
}
