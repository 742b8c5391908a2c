// Package gem_test verifies the Model construction and query contracts.
package gem_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gemflux/gem"
)

// newToyModel builds the minimal glucose→biomass chain used across tests:
//
//	EX_glc: ∅ ↔ glc_e        (exchange, bounds -10..0 by tests that need uptake)
//	TRANS:  glc_e → glc_c
//	GROWTH: glc_c → ∅        (objective)
func newToyModel(t *testing.T) *gem.Model {
	t.Helper()
	m := gem.NewModel("toy", gem.WithModelName("toy chain"))
	require.NoError(t, m.AddCompartment("e", "extracellular"))
	require.NoError(t, m.AddCompartment("c", "cytosol"))
	require.NoError(t, m.AddMetabolite("glc_e", "e", gem.WithMetaboliteName("glucose")))
	require.NoError(t, m.AddMetabolite("glc_c", "c"))
	require.NoError(t, m.AddReaction("EX_glc", map[string]float64{"glc_e": -1},
		gem.WithBounds(-10, 0)))
	require.NoError(t, m.AddReaction("TRANS", map[string]float64{"glc_e": -1, "glc_c": 1},
		gem.WithBounds(0, 1000)))
	require.NoError(t, m.AddReaction("GROWTH", map[string]float64{"glc_c": -1},
		gem.WithBounds(0, 1000), gem.WithObjective(1)))

	return m
}

func TestModel_CompartmentAndMetaboliteLifecycle(t *testing.T) {
	m := gem.NewModel("m")

	// Empty IDs are rejected everywhere.
	require.ErrorIs(t, m.AddCompartment("", "x"), gem.ErrEmptyID, "empty compartment ID")
	require.ErrorIs(t, m.AddMetabolite("", "c"), gem.ErrEmptyID, "empty metabolite ID")
	require.ErrorIs(t, m.AddMetabolite("glc_c", ""), gem.ErrEmptyID, "empty compartment ref")

	// Metabolites must name a declared compartment.
	require.ErrorIs(t, m.AddMetabolite("glc_c", "c"), gem.ErrUnknownCompartment,
		"compartment must be declared first")

	require.NoError(t, m.AddCompartment("c", "cytosol"))
	require.True(t, m.HasCompartment("c"))
	require.NoError(t, m.AddMetabolite("glc_c", "c", gem.WithFormula("C6H12O6"), gem.WithCharge(0)))

	// Duplicates are rejected; re-declaring a compartment is idempotent.
	require.ErrorIs(t, m.AddMetabolite("glc_c", "c"), gem.ErrDuplicateID, "duplicate metabolite")
	require.NoError(t, m.AddCompartment("c", "cytoplasm"), "compartment redeclare updates name")
	assert.Equal(t, "cytoplasm", m.Compartments()["c"])

	met, err := m.Metabolite("glc_c")
	require.NoError(t, err)
	assert.Equal(t, "C6H12O6", met.Formula)

	_, err = m.Metabolite("nope")
	require.ErrorIs(t, err, gem.ErrUnknownMetabolite)
}

func TestModel_GeneLifecycle(t *testing.T) {
	m := gem.NewModel("m")
	require.ErrorIs(t, m.AddGene("", ""), gem.ErrEmptyID)
	require.NoError(t, m.AddGene("b0001", "thrA"))
	require.ErrorIs(t, m.AddGene("b0001", "thrA"), gem.ErrDuplicateID)
	require.True(t, m.HasGene("b0001"))

	g, err := m.Gene("b0001")
	require.NoError(t, err)
	assert.Equal(t, "thrA", g.Name)

	_, err = m.Gene("b9999")
	require.ErrorIs(t, err, gem.ErrUnknownGene)
}

func TestModel_AddReactionValidation(t *testing.T) {
	m := gem.NewModel("m")
	require.NoError(t, m.AddCompartment("c", ""))
	require.NoError(t, m.AddMetabolite("a_c", "c"))

	require.ErrorIs(t, m.AddReaction("", map[string]float64{"a_c": 1}), gem.ErrEmptyID)
	require.ErrorIs(t, m.AddReaction("R1", nil), gem.ErrEmptyStoichiometry)
	require.ErrorIs(t, m.AddReaction("R1", map[string]float64{"a_c": 0}), gem.ErrZeroCoefficient,
		"zero coefficient rejected")
	require.ErrorIs(t, m.AddReaction("R1", map[string]float64{"b_c": 1}), gem.ErrUnknownMetabolite,
		"participants must be declared")
	require.ErrorIs(t, m.AddReaction("R1", map[string]float64{"a_c": 1}, gem.WithBounds(5, -5)),
		gem.ErrBoundOrder)

	require.NoError(t, m.AddReaction("R1", map[string]float64{"a_c": 1}))
	require.ErrorIs(t, m.AddReaction("R1", map[string]float64{"a_c": 1}), gem.ErrDuplicateID)
}

func TestModel_AutoMetabolites(t *testing.T) {
	m := gem.NewModel("m", gem.WithAutoMetabolites())

	// Participants are declared on the fly in the compartment named by the
	// trailing ID token.
	require.NoError(t, m.AddReaction("TRANS", map[string]float64{"glc_e": -1, "glc_c": 1}))
	require.True(t, m.HasMetabolite("glc_e"))
	require.True(t, m.HasMetabolite("glc_c"))
	require.True(t, m.HasCompartment("e"))
	require.True(t, m.HasCompartment("c"))

	met, err := m.Metabolite("glc_e")
	require.NoError(t, err)
	assert.Equal(t, "e", met.Compartment)
}

func TestReaction_StoichiometryIsImmutable(t *testing.T) {
	m := newToyModel(t)

	// Mutating the caller's map after AddReaction must not leak in.
	input := map[string]float64{"glc_c": -1, "glc_e": 1}
	require.NoError(t, m.AddReaction("LEAK", input))
	input["glc_c"] = 99

	r, err := m.Reaction("LEAK")
	require.NoError(t, err)
	assert.Equal(t, -1.0, r.Coefficient("glc_c"), "ingest copy must be isolated")

	// Mutating the returned copy must not leak back.
	out := r.Stoichiometry()
	out["glc_c"] = 42
	again, err := m.Reaction("LEAK")
	require.NoError(t, err)
	assert.Equal(t, -1.0, again.Coefficient("glc_c"), "accessor copy must be isolated")
}

func TestModel_BoundsMutation(t *testing.T) {
	m := newToyModel(t)

	lo, hi, err := m.Bounds("EX_glc")
	require.NoError(t, err)
	assert.Equal(t, -10.0, lo)
	assert.Equal(t, 0.0, hi)

	require.NoError(t, m.SetBounds("EX_glc", -5, 5))
	lo, hi, err = m.Bounds("EX_glc")
	require.NoError(t, err)
	assert.Equal(t, -5.0, lo)
	assert.Equal(t, 5.0, hi)

	require.ErrorIs(t, m.SetBounds("EX_glc", 1, -1), gem.ErrBoundOrder)
	require.ErrorIs(t, m.SetBounds("nope", 0, 1), gem.ErrUnknownReaction)
	_, _, err = m.Bounds("nope")
	require.ErrorIs(t, err, gem.ErrUnknownReaction)
}

func TestModel_ObjectiveReplaceIsAtomic(t *testing.T) {
	m := newToyModel(t)
	assert.Equal(t, map[string]float64{"GROWTH": 1}, m.Objective())

	// A bad key must leave the existing objective untouched.
	err := m.SetObjective(map[string]float64{"TRANS": 1, "nope": 2})
	require.ErrorIs(t, err, gem.ErrUnknownReaction)
	assert.Equal(t, map[string]float64{"GROWTH": 1}, m.Objective(), "failed SetObjective must not half-apply")

	require.NoError(t, m.SetObjective(map[string]float64{"TRANS": 0.5}))
	assert.Equal(t, map[string]float64{"TRANS": 0.5}, m.Objective())

	require.NoError(t, m.SetObjectiveReaction("GROWTH"))
	assert.Equal(t, map[string]float64{"GROWTH": 1}, m.Objective())
}

func TestModel_ExchangesAndSortedAccessors(t *testing.T) {
	m := newToyModel(t)

	assert.Equal(t, []string{"EX_glc", "GROWTH"}, m.Exchanges(),
		"single-participant reactions are boundary reactions")
	assert.Equal(t, []string{"EX_glc", "GROWTH", "TRANS"}, m.ReactionIDs())
	assert.Equal(t, []string{"glc_c", "glc_e"}, m.MetaboliteIDs())

	rxns := m.Reactions()
	require.Len(t, rxns, 3)
	assert.Equal(t, "EX_glc", rxns[0].ID, "Reactions() is sorted by ID")
	assert.True(t, rxns[0].Boundary())
	assert.True(t, rxns[0].Reversible(), "lower bound < 0 reads as reversible")
	assert.False(t, rxns[2].Reversible())
}

func TestModel_RemoveCascades(t *testing.T) {
	m := newToyModel(t)

	require.ErrorIs(t, m.RemoveReaction("nope"), gem.ErrUnknownReaction)
	require.NoError(t, m.RemoveReaction("GROWTH"))
	assert.False(t, m.HasReaction("GROWTH"))

	// Removing a metabolite removes every reaction that references it.
	require.NoError(t, m.RemoveMetabolite("glc_e"))
	assert.False(t, m.HasReaction("EX_glc"), "exchange referenced glc_e")
	assert.False(t, m.HasReaction("TRANS"), "transport referenced glc_e")
	require.ErrorIs(t, m.RemoveMetabolite("glc_e"), gem.ErrUnknownMetabolite)
}

func TestModel_CloneIndependence(t *testing.T) {
	m := newToyModel(t)
	clone := m.Clone()

	// Same content...
	assert.Equal(t, m.ReactionIDs(), clone.ReactionIDs())
	assert.Equal(t, m.MetaboliteIDs(), clone.MetaboliteIDs())
	assert.Equal(t, m.Objective(), clone.Objective())

	// ...fully independent state.
	require.NoError(t, clone.SetBounds("EX_glc", 0, 0))
	lo, hi, err := m.Bounds("EX_glc")
	require.NoError(t, err)
	assert.Equal(t, -10.0, lo, "source lower bound untouched by clone mutation")
	assert.Equal(t, 0.0, hi)

	require.NoError(t, clone.RemoveReaction("TRANS"))
	assert.True(t, m.HasReaction("TRANS"), "source reactions untouched by clone removal")
}

func TestModel_CloneEmptyKeepsSpeciesOnly(t *testing.T) {
	m := newToyModel(t)
	empty := m.CloneEmpty()

	assert.Equal(t, m.MetaboliteIDs(), empty.MetaboliteIDs())
	assert.Empty(t, empty.ReactionIDs(), "CloneEmpty drops reactions")
	require.NoError(t, empty.AddReaction("R", map[string]float64{"glc_c": 1}),
		"species catalogs must be usable on the empty clone")
}

func TestModel_Stats(t *testing.T) {
	m := newToyModel(t)
	s := m.Stats()

	assert.Equal(t, 2, s.CompartmentCount)
	assert.Equal(t, 2, s.MetaboliteCount)
	assert.Equal(t, 0, s.GeneCount)
	assert.Equal(t, 3, s.ReactionCount)
	assert.Equal(t, 2, s.ExchangeCount)
	assert.Equal(t, 1, s.ReversibleCount, "only EX_glc has a negative lower bound")
	assert.Equal(t, 1, s.ObjectiveCount)
}

func TestModel_Clear(t *testing.T) {
	m := newToyModel(t)
	m.Clear()

	s := m.Stats()
	assert.Zero(t, s.MetaboliteCount)
	assert.Zero(t, s.ReactionCount)
	assert.Equal(t, "toy", m.ID(), "identity survives Clear")
}

// TestModel_ConcurrentBoundEdits exercises the reaction lock under parallel
// SetBounds/Bounds traffic; run with -race.
func TestModel_ConcurrentBoundEdits(t *testing.T) {
	m := gem.NewModel("conc", gem.WithAutoMetabolites())
	const n = 64
	for i := 0; i < n; i++ {
		require.NoError(t, m.AddReaction(fmt.Sprintf("R%03d", i),
			map[string]float64{fmt.Sprintf("m%03d_c", i): 1}))
	}

	var wg sync.WaitGroup
	wg.Add(2 * n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("R%03d", i)
		go func() {
			defer wg.Done()
			require.NoError(t, m.SetBounds(id, -1, 1))
		}()
		go func() {
			defer wg.Done()
			_, _, err := m.Bounds(id)
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, n, m.Stats().ReactionCount)
}
