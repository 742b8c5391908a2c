// File: community_test.go
// Role: Merge semantics, joint FBA, SteadyCom coupling, and manifest loading.

package community_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/katalvlaran/gemflux/community"
	"github.com/katalvlaran/gemflux/gem"
	"github.com/katalvlaran/gemflux/medium"
	"github.com/katalvlaran/gemflux/sbml"
	"github.com/katalvlaran/gemflux/toy"
)

func crossFeeders(t *testing.T) []*gem.Model {
	t.Helper()
	a, b := toy.CrossFeederPair()

	return []*gem.Model{a, b}
}

// --- Merge ---------------------------------------------------------------

func TestMerge_PoolAndNamespacing(t *testing.T) {
	merged, err := community.Merge(crossFeeders(t), community.DefaultOptions())
	require.NoError(t, err)

	// 2 pool metabolites + 4 namespaced from toyA + 3 from toyB.
	assert.Len(t, merged.MetaboliteIDs(), 9)
	// 5 + 4 member reactions after exchange folding, + 2 community exchanges.
	assert.Len(t, merged.ReactionIDs(), 11)
	// Pool + one cytosol per member.
	assert.Len(t, merged.Compartments(), 3)

	for _, id := range []string{
		"toyA__T_glc", "toyA__FERM", "toyA__T_ac", "toyA__BIOMASS", "toyA__DM_bm",
		"toyB__T_ac", "toyB__RESP", "toyB__BIOMASS", "toyB__DM_bm",
		"EX_glc_e", "EX_ac_e",
	} {
		assert.True(t, merged.HasReaction(id), id)
	}
	assert.False(t, merged.HasReaction("toyA__EX_glc"), "member pool exchanges are folded")
	assert.False(t, merged.HasReaction("toyB__EX_ac"), "member pool exchanges are folded")

	// Pool metabolites stay unprefixed, cytosolic ones gain the member prefix.
	r, err := merged.Reaction("toyA__T_ac")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"toyA__ac_c": -1, "ac_e": 1}, r.Stoichiometry())

	met, err := merged.Metabolite("ac_e")
	require.NoError(t, err)
	assert.Equal(t, "e", met.Compartment)

	assert.Equal(t, map[string]float64{"toyA__BIOMASS": 1, "toyB__BIOMASS": 1},
		merged.Objective())

	assert.ElementsMatch(t,
		[]string{"EX_ac_e", "EX_glc_e", "toyA__DM_bm", "toyB__DM_bm"},
		merged.Exchanges())
}

func TestMerge_UnionExchangeBounds(t *testing.T) {
	merged, err := community.Merge(crossFeeders(t), community.DefaultOptions())
	require.NoError(t, err)

	// toyA exports acetate (0, 1000), toyB imports it (-10, 0): the community
	// exchange spans both.
	lo, hi, err := merged.Bounds("EX_ac_e")
	require.NoError(t, err)
	assert.Equal(t, -10.0, lo)
	assert.Equal(t, 1000.0, hi)

	// Only toyA exchanges glucose.
	lo, hi, err = merged.Bounds("EX_glc_e")
	require.NoError(t, err)
	assert.Equal(t, -10.0, lo)
	assert.Equal(t, 0.0, hi)

	r, err := merged.Reaction("EX_ac_e")
	require.NoError(t, err)
	assert.Equal(t, "Acetate exchange", r.Name, "first folded exchange names the pool one")
}

func TestMerge_InputsUntouched(t *testing.T) {
	a, b := toy.CrossFeederPair()
	_, err := community.Merge([]*gem.Model{a, b}, community.DefaultOptions())
	require.NoError(t, err)

	assert.Len(t, a.ReactionIDs(), 7)
	assert.Len(t, b.ReactionIDs(), 5)
	assert.True(t, a.HasReaction("EX_glc"))

	lo, hi, err := b.Bounds("EX_ac")
	require.NoError(t, err)
	assert.Equal(t, -10.0, lo)
	assert.Equal(t, 0.0, hi)
}

func TestMerge_MemberValidation(t *testing.T) {
	a, b := toy.CrossFeederPair()

	t.Run("too few members", func(t *testing.T) {
		_, err := community.Merge([]*gem.Model{a}, community.DefaultOptions())
		assert.ErrorIs(t, err, community.ErrTooFewMembers)
	})

	t.Run("nil member", func(t *testing.T) {
		_, err := community.Merge([]*gem.Model{a, nil}, community.DefaultOptions())
		assert.ErrorIs(t, err, community.ErrNilMember)
	})

	t.Run("duplicate member IDs", func(t *testing.T) {
		a2, _ := toy.CrossFeederPair()
		_, err := community.Merge([]*gem.Model{a, a2}, community.DefaultOptions())
		assert.ErrorIs(t, err, community.ErrDuplicateMember)
	})

	t.Run("ID containing the separator", func(t *testing.T) {
		bad := gem.NewModel("bad__id")
		_, err := community.Merge([]*gem.Model{bad, b}, community.DefaultOptions())
		assert.ErrorIs(t, err, community.ErrBadMemberID)
	})

	t.Run("negative total biomass", func(t *testing.T) {
		opts := community.DefaultOptions()
		opts.TotalBiomass = -1
		_, err := community.Merge([]*gem.Model{a, b}, opts)
		assert.ErrorIs(t, err, community.ErrBadOption)
	})
}

func TestMerge_ZeroOptions(t *testing.T) {
	merged, err := community.Merge(crossFeeders(t), community.Options{})
	require.NoError(t, err)
	assert.True(t, merged.HasReaction("EX_glc_e"), "defaults fill in the pool compartment")
}

func TestMerge_GeneRuleNamespacing(t *testing.T) {
	members := []*gem.Model{toy.Diamond(), toy.Chain()}
	merged, err := community.Merge(members, community.DefaultOptions())
	require.NoError(t, err)

	for _, g := range []string{"g0", "g1", "g2", "g3", "g4"} {
		assert.True(t, merged.HasGene("toy_diamond__"+g), g)
	}

	r, err := merged.Reaction("toy_diamond__P1")
	require.NoError(t, err)
	assert.Equal(t, "toy_diamond__g1 and toy_diamond__g2", r.GPR)

	r, err = merged.Reaction("toy_diamond__P2b")
	require.NoError(t, err)
	assert.Equal(t, "toy_diamond__g3 or toy_diamond__g4", r.GPR)
}

func TestMerge_Environment(t *testing.T) {
	env := medium.New()
	require.NoError(t, env.Set("EX_glc_e", -4, 0))
	require.NoError(t, env.Set("EX_ac_e", 0, 1000))

	opts := community.DefaultOptions()
	opts.Environment = env
	merged, err := community.Merge(crossFeeders(t), opts)
	require.NoError(t, err)

	lo, hi, err := merged.Bounds("EX_glc_e")
	require.NoError(t, err)
	assert.Equal(t, -4.0, lo)
	assert.Equal(t, 0.0, hi)

	lo, _, err = merged.Bounds("EX_ac_e")
	require.NoError(t, err)
	assert.Equal(t, 0.0, lo, "environment overrides the union bounds")
}

func TestMerge_CommunityBiomass(t *testing.T) {
	opts := community.DefaultOptions()
	opts.CommunityBiomass = true
	merged, err := community.Merge(crossFeeders(t), opts)
	require.NoError(t, err)

	require.True(t, merged.HasReaction("BIOMASS_community"))
	assert.Equal(t, map[string]float64{"BIOMASS_community": 1}, merged.Objective(),
		"the aggregate reaction carries the whole objective")

	// Member biomass now produces its growth token, the aggregate consumes
	// one of each.
	r, err := merged.Reaction("toyA__BIOMASS")
	require.NoError(t, err)
	assert.Equal(t, 1.0, r.Stoichiometry()["token::toyA"])

	agg, err := merged.Reaction("BIOMASS_community")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"token::toyA": -1, "token::toyB": -1},
		agg.Stoichiometry())
}

func TestMerge_CommunityBiomassNeedsObjectives(t *testing.T) {
	a, b := toy.CrossFeederPair()
	require.NoError(t, b.SetObjective(map[string]float64{}))

	opts := community.DefaultOptions()
	opts.CommunityBiomass = true
	_, err := community.Merge([]*gem.Model{a, b}, opts)
	assert.ErrorIs(t, err, community.ErrNoBiomass)
}

// --- FBA -----------------------------------------------------------------

func TestFBA_CrossFeeders(t *testing.T) {
	res, err := community.FBA(crossFeeders(t), community.DefaultOptions())
	require.NoError(t, err)

	// toyA ferments 10 glucose into 10 acetate; toyB eats those plus the 10
	// the open union bound lets it import.
	assert.InDelta(t, 30.0, res.Solution.Objective, 1e-6)
	assert.InDelta(t, 10.0, res.Growth["toyA"], 1e-6)
	assert.InDelta(t, 20.0, res.Growth["toyB"], 1e-6)

	assert.InDelta(t, -10.0, res.Solution.Flux("EX_glc_e"), 1e-6)
	assert.True(t, res.Model.HasReaction("EX_ac_e"))
}

func TestFBA_Environment(t *testing.T) {
	env := medium.New()
	require.NoError(t, env.Set("EX_glc_e", -4, 0))
	require.NoError(t, env.Set("EX_ac_e", 0, 1000))

	opts := community.DefaultOptions()
	opts.Environment = env
	res, err := community.FBA(crossFeeders(t), opts)
	require.NoError(t, err)

	// Closing external acetate leaves toyB exactly toyA's output.
	assert.InDelta(t, 4.0, res.Growth["toyA"], 1e-6)
	assert.InDelta(t, 4.0, res.Growth["toyB"], 1e-6)
	assert.InDelta(t, 8.0, res.Solution.Objective, 1e-6)
}

func TestFBA_NoObjective(t *testing.T) {
	a, b := toy.CrossFeederPair()
	require.NoError(t, a.SetObjective(map[string]float64{}))

	_, err := community.FBA([]*gem.Model{a, b}, community.DefaultOptions())
	assert.ErrorIs(t, err, community.ErrNoBiomass)
}

// --- SteadyCom -----------------------------------------------------------

func TestSteadyCom_CrossFeeders(t *testing.T) {
	// Close external acetate and throttle glucose so the feeder limits the
	// community: at total glucose 4, toyB can only grow on what toyA makes,
	// which pins the split at one half each and μ at 4/0.5.
	env := medium.New()
	require.NoError(t, env.Set("EX_glc_e", -4, 0))
	require.NoError(t, env.Set("EX_ac_e", 0, 1000))

	opts := community.DefaultOptions()
	opts.Environment = env
	state, err := community.SteadyCom(crossFeeders(t), opts)
	require.NoError(t, err)

	assert.InDelta(t, 8.0, state.Growth, 1e-3)
	assert.InDelta(t, 0.5, state.Abundance["toyA"], 1e-3)
	assert.InDelta(t, 0.5, state.Abundance["toyB"], 1e-3)
	assert.InDelta(t, opts.TotalBiomass,
		state.Abundance["toyA"]+state.Abundance["toyB"], 1e-6)

	// Supporting fluxes are reported on merged IDs, without the abundance
	// variables.
	assert.InDelta(t, 4.0, state.Fluxes["toyA__FERM"], 1e-2)
	for id := range state.Fluxes {
		assert.False(t, strings.HasPrefix(id, "abundance::"), id)
	}
	assert.GreaterOrEqual(t, state.Iterations, 3)
}

func TestSteadyCom_ScalesWithTotalBiomass(t *testing.T) {
	env := medium.New()
	require.NoError(t, env.Set("EX_glc_e", -4, 0))
	require.NoError(t, env.Set("EX_ac_e", 0, 1000))

	opts := community.DefaultOptions()
	opts.Environment = env
	opts.TotalBiomass = 2

	state, err := community.SteadyCom(crossFeeders(t), opts)
	require.NoError(t, err)

	// Doubling the biomass the same feed must support halves μ.
	assert.InDelta(t, 4.0, state.Growth, 1e-3)
	assert.InDelta(t, 1.0, state.Abundance["toyA"], 1e-3)
	assert.InDelta(t, 1.0, state.Abundance["toyB"], 1e-3)
}

func TestSteadyCom_InfeasibleAtZero(t *testing.T) {
	// Forcing glucose export the community cannot supply breaks the balance
	// even at rest.
	env := medium.New()
	require.NoError(t, env.Set("EX_glc_e", 3, 5))

	opts := community.DefaultOptions()
	opts.Environment = env
	_, err := community.SteadyCom(crossFeeders(t), opts)
	assert.ErrorIs(t, err, community.ErrInfeasibleCommunity)
}

func TestSteadyCom_NoObjective(t *testing.T) {
	a, b := toy.CrossFeederPair()
	require.NoError(t, b.SetObjective(map[string]float64{}))

	_, err := community.SteadyCom([]*gem.Model{a, b}, community.DefaultOptions())
	assert.ErrorIs(t, err, community.ErrNoBiomass)
}

func TestSteadyCom_RespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := community.DefaultOptions()
	opts.Ctx = ctx
	_, err := community.SteadyCom(crossFeeders(t), opts)
	assert.ErrorIs(t, err, context.Canceled)
}

// --- Merged-ID helpers ----------------------------------------------------

func TestMemberOf(t *testing.T) {
	member, local := community.MemberOf("toyA__FERM")
	assert.Equal(t, "toyA", member)
	assert.Equal(t, "FERM", local)

	member, local = community.MemberOf("EX_glc_e")
	assert.Equal(t, "", member)
	assert.Equal(t, "EX_glc_e", local)

	member, local = community.MemberOf("__odd")
	assert.Equal(t, "", member)
	assert.Equal(t, "__odd", local)
}

func TestSplit(t *testing.T) {
	values := map[string]float64{
		"toyA__FERM": 4,
		"toyB__RESP": 4,
		"EX_ac_e":    0,
		"glc__D_e":   -4, // BiGG-style ID whose separator is not a member prefix
	}
	split := community.Split(values, []string{"toyA", "toyB"})

	assert.Equal(t, map[string]float64{"FERM": 4}, split["toyA"])
	assert.Equal(t, map[string]float64{"RESP": 4}, split["toyB"])
	assert.Equal(t, map[string]float64{"EX_ac_e": 0, "glc__D_e": -4}, split[""])
}

// --- Manifests -----------------------------------------------------------

const pairManifest = `id: pair
members:
  - id: orgA
    model: models/toyA.xml
    abundance: 0.6
  - id: orgB
    model: models/toyB.xml
    abundance: 0.4
`

func uploadPair(t *testing.T, base string) {
	t.Helper()
	ctx := context.Background()
	fs := afs.New()

	a, b := toy.CrossFeederPair()
	require.NoError(t, sbml.Save(ctx, a, base+"/models/toyA.xml"))
	require.NoError(t, sbml.Save(ctx, b, base+"/models/toyB.xml"))
	require.NoError(t, fs.Upload(ctx, base+"/community.yaml",
		file.DefaultFileOsMode, strings.NewReader(pairManifest)))
}

func TestLoadSpec_ResolvesAndLoads(t *testing.T) {
	const base = "mem://localhost/gemflux/community/pair"
	uploadPair(t, base)
	ctx := context.Background()

	spec, err := community.LoadSpec(ctx, base+"/community.yaml")
	require.NoError(t, err)
	require.Len(t, spec.Members, 2)
	assert.Equal(t, "pair", spec.ID)
	assert.Equal(t, base+"/models/toyA.xml", spec.Members[0].Model,
		"relative model paths resolve against the manifest")
	assert.Equal(t, 0.6, spec.Members[0].Abundance)

	models, err := spec.Models(ctx)
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "orgA", models[0].ID(), "models are rebuilt under the manifest ID")
	assert.Equal(t, "orgB", models[1].ID())
	assert.True(t, models[0].HasReaction("FERM"))

	res, err := community.FBA(models, community.DefaultOptions())
	require.NoError(t, err)
	assert.InDelta(t, 10.0, res.Growth["orgA"], 1e-6)
	assert.InDelta(t, 20.0, res.Growth["orgB"], 1e-6)
}

func TestLoadSpec_Validation(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	upload := func(t *testing.T, name, body string) string {
		t.Helper()
		url := "mem://localhost/gemflux/community/bad/" + name
		require.NoError(t, fs.Upload(ctx, url, file.DefaultFileOsMode,
			strings.NewReader(body)))

		return url
	}

	t.Run("not yaml", func(t *testing.T) {
		url := upload(t, "garbage.yaml", "\tmembers: [")
		_, err := community.LoadSpec(ctx, url)
		assert.ErrorIs(t, err, community.ErrBadSpec)
	})

	t.Run("one member", func(t *testing.T) {
		url := upload(t, "single.yaml", "members:\n  - id: a\n    model: a.xml\n")
		_, err := community.LoadSpec(ctx, url)
		assert.ErrorIs(t, err, community.ErrTooFewMembers)
	})

	t.Run("duplicate IDs", func(t *testing.T) {
		url := upload(t, "dup.yaml",
			"members:\n  - id: a\n    model: a.xml\n  - id: a\n    model: b.xml\n")
		_, err := community.LoadSpec(ctx, url)
		assert.ErrorIs(t, err, community.ErrDuplicateMember)
	})

	t.Run("separator in ID", func(t *testing.T) {
		url := upload(t, "sep.yaml",
			"members:\n  - id: a__b\n    model: a.xml\n  - id: c\n    model: c.xml\n")
		_, err := community.LoadSpec(ctx, url)
		assert.ErrorIs(t, err, community.ErrBadMemberID)
	})

	t.Run("missing model URL", func(t *testing.T) {
		url := upload(t, "nomodel.yaml",
			"members:\n  - id: a\n    model: a.xml\n  - id: c\n")
		_, err := community.LoadSpec(ctx, url)
		assert.ErrorIs(t, err, community.ErrBadSpec)
	})

	t.Run("negative abundance", func(t *testing.T) {
		url := upload(t, "negab.yaml",
			"members:\n  - id: a\n    model: a.xml\n    abundance: -0.2\n  - id: c\n    model: c.xml\n")
		_, err := community.LoadSpec(ctx, url)
		assert.ErrorIs(t, err, community.ErrBadSpec)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := community.LoadSpec(ctx, "mem://localhost/gemflux/community/absent.yaml")
		assert.Error(t, err)
	})
}
