// File: toy.go
// Role: Canned model constructors. Each fixture is assembled through the
//       public gem API; an assembly error here is a programming error, so
//       the internal helpers panic instead of returning errors.

package toy

import (
	"fmt"

	"github.com/katalvlaran/gemflux/gem"
)

// Flux bound constants shared by all fixtures.
const (
	uptakeLimit = 10.0   // default maximal uptake on substrate exchanges
	openBound   = 1000.0 // default upper bound on interior reactions
)

// Chain returns a linear glucose chain:
//
//	∅ ⇠ EX_glc ⇢ glc_e ⇢ PTS ⇢ glc_c ⇢ GLYC ⇢ 2 pyr_c + 2 atp_c ⇢ BIOMASS
//
// With uptake capped at 10 the unique optimum is growth 10, every reaction
// carrying flux 10 and EX_glc carrying −10.
func Chain() *gem.Model {
	m := gem.NewModel("toy_chain", gem.WithModelName("Linear glucose chain"))
	mustAddCompartments(m)

	mustAddMetabolite(m, "glc_e", "e", "D-glucose (extracellular)")
	mustAddMetabolite(m, "glc_c", "c", "D-glucose")
	mustAddMetabolite(m, "pyr_c", "c", "pyruvate")
	mustAddMetabolite(m, "atp_c", "c", "ATP")

	mustAddReaction(m, "EX_glc", map[string]float64{"glc_e": -1},
		gem.WithReactionName("Glucose exchange"), gem.WithBounds(-uptakeLimit, 0))
	mustAddReaction(m, "PTS", map[string]float64{"glc_e": -1, "glc_c": 1},
		gem.WithReactionName("Glucose transport"), gem.WithBounds(0, openBound))
	mustAddReaction(m, "GLYC", map[string]float64{"glc_c": -1, "pyr_c": 2, "atp_c": 2},
		gem.WithReactionName("Glycolysis (lumped)"), gem.WithBounds(0, openBound))
	mustAddReaction(m, "BIOMASS", map[string]float64{"pyr_c": -2, "atp_c": -2},
		gem.WithReactionName("Biomass"), gem.WithBounds(0, openBound), gem.WithObjective(1))

	return m
}

// Diamond returns a network with two routes of identical yield from the
// substrate to biomass:
//
//	         ┌─ P1 ──────────────┐
//	a_c ─────┤                   ├──▶ b_c ─▶ BIOMASS ─▶ bm_c ─▶ DM_bm
//	         └─ P2a ─▶ c_c ─ P2b ┘
//
// The FBA optimum (growth 10) is degenerate: any split between P1 and
// P2a+P2b is optimal, so parsimonious FBA prefers the shorter P1 route and
// variability analysis reports wide ranges on both.
//
// Gene rules: T_a needs g0 (essential); P1 needs g1 and g2; P2a needs g3;
// P2b runs on g3 or g4. Knocking g1 together with g3 severs both routes.
func Diamond() *gem.Model {
	m := gem.NewModel("toy_diamond", gem.WithModelName("Parallel-route diamond"))
	mustAddCompartments(m)

	mustAddMetabolite(m, "a_e", "e", "substrate A (extracellular)")
	mustAddMetabolite(m, "a_c", "c", "substrate A")
	mustAddMetabolite(m, "b_c", "c", "precursor B")
	mustAddMetabolite(m, "c_c", "c", "intermediate C")
	mustAddMetabolite(m, "bm_c", "c", "biomass")

	for _, g := range []string{"g0", "g1", "g2", "g3", "g4"} {
		if err := m.AddGene(g, ""); err != nil {
			panic(fmt.Sprintf("toy: add gene %s: %v", g, err))
		}
	}

	mustAddReaction(m, "EX_a", map[string]float64{"a_e": -1},
		gem.WithReactionName("Substrate exchange"), gem.WithBounds(-uptakeLimit, 0))
	mustAddReaction(m, "T_a", map[string]float64{"a_e": -1, "a_c": 1},
		gem.WithReactionName("Substrate transport"), gem.WithBounds(0, openBound), gem.WithGPR("g0"))
	mustAddReaction(m, "P1", map[string]float64{"a_c": -1, "b_c": 1},
		gem.WithReactionName("Direct route"), gem.WithBounds(0, openBound), gem.WithGPR("g1 and g2"))
	mustAddReaction(m, "P2a", map[string]float64{"a_c": -1, "c_c": 1},
		gem.WithReactionName("Detour, first leg"), gem.WithBounds(0, openBound), gem.WithGPR("g3"))
	mustAddReaction(m, "P2b", map[string]float64{"c_c": -1, "b_c": 1},
		gem.WithReactionName("Detour, second leg"), gem.WithBounds(-openBound, openBound), gem.WithGPR("g3 or g4"))
	mustAddReaction(m, "BIOMASS", map[string]float64{"b_c": -1, "bm_c": 1},
		gem.WithReactionName("Biomass"), gem.WithBounds(0, openBound), gem.WithObjective(1))
	mustAddReaction(m, "DM_bm", map[string]float64{"bm_c": -1},
		gem.WithReactionName("Biomass drain"), gem.WithBounds(0, openBound))

	return m
}

// CrossFeederPair returns two single-substrate organisms built for community
// analysis: toyA ferments glucose and must secrete acetate as a byproduct;
// toyB grows on acetate alone. In a shared environment that supplies only
// glucose, toyB lives entirely off toyA's waste stream.
func CrossFeederPair() (a, b *gem.Model) {
	a = gem.NewModel("toyA", gem.WithModelName("Glucose fermenter"))
	mustAddCompartments(a)
	mustAddMetabolite(a, "glc_e", "e", "D-glucose (extracellular)")
	mustAddMetabolite(a, "ac_e", "e", "acetate (extracellular)")
	mustAddMetabolite(a, "glc_c", "c", "D-glucose")
	mustAddMetabolite(a, "ac_c", "c", "acetate")
	mustAddMetabolite(a, "x_c", "c", "biomass precursor")
	mustAddMetabolite(a, "bm_c", "c", "biomass")

	mustAddReaction(a, "EX_glc", map[string]float64{"glc_e": -1},
		gem.WithReactionName("Glucose exchange"), gem.WithBounds(-uptakeLimit, 0))
	mustAddReaction(a, "EX_ac", map[string]float64{"ac_e": -1},
		gem.WithReactionName("Acetate exchange"), gem.WithBounds(0, openBound))
	mustAddReaction(a, "T_glc", map[string]float64{"glc_e": -1, "glc_c": 1},
		gem.WithReactionName("Glucose transport"), gem.WithBounds(0, openBound))
	mustAddReaction(a, "FERM", map[string]float64{"glc_c": -1, "ac_c": 1, "x_c": 1},
		gem.WithReactionName("Fermentation (lumped)"), gem.WithBounds(0, openBound))
	mustAddReaction(a, "T_ac", map[string]float64{"ac_c": -1, "ac_e": 1},
		gem.WithReactionName("Acetate export"), gem.WithBounds(0, openBound))
	mustAddReaction(a, "BIOMASS", map[string]float64{"x_c": -1, "bm_c": 1},
		gem.WithReactionName("Biomass"), gem.WithBounds(0, openBound), gem.WithObjective(1))
	mustAddReaction(a, "DM_bm", map[string]float64{"bm_c": -1},
		gem.WithReactionName("Biomass drain"), gem.WithBounds(0, openBound))

	b = gem.NewModel("toyB", gem.WithModelName("Acetate scavenger"))
	mustAddCompartments(b)
	mustAddMetabolite(b, "ac_e", "e", "acetate (extracellular)")
	mustAddMetabolite(b, "ac_c", "c", "acetate")
	mustAddMetabolite(b, "y_c", "c", "biomass precursor")
	mustAddMetabolite(b, "bm_c", "c", "biomass")

	mustAddReaction(b, "EX_ac", map[string]float64{"ac_e": -1},
		gem.WithReactionName("Acetate exchange"), gem.WithBounds(-uptakeLimit, 0))
	mustAddReaction(b, "T_ac", map[string]float64{"ac_e": -1, "ac_c": 1},
		gem.WithReactionName("Acetate transport"), gem.WithBounds(0, openBound))
	mustAddReaction(b, "RESP", map[string]float64{"ac_c": -1, "y_c": 1},
		gem.WithReactionName("Respiration (lumped)"), gem.WithBounds(0, openBound))
	mustAddReaction(b, "BIOMASS", map[string]float64{"y_c": -1, "bm_c": 1},
		gem.WithReactionName("Biomass"), gem.WithBounds(0, openBound), gem.WithObjective(1))
	mustAddReaction(b, "DM_bm", map[string]float64{"bm_c": -1},
		gem.WithReactionName("Biomass drain"), gem.WithBounds(0, openBound))

	return a, b
}

func mustAddCompartments(m *gem.Model) {
	if err := m.AddCompartment("e", "extracellular"); err != nil {
		panic(fmt.Sprintf("toy: add compartment e: %v", err))
	}
	if err := m.AddCompartment("c", "cytosol"); err != nil {
		panic(fmt.Sprintf("toy: add compartment c: %v", err))
	}
}

func mustAddMetabolite(m *gem.Model, id, compartment, name string) {
	if err := m.AddMetabolite(id, compartment, gem.WithMetaboliteName(name)); err != nil {
		panic(fmt.Sprintf("toy: add metabolite %s: %v", id, err))
	}
}

func mustAddReaction(m *gem.Model, id string, stoich map[string]float64, opts ...gem.ReactionOption) {
	if err := m.AddReaction(id, stoich, opts...); err != nil {
		panic(fmt.Sprintf("toy: add reaction %s: %v", id, err))
	}
}
