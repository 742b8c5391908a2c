package gem_test

import (
	"fmt"

	"github.com/katalvlaran/gemflux/gem"
)

// ExampleModel demonstrates the canonical build order:
// compartments → metabolites → genes → reactions.
func ExampleModel() {
	// 1) Declare the namespace first.
	m := gem.NewModel("mini", gem.WithModelName("minimal chain"))
	m.AddCompartment("e", "extracellular")
	m.AddCompartment("c", "cytosol")
	m.AddMetabolite("glc_e", "e", gem.WithMetaboliteName("glucose"))
	m.AddMetabolite("glc_c", "c")

	// 2) Wire reactions over the declared species.
	m.AddReaction("EX_glc", map[string]float64{"glc_e": -1}, gem.WithBounds(-10, 0))
	m.AddReaction("TRANS", map[string]float64{"glc_e": -1, "glc_c": 1}, gem.WithBounds(0, 1000))
	m.AddReaction("GROWTH", map[string]float64{"glc_c": -1}, gem.WithBounds(0, 1000), gem.WithObjective(1))

	// 3) Query the catalog.
	fmt.Println("reactions:", m.ReactionIDs())
	fmt.Println("exchanges:", m.Exchanges())
	fmt.Println("objective:", m.Objective())

	// Output:
	// reactions: [EX_glc GROWTH TRANS]
	// exchanges: [EX_glc GROWTH]
	// objective: map[GROWTH:1]
}

// ExampleModel_SetBounds shows the canonical edit between two simulations:
// close an uptake, then reopen it.
func ExampleModel_SetBounds() {
	m := gem.NewModel("mini")
	m.AddCompartment("e", "")
	m.AddMetabolite("o2_e", "e")
	m.AddReaction("EX_o2", map[string]float64{"o2_e": -1}, gem.WithBounds(-20, 0))

	m.SetBounds("EX_o2", 0, 0) // anaerobic
	lo, hi, _ := m.Bounds("EX_o2")
	fmt.Println("anaerobic:", lo, hi)

	m.SetBounds("EX_o2", -20, 0) // aerobic again
	lo, hi, _ = m.Bounds("EX_o2")
	fmt.Println("aerobic:", lo, hi)

	// Output:
	// anaerobic: 0 0
	// aerobic: -20 0
}

// ExampleModel_Clone demonstrates that screens mutate a copy, never the source.
func ExampleModel_Clone() {
	m := gem.NewModel("mini", gem.WithAutoMetabolites())
	m.AddReaction("R1", map[string]float64{"a_c": 1}, gem.WithBounds(0, 5))

	knockout := m.Clone()
	knockout.SetBounds("R1", 0, 0)

	lo, hi, _ := m.Bounds("R1")
	klo, khi, _ := knockout.Bounds("R1")
	fmt.Println("source:", lo, hi)
	fmt.Println("clone: ", klo, khi)

	// Output:
	// source: 0 5
	// clone:  0 0
}
