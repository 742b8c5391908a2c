package sbml_test

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/katalvlaran/gemflux/sbml"
	"github.com/katalvlaran/gemflux/toy"
)

// ExampleDecode parses a minimal document; the reversible reaction without
// declared bounds falls back to (-1000, 1000).
func ExampleDecode() {
	const doc = `<?xml version="1.0"?>
<sbml><model id="demo">
  <listOfCompartments><compartment id="c"/></listOfCompartments>
  <listOfSpecies><species id="a_c" compartment="c"/></listOfSpecies>
  <listOfReactions>
    <reaction id="EX_a" reversible="true">
      <listOfReactants><speciesReference species="a_c"/></listOfReactants>
    </reaction>
  </listOfReactions>
</model></sbml>`

	m, err := sbml.Decode(strings.NewReader(doc))
	if err != nil {
		fmt.Println("decode:", err)
		return
	}

	lo, hi, _ := m.Bounds("EX_a")
	fmt.Printf("model %s: %d reaction(s)\n", m.ID(), len(m.ReactionIDs()))
	fmt.Printf("EX_a bounds [%g, %g]\n", lo, hi)

	// Output:
	// model demo: 1 reaction(s)
	// EX_a bounds [-1000, 1000]
}

// ExampleEncode writes a model out and reads it back; bounds, catalogs, and
// the objective survive the trip.
func ExampleEncode() {
	m := toy.Chain()

	var buf bytes.Buffer
	if err := sbml.Encode(m, &buf); err != nil {
		fmt.Println("encode:", err)
		return
	}

	back, err := sbml.Decode(&buf)
	if err != nil {
		fmt.Println("decode:", err)
		return
	}

	lo, hi, _ := back.Bounds("EX_glc")
	fmt.Printf("reactions: %d\n", len(back.ReactionIDs()))
	fmt.Printf("EX_glc bounds [%g, %g]\n", lo, hi)

	// Output:
	// reactions: 4
	// EX_glc bounds [-10, 0]
}
