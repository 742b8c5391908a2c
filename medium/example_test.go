package medium_test

import (
	"fmt"
	"os"

	"github.com/katalvlaran/gemflux/medium"
	"github.com/katalvlaran/gemflux/toy"
)

// ExampleMinimal trims a rich environment down to what the chain actually
// needs for full growth.
func ExampleMinimal() {
	m := toy.Chain()
	env, err := medium.FromModel(m)
	if err != nil {
		fmt.Println("derive:", err)
		return
	}

	minimal, err := medium.Minimal(m, env, medium.DefaultOptions())
	if err != nil {
		fmt.Println("minimize:", err)
		return
	}

	for _, rxnID := range minimal.Exchanges() {
		lo, _, _ := minimal.Bounds(rxnID)
		fmt.Printf("%s: uptake %.1f\n", rxnID, -lo)
	}

	// Output:
	// EX_glc: uptake 10.0
}

// ExampleWriteTable emits an environment as a shareable CSV media table.
func ExampleWriteTable() {
	env := medium.New()
	_ = env.SetNamed("EX_glc", "D-glucose", -10, 0)
	_ = env.SetNamed("EX_o2", "oxygen", -20, 0)

	if err := medium.WriteTable(os.Stdout, env); err != nil {
		fmt.Println("write:", err)
	}

	// Output:
	// compound,exchange,lower,upper
	// D-glucose,EX_glc,-10,0
	// oxygen,EX_o2,-20,0
}
