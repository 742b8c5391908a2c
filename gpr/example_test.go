package gpr_test

import (
	"fmt"

	"github.com/katalvlaran/gemflux/gpr"
)

// ExampleParse demonstrates parsing and inspecting an isoenzyme rule.
func ExampleParse() {
	rule, _ := gpr.Parse("(b0001 and b0002) or b0003")

	fmt.Println("genes:", rule.Genes())
	fmt.Println("all present:", rule.Eval(nil))
	fmt.Println("without b0003:", rule.Eval(map[string]bool{"b0003": true}))
	fmt.Println("without b0001+b0003:", rule.Eval(map[string]bool{"b0001": true, "b0003": true}))

	// Output:
	// genes: [b0001 b0002 b0003]
	// all present: true
	// without b0003: true
	// without b0001+b0003: false
}

// ExampleRule_Eval shows how a knockout screen asks the same rule about
// different deletion sets.
func ExampleRule_Eval() {
	rule := gpr.MustParse("subunitA and subunitB")

	for _, knocked := range []map[string]bool{
		nil,
		{"subunitA": true},
		{"subunitB": true},
	} {
		fmt.Println(rule.Eval(knocked))
	}

	// Output:
	// true
	// false
	// false
}
