// Package gem_test provides benchmarks for Model catalog operations.
package gem_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/gemflux/gem"
)

// BenchmarkAddReaction measures reaction insertion with two participants,
// the dominant shape in genome-scale models.
func BenchmarkAddReaction(b *testing.B) {
	m := gem.NewModel("bench", gem.WithAutoMetabolites())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.AddReaction(fmt.Sprintf("R%d", i), map[string]float64{
			fmt.Sprintf("a%d_c", i): -1,
			fmt.Sprintf("b%d_c", i): 1,
		})
	}
}

// BenchmarkSetBounds measures the hot mutation between repeated solves.
func BenchmarkSetBounds(b *testing.B) {
	m := gem.NewModel("bench", gem.WithAutoMetabolites())
	_ = m.AddReaction("R", map[string]float64{"a_c": 1})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.SetBounds("R", -float64(i%10), float64(i%10))
	}
}

// BenchmarkClone measures deep-copy cost on a mid-sized catalog.
func BenchmarkClone(b *testing.B) {
	m := gem.NewModel("bench", gem.WithAutoMetabolites())
	for i := 0; i < 500; i++ {
		_ = m.AddReaction(fmt.Sprintf("R%d", i), map[string]float64{
			fmt.Sprintf("a%d_c", i): -1,
			fmt.Sprintf("b%d_c", i): 1,
		})
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.Clone()
	}
}
