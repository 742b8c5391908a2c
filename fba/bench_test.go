package fba_test

import (
	"testing"

	"github.com/katalvlaran/gemflux/fba"
	"github.com/katalvlaran/gemflux/toy"
)

func BenchmarkSolve(b *testing.B) {
	m := toy.Diamond()
	opts := fba.DefaultOptions()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := fba.Solve(m, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParsimonious(b *testing.B) {
	m := toy.Diamond()
	opts := fba.DefaultOptions()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := fba.Parsimonious(m, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkVariability(b *testing.B) {
	m := toy.Diamond()
	opts := fba.DefaultOptions()
	opts.Workers = 4
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := fba.Variability(m, opts); err != nil {
			b.Fatal(err)
		}
	}
}
