// Package gemflux is your in-memory toolkit for building, constraining,
// and analyzing genome-scale metabolic models, from SBML I/O to flux
// balance analysis, knockout screens and multi-organism communities.
//
// 🚀 What is gemflux?
//
//	A thread-safe constraint-based modeling library that brings together:
//		• Model container: compartments, metabolites, reactions, genes, bounds
//		• SBML: read & write level-3 documents with fbc objectives and GPRs
//		• Gene rules: boolean gene-protein-reaction logic with knockout eval
//		• Matrices: sparse/dense stoichiometric views over gonum
//		• Solving: FBA, parsimonious FBA, variability, deletion screens
//		• Media: environment tables, application, minimal-medium search
//		• Communities: pooled-compartment merging, joint FBA, SteadyCom
//		• Flux maps: Graphviz DOT and node-link JSON/YAML exports
//
// ✨ Why choose gemflux?
//
//   - Explicit failure modes – infeasible and unbounded are statuses, not panics
//   - Deterministic outputs – sorted catalogs, reproducible tables and maps
//   - Pure Go solving – gonum's simplex under a small LP facade
//   - URL-addressed I/O – file, mem and cloud schemes through one loader
//
// Everything is organized under focused subpackages:
//
//	gem/       — the model container and its invariants
//	sbml/      — SBML decode/encode + Load/Save
//	gpr/       — gene-protein-reaction rule parsing and evaluation
//	stoich/    — stoichiometric matrix assembly
//	linprog/   — LP problem builder and simplex driver
//	fba/       — analyses: Solve, Parsimonious, Variability, knockouts
//	medium/    — growth media as ordered exchange-bound tables
//	community/ — multi-organism merging, community FBA, SteadyCom
//	fluxmap/   — solution rendering for viewers
//	toy/       — small canned fixtures used across docs and tests
//
// Quick ASCII example:
//
//	∅ ⇠ EX_glc ⇢ glc_e ⇢ PTS ⇢ glc_c ⇢ GLYC ⇢ pyr+atp ⇢ BIOMASS
//
//	a four-reaction chain whose optimum pins every flux at the uptake limit.
//
// The cmd/gemflux CLI wraps the same packages for shell workflows; see
// examples/ for runnable scenarios.
//
//	go get github.com/katalvlaran/gemflux
package gemflux
