// Package community merges single-organism gem models into multi-organism
// models and analyzes their joint growth.
//
// # Merging
//
// Merge namespaces every member's metabolites, reactions, and genes as
// <memberID>__<localID>, with one exception: metabolites of the shared
// extracellular compartment are pooled unprefixed, so two organisms secreting
// and consuming the same compound meet in one place. Member exchange
// reactions on pool metabolites are rewired: each member keeps its
// transporters, the pool gets a single community exchange per metabolite
// (EX_<metabolite>) whose bounds are the union of the member exchanges, and
// the member-level exchanges disappear. Everything else, including
// non-extracellular boundary reactions like demand drains, is carried over
// prefixed.
//
// The namespace is reversible: MemberOf splits one ID, Split partitions a
// whole flux map by member. Member models are read-only inputs; Merge always
// returns a fresh model.
//
// # Joint growth
//
// FBA solves plain flux balance on the merged model, maximizing the sum of
// the member objectives; that lets one fast grower dominate the pool.
// SteadyCom instead asks for the largest growth rate every member can sustain
// simultaneously: each member k gets an abundance variable x_k, its flux
// bounds scale with x_k, its biomass flux is pinned to μ·x_k, and the
// abundances sum to TotalBiomass. The largest feasible μ is found by
// bisection; the returned state carries μ*, the abundance split, and the
// supporting fluxes.
//
// A cross-feeding pair shows the difference: under FBA the acetate scavenger
// grows as fast as the supply allows, while SteadyCom balances both members
// at the rate the shared pool can actually sustain.
//
// Community manifests (member IDs, model URLs, optional abundance seeds, an
// optional media table) load from YAML through viant/afs with LoadSpec.
package community
