// Package toy provides small, fully specified metabolic models with
// hand-checkable optima, used across tests, examples, and CLI demos.
//
// Every constructor returns a fresh, self-consistent gem.Model; callers may
// edit bounds or knock out genes freely without affecting later calls.
//
// The fixtures:
//
//   - Chain  — a linear glucose chain with a single optimal flux
//     distribution (growth 10 at full uptake). The smallest network on
//     which flux balance is not vacuous.
//
//   - Diamond — two alternative routes from substrate to biomass with
//     identical yield. The optimum is degenerate, which is exactly what
//     parsimonious analysis and flux variability are for. Carries a small
//     gene complement: one essential transporter gene and a synthetic
//     lethal route pair.
//
//   - CrossFeederPair — two organisms, a glucose fermenter that secretes
//     acetate and a scavenger that grows on nothing else. Merged into a
//     community they cross-feed; alone, the scavenger starves on glucose.
//
// Stoichiometry is written in the usual convention: negative coefficients
// consume, positive produce, and an exchange reaction touches exactly one
// extracellular metabolite so that negative flux is uptake and positive
// flux is secretion.
package toy
