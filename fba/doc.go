// Package fba implements flux-balance analysis and its standard companions
// over gem models: parsimonious FBA, flux-variability analysis, and
// reaction/gene deletion screens.
//
// # What FBA computes
//
// A metabolic network at steady state neither accumulates nor depletes
// internal metabolites: S·v = 0, where S is the stoichiometric matrix and v
// the vector of reaction fluxes. Each flux is boxed by its bounds
// lo ≤ v ≤ hi, and the model designates an objective (usually the biomass
// reaction). FBA maximizes that objective over the feasible polytope:
//
//	maximize   c·v
//	subject to S·v = 0
//	           lo ≤ v ≤ hi
//
// The matrix comes from package stoich, the linear program is assembled and
// solved by package linprog, and the result is wrapped in a Solution that
// maps every reaction to its flux.
//
// # Beyond plain FBA
//
//   - Parsimonious — the FBA optimum is usually degenerate; pFBA picks, among
//     all optimal flux distributions, one minimizing total flux Σ|v|, a proxy
//     for minimal enzyme cost.
//   - Variability — per-reaction attainable flux ranges while holding the
//     objective at a fraction of its optimum; wide ranges expose the
//     degeneracy pFBA collapses.
//   - DeleteReactions / DeleteGenes — single-knockout screens; gene deletions
//     are propagated through the gpr rules to the reactions they disable.
//     Every screen works on a clone, never on the caller's model.
//   - ReadFluxCSV / Pearson — load measured fluxes and correlate them with
//     predictions.
//
// Solves are synchronous; Variability and the deletion screens optionally
// fan out across a bounded worker pool (Options.Workers). All entry points
// honor Options.Ctx.
//
// Failure is explicit: an infeasible model returns ErrInfeasible, a missing
// objective ErrNoObjective. Screens are the exception: a lethal knockout is
// a result (growth 0), not an error.
package fba
