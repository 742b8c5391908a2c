// Package sbml reads and writes gem models as SBML-flavored XML, the lingua
// franca of constraint-based model exchange.
//
// # Dialect
//
// The decoder targets the subset of SBML Level 3 (plus the fbc extension)
// that constraint-based tools actually exchange:
//
//   - listOfCompartments, listOfSpecies with fbc charge and chemical formula,
//   - listOfParameters holding flux-bound values (INF / -INF literals included),
//   - listOfReactions with speciesReference stoichiometries, fbc
//     lowerFluxBound / upperFluxBound parameter references, and legacy
//     COBRA kinetic-law LOWER_BOUND / UPPER_BOUND / OBJECTIVE_COEFFICIENT
//     parameters,
//   - fbc listOfGeneProducts and nested geneProductAssociation trees,
//   - fbc listOfObjectives with an active objective.
//
// Matching is by local element and attribute name, so documents are accepted
// whether or not they carry fbc: namespace prefixes. The encoder emits the
// same dialect unprefixed; Decode(Encode(m)) reproduces the model.
//
// # Bound resolution
//
// Reaction bounds are resolved in priority order: fbc parameter references,
// then kinetic-law parameters, then defaults of (-1000, 1000) when
// reversible="true" and (0, 1000) otherwise. An fbc objective, when present,
// replaces any kinetic-law objective coefficients.
//
// # Boundary species
//
// Species flagged boundaryCondition="true" (the _b pool of older COBRA
// exports) are outside the mass balance: they are not added to the model and
// their speciesReference entries are dropped, which turns the classic
// "glc_e <-> glc_b" exchange into the single-metabolite form gem expects.
//
// Load and Save move documents by URL through viant/afs, so file, mem, and
// any registered cloud scheme all work.
package sbml
