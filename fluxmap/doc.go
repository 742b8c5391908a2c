// Package fluxmap turns a model plus a flux solution into an annotated
// network ready for visualization.
//
// The graph is bipartite: metabolite nodes connect only to reaction nodes
// and vice versa. Every link carries the flux magnitude actually moving
// across it (|stoichiometry · reaction flux|) and points in the direction
// matter flows, so a reaction running backwards has its arrows flipped
// rather than a negative weight. Links of idle reactions keep the
// reactant → reaction → product orientation written in the stoichiometry.
//
// # Exports
//
//   - ToDOT renders a Graphviz digraph: reaction boxes, metabolite
//     ellipses, edge penwidth scaled by carried flux, forward flow in
//     blue, reverse flow in orange, idle edges dashed and dimmed.
//   - WriteJSON and WriteYAML emit the same node-link document
//     (source/target pairs) for downstream viewers.
//
// Nodes and links are sorted, so identical inputs render byte-identical
// exports.
//
// # Pruning
//
// Genome-scale solutions are mostly zeros. WithPrune(eps) drops links
// carrying less than eps and any node left without a link, which keeps the
// map readable:
//
//	sol, _ := fba.Parsimonious(m, fba.DefaultOptions())
//	fm, _ := fluxmap.New(m, sol, fluxmap.WithPrune(1e-6))
//	fmt.Print(fm.ToDOT())
package fluxmap
