// File: fluxmap.go
// Role: Bipartite flux-graph assembly from a model and a solution.

package fluxmap

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/gemflux/fba"
	"github.com/katalvlaran/gemflux/gem"
)

// NodeKind tags the two sides of the bipartite graph.
type NodeKind string

const (
	KindMetabolite NodeKind = "metabolite"
	KindReaction   NodeKind = "reaction"
)

// Node IDs are namespaced so a metabolite and a reaction sharing an ID
// cannot collide in exports.
const (
	metNodePrefix = "met:"
	rxnNodePrefix = "rxn:"
)

var (
	// ErrNilModel indicates a nil model input.
	ErrNilModel = errors.New("fluxmap: model is nil")

	// ErrNilSolution indicates a nil solution input.
	ErrNilSolution = errors.New("fluxmap: solution is nil")

	// ErrBadOption indicates an unusable option value.
	ErrBadOption = errors.New("fluxmap: invalid option value")
)

// Node is one vertex of the flux graph.
type Node struct {
	// ID is the namespaced node identifier ("met:glc_e", "rxn:PTS").
	ID string `json:"id" yaml:"id"`

	// Label is the display name: the element's Name when set, its bare ID
	// otherwise.
	Label string `json:"label" yaml:"label"`

	// Kind is metabolite or reaction.
	Kind NodeKind `json:"kind" yaml:"kind"`

	// Flux is the reaction's signed flux; zero (and omitted) on metabolites.
	Flux float64 `json:"flux,omitempty" yaml:"flux,omitempty"`
}

// Link is one directed edge, pointing the way matter flows.
type Link struct {
	// From and To are node IDs.
	From string `json:"source" yaml:"source"`
	To   string `json:"target" yaml:"target"`

	// Flux is the carried magnitude |stoichiometry · reaction flux|.
	Flux float64 `json:"flux" yaml:"flux"`

	// Stoich is the signed stoichiometric coefficient behind the link.
	Stoich float64 `json:"stoich" yaml:"stoich"`
}

// Option adjusts map assembly.
type Option func(*settings)

type settings struct {
	prune float64
	title string
}

// WithPrune drops links carrying less than eps and nodes left unconnected.
// Zero (the default) keeps everything.
func WithPrune(eps float64) Option {
	return func(s *settings) { s.prune = eps }
}

// WithTitle sets the DOT graph title.
func WithTitle(title string) Option {
	return func(s *settings) { s.title = title }
}

// Map is an immutable flux graph; construct with New.
type Map struct {
	modelID   string
	title     string
	objective float64
	nodes     []Node
	links     []Link
	maxFlux   float64
}

// New assembles the flux graph of m under sol.
//
// Steps:
//  1. Validate inputs and options.
//  2. Walk reactions in sorted order; each stoichiometric entry becomes one
//     link carrying |coeff · flux|, oriented along the actual flow (idle
//     reactions keep the written reactant/product orientation).
//  3. Apply pruning, then keep exactly the nodes the surviving links touch.
//  4. Sort nodes (metabolites first, each group by ID) and links.
//
// Complexity: O(L log L) over the surviving links.
func New(m *gem.Model, sol *fba.Solution, opts ...Option) (*Map, error) {
	if sol == nil {
		return nil, ErrNilSolution
	}

	return assemble(m, sol.Flux, sol.Objective, opts)
}

// FromFluxes assembles the flux graph from a raw reaction → flux map, e.g.
// one read back from a saved report or a measured flux table. Reactions
// absent from the map count as idle. The document objective is recomputed
// as Σ coeff·flux over the model's objective reactions.
func FromFluxes(m *gem.Model, fluxes map[string]float64, opts ...Option) (*Map, error) {
	if fluxes == nil {
		return nil, ErrNilSolution
	}

	var objective float64
	if m != nil {
		for rxnID, coeff := range m.Objective() {
			objective += coeff * fluxes[rxnID]
		}
	}

	return assemble(m, func(rxnID string) float64 { return fluxes[rxnID] }, objective, opts)
}

func assemble(m *gem.Model, flux func(string) float64, objective float64, opts []Option) (*Map, error) {
	// 1) Inputs.
	if m == nil {
		return nil, ErrNilModel
	}
	var cfg settings
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.prune < 0 {
		return nil, fmt.Errorf("%w: prune %g", ErrBadOption, cfg.prune)
	}

	fm := &Map{modelID: m.ID(), title: cfg.title, objective: objective}

	// 2) Links.
	usedMet := make(map[string]bool)
	usedRxn := make(map[string]bool)
	for _, rxnID := range m.ReactionIDs() {
		r, err := m.Reaction(rxnID)
		if err != nil {
			return nil, err
		}
		v := flux(rxnID)

		st := r.Stoichiometry()
		metIDs := make([]string, 0, len(st))
		for metID := range st {
			metIDs = append(metIDs, metID)
		}
		sort.Strings(metIDs)

		for _, metID := range metIDs {
			coeff := st[metID]
			carried := coeff * v
			if cfg.prune > 0 && math.Abs(carried) < cfg.prune {
				continue
			}

			link := Link{Flux: math.Abs(carried), Stoich: coeff}
			// Production of the metabolite (or an idle product entry) points
			// reaction → metabolite; consumption points metabolite → reaction.
			produces := carried > 0 || (carried == 0 && coeff > 0)
			if produces {
				link.From, link.To = rxnNodePrefix+rxnID, metNodePrefix+metID
			} else {
				link.From, link.To = metNodePrefix+metID, rxnNodePrefix+rxnID
			}

			fm.links = append(fm.links, link)
			fm.maxFlux = math.Max(fm.maxFlux, link.Flux)
			usedMet[metID] = true
			usedRxn[rxnID] = true
		}
	}

	// 3) + 4) Nodes for what survived, metabolites before reactions.
	for _, metID := range sortedKeys(usedMet) {
		met, err := m.Metabolite(metID)
		if err != nil {
			return nil, err
		}
		fm.nodes = append(fm.nodes, Node{
			ID:    metNodePrefix + metID,
			Label: labelOr(met.Name, metID),
			Kind:  KindMetabolite,
		})
	}
	for _, rxnID := range sortedKeys(usedRxn) {
		r, err := m.Reaction(rxnID)
		if err != nil {
			return nil, err
		}
		fm.nodes = append(fm.nodes, Node{
			ID:    rxnNodePrefix + rxnID,
			Label: labelOr(r.Name, rxnID),
			Kind:  KindReaction,
			Flux:  flux(rxnID),
		})
	}

	sort.Slice(fm.links, func(i, j int) bool {
		if fm.links[i].From != fm.links[j].From {
			return fm.links[i].From < fm.links[j].From
		}

		return fm.links[i].To < fm.links[j].To
	})

	return fm, nil
}

// Nodes returns a copy of the node list, metabolites first, sorted by ID.
func (fm *Map) Nodes() []Node {
	out := make([]Node, len(fm.nodes))
	copy(out, fm.nodes)

	return out
}

// Links returns a copy of the link list, sorted by source then target.
func (fm *Map) Links() []Link {
	out := make([]Link, len(fm.links))
	copy(out, fm.links)

	return out
}

// Document is the node-link form WriteJSON and WriteYAML emit.
type Document struct {
	Model     string  `json:"model" yaml:"model"`
	Objective float64 `json:"objective" yaml:"objective"`
	Nodes     []Node  `json:"nodes" yaml:"nodes"`
	Links     []Link  `json:"links" yaml:"links"`
}

// Document returns the exportable node-link view of the map.
func (fm *Map) Document() Document {
	return Document{
		Model:     fm.modelID,
		Objective: fm.objective,
		Nodes:     fm.Nodes(),
		Links:     fm.Links(),
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

func labelOr(name, id string) string {
	if name != "" {
		return name
	}

	return id
}
