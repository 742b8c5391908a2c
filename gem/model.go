// File: model.go
// Role: The Model container and its compartment/metabolite/gene catalogs.
// Concurrency:
//   - muMet guards compartments, metabolites, and genes.
//   - muRxn guards reactions (including bounds and objective coefficients).
//   - When both locks are needed, muMet is always acquired before muRxn.

package gem

import (
	"sort"
	"sync"
)

// Model is the in-memory genome-scale metabolic model.
//
// It owns four catalogs (compartments, metabolites, genes, reactions) and
// enforces referential integrity between them: reactions may only reference
// declared metabolites, metabolites only declared compartments.
type Model struct {
	muMet sync.RWMutex // guards compartments, metabolites, genes
	muRxn sync.RWMutex // guards reactions

	id   string
	name string

	// autoMetabolites lets AddReaction declare missing participants on the fly.
	autoMetabolites bool

	compartments map[string]string // compartment ID → display name
	metabolites  map[string]*Metabolite
	genes        map[string]*Gene
	reactions    map[string]*Reaction
}

// NewModel creates an empty Model with the given ID and options.
// Complexity: O(len(opts)).
func NewModel(id string, opts ...ModelOption) *Model {
	m := &Model{
		id:           id,
		compartments: make(map[string]string),
		metabolites:  make(map[string]*Metabolite),
		genes:        make(map[string]*Gene),
		reactions:    make(map[string]*Reaction),
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// ID returns the model identifier.
func (m *Model) ID() string { return m.id }

// Name returns the human-readable model name.
func (m *Model) Name() string {
	m.muMet.RLock()
	defer m.muMet.RUnlock()

	return m.name
}

// SetName replaces the human-readable model name.
func (m *Model) SetName(name string) {
	m.muMet.Lock()
	defer m.muMet.Unlock()
	m.name = name
}

// AddCompartment declares a compartment. Re-declaring an existing ID updates
// its display name (idempotent). Returns ErrEmptyID for an empty ID.
// Complexity: O(1).
func (m *Model) AddCompartment(id, name string) error {
	if id == "" {
		return ErrEmptyID
	}
	m.muMet.Lock()
	defer m.muMet.Unlock()
	m.compartments[id] = name

	return nil
}

// HasCompartment reports whether a compartment is declared. Complexity: O(1).
func (m *Model) HasCompartment(id string) bool {
	m.muMet.RLock()
	defer m.muMet.RUnlock()
	_, ok := m.compartments[id]

	return ok
}

// Compartments returns a copy of the compartment catalog (ID → name).
func (m *Model) Compartments() map[string]string {
	m.muMet.RLock()
	defer m.muMet.RUnlock()
	out := make(map[string]string, len(m.compartments))
	for id, name := range m.compartments {
		out[id] = name
	}

	return out
}

// AddMetabolite inserts a metabolite into the given compartment.
//
// Returns ErrEmptyID for empty identifiers, ErrUnknownCompartment when the
// compartment is not declared, and ErrDuplicateID when the metabolite ID is
// taken. Complexity: O(1).
func (m *Model) AddMetabolite(id, compartment string, opts ...MetaboliteOption) error {
	// 1) Validate identifiers.
	if id == "" || compartment == "" {
		return ErrEmptyID
	}
	m.muMet.Lock()
	defer m.muMet.Unlock()

	// 2) The compartment must be declared first.
	if _, ok := m.compartments[compartment]; !ok {
		return ErrUnknownCompartment
	}
	// 3) Reject duplicates.
	if _, exists := m.metabolites[id]; exists {
		return ErrDuplicateID
	}

	met := &Metabolite{ID: id, Compartment: compartment}
	for _, opt := range opts {
		opt(met)
	}
	m.metabolites[id] = met

	return nil
}

// HasMetabolite reports whether a metabolite exists. Complexity: O(1).
func (m *Model) HasMetabolite(id string) bool {
	m.muMet.RLock()
	defer m.muMet.RUnlock()
	_, ok := m.metabolites[id]

	return ok
}

// Metabolite returns a copy of the metabolite with the given ID,
// or ErrUnknownMetabolite. Complexity: O(1).
func (m *Model) Metabolite(id string) (Metabolite, error) {
	m.muMet.RLock()
	defer m.muMet.RUnlock()
	met, ok := m.metabolites[id]
	if !ok {
		return Metabolite{}, ErrUnknownMetabolite
	}

	return *met, nil
}

// MetaboliteIDs returns all metabolite IDs in sorted order.
// Complexity: O(V log V).
func (m *Model) MetaboliteIDs() []string {
	m.muMet.RLock()
	defer m.muMet.RUnlock()
	ids := make([]string, 0, len(m.metabolites))
	for id := range m.metabolites {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// Metabolites returns copies of all metabolites, sorted by ID.
func (m *Model) Metabolites() []Metabolite {
	m.muMet.RLock()
	defer m.muMet.RUnlock()
	out := make([]Metabolite, 0, len(m.metabolites))
	for _, met := range m.metabolites {
		out = append(out, *met)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// AddGene registers a gene. Returns ErrEmptyID or ErrDuplicateID.
// Complexity: O(1).
func (m *Model) AddGene(id, name string) error {
	if id == "" {
		return ErrEmptyID
	}
	m.muMet.Lock()
	defer m.muMet.Unlock()
	if _, exists := m.genes[id]; exists {
		return ErrDuplicateID
	}
	m.genes[id] = &Gene{ID: id, Name: name}

	return nil
}

// HasGene reports whether a gene is registered. Complexity: O(1).
func (m *Model) HasGene(id string) bool {
	m.muMet.RLock()
	defer m.muMet.RUnlock()
	_, ok := m.genes[id]

	return ok
}

// Gene returns a copy of the gene with the given ID, or ErrUnknownGene.
func (m *Model) Gene(id string) (Gene, error) {
	m.muMet.RLock()
	defer m.muMet.RUnlock()
	g, ok := m.genes[id]
	if !ok {
		return Gene{}, ErrUnknownGene
	}

	return *g, nil
}

// GeneIDs returns all gene IDs in sorted order.
func (m *Model) GeneIDs() []string {
	m.muMet.RLock()
	defer m.muMet.RUnlock()
	ids := make([]string, 0, len(m.genes))
	for id := range m.genes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}
