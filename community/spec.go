// File: spec.go
// Role: Declarative community manifests (YAML) and member model loading.

package community

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/gemflux/gem"
	"github.com/katalvlaran/gemflux/sbml"
)

// Spec is a community manifest: which models to combine and under which
// member IDs. A minimal manifest reads
//
//	id: gut_pair
//	members:
//	  - id: toyA
//	    model: toyA.xml
//	  - id: toyB
//	    model: mem://localhost/models/toyB.xml
//
// Relative model paths resolve against the manifest's own location.
type Spec struct {
	// ID names the community; informational.
	ID string `yaml:"id,omitempty"`
	// Members lists the organisms, at least two.
	Members []MemberSpec `yaml:"members"`
}

// MemberSpec describes one organism of the manifest.
type MemberSpec struct {
	// ID becomes the member's namespace prefix in the merged model.
	ID string `yaml:"id"`
	// Model is the URL of the member's SBML document.
	Model string `yaml:"model"`
	// Abundance is an optional seed fraction, e.g. from 16S counts.
	// Solvers do not consume it; it is carried for reporting.
	Abundance float64 `yaml:"abundance,omitempty"`
}

// LoadSpec reads and validates a community manifest. Relative member model
// paths are resolved against specURL before the Spec is returned.
func LoadSpec(ctx context.Context, specURL string) (*Spec, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, specURL)
	if err != nil {
		return nil, fmt.Errorf("community: load spec %s: %w", specURL, err)
	}

	var s Spec
	if err = yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBadSpec, specURL, err)
	}
	if err = s.validate(); err != nil {
		return nil, err
	}

	parent, _ := url.Split(specURL, file.Scheme)
	for i := range s.Members {
		if url.IsRelative(s.Members[i].Model) {
			s.Members[i].Model = url.Join(parent, s.Members[i].Model)
		}
	}
	return &s, nil
}

// validate applies the same member rules Merge will enforce, so a bad
// manifest fails before any model is downloaded.
func (s *Spec) validate() error {
	if len(s.Members) < 2 {
		return fmt.Errorf("%w: %d member(s), need at least 2", ErrTooFewMembers, len(s.Members))
	}
	seen := make(map[string]struct{}, len(s.Members))
	for i, ms := range s.Members {
		if !validMemberID(ms.ID) {
			return fmt.Errorf("%w: member %d: %q", ErrBadMemberID, i, ms.ID)
		}
		if _, dup := seen[ms.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateMember, ms.ID)
		}
		seen[ms.ID] = struct{}{}
		if ms.Model == "" {
			return fmt.Errorf("%w: member %s: model URL is empty", ErrBadSpec, ms.ID)
		}
		if ms.Abundance < 0 {
			return fmt.Errorf("%w: member %s: negative abundance", ErrBadSpec, ms.ID)
		}
	}
	return nil
}

// Models downloads every member's SBML document. When a document's model ID
// differs from the manifest's member ID, the model is rebuilt under the
// manifest ID so the merge prefixes match the manifest.
func (s *Spec) Models(ctx context.Context) ([]*gem.Model, error) {
	models := make([]*gem.Model, 0, len(s.Members))
	for _, ms := range s.Members {
		m, err := sbml.Load(ctx, ms.Model)
		if err != nil {
			return nil, fmt.Errorf("community: member %s: %w", ms.ID, err)
		}
		if m.ID() != ms.ID {
			if m, err = renameModel(m, ms.ID); err != nil {
				return nil, fmt.Errorf("community: member %s: %w", ms.ID, err)
			}
		}
		models = append(models, m)
	}
	return models, nil
}

// renameModel rebuilds m under a new model ID. Everything else (catalogs,
// stoichiometries, bounds, rules, the objective) carries over unchanged.
func renameModel(m *gem.Model, id string) (*gem.Model, error) {
	out := gem.NewModel(id, gem.WithModelName(m.Name()))

	for compID, compName := range m.Compartments() {
		if err := out.AddCompartment(compID, compName); err != nil {
			return nil, err
		}
	}
	for _, met := range m.Metabolites() {
		metOpts := []gem.MetaboliteOption{gem.WithMetaboliteName(met.Name)}
		if met.Formula != "" {
			metOpts = append(metOpts, gem.WithFormula(met.Formula))
		}
		if met.Charge != 0 {
			metOpts = append(metOpts, gem.WithCharge(met.Charge))
		}
		if err := out.AddMetabolite(met.ID, met.Compartment, metOpts...); err != nil {
			return nil, err
		}
	}
	for _, geneID := range m.GeneIDs() {
		g, err := m.Gene(geneID)
		if err != nil {
			return nil, err
		}
		if err = out.AddGene(geneID, g.Name); err != nil {
			return nil, err
		}
	}
	for _, r := range m.Reactions() {
		ropts := []gem.ReactionOption{gem.WithBounds(r.Lower, r.Upper)}
		if r.Name != "" {
			ropts = append(ropts, gem.WithReactionName(r.Name))
		}
		if r.Subsystem != "" {
			ropts = append(ropts, gem.WithSubsystem(r.Subsystem))
		}
		if r.GPR != "" {
			ropts = append(ropts, gem.WithGPR(r.GPR))
		}
		if r.Objective != 0 {
			ropts = append(ropts, gem.WithObjective(r.Objective))
		}
		if err := out.AddReaction(r.ID, r.Stoichiometry(), ropts...); err != nil {
			return nil, err
		}
	}
	return out, nil
}
