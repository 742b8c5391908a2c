// File: merge.go
// Role: Member model merging: namespacing, the shared extracellular pool,
//       community exchanges, and the optional aggregate biomass.

package community

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/katalvlaran/gemflux/gem"
	"github.com/katalvlaran/gemflux/gpr"
	"github.com/katalvlaran/gemflux/medium"
)

// tokenPrefix names the per-member growth-token metabolites the aggregate
// community biomass consumes. The "::" keeps them apart from model IDs.
const tokenPrefix = "token::"

// communityBiomassID is the aggregate biomass reaction added by
// Options.CommunityBiomass.
const communityBiomassID = "BIOMASS_community"

// poolExchange accumulates the union bounds of the member exchanges seen for
// one pool metabolite, normalized to the {met: -1} convention.
type poolExchange struct {
	lo, hi float64
	name   string
}

// Merge builds one community model out of the member models.
//
// Steps:
//  1. Validate members: at least two, non-nil, unique IDs free of the
//     separator. With CommunityBiomass every member also needs an objective.
//  2. Declare the shared pool compartment plus each member's remaining
//     compartments, metabolites, and genes under the <member>__ prefix.
//     Pool-compartment metabolites enter once, unprefixed.
//  3. Carry reactions over prefixed, remapping stoichiometries and gene
//     rules. Member exchanges on pool metabolites are folded into a union
//     bounds table instead; with CommunityBiomass, objective reactions gain
//     a growth-token product and lose their objective coefficient.
//  4. Create one community exchange EX_<met> per pooled exchange metabolite
//     with the union bounds, then apply Options.Environment if given.
//  5. With CommunityBiomass, add the aggregate reaction consuming one token
//     per member and carrying the whole objective.
//
// The inputs are never mutated. Complexity: O(total model size · log).
func Merge(members []*gem.Model, opts Options) (*gem.Model, error) {
	// 1) Validation.
	opts.normalize()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	ids, err := memberIDs(members)
	if err != nil {
		return nil, err
	}
	if opts.CommunityBiomass {
		for k, m := range members {
			if len(m.Objective()) == 0 {
				return nil, fmt.Errorf("%w: %s", ErrNoBiomass, ids[k])
			}
		}
	}

	merged := gem.NewModel("community",
		gem.WithModelName("Community of "+strings.Join(ids, ", ")))

	// 2a) The shared pool compartment, named after the first member that
	//     names it.
	poolName := "extracellular pool"
	for _, m := range members {
		if name, ok := m.Compartments()[opts.Extracellular]; ok && name != "" {
			poolName = name
			break
		}
	}
	if err = merged.AddCompartment(opts.Extracellular, poolName); err != nil {
		return nil, fmt.Errorf("community: pool compartment: %w", err)
	}

	// 2b) Member compartments, metabolites, genes.
	for k, m := range members {
		if err = mergeCatalogs(merged, m, ids[k], opts); err != nil {
			return nil, err
		}
	}

	// 3) Reactions and the pooled exchange table.
	poolEx := make(map[string]*poolExchange)
	for k, m := range members {
		if err = mergeReactions(merged, m, ids[k], opts, poolEx); err != nil {
			return nil, err
		}
	}

	// 4) Community exchanges, sorted for determinism.
	poolMets := make([]string, 0, len(poolEx))
	for metID := range poolEx {
		poolMets = append(poolMets, metID)
	}
	sort.Strings(poolMets)
	for _, metID := range poolMets {
		ex := poolEx[metID]
		if err = merged.AddReaction("EX_"+metID, map[string]float64{metID: -1},
			gem.WithReactionName(ex.name), gem.WithBounds(ex.lo, ex.hi)); err != nil {
			return nil, fmt.Errorf("community: exchange for %s: %w", metID, err)
		}
	}
	if opts.Environment != nil {
		if _, err = opts.Environment.Apply(merged, medium.Options{Ctx: opts.Ctx}); err != nil {
			return nil, fmt.Errorf("community: apply environment: %w", err)
		}
	}

	// 5) Aggregate biomass.
	if opts.CommunityBiomass {
		tokens := make(map[string]float64, len(ids))
		for _, org := range ids {
			tokens[tokenPrefix+org] = -1
		}
		if err = merged.AddReaction(communityBiomassID, tokens,
			gem.WithReactionName("community biomass"),
			gem.WithBounds(0, gem.DefaultUpperBound), gem.WithObjective(1)); err != nil {
			return nil, fmt.Errorf("community: aggregate biomass: %w", err)
		}
	}

	return merged, nil
}

// memberIDs validates the member list and returns the IDs in member order.
func memberIDs(members []*gem.Model) ([]string, error) {
	if len(members) < 2 {
		return nil, ErrTooFewMembers
	}
	ids := make([]string, 0, len(members))
	seen := make(map[string]bool, len(members))
	for _, m := range members {
		if m == nil {
			return nil, ErrNilMember
		}
		id := m.ID()
		if !validMemberID(id) {
			return nil, fmt.Errorf("%w: %q", ErrBadMemberID, id)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateMember, id)
		}
		seen[id] = true
		ids = append(ids, id)
	}

	return ids, nil
}

// validMemberID reports whether id can serve as a namespace prefix: it must
// be non-empty and must not contain the separator itself.
func validMemberID(id string) bool {
	return id != "" && !strings.Contains(id, Separator)
}

// mergeCatalogs copies one member's compartments, metabolites, and genes
// into the merged model under the member's prefix. Pool metabolites are
// shared: the first member to declare one wins, later duplicates are checked
// for compartment agreement only.
func mergeCatalogs(merged *gem.Model, m *gem.Model, org string, opts Options) error {
	for compID, compName := range m.Compartments() {
		if compID == opts.Extracellular {
			continue
		}
		if err := merged.AddCompartment(org+Separator+compID, compName); err != nil {
			return fmt.Errorf("community: %s compartment %s: %w", org, compID, err)
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
		if met.Compartment == opts.Extracellular {
			if merged.HasMetabolite(met.ID) {
				continue
			}
			if err := merged.AddMetabolite(met.ID, opts.Extracellular, metOpts...); err != nil {
				return fmt.Errorf("community: pool metabolite %s: %w", met.ID, err)
			}

			continue
		}
		nsID := org + Separator + met.ID
		if err := merged.AddMetabolite(nsID, org+Separator+met.Compartment, metOpts...); err != nil {
			return fmt.Errorf("community: metabolite %s: %w", nsID, err)
		}
	}

	// Growth token for the aggregate biomass, one per member.
	if opts.CommunityBiomass {
		if err := merged.AddMetabolite(tokenPrefix+org, opts.Extracellular,
			gem.WithMetaboliteName(org+" growth token")); err != nil {
			return fmt.Errorf("community: growth token for %s: %w", org, err)
		}
	}

	for _, geneID := range m.GeneIDs() {
		g, err := m.Gene(geneID)
		if err != nil {
			return fmt.Errorf("community: %s gene %s: %w", org, geneID, err)
		}
		if err = merged.AddGene(org+Separator+geneID, g.Name); err != nil {
			return fmt.Errorf("community: gene %s: %w", org+Separator+geneID, err)
		}
	}

	return nil
}

// mergeReactions carries one member's reactions into the merged model,
// folding pool exchanges into the union table.
func mergeReactions(merged *gem.Model, m *gem.Model, org string, opts Options, poolEx map[string]*poolExchange) error {
	for _, r := range m.Reactions() {
		st := r.Stoichiometry()

		if metID, coeff, ok := poolExchangeOf(m, r, st, opts.Extracellular); ok {
			foldExchange(poolEx, metID, coeff, r)

			continue
		}

		nsStoich := make(map[string]float64, len(st))
		for metID, coeff := range st {
			met, err := m.Metabolite(metID)
			if err != nil {
				return fmt.Errorf("community: %s reaction %s: %w", org, r.ID, err)
			}
			if met.Compartment == opts.Extracellular {
				nsStoich[metID] = coeff
			} else {
				nsStoich[org+Separator+metID] = coeff
			}
		}

		ropts := []gem.ReactionOption{gem.WithBounds(r.Lower, r.Upper)}
		if r.Name != "" {
			ropts = append(ropts, gem.WithReactionName(r.Name))
		}
		if r.Subsystem != "" {
			ropts = append(ropts, gem.WithSubsystem(r.Subsystem))
		}
		if r.GPR != "" {
			rule, err := prefixRule(r.GPR, org)
			if err != nil {
				return fmt.Errorf("community: %s reaction %s: %w", org, r.ID, err)
			}
			if rule != "" {
				ropts = append(ropts, gem.WithGPR(rule))
			}
		}
		if opts.CommunityBiomass {
			// Objective reactions feed the member's growth token instead of
			// the objective.
			if w := r.Objective; w != 0 {
				nsStoich[tokenPrefix+org] += w
			}
		} else if r.Objective != 0 {
			ropts = append(ropts, gem.WithObjective(r.Objective))
		}

		nsID := org + Separator + r.ID
		if err := merged.AddReaction(nsID, nsStoich, ropts...); err != nil {
			return fmt.Errorf("community: reaction %s: %w", nsID, err)
		}
	}

	return nil
}

// poolExchangeOf reports whether r is a boundary reaction on a pool
// metabolite, returning the metabolite and its coefficient.
func poolExchangeOf(m *gem.Model, r gem.Reaction, st map[string]float64, pool string) (metID string, coeff float64, ok bool) {
	if len(st) != 1 {
		return "", 0, false
	}
	for id, c := range st {
		metID, coeff = id, c
	}
	met, err := m.Metabolite(metID)
	if err != nil || met.Compartment != pool {
		return "", 0, false
	}

	return metID, coeff, true
}

// foldExchange widens the union bounds for one pool metabolite. Exchanges
// written with a +1 coefficient are flipped into the {met: -1} convention
// first. The first named member exchange lends the community exchange its
// display name.
func foldExchange(poolEx map[string]*poolExchange, metID string, coeff float64, r gem.Reaction) {
	lo, hi := r.Lower, r.Upper
	if coeff > 0 {
		lo, hi = -r.Upper, -r.Lower
	}

	ex := poolEx[metID]
	if ex == nil {
		poolEx[metID] = &poolExchange{lo: lo, hi: hi, name: r.Name}

		return
	}
	ex.lo = math.Min(ex.lo, lo)
	ex.hi = math.Max(ex.hi, hi)
	if ex.name == "" {
		ex.name = r.Name
	}
}

// prefixRule rewrites every gene in a rule as <org>__<gene>, preserving the
// boolean structure. Whitespace-only rules come back empty.
func prefixRule(rule, org string) (string, error) {
	parsed, err := gpr.Parse(rule)
	if err != nil {
		return "", fmt.Errorf("gene rule %q: %w", rule, err)
	}
	if parsed == nil {
		return "", nil
	}

	return prefixTerm(parsed.Tree(), org)
}

// prefixTerm renders one rule subtree with namespaced genes, parenthesizing
// nested operator nodes.
func prefixTerm(t gpr.Term, org string) (string, error) {
	switch {
	case t.Gene != "":
		return org + Separator + t.Gene, nil

	case t.Op != "":
		parts := make([]string, 0, len(t.Children))
		for _, child := range t.Children {
			s, err := prefixTerm(child, org)
			if err != nil {
				return "", err
			}
			if child.Op != "" {
				s = "(" + s + ")"
			}
			parts = append(parts, s)
		}

		return strings.Join(parts, " "+t.Op+" "), nil

	default:
		return "", fmt.Errorf("empty gene rule term")
	}
}
