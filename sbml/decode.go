// File: decode.go
// Role: SBML document → gem.Model. Structural problems surface as
//       ErrMalformedXML with position or element context; catalog violations
//       (duplicate IDs, unknown references) surface as the gem sentinels.

package sbml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/gemflux/gem"
	"github.com/katalvlaran/gemflux/gpr"
)

// Sentinel errors for document-level problems. Catalog-level problems
// (duplicates, unknown species or compartments) pass through as gem sentinels
// wrapped with the offending element's ID.
var (
	// ErrMalformedXML indicates the document could not be parsed or violates
	// the dialect structurally (bad numbers, dangling parameter references,
	// empty gene trees).
	ErrMalformedXML = errors.New("sbml: malformed document")

	// ErrNilModel indicates Encode or Save was handed a nil model.
	ErrNilModel = errors.New("sbml: model is nil")
)

// Decode parses an SBML-flavored document into a fresh gem.Model.
//
// Steps:
//  1. Unmarshal the XML tree (syntax errors keep the decoder's line info).
//  2. Declare compartments, then species (boundaryCondition="true" species
//     are recorded and skipped), then gene products.
//  3. Index global bound parameters, INF literals included.
//  4. Add reactions: signed stoichiometry from reactant/product references,
//     bounds from fbc references, else kinetic-law parameters, else
//     reversibility defaults, GPR trees flattened to rule strings.
//  5. Apply the active fbc objective, which replaces any kinetic-law
//     OBJECTIVE_COEFFICIENT values picked up in step 4.
//
// Complexity: O(document size), one pass per list.
func Decode(r io.Reader) (*gem.Model, error) {
	// 1) XML → shadow structs.
	var doc xmlSBML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
	}

	xm := &doc.Model
	if xm.ID == "" {
		return nil, fmt.Errorf("%w: model has no id", ErrMalformedXML)
	}
	m := gem.NewModel(xm.ID, gem.WithModelName(xm.Name))

	// 2a) Compartments.
	for _, c := range xm.Compartments {
		if err := m.AddCompartment(c.ID, c.Name); err != nil {
			return nil, fmt.Errorf("sbml: compartment %q: %w", c.ID, err)
		}
	}

	// 2b) Species. Boundary species stay out of the mass balance; remember
	//     them so their reaction references can be dropped in step 4.
	boundary := make(map[string]bool)
	for _, s := range xm.Species {
		if s.Boundary == "true" {
			boundary[s.ID] = true
			continue
		}
		opts := []gem.MetaboliteOption{gem.WithMetaboliteName(s.Name)}
		if s.Formula != "" {
			opts = append(opts, gem.WithFormula(s.Formula))
		}
		if s.Charge != nil {
			opts = append(opts, gem.WithCharge(*s.Charge))
		}
		if err := m.AddMetabolite(s.ID, s.Compartment, opts...); err != nil {
			return nil, fmt.Errorf("sbml: species %q: %w", s.ID, err)
		}
	}

	// 2c) Gene products. The fbc label is the display name.
	for _, g := range xm.GeneProducts {
		name := g.Label
		if name == "" {
			name = g.Name
		}
		if err := m.AddGene(g.ID, name); err != nil {
			return nil, fmt.Errorf("sbml: geneProduct %q: %w", g.ID, err)
		}
	}

	// 3) Global parameters by ID; later duplicates win, as in hand-edited files.
	params := make(map[string]float64, len(xm.Parameters))
	for _, p := range xm.Parameters {
		v, err := parseNumber(p.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: parameter %q: value %q", ErrMalformedXML, p.ID, p.Value)
		}
		params[p.ID] = v
	}

	// 4) Reactions.
	for i := range xm.Reactions {
		if err := addReaction(m, &xm.Reactions[i], params, boundary); err != nil {
			return nil, err
		}
	}

	// 5) Active fbc objective replaces kinetic-law coefficients wholesale.
	if coeffs, ok := activeObjective(xm.Objectives); ok {
		if err := m.SetObjective(coeffs); err != nil {
			return nil, fmt.Errorf("sbml: objective: %w", err)
		}
	}

	return m, nil
}

// addReaction converts one xmlReaction and inserts it into m.
func addReaction(m *gem.Model, xr *xmlReaction, params map[string]float64, boundary map[string]bool) error {
	if xr.ID == "" {
		return fmt.Errorf("%w: reaction has no id", ErrMalformedXML)
	}

	// 1) Signed stoichiometry. References to boundary species vanish, and
	//    entries that cancel to zero are dropped rather than rejected.
	stoich := make(map[string]float64, len(xr.Reactants)+len(xr.Products))
	if err := accumulate(stoich, xr.Reactants, -1, boundary, xr.ID); err != nil {
		return err
	}
	if err := accumulate(stoich, xr.Products, +1, boundary, xr.ID); err != nil {
		return err
	}
	for id, coeff := range stoich {
		if coeff == 0 {
			delete(stoich, id)
		}
	}

	// 2) Bounds, most specific source first.
	lo, hi, err := resolveBounds(xr, params)
	if err != nil {
		return err
	}

	opts := []gem.ReactionOption{gem.WithBounds(lo, hi)}
	if xr.Name != "" {
		opts = append(opts, gem.WithReactionName(xr.Name))
	}

	// 3) Legacy objective coefficient; an fbc objective may replace it later.
	if coeff, ok := kineticParam(xr.Kinetic, kineticObjective); ok && coeff != 0 {
		opts = append(opts, gem.WithObjective(coeff))
	}

	// 4) GPR tree → rule string, validated through the gpr grammar.
	if xr.GPR != nil {
		rule, ruleErr := gprString(xr.GPR.Node)
		if ruleErr != nil {
			return fmt.Errorf("%w: reaction %q: %v", ErrMalformedXML, xr.ID, ruleErr)
		}
		if _, ruleErr = gpr.Parse(rule); ruleErr != nil {
			return fmt.Errorf("%w: reaction %q: gene association %q: %v", ErrMalformedXML, xr.ID, rule, ruleErr)
		}
		opts = append(opts, gem.WithGPR(rule))
	}

	if err = m.AddReaction(xr.ID, stoich, opts...); err != nil {
		return fmt.Errorf("sbml: reaction %q: %w", xr.ID, err)
	}

	return nil
}

// accumulate folds one speciesReference list into the signed stoichiometry
// map. An absent stoichiometry attribute means 1 per the SBML default.
func accumulate(stoich map[string]float64, refs []xmlSpeciesRef, sign float64, boundary map[string]bool, rxnID string) error {
	for _, ref := range refs {
		if ref.Species == "" {
			return fmt.Errorf("%w: reaction %q: speciesReference has no species", ErrMalformedXML, rxnID)
		}
		if boundary[ref.Species] {
			continue
		}
		coeff := 1.0
		if ref.Stoichiometry != "" {
			v, err := parseNumber(ref.Stoichiometry)
			if err != nil {
				return fmt.Errorf("%w: reaction %q: stoichiometry %q", ErrMalformedXML, rxnID, ref.Stoichiometry)
			}
			coeff = v
		}
		stoich[ref.Species] += sign * coeff
	}

	return nil
}

// resolveBounds picks reaction bounds: fbc parameter references, then
// kinetic-law parameters, then (-1000, 1000) / (0, 1000) by reversibility.
func resolveBounds(xr *xmlReaction, params map[string]float64) (lo, hi float64, err error) {
	if xr.Reversible == "true" {
		lo, hi = gem.DefaultLowerBound, gem.DefaultUpperBound
	} else {
		lo, hi = 0, gem.DefaultUpperBound
	}

	if v, ok := kineticParam(xr.Kinetic, kineticLowerBound); ok {
		lo = v
	}
	if v, ok := kineticParam(xr.Kinetic, kineticUpperBound); ok {
		hi = v
	}

	if xr.LowerRef != "" {
		v, ok := params[xr.LowerRef]
		if !ok {
			return 0, 0, fmt.Errorf("%w: reaction %q: lowerFluxBound %q is not a declared parameter", ErrMalformedXML, xr.ID, xr.LowerRef)
		}
		lo = v
	}
	if xr.UpperRef != "" {
		v, ok := params[xr.UpperRef]
		if !ok {
			return 0, 0, fmt.Errorf("%w: reaction %q: upperFluxBound %q is not a declared parameter", ErrMalformedXML, xr.ID, xr.UpperRef)
		}
		hi = v
	}

	return lo, hi, nil
}

// kineticParam scans a reaction's kinetic law (both the L2 listOfParameters
// and the L3 listOfLocalParameters spellings) for the named constant.
func kineticParam(kl *xmlKineticLaw, id string) (float64, bool) {
	if kl == nil {
		return 0, false
	}
	for _, list := range [][]xmlParameter{kl.Parameters, kl.LocalParameters} {
		for _, p := range list {
			if p.ID != id {
				continue
			}
			if v, err := parseNumber(p.Value); err == nil {
				return v, true
			}
		}
	}

	return 0, false
}

// gprString flattens a gene association tree into a rule string accepted by
// gpr.Parse. Nested operator nodes are parenthesized; bare gene references
// are not, so "and(g1, or(g2, g3))" becomes "g1 and (g2 or g3)".
func gprString(n xmlGPRNode) (string, error) {
	switch n.XMLName.Local {
	case "geneProductRef":
		if n.GeneRef == "" {
			return "", fmt.Errorf("geneProductRef has no geneProduct attribute")
		}

		return n.GeneRef, nil

	case "and", "or":
		if len(n.Children) == 0 {
			return "", fmt.Errorf("empty <%s> node", n.XMLName.Local)
		}
		parts := make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			s, err := gprString(child)
			if err != nil {
				return "", err
			}
			if child.XMLName.Local != "geneProductRef" {
				s = "(" + s + ")"
			}
			parts = append(parts, s)
		}

		return strings.Join(parts, " "+n.XMLName.Local+" "), nil

	default:
		return "", fmt.Errorf("unsupported gene association node <%s>", n.XMLName.Local)
	}
}

// activeObjective extracts the flux-objective coefficients of the active
// (or, absent an activeObjective attribute, the first) fbc objective.
func activeObjective(objs *xmlObjectives) (map[string]float64, bool) {
	if objs == nil || len(objs.Objectives) == 0 {
		return nil, false
	}
	chosen := objs.Objectives[0]
	for _, o := range objs.Objectives {
		if o.ID == objs.Active {
			chosen = o
			break
		}
	}
	coeffs := make(map[string]float64, len(chosen.Flux))
	for _, f := range chosen.Flux {
		if f.Coefficient != 0 {
			coeffs[f.Reaction] = f.Coefficient
		}
	}

	return coeffs, true
}

// parseNumber reads an SBML numeric literal, accepting the INF / -INF
// spellings used for unbounded fluxes.
func parseNumber(s string) (float64, error) {
	switch strings.TrimSpace(s) {
	case "INF", "inf", "INFINITY":
		return math.Inf(1), nil
	case "-INF", "-inf", "-INFINITY":
		return math.Inf(-1), nil
	}

	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
