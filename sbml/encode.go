// File: encode.go
// Role: gem.Model → SBML document. Output is deterministic: every list is
//       sorted by ID, bounds become per-reaction <id>_lb / <id>_ub parameters.

package sbml

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/katalvlaran/gemflux/gem"
	"github.com/katalvlaran/gemflux/gpr"
)

// Encode writes m as an SBML-flavored document.
//
// Steps:
//  1. Compartments, species, and gene products, sorted by ID. Gene products
//     referenced by a rule but missing from the model catalog are emitted
//     too, so the document is self-contained.
//  2. One <id>_lb / <id>_ub parameter pair per reaction, INF literals for
//     unbounded fluxes.
//  3. Reactions with signed speciesReference lists and gene association
//     trees rebuilt from the parsed rules.
//  4. A single maximize objective when the model has objective coefficients.
//
// A rule string that does not parse aborts the encode; nothing is written
// until the whole document builds. Complexity: O(model size · log).
func Encode(m *gem.Model, w io.Writer) error {
	if m == nil {
		return ErrNilModel
	}

	doc, err := buildDocument(m)
	if err != nil {
		return err
	}

	if _, err = io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("sbml: write: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err = enc.Encode(doc); err != nil {
		return fmt.Errorf("sbml: encode: %w", err)
	}
	if _, err = io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("sbml: write: %w", err)
	}

	return nil
}

// buildDocument assembles the full shadow tree before any byte is written.
func buildDocument(m *gem.Model) (*xmlSBML, error) {
	xm := xmlModel{ID: m.ID(), Name: m.Name()}

	// 1a) Compartments, sorted by ID.
	comps := m.Compartments()
	compIDs := make([]string, 0, len(comps))
	for id := range comps {
		compIDs = append(compIDs, id)
	}
	sort.Strings(compIDs)
	for _, id := range compIDs {
		xm.Compartments = append(xm.Compartments, xmlCompartment{ID: id, Name: comps[id], Constant: "true"})
	}

	// 1b) Species. Charge is emitted only when non-zero.
	for _, met := range m.Metabolites() {
		s := xmlSpecies{
			ID:          met.ID,
			Name:        met.Name,
			Compartment: met.Compartment,
			Formula:     met.Formula,
			Boundary:    "false",
			Constant:    "false",
		}
		if met.Charge != 0 {
			charge := met.Charge
			s.Charge = &charge
		}
		xm.Species = append(xm.Species, s)
	}

	// 1c) Gene catalog: declared genes keep their display name as the label.
	genes := make(map[string]string)
	for _, id := range m.GeneIDs() {
		g, err := m.Gene(id)
		if err != nil {
			return nil, fmt.Errorf("sbml: gene %q: %w", id, err)
		}
		genes[id] = g.Name
	}

	// 2+3) Bound parameters and reactions, one pass, sorted by m.Reactions.
	reactions := m.Reactions()
	for i := range reactions {
		r := &reactions[i]
		xm.Parameters = append(xm.Parameters,
			xmlParameter{ID: r.ID + "_lb", Value: formatNumber(r.Lower), Constant: "true"},
			xmlParameter{ID: r.ID + "_ub", Value: formatNumber(r.Upper), Constant: "true"},
		)

		xr := xmlReaction{
			ID:         r.ID,
			Name:       r.Name,
			Reversible: strconv.FormatBool(r.Reversible()),
			LowerRef:   r.ID + "_lb",
			UpperRef:   r.ID + "_ub",
		}
		for _, metID := range r.Metabolites() {
			coeff := r.Coefficient(metID)
			ref := xmlSpeciesRef{Species: metID, Constant: "true"}
			if coeff < 0 {
				ref.Stoichiometry = formatNumber(-coeff)
				xr.Reactants = append(xr.Reactants, ref)
			} else {
				ref.Stoichiometry = formatNumber(coeff)
				xr.Products = append(xr.Products, ref)
			}
		}

		if r.GPR != "" {
			rule, err := gpr.Parse(r.GPR)
			if err != nil {
				return nil, fmt.Errorf("sbml: reaction %q: gene association %q: %w", r.ID, r.GPR, err)
			}
			for _, gid := range rule.Genes() {
				if _, ok := genes[gid]; !ok {
					genes[gid] = ""
				}
			}
			node, err := gprNode(rule.Tree())
			if err != nil {
				return nil, fmt.Errorf("sbml: reaction %q: %v", r.ID, err)
			}
			xr.GPR = &xmlGPRWrapper{Node: node}
		}

		xm.Reactions = append(xm.Reactions, xr)
	}

	// 1c, continued) Gene products after rule genes have been folded in.
	geneIDs := make([]string, 0, len(genes))
	for id := range genes {
		geneIDs = append(geneIDs, id)
	}
	sort.Strings(geneIDs)
	for _, id := range geneIDs {
		xm.GeneProducts = append(xm.GeneProducts, xmlGeneProduct{ID: id, Label: genes[id]})
	}

	// 4) Objective section only when coefficients exist.
	if obj := m.Objective(); len(obj) > 0 {
		rxnIDs := make([]string, 0, len(obj))
		for id := range obj {
			rxnIDs = append(rxnIDs, id)
		}
		sort.Strings(rxnIDs)
		flux := make([]xmlFluxObjective, 0, len(rxnIDs))
		for _, id := range rxnIDs {
			flux = append(flux, xmlFluxObjective{Reaction: id, Coefficient: obj[id]})
		}
		xm.Objectives = &xmlObjectives{
			Active:     "obj",
			Objectives: []xmlObjective{{ID: "obj", Type: "maximize", Flux: flux}},
		}
	}

	return &xmlSBML{
		Xmlns:    sbmlCoreNS,
		XmlnsFBC: sbmlFBCNS,
		Level:    "3",
		Version:  "1",
		Model:    xm,
	}, nil
}

// gprNode rebuilds the XML gene tree from a parsed rule term.
func gprNode(t gpr.Term) (xmlGPRNode, error) {
	switch {
	case t.Gene != "":
		return xmlGPRNode{XMLName: xml.Name{Local: "geneProductRef"}, GeneRef: t.Gene}, nil

	case t.Op == "and" || t.Op == "or":
		n := xmlGPRNode{
			XMLName:  xml.Name{Local: t.Op},
			Children: make([]xmlGPRNode, 0, len(t.Children)),
		}
		for _, child := range t.Children {
			cn, err := gprNode(child)
			if err != nil {
				return xmlGPRNode{}, err
			}
			n.Children = append(n.Children, cn)
		}

		return n, nil

	default:
		return xmlGPRNode{}, fmt.Errorf("empty gene association term")
	}
}

// formatNumber renders a bound or coefficient, using the SBML INF literals
// for unbounded values and the shortest exact form otherwise.
func formatNumber(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "INF"
	case math.IsInf(v, -1):
		return "-INF"
	}

	return strconv.FormatFloat(v, 'g', -1, 64)
}
