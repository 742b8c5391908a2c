// File: schema.go
// Role: XML shadow structs shared by Decode and Encode. Tags carry bare local
//       names so fbc:-prefixed and unprefixed documents decode identically;
//       Encode writes the unprefixed form.

package sbml

import "encoding/xml"

// Namespace constants stamped on encoded documents.
const (
	sbmlCoreNS = "http://www.sbml.org/sbml/level3/version1/core"
	sbmlFBCNS  = "http://www.sbml.org/sbml/level3/version1/fbc/version2"
)

// Kinetic-law parameter IDs of the legacy COBRA dialect.
const (
	kineticLowerBound = "LOWER_BOUND"
	kineticUpperBound = "UPPER_BOUND"
	kineticObjective  = "OBJECTIVE_COEFFICIENT"
)

type xmlSBML struct {
	XMLName  xml.Name `xml:"sbml"`
	Xmlns    string   `xml:"xmlns,attr,omitempty"`
	XmlnsFBC string   `xml:"xmlns:fbc,attr,omitempty"`
	Level    string   `xml:"level,attr,omitempty"`
	Version  string   `xml:"version,attr,omitempty"`
	Model    xmlModel `xml:"model"`
}

type xmlModel struct {
	ID           string           `xml:"id,attr"`
	Name         string           `xml:"name,attr,omitempty"`
	Compartments []xmlCompartment `xml:"listOfCompartments>compartment"`
	Species      []xmlSpecies     `xml:"listOfSpecies>species"`
	Parameters   []xmlParameter   `xml:"listOfParameters>parameter"`
	GeneProducts []xmlGeneProduct `xml:"listOfGeneProducts>geneProduct"`
	Reactions    []xmlReaction    `xml:"listOfReactions>reaction"`
	Objectives   *xmlObjectives   `xml:"listOfObjectives"`
}

type xmlCompartment struct {
	ID       string `xml:"id,attr"`
	Name     string `xml:"name,attr,omitempty"`
	Constant string `xml:"constant,attr,omitempty"`
}

// xmlSpecies carries the fbc species annotations. Charge is a pointer so an
// absent attribute is distinguishable from an explicit 0; Encode omits the
// attribute for uncharged metabolites.
type xmlSpecies struct {
	ID          string `xml:"id,attr"`
	Name        string `xml:"name,attr,omitempty"`
	Compartment string `xml:"compartment,attr"`
	Formula     string `xml:"chemicalFormula,attr,omitempty"`
	Charge      *int   `xml:"charge,attr,omitempty"`
	Boundary    string `xml:"boundaryCondition,attr,omitempty"`
	Constant    string `xml:"constant,attr,omitempty"`
}

// xmlParameter keeps Value as a string: SBML flux bounds use the literals
// INF and -INF, which strconv alone would reject.
type xmlParameter struct {
	ID       string `xml:"id,attr"`
	Value    string `xml:"value,attr"`
	Constant string `xml:"constant,attr,omitempty"`
}

type xmlGeneProduct struct {
	ID    string `xml:"id,attr"`
	Label string `xml:"label,attr,omitempty"`
	Name  string `xml:"name,attr,omitempty"`
}

type xmlReaction struct {
	ID         string          `xml:"id,attr"`
	Name       string          `xml:"name,attr,omitempty"`
	Reversible string          `xml:"reversible,attr,omitempty"`
	LowerRef   string          `xml:"lowerFluxBound,attr,omitempty"`
	UpperRef   string          `xml:"upperFluxBound,attr,omitempty"`
	Reactants  []xmlSpeciesRef `xml:"listOfReactants>speciesReference"`
	Products   []xmlSpeciesRef `xml:"listOfProducts>speciesReference"`
	GPR        *xmlGPRWrapper  `xml:"geneProductAssociation"`
	Kinetic    *xmlKineticLaw  `xml:"kineticLaw"`
}

// xmlSpeciesRef keeps Stoichiometry as a string; the SBML default for an
// absent attribute is 1.
type xmlSpeciesRef struct {
	Species       string `xml:"species,attr"`
	Stoichiometry string `xml:"stoichiometry,attr,omitempty"`
	Constant      string `xml:"constant,attr,omitempty"`
}

type xmlKineticLaw struct {
	Parameters      []xmlParameter `xml:"listOfParameters>parameter"`
	LocalParameters []xmlParameter `xml:"listOfLocalParameters>localParameter"`
}

// xmlGPRWrapper holds the single boolean root of a geneProductAssociation:
// an and, an or, or a bare geneProductRef.
type xmlGPRWrapper struct {
	Node xmlGPRNode `xml:",any"`
}

// xmlGPRNode is one node of the boolean gene tree. XMLName distinguishes
// and / or / geneProductRef; Children recurse through ",any" so arbitrarily
// nested rules round-trip.
type xmlGPRNode struct {
	XMLName  xml.Name
	GeneRef  string       `xml:"geneProduct,attr,omitempty"`
	Children []xmlGPRNode `xml:",any"`
}

type xmlObjectives struct {
	Active     string         `xml:"activeObjective,attr,omitempty"`
	Objectives []xmlObjective `xml:"objective"`
}

type xmlObjective struct {
	ID   string             `xml:"id,attr"`
	Type string             `xml:"type,attr,omitempty"`
	Flux []xmlFluxObjective `xml:"listOfFluxObjectives>fluxObjective"`
}

type xmlFluxObjective struct {
	Reaction    string  `xml:"reaction,attr"`
	Coefficient float64 `xml:"coefficient,attr"`
}
