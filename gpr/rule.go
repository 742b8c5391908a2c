// File: rule.go
// Role: The parsed Rule tree and its evaluation/inspection surface.

package gpr

import "sort"

// Rule is a parsed gene-protein-reaction expression.
//
// A nil *Rule means "no gene association" and evaluates to true under any
// knockout set. Rule trees are immutable after Parse.
type Rule struct {
	root node
	src  string
}

// node is one vertex of the boolean expression tree.
type node interface {
	// eval reports whether the subtree is functional given knocked-out genes.
	eval(knocked map[string]bool) bool
	// collect adds every gene ID in the subtree to set.
	collect(set map[string]struct{})
	// term converts the subtree to its serializable form.
	term() Term
}

// Term is a rule subtree in serializable form, for encoders that need the
// structure rather than the text (SBML gene associations, JSON exports).
// Leaves carry Gene; inner nodes carry Op ("and"/"or") and Children.
type Term struct {
	Gene     string
	Op       string
	Children []Term
}

// geneNode is a leaf: functional unless the gene is knocked out.
type geneNode struct{ id string }

func (n geneNode) eval(knocked map[string]bool) bool { return !knocked[n.id] }

func (n geneNode) collect(set map[string]struct{}) { set[n.id] = struct{}{} }

func (n geneNode) term() Term { return Term{Gene: n.id} }

// andNode is an enzyme complex: every subunit must be functional.
type andNode struct{ children []node }

func (n andNode) eval(knocked map[string]bool) bool {
	for _, c := range n.children {
		if !c.eval(knocked) {
			return false
		}
	}

	return true
}

func (n andNode) collect(set map[string]struct{}) {
	for _, c := range n.children {
		c.collect(set)
	}
}

func (n andNode) term() Term { return opTerm("and", n.children) }

// orNode is an isoenzyme set: any branch suffices.
type orNode struct{ children []node }

func (n orNode) eval(knocked map[string]bool) bool {
	for _, c := range n.children {
		if c.eval(knocked) {
			return true
		}
	}

	return false
}

func (n orNode) collect(set map[string]struct{}) {
	for _, c := range n.children {
		c.collect(set)
	}
}

func (n orNode) term() Term { return opTerm("or", n.children) }

func opTerm(op string, children []node) Term {
	t := Term{Op: op, Children: make([]Term, 0, len(children))}
	for _, c := range children {
		t.Children = append(t.Children, c.term())
	}

	return t
}

// Eval reports whether the rule is satisfied when the genes in knocked
// (gene ID → true) are deleted. A nil rule is always satisfied.
// Complexity: O(nodes).
func (r *Rule) Eval(knocked map[string]bool) bool {
	if r == nil || r.root == nil {
		return true
	}

	return r.root.eval(knocked)
}

// Genes returns the sorted, de-duplicated gene IDs referenced by the rule.
// A nil rule references no genes. Complexity: O(nodes + g log g).
func (r *Rule) Genes() []string {
	if r == nil || r.root == nil {
		return nil
	}
	set := make(map[string]struct{})
	r.root.collect(set)
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// String returns the original rule text as parsed.
func (r *Rule) String() string {
	if r == nil {
		return ""
	}

	return r.src
}

// Tree returns the rule as a Term tree. A nil or empty rule returns the zero
// Term (Gene == "" and Op == "").
func (r *Rule) Tree() Term {
	if r == nil || r.root == nil {
		return Term{}
	}

	return r.root.term()
}
