// File: export.go
// Role: DOT, JSON, and YAML renderings of an assembled flux map.

package fluxmap

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Edge colors: forward flow, reverse flow, idle reaction.
const (
	colorForward = "#1f77b4"
	colorReverse = "#d62728"
	colorIdle    = "#b0b0b0"
)

// ToDOT renders the map as a Graphviz digraph. Metabolites are ellipses,
// reactions are boxes annotated with their flux; edge penwidth grows with
// the carried flux, edge color marks the reaction's direction, and idle
// edges are dashed. Output is deterministic for a given map.
func (fm *Map) ToDOT() string {
	var b strings.Builder
	b.WriteString("digraph fluxmap {\n  rankdir=LR;\n  node [fontname=\"Helvetica\"];\n")
	if fm.title != "" {
		fmt.Fprintf(&b, "  labelloc=\"t\"; label=\"%s\";\n", escapeDOT(fm.title))
	}

	rxnFlux := make(map[string]float64)
	for _, n := range fm.nodes {
		switch n.Kind {
		case KindMetabolite:
			fmt.Fprintf(&b, "  %q [label=\"%s\", shape=ellipse, style=filled, fillcolor=\"#eef6ff\"];\n",
				n.ID, escapeDOT(n.Label))
		case KindReaction:
			rxnFlux[n.ID] = n.Flux
			fmt.Fprintf(&b, "  %q [label=\"%s\\n%.4g\", shape=box, style=\"rounded,filled\", fillcolor=\"#f5f5f5\"];\n",
				n.ID, escapeDOT(n.Label), n.Flux)
		}
	}

	for _, l := range fm.links {
		v, ok := rxnFlux[l.From]
		if !ok {
			v = rxnFlux[l.To]
		}

		color, style := colorForward, ""
		switch {
		case v == 0:
			color, style = colorIdle, ", style=dashed"
		case v < 0:
			color = colorReverse
		}

		width := 1.0
		if fm.maxFlux > 0 {
			width += 3 * l.Flux / fm.maxFlux
		}

		fmt.Fprintf(&b, "  %q -> %q [label=\"%.4g\", penwidth=%.2f, color=\"%s\"%s];\n",
			l.From, l.To, l.Flux, width, color, style)
	}

	b.WriteString("}\n")

	return b.String()
}

// WriteJSON writes the node-link document as indented JSON.
func (fm *Map) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(fm.Document(), "", "  ")
	if err != nil {
		return fmt.Errorf("fluxmap: encode json: %w", err)
	}
	data = append(data, '\n')
	if _, err = w.Write(data); err != nil {
		return fmt.Errorf("fluxmap: write json: %w", err)
	}

	return nil
}

// WriteYAML writes the node-link document as YAML.
func (fm *Map) WriteYAML(w io.Writer) error {
	data, err := yaml.Marshal(fm.Document())
	if err != nil {
		return fmt.Errorf("fluxmap: encode yaml: %w", err)
	}
	if _, err = w.Write(data); err != nil {
		return fmt.Errorf("fluxmap: write yaml: %w", err)
	}

	return nil
}

func escapeDOT(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)

	return strings.ReplaceAll(s, `"`, `\"`)
}
