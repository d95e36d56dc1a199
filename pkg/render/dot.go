package render

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/flowlens/flowlens/pkg/dag"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed includes node metadata (plugin, engine, canvas position)
	// in labels. When false, only the tool's short name is shown.
	Detailed bool
}

// ToDOT converts a tool graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Annotation-only tools (GUI engine, e.g. text boxes and containers) are
// rendered with dashed outlines and grey fill to distinguish them from
// tools that process records.
func ToDOT(g *dag.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		label := fmtLabel(*n, opts.Detailed)
		attrs := fmtAttrs(*n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q%s;\n", e.From, e.To, fmtEdgeAttrs(e))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n dag.Node, detailed bool) string {
	name := n.Label
	if name == "" {
		name = n.ID
	}
	if !detailed {
		return name
	}

	parts := []string{fmt.Sprintf("id: %s", n.ID)}
	for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Meta[k]))
	}

	return name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n dag.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.Meta["engine"] == "GUI" {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// fmtEdgeAttrs labels edges with non-default anchors, so multi-output
// tools like Filter and Join keep their True/False and L/J/R legs apart.
func fmtEdgeAttrs(e dag.Edge) string {
	from, _ := e.Meta["from_anchor"].(string)
	to, _ := e.Meta["to_anchor"].(string)

	var parts []string
	if from != "" && from != "Output" {
		parts = append(parts, fmt.Sprintf("taillabel=%q", from))
	}
	if to != "" && to != "Input" {
		parts = append(parts, fmt.Sprintf("headlabel=%q", to))
	}
	if len(parts) == 0 {
		return ""
	}
	return " [" + strings.Join(parts, ", ") + "]"
}
