// Package io serializes workflows and tool graphs to and from JSON.
package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/flowlens/flowlens/pkg/dag"
)

type graph struct {
	Meta  dag.Metadata `json:"meta,omitempty"`
	Nodes []node       `json:"nodes"`
	Edges []edge       `json:"edges"`
}

type node struct {
	ID    string       `json:"id"`
	Label string       `json:"label,omitempty"`
	Meta  dag.Metadata `json:"meta,omitempty"`
}

type edge struct {
	From string       `json:"from"`
	To   string       `json:"to"`
	Meta dag.Metadata `json:"meta,omitempty"`
}

// WriteJSON encodes v as indented JSON to w. It is the single encoder
// used for workflow records and API payloads so output formatting stays
// consistent everywhere.
func WriteJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteGraphJSON encodes a tool graph as JSON to w. The output includes
// node labels, metadata, and edge anchors, and round-trips through
// [ReadGraphJSON].
func WriteGraphJSON(g *dag.Graph, w io.Writer) error {
	out := graph{
		Meta:  g.Meta(),
		Nodes: make([]node, 0, g.NodeCount()),
		Edges: make([]edge, 0, g.EdgeCount()),
	}
	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, node{ID: n.ID, Label: n.Label, Meta: n.Meta})
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, edge{From: e.From, To: e.To, Meta: e.Meta})
	}
	return WriteJSON(out, w)
}

// ExportGraphJSON writes a tool graph to a JSON file at path.
func ExportGraphJSON(g *dag.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraphJSON(g, f)
}
