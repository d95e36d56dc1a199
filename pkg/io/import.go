package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/flowlens/flowlens/pkg/dag"
)

// ReadGraphJSON decodes a JSON tool graph from r.
//
// The input must be an object with "nodes" and "edges" arrays:
//
//	{
//	  "nodes": [{"id": "1", "label": "DbFileInput"}, {"id": "2"}],
//	  "edges": [{"from": "1", "to": "2"}]
//	}
//
// Errors are wrapped with the node or edge that caused them; use
// errors.Is to check for the dag sentinel errors. The returned graph is
// independent of r. ReadGraphJSON does not close r.
func ReadGraphJSON(r io.Reader) (*dag.Graph, error) {
	var data graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := dag.New(data.Meta)
	for _, n := range data.Nodes {
		if err := g.AddNode(dag.Node{ID: n.ID, Label: n.Label, Meta: n.Meta}); err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
	}
	for _, e := range data.Edges {
		if err := g.AddEdge(dag.Edge{From: e.From, To: e.To, Meta: e.Meta}); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}
	return g, nil
}

// ImportGraphJSON reads a JSON file at path and returns the decoded
// graph. Errors wrap the underlying cause with the file path.
func ImportGraphJSON(path string) (*dag.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraphJSON(f)
}
