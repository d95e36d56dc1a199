package workflow

import (
	"github.com/flowlens/flowlens/pkg/dag"
	"github.com/flowlens/flowlens/pkg/errors"
)

// ToGraph converts a workflow into its tool graph: one node per tool,
// one edge per connection. Node metadata carries the plugin string,
// canvas position, and engine kind; edge metadata carries the anchor
// names of both endpoints.
//
// Returns INVALID_WORKFLOW if a connection references a tool ID that
// does not exist or two tools share an ID.
func ToGraph(w *Workflow) (*dag.Graph, error) {
	g := dag.New(dag.Metadata{"version": w.Info.Version, "name": w.Info.Name})

	for _, t := range w.Tools {
		meta := dag.Metadata{
			"plugin": t.Plugin,
			"engine": string(t.Engine.Kind),
		}
		if t.Position.X != "" || t.Position.Y != "" {
			meta["x"] = t.Position.X
			meta["y"] = t.Position.Y
		}
		if err := g.AddNode(dag.Node{ID: t.ID, Label: ShortName(t.Plugin), Meta: meta}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidWorkflow, err, "tool %s", t.ID)
		}
	}

	for _, c := range w.Connections {
		edge := dag.Edge{
			From: c.Origin.ToolID,
			To:   c.Destination.ToolID,
			Meta: dag.Metadata{},
		}
		if c.Origin.Anchor != "" {
			edge.Meta["from_anchor"] = c.Origin.Anchor
		}
		if c.Destination.Anchor != "" {
			edge.Meta["to_anchor"] = c.Destination.Anchor
		}
		if err := g.AddEdge(edge); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidWorkflow, err, "connection %s -> %s", c.Origin.ToolID, c.Destination.ToolID)
		}
	}

	return g, nil
}
