package dag

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with
	// the same ID already exists. Tool IDs are unique within a workflow.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From
	// node does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To
	// node does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrGraphHasCycle is returned by [Graph.Validate] and
	// [Graph.TopoOrder] when a directed cycle is detected.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// Metadata stores arbitrary key-value pairs attached to nodes or edges,
// such as plugin names, positions, or connection anchors. Metadata maps
// are never nil after AddNode/AddEdge.
type Metadata map[string]any

// Node represents one tool in the workflow graph.
type Node struct {
	ID    string   // Tool ID from the workflow document
	Label string   // Display label (plugin short name)
	Meta  Metadata // Arbitrary key-value metadata (never nil after AddNode)
}

// Edge represents a directed data connection between two tools.
type Edge struct {
	From string   // Source tool ID
	To   string   // Target tool ID
	Meta Metadata // Arbitrary key-value metadata (never nil after AddEdge)
}

// Graph is a directed graph of workflow tools with adjacency indices for
// fast parent/child lookups.
//
// The zero value is not usable; use New. Graph is not safe for
// concurrent use without external synchronization.
type Graph struct {
	nodes    map[string]*Node
	order    []string // insertion order of node IDs
	edges    []Edge
	outgoing map[string][]string // nodeID -> downstream IDs
	incoming map[string][]string // nodeID -> upstream IDs
	meta     Metadata
}

// New creates an empty graph with optional graph-level metadata.
func New(meta Metadata) *Graph {
	if meta == nil {
		meta = Metadata{}
	}
	return &Graph{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		meta:     meta,
	}
}

// Meta returns the graph-level metadata map. Never nil.
func (g *Graph) Meta() Metadata { return g.meta }

// AddNode adds a node to the graph. Returns ErrInvalidNodeID for an
// empty ID or ErrDuplicateNodeID if the ID is already present.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := &n
	g.nodes[node.ID] = node
	g.order = append(g.order, node.ID)
	return nil
}

// AddEdge adds a directed edge between two existing nodes. Returns
// ErrUnknownSourceNode or ErrUnknownTargetNode when an endpoint is
// missing. Parallel edges are allowed: a tool pair can be connected on
// several anchors.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	if e.Meta == nil {
		e.Meta = Metadata{}
	}
	g.edges = append(g.edges, e)
	g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
	g.incoming[e.To] = append(g.incoming[e.To], e.From)
	return nil
}

// Node returns the node with the given ID and true, or nil and false.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order. The returned slice holds
// pointers to the live node structs.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Children returns the IDs this node connects into (downstream tools).
// The returned slice is a read-only view.
func (g *Graph) Children(id string) []string { return g.outgoing[id] }

// Parents returns the IDs that connect into this node (upstream tools).
// The returned slice is a read-only view.
func (g *Graph) Parents(id string) []string { return g.incoming[id] }

// OutDegree returns the number of outgoing edges from the node.
func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// Sources returns nodes with no incoming edges (input tools), in
// insertion order.
func (g *Graph) Sources() []*Node {
	var sources []*Node
	for _, id := range g.order {
		if len(g.incoming[id]) == 0 {
			sources = append(sources, g.nodes[id])
		}
	}
	return sources
}

// Sinks returns nodes with no outgoing edges (output tools), in
// insertion order.
func (g *Graph) Sinks() []*Node {
	var sinks []*Node
	for _, id := range g.order {
		if len(g.outgoing[id]) == 0 {
			sinks = append(sinks, g.nodes[id])
		}
	}
	return sinks
}

// Validate checks that the graph is acyclic and returns
// ErrGraphHasCycle otherwise. Runs in O(N+E) using depth-first search.
func (g *Graph) Validate() error {
	_, err := g.TopoOrder()
	return err
}

// TopoOrder returns the node IDs in a topological order that respects
// insertion order among independent nodes, or ErrGraphHasCycle if no
// such order exists.
func (g *Graph) TopoOrder() ([]string, error) {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(g.nodes))
	order := make([]string, 0, len(g.nodes))
	var hasCycle bool

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, child := range g.outgoing[id] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				hasCycle = true
			}
			if hasCycle {
				return
			}
		}
		color[id] = black
		order = append(order, id)
	}

	for _, id := range g.order {
		if color[id] == white {
			dfs(id)
			if hasCycle {
				return nil, ErrGraphHasCycle
			}
		}
	}

	slices.Reverse(order)
	return order, nil
}
