// Package dag implements the directed graph of workflow tools.
//
// Nodes are tools keyed by their tool ID and edges are the data
// connections between them. Alteryx designers only produce acyclic
// workflows, but hand-edited documents can contain anything, so the
// graph accepts arbitrary edges and [Graph.Validate] reports cycles
// instead of rejecting them at insert time.
package dag
