package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flowlens/flowlens/pkg/dag"
)

func testGraph(t *testing.T) *dag.Graph {
	t.Helper()
	g := dag.New(dag.Metadata{"name": "sample"})
	if err := g.AddNode(dag.Node{ID: "1", Label: "DbFileInput", Meta: dag.Metadata{"engine": "DLL"}}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddNode(dag.Node{ID: "2", Label: "Filter"}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddEdge(dag.Edge{From: "1", To: "2", Meta: dag.Metadata{"from_anchor": "Output"}}); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestGraphJSONRoundTrip(t *testing.T) {
	g := testGraph(t)

	var buf bytes.Buffer
	if err := WriteGraphJSON(g, &buf); err != nil {
		t.Fatalf("WriteGraphJSON: %v", err)
	}

	back, err := ReadGraphJSON(&buf)
	if err != nil {
		t.Fatalf("ReadGraphJSON: %v", err)
	}

	if back.NodeCount() != 2 || back.EdgeCount() != 1 {
		t.Errorf("round-trip: %d nodes, %d edges", back.NodeCount(), back.EdgeCount())
	}
	n, ok := back.Node("1")
	if !ok {
		t.Fatal("node 1 lost in round-trip")
	}
	if n.Label != "DbFileInput" {
		t.Errorf("Label = %q", n.Label)
	}
	if n.Meta["engine"] != "DLL" {
		t.Errorf("meta = %v", n.Meta)
	}
	if back.Meta()["name"] != "sample" {
		t.Errorf("graph meta = %v", back.Meta())
	}
}

func TestReadGraphJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"invalid json", `{`},
		{"duplicate node", `{"nodes":[{"id":"1"},{"id":"1"}],"edges":[]}`},
		{"unknown edge endpoint", `{"nodes":[{"id":"1"}],"edges":[{"from":"1","to":"9"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadGraphJSON(strings.NewReader(tt.in)); err == nil {
				t.Error("ReadGraphJSON should fail")
			}
		})
	}
}

func TestExportImportFiles(t *testing.T) {
	g := testGraph(t)
	path := filepath.Join(t.TempDir(), "graph.json")

	if err := ExportGraphJSON(g, path); err != nil {
		t.Fatalf("ExportGraphJSON: %v", err)
	}
	back, err := ImportGraphJSON(path)
	if err != nil {
		t.Fatalf("ImportGraphJSON: %v", err)
	}
	if back.NodeCount() != g.NodeCount() {
		t.Errorf("NodeCount = %d, want %d", back.NodeCount(), g.NodeCount())
	}
}

func TestImportGraphJSONMissingFile(t *testing.T) {
	if _, err := ImportGraphJSON(filepath.Join(t.TempDir(), "none.json")); err == nil {
		t.Error("ImportGraphJSON should fail for a missing file")
	}
}
