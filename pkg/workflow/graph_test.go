package workflow

import (
	"strings"
	"testing"

	"github.com/flowlens/flowlens/pkg/errors"
)

func TestToGraph(t *testing.T) {
	w := parseSample(t)

	g, err := ToGraph(w)
	if err != nil {
		t.Fatalf("ToGraph: %v", err)
	}

	if g.NodeCount() != 5 {
		t.Errorf("NodeCount = %d, want 5", g.NodeCount())
	}
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount = %d, want 3", g.EdgeCount())
	}

	n, ok := g.Node("1")
	if !ok {
		t.Fatal("node 1 missing")
	}
	if n.Label != "DbFileInput" {
		t.Errorf("Label = %q, want DbFileInput", n.Label)
	}
	if n.Meta["engine"] != "DLL" {
		t.Errorf("engine meta = %v", n.Meta["engine"])
	}

	if err := g.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	// Tool 5 is the TextBox: no connections either way.
	if g.InDegree("5") != 0 || g.OutDegree("5") != 0 {
		t.Error("annotation tool should be isolated")
	}

	edge := g.Edges()[0]
	if edge.Meta["from_anchor"] != "Output" || edge.Meta["to_anchor"] != "Input" {
		t.Errorf("edge anchors = %v", edge.Meta)
	}
}

func TestToGraphUnknownTool(t *testing.T) {
	doc := `<AlteryxDocument>
  <Nodes><Node ToolID="1"/></Nodes>
  <Connections>
    <Connection><Origin ToolID="1" Connection="Output"/><Destination ToolID="99" Connection="Input"/></Connection>
  </Connections>
</AlteryxDocument>`

	w, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	_, err = ToGraph(w)
	if err == nil {
		t.Fatal("ToGraph should fail for a dangling connection")
	}
	if !errors.Is(err, errors.ErrCodeInvalidWorkflow) {
		t.Errorf("error code = %q, want INVALID_WORKFLOW", errors.GetCode(err))
	}
}
