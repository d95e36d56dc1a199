package xmlmap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flowlens/flowlens/pkg/errors"
)

func TestDecodeTree(t *testing.T) {
	doc := `<AlteryxDocument yxmdVer="2021.4">
  <Nodes>
    <Node ToolID="1"/>
    <Node ToolID="2"/>
  </Nodes>
  <Connections/>
</AlteryxDocument>`

	root, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if root.Tag != "AlteryxDocument" {
		t.Errorf("root tag = %q", root.Tag)
	}
	if root.Attr("yxmdVer") != "2021.4" {
		t.Errorf("yxmdVer = %q", root.Attr("yxmdVer"))
	}
	if root.Attr("missing") != "" {
		t.Error("absent attribute should return empty string")
	}

	nodes := root.Find("Nodes")
	if nodes == nil {
		t.Fatal("Find(Nodes) = nil")
	}
	if got := len(nodes.FindAll("Node")); got != 2 {
		t.Errorf("FindAll(Node) = %d children, want 2", got)
	}
	if root.Find("Nodes", "Node").Attr("ToolID") != "1" {
		t.Error("Find path should return the first match")
	}
	if root.Find("Nodes", "Missing") != nil {
		t.Error("Find with missing segment should return nil")
	}
}

func TestDecodeTextBeforeFirstChildOnly(t *testing.T) {
	root, err := Decode(strings.NewReader(`<a>head<b/>tail</a>`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if root.Text != "head" {
		t.Errorf("Text = %q, want %q (chardata before first child)", root.Text, "head")
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unclosed tag", `<a><b></a>`},
		{"empty document", ``},
		{"truncated", `<a><b>`},
		{"junk", `not xml at all <<<`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("Decode should fail")
			}
			if !errors.Is(err, errors.ErrCodeMalformedInput) {
				t.Errorf("error code = %q, want MALFORMED_INPUT", errors.GetCode(err))
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yxmd"))
	if err == nil {
		t.Fatal("Load should fail for a missing file")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %q, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.xml")
	writeFile(t, path, `<root><child v="1"/></root>`)

	root, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if root.Find("child").Attr("v") != "1" {
		t.Error("loaded tree should match the file contents")
	}
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
