package xmlmap

import (
	"encoding/xml"
	"io"
	"os"

	"github.com/flowlens/flowlens/pkg/errors"
)

// Attr is a single name/value attribute pair.
type Attr struct {
	Name  string
	Value string
}

// Element is one node of a parsed XML document tree. Text holds only the
// character data between the start tag and the first child, matching the
// behavior of DOM-style parsers; trailing text after a child is dropped
// since the mapper never reads it.
type Element struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Element
}

// Attr returns the value of the named attribute, or "" if absent.
func (e *Element) Attr(name string) string {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// Find returns the first child matching the given tag path, descending one
// level per segment. It returns nil if any segment is missing.
func (e *Element) Find(path ...string) *Element {
	cur := e
	for _, tag := range path {
		var next *Element
		for _, c := range cur.Children {
			if c.Tag == tag {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// FindAll returns all direct children with the given tag, in document order.
func (e *Element) FindAll(tag string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// Decode reads an XML document from r and returns its root element.
// Structurally invalid markup yields a MALFORMED_INPUT error.
func Decode(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)

	var root *Element
	var stack []*Element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "invalid XML document")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Tag: t.Name.Local, Attrs: make([]Attr, 0, len(t.Attr))}
			for _, a := range t.Attr {
				el.Attrs = append(el.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New(errors.ErrCodeMalformedInput, "multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			cur := stack[len(stack)-1]
			if len(cur.Children) == 0 {
				cur.Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, errors.New(errors.ErrCodeMalformedInput, "document has no root element")
	}
	return root, nil
}

// Load parses the XML file at path and returns its root element.
// A missing or unreadable file yields a FILE_NOT_FOUND error; invalid
// markup yields MALFORMED_INPUT (see [Decode]).
func Load(path string) (*Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return Decode(f)
}
