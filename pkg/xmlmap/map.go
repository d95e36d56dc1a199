package xmlmap

import "strings"

// TextKey is the reserved key that holds inline text when an element has
// both text and child elements. The leading underscore keeps it from
// colliding with tags used by the workflow dialect.
const TextKey = "_text"

// Map converts an element subtree into a nested Value.
//
// Attributes are copied verbatim. An element whose only content is
// non-blank text collapses to that text, trimmed at both ends. Children
// are mapped recursively under their tag names: a single occurrence maps
// to a plain value, repeated occurrences are promoted to a List in
// document order.
//
// When a child tag shares its name with an attribute, the child wins and
// the attribute value is dropped. This last-write-wins tie-break matches
// the historical output format consumers depend on; see the collision
// note in the package tests before changing it.
//
// Map is total over any well-formed element and never fails.
func Map(el *Element) Value {
	obj := Object{}

	for _, a := range el.Attrs {
		obj[a.Name] = Scalar(a.Value)
	}

	if text := strings.TrimSpace(el.Text); text != "" {
		if len(el.Children) == 0 {
			return Scalar(text)
		}
		obj[TextKey] = Scalar(text)
	}

	seen := make(map[string]bool, len(el.Children))
	for _, child := range el.Children {
		v := Map(child)
		if !seen[child.Tag] {
			// First occurrence replaces any attribute with the same name.
			obj[child.Tag] = v
			seen[child.Tag] = true
			continue
		}
		switch existing := obj[child.Tag].(type) {
		case List:
			obj[child.Tag] = append(existing, v)
		default:
			obj[child.Tag] = List{existing, v}
		}
	}

	return obj
}
