// Package xmlmap converts XML element subtrees into nested mapping values.
//
// The conversion is schema-agnostic: it knows nothing about the workflow
// dialect and works on any well-formed document. An [Element] tree is built
// with [Decode] or [Load], and [Map] turns any subtree into a [Value]:
//
//   - attributes become string entries
//   - an element with only text collapses to that text, trimmed
//   - an element with both text and children keeps the text under [TextKey]
//   - a tag that appears once maps to a plain value; two or more
//     occurrences are promoted to a [List] in document order
//
// Example:
//
//	el, _ := xmlmap.Load("workflow.yxmd")
//	v := xmlmap.Map(el)
//	data, _ := json.Marshal(v)
//
// Map is a pure function: the returned value shares no state with the
// source tree and the tree is never modified.
package xmlmap
