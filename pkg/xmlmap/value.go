package xmlmap

// Value is the result of mapping an element subtree. It is a closed
// variant over three shapes:
//
//   - [Scalar]: attribute values and collapsed text content
//   - [Object]: an element with attributes and/or children
//   - [List]: repeated occurrences of a child tag, in document order
//
// All three marshal to JSON without custom encoders: Scalar as a string,
// Object as an object, List as an array.
type Value interface {
	isValue()
}

// Scalar is a plain string value.
type Scalar string

// Object maps attribute names and child tag names to values.
type Object map[string]Value

// List holds repeated same-tag children in document order.
type List []Value

func (Scalar) isValue() {}
func (Object) isValue() {}
func (List) isValue()   {}

// AsScalar returns the string form of v and true if v is a Scalar.
func AsScalar(v Value) (string, bool) {
	s, ok := v.(Scalar)
	return string(s), ok
}

// AsObject returns v as an Object and true if v is an Object.
func AsObject(v Value) (Object, bool) {
	o, ok := v.(Object)
	return o, ok
}

// AsList returns v as a List and true if v is a List.
func AsList(v Value) (List, bool) {
	l, ok := v.(List)
	return l, ok
}

// String returns the scalar stored under key, or "" if the key is absent
// or holds a non-scalar value.
func (o Object) String(key string) string {
	s, _ := AsScalar(o[key])
	return s
}
