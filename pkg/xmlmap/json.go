package xmlmap

import (
	"encoding/json"
	"fmt"
)

// FromAny converts a generic decoded JSON value (string, map[string]any,
// []any) back into a [Value]. Numbers and booleans are accepted and
// stored as scalars, since mapped documents carry all leaf values as
// strings. A nil input returns a nil Value.
func FromAny(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		return Scalar(t), nil
	case bool:
		return Scalar(fmt.Sprintf("%t", t)), nil
	case json.Number:
		return Scalar(t.String()), nil
	case float64:
		return Scalar(fmt.Sprintf("%v", t)), nil
	case map[string]any:
		obj := make(Object, len(t))
		for k, el := range t {
			val, err := FromAny(el)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			obj[k] = val
		}
		return obj, nil
	case []any:
		list := make(List, 0, len(t))
		for i, el := range t {
			val, err := FromAny(el)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			list = append(list, val)
		}
		return list, nil
	default:
		return nil, fmt.Errorf("cannot convert %T to a mapped value", v)
	}
}

// DecodeJSON decodes raw JSON into a [Value]. It is the inverse of
// marshaling a mapped value and is used when reading archived records.
func DecodeJSON(data []byte) (Value, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return FromAny(v)
}
