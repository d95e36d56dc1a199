package xmlmap

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestDecodeJSONRoundTrip(t *testing.T) {
	orig := Object{
		"File": Scalar("results.csv"),
		"Field": List{
			Object{"name": Scalar("id")},
			Object{"name": Scalar("amount")},
		},
	}

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	back, err := DecodeJSON(data)
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if !reflect.DeepEqual(back, orig) {
		t.Errorf("round-trip mismatch:\n got %#v\nwant %#v", back, orig)
	}
}

func TestDecodeJSONScalar(t *testing.T) {
	v, err := DecodeJSON([]byte(`"hello"`))
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if s, ok := AsScalar(v); !ok || s != "hello" {
		t.Errorf("got %#v, want Scalar(hello)", v)
	}
}

func TestDecodeJSONEmpty(t *testing.T) {
	v, err := DecodeJSON(nil)
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if v != nil {
		t.Errorf("got %#v, want nil", v)
	}
}

func TestFromAnyCoercions(t *testing.T) {
	v, err := FromAny(map[string]any{"n": float64(3), "b": true})
	if err != nil {
		t.Fatalf("FromAny: %v", err)
	}
	obj, ok := AsObject(v)
	if !ok {
		t.Fatalf("got %#v, want Object", v)
	}
	if obj.String("n") != "3" {
		t.Errorf("number = %q, want 3", obj.String("n"))
	}
	if obj.String("b") != "true" {
		t.Errorf("bool = %q, want true", obj.String("b"))
	}
}
