package attribute

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/truora/dynamite/types"
)

var recognizedTags = map[string]Kind{
	"N":    KindNumber,
	"S":    KindString,
	"B":    KindBinary,
	"NULL": KindNull,
	"SS":   KindStringSet,
	"NS":   KindNumberSet,
	"BS":   KindBinarySet,
	"L":    KindList,
	"M":    KindMap,
}

// ToTyped converts a Value to its tagged wire form, e.g. String("x")
// becomes {"S": "x"}. Sets are emitted sorted and binary data base64
// encoded, so the same Value always marshals to the same bytes.
//
//nolint:gocyclo // one case per variant
func ToTyped(v Value) (map[string]any, error) {
	switch val := v.(type) {
	case String:
		return map[string]any{"S": string(val)}, nil
	case Number:
		return map[string]any{"N": string(val)}, nil
	case Binary:
		return map[string]any{"B": base64.StdEncoding.EncodeToString(val)}, nil
	case Null:
		return map[string]any{"NULL": true}, nil
	case StringSet:
		return map[string]any{"SS": val.Sorted()}, nil
	case NumberSet:
		sorted := val.Sorted()

		out := make([]string, len(sorted))
		for i, n := range sorted {
			out[i] = string(n)
		}

		return map[string]any{"NS": out}, nil
	case BinarySet:
		sorted := val.Sorted()

		out := make([]string, len(sorted))
		for i, b := range sorted {
			out[i] = base64.StdEncoding.EncodeToString(b)
		}

		return map[string]any{"BS": out}, nil
	case List:
		out := make([]any, len(val))

		for i, elem := range val {
			typed, err := ToTyped(elem)
			if err != nil {
				return nil, nest(err, fmt.Sprintf("[%d]", i))
			}

			out[i] = typed
		}

		return map[string]any{"L": out}, nil
	case Map:
		out, err := typedEntries(val)
		if err != nil {
			return nil, err
		}

		return map[string]any{"M": out}, nil
	}

	return nil, types.NewProtocolError("", "unsupported value %T", v)
}

// ToTypedMap converts an item to its attribute map. An item is always a
// Map; any other variant is a protocol error.
func ToTypedMap(v Value) (map[string]any, error) {
	m, ok := v.(Map)
	if !ok {
		return nil, types.NewProtocolError("", "top level type must be a map")
	}

	return typedEntries(m)
}

func typedEntries(m Map) (map[string]any, error) {
	out := make(map[string]any, len(m))

	for k, elem := range m {
		typed, err := ToTyped(elem)
		if err != nil {
			return nil, nest(err, k)
		}

		out[k] = typed
	}

	return out, nil
}

// FromTyped converts a tagged wire value, as decoded by encoding/json, back
// to a Value. The object must carry exactly one recognized tag.
//
//nolint:gocyclo // one case per tag
func FromTyped(raw any) (Value, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, types.NewProtocolError("", "attribute value must be an object, got %s", describe(raw))
	}

	if len(obj) != 1 {
		return nil, types.NewProtocolError("", "attribute value must have exactly one type tag, got %d", len(obj))
	}

	var (
		tag string
		val any
	)

	for k, v := range obj {
		tag, val = k, v
	}

	kind, ok := recognizedTags[tag]
	if !ok {
		return nil, types.NewProtocolError("", "unrecognized type tag %q", tag)
	}

	switch kind {
	case KindString:
		s, ok := val.(string)
		if !ok {
			return nil, types.NewProtocolError("", "type S must be a string")
		}

		return String(s), nil
	case KindNumber:
		s, ok := val.(string)
		if !ok {
			return nil, types.NewProtocolError("", "type N must be a string")
		}

		n, err := ParseNumber(s)
		if err != nil {
			return nil, err
		}

		return n, nil
	case KindBinary:
		b, err := decodeBinary(val, "B")
		if err != nil {
			return nil, err
		}

		return Binary(b), nil
	case KindNull:
		return Null{}, nil
	case KindStringSet:
		elems, err := stringElements(val, "SS")
		if err != nil {
			return nil, err
		}

		return StringSet(elems), nil
	case KindNumberSet:
		elems, err := stringElements(val, "NS")
		if err != nil {
			return nil, err
		}

		set := make(NumberSet, len(elems))

		for s := range elems {
			n, err := ParseNumber(s)
			if err != nil {
				return nil, err
			}

			set[n] = struct{}{}
		}

		return set, nil
	case KindBinarySet:
		elems, err := stringElements(val, "BS")
		if err != nil {
			return nil, err
		}

		set := make(BinarySet, len(elems))

		for s := range elems {
			b, err := decodeBinary(s, "BS")
			if err != nil {
				return nil, err
			}

			if _, dup := set[string(b)]; dup {
				return nil, types.NewProtocolError("", "type BS contains duplicate elements")
			}

			set[string(b)] = struct{}{}
		}

		return set, nil
	case KindList:
		arr, ok := val.([]any)
		if !ok {
			return nil, types.NewProtocolError("", "type L must be an array")
		}

		l := make(List, len(arr))

		for i, elem := range arr {
			converted, err := FromTyped(elem)
			if err != nil {
				return nil, nest(err, fmt.Sprintf("[%d]", i))
			}

			l[i] = converted
		}

		return l, nil
	case KindMap:
		m, err := FromTypedMap(val)
		if err != nil {
			return nil, err
		}

		return m, nil
	}

	return nil, types.NewProtocolError("", "unrecognized type tag %q", tag)
}

// FromTypedMap decodes an attribute map, such as the "Item" of a GetItem
// response.
func FromTypedMap(raw any) (Map, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, types.NewProtocolError("", "invalid MAP data, got %s", describe(raw))
	}

	m := make(Map, len(obj))

	for k, elem := range obj {
		converted, err := FromTyped(elem)
		if err != nil {
			return nil, nest(err, k)
		}

		m[k] = converted
	}

	return m, nil
}

// EncodeItem marshals an item to its wire JSON.
func EncodeItem(v Value) ([]byte, error) {
	typed, err := ToTypedMap(v)
	if err != nil {
		return nil, err
	}

	return json.Marshal(typed)
}

// DecodeItem parses wire JSON holding an attribute map.
func DecodeItem(data []byte) (Map, error) {
	raw, err := DecodeJSON(data)
	if err != nil {
		return nil, err
	}

	return FromTypedMap(raw)
}

// DecodeJSON parses data into the plain structured form, keeping numbers
// as json.Number so no precision is lost.
func DecodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, &types.DecodingError{Reason: "invalid JSON", Err: err}
	}

	return raw, nil
}

func decodeBinary(val any, tag string) ([]byte, error) {
	s, ok := val.(string)
	if !ok {
		return nil, types.NewProtocolError("", "type %s must hold base64 strings", tag)
	}

	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, types.NewProtocolError("", "type %s holds invalid base64: %v", tag, err)
	}

	return b, nil
}

func stringElements(val any, tag string) (map[string]struct{}, error) {
	var arr []any

	switch v := val.(type) {
	case []any:
		arr = v
	case []string:
		// as produced by ToTyped
		arr = make([]any, len(v))
		for i, s := range v {
			arr[i] = s
		}
	default:
		return nil, types.NewProtocolError("", "type %s must be an array", tag)
	}

	out := make(map[string]struct{}, len(arr))

	for _, elem := range arr {
		s, ok := elem.(string)
		if !ok {
			return nil, types.NewProtocolError("", "type %s must hold strings", tag)
		}

		if _, dup := out[s]; dup {
			return nil, types.NewProtocolError("", "type %s contains duplicate elements", tag)
		}

		out[s] = struct{}{}
	}

	return out, nil
}

func nest(err error, segment string) error {
	var pe *types.ProtocolError
	if errors.As(err, &pe) {
		return pe.At(segment)
	}

	return err
}

func describe(raw any) string {
	switch raw.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	}

	return fmt.Sprintf("%T", raw)
}
