package attribute

import (
	"encoding/json"
	"fmt"

	"github.com/truora/dynamite/types"
)

// GenericOption tunes FromGeneric.
type GenericOption func(*genericOptions)

type genericOptions struct {
	numbers bool
}

// WithNumbers makes FromGeneric map JSON numbers (json.Number, floats and
// integers) to Number instead of rejecting them.
func WithNumbers() GenericOption {
	return func(o *genericOptions) {
		o.numbers = true
	}
}

// FromGeneric converts the plain structured form (the tree encoding/json
// decodes into an interface{}) to a Value. Objects become Map, arrays List,
// strings String, nil Null and []byte Binary. Numbers are rejected unless
// WithNumbers is given; booleans are always rejected since the model has
// no boolean variant.
func FromGeneric(v any, opts ...GenericOption) (Value, error) {
	o := genericOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	return fromGeneric(v, "", o)
}

//nolint:gocyclo // one case per plain shape
func fromGeneric(v any, path string, o genericOptions) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case string:
		return String(val), nil
	case []byte:
		return Binary(append([]byte(nil), val...)), nil
	case map[string]any:
		m := make(Map, len(val))

		for k, elem := range val {
			converted, err := fromGeneric(elem, joinPath(path, k), o)
			if err != nil {
				return nil, err
			}

			m[k] = converted
		}

		return m, nil
	case []any:
		l := make(List, len(val))

		for i, elem := range val {
			converted, err := fromGeneric(elem, fmt.Sprintf("%s[%d]", path, i), o)
			if err != nil {
				return nil, err
			}

			l[i] = converted
		}

		return l, nil
	case json.Number:
		if !o.numbers {
			return nil, unsupported(path, "number")
		}

		n, err := ParseNumber(string(val))
		if err != nil {
			return nil, &types.DecodingError{Reason: atPath(path, "invalid number"), Err: err}
		}

		return n, nil
	case float64:
		if !o.numbers {
			return nil, unsupported(path, "number")
		}

		n, err := NumberFromFloat(val)
		if err != nil {
			return nil, &types.DecodingError{Reason: atPath(path, "invalid number"), Err: err}
		}

		return n, nil
	case int, int8, int16, int32, int64:
		if !o.numbers {
			return nil, unsupported(path, "number")
		}

		return Number(fmt.Sprintf("%d", val)), nil
	case uint, uint8, uint16, uint32, uint64:
		if !o.numbers {
			return nil, unsupported(path, "number")
		}

		return Number(fmt.Sprintf("%d", val)), nil
	case bool:
		return nil, unsupported(path, "boolean")
	}

	return nil, unsupported(path, fmt.Sprintf("%T", v))
}

func unsupported(path, shape string) error {
	return &types.DecodingError{Reason: atPath(path, fmt.Sprintf("unsupported plain value of type %s", shape))}
}

func atPath(path, msg string) string {
	if path == "" {
		return msg
	}

	return path + ": " + msg
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}

	return path + "." + key
}

// ToGeneric converts a Value to the plain structured form: Map becomes
// map[string]any, List []any, String string, Null nil, Number json.Number,
// Binary []byte and sets sorted []any of their elements.
func ToGeneric(v Value) (any, error) {
	switch val := v.(type) {
	case String:
		return string(val), nil
	case Number:
		return json.Number(val), nil
	case Binary:
		return []byte(val), nil
	case Null:
		return nil, nil
	case StringSet:
		out := make([]any, 0, len(val))
		for _, s := range val.Sorted() {
			out = append(out, s)
		}

		return out, nil
	case NumberSet:
		out := make([]any, 0, len(val))
		for _, n := range val.Sorted() {
			out = append(out, json.Number(n))
		}

		return out, nil
	case BinarySet:
		out := make([]any, 0, len(val))
		for _, b := range val.Sorted() {
			out = append(out, b)
		}

		return out, nil
	case List:
		out := make([]any, len(val))

		for i, elem := range val {
			converted, err := ToGeneric(elem)
			if err != nil {
				return nil, err
			}

			out[i] = converted
		}

		return out, nil
	case Map:
		out := make(map[string]any, len(val))

		for k, elem := range val {
			converted, err := ToGeneric(elem)
			if err != nil {
				return nil, err
			}

			out[k] = converted
		}

		return out, nil
	}

	return nil, types.NewProtocolError("", "unsupported value %T", v)
}
