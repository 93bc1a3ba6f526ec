package dynamite

import (
	"encoding/json"

	"github.com/truora/dynamite/attribute"
	"github.com/truora/dynamite/types"
)

// ItemMarshaler is implemented by values that produce their own plain
// structured form (maps, slices, strings and nil).
type ItemMarshaler interface {
	MarshalItem() (any, error)
}

// ItemUnmarshaler is implemented by values that populate themselves from
// a plain structured form.
type ItemUnmarshaler interface {
	UnmarshalItem(plain any) error
}

// StructItem routes a Go struct through `dynamodbav` tags instead of the
// JSON adapter. For reads, Value must be a pointer.
type StructItem struct {
	Value any
}

// Struct wraps v in a StructItem.
func Struct(v any) StructItem {
	return StructItem{Value: v}
}

func (db *DB) genericOptions() []attribute.GenericOption {
	if db.plainNumbers {
		return []attribute.GenericOption{attribute.WithNumbers()}
	}

	return nil
}

// toItem encodes an application value as an item. Values that are neither
// attribute values, ItemMarshaler nor StructItem go through encoding/json.
func (db *DB) toItem(v any) (attribute.Map, error) {
	var (
		plain any
		err   error
	)

	switch val := v.(type) {
	case attribute.Map:
		return val, nil
	case attribute.Value:
		return nil, types.NewProtocolError("", "top level type must be a map")
	case StructItem:
		return attribute.MarshalStruct(val.Value)
	case ItemMarshaler:
		plain, err = val.MarshalItem()
		if err != nil {
			return nil, &types.EncodingError{Reason: "item marshaler failed", Err: err}
		}
	default:
		plain, err = jsonPlain(v)
		if err != nil {
			return nil, err
		}
	}

	value, err := attribute.FromGeneric(plain, db.genericOptions()...)
	if err != nil {
		return nil, err
	}

	m, ok := value.(attribute.Map)
	if !ok {
		return nil, types.NewProtocolError("", "top level type must be a map")
	}

	return m, nil
}

func jsonPlain(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, &types.EncodingError{Reason: "json marshal failed", Err: err}
	}

	raw, err := attribute.DecodeJSON(data)
	if err != nil {
		return nil, &types.EncodingError{Reason: "json output could not be read back", Err: err}
	}

	return raw, nil
}

// fromItem decodes an item into out.
func fromItem(m attribute.Map, out any) error {
	switch o := out.(type) {
	case *attribute.Map:
		*o = m
		return nil
	case StructItem:
		return attribute.UnmarshalStruct(m, o.Value)
	}

	plain, err := attribute.ToGeneric(m)
	if err != nil {
		return err
	}

	if u, ok := out.(ItemUnmarshaler); ok {
		if err := u.UnmarshalItem(plain); err != nil {
			return &types.DecodingError{Reason: "item unmarshaler failed", Err: err}
		}

		return nil
	}

	data, err := json.Marshal(plain)
	if err != nil {
		return &types.DecodingError{Reason: "item could not be rendered as json", Err: err}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &types.DecodingError{Reason: "json unmarshal failed", Err: err}
	}

	return nil
}
