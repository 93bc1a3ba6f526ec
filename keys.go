package dynamite

import (
	"github.com/truora/dynamite/attribute"
	"github.com/truora/dynamite/types"
)

// KeyAttribute is one named component of a primary key.
type KeyAttribute struct {
	Name  string
	Value attribute.PrimaryKeyValue
}

// PrimaryKey identifies an item by its hash key and, for composite keys,
// its range key.
type PrimaryKey struct {
	Hash  KeyAttribute
	Range *KeyAttribute
}

// HashKey builds a hash-only key. value may be an attribute.PrimaryKeyValue
// or a Go string, []byte or integer.
func HashKey(name string, value any) (PrimaryKey, error) {
	hv, err := KeyValue(value)
	if err != nil {
		return PrimaryKey{}, err
	}

	return PrimaryKey{Hash: KeyAttribute{Name: name, Value: hv}}, nil
}

// CompositeKey builds a hash and range key.
func CompositeKey(hashName string, hashValue any, rangeName string, rangeValue any) (PrimaryKey, error) {
	key, err := HashKey(hashName, hashValue)
	if err != nil {
		return PrimaryKey{}, err
	}

	rv, err := KeyValue(rangeValue)
	if err != nil {
		return PrimaryKey{}, err
	}

	key.Range = &KeyAttribute{Name: rangeName, Value: rv}

	return key, nil
}

// KeyValue converts v to a key scalar. Go strings are always String, even
// when they hold digits; integers become Number and byte slices Binary.
func KeyValue(v any) (attribute.PrimaryKeyValue, error) {
	switch val := v.(type) {
	case attribute.PrimaryKeyValue:
		return val, nil
	case string:
		return attribute.String(val), nil
	case []byte:
		return attribute.Binary(append([]byte(nil), val...)), nil
	case int:
		return attribute.NumberFromInt(int64(val)), nil
	case int32:
		return attribute.NumberFromInt(int64(val)), nil
	case int64:
		return attribute.NumberFromInt(val), nil
	case uint:
		return attribute.NumberFromUint(uint64(val)), nil
	case uint32:
		return attribute.NumberFromUint(uint64(val)), nil
	case uint64:
		return attribute.NumberFromUint(val), nil
	}

	return nil, types.NewProtocolError("", "unsupported key value %T", v)
}

// Map returns the key as an item.
func (k PrimaryKey) Map() attribute.Map {
	m := attribute.Map{k.Hash.Name: k.Hash.Value}
	if k.Range != nil {
		m[k.Range.Name] = k.Range.Value
	}

	return m
}

// Typed returns the key attribute map, e.g. {"id": {"S": "u1"}}.
func (k PrimaryKey) Typed() (map[string]any, error) {
	if k.Hash.Name == "" || k.Hash.Value == nil {
		return nil, types.NewProtocolError("", "hash key requires a name and a value")
	}

	if k.Range != nil {
		if k.Range.Name == "" || k.Range.Value == nil {
			return nil, types.NewProtocolError("", "range key requires a name and a value")
		}

		if k.Range.Name == k.Hash.Name {
			return nil, types.NewProtocolError(k.Range.Name, "range key repeats the hash key name")
		}
	}

	return attribute.ToTypedMap(k.Map())
}
