package server

import (
	"github.com/truora/dynamite/attribute"
	"github.com/truora/dynamite/types"
)

const (
	keyTypeHash  = "HASH"
	keyTypeRange = "RANGE"
)

type keySchema struct {
	HashKey  string
	RangeKey string
}

func (ks keySchema) names() []string {
	if ks.RangeKey == "" {
		return []string{ks.HashKey}
	}

	return []string{ks.HashKey, ks.RangeKey}
}

// getKey returns the storage key of item: the encoded map of its key
// attributes, checked against the declared attribute types.
func (ks keySchema) getKey(attrs map[string]string, item attribute.Map) (string, error) {
	for _, name := range ks.names() {
		v, ok := item[name]
		if !ok {
			return "", validationError("One or more parameter values were invalid: Missing the key %s in the item", name)
		}

		if v.Kind().Tag() != attrs[name] {
			return "", validationError("One or more parameter values were invalid: Type mismatch for key %s expected: %s actual: %s",
				name, attrs[name], v.Kind().Tag())
		}
	}

	encoded, err := attribute.EncodeItem(ks.getKeyItem(item))
	if err != nil {
		return "", validationError("%s", err.Error())
	}

	return string(encoded), nil
}

func (ks keySchema) describe() []types.KeySchemaElement {
	desc := []types.KeySchemaElement{{AttributeName: ks.HashKey, KeyType: keyTypeHash}}

	if ks.RangeKey != "" {
		desc = append(desc, types.KeySchemaElement{AttributeName: ks.RangeKey, KeyType: keyTypeRange})
	}

	return desc
}

func (ks keySchema) getKeyItem(item attribute.Map) attribute.Map {
	keyItem := attribute.Map{}

	for _, name := range ks.names() {
		if v, ok := item[name]; ok {
			keyItem[name] = v
		}
	}

	return keyItem
}
