package attribute

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/truora/dynamite/types"
)

// ToSDK converts a Value to the aws-sdk-go-v2 attribute value union.
//
//nolint:gocyclo // mapping all shapes in a single switch for readability
func ToSDK(v Value) (ddbtypes.AttributeValue, error) {
	switch val := v.(type) {
	case String:
		return &ddbtypes.AttributeValueMemberS{Value: string(val)}, nil
	case Number:
		return &ddbtypes.AttributeValueMemberN{Value: string(val)}, nil
	case Binary:
		return &ddbtypes.AttributeValueMemberB{Value: []byte(val)}, nil
	case Null:
		return &ddbtypes.AttributeValueMemberNULL{Value: true}, nil
	case StringSet:
		return &ddbtypes.AttributeValueMemberSS{Value: val.Sorted()}, nil
	case NumberSet:
		sorted := val.Sorted()

		ns := make([]string, len(sorted))
		for i, n := range sorted {
			ns[i] = string(n)
		}

		return &ddbtypes.AttributeValueMemberNS{Value: ns}, nil
	case BinarySet:
		return &ddbtypes.AttributeValueMemberBS{Value: val.Sorted()}, nil
	case List:
		lv := make([]ddbtypes.AttributeValue, len(val))

		for i, elem := range val {
			av, err := ToSDK(elem)
			if err != nil {
				return nil, nest(err, fmt.Sprintf("[%d]", i))
			}

			lv[i] = av
		}

		return &ddbtypes.AttributeValueMemberL{Value: lv}, nil
	case Map:
		mv, err := ToSDKMap(val)
		if err != nil {
			return nil, err
		}

		return &ddbtypes.AttributeValueMemberM{Value: mv}, nil
	}

	return nil, types.NewProtocolError("", "unsupported value %T", v)
}

// ToSDKMap converts an item to an SDK attribute map.
func ToSDKMap(m Map) (map[string]ddbtypes.AttributeValue, error) {
	out := make(map[string]ddbtypes.AttributeValue, len(m))

	for k, v := range m {
		av, err := ToSDK(v)
		if err != nil {
			return nil, nest(err, k)
		}

		out[k] = av
	}

	return out, nil
}

// FromSDK converts an SDK attribute value to a Value. BOOL members have no
// counterpart in the model and are reported as protocol errors.
//
//nolint:gocyclo // mapping all shapes in a single switch for readability
func FromSDK(av ddbtypes.AttributeValue) (Value, error) {
	switch val := av.(type) {
	case *ddbtypes.AttributeValueMemberS:
		return String(val.Value), nil
	case *ddbtypes.AttributeValueMemberN:
		n, err := ParseNumber(val.Value)
		if err != nil {
			return nil, err
		}

		return n, nil
	case *ddbtypes.AttributeValueMemberB:
		return Binary(val.Value), nil
	case *ddbtypes.AttributeValueMemberNULL:
		return Null{}, nil
	case *ddbtypes.AttributeValueMemberSS:
		return NewStringSet(val.Value...), nil
	case *ddbtypes.AttributeValueMemberNS:
		set := make(NumberSet, len(val.Value))

		for _, s := range val.Value {
			n, err := ParseNumber(s)
			if err != nil {
				return nil, err
			}

			set[n] = struct{}{}
		}

		return set, nil
	case *ddbtypes.AttributeValueMemberBS:
		return NewBinarySet(val.Value...), nil
	case *ddbtypes.AttributeValueMemberL:
		l := make(List, len(val.Value))

		for i, elem := range val.Value {
			converted, err := FromSDK(elem)
			if err != nil {
				return nil, nest(err, fmt.Sprintf("[%d]", i))
			}

			l[i] = converted
		}

		return l, nil
	case *ddbtypes.AttributeValueMemberM:
		m, err := FromSDKMap(val.Value)
		if err != nil {
			return nil, err
		}

		return m, nil
	case *ddbtypes.AttributeValueMemberBOOL:
		return nil, types.NewProtocolError("", "type BOOL is not supported")
	}

	return nil, types.NewProtocolError("", "unsupported SDK attribute value %T", av)
}

// FromSDKMap converts an SDK attribute map to an item.
func FromSDKMap(item map[string]ddbtypes.AttributeValue) (Map, error) {
	m := make(Map, len(item))

	for k, av := range item {
		v, err := FromSDK(av)
		if err != nil {
			return nil, nest(err, k)
		}

		m[k] = v
	}

	return m, nil
}

// MarshalStruct encodes a Go value, honoring `dynamodbav` struct tags, into
// an item.
func MarshalStruct(in any) (Map, error) {
	avs, err := attributevalue.MarshalMap(in)
	if err != nil {
		return nil, &types.EncodingError{Reason: "attributevalue marshal failed", Err: err}
	}

	return FromSDKMap(avs)
}

// UnmarshalStruct decodes an item into out, honoring `dynamodbav` struct
// tags.
func UnmarshalStruct(m Map, out any) error {
	avs, err := ToSDKMap(m)
	if err != nil {
		return err
	}

	if err := attributevalue.UnmarshalMap(avs, out); err != nil {
		return &types.DecodingError{Reason: "attributevalue unmarshal failed", Err: err}
	}

	return nil
}
