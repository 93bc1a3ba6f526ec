// Package attribute implements the typed-value model of the store and its
// conversions to and from the tagged wire form (`{"S": "..."}`,
// `{"M": {...}}`, ...) and the plain structured form produced by
// application serializers.
package attribute

import (
	"bytes"
	"sort"
)

// Kind identifies one of the nine value variants.
type Kind int

const (
	// KindNumber is a decimal number stored as text.
	KindNumber Kind = iota + 1
	// KindString is UTF-8 text.
	KindString
	// KindBinary is an opaque byte sequence.
	KindBinary
	// KindNull is the null marker.
	KindNull
	// KindStringSet is a set of strings.
	KindStringSet
	// KindNumberSet is a set of numbers.
	KindNumberSet
	// KindBinarySet is a set of byte sequences.
	KindBinarySet
	// KindList is an ordered, heterogeneous sequence.
	KindList
	// KindMap maps attribute names to values.
	KindMap
)

var kindTags = map[Kind]string{
	KindNumber:    "N",
	KindString:    "S",
	KindBinary:    "B",
	KindNull:      "NULL",
	KindStringSet: "SS",
	KindNumberSet: "NS",
	KindBinarySet: "BS",
	KindList:      "L",
	KindMap:       "M",
}

// Tag returns the wire tag of the kind.
func (k Kind) Tag() string {
	return kindTags[k]
}

func (k Kind) String() string {
	if tag, ok := kindTags[k]; ok {
		return tag
	}

	return "UNKNOWN"
}

// Value is the closed set of attribute shapes. It is implemented only by
// the types in this package.
type Value interface {
	Kind() Kind
	isValue()
}

// PrimaryKeyValue is a Value legal as a key attribute: String, Number or
// Binary.
type PrimaryKeyValue interface {
	Value
	isPrimaryKeyValue()
}

// String is a string attribute.
type String string

// Number is a number attribute kept as its decimal text.
type Number string

// Binary is a binary attribute.
type Binary []byte

// Null is the null attribute.
type Null struct{}

// StringSet is a set of unique strings.
type StringSet map[string]struct{}

// NumberSet is a set of unique numbers, compared by decimal text.
type NumberSet map[Number]struct{}

// BinarySet is a set of unique byte sequences. Keys hold the raw bytes.
type BinarySet map[string]struct{}

// List is an ordered sequence of values.
type List []Value

// Map maps attribute names to values.
type Map map[string]Value

func (String) Kind() Kind    { return KindString }
func (Number) Kind() Kind    { return KindNumber }
func (Binary) Kind() Kind    { return KindBinary }
func (Null) Kind() Kind      { return KindNull }
func (StringSet) Kind() Kind { return KindStringSet }
func (NumberSet) Kind() Kind { return KindNumberSet }
func (BinarySet) Kind() Kind { return KindBinarySet }
func (List) Kind() Kind      { return KindList }
func (Map) Kind() Kind       { return KindMap }

func (String) isValue()    {}
func (Number) isValue()    {}
func (Binary) isValue()    {}
func (Null) isValue()      {}
func (StringSet) isValue() {}
func (NumberSet) isValue() {}
func (BinarySet) isValue() {}
func (List) isValue()      {}
func (Map) isValue()       {}

func (String) isPrimaryKeyValue() {}
func (Number) isPrimaryKeyValue() {}
func (Binary) isPrimaryKeyValue() {}

// NewStringSet builds a StringSet, dropping duplicates.
func NewStringSet(values ...string) StringSet {
	set := make(StringSet, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}

	return set
}

// NewNumberSet builds a NumberSet, dropping duplicates.
func NewNumberSet(values ...Number) NumberSet {
	set := make(NumberSet, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}

	return set
}

// NewBinarySet builds a BinarySet, dropping duplicates.
func NewBinarySet(values ...[]byte) BinarySet {
	set := make(BinarySet, len(values))
	for _, v := range values {
		set[string(v)] = struct{}{}
	}

	return set
}

// Contains reports whether v is in the set.
func (s StringSet) Contains(v string) bool {
	_, ok := s[v]
	return ok
}

// Contains reports whether v is in the set.
func (s NumberSet) Contains(v Number) bool {
	_, ok := s[v]
	return ok
}

// Contains reports whether v is in the set.
func (s BinarySet) Contains(v []byte) bool {
	_, ok := s[string(v)]
	return ok
}

// Sorted returns the elements in ascending order.
func (s StringSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}

	sort.Strings(out)

	return out
}

// Sorted returns the elements ordered by decimal text.
func (s NumberSet) Sorted() []Number {
	out := make([]Number, 0, len(s))
	for v := range s {
		out = append(out, v)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Sorted returns the elements in ascending byte order.
func (s BinarySet) Sorted() [][]byte {
	out := make([][]byte, 0, len(s))
	for v := range s {
		out = append(out, []byte(v))
	}

	sort.Slice(out, func(i, j int) bool { return bytes.Compare(out[i], out[j]) < 0 })

	return out
}

// Keys returns the attribute names in ascending order.
func (m Map) Keys() []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}

	sort.Strings(out)

	return out
}

// Equal reports whether a and b hold the same variant and contents.
//
//nolint:gocyclo // one case per variant
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if a.Kind() != b.Kind() {
		return false
	}

	switch av := a.(type) {
	case String:
		return av == b.(String)
	case Number:
		return av == b.(Number)
	case Binary:
		return bytes.Equal(av, b.(Binary))
	case Null:
		return true
	case StringSet:
		return equalSets(av, b.(StringSet))
	case NumberSet:
		return equalSets(av, b.(NumberSet))
	case BinarySet:
		return equalSets(av, b.(BinarySet))
	case List:
		bv := b.(List)
		if len(av) != len(bv) {
			return false
		}

		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}

		return true
	case Map:
		bv := b.(Map)
		if len(av) != len(bv) {
			return false
		}

		for k, v := range av {
			other, ok := bv[k]
			if !ok || !Equal(v, other) {
				return false
			}
		}

		return true
	}

	return false
}

func equalSets[K comparable](a, b map[K]struct{}) bool {
	if len(a) != len(b) {
		return false
	}

	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}

	return true
}
