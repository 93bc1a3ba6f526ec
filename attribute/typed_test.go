package attribute

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/truora/dynamite/types"
)

func sampleItem() Map {
	return Map{
		"id":      String("u1"),
		"age":     Number("42"),
		"avatar":  Binary{0x00, 0xff, 0x10},
		"nick":    Null{},
		"tags":    NewStringSet("red", "blue"),
		"scores":  NewNumberSet("1", "2.5", "-3"),
		"keys":    NewBinarySet([]byte("k1"), []byte("k2")),
		"history": List{String("a"), Number("1"), List{Null{}}, Map{"x": String("y")}},
		"profile": Map{"city": String("Bogota"), "zip": Number("110111")},
	}
}

func TestNathanExample(t *testing.T) {
	c := require.New(t)

	v, err := FromGeneric(map[string]any{
		"username":  "nathan",
		"rand_data": map[string]any{"favorite_banana": "Jana"},
	})
	c.NoError(err)

	typed, err := ToTyped(v)
	c.NoError(err)
	c.Equal(map[string]any{
		"M": map[string]any{
			"username": map[string]any{"S": "nathan"},
			"rand_data": map[string]any{
				"M": map[string]any{"favorite_banana": map[string]any{"S": "Jana"}},
			},
		},
	}, typed)

	data, err := EncodeItem(v)
	c.NoError(err)
	c.Equal(`{"rand_data":{"M":{"favorite_banana":{"S":"Jana"}}},"username":{"S":"nathan"}}`, string(data))
}

func TestTypedScalars(t *testing.T) {
	c := require.New(t)

	typed, err := ToTyped(Binary("hello"))
	c.NoError(err)
	c.Equal(map[string]any{"B": "aGVsbG8="}, typed)

	typed, err = ToTyped(Null{})
	c.NoError(err)
	c.Equal(map[string]any{"NULL": true}, typed)

	typed, err = ToTyped(Number("1e3"))
	c.NoError(err)
	c.Equal(map[string]any{"N": "1e3"}, typed)

	typed, err = ToTyped(NewNumberSet("3", "1"))
	c.NoError(err)
	c.Equal(map[string]any{"NS": []string{"1", "3"}}, typed)

	_, err = ToTyped(nil)
	c.Error(err)
}

func TestTypedRoundTrip(t *testing.T) {
	c := require.New(t)

	item := sampleItem()

	for name, v := range item {
		typed, err := ToTyped(v)
		c.NoError(err, name)

		back, err := FromTyped(typed)
		c.NoError(err, name)
		c.True(Equal(v, back), name)
	}

	data, err := EncodeItem(item)
	c.NoError(err)

	decoded, err := DecodeItem(data)
	c.NoError(err)
	c.True(Equal(item, decoded))
}

func TestEncodeIsIdempotent(t *testing.T) {
	c := require.New(t)

	first, err := EncodeItem(sampleItem())
	c.NoError(err)

	for i := 0; i < 20; i++ {
		again, err := EncodeItem(sampleItem())
		c.NoError(err)
		c.Equal(string(first), string(again))
	}
}

func TestTopLevelMustBeMap(t *testing.T) {
	c := require.New(t)

	for _, v := range []Value{String("x"), Number("1"), Null{}, List{}, NewStringSet("a"), Binary("b")} {
		_, err := ToTypedMap(v)

		var pe *types.ProtocolError
		c.True(errors.As(err, &pe), v.Kind().String())
		c.Equal("top level type must be a map", pe.Message())
	}

	_, err := EncodeItem(List{String("x")})
	c.Error(err)
}

func TestFromTypedTagExclusivity(t *testing.T) {
	c := require.New(t)

	cases := map[string]string{
		"no tag":        `{}`,
		"two tags":      `{"S":"a","N":"1"}`,
		"unknown tag":   `{"BOOL":true}`,
		"not an object": `"S"`,
	}

	for name, doc := range cases {
		_, err := FromTyped(decodePlain(t, doc))

		var pe *types.ProtocolError
		c.True(errors.As(err, &pe), name)
	}
}

func TestFromTypedShapeErrors(t *testing.T) {
	c := require.New(t)

	cases := map[string]string{
		"S not string":     `{"S":1}`,
		"N not string":     `{"N":1}`,
		"N not decimal":    `{"N":"one"}`,
		"B not base64":     `{"B":"%%%"}`,
		"M not object":     `{"M":[]}`,
		"L not array":      `{"L":{}}`,
		"SS not array":     `{"SS":"a"}`,
		"SS non strings":   `{"SS":[1]}`,
		"SS duplicates":    `{"SS":["a","a"]}`,
		"NS invalid":       `{"NS":["x"]}`,
		"BS duplicates":    `{"BS":["YQ==","YQ=="]}`,
		"nested bad value": `{"M":{"a":{"L":[{"X":"1"}]}}}`,
	}

	for name, doc := range cases {
		v, err := FromTyped(decodePlain(t, doc))
		c.Nil(v, name)

		var pe *types.ProtocolError
		c.True(errors.As(err, &pe), name)
	}

	_, err := FromTyped(decodePlain(t, `{"M":{"a":{"L":[{"X":"1"}]}}}`))

	var pe *types.ProtocolError
	c.True(errors.As(err, &pe))
	c.Equal("a[0]", pe.Path)
}

func TestFromTypedNullAcceptsAnyMarker(t *testing.T) {
	c := require.New(t)

	for _, doc := range []string{`{"NULL":true}`, `{"NULL":false}`, `{"NULL":"yes"}`, `{"NULL":null}`} {
		v, err := FromTyped(decodePlain(t, doc))
		c.NoError(err, doc)
		c.Equal(Null{}, v)
	}
}

func TestDecodeItemErrors(t *testing.T) {
	c := require.New(t)

	_, err := DecodeItem([]byte(`{"id":`))

	var decErr *types.DecodingError
	c.True(errors.As(err, &decErr))

	_, err = DecodeItem([]byte(`["not","a","map"]`))

	var pe *types.ProtocolError
	c.True(errors.As(err, &pe))
}
