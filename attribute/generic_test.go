package attribute

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/truora/dynamite/types"
)

func decodePlain(t *testing.T, data string) any {
	t.Helper()

	raw, err := DecodeJSON([]byte(data))
	require.NoError(t, err)

	return raw
}

func TestFromGeneric(t *testing.T) {
	c := require.New(t)

	raw := decodePlain(t, `{"username":"nathan","nick":null,"rand_data":{"favorite_banana":"Jana"},"pets":["cat",["dog"]]}`)

	v, err := FromGeneric(raw)
	c.NoError(err)

	expected := Map{
		"username":  String("nathan"),
		"nick":      Null{},
		"rand_data": Map{"favorite_banana": String("Jana")},
		"pets":      List{String("cat"), List{String("dog")}},
	}
	c.True(Equal(expected, v))

	v, err = FromGeneric([]byte("raw"))
	c.NoError(err)
	c.Equal(Binary("raw"), v)
}

func TestFromGenericRejectsNumbersAndBooleans(t *testing.T) {
	c := require.New(t)

	_, err := FromGeneric(decodePlain(t, `{"profile":{"age":42}}`))
	c.Error(err)

	var decErr *types.DecodingError
	c.True(errors.As(err, &decErr))
	c.Equal(types.ErrCodeDecoding, decErr.Code())
	c.Contains(decErr.Message(), "profile.age")

	_, err = FromGeneric(decodePlain(t, `{"flags":[true]}`))
	c.True(errors.As(err, &decErr))
	c.Contains(decErr.Message(), "flags[0]")
	c.Contains(decErr.Message(), "boolean")

	_, err = FromGeneric(true, WithNumbers())
	c.Error(err)

	_, err = FromGeneric(struct{}{})
	c.Error(err)
}

func TestFromGenericWithNumbers(t *testing.T) {
	c := require.New(t)

	v, err := FromGeneric(decodePlain(t, `{"age":42,"score":-1.5e3}`), WithNumbers())
	c.NoError(err)
	c.True(Equal(Map{"age": Number("42"), "score": Number("-1.5e3")}, v))

	v, err = FromGeneric(int64(7), WithNumbers())
	c.NoError(err)
	c.Equal(Number("7"), v)

	v, err = FromGeneric(uint8(7), WithNumbers())
	c.NoError(err)
	c.Equal(Number("7"), v)

	v, err = FromGeneric(0.25, WithNumbers())
	c.NoError(err)
	c.Equal(Number("0.25"), v)
}

func TestGenericRoundTrip(t *testing.T) {
	c := require.New(t)

	docs := []string{
		`{}`,
		`{"a":"b"}`,
		`{"username":"nathan","rand_data":{"favorite_banana":"Jana"}}`,
		`{"list":["x",null,{"deep":["y",[]]}],"empty":{}}`,
		`"scalar"`,
		`null`,
		`[]`,
	}

	for _, doc := range docs {
		p := decodePlain(t, doc)

		v, err := FromGeneric(p)
		c.NoError(err, doc)

		back, err := ToGeneric(v)
		c.NoError(err, doc)

		c.Empty(cmp.Diff(p, back), doc)
	}
}

func TestToGenericCoversAllVariants(t *testing.T) {
	c := require.New(t)

	v := Map{
		"n":  Number("1.50"),
		"b":  Binary("xyz"),
		"ss": NewStringSet("b", "a"),
		"ns": NewNumberSet("2", "1"),
		"bs": NewBinarySet([]byte("b"), []byte("a")),
	}

	got, err := ToGeneric(v)
	c.NoError(err)

	expected := map[string]any{
		"n":  json.Number("1.50"),
		"b":  []byte("xyz"),
		"ss": []any{"a", "b"},
		"ns": []any{json.Number("1"), json.Number("2")},
		"bs": []any{[]byte("a"), []byte("b")},
	}
	c.Empty(cmp.Diff(expected, got))

	_, err = ToGeneric(nil)
	c.Error(err)
}
