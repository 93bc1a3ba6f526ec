package dynamite

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/truora/dynamite/attribute"
	"github.com/truora/dynamite/types"
)

func TestCompositeKeyKeepsStrings(t *testing.T) {
	c := require.New(t)

	key, err := CompositeKey("id", "u1", "ts", "100")
	c.NoError(err)

	typed, err := key.Typed()
	c.NoError(err)
	c.Equal(map[string]any{
		"id": map[string]any{"S": "u1"},
		"ts": map[string]any{"S": "100"},
	}, typed)
}

func TestHashKeyScalars(t *testing.T) {
	c := require.New(t)

	key, err := HashKey("n", 42)
	c.NoError(err)

	typed, err := key.Typed()
	c.NoError(err)
	c.Equal(map[string]any{"n": map[string]any{"N": "42"}}, typed)

	key, err = HashKey("b", []byte("hi"))
	c.NoError(err)

	typed, err = key.Typed()
	c.NoError(err)
	c.Equal(map[string]any{"b": map[string]any{"B": "aGk="}}, typed)

	key, err = CompositeKey("pk", attribute.Number("1.5"), "sk", uint64(7))
	c.NoError(err)
	c.True(attribute.Equal(attribute.Map{"pk": attribute.Number("1.5"), "sk": attribute.Number("7")}, key.Map()))
}

func TestKeyErrors(t *testing.T) {
	c := require.New(t)

	_, err := HashKey("id", 1.5)

	var pe *types.ProtocolError
	c.True(errors.As(err, &pe))

	_, err = CompositeKey("id", "a", "ts", true)
	c.True(errors.As(err, &pe))

	_, err = PrimaryKey{}.Typed()
	c.True(errors.As(err, &pe))

	key, err := CompositeKey("id", "a", "id", "b")
	c.NoError(err)

	_, err = key.Typed()
	c.True(errors.As(err, &pe))

	key = PrimaryKey{Hash: KeyAttribute{Name: "id", Value: attribute.String("a")}, Range: &KeyAttribute{}}
	_, err = key.Typed()
	c.True(errors.As(err, &pe))
}

func TestConditionText(t *testing.T) {
	c := require.New(t)

	c.Equal("attribute_exists(id)", AttributeExists("id").String())
	c.Equal("attribute_not_exists(id)", AttributeNotExists("id").String())
	c.Equal("(attribute_exists(id)) AND (attribute_not_exists(ts))",
		And(AttributeExists("id"), AttributeNotExists("ts")).String())
	c.Equal("(attribute_exists(a)) OR (attribute_exists(b)) OR (attribute_exists(c))",
		Or(AttributeExists("a"), AttributeExists("b"), AttributeExists("c")).String())
	c.Equal("NOT (attribute_exists(a))", Not(AttributeExists("a")).String())
	c.Equal("attribute_exists(a)", And(AttributeExists("a"), Condition{}).String())
	c.True(Condition{}.IsZero())
}
