package expr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseConditions(t *testing.T) {
	c := require.New(t)

	tests := map[string]string{
		`attribute_exists(id)`:                                  `attribute_exists(id)`,
		`attribute_exists(profile.city)`:                        `attribute_exists(profile.city)`,
		`NOT attribute_exists(id)`:                              `(NOT attribute_exists(id))`,
		`a(x) AND b(y) OR c(z)`:                                 `((a(x) AND b(y)) OR c(z))`,
		`a(x) OR b(y) AND c(z)`:                                 `(a(x) OR (b(y) AND c(z)))`,
		`NOT a(x) AND b(y)`:                                     `((NOT a(x)) AND b(y))`,
		`NOT (a(x) AND b(y))`:                                   `(NOT (a(x) AND b(y)))`,
		`(attribute_exists(id)) AND (attribute_not_exists(ts))`: `(attribute_exists(id) AND attribute_not_exists(ts))`,
		`((a(x)))`:                                              `a(x)`,
	}

	for input, expected := range tests {
		cond, err := Parse(input)
		c.NoError(err, input)
		c.Equal(expected, cond.String(), input)
	}
}

func TestParseCallExpression(t *testing.T) {
	c := require.New(t)

	p := NewParser(NewLexer("attribute_exists(a.b.c)"))
	cond := p.ParseConditionalExpression()
	c.Empty(p.Errors())

	call, ok := cond.Expression.(*CallExpression)
	c.True(ok)
	c.Equal("attribute_exists", call.Function.String())
	c.Len(call.Arguments, 1)

	path, ok := call.Arguments[0].(*PathExpression)
	c.True(ok)
	c.Equal([]string{"a", "b", "c"}, path.Segments())
	c.Equal(".", path.TokenLiteral())
}

func TestParseErrors(t *testing.T) {
	c := require.New(t)

	inputs := []string{
		``,
		`   `,
		`attribute_exists(id`,
		`(attribute_exists(id)`,
		`attribute_exists(id) attribute_exists(ts)`,
		`AND attribute_exists(id)`,
		`attribute_exists(id) AND`,
		`attribute_exists(profile.)`,
		`NOT`,
		`a = b`,
	}

	for _, input := range inputs {
		_, err := Parse(input)
		c.Error(err, input)
	}
}
