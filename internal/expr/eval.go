// Package expr parses and evaluates the condition expressions the
// in-memory server accepts: attribute_exists, attribute_not_exists, AND, OR,
// NOT and parentheses, over plain or dotted attribute paths.
package expr

import (
	"errors"
	"fmt"

	"github.com/truora/dynamite/attribute"
)

type function func(item attribute.Map, path []string) bool

var functions = map[string]function{
	"attribute_exists": func(item attribute.Map, path []string) bool {
		_, ok := lookup(item, path)
		return ok
	},
	"attribute_not_exists": func(item attribute.Map, path []string) bool {
		_, ok := lookup(item, path)
		return !ok
	},
}

// Eval reports whether item satisfies the condition. A nil item is
// treated as an item without attributes.
func Eval(cond *ConditionalExpression, item attribute.Map) (bool, error) {
	if cond == nil || cond.Expression == nil {
		return false, errors.New("empty condition")
	}

	return eval(cond.Expression, item)
}

func eval(node Expression, item attribute.Map) (bool, error) {
	switch n := node.(type) {
	case *InfixExpression:
		return evalInfix(n, item)
	case *PrefixExpression:
		right, err := eval(n.Right, item)
		if err != nil {
			return false, err
		}

		return !right, nil
	case *CallExpression:
		return evalFunctionCall(n, item)
	}

	return false, fmt.Errorf("the expression %s is not a condition", node)
}

func evalInfix(node *InfixExpression, item attribute.Map) (bool, error) {
	left, err := eval(node.Left, item)
	if err != nil {
		return false, err
	}

	switch node.Operator {
	case string(AND):
		if !left {
			return false, nil
		}
	case string(OR):
		if left {
			return true, nil
		}
	default:
		return false, fmt.Errorf("unknown operator: %s", node.Operator)
	}

	return eval(node.Right, item)
}

func evalFunctionCall(node *CallExpression, item attribute.Map) (bool, error) {
	ident, ok := node.Function.(*Identifier)
	if !ok {
		return false, fmt.Errorf("bad function syntax; expression: %s", node)
	}

	fn, ok := functions[ident.Value]
	if !ok {
		return false, fmt.Errorf("invalid function name; function: %s", ident.Value)
	}

	if len(node.Arguments) != 1 {
		return false, fmt.Errorf("incorrect number of operands for function %s; expected: 1, got: %d", ident.Value, len(node.Arguments))
	}

	path, err := pathOf(node.Arguments[0])
	if err != nil {
		return false, err
	}

	return fn(item, path), nil
}

func pathOf(node Expression) ([]string, error) {
	switch n := node.(type) {
	case *Identifier:
		return []string{n.Value}, nil
	case *PathExpression:
		return n.Segments(), nil
	}

	return nil, fmt.Errorf("operand must be an attribute path; got: %s", node)
}

func lookup(item attribute.Map, path []string) (attribute.Value, bool) {
	var current attribute.Value = item

	for _, segment := range path {
		m, ok := current.(attribute.Map)
		if !ok {
			return nil, false
		}

		current, ok = m[segment]
		if !ok {
			return nil, false
		}
	}

	return current, true
}
