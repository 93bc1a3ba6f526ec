package expr

import (
	"strings"
)

// Node the AST node type
type Node interface {
	TokenLiteral() string
	String() string
}

// Expression represents the node type expression
type Expression interface {
	Node
	expressionNode()
}

// Identifier is an attribute or function name
type Identifier struct {
	Token Token
	Value string
}

func (i *Identifier) expressionNode() {}

// TokenLiteral returns the literal token of the node
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }

func (i *Identifier) String() string { return i.Value }

// PathExpression selects a field of a map attribute, e.g. profile.city
type PathExpression struct {
	Token Token // the '.' token
	Left  Expression
	Field *Identifier
}

func (pe *PathExpression) expressionNode() {}

// TokenLiteral returns the literal token of the node
func (pe *PathExpression) TokenLiteral() string { return pe.Token.Literal }

func (pe *PathExpression) String() string {
	return pe.Left.String() + "." + pe.Field.String()
}

// Segments returns the attribute names from the root to the field.
func (pe *PathExpression) Segments() []string {
	var parent []string

	switch left := pe.Left.(type) {
	case *Identifier:
		parent = []string{left.Value}
	case *PathExpression:
		parent = left.Segments()
	}

	return append(parent, pe.Field.Value)
}

// ConditionalExpression is the root node of a parsed condition
type ConditionalExpression struct {
	Token      Token
	Expression Expression
}

// TokenLiteral returns the literal token of the node
func (ce *ConditionalExpression) TokenLiteral() string { return ce.Token.Literal }

func (ce *ConditionalExpression) String() string {
	if ce.Expression != nil {
		return ce.Expression.String()
	}

	return ""
}

// PrefixExpression is a NOT expression
type PrefixExpression struct {
	Token    Token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode() {}

// TokenLiteral returns the literal token of the node
func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Literal }

func (pe *PrefixExpression) String() string {
	return "(" + pe.Operator + " " + pe.Right.String() + ")"
}

// InfixExpression is an AND or OR expression
type InfixExpression struct {
	Token    Token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) expressionNode() {}

// TokenLiteral returns the literal token of the node
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Literal }

func (ie *InfixExpression) String() string {
	return "(" + ie.Left.String() + " " + ie.Operator + " " + ie.Right.String() + ")"
}

// CallExpression is a function call
type CallExpression struct {
	Token     Token // the '(' token
	Function  Expression
	Arguments []Expression
}

func (ce *CallExpression) expressionNode() {}

// TokenLiteral returns the literal token of the node
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Literal }

func (ce *CallExpression) String() string {
	args := make([]string, 0, len(ce.Arguments))
	for _, a := range ce.Arguments {
		args = append(args, a.String())
	}

	return ce.Function.String() + "(" + strings.Join(args, ", ") + ")"
}
