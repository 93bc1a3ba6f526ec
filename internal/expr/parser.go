package expr

import (
	"errors"
	"fmt"
	"strings"
)

// Parser builds the AST of a condition expression
type Parser struct {
	l         *Lexer
	curToken  Token
	peekToken Token
	errors    []string

	prefixParseFns map[TokenType]prefixParseFn
	infixParseFns  map[TokenType]infixParseFn
}

type (
	prefixParseFn func() Expression
	infixParseFn  func(Expression) Expression
)

const (
	_ int = iota
	precedenceValueLowest
	precedenceValueOR   // OR
	precedenceValueAND  // AND
	precedenceValueNOT  // NOT
	precedenceValueCall // myFunction(X)
	precedenceValuePath // .
)

var precedences = map[TokenType]int{
	OR:     precedenceValueOR,
	AND:    precedenceValueAND,
	LPAREN: precedenceValueCall,
	DOT:    precedenceValuePath,
}

// NewParser creates a new parser
func NewParser(l *Lexer) *Parser {
	p := &Parser{
		l:      l,
		errors: []string{},
	}

	p.prefixParseFns = map[TokenType]prefixParseFn{
		IDENT:  p.parseIdentifier,
		NOT:    p.parsePrefixExpression,
		LPAREN: p.parseGroupedExpression,
	}

	p.infixParseFns = map[TokenType]infixParseFn{
		AND:    p.parseInfixExpression,
		OR:     p.parseInfixExpression,
		LPAREN: p.parseCallExpression,
		DOT:    p.parsePathExpression,
	}

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()

	return p
}

// Parse parses input as a condition expression.
func Parse(input string) (*ConditionalExpression, error) {
	p := NewParser(NewLexer(input))

	cond := p.ParseConditionalExpression()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, errors.New("invalid ConditionExpression: " + strings.Join(errs, "; "))
	}

	return cond, nil
}

// Errors returns the errors found while parsing
func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

// ParseConditionalExpression parses the whole input as one expression
func (p *Parser) ParseConditionalExpression() *ConditionalExpression {
	stmt := &ConditionalExpression{Token: p.curToken}

	if p.curToken.Type == EOF {
		p.errors = append(p.errors, "empty expression")

		return stmt
	}

	stmt.Expression = p.parseExpression(precedenceValueLowest)

	if len(p.errors) == 0 && !p.peekTokenIs(EOF) {
		p.errors = append(p.errors, fmt.Sprintf("Syntax error; token: %q", p.peekToken.Literal))
	}

	return stmt
}

func (p *Parser) parseExpression(precedence int) Expression {
	prefix, ok := p.prefixParseFns[p.curToken.Type]
	if !ok {
		p.errors = append(p.errors, fmt.Sprintf("Syntax error; token: %q", p.curToken.Literal))

		return nil
	}

	leftExp := prefix()

	for leftExp != nil && !p.peekTokenIs(EOF) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}

		p.nextToken()

		leftExp = infix(leftExp)
	}

	return leftExp
}

func (p *Parser) parseIdentifier() Expression {
	return &Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseGroupedExpression() Expression {
	p.nextToken()

	exp := p.parseExpression(precedenceValueLowest)

	if !p.expectPeek(RPAREN) {
		return nil
	}

	return exp
}

func (p *Parser) parsePrefixExpression() Expression {
	expression := &PrefixExpression{
		Token:    p.curToken,
		Operator: string(NOT),
	}

	p.nextToken()

	expression.Right = p.parseExpression(precedenceValueNOT)
	if expression.Right == nil {
		return nil
	}

	return expression
}

func (p *Parser) parseInfixExpression(left Expression) Expression {
	expression := &InfixExpression{
		Token:    p.curToken,
		Operator: string(p.curToken.Type),
		Left:     left,
	}

	precedence := p.curPrecedence()

	p.nextToken()

	expression.Right = p.parseExpression(precedence)
	if expression.Right == nil {
		return nil
	}

	return expression
}

func (p *Parser) parsePathExpression(left Expression) Expression {
	expression := &PathExpression{Token: p.curToken, Left: left}

	if !p.expectPeek(IDENT) {
		return nil
	}

	expression.Field = &Identifier{Token: p.curToken, Value: p.curToken.Literal}

	return expression
}

func (p *Parser) parseCallExpression(function Expression) Expression {
	exp := &CallExpression{Token: p.curToken, Function: function}

	exp.Arguments = p.parseCallArguments()
	if exp.Arguments == nil {
		return nil
	}

	return exp
}

func (p *Parser) parseCallArguments() []Expression {
	args := []Expression{}

	if p.peekTokenIs(RPAREN) {
		p.nextToken()
		return args
	}

	p.nextToken()
	args = append(args, p.parseExpression(precedenceValueLowest))

	for p.peekTokenIs(COMMA) {
		p.nextToken()
		p.nextToken()
		args = append(args, p.parseExpression(precedenceValueLowest))
	}

	if !p.expectPeek(RPAREN) {
		return nil
	}

	return args
}

// helpers

func (p *Parser) peekTokenIs(t TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) expectPeek(t TokenType) bool {
	if !p.peekTokenIs(t) {
		p.errors = append(p.errors, fmt.Sprintf("expected next token to be %s, got %s instead", t, p.peekToken.Type))

		return false
	}

	p.nextToken()

	return true
}

func (p *Parser) peekPrecedence() int {
	if p, ok := precedences[p.peekToken.Type]; ok {
		return p
	}

	return precedenceValueLowest
}

func (p *Parser) curPrecedence() int {
	if p, ok := precedences[p.curToken.Type]; ok {
		return p
	}

	return precedenceValueLowest
}
