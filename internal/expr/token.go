package expr

import "strings"

// TokenType represents the type of a token
type TokenType string

// Token is a lexical unit of a condition expression
type Token struct {
	Type    TokenType
	Literal string
}

const (
	// ILLEGAL illegal token
	ILLEGAL TokenType = "ILLEGAL"
	// EOF end of the input
	EOF TokenType = "EOF"

	// IDENT attribute name or function name
	IDENT TokenType = "IDENT"

	// COMMA argument separator
	COMMA TokenType = ","
	// DOT nested attribute separator
	DOT TokenType = "."

	// LPAREN left parentheses delimiter
	LPAREN TokenType = "("
	// RPAREN right parentheses delimiter
	RPAREN TokenType = ")"

	// AND logical conjunction keyword
	AND TokenType = "AND"
	// OR logical disjunction keyword
	OR TokenType = "OR"
	// NOT logical negation keyword
	NOT TokenType = "NOT"
)

var keywords = map[string]TokenType{
	"AND": AND,
	"OR":  OR,
	"NOT": NOT,
}

// LookupIdent checks if the ident is a keyword. Keywords are case
// insensitive.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[strings.ToUpper(ident)]; ok {
		return tok
	}

	return IDENT
}
