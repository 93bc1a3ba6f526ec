package expr

// Lexer splits a condition expression into tokens
type Lexer struct {
	input string
	// current position in input (points to current char)
	position int
	// current reading position in input (after current char)
	readPosition int
	// current char under examination
	ch byte
}

var singleChar = map[byte]TokenType{
	'(': LPAREN,
	')': RPAREN,
	',': COMMA,
	'.': DOT,
}

// NewLexer creates a new lexer
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()

	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}

	l.position = l.readPosition
	l.readPosition++
}

// NextToken returns the next token of the input
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	if single, ok := singleChar[l.ch]; ok {
		tok := newToken(single, l.ch)
		l.readChar()

		return tok
	}

	if l.ch == 0 {
		return Token{Type: EOF}
	}

	if isIdentifierLetter(l.ch) {
		literal := l.readIdentifier()

		return Token{Type: LookupIdent(literal), Literal: literal}
	}

	tok := newToken(ILLEGAL, l.ch)
	l.readChar()

	return tok
}

func (l *Lexer) readIdentifier() string {
	position := l.position

	for isIdentifierLetter(l.ch) {
		l.readChar()
	}

	return l.input[position:l.position]
}

func isIdentifierLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || '0' <= ch && ch <= '9' || ch == '_'
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func newToken(tokenType TokenType, ch byte) Token {
	return Token{Type: tokenType, Literal: string(ch)}
}
