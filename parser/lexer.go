package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes expression strings. Input is read as UTF-8, so quoted
// identifiers and string literals may hold any text.
type Lexer struct {
	input string
	pos   int // byte offset of ch
	next  int // byte offset after ch
	ch    rune
}

// NewLexer creates a new lexer
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar reads the next character
func (l *Lexer) readChar() {
	l.pos = l.next
	if l.next >= len(l.input) {
		l.ch = 0
		return
	}
	r, width := utf8.DecodeRuneInString(l.input[l.next:])
	l.ch = r
	l.next += width
}

// peekChar looks at the next character without advancing
func (l *Lexer) peekChar() rune {
	if l.next >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.next:])
	return r
}

// offset is the byte position of the current character
func (l *Lexer) offset() int {
	return l.pos
}

// skipWhitespace skips whitespace characters
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// readString reads a quoted string. ok is false when the closing quote is
// missing.
func (l *Lexer) readString(quote rune) (s string, ok bool) {
	var result strings.Builder
	l.readChar() // skip opening quote

	for l.ch != quote && l.ch != 0 {
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				result.WriteRune('\n')
			case 't':
				result.WriteRune('\t')
			case '\\':
				result.WriteRune('\\')
			case quote:
				result.WriteRune(quote)
			case 0:
				return result.String(), false
			default:
				result.WriteRune(l.ch)
			}
		} else {
			result.WriteRune(l.ch)
		}
		l.readChar()
	}

	if l.ch != quote {
		return result.String(), false
	}
	l.readChar() // skip closing quote
	return result.String(), true
}

// readNumber reads digits and decimal points
func (l *Lexer) readNumber() string {
	var result strings.Builder
	for isDigit(l.ch) || l.ch == '.' {
		result.WriteRune(l.ch)
		l.readChar()
	}
	return result.String()
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

// readIdentifier reads an identifier or keyword. Dots are allowed so that
// flattened nested column names read as one identifier.
func (l *Lexer) readIdentifier() string {
	var result strings.Builder
	for unicode.IsLetter(l.ch) || unicode.IsDigit(l.ch) || l.ch == '_' || l.ch == '.' {
		result.WriteRune(l.ch)
		l.readChar()
	}
	return result.String()
}

// twoChar emits the two-character token when the next character is second,
// otherwise the single-character one
func (l *Lexer) twoChar(second rune, double, single Token) Token {
	if l.peekChar() == second {
		l.readChar()
		l.readChar()
		return double
	}
	l.readChar()
	return single
}

// NextToken returns the next token
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	pos := l.offset()
	var tok Token

	switch l.ch {
	case 0:
		tok = Token{Type: TokenEOF, Value: ""}
	case '=':
		// both = and == mean equality
		tok = l.twoChar('=', Token{Type: TokenEqual, Value: "=="}, Token{Type: TokenEqual, Value: "="})
	case '!':
		tok = l.twoChar('=', Token{Type: TokenNotEqual, Value: "!="}, Token{Type: TokenError, Value: "!"})
	case '<':
		switch l.peekChar() {
		case '=':
			l.readChar()
			l.readChar()
			tok = Token{Type: TokenLessEqual, Value: "<="}
		case '>':
			l.readChar()
			l.readChar()
			tok = Token{Type: TokenNotEqual, Value: "<>"}
		default:
			l.readChar()
			tok = Token{Type: TokenLess, Value: "<"}
		}
	case '>':
		tok = l.twoChar('=', Token{Type: TokenGreaterEqual, Value: ">="}, Token{Type: TokenGreater, Value: ">"})
	case '*':
		tok = l.twoChar('*', Token{Type: TokenPower, Value: "**"}, Token{Type: TokenStar, Value: "*"})
	case '/':
		tok = l.twoChar('/', Token{Type: TokenDoubleSlash, Value: "//"}, Token{Type: TokenSlash, Value: "/"})
	case '+':
		tok = Token{Type: TokenPlus, Value: "+"}
		l.readChar()
	case '-':
		tok = Token{Type: TokenMinus, Value: "-"}
		l.readChar()
	case '%':
		tok = Token{Type: TokenPercent, Value: "%"}
		l.readChar()
	case '&':
		tok = Token{Type: TokenAmp, Value: "&"}
		l.readChar()
	case '|':
		tok = Token{Type: TokenPipe, Value: "|"}
		l.readChar()
	case '^':
		tok = Token{Type: TokenCaret, Value: "^"}
		l.readChar()
	case '~':
		tok = Token{Type: TokenTilde, Value: "~"}
		l.readChar()
	case '\'':
		value, ok := l.readString('\'')
		if ok {
			tok = Token{Type: TokenString, Value: value}
		} else {
			tok = Token{Type: TokenError, Value: "unterminated string"}
		}
	case '"':
		value, ok := l.readString('"')
		if ok {
			tok = Token{Type: TokenQuotedIdent, Value: value}
		} else {
			tok = Token{Type: TokenError, Value: "unterminated quoted identifier"}
		}
	case ',':
		tok = Token{Type: TokenComma, Value: ","}
		l.readChar()
	case '(':
		tok = Token{Type: TokenLeftParen, Value: "("}
		l.readChar()
	case ')':
		tok = Token{Type: TokenRightParen, Value: ")"}
		l.readChar()
	default:
		if isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())) {
			tok = Token{Type: TokenNumber, Value: l.readNumber()}
		} else if unicode.IsLetter(l.ch) || l.ch == '_' {
			value := l.readIdentifier()
			tok = Token{Type: identifierType(value), Value: value}
		} else {
			tok = Token{Type: TokenError, Value: string(l.ch)}
			l.readChar()
		}
	}

	tok.Pos = pos
	return tok
}

var keywords = map[string]TokenType{
	"and":   TokenAnd,
	"or":    TokenOr,
	"not":   TokenNot,
	"as":    TokenAs,
	"true":  TokenBool,
	"false": TokenBool,
	"null":  TokenNull,
}

// identifierType determines if an identifier is a keyword. Keywords are
// case-insensitive.
func identifierType(ident string) TokenType {
	if tokType, ok := keywords[strings.ToLower(ident)]; ok {
		return tokType
	}
	return TokenIdent
}

// Tokenize returns all tokens from the input, ending with TokenEOF or the
// first TokenError
func Tokenize(input string) []Token {
	lexer := NewLexer(input)
	var tokens []Token

	for {
		tok := lexer.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF || tok.Type == TokenError {
			break
		}
	}

	return tokens
}
