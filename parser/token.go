package parser

import "fmt"

// TokenType represents the type of a lexical token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenError
	TokenIdent
	TokenQuotedIdent
	TokenNumber
	TokenString
	TokenComma
	TokenLeftParen
	TokenRightParen

	// Arithmetic
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenDoubleSlash
	TokenPercent
	TokenPower

	// Bitwise / logical
	TokenAmp
	TokenPipe
	TokenCaret
	TokenTilde

	// Comparison
	TokenEqual
	TokenNotEqual
	TokenLess
	TokenLessEqual
	TokenGreater
	TokenGreaterEqual

	// Keywords
	TokenAnd
	TokenOr
	TokenNot
	TokenAs
	TokenBool
	TokenNull
)

var tokenNames = map[TokenType]string{
	TokenEOF:          "end of input",
	TokenError:        "error",
	TokenIdent:        "identifier",
	TokenQuotedIdent:  "quoted identifier",
	TokenNumber:       "number",
	TokenString:       "string",
	TokenComma:        "','",
	TokenLeftParen:    "'('",
	TokenRightParen:   "')'",
	TokenPlus:         "'+'",
	TokenMinus:        "'-'",
	TokenStar:         "'*'",
	TokenSlash:        "'/'",
	TokenDoubleSlash:  "'//'",
	TokenPercent:      "'%'",
	TokenPower:        "'**'",
	TokenAmp:          "'&'",
	TokenPipe:         "'|'",
	TokenCaret:        "'^'",
	TokenTilde:        "'~'",
	TokenEqual:        "'=='",
	TokenNotEqual:     "'!='",
	TokenLess:         "'<'",
	TokenLessEqual:    "'<='",
	TokenGreater:      "'>'",
	TokenGreaterEqual: "'>='",
	TokenAnd:          "and",
	TokenOr:           "or",
	TokenNot:          "not",
	TokenAs:           "as",
	TokenBool:         "boolean",
	TokenNull:         "null",
}

func (t TokenType) String() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a lexical token and the byte offset where it starts
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}
