package parser

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/vegasq/datadrill/drill"
	"github.com/vegasq/datadrill/query"
)

// Parser turns tokens into a drill.Reader
type Parser struct {
	tokens []Token
	pos    int
	depth  *depthCounter
}

// NewParser creates a new parser
func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens: tokens,
		depth:  newDepthCounter(),
	}
}

// current returns the current token
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

// advance moves to the next token
func (p *Parser) advance() {
	p.pos++
}

// expect checks if current token matches expected type and advances
func (p *Parser) expect(tokType TokenType) (Token, error) {
	tok := p.current()
	if tok.Type != tokType {
		return tok, p.unexpected(tok, tokType.String())
	}
	p.advance()
	return tok, nil
}

func (p *Parser) unexpected(tok Token, want string) error {
	if tok.Type == TokenError {
		return fmt.Errorf("%w: invalid input %q at position %d", ErrSyntax, tok.Value, tok.Pos)
	}
	got := tok.Type.String()
	if tok.Value != "" {
		got = fmt.Sprintf("%q", tok.Value)
	}
	return fmt.Errorf("%w: expected %s at position %d, got %s", ErrSyntax, want, tok.Pos, got)
}

// Parse parses a single expression.
//
//	r, err := parser.Parse("numbers + prefix('modified_', numbers) as total")
func Parse(input string) (drill.Reader, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	tokens := Tokenize(input)
	if err := validateTokens(tokens); err != nil {
		return nil, err
	}

	p := NewParser(tokens)
	if p.current().Type == TokenEOF {
		return nil, fmt.Errorf("%w: empty expression", ErrSyntax)
	}
	r, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if tok := p.current(); tok.Type != TokenEOF {
		return nil, p.unexpected(tok, "end of input")
	}
	return r, nil
}

// ParseList parses every input. All failures are reported together.
func ParseList(inputs []string) ([]drill.Reader, error) {
	readers := make([]drill.Reader, 0, len(inputs))
	var errs error
	for _, input := range inputs {
		r, err := Parse(input)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%q: %w", input, err))
			continue
		}
		readers = append(readers, r)
	}
	if errs != nil {
		return nil, errs
	}
	return readers, nil
}

// parseExpression parses an optionally aliased expression
func (p *Parser) parseExpression() (drill.Reader, error) {
	if err := p.depth.enter(); err != nil {
		return nil, err
	}
	defer p.depth.exit()

	r, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.current().Type != TokenAs {
		return r, nil
	}
	p.advance()
	tok := p.current()
	if tok.Type != TokenIdent && tok.Type != TokenQuotedIdent {
		return nil, p.unexpected(tok, "alias name")
	}
	p.advance()
	return r.Alias(tok.Value), nil
}

// binaryLevel parses one left-associative precedence level
func (p *Parser) binaryLevel(next func() (drill.Reader, error), ops map[TokenType]query.BinaryOp) (drill.Reader, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := ops[p.current().Type]
		if !ok {
			return left, nil
		}
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = drill.Combine(left, right, op, false)
	}
}

var (
	orOps   = map[TokenType]query.BinaryOp{TokenOr: query.OpOr, TokenPipe: query.OpOr}
	xorOps  = map[TokenType]query.BinaryOp{TokenCaret: query.OpXor}
	andOps  = map[TokenType]query.BinaryOp{TokenAnd: query.OpAnd, TokenAmp: query.OpAnd}
	termOps = map[TokenType]query.BinaryOp{TokenPlus: query.OpAdd, TokenMinus: query.OpSub}
	compOps = map[TokenType]query.BinaryOp{
		TokenEqual:        query.OpEq,
		TokenNotEqual:     query.OpNe,
		TokenLess:         query.OpLt,
		TokenLessEqual:    query.OpLe,
		TokenGreater:      query.OpGt,
		TokenGreaterEqual: query.OpGe,
	}
	factorOps = map[TokenType]query.BinaryOp{
		TokenStar:        query.OpMul,
		TokenSlash:       query.OpTrueDiv,
		TokenDoubleSlash: query.OpFloorDiv,
		TokenPercent:     query.OpMod,
	}
)

func (p *Parser) parseOr() (drill.Reader, error) {
	return p.binaryLevel(p.parseXor, orOps)
}

func (p *Parser) parseXor() (drill.Reader, error) {
	return p.binaryLevel(p.parseAnd, xorOps)
}

func (p *Parser) parseAnd() (drill.Reader, error) {
	return p.binaryLevel(p.parseNot, andOps)
}

// parseNot handles the keyword form of logical negation
func (p *Parser) parseNot() (drill.Reader, error) {
	if p.current().Type != TokenNot {
		return p.parseComparison()
	}
	p.advance()
	if err := p.depth.enter(); err != nil {
		return nil, err
	}
	defer p.depth.exit()

	operand, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	return operand.Invert(), nil
}

// parseComparison allows at most one comparison operator; a < b < c is
// rejected rather than silently grouped
func (p *Parser) parseComparison() (drill.Reader, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	op, ok := compOps[p.current().Type]
	if !ok {
		return left, nil
	}
	p.advance()
	right, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if tok := p.current(); isComparison(tok.Type) {
		return nil, fmt.Errorf("%w: chained comparison at position %d", ErrSyntax, tok.Pos)
	}
	return drill.Combine(left, right, op, false), nil
}

func isComparison(t TokenType) bool {
	_, ok := compOps[t]
	return ok
}

func (p *Parser) parseTerm() (drill.Reader, error) {
	return p.binaryLevel(p.parseFactor, termOps)
}

func (p *Parser) parseFactor() (drill.Reader, error) {
	return p.binaryLevel(p.parseUnary, factorOps)
}

// parseUnary handles prefix - + ~
func (p *Parser) parseUnary() (drill.Reader, error) {
	tok := p.current()
	switch tok.Type {
	case TokenMinus, TokenPlus, TokenTilde:
	default:
		return p.parsePower()
	}
	p.advance()
	if err := p.depth.enter(); err != nil {
		return nil, err
	}
	defer p.depth.exit()

	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case TokenMinus:
		return operand.Neg(), nil
	case TokenPlus:
		return operand.Pos(), nil
	default:
		return operand.Invert(), nil
	}
}

// parsePower handles right-associative **. The exponent may carry a unary
// sign, so 2 ** -1 parses.
func (p *Parser) parsePower() (drill.Reader, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.current().Type != TokenPower {
		return base, nil
	}
	p.advance()
	exponent, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return base.Pow(exponent), nil
}

// parsePrimary parses literals, fields, calls and parenthesized expressions
func (p *Parser) parsePrimary() (drill.Reader, error) {
	tok := p.current()
	switch tok.Type {
	case TokenNumber:
		p.advance()
		value, err := parseNumber(tok.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid number %q at position %d", ErrSyntax, tok.Value, tok.Pos)
		}
		return drill.Pure(value), nil

	case TokenString:
		p.advance()
		return drill.Pure(tok.Value), nil

	case TokenBool:
		p.advance()
		return drill.Pure(strings.EqualFold(tok.Value, "true")), nil

	case TokenNull:
		p.advance()
		return drill.Pure(nil), nil

	case TokenQuotedIdent:
		p.advance()
		return drill.NewField(tok.Value).Reader(), nil

	case TokenIdent:
		p.advance()
		if p.current().Type == TokenLeftParen {
			return p.parseCall(tok)
		}
		return drill.NewField(tok.Value).Reader(), nil

	case TokenLeftParen:
		p.advance()
		r, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
		return r, nil
	}
	return nil, p.unexpected(tok, "expression")
}

// parseCall parses name(args...). The opening parenthesis is current.
func (p *Parser) parseCall(name Token) (drill.Reader, error) {
	p.advance() // skip (

	switch strings.ToLower(name.Value) {
	case "prefix":
		prefix, err := p.expect(TokenString)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenComma); err != nil {
			return nil, err
		}
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
		return drill.UsePrefix(prefix.Value)(inner), nil

	case "noprefix":
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
		return drill.NoPrefix(inner), nil

	case "prefix_len":
		if _, err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
		return drill.Asks(func(env *drill.Environment) any {
			return len(env.Prefix())
		}), nil
	}

	fn, ok := query.LookupFunction(name.Value)
	if !ok {
		return nil, fmt.Errorf("%w: %s at position %d", query.ErrUnknownFunction, name.Value, name.Pos)
	}

	var args []any
	if p.current().Type != TokenRightParen {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.current().Type != TokenComma {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}

	if len(args) < fn.MinArity() || (fn.MaxArity() >= 0 && len(args) > fn.MaxArity()) {
		return nil, fmt.Errorf("%w: %s takes %s, got %d at position %d", ErrSyntax, fn.Name(), arityString(fn), len(args), name.Pos)
	}
	return drill.Call(fn.Name(), args...), nil
}

func arityString(fn query.Function) string {
	switch {
	case fn.MaxArity() < 0:
		return fmt.Sprintf("at least %d arguments", fn.MinArity())
	case fn.MinArity() == fn.MaxArity():
		return fmt.Sprintf("%d arguments", fn.MinArity())
	default:
		return fmt.Sprintf("%d to %d arguments", fn.MinArity(), fn.MaxArity())
	}
}

// parseNumber parses integer and decimal literals
func parseNumber(s string) (any, error) {
	if strings.Contains(s, ".") {
		return strconv.ParseFloat(s, 64)
	}
	return strconv.ParseInt(s, 10, 64)
}
