package rdparser

import (
	"io"
	"strconv"
	"strings"

	"github.com/queercat/silly/lisp"
	"github.com/queercat/silly/parser/token"
)

type reader struct {
}

// NewReader returns a lisp.Reader to use in a lisp.Runtime.
func NewReader() lisp.Reader {
	return &reader{}
}

// Read implements lisp.Reader.
func (*reader) Read(name string, r io.Reader) ([]*lisp.LVal, error) {
	s := token.NewScanner(name, r)
	p := New(s)
	return p.ParseProgram()
}

// Parser is a silly parser.  It holds a single token of lookahead and
// descends recursively into list expressions.
type Parser struct {
	parsing bool
	src     *TokenSource
}

// New initializes and returns a new Parser that reads tokens from scanner.
func New(scanner *token.Scanner) *Parser {
	return NewFromSource(NewTokenSource(scanner))
}

// NewFromSource initializes and returns a new Parser that reads tokens from
// src.
func NewFromSource(src *TokenSource) *Parser {
	return &Parser{src: src}
}

// ParseProgram parses all expressions in the token stream.
func (p *Parser) ParseProgram() ([]*lisp.LVal, error) {
	var exprs []*lisp.LVal
	for !p.src.IsEOF() {
		expr := p.ParseExpression()
		if expr.Type == lisp.LError {
			return nil, lisp.GoError(expr)
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// ParseExpression parses exactly one expression from the token stream.
func (p *Parser) ParseExpression() *lisp.LVal {
	p.parsing = true
	defer func() { p.parsing = false }()
	return p.parseExpression()
}

func (p *Parser) parseExpression() *lisp.LVal {
	switch p.PeekType() {
	case token.NUMBER:
		return p.ParseLiteralNumber()
	case token.STRING:
		return p.ParseLiteralString()
	case token.SYMBOL:
		return p.ParseSymbol()
	case token.PAREN_L:
		return p.ParseConsExpression()
	case token.EOF:
		p.ReadToken()
		return p.errorf(lisp.SyntaxError, "unexpected end of input")
	case token.ERROR, token.INVALID:
		p.ReadToken()
		return p.errorf(lisp.LexError, "%s", p.Token().Text)
	default:
		p.ReadToken()
		return p.errorf(lisp.SyntaxError, "unexpected token %s", p.Token().Type)
	}
}

// ParseLiteralNumber parses a number token.  Number literals are runs of
// digits and always produce a value, but absurd runs that overflow a double
// are rejected here rather than read as infinity.
func (p *Parser) ParseLiteralNumber() *lisp.LVal {
	if !p.expect(token.NUMBER) {
		return p.errorf(lisp.SyntaxError, "invalid number literal: %v", p.PeekType())
	}
	text := p.Token().Text
	x, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return p.errorf(lisp.SyntaxError, "invalid number literal: %v", text)
	}
	return p.Number(x)
}

// ParseLiteralString parses a string token, decoding its escape pairs.
func (p *Parser) ParseLiteralString() *lisp.LVal {
	if !p.expect(token.STRING) {
		return p.errorf(lisp.SyntaxError, "invalid string literal: %v", p.PeekType())
	}
	return p.String(unquoteString(p.Token().Text))
}

// unquoteString strips the surrounding quotes from a string token and
// decodes the escape pairs \n, \r, \", and \\.  Unrecognized escape pairs
// are preserved verbatim, marker included.
func unquoteString(text string) string {
	text = text[1 : len(text)-1]
	if !strings.ContainsRune(text, '\\') {
		return text
	}
	var buf strings.Builder
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '\\' || i == len(text)-1 {
			buf.WriteByte(c)
			continue
		}
		i++
		switch text[i] {
		case 'n':
			buf.WriteByte('\n')
		case 'r':
			buf.WriteByte('\r')
		case '"':
			buf.WriteByte('"')
		case '\\':
			buf.WriteByte('\\')
		default:
			buf.WriteByte('\\')
			buf.WriteByte(text[i])
		}
	}
	return buf.String()
}

// ParseSymbol parses a symbol token.  The boolean names produce boolean
// values instead of symbols; everything else about a symbol's meaning is
// decided during evaluation.
func (p *Parser) ParseSymbol() *lisp.LVal {
	if !p.expect(token.SYMBOL) {
		return p.errorf(lisp.SyntaxError, "invalid symbol: %v", p.PeekType())
	}
	switch text := p.Token().Text; text {
	case lisp.TrueSymbol:
		return p.Bool(true)
	case lisp.FalseSymbol:
		return p.Bool(false)
	default:
		return p.Symbol(text)
	}
}

// ParseConsExpression parses a parenthesized list of expressions.
func (p *Parser) ParseConsExpression() *lisp.LVal {
	if !p.expect(token.PAREN_L) {
		return p.errorf(lisp.SyntaxError, "invalid expression: %v", p.PeekType())
	}
	open := p.Token()
	expr := p.tokenLVal(lisp.SExpr(nil))
	for {
		if p.expect(token.EOF) {
			// report the paren left open, not the end of input
			lerr := lisp.ErrorConditionf(lisp.SyntaxError, "unmatched %s", open.Text)
			lerr.Source = open.Source
			return lerr
		}
		if p.expect(token.PAREN_R) {
			break
		}
		x := p.parseExpression()
		if x.Type == lisp.LError {
			return x
		}
		expr.Cells = append(expr.Cells, x)
	}
	return expr
}

// ReadToken advances the parser one token and returns the token consumed.
func (p *Parser) ReadToken() *token.Token {
	p.src.Scan()
	return p.src.Token
}

// Token returns the token most recently consumed.
func (p *Parser) Token() *token.Token {
	return p.src.Token
}

// PeekType returns the type of the lookahead token.
func (p *Parser) PeekType() token.Type {
	return p.src.PeekType()
}

func (p *Parser) Number(x float64) *lisp.LVal {
	return p.tokenLVal(lisp.Number(x))
}

func (p *Parser) String(s string) *lisp.LVal {
	return p.tokenLVal(lisp.String(s))
}

func (p *Parser) Symbol(sym string) *lisp.LVal {
	return p.tokenLVal(lisp.Symbol(sym))
}

func (p *Parser) Bool(b bool) *lisp.LVal {
	return p.tokenLVal(lisp.Bool(b))
}

func (p *Parser) tokenLVal(v *lisp.LVal) *lisp.LVal {
	v.Source = p.Token().Source
	return v
}

func (p *Parser) expect(typ ...token.Type) bool {
	return p.src.AcceptType(typ...)
}

func (p *Parser) errorf(condition lisp.Condition, format string, v ...interface{}) *lisp.LVal {
	lerr := lisp.ErrorConditionf(condition, format, v...)
	lerr.Source = p.Token().Source
	return lerr
}
