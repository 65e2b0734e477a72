package rdparser

import (
	"github.com/queercat/silly/parser/lexer"
	"github.com/queercat/silly/parser/token"
)

// TokenGenerator produces batches of tokens on demand, typically by
// prompting an interactive user for another line of input.  A generator
// must always return at least one token; end of input is signaled with an
// EOF token.
type TokenGenerator func() []*token.Token

// TokenSource supplies a parser's single token of lookahead over a stream
// of tokens.  The lookahead is pulled lazily, when a parse function first
// needs it.  Accepting a token never reads beyond it, so a parser that has
// consumed a complete expression leaves the underlying stream untouched
// until it is asked for the next expression.
type TokenSource struct {
	next   func() *token.Token
	Token  *token.Token // the most recently accepted token
	peek   *token.Token
	peeked bool
}

// NewTokenSource initializes and returns a new TokenSource that scans
// tokens from scanner.
func NewTokenSource(scanner *token.Scanner) *TokenSource {
	lex := lexer.New(scanner)
	return &TokenSource{next: lex.NextToken}
}

// NewTokenStreamSource initializes and returns a new TokenSource that reads
// batches of tokens from gen.
func NewTokenStreamSource(gen TokenGenerator) *TokenSource {
	s := &streamSource{gen: gen}
	return &TokenSource{next: s.nextToken}
}

type streamSource struct {
	gen TokenGenerator
	buf []*token.Token
}

func (s *streamSource) nextToken() *token.Token {
	for len(s.buf) == 0 {
		s.buf = s.gen()
	}
	tok := s.buf[0]
	s.buf = s.buf[1:]
	return tok
}

// Peek returns the lookahead token, pulling it from the stream if
// necessary.
func (s *TokenSource) Peek() *token.Token {
	if !s.peeked {
		s.peek = s.next()
		s.peeked = true
	}
	return s.peek
}

// Accept advances the source when fn matches the lookahead token.
func (s *TokenSource) Accept(fn func(*token.Token) bool) bool {
	if fn(s.Peek()) {
		s.scan()
		return true
	}
	return false
}

// AcceptType advances the source when the lookahead token has one of the
// given types.
func (s *TokenSource) AcceptType(typ ...token.Type) bool {
	for _, typ := range typ {
		if s.Peek().Type == typ {
			s.scan()
			return true
		}
	}
	return false
}

// Scan advances the source one token.
func (s *TokenSource) Scan() bool {
	if s.IsEOF() {
		s.Token = s.peek
		return false
	}
	s.scan()
	return true
}

// IsEOF returns true when the lookahead token marks the end of input.
func (s *TokenSource) IsEOF() bool {
	return s.Peek().Type == token.EOF
}

// PeekType returns the type of the lookahead token.
func (s *TokenSource) PeekType() token.Type {
	return s.Peek().Type
}

// scan accepts the lookahead token.  EOF is sticky: the source never reads
// past it, so accepting an EOF token cannot pull from an exhausted stream.
func (s *TokenSource) scan() {
	s.Token = s.Peek()
	if s.Token.Type != token.EOF {
		s.peeked = false
	}
}
