package lexer

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/queercat/silly/parser/token"
)

// Single-character operator symbols.  Each lexes as its own SYMBOL token
// regardless of what follows it.
const punctSymbols = "+-/*^@'$"

type Lexer struct {
	scanner *token.Scanner
	ch      rune // current unicode rune
	readErr error
}

func New(s *token.Scanner) *Lexer {
	return &Lexer{scanner: s}
}

func (lex *Lexer) NextToken() *token.Token {
	if lex.readErr != nil {
		return lex.emitError(lex.readErr, true)
	}
	lex.readErr = lex.skipWhitespace()
	if lex.readErr != nil {
		return lex.emitError(lex.readErr, true)
	}
	if err := lex.readChar(); err != nil {
		return lex.emitError(err, true)
	}
	switch {
	case lex.ch == '(':
		return lex.scanner.EmitToken(token.PAREN_L)
	case lex.ch == ')':
		return lex.scanner.EmitToken(token.PAREN_R)
	case lex.ch == '"':
		return lex.readString()
	case isPunct(lex.ch):
		return lex.scanner.EmitToken(token.SYMBOL)
	case isDigit(lex.ch):
		return lex.readNumber()
	case isLetter(lex.ch):
		return lex.readSymbol()
	default:
		return lex.errorf("unrecognized character %q", lex.ch)
	}
}

// readString consumes a string literal verbatim, escape markers included,
// through its closing quote.  Decoding escape pairs is the parser's job.
func (lex *Lexer) readString() *token.Token {
	for {
		err := lex.readChar()
		if err == io.EOF {
			return lex.emit(token.ERROR, "unterminated string literal")
		}
		if err != nil {
			return lex.emitError(err, false)
		}
		switch lex.ch {
		case '"':
			return lex.scanner.EmitToken(token.STRING)
		case '\\':
			err := lex.readChar()
			if err == io.EOF {
				return lex.emit(token.ERROR, "unterminated string literal")
			}
			if err != nil {
				return lex.emitError(err, false)
			}
		}
	}
}

// readNumber extends a run of digits.  There are no signs, decimal points, or
// exponents in numeric literals.
func (lex *Lexer) readNumber() *token.Token {
	for isDigit(lex.peekRune()) {
		if err := lex.readChar(); err != nil {
			return lex.emitError(err, false)
		}
	}
	return lex.scanner.EmitToken(token.NUMBER)
}

// readSymbol extends a word symbol.  After the leading letter a symbol may
// contain letters, digits, and hyphens.
func (lex *Lexer) readSymbol() *token.Token {
	for isWord(lex.peekRune()) {
		if err := lex.readChar(); err != nil {
			return lex.emitError(err, false)
		}
	}
	return lex.scanner.EmitToken(token.SYMBOL)
}

func (lex *Lexer) emit(typ token.Type, text string) *token.Token {
	tok := &token.Token{
		Type:   typ,
		Text:   text,
		Source: lex.scanner.LocStart(),
	}
	lex.scanner.Ignore()
	return tok
}

func (lex *Lexer) emitError(err error, expectEOF bool) *token.Token {
	if err == io.EOF {
		if expectEOF {
			return lex.emit(token.EOF, "")
		}
		return lex.emit(token.ERROR, "unexpected EOF")
	}
	return lex.emit(token.ERROR, err.Error())
}

func (lex *Lexer) errorf(format string, v ...interface{}) *token.Token {
	return lex.emit(token.ERROR, fmt.Sprintf(format, v...))
}

func (lex *Lexer) skipWhitespace() error {
	for isSpace(lex.peekRune()) {
		if err := lex.readChar(); err != nil {
			return err
		}
	}
	lex.scanner.Ignore()
	return nil
}

func (lex *Lexer) peekRune() rune {
	r, _ := lex.scanner.Peek()
	return r
}

func (lex *Lexer) readChar() error {
	lex.readErr = lex.scanner.ScanRune()
	if lex.readErr != nil {
		return lex.readErr
	}
	lex.ch = lex.scanner.Rune()
	return nil
}

// isSpace reports whether c separates tokens.  Whitespace is exactly space,
// tab, newline, and carriage return.
func isSpace(c rune) bool {
	switch c {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

func isPunct(c rune) bool {
	return strings.ContainsRune(punctSymbols, c)
}

func isLetter(c rune) bool {
	return unicode.IsLetter(c)
}

func isWord(c rune) bool {
	return unicode.IsLetter(c) || isDigit(c) || c == '-'
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}
