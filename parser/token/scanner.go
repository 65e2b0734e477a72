package token

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/queercat/silly/parser/internal/interntoken"
)

// Scanner facilitates construction of tokens from a byte stream (io.Reader).
// The stream is buffered in full up front; silly sources are single forms or
// small library files, never large enough to warrant windowed scanning.
type Scanner struct {
	file   string
	buf    []byte
	intern *interntoken.Table

	start     int // byte offset of the current token's first rune
	startLine int // line number at start
	pos       int // byte offset one past the last scanned rune
	line      int // line number at pos
	c         rune
	readErr   error
}

// NewScanner initializes and returns a new Scanner reading from r.
func NewScanner(file string, r io.Reader) *Scanner {
	buf, err := io.ReadAll(r)
	return &Scanner{
		file:      file,
		buf:       buf,
		intern:    interntoken.NewTable(),
		line:      1,
		startLine: 1,
		readErr:   err,
	}
}

// EmitToken returns a token containing the text scanned since the last call
// to either EmitToken or Ignore.
func (s *Scanner) EmitToken(typ Type) *Token {
	tok := &Token{
		Type:   typ,
		Text:   s.Text(),
		Source: s.LocStart(),
	}
	s.Ignore()
	return tok
}

// Ignore causes the scanner to skip all text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) Ignore() {
	s.start = s.pos
	s.startLine = s.line
	if s.c == '\n' {
		s.startLine++
	}
}

// Text returns the text scanned since the last call to either EmitToken or
// Ignore.  Token text is interned so repeated symbols in a source share one
// backing string.
func (s *Scanner) Text() string {
	return s.intern.GetBytes(s.buf[s.start:s.pos])
}

// Rune returns the rune most recently scanned.  It is the last rune in a
// token returned by EmitToken.
func (s *Scanner) Rune() rune {
	return s.c
}

// Peek returns the next rune to be scanned, if there is one.  Peek returns a
// false second value at the end of input or when the input is not valid
// utf-8; the next call to ScanRune returns the underlying error.
func (s *Scanner) Peek() (rune, bool) {
	if s.pos >= len(s.buf) {
		return 0, false
	}
	c, n := utf8.DecodeRune(s.buf[s.pos:])
	if c == utf8.RuneError && n < 2 {
		return utf8.RuneError, false
	}
	return c, true
}

// ScanRune scans one utf-8 rune from the input for inclusion in the current
// token.  At the end of input ScanRune returns io.EOF, or the error that
// truncated the input.
func (s *Scanner) ScanRune() error {
	if s.pos >= len(s.buf) {
		if s.readErr != nil {
			return s.readErr
		}
		return io.EOF
	}
	c, n := utf8.DecodeRune(s.buf[s.pos:])
	if c == utf8.RuneError && n < 2 {
		return fmt.Errorf("invalid utf-8 sequence in source text at byte %d", s.pos)
	}
	if s.c == '\n' {
		s.line++
	}
	s.c = c
	s.pos += n
	return nil
}

// LocStart returns a Location referencing the beginning of the current token,
// just beyond the end of the previous token.
func (s *Scanner) LocStart() *Location {
	return &Location{
		File: s.file,
		Line: s.startLine,
		Pos:  s.start,
	}
}

// Loc returns a Location referencing the current scanner position, the last
// position of the current token.
func (s *Scanner) Loc() *Location {
	return &Location{
		File: s.file,
		Line: s.line,
		Pos:  s.pos,
	}
}
