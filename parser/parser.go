// Package parser provides a silly parser.
//
//	expr   := '(' <expr>* ')' | <number> | <string> | <symbol>
//	number := /[0-9]+/
//	string := '"' <strcontent> '"'
//	strcontent := /[^"]/ | '\' /./
//	symbol := [+-/*^@'$] | /\pL(\pL|[0-9]|-)*/
package parser

import (
	"bytes"

	"github.com/queercat/silly/lisp"
	"github.com/queercat/silly/parser/rdparser"
)

// NewReader returns a lisp.Reader for silly source streams.
func NewReader() lisp.Reader {
	return rdparser.NewReader()
}

// ParseLVal parses all expressions in text and returns them.
func ParseLVal(name string, text []byte) ([]*lisp.LVal, error) {
	return NewReader().Read(name, bytes.NewReader(text))
}
