package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queercat/silly/parser"
)

func TestParseLVal(t *testing.T) {
	exprs, err := parser.ParseLVal("test.silly", []byte("(let x 1)\n(+ x 1)\n"))
	require.NoError(t, err)
	require.Len(t, exprs, 2)
	assert.Equal(t, "(let x 1.0)", exprs[0].String())
	assert.Equal(t, "(+ x 1.0)", exprs[1].String())
	require.NotNil(t, exprs[1].Source)
	assert.Equal(t, "test.silly", exprs[1].Source.File)
	assert.Equal(t, 2, exprs[1].Source.Line)
}

func TestParseLValError(t *testing.T) {
	_, err := parser.ParseLVal("test.silly", []byte("(let x 1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test.silly:1: syntax-error: unmatched (")

	_, err = parser.ParseLVal("test.silly", []byte(`"open`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated string literal")
}
