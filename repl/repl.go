// Package repl implements an interactive read loop for silly environments.
package repl

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"

	"github.com/queercat/silly/lisp"
	"github.com/queercat/silly/parser/lexer"
	"github.com/queercat/silly/parser/rdparser"
	"github.com/queercat/silly/parser/token"
)

// RunRepl reads expressions from an interactive prompt and evaluates them
// against env until input is exhausted.  Completed forms print their value;
// parse and evaluation errors are reported on the runtime's stderr and the
// loop continues.  A form spanning multiple lines is read under a
// continuation prompt.
func RunRepl(env *lisp.LEnv, prompt string) {
	rl, err := readline.New(prompt)
	if err != nil {
		fmt.Fprintln(env.Runtime.Stderr, "repl:", err)
		return
	}
	defer rl.Close()
	contPrompt := strings.Repeat(" ", len(prompt)) // prompt had better be ascii...

	var p *rdparser.Interactive
	p = rdparser.NewInteractive(func() []*token.Token {
		for {
			if p.IsParsing() {
				rl.SetPrompt(contPrompt)
			} else {
				rl.SetPrompt(prompt)
			}
			line, err := rl.Readline()
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					return endTokens()
				}
				// Discard the buffered form by forcing a parse error.
				return errorTokens("interrupted")
			}
			if err != nil {
				return endTokens()
			}
			toks := lexLine(line)
			if len(toks) == 0 {
				continue
			}
			return toks
		}
	})

	for !p.IsEOF() {
		expr, err := p.ParseExpression()
		if err != nil {
			fmt.Fprintln(env.Runtime.Stderr, err)
			continue
		}
		v := env.Eval(expr)
		if v.Type == lisp.LError {
			fmt.Fprintln(env.Runtime.Stderr, lisp.GoError(v))
			continue
		}
		fmt.Fprintln(env.Runtime.Stdout, v)
	}
}

// lexLine scans one line of input into tokens, excluding the line's
// trailing EOF so that an open form keeps reading on the next line.  A scan
// error truncates the line; the parser reports it.
func lexLine(line string) []*token.Token {
	lex := lexer.New(token.NewScanner("repl", strings.NewReader(line)))
	var toks []*token.Token
	for {
		tok := lex.NextToken()
		if tok.Type == token.EOF {
			return toks
		}
		toks = append(toks, tok)
		if tok.Type == token.ERROR {
			return toks
		}
	}
}

func endTokens() []*token.Token {
	return []*token.Token{{Type: token.EOF, Source: &token.Location{File: "repl"}}}
}

func errorTokens(text string) []*token.Token {
	return []*token.Token{{Type: token.ERROR, Text: text, Source: &token.Location{File: "repl"}}}
}
