package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/queercat/silly/lisp"
	"github.com/queercat/silly/lisp/corelib"
	"github.com/queercat/silly/parser"
	"github.com/queercat/silly/repl"
)

var rootNoCorelib bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "silly",
	Short: "An interpreter for the silly language",
	Long: `silly is a small lisp with mutable atoms, fire and forget tasks, and a
one connection at a time TCP server builtin.  Run without arguments it reads
expressions from an interactive prompt.`,
	Run: func(cmd *cobra.Command, args []string) {
		env, err := newEnv(!rootNoCorelib)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		repl.RunRepl(env, "silly> ")
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&rootNoCorelib, "no-corelib", false,
		"Do not load the embedded core library")
}

// newEnv builds a root environment ready to evaluate user source.
func newEnv(loadCore bool) (*lisp.LEnv, error) {
	env := lisp.NewEnv(nil)
	lerr := lisp.InitializeUserEnv(env, lisp.WithReader(parser.NewReader()))
	if err := lisp.GoError(lerr); err != nil {
		return nil, err
	}
	if loadCore {
		if err := lisp.GoError(corelib.LoadLibrary(env)); err != nil {
			return nil, err
		}
	}
	return env, nil
}
