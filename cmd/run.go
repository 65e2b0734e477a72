package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/queercat/silly/lisp"
)

var (
	runExpression bool
	runPrint      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flags] [file ...]",
	Short: "Run silly code",
	Long:  `Run silly code supplied via the command line or source files.`,
	Run: func(cmd *cobra.Command, args []string) {
		env, err := newEnv(!rootNoCorelib)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for _, arg := range args {
			if err := runOne(env, arg); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}
	},
}

func runOne(env *lisp.LEnv, arg string) error {
	if runExpression {
		return runSource(env, "command-line", strings.NewReader(arg))
	}
	f, err := os.Open(arg)
	if err != nil {
		return err
	}
	defer f.Close()
	return runSource(env, arg, f)
}

func runSource(env *lisp.LEnv, name string, r io.Reader) error {
	exprs, err := env.Runtime.Reader.Read(name, r)
	if err != nil {
		return err
	}
	for _, expr := range exprs {
		v := env.Eval(expr)
		if lerr := lisp.GoError(v); lerr != nil {
			return lerr
		}
		if runPrint {
			fmt.Fprintln(env.Runtime.Stdout, v)
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as silly expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
}
