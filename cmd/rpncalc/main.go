package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// errFailed reports that at least one expression failed. The failure has
// already been shown to the user, so main only sets the exit status.
var errFailed = errors.New("evaluation failed")

func main() {
	log.SetFlags(0)
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			log.Print(err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rpncalc [flags] [expression...]",
		Short: "Evaluate arithmetic expressions",
		Long: `rpncalc evaluates arithmetic expressions with + - * / ^ (or **) and parentheses.

With arguments, the arguments are joined into one expression. Without
arguments, expressions are read interactively from a terminal, or from
--in or standard input otherwise. Use -- before an expression that starts
with a minus sign.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		RunE:          runCalc,
	}

	f := root.Flags()
	f.StringP("fmt", "f", "%g", "result formatting verb")
	f.IntP("prec", "p", 0, "precision of calculations in bits (0 for float64)")
	f.Bool("echo", false, "print each expression alongside its result")
	f.Bool("rpn", false, "print the postfix form of each expression")
	f.Bool("right-pow", false, "make ^ associate to the right")
	f.Bool("paren-sub", false, "read - after a close parenthesis as subtraction")
	f.BoolP("interactive", "i", false, "read expressions interactively")
	f.BoolP("lines", "n", false, "evaluate each input line as a separate expression")
	f.String("in", "", "input file (- for stdin)")
	f.IntP("jobs", "j", 0, "concurrent evaluations with --lines (default GOMAXPROCS)")

	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize errors (auto|on|off)")
	pf.String("config", "", "config file (default $XDG_CONFIG_HOME/rpncalc/config.toml)")

	root.AddCommand(newTokensCmd(), newPostfixCmd(), newVersionCmd())
	return root
}

func runCalc(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	c, err := newCalculator(s)
	if err != nil {
		return err
	}
	p := newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), s)

	fl := cmd.Flags()
	interactive, _ := fl.GetBool("interactive")
	lines, _ := fl.GetBool("lines")
	inname, _ := fl.GetString("in")

	switch {
	case len(args) > 0:
		if inname != "" || interactive || lines {
			return fmt.Errorf("expression arguments cannot be combined with --in, --interactive, or --lines")
		}
		return p.report(c.eval(strings.Join(args, " ")))
	case interactive, inname == "" && stdinIsTerminal():
		return repl(cmd.InOrStdin(), cmd.OutOrStdout(), stdinIsTerminal(), c, p)
	}

	in, err := openInput(inname, cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer in.Close()
	if !lines {
		b, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		return p.report(c.eval(string(b)))
	}
	srcs, err := readLines(in)
	if err != nil {
		return err
	}
	results, err := evalLines(cmd.Context(), c, srcs, s.Jobs)
	if err != nil {
		return err
	}
	return p.report(results...)
}

// openInput opens the named input file. An empty name or "-" is stdin.
func openInput(name string, stdin io.Reader) (io.ReadCloser, error) {
	if name == "" || name == "-" {
		return io.NopCloser(stdin), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	return f, nil
}

var stdinIsTerminal = func() bool { return isTerminal(os.Stdin) }

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
