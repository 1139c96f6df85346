package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/rpncalc/rpncalc"
)

func newTokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens [flags] expression...",
		Short: "Print the tokens of an expression",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := strings.Join(args, " ")
			var opts []rpncalc.ParseOption
			if psub, _ := cmd.Flags().GetBool("paren-sub"); psub {
				opts = append(opts, rpncalc.SubAfterParen())
			}
			toks, err := rpncalc.Tokenize(src, opts...).All()
			if err != nil {
				return dumpFailure(cmd, src, err)
			}
			format, _ := cmd.Flags().GetString("format")
			return writeTokens(cmd.OutOrStdout(), format, toks)
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	cmd.Flags().Bool("paren-sub", false, "read - after a close parenthesis as subtraction")
	return cmd
}

func newPostfixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "postfix [flags] expression...",
		Short: "Print the postfix form of an expression",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := strings.Join(args, " ")
			var opts []rpncalc.ParseOption
			if rpow, _ := cmd.Flags().GetBool("right-pow"); rpow {
				opts = append(opts, rpncalc.RightAssocPow())
			}
			if psub, _ := cmd.Flags().GetBool("paren-sub"); psub {
				opts = append(opts, rpncalc.SubAfterParen())
			}
			p, err := rpncalc.Parse(src, opts...)
			if err != nil {
				return dumpFailure(cmd, src, err)
			}
			format, _ := cmd.Flags().GetString("format")
			if format == "pretty" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), p)
				return err
			}
			return writeTokens(cmd.OutOrStdout(), format, p)
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	cmd.Flags().Bool("right-pow", false, "make ^ associate to the right")
	cmd.Flags().Bool("paren-sub", false, "read - after a close parenthesis as subtraction")
	return cmd
}

// dumpFailure reports an error the same way expression evaluation does.
func dumpFailure(cmd *cobra.Command, src string, err error) error {
	s, serr := loadSettings(cmd)
	if serr != nil {
		return serr
	}
	newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), s).failure(src, err)
	return errFailed
}

// tokenRecord is the serialized form of a token.
type tokenRecord struct {
	Kind string `json:"kind" msgpack:"kind"`
	Text string `json:"text" msgpack:"text"`
	Pos  int    `json:"pos" msgpack:"pos"`
	Prec int    `json:"prec,omitempty" msgpack:"prec,omitempty"`
	// Value is omitted for non-numbers and for infinite literals, which JSON
	// cannot represent. Text always has the literal.
	Value *float64 `json:"value,omitempty" msgpack:"value,omitempty"`
}

func records(toks []rpncalc.Token) []tokenRecord {
	recs := make([]tokenRecord, 0, len(toks))
	for _, tok := range toks {
		r := tokenRecord{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Pos:  tok.Pos,
		}
		switch tok.Kind {
		case rpncalc.TokenOp:
			r.Prec = tok.Op.Prec()
		case rpncalc.TokenNum:
			if !math.IsInf(tok.Value, 0) {
				v := tok.Value
				r.Value = &v
			}
		}
		recs = append(recs, r)
	}
	return recs
}

func writeTokens(w io.Writer, format string, toks []rpncalc.Token) error {
	switch format {
	case "pretty":
		for _, tok := range toks {
			if _, err := fmt.Fprintf(w, "%4d  %-5s  %s\n", tok.Pos, tok.Kind, tok.Text); err != nil {
				return err
			}
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records(toks))
	case "msgpack":
		return msgpack.NewEncoder(w).Encode(records(toks))
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
