package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/rpncalc/rpncalc"
)

// printer writes results to out and errors to errw.
type printer struct {
	out, errw io.Writer
	verb      string
	echo, rpn bool
	bad       *color.Color
}

func newPrinter(out, errw io.Writer, s settings) *printer {
	bad := color.New(color.FgRed, color.Bold)
	if useColor(s.Color, os.Stderr) {
		bad.EnableColor()
	} else {
		bad.DisableColor()
	}
	return &printer{
		out:  out,
		errw: errw,
		verb: s.Format,
		echo: s.Echo,
		rpn:  s.RPN,
		bad:  bad,
	}
}

// useColor decides whether to colorize output to f for a color mode.
func useColor(mode string, f *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

// report prints each outcome in order. The result is errFailed if any of
// them failed.
func (p *printer) report(outs ...outcome) error {
	var err error
	for _, o := range outs {
		p.print(o)
		if o.err != nil {
			err = errFailed
		}
	}
	return err
}

func (p *printer) print(o outcome) {
	if p.rpn && o.rpn != nil {
		fmt.Fprintf(p.out, "rpn: %v\n", o.rpn)
	}
	if o.err != nil {
		// Error columns count from the start of the source, so only the
		// end may be trimmed.
		p.failure(strings.TrimRight(o.src, "\r\n"), o.err)
		return
	}
	r := fmt.Sprintf(p.verb, o.val)
	if p.echo {
		fmt.Fprintf(p.out, "%s = %s\n", strings.TrimSpace(o.src), r)
		return
	}
	fmt.Fprintln(p.out, r)
}

// failure prints an error, with a caret under the offending column when the
// error has one.
func (p *printer) failure(src string, err error) {
	p.bad.Fprint(p.errw, "error:")
	fmt.Fprintf(p.errw, " %v\n", err)
	src = strings.ReplaceAll(src, "\t", " ")
	if mark := caret(src, err); mark != "" {
		fmt.Fprintf(p.errw, "  %s\n  %s\n", src, p.bad.Sprint(mark))
	}
}

// caret returns a line with a ^ under the column of err in src. The result
// is empty if err has no position or src spans multiple lines.
func caret(src string, err error) string {
	var ierr rpncalc.InputError
	if !errors.As(err, &ierr) || strings.Contains(src, "\n") {
		return ""
	}
	rs := []rune(src)
	col := ierr.Pos()
	if col < 1 || col > len(rs)+1 {
		return ""
	}
	return strings.Repeat(" ", runewidth.StringWidth(string(rs[:col-1]))) + "^"
}
