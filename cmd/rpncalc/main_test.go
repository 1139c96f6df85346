package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/rpncalc/rpncalc"
)

// run executes the command line with args and stdin, isolated from any user
// config file.
func run(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	stdinIsTerminal = func() bool { return false }
	cmd := newRootCmd()
	var out, errw bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errw)
	cmd.SetArgs(append([]string{"--color=off"}, args...))
	err = cmd.Execute()
	return out.String(), errw.String(), err
}

func TestRunArgs(t *testing.T) {
	cases := []struct {
		name string
		args []string
		out  string
	}{
		{"joined", []string{"5", "*", "(3", "+", "2)"}, "25\n"},
		{"single", []string{"5 * (3 - 2) / 2"}, "2.5\n"},
		{"neg", []string{"--", "-12 + 2"}, "-10\n"},
		{"echo", []string{"--echo", "23 ^ 2"}, "23 ^ 2 = 529\n"},
		{"fmt", []string{"--fmt", "%.3f", "1/8"}, "0.125\n"},
		{"rpn", []string{"--rpn", "1 + 2 * 3"}, "rpn: 1 2 3 * +\n7\n"},
		{"right-pow", []string{"--right-pow", "2^3^2"}, "512\n"},
		{"left-pow", []string{"2^3^2"}, "64\n"},
		{"paren-sub", []string{"--paren-sub", "(2+3)-1"}, "4\n"},
		{"paren-spaced", []string{"(2+3) - 1"}, "4\n"},
		{"prec", []string{"-p", "128", "--fmt", "%.30f", "1/3"}, "0.333333333333333333333333333333\n"},
		{"ieee", []string{"1/0"}, "+Inf\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, errs, err := run(t, "", c.args...)
			if err != nil {
				t.Fatalf("%q failed: %v\n%s", c.args, err, errs)
			}
			if out != c.out {
				t.Errorf("%q printed %q, want %q", c.args, out, c.out)
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	out, errs, err := run(t, "", "5 + )")
	if !errors.Is(err, errFailed) {
		t.Errorf("want errFailed, got %v", err)
	}
	if out != "" {
		t.Errorf("printed result %q for failed expression", out)
	}
	want := "error: 5: close parenthesis with no open parenthesis\n  5 + )\n      ^\n"
	if errs != want {
		t.Errorf("wrong error output:\n%s\nwant:\n%s", errs, want)
	}

	_, errs, err = run(t, "", "5 +")
	if !errors.Is(err, errFailed) || !strings.Contains(errs, "not enough operands") {
		t.Errorf("dangling operator gave %v: %q", err, errs)
	}

	_, errs, err = run(t, "", "(2+3)-1")
	if !errors.Is(err, errFailed) || !strings.Contains(errs, "2 values") {
		t.Errorf("(2+3)-1 without --paren-sub gave %v: %q", err, errs)
	}

	_, _, err = run(t, "", "-p", "-1", "1")
	if err == nil || errors.Is(err, errFailed) {
		t.Errorf("negative precision gave %v", err)
	}

	_, _, err = run(t, "", "--in", "-", "1")
	if err == nil {
		t.Errorf("arguments with --in should fail")
	}
}

func TestRunLines(t *testing.T) {
	in := "1+1\n\n  2*3  \n5 +\n(1 + 2) ** 2\n"
	out, errs, err := run(t, in, "--lines", "--in", "-", "-j", "2")
	if !errors.Is(err, errFailed) {
		t.Errorf("want errFailed, got %v", err)
	}
	if out != "2\n6\n9\n" {
		t.Errorf("wrong results %q", out)
	}
	if strings.Count(errs, "error:") != 1 || !strings.Contains(errs, "  5 +\n    ^\n") {
		t.Errorf("wrong errors %q", errs)
	}
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exprs.txt")
	if err := os.WriteFile(path, []byte("5 * (3 + 2)\n2 - -2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, errs, err := run(t, "", "-n", "--in", path, "--echo")
	if err != nil {
		t.Fatalf("failed: %v\n%s", err, errs)
	}
	if out != "5 * (3 + 2) = 25\n2 - -2 = 4\n" {
		t.Errorf("wrong output %q", out)
	}

	// Without --lines, the whole input is one expression.
	out, errs, err = run(t, "", "--in", path)
	if !errors.Is(err, errFailed) || out != "" {
		t.Errorf("whole file gave %q, %v", out, err)
	}
	if !strings.Contains(errs, "2 values") {
		t.Errorf("wrong error %q", errs)
	}
}

func TestRunInteractive(t *testing.T) {
	out, errs, err := run(t, "1+2\n\n(1\n2 * -2\nquit\n3\n", "-i")
	if err != nil {
		t.Fatalf("failed: %v", err)
	}
	if out != "3\n-4\n" {
		t.Errorf("wrong output %q", out)
	}
	if !strings.Contains(errs, "open parenthesis with no close") {
		t.Errorf("error not reported: %q", errs)
	}
}

func TestRunConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("format = \"%.3f\"\necho = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := run(t, "", "--config", path, "1/4")
	if err != nil {
		t.Fatal(err)
	}
	if out != "1/4 = 0.250\n" {
		t.Errorf("config not applied: %q", out)
	}
	out, _, err = run(t, "", "--config", path, "--fmt", "%g", "1/4")
	if err != nil {
		t.Fatal(err)
	}
	if out != "1/4 = 0.25\n" {
		t.Errorf("flag did not override config: %q", out)
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("colour = \"on\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := run(t, "", "--config", bad, "1"); err == nil || !strings.Contains(err.Error(), "colour") {
		t.Errorf("unknown key gave %v", err)
	}
	if _, _, err := run(t, "", "--config", filepath.Join(dir, "missing.toml"), "1"); err == nil {
		t.Errorf("missing explicit config should fail")
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--color", "off"}); err != nil {
		t.Fatal(err)
	}
	s, err := loadSettings(cmd)
	if err != nil {
		t.Fatalf("missing default config should be ignored: %v", err)
	}
	want := defaultSettings()
	want.Color = "off"
	if s != want {
		t.Errorf("got %+v, want %+v", s, want)
	}
}

func TestTokensFormats(t *testing.T) {
	out, _, err := run(t, "", "tokens", "2 ** -2")
	if err != nil {
		t.Fatal(err)
	}
	want := "   1  Num    2\n   3  Op     **\n   6  Num    -2\n"
	if out != want {
		t.Errorf("pretty tokens:\n%s\nwant:\n%s", out, want)
	}

	out, _, err = run(t, "", "tokens", "--format", "json", "2 - -2")
	if err != nil {
		t.Fatal(err)
	}
	var recs []tokenRecord
	if err := json.Unmarshal([]byte(out), &recs); err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 || recs[1].Kind != "Op" || recs[1].Prec != 1 || recs[2].Value == nil || *recs[2].Value != -2 {
		t.Errorf("wrong json records %+v", recs)
	}

	out, _, err = run(t, "", "postfix", "--format", "msgpack", "5 * (3 + 2)")
	if err != nil {
		t.Fatal(err)
	}
	recs = nil
	if err := msgpack.Unmarshal([]byte(out), &recs); err != nil {
		t.Fatal(err)
	}
	var texts []string
	for _, r := range recs {
		texts = append(texts, r.Text)
	}
	if got := strings.Join(texts, " "); got != "5 3 2 + *" {
		t.Errorf("msgpack postfix is %q", got)
	}
}

func TestPostfixCmd(t *testing.T) {
	out, _, err := run(t, "", "postfix", "--right-pow", "2^3^2")
	if err != nil {
		t.Fatal(err)
	}
	if out != "2 3 2 ^ ^\n" {
		t.Errorf("wrong postfix %q", out)
	}
	out, _, err = run(t, "", "postfix", "--paren-sub", "(1)-2")
	if err != nil || out != "1 2 -\n" {
		t.Errorf("postfix --paren-sub gave %q, %v", out, err)
	}
	_, errs, err := run(t, "", "postfix", "(1")
	if !errors.Is(err, errFailed) || !strings.Contains(errs, "  (1\n  ^\n") {
		t.Errorf("bad postfix gave %v: %q", err, errs)
	}
}

func TestCaret(t *testing.T) {
	cases := []struct {
		src  string
		err  error
		mark string
	}{
		{"5 + )", &rpncalc.BracketError{Col: 5}, "    ^"},
		{"日 + )", &rpncalc.BracketError{Col: 5}, "     ^"},
		{"1 +", &rpncalc.OperandError{Col: 3, Op: rpncalc.OpAdd, Have: 1}, "  ^"},
		{"1 2", &rpncalc.StackError{Len: 2}, ""},
		{"1\n+", &rpncalc.OperandError{Col: 3, Op: rpncalc.OpAdd, Have: 1}, ""},
		{"1", &rpncalc.BracketError{Col: 9}, ""},
	}
	for _, c := range cases {
		if got := caret(c.src, c.err); got != c.mark {
			t.Errorf("caret(%q, %v) = %q, want %q", c.src, c.err, got, c.mark)
		}
	}
}

func TestEvalLinesOrder(t *testing.T) {
	c, err := newCalculator(settings{Prec: 0})
	if err != nil {
		t.Fatal(err)
	}
	srcs := make([]string, 200)
	for i := range srcs {
		srcs[i] = fmt.Sprintf("%d * 2 + 1", i)
	}
	results, err := evalLines(context.Background(), c, srcs, 8)
	if err != nil {
		t.Fatal(err)
	}
	for i, o := range results {
		if o.err != nil || o.val != float64(2*i+1) {
			t.Errorf("line %d gave %v, %v", i, o.val, o.err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := evalLines(ctx, c, srcs, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled context gave %v", err)
	}
}
