package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// repl evaluates each line of in until EOF or a line reading exit or quit.
// Failed expressions are reported and the loop continues.
func repl(in io.Reader, out io.Writer, prompt bool, c *calculator, p *printer) error {
	sc := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprint(out, "> ")
		}
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}
		p.print(c.eval(line))
	}
	if prompt {
		fmt.Fprintln(out)
	}
	return sc.Err()
}
