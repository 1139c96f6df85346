package rpncalc

import "strings"

// Postfix is an expression in reverse Polish notation: every operator
// follows its operands. It contains only TokenNum and TokenOp tokens.
type Postfix []Token

// String formats the postfix expression with tokens separated by spaces.
func (p Postfix) String() string {
	var b strings.Builder
	for i, tok := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}

// Parse tokenizes an expression and converts it to postfix form. The given
// options are applied in order.
func Parse(src string, opts ...ParseOption) (Postfix, error) {
	toks, err := Tokenize(src, opts...).All()
	if err != nil {
		return nil, err
	}
	return Transform(toks, opts...)
}

// Transform reorders infix tokens into postfix form using the shunting-yard
// algorithm. Any TokenEnd or unrecognized token, including an operator token
// with no valid operator, is ignored.
func Transform(toks []Token, opts ...ParseOption) (Postfix, error) {
	p := parseopts(opts)
	out := make(Postfix, 0, len(toks))
	var ops []Token
	for _, tok := range toks {
		switch tok.Kind {
		case TokenNum:
			out = append(out, tok)
		case TokenOp:
			if !tok.Op.valid() {
				continue
			}
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.Kind != TokenOp || !tok.Op.yields(top.Op, p.rpow) {
					break
				}
				out = append(out, top)
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, tok)
		case TokenOpen:
			ops = append(ops, tok)
		case TokenClose:
			for {
				if len(ops) == 0 {
					return nil, &BracketError{Col: tok.Pos}
				}
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if top.Kind == TokenOpen {
					break
				}
				out = append(out, top)
			}
		}
	}
	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if top.Kind == TokenOpen {
			return nil, &BracketError{Col: top.Pos, Open: true}
		}
		out = append(out, top)
	}
	return out, nil
}
