package rpncalc

import (
	"math/big"
)

// Evaluate parses and evaluates an expression in float64 arithmetic.
func Evaluate(src string, opts ...ParseOption) (float64, error) {
	p, err := Parse(src, opts...)
	if err != nil {
		return 0, err
	}
	return p.Eval()
}

// Eval reduces the postfix expression to a single value. Division by zero and
// similar operations produce infinities or NaN rather than errors. Operator
// tokens with no valid operator are ignored, as in Transform.
func (p Postfix) Eval() (float64, error) {
	stack := make([]float64, 0, len(p)/2+1)
	for _, tok := range p {
		switch tok.Kind {
		case TokenNum:
			stack = append(stack, tok.Value)
		case TokenOp:
			if !tok.Op.valid() {
				continue
			}
			n := len(stack)
			if n < 2 {
				return 0, &OperandError{Col: tok.Pos, Op: tok.Op, Have: n}
			}
			r, l := stack[n-1], stack[n-2]
			stack[n-2] = tok.Op.apply(l, r)
			stack = stack[:n-1]
		}
	}
	if len(stack) != 1 {
		return 0, &StackError{Len: len(stack)}
	}
	return stack[0], nil
}

// Context is a context for evaluating expressions with arbitrary precision.
// It is not safe to use a Context concurrently.
type Context struct {
	stack []*big.Float
	prec  uint
	mode  big.RoundingMode
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	precopt uint
	modeopt big.RoundingMode
)

func (precopt) ctxOption() {}
func (modeopt) ctxOption() {}

// Prec sets the precision of calculations in bits. A precision of 0 selects
// the default.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// Rounding sets the rounding mode of calculations.
func Rounding(mode big.RoundingMode) ContextOption {
	return modeopt(mode)
}

// NewContext creates a new evaluation context. If no precision is given, the
// default is 64.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{prec: 64}
	return ctx.Clone(opts...)
}

// Clone creates a copy of a context and applies options to it.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{prec: ctx.prec, mode: ctx.mode}
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil: // do nothing
		case precopt:
			if opt != 0 {
				n.prec = uint(opt)
			}
		case modeopt:
			n.mode = big.RoundingMode(opt)
		default:
			panic("rpncalc: unknown option type")
		}
	}
	return &n
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Eval reduces a postfix expression to a single value. The result is newly
// allocated and does not alias the context.
func (ctx *Context) Eval(p Postfix) (*big.Float, error) {
	ctx.stack = ctx.stack[:0]
	for _, tok := range p {
		switch tok.Kind {
		case TokenNum:
			ctx.num(ctx.push(), tok)
		case TokenOp:
			if !tok.Op.valid() {
				continue
			}
			n := len(ctx.stack)
			if n < 2 {
				return nil, &OperandError{Col: tok.Pos, Op: tok.Op, Have: n}
			}
			r := ctx.pop()
			if err := tok.Op.applyBig(ctx.top(), r); err != nil {
				return nil, err
			}
		}
	}
	if len(ctx.stack) != 1 {
		return nil, &StackError{Len: len(ctx.stack)}
	}
	return new(big.Float).Copy(ctx.stack[0]), nil
}

// push ensures a settable value on the stack.
func (ctx *Context) push() *big.Float {
	if len(ctx.stack) < cap(ctx.stack) {
		ctx.stack = ctx.stack[:len(ctx.stack)+1]
		if ctx.stack[len(ctx.stack)-1] == nil {
			ctx.stack[len(ctx.stack)-1] = new(big.Float)
		}
	} else {
		ctx.stack = append(ctx.stack, new(big.Float))
	}
	return ctx.stack[len(ctx.stack)-1].SetPrec(ctx.prec).SetMode(ctx.mode)
}

// pop removes the top from the stack and returns it. The returned value may be
// modified by the next push.
func (ctx *Context) pop() *big.Float {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (ctx *Context) top() *big.Float {
	return ctx.stack[len(ctx.stack)-1]
}

// num sets z to the value of a number token, parsing its text at the context
// precision.
func (ctx *Context) num(z *big.Float, tok Token) {
	if _, _, err := z.Parse(tok.Text, 10); err != nil {
		// Exponent overflow is the only realistic failure for text the
		// tokenizer accepted. The float64 value already has the right
		// infinity or zero.
		z.SetFloat64(tok.Value)
	}
}

// EvaluateBig parses and evaluates an expression with arbitrary precision.
// It parses with default options; to use parse options such as
// RightAssocPow, pass the result of Parse to a Context's Eval method.
func EvaluateBig(src string, opts ...ContextOption) (*big.Float, error) {
	p, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return NewContext(opts...).Eval(p)
}
