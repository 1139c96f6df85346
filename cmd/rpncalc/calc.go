package main

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/rpncalc/rpncalc"
)

// calculator evaluates expressions with fixed options. It is safe for
// concurrent use.
type calculator struct {
	// prec is the precision in bits, or 0 to evaluate in float64.
	prec uint
	opts []rpncalc.ParseOption
}

func newCalculator(s settings) (*calculator, error) {
	prec, err := safecast.Conv[uint](s.Prec)
	if err != nil {
		return nil, fmt.Errorf("precision (%d) must not be negative: %w", s.Prec, err)
	}
	c := calculator{prec: prec}
	if s.RightPow {
		c.opts = append(c.opts, rpncalc.RightAssocPow())
	}
	if s.ParenSub {
		c.opts = append(c.opts, rpncalc.SubAfterParen())
	}
	return &c, nil
}

// outcome is the result of evaluating one expression.
type outcome struct {
	src string
	// rpn is the postfix form, if parsing succeeded.
	rpn rpncalc.Postfix
	// val is a float64 or *big.Float.
	val any
	err error
}

func (c *calculator) eval(src string) outcome {
	o := outcome{src: src}
	o.rpn, o.err = rpncalc.Parse(src, c.opts...)
	if o.err != nil {
		return o
	}
	if c.prec == 0 {
		v, err := o.rpn.Eval()
		if err != nil {
			o.err = err
			return o
		}
		o.val = v
		return o
	}
	v, err := rpncalc.NewContext(rpncalc.Prec(c.prec)).Eval(o.rpn)
	if err != nil {
		o.err = err
		return o
	}
	o.val = v
	return o
}
