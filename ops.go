package rpncalc

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// Operator is a binary arithmetic operator.
type Operator int8

const (
	OpNone Operator = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpPow
)

// Operators contains the runes which are considered to be operators. Two
// consecutive * are also an operator, synonymous with ^.
const Operators = "+-*/^"

func (op Operator) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "^"
	default:
		return "?"
	}
}

// Prec returns the precedence of the operator. Higher binds more tightly.
func (op Operator) Prec() int {
	switch op {
	case OpPow:
		return 3
	case OpMul, OpDiv:
		return 2
	case OpAdd, OpSub:
		return 1
	default:
		return 0
	}
}

func (op Operator) valid() bool {
	return OpAdd <= op && op <= OpPow
}

// yields reports whether op, arriving in the input, causes top to be popped
// off the operator stack first. Ties pop, which makes everything left
// associative unless rpow asks for ^ to associate right.
func (op Operator) yields(top Operator, rpow bool) bool {
	if rpow && op == OpPow && top == OpPow {
		return false
	}
	return op.Prec() <= top.Prec()
}

// apply computes l op r.
func (op Operator) apply(l, r float64) float64 {
	switch op {
	case OpAdd:
		return l + r
	case OpSub:
		return l - r
	case OpMul:
		return r * l
	case OpDiv:
		return l / r
	case OpPow:
		return math.Pow(l, r)
	default:
		panic("rpncalc: apply with invalid operator " + op.String())
	}
}

// applyBig sets l to l op r. Operations which would produce NaN are reported
// as a DomainError instead, since big.Float has no NaN.
func (op Operator) applyBig(l, r *big.Float) error {
	switch op {
	case OpAdd:
		if l.IsInf() && r.IsInf() && l.Signbit() != r.Signbit() {
			return domain(op, l, r)
		}
		l.Add(l, r)
	case OpSub:
		if l.IsInf() && r.IsInf() && l.Signbit() == r.Signbit() {
			return domain(op, l, r)
		}
		l.Sub(l, r)
	case OpMul:
		if l.IsInf() && r.Sign() == 0 || l.Sign() == 0 && r.IsInf() {
			return domain(op, l, r)
		}
		l.Mul(l, r)
	case OpDiv:
		// Guard against invalid divisions, 0/0 or inf/inf.
		if l.Sign() == 0 && r.Sign() == 0 || l.IsInf() && r.IsInf() {
			return domain(op, l, r)
		}
		l.Quo(l, r)
	case OpPow:
		return powBig(l, r)
	default:
		panic("rpncalc: applyBig with invalid operator " + op.String())
	}
	return nil
}

// powBig sets l to l^r.
func powBig(l, r *big.Float) error {
	switch {
	case r.Sign() == 0:
		l.SetInt64(1)
		return nil
	case l.IsInf() || r.IsInf():
		// Results here are only ever 0, 1, or infinite, so float64 is exact.
		x, _ := l.Float64()
		y, _ := r.Float64()
		z := math.Pow(x, y)
		if math.IsNaN(z) {
			return domain(OpPow, l, r)
		}
		l.SetFloat64(z)
		return nil
	case l.Sign() == 0:
		// The sign of zero survives only odd integer exponents.
		neg := l.Signbit() && oddInt(r)
		if r.Sign() < 0 {
			l.SetInf(neg)
		} else {
			l.SetInt64(0)
			if neg {
				l.Neg(l)
			}
		}
		return nil
	}
	neg := false
	if l.Signbit() {
		// Negative bases are only meaningful for integer exponents.
		if !r.IsInt() {
			return domain(OpPow, l, r)
		}
		neg = oddInt(r)
		l.Neg(l)
	}
	// Pow does not always leave its result in its first argument.
	z := new(big.Float).SetPrec(l.Prec()).SetMode(l.Mode())
	l.Set(bigfloat.Pow(z, l, r))
	if neg {
		l.Neg(l)
	}
	return nil
}

// oddInt reports whether x is an odd integer.
func oddInt(x *big.Float) bool {
	if x.IsInf() || !x.IsInt() {
		return false
	}
	n, _ := x.Int(nil)
	return n.Bit(0) == 1
}

// domain creates a DomainError with copies of the operands, since the
// originals belong to the evaluation stack.
func domain(op Operator, l, r *big.Float) error {
	return &DomainError{Op: op, X: new(big.Float).Copy(l), Y: new(big.Float).Copy(r)}
}
