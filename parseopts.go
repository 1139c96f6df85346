package rpncalc

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

// parsectx holds general data for parsing.
type parsectx struct {
	// rpow is whether ^ associates to the right.
	rpow bool
	// parensub is whether a close parenthesis ends an operand for the
	// purpose of reading a following -.
	parensub bool
}

type (
	rpowopt     bool
	parensubopt bool
)

// RightAssocPow makes exponentiation associate to the right, so that 2^3^2
// is 2^(3^2) = 512 rather than the default (2^3)^2 = 64. Other operators are
// unaffected.
func RightAssocPow() ParseOption {
	return rpowopt(true)
}

func (o rpowopt) parseOption(p parsectx) parsectx {
	p.rpow = bool(o)
	return p
}

// SubAfterParen makes a - directly after a close parenthesis a subtraction,
// so that (1)-2 is -1. By default only a number ends an operand, so the same
// input scans as (1) followed by the literal -2 and fails to evaluate with
// InvalidExpression.
func SubAfterParen() ParseOption {
	return parensubopt(true)
}

func (o parensubopt) parseOption(p parsectx) parsectx {
	p.parensub = bool(o)
	return p
}

// parseopts applies options in order.
func parseopts(opts []ParseOption) parsectx {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	return p
}
