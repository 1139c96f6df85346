package rpncalc

import (
	"errors"
	"math/big"
	"strconv"
)

// ErrorKind classifies errors from tokenizing, parsing, and evaluation. Each
// kind is itself an error, so that errors.Is(err, MismatchedParenthesis)
// reports whether err is of that kind.
type ErrorKind int8

const (
	// MalformedNumber is a numeric literal with more than one decimal point
	// or with no digits.
	MalformedNumber ErrorKind = iota + 1
	// MismatchedParenthesis is a close parenthesis with no matching open
	// parenthesis, or an open parenthesis that is never closed.
	MismatchedParenthesis
	// InsufficientOperands is an operator applied with fewer than two
	// values available.
	InsufficientOperands
	// InvalidExpression is an expression that does not reduce to exactly one
	// value, e.g. an empty expression or two numbers with no operator.
	InvalidExpression
	// Domain is an operation with no defined result at arbitrary precision,
	// such as 0/0.
	Domain
)

func (k ErrorKind) String() string {
	switch k {
	case MalformedNumber:
		return "malformed number"
	case MismatchedParenthesis:
		return "mismatched parenthesis"
	case InsufficientOperands:
		return "insufficient operands"
	case InvalidExpression:
		return "invalid expression"
	case Domain:
		return "domain error"
	default:
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (k ErrorKind) Error() string {
	return "rpncalc: " + k.String()
}

// KindOf returns the kind of err, or 0 if err did not come from this package.
func KindOf(err error) ErrorKind {
	var k interface{ Kind() ErrorKind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	var kind ErrorKind
	if errors.As(err, &kind) {
		return kind
	}
	return 0
}

// LexError indicates an invalid numeric literal. It implements InputError.
type LexError struct {
	// Text is the literal the tokenizer was scanning when the error was
	// found, including the offending rune if there was one.
	Text string
	// Col is the column of the rune that made the literal invalid.
	Col int
}

func (err *LexError) Error() string {
	return errpos(err.Col, "malformed number "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}

func (err *LexError) Kind() ErrorKind {
	return MalformedNumber
}

func (err *LexError) Is(target error) bool {
	return target == MalformedNumber
}

// BracketError is an error indicating mismatched parentheses in the input. It
// implements InputError.
type BracketError struct {
	// Col is the position of the offending parenthesis.
	Col int
	// Open is true if the offending parenthesis is an open parenthesis with
	// no close, and false if it is a close with no open.
	Open bool
}

func (err *BracketError) Error() string {
	if err.Open {
		return errpos(err.Col, "open parenthesis with no close parenthesis")
	}
	return errpos(err.Col, "close parenthesis with no open parenthesis")
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Kind() ErrorKind {
	return MismatchedParenthesis
}

func (err *BracketError) Is(target error) bool {
	return target == MismatchedParenthesis
}

// OperandError is an error indicating an operator that did not have two
// operands available. It implements InputError.
type OperandError struct {
	// Col is the position of the operator.
	Col int
	// Op is the operator.
	Op Operator
	// Have is the number of operands that were available.
	Have int
}

func (err *OperandError) Error() string {
	return errpos(err.Col, "not enough operands for "+strconv.Quote(err.Op.String())+": have "+strconv.Itoa(err.Have)+", need 2")
}

func (err *OperandError) Pos() int {
	return err.Col
}

func (err *OperandError) Kind() ErrorKind {
	return InsufficientOperands
}

func (err *OperandError) Is(target error) bool {
	return target == InsufficientOperands
}

// StackError is an error indicating that an expression left other than one
// value after evaluation.
type StackError struct {
	// Len is the number of values left.
	Len int
}

func (err *StackError) Error() string {
	if err.Len == 0 {
		return "no expression"
	}
	return "expression has " + strconv.Itoa(err.Len) + " values with no operator between them"
}

func (err *StackError) Kind() ErrorKind {
	return InvalidExpression
}

func (err *StackError) Is(target error) bool {
	return target == InvalidExpression
}

// DomainError is an error indicating an operation whose result is undefined,
// which happens only in arbitrary-precision evaluation.
type DomainError struct {
	// Op is the operator.
	Op Operator
	// X and Y are the left and right operands.
	X, Y *big.Float
}

func (err *DomainError) Error() string {
	return "undefined result: " + err.X.String() + " " + err.Op.String() + " " + err.Y.String()
}

func (err *DomainError) Kind() ErrorKind {
	return Domain
}

func (err *DomainError) Is(target error) bool {
	return target == Domain
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information.
type InputError interface {
	error
	// Pos returns the 1-based rune column of the token that caused the
	// error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*OperandError)(nil)
)
