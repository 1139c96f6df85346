// Package rpncalc evaluates arithmetic expressions by converting them to
// reverse Polish notation.
//
// An expression is scanned into tokens, reordered into postfix form with the
// shunting-yard algorithm, and reduced on a value stack. The operators are
// + - * / and ^, with ** as a synonym for ^. Parentheses group. A - directly
// preceding a digit is a sign unless it follows a number, so "2 - -2" is 4
// and "2 * -2" is -4. That includes a - after a close parenthesis: "(1)-2" is
// (1) next to -2, which is an error, while "(1) - 2" is -1. SubAfterParen
// reads the first form as a subtraction too.
//
// All operators associate to the left on ties, including ^: "2^3^2" is
// "(2^3)^2". Pass RightAssocPow to Parse to get the conventional reading.
//
// Evaluate computes in float64 and follows IEEE-754 for division by zero and
// similar cases. A Context evaluates the same postfix form with *big.Float at
// any precision.
package rpncalc
