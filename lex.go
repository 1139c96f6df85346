package rpncalc

import (
	"errors"
	"strconv"
	"strings"
)

// Token is a single lexical element of an expression.
type Token struct {
	// Kind is the type of token.
	Kind TokenKind
	// Op is the operator for TokenOp tokens.
	Op Operator
	// Value is the parsed value of TokenNum tokens, including any sign.
	Value float64
	// Text is the source text of the token. For numbers with a sign prefix,
	// the sign is included.
	Text string
	// Pos is the 1-based rune column at which the token starts.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the type of a token.
type TokenKind int8

const (
	TokenNone TokenKind = iota
	// TokenEnd indicates the end of the input.
	TokenEnd
	// TokenNum is a decimal literal, possibly negative.
	TokenNum
	// TokenOp is a binary operator.
	TokenOp
	// TokenOpen is an open parenthesis.
	TokenOpen
	// TokenClose is a close parenthesis.
	TokenClose
)

func (k TokenKind) String() string {
	switch k {
	case TokenNone:
		return "None"
	case TokenEnd:
		return "End"
	case TokenNum:
		return "Num"
	case TokenOp:
		return "Op"
	case TokenOpen:
		return "Open"
	case TokenClose:
		return "Close"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Tokenizer scans tokens from an expression. A Tokenizer only moves forward;
// scanning the same input again requires a new Tokenizer.
type Tokenizer struct {
	src []rune
	// off is the index of the next rune to scan.
	off int
	// operand is whether the last token emitted ends an operand, in which
	// case a following - is subtraction rather than a sign. Only numbers end
	// operands unless parensub is set.
	operand  bool
	parensub bool
	done     bool
}

// Tokenize creates a tokenizer over src. Of the parse options, only
// SubAfterParen affects tokenizing.
func Tokenize(src string, opts ...ParseOption) *Tokenizer {
	p := parseopts(opts)
	return &Tokenizer{src: []rune(src), parensub: p.parensub}
}

// Next scans the next token. Runes which cannot begin a token, including
// whitespace, are skipped. Once the input is exhausted or a malformed number
// is found, every subsequent call returns a TokenEnd token with a nil error.
func (t *Tokenizer) Next() (Token, error) {
	if t.done {
		return t.end(), nil
	}
	for t.off < len(t.src) {
		r := t.src[t.off]
		tok := Token{Pos: t.off + 1}
		switch {
		case isNumStart(r):
			return t.scanNum(tok, false)
		case r == '-':
			t.off++
			if !t.operand && t.off < len(t.src) && isNumStart(t.src[t.off]) {
				return t.scanNum(tok, true)
			}
			return t.op(tok, OpSub, "-"), nil
		case r == '+':
			t.off++
			return t.op(tok, OpAdd, "+"), nil
		case r == '/':
			t.off++
			return t.op(tok, OpDiv, "/"), nil
		case r == '^':
			t.off++
			return t.op(tok, OpPow, "^"), nil
		case r == '*':
			t.off++
			if t.off < len(t.src) && t.src[t.off] == '*' {
				t.off++
				return t.op(tok, OpPow, "**"), nil
			}
			return t.op(tok, OpMul, "*"), nil
		case r == '(':
			t.off++
			tok.Kind = TokenOpen
			tok.Text = "("
			t.operand = false
			return tok, nil
		case r == ')':
			t.off++
			tok.Kind = TokenClose
			tok.Text = ")"
			t.operand = t.parensub
			return tok, nil
		default:
			t.off++
		}
	}
	t.done = true
	return t.end(), nil
}

// All scans every remaining token, not including the final TokenEnd.
func (t *Tokenizer) All() ([]Token, error) {
	var toks []Token
	for {
		tok, err := t.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenEnd {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

func (t *Tokenizer) end() Token {
	return Token{Kind: TokenEnd, Pos: len(t.src) + 1}
}

func (t *Tokenizer) op(tok Token, op Operator, text string) Token {
	tok.Kind = TokenOp
	tok.Op = op
	tok.Text = text
	t.operand = false
	return tok
}

// scanNum scans a decimal literal starting at the current offset. If neg is
// true, the sign has already been consumed.
func (t *Tokenizer) scanNum(tok Token, neg bool) (Token, error) {
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	var dig, dot bool
scan:
	for ; t.off < len(t.src); t.off++ {
		r := t.src[t.off]
		switch {
		case '0' <= r && r <= '9':
			dig = true
		case r == '.':
			if dot {
				b.WriteRune(r)
				return tok, t.error(b.String(), t.off+1)
			}
			dot = true
		default:
			break scan
		}
		b.WriteRune(r)
	}
	if !dig {
		return tok, t.error(b.String(), tok.Pos)
	}
	tok.Text = b.String()
	v, err := strconv.ParseFloat(tok.Text, 64)
	// Out of range literals become infinity or zero, like any other float
	// overflow or underflow.
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Token{Pos: tok.Pos}, t.error(tok.Text, tok.Pos)
	}
	tok.Kind = TokenNum
	tok.Value = v
	t.operand = true
	return tok, nil
}

func (t *Tokenizer) error(text string, col int) error {
	t.done = true
	return &LexError{Text: text, Col: col}
}

func isNumStart(r rune) bool {
	return '0' <= r && r <= '9' || r == '.'
}
