package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sentinel failure kinds. The GUI treats every failure the same way; tests
// and logs tell them apart with errors.Is.
var (
	ErrParse   = errors.New("parse error")
	ErrReject  = errors.New("unsupported expression")
	ErrArith   = errors.New("arithmetic error")
	ErrLiteral = errors.New("unsupported literal")
)

// symbolReplacer maps the display glyphs produced by the button grid to
// canonical operator characters before lexing.
var symbolReplacer = strings.NewReplacer(
	"×", "*",
	"÷", "/",
	"−", "-",
	"^", "**",
)

func sanitize(expr string) string {
	s := symbolReplacer.Replace(expr)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Evaluate computes the numeric value of an arithmetic expression. It
// accepts integer and decimal literals, the binary operators + - * / % **,
// unary sign, and parentheses; anything else fails. The input string is
// never mutated and no general-purpose evaluator is involved.
//
// An empty (or whitespace-only) expression evaluates to the integer 0.
// That is a convenience for the calculator display, not a mathematical
// claim about empty input.
func Evaluate(expr string) (Number, error) {
	s := sanitize(expr)
	if s == "" {
		return Int(0), nil
	}
	toks, err := lex(s)
	if err != nil {
		return Number{}, err
	}
	p := &parser{toks: toks}
	root, err := p.parseSum()
	if err != nil {
		return Number{}, err
	}
	if p.cur().kind != tokEOF {
		return Number{}, fmt.Errorf("%w: unexpected %q", ErrParse, p.cur().text)
	}
	return root.eval()
}

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokNumber
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPercent
	tokPow
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	num  Number
}

// lex tokenizes a sanitized expression. Characters outside the closed
// grammar (letters, commas, brackets, quotes) are rejected here, before
// any parsing happens.
func lex(s string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(s) {
		c := s[i]
		switch c {
		case '+':
			toks = append(toks, token{kind: tokPlus, text: "+"})
			i++
		case '-':
			toks = append(toks, token{kind: tokMinus, text: "-"})
			i++
		case '*':
			if i+1 < len(s) && s[i+1] == '*' {
				toks = append(toks, token{kind: tokPow, text: "**"})
				i += 2
			} else {
				toks = append(toks, token{kind: tokStar, text: "*"})
				i++
			}
		case '/':
			toks = append(toks, token{kind: tokSlash, text: "/"})
			i++
		case '%':
			toks = append(toks, token{kind: tokPercent, text: "%"})
			i++
		case '(':
			toks = append(toks, token{kind: tokLParen, text: "("})
			i++
		case ')':
			toks = append(toks, token{kind: tokRParen, text: ")"})
			i++
		default:
			if c == '.' || (c >= '0' && c <= '9') {
				start := i
				for i < len(s) && (s[i] == '.' || (s[i] >= '0' && s[i] <= '9')) {
					i++
				}
				txt := s[start:i]
				n, err := parseLiteral(txt)
				if err != nil {
					return nil, err
				}
				toks = append(toks, token{kind: tokNumber, text: txt, num: n})
				break
			}
			r, _ := utf8.DecodeRuneInString(s[i:])
			return nil, fmt.Errorf("%w: disallowed character %q", ErrReject, r)
		}
	}
	return append(toks, token{kind: tokEOF}), nil
}

// parseLiteral converts a literal to an exact integer when it has no
// decimal point and a float otherwise. Integer literals beyond int64 fall
// back to float.
func parseLiteral(txt string) (Number, error) {
	if !strings.ContainsRune(txt, '.') {
		if v, err := strconv.ParseInt(txt, 10, 64); err == nil {
			return Int(v), nil
		}
	}
	f, err := strconv.ParseFloat(txt, 64)
	if err != nil {
		return Number{}, fmt.Errorf("%w: %q", ErrLiteral, txt)
	}
	return Float(f), nil
}

// node is the closed syntax tree built per evaluation: a literal, a signed
// operand, or a binary operation. The parser can produce nothing else.
type node interface {
	eval() (Number, error)
}

type litNode struct {
	v Number
}

type unaryNode struct {
	op tokenKind
	x  node
}

type binaryNode struct {
	op          tokenKind
	left, right node
}

func (n litNode) eval() (Number, error) { return n.v, nil }

func (n unaryNode) eval() (Number, error) {
	v, err := n.x.eval()
	if err != nil {
		return Number{}, err
	}
	if n.op == tokMinus {
		return v.Neg(), nil
	}
	return v, nil
}

func (n binaryNode) eval() (Number, error) {
	l, err := n.left.eval()
	if err != nil {
		return Number{}, err
	}
	r, err := n.right.eval()
	if err != nil {
		return Number{}, err
	}
	switch n.op {
	case tokPlus:
		return l.Add(r), nil
	case tokMinus:
		return l.Sub(r), nil
	case tokStar:
		return l.Mul(r), nil
	case tokSlash:
		return l.Div(r)
	case tokPercent:
		return l.Mod(r)
	case tokPow:
		return l.Pow(r)
	}
	return Number{}, fmt.Errorf("%w: unknown operator", ErrParse)
}

type parser struct {
	toks []token
	i    int
}

func (p *parser) cur() token { return p.toks[p.i] }

func (p *parser) next() {
	if p.i < len(p.toks)-1 {
		p.i++
	}
}

func (p *parser) parseSum() (node, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for p.cur().kind == tokPlus || p.cur().kind == tokMinus {
		op := p.cur().kind
		p.next()
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseProduct() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur().kind == tokStar || p.cur().kind == tokSlash || p.cur().kind == tokPercent {
		op := p.cur().kind
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
	return left, nil
}

// parseUnary sits above parsePower so that ** binds tighter than a leading
// sign: -2**2 is -(2**2).
func (p *parser) parseUnary() (node, error) {
	if p.cur().kind == tokPlus || p.cur().kind == tokMinus {
		op := p.cur().kind
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return unaryNode{op: op, x: x}, nil
	}
	return p.parsePower()
}

// parsePower recurses through parseUnary on the right side, making ** right
// associative and allowing a signed exponent: 2**3**2 is 2**(3**2) and
// 2**-2 is valid.
func (p *parser) parsePower() (node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.cur().kind == tokPow {
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return binaryNode{op: tokPow, left: left, right: right}, nil
	}
	return left, nil
}

func (p *parser) parsePrimary() (node, error) {
	switch p.cur().kind {
	case tokNumber:
		v := p.cur().num
		p.next()
		return litNode{v: v}, nil
	case tokLParen:
		p.next()
		ex, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.cur().kind != tokRParen {
			return nil, fmt.Errorf("%w: expected ')'", ErrParse)
		}
		p.next()
		return ex, nil
	case tokEOF:
		return nil, fmt.Errorf("%w: unexpected end of expression", ErrParse)
	default:
		return nil, fmt.Errorf("%w: unexpected %q", ErrParse, p.cur().text)
	}
}
