// Package expr evaluates calculator expressions.
//
// Only arithmetic is accepted: numbers, + - * / % **, parentheses, the
// functions sin, cos, tan, log and exp, and the constants π (or pi) and e.
// Anything else is rejected with a *ParseError before evaluation starts.
package expr

import (
	"fmt"
	"math"
)

// Eval parses src and computes its value.
func Eval(src string) (float64, error) {
	n, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return n.eval()
}

// Expr is a parsed expression.
type Expr struct {
	root node
}

// Parse checks src against the grammar without evaluating it.
func Parse(src string) (*Expr, error) {
	toks, err := scan(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	root, err := p.expr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, &ParseError{Pos: t.pos, Msg: fmt.Sprintf("unexpected %s", t.kind)}
	}
	return &Expr{root: root}, nil
}

// Eval computes the value of a parsed expression.
func (e *Expr) Eval() (float64, error) {
	return e.eval()
}

func (e *Expr) eval() (float64, error) {
	v, err := e.root.eval()
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: result is not finite", ErrDomain)
	}
	return v, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

// expr := term (('+' | '-') term)*
func (p *parser) expr() (node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		if op.kind != tokPlus && op.kind != tokMinus {
			return left, nil
		}
		p.next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = &binary{op: op.kind, left: left, right: right}
	}
}

// term := unary (('*' | '/' | '%') unary)*
func (p *parser) term() (node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		if op.kind != tokStar && op.kind != tokSlash && op.kind != tokPercent {
			return left, nil
		}
		p.next()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &binary{op: op.kind, left: left, right: right}
	}
}

// unary := ('+' | '-') unary | power
func (p *parser) unary() (node, error) {
	switch p.peek().kind {
	case tokPlus:
		p.next()
		return p.unary()
	case tokMinus:
		p.next()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &negate{operand: operand}, nil
	}
	return p.power()
}

// power := call ('**' unary)?
//
// The exponent is parsed as unary so that 2**-1 works and 2**3**2 groups
// to the right.
func (p *parser) power() (node, error) {
	base, err := p.call()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokPower {
		return base, nil
	}
	p.next()
	exp, err := p.unary()
	if err != nil {
		return nil, err
	}
	return &binary{op: tokPower, left: base, right: exp}, nil
}

// call := FUNC call | atom
func (p *parser) call() (node, error) {
	t := p.peek()
	if t.kind == tokIdent {
		if fn, ok := functions[t.text]; ok {
			p.next()
			if p.peek().kind == tokEOF {
				return nil, &ParseError{Pos: t.pos, Msg: t.text + " needs an argument"}
			}
			arg, err := p.call()
			if err != nil {
				return nil, err
			}
			return &apply{name: t.text, fn: fn, arg: arg}, nil
		}
	}
	return p.atom()
}

// atom := NUMBER | CONST | '(' expr ')'
func (p *parser) atom() (node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return number(t.value), nil
	case tokIdent:
		if v, ok := constants[t.text]; ok {
			return number(v), nil
		}
		return nil, &ParseError{Pos: t.pos, Msg: fmt.Sprintf("unknown name %q", t.text)}
	case tokLParen:
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, &ParseError{Pos: closing.pos, Msg: fmt.Sprintf("expected ')', found %s", closing.kind)}
		}
		return inner, nil
	}
	return nil, &ParseError{Pos: t.pos, Msg: fmt.Sprintf("unexpected %s", t.kind)}
}
