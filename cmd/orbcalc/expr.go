package main

import (
	"fmt"
	"math/big"

	"github.com/joeycumines/orb"
)

var unaryFuncs = map[string]func(z, x *orb.Ball, prec uint) *orb.Ball{
	`sqrt`:    (*orb.Ball).Sqrt,
	`exp`:     (*orb.Ball).Exp,
	`expm1`:   (*orb.Ball).Expm1,
	`log`:     (*orb.Ball).Log,
	`log1p`:   (*orb.Ball).Log1p,
	`sin`:     (*orb.Ball).Sin,
	`cos`:     (*orb.Ball).Cos,
	`tan`:     (*orb.Ball).Tan,
	`asin`:    (*orb.Ball).Asin,
	`acos`:    (*orb.Ball).Acos,
	`atan`:    (*orb.Ball).Atan,
	`sinh`:    (*orb.Ball).Sinh,
	`cosh`:    (*orb.Ball).Cosh,
	`tanh`:    (*orb.Ball).Tanh,
	`gamma`:   (*orb.Ball).Gamma,
	`lgamma`:  (*orb.Ball).Lgamma,
	`digamma`: (*orb.Ball).Digamma,
	`zeta`:    (*orb.Ball).Zeta,
	`inv`:     (*orb.Ball).Inv,
	`abs`: func(z, x *orb.Ball, _ uint) *orb.Ball {
		return z.Abs(x)
	},
}

var binaryFuncs = map[string]func(z, a, b *orb.Ball, prec uint) *orb.Ball{
	`pow`:     (*orb.Ball).Pow,
	`atan2`:   (*orb.Ball).Atan2,
	`polylog`: (*orb.Ball).PolyLog,
}

type parser struct {
	src  string
	pos  int
	prec uint
}

// evalExpr parses and evaluates a ball-arithmetic expression at prec bits.
func evalExpr(src string, prec uint) (*orb.Ball, error) {
	p := &parser{src: src, prec: prec}
	b, err := p.expr()
	if err != nil {
		return nil, err
	}
	p.skip()
	if p.pos != len(p.src) {
		return nil, p.errorf(`unexpected %q`, p.src[p.pos:])
	}
	return b, nil
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf(`orbcalc: expression offset %d: %s`, p.pos, fmt.Sprintf(format, args...))
}

func (p *parser) skip() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) peek() byte {
	p.skip()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) expr() (*orb.Ball, error) {
	b, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			t, err := p.term()
			if err != nil {
				return nil, err
			}
			b.Add(b, t, p.prec)
		case '-':
			p.pos++
			t, err := p.term()
			if err != nil {
				return nil, err
			}
			b.Sub(b, t, p.prec)
		default:
			return b, nil
		}
	}
}

func (p *parser) term() (*orb.Ball, error) {
	b, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek() {
		case '*':
			p.pos++
			t, err := p.unary()
			if err != nil {
				return nil, err
			}
			b.Mul(b, t, p.prec)
		case '/':
			p.pos++
			t, err := p.unary()
			if err != nil {
				return nil, err
			}
			b.Div(b, t, p.prec)
		default:
			return b, nil
		}
	}
}

func (p *parser) unary() (*orb.Ball, error) {
	switch p.peek() {
	case '-':
		p.pos++
		b, err := p.unary()
		if err != nil {
			return nil, err
		}
		return b.Neg(b), nil
	case '+':
		p.pos++
		return p.unary()
	}
	return p.power()
}

func (p *parser) power() (*orb.Ball, error) {
	b, err := p.atom()
	if err != nil {
		return nil, err
	}
	if p.peek() != '^' {
		return b, nil
	}
	p.pos++
	e, err := p.unary() // right associative
	if err != nil {
		return nil, err
	}
	return b.Pow(b, e, p.prec), nil
}

func (p *parser) atom() (*orb.Ball, error) {
	switch c := p.peek(); {
	case c == '(':
		p.pos++
		b, err := p.expr()
		if err != nil {
			return nil, err
		}
		if p.peek() != ')' {
			return nil, p.errorf(`expected ')'`)
		}
		p.pos++
		return b, nil
	case c >= '0' && c <= '9', c == '.':
		return p.number()
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return p.ident()
	case c == 0:
		return nil, p.errorf(`unexpected end of expression`)
	default:
		return nil, p.errorf(`unexpected %q`, string(c))
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (p *parser) number() (*orb.Ball, error) {
	start := p.pos
	for p.pos < len(p.src) && (isDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
		p.pos++
	}
	// optional exponent, only if it reads as one
	if p.pos < len(p.src) && (p.src[p.pos] == 'e' || p.src[p.pos] == 'E') {
		j := p.pos + 1
		if j < len(p.src) && (p.src[j] == '+' || p.src[j] == '-') {
			j++
		}
		if j < len(p.src) && isDigit(p.src[j]) {
			for j < len(p.src) && isDigit(p.src[j]) {
				j++
			}
			p.pos = j
		}
	}
	r, ok := new(big.Rat).SetString(p.src[start:p.pos])
	if !ok {
		return nil, p.errorf(`invalid number %q`, p.src[start:p.pos])
	}
	return new(orb.Ball).SetRat(r, p.prec), nil
}

func (p *parser) ident() (*orb.Ball, error) {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || isDigit(c) {
			p.pos++
			continue
		}
		break
	}
	name := p.src[start:p.pos]
	if p.peek() != '(' {
		c, err := orb.ParseConstant(name)
		if err != nil {
			return nil, p.errorf(`unknown identifier %q`, name)
		}
		return orb.DefaultCache.Get(c, p.prec), nil
	}
	p.pos++
	args := []*orb.Ball{}
	for {
		b, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, b)
		if p.peek() == ',' {
			p.pos++
			continue
		}
		break
	}
	if p.peek() != ')' {
		return nil, p.errorf(`expected ')'`)
	}
	p.pos++
	if f, ok := unaryFuncs[name]; ok {
		if len(args) != 1 {
			return nil, p.errorf(`%s takes 1 argument, got %d`, name, len(args))
		}
		return f(new(orb.Ball), args[0], p.prec), nil
	}
	if f, ok := binaryFuncs[name]; ok {
		if len(args) != 2 {
			return nil, p.errorf(`%s takes 2 arguments, got %d`, name, len(args))
		}
		return f(new(orb.Ball), args[0], args[1], p.prec), nil
	}
	return nil, p.errorf(`unknown function %q`, name)
}
