// Package series implements a truncated power-series ring with exact
// rational coefficients. All operations are formal: a Poly of length n
// represents a series modulo x^n, and every coefficient is carried
// exactly, so cancellation (e.g. dividing out a formal zero before
// inverting) introduces no error.
package series

import "math/big"

// Poly is a truncated power series: c[i] is the coefficient of x^i. The
// length fixes the truncation order and is preserved by all operations.
type Poly struct {
	c []*big.Rat
}

// New returns the zero series truncated at x^n.
func New(n int) *Poly {
	p := &Poly{c: make([]*big.Rat, n)}
	for i := range p.c {
		p.c[i] = new(big.Rat)
	}
	return p
}

// FromRats returns a series with the given coefficients (copied).
func FromRats(c []*big.Rat) *Poly {
	p := &Poly{c: make([]*big.Rat, len(c))}
	for i, q := range c {
		p.c[i] = new(big.Rat).Set(q)
	}
	return p
}

// Len returns the truncation order.
func (p *Poly) Len() int { return len(p.c) }

// Coeff returns the coefficient of x^i (a copy).
func (p *Poly) Coeff(i int) *big.Rat { return new(big.Rat).Set(p.c[i]) }

// SetCoeff sets the coefficient of x^i.
func (p *Poly) SetCoeff(i int, q *big.Rat) { p.c[i].Set(q) }

func (p *Poly) sameLen(q *Poly) {
	if len(p.c) != len(q.c) {
		panic(`series: length mismatch`)
	}
}

// Add sets p to a+b and returns p. All three must share a length.
func (p *Poly) Add(a, b *Poly) *Poly {
	p.sameLen(a)
	p.sameLen(b)
	for i := range p.c {
		p.c[i].Add(a.c[i], b.c[i])
	}
	return p
}

// Sub sets p to a-b and returns p.
func (p *Poly) Sub(a, b *Poly) *Poly {
	p.sameLen(a)
	p.sameLen(b)
	for i := range p.c {
		p.c[i].Sub(a.c[i], b.c[i])
	}
	return p
}

// Mul sets p to a*b truncated at the shared length and returns p.
func (p *Poly) Mul(a, b *Poly) *Poly {
	p.sameLen(a)
	p.sameLen(b)
	n := len(p.c)
	out := make([]*big.Rat, n)
	for i := range out {
		out[i] = new(big.Rat)
	}
	t := new(big.Rat)
	for i := 0; i < n; i++ {
		if a.c[i].Sign() == 0 {
			continue
		}
		for j := 0; i+j < n; j++ {
			if b.c[j].Sign() == 0 {
				continue
			}
			t.Mul(a.c[i], b.c[j])
			out[i+j].Add(out[i+j], t)
		}
	}
	p.c = out
	return p
}

// MulScalar sets p to q*a and returns p.
func (p *Poly) MulScalar(a *Poly, q *big.Rat) *Poly {
	p.sameLen(a)
	for i := range p.c {
		p.c[i].Mul(a.c[i], q)
	}
	return p
}

// ShiftDiv sets p to a/x^k and returns p. The k low-order coefficients of
// a must be formal zeros; the high end is padded with zeros, so the
// truncation order is unchanged.
func (p *Poly) ShiftDiv(a *Poly, k int) *Poly {
	p.sameLen(a)
	for i := 0; i < k; i++ {
		if a.c[i].Sign() != 0 {
			panic(`series: ShiftDiv of a nonzero low-order coefficient`)
		}
	}
	n := len(p.c)
	out := make([]*big.Rat, n)
	for i := 0; i < n; i++ {
		if i+k < n {
			out[i] = new(big.Rat).Set(a.c[i+k])
		} else {
			out[i] = new(big.Rat)
		}
	}
	p.c = out
	return p
}

// Exp sets p to exp(a) and returns p. The constant term of a must be zero.
// Coefficients follow the first-order recurrence g' = a'·g.
func (p *Poly) Exp(a *Poly) *Poly {
	p.sameLen(a)
	if a.c[0].Sign() != 0 {
		panic(`series: Exp of a nonzero constant term`)
	}
	n := len(p.c)
	out := make([]*big.Rat, n)
	out[0] = big.NewRat(1, 1)
	t := new(big.Rat)
	for k := 1; k < n; k++ {
		s := new(big.Rat)
		for j := 1; j <= k; j++ {
			if a.c[j].Sign() == 0 {
				continue
			}
			t.SetInt64(int64(j))
			t.Mul(t, a.c[j])
			t.Mul(t, out[k-j])
			s.Add(s, t)
		}
		s.Quo(s, new(big.Rat).SetInt64(int64(k)))
		out[k] = s
	}
	p.c = out
	return p
}

// Inv sets p to 1/a and returns p. The constant term of a must be nonzero.
func (p *Poly) Inv(a *Poly) *Poly {
	p.sameLen(a)
	if a.c[0].Sign() == 0 {
		panic(`series: Inv of a zero constant term`)
	}
	n := len(p.c)
	out := make([]*big.Rat, n)
	out[0] = new(big.Rat).Inv(a.c[0])
	t := new(big.Rat)
	for k := 1; k < n; k++ {
		s := new(big.Rat)
		for j := 1; j <= k; j++ {
			if a.c[j].Sign() == 0 {
				continue
			}
			t.Mul(a.c[j], out[k-j])
			s.Add(s, t)
		}
		s.Quo(s, a.c[0])
		out[k] = s.Neg(s)
	}
	p.c = out
	return p
}

// Eval returns the exact value of the truncated series at x.
func (p *Poly) Eval(x *big.Rat) *big.Rat {
	v := new(big.Rat)
	for i := len(p.c) - 1; i >= 0; i-- {
		v.Mul(v, x)
		v.Add(v, p.c[i])
	}
	return v
}
