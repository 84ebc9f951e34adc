package orb

import "math/big"

// exactSumPrec returns a precision sufficient to represent x+y or x-y
// exactly (finite, nonzero operands assumed handled by the caller).
func exactSumPrec(x, y *big.Float) uint {
	if x.Sign() == 0 || x.IsInf() {
		p := y.MinPrec()
		if p == 0 {
			p = 1
		}
		return p
	}
	if y.Sign() == 0 || y.IsInf() {
		p := x.MinPrec()
		if p == 0 {
			p = 1
		}
		return p
	}
	ex, px := x.MantExp(nil), int(x.MinPrec())
	ey, py := y.MantExp(nil), int(y.MinPrec())
	top := ex
	if ey > top {
		top = ey
	}
	bot := ex - px
	if ey-py < bot {
		bot = ey - py
	}
	return uint(top-bot) + 2
}

func exactMulPrec(x, y *big.Float) uint {
	p := x.MinPrec() + y.MinPrec()
	if p == 0 {
		p = 1
	}
	return p
}

// absLeq reports whether |f| <= g, exactly. g may be +Inf.
func absLeq(f, g *big.Float) bool {
	if g.IsInf() {
		return true
	}
	if f.IsInf() {
		return false
	}
	fr, _ := f.Rat(nil)
	gr, _ := g.Rat(nil)
	return fr.Abs(fr).Cmp(gr) <= 0
}

// containsZero reports whether the set for x includes zero. Indeterminate
// balls are treated as containing zero.
func (x *Ball) containsZero() bool {
	if x.mid == nil {
		return true
	}
	if x.radInf() {
		return true
	}
	if x.mid.IsInf() {
		return false
	}
	return absLeq(x.mid, x.radius())
}

// addOrSub implements Add and Sub; neg selects subtraction.
func (z *Ball) addOrSub(x, y *Ball, prec uint, neg bool) *Ball {
	if x.mid == nil || y.mid == nil {
		return z.setIndeterminate()
	}
	if x.mid.IsInf() && y.mid.IsInf() {
		if (x.mid.Signbit() != y.mid.Signbit()) != neg {
			return z.setIndeterminate() // Inf - Inf
		}
	}
	p := prec
	if p >= PrecExact {
		p = exactSumPrec(x.mid, y.mid)
	}
	m := newMid(p)
	if neg {
		m.Sub(x.mid, y.mid)
	} else {
		m.Add(x.mid, y.mid)
	}
	acc := m.Acc()
	if prec >= PrecExact && acc != big.Exact {
		panic(`orb: add: exact result not representable`)
	}
	if x.rad == nil && y.rad == nil && acc == big.Exact {
		z.mid, z.rad = m, nil
		return z
	}
	r := newRadFloat().Add(x.radius(), y.radius())
	if acc != big.Exact {
		r.Add(r, halfUlp(m, p))
	}
	z.mid, z.rad = m, r
	return z
}

// Add sets z to a ball containing a+b for all a in x, b in y, with the
// midpoint rounded to prec bits, and returns z. The propagated radius is
// rad(x) + rad(y), plus the midpoint rounding error.
func (z *Ball) Add(x, y *Ball, prec uint) *Ball {
	return z.addOrSub(x, y, prec, false)
}

// Sub sets z to a ball containing a-b for all a in x, b in y, and returns
// z. See [Ball.Add] for the error propagation.
func (z *Ball) Sub(x, y *Ball, prec uint) *Ball {
	return z.addOrSub(x, y, prec, true)
}

// Mul sets z to a ball containing a*b for all a in x, b in y, with the
// midpoint rounded to prec bits, and returns z. The propagated radius is
// |mid(x)|*rad(y) + |mid(y)|*rad(x) + rad(x)*rad(y), an exact bound from
// (x+ξ₁a)(y+ξ₂b) with ξ₁,ξ₂ in [-1,1], plus the midpoint rounding error.
func (z *Ball) Mul(x, y *Ball, prec uint) *Ball {
	if x.mid == nil || y.mid == nil {
		return z.setIndeterminate()
	}
	if x.IsZero() || y.IsZero() {
		if x.mid.IsInf() || y.mid.IsInf() {
			return z.setIndeterminate() // 0 * Inf
		}
		z.mid, z.rad = new(big.Float), nil
		return z
	}
	if x.radInf() || y.radInf() {
		return z.setWholeLine()
	}
	if x.mid.IsInf() || y.mid.IsInf() {
		// an infinite point times a set containing zero is indeterminate
		if x.containsZero() || y.containsZero() {
			return z.setIndeterminate()
		}
		return z.SetInf(x.mid.Signbit() != y.mid.Signbit())
	}
	p := prec
	if p >= PrecExact {
		p = exactMulPrec(x.mid, y.mid)
	}
	m := newMid(p).Mul(x.mid, y.mid)
	acc := m.Acc()
	if prec >= PrecExact && acc != big.Exact {
		panic(`orb: mul: exact result not representable`)
	}
	if x.rad == nil && y.rad == nil && acc == big.Exact {
		z.mid, z.rad = m, nil
		return z
	}
	ax := newRadFloat().Abs(x.mid)
	ay := newRadFloat().Abs(y.mid)
	rx, ry := x.radius(), y.radius()
	r := newRadFloat().Mul(ax, ry)
	t := newRadFloat().Mul(ay, rx)
	r.Add(r, t)
	t.Mul(rx, ry)
	r.Add(r, t)
	if acc != big.Exact {
		r.Add(r, halfUlp(m, p))
	}
	z.mid, z.rad = m, r
	return z
}

// Div sets z to a ball containing a/b for all a in x, b in y, with the
// midpoint rounded to prec bits, and returns z.
//
// If y contains zero the result is the whole-line ball [0 +/- Inf]; ball
// arithmetic has no division failure, only precision loss. Otherwise the
// propagated radius is
//
//	(|mid(x)|*rad(y) + |mid(y)|*rad(x)) / (|mid(y)| * (|mid(y)| - rad(y)))
//
// from |x/y - (x+ξ₁a)/(y+ξ₂b)| interval mean-value reasoning, plus the
// midpoint rounding error.
func (z *Ball) Div(x, y *Ball, prec uint) *Ball {
	if x.mid == nil || y.mid == nil {
		return z.setIndeterminate()
	}
	if y.containsZero() {
		return z.setWholeLine()
	}
	if x.radInf() {
		return z.setWholeLine()
	}
	if y.mid.IsInf() {
		if x.mid.IsInf() {
			return z.setIndeterminate()
		}
		z.mid, z.rad = new(big.Float), nil
		return z
	}
	if x.mid.IsInf() {
		return z.SetInf(x.mid.Signbit() != y.mid.Signbit())
	}
	p := prec
	if p >= PrecExact {
		p = exactMulPrec(x.mid, y.mid) + 64
	}
	m := newMid(p).Quo(x.mid, y.mid)
	acc := m.Acc()
	if prec >= PrecExact && acc != big.Exact {
		panic(`orb: div: exact result not representable`)
	}
	if x.rad == nil && y.rad == nil && acc == big.Exact {
		z.mid, z.rad = m, nil
		return z
	}
	rx, ry := x.radius(), y.radius()
	ax := newRadFloat().Abs(x.mid)
	ayUp := newRadFloat().Abs(y.mid)
	ayDn := newRadDown().Abs(y.mid)
	num := newRadFloat().Mul(ax, ry)
	t := newRadFloat().Mul(ayUp, rx)
	num.Add(num, t)
	gap := newRadDown().Sub(ayDn, ry)
	if gap.Sign() <= 0 {
		// the down-rounded |mid(y)| could not be separated from rad(y)
		return z.setWholeLine()
	}
	den := newRadDown().Mul(ayDn, gap)
	r := newRadFloat().Quo(num, den)
	if acc != big.Exact {
		r.Add(r, halfUlp(m, p))
	}
	z.mid, z.rad = m, r
	return z
}

// Inv sets z to a ball containing 1/b for all b in x and returns z, with
// the same zero-divisor convention as [Ball.Div].
func (z *Ball) Inv(x *Ball, prec uint) *Ball {
	var one Ball
	one.SetInt64(1)
	return z.Div(&one, x, prec)
}
