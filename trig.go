package orb

import "math/big"

// piBall returns π as a ball at p bits (via the default cache).
func piBall(p uint) *Ball { return DefaultCache.Get(ConstPi, p) }

// halfPiHigh returns an upper bound magnitude for π/2 (plus the π ball's
// own radius).
func halfPiHigh(p uint) *big.Float {
	pi := piBall(p)
	r := newRadFloat().Add(pi.mid, pi.radius())
	u := newRadFloat().SetInt64(1)
	u.SetMantExp(r, -1)
	return u
}

// unitBall is [0 +/- 1].
func unitBall() *Ball {
	var z Ball
	z.mid = new(big.Float)
	z.rad = newRadFloat().SetInt64(1)
	return &z
}

// absUpper returns an upper bound on |t| over t in x (finite x).
func (x *Ball) absUpper() *big.Float {
	u := newRadFloat().Abs(x.mid)
	return u.Add(u, x.radius())
}

// sinCosSeries evaluates sin and/or cos of the (reduced) ball y by its
// Maclaurin series, in ball arithmetic, with the truncation tail added to
// the radius. |y| is assumed bounded by a small constant.
func sinCosSeries(y *Ball, p uint, wantSin, wantCos bool) (sin, cos *Ball) {
	ub := y.absUpper()
	ub2 := newRadFloat().Mul(ub, ub)
	var y2 Ball
	y2.Mul(y, y, p)
	y2.Neg(&y2)

	run := func(odd bool) *Ball {
		sum := new(Ball)
		term := new(Ball)
		var k int64
		var tb *big.Float
		if odd {
			term.Set(y)
			tb = newRadFloat().Set(ub)
			k = 1
		} else {
			term.SetInt64(1)
			tb = newRadFloat().SetInt64(1)
			k = 0
		}
		sum.SetInt64(0)
		for {
			sum.Add(sum, term, p)
			var d Ball
			d.SetInt64((k + 1) * (k + 2))
			term.Mul(term, &y2, p)
			term.Div(term, &d, p)
			tb.Mul(tb, ub2)
			tb.Quo(tb, new(big.Float).SetInt64((k+1)*(k+2)))
			k += 2
			if tb.Sign() == 0 || (tb.MantExp(nil) < -int(p)-4 && k > 10) {
				break
			}
		}
		// once the term ratio is below 1/2 the tail is below twice the
		// next term bound; the k > 10 guard above ensures that for |y| < 8,
		// which covers everything the reduction guards admit
		sum.AddError(newRadFloat().Add(tb, tb))
		return sum
	}

	if wantSin {
		sin = run(true)
		if sin.rad != nil && sin.rad.Cmp(new(big.Float).SetInt64(1)) > 0 {
			sin = unitBall() // |sin| <= 1
		}
	}
	if wantCos {
		cos = run(false)
		if cos.rad != nil && cos.rad.Cmp(new(big.Float).SetInt64(1)) > 0 {
			cos = unitBall() // |cos| <= 1
		}
	}
	return sin, cos
}

// reduceTrigArg returns a ball congruent to x modulo 2π with a midpoint of
// magnitude below about 2π+1. The π value is taken at enough extra bits to
// cover the quotient's magnitude, so the subtraction stays tight.
func reduceTrigArg(x *Ball, prec uint) *Ball {
	if x.mid.Sign() == 0 || x.mid.MantExp(nil) < 3 {
		return new(Ball).Set(x)
	}
	e := x.mid.MantExp(nil)
	p := prec + 16 + uint(e)
	pi := piBall(p)
	var twoPi Ball
	twoPi.MulPow2(pi, 1)
	q := new(big.Float).SetPrec(p).Quo(x.mid, twoPi.mid)
	n, _ := q.Int(nil)
	var nb, y Ball
	nb.SetInt(n)
	y.Mul(&twoPi, &nb, p)
	return y.Sub(x, &y, prec+16)
}

// SinCos sets sin and cos to balls containing the sine and cosine of every
// point of x. Either destination may be nil to skip it.
func (x *Ball) SinCos(sin, cos *Ball, prec uint) {
	if x.mid == nil || x.mid.IsInf() {
		// sine and cosine have no limit at infinity
		if sin != nil {
			sin.setIndeterminate()
		}
		if cos != nil {
			cos.setIndeterminate()
		}
		return
	}
	if x.radInf() || x.radius().Cmp(new(big.Float).SetInt64(4)) >= 0 {
		if sin != nil {
			sin.Set(unitBall())
		}
		if cos != nil {
			cos.Set(unitBall())
		}
		return
	}
	p := prec + 16
	y := reduceTrigArg(x, prec)
	s, c := sinCosSeries(y, p, sin != nil, cos != nil)
	if sin != nil {
		sin.Round(s, prec)
	}
	if cos != nil {
		cos.Round(c, prec)
	}
}

// Sin sets z to a ball containing sin(t) for all t in x and returns z.
func (z *Ball) Sin(x *Ball, prec uint) *Ball {
	x.SinCos(z, nil, prec)
	return z
}

// Cos sets z to a ball containing cos(t) for all t in x and returns z.
func (z *Ball) Cos(x *Ball, prec uint) *Ball {
	x.SinCos(nil, z, prec)
	return z
}

// Tan sets z to a ball containing tan(t) for all t in x and returns z.
// Intervals crossing a pole yield the whole-line ball.
func (z *Ball) Tan(x *Ball, prec uint) *Ball {
	var s, c Ball
	x.SinCos(&s, &c, prec+8)
	return z.Div(&s, &c, prec)
}

// atanHalvings is the number of argument-halving steps applied before the
// Maclaurin series.
const atanHalvings = 10

// Atan sets z to a ball containing atan(t) for all t in x and returns z.
func (z *Ball) Atan(x *Ball, prec uint) *Ball {
	if x.mid == nil {
		return z.setIndeterminate()
	}
	p := prec + 24
	if x.radInf() {
		z.mid = new(big.Float)
		z.rad = halfPiHigh(p)
		return z
	}
	if x.mid.IsInf() {
		pi := piBall(p)
		z.MulPow2(pi, -1)
		if x.mid.Signbit() {
			z.Neg(z)
		}
		return z.Round(z, prec)
	}
	// atan(t) = 2^k atan(t_k), t_(j+1) = t_j / (1 + sqrt(1 + t_j^2));
	// each step at least halves the angle, so |t_k| < (π/2) / 2^k.
	y := new(Ball).Set(x)
	var one Ball
	one.SetInt64(1)
	for j := 0; j < atanHalvings; j++ {
		var t Ball
		t.Mul(y, y, p)
		t.Add(&t, &one, p)
		t.SqrtPos(&t, p)
		t.Add(&t, &one, p)
		y.Div(y, &t, p)
	}
	// alternating series with decreasing terms: tail below the next term
	ub := y.absUpper()
	ub2 := newRadFloat().Mul(ub, ub)
	var y2 Ball
	y2.Mul(y, y, p)
	y2.Neg(&y2)
	sum := new(Ball).SetInt64(0)
	pow := new(Ball).Set(y)
	tb := newRadFloat().Set(ub)
	var k int64
	for {
		var t, d Ball
		d.SetInt64(2*k + 1)
		t.Div(pow, &d, p)
		sum.Add(sum, &t, p)
		k++
		pow.Mul(pow, &y2, p)
		tb.Mul(tb, ub2)
		if tb.Sign() == 0 || tb.MantExp(nil) < -int(p)-4 {
			break
		}
	}
	sum.AddError(tb)
	sum.MulPow2(sum, atanHalvings)
	return z.Round(sum, prec)
}

// Atan2 sets z to a ball containing atan2(b, a) for all b in y, a in x,
// and returns z. The branch conventions are fixed: atan2(0,0) = 0 and
// atan2(0, a) = π for a < 0. Intervals spanning the branch cut widen to
// the full [-π, π] range rather than failing.
func (z *Ball) Atan2(y, x *Ball, prec uint) *Ball {
	if x.mid == nil || y.mid == nil {
		return z.setIndeterminate()
	}
	if x.IsZero() && y.IsZero() {
		return z.SetInt64(0)
	}
	p := prec + 16
	switch {
	case x.IsPositive():
		var q Ball
		q.Div(y, x, p)
		return z.Atan(&q, prec)
	case x.IsNegative() && y.IsNonNegative():
		var q Ball
		q.Div(y, x, p)
		q.Atan(&q, p)
		return z.Add(piBall(p), &q, prec)
	case x.IsNegative() && y.IsNegative():
		var q Ball
		q.Div(y, x, p)
		q.Atan(&q, p)
		var minusPi Ball
		minusPi.Neg(piBall(p))
		return z.Add(&minusPi, &q, prec)
	case y.IsPositive():
		// x straddles zero: the angle lies in (0, π)
		z.MulPow2(piBall(p), -1)
		return z.AddError(halfPiHigh(p))
	case y.IsNegative():
		z.MulPow2(piBall(p), -1)
		z.Neg(z)
		return z.AddError(halfPiHigh(p))
	}
	// both straddle zero (or x negative with y straddling): the full range
	z.mid = new(big.Float)
	pi := piBall(p)
	z.rad = newRadFloat().Add(pi.mid, pi.radius())
	return z
}

// Asin sets z to a ball containing asin(t) for all t in x and returns z.
// Inputs not contained in [-1, 1] yield the indeterminate ball.
func (z *Ball) Asin(x *Ball, prec uint) *Ball {
	if x.mid == nil || !unitBall().Contains(x) {
		return z.setIndeterminate()
	}
	p := prec + 16
	// asin(t) = atan(t / sqrt(1 - t^2)); at the endpoints the divisor
	// collapses to a zero-containing ball and the quotient covers the
	// whole line, which the range clamp below repairs.
	var t, one Ball
	one.SetInt64(1)
	t.Mul(x, x, p)
	t.Sub(&one, &t, p)
	t.SqrtPos(&t, p)
	var q Ball
	q.Div(x, &t, p)
	q.Atan(&q, p)
	hp := halfPiHigh(p)
	if q.mid == nil || q.radius().Cmp(hp) > 0 {
		// |asin| <= π/2
		q.mid = new(big.Float)
		q.rad = newRadFloat().Set(hp)
	}
	return z.Round(&q, prec)
}

// Acos sets z to a ball containing acos(t) for all t in x and returns z.
// Inputs not contained in [-1, 1] yield the indeterminate ball.
func (z *Ball) Acos(x *Ball, prec uint) *Ball {
	if x.mid == nil || !unitBall().Contains(x) {
		return z.setIndeterminate()
	}
	p := prec + 16
	var s Ball
	s.Asin(x, p)
	var hp Ball
	hp.MulPow2(piBall(p), -1)
	return z.Sub(&hp, &s, prec)
}
