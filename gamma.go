package orb

import "math/big"

// risingMethod selects the rising factorial evaluation scheme.
type risingMethod int

const (
	risingAuto risingMethod = iota
	risingBinary
	risingRectangular
)

// risingStrategy picks binary splitting for short products and the
// rectangular (block polynomial) scheme once the length justifies the
// coefficient setup. Pure function, so the cutover is directly testable.
func risingStrategy(n uint, prec uint) risingMethod {
	if n < 64 || uint64(n)*8 < uint64(prec) {
		return risingBinary
	}
	return risingRectangular
}

// risingProduct multiplies (x+a)(x+a+1)...(x+b-1) by halving the range.
func risingProduct(x *Ball, a, b int64, prec uint) *Ball {
	if b-a == 1 {
		var k Ball
		k.SetInt64(a)
		return k.Add(x, &k, prec)
	}
	mid := a + (b-a)/2
	l := risingProduct(x, a, mid, prec)
	r := risingProduct(x, mid, b, prec)
	return l.Mul(l, r, prec)
}

// risingCoeffs returns the coefficients of y(y+1)...(y+m-1), constant term
// first.
func risingCoeffs(m int64) []*big.Int {
	c := []*big.Int{big.NewInt(0), big.NewInt(1)}
	for i := int64(1); i < m; i++ {
		next := make([]*big.Int, len(c)+1)
		next[0] = new(big.Int).Mul(c[0], big.NewInt(i))
		for j := 1; j < len(c); j++ {
			next[j] = new(big.Int).Mul(c[j], big.NewInt(i))
			next[j].Add(next[j], c[j-1])
		}
		next[len(c)] = new(big.Int).Set(c[len(c)-1])
		c = next
	}
	return c
}

// risingRectangularEval evaluates the length-n rising factorial in blocks
// of size m, each block a Horner evaluation of the shared coefficient
// polynomial.
func risingRectangularEval(z *Ball, x *Ball, n int64, prec uint) *Ball {
	m := int64(1)
	for m*m < n {
		m++
	}
	c := risingCoeffs(m)
	acc := new(Ball).SetInt64(1)
	var j int64
	for ; j+m <= n; j += m {
		var t, jb Ball
		jb.SetInt64(j)
		t.Add(x, &jb, prec)
		v := new(Ball).SetInt64(1) // leading coefficient
		for i := len(c) - 2; i >= 0; i-- {
			v.Mul(v, &t, prec)
			var cb Ball
			cb.SetInt(c[i])
			v.Add(v, &cb, prec)
		}
		acc.Mul(acc, v, prec)
	}
	for ; j < n; j++ {
		var t, jb Ball
		jb.SetInt64(j)
		t.Add(x, &jb, prec)
		acc.Mul(acc, &t, prec)
	}
	return z.Set(acc)
}

// RisingFactorial sets z to a ball containing t(t+1)...(t+n-1) for all t in
// x and returns z. n = 0 yields the exact ball 1. The method argument picks
// the evaluation scheme; risingAuto defers to an internal cutover.
func (z *Ball) RisingFactorial(x *Ball, n uint, method risingMethod, prec uint) *Ball {
	if x.mid == nil {
		return z.setIndeterminate()
	}
	if n == 0 {
		return z.SetInt64(1)
	}
	p := prec + 2*uint(clog2(n+2)) + 8
	if method == risingAuto {
		method = risingStrategy(n, prec)
	}
	if method == risingRectangular {
		risingRectangularEval(z, x, int64(n), p)
		return z.Round(z, prec)
	}
	v := risingProduct(x, 0, int64(n), p)
	return z.Round(v, prec)
}

// containsNonPosInt reports whether the set for x includes a nonpositive
// integer (a gamma pole).
func (x *Ball) containsNonPosInt() bool {
	switch x.classify() {
	case setNaN, setWhole, setNegInf:
		return true
	case setPosInf:
		return false
	}
	lo, hi := x.endpoints()
	a, b := ratCeil(lo), ratFloor(hi)
	if b.Sign() > 0 {
		b = new(big.Int)
	}
	return a.Cmp(b) <= 0
}

// containsInt reports whether the set for x includes any integer.
func (x *Ball) containsInt() bool {
	switch x.classify() {
	case setNaN, setWhole, setNegInf, setPosInf:
		return true
	}
	lo, hi := x.endpoints()
	return ratCeil(lo).Cmp(ratFloor(hi)) <= 0
}

// stirlingShift returns how far x must be shifted right so the asymptotic
// series converges quickly at the working precision.
func stirlingShift(x *Ball, prec uint) uint {
	target := int64(prec) * 2 / 5
	if target < 8 {
		target = 8
	}
	lo := new(big.Float).SetPrec(64).SetMode(big.ToNegativeInf)
	lo.Sub(x.mid, x.radius())
	f, _ := lo.Float64()
	if f >= float64(target) {
		return 0
	}
	r := target - int64(f) + 1
	if r < 0 || r > int64(target)+2 {
		r = target + 2
	}
	return uint(r)
}

// stirlingSeries evaluates log Γ(y) by the asymptotic series
//
//	(y - 1/2) log y - y + log √(2π) + Σ B_2k / (2k(2k-1) y^(2k-1))
//
// for y with every point at least 8. The remainder after the kept terms is
// bounded by the first omitted term (real positive argument).
func stirlingSeries(z *Ball, y *Ball, prec uint) *Ball {
	p := prec + 16
	var ly, half, t Ball
	ly.Log(y, p)
	half.SetRat(big.NewRat(1, 2), p)
	t.Sub(y, &half, p)
	t.Mul(&t, &ly, p)
	t.Sub(&t, y, p)
	t.Add(&t, DefaultCache.Get(ConstLogSqrt2Pi, p), p)
	var yinv2, pw Ball
	yinv2.Mul(y, y, p)
	yinv2.Inv(&yinv2, p)
	pw.Inv(y, p) // y^(1-2k) for k = 1
	kmax := int64(p)/2 + 4
	for k := int64(1); ; k++ {
		var bb, db, term Ball
		bb.BernoulliBall(uint(2*k), p)
		db.SetInt64(2 * k * (2*k - 1))
		term.Div(&bb, &db, p)
		term.Mul(&term, &pw, p)
		eb := term.absUpper()
		if eb.Sign() == 0 || eb.MantExp(nil) < -int(p) || k > kmax {
			t.AddError(eb)
			break
		}
		t.Add(&t, &term, p)
		pw.Mul(&pw, &yinv2, p)
	}
	return z.Round(&t, prec)
}

// Lgamma sets z to a ball containing log Γ(t) for all t in x and returns z.
// The domain is x > 0; anything else yields the indeterminate ball.
func (z *Ball) Lgamma(x *Ball, prec uint) *Ball {
	if x.mid == nil || !x.IsPositive() {
		return z.setIndeterminate()
	}
	if x.mid.IsInf() {
		return z.SetInf(false)
	}
	p := prec + 16
	r := stirlingShift(x, prec)
	if r == 0 {
		return stirlingSeries(z, x, prec)
	}
	// log Γ(x) = log Γ(x+r) - log(x (x+1) ... (x+r-1))
	var u, y, rb Ball
	u.RisingFactorial(x, r, risingAuto, p)
	rb.SetUint64(uint64(r))
	y.Add(x, &rb, p)
	var lg Ball
	stirlingSeries(&lg, &y, p)
	var lu Ball
	lu.Log(&u, p)
	return z.Sub(&lg, &lu, prec)
}

// gammaFactMax bounds the exact-factorial shortcut in Gamma.
const gammaFactMax = 1 << 14

// Gamma sets z to a ball containing Γ(t) for all t in x and returns z.
// Balls containing a pole (a nonpositive integer) are indeterminate, as are
// negative balls wide enough to span an integer.
func (z *Ball) Gamma(x *Ball, prec uint) *Ball {
	if x.mid == nil {
		return z.setIndeterminate()
	}
	if x.IsExact() && !x.mid.IsInf() && x.mid.IsInt() {
		if n, acc := x.mid.Int64(); acc == big.Exact {
			if n <= 0 {
				return z.setIndeterminate()
			}
			if n <= gammaFactMax {
				var f Ball
				f.SetInt(new(big.Int).MulRange(1, n-1))
				return z.Round(&f, prec)
			}
		}
	}
	if x.IsPositive() {
		if x.mid.IsInf() {
			return z.SetInf(false)
		}
		var lg Ball
		lg.Lgamma(x, prec+8)
		return z.Exp(&lg, prec)
	}
	if x.containsNonPosInt() {
		return z.setIndeterminate()
	}
	// negative, pole-free: Γ(x) = π / (sin(πx) Γ(1-x))
	p := prec + 24
	var one, om Ball
	one.SetInt64(1)
	om.Sub(&one, x, p)
	var g, lg Ball
	lg.Lgamma(&om, p)
	g.Exp(&lg, p)
	var sp, sn Ball
	sp.Mul(x, piBall(p), p)
	sn.Sin(&sp, p)
	var den Ball
	den.Mul(&sn, &g, p)
	return z.Div(piBall(p), &den, prec)
}

// Rgamma sets z to a ball containing 1/Γ(t) for all t in x and returns z.
// The reciprocal is entire: exact nonpositive integers give the exact ball
// 0, and inexact balls containing a pole give the whole line rather than
// an indeterminate result.
func (z *Ball) Rgamma(x *Ball, prec uint) *Ball {
	if x.mid == nil {
		return z.setIndeterminate()
	}
	if x.IsExact() && !x.mid.IsInf() && x.mid.IsInt() {
		if n, acc := x.mid.Int64(); acc == big.Exact && n <= 0 {
			z.mid, z.rad = new(big.Float), nil
			return z
		}
	}
	if x.containsNonPosInt() && x.classify() == setFinite {
		return z.setWholeLine()
	}
	var g Ball
	g.Gamma(x, prec+8)
	return z.Inv(&g, prec)
}

// Digamma sets z to a ball containing ψ(t) for all t in x and returns z.
// Poles follow the same rules as Gamma; negative pole-free balls use the
// reflection ψ(x) = ψ(1-x) - π cos(πx)/sin(πx).
func (z *Ball) Digamma(x *Ball, prec uint) *Ball {
	if x.mid == nil {
		return z.setIndeterminate()
	}
	if x.IsPositive() {
		if x.mid.IsInf() {
			return z.SetInf(false)
		}
		p := prec + 16
		r := stirlingShift(x, prec)
		// ψ(x) = ψ(x+r) - Σ_(j<r) 1/(x+j)
		var corr Ball
		corr.SetInt64(0)
		for j := uint(0); j < r; j++ {
			var jb, t Ball
			jb.SetUint64(uint64(j))
			t.Add(x, &jb, p)
			t.Inv(&t, p)
			corr.Add(&corr, &t, p)
		}
		var y, rb Ball
		rb.SetUint64(uint64(r))
		y.Add(x, &rb, p)
		// ψ(y) = log y - 1/(2y) - Σ B_2k / (2k y^2k)
		var t, h Ball
		t.Log(&y, p)
		h.Inv(&y, p)
		h.MulPow2(&h, -1)
		t.Sub(&t, &h, p)
		var yinv2, pw Ball
		yinv2.Mul(&y, &y, p)
		yinv2.Inv(&yinv2, p)
		pw.Set(&yinv2)
		kmax := int64(p)/2 + 4
		for k := int64(1); ; k++ {
			var bb, db, term Ball
			bb.BernoulliBall(uint(2*k), p)
			db.SetInt64(2 * k)
			term.Div(&bb, &db, p)
			term.Mul(&term, &pw, p)
			eb := term.absUpper()
			if eb.Sign() == 0 || eb.MantExp(nil) < -int(p) || k > kmax {
				t.AddError(eb)
				break
			}
			t.Sub(&t, &term, p)
			pw.Mul(&pw, &yinv2, p)
		}
		return z.Sub(&t, &corr, prec)
	}
	if x.containsNonPosInt() {
		return z.setIndeterminate()
	}
	p := prec + 24
	var one, om Ball
	one.SetInt64(1)
	om.Sub(&one, x, p)
	var d Ball
	d.Digamma(&om, p)
	var sp, sn, cs Ball
	sp.Mul(x, piBall(p), p)
	sp.SinCos(&sn, &cs, p)
	var cot Ball
	cot.Div(&cs, &sn, p)
	cot.Mul(&cot, piBall(p), p)
	return z.Sub(&d, &cot, prec)
}
