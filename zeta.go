package orb

import "math/big"

// zetaMethod selects how ZetaUint evaluates ζ at a given integer argument
// and precision.
type zetaMethod int

const (
	zetaMethodExact         zetaMethod = iota // ζ(0) = -1/2
	zetaMethodIndeterminate                   // the pole at s = 1
	zetaMethodAsymptotic                      // 1 + 2^-s dominates
	zetaMethodBernoulli                       // even s, exact B_s closed form
	zetaMethodEulerProduct                    // prime product over a short range
	zetaMethodBorwein                         // alternating Chebyshev acceleration
)

// zetaStrategy picks the evaluation method for ζ(s) at prec bits. It is a
// pure function of its arguments so the dispatch is directly testable.
func zetaStrategy(s uint64, prec uint) zetaMethod {
	switch s {
	case 0:
		return zetaMethodExact
	case 1:
		return zetaMethodIndeterminate
	}
	if 3*s/2 >= uint64(prec)+2 {
		return zetaMethodAsymptotic
	}
	if s%2 == 0 && s <= 128 {
		return zetaMethodBernoulli
	}
	if s >= 6 && (prec+3)/uint(s-1) <= 12 {
		return zetaMethodEulerProduct
	}
	return zetaMethodBorwein
}

// ZetaUint returns a ball containing ζ(s) at about prec bits. ζ(1) is the
// pole and yields the indeterminate ball.
func ZetaUint(s uint64, prec uint) *Ball {
	z := new(Ball)
	switch zetaStrategy(s, prec) {
	case zetaMethodExact:
		z.SetRat(big.NewRat(-1, 2), prec)
	case zetaMethodIndeterminate:
		z.setIndeterminate()
	case zetaMethodAsymptotic:
		zetaAsymptotic(z, s, prec)
	case zetaMethodBernoulli:
		zetaBernoulliEven(z, s, prec)
	case zetaMethodEulerProduct:
		zetaEulerProduct(z, s, prec)
	default:
		zetaBorwein(z, s, prec)
	}
	return z
}

// zetaAsymptotic evaluates ζ(s) = 1 + 2^-s + O(3^-s) for s large relative
// to prec; the tail is below 2^(2 - 3s/2).
func zetaAsymptotic(z *Ball, s uint64, prec uint) {
	if s > 1<<24 {
		z.SetInt64(1)
		z.AddError2Exp(-(1 << 24))
		return
	}
	var one, t Ball
	one.SetInt64(1)
	t.SetInt64(1)
	t.MulPow2(&t, -int(s))
	z.Add(&one, &t, prec+8)
	z.AddError2Exp(2 - int(3*s/2))
	z.Round(z, prec)
}

// zetaBernoulliEven evaluates ζ(s) for even s from the exact closed form
// ζ(2n) = |B_2n| (2π)^2n / (2 (2n)!).
func zetaBernoulliEven(z *Ball, s uint64, prec uint) {
	p := prec + 16
	var bb Ball
	bb.SetRat(Bernoulli(uint(s)), p)
	bb.Abs(&bb)
	var pw Ball
	pw.MulPow2(piBall(p), 1)
	pw.PowInt(&pw, int64(s), p)
	bb.Mul(&bb, &pw, p)
	var f Ball
	f.SetInt(new(big.Int).MulRange(1, int64(s)))
	f.MulPow2(&f, 1)
	z.Div(&bb, &f, prec)
}

// zetaEulerProduct evaluates ζ(s) = Π 1/(1 - p^-s) over primes p < 2^m,
// with m sized so the truncated tail stays below the target precision. The
// partial product P satisfies P <= ζ <= P e^t with t = Σ_(n >= 2^m) n^-s,
// so the absolute error is below 2^(3 - m(s-1)).
func zetaEulerProduct(z *Ball, s uint64, prec uint) {
	m := int((prec+3)/uint(s-1)) + 1
	if m < 2 {
		m = 2
	}
	if m > 26 {
		m = 26 // sieve bound; the wider error below stays sound
	}
	limit := 1 << m
	composite := make([]bool, limit)
	p := prec + 16
	acc := new(Ball).SetInt64(1)
	var one Ball
	one.SetInt64(1)
	for q := 2; q < limit; q++ {
		if composite[q] {
			continue
		}
		for c := q * q; c < limit; c += q {
			composite[c] = true
		}
		var t, den Ball
		t.SetInt64(int64(q))
		t.PowInt(&t, int64(s), p)
		den.Sub(&t, &one, p)
		t.Div(&t, &den, p)
		acc.Mul(acc, &t, p)
	}
	e := 3 - m*int(s-1)
	if e < -(1 << 30) {
		e = -(1 << 30)
	}
	acc.AddError2Exp(e)
	z.Round(acc, prec)
}

// zetaBorwein evaluates ζ(s) by Borwein's alternating series acceleration
// with Chebyshev weights:
//
//	ζ(s) = -1/(d_n (1 - 2^(1-s))) Σ_(k<n) (-1)^k (d_k - d_n)/(k+1)^s + γ
//
// with |γ| <= 3 / ((3+√8)^n (1 - 2^(1-s))), which for s >= 2 is below
// 2^(3 - 2.54n).
func zetaBorwein(z *Ball, s uint64, prec uint) {
	n := int(prec)*100/254 + 10
	d := make([]*big.Rat, n+1)
	term := big.NewRat(1, 1)
	acc := new(big.Rat).Set(term)
	d[0] = new(big.Rat).Set(acc)
	for i := 0; i < n; i++ {
		r := big.NewRat(int64(4*(n+i)*(n-i)), int64((2*i+1)*(2*i+2)))
		term.Mul(term, r)
		acc.Add(acc, term)
		d[i+1] = new(big.Rat).Set(acc)
	}
	p := prec + 16
	sum := new(Ball).SetInt64(0)
	base := new(big.Int)
	exp := new(big.Int).SetUint64(s)
	for k := 0; k < n; k++ {
		num := new(big.Rat).Sub(d[k], d[n])
		base.Exp(big.NewInt(int64(k+1)), exp, nil)
		var t, dn Ball
		t.SetRat(num, p)
		dn.SetInt(base)
		t.Div(&t, &dn, p)
		if k%2 == 0 {
			sum.Add(sum, &t, p)
		} else {
			sum.Sub(sum, &t, p)
		}
	}
	var c, tp, dnb Ball
	tp.SetInt64(1)
	tp.MulPow2(&tp, 1-int(s))
	c.SetInt64(1)
	c.Sub(&c, &tp, p)
	dnb.SetRat(d[n], p)
	dnb.Mul(&dnb, &c, p)
	z.Div(sum, &dnb, p)
	z.Neg(z)
	z.AddError2Exp(3 - 254*n/100)
	z.Round(z, prec)
}

// Zeta sets z to a ball containing ζ(t) for all t in s and returns z.
// Exact integer arguments use the fast integer paths (including the exact
// rational values at nonpositive integers); other real arguments require
// either s > 1 or s < 0 (via the functional equation). Balls straddling
// [0, 1], or containing the pole at 1, yield the indeterminate ball.
func (z *Ball) Zeta(s *Ball, prec uint) *Ball {
	if s.mid == nil {
		return z.setIndeterminate()
	}
	if s.IsExact() && !s.mid.IsInf() && s.mid.IsInt() {
		if n, acc := s.mid.Int64(); acc == big.Exact {
			if n >= 0 {
				return z.Set(ZetaUint(uint64(n), prec))
			}
			// ζ(-n) = -B_(n+1)/(n+1)
			m := uint64(-n) + 1
			var b, d Ball
			b.BernoulliBall(uint(m), prec+8)
			d.SetUint64(m)
			z.Div(&b, &d, prec)
			return z.Neg(z)
		}
	}
	switch s.classify() {
	case setPosInf:
		return z.SetInt64(1)
	case setWhole, setNegInf:
		return z.setIndeterminate()
	}
	var one Ball
	one.SetInt64(1)
	var sm1 Ball
	sm1.Sub(s, &one, prec+8)
	if sm1.IsPositive() {
		return z.HurwitzZeta(s, &one, prec)
	}
	if s.IsNegative() {
		// ζ(s) = 2^s π^(s-1) sin(πs/2) Γ(1-s) ζ(1-s)
		p := prec + 24
		var oneMinus Ball
		oneMinus.Sub(&one, s, p)
		var zv Ball
		zv.HurwitzZeta(&oneMinus, &one, p)
		var g Ball
		g.Gamma(&oneMinus, p)
		var h, sn Ball
		h.MulPow2(s, -1)
		h.Mul(&h, piBall(p), p)
		sn.Sin(&h, p)
		var pp, e Ball
		e.Sub(s, &one, p)
		pp.Pow(piBall(p), &e, p)
		var two, tw Ball
		two.SetInt64(2)
		tw.Pow(&two, s, p)
		z.Mul(&tw, &pp, p)
		z.Mul(z, &sn, p)
		z.Mul(z, &g, p)
		z.Mul(z, &zv, p)
		return z.Round(z, prec)
	}
	return z.setIndeterminate()
}

// HurwitzZeta sets z to a ball containing ζ(t, u) for all t in s, u in a,
// and returns z. It requires s > 1 and a > 0; anything else yields the
// indeterminate ball. The evaluation is Euler-Maclaurin: a direct power
// sum to N, the integral and boundary corrections, and Bernoulli-weighted
// derivative terms, with the remainder bounded by twice the first omitted
// term.
func (z *Ball) HurwitzZeta(s, a *Ball, prec uint) *Ball {
	if s.mid == nil || a.mid == nil {
		return z.setIndeterminate()
	}
	if s.classify() != setFinite || a.classify() != setFinite {
		return z.setIndeterminate()
	}
	if !a.IsPositive() {
		return z.setIndeterminate()
	}
	var one Ball
	one.SetInt64(1)
	var sm1 Ball
	sm1.Sub(s, &one, prec+8)
	if !sm1.IsPositive() {
		return z.setIndeterminate()
	}
	p := prec + 16
	N := int(prec)/2 + 8
	M := int(prec)/4 + 4
	var sneg Ball
	sneg.Neg(s)
	sum := new(Ball).SetInt64(0)
	for k := 0; k < N; k++ {
		var kb, b, t Ball
		kb.SetInt64(int64(k))
		b.Add(a, &kb, p)
		t.Pow(&b, &sneg, p)
		sum.Add(sum, &t, p)
	}
	var q, nb Ball
	nb.SetInt64(int64(N))
	q.Add(a, &nb, p)
	var e1, t1 Ball
	e1.Sub(&one, s, p)
	t1.Pow(&q, &e1, p)
	t1.Div(&t1, &sm1, p)
	sum.Add(sum, &t1, p)
	var t2 Ball
	t2.Pow(&q, &sneg, p)
	t2.MulPow2(&t2, -1)
	sum.Add(sum, &t2, p)
	var qinv2 Ball
	qinv2.Mul(&q, &q, p)
	qinv2.Inv(&qinv2, p)
	pw := new(Ball).Pow(&q, &e1, p)
	rising := new(Ball).Set(s)
	fact := big.NewInt(1)
	var last Ball
	for j := 1; ; j++ {
		pw.Mul(pw, &qinv2, p)
		fact.Mul(fact, big.NewInt(int64(2*j-1)))
		fact.Mul(fact, big.NewInt(int64(2*j)))
		var bb, fb, term Ball
		bb.BernoulliBall(uint(2*j), p)
		fb.SetInt(fact)
		term.Mul(&bb, rising, p)
		term.Mul(&term, pw, p)
		term.Div(&term, &fb, p)
		if j > M {
			last.Set(&term)
			break
		}
		sum.Add(sum, &term, p)
		var r1, r2 Ball
		r1.SetInt64(int64(2*j - 1))
		r1.Add(s, &r1, p)
		r2.SetInt64(int64(2 * j))
		r2.Add(s, &r2, p)
		rising.Mul(rising, &r1, p)
		rising.Mul(rising, &r2, p)
	}
	if last.mid == nil || last.mid.IsInf() || last.radInf() {
		return z.setIndeterminate()
	}
	eb := last.absUpper()
	sum.AddError(newRadFloat().Add(eb, eb))
	return z.Round(sum, prec)
}
