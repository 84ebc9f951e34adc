package orb

import (
	"math"
	"math/big"

	"github.com/joeycumines/orb/internal/series"
)

// polylogDirect sums Li_s(x) = Σ x^k / k^s term by term in ball
// arithmetic. Each k^(-s) is a ball power, so the radius of the order s
// propagates through every kept term; the truncation tail is bounded at
// the lower endpoint of the order ball via the term-ratio bound
// U(k) = |x| (1+1/k)^max(0,-σ_lo), which for k past kmin stays below
// |x| e^(1/8) < 1 given |x| <= 4/5.
func polylogDirect(res *Ball, s, x *Ball, prec uint) *Ball {
	p := prec + 16
	az := x.absUpper()
	slo := new(big.Float).SetPrec(64).SetMode(big.ToNegativeInf)
	slo.Sub(s.mid, s.radius())
	f, _ := slo.Float64()
	if math.IsInf(f, 0) || f < -1e6 {
		return res.setIndeterminate()
	}
	kmin := int64(16)
	if f < 0 {
		kmin += 8 * int64(math.Ceil(-f))
	}
	u := newRadFloat().Mul(az, big.NewFloat(1.14))
	one := new(big.Float).SetInt64(1)
	if u.Cmp(one) >= 0 {
		return res.setIndeterminate()
	}
	gap := newRadDown().Sub(one, u)
	mult := newRadFloat().Quo(u, gap)
	var sneg Ball
	sneg.Neg(s)
	sum := new(Ball).SetInt64(0)
	zk := new(Ball).Set(x)
	eb := newRadFloat()
	kcap := kmin + 64*int64(p) + 1024
	for k := int64(1); ; k++ {
		var kb, t Ball
		kb.SetInt64(k)
		t.Pow(&kb, &sneg, p)
		t.Mul(&t, zk, p)
		sum.Add(sum, &t, p)
		zk.Mul(zk, x, p)
		eb = t.absUpper()
		if k >= kmin && (eb.Sign() == 0 || eb.MantExp(nil) < -int(p)-4 || k >= kcap) {
			break
		}
	}
	sum.AddError(newRadFloat().Mul(eb, mult))
	return res.Round(sum, prec)
}

// polylogNegInt evaluates Li_(-m)(x) = P_m(x) / (1-x)^(m+1), where the
// integer-coefficient polynomials follow P_0 = x and
// P_(j+1) = x ((1-x) P'_j + (j+1) P_j).
func polylogNegInt(res *Ball, m int64, x *Ball, prec uint) *Ball {
	coeffs := []*big.Int{big.NewInt(0), big.NewInt(1)}
	for j := int64(0); j < m; j++ {
		n := len(coeffs)
		next := make([]*big.Int, n+1)
		for i := range next {
			next[i] = new(big.Int)
		}
		for i := 1; i < n; i++ {
			d := new(big.Int).Mul(big.NewInt(int64(i)), coeffs[i])
			next[i-1].Add(next[i-1], d)
			next[i].Sub(next[i], d)
		}
		t := new(big.Int)
		for i := 0; i < n; i++ {
			next[i].Add(next[i], t.Mul(big.NewInt(j+1), coeffs[i]))
		}
		shifted := make([]*big.Int, n+2)
		shifted[0] = new(big.Int)
		copy(shifted[1:], next)
		coeffs = shifted
	}
	p := prec + 2*uint(clog2(uint(m+2))) + 8
	v := new(Ball).SetInt64(0)
	for i := len(coeffs) - 1; i >= 0; i-- {
		v.Mul(v, x, p)
		var cb Ball
		cb.SetInt(coeffs[i])
		v.Add(v, &cb, p)
	}
	var one, den Ball
	one.SetInt64(1)
	den.Sub(&one, x, p)
	den.PowInt(&den, m+1, p)
	return res.Div(v, &den, prec)
}

// bernoulliHalfOverFact returns the first n+1 coefficients of the
// generating function t e^(t/2) / (e^t - 1): entry k is B_k(1/2)/k!. The
// formal pole is cancelled exactly by dividing the exp-minus-one series by
// its leading zero before inverting.
func bernoulliHalfOverFact(n int) []*big.Rat {
	ln := n + 1
	em1 := series.New(ln)
	f := big.NewRat(1, 1)
	for k := 1; k < ln; k++ {
		f.Quo(f, new(big.Rat).SetInt64(int64(k)))
		em1.SetCoeff(k, f)
	}
	em1.ShiftDiv(em1, 1)
	g := series.New(ln).Inv(em1)
	half := series.New(ln)
	half.SetCoeff(1, big.NewRat(1, 2))
	g.Mul(g, series.New(ln).Exp(half))
	out := make([]*big.Rat, ln)
	for k := range out {
		out[k] = g.Coeff(k)
	}
	return out
}

// polylogInversion evaluates Li_n(x) for integer n >= 2 and x <= -5/4 from
// the real form of the inversion formula
//
//	Li_n(x) + (-1)^n Li_n(1/x) = -Σ_(even k <= n) (-1)^(k/2) B_k(1/2)
//	                              (2π)^k w^(n-k) / (k! (n-k)!)
//
// with w = log(-x); only even k survive because B_k(1/2) vanishes for odd
// k. The reflected point 1/x lands in the direct series regime.
func polylogInversion(res *Ball, n int64, x *Ball, prec uint) *Ball {
	p := prec + 24
	var nx, w Ball
	nx.Neg(x)
	w.Log(&nx, p)
	var xi, sn, li Ball
	xi.Inv(x, p)
	sn.SetInt64(n)
	polylogDirect(&li, &sn, &xi, p)
	bh := bernoulliHalfOverFact(int(n))
	var twoPi Ball
	twoPi.MulPow2(piBall(p), 1)
	sum := new(Ball).SetInt64(0)
	for k := int64(0); k <= n; k += 2 {
		if bh[k].Sign() == 0 {
			continue
		}
		c := new(big.Rat).Set(bh[k])
		c.Quo(c, new(big.Rat).SetInt(new(big.Int).MulRange(1, n-k)))
		if (k/2)%2 == 1 {
			c.Neg(c)
		}
		var cb, tp, wp, t Ball
		cb.SetRat(c, p)
		tp.PowInt(&twoPi, k, p)
		wp.PowInt(&w, n-k, p)
		t.Mul(&cb, &tp, p)
		t.Mul(&t, &wp, p)
		sum.Add(sum, &t, p)
	}
	res.Neg(sum)
	if n%2 == 0 {
		return res.Sub(res, &li, prec)
	}
	return res.Add(res, &li, prec)
}

// PolyLog sets z to a ball containing Li_s(t) for all orders in s and
// points t in x, and returns z.
//
// Exact integer orders have dedicated paths: closed rational forms for
// s <= 0 (valid for any x away from 1), -log(1-x) for s = 1, and for
// s >= 2 either the direct series (|x| <= 3/4) or the inversion formula
// (x <= -5/4). Other orders use the direct series when |x| <= 3/4.
// Everything else, including inexact order balls containing an integer
// while x sits in the continuation regime, yields the indeterminate ball:
// the real arithmetic here cannot express those branch structures, and a
// wide honest answer does not exist.
func (z *Ball) PolyLog(s, x *Ball, prec uint) *Ball {
	if s.mid == nil || x.mid == nil {
		return z.setIndeterminate()
	}
	if s.classify() != setFinite || x.classify() != setFinite {
		return z.setIndeterminate()
	}
	threeQ := big.NewFloat(0.75)
	if s.IsExact() && s.mid.IsInt() {
		if n, acc := s.mid.Int64(); acc == big.Exact {
			switch {
			case n <= 0:
				return polylogNegInt(z, -n, x, prec)
			case n == 1:
				var one, t Ball
				one.SetInt64(1)
				t.Sub(&one, x, prec+8)
				z.Log(&t, prec)
				return z.Neg(z)
			default:
				if x.absUpper().Cmp(threeQ) <= 0 {
					return polylogDirect(z, s, x, prec)
				}
				hi := newRadFloat().Add(x.mid, x.radius())
				if hi.Cmp(big.NewFloat(-1.25)) <= 0 {
					return polylogInversion(z, n, x, prec)
				}
				return z.setIndeterminate()
			}
		}
	}
	if x.absUpper().Cmp(threeQ) <= 0 {
		return polylogDirect(z, s, x, prec)
	}
	return z.setIndeterminate()
}
