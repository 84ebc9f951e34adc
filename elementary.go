package orb

import (
	"math/big"

	"github.com/ALTree/bigfloat"
)

const (
	// kernelGuard is the number of extra bits the transcendental midpoint
	// kernels are evaluated at.
	kernelGuard = 16
	// kernelUlpShift: the kernels are treated as faithful to within
	// 2^kernelUlpShift ulp at the guarded precision.
	kernelUlpShift = 2
	// expArgMaxExp guards the big.Float exponent range: exp of arguments
	// at or beyond 2^expArgMaxExp is not representable.
	expArgMaxExp = 30
)

// loHi returns outward-rounded finite endpoint floats of x at precision p.
func (x *Ball) loHi(p uint) (lo, hi *big.Float) {
	lo = new(big.Float).SetPrec(p).SetMode(big.ToNegativeInf)
	hi = new(big.Float).SetPrec(p).SetMode(big.ToPositiveInf)
	lo.Sub(x.mid, x.radius())
	hi.Add(x.mid, x.radius())
	return lo, hi
}

// kernelAllowance widens f outward by the kernel error allowance.
func kernelAllowance(f *big.Float, down bool) *big.Float {
	if f.Sign() == 0 || f.IsInf() {
		return f
	}
	e := f.MantExp(nil) - int(f.Prec()) + kernelUlpShift
	a := new(big.Float).SetPrec(radPrec).SetInt64(1)
	a.SetMantExp(a, e)
	g := new(big.Float).SetPrec(f.Prec() + radPrec)
	if down {
		g.SetMode(big.ToNegativeInf).Sub(f, a)
	} else {
		g.SetMode(big.ToPositiveInf).Add(f, a)
	}
	return g
}

// Sqrt sets z to a ball containing sqrt(t) for all t in x and returns z.
// Balls containing negative points yield the indeterminate ball; see
// [Ball.SqrtPos] for the clamping variant.
func (z *Ball) Sqrt(x *Ball, prec uint) *Ball {
	if x.mid == nil || x.ContainsNegative() {
		return z.setIndeterminate()
	}
	if x.mid.IsInf() {
		return z.SetInf(false)
	}
	if x.IsExact() && x.mid.Sign() == 0 {
		z.mid, z.rad = new(big.Float), nil
		return z
	}
	p := prec + 2
	lo, hi := x.loHi(p)
	if lo.Sign() < 0 {
		lo.SetInt64(0) // outward rounding artifact; the set is nonnegative
	}
	slo := new(big.Float).SetPrec(p).SetMode(big.ToNegativeInf).Sqrt(lo)
	shi := new(big.Float).SetPrec(p).SetMode(big.ToPositiveInf).Sqrt(hi)
	return z.SetInterval(slo, shi, prec)
}

// SqrtPos is like [Ball.Sqrt] but treats the input as if negative parts of
// its set did not exist; it is used where a quantity is known to be
// mathematically nonnegative despite numerical error suggesting otherwise.
// An entirely negative input yields the exact ball 0.
func (z *Ball) SqrtPos(x *Ball, prec uint) *Ball {
	if x.mid == nil {
		return z.setIndeterminate()
	}
	if x.IsNonPositive() {
		z.mid, z.rad = new(big.Float), nil
		return z
	}
	if x.IsNonNegative() {
		return z.Sqrt(x, prec)
	}
	if x.radInf() {
		// sqrt of [0, Inf) is [0, Inf); the whole line is a superset
		return z.setWholeLine()
	}
	// clamp the negative part away
	var t Ball
	hi := new(big.Float).SetPrec(prec + 2).SetMode(big.ToPositiveInf)
	hi.Add(x.mid, x.radius())
	t.SetInterval(new(big.Float), hi, prec+2)
	return z.Sqrt(&t, prec)
}

// RSqrt sets z to a ball containing 1/sqrt(t) for all t in x and returns z.
func (z *Ball) RSqrt(x *Ball, prec uint) *Ball {
	var t Ball
	t.Sqrt(x, prec+8)
	return z.Inv(&t, prec)
}

// expKernel returns an enclosure [lo', hi'] of exp over [lo, hi].
func expKernel(lo, hi *big.Float) (klo, khi *big.Float, ok bool) {
	if !lo.IsInf() && lo.Sign() != 0 && lo.MantExp(nil) > expArgMaxExp {
		return nil, nil, false
	}
	if !hi.IsInf() && hi.Sign() != 0 && hi.MantExp(nil) > expArgMaxExp {
		return nil, nil, false
	}
	klo = kernelAllowance(bigfloat.Exp(lo), true)
	if klo.Sign() < 0 {
		klo = new(big.Float) // exp > 0
	}
	khi = kernelAllowance(bigfloat.Exp(hi), false)
	return klo, khi, true
}

// Exp sets z to a ball containing exp(t) for all t in x and returns z.
func (z *Ball) Exp(x *Ball, prec uint) *Ball {
	if x.mid == nil {
		return z.setIndeterminate()
	}
	if x.radInf() {
		return z.setWholeLine()
	}
	if x.mid.IsInf() {
		if x.mid.Signbit() {
			z.mid, z.rad = new(big.Float), nil // exp(-Inf) = 0, exactly
			return z
		}
		return z.SetInf(false)
	}
	lo, hi := x.loHi(prec + kernelGuard)
	klo, khi, ok := expKernel(lo, hi)
	if !ok {
		return z.setWholeLine() // argument beyond the representable range
	}
	return z.SetInterval(klo, khi, prec)
}

// Log sets z to a ball containing log(t) for all t in x and returns z.
// Balls containing nonpositive points yield the indeterminate ball.
func (z *Ball) Log(x *Ball, prec uint) *Ball {
	if x.mid == nil || !x.IsPositive() {
		return z.setIndeterminate()
	}
	if x.mid.IsInf() {
		return z.SetInf(false)
	}
	lo, hi := x.loHi(prec + kernelGuard)
	if lo.Sign() <= 0 {
		// outward rounding collapsed the lower endpoint onto zero
		return z.setWholeLine()
	}
	klo := kernelAllowance(bigfloat.Log(lo), true)
	khi := kernelAllowance(bigfloat.Log(hi), false)
	return z.SetInterval(klo, khi, prec)
}

// Expm1 sets z to a ball containing exp(t)-1 for all t in x and returns z.
// For small arguments this is far tighter than Exp followed by Sub, and the
// hyperbolic functions rely on it near zero.
func (z *Ball) Expm1(x *Ball, prec uint) *Ball {
	if x.mid == nil {
		return z.setIndeterminate()
	}
	if x.radInf() || x.mid.IsInf() {
		var t, one Ball
		one.SetInt64(1)
		t.Exp(x, prec+2)
		return z.Sub(&t, &one, prec)
	}
	ub := newRadFloat().Abs(x.mid)
	ub.Add(ub, x.radius())
	if ub.Cmp(pow2(-1)) > 0 {
		var t, one Ball
		one.SetInt64(1)
		t.Exp(x, prec+4)
		return z.Sub(&t, &one, prec)
	}
	// Maclaurin sum x + x^2/2! + ... in ball arithmetic; the tail after N
	// terms is below ub^(N+1)/(N+1)! / (1-ub) <= 2*ub^(N+1)/(N+1)!.
	p := prec + 16
	sum := new(Ball).SetInt64(0)
	term := new(Ball).Set(x)
	tb := newRadFloat().Set(ub) // upper bound on |term|
	var k int64 = 1
	for {
		sum.Add(sum, term, p)
		k++
		var kb Ball
		kb.SetInt64(k)
		term.Mul(term, x, p)
		term.Div(term, &kb, p)
		tb.Mul(tb, ub)
		tb.Quo(tb, new(big.Float).SetInt64(k))
		if tb.MantExp(nil) < -int(p) || tb.Sign() == 0 {
			break
		}
	}
	tail := newRadFloat().Add(tb, tb)
	sum.AddError(tail)
	return z.Round(sum, prec)
}

// Log1p sets z to a ball containing log(1+t) for all t in x and returns z.
func (z *Ball) Log1p(x *Ball, prec uint) *Ball {
	if x.mid == nil {
		return z.setIndeterminate()
	}
	var onePlus, one Ball
	one.SetInt64(1)
	if x.radInf() || x.mid.IsInf() {
		onePlus.Add(x, &one, prec+2)
		return z.Log(&onePlus, prec)
	}
	ub := newRadFloat().Abs(x.mid)
	ub.Add(ub, x.radius())
	if ub.Cmp(pow2(-1)) > 0 {
		onePlus.Add(x, &one, prec+kernelGuard)
		return z.Log(&onePlus, prec)
	}
	// Maclaurin sum x - x^2/2 + x^3/3 - ... in ball arithmetic; the tail
	// after N terms is below ub^(N+1)/(N+1) / (1-ub) <= 2*ub^(N+1)/(N+1).
	p := prec + 16
	sum := new(Ball).SetInt64(0)
	pow := new(Ball).Set(x)
	tb := newRadFloat().Set(ub)
	var k int64 = 1
	for {
		var t, kb Ball
		kb.SetInt64(k)
		t.Div(pow, &kb, p)
		if k%2 == 0 {
			sum.Sub(sum, &t, p)
		} else {
			sum.Add(sum, &t, p)
		}
		k++
		pow.Mul(pow, x, p)
		tb.Mul(tb, ub)
		if tb.MantExp(nil) < -int(p)-4 || tb.Sign() == 0 {
			break
		}
	}
	tail := newRadFloat().Add(tb, tb)
	sum.AddError(tail)
	return z.Round(sum, prec)
}

// PowInt sets z to a ball containing t^n for all t in x, via binary
// exponentiation, and returns z. x^0 is the exact ball 1.
func (z *Ball) PowInt(x *Ball, n int64, prec uint) *Ball {
	if x.mid == nil {
		return z.setIndeterminate()
	}
	if n == 0 {
		return z.SetInt64(1)
	}
	neg := n < 0
	if neg {
		n = -n
	}
	// guard bits proportional to the multiplication count
	p := prec + 8
	for m := n; m > 1; m >>= 1 {
		p += 2
	}
	acc := new(Ball).SetInt64(1)
	base := new(Ball).Set(x)
	first := true
	for n > 0 {
		if n&1 == 1 {
			if first {
				acc.Set(base)
				first = false
			} else {
				acc.Mul(acc, base, p)
			}
		}
		n >>= 1
		if n > 0 {
			base.Mul(base, base, p)
		}
	}
	if neg {
		return z.Inv(acc, prec)
	}
	return z.Round(acc, prec)
}

// Pow sets z to a ball containing a^b for all a in x, b in y, and returns
// z. Exact small integer and half-integer exponents use binary
// exponentiation (valid for any base, and negative bases with integer
// exponents); anything else evaluates exp(b*log(a)) and requires a
// strictly positive base.
func (z *Ball) Pow(x, y *Ball, prec uint) *Ball {
	if x.mid == nil || y.mid == nil {
		return z.setIndeterminate()
	}
	if y.IsInt() && !y.mid.IsInf() {
		if n, acc := y.mid.Int64(); acc == big.Exact {
			return z.PowInt(x, n, prec)
		}
	}
	// half-integer: 2y integral
	if y.IsExact() && !y.mid.IsInf() {
		d := new(big.Float).SetPrec(y.mid.MinPrec() + 1).Add(y.mid, y.mid)
		if d.IsInt() {
			if n, acc := d.Int64(); acc == big.Exact && x.IsNonNegative() {
				var s Ball
				s.Sqrt(x, prec+uint(8))
				return z.PowInt(&s, n, prec)
			}
		}
	}
	if !x.IsPositive() {
		return z.setIndeterminate()
	}
	var l, e Ball
	l.Log(x, prec+kernelGuard)
	e.Mul(y, &l, prec+kernelGuard)
	return z.Exp(&e, prec)
}
