package orb

import "math/big"

// Sinh sets z to a ball containing sinh(t) for all t in x and returns z.
func (z *Ball) Sinh(x *Ball, prec uint) *Ball {
	x.SinhCosh(z, nil, prec)
	return z
}

// Cosh sets z to a ball containing cosh(t) for all t in x and returns z.
func (z *Ball) Cosh(x *Ball, prec uint) *Ball {
	x.SinhCosh(nil, z, prec)
	return z
}

// SinhCosh sets sinh and cosh to balls containing the hyperbolic sine and
// cosine of every point of x. Either destination may be nil to skip it.
// Near zero the sine path routes through [Ball.Expm1] so the result keeps
// full relative accuracy despite the cancellation in (e^x - e^-x)/2.
func (x *Ball) SinhCosh(sinh, cosh *Ball, prec uint) {
	if x.mid == nil {
		if sinh != nil {
			sinh.setIndeterminate()
		}
		if cosh != nil {
			cosh.setIndeterminate()
		}
		return
	}
	if x.radInf() {
		if sinh != nil {
			sinh.setWholeLine()
		}
		if cosh != nil {
			cosh.setWholeLine()
		}
		return
	}
	if x.mid.IsInf() {
		if sinh != nil {
			sinh.SetInf(x.mid.Signbit())
		}
		if cosh != nil {
			cosh.SetInf(false)
		}
		return
	}
	p := prec + 8
	small := false
	if x.mid.Sign() == 0 || x.mid.MantExp(nil) <= 0 {
		ub := x.absUpper()
		small = ub.Cmp(new(big.Float).SetInt64(1)) <= 0
	}
	if small {
		// sinh(x) = (expm1(x) - expm1(-x)) / 2
		var a, b, nx Ball
		a.Expm1(x, p)
		nx.Neg(x)
		b.Expm1(&nx, p)
		if sinh != nil {
			sinh.Sub(&a, &b, p)
			sinh.MulPow2(sinh, -1)
			sinh.Round(sinh, prec)
		}
		if cosh != nil {
			// cosh(x) = 1 + (expm1(x) + expm1(-x)) / 2
			var one Ball
			one.SetInt64(1)
			cosh.Add(&a, &b, p)
			cosh.MulPow2(cosh, -1)
			cosh.Add(cosh, &one, prec)
		}
		return
	}
	var e, ei Ball
	e.Exp(x, p)
	ei.Inv(&e, p)
	if sinh != nil {
		sinh.Sub(&e, &ei, p)
		sinh.MulPow2(sinh, -1)
		sinh.Round(sinh, prec)
	}
	if cosh != nil {
		cosh.Add(&e, &ei, p)
		cosh.MulPow2(cosh, -1)
		cosh.Round(cosh, prec)
	}
}

// Tanh sets z to a ball containing tanh(t) for all t in x and returns z.
func (z *Ball) Tanh(x *Ball, prec uint) *Ball {
	if x.mid == nil {
		return z.setIndeterminate()
	}
	if x.radInf() {
		z.mid = new(big.Float)
		z.rad = newRadFloat().SetInt64(1) // tanh range is (-1, 1)
		return z
	}
	if x.mid.IsInf() {
		if x.mid.Signbit() {
			return z.SetInt64(-1)
		}
		return z.SetInt64(1)
	}
	p := prec + 8
	ub := x.absUpper()
	if ub.Cmp(new(big.Float).SetInt64(1)) <= 0 {
		// tanh(x) = u / (u + 2) with u = expm1(2x); exact at x = 0 and
		// cancellation-free for small x
		var u, d, two Ball
		two.SetInt64(2)
		u.MulPow2(x, 1)
		u.Expm1(&u, p)
		d.Add(&u, &two, p)
		return z.Div(&u, &d, prec)
	}
	var s, c Ball
	x.SinhCosh(&s, &c, p)
	z.Div(&s, &c, prec)
	if z.rad != nil && z.rad.Cmp(new(big.Float).SetInt64(1)) > 0 {
		z.mid = new(big.Float)
		z.rad = newRadFloat().SetInt64(1)
	}
	return z
}
