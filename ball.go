package orb

import (
	"math"
	"math/big"
)

const (
	// radPrec is the fixed internal precision for radius computations.
	// Radii are magnitudes rounded toward +Inf; a handful of bits is enough
	// that the "radius of the radius" never compounds.
	radPrec = 30

	// PrecExact may be passed as the precision to arithmetic operations to
	// request an exact (unrounded) midpoint. The operation panics if the
	// exact result is not representable in finite memory.
	PrecExact = uint(math.MaxUint32)

	// MaxPrec is the largest usable working precision, in bits.
	MaxPrec = uint(math.MaxUint32) - 1
)

// Ball is a real number known to within a radius: the set
// { x : |x - mid| <= rad }.
//
// A nil midpoint represents NaN, i.e. an indeterminate ball that could be
// any real number or no real number at all; see [Ball.SetIndeterminate].
// A nil radius represents an exact (zero radius) ball. The radius is never
// negative and never NaN; it may be +Inf, in which case the ball covers the
// whole extended real line regardless of midpoint.
//
// The zero value of Ball is the exact ball 0. Balls never share mutable
// storage: operations allocate fresh midpoint/radius values for the result.
type Ball struct {
	mid *big.Float // nil means NaN
	rad *big.Float // nil means zero; always >= 0, never NaN
}

var floatZero = new(big.Float) // treated as read-only

func newRadFloat() *big.Float {
	return new(big.Float).SetPrec(radPrec).SetMode(big.ToPositiveInf)
}

// newRadDown is used for quantities that must be under-approximated while
// deriving an upper bound, e.g. the |y|-b denominator factor in division.
func newRadDown() *big.Float {
	return new(big.Float).SetPrec(radPrec).SetMode(big.ToNegativeInf)
}

func newMid(prec uint) *big.Float {
	if prec == 0 || prec > MaxPrec {
		panic(`orb: invalid precision`)
	}
	return new(big.Float).SetPrec(prec)
}

// halfUlp returns 2^(exp(f)-prec-1), an upper bound on the round-to-nearest
// error of a prec-bit result with f's binary exponent.
func halfUlp(f *big.Float, prec uint) *big.Float {
	if f.Sign() == 0 || f.IsInf() {
		return newRadFloat()
	}
	exp := f.MantExp(nil)
	u := newRadFloat().SetInt64(1)
	return u.SetMantExp(u, exp-int(prec)-1)
}

// ulp is like halfUlp but for directed rounding (one full ulp).
func ulp(f *big.Float, prec uint) *big.Float {
	if f.Sign() == 0 || f.IsInf() {
		return newRadFloat()
	}
	exp := f.MantExp(nil)
	u := newRadFloat().SetInt64(1)
	return u.SetMantExp(u, exp-int(prec))
}

// pow2 returns 2^e as a radius-precision magnitude.
func pow2(e int) *big.Float {
	u := newRadFloat().SetInt64(1)
	return u.SetMantExp(u, e)
}

func (x *Ball) isNaN() bool { return x.mid == nil }

// radius returns the radius for reading, substituting zero for nil.
// The result must not be mutated.
func (x *Ball) radius() *big.Float {
	if x.rad == nil {
		return floatZero
	}
	return x.rad
}

func (x *Ball) radInf() bool { return x.rad != nil && x.rad.IsInf() }

// setIndeterminate is the internal form of SetIndeterminate.
func (z *Ball) setIndeterminate() *Ball {
	z.mid = nil
	z.rad = newRadFloat().SetInf(false)
	return z
}

// setWholeLine sets z to the canonical whole-line ball [0 +/- Inf].
func (z *Ball) setWholeLine() *Ball {
	z.mid = new(big.Float)
	z.rad = newRadFloat().SetInf(false)
	return z
}

// Set sets z to a copy of x and returns z.
func (z *Ball) Set(x *Ball) *Ball {
	if x.mid == nil {
		z.mid = nil
	} else {
		z.mid = new(big.Float).Copy(x.mid)
	}
	if x.rad == nil {
		z.rad = nil
	} else {
		z.rad = new(big.Float).Copy(x.rad)
	}
	return z
}

// SetInt64 sets z to the exact ball v and returns z.
func (z *Ball) SetInt64(v int64) *Ball {
	z.mid = new(big.Float).SetInt64(v)
	z.rad = nil
	return z
}

// SetUint64 sets z to the exact ball v and returns z.
func (z *Ball) SetUint64(v uint64) *Ball {
	z.mid = new(big.Float).SetUint64(v)
	z.rad = nil
	return z
}

// SetInt sets z to the exact ball v and returns z.
func (z *Ball) SetInt(v *big.Int) *Ball {
	z.mid = new(big.Float).SetInt(v)
	z.rad = nil
	return z
}

// SetRat sets z to v correctly rounded to prec bits and returns z. The
// radius is the rounding error bound, zero if the conversion was exact.
func (z *Ball) SetRat(v *big.Rat, prec uint) *Ball {
	m := newMid(prec).SetRat(v)
	z.mid = m
	z.rad = nil
	if m.Acc() != big.Exact {
		z.rad = halfUlp(m, prec)
	}
	return z
}

// SetFloat sets z to the exact ball f and returns z. A nil f yields an
// indeterminate ball.
func (z *Ball) SetFloat(f *big.Float) *Ball {
	if f == nil {
		return z.setIndeterminate()
	}
	z.mid = new(big.Float).Copy(f)
	z.rad = nil
	return z
}

// SetFloat64 sets z to the exact ball f and returns z. NaN yields an
// indeterminate ball.
func (z *Ball) SetFloat64(f float64) *Ball {
	if math.IsNaN(f) {
		return z.setIndeterminate()
	}
	z.mid = new(big.Float).SetFloat64(f)
	z.rad = nil
	return z
}

// SetInf sets z to the point at +Inf (signbit false) or -Inf and returns z.
func (z *Ball) SetInf(signbit bool) *Ball {
	z.mid = new(big.Float).SetInf(signbit)
	z.rad = nil
	return z
}

// SetIndeterminate sets z to the indeterminate (NaN midpoint) ball and
// returns z. Indeterminate balls are contagious through arithmetic and are
// treated by the predicates as "could be anything".
func (z *Ball) SetIndeterminate() *Ball {
	return z.setIndeterminate()
}

// SetInterval sets z to the smallest ball containing [lo, hi], with the
// midpoint rounded to prec bits, and returns z. It panics if lo > hi.
// Infinite endpoints of opposite sign yield the whole-line ball.
func (z *Ball) SetInterval(lo, hi *big.Float, prec uint) *Ball {
	if lo.Cmp(hi) > 0 {
		panic(`orb: set interval: lo > hi`)
	}
	if lo.IsInf() || hi.IsInf() {
		if lo.IsInf() && hi.IsInf() && lo.Signbit() == hi.Signbit() {
			// degenerate: the point at the (shared) infinity
			z.mid = new(big.Float).Copy(lo)
			z.rad = nil
			return z
		}
		return z.setWholeLine()
	}
	m := newMid(prec)
	m.Add(lo, hi)
	acc := m.Acc()
	half := newMid(prec)
	half.SetMantExp(m, -1) // exact halving
	z.mid = half
	// rad covers max(hi-mid, mid-lo), plus the midpoint rounding error
	r1 := newRadFloat().Sub(hi, half)
	r2 := newRadFloat().Sub(half, lo)
	if r1.Cmp(r2) < 0 {
		r1 = r2
	}
	if r1.Sign() < 0 {
		r1.SetInt64(0)
	}
	if acc != big.Exact {
		r1.Add(r1, halfUlp(half, prec))
	}
	z.rad = r1
	return z
}

// Mid returns a copy of the midpoint, or nil if the ball is indeterminate.
func (x *Ball) Mid() *big.Float {
	if x.mid == nil {
		return nil
	}
	return new(big.Float).Copy(x.mid)
}

// Rad returns a copy of the radius. It is never nil and never negative.
func (x *Ball) Rad() *big.Float {
	return new(big.Float).Copy(x.radius())
}

// IsNaN reports whether the ball is indeterminate (NaN midpoint).
func (x *Ball) IsNaN() bool { return x.mid == nil }

// IsExact reports whether the radius is zero (and the ball determinate).
func (x *Ball) IsExact() bool {
	return x.mid != nil && (x.rad == nil || x.rad.Sign() == 0)
}

// IsFinite reports whether both midpoint and radius are finite.
func (x *Ball) IsFinite() bool {
	return x.mid != nil && !x.mid.IsInf() && !x.radInf()
}

// IsZero reports whether the ball is exactly the point 0.
func (x *Ball) IsZero() bool {
	return x.IsExact() && x.mid.Sign() == 0
}

// IsInt reports whether the ball is an exact integer point.
func (x *Ball) IsInt() bool {
	return x.IsExact() && !x.mid.IsInf() && x.mid.IsInt()
}

// Round rounds the midpoint of x to prec bits, adds the rounding error to
// the radius, sets z to the result, and returns z. Rounding a ball already
// representable at prec bits is a no-op (bit identical).
func (z *Ball) Round(x *Ball, prec uint) *Ball {
	if x.mid == nil {
		return z.setIndeterminate()
	}
	m := newMid(prec).Set(x.mid)
	acc := m.Acc()
	z.mid = m
	if x.rad == nil && acc == big.Exact {
		z.rad = nil
		return z
	}
	r := newRadFloat().Set(x.radius())
	if acc != big.Exact {
		r.Add(r, halfUlp(m, prec))
	}
	z.rad = r
	return z
}

// Trim sets z to a ball containing x whose midpoint carries no more
// precision than the radius justifies, and returns z. The discarded
// midpoint bits are absorbed into the radius, so trimming never loses
// containment; it only cheapens later arithmetic on low-accuracy balls.
func (z *Ball) Trim(x *Ball) *Ball {
	if x.mid == nil {
		return z.setIndeterminate()
	}
	acc := x.RelAccuracyBits()
	if acc >= AccuracyMax || acc <= 0 {
		return z.Set(x)
	}
	p := uint(acc) + 16
	if p >= x.mid.MinPrec() {
		return z.Set(x)
	}
	return z.Round(x, p)
}

// AddError widens the radius of z by |e| and returns z. A nil or NaN e sets
// z indeterminate.
func (z *Ball) AddError(e *big.Float) *Ball {
	if e == nil {
		return z.setIndeterminate()
	}
	if z.mid == nil {
		return z
	}
	r := newRadFloat().Abs(e)
	if z.rad != nil {
		r.Add(r, z.rad)
	}
	z.rad = r
	return z
}

// AddErrorRat widens the radius of z by |e| and returns z.
func (z *Ball) AddErrorRat(e *big.Rat) *Ball {
	r := newRadFloat().SetRat(e)
	return z.AddError(r)
}

// AddError2Exp widens the radius of z by 2^e and returns z.
func (z *Ball) AddError2Exp(e int) *Ball {
	return z.AddError(pow2(e))
}

// MulPow2 sets z to x * 2^e, which is always exact, and returns z.
func (z *Ball) MulPow2(x *Ball, e int) *Ball {
	if x.mid == nil {
		return z.setIndeterminate()
	}
	m := new(big.Float).Copy(x.mid)
	if !m.IsInf() && m.Sign() != 0 {
		m.SetMantExp(m, e)
	}
	z.mid = m
	if x.rad == nil {
		z.rad = nil
		return z
	}
	r := new(big.Float).Copy(x.rad)
	if !r.IsInf() && r.Sign() != 0 {
		r.SetMantExp(r, e)
	}
	z.rad = r
	return z
}

// Neg sets z to -x (exact) and returns z.
func (z *Ball) Neg(x *Ball) *Ball {
	if x.mid == nil {
		return z.setIndeterminate()
	}
	z.mid = new(big.Float).Neg(x.mid)
	if x.rad == nil {
		z.rad = nil
	} else {
		z.rad = new(big.Float).Copy(x.rad)
	}
	return z
}

// Abs sets z to a ball containing |t| for all t in x and returns z. The
// result is [|mid| +/- rad], a superset of the exact image when x straddles
// zero.
func (z *Ball) Abs(x *Ball) *Ball {
	if x.mid == nil {
		return z.setIndeterminate()
	}
	z.mid = new(big.Float).Abs(x.mid)
	if x.rad == nil {
		z.rad = nil
	} else {
		z.rad = new(big.Float).Copy(x.rad)
	}
	return z
}

// String formats the ball as "[mid +/- rad]", using the shortest decimal
// representations that round-trip. Indeterminate balls format as "nan".
func (x *Ball) String() string {
	if x.mid == nil {
		return `nan`
	}
	return `[` + x.mid.Text('g', -1) + ` +/- ` + x.radius().Text('g', -1) + `]`
}

// Text is like [Ball.String] with caller-controlled midpoint formatting;
// format and digits follow [big.Float.Text]. The radius always prints with
// a handful of digits, which is all it carries.
func (x *Ball) Text(format byte, digits int) string {
	if x.mid == nil {
		return `nan`
	}
	return `[` + x.mid.Text(format, digits) + ` +/- ` + x.radius().Text('g', 5) + `]`
}
