package orb

import "math/big"

type setClass int

const (
	setNaN setClass = iota
	setWhole
	setPosInf // exactly the point +Inf
	setNegInf
	setFinite
)

func (x *Ball) classify() setClass {
	if x.mid == nil {
		return setNaN
	}
	if x.radInf() {
		return setWhole
	}
	if x.mid.IsInf() {
		if x.mid.Signbit() {
			return setNegInf
		}
		return setPosInf
	}
	return setFinite
}

// endpoints returns the exact rational endpoints of a finite ball.
func (x *Ball) endpoints() (lo, hi *big.Rat) {
	m, _ := x.mid.Rat(nil)
	r, _ := x.radius().Rat(nil)
	lo = new(big.Rat).Sub(m, r)
	hi = new(big.Rat).Add(m, r)
	return lo, hi
}

// Contains reports whether the set for y is a subset of the set for x.
// An indeterminate x contains anything; an indeterminate y is contained
// in nothing else.
func (x *Ball) Contains(y *Ball) bool {
	cx, cy := x.classify(), y.classify()
	switch {
	case cx == setNaN:
		return true
	case cy == setNaN:
		return false
	case cx == setWhole:
		return true
	case cy == setWhole:
		return false
	case cx == setPosInf || cx == setNegInf:
		return cx == cy
	case cy == setPosInf || cy == setNegInf:
		return false
	}
	xlo, xhi := x.endpoints()
	ylo, yhi := y.endpoints()
	return xlo.Cmp(ylo) <= 0 && yhi.Cmp(xhi) <= 0
}

// Overlaps reports whether the sets for x and y intersect. Either operand
// being indeterminate makes this true.
func (x *Ball) Overlaps(y *Ball) bool {
	cx, cy := x.classify(), y.classify()
	switch {
	case cx == setNaN || cy == setNaN:
		return true
	case cx == setWhole || cy == setWhole:
		return true
	case cx == setPosInf || cx == setNegInf:
		return cx == cy
	case cy == setPosInf || cy == setNegInf:
		return false
	}
	xlo, xhi := x.endpoints()
	ylo, yhi := y.endpoints()
	return xlo.Cmp(yhi) <= 0 && ylo.Cmp(xhi) <= 0
}

// Equal reports whether x and y have identical midpoints and radii.
// Indeterminate balls are never equal to anything, themselves included.
func (x *Ball) Equal(y *Ball) bool {
	if x.mid == nil || y.mid == nil {
		return false
	}
	if x.mid.Cmp(y.mid) != 0 {
		return false
	}
	return x.radius().Cmp(y.radius()) == 0
}

// ContainsZero reports whether the set for x includes zero (true for
// indeterminate balls).
func (x *Ball) ContainsZero() bool { return x.containsZero() }

// ContainsNegative reports whether any point of x is negative (true for
// indeterminate balls).
func (x *Ball) ContainsNegative() bool {
	switch x.classify() {
	case setNaN, setWhole, setNegInf:
		return true
	case setPosInf:
		return false
	}
	lo, _ := x.endpoints()
	return lo.Sign() < 0
}

// ContainsPositive reports whether any point of x is positive (true for
// indeterminate balls).
func (x *Ball) ContainsPositive() bool {
	switch x.classify() {
	case setNaN, setWhole, setPosInf:
		return true
	case setNegInf:
		return false
	}
	_, hi := x.endpoints()
	return hi.Sign() > 0
}

// ContainsNonNegative reports whether any point of x is >= 0 (true for
// indeterminate balls).
func (x *Ball) ContainsNonNegative() bool {
	switch x.classify() {
	case setNaN, setWhole, setPosInf:
		return true
	case setNegInf:
		return false
	}
	_, hi := x.endpoints()
	return hi.Sign() >= 0
}

// ContainsNonPositive reports whether any point of x is <= 0 (true for
// indeterminate balls).
func (x *Ball) ContainsNonPositive() bool {
	switch x.classify() {
	case setNaN, setWhole, setNegInf:
		return true
	case setPosInf:
		return false
	}
	lo, _ := x.endpoints()
	return lo.Sign() <= 0
}

// IsPositive reports whether every point of x is positive (false for
// indeterminate balls).
func (x *Ball) IsPositive() bool {
	switch x.classify() {
	case setPosInf:
		return true
	case setFinite:
		lo, _ := x.endpoints()
		return lo.Sign() > 0
	}
	return false
}

// IsNonNegative reports whether every point of x is >= 0 (false for
// indeterminate balls).
func (x *Ball) IsNonNegative() bool {
	switch x.classify() {
	case setPosInf:
		return true
	case setFinite:
		lo, _ := x.endpoints()
		return lo.Sign() >= 0
	}
	return false
}

// IsNegative reports whether every point of x is negative (false for
// indeterminate balls).
func (x *Ball) IsNegative() bool {
	switch x.classify() {
	case setNegInf:
		return true
	case setFinite:
		_, hi := x.endpoints()
		return hi.Sign() < 0
	}
	return false
}

// IsNonPositive reports whether every point of x is <= 0 (false for
// indeterminate balls).
func (x *Ball) IsNonPositive() bool {
	switch x.classify() {
	case setNegInf:
		return true
	case setFinite:
		_, hi := x.endpoints()
		return hi.Sign() <= 0
	}
	return false
}

// ratFloor returns floor(q) as a big.Int.
func ratFloor(q *big.Rat) *big.Int {
	// big.Int.Div is Euclidean; with the always-positive denominator it is
	// exactly floor division.
	return new(big.Int).Div(q.Num(), q.Denom())
}

func ratCeil(q *big.Rat) *big.Int {
	n := ratFloor(new(big.Rat).Neg(q))
	return n.Neg(n)
}

// UniqueInt reports whether exactly one integer lies in the set for x, and
// if so stores it in out (which must be non-nil).
func (x *Ball) UniqueInt(out *big.Int) bool {
	if x.classify() != setFinite {
		return false
	}
	lo, hi := x.endpoints()
	a, b := ratCeil(lo), ratFloor(hi)
	if a.Cmp(b) != 0 {
		return false
	}
	out.Set(a)
	return true
}
