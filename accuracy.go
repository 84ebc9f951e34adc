package orb

import "math"

const (
	// AccuracyMax is returned by RelAccuracyBits for exact balls.
	AccuracyMax = int64(math.MaxInt32)
	// AccuracyMin is returned by RelAccuracyBits for balls carrying no
	// relative information (indeterminate, infinite radius, zero midpoint
	// with nonzero radius).
	AccuracyMin = -AccuracyMax
)

// RelAccuracyBits returns the approximate number of accurate relative bits
// in x: the binary exponent of the midpoint, minus that of the radius,
// minus one, clamped to [AccuracyMin, AccuracyMax]. Exact balls report
// AccuracyMax. Callers use this to drive precision-doubling retries; see
// [ZivEval].
func (x *Ball) RelAccuracyBits() int64 {
	if x.mid == nil {
		return AccuracyMin
	}
	if x.rad == nil || x.rad.Sign() == 0 {
		return AccuracyMax
	}
	if x.rad.IsInf() {
		return AccuracyMin
	}
	if x.mid.IsInf() {
		return AccuracyMax
	}
	if x.mid.Sign() == 0 {
		return AccuracyMin
	}
	acc := int64(x.mid.MantExp(nil)) - int64(x.rad.MantExp(nil)) - 1
	if acc > AccuracyMax {
		return AccuracyMax
	}
	if acc < AccuracyMin {
		return AccuracyMin
	}
	return acc
}

// ZivEval evaluates f at increasing guard precision until the result
// carries at least prec relative bits, then rounds it to prec bits. Guard
// bits double on each retry (Ziv's strategy). If the guard exceeds a cap
// proportional to prec the last (valid, but wide) result is returned: a
// single evaluation can return more error than needed, never less
// correctness.
func ZivEval(prec uint, f func(prec uint) *Ball) *Ball {
	guard := uint(8)
	guardCap := 4*prec + 256
	for {
		z := f(prec + guard)
		if z.RelAccuracyBits() >= int64(prec) || guard >= guardCap {
			return z.Round(z, prec)
		}
		guard *= 2
	}
}
