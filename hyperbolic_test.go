package orb

import (
	"math"
	"testing"
)

func TestSinhCosh(t *testing.T) {
	for _, v := range []float64{0, 1e-20, 0.5, -0.5, 1, -3, 20} {
		var s, c Ball
		ballOf(v, 0).SinhCosh(&s, &c, 64)
		tol := math.Cosh(v) * 1e-14
		mustBeClose(t, &s, math.Sinh(v), tol)
		mustBeClose(t, &c, math.Cosh(v), tol)
	}
	if got := new(Ball).Sinh(new(Ball).SetInt64(0), 64); !got.ContainsZero() {
		t.Fatal(`sinh(0) must contain 0`)
	}
	var s, c Ball
	new(Ball).SetInf(true).SinhCosh(&s, &c, 64)
	if !s.Equal(new(Ball).SetInf(true)) || !c.Equal(new(Ball).SetInf(false)) {
		t.Fatalf(`sinh/cosh(-inf): got %v, %v`, &s, &c)
	}
}

// TestSinh_smallRelativeAccuracy is the reason the small path routes
// through Expm1: exp(x)-exp(-x) cancels catastrophically near zero.
func TestSinh_smallRelativeAccuracy(t *testing.T) {
	got := new(Ball).Sinh(ballOf(1e-25, 0), 64)
	if got.RelAccuracyBits() < 55 {
		t.Fatalf(`sinh(1e-25): only %d accurate bits`, got.RelAccuracyBits())
	}
	got = new(Ball).Tanh(ballOf(1e-25, 0), 64)
	if got.RelAccuracyBits() < 55 {
		t.Fatalf(`tanh(1e-25): only %d accurate bits`, got.RelAccuracyBits())
	}
}

func TestTanh(t *testing.T) {
	for _, v := range []float64{0, 0.25, -1, 5, -30} {
		mustBeClose(t, new(Ball).Tanh(ballOf(v, 0), 64), math.Tanh(v), 1e-14)
	}
	if got := new(Ball).Tanh(new(Ball).SetInf(false), 64); !got.IsExact() || got.mid.Cmp(floatZero) <= 0 {
		t.Fatalf(`tanh(+inf): got %v, want exact 1`, got)
	}
	got := new(Ball).Tanh(new(Ball).setWholeLine(), 64)
	mustContainFloat64(t, got, 0.999999)
	mustContainFloat64(t, got, -0.999999)
	if got.radInf() {
		t.Fatal(`tanh of the whole line is bounded by 1`)
	}
}

func TestHyperbolic_identity(t *testing.T) {
	// cosh^2 - sinh^2 = 1
	for _, v := range []float64{0.7, -2, 11} {
		var s, c Ball
		ballOf(v, 0).SinhCosh(&s, &c, 96)
		s.Mul(&s, &s, 96)
		c.Mul(&c, &c, 96)
		c.Sub(&c, &s, 96)
		mustContainFloat64(t, &c, 1)
	}
}
