package orb

import (
	"math"
	"testing"
)

func TestSinCos_knownValues(t *testing.T) {
	for _, v := range []float64{0, 0.5, 1, -1, 3, -2.5, 10, 100, 1e6} {
		var s, c Ball
		ballOf(v, 0).SinCos(&s, &c, 64)
		mustBeClose(t, &s, math.Sin(v), 1e-13)
		mustBeClose(t, &c, math.Cos(v), 1e-13)
	}
	if got := new(Ball).Sin(new(Ball).SetInt64(0), 64); !got.ContainsZero() {
		t.Fatal(`sin(0) must contain 0`)
	}
	mustBeClose(t, new(Ball).Cos(new(Ball).SetInt64(0), 64), 1, 1e-18)
}

func TestSinCos_identity(t *testing.T) {
	// sin^2 + cos^2 = 1 must hold as containment
	for _, v := range []float64{0.3, 2, -7, 123.456} {
		var s, c Ball
		ballOf(v, 0).SinCos(&s, &c, 80)
		s.Mul(&s, &s, 80)
		c.Mul(&c, &c, 80)
		s.Add(&s, &c, 80)
		mustContainFloat64(t, &s, 1)
	}
}

func TestSinCos_wideAndSpecial(t *testing.T) {
	var s, c Ball
	ballOf(0, 100).SinCos(&s, &c, 64)
	mustContainFloat64(t, &s, 1)
	mustContainFloat64(t, &s, -1)
	mustContainFloat64(t, &c, 0.123)
	new(Ball).SetInf(false).SinCos(&s, &c, 64)
	if !s.IsNaN() || !c.IsNaN() {
		t.Fatal(`sin/cos at infinity have no value`)
	}
	new(Ball).SetIndeterminate().SinCos(&s, nil, 64)
	if !s.IsNaN() {
		t.Fatal(`nan propagates`)
	}
}

// TestSinCos_unreducedBoundary pins the widest arguments the series path
// accepts without argument reduction: an exact point just under the
// reduction threshold, and a wide ball reaching magnitude just under 8.
func TestSinCos_unreducedBoundary(t *testing.T) {
	var s, c Ball
	ballOf(3.99, 0).SinCos(&s, &c, 64)
	mustBeClose(t, &s, math.Sin(3.99), 1e-13)
	mustBeClose(t, &c, math.Cos(3.99), 1e-13)
	ballOf(3.9, 3.8).SinCos(&s, &c, 64) // covers [0.1, 7.7]
	for _, v := range []float64{0.1, 1.5, math.Pi, 5, 7.7} {
		mustContainFloat64(t, &s, math.Sin(v))
		mustContainFloat64(t, &c, math.Cos(v))
	}
}

func TestTan(t *testing.T) {
	mustBeClose(t, new(Ball).Tan(ballOf(1, 0), 64), math.Tan(1), 1e-13)
	// a ball across the pole at π/2 has no finite tangent range
	if got := new(Ball).Tan(ballOf(math.Pi/2, 0.01), 64); !got.radInf() {
		t.Fatalf(`tan across the pole: got %v`, got)
	}
}

func TestAtan(t *testing.T) {
	for _, v := range []float64{0, 0.25, 1, -1, 5, -100, 1e8} {
		mustBeClose(t, new(Ball).Atan(ballOf(v, 0), 64), math.Atan(v), 1e-14)
	}
	got := new(Ball).Atan(new(Ball).SetInf(false), 64)
	mustBeClose(t, got, math.Pi/2, 1e-8)
	got = new(Ball).Atan(new(Ball).SetInf(true), 64)
	mustBeClose(t, got, -math.Pi/2, 1e-8)
	// unbounded input still has a bounded arctangent
	got = new(Ball).Atan(new(Ball).setWholeLine(), 64)
	mustContainFloat64(t, got, 1.5707)
	mustContainFloat64(t, got, -1.5707)
	if got.IsNaN() || got.radInf() {
		t.Fatalf(`atan of the whole line must be [0 +/- ~π/2], got %v`, got)
	}
}

func TestAtan2(t *testing.T) {
	cases := []struct{ y, x, want float64 }{
		{0, 1, 0},
		{1, 1, math.Pi / 4},
		{1, -1, 3 * math.Pi / 4},
		{-1, -1, -3 * math.Pi / 4},
		{-1, 1, -math.Pi / 4},
		{1, 0.001, math.Atan2(1, 0.001)},
		{0, -1, math.Pi},
	}
	for _, tc := range cases {
		got := new(Ball).Atan2(ballOf(tc.y, 0), ballOf(tc.x, 0), 64)
		mustBeClose(t, got, tc.want, 1e-13)
	}
	if got := new(Ball).Atan2(new(Ball).SetInt64(0), new(Ball).SetInt64(0), 64); !got.IsZero() {
		t.Fatalf(`atan2(0,0) is 0 by convention, got %v`, got)
	}
	// x straddling zero with positive y: coarse but correct
	got := new(Ball).Atan2(ballOf(1, 0), ballOf(0, 1), 64)
	mustContainFloat64(t, got, math.Pi/4)
	mustContainFloat64(t, got, 3*math.Pi/4)
	// straddling the branch cut widens to the full circle range
	got = new(Ball).Atan2(ballOf(0, 1), ballOf(-1, 0), 64)
	mustContainFloat64(t, got, 3.14)
	mustContainFloat64(t, got, -3.14)
}

func TestAsinAcos(t *testing.T) {
	for _, v := range []float64{0, 0.5, -0.5, 0.99, -0.99} {
		mustBeClose(t, new(Ball).Asin(ballOf(v, 0), 64), math.Asin(v), 1e-13)
		mustBeClose(t, new(Ball).Acos(ballOf(v, 0), 64), math.Acos(v), 1e-13)
	}
	// the endpoints collapse the derivative; the result stays a correct,
	// if coarse, enclosure
	got := new(Ball).Asin(ballOf(1, 0), 64)
	mustContainFloat64(t, got, math.Pi/2)
	got = new(Ball).Acos(ballOf(-1, 0), 64)
	mustContainFloat64(t, got, math.Pi)
	if got := new(Ball).Asin(ballOf(1.5, 0), 64); !got.IsNaN() {
		t.Fatal(`asin outside [-1,1] must be indeterminate`)
	}
	if got := new(Ball).Acos(ballOf(1, 0.5), 64); !got.IsNaN() {
		t.Fatal(`acos of a ball leaking past 1 must be indeterminate`)
	}
}
