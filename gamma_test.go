package orb

import (
	"math"
	"math/big"
	"testing"
)

func TestRisingStrategy(t *testing.T) {
	cases := []struct {
		n    uint
		prec uint
		want risingMethod
	}{
		{1, 64, risingBinary},
		{63, 1 << 20, risingBinary},
		{64, 64, risingRectangular},
		{64, 4096, risingBinary}, // 8n < prec
		{1000, 64, risingRectangular},
		{1000, 1 << 20, risingBinary},
	}
	for _, tc := range cases {
		if got := risingStrategy(tc.n, tc.prec); got != tc.want {
			t.Errorf(`risingStrategy(%d, %d) = %v, want %v`, tc.n, tc.prec, got, tc.want)
		}
	}
}

func TestRisingFactorial(t *testing.T) {
	// 3 * 4 * 5 * 6 = 360
	mustBeClose(t, new(Ball).RisingFactorial(ballOf(3, 0), 4, risingAuto, 64), 360, 1e-12)
	if got := new(Ball).RisingFactorial(ballOf(7, 0), 0, risingAuto, 64); !got.IsExact() || got.mid.Cmp(big.NewFloat(1)) != 0 {
		t.Fatalf(`empty product: got %v, want exact 1`, got)
	}
	// both schemes must agree on the same input
	x := ballOf(1.5, 0)
	const n = 100
	bin := new(Ball).RisingFactorial(x, n, risingBinary, 96)
	rect := new(Ball).RisingFactorial(x, n, risingRectangular, 96)
	auto := new(Ball).RisingFactorial(x, n, risingAuto, 96)
	if !bin.Overlaps(rect) || !bin.Overlaps(auto) {
		t.Fatalf(`schemes disagree: binary %v, rectangular %v, auto %v`, bin, rect, auto)
	}
	if bin.RelAccuracyBits() < 90 || rect.RelAccuracyBits() < 90 {
		t.Fatalf(`accuracy loss: binary %d, rectangular %d bits`,
			bin.RelAccuracyBits(), rect.RelAccuracyBits())
	}
	// (1)_n = n!
	got := new(Ball).RisingFactorial(new(Ball).SetInt64(1), 20, risingAuto, 64)
	var want Ball
	want.SetInt(new(big.Int).MulRange(1, 20))
	if !got.Contains(&want) {
		t.Fatalf(`(1)_20 = %v must contain 20!`, got)
	}
}

func TestRisingCoeffs(t *testing.T) {
	// y(y+1)(y+2) = 2y + 3y^2 + y^3
	got := risingCoeffs(3)
	want := []int64{0, 2, 3, 1}
	if len(got) != len(want) {
		t.Fatalf(`got %d coefficients, want %d`, len(got), len(want))
	}
	for i, w := range want {
		if got[i].Int64() != w {
			t.Errorf(`coefficient %d: got %v, want %d`, i, got[i], w)
		}
	}
}

func TestGamma(t *testing.T) {
	// exact factorials for small integer arguments
	if got := new(Ball).Gamma(new(Ball).SetInt64(5), 64); !got.IsExact() || got.mid.Cmp(big.NewFloat(24)) != 0 {
		t.Fatalf(`Γ(5): got %v, want exact 24`, got)
	}
	if got := new(Ball).Gamma(new(Ball).SetInt64(1), 64); !got.IsExact() || got.mid.Cmp(big.NewFloat(1)) != 0 {
		t.Fatalf(`Γ(1): got %v, want exact 1`, got)
	}
	mustBeClose(t, new(Ball).Gamma(ballOf(0.5, 0), 64), math.Sqrt(math.Pi), 1e-14)
	mustBeClose(t, new(Ball).Gamma(ballOf(1.5, 0), 64), math.Sqrt(math.Pi)/2, 1e-14)
	// Γ(10.5) = (1/2)_10 Γ(1/2) exercises the Stirling shift
	var rf, want Ball
	rf.RisingFactorial(ballOf(0.5, 0), 10, risingAuto, 96)
	want.Gamma(ballOf(0.5, 0), 96)
	want.Mul(&want, &rf, 96)
	if got := new(Ball).Gamma(ballOf(10.5, 0), 96); !got.Overlaps(&want) {
		t.Fatalf(`Γ(10.5) = %v vs recurrence %v`, got, &want)
	}
	// reflection: Γ(-0.5) = -2√π
	mustBeClose(t, new(Ball).Gamma(ballOf(-0.5, 0), 64), -2*math.Sqrt(math.Pi), 1e-12)
	mustBeClose(t, new(Ball).Gamma(ballOf(-1.5, 0), 64), 4*math.Sqrt(math.Pi)/3, 1e-12)
	// poles
	for _, x := range []*Ball{
		new(Ball).SetInt64(0),
		new(Ball).SetInt64(-3),
		ballOf(-2.5, 1), // spans -2 and -3
		new(Ball).SetIndeterminate(),
	} {
		if got := new(Ball).Gamma(x, 64); !got.IsNaN() {
			t.Errorf(`Γ(%v): got %v, want nan`, x, got)
		}
	}
	if got := new(Ball).Gamma(new(Ball).SetInf(false), 64); !got.Equal(new(Ball).SetInf(false)) {
		t.Fatal(`Γ(+inf) must be +inf`)
	}
}

func TestGamma_recurrence(t *testing.T) {
	// Γ(x+1) = x Γ(x) as a containment check at a few points
	for _, v := range []float64{0.25, 1.75, 6.5, 40.125} {
		x := ballOf(v, 0)
		var up, g Ball
		up.Gamma(new(Ball).Add(x, new(Ball).SetInt64(1), 96), 96)
		g.Gamma(x, 96)
		g.Mul(&g, x, 96)
		if !g.Overlaps(&up) {
			t.Fatalf(`Γ(%g+1) = %v vs x Γ(x) = %v`, v, &up, &g)
		}
	}
}

func TestLgamma(t *testing.T) {
	mustBeClose(t, new(Ball).Lgamma(ballOf(5, 0), 64), math.Log(24), 1e-14)
	mustBeClose(t, new(Ball).Lgamma(ballOf(0.5, 0), 64), math.Log(math.Pi)/2, 1e-14)
	mustBeClose(t, new(Ball).Lgamma(ballOf(100, 0), 64), 359.13420536957534, 1e-10)
	if got := new(Ball).Lgamma(ballOf(-1, 0.25), 64); !got.IsNaN() {
		t.Fatal(`log Γ needs a positive argument`)
	}
	if got := new(Ball).Lgamma(ballOf(0, 1), 64); !got.IsNaN() {
		t.Fatal(`a ball straddling zero is not positive`)
	}
}

func TestRgamma(t *testing.T) {
	mustBeClose(t, new(Ball).Rgamma(ballOf(5, 0), 64), 1.0/24, 1e-16)
	// exact nonpositive integers give the exact zero of the entire function
	for _, n := range []int64{0, -1, -7} {
		if got := new(Ball).Rgamma(new(Ball).SetInt64(n), 64); !got.IsZero() {
			t.Errorf(`1/Γ(%d): got %v, want exact 0`, n, got)
		}
	}
	// an inexact ball over a pole still has a value everywhere
	got := new(Ball).Rgamma(ballOf(-1, 0.5), 64)
	if got.IsNaN() || !got.radInf() {
		t.Fatalf(`1/Γ over a pole: got %v, want whole line`, got)
	}
}

func TestDigamma(t *testing.T) {
	euler, _ := DefaultCache.Get(ConstEuler, 64).Mid().Float64()
	mustBeClose(t, new(Ball).Digamma(ballOf(1, 0), 64), -euler, 1e-14)
	// ψ(2) = 1 - γ
	mustBeClose(t, new(Ball).Digamma(ballOf(2, 0), 64), 1-euler, 1e-14)
	// ψ(1/2) = -γ - 2 log 2
	mustBeClose(t, new(Ball).Digamma(ballOf(0.5, 0), 64), -euler-2*math.Ln2, 1e-13)
	// reflection at a negative non-integer
	mustBeClose(t, new(Ball).Digamma(ballOf(-0.5, 0), 64), 2-euler-2*math.Ln2, 1e-12)
	if got := new(Ball).Digamma(new(Ball).SetInt64(-2), 64); !got.IsNaN() {
		t.Fatal(`ψ has poles at nonpositive integers`)
	}
	// recurrence ψ(x+1) = ψ(x) + 1/x
	x := ballOf(3.25, 0)
	var up, lo Ball
	up.Digamma(new(Ball).Add(x, new(Ball).SetInt64(1), 96), 96)
	lo.Digamma(x, 96)
	lo.Add(&lo, new(Ball).Inv(x, 96), 96)
	if !lo.Overlaps(&up) {
		t.Fatalf(`ψ recurrence: %v vs %v`, &up, &lo)
	}
}
