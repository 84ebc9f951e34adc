package orb

import (
	"math"
	"testing"
)

func TestZetaStrategy(t *testing.T) {
	cases := []struct {
		s    uint64
		prec uint
		want zetaMethod
	}{
		{0, 64, zetaMethodExact},
		{1, 64, zetaMethodIndeterminate},
		{200, 64, zetaMethodAsymptotic},
		{1 << 30, 4096, zetaMethodAsymptotic},
		{64, 256, zetaMethodBernoulli},
		{2, 64, zetaMethodBernoulli},
		{101, 64, zetaMethodEulerProduct},
		{130, 300, zetaMethodEulerProduct},
		{3, 256, zetaMethodBorwein},
		{7, 2000, zetaMethodBorwein},
	}
	for _, tc := range cases {
		if got := zetaStrategy(tc.s, tc.prec); got != tc.want {
			t.Errorf(`zetaStrategy(%d, %d) = %v, want %v`, tc.s, tc.prec, got, tc.want)
		}
	}
}

const (
	zeta2 = math.Pi * math.Pi / 6
	zeta3 = 1.2020569031595943
)

// TestZeta_methodsAgree evaluates the same argument through each engine
// directly, bypassing the dispatch.
func TestZeta_methodsAgree(t *testing.T) {
	var z Ball
	zetaBorwein(&z, 2, 64)
	mustBeClose(t, &z, zeta2, 1e-15)
	zetaBernoulliEven(&z, 2, 64)
	mustBeClose(t, &z, zeta2, 1e-15)
	zetaBorwein(&z, 6, 64)
	zeta6, _ := z.Mid().Float64()
	zetaEulerProduct(&z, 6, 24)
	mustBeClose(t, &z, zeta6, 1e-5)
	zetaBernoulliEven(&z, 6, 64)
	mustBeClose(t, &z, zeta6, 1e-14)
	zetaAsymptotic(&z, 300, 64)
	mustBeClose(t, &z, 1, 1e-18)
}

func TestZetaUint(t *testing.T) {
	if got := ZetaUint(0, 64); !got.IsExact() {
		t.Fatalf(`ζ(0): got %v, want exact -1/2`, got)
	}
	mustBeClose(t, ZetaUint(0, 64), -0.5, 0)
	if got := ZetaUint(1, 64); !got.IsNaN() {
		t.Fatalf(`ζ(1) is the pole: got %v`, got)
	}
	mustBeClose(t, ZetaUint(2, 64), zeta2, 1e-15)
	mustBeClose(t, ZetaUint(3, 64), zeta3, 1e-15)
	mustBeClose(t, ZetaUint(1000, 64), 1, 1e-18)
	// refinement stays consistent
	if !ZetaUint(3, 32).Overlaps(ZetaUint(3, 192)) {
		t.Fatal(`coarse and fine ζ(3) must overlap`)
	}
	if got := ZetaUint(3, 192); got.RelAccuracyBits() < 185 {
		t.Fatalf(`ζ(3) at 192 bits: only %d accurate bits`, got.RelAccuracyBits())
	}
}

func TestZeta_ball(t *testing.T) {
	mustBeClose(t, new(Ball).Zeta(ballOf(2, 0), 64), zeta2, 1e-15)
	mustBeClose(t, new(Ball).Zeta(ballOf(2.5, 0), 64), 1.3414872572509171, 1e-13)
	// exact negative integers hit the Bernoulli closed form
	mustBeClose(t, new(Ball).Zeta(ballOf(-1, 0), 64), -1.0/12, 1e-17)
	mustBeClose(t, new(Ball).Zeta(ballOf(-3, 0), 64), 1.0/120, 1e-17)
	if got := new(Ball).Zeta(ballOf(-2, 0), 64); !got.IsZero() {
		t.Fatalf(`ζ(-2) is a trivial zero: got %v`, got)
	}
	// negative non-integers go through the functional equation
	mustBeClose(t, new(Ball).Zeta(ballOf(-0.5, 0), 64), -0.20788622497735456, 1e-11)
	if got := new(Ball).Zeta(new(Ball).SetInf(false), 64); !got.IsExact() {
		t.Fatalf(`ζ(+inf): got %v, want exact 1`, got)
	}
	for name, s := range map[string]*Ball{
		`pole`:           ballOf(1, 0.25),
		`critical strip`: ballOf(0.5, 0),
		`whole line`:     new(Ball).setWholeLine(),
		`nan`:            new(Ball).SetIndeterminate(),
		`-inf`:           new(Ball).SetInf(true),
	} {
		if got := new(Ball).Zeta(s, 64); !got.IsNaN() {
			t.Errorf(`ζ(%s): got %v, want nan`, name, got)
		}
	}
}

func TestHurwitzZeta(t *testing.T) {
	one := new(Ball).SetInt64(1)
	mustBeClose(t, new(Ball).HurwitzZeta(ballOf(2, 0), one, 64), zeta2, 1e-15)
	mustBeClose(t, new(Ball).HurwitzZeta(ballOf(3, 0), one, 64), zeta3, 1e-15)
	// ζ(s, 1/2) = (2^s - 1) ζ(s)
	mustBeClose(t, new(Ball).HurwitzZeta(ballOf(2, 0), ballOf(0.5, 0), 64), 3*zeta2, 1e-14)
	// ζ(s, 2) = ζ(s) - 1
	mustBeClose(t, new(Ball).HurwitzZeta(ballOf(2, 0), ballOf(2, 0), 64), zeta2-1, 1e-15)

	for name, args := range map[string][2]*Ball{
		`a nonpositive`: {ballOf(2, 0), ballOf(-1, 0)},
		`a straddles 0`: {ballOf(2, 0), ballOf(0, 1)},
		`s at the pole`: {ballOf(1, 0), one},
		`s below 1`:     {ballOf(0.5, 0), one},
		`s nan`:         {new(Ball).SetIndeterminate(), one},
	} {
		if got := new(Ball).HurwitzZeta(args[0], args[1], 64); !got.IsNaN() {
			t.Errorf(`hurwitz %s: got %v, want nan`, name, got)
		}
	}
}
