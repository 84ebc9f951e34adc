package main

import (
	"math"
	"strings"
	"testing"
)

func evalMid(t *testing.T, src string) float64 {
	t.Helper()
	b, err := evalExpr(src, 64)
	if err != nil {
		t.Fatalf(`eval %q: %v`, src, err)
	}
	if b.IsNaN() {
		t.Fatalf(`eval %q: indeterminate`, src)
	}
	f, _ := b.Mid().Float64()
	return f
}

func TestEvalExpr(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{`1+2*3`, 7},
		{`(1+2)*3`, 9},
		{`10 - 4 / 2`, 8},
		{`2^10`, 1024},
		{`2^-1`, 0.5},
		{`-2^2`, -4}, // unary minus binds looser than ^
		{`2^3^2`, 512},
		{`1/3 + 2/3`, 1},
		{`1.5e2 + .5`, 150.5},
		{`sqrt(2)`, math.Sqrt2},
		{`exp(log(5))`, 5},
		{`sin(pi/6)`, 0.5},
		{`atan2(1, 1)`, math.Pi / 4},
		{`pow(9, 1/2)`, 3},
		{`polylog(1, 1/2)`, math.Ln2},
		{`gamma(5)`, 24},
		{`zeta(2)`, math.Pi * math.Pi / 6},
		{`abs(-3)`, 3},
		{`e^2`, math.E * math.E},
		{`  1 +	2 `, 3},
	}
	for _, tc := range cases {
		got := evalMid(t, tc.src)
		if math.Abs(got-tc.want) > math.Abs(tc.want)*1e-12+1e-12 {
			t.Errorf(`eval %q = %g, want %g`, tc.src, got, tc.want)
		}
	}
}

func TestEvalExpr_errors(t *testing.T) {
	cases := []struct {
		src  string
		frag string
	}{
		{``, `unexpected end`},
		{`1 +`, `unexpected end`},
		{`(1`, `expected ')'`},
		{`1)`, `unexpected`},
		{`frob(1)`, `unknown function`},
		{`tau`, `unknown identifier`},
		{`sqrt(1, 2)`, `takes 1 argument`},
		{`pow(2)`, `takes 2 arguments`},
		{`2 ** 3`, `unexpected`},
		{`1..2`, `invalid number`},
	}
	for _, tc := range cases {
		_, err := evalExpr(tc.src, 64)
		if err == nil {
			t.Errorf(`eval %q: expected an error`, tc.src)
			continue
		}
		if !strings.Contains(err.Error(), tc.frag) {
			t.Errorf(`eval %q: error %q missing %q`, tc.src, err, tc.frag)
		}
	}
}

func TestEvalExpr_enclosure(t *testing.T) {
	b, err := evalExpr(`pi`, 64)
	if err != nil {
		t.Fatal(err)
	}
	f, _ := b.Mid().Float64()
	if math.Abs(f-math.Pi) > 1e-15 {
		t.Fatalf(`pi = %g`, f)
	}
	r, _ := b.Rad().Float64()
	if r <= 0 || r > 1e-15 {
		t.Fatalf(`pi radius %g`, r)
	}
}
