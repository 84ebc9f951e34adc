package series

import (
	"math/big"
	"testing"
)

// expSeries returns Σ x^k/k! truncated at x^n.
func expSeries(n int) *Poly {
	p := New(n)
	f := big.NewRat(1, 1)
	p.SetCoeff(0, f)
	for k := 1; k < n; k++ {
		f.Quo(f, new(big.Rat).SetInt64(int64(k)))
		p.SetCoeff(k, f)
	}
	return p
}

func TestExp(t *testing.T) {
	x := New(8)
	x.SetCoeff(1, big.NewRat(1, 1))
	got := New(8).Exp(x)
	want := expSeries(8)
	for k := 0; k < 8; k++ {
		if got.Coeff(k).Cmp(want.Coeff(k)) != 0 {
			t.Errorf(`exp coefficient %d: got %v, want %v`, k, got.Coeff(k), want.Coeff(k))
		}
	}
}

func TestExp_panicsOnConstantTerm(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal(`expected a panic`)
		}
	}()
	a := New(4)
	a.SetCoeff(0, big.NewRat(1, 1))
	New(4).Exp(a)
}

func TestInv_roundTrip(t *testing.T) {
	a := New(10)
	a.SetCoeff(0, big.NewRat(2, 3))
	a.SetCoeff(1, big.NewRat(-1, 7))
	a.SetCoeff(4, big.NewRat(5, 2))
	inv := New(10).Inv(a)
	id := New(10).Mul(a, inv)
	if id.Coeff(0).Cmp(big.NewRat(1, 1)) != 0 {
		t.Fatalf(`constant term: %v`, id.Coeff(0))
	}
	for k := 1; k < 10; k++ {
		if id.Coeff(k).Sign() != 0 {
			t.Fatalf(`a * a^-1 coefficient %d: %v`, k, id.Coeff(k))
		}
	}
}

func TestInv_panicsOnZeroConstant(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal(`expected a panic`)
		}
	}()
	New(4).Inv(New(4))
}

func TestShiftDiv(t *testing.T) {
	a := New(5)
	a.SetCoeff(2, big.NewRat(3, 1))
	a.SetCoeff(4, big.NewRat(-1, 2))
	got := New(5).ShiftDiv(a, 2)
	if got.Coeff(0).Cmp(big.NewRat(3, 1)) != 0 || got.Coeff(2).Cmp(big.NewRat(-1, 2)) != 0 {
		t.Fatalf(`shifted: %v %v`, got.Coeff(0), got.Coeff(2))
	}
	if got.Coeff(3).Sign() != 0 || got.Coeff(4).Sign() != 0 {
		t.Fatal(`high end must be zero padded`)
	}
}

func TestShiftDiv_panicsOnNonzeroLowOrder(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal(`expected a panic`)
		}
	}()
	a := New(4)
	a.SetCoeff(0, big.NewRat(1, 1))
	New(4).ShiftDiv(a, 1)
}

// TestBernoulliGeneratingFunction recovers B_k/k! from t/(e^t - 1).
func TestBernoulliGeneratingFunction(t *testing.T) {
	const n = 9
	em1 := expSeries(n)
	one := New(n)
	one.SetCoeff(0, big.NewRat(1, 1))
	em1.Sub(em1, one)
	em1.ShiftDiv(em1, 1)
	g := New(n).Inv(em1)
	// B_0 = 1, B_1 = -1/2, B_2 = 1/6, B_4 = -1/30, B_6 = 1/42, B_8 = -1/30
	want := map[int]*big.Rat{
		0: big.NewRat(1, 1),
		1: big.NewRat(-1, 2),
		2: big.NewRat(1, 6),
		3: new(big.Rat),
		4: big.NewRat(-1, 30),
		6: big.NewRat(1, 42),
		8: big.NewRat(-1, 30),
	}
	fact := big.NewRat(1, 1)
	for k := 0; k < n; k++ {
		if k > 1 {
			fact.Mul(fact, new(big.Rat).SetInt64(int64(k)))
		}
		w, ok := want[k]
		if !ok {
			continue
		}
		got := g.Coeff(k)
		got.Mul(got, fact)
		if got.Cmp(w) != 0 {
			t.Errorf(`B_%d: got %v, want %v`, k, got, w)
		}
	}
}

func TestEvalAndArith(t *testing.T) {
	// (1 + 2x)(3 - x) = 3 + 5x - 2x^2
	a := FromRats([]*big.Rat{big.NewRat(1, 1), big.NewRat(2, 1), new(big.Rat)})
	b := FromRats([]*big.Rat{big.NewRat(3, 1), big.NewRat(-1, 1), new(big.Rat)})
	p := New(3).Mul(a, b)
	if p.Coeff(0).Cmp(big.NewRat(3, 1)) != 0 ||
		p.Coeff(1).Cmp(big.NewRat(5, 1)) != 0 ||
		p.Coeff(2).Cmp(big.NewRat(-2, 1)) != 0 {
		t.Fatalf(`product: %v %v %v`, p.Coeff(0), p.Coeff(1), p.Coeff(2))
	}
	// at x = 1/2: 3 + 5/2 - 1/2 = 5
	if got := p.Eval(big.NewRat(1, 2)); got.Cmp(big.NewRat(5, 1)) != 0 {
		t.Fatalf(`eval: %v`, got)
	}
	s := New(3).Add(a, b)
	s.MulScalar(s, big.NewRat(1, 2))
	if s.Coeff(0).Cmp(big.NewRat(2, 1)) != 0 || s.Coeff(1).Cmp(big.NewRat(1, 2)) != 0 {
		t.Fatalf(`scaled sum: %v %v`, s.Coeff(0), s.Coeff(1))
	}
}

func TestLengthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal(`expected a panic`)
		}
	}()
	New(3).Add(New(3), New(4))
}
