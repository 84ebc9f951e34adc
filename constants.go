package orb

import (
	"fmt"
	"math/big"
	"math/bits"
	"sync"

	"github.com/joeycumines/logiface"
)

// Constant identifies a cached transcendental constant.
type Constant int

const (
	ConstPi Constant = iota
	ConstE
	ConstLog2
	ConstLog10
	ConstEuler
	ConstCatalan
	ConstKhinchin
	ConstGlaisher
	ConstApery
	ConstLogSqrt2Pi

	numConstants
)

var constantNames = [numConstants]string{
	ConstPi:         `pi`,
	ConstE:          `e`,
	ConstLog2:       `log2`,
	ConstLog10:      `log10`,
	ConstEuler:      `euler`,
	ConstCatalan:    `catalan`,
	ConstKhinchin:   `khinchin`,
	ConstGlaisher:   `glaisher`,
	ConstApery:      `apery`,
	ConstLogSqrt2Pi: `logsqrt2pi`,
}

func (c Constant) String() string {
	if c < 0 || c >= numConstants {
		return fmt.Sprintf(`constant(%d)`, int(c))
	}
	return constantNames[c]
}

// ParseConstant returns the constant with the given name.
func ParseConstant(name string) (Constant, error) {
	for i, s := range constantNames {
		if s == name {
			return Constant(i), nil
		}
	}
	return 0, fmt.Errorf(`orb: unknown constant %q`, name)
}

type constEntry struct {
	val  *Ball
	prec uint
}

// ConstCache memoizes transcendental constants per precision tier. A miss,
// or a hit at insufficient precision, triggers recomputation at the
// requested precision plus a guard margin and replaces the entry; a hit at
// sufficient precision is served by rounding down, which widens or
// preserves the interval, never narrows it.
//
// The zero value is ready for use. All methods are safe for concurrent
// use; entry replacement is atomic under an internal mutex, so concurrent
// recomputation is at worst wasted work, never a torn entry. Evaluation
// itself happens outside the lock.
type ConstCache struct {
	// Logger, if set, receives a debug event for every recomputation.
	Logger *logiface.Logger[logiface.Event]

	mu      sync.Mutex
	entries map[Constant]constEntry
}

// DefaultCache is the process-wide constant cache used by [Pi], [E] and
// friends.
var DefaultCache = &ConstCache{}

func clog2(n uint) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(n - 1)
}

// Get returns the named constant as a ball rounded to prec bits.
func (c *ConstCache) Get(name Constant, prec uint) *Ball {
	if name < 0 || name >= numConstants {
		panic(`orb: const cache: unknown constant`)
	}
	c.mu.Lock()
	if e, ok := c.entries[name]; ok && e.prec >= prec {
		c.mu.Unlock()
		return new(Ball).Round(e.val, prec)
	}
	c.mu.Unlock()

	evalPrec := prec + uint(clog2(prec)) + 16
	v := c.eval(name, evalPrec)

	c.mu.Lock()
	if c.entries == nil {
		c.entries = make(map[Constant]constEntry)
	}
	if e, ok := c.entries[name]; !ok || e.prec < evalPrec {
		c.entries[name] = constEntry{val: new(Ball).Set(v), prec: evalPrec}
		c.Logger.Debug().
			Str(`constant`, name.String()).
			Uint64(`prec`, uint64(evalPrec)).
			Log(`constant recomputed`)
	}
	c.mu.Unlock()

	return v.Round(v, prec)
}

func (c *ConstCache) eval(name Constant, prec uint) *Ball {
	switch name {
	case ConstPi:
		return evalPi(prec)
	case ConstE:
		return evalE(prec)
	case ConstLog2:
		return evalLog2(prec)
	case ConstLog10:
		return c.evalLog10(prec)
	case ConstEuler:
		return evalEuler(prec)
	case ConstCatalan:
		return c.evalCatalan(prec)
	case ConstKhinchin:
		return c.evalKhinchin(prec)
	case ConstGlaisher:
		return evalGlaisher(prec)
	case ConstApery:
		return evalApery(prec)
	case ConstLogSqrt2Pi:
		return c.evalLogSqrt2Pi(prec)
	}
	panic(`orb: const cache: unknown constant`)
}

// Pi returns π to prec bits from the default cache.
func Pi(prec uint) *Ball { return DefaultCache.Get(ConstPi, prec) }

// E returns Euler's number to prec bits from the default cache.
func E(prec uint) *Ball { return DefaultCache.Get(ConstE, prec) }

// Log2 returns log 2 to prec bits from the default cache.
func Log2(prec uint) *Ball { return DefaultCache.Get(ConstLog2, prec) }

// Log10 returns log 10 to prec bits from the default cache.
func Log10(prec uint) *Ball { return DefaultCache.Get(ConstLog10, prec) }

// Euler returns the Euler–Mascheroni constant γ to prec bits from the
// default cache.
func Euler(prec uint) *Ball { return DefaultCache.Get(ConstEuler, prec) }

// Catalan returns Catalan's constant to prec bits from the default cache.
func Catalan(prec uint) *Ball { return DefaultCache.Get(ConstCatalan, prec) }

// Khinchin returns Khinchin's constant to prec bits from the default cache.
func Khinchin(prec uint) *Ball { return DefaultCache.Get(ConstKhinchin, prec) }

// Glaisher returns the Glaisher–Kinkelin constant to prec bits from the
// default cache. See evalGlaisher for the precision cap.
func Glaisher(prec uint) *Ball { return DefaultCache.Get(ConstGlaisher, prec) }

// Apery returns ζ(3) to prec bits from the default cache.
func Apery(prec uint) *Ball { return DefaultCache.Get(ConstApery, prec) }

// LogSqrt2Pi returns log√(2π) to prec bits from the default cache.
func LogSqrt2Pi(prec uint) *Ball { return DefaultCache.Get(ConstLogSqrt2Pi, prec) }

// evalPi evaluates π with the Chudnovsky series for 1/π via binary
// splitting. Successive terms shrink by more than 2^47, so n terms leave a
// relative tail below 2^(4-47n).
func evalPi(prec uint) *Ball {
	n := int64(prec/47) + 2

	var rec func(a, b int64) (p, q, t *big.Int)
	rec = func(a, b int64) (p, q, t *big.Int) {
		if b-a == 1 {
			p, q = new(big.Int), new(big.Int)
			if a == 0 {
				p.SetInt64(1)
				q.SetInt64(1)
			} else {
				p.SetInt64(6*a - 5)
				p.Mul(p, big.NewInt(2*a-1))
				p.Mul(p, big.NewInt(6*a-1))
				q.SetInt64(a)
				q.Mul(q, q)
				q.Mul(q, big.NewInt(a))
				q.Mul(q, chudnovskyC3Over24)
			}
			t = new(big.Int).SetInt64(13591409 + 545140134*a)
			t.Mul(t, p)
			if a&1 == 1 {
				t.Neg(t)
			}
			return p, q, t
		}
		m := (a + b) / 2
		p1, q1, t1 := rec(a, m)
		p2, q2, t2 := rec(m, b)
		p = new(big.Int).Mul(p1, p2)
		q = new(big.Int).Mul(q1, q2)
		t = new(big.Int).Mul(t1, q2)
		t.Add(t, new(big.Int).Mul(p1, t2))
		return p, q, t
	}
	_, q, t := rec(0, n)

	p := prec + 16
	var num, den, s, r Ball
	num.SetInt(q)
	var c Ball
	c.SetInt64(426880)
	num.Mul(&num, &c, p)
	s.SetInt64(10005)
	r.Sqrt(&s, p)
	num.Mul(&num, &r, p)
	den.SetInt(t)
	num.Div(&num, &den, p)
	num.AddError2Exp(4 - 47*int(n))
	return &num
}

// chudnovskyC3Over24 = 640320^3 / 24.
var chudnovskyC3Over24 = func() *big.Int {
	v := big.NewInt(640320)
	v.Mul(v, v)
	v.Mul(v, big.NewInt(640320))
	return v.Div(v, big.NewInt(24))
}()

// evalE evaluates e = Σ 1/k! exactly as p/n! by a Horner recurrence, with
// the tail below 2/(n+1)!.
func evalE(prec uint) *Ball {
	// find n with n! > 2^(prec+8)
	n := int64(2)
	var f big.Int
	f.SetInt64(2)
	lim := new(big.Int).Lsh(big.NewInt(1), prec+8)
	for f.Cmp(lim) <= 0 {
		n++
		f.Mul(&f, big.NewInt(n))
	}
	// S_n = Σ n!/k! satisfies S_k = k*S_(k-1) + 1, S_0 = 1
	p := new(big.Int).SetInt64(1)
	for k := int64(1); k <= n; k++ {
		p.Mul(p, big.NewInt(k))
		p.Add(p, big.NewInt(1))
	}
	var z Ball
	q := new(big.Rat).SetFrac(p, &f)
	z.SetRat(q, prec+8)
	tail := new(big.Rat).SetFrac(big.NewInt(2), new(big.Int).Mul(&f, big.NewInt(n+1)))
	z.AddErrorRat(tail)
	return &z
}

// atanhRecip returns atanh(1/m) = Σ 1/((2k+1) m^(2k+1)) as a ball.
func atanhRecip(m int64, prec uint) *Ball {
	p := prec + 16
	var mb, m2, pow, sum Ball
	mb.SetInt64(m)
	m2.SetInt64(m * m)
	pow.Inv(&mb, p)
	sum.SetInt64(0)
	tb := newRadFloat().SetFloat64(1)
	tb.Quo(tb, new(big.Float).SetInt64(m))
	m2f := new(big.Float).SetInt64(m * m)
	var k int64
	for {
		var t, d Ball
		d.SetInt64(2*k + 1)
		t.Div(&pow, &d, p)
		sum.Add(&sum, &t, p)
		k++
		pow.Div(&pow, &m2, p)
		tb.Quo(tb, m2f)
		if tb.MantExp(nil) < -int(p)-2 || tb.Sign() == 0 {
			break
		}
	}
	// remaining terms form a geometric-dominated tail
	sum.AddError(newRadFloat().Add(tb, tb))
	return &sum
}

// evalLog2 uses log 2 = 2(atanh(1/5) + atanh(1/7)).
func evalLog2(prec uint) *Ball {
	a := atanhRecip(5, prec+4)
	b := atanhRecip(7, prec+4)
	var z Ball
	z.Add(a, b, prec+4)
	return z.MulPow2(&z, 1)
}

// evalLog10 uses log 10 = 3 log 2 + 2 atanh(1/9).
func (c *ConstCache) evalLog10(prec uint) *Ball {
	l2 := c.Get(ConstLog2, prec+4)
	a := atanhRecip(9, prec+4)
	var z, three Ball
	three.SetInt64(3)
	z.Mul(l2, &three, prec+4)
	a.MulPow2(a, 1)
	return z.Add(&z, a, prec+4)
}

// evalEuler uses the Brent–McMillan AGM-free form: with
// A = Σ H_k (n^k/k!)^2, B = Σ (n^k/k!)^2, γ = A/B - log n + ε where
// 0 < ε < 4 e^(-4n) < 2^(2-5n).
func evalEuler(prec uint) *Ball {
	n := int64((prec+12)/5) + 2
	p := prec + 24

	var a, b, h, term Ball
	a.SetInt64(0)
	b.SetInt64(1) // k = 0 term of B; H_0 = 0 contributes nothing to A
	h.SetInt64(0)
	term.SetInt64(1)
	n2 := new(Ball).SetInt64(n * n)
	tb := newRadFloat().SetInt64(1) // upper bound on the current term
	n2f := new(big.Float).SetInt64(n * n)
	var k int64
	for {
		k++
		var kb, k2 Ball
		kb.SetInt64(k)
		k2.SetInt64(k * k)
		term.Mul(&term, n2, p)
		term.Div(&term, &k2, p)
		var invK Ball
		invK.Inv(&kb, p)
		h.Add(&h, &invK, p)
		var ht Ball
		ht.Mul(&h, &term, p)
		a.Add(&a, &ht, p)
		b.Add(&b, &term, p)
		tb.Mul(tb, n2f)
		tb.Quo(tb, new(big.Float).SetInt64(k*k))
		if k > 2*n && (tb.Sign() == 0 || tb.MantExp(nil) < -int(p)-4) {
			break
		}
	}
	// for k > 2n the term ratio (n/k)^2 < 1/4: geometric tails, with the
	// A-tail carrying an extra H_j <= j factor
	tail := newRadFloat().Add(tb, tb)
	htail := newRadFloat().Mul(tail, new(big.Float).SetInt64(2*k))
	a.AddError(htail)
	b.AddError(tail)

	var z, nb, ln Ball
	z.Div(&a, &b, p)
	nb.SetInt64(n)
	ln.Log(&nb, p)
	z.Sub(&z, &ln, p)
	z.AddError2Exp(2 - 5*int(n))
	return &z
}

// evalCatalan uses
// G = (3/8) Σ 1/(binom(2k,k) (2k+1)^2) + (π/8) log(2+√3).
func (c *ConstCache) evalCatalan(prec uint) *Ball {
	p := prec + 16
	var sum Ball
	sum.SetInt64(0)
	binom := big.NewInt(1)
	var k int64
	for {
		d := new(big.Int).SetInt64((2*k + 1) * (2*k + 1))
		d.Mul(d, binom)
		var t Ball
		t.SetRat(new(big.Rat).SetFrac(big.NewInt(1), d), p)
		sum.Add(&sum, &t, p)
		// term magnitude is below 4^-k
		if 2*k > int64(p)+4 {
			sum.AddError2Exp(-2*int(k) - 1)
			break
		}
		binom.Mul(binom, big.NewInt(2*k+1))
		binom.Mul(binom, big.NewInt(2*k+2))
		binom.Div(binom, big.NewInt(k+1))
		binom.Div(binom, big.NewInt(k+1))
		k++
	}
	var three, r, lg Ball
	three.SetInt64(3)
	r.Sqrt(&three, p)
	var two Ball
	two.SetInt64(2)
	r.Add(&r, &two, p)
	lg.Log(&r, p)
	pi := c.Get(ConstPi, p)
	lg.Mul(&lg, pi, p)
	var z Ball
	z.Mul(&sum, &three, p)
	z.Add(&z, &lg, p)
	return z.MulPow2(&z, -3)
}

// evalApery uses ζ(3) = (5/2) Σ (-1)^(k-1) / (k^3 binom(2k,k)); the series
// alternates with decreasing terms, so the tail is below the next term.
func evalApery(prec uint) *Ball {
	p := prec + 16
	var sum Ball
	sum.SetInt64(0)
	binom := big.NewInt(2) // binom(2,1)
	var k int64 = 1
	for {
		d := new(big.Int).SetInt64(k * k * k)
		d.Mul(d, binom)
		var t Ball
		t.SetRat(new(big.Rat).SetFrac(big.NewInt(1), d), p)
		if k&1 == 1 {
			sum.Add(&sum, &t, p)
		} else {
			sum.Sub(&sum, &t, p)
		}
		// terms shrink by roughly 4 per step
		if 2*k > int64(p)+6 {
			sum.AddError2Exp(-2 * int(k))
			break
		}
		binom.Mul(binom, big.NewInt(2*k+1))
		binom.Mul(binom, big.NewInt(2*k+2))
		binom.Div(binom, big.NewInt(k+1))
		binom.Div(binom, big.NewInt(k+1))
		k++
	}
	var five Ball
	five.SetInt64(5)
	sum.Mul(&sum, &five, p)
	return sum.MulPow2(&sum, -1)
}

// evalKhinchin uses
// log K = (1/log 2) Σ_{n>=1} (ζ(2n)-1)/n · Σ_{k=1}^{2n-1} (-1)^(k+1)/k,
// with (ζ(2n)-1) < 2^(1-2n) bounding the tail.
func (c *ConstCache) evalKhinchin(prec uint) *Ball {
	p := prec + 16
	nMax := int64(p/2) + 4

	var sum, inner, one Ball
	sum.SetInt64(0)
	inner.SetInt64(0) // alternating harmonic partial sum, extended as n grows
	one.SetInt64(1)
	var kTop int64 // inner sum currently covers 1..kTop
	for n := int64(1); n <= nMax; n++ {
		for kTop < 2*n-1 {
			kTop++
			var t, kb Ball
			kb.SetInt64(kTop)
			t.Inv(&kb, p)
			if kTop&1 == 1 {
				inner.Add(&inner, &t, p)
			} else {
				inner.Sub(&inner, &t, p)
			}
		}
		zv := ZetaUint(uint64(2*n), p)
		var t, nb Ball
		t.Sub(zv, &one, p)
		nb.SetInt64(n)
		t.Div(&t, &nb, p)
		t.Mul(&t, &inner, p)
		sum.Add(&sum, &t, p)
	}
	sum.AddError2Exp(2 - 2*int(nMax))

	l2 := c.Get(ConstLog2, p)
	var z Ball
	z.Div(&sum, l2, p)
	return z.Exp(&z, p)
}

// glaisherDigits holds A to 40 decimal digits; evalGlaisher serves any
// precision from it, with the radius covering the unstored tail, so
// requests beyond the stored accuracy return a correct but wide ball
// rather than recomputing (computing ζ'(2) rigorously is out of scope for
// the cache; see DESIGN.md).
const glaisherDigits = `1.282427129100622636875342568869791727767`

func evalGlaisher(prec uint) *Ball {
	r, ok := new(big.Rat).SetString(glaisherDigits)
	if !ok {
		panic(`orb: glaisher: bad literal`)
	}
	var z Ball
	z.SetRat(r, prec+8)
	// last stored digit may be rounded: covered by 10^-38 < 2^-126
	z.AddError2Exp(-126)
	return &z
}

// evalLogSqrt2Pi uses log√(2π) = (log 2 + log π)/2.
func (c *ConstCache) evalLogSqrt2Pi(prec uint) *Ball {
	p := prec + 8
	pi := c.Get(ConstPi, p)
	var z Ball
	z.Log(pi, p)
	z.Add(&z, c.Get(ConstLog2, p), p)
	return z.MulPow2(&z, -1)
}
