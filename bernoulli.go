package orb

import (
	"math/big"
	"sync"
)

// bernoulliExactMax is the largest index computed through the exact
// rational recurrence; beyond it the zeta product form is cheaper than the
// O(n^2) rational arithmetic.
const bernoulliExactMax = 512

var bernoulliCache struct {
	mu   sync.Mutex
	vals []*big.Rat // vals[n] is B_n; grows monotonically
}

// bernoulliTo extends the cache through index n and returns the backing
// slice. Callers must hold bernoulliCache.mu.
func bernoulliTo(n int) []*big.Rat {
	vals := bernoulliCache.vals
	if len(vals) == 0 {
		vals = append(vals, big.NewRat(1, 1))
	}
	for m := len(vals); m <= n; m++ {
		if m > 1 && m%2 == 1 {
			vals = append(vals, new(big.Rat))
			continue
		}
		// B_m = -1/(m+1) * sum_{j<m} C(m+1, j) B_j
		sum := new(big.Rat)
		c := new(big.Int)
		for j := 0; j < m; j++ {
			if vals[j].Sign() == 0 {
				continue
			}
			c.Binomial(int64(m+1), int64(j))
			t := new(big.Rat).SetInt(c)
			t.Mul(t, vals[j])
			sum.Add(sum, t)
		}
		sum.Quo(sum, new(big.Rat).SetInt64(int64(-(m + 1))))
		vals = append(vals, sum)
	}
	bernoulliCache.vals = vals
	return vals
}

// Bernoulli returns the exact Bernoulli number B_n (B_1 = -1/2). Values are
// cached, so repeated and ascending queries are cheap.
func Bernoulli(n uint) *big.Rat {
	bernoulliCache.mu.Lock()
	defer bernoulliCache.mu.Unlock()
	return new(big.Rat).Set(bernoulliTo(int(n))[n])
}

// BernoulliBall sets z to a ball containing B_n at about prec bits and
// returns z. Small indices round the exact rational; large even indices use
// |B_2m| = 2 (2m)! ζ(2m) / (2π)^(2m), with the zeta factor from the Euler
// product so the zeta machinery's own Bernoulli path is never re-entered.
func (z *Ball) BernoulliBall(n uint, prec uint) *Ball {
	if n > 1 && n%2 == 1 {
		return z.SetInt64(0)
	}
	if n <= bernoulliExactMax {
		return z.SetRat(Bernoulli(n), prec)
	}
	p := prec + uint(clog2(uint(n))) + 16
	var zv Ball
	zetaEulerProduct(&zv, uint64(n), p)
	fact := new(big.Int).MulRange(1, int64(n))
	var f, d Ball
	f.SetInt(fact)
	f.MulPow2(&f, 1)
	f.Mul(&f, &zv, p)
	d.MulPow2(piBall(p), 1)
	d.PowInt(&d, int64(n), p)
	z.Div(&f, &d, prec)
	if n/2%2 == 0 {
		z.Neg(z) // sign of B_2m is (-1)^(m+1)
	}
	return z
}
