// Package orb implements real ball arithmetic over [math/big].
//
// A [Ball] represents the set of real numbers within a radius of a midpoint,
// and every operation returns a ball guaranteed to contain the exact
// mathematical image of its input sets. The midpoint is rounded to the
// caller's precision; the radius absorbs both the rounding error of the
// midpoint and the propagated error from the input radii, via closed-form
// bounds specific to each operation.
//
// Midpoints are [math/big.Float] values, with nil representing NaN (an
// indeterminate ball). Radii are always-nonnegative [math/big.Float] values
// at a small fixed precision, rounded toward positive infinity, with nil
// representing an exact (zero radius) ball.
//
// Out-of-domain evaluation never returns an error: it returns an
// indeterminate ball, which is contagious through arithmetic. Division by a
// ball containing zero returns the whole real line, not an error.
package orb
