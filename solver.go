package msdf

import "math"

// Polynomial root solvers for quadratic and cubic equations. The
// nearest-point query on a quadratic Bezier reduces to a cubic in the
// curve parameter, so these run once per edge per pixel and must be
// both fast and numerically robust.
//
// Based on algorithms from kurbo (https://github.com/linebender/kurbo),
// the cubic following Jim Blinn's "How to Solve a Cubic Equation" as
// presented at https://momentsingraphics.de/CubicRoots.html.

// SolveQuadratic finds real roots of ax^2 + bx + c = 0.
// Returns roots sorted in ascending order.
//
// If a is zero or nearly zero the equation is treated as linear, and
// degenerate all-zero input yields a single 0.0 root.
func SolveQuadratic(a, b, c float64) []float64 {
	// Scale coefficients to avoid overflow in the discriminant.
	sc0 := c / a
	sc1 := b / a

	if !isFinite(sc0) || !isFinite(sc1) {
		// a is zero or too small; fall back to the linear equation.
		root := -c / b
		if isFinite(root) {
			return []float64{root}
		}
		if c == 0 && b == 0 {
			return []float64{0}
		}
		return nil
	}

	arg := sc1*sc1 - 4*sc0
	switch {
	case !isFinite(arg):
		// Discriminant overflow: one root from sc1*x + x^2 = 0, the
		// other via the product of roots.
		return sortedPair(-sc1, sc0/-sc1)
	case arg < 0:
		return nil
	case arg == 0:
		return []float64{-0.5 * sc1}
	}

	// Numerically stable two-root formula, avoiding cancellation.
	root1 := -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	return sortedPair(root1, sc0/root1)
}

// sortedPair returns the finite members of (r1, r2) in ascending order.
func sortedPair(r1, r2 float64) []float64 {
	if !isFinite(r2) {
		return []float64{r1}
	}
	if r1 > r2 {
		return []float64{r2, r1}
	}
	return []float64{r1, r2}
}

// SolveCubic finds real roots of ax^3 + bx^2 + cx + d = 0.
// Returns 1-3 roots, not necessarily sorted. When a is zero or nearly
// zero the equation degrades to a quadratic.
func SolveCubic(a, b, c, d float64) []float64 {
	const oneThird = 1.0 / 3.0
	aRecip := 1.0 / a

	c2 := b * (oneThird * aRecip)
	c1 := c * (oneThird * aRecip)
	c0 := d * aRecip

	if !isFinite(c2) || !isFinite(c1) || !isFinite(c0) {
		return SolveQuadratic(b, c, d)
	}

	// (d0, d1, d2) is "Delta" in Blinn's derivation.
	d0 := (-c2)*c2 + c1
	d1 := (-c1)*c2 + c0
	d2 := c2*c0 - c1*c1

	disc := 4*d0*d2 - d1*d1

	// Depressed cubic: x = t - c2, t^3 + 3*d0*t - de = 0.
	de := (-2*c2)*d0 + d1

	if disc < 0 {
		// One real root via Cardano.
		sq := math.Sqrt(-0.25 * disc)
		r := -0.5 * de
		t1 := math.Cbrt(r+sq) + math.Cbrt(r-sq)
		return []float64{t1 - c2}
	}
	if disc == 0 {
		// Double root plus a simple root.
		t1 := math.Copysign(math.Sqrt(-d0), de)
		return []float64{t1 - c2, -2*t1 - c2}
	}

	// Three distinct real roots via the trigonometric form.
	th := math.Atan2(math.Sqrt(disc), -de) * oneThird
	thSin, thCos := math.Sincos(th)

	ss3 := thSin * math.Sqrt(3.0)
	t := 2 * math.Sqrt(-d0)

	return []float64{
		t*thCos - c2,
		t*0.5*(-thCos+ss3) - c2,
		t*0.5*(-thCos-ss3) - c2,
	}
}

// isFinite returns true if x is neither infinite nor NaN.
func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}
