package tessellate

// Adaptive-precision arithmetic kernel.
//
// Two intersecting edges rarely meet at a point with representable double
// coordinates; naively rounding and re-comparing such points leads to
// inconsistent orderings in the status tree, which in turn corrupts the
// topology the sweep is trying to build. The fix, after Shewchuk's
// "Adaptive Precision Floating-Point Arithmetic and Fast Robust Geometric
// Predicates", is to carry computed points as exact sums of nonoverlapping
// doubles ("expansions") and only fall back to the expensive exact path
// when a cheap filtered estimate is too close to call.
//
// No library in this codebase's dependency set implements expansion
// arithmetic or Shewchuk-style predicates (the nearest relative, robust
// S2-style predicates, escalates to math/big.Float rather than exact
// expansions), so this file is written directly against the stdlib.

const (
	epsilon = 1.0 / (1 << 53)
	// splitter is 2^27 + 1, used by split to break a double into two
	// 26-bit-significand halves whose product is exact.
	splitter = (1 << 27) + 1

	perpErrBound1 = (16*epsilon + 3) * epsilon
	perpErrBound2 = (12*epsilon + 2) * epsilon
)

// expansion is a nonoverlapping sequence of doubles, nonincreasing in
// magnitude from the last element to the first, whose exact sum equals
// the value it represents.
type expansion []float64

// twoSum computes hi = fl(a+b) and returns the exact roundoff lo such that
// a+b == hi+lo exactly, using the standard six-flop formula. Works for any
// a, b (not just |a| >= |b|).
func twoSum(a, b float64) (hi, lo float64) {
	hi = a + b
	bv := hi - a
	av := hi - bv
	br := b - bv
	ar := a - av
	lo = ar + br
	return
}

// twoSumLo is twoSum when the caller already has hi and only wants lo.
func twoSumLo(a, b, hi float64) float64 {
	bv := hi - a
	av := hi - bv
	br := b - bv
	ar := a - av
	return ar + br
}

// fastTwoSum is twoSum specialized for the case |a| >= |b|; four flops.
func fastTwoSum(a, b float64) (hi, lo float64) {
	hi = a + b
	lo = b - (hi - a)
	return
}

// split breaks a into ahi+alo, each with at most 26 bits of significand,
// so that ahi*b and alo*b can each be computed exactly.
func split(a float64) (ahi, alo float64) {
	c := splitter * a
	abig := c - a
	ahi = c - abig
	alo = a - ahi
	return
}

// twoProduct computes hi = fl(a*b) and the exact roundoff lo such that
// a*b == hi+lo exactly.
func twoProduct(a, b float64) (hi, lo float64) {
	hi = a * b
	ahi, alo := split(a)
	bhi, blo := split(b)
	err1 := hi - ahi*bhi
	err2 := err1 - alo*bhi
	err3 := err2 - ahi*blo
	lo = alo*blo - err3
	return
}

func twoProductLo(a, b, hi float64) float64 {
	ahi, alo := split(a)
	bhi, blo := split(b)
	err1 := hi - ahi*bhi
	err2 := err1 - alo*bhi
	err3 := err2 - ahi*blo
	return alo*blo - err3
}

// twoTwoSum adds the two-term expansions (a1,a0) and (b1,b0), returning a
// 4-term (non-normalized but nonoverlapping-pairwise) result.
func twoTwoSum(a1, a0, b1, b0 float64) (x3, x2, x1, x0 float64) {
	var h1, h2, h3 float64
	h1, x0 = twoSum(a0, b0)
	h2, x1 = twoSum(a1, h1)
	x3, h3 = twoSum(h2, b1)
	_ = h3
	x2 = h3
	return
}

// bigSum adds two expansions, producing an expansion representing the
// exact sum. Implements the merge-then-sweep "fast expansion sum" variant;
// zero terms produced along the way are stripped.
func (e *engine) bigSum(a, b expansion) expansion {
	merged := make(expansion, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if absExp(a[i]) < absExp(b[j]) {
			merged = append(merged, a[i])
			i++
		} else {
			merged = append(merged, b[j])
			j++
		}
	}
	merged = append(merged, a[i:]...)
	merged = append(merged, b[j:]...)
	if len(merged) == 0 {
		return expansion{0}
	}

	out := e.scratch[:0]
	q := merged[0]
	for k := 1; k < len(merged); k++ {
		var hi, lo float64
		hi, lo = twoSum(q, merged[k])
		if lo != 0 {
			out = append(out, lo)
		}
		q = hi
	}
	out = append(out, q)
	e.scratch = out[:0]
	if len(out) == 0 {
		return expansion{0}
	}
	result := make(expansion, len(out))
	copy(result, out)
	return result
}

func absExp(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// smallProd multiplies an expansion by a single scalar, exactly.
func (e *engine) smallProd(a expansion, b float64) expansion {
	if len(a) == 0 {
		return expansion{0}
	}
	hi, q := twoProduct(a[0], b)
	out := make(expansion, 0, 2*len(a))
	if q != 0 {
		out = append(out, q)
	}
	for i := 1; i < len(a); i++ {
		prodHi, prodLo := twoProduct(a[i], b)
		var sumHi, sumLo float64
		sumHi, sumLo = twoSum(hi, prodLo)
		if sumLo != 0 {
			out = append(out, sumLo)
		}
		hi, q = fastTwoSum(prodHi, sumHi)
		if q != 0 {
			out = append(out, q)
		}
	}
	out = append(out, hi)
	return out
}

// bigProd multiplies two expansions exactly by repeated smallProd+bigSum.
// Only used by the exact fallback, so simplicity is favored over the
// fancier distillation algorithms.
func (e *engine) bigProd(a, b expansion) expansion {
	result := expansion{0}
	for _, bt := range b {
		result = e.bigSum(result, e.smallProd(a, bt))
	}
	return result
}

// perpDotSign returns a double whose sign is the exact sign of
//
//	(ax2-ax1)(by2-by1) - (ay2-ay1)(bx2-bx1)
//
// i.e. the z-component of the cross product of vectors A=(a2-a1) and
// B=(b2-b1). Magnitude is not meaningful once the adaptive filter has
// escalated past the fast path.
func (e *engine) perpDotSign(ax1, ay1, ax2, ay2, bx1, by1, bx2, by2 float64) float64 {
	adx := ax2 - ax1
	ady := ay2 - ay1
	bdx := bx2 - bx1
	bdy := by2 - by1

	detLeft := adx * bdy
	detRight := ady * bdx
	det := detLeft - detRight

	var detSum float64
	if detLeft > 0 {
		if detRight <= 0 {
			return det
		}
		detSum = detLeft + detRight
	} else if detLeft < 0 {
		if detRight >= 0 {
			return det
		}
		detSum = -detLeft - detRight
	} else {
		return det
	}

	errBound := perpErrBound1 * detSum
	if det >= errBound || -det >= errBound {
		return det
	}

	// Two-term refinement via twoProduct + twoTwoSum.
	leftHi, leftLo := twoProduct(adx, bdy)
	rightHi, rightLo := twoProduct(ady, bdx)
	_, b2, b1, b0 := twoTwoSum(leftHi, leftLo, -rightHi, -rightLo)
	refined := b2 + b1 + b0

	errBound = perpErrBound2 * detSum
	if refined >= errBound || -refined >= errBound {
		return refined
	}

	return e.perpDotExactSign(ax1, ay1, ax2, ay2, bx1, by1, bx2, by2)
}

// perpDotExact computes the exact expansion of the perp-dot determinant.
func (e *engine) perpDotExact(ax1, ay1, ax2, ay2, bx1, by1, bx2, by2 float64) expansion {
	adx := exactDiff(ax2, ax1)
	ady := exactDiff(ay2, ay1)
	bdx := exactDiff(bx2, bx1)
	bdy := exactDiff(by2, by1)

	left := e.bigProd(adx, bdy)
	right := e.bigProd(ady, bdx)
	negRight := make(expansion, len(right))
	for i, v := range right {
		negRight[i] = -v
	}
	return e.bigSum(left, negRight)
}

// exactDiff returns a-b as a two-term expansion (roundoff first).
func exactDiff(a, b float64) expansion {
	hi, lo := twoSum(a, -b)
	return expansion{lo, hi}
}

func (e *engine) perpDotExactSign(ax1, ay1, ax2, ay2, bx1, by1, bx2, by2 float64) float64 {
	exp := e.perpDotExact(ax1, ay1, ax2, ay2, bx1, by1, bx2, by2)
	// An expansion's sign equals the sign of its most significant
	// (last-appended, largest-magnitude) nonzero term.
	for i := len(exp) - 1; i >= 0; i-- {
		if exp[i] != 0 {
			return exp[i]
		}
	}
	return 0
}
