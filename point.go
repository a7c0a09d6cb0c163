package tessellate

import "math"

// Point is a finite double-precision 2D coordinate, as supplied by the
// caller in a ring or produced (rounded) as an intersectionPoint.
type Point struct {
	X, Y float64
}

// Equals reports bitwise equality, the granularity at which the sweep
// driver treats two literal points as "the same vertex".
func (p Point) Equals(q Point) bool {
	return p.X == q.X && p.Y == q.Y
}

func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Interpolate linearly interpolates between p and q at parameter t.
func (p Point) Interpolate(q Point, t float64) Point {
	return Point{(1-t)*p.X + t*q.X, (1-t)*p.Y + t*q.Y}
}

// below implements the sweep's total order on literal points: the sweep
// travels from smallest y to largest (top to bottom), ties broken by
// increasing x, so below reports whether p is reached later than q.
func (p Point) below(q Point) bool {
	if p.Y != q.Y {
		return p.Y > q.Y
	}
	return p.X > q.X
}

// RationalPoint is a homogeneous (x, y, w) point. w == 0 denotes a literal
// Point carried verbatim in (x, y); w > 0 denotes an intersection computed
// as a ratio, tracked with error bounds so that two RationalPoints can be
// compared exactly without ever rounding until emission.
//
// Invariant: wExact != nil implies xExact != nil and yExact != nil.
type RationalPoint struct {
	x, y, w          float64
	xErr, yErr, wErr float64

	xExact, yExact, wExact expansion

	// a, b are the two EdgeBundles whose intersection produced this point.
	// Both are nil for a literal (w == 0) point. If the intersection turned
	// out to coincide with an existing endpoint, the endpoint's bundle is
	// dropped (set nil) and w is forced back to 0.
	a, b *EdgeBundle
}

// literalPoint wraps a plain Point as a RationalPoint with w == 0.
func literalPoint(p Point) RationalPoint {
	return RationalPoint{x: p.X, y: p.Y, w: 0}
}

// Round materializes the RationalPoint as a double-precision Point,
// rounding to the nearest representable value. The sweep rounds each
// event point as it processes it and each intersection as it records it.
func (r RationalPoint) Round() Point {
	if r.w == 0 {
		return Point{r.x, r.y}
	}
	return Point{r.x / r.w, r.y / r.w}
}

func (r RationalPoint) isLiteral() bool {
	return r.w == 0
}

// makeExact lazily materializes the exact expansions for a RationalPoint
// that was produced ambiguously by a filtered comparison. Calling it twice
// is idempotent: the second call observes wExact already set and returns.
func (r *RationalPoint) makeExact(e *engine) {
	if r.wExact != nil {
		return
	}
	if r.isLiteral() {
		// A literal point's coordinates are already exact; promote them to
		// single-term expansions so downstream comparisons are uniform.
		r.xExact = expansion{r.x}
		r.yExact = expansion{r.y}
		r.wExact = expansion{1}
		return
	}
	a, b := r.a, r.b
	wExact := e.perpDotExact(a.x, a.y, a.x2, a.y2, b.x, b.y, b.x2, b.y2)
	offset := e.perpDotExact(a.x2, a.y2, b.x, b.y, a.x2, a.y2, b.x2, b.y2)
	dx := a.x2 - a.x
	dy := a.y2 - a.y
	xExact := e.bigSum(e.smallProd(wExact, a.x2), e.smallProd(offset, dx))
	yExact := e.bigSum(e.smallProd(wExact, a.y2), e.smallProd(offset, dy))
	r.xExact = xExact
	r.yExact = yExact
	r.wExact = wExact
}

// Vertex is a single point on the boundary of a MonotoneRegion.
type Vertex struct {
	X, Y   float64
	IsLeft bool
}

func abs(f float64) float64 { return math.Abs(f) }
