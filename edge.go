package tessellate

// Line is the key type the status tree searches on: either a bundle's own
// canonical segment (when looking up where a new edge should sit) or a
// freshly constructed edge not yet bundled. It carries just the geometry,
// not ownership.
type Line struct {
	x, y, x2, y2 float64
}

// Edge references two (not necessarily consecutive — duplicate points are
// skipped upstream) positions on a ring. dir records the ring traversal
// direction that produced it; endpoints are normalized at construction so
// the edge always points downward-or-rightward.
type Edge struct {
	ring int
	pos  int
	pos2 int
	dir  int // +1: pos->pos2 followed ring order; -1: reversed

	x, y, x2, y2 float64

	bundle *EdgeBundle
}

// newEdge builds a downward-or-rightward-pointing Edge between two ring
// positions, given their resolved coordinates.
func newEdge(ring, pos, pos2 int, p, p2 Point) *Edge {
	dir := 1
	x, y, x2, y2 := p.X, p.Y, p2.X, p2.Y
	if p.below(p2) {
		// p is reached later than p2: flip so the edge still runs
		// downward-or-rightward, and remember we reversed it.
		x, y, x2, y2 = x2, y2, x, y
		pos, pos2 = pos2, pos
		dir = -1
	}
	return &Edge{ring: ring, pos: pos, pos2: pos2, dir: dir, x: x, y: y, x2: x2, y2: y2}
}

func (e *Edge) line() Line {
	return Line{e.x, e.y, e.x2, e.y2}
}

// angleDeltaFrom compares the turning direction of e against line,
// assuming the two share an endpoint (only meaningful in that case): the
// sign is the turn direction from line to e, used to sort edges
// counterclockwise around a shared event point.
func (e *Edge) angleDeltaFrom(eng *engine, line Line) float64 {
	return eng.perpDotSign(line.x, line.y, line.x2, line.y2, e.x, e.y, e.x2, e.y2)
}

// EdgeBundle collects edges collinear with a common supporting line; all
// members occupy a single status-tree slot while the sweep line crosses
// them.
type EdgeBundle struct {
	x, y, x2, y2 float64 // canonical segment, extended to the furthest member
	adx          float64 // x2 - x, used by the checkIntersection prefilter
	xErr         float64 // error bound on x-coordinates of this bundle

	members map[*Edge]bool
	count   int

	afterIsInside bool
	seen          bool
	region        *MonotoneRegion
	id            int

	node *EdgeNode
}

func newEdgeBundle(id int, line Line) *EdgeBundle {
	b := &EdgeBundle{
		x: line.x, y: line.y, x2: line.x2, y2: line.y2,
		members: make(map[*Edge]bool, 1),
		id:      id,
	}
	b.adx = b.x2 - b.x
	return b
}

// deltaFrom is the status tree's ordering predicate: the sign of whether
// line's start point lies left (positive), on (zero), or right (negative)
// of this bundle's supporting line.
func (b *EdgeBundle) deltaFrom(eng *engine, line Line) float64 {
	return eng.perpDotSign(b.x, b.y, b.x2, b.y2, b.x, b.y, line.x, line.y)
}

// insert adds edge to the bundle (idempotent) and extends the bundle's
// reach to whichever endpoint lies further along the sweep (y then x).
func (b *EdgeBundle) insert(e *Edge) {
	if b.members[e] {
		return
	}
	b.members[e] = true
	b.count++
	e.bundle = b
	if (Point{e.x2, e.y2}).below(Point{b.x2, b.y2}) {
		b.x2, b.y2 = e.x2, e.y2
		b.adx = b.x2 - b.x
	}
}

// remove decrements count without shrinking the bundle's geometry; once
// count reaches zero the bundle is logically absent. Bundles themselves
// are not pooled; only the EdgeNodes holding them are.
func (b *EdgeBundle) remove(e *Edge) {
	if !b.members[e] {
		return
	}
	delete(b.members, e)
	b.count--
	if e.bundle == b {
		e.bundle = nil
	}
}

// EdgeNode is the status-tree node type: it owns exactly one bundle and is
// additionally threaded by prev/next via the generic splay tree.
type EdgeNode struct {
	bundle *EdgeBundle
	// statusNode is this node's entry in the status splay tree, set once
	// on insertion; Remove and Splay calls need it to act on the tree
	// without a redundant lookup.
	statusNode *splayNode[*EdgeNode, Line]
}

// statusDelta builds the comparator closure for a status tree: comparing
// an existing EdgeNode's bundle against a candidate Line, using eng for
// the underlying robust predicate.
func statusDelta(eng *engine) func(*EdgeNode, Line) float64 {
	return func(n *EdgeNode, line Line) float64 {
		return n.bundle.deltaFrom(eng, line)
	}
}
