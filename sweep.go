package tessellate

import "math"

// limit is the largest double whose double-of-itself still compares
// finite; sentinel edges sit at x = ±limit so prev/next walks in the
// status tree never fall off an end.
var limit = math.MaxFloat64 / 2

// Tessellation drives the sweep over one set of input rings, producing
// y-monotone regions and the list of proper self-intersections. It owns
// every heap entity the sweep creates (edges, bundles, nodes, events,
// regions); nothing here is shared across Tessellation instances.
type Tessellation struct {
	eng *engine

	rings []Ring

	events *eventQueue
	status *splayTree[*EdgeNode, Line]

	before, after *EdgeNode // neighbors of the latest event; the sentinels until then

	starts    []startEntry
	nextStart int

	nextBundleID int
	crossings    map[int64]bool

	assembler *regionAssembler

	intersections     []Point
	seenIntersection  map[Point]bool

	done bool
}

// New constructs a Tessellation over rings, a sequence of sequences of
// (x, y). Rings shorter than three (after deduplication) are silently
// skipped, per the input-out-of-domain error kind.
func New(rings []Ring) *Tessellation {
	t := &Tessellation{
		eng:              newEngine(),
		rings:            rings,
		crossings:        make(map[int64]bool),
		assembler:        newRegionAssembler(),
		seenIntersection: make(map[Point]bool),
	}
	t.events = newEventQueue(t.eng)
	t.status = newSplayTree[*EdgeNode, Line](statusDelta(t.eng))

	t.starts = findStartEntries(rings)

	lowSentinel := newEdgeBundle(t.nextBundleIDAlloc(), Line{-limit, -limit, -limit, limit})
	lowSentinel.afterIsInside = false
	highSentinel := newEdgeBundle(t.nextBundleIDAlloc(), Line{limit, -limit, limit, limit})
	highSentinel.afterIsInside = true

	loNode := &EdgeNode{bundle: lowSentinel}
	hiNode := &EdgeNode{bundle: highSentinel}
	lowSentinel.node, highSentinel.node = loNode, hiNode

	loRes := t.status.Insert(lowSentinel.line(), func(Line) *EdgeNode { return loNode })
	loRes.node.item.statusNode = loRes.node
	hiRes := t.status.Insert(highSentinel.line(), func(Line) *EdgeNode { return hiNode })
	hiRes.node.item.statusNode = hiRes.node

	t.before, t.after = loRes.node.item, hiRes.node.item

	if len(t.starts) > 0 {
		t.insertStartEvent(t.starts[0])
	}

	return t
}

func (b *EdgeBundle) line() Line { return Line{b.x, b.y, b.x2, b.y2} }

func (t *Tessellation) nextBundleIDAlloc() int {
	id := t.nextBundleID
	t.nextBundleID++
	return id
}

func (t *Tessellation) insertStartEvent(se startEntry) {
	t.events.insert(literalPoint(se.p))
}

// Step advances the sweep by one event. It returns false once the event
// queue is exhausted; subsequent calls keep returning false.
func (t *Tessellation) Step() bool {
	if t.done {
		return false
	}
	ev := t.events.popMin()
	if ev == nil {
		t.done = true
		return false
	}
	t.processEvent(ev)
	t.eng.putEvent(ev)
	return true
}

// Run drives Step to completion; a convenience for callers that don't
// need to interleave other work between events.
func (t *Tessellation) Run() {
	for t.Step() {
	}
}

// MonotoneRegions returns every region the sweep has produced so far.
// Meaningful once Step has returned false; earlier calls observe
// partial, indeterminate state, matching the concurrency model's
// cancellation contract.
func (t *Tessellation) MonotoneRegions() [][]Vertex {
	out := make([][]Vertex, 0, len(t.assembler.regions))
	for _, r := range t.assembler.regions {
		out = append(out, r.Vertices)
	}
	return out
}

// IntersectionPoints returns every distinct proper self-intersection
// point discovered, in discovery order.
func (t *Tessellation) IntersectionPoints() []Point {
	return t.intersections
}

func (t *Tessellation) recordIntersection(p Point) {
	if t.seenIntersection[p] {
		return
	}
	t.seenIntersection[p] = true
	t.intersections = append(t.intersections, p)
}

// processEvent implements the 13-step driver of §4.6.
func (t *Tessellation) processEvent(ev *SweepEvent) {
	p := ev.point.Round()

	hadNeighbors := len(ev.bend) > 0 || len(ev.cross) > 0
	if hadNeighbors {
		t.updateNeighbors(ev)
		t.updateStatusPass(ev, t.before, t.after, p, false)
	}

	for _, ce := range ev.cross {
		delete(t.crossings, ce.key)
	}

	var newEdges []*Edge
	for _, e := range ev.bend {
		e.bundle.remove(e)
		follower, followerPos, ok := t.ringFollower(e)
		if !ok {
			continue
		}
		if p.below(follower) || p.Equals(follower) {
			continue
		}
		ne := newEdge(e.ring, e.posAtEnd(), followerPos, p, follower)
		ne.dir *= e.dir
		newEdges = append(newEdges, ne)
		t.events.insert(literalPoint(follower))
	}

	// Consume every pending start entry at this coordinate — two rings
	// (or two disjoint climbs of the same ring) can share a topmost
	// vertex — before pre-inserting whichever start comes next.
	consumedStart := false
	for t.nextStart < len(t.starts) && t.starts[t.nextStart].p.Equals(p) {
		se := t.starts[t.nextStart]
		t.nextStart++
		consumedStart = true

		ring := t.rings[se.ring]
		n := len(ring)
		prevP := ring[(se.pos-1+n)%n]
		nextP := ring[(se.pos+1)%n]
		if !prevP.Equals(p) {
			pe := newEdge(se.ring, se.pos, (se.pos-1+n)%n, p, prevP)
			pe.dir = -pe.dir
			newEdges = append(newEdges, pe)
		}
		if !nextP.Equals(p) && !nextP.Equals(prevP) {
			newEdges = append(newEdges, newEdge(se.ring, se.pos, (se.pos+1)%n, p, nextP))
		}
	}
	if consumedStart && t.nextStart < len(t.starts) {
		t.insertStartEvent(t.starts[t.nextStart])
	}

	if len(newEdges) == 0 {
		t.handleNeighbors(ev)
		return
	}

	sortEdgesByAngle(t.eng, newEdges)

	before, after := t.before, t.after
	if !hadNeighbors {
		line := newEdges[0].line()
		res := t.status.Insert(line, func(l Line) *EdgeNode {
			n := t.eng.getNode()
			n.bundle = newEdgeBundle(t.nextBundleIDAlloc(), l)
			n.bundle.node = n
			return n
		})
		if res.delta == 0 {
			// Collinear with an existing bundle: treat like a bend.
			res.node.item.bundle.insert(newEdges[0])
			before = prevNonSentinelAware(res.node)
			after = nextNonSentinelAware(res.node)
			t.updateStatusPass(ev, before, after, p, false)
		} else {
			res.node.item.statusNode = res.node
			t.status.Splay(res.node)
			res.node.item.bundle.insert(newEdges[0])
			before = prevNode(res.node)
			after = nextNode(res.node)
		}
		ev.before, ev.after = before, after
		t.before, t.after = before, after
	}

	bundles := t.mergeEdgesIntoNodes(newEdges, before, after)
	t.syncNodesIntoTree(bundles, before, after)
	t.updateStatusPass(ev, before, after, p, true)
	t.handleNeighbors(ev)
}

func prevNode(n *splayNode[*EdgeNode, Line]) *EdgeNode {
	if pn := n.Prev(); pn != nil {
		return pn.item
	}
	return nil
}

func nextNode(n *splayNode[*EdgeNode, Line]) *EdgeNode {
	if nn := n.Next(); nn != nil {
		return nn.item
	}
	return nil
}

func prevNonSentinelAware(n *splayNode[*EdgeNode, Line]) *EdgeNode { return prevNode(n) }
func nextNonSentinelAware(n *splayNode[*EdgeNode, Line]) *EdgeNode { return nextNode(n) }

// updateNeighbors marks every bundle incident at ev as "seen", then
// walks outward from the status tree to find the first non-seen
// neighbor on each side (§4.6 step 2).
func (t *Tessellation) updateNeighbors(ev *SweepEvent) {
	seen := make(map[*EdgeBundle]bool)
	for _, e := range ev.bend {
		if e.bundle != nil {
			seen[e.bundle] = true
		}
	}
	for _, ce := range ev.cross {
		seen[ce.a] = true
		seen[ce.b] = true
	}
	for b := range seen {
		b.seen = true
	}

	var anchor *EdgeNode
	for b := range seen {
		if b.node != nil {
			anchor = b.node
			break
		}
	}
	if anchor == nil {
		return
	}

	before := anchor
	for before.statusNode.Prev() != nil && before.statusNode.Prev().item.bundle.seen {
		before = before.statusNode.Prev().item
	}
	if before.statusNode.Prev() != nil {
		before = before.statusNode.Prev().item
	}
	after := anchor
	for after.statusNode.Next() != nil && after.statusNode.Next().item.bundle.seen {
		after = after.statusNode.Next().item
	}
	if after.statusNode.Next() != nil {
		after = after.statusNode.Next().item
	}

	for b := range seen {
		b.seen = false
	}

	ev.before, ev.after = before, after
	t.before, t.after = before, after
}

// updateStatusPass implements updateStatusBefore/updateStatusAfter,
// which share the same walk-and-emit shape (§4.6 steps 3 and 11); after
// selects which one runs.
func (t *Tessellation) updateStatusPass(ev *SweepEvent, before, after *EdgeNode, p Point, isAfter bool) {
	if before == nil || after == nil || before == after {
		return
	}
	n := before.statusNode.Next()
	var helper *MonotoneRegion
	if before.bundle.region != nil {
		helper = before.bundle.region
	}
	for n != nil && n.item != after {
		bundle := n.item.bundle
		if bundle.count > 0 {
			wasInside := bundle.afterIsInside
			if isAfter {
				nowInside := !wasInside
				region := t.assembler.transition(wasInside, nowInside, p, bundle, helper)
				bundle.region = region
				bundle.afterIsInside = nowInside
				helper = region
			} else {
				if bundle.region != nil && bundle.region.latestIsMerge {
					bundle.region.append(p, false, bundle)
					bundle.region.close()
				}
			}
		}
		n = n.Next()
	}
}

// mergeEdgesIntoNodes implements §4.6 step 9: new edges (already sorted
// by angle) are merged against the bundles previously occupying the
// before..after slot, reusing a bundle when a new edge is collinear with
// it and creating fresh bundles otherwise.
func (t *Tessellation) mergeEdgesIntoNodes(newEdges []*Edge, before, after *EdgeNode) []*EdgeBundle {
	var existing []*EdgeBundle
	if before != nil && after != nil {
		n := before.statusNode.Next()
		for n != nil && n.item != after {
			existing = append(existing, n.item.bundle)
			n = n.Next()
		}
	}

	bundles := make([]*EdgeBundle, 0, len(newEdges))
	used := make(map[*EdgeBundle]bool)
	for _, e := range newEdges {
		var target *EdgeBundle
		for _, b := range existing {
			if used[b] {
				continue
			}
			if t.eng.perpDotSign(b.x, b.y, b.x2, b.y2, e.x, e.y, e.x2, e.y2) == 0 {
				target = b
				break
			}
		}
		if target == nil {
			target = newEdgeBundle(t.nextBundleIDAlloc(), e.line())
		}
		target.insert(e)
		used[target] = true
		bundles = append(bundles, target)
	}
	return bundles
}

// syncNodesIntoTree implements §4.6 step 10.
func (t *Tessellation) syncNodesIntoTree(bundles []*EdgeBundle, before, after *EdgeNode) {
	var nodes []*EdgeNode
	if before != nil && after != nil {
		n := before.statusNode.Next()
		for n != nil && n.item != after {
			nodes = append(nodes, n.item)
			n = n.Next()
		}
	}

	i := 0
	for ; i < len(nodes) && i < len(bundles); i++ {
		node := nodes[i]
		old := node.bundle
		node.bundle = bundles[i]
		bundles[i].node = node
		if old != bundles[i] {
			old.node = nil
		}
	}
	for ; i < len(nodes); i++ {
		t.status.Remove(nodes[i].statusNode)
		t.eng.putNode(nodes[i])
	}
	var last *splayNode[*EdgeNode, Line]
	for ; i < len(bundles); i++ {
		node := t.eng.getNode()
		node.bundle = bundles[i]
		res := t.status.Insert(bundles[i].line(), func(Line) *EdgeNode { return node })
		node.statusNode = res.node
		bundles[i].node = node
		last = res.node
	}
	if last != nil {
		t.status.Splay(last)
	}
	for _, b := range bundles {
		if b.count == 0 && b.node != nil {
			t.status.Remove(b.node.statusNode)
			t.eng.putNode(b.node)
			b.node = nil
		}
	}
}

// handleNeighbors implements §4.6 step 12: re-test the two outer pairs
// bracketing the event for intersections, respecting the pairwise memo.
func (t *Tessellation) handleNeighbors(ev *SweepEvent) {
	before, after := t.before, t.after
	if before == nil || after == nil {
		return
	}
	if bn := before.statusNode.Next(); bn != nil {
		t.checkAndInsert(before.bundle, bn.item.bundle)
	}
	if ap := after.statusNode.Prev(); ap != nil {
		t.checkAndInsert(ap.item.bundle, after.bundle)
	}
}

func (t *Tessellation) checkAndInsert(a, b *EdgeBundle) {
	if a == nil || b == nil || a.count == 0 || b.count == 0 {
		return
	}
	key := crossingKey(a, b)
	if t.crossings[key] {
		return
	}
	pt, ok := t.checkIntersection(a, b)
	if !ok {
		return
	}
	t.crossings[key] = true
	se := t.events.insert(pt)
	se.cross = append(se.cross, crossEntry{a: a, b: b, key: key})
	if pt.isLiteral() {
		// Endpoint coincidence: not a proper intersection.
		return
	}
	t.recordIntersection(pt.Round())
}

// checkIntersection implements §4.6's checkIntersection(a, b).
func (t *Tessellation) checkIntersection(a, b *EdgeBundle) (RationalPoint, bool) {
	det := t.eng.perpDotSign(a.x, a.y, a.x2, a.y2, b.x, b.y, b.x2, b.y2)
	if det <= 0 {
		return RationalPoint{}, false
	}

	a2 := t.eng.perpDotSign(a.x2, a.y2, b.x, b.y, a.x2, a.y2, b.x2, b.y2)
	b2 := t.eng.perpDotSign(b.x2, b.y2, a.x, a.y, b.x2, b.y2, a.x2, a.y2)
	if !(a2 <= 0 && b2 >= 0) {
		return RationalPoint{}, false
	}

	if a2 == 0 || b2 == 0 {
		var p Point
		if a2 == 0 {
			p = Point{a.x2, a.y2}
		} else {
			p = Point{b.x2, b.y2}
		}
		return literalPoint(p), true
	}

	dx := a.x2 - a.x
	dy := a.y2 - a.y
	rp := RationalPoint{
		x: a.x2*det + dx*a2,
		y: a.y2*det + dy*a2,
		w: det,
		a: a, b: b,
	}
	errScale := (3 + 8*epsilon) * epsilon
	rp.xErr = errScale * (absExp(rp.x) + 1)
	rp.yErr = errScale * (absExp(rp.y) + 1)
	rp.wErr = errScale * (absExp(rp.w) + 1)
	return rp, true
}

// ringFollower resolves the next usable vertex along e's ring in e's
// direction, skipping exact duplicates, and reports whether one exists
// (it always does for a well-formed ring of length >= 3).
func (t *Tessellation) ringFollower(e *Edge) (Point, int, bool) {
	ring := t.rings[e.ring]
	n := len(ring)
	if n == 0 {
		return Point{}, 0, false
	}
	from := e.posAtEnd()
	step := e.dir
	pos := from
	cur := ring[pos%n]
	for i := 0; i < n; i++ {
		pos = ((pos+step)%n + n) % n
		next := ring[pos]
		if !next.Equals(cur) {
			return next, pos, true
		}
	}
	return Point{}, 0, false
}

// posAtEnd returns the ring index of this edge's later (x2,y2) endpoint,
// the position bend-propagation continues from.
func (e *Edge) posAtEnd() int {
	return e.pos2
}

// sortEdgesByAngle sorts edges sharing a common endpoint counterclockwise
// using angleDeltaFrom, a simple insertion sort since the fan at any one
// event is small.
func sortEdgesByAngle(eng *engine, edges []*Edge) {
	for i := 1; i < len(edges); i++ {
		for j := i; j > 0 && eng.perpDotSign(
			edges[j-1].x, edges[j-1].y, edges[j-1].x2, edges[j-1].y2,
			edges[j].x, edges[j].y, edges[j].x2, edges[j].y2) > 0; j-- {
			edges[j], edges[j-1] = edges[j-1], edges[j]
		}
	}
}
