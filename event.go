package tessellate

// SweepEvent is a node of the event queue: a place on the sweep line
// where some combinatorial change happens. Buckets are populated lazily
// as producers (ring preprocessing, bend propagation, intersection
// discovery) refer to the same coordinate; the event itself is created on
// first reference and freed back to the pool once fully processed.
type SweepEvent struct {
	point RationalPoint

	// Ring entry points activated at this coordinate are not tracked in
	// a bucket here: the start-point preprocessor's sorted output
	// (Tessellation.starts/nextStart) already names, for any event that
	// turns out to be a start, exactly which ring position it activates,
	// so there is nothing for a per-event bucket to add.
	bend  []*Edge      // edges ending here
	cross []crossEntry // bundles known to cross here

	before, after *EdgeNode // neighbor bundles captured during processing

	queueNode *splayNode[*SweepEvent, RationalPoint]
}

type crossEntry struct {
	a, b *EdgeBundle
	key  int64
}

func (ev *SweepEvent) reset() {
	ev.point = RationalPoint{}
	ev.bend = ev.bend[:0]
	ev.cross = ev.cross[:0]
	ev.before, ev.after = nil, nil
	ev.queueNode = nil
}

// eventQueue is the splay tree of pending SweepEvents, ordered by the
// exact rational comparison in compareEventPoints.
type eventQueue struct {
	tree *splayTree[*SweepEvent, RationalPoint]
	eng  *engine
}

func newEventQueue(eng *engine) *eventQueue {
	q := &eventQueue{eng: eng}
	q.tree = newSplayTree[*SweepEvent, RationalPoint](func(ev *SweepEvent, p RationalPoint) float64 {
		return eng.compareEventPoints(ev.point, p)
	})
	return q
}

// insert finds or creates the event at p. A duplicate insert returns the
// existing event so callers can append into its buckets; per the event
// queue invariant no two distinct events ever compare equal.
func (q *eventQueue) insert(p RationalPoint) *SweepEvent {
	res := q.tree.Insert(p, func(p RationalPoint) *SweepEvent {
		ev := q.eng.getEvent()
		ev.point = p
		return ev
	})
	if res.delta != 0 {
		res.node.item.queueNode = res.node
		q.tree.Splay(res.node)
	}
	return res.node.item
}

// popMin removes and returns the minimum (next) event, or nil if empty.
func (q *eventQueue) popMin() *SweepEvent {
	n := q.tree.First()
	if n == nil {
		return nil
	}
	q.tree.Remove(n)
	return n.item
}

func (q *eventQueue) empty() bool {
	return q.tree.root == nil
}

// compareEventPoints implements the event queue's deltaFrom policy (§4.4):
// literal points compare directly by (y, x); otherwise a filtered
// rational compare is attempted first, escalating to exact expansions
// only when the filter is ambiguous.
func (e *engine) compareEventPoints(a, b RationalPoint) float64 {
	if a.w == 0 && b.w == 0 {
		if a.y != b.y {
			return a.y - b.y
		}
		return a.x - b.x
	}

	aw, bw := a.w, b.w
	if aw == 0 {
		aw = 1
	}
	if bw == 0 {
		bw = 1
	}

	det := a.y*bw - b.y*aw
	errBound := (absExp(a.y)*bw + absExp(b.y)*aw + a.yErr*bw + b.yErr*aw + (absExp(a.y)+absExp(b.y))*1e-9) * (4 * epsilon)
	if abs(det) > errBound {
		return det
	}

	// Ambiguous: escalate to exact arithmetic.
	a.makeExact(e)
	b.makeExact(e)
	ySum := e.bigSum(e.bigProd(a.yExact, b.wExact), negExpansion(e.bigProd(b.yExact, a.wExact)))
	if s := signOf(ySum); s != 0 {
		return s
	}
	xSum := e.bigSum(e.bigProd(a.xExact, b.wExact), negExpansion(e.bigProd(b.xExact, a.wExact)))
	return signOf(xSum)
}

func negExpansion(e expansion) expansion {
	out := make(expansion, len(e))
	for i, v := range e {
		out[i] = -v
	}
	return out
}

func signOf(e expansion) float64 {
	for i := len(e) - 1; i >= 0; i-- {
		if e[i] != 0 {
			return e[i]
		}
	}
	return 0
}

// crossingKey canonically combines two bundle ids so (a,b) and (b,a) key
// the same memo slot.
func crossingKey(a, b *EdgeBundle) int64 {
	x, y := int64(a.id), int64(b.id)
	if x > y {
		x, y = y, x
	}
	return x<<26 + y
}
