package tessellate

// engine holds everything that must stay per-Tessellation rather than
// global: arithmetic scratch buffers for the adaptive-precision kernel,
// and the free lists for the high-churn pooled types. The original this
// system is modeled on kept this as module-level state; sharing it across
// concurrent tessellations would corrupt results, so here it is a plain
// field the Tessellation owns (see DESIGN.md).
type engine struct {
	scratch expansion

	nodePool  []*EdgeNode
	eventPool []*SweepEvent
}

func newEngine() *engine {
	return &engine{
		scratch: make(expansion, 0, 16),
	}
}

func (e *engine) getNode() *EdgeNode {
	if n := len(e.nodePool); n > 0 {
		node := e.nodePool[n-1]
		e.nodePool = e.nodePool[:n-1]
		*node = EdgeNode{}
		return node
	}
	return &EdgeNode{}
}

func (e *engine) putNode(n *EdgeNode) {
	e.nodePool = append(e.nodePool, n)
}

func (e *engine) getEvent() *SweepEvent {
	if n := len(e.eventPool); n > 0 {
		ev := e.eventPool[n-1]
		e.eventPool = e.eventPool[:n-1]
		*ev = SweepEvent{}
		return ev
	}
	return &SweepEvent{}
}

func (e *engine) putEvent(ev *SweepEvent) {
	e.eventPool = append(e.eventPool, ev)
}
