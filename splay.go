package tessellate

// Threaded splay tree: a bottom-up splay BST whose nodes are additionally
// linked into a doubly-linked list in in-order sequence (prev/next). The
// same shape serves as both the event queue (keyed by RationalPoint) and
// the status structure (keyed by Line); each gets its own instantiation
// via generics, parameterized by its own comparator closure, rather than
// runtime subtype dispatch — there is no need for a common "tree item"
// interface when the comparator itself can close over whatever per-
// Tessellation state (the arithmetic engine) it needs.
//
// Deletion never splays (the caller already holds a direct node pointer,
// so there is nothing further to amortize); insertion only splices the
// new node into the thread and leaves splaying as an explicit, caller-
// invoked step, since a lookup hit should not disturb tree shape.
type splayNode[N any, K any] struct {
	left, right, parent *splayNode[N, K]
	prev, next          *splayNode[N, K]
	item                N
}

type splayTree[N any, K any] struct {
	root *splayNode[N, K]
	// delta compares an existing node's item against a candidate key;
	// positive means key sorts before item, negative after, zero equal.
	delta func(item N, key K) float64
}

func newSplayTree[N any, K any](delta func(N, K) float64) *splayTree[N, K] {
	return &splayTree[N, K]{delta: delta}
}

// insertResult reports what happened to an insert call.
type insertResult[N any, K any] struct {
	delta float64
	node  *splayNode[N, K]
}

// descend walks from the root comparing against key, stopping either at
// an exact match (delta == 0) or at the leaf where a new node would be
// spliced in.
func (t *splayTree[N, K]) descend(key K) (n *splayNode[N, K], delta float64) {
	n = t.root
	if n == nil {
		return nil, 0
	}
	for {
		delta = t.delta(n.item, key)
		if delta == 0 {
			return n, 0
		} else if delta > 0 {
			if n.left == nil {
				return n, delta
			}
			n = n.left
		} else {
			if n.right == nil {
				return n, delta
			}
			n = n.right
		}
	}
}

// Insert finds or creates the node for key. If a node already compares
// equal to key, it is returned with delta == 0 and no new node is made;
// otherwise make(key) builds the payload for a freshly spliced node,
// which is linked into the prev/next thread but NOT splayed — the caller
// decides whether a splay is warranted.
func (t *splayTree[N, K]) Insert(key K, make_ func(K) N) insertResult[N, K] {
	parent, delta := t.descend(key)
	if parent == nil {
		n := &splayNode[N, K]{item: make_(key)}
		t.root = n
		return insertResult[N, K]{0, n}
	}
	if delta == 0 {
		return insertResult[N, K]{0, parent}
	}

	n := &splayNode[N, K]{item: make_(key), parent: parent}
	if delta > 0 {
		parent.left = n
		n.prev = parent.prev
		n.next = parent
		if parent.prev != nil {
			parent.prev.next = n
		}
		parent.prev = n
	} else {
		parent.right = n
		n.next = parent.next
		n.prev = parent
		if parent.next != nil {
			parent.next.prev = n
		}
		parent.next = n
	}
	return insertResult[N, K]{delta, n}
}

// Find locates the node comparing equal to key, or nil.
func (t *splayTree[N, K]) Find(key K) *splayNode[N, K] {
	n, delta := t.descend(key)
	if n != nil && delta == 0 {
		return n
	}
	return nil
}

func (t *splayTree[N, K]) First() *splayNode[N, K] {
	n := t.root
	if n == nil {
		return nil
	}
	for n.left != nil {
		n = n.left
	}
	return n
}

func (t *splayTree[N, K]) Last() *splayNode[N, K] {
	n := t.root
	if n == nil {
		return nil
	}
	for n.right != nil {
		n = n.right
	}
	return n
}

func (n *splayNode[N, K]) Prev() *splayNode[N, K] { return n.prev }
func (n *splayNode[N, K]) Next() *splayNode[N, K] { return n.next }

func (n *splayNode[N, K]) isLeftChild() bool {
	return n.parent != nil && n.parent.left == n
}

func (t *splayTree[N, K]) rotateUp(n *splayNode[N, K]) {
	p := n.parent
	g := p.parent
	if p.left == n {
		p.left = n.right
		if n.right != nil {
			n.right.parent = p
		}
		n.right = p
	} else {
		p.right = n.left
		if n.left != nil {
			n.left.parent = p
		}
		n.left = p
	}
	p.parent = n
	n.parent = g
	if g != nil {
		if g.left == p {
			g.left = n
		} else {
			g.right = n
		}
	} else {
		t.root = n
	}
}

// Splay rotates n to the root using the standard zig/zig-zig/zig-zag
// schedule. Amortized O(log n) over a sequence of splays.
func (t *splayTree[N, K]) Splay(n *splayNode[N, K]) {
	for n.parent != nil {
		p := n.parent
		g := p.parent
		if g == nil {
			// zig
			t.rotateUp(n)
		} else if n.isLeftChild() == p.isLeftChild() {
			// zig-zig
			t.rotateUp(p)
			t.rotateUp(n)
		} else {
			// zig-zag
			t.rotateUp(n)
			t.rotateUp(n)
		}
	}
	t.root = n
}

// Remove deletes n using in-order-successor swap-down, maintaining the
// prev/next thread incrementally. No splay is performed.
func (t *splayTree[N, K]) Remove(n *splayNode[N, K]) {
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}

	switch {
	case n.left == nil && n.right == nil:
		t.replace(n, nil)
	case n.left == nil:
		t.replace(n, n.right)
	case n.right == nil:
		t.replace(n, n.left)
	default:
		succ := n.right
		for succ.left != nil {
			succ = succ.left
		}
		if succ.parent != n {
			t.replace(succ, succ.right)
			succ.right = n.right
			succ.right.parent = succ
		}
		t.replace(n, succ)
		succ.left = n.left
		succ.left.parent = succ
	}
	n.parent, n.left, n.right, n.prev, n.next = nil, nil, nil, nil, nil
}

func (t *splayTree[N, K]) replace(old, new_ *splayNode[N, K]) {
	if old.parent == nil {
		t.root = new_
	} else if old.parent.left == old {
		old.parent.left = new_
	} else {
		old.parent.right = new_
	}
	if new_ != nil {
		new_.parent = old.parent
	}
}
