package tessellate

import (
	"fmt"
	"testing"

	"github.com/tdewolff/test"
)

func TestSplayInsertFindOrder(t *testing.T) {
	tr := newSplayTree[int, int](func(item, key int) float64 { return float64(item - key) })

	values := []int{5, 3, 8, 1, 4, 7, 9, 0, 2, 6}
	for _, v := range values {
		res := tr.Insert(v, func(k int) int { return k })
		tr.Splay(res.node)
	}

	n := tr.First()
	prev := -1
	count := 0
	for n != nil {
		test.That(t, n.item > prev)
		prev = n.item
		count++
		n = n.Next()
	}
	test.T(t, count, len(values))

	last := tr.Last()
	test.T(t, last.item, 9)
}

func TestSplayInsertDuplicateReturnsExisting(t *testing.T) {
	tr := newSplayTree[int, int](func(item, key int) float64 { return float64(item - key) })
	calls := 0
	make_ := func(k int) int { calls++; return k }

	r1 := tr.Insert(5, make_)
	tr.Splay(r1.node)
	r2 := tr.Insert(5, make_)

	test.T(t, r2.delta, 0.0)
	test.T(t, r2.node, r1.node)
	test.T(t, calls, 1)
}

func TestSplayRemove(t *testing.T) {
	tr := newSplayTree[int, int](func(item, key int) float64 { return float64(item - key) })
	var nodes []*splayNode[int, int]
	for _, v := range []int{5, 3, 8, 1, 4} {
		res := tr.Insert(v, func(k int) int { return k })
		nodes = append(nodes, res.node)
	}

	// Remove the middle value and check the remaining thread is still
	// sorted and contiguous.
	for _, n := range nodes {
		if n.item == 4 {
			tr.Remove(n)
		}
	}

	var got []int
	for n := tr.First(); n != nil; n = n.Next() {
		got = append(got, n.item)
	}
	want := []int{1, 3, 5, 8}
	test.T(t, len(got), len(want))
	for i := range want {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.T(t, got[i], want[i])
		})
	}
}
