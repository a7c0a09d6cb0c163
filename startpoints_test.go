package tessellate

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestDedupRingDropsConsecutiveDuplicates(t *testing.T) {
	ring := Ring{{0, 0}, {0, 0}, {1, 0}, {1, 1}, {1, 1}}
	pts, idx := dedupRing(ring)
	test.T(t, len(pts), 3)
	test.T(t, idx, []int{0, 2, 3})
}

func TestFindStartEntriesSquare(t *testing.T) {
	// Square traced clockwise (y grows downward) starting at the bottom-left.
	square := Ring{{0, 1}, {0, 0}, {1, 0}, {1, 1}}
	entries := findStartEntries([]Ring{square})
	test.That(t, len(entries) >= 1)
	// The topmost-and-leftmost vertex is (0,0): y=0 is the minimum.
	test.Float(t, entries[0].p.Y, 0)
}

func TestFindStartEntriesSkipsShortRings(t *testing.T) {
	entries := findStartEntries([]Ring{{{0, 0}, {1, 1}}})
	test.T(t, len(entries), 0)
}

func TestFindStartEntriesSortedAscending(t *testing.T) {
	r1 := Ring{{0, 1}, {0, 0}, {1, 0}, {1, 1}}
	r2 := Ring{{3, 1}, {3, 0}, {4, 0}, {4, 1}}
	entries := findStartEntries([]Ring{r1, r2})
	for i := 1; i < len(entries); i++ {
		test.That(t, !startEntryLess(entries[i], entries[i-1]))
	}
}
