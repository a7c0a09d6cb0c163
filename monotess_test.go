package tessellate

import (
	"testing"

	"github.com/tdewolff/test"
)

// TestTessellationConvexSquare exercises S2: a single convex ring with
// no self-intersections should terminate and report none.
func TestTessellationConvexSquare(t *testing.T) {
	square := Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	tess := New([]Ring{square})
	tess.Run()

	test.That(t, len(tess.IntersectionPoints()) == 0)
	test.That(t, len(tess.MonotoneRegions()) >= 1)
}

// TestTessellationBowtie exercises S3: a self-crossing ring has exactly
// one proper self-intersection, at its center.
func TestTessellationBowtie(t *testing.T) {
	bowtie := Ring{{0, 0}, {1, 1}, {1, 0}, {0, 1}}
	tess := New([]Ring{bowtie})
	tess.Run()

	pts := tess.IntersectionPoints()
	test.That(t, len(pts) >= 1)
	found := false
	for _, p := range pts {
		if p.X == 0.5 && p.Y == 0.5 {
			found = true
		}
	}
	test.That(t, found)
}

// TestTessellationNestedHole exercises S4: an outer square with an
// inner hole produces no self-intersections (the two rings don't
// actually cross each other's edges).
func TestTessellationNestedHole(t *testing.T) {
	outer := Ring{{0, 0}, {4, 0}, {4, 4}, {0, 4}}
	inner := Ring{{1, 1}, {3, 1}, {3, 3}, {1, 3}}
	tess := New([]Ring{outer, inner})
	tess.Run()

	test.That(t, len(tess.IntersectionPoints()) == 0)
}

func TestTessellationEmptyInput(t *testing.T) {
	tess := New(nil)
	test.That(t, !tess.Step())
	test.T(t, len(tess.MonotoneRegions()), 0)
}

func TestTessellationDegenerateRingSkipped(t *testing.T) {
	tess := New([]Ring{{{0, 0}, {1, 1}}})
	test.That(t, !tess.Step())
}

func TestTessellationTerminates(t *testing.T) {
	r1 := Ring{{0, 1}, {0, 0}, {1, 0}, {4, 3}, {4, 4}, {3, 4}}
	r2 := Ring{{3, 0}, {4, 0}, {4, 1}, {1, 4}, {0, 4}, {0, 3}}
	tess := New([]Ring{r1, r2})

	steps := 0
	for tess.Step() {
		steps++
		if steps > 10000 {
			t.Fatal("step did not terminate")
		}
	}
}
