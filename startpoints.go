package tessellate

// Ring is a borrowed, ordered sequence of points, implicitly closed by
// wrapping from the last point back to the first.
type Ring []Point

// startEntry names one ring-local topmost vertex: the position in ring
// at which the boundary transitions away from a strictly-upward stride.
// These are the only vertices the sweep line needs to insert fresh edges
// at; every other vertex is reached by bend-propagation.
type startEntry struct {
	ring int
	pos  int
	p    Point
}

// findStartEntries implements §4.5: for each ring with at least three
// points, it scans once (skipping exact-duplicate consecutive points).
// Every strictly-upward stride advances the entry candidate to the
// vertex it just reached (the top of the climb so far); the candidate
// is committed the moment the stride stops being strictly upward, so a
// ring yields one entry per upward run; a candidate still active when
// the scan wraps around is committed as well.
//
// Rings with fewer than three usable points are silently skipped (§7,
// input-out-of-domain).
func findStartEntries(rings []Ring) []startEntry {
	var entries []startEntry

	for ringIdx, ring := range rings {
		pts, origIdx := dedupRing(ring)
		if len(pts) < 3 {
			continue
		}
		n := len(pts)

		candidate := -1
		upward := func(from, to Point) bool {
			if to.Y != from.Y {
				return to.Y < from.Y
			}
			return to.X < from.X
		}

		// Find a stride boundary to start scanning from: the first index
		// whose incoming stride is not strictly upward, so the wraparound
		// candidate from the previous loop iteration is unambiguous.
		start := 0
		for i := 0; i < n; i++ {
			prev := pts[(i-1+n)%n]
			if !upward(prev, pts[i]) {
				start = i
				break
			}
		}

		for k := 0; k < n; k++ {
			i := (start + k) % n
			prev := pts[(i-1+n)%n]
			if upward(prev, pts[i]) {
				candidate = i
				continue
			}
			if candidate != -1 {
				entries = append(entries, startEntry{ring: ringIdx, pos: origIdx[candidate], p: pts[candidate]})
			}
			candidate = -1
		}
		if candidate != -1 {
			entries = append(entries, startEntry{ring: ringIdx, pos: origIdx[candidate], p: pts[candidate]})
		}
	}

	sortStartEntries(entries)
	return entries
}

// dedupRing drops exact-duplicate consecutive points (including the
// closing wraparound), returning the surviving points alongside their
// original indices into ring.
func dedupRing(ring Ring) ([]Point, []int) {
	if len(ring) == 0 {
		return nil, nil
	}
	pts := make([]Point, 0, len(ring))
	idx := make([]int, 0, len(ring))
	for i, p := range ring {
		if len(pts) > 0 && pts[len(pts)-1].Equals(p) {
			continue
		}
		pts = append(pts, p)
		idx = append(idx, i)
	}
	if len(pts) > 1 && pts[0].Equals(pts[len(pts)-1]) {
		pts = pts[:len(pts)-1]
		idx = idx[:len(idx)-1]
	}
	return pts, idx
}

// sortStartEntries orders entries ascending by (y, x, pos), a plain
// insertion sort since the slice is small relative to total edge count
// and no external sort dependency is warranted for this one call site.
func sortStartEntries(entries []startEntry) {
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && startEntryLess(entries[j], entries[j-1]); j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
}

func startEntryLess(a, b startEntry) bool {
	if a.p.Y != b.p.Y {
		return a.p.Y < b.p.Y
	}
	if a.p.X != b.p.X {
		return a.p.X < b.p.X
	}
	return a.pos < b.pos
}
