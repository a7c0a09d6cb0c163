package tessellate

// MonotoneRegion accumulates the two chains of a y-monotone output
// polygon as they are discovered by the sweep. Vertices are appended in
// the order the sweep discovers them; isLeft tags which chain a vertex
// belongs to.
type MonotoneRegion struct {
	Vertices []Vertex

	latestVertex Point
	latestBundle *EdgeBundle
	latestIsMerge bool

	closed   bool
	hasError bool
}

func newMonotoneRegion() *MonotoneRegion {
	return &MonotoneRegion{}
}

// append records a vertex on the chain named by isLeft, additionally
// updating the helper bookkeeping (latestVertex/latestBundle) the
// assembler consults when a later split needs to seed a new region.
func (r *MonotoneRegion) append(p Point, isLeft bool, bundle *EdgeBundle) {
	r.Vertices = append(r.Vertices, Vertex{X: p.X, Y: p.Y, IsLeft: isLeft})
	r.latestVertex = p
	r.latestBundle = bundle
	r.latestIsMerge = false
}

func (r *MonotoneRegion) markMerge() {
	r.latestIsMerge = true
}

func (r *MonotoneRegion) close() {
	r.closed = true
}

// regionAssembler implements §4.7's rule table: given the transition at
// a bundle (whether the region to its right was "inside" before and
// after the event), it creates, extends, merges or closes
// MonotoneRegions as appropriate.
type regionAssembler struct {
	regions []*MonotoneRegion
}

func newRegionAssembler() *regionAssembler {
	return &regionAssembler{}
}

// transition processes a single before/after pair for one bundle at
// vertex p. helper, if non-nil, is the currently open region immediately
// to the left that may seed a new region at a start/split.
func (ra *regionAssembler) transition(before, after bool, p Point, bundle *EdgeBundle, helper *MonotoneRegion) *MonotoneRegion {
	switch {
	case !before && after:
		// start or split
		var region *MonotoneRegion
		if helper != nil && !helper.closed {
			region = helper
			region.append(p, true, bundle)
		} else {
			region = newMonotoneRegion()
			ra.regions = append(ra.regions, region)
			region.append(p, true, bundle)
		}
		return region

	case before && !after:
		// end or merge
		region := bundle.region
		if region == nil {
			region = newMonotoneRegion()
			ra.regions = append(ra.regions, region)
		}
		wasMerge := region.latestIsMerge
		region.append(p, false, bundle)
		if wasMerge {
			region.close()
		}
		return region

	case before && after:
		// right-chain pass
		region := bundle.region
		region.append(p, false, bundle)
		return region

	default:
		// out/out: left-chain pass
		region := bundle.region
		if region == nil {
			region = newMonotoneRegion()
			ra.regions = append(ra.regions, region)
		}
		region.append(p, true, bundle)
		return region
	}
}
