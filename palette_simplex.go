package dither

import "container/heap"

// BuildSimplexPalette (C6) builds a palette of up to numColors entries by
// recursively splitting a tiling of the RGB cube into tetrahedra ("simplex
// cuts"), always splitting the heaviest (by perceptual diameter squared
// times assigned point count, under dist) cut along its longest edge,
// until no cut is worth splitting further or numColors vertices have
// been produced. dist is the "active distance metric" §4.5 step 6 and
// §6's external Build-palette contract both name.
//
// Grounded on _examples/original_source/src/palettes.rs's
// make_simplex_palette: the disjoint hue-sector binning that assigns
// every sample point to exactly one of six seed tetrahedra sharing black
// and white, the BinaryHeap main loop, the exact edge-ratio shrink-fit
// ("optimize") done once a cut is off the heap, and the exact
// barycentric-coordinate split of a cut's points between its two
// children.
func BuildSimplexPalette(points []LinearRgb, numColors int, dist DistanceFunc) []Srgb8 {
	pool := newVertexPool(dist)

	black := pool.ensure(LinearRgb{0, 0, 0})
	white := pool.ensure(LinearRgb{1, 1, 1})
	corners := [7]int{
		pool.ensure(LinearRgb{1, 0, 0}), // red
		pool.ensure(LinearRgb{1, 1, 0}), // yellow
		pool.ensure(LinearRgb{0, 1, 0}), // green
		pool.ensure(LinearRgb{0, 1, 1}), // cyan
		pool.ensure(LinearRgb{0, 0, 1}), // blue
		pool.ensure(LinearRgb{1, 0, 1}), // magenta
		0,
	}
	corners[6] = corners[0]

	var buckets [6][][4]float64
	for _, p := range points {
		sector := hueSector(p.Clamp().Srgb8())
		verts := [4]LinearRgb{
			pool.points[black],
			pool.points[white],
			pool.points[corners[sector]],
			pool.points[corners[sector+1]],
		}
		buckets[sector] = append(buckets[sector], barycentricOf(verts, p))
	}

	h := &cutHeap{}
	heap.Init(h)
	for i := 0; i < 6; i++ {
		if len(buckets[i]) == 0 {
			continue
		}
		verts := [4]int{black, white, corners[i], corners[i+1]}
		for _, v := range verts {
			pool.ref(v)
		}
		heap.Push(h, &simplexCut{pool: pool, verts: verts, points: buckets[i]})
	}

	const maxSplits = 100000
	splits := 0
	for pool.distinctCount() < numColors && h.Len() > 0 && splits < maxSplits {
		cut := heap.Pop(h).(*simplexCut)
		cut.optimize() // §4.5 step 2, done only now that cut is off the heap (§9).
		if len(cut.points) <= 1 {
			// §4.5 step 3: a cut holding at most one point has no useful
			// split; it is dropped from the heap with its vertex
			// references left intact, since they are still needed.
			continue
		}
		a, b, ok := cut.split()
		if !ok {
			// Rounding the diameter edge's midpoint collapsed onto one
			// of its endpoints: no useful split exists here (§4.5
			// step 4), so this cut is simply dropped from the heap.
			continue
		}

		for _, v := range cut.verts {
			pool.release(v)
		}
		if len(a.points) > 0 {
			for _, v := range a.verts {
				pool.ref(v)
			}
			heap.Push(h, a)
		}
		if len(b.points) > 0 {
			for _, v := range b.verts {
				pool.ref(v)
			}
			heap.Push(h, b)
		}
		splits++
	}

	// §4.5 termination: shrink-fit every remaining node exactly once
	// more before reading off the palette.
	for _, cut := range *h {
		cut.optimize()
	}
	return pool.colors(numColors)
}

// hueSector classifies an sRGB8 pixel into one of six disjoint hue
// sectors, matching the winding order of the cube corners red, yellow,
// green, cyan, blue, magenta: sector i spans the edge between corner i
// and corner i+1. Every pixel lands in exactly one sector, so no sample
// point is ever tested against more than one seed tetrahedron.
func hueSector(s Srgb8) int {
	r, g, b := int(s.R), int(s.G), int(s.B)
	if r < g {
		switch {
		case g < b:
			return 3 // cyan-blue
		case b < r:
			return 1 // yellow-green
		default:
			return 2 // cyan-green
		}
	}
	switch {
	case r < b:
		return 4 // magenta-blue
	case b < g:
		return 0 // yellow-red
	default:
		return 5 // magenta-red
	}
}

// barycentricOf computes the barycentric coordinates of pixel inside the
// tetrahedron verts by shifting every vertex so pixel sits at the
// origin, then taking the four opposite-face signed volumes, the same
// construction tightSimplex uses for its own enclosure test.
func barycentricOf(verts [4]LinearRgb, pixel LinearRgb) [4]float64 {
	var shifted [4]Vec3[LinearRgb]
	for i, v := range verts {
		shifted[i] = v.toVec().Sub(pixel.toVec())
	}
	d0 := Determinant3(shifted[1], shifted[3], shifted[2])
	d1 := Determinant3(shifted[0], shifted[2], shifted[3])
	d2 := Determinant3(shifted[0], shifted[3], shifted[1])
	d3 := Determinant3(shifted[0], shifted[1], shifted[2])
	dAll := d0 + d1 + d2 + d3
	return [4]float64{d0 / dAll, d1 / dAll, d2 / dAll, d3 / dAll}
}

// vertexPool deduplicates linear RGB points that different simplex cuts
// share (black and white belong to every seed tetrahedron that ends up
// with at least one point, for instance) and tracks how many live cuts
// reference each one: the guard optimize uses before moving a vertex
// that a sibling cut still depends on.
type vertexPool struct {
	points []LinearRgb
	index  map[Srgb8]int
	refs   []int
	dist   DistanceFunc // the active distance metric (§4.5 step 6)
}

func newVertexPool(dist DistanceFunc) *vertexPool {
	return &vertexPool{index: make(map[Srgb8]int), dist: dist}
}

// ensure returns the index of c, creating an unreferenced entry for it
// if this is the first time c has been seen. It does not itself count as
// a reference: callers ref() the indices they actually keep, mirroring
// the original's referenced_points map, which is only incremented for
// vertices of a cut that survives with at least one assigned point.
func (p *vertexPool) ensure(c LinearRgb) int {
	key := c.Clamp().Srgb8()
	if i, ok := p.index[key]; ok {
		return i
	}
	i := len(p.points)
	p.points = append(p.points, c)
	p.refs = append(p.refs, 0)
	p.index[key] = i
	return i
}

func (p *vertexPool) ref(i int)     { p.refs[i]++ }
func (p *vertexPool) release(i int) { p.refs[i]-- }

func (p *vertexPool) distinctCount() int {
	n := 0
	for _, r := range p.refs {
		if r > 0 {
			n++
		}
	}
	return n
}

func (p *vertexPool) colors(limit int) []Srgb8 {
	out := make([]Srgb8, 0, limit)
	for i, r := range p.refs {
		if r <= 0 {
			continue
		}
		out = append(out, p.points[i].Clamp().Srgb8())
		if len(out) >= limit && limit > 0 {
			break
		}
	}
	return out
}

// simplexCut is one tetrahedron of the palette build, identified by four
// indices into the shared vertexPool, with every assigned sample point
// already tagged by its barycentric coordinates with respect to this
// cut's own four vertices in order. A coordinate tuple is recomputed
// from scratch only when a point is first binned into a seed cut;
// shrink-fitting and splitting afterward only ever refactor these
// existing coordinates algebraically, never re-deriving them against the
// cut's (possibly moved) vertices.
type simplexCut struct {
	pool   *vertexPool
	verts  [4]int
	points [][4]float64
	index  int // heap.Interface bookkeeping
}

func (c *simplexCut) vertex(i int) LinearRgb { return c.pool.points[c.verts[i]] }

// diameter2 is the largest squared *perceptual* distance (§3's "cached
// squared perceptual diameter", computed under the pool's active
// distance metric) between any pair of this tetrahedron's four vertices.
func (c *simplexCut) diameter2() float64 {
	max := 0.0
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			d := c.pool.dist(c.vertex(i).Lab(), c.vertex(j).Lab())
			if d > max {
				max = d
			}
		}
	}
	return max
}

func (c *simplexCut) weight() float64 {
	return c.diameter2() * float64(len(c.points))
}

// optimize shrink-fits this cut toward the points it actually contains:
// for every ordered pair of vertices (opt, other), it finds how far opt
// can move toward other -- as a fraction `factor` of the way from other
// to opt -- without pushing any assigned point's opt-coordinate past
// zero, then performs that move if it doesn't collide with a vertex a
// different live cut still needs, and refactors every point's
// barycentric coordinates to match the new vertex exactly rather than
// re-deriving them by a fresh containment test.
//
// Grounded on _examples/original_source/src/palettes.rs's
// SimplexCut::optimize.
func (c *simplexCut) optimize() {
	if len(c.points) == 0 {
		return
	}
	for opt := 0; opt < 4; opt++ {
		for other := 0; other < 4; other++ {
			if other == opt {
				continue
			}
			maxRatio := 0.0
			for _, coords := range c.points {
				ratio := coords[opt] / coords[other]
				if ratio > maxRatio {
					maxRatio = ratio
				}
			}
			if maxRatio >= 1e15 {
				continue
			}
			factor := 1 - 1/(maxRatio+1)

			optVert, otherVert := c.vertex(opt), c.vertex(other)
			newLin := AddVec(otherVert, Sub(optVert, otherVert).Scale(factor))
			newRgb := newLin.Clamp().Srgb8()
			oldVi := c.verts[opt]
			oldRgb := c.pool.points[oldVi].Clamp().Srgb8()
			if newRgb == oldRgb {
				continue
			}
			vi, pooled := c.pool.index[newRgb]
			exists := pooled && c.pool.refs[vi] > 0
			if c.pool.refs[oldVi] != 1 && !exists {
				// Moving would distort a sibling cut that still
				// references this vertex, and the target color isn't
				// already a vertex elsewhere to merge onto safely.
				continue
			}

			newVi := c.pool.ensure(newLin)
			c.pool.release(oldVi)
			c.pool.ref(newVi)
			c.verts[opt] = newVi

			for i := range c.points {
				if factor < 1e-15 {
					c.points[i][opt] += c.points[i][other]
					c.points[i][other] = 0
				} else {
					c.points[i][opt] /= factor
					c.points[i][other] -= c.points[i][opt] * (1 - factor)
				}
			}
		}
	}
}

// split cuts this tetrahedron along its longest edge at the midpoint,
// producing two child tetrahedra that each keep three of the original
// four vertices and swap in the new midpoint for the fourth. Each
// point's barycentric coordinates are refactored algebraically into
// whichever child it falls in, exactly, with no fresh containment test:
// a point with more weight on edge endpoint 0 than endpoint 1 goes to
// the child that kept endpoint 0, and vice versa.
//
// If the linear-RGB midpoint rounds (in Srgb8) to either edge endpoint
// (§4.5 step 4: "if rounding collapses to either edge endpoint,
// discard"), ok is false and the cut is left unsplit.
func (c *simplexCut) split() (a, b *simplexCut, ok bool) {
	edge0, edge1 := 0, 1
	best := -1.0
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			d := c.pool.dist(c.vertex(i).Lab(), c.vertex(j).Lab())
			if d > best {
				best = d
				edge0, edge1 = i, j
			}
		}
	}

	mid := Midpoint(c.vertex(edge0), c.vertex(edge1))
	midRgb := mid.Clamp().Srgb8()
	if midRgb == c.vertex(edge0).Clamp().Srgb8() || midRgb == c.vertex(edge1).Clamp().Srgb8() {
		return nil, nil, false
	}
	midIdx := c.pool.ensure(mid)

	other0, other1 := 0, 0
	k := 0
	for i := 0; i < 4; i++ {
		if i != edge0 && i != edge1 {
			if k == 0 {
				other0 = i
			} else {
				other1 = i
			}
			k++
		}
	}

	a = &simplexCut{pool: c.pool, verts: [4]int{c.verts[edge0], midIdx, c.verts[other0], c.verts[other1]}}
	b = &simplexCut{pool: c.pool, verts: [4]int{c.verts[edge1], midIdx, c.verts[other0], c.verts[other1]}}

	a.points = make([][4]float64, 0, len(c.points))
	b.points = make([][4]float64, 0, len(c.points))
	for _, coords := range c.points {
		if coords[edge0] > coords[edge1] {
			a.points = append(a.points, [4]float64{
				coords[edge0] - coords[edge1],
				coords[edge1] * 2.0,
				coords[other0],
				coords[other1],
			})
		} else {
			b.points = append(b.points, [4]float64{
				coords[edge1] - coords[edge0],
				coords[edge0] * 2.0,
				coords[other0],
				coords[other1],
			})
		}
	}

	return a, b, true
}

// cutHeap is a container/heap max-heap over simplexCut, ordered so the
// heaviest (largest diameter2 * point count) cut is popped first: that
// is always the cut most worth subdividing next.
type cutHeap []*simplexCut

func (h cutHeap) Len() int           { return len(h) }
func (h cutHeap) Less(i, j int) bool { return h[i].weight() > h[j].weight() }
func (h cutHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index, h[j].index = i, j
}
func (h *cutHeap) Push(x interface{}) {
	c := x.(*simplexCut)
	c.index = len(*h)
	*h = append(*h, c)
}
func (h *cutHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
