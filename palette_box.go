package dither

import "sort"

// SplitStrategy selects where along a box's longest axis to cut it when
// BuildBoxPalette subdivides.
type SplitStrategy int

const (
	// SplitHalf cuts at the midpoint of the axis's range.
	SplitHalf SplitStrategy = iota
	// SplitMedian cuts at the median sample value along the axis.
	SplitMedian
	// SplitMean cuts at the mean sample value along the axis.
	SplitMean
)

// octreeNode is an axis-aligned box in linear RGB space holding the
// sample points currently assigned to it.
type octreeNode struct {
	lo, hi LinearRgb
	points []LinearRgb
}

func (n *octreeNode) axisRange(axis int) (float64, float64) {
	switch axis {
	case 0:
		return n.lo.R, n.hi.R
	case 1:
		return n.lo.G, n.hi.G
	default:
		return n.lo.B, n.hi.B
	}
}

func (n *octreeNode) longestAxis() int {
	rr := n.hi.R - n.lo.R
	rg := n.hi.G - n.lo.G
	rb := n.hi.B - n.lo.B
	axis := 0
	max := rr
	if rg > max {
		axis, max = 1, rg
	}
	if rb > max {
		axis = 2
	}
	return axis
}

func axisValue(p LinearRgb, axis int) float64 {
	switch axis {
	case 0:
		return p.R
	case 1:
		return p.G
	default:
		return p.B
	}
}

func (n *octreeNode) splitValue(axis int, strategy SplitStrategy) float64 {
	lo, hi := n.axisRange(axis)
	switch strategy {
	case SplitMedian:
		vals := make([]float64, len(n.points))
		for i, p := range n.points {
			vals[i] = axisValue(p, axis)
		}
		sort.Float64s(vals)
		return vals[len(vals)/2]
	case SplitMean:
		sum := 0.0
		for _, p := range n.points {
			sum += axisValue(p, axis)
		}
		return sum / float64(len(n.points))
	default:
		return (lo + hi) / 2
	}
}

func (n *octreeNode) weight() float64 {
	return float64(len(n.points))
}

// split divides n along its longest axis at the given strategy's cut
// value, producing two children whose boxes are clipped to the parent's
// box (so they still tile the space exactly) and whose points are
// partitioned by which side of the cut they fall on.
func (n *octreeNode) split(strategy SplitStrategy) (*octreeNode, *octreeNode) {
	axis := n.longestAxis()
	cut := n.splitValue(axis, strategy)

	lo1, hi1 := n.lo, n.hi
	lo2, hi2 := n.lo, n.hi
	setAxis(&hi1, axis, cut)
	setAxis(&lo2, axis, cut)

	a := &octreeNode{lo: lo1, hi: hi1}
	b := &octreeNode{lo: lo2, hi: hi2}
	for _, p := range n.points {
		if axisValue(p, axis) <= cut {
			a.points = append(a.points, p)
		} else {
			b.points = append(b.points, p)
		}
	}
	return a, b
}

func setAxis(p *LinearRgb, axis int, v float64) {
	switch axis {
	case 0:
		p.R = v
	case 1:
		p.G = v
	default:
		p.B = v
	}
}

// centroid optionally shrink-fits the box's representative color to the
// mean of its assigned points rather than the geometric center of its
// box, which tends to produce a palette that better matches the actual
// image content than the box midpoint would.
func (n *octreeNode) centroid() LinearRgb {
	if len(n.points) == 0 {
		return Midpoint(n.lo, n.hi)
	}
	var sum Vec3[LinearRgb]
	for _, p := range n.points {
		sum = sum.Add(p.toVec())
	}
	c := float64(len(n.points))
	return LinearRgb{sum.X / c, sum.Y / c, sum.Z / c}
}

// BuildBoxPalette (C7) builds a palette of up to numColors entries by
// recursively splitting the linear-RGB unit cube along its longest
// axis, always splitting the box with the most assigned points, until
// numColors boxes exist. Each box contributes one palette color: the
// mean of its assigned points if shrinkFit is true, otherwise its box's
// geometric center.
//
// Grounded on _examples/original_source/src/palettes.rs's
// make_box_palette and its OctreeNode type.
func BuildBoxPalette(points []LinearRgb, numColors int, strategy SplitStrategy, shrinkFit bool) []Srgb8 {
	if len(points) == 0 || numColors <= 0 {
		return nil
	}

	root := &octreeNode{lo: LinearRgb{0, 0, 0}, hi: LinearRgb{1, 1, 1}, points: points}

	nodes := []*octreeNode{root}
	for len(nodes) < numColors {
		heaviestIdx := 0
		for i, n := range nodes {
			if n.weight() > nodes[heaviestIdx].weight() {
				heaviestIdx = i
			}
		}
		heaviest := nodes[heaviestIdx]
		if len(heaviest.points) < 2 {
			break
		}
		a, b := heaviest.split(strategy)
		if len(a.points) == 0 || len(b.points) == 0 {
			break
		}
		nodes[heaviestIdx] = a
		nodes = append(nodes, b)
	}

	out := make([]Srgb8, 0, len(nodes))
	for _, n := range nodes {
		var c LinearRgb
		if shrinkFit {
			c = n.centroid()
		} else {
			c = Midpoint(n.lo, n.hi)
		}
		out = append(out, c.Clamp().Srgb8())
	}
	return out
}
