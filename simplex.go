package dither

import (
	"math"
	"sort"
)

// The simplex dither kernel (C5): for a target pixel, finds a tetrahedron
// of (up to) four palette colors in linear RGB space enclosing the
// target, then rounds to one of its four vertices by weighted random
// selection, using a BiasField in place of true randomness. Where no
// enclosing tetrahedron exists the kernel falls back to projecting the
// target onto every candidate triangle and segment, tracking the single
// best-so-far candidate across both (seeded at flat nearest-color), and
// finally returns flat nearest-color if nothing projects.
//
// Grounded on _examples/original_source/src/main.rs's tight_simplex().

type simplexCandidate struct {
	idx     int
	lin     LinearRgb
	dist2   float64
	luma    float64
	useless bool
}

// tightSimplex returns the palette index chosen for target, given a bias
// value in [0, 1) supplied by the caller's BiasField.
func tightSimplex(pal *Palette, target LinearRgb, dist DistanceFunc, bias float64) int {
	n := pal.Len()
	if n == 1 {
		return 0
	}

	targetLab := target.Lab()
	cands := make([]simplexCandidate, n)
	for i := 0; i < n; i++ {
		cands[i] = simplexCandidate{
			idx:   i,
			lin:   pal.Linear[i],
			dist2: finiteOrInf(dist(targetLab, pal.Lab[i])),
			luma:  pal.Lab[i].L(),
		}
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].dist2 < cands[j].dist2 })

	// Fast path: the nearest color is already (almost) exact.
	if cands[0].dist2 < 1e-20 {
		return cands[0].idx
	}

	// Points shifted so the target pixel sits at the origin, mirroring the
	// original's trans_palette: every enclosure and prune test below reads
	// directly off this shift.
	shifted := func(c simplexCandidate) Vec3[LinearRgb] {
		return c.lin.toVec().Sub(target.toVec())
	}

	if n >= 4 {
	outer:
		for i3 := 3; i3 < n; i3++ {
			if cands[i3].useless {
				continue
			}
			for i2 := 2; i2 < i3; i2++ {
				if cands[i2].useless {
					continue
				}
				for i1 := 1; i1 < i2; i1++ {
					if cands[i1].useless {
						continue
					}

					p0 := shifted(cands[0])
					p1 := shifted(cands[i1])
					p2 := shifted(cands[i2])
					p3 := shifted(cands[i3])

					d0 := Determinant3(p1, p3, p2)
					d1 := Determinant3(p0, p2, p3)
					d2 := Determinant3(p0, p3, p1)
					d3 := Determinant3(p0, p1, p2)

					idxs := [4]int{cands[0].idx, cands[i1].idx, cands[i2].idx, cands[i3].idx}
					lumas := [4]float64{cands[0].luma, cands[i1].luma, cands[i2].luma, cands[i3].luma}
					points := [4]Vec3[LinearRgb]{p0, p1, p2, p3}

					if absf(d0) < 1e-15 || absf(d1) < 1e-15 || absf(d2) < 1e-15 || absf(d3) < 1e-15 {
						if idx, ok := degenerateFace(idxs, lumas, points, bias); ok {
							return idx
						}
						if idx, ok := degenerateEdge(idxs, lumas, points, bias); ok {
							return idx
						}
						continue
					}

					dAll := d0 + d1 + d2 + d3
					if sameSign(dAll, d0) && sameSign(dAll, d1) && sameSign(dAll, d2) && sameSign(dAll, d3) {
						weights := [4]float64{d0 / dAll, d1 / dAll, d2 / dAll, d3 / dAll}
						return pickWeighted(idxs, lumas, weights, bias)
					}

					// If the three terms that depend on this i3 (d0, d1,
					// d2 -- d3 depends only on i1, i2) already agree in
					// sign, no vertex beyond the current i3 can enclose
					// the target with this i1, i2 pair either, so i3 is
					// useless for every remaining i3.
					if sameSign(d0, d1) && sameSign(d0, d2) {
						cands[i3].useless = true
						continue outer
					}
				}
			}
		}
	}

	return projectFallback(pal, cands, target, dist, bias)
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// sameSign reports whether a and b have the same sign, treating zero as
// positive to match Rust's f64::signum (which returns 1.0 for +0.0).
func sameSign(a, b float64) bool {
	return (a >= 0) == (b >= 0)
}

// pickWeighted chooses one of the four enclosing vertices, weighted by
// its barycentric coordinate, using bias as the draw against the
// cumulative distribution of weights taken in increasing-luma order.
// This is what turns "target is inside this tetrahedron" into a
// dithered pixel: over many pixels with varying bias, each vertex is
// chosen with probability proportional to how much of the tetrahedron's
// volume (by barycentric weight) belongs to it, recreating the target
// color's average.
func pickWeighted(idxs [4]int, lumas [4]float64, weights [4]float64, bias float64) int {
	order := [4]int{0, 1, 2, 3}
	sort.Slice(order[:], func(i, j int) bool { return lumas[order[i]] < lumas[order[j]] })

	cum := 0.0
	for _, o := range order {
		cum += weights[o]
		if bias <= cum {
			return idxs[o]
		}
	}
	return idxs[order[len(order)-1]]
}

// degenerateFace handles a coplanar tetrahedron by testing each of its
// four faces for a valid (nonnegative) barycentric projection of the
// origin (the target, since points are shifted by it), picking among the
// face's three vertices by bias the same way pickWeighted does.
func degenerateFace(idxs [4]int, lumas [4]float64, points [4]Vec3[LinearRgb], bias float64) (int, bool) {
	faces := [4][3]int{{0, 1, 2}, {0, 1, 3}, {0, 2, 3}, {1, 2, 3}}
	for _, face := range faces {
		fp0, fp1, fp2 := points[face[0]], points[face[1]], points[face[2]]
		if absf(Determinant3(fp0, fp1, fp2)) >= 1e-12 {
			continue
		}

		vec01 := fp1.Sub(fp0)
		vec02 := fp2.Sub(fp0)
		normal := vec01.Cross(vec02)
		size2 := normal.Dot(normal)
		if size2 <= 1e-18 {
			continue
		}

		coeff0 := normal.Dot(fp1.Cross(fp2))
		coeff1 := normal.Dot(fp2.Cross(fp0))
		coeff2 := normal.Dot(fp0.Cross(fp1))
		if coeff0 < -1e-15 || coeff1 < -1e-15 || coeff2 < -1e-15 {
			continue
		}

		order := [3]int{0, 1, 2}
		coeffs := [3]float64{coeff0, coeff1, coeff2}
		sort.Slice(order[:], func(a, b int) bool {
			return lumas[face[order[a]]] < lumas[face[order[b]]]
		})

		cum := 0.0
		for _, o := range order {
			cum += coeffs[o] / size2
			if bias <= cum {
				return idxs[face[o]], true
			}
		}
		return idxs[face[order[len(order)-1]]], true
	}
	return 0, false
}

// degenerateEdge handles a coplanar tetrahedron whose faces all failed by
// testing each of its six edges for a valid projection of the origin
// onto the segment, picking between its two endpoints by bias.
func degenerateEdge(idxs [4]int, lumas [4]float64, points [4]Vec3[LinearRgb], bias float64) (int, bool) {
	edges := [6][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}
	for _, edge := range edges {
		ep0, ep1 := points[edge[0]], points[edge[1]]
		vec01 := ep1.Sub(ep0)
		vec0p := ep0.Neg()
		normal := vec01.Cross(vec0p)
		if normal.Dot(normal) >= 1e-15 {
			continue
		}

		len2 := vec01.Dot(vec01)
		partial := vec0p.Dot(vec01)
		if partial < 0 || partial > len2 {
			continue
		}

		w0, w1 := 1-partial/len2, partial/len2
		order := [2]int{0, 1}
		if lumas[edge[1]] < lumas[edge[0]] {
			order = [2]int{1, 0}
		}
		weights := [2]float64{w0, w1}

		cum := 0.0
		for _, o := range order {
			cum += weights[o]
			if bias <= cum {
				return idxs[edge[o]], true
			}
		}
		return idxs[edge[order[len(order)-1]]], true
	}
	return 0, false
}

// projectFallback runs when no tetrahedron (degenerate or not) enclosed
// the target: it projects the target onto every candidate segment, then
// every candidate triangle, in PseudoLab space (where the projection is
// affine-valid), tracking a single running best across both passes,
// seeded at flat nearest-color and only replaced when a projection's
// true perceptual distance (measured back in Lab) improves on it.
//
// Segment runs before triangle, matching the original's ordering: a
// two-point fallback is preferred over a three-point one whenever both
// happen to improve on the same running best by coincidence of scan
// order, since the original scans segments first.
func projectFallback(pal *Palette, cands []simplexCandidate, target LinearRgb, dist DistanceFunc, bias float64) int {
	n := len(cands)
	best := cands[0].idx
	bestDist2 := cands[0].dist2

	targetP := target.PseudoLab()
	targetLab := target.Lab()
	plab := func(c simplexCandidate) PseudoLab { return c.lin.PseudoLab() }

	for i2 := 1; i2 < n; i2++ {
		for i1 := 0; i1 < i2; i1++ {
			p1 := plab(cands[i1])
			p2 := plab(cands[i2])

			vec12 := Sub(p2, p1)
			vec1p := Sub(targetP, p1)
			mag2 := vec12.Dot(vec12)
			if mag2 < 1e-15 {
				continue
			}
			proj1p := vec12.Scale(vec1p.Dot(vec12) / mag2)
			offset := proj1p.Dot(vec12)
			if offset < 0 || offset > mag2 {
				continue
			}

			projected := AddVec(p1, proj1p)
			d2 := finiteOrInf(dist(projected.Lab(), targetLab))
			if d2 >= bestDist2 {
				continue
			}

			biasShifted := bias
			if cands[i1].luma < cands[i2].luma {
				biasShifted = 1 - bias
			}
			if biasShifted*mag2 <= offset {
				best = cands[i2].idx
			} else {
				best = cands[i1].idx
			}
			bestDist2 = d2
		}
	}

	for i3 := 2; i3 < n; i3++ {
		for i2 := 1; i2 < i3; i2++ {
			for i1 := 0; i1 < i2; i1++ {
				p1 := plab(cands[i1])
				p2 := plab(cands[i2])
				p3 := plab(cands[i3])

				vec12 := Sub(p2, p1)
				vec13 := Sub(p3, p1)
				vec1p := Sub(targetP, p1)
				normal := vec12.Cross(vec13)
				normMag2 := normal.Dot(normal)
				if normMag2 < 1e-15 {
					continue
				}

				offset := normal.Scale(vec1p.Dot(normal) / normMag2)
				projected := AddVec(targetP, offset.Neg())
				d2 := finiteOrInf(dist(projected.Lab(), targetLab))
				if d2 >= bestDist2 {
					continue
				}

				projP1 := offset.Sub(vec1p)
				projP2 := projP1.Add(vec12)
				projP3 := projP1.Add(vec13)

				areaAll := math.Sqrt(normMag2)
				n23 := projP2.Cross(projP3)
				n13 := projP1.Cross(projP3)
				coord1 := math.Sqrt(n23.Dot(n23)) / areaAll
				coord2 := math.Sqrt(n13.Dot(n13)) / areaAll
				coord3 := 1 - coord1 - coord2
				if coord1 < 0 || coord2 < 0 || coord3 < 0 {
					continue
				}

				idxs := [3]int{cands[i1].idx, cands[i2].idx, cands[i3].idx}
				lumas := [3]float64{cands[i1].luma, cands[i2].luma, cands[i3].luma}
				weights := [3]float64{coord1, coord2, coord3}
				order := [3]int{0, 1, 2}
				sort.Slice(order[:], func(a, b int) bool { return lumas[order[a]] < lumas[order[b]] })

				cum := 0.0
				chosen := idxs[order[len(order)-1]]
				for _, o := range order {
					cum += weights[o]
					if bias <= cum {
						chosen = idxs[o]
						break
					}
				}

				best = chosen
				bestDist2 = d2
			}
		}
	}

	return best
}
