package dither

// PixelSelector is the interface contract for a per-pixel, palette-aware
// quantization algorithm: given a target color (in linear RGB, with its
// pixel coordinate for bias-field evaluation), return the chosen
// palette index. Selectors must be safe to call concurrently; the
// worker pool in parallel.go calls one per pixel with no ordering
// guarantee.
//
// Only Nearest, SimplexDither, and VisualizeBias are implemented as
// working selectors; other per-pixel strategies from the original
// (nearest2_inv2_dist, nearest2_project) are out of scope beyond this
// contract.
type PixelSelector func(pal *Palette, x, y int, target LinearRgb) int

// Nearest selects the palette entry closest to target under dist,
// ignoring position and bias. It is the flat nearest-color baseline the
// simplex kernel itself falls back to when no enclosing simplex is
// found.
func Nearest(dist DistanceFunc) PixelSelector {
	return func(pal *Palette, x, y int, target LinearRgb) int {
		idx, _ := pal.closestLab(target.Lab(), dist)
		return idx
	}
}

// SimplexDither selects a palette entry by tetrahedral enclosure (C5),
// using bias to evaluate the position-dependent bias field and dist as
// the fallback perceptual metric.
func SimplexDither(dist DistanceFunc, bias BiasField) PixelSelector {
	return func(pal *Palette, x, y int, target LinearRgb) int {
		b := bias(x, y)
		return tightSimplex(pal, target, dist, b)
	}
}

// VisualizeBias ignores the target color entirely and palette-indexes
// directly by the bias field's value at (x, y), scaled into the
// palette's size. It produces no meaningful quantization of the input
// image; it exists purely to let a caller render a BiasField as an
// image for inspection, the way the original's visualize_bias debug
// command did.
func VisualizeBias(bias BiasField) PixelSelector {
	return func(pal *Palette, x, y int, target LinearRgb) int {
		n := pal.Len()
		if n == 0 {
			return 0
		}
		v := bias(x, y)
		idx := int(v * float64(n))
		if idx >= n {
			idx = n - 1
		}
		if idx < 0 {
			idx = 0
		}
		return idx
	}
}
