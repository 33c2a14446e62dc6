package dither

import (
	"runtime"
	"sync"
)

// parallelScanThreshold is the palette size (§5) at or above which closestLab
// splits its linear scan across goroutines instead of running it inline:
// below this size the scan is cheap enough that spawning workers would
// cost more than it saves, but a CIEDE2000 scan over a large palette
// dominates per-pixel cost and is worth splitting the same way the outer
// per-pixel loop already is.
const parallelScanThreshold = 250

// Palette is a fixed set of colors a ditherer quantizes onto, held in
// every representation the rest of the package needs: the original
// sRGB8 (for output and for builders that split boxes in gamma space),
// LinearRgb (for the simplex kernel's geometry and for box/simplex
// splitting), and Lab (for perceptual distance and pre-sorting).
//
// Grounded on spec.md's §3 data model; the teacher has no equivalent
// type; a plain []color.Color given directly to Dither was enough for
// its Euclidean nearest-color search, but the simplex kernel needs all
// three representations kept in lockstep per index.
type Palette struct {
	Srgb   []Srgb8
	Linear []LinearRgb
	Lab    []Lab
}

// NewPalette builds a Palette from a list of sRGB8 colors, computing and
// caching the linear and Lab representation of each.
func NewPalette(colors []Srgb8) *Palette {
	p := &Palette{
		Srgb:   make([]Srgb8, len(colors)),
		Linear: make([]LinearRgb, len(colors)),
		Lab:    make([]Lab, len(colors)),
	}
	copy(p.Srgb, colors)
	for i, c := range colors {
		lin := c.Linear()
		p.Linear[i] = lin
		p.Lab[i] = lin.Lab()
	}
	return p
}

// Len returns the number of colors in the palette.
func (p *Palette) Len() int { return len(p.Srgb) }

// closestLab returns the index of the palette entry with the smallest
// distance (as measured by dist) to target, and that distance. It is the
// O(n) nearest-color search used by the Nearest algorithm, by error
// diffusion's quantization step and by GetColorModel; the simplex kernel
// keeps its own distance-sorted candidate list instead. At or above
// parallelScanThreshold entries
// (§5), the scan is split across goroutines, since palette size (not
// image size) dominates per-pixel cost under CIEDE2000.
func (p *Palette) closestLab(target Lab, dist DistanceFunc) (int, float64) {
	if len(p.Lab) >= parallelScanThreshold {
		return p.closestLabParallel(target, dist)
	}
	best := 0
	bestDist := finiteOrInf(dist(target, p.Lab[0]))
	for i := 1; i < len(p.Lab); i++ {
		d := finiteOrInf(dist(target, p.Lab[i]))
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, bestDist
}

// closestLabParallel is the fine-grained map-reduce variant of
// closestLab: each worker scans a contiguous slice of the palette for
// its own local best, and the results are reduced to a single winner.
func (p *Palette) closestLabParallel(target Lab, dist DistanceFunc) (int, float64) {
	n := len(p.Lab)
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	type result struct {
		idx  int
		dist float64
	}
	results := make([]result, workers)

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			results[w] = result{idx: -1, dist: posInf}
			continue
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			best := lo
			bestDist := finiteOrInf(dist(target, p.Lab[lo]))
			for i := lo + 1; i < hi; i++ {
				d := finiteOrInf(dist(target, p.Lab[i]))
				if d < bestDist {
					best = i
					bestDist = d
				}
			}
			results[w] = result{idx: best, dist: bestDist}
		}(w, lo, hi)
	}
	wg.Wait()

	best := -1
	bestDist := posInf
	for _, r := range results {
		if r.idx == -1 {
			continue
		}
		if r.dist < bestDist {
			best = r.idx
			bestDist = r.dist
		}
	}
	return best, bestDist
}
