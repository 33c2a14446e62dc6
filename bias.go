package dither

import "math"

// Deterministic and external bias fields used to break ties between
// candidate palette vertices inside the simplex kernel (§4.4): given a
// pixel coordinate, a BiasField returns a value in [0, 1) that selects
// which vertex of an otherwise-equal enclosing simplex to round to.
//
// Grounded on _examples/original_source/src/main.rs's bias functions
// (plastic-number sequence, bayer/spread bit math) and on the teacher's
// own `bayerMatrix` bit-math algorithm in pixelmappers.go, reused here
// as the power-of-two Bayer source.

// BiasField returns a low-discrepancy value in [0, 1) for pixel (x, y).
// It must be safe to call concurrently from multiple goroutines, since
// the simplex kernel evaluates it once per pixel from the worker pool.
type BiasField func(x, y int) float64

// plasticRho is the plastic number, the real root of x^3 = x + 1. Like
// the golden ratio in one dimension, its reciprocal powers give a
// 2D point sequence with low discrepancy: no two pixels land on close
// values for long, which is what makes it useful as a tie-breaker that
// doesn't itself introduce visible periodic structure.
const plasticRho = 1.3247179572447460259609088544780973407344040569017333645340150

var (
	plasticA1 = 1.0 / plasticRho
	plasticA2 = 1.0 / (plasticRho * plasticRho)
)

func frac(v float64) float64 {
	_, f := math.Modf(v)
	if f < 0 {
		f++
	}
	return f
}

// Plastic returns the bare plastic-number low-discrepancy sequence.
func Plastic() BiasField {
	return func(x, y int) float64 {
		return frac(plasticA1*float64(x) + plasticA2*float64(y))
	}
}

func triangleWave(v float64) float64 {
	return 2 * math.Abs(v-math.Floor(v+0.5))
}

// PlasticTriangle is the default bias field: the plastic-number sequence
// folded through a triangle wave. The fold removes the sawtooth
// directional gradient the bare sequence has (a faint diagonal streak
// visible in flat color regions at low vertex counts) while keeping the
// low-discrepancy spacing.
func PlasticTriangle() BiasField {
	base := Plastic()
	return func(x, y int) float64 {
		return triangleWave(base(x, y))
	}
}

// InterleavedGradient is Jorge Jimenez's interleaved gradient noise,
// a cheap per-pixel pseudo-random field with good spatial frequency
// characteristics, popular as a dither bias in real-time rendering.
func InterleavedGradient() BiasField {
	return func(x, y int) float64 {
		v := 0.06711056*float64(x) + 0.00583715*float64(y)
		return frac(52.9829189 * frac(v))
	}
}

// Bayer returns a BiasField driven by the nxn ordered-dither Bayer
// matrix, normalized to [0, 1). n must be a power of two.
func Bayer(n uint) BiasField {
	if n == 0 || (n&(n-1)) != 0 {
		panic("dither: Bayer: n must be a power of two")
	}
	matrix := bayerMatrix(n, n)
	max := float64(n * n)
	return func(x, y int) float64 {
		mx := uint(((x % int(n)) + int(n)) % int(n))
		my := uint(((y % int(n)) + int(n)) % int(n))
		return (float64(matrix[my][mx]) + 0.5) / max
	}
}

// Random wraps an external random source (a func returning a uniform
// value in [0, 1)) as a BiasField. The kernel treats randomness as an
// external collaborator rather than generating it itself, so callers
// supply their own *rand.Rand (seeded or not) through this adapter.
func Random(source func() float64) BiasField {
	return func(int, int) float64 {
		return source()
	}
}
