package dither

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlasticTriangleBounded(t *testing.T) {
	bias := PlasticTriangle()
	for x := 0; x < 20; x++ {
		for y := 0; y < 20; y++ {
			v := bias(x, y)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 1.0+1e-9)
		}
	}
}

func TestPlasticDeterministic(t *testing.T) {
	bias := Plastic()
	assert.Equal(t, bias(5, 9), bias(5, 9))
}

func TestInterleavedGradientBounded(t *testing.T) {
	bias := InterleavedGradient()
	for x := 0; x < 20; x++ {
		for y := 0; y < 20; y++ {
			v := bias(x, y)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 1.0)
		}
	}
}

func TestBayerBiasTiles(t *testing.T) {
	bias := Bayer(4)
	assert.Equal(t, bias(0, 0), bias(4, 0))
	assert.Equal(t, bias(1, 2), bias(5, 6))
}

func TestBayerPanicsOnNonPowerOfTwo(t *testing.T) {
	assert.Panics(t, func() { Bayer(3) })
	assert.Panics(t, func() { Bayer(0) })
}

func TestRandomBiasDelegatesToSource(t *testing.T) {
	bias := Random(func() float64 { return 0.42 })
	assert.Equal(t, 0.42, bias(10, 20))
}

func TestFromOrderedDitherMatrixTiles(t *testing.T) {
	bias := FromOrderedDitherMatrix(ClusteredDot4x4)
	assert.Equal(t, bias(0, 0), bias(4, 4))
}
