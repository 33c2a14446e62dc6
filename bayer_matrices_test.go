package dither

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBayerMatrixBitMath(t *testing.T) {
	// Source for test cases is the same place as the original algorithm
	// code: https://bisqwit.iki.fi/story/howto/dither/jy/#Appendix%202ThresholdMatrix

	t2x2 := [][]uint{
		{0, 3},
		{2, 1},
	}
	t4x4 := [][]uint{
		{0, 12, 3, 15},
		{8, 4, 11, 7},
		{2, 14, 1, 13},
		{10, 6, 9, 5},
	}
	t4x2 := [][]uint{
		{0, 4, 2, 6},
		{3, 7, 1, 5},
	}
	t2x4 := [][]uint{
		{0, 3},
		{4, 7},
		{2, 1},
		{6, 5},
	}

	assert.Equal(t, t2x2, bayerMatrix(2, 2))
	assert.Equal(t, t4x4, bayerMatrix(4, 4))
	assert.Equal(t, t4x2, bayerMatrix(4, 2))
	assert.Equal(t, t2x4, bayerMatrix(2, 4))
}

func TestOrderedDitherMatricesAreSquareOrRectangular(t *testing.T) {
	matrices := []OrderedDitherMatrix{
		ClusteredDot4x4, ClusteredDotDiagonal8x8, Vertical5x3, Horizontal3x5,
		ClusteredDotDiagonal6x6, ClusteredDot6x6, ClusteredDotSpiral5x5,
	}
	for _, m := range matrices {
		width := len(m.Matrix[0])
		for _, row := range m.Matrix {
			assert.Equal(t, width, len(row))
		}
	}
}
