package dither

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func gradientPoints() []LinearRgb {
	var pts []LinearRgb
	for i := 0; i < 64; i++ {
		v := float64(i) / 63.0
		pts = append(pts, LinearRgb{v, v, v})
		pts = append(pts, LinearRgb{v, 0, 1 - v})
	}
	return pts
}

func TestBuildBoxPaletteSize(t *testing.T) {
	pts := gradientPoints()
	pal := BuildBoxPalette(pts, 8, SplitMedian, true)
	assert.LessOrEqual(t, len(pal), 8)
	assert.Greater(t, len(pal), 1)
}

func TestBuildBoxPaletteStrategies(t *testing.T) {
	pts := gradientPoints()
	for _, s := range []SplitStrategy{SplitHalf, SplitMedian, SplitMean} {
		pal := BuildBoxPalette(pts, 4, s, false)
		assert.NotEmpty(t, pal)
	}
}

func TestBuildBoxPaletteEmptyInput(t *testing.T) {
	assert.Nil(t, BuildBoxPalette(nil, 4, SplitHalf, false))
}
