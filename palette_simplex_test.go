package dither

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSimplexPaletteStaysWithinBudget(t *testing.T) {
	pts := gradientPoints()
	pal := BuildSimplexPalette(pts, 8, CIEDE2000)
	assert.LessOrEqual(t, len(pal), 8)
	assert.GreaterOrEqual(t, len(pal), 1)
}

func TestBuildSimplexPaletteGrowsWithBudget(t *testing.T) {
	pts := gradientPoints()
	small := BuildSimplexPalette(pts, 8, CIEDE2000)
	large := BuildSimplexPalette(pts, 16, CIEDE2000)
	assert.GreaterOrEqual(t, len(large), len(small))
}

func TestBuildSimplexPaletteRespectsDistanceMetric(t *testing.T) {
	pts := gradientPoints()
	de2000 := BuildSimplexPalette(pts, 12, CIEDE2000)
	wds := BuildSimplexPalette(pts, 12, WDSCIE94)
	assert.GreaterOrEqual(t, len(de2000), 1)
	assert.GreaterOrEqual(t, len(wds), 1)
	assert.NotEqual(t, de2000, wds)
}
