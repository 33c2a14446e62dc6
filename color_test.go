package dither

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSrgbLinearRoundTrip(t *testing.T) {
	for _, c := range []Srgb8{
		{0, 0, 0},
		{255, 255, 255},
		{128, 64, 200},
		{1, 254, 10},
	} {
		lin := c.Linear()
		back := lin.Srgb8()
		assert.InDelta(t, int(c.R), int(back.R), 1)
		assert.InDelta(t, int(c.G), int(back.G), 1)
		assert.InDelta(t, int(c.B), int(back.B), 1)
	}
}

func TestLinearMonotonic(t *testing.T) {
	var prev float64 = -1
	for v := 0; v < 256; v++ {
		lin := srgbDecodeChannel(uint8(v))
		assert.GreaterOrEqual(t, lin, prev)
		prev = lin
	}
}

func TestBlackWhiteLab(t *testing.T) {
	black := Srgb8{0, 0, 0}.Lab()
	white := Srgb8{255, 255, 255}.Lab()

	assert.InDelta(t, 0, black.L(), 0.5)
	assert.InDelta(t, 100, white.L(), 0.5)
	assert.InDelta(t, 0, black.C(), 0.5)
	assert.InDelta(t, 0, white.C(), 0.5)
}

func TestLabChromaCached(t *testing.T) {
	lab := newLab(50, 3, 4)
	assert.Equal(t, 5.0, lab.C())
}

func TestPseudoLabRoundTrip(t *testing.T) {
	lin := LinearRgb{0.3, 0.6, 0.9}
	want := lin.xyz()
	back := lin.PseudoLab().xyz()
	assert.InDelta(t, want.X, back.X, 1e-9)
	assert.InDelta(t, want.Y, back.Y, 1e-9)
	assert.InDelta(t, want.Z, back.Z, 1e-9)
}

func TestGrayIsNeutral(t *testing.T) {
	for _, v := range []uint8{0, 64, 128, 200, 255} {
		lab := Srgb8{v, v, v}.Lab()
		assert.InDelta(t, 0, lab.A(), 1e-6)
		assert.InDelta(t, 0, lab.B(), 1e-6)
	}
}
