package dither

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	blackWhite    = []Srgb8{{0, 0, 0}, {255, 255, 255}}
	redGreenBlack = []Srgb8{{255, 0, 0}, {0, 255, 0}, {0, 0, 0}}
)

func grayscaleGradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(255 * x / (w - 1))
			img.Set(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return img
}

func TestNewDithererNilOnEmptyPalette(t *testing.T) {
	assert.Nil(t, NewDitherer(nil, CIEDE2000))
}

func TestDithererInvalidWhenNeitherSet(t *testing.T) {
	d := NewDitherer(blackWhite, CIEDE2000)
	assert.True(t, d.invalid())
}

func TestDithererInvalidWhenBothSet(t *testing.T) {
	d := NewDitherer(blackWhite, CIEDE2000)
	d.Selector = Nearest(CIEDE2000)
	d.Matrix = FloydSteinberg
	assert.True(t, d.invalid())
}

func TestDitherNearestSelectorOnlyUsesPaletteColors(t *testing.T) {
	d := NewDitherer(blackWhite, CIEDE2000)
	d.Selector = Nearest(CIEDE2000)
	d.SingleThreaded = true

	src := grayscaleGradient(16, 4)
	d.Dither(src) // an *image.RGBA is dithered in place
	out := src

	b := out.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := out.At(x, y).RGBA()
			isBlack := r == 0 && g == 0 && bl == 0
			isWhite := r>>8 == 255 && g>>8 == 255 && bl>>8 == 255
			assert.True(t, isBlack || isWhite)
		}
	}
}

func TestDitherErrorDiffusionFloydSteinberg(t *testing.T) {
	d := NewDitherer(blackWhite, CIEDE2000)
	d.Matrix = FloydSteinberg

	src := grayscaleGradient(16, 4)
	out := d.DitherCopy(src)
	assert.Equal(t, src.Bounds(), out.Bounds())
}

func TestDitherErrorDiffusionSerpentine(t *testing.T) {
	d := NewDitherer(blackWhite, CIEDE2000)
	d.Matrix = FloydSteinberg
	d.Serpentine = true

	src := grayscaleGradient(16, 4)
	out := d.DitherCopy(src)
	assert.Equal(t, src.Bounds(), out.Bounds())
}

func TestDitherErrorDiffusionColor(t *testing.T) {
	d := NewDitherer(redGreenBlack, CIEDE2000)
	d.Matrix = Simple2D

	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.Set(x, y, color.RGBA{uint8(x * 30), uint8(y * 30), 0, 255})
		}
	}
	out := d.DitherCopy(src)
	assert.Equal(t, src.Bounds(), out.Bounds())
}

func TestDitherPalettedMatchesDither(t *testing.T) {
	d := NewDitherer(redGreenBlack, CIEDE2000)
	d.Matrix = Simple2D

	src := grayscaleGradient(8, 8)
	rgba := d.DitherCopy(src)
	pi := d.DitherPaletted(src)

	b := rgba.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r1, g1, b1, _ := rgba.At(x, y).RGBA()
			r2, g2, b2, _ := pi.At(x, y).RGBA()
			assert.Equal(t, r1, r2)
			assert.Equal(t, g1, g2)
			assert.Equal(t, b1, b2)
		}
	}
}

func TestDitherPalettedPanicsOverLimit(t *testing.T) {
	colors := make([]Srgb8, 300)
	for i := range colors {
		colors[i] = Srgb8{uint8(i), uint8(i), uint8(i)}
	}
	d := NewDitherer(colors, CIEDE2000)
	d.Matrix = Simple2D

	assert.Panics(t, func() {
		d.DitherPaletted(grayscaleGradient(4, 4))
	})
}

func TestGetPaletteReturnsCopy(t *testing.T) {
	d := NewDitherer(blackWhite, CIEDE2000)
	p := d.GetPalette()
	p[0] = Srgb8{1, 2, 3}
	assert.Equal(t, blackWhite[0], d.palette.Srgb[0])
}

// TestDitherErrorDiffusionFloydSteinbergPinnedOutput pins the exact per-pixel
// output of Floyd-Steinberg error diffusion over a black/white palette for a
// flat mid-gray (128) input row. Lab L* for linear-decoded 128/255 is
// ~53.6, just over the black/white midpoint (which CIEDE2000 places at
// exactly L*=50 for two achromatic palette colors), so the first pixel
// quantizes to white with a large negative error. Floyd-Steinberg's 7/16
// coefficient diffuses enough of that error rightward to drive the second
// pixel's effective linear value negative, which lands it far on the black
// side -- a textbook Floyd-Steinberg black/white checker flip, not a
// coincidence of this specific palette.
func TestDitherErrorDiffusionFloydSteinbergPinnedOutput(t *testing.T) {
	d := NewDitherer(blackWhite, CIEDE2000)
	d.Matrix = FloydSteinberg

	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.Set(0, 0, color.RGBA{128, 128, 128, 255})
	src.Set(1, 0, color.RGBA{128, 128, 128, 255})

	out := d.DitherCopy(src)

	white := color.RGBA{255, 255, 255, 255}
	black := color.RGBA{0, 0, 0, 255}
	r0, g0, b0, _ := out.At(0, 0).RGBA()
	r1, g1, b1, _ := out.At(1, 0).RGBA()
	wr, wg, wb, _ := white.RGBA()
	br, bg, bb, _ := black.RGBA()

	assert.Equal(t, wr, r0)
	assert.Equal(t, wg, g0)
	assert.Equal(t, wb, b0)
	assert.Equal(t, br, r1)
	assert.Equal(t, bg, g1)
	assert.Equal(t, bb, b1)
}
