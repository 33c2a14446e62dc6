package dither

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubset(t *testing.T) {
	black := color.RGBA{0, 0, 0, 255}
	white := color.RGBA{255, 255, 255, 255}
	red := color.RGBA{255, 0, 0, 255}

	assert.True(t, subset([]color.Color{black}, []color.Color{black, white}))
	assert.False(t, subset([]color.Color{black, white}, []color.Color{black}))
	assert.True(t, subset([]color.Color{red, black}, []color.Color{red, black, white}))
}

func TestSamePaletted(t *testing.T) {
	p := NewPalette(blackWhite)
	pal := color.Palette{color.RGBA{0, 0, 0, 255}, color.RGBA{255, 255, 255, 255}}
	assert.True(t, samePaletted(p, pal))

	pal2 := color.Palette{color.RGBA{255, 255, 255, 255}, color.RGBA{0, 0, 0, 255}}
	assert.False(t, samePaletted(p, pal2))
}

func TestQuantizeReturnsDithererPalette(t *testing.T) {
	d := NewDitherer(redGreenBlack, CIEDE2000)
	d.Matrix = Simple2D

	p := make(color.Palette, 0, 3)
	out := d.Quantize(p, image.NewRGBA(image.Rect(0, 0, 1, 1)))
	assert.Len(t, out, 3)
}

func TestQuantizePanicsWhenTooManyColors(t *testing.T) {
	d := NewDitherer(redGreenBlack, CIEDE2000)
	d.Matrix = Simple2D

	p := make(color.Palette, 0, 1)
	assert.Panics(t, func() {
		d.Quantize(p, image.NewRGBA(image.Rect(0, 0, 1, 1)))
	})
}

func TestDrawDithersIntoDestination(t *testing.T) {
	d := NewDitherer(blackWhite, CIEDE2000)
	d.Matrix = FloydSteinberg

	src := grayscaleGradient(8, 8)
	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))

	d.Draw(dst, dst.Bounds(), src, image.Point{})

	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := dst.At(x, y).RGBA()
			isBlack := r == 0 && g == 0 && bl == 0
			isWhite := r>>8 == 255 && g>>8 == 255 && bl>>8 == 255
			assert.True(t, isBlack || isWhite)
		}
	}
}
