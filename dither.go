package dither

import (
	"image"
	"image/color"
	"image/draw"
	"runtime"
)

// Ditherer dithers images according to the settings in the struct. It can
// be safely reused for many images, and used concurrently.
//
// Some members of the struct are public. Those members can be changed
// in-between dithering images, if you would like to dither again. If you
// change those public fields while an image is being dithered, the
// output image will have problems, so only change in-between dithering.
//
// You can only set one of Matrix or Selector. Trying to dither when none
// or both of those are set will cause the function to panic.
//
// Grounded on the teacher's Ditherer (dither.go), generalized from a flat
// []color.Color palette and sRGB Euclidean distance to a *Palette
// carrying Lab/linear representations, a DistanceFunc, and a
// PixelSelector in place of PixelMapper.
type Ditherer struct {
	// Matrix is the ErrorDiffusionMatrix for dithering. Error diffusion
	// is inherently sequential (§5's Non-goal for the simplex core) and
	// is applied in linear RGB, the way the teacher does it.
	Matrix ErrorDiffusionMatrix

	// Selector is the per-pixel quantization algorithm: Nearest,
	// SimplexDither, or VisualizeBias.
	Selector PixelSelector

	// Dist is the perceptual distance metric used for nearest-color
	// search by error diffusion's own quantization step and by
	// GetColorModel. A Selector does not use it; it carries the metric
	// given to its own constructor (Nearest, SimplexDither).
	Dist DistanceFunc

	// SingleThreaded controls whether the dithering happens sequentially
	// or using runtime.GOMAXPROCS(0) workers, which defaults to the
	// number of CPUs.
	//
	// Error diffusion dithering (using Matrix) is sequential by nature,
	// so this field has no effect on it.
	SingleThreaded bool

	// Serpentine controls whether the error diffusion matrix is applied
	// in a serpentine manner, going right-to-left every other line. This
	// greatly reduces line-type artifacts. Has no effect when Selector
	// is used instead of Matrix.
	Serpentine bool

	palette *Palette
}

// NewDitherer creates a new Ditherer over a copy of the provided palette
// colors, with dist as its perceptual distance metric. If the palette is
// empty then nil is returned.
func NewDitherer(colors []Srgb8, dist DistanceFunc) *Ditherer {
	if len(colors) == 0 {
		return nil
	}
	return &Ditherer{
		Dist:    dist,
		palette: NewPalette(colors),
	}
}

// invalid returns true when the current struct fields of the Ditherer
// make it impossible to dither: exactly one of Matrix or Selector must
// be set.
func (d *Ditherer) invalid() bool {
	if (d.Selector != nil) == (d.Matrix != nil) {
		return true
	}
	if d.Dist == nil {
		return true
	}
	return false
}

// GetPalette returns a copy of the current palette's sRGB colors.
func (d *Ditherer) GetPalette() []Srgb8 {
	p := make([]Srgb8, len(d.palette.Srgb))
	copy(p, d.palette.Srgb)
	return p
}

// Dither dithers the provided image.
//
// It will always try to change the provided image and return nil, but if
// that is not possible it will return the dithered image as a copy.
//
// In comparison to DitherCopy, this can greatly reduce memory usage, and
// is quicker because it usually won't copy the image at the beginning.
// It should be preferred if you don't need to keep the original image.
//
// The returned image type (when not nil) is always *image.RGBA.
func (d *Ditherer) Dither(src image.Image) image.Image {
	if d.invalid() {
		panic("dither: invalid Ditherer")
	}

	var img draw.Image
	var ret image.Image = nil

	if pi, ok := src.(*image.Paletted); ok {
		if !samePaletted(d.palette, pi.Palette) {
			img = copyOfImage(src)
			ret = img
		} else {
			img = pi
		}
	} else if im, ok := src.(draw.Image); ok {
		img = im
	} else {
		img = copyOfImage(src)
		ret = img
	}

	if d.Selector != nil {
		workers := 1
		if !d.SingleThreaded {
			workers = runtime.GOMAXPROCS(0)
		}
		parallel(workers, img, img, func(x, y int, c color.Color) color.Color {
			lin := colorToLinearRGB(c)
			idx := d.Selector(d.palette, x, y, lin)
			return srgbColor(d.palette.Srgb[idx])
		})
		return ret
	}

	d.ditherErrorDiffusion(img)
	return ret
}

// ditherErrorDiffusion applies d.Matrix sequentially, in serpentine order
// if requested. The quantization step at each pixel uses d.Dist over Lab,
// but the diffused error itself stays in linear RGB, since error
// diffusion is fundamentally an additive correction to the next pixels'
// linear light, not their perceptual coordinates.
func (d *Ditherer) ditherErrorDiffusion(img draw.Image) {
	b := img.Bounds()
	curPx := d.Matrix.CurrentPixel()

	lins := make([][]*LinearRgb, b.Dy())
	for i := range lins {
		lins[i] = make([]*LinearRgb, b.Dx())
	}

	linearAt := func(x, y int) LinearRgb {
		row := lins[y-b.Min.Y]
		col := x - b.Min.X
		if row[col] == nil {
			v := colorToLinearRGB(img.At(x, y))
			row[col] = &v
		}
		return *row[col]
	}
	linearSet := func(x, y int, v LinearRgb) {
		lins[y-b.Min.Y][x-b.Min.X] = &v
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			oldX := x
			if d.Serpentine && y%2 != 0 {
				x = b.Min.X + (b.Max.X - 1 - x)
			}

			old := linearAt(x, y)
			newIdx, _ := d.palette.closestLab(old.Lab(), d.Dist)
			newColor := d.palette.Linear[newIdx]
			img.Set(x, y, srgbColor(d.palette.Srgb[newIdx]))

			er := old.R - newColor.R
			eg := old.G - newColor.G
			eb := old.B - newColor.B

			for yy := range d.Matrix {
				for xx := range d.Matrix[yy] {
					deltaX, deltaY := d.Matrix.Offset(xx, yy, curPx)
					if d.Serpentine && y%2 != 0 {
						deltaX *= -1
					}
					pxX := x + deltaX
					pxY := y + deltaY
					if !(image.Point{X: pxX, Y: pxY}.In(b)) {
						continue
					}

					cur := linearAt(pxX, pxY)
					coeff := float64(d.Matrix[yy][xx])
					linearSet(pxX, pxY, LinearRgb{
						R: cur.R + er*coeff,
						G: cur.G + eg*coeff,
						B: cur.B + eb*coeff,
					})
				}
			}

			x = oldX
		}
	}
}

// GetColorModel returns the Ditherer's palette as a color.Model that
// finds the closest color using the Ditherer's distance metric.
func (d *Ditherer) GetColorModel() color.Model {
	return color.ModelFunc(func(c color.Color) color.Color {
		lin := colorToLinearRGB(c)
		idx, _ := d.palette.closestLab(lin.Lab(), d.Dist)
		return srgbColor(d.palette.Srgb[idx])
	})
}

// DitherConfig is like Dither, but returns an image.Config as well.
func (d *Ditherer) DitherConfig(src draw.Image) (image.Image, image.Config) {
	return d.Dither(src), image.Config{
		ColorModel: d.GetColorModel(),
		Width:      src.Bounds().Dx(),
		Height:     src.Bounds().Dy(),
	}
}

// DitherCopy dithers a copy of the src image and returns it. The src
// image remains unchanged. If you don't need to keep the original image,
// use Dither.
func (d *Ditherer) DitherCopy(src image.Image) *image.RGBA {
	if d.invalid() {
		panic("dither: invalid Ditherer")
	}
	dst := copyOfImage(src)
	d.Dither(dst)
	return dst
}

// DitherCopyConfig is like DitherCopy, but returns an image.Config as well.
func (d *Ditherer) DitherCopyConfig(src image.Image) (*image.RGBA, image.Config) {
	return d.DitherCopy(src), image.Config{
		ColorModel: d.GetColorModel(),
		Width:      src.Bounds().Dx(),
		Height:     src.Bounds().Dy(),
	}
}

// DitherPaletted dithers a copy of the src image and returns it as an
// *image.Paletted. The src image remains unchanged.
//
// If the Ditherer's palette has over 256 colors then the function will
// panic, because *image.Paletted does not support that.
func (d *Ditherer) DitherPaletted(src image.Image) *image.Paletted {
	if d.palette.Len() > 256 {
		panic("dither: DitherPaletted: palette has over 256 colors which *image.Paletted doesn't support")
	}

	rgba := d.DitherCopy(src)
	pal := make(color.Palette, d.palette.Len())
	for i, c := range d.palette.Srgb {
		pal[i] = srgbColor(c)
	}
	p := image.NewPaletted(rgba.Bounds(), pal)
	copyImage(p, rgba)
	return p
}

// DitherPalettedConfig is like DitherPaletted, but returns an
// image.Config as well.
func (d *Ditherer) DitherPalettedConfig(src image.Image) (*image.Paletted, image.Config) {
	return d.DitherPaletted(src), image.Config{
		ColorModel: d.GetColorModel(),
		Width:      src.Bounds().Dx(),
		Height:     src.Bounds().Dy(),
	}
}

// srgbColor converts an Srgb8 to a color.Color for drawing into a Go
// image.
func srgbColor(c Srgb8) color.Color {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// colorToLinearRGB decodes any color.Color to LinearRgb, going through
// its 16-bit sRGB channels the way the teacher's toLinearRGB did.
func colorToLinearRGB(c color.Color) LinearRgb {
	r16, g16, b16, _ := c.RGBA()
	return Srgb8{
		R: uint8(r16 >> 8),
		G: uint8(g16 >> 8),
		B: uint8(b16 >> 8),
	}.Linear()
}

// copyImage copies src's pixels into dst. They must be the same size.
func copyImage(dst draw.Image, src image.Image) {
	draw.Draw(dst, src.Bounds(), src, src.Bounds().Min, draw.Src)
}

func copyOfImage(img image.Image) *image.RGBA {
	dst := image.NewRGBA(img.Bounds())
	copyImage(dst, img)
	return dst
}

// samePaletted returns true if p's colors are exactly pal's colors, in
// order, so an *image.Paletted source can be dithered in place.
func samePaletted(p *Palette, pal color.Palette) bool {
	if len(pal) != p.Len() {
		return false
	}
	for i, c := range pal {
		r16, g16, b16, _ := c.RGBA()
		want := p.Srgb[i]
		if uint8(r16>>8) != want.R || uint8(g16>>8) != want.G || uint8(b16>>8) != want.B {
			return false
		}
	}
	return true
}
