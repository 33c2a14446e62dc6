package dither

import "math"

// Color-space types and the conversions between them: sRGB8 (the 8-bit
// display encoding) <-> LinearRgb (gamma-decoded, where blending and
// simplex geometry are valid) <-> xyz (CIE XYZ, D65, used only as
// plumbing) <-> Lab (perceptually uniform, with a cached chroma) and
// PseudoLab (a linear surrogate for Lab used only for projection
// geometry).
//
// Grounded on _examples/original_source/src/color.rs.

// Srgb8 is a pixel in 8-bit gamma-encoded sRGB, the external pixel
// representation.
type Srgb8 struct {
	R, G, B uint8
}

// LinearRgb is gamma-decoded sRGB. Values outside [0,1] are representable
// and occur from error accumulation and projection; only Srgb8 clamps.
type LinearRgb struct {
	R, G, B float64
}

func (c LinearRgb) toVec() Vec3[LinearRgb]         { return Vec3[LinearRgb]{c.R, c.G, c.B} }
func (LinearRgb) fromVec(v Vec3[LinearRgb]) LinearRgb { return LinearRgb{v.X, v.Y, v.Z} }

// Clamp restricts every channel to [0, 1].
func (c LinearRgb) Clamp() LinearRgb {
	clamp := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	}
	return LinearRgb{clamp(c.R), clamp(c.G), clamp(c.B)}
}

// xyz is CIE XYZ (D65). It never leaves this file; it exists only as an
// intermediate conversion stage between LinearRgb, Lab, and PseudoLab.
type xyz struct {
	X, Y, Z float64
}

// PseudoLab is a linear approximation to L*a*b*, replacing the cube-root
// gamma with the affine f(t) = 0.78t + 0.325. Because it is a linear
// transform of xyz, it preserves collinearity and coplanarity from
// LinearRgb, so projecting onto a palette-defined line or plane in
// PseudoLab space is geometrically valid. It is used only where a
// projection is needed; true perceptual distance is always measured in
// Lab.
type PseudoLab struct {
	L, A, B float64
}

func (p PseudoLab) toVec() Vec3[PseudoLab]          { return Vec3[PseudoLab]{p.L, p.A, p.B} }
func (PseudoLab) fromVec(v Vec3[PseudoLab]) PseudoLab { return PseudoLab{v.X, v.Y, v.Z} }

// Lab is CIE L*a*b* with a cached chroma c = hypot(a, b), computed once at
// construction. There is no public way to mutate a or b without going
// through newLab, so c can never go stale.
type Lab struct {
	l, a, b, c float64
}

func newLab(l, a, b float64) Lab {
	return Lab{l: l, a: a, b: b, c: math.Hypot(a, b)}
}

// L returns the lightness.
func (lab Lab) L() float64 { return lab.l }

// A returns the a* (green-red) coordinate.
func (lab Lab) A() float64 { return lab.a }

// B returns the b* (blue-yellow) coordinate.
func (lab Lab) B() float64 { return lab.b }

// C returns the cached chroma, sqrt(a^2 + b^2).
func (lab Lab) C() float64 { return lab.c }

//////// sRGB <-> linear RGB ////////

func srgbDecodeChannel(v uint8) float64 {
	normalized := float64(v) / 255.0
	if normalized < 0.04045 {
		return normalized / 12.92
	}
	return math.Pow((normalized+0.055)/1.055, 2.4)
}

func srgbEncodeChannel(v float64) uint8 {
	var normalized float64
	if v <= 0.04045/12.92 {
		normalized = v * 12.92
	} else {
		normalized = math.Pow(v, 1.0/2.4)*1.055 - 0.055
	}
	encoded := math.Round(normalized * 255.0)
	if encoded < 0 {
		return 0
	}
	if encoded > 255 {
		return 255
	}
	return uint8(encoded)
}

// Linear decodes an Srgb8 pixel into LinearRgb.
func (s Srgb8) Linear() LinearRgb {
	return LinearRgb{
		srgbDecodeChannel(s.R),
		srgbDecodeChannel(s.G),
		srgbDecodeChannel(s.B),
	}
}

// Srgb8 encodes a LinearRgb color back to 8-bit sRGB, clamping to [0,255]
// at the final rounding step (not before).
func (c LinearRgb) Srgb8() Srgb8 {
	return Srgb8{
		srgbEncodeChannel(c.R),
		srgbEncodeChannel(c.G),
		srgbEncodeChannel(c.B),
	}
}

//////// linear RGB <-> XYZ (D65) ////////

func (c LinearRgb) xyz() xyz {
	return xyz{
		0.4124*c.R + 0.3576*c.G + 0.1805*c.B,
		0.2126*c.R + 0.7152*c.G + 0.0722*c.B,
		0.0193*c.R + 0.1192*c.G + 0.9505*c.B,
	}
}

func (x xyz) linearRgb() LinearRgb {
	return LinearRgb{
		3.2406*x.X - 1.5372*x.Y - 0.4986*x.Z,
		-0.9689*x.X + 1.8758*x.Y + 0.0415*x.Z,
		0.0557*x.X - 0.2040*x.Y + 1.0570*x.Z,
	}
}

// D65 white point used by the XYZ <-> Lab/PseudoLab conversions.
const (
	whiteX = 0.9505
	whiteY = 1.0
	whiteZ = 1.089
)

//////// XYZ <-> Lab ////////

func labF(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta*delta*delta {
		return math.Cbrt(t)
	}
	return t/(3*delta*delta) + 4.0/29.0
}

func (x xyz) lab() Lab {
	fx := labF(x.X / whiteX)
	fy := labF(x.Y / whiteY)
	fz := labF(x.Z / whiteZ)

	l := 116.0*fy - 16.0
	a := 500.0 * (fx - fy)
	b := 200.0 * (fy - fz)
	return newLab(l, a, b)
}

//////// XYZ <-> PseudoLab ////////

func pseudoLabF(t float64) float64 {
	// Linear approximation to t^(1/3).
	return t*0.78 + 0.325
}

func pseudoLabInvF(v float64) float64 {
	return (v - 0.325) / 0.78
}

func (x xyz) pseudoLab() PseudoLab {
	fx := pseudoLabF(x.X / whiteX)
	fy := pseudoLabF(x.Y / whiteY)
	fz := pseudoLabF(x.Z / whiteZ)

	l := 1.16*fy - 0.16
	a := 5.0 * (fx - fy)
	b := 2.0 * (fy - fz)
	return PseudoLab{l, a, b}
}

func (p PseudoLab) xyz() xyz {
	fy := (p.L + 0.16) / 1.16
	fx := p.A/5.0 + fy
	fz := fy - p.B/2.0
	return xyz{
		pseudoLabInvF(fx) * whiteX,
		pseudoLabInvF(fy) * whiteY,
		pseudoLabInvF(fz) * whiteZ,
	}
}

//////// convenience chains ////////

// Lab converts linear RGB all the way to L*a*b*.
func (c LinearRgb) Lab() Lab { return c.xyz().lab() }

// PseudoLab converts linear RGB to the linear Lab surrogate.
func (c LinearRgb) PseudoLab() PseudoLab { return c.xyz().pseudoLab() }

// Lab converts a PseudoLab point back through XYZ to true L*a*b*, used
// when the simplex kernel needs to judge the true perceptual distance of
// a point it only has in PseudoLab (a projection result).
func (p PseudoLab) Lab() Lab { return p.xyz().lab() }

// Lab converts an sRGB8 pixel directly to L*a*b*.
func (s Srgb8) Lab() Lab { return s.Linear().Lab() }
