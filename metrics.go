package dither

import "math"

// Perceptual color-difference metrics, all returning *squared* distance
// (never taking the final square root) since every caller — palette
// sorting, nearest-color search, simplex enclosure distance comparison —
// only needs relative ordering or a squared threshold.
//
// Grounded on the five distance2 methods on Lab in
// _examples/original_source/src/color.rs.

// DistanceFunc measures the squared perceptual distance between two Lab
// colors.
type DistanceFunc func(a, b Lab) float64

// posInf is the sentinel a nearest-color search compares against. §7:
// non-finite distances (which should not arise from valid sRGB input,
// but are not treated as errors if they do) lose every comparison rather
// than corrupting the search.
var posInf = math.Inf(1)

// finiteOrInf returns d unchanged if finite, otherwise +Inf, so that a
// NaN or infinite distance always loses a nearest-color comparison
// instead of winning one by the accident of how NaN compares.
func finiteOrInf(d float64) float64 {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return posInf
	}
	return d
}

// CIE94 is the graphic-arts CIE94 metric (kL=kC=kH=1), using the first
// argument's chroma for SC/SH. It is not symmetric: CIE94(a, b) !=
// CIE94(b, a) in general.
func CIE94(lab1, lab2 Lab) float64 {
	return cie94WithChroma(lab1, lab2, lab1.C())
}

// SymmetricCIE94 is CIE94 with SC/SH computed from the mean chroma of the
// two colors, restoring symmetry at the cost of matching the published
// CIE94 formula exactly.
func SymmetricCIE94(lab1, lab2 Lab) float64 {
	return cie94WithChroma(lab1, lab2, (lab1.C()+lab2.C())/2)
}

func cie94WithChroma(lab1, lab2 Lab, refChroma float64) float64 {
	dl := lab1.L() - lab2.L()
	dc := lab1.C() - lab2.C()
	da := lab1.A() - lab2.A()
	db := lab1.B() - lab2.B()

	dh2 := da*da + db*db - dc*dc
	if dh2 < 0 {
		dh2 = 0
	}

	sl := 1.0
	sc := 1 + 0.045*refChroma
	sh := 1 + 0.015*refChroma

	return (dl*dl)/(sl*sl) + (dc*dc)/(sc*sc) + dh2/(sh*sh)
}

// WDSCIE94 is Warren D. Smith's bounded rescaling of SymmetricCIE94,
// mapping the unbounded CIE94 value into a range that behaves better as
// the basis for the simplex kernel's enclosure-quality comparisons.
func WDSCIE94(lab1, lab2 Lab) float64 {
	base := SymmetricCIE94(lab1, lab2)
	return 205.85012080886 * base / (100.0 + math.Pow(base, 82.0/81.0))
}

func degToRad(d float64) float64 { return d * math.Pi / 180.0 }
func radToDeg(r float64) float64 { return r * 180.0 / math.Pi }

// ciede2000Terms computes the shared intermediate quantities of the
// CIEDE2000 formula (G-adjusted a', C', h', Lbar', Cbar', hbar', T,
// dTheta, Sl, Sc, Sh, Rc) used by both CIEDE2000 and ContinuousCIEDE2000.
type ciede2000Terms struct {
	dLp, dCp, dHp   float64
	sl, sc, sh      float64
	rc, dTheta      float64
	hbarp, dhp      float64
}

func ciede2000Prep(lab1, lab2 Lab) ciede2000Terms {
	c1 := lab1.C()
	c2 := lab2.C()
	cbar := (c1 + c2) / 2

	cbar7 := math.Pow(cbar, 7)
	g := 0.5 * (1 - math.Sqrt(cbar7/(cbar7+6103515625))) // 25^7

	a1p := lab1.A() * (1 + g)
	a2p := lab2.A() * (1 + g)

	c1p := math.Hypot(a1p, lab1.B())
	c2p := math.Hypot(a2p, lab2.B())

	h1p := hueAngle(a1p, lab1.B())
	h2p := hueAngle(a2p, lab2.B())

	dLp := lab2.L() - lab1.L()
	dCp := c2p - c1p

	var dhp float64
	switch {
	case c1p*c2p == 0:
		dhp = 0
	case math.Abs(h2p-h1p) <= 180:
		dhp = h2p - h1p
	case h2p-h1p > 180:
		dhp = h2p - h1p - 360
	default:
		dhp = h2p - h1p + 360
	}
	dHp := 2 * math.Sqrt(c1p*c2p) * math.Sin(degToRad(dhp)/2)

	lbarp := (lab1.L() + lab2.L()) / 2
	cbarp := (c1p + c2p) / 2

	var hbarp float64
	switch {
	case c1p*c2p == 0:
		hbarp = h1p + h2p
	case math.Abs(h1p-h2p) <= 180:
		hbarp = (h1p + h2p) / 2
	case h1p+h2p < 360:
		hbarp = (h1p + h2p + 360) / 2
	default:
		hbarp = (h1p + h2p - 360) / 2
	}

	t := 1 - 0.17*math.Cos(degToRad(hbarp-30)) +
		0.24*math.Cos(degToRad(2*hbarp)) +
		0.32*math.Cos(degToRad(3*hbarp+6)) -
		0.20*math.Cos(degToRad(4*hbarp-63))

	dTheta := 30 * math.Exp(-math.Pow((hbarp-275)/25, 2))

	cbarp7 := math.Pow(cbarp, 7)
	rc := 2 * math.Sqrt(cbarp7/(cbarp7+6103515625))

	sl := 1 + (0.015*(lbarp-50)*(lbarp-50))/math.Sqrt(20+(lbarp-50)*(lbarp-50))
	sc := 1 + 0.045*cbarp
	sh := 1 + 0.015*cbarp*t

	return ciede2000Terms{dLp: dLp, dCp: dCp, dHp: dHp, sl: sl, sc: sc, sh: sh, rc: rc, dTheta: dTheta, hbarp: hbarp, dhp: dhp}
}

func hueAngle(a, b float64) float64 {
	if a == 0 && b == 0 {
		return 0
	}
	h := radToDeg(math.Atan2(b, a))
	if h < 0 {
		h += 360
	}
	return h
}

// CIEDE2000 is the standard CIEDE2000 color-difference formula.
func CIEDE2000(lab1, lab2 Lab) float64 {
	t := ciede2000Prep(lab1, lab2)
	rt := -math.Sin(degToRad(2*t.dTheta)) * t.rc

	tl := t.dLp / t.sl
	tc := t.dCp / t.sc
	th := t.dHp / t.sh

	return tl*tl + tc*tc + th*th + rt*tc*th
}

// ContinuousCIEDE2000 is Warren D. Smith's variant of CIEDE2000 that
// removes the rotation term's discontinuity at the blue hue seam (around
// h' = 275 degrees): the rotation term's sine component is
// zeroed outside a window around the seam, and the rotation term is
// damped once the hue difference |dh'| grows past 140 degrees (reaching
// zero at 180), instead of discontinuously switching branches the way
// the standard wraparound does. The T factor inside Sh still follows the
// standard mean-hue branch, so the distance can still jump where |dh'|
// crosses 180 degrees.
func ContinuousCIEDE2000(lab1, lab2 Lab) float64 {
	t := ciede2000Prep(lab1, lab2)

	sinDro := math.Sin(degToRad(2 * t.dTheta))
	if math.Abs(t.hbarp-275) >= 85 {
		sinDro = 0
	}
	rt := -sinDro * t.rc
	if math.Abs(t.dhp) > 140 {
		rt *= 4.5 - math.Abs(t.dhp)/40
	}

	tl := t.dLp / t.sl
	tc := t.dCp / t.sc
	th := t.dHp / t.sh

	return tl*tl + tc*tc + th*th + rt*tc*th
}
