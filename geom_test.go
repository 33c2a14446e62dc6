package dither

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3[LinearRgb]{1, 2, 3}
	b := Vec3[LinearRgb]{4, 5, 6}

	assert.Equal(t, Vec3[LinearRgb]{5, 7, 9}, a.Add(b))
	assert.Equal(t, Vec3[LinearRgb]{-3, -3, -3}, a.Sub(b))
	assert.Equal(t, Vec3[LinearRgb]{-1, -2, -3}, a.Neg())
	assert.Equal(t, Vec3[LinearRgb]{2, 4, 6}, a.Scale(2))
	assert.Equal(t, 32.0, a.Dot(b))
}

func TestVec3Cross(t *testing.T) {
	x := Vec3[LinearRgb]{1, 0, 0}
	y := Vec3[LinearRgb]{0, 1, 0}
	z := x.Cross(y)
	assert.Equal(t, Vec3[LinearRgb]{0, 0, 1}, z)
}

func TestSubAndMidpoint(t *testing.T) {
	a := LinearRgb{1, 1, 1}
	b := LinearRgb{0, 0, 0}

	d := Sub(a, b)
	assert.Equal(t, Vec3[LinearRgb]{1, 1, 1}, d)

	mid := Midpoint(a, b)
	assert.Equal(t, LinearRgb{0.5, 0.5, 0.5}, mid)
}

func TestAddVec(t *testing.T) {
	a := LinearRgb{0.2, 0.2, 0.2}
	moved := AddVec(a, Vec3[LinearRgb]{0.1, 0, -0.1})
	assert.InDelta(t, 0.3, moved.R, 1e-9)
	assert.InDelta(t, 0.2, moved.G, 1e-9)
	assert.InDelta(t, 0.1, moved.B, 1e-9)
}

func TestDeterminant3(t *testing.T) {
	a := Vec3[LinearRgb]{1, 0, 0}
	b := Vec3[LinearRgb]{0, 1, 0}
	c := Vec3[LinearRgb]{0, 0, 1}
	assert.Equal(t, 1.0, Determinant3(a, b, c))

	// Coplanar vectors have zero determinant.
	d := Vec3[LinearRgb]{1, 1, 0}
	assert.InDelta(t, 0, Determinant3(a, b, d), 1e-12)
}
