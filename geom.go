package dither

// This file implements the 3D affine geometry used by the color-space
// conversions and the simplex dither kernel: vectors tagged by the color
// space they live in, so that a LinearRgb displacement can never be added
// to a PseudoLab point by accident.
//
// Grounded on _examples/original_source/src/geom.rs (Vec3<P> with
// PhantomData<P>), reimplemented with a Go generic type parameter instead
// of a phantom marker.

// Vec3 is a displacement in the color space P. It carries no point of
// origin; two Vec3[P] values from different P can never be combined,
// because the type parameter differs.
type Vec3[P any] struct {
	X, Y, Z float64
}

// Add returns the sum of two displacements in the same space.
func (v Vec3[P]) Add(w Vec3[P]) Vec3[P] {
	return Vec3[P]{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns the difference of two displacements in the same space.
func (v Vec3[P]) Sub(w Vec3[P]) Vec3[P] {
	return Vec3[P]{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Neg returns the reversed displacement.
func (v Vec3[P]) Neg() Vec3[P] {
	return Vec3[P]{-v.X, -v.Y, -v.Z}
}

// Scale returns the displacement multiplied by a scalar.
func (v Vec3[P]) Scale(s float64) Vec3[P] {
	return Vec3[P]{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the scalar (inner) product.
func (v Vec3[P]) Dot(w Vec3[P]) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the vector (cross) product, still tagged P.
func (v Vec3[P]) Cross(w Vec3[P]) Vec3[P] {
	return Vec3[P]{
		v.Y*w.Z - w.Y*v.Z,
		v.Z*w.X - w.Z*v.X,
		v.X*w.Y - w.X*v.Y,
	}
}

// Affine is implemented by a color-space point type P so that it can be
// treated as an affine space over Vec3[P]: a point minus a point is a
// vector, and a point plus a vector is a point.
type Affine[P any] interface {
	toVec() Vec3[P]
	fromVec(Vec3[P]) P
}

// Sub returns the displacement from b to a: a - b.
func Sub[P Affine[P]](a, b P) Vec3[P] {
	return a.toVec().Sub(b.toVec())
}

// AddVec returns the point obtained by displacing p by v.
func AddVec[P Affine[P]](p P, v Vec3[P]) P {
	return p.fromVec(p.toVec().Add(v))
}

// Midpoint returns the point halfway between a and b, in the affine
// space's own coordinates (so the midpoint of two LinearRgb points is
// computed in linear RGB, as required by the simplex-cut palette
// builder).
func Midpoint[P Affine[P]](a, b P) P {
	va, vb := a.toVec(), b.toVec()
	return a.fromVec(va.Add(vb).Scale(0.5))
}

// Determinant3 computes the determinant of the 3x3 matrix whose rows are
// a, b, c. This is the signed volume of the parallelepiped they span (six
// times that of the tetrahedron they span with the origin), used both to test simplex enclosure and to measure triangle and
// edge degeneracy.
func Determinant3[P any](a, b, c Vec3[P]) float64 {
	return a.X*(b.Y*c.Z-b.Z*c.Y) -
		a.Y*(b.X*c.Z-b.Z*c.X) +
		a.Z*(b.X*c.Y-b.Y*c.X)
}
