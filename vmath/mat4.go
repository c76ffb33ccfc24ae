package vmath

import "strings"

// Matrix4 is a row-major 4x4 transform in 16.14 fixed-point. Points are column
// vectors (p' = M * p), so translation lives in column 3.
//
// The zero Matrix4 is the zero matrix, not the identity: start from M4Identity.
type Matrix4 [4][4]int64

// Identity is the fixed-point identity matrix
var Identity = M4Identity()

func M4Identity() Matrix4 {
	return Matrix4{
		{Scale, 0, 0, 0},
		{0, Scale, 0, 0},
		{0, 0, Scale, 0},
		{0, 0, 0, Scale},
	}
}

// M4Mul returns a * b. Each term is rounded by Mul before summing, so composing
// with the identity is exact.
func M4Mul(a, b Matrix4) Matrix4 {
	var out Matrix4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i][j] = sum4(
				Mul(a[i][0], b[0][j]),
				Mul(a[i][1], b[1][j]),
				Mul(a[i][2], b[2][j]),
				Mul(a[i][3], b[3][j]),
			)
		}
	}
	return out
}

// M4Chain composes ms left to right: M4Chain(a, b, c) = a * b * c, so c applies to
// points first. No arguments yield the identity.
func M4Chain(ms ...Matrix4) Matrix4 {
	out := M4Identity()
	for _, m := range ms {
		out = M4Mul(out, m)
	}
	return out
}

func M4Transpose(m Matrix4) Matrix4 {
	var out Matrix4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i][j] = m[j][i]
		}
	}
	return out
}

// IsAffine reports whether the bottom row is {0, 0, 0, Scale}
func (m Matrix4) IsAffine() bool {
	return m[3] == [4]int64{0, 0, 0, Scale}
}

// M4TransformPoint applies m to v as the homogeneous point (x, y, z, 1). For a
// projective m the result is divided by the resulting w.
func M4TransformPoint(m Matrix4, v Vector3) Vector3 {
	// w = Scale, so Mul(m[i][3], Scale) is m[i][3]
	x := sum4(Mul(m[0][0], v.X), Mul(m[0][1], v.Y), Mul(m[0][2], v.Z), m[0][3])
	y := sum4(Mul(m[1][0], v.X), Mul(m[1][1], v.Y), Mul(m[1][2], v.Z), m[1][3])
	z := sum4(Mul(m[2][0], v.X), Mul(m[2][1], v.Y), Mul(m[2][2], v.Z), m[2][3])
	if m.IsAffine() {
		return Vector3{x, y, z}
	}

	w := sum4(Mul(m[3][0], v.X), Mul(m[3][1], v.Y), Mul(m[3][2], v.Z), m[3][3])
	return Vector3{Div(x, w), Div(y, w), Div(z, w)}
}

// M4TransformDir applies the upper 3x3 of m, ignoring translation and projection.
// Use it for directions and normals.
func M4TransformDir(m Matrix4, v Vector3) Vector3 {
	return Vector3{
		sum4(Mul(m[0][0], v.X), Mul(m[0][1], v.Y), Mul(m[0][2], v.Z), 0),
		sum4(Mul(m[1][0], v.X), Mul(m[1][1], v.Y), Mul(m[1][2], v.Z), 0),
		sum4(Mul(m[2][0], v.X), Mul(m[2][1], v.Y), Mul(m[2][2], v.Z), 0),
	}
}

// M4Cofactor3 returns the cofactor matrix of the upper 3x3 of m, which is
// det * inverse-transpose. Normals mapped through it stay perpendicular to surfaces
// mapped through m, for any invertible linear part; the result needs renormalizing
// and flips direction when the determinant is negative.
func M4Cofactor3(m Matrix4) Matrix4 {
	minor := func(r0, r1, c0, c1 int) int64 {
		return sub(Mul(m[r0][c0], m[r1][c1]), Mul(m[r0][c1], m[r1][c0]))
	}
	// Swapping c0 and c1 negates a minor, which gives the cofactor signs
	out := M4Identity()
	out[0][0], out[0][1], out[0][2] = minor(1, 2, 1, 2), minor(1, 2, 2, 0), minor(1, 2, 0, 1)
	out[1][0], out[1][1], out[1][2] = minor(0, 2, 2, 1), minor(0, 2, 0, 2), minor(0, 2, 1, 0)
	out[2][0], out[2][1], out[2][2] = minor(0, 1, 1, 2), minor(0, 1, 2, 0), minor(0, 1, 0, 1)
	return out
}

// M4Det3 returns the determinant of the upper 3x3 of m. A negative value means m
// mirrors space and reverses triangle winding.
func M4Det3(m Matrix4) int64 {
	c := M4Cofactor3(m)
	return sum4(Mul(m[0][0], c[0][0]), Mul(m[0][1], c[0][1]), Mul(m[0][2], c[0][2]), 0)
}

// sum4 adds four terms with saturation
func sum4(a, b, c, d int64) int64 {
	return add(add(add(a, b), c), d)
}

func (m Matrix4) String() string {
	var sb strings.Builder
	for i, row := range m {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteByte('[')
		for j, e := range row {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(formatFixed(e))
		}
		sb.WriteByte(']')
	}
	return sb.String()
}
