package vmath

import (
	"fmt"
	"math"
)

// Vector3 is a point or direction in 16.14 fixed-point
type Vector3 struct {
	X, Y, Z int64
}

func V3Add(a, b Vector3) Vector3 {
	return Vector3{add(a.X, b.X), add(a.Y, b.Y), add(a.Z, b.Z)}
}

func V3Sub(a, b Vector3) Vector3 {
	return Vector3{sub(a.X, b.X), sub(a.Y, b.Y), sub(a.Z, b.Z)}
}

func V3Neg(v Vector3) Vector3 {
	return Vector3{sub(0, v.X), sub(0, v.Y), sub(0, v.Z)}
}

// V3Scale multiplies by a raw (unscaled) factor; the result keeps the 16.14 scale
func V3Scale(v Vector3, k int64) Vector3 {
	return Vector3{MulInt(v.X, k), MulInt(v.Y, k), MulInt(v.Z, k)}
}

// V3MulScalar multiplies by a scaled factor
func V3MulScalar(v Vector3, s int64) Vector3 {
	return Vector3{Mul(v.X, s), Mul(v.Y, s), Mul(v.Z, s)}
}

func V3Dot(a, b Vector3) int64 {
	return add(add(Mul(a.X, b.X), Mul(a.Y, b.Y)), Mul(a.Z, b.Z))
}

func V3Cross(a, b Vector3) Vector3 {
	return Vector3{
		sub(Mul(a.Y, b.Z), Mul(a.Z, b.Y)),
		sub(Mul(a.Z, b.X), Mul(a.X, b.Z)),
		sub(Mul(a.X, b.Y), Mul(a.Y, b.X)),
	}
}

func V3MagSq(v Vector3) int64 {
	return V3Dot(v, v)
}

func V3Mag(v Vector3) int64 {
	return Sqrt(V3MagSq(v))
}

// V3Normalize returns a unit vector, zero-safe
func V3Normalize(v Vector3) Vector3 {
	mag := V3Mag(v)
	if mag == 0 {
		return Vector3{}
	}
	return Vector3{Div(v.X, mag), Div(v.Y, mag), Div(v.Z, mag)}
}

// V3Normal returns the unnormalized normal of triangle abc, counter-clockwise front
func V3Normal(a, b, c Vector3) Vector3 {
	return V3Cross(V3Sub(b, a), V3Sub(c, a))
}

// V3ToRaw converts to raw integer space, rounding each component to nearest.
// Components outside the int32 range saturate.
func V3ToRaw(v Vector3) Vector3i {
	return Vector3i{clamp32(Round(v.X)), clamp32(Round(v.Y)), clamp32(Round(v.Z))}
}

func clamp32(v int64) int32 {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int32(v)
}

// V3FromFloat converts float coordinates, for tooling at the pipeline boundary
func V3FromFloat(x, y, z float64) Vector3 {
	return Vector3{FromFloat(x), FromFloat(y), FromFloat(z)}
}

func (v Vector3) String() string {
	return fmt.Sprintf("(%s, %s, %s)", formatFixed(v.X), formatFixed(v.Y), formatFixed(v.Z))
}

// formatFixed prints integer and fractional parts as "int:frac", like 1:08192
func formatFixed(f int64) string {
	sign := ""
	u, negative := magnitude(f)
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%s%d:%05d", sign, u>>Shift, u&Mask)
}
