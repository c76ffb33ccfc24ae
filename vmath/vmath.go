// Package vmath implements 16.14 fixed-point arithmetic for 3D points, vectors and
// 4x4 transforms. A scaled value stores real*Scale in an int64.
//
// Every multiply-then-shift rounds to nearest with ties away from zero, so results are
// symmetric under negation and repeated compositions carry no bias toward zero.
// Results that do not fit in int64 saturate instead of wrapping, including the sums
// inside dot products, cross products and matrix products.
package vmath

import (
	"math"
	"math/bits"
)

// 16.14 Fixed Point constants
const (
	Shift = 14
	Scale = 1 << Shift
	Mask  = Scale - 1
	Half  = 1 << (Shift - 1)

	LUTSize = 1024
	LUTMask = LUTSize - 1
)

// --- Arithmetic ---

func FromInt(i int) int64 { return int64(i) << Shift }

// ToInt rounds a scaled value to the nearest integer.
func ToInt(f int64) int { return int(Round(f)) }

// FromFloat rounds f*Scale to nearest. Values outside int64 saturate and NaN maps to 0.
func FromFloat(f float64) int64 {
	v := math.Round(f * Scale)
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt64: // 2^63 as float64
		return math.MaxInt64
	case v <= math.MinInt64:
		return math.MinInt64
	}
	return int64(v)
}

func ToFloat(f int64) float64 { return float64(f) / Scale }

// add returns a+b, saturating instead of wrapping
func add(a, b int64) int64 {
	s := a + b
	// Overflow only when both operands share a sign the sum lost
	if (a^s)&(b^s) < 0 {
		return saturate(a < 0)
	}
	return s
}

// sub returns a-b, saturating instead of wrapping
func sub(a, b int64) int64 {
	s := a - b
	if (a^b)&(a^s) < 0 {
		return saturate(a < 0)
	}
	return s
}

// Round converts a scaled value to a raw integer, rounding half away from zero.
// A plain arithmetic shift would floor negative values.
func Round(f int64) int64 {
	if f < 0 {
		// uint64 negation also covers MinInt64
		return -int64((uint64(-f) + Half) >> Shift)
	}
	return int64((uint64(f) + Half) >> Shift)
}

// magnitude splits a into sign and absolute value without overflowing on MinInt64
func magnitude(a int64) (uint64, bool) {
	if a < 0 {
		return uint64(-a), true
	}
	return uint64(a), false
}

func saturate(negative bool) int64 {
	if negative {
		return math.MinInt64
	}
	return math.MaxInt64
}

// signed applies the sign to an unsigned magnitude, saturating when it does not fit
func signed(u uint64, negative bool) int64 {
	if negative {
		if u > 1<<63 {
			return math.MinInt64
		}
		return -int64(u)
	}
	if u > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(u)
}

// Mul multiplies two scaled values. The product is formed in 128 bits, so only a
// result outside int64 saturates.
// Rounding works on the magnitude, so negative ties go away from zero: Mul(-1, Half)
// is -1, where adding Half to the signed product and shifting would give 0.
func Mul(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	ua, na := magnitude(a)
	ub, nb := magnitude(b)
	negative := na != nb

	hi, lo := bits.Mul64(ua, ub)
	var carry uint64
	lo, carry = bits.Add64(lo, Half, 0)
	hi += carry

	// 16.14 * 16.14 = 32.28 in 128 bits, shift right 14 back to 16.14
	if hi>>(Shift-1) != 0 {
		return saturate(negative)
	}
	return signed(hi<<(64-Shift)|lo>>Shift, negative)
}

// MulInt multiplies a scaled value by a raw integer. The result is exact unless it
// saturates.
func MulInt(a, k int64) int64 {
	if a == 0 || k == 0 {
		return 0
	}
	ua, na := magnitude(a)
	uk, nk := magnitude(k)
	negative := na != nk

	hi, lo := bits.Mul64(ua, uk)
	if hi != 0 {
		return saturate(negative)
	}
	return signed(lo, negative)
}

// Div divides two scaled values, rounding to nearest. Division by zero saturates
// toward the sign of a, and returns 0 for 0/0.
func Div(a, b int64) int64 {
	if a == 0 {
		return 0
	}
	ua, na := magnitude(a)
	if b == 0 {
		return saturate(na)
	}
	ub, nb := magnitude(b)
	negative := na != nb

	// a << 14 as 128-bit, plus b/2 for rounding
	hi := ua >> (64 - Shift)
	lo := ua << Shift
	var carry uint64
	lo, carry = bits.Add64(lo, ub>>1, 0)
	hi += carry

	// Quotient would not fit in 64 bits
	if hi >= ub {
		return saturate(negative)
	}
	quo, _ := bits.Div64(hi, lo, ub)
	return signed(quo, negative)
}

// Abs returns absolute value
func Abs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// Sign returns -Scale, 0, or Scale
func Sign(x int64) int64 {
	if x < 0 {
		return -Scale
	}
	if x > 0 {
		return Scale
	}
	return 0
}

// Sqrt returns the scaled square root of a scaled value, using integer Newton
// iteration only. Non-positive input returns 0.
func Sqrt(x int64) int64 {
	if x <= 0 {
		return 0
	}
	// sqrt(x * Scale) keeps the result in 16.14
	if x < 1<<(63-Shift) {
		return int64(isqrt(uint64(x) << Shift))
	}
	return int64(isqrt(uint64(x)) << (Shift / 2))
}

// isqrt returns floor(sqrt(n))
func isqrt(n uint64) uint64 {
	if n < 2 {
		return n
	}
	x := uint64(1) << ((bits.Len64(n) + 1) / 2)
	for {
		y := (x + n/x) >> 1
		if y >= x {
			return x
		}
		x = y
	}
}

// --- Trigonometry ---

// Sin returns sine of an angle where angle 0..Scale maps to 0..2pi
func Sin(angle int64) int64 {
	return SinLUT[lutIndex(angle)]
}

func Cos(angle int64) int64 {
	return CosLUT[lutIndex(angle)]
}

// lutIndex rounds the angle to the nearest table entry
func lutIndex(angle int64) int {
	const step = Shift - 10
	return int(((angle + 1<<(step-1)) >> step) & LUTMask)
}

// Degrees converts whole degrees to an angle in turns (Scale = full rotation)
func Degrees(deg int64) int64 {
	return (deg*Scale + sign64(deg)*180) / 360
}

func sign64(x int64) int64 {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}
