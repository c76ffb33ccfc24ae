package vmath

import (
	"math"
)

func init() {
	// Sin/Cos LUT calculation. Quadrant points are pinned so that rotations by right
	// angles are exact.
	for i := 0; i < LUTSize; i++ {
		rad := 2.0 * math.Pi * float64(i) / LUTSize
		SinLUT[i] = FromFloat(math.Sin(rad))
		CosLUT[i] = FromFloat(math.Cos(rad))
	}
	for q := 0; q < 4; q++ {
		i := q * LUTSize / 4
		SinLUT[i] = [4]int64{0, Scale, 0, -Scale}[q]
		CosLUT[i] = [4]int64{Scale, 0, -Scale, 0}[q]
	}
}

// SinLUT and CosLUT scaled by 16.14, index = angle in 1/LUTSize turns
var (
	SinLUT [LUTSize]int64
	CosLUT [LUTSize]int64
)
