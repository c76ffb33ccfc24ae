package vmath

import (
	"math"
)

// Traverse visits every grid cell crossed by the segment from a to b in the XY plane.
// Cell (i, j) covers scaled coordinates within half a unit of (i, j), so endpoints land
// on their nearest cell. Z is ignored.
// Supercover DDA: no cell along the segment is skipped, and the walk stops on the
// target cell or when visit returns false.
func Traverse(a, b Vector3, visit func(x, y int) bool) {
	// Shift by half a cell so floor picks the nearest cell center. The start and end
	// cells then match the rounded endpoint (as V3ToRaw rounds it for non-negative
	// coordinates), so a vertex and the edges drawn from it share a cell. The
	// fractions below (x1&Mask) measure from the cell's lower edge at i-0.5, not at i.
	x1, y1 := a.X+Half, a.Y+Half
	x2, y2 := b.X+Half, b.Y+Half

	ix, iy := int(x1>>Shift), int(y1>>Shift)
	targetX, targetY := int(x2>>Shift), int(y2>>Shift)

	if ix == targetX && iy == targetY {
		visit(ix, iy)
		return
	}

	dx := x2 - x1
	dy := y2 - y1

	stepX, stepY := 1, 1
	if dx < 0 {
		stepX = -1
		dx = -dx
	}
	if dy < 0 {
		stepY = -1
		dy = -dy
	}

	// tMax is the segment parameter at the next cell boundary, tDelta the width of one cell
	var tMaxX, tMaxY, tDeltaX, tDeltaY int64
	if dx == 0 {
		tMaxX = math.MaxInt64
	} else {
		tDeltaX = Div(Scale, dx)
		if stepX > 0 {
			tMaxX = Mul(Scale-(x1&Mask), tDeltaX)
		} else {
			tMaxX = Mul(x1&Mask, tDeltaX)
		}
	}

	if dy == 0 {
		tMaxY = math.MaxInt64
	} else {
		tDeltaY = Div(Scale, dy)
		if stepY > 0 {
			tMaxY = Mul(Scale-(y1&Mask), tDeltaY)
		} else {
			tMaxY = Mul(y1&Mask, tDeltaY)
		}
	}

	if !visit(ix, iy) {
		return
	}

	for ix != targetX || iy != targetY {
		switch {
		case tMaxX < tMaxY:
			if ix != targetX {
				ix += stepX
				tMaxX += tDeltaX
			} else {
				// X done, forced to step Y
				iy += stepY
				tMaxY += tDeltaY
			}
		case tMaxX > tMaxY:
			if iy != targetY {
				iy += stepY
				tMaxY += tDeltaY
			} else {
				ix += stepX
				tMaxX += tDeltaX
			}
		default:
			// Corner crossing
			if ix != targetX {
				ix += stepX
				tMaxX += tDeltaX
			}
			if iy != targetY {
				iy += stepY
				tMaxY += tDeltaY
			}
		}

		if !visit(ix, iy) {
			return
		}
	}
}
