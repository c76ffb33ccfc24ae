package vmath

import "fmt"

// Vector3i is a raw integer vector, e.g. grid or screen coordinates. It is never
// scaled; use V3iToFixed and V3ToRaw to cross between spaces.
type Vector3i struct {
	X, Y, Z int32
}

// V3iToFixed scales each component by Scale. An int32 times 2^14 always fits int64.
func V3iToFixed(v Vector3i) Vector3 {
	return Vector3{int64(v.X) << Shift, int64(v.Y) << Shift, int64(v.Z) << Shift}
}

// V3iAdd and V3iSub saturate at the int32 range
func V3iAdd(a, b Vector3i) Vector3i {
	return Vector3i{
		clamp32(int64(a.X) + int64(b.X)),
		clamp32(int64(a.Y) + int64(b.Y)),
		clamp32(int64(a.Z) + int64(b.Z)),
	}
}

func V3iSub(a, b Vector3i) Vector3i {
	return Vector3i{
		clamp32(int64(a.X) - int64(b.X)),
		clamp32(int64(a.Y) - int64(b.Y)),
		clamp32(int64(a.Z) - int64(b.Z)),
	}
}

func (v Vector3i) String() string {
	return fmt.Sprintf("(%d, %d, %d)", v.X, v.Y, v.Z)
}
