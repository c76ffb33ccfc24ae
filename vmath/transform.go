package vmath

// Transform builders. Angles are in turns (Scale = 2π), see Degrees.

func M4Translate(t Vector3) Matrix4 {
	m := M4Identity()
	m[0][3], m[1][3], m[2][3] = t.X, t.Y, t.Z
	return m
}

// M4Scaling scales each axis by a scaled factor
func M4Scaling(s Vector3) Matrix4 {
	m := M4Identity()
	m[0][0], m[1][1], m[2][2] = s.X, s.Y, s.Z
	return m
}

func M4RotateX(angle int64) Matrix4 {
	c, s := Cos(angle), Sin(angle)
	return Matrix4{
		{Scale, 0, 0, 0},
		{0, c, -s, 0},
		{0, s, c, 0},
		{0, 0, 0, Scale},
	}
}

func M4RotateY(angle int64) Matrix4 {
	c, s := Cos(angle), Sin(angle)
	return Matrix4{
		{c, 0, s, 0},
		{0, Scale, 0, 0},
		{-s, 0, c, 0},
		{0, 0, 0, Scale},
	}
}

func M4RotateZ(angle int64) Matrix4 {
	c, s := Cos(angle), Sin(angle)
	return Matrix4{
		{c, -s, 0, 0},
		{s, c, 0, 0},
		{0, 0, Scale, 0},
		{0, 0, 0, Scale},
	}
}

// M4Perspective projects onto the plane z = focal with the eye at the origin
// looking down +z: (x, y, z) maps to (x*focal/z, y*focal/z, focal). Points with
// z = 0 saturate.
func M4Perspective(focal int64) Matrix4 {
	return Matrix4{
		{focal, 0, 0, 0},
		{0, focal, 0, 0},
		{0, 0, focal, 0},
		{0, 0, Scale, 0},
	}
}
