package mesh

import "github.com/lixenwraith/tiny3d/vmath"

// Cube returns an axis-aligned cube centered on the origin with the given scaled half
// edge. Faces wind counter-clockwise seen from outside.
func Cube(half int64) *Mesh {
	nodes := make([]vmath.Vector3, 8)
	for i := range nodes {
		// bit 0: x, bit 1: y, bit 2: z; set bit means +half
		c := [3]int64{-half, -half, -half}
		for axis := range c {
			if i&(1<<axis) != 0 {
				c[axis] = half
			}
		}
		nodes[i] = vmath.Vector3{X: c[0], Y: c[1], Z: c[2]}
	}
	// node layout:
	// 0 (-,-,-) 1 (+,-,-) 2 (-,+,-) 3 (+,+,-)
	// 4 (-,-,+) 5 (+,-,+) 6 (-,+,+) 7 (+,+,+)
	m := &Mesh{
		Nodes: nodes,
		Faces: []Face{
			{0, 2, 3}, {0, 3, 1}, // -z
			{4, 5, 7}, {4, 7, 6}, // +z
			{0, 4, 6}, {0, 6, 2}, // -x
			{1, 3, 7}, {1, 7, 5}, // +x
			{0, 1, 5}, {0, 5, 4}, // -y
			{2, 6, 7}, {2, 7, 3}, // +y
		},
	}
	m.Normals = make([]vmath.Vector3, len(m.Faces))
	for i := range m.Faces {
		m.Normals[i] = m.FaceNormal(i)
	}
	return m
}
