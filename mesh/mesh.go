// Package mesh holds triangle meshes in fixed-point form: the node, face and normal
// tables a software pipeline built on vmath consumes. Meshes are decoded from STL and
// can be emitted as Go source so the tables compile into the program.
package mesh

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/lixenwraith/tiny3d/vmath"
)

// Face indexes three nodes, counter-clockwise when seen from the front
type Face [3]int

// Mesh is an indexed triangle mesh. Normals, when present, hold one entry per face.
type Mesh struct {
	Nodes   []vmath.Vector3
	Faces   []Face
	Normals []vmath.Vector3
}

// Transform returns a copy with nodes moved by t. Normals go through the cofactor of
// the linear part of t and are renormalized, so they stay perpendicular under
// non-uniform scale. A mirroring t reverses every face so fronts stay counter-clockwise.
func (m *Mesh) Transform(t vmath.Matrix4) *Mesh {
	out := &Mesh{
		Nodes: make([]vmath.Vector3, len(m.Nodes)),
		Faces: slices.Clone(m.Faces),
	}
	for i, n := range m.Nodes {
		out.Nodes[i] = vmath.M4TransformPoint(t, n)
	}

	normal := normalMatrix(t)
	mirror := vmath.M4Det3(t) < 0
	if mirror {
		for i := range out.Faces {
			out.Faces[i][1], out.Faces[i][2] = out.Faces[i][2], out.Faces[i][1]
		}
	}
	if m.Normals != nil {
		out.Normals = make([]vmath.Vector3, len(m.Normals))
		for i, n := range m.Normals {
			n = vmath.V3Normalize(vmath.M4TransformDir(normal, n))
			if mirror {
				n = vmath.V3Neg(n)
			}
			out.Normals[i] = n
		}
	}
	return out
}

// normalMatrix returns the cofactor of t's linear part, computed after dividing by the
// largest entry. Direction is all a normal needs, and the division keeps small scales
// from rounding the cofactor away.
func normalMatrix(t vmath.Matrix4) vmath.Matrix4 {
	var peak int64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			peak = max(peak, vmath.Abs(t[i][j]))
		}
	}
	if peak == 0 {
		return t
	}
	var lin vmath.Matrix4
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			lin[i][j] = vmath.Div(t[i][j], peak)
		}
	}
	return vmath.M4Cofactor3(lin)
}

// Bounds returns the axis-aligned bounding box. An empty mesh yields two zero vectors.
func (m *Mesh) Bounds() (lo, hi vmath.Vector3) {
	if len(m.Nodes) == 0 {
		return
	}
	lo, hi = m.Nodes[0], m.Nodes[0]
	for _, n := range m.Nodes[1:] {
		lo = vmath.Vector3{X: min(lo.X, n.X), Y: min(lo.Y, n.Y), Z: min(lo.Z, n.Z)}
		hi = vmath.Vector3{X: max(hi.X, n.X), Y: max(hi.Y, n.Y), Z: max(hi.Z, n.Z)}
	}
	return
}

// FaceNormal computes the unit normal of face i from its nodes
func (m *Mesh) FaceNormal(i int) vmath.Vector3 {
	f := m.Faces[i]
	return vmath.V3Normalize(vmath.V3Normal(m.Nodes[f[0]], m.Nodes[f[1]], m.Nodes[f[2]]))
}

// Validate checks face indices and the normal table length
func (m *Mesh) Validate() error {
	for i, f := range m.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= len(m.Nodes) {
				return errors.Errorf("face %d: node index %d out of range [0,%d)", i, idx, len(m.Nodes))
			}
		}
	}
	if m.Normals != nil && len(m.Normals) != len(m.Faces) {
		return errors.Errorf("%d normals for %d faces", len(m.Normals), len(m.Faces))
	}
	return nil
}
