package main

import (
	"github.com/lixenwraith/tiny3d/mesh"
	"github.com/lixenwraith/tiny3d/vmath"
)

var (
	nearPlane    = vmath.FromFloat(0.25)
	focalDefault = vmath.FromInt(16)
	focalStep    = vmath.FromInt(2)
	focalMin     = vmath.FromInt(2)
	focalMax     = vmath.FromInt(96)

	// Light travels away from the viewer, so faces toward the camera are lit
	lightDir = vmath.Vector3{Z: vmath.Scale}
)

// scene holds a mesh and the camera-relative pose, angles in turns
type scene struct {
	mesh       *mesh.Mesh
	yaw, pitch int64
	dist       int64
	focal      int64
}

// edge is a projected segment in cell coordinates with the shade of its face
type edge struct {
	a, b  vmath.Vector3
	shade int64
}

type frame struct {
	edges   []edge
	visible int
}

func newScene(m *mesh.Mesh) *scene {
	lo, hi := m.Bounds()
	center := vmath.V3MulScalar(vmath.V3Add(lo, hi), vmath.Half)
	m = m.Transform(vmath.M4Translate(vmath.V3Neg(center)))

	// Back the camera off to about three bounding radii
	radius := vmath.V3Mag(vmath.V3Sub(hi, center))
	if radius == 0 {
		radius = vmath.Scale
	}
	return &scene{mesh: m, dist: vmath.MulInt(radius, 3), focal: focalDefault}
}

func (s *scene) model() vmath.Matrix4 {
	return vmath.M4Chain(
		vmath.M4Translate(vmath.Vector3{Z: s.dist}),
		vmath.M4RotateY(s.yaw),
		vmath.M4RotateX(s.pitch),
	)
}

// viewport maps the projected plane onto a w*h cell grid, centered, Y down. Cells are
// about twice as tall as wide so X is stretched by two.
func viewport(w, h int) vmath.Matrix4 {
	return vmath.M4Mul(
		vmath.M4Translate(vmath.Vector3{X: vmath.FromInt(w / 2), Y: vmath.FromInt(h / 2)}),
		vmath.M4Scaling(vmath.Vector3{X: vmath.FromInt(2), Y: -vmath.Scale, Z: vmath.Scale}),
	)
}

// project transforms every node and returns the edges of faces turned toward the camera.
// Faces with a node behind the near plane are dropped.
func (s *scene) project(w, h int) frame {
	model := s.model()
	screen := vmath.M4Mul(viewport(w, h), vmath.M4Perspective(s.focal))

	nodes := s.mesh.Nodes
	pts := make([]vmath.Vector3, len(nodes))
	front := make([]bool, len(nodes))
	for i, n := range nodes {
		cam := vmath.M4TransformPoint(model, n)
		if cam.Z < nearPlane {
			continue
		}
		front[i] = true
		pts[i] = vmath.M4TransformPoint(screen, cam)
	}

	var f frame
	for i, face := range s.mesh.Faces {
		if !front[face[0]] || !front[face[1]] || !front[face[2]] {
			continue
		}
		a, b, c := pts[face[0]], pts[face[1]], pts[face[2]]
		// Y is flipped on screen, so front faces wind clockwise there
		if vmath.V3Normal(a, b, c).Z <= 0 {
			continue
		}
		f.visible++

		var normal vmath.Vector3
		if s.mesh.Normals != nil {
			normal = s.mesh.Normals[i]
		} else {
			normal = s.mesh.FaceNormal(i)
		}
		shade := vmath.V3Dot(vmath.V3Normalize(vmath.M4TransformDir(model, normal)), vmath.V3Neg(lightDir))
		shade = max(shade, 0)

		f.edges = append(f.edges, edge{a, b, shade}, edge{b, c, shade}, edge{c, a, shade})
	}
	return f
}

// advance spins the mesh by the given number of frames
func (s *scene) advance(frames int64) {
	s.yaw = (s.yaw + vmath.MulInt(spinYaw, frames)) & vmath.Mask
	s.pitch = (s.pitch + vmath.MulInt(spinPitch, frames)) & vmath.Mask
}

var (
	spinYaw   int64 = vmath.Scale / 240
	spinPitch int64 = vmath.Scale / 600
)

func (s *scene) zoom(delta int64) {
	s.focal = min(max(s.focal+delta, focalMin), focalMax)
}
