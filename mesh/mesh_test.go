package mesh

import (
	"bytes"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tiny3d/vmath"
)

func square() *Mesh {
	return &Mesh{
		Nodes:   []vmath.Vector3{fx(0, 0, 0), fx(1, 0, 0), fx(1, 1, 0), fx(0, 1, 0)},
		Faces:   []Face{{0, 1, 2}, {0, 2, 3}},
		Normals: []vmath.Vector3{fx(0, 0, 1), fx(0, 0, 1)},
	}
}

func TestMesh_Transform(t *testing.T) {
	m := square()
	moved := m.Transform(vmath.M4Chain(
		vmath.M4Translate(fx(10, 0, -5)),
		vmath.M4RotateX(vmath.Degrees(90)),
	))

	require.Equal(t, []vmath.Vector3{fx(10, 0, -5), fx(11, 0, -5), fx(11, 0, -4), fx(10, 0, -4)}, moved.Nodes)
	require.Equal(t, []vmath.Vector3{fx(0, -1, 0), fx(0, -1, 0)}, moved.Normals)
	require.Equal(t, m.Faces, moved.Faces)

	// Source is untouched
	require.Equal(t, square(), m)
	moved.Faces[0][0] = 3
	require.Equal(t, 0, m.Faces[0][0])
}

func TestMesh_TransformNonUniformScale(t *testing.T) {
	// Face in the plane x + y = 1, normal (1, 1, 0) / sqrt(2)
	m := &Mesh{
		Nodes: []vmath.Vector3{fx(1, 0, 0), fx(0, 1, 0), fx(1, 0, 1)},
		Faces: []Face{{0, 1, 2}},
	}
	m.Normals = []vmath.Vector3{m.FaceNormal(0)}

	stretched := m.Transform(vmath.M4Scaling(fx(2, 1, 1)))
	got, want := stretched.Normals[0], stretched.FaceNormal(0)
	require.InDelta(t, want.X, got.X, 4)
	require.InDelta(t, want.Y, got.Y, 4)
	require.Zero(t, got.Z)
	require.Greater(t, vmath.V3Dot(got, want), int64(vmath.Scale-4))
}

func TestMesh_TransformMirror(t *testing.T) {
	m := Cube(vmath.Scale)
	mirrored := m.Transform(vmath.M4Scaling(fx(-1, 1, 1)))

	require.Equal(t, Face{0, 3, 2}, mirrored.Faces[0], "winding reversed")
	for i, f := range mirrored.Faces {
		centroid := vmath.V3Add(vmath.V3Add(mirrored.Nodes[f[0]], mirrored.Nodes[f[1]]), mirrored.Nodes[f[2]])
		require.Positive(t, vmath.V3Dot(mirrored.FaceNormal(i), centroid), "face %d winds inward", i)
		require.Equal(t, mirrored.FaceNormal(i), mirrored.Normals[i], "face %d", i)
	}
}

func TestMesh_TransformWithoutNormals(t *testing.T) {
	m := square()
	m.Normals = nil
	moved := m.Transform(vmath.M4Identity())
	require.Nil(t, moved.Normals)
	require.Equal(t, m.Nodes, moved.Nodes)
}

func TestMesh_Bounds(t *testing.T) {
	m := square().Transform(vmath.M4Translate(fx(-3, 2, 1)))
	lo, hi := m.Bounds()
	require.Equal(t, fx(-3, 2, 1), lo)
	require.Equal(t, fx(-2, 3, 1), hi)

	lo, hi = (&Mesh{}).Bounds()
	require.Equal(t, vmath.Vector3{}, lo)
	require.Equal(t, vmath.Vector3{}, hi)
}

func TestMesh_Validate(t *testing.T) {
	m := square()
	require.NoError(t, m.Validate())

	m.Faces = append(m.Faces, Face{0, 1, 4})
	require.ErrorContains(t, m.Validate(), "face 2: node index 4 out of range")

	m = square()
	m.Normals = m.Normals[:1]
	require.ErrorContains(t, m.Validate(), "1 normals for 2 faces")
}

func TestMesh_FaceNormal(t *testing.T) {
	m := square()
	require.Equal(t, fx(0, 0, 1), m.FaceNormal(0))
	m.Faces[1] = Face{0, 3, 2}
	require.Equal(t, fx(0, 0, -1), m.FaceNormal(1))
}

func TestWriteGo(t *testing.T) {
	var buf bytes.Buffer
	err := WriteGo(&buf, square(), GoOptions{
		Package: "models",
		Name:    "Square",
		Normals: true,
		Command: "stl2go -normals square.stl",
	})
	require.NoError(t, err)
	src := buf.String()

	f, err := parser.ParseFile(token.NewFileSet(), "square_mesh.go", src, parser.ParseComments)
	require.NoError(t, err)
	require.Equal(t, "models", f.Name.Name)
	require.Len(t, f.Imports, 1)
	require.Equal(t, `"github.com/lixenwraith/tiny3d/vmath"`, f.Imports[0].Path.Value)

	require.True(t, strings.HasPrefix(src, "// Code generated by stl2go. DO NOT EDIT.\n// stl2go -normals square.stl\n"))
	require.Contains(t, src, "SquareNodeCount = 4")
	require.Contains(t, src, "SquareFaceCount = 2")
	require.Contains(t, src, "{X: 16384, Y: 16384, Z: 0},")
	require.Contains(t, src, "{0, 2, 3},")
	require.Contains(t, src, "var SquareNormals = [SquareFaceCount]vmath.Vector3{")
}

func TestWriteGo_ComputesNormals(t *testing.T) {
	m := square()
	m.Normals = nil

	var buf bytes.Buffer
	require.NoError(t, WriteGo(&buf, m, GoOptions{Package: "models", Name: "Square", Normals: true}))
	require.Contains(t, buf.String(), "{X: 0, Y: 0, Z: 16384},")
	require.Nil(t, m.Normals)

	buf.Reset()
	require.NoError(t, WriteGo(&buf, square(), GoOptions{Package: "models", Name: "Square"}))
	require.NotContains(t, buf.String(), "SquareNormals")
}

func TestWriteGo_Errors(t *testing.T) {
	var buf bytes.Buffer
	require.ErrorContains(t, WriteGo(&buf, square(), GoOptions{Package: "my-pkg", Name: "Square"}), "invalid package name")
	require.ErrorContains(t, WriteGo(&buf, square(), GoOptions{Package: "models", Name: "1st"}), "invalid identifier prefix")

	bad := square()
	bad.Faces[0] = Face{0, 0, 9}
	require.ErrorContains(t, WriteGo(&buf, bad, GoOptions{Package: "models", Name: "Square"}), "invalid mesh")
	require.Zero(t, buf.Len())
}

func TestIdentifier(t *testing.T) {
	tests := map[string]string{
		"cube.stl":                 "Cube",
		"models/low-poly_cube.stl": "LowPolyCube",
		"3d.STL":                   "Mesh3d",
		"---.stl":                  "Mesh",
		"teapot":                   "Teapot",
	}
	for in, want := range tests {
		require.Equal(t, want, Identifier(in), in)
	}
}

func TestCube(t *testing.T) {
	m := Cube(vmath.Scale)
	require.NoError(t, m.Validate())
	require.Len(t, m.Nodes, 8)
	require.Len(t, m.Faces, 12)

	lo, hi := m.Bounds()
	require.Equal(t, fx(-1, -1, -1), lo)
	require.Equal(t, fx(1, 1, 1), hi)

	// Every normal points away from the center
	for i, f := range m.Faces {
		centroid := vmath.V3Add(vmath.V3Add(m.Nodes[f[0]], m.Nodes[f[1]]), m.Nodes[f[2]])
		require.Positive(t, vmath.V3Dot(m.Normals[i], centroid), "face %d", i)
		require.Equal(t, int64(vmath.Scale), vmath.V3Mag(m.Normals[i]), "face %d", i)
	}
}
