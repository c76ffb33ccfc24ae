package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tiny3d/mesh"
	"github.com/lixenwraith/tiny3d/vmath"
)

func cubeScene() *scene {
	return &scene{mesh: mesh.Cube(vmath.Scale), dist: vmath.FromInt(5), focal: vmath.FromInt(16)}
}

func cellPoint(x, y int) vmath.Vector3 {
	return vmath.Vector3{X: vmath.FromInt(x), Y: vmath.FromInt(y), Z: vmath.FromInt(16)}
}

func TestProject_FrontFace(t *testing.T) {
	f := cubeScene().project(80, 24)

	// Only the -z face looks at the camera; its corners sit at z=4, 16/4 = 4 units out
	require.Equal(t, 2, f.visible)
	require.Len(t, f.edges, 6)
	corners := map[vmath.Vector3]bool{
		cellPoint(32, 16): true, cellPoint(48, 16): true,
		cellPoint(32, 8): true, cellPoint(48, 8): true,
	}
	for _, e := range f.edges {
		require.True(t, corners[e.a], "unexpected corner %v", e.a)
		require.True(t, corners[e.b], "unexpected corner %v", e.b)
		require.Equal(t, int64(vmath.Scale), e.shade, "front face is fully lit")
	}
}

func TestProject_Rotated(t *testing.T) {
	sc := cubeScene()
	sc.yaw = vmath.Scale / 8
	require.Equal(t, 4, sc.project(80, 24).visible, "two faces at 45 degrees")

	sc.yaw = vmath.Scale / 2
	require.Equal(t, 2, sc.project(80, 24).visible)
}

func TestProject_NearPlane(t *testing.T) {
	sc := cubeScene()
	sc.dist = 0
	f := sc.project(80, 24)
	require.Zero(t, f.visible, "camera inside the cube")
	require.Empty(t, f.edges)
}

func TestNewScene_Centers(t *testing.T) {
	m := mesh.Cube(vmath.Scale).Transform(vmath.M4Translate(vmath.Vector3{X: vmath.FromInt(10)}))
	sc := newScene(m)

	lo, hi := sc.mesh.Bounds()
	require.Equal(t, vmath.V3Neg(hi), lo)
	require.Greater(t, sc.dist, vmath.FromInt(5))
	require.Equal(t, focalDefault, sc.focal)
}

func TestScene_AdvanceWraps(t *testing.T) {
	sc := cubeScene()
	sc.advance(10)
	require.Equal(t, vmath.MulInt(spinYaw, 10), sc.yaw)
	require.Equal(t, vmath.MulInt(spinPitch, 10), sc.pitch)

	sc.yaw = vmath.Scale - 1
	sc.advance(1)
	require.Equal(t, spinYaw-1, sc.yaw, "angles wrap at one turn")

	sc.zoom(vmath.FromInt(1000))
	require.Equal(t, focalMax, sc.focal)
	sc.zoom(-vmath.FromInt(1000))
	require.Equal(t, focalMin, sc.focal)
}

func TestPlotLine_Clips(t *testing.T) {
	var cells [][2]int
	plotLine(edge{a: cellPoint(-2, 1), b: cellPoint(3, 1)}, 10, 5, func(x, y int) {
		cells = append(cells, [2]int{x, y})
	})
	require.Equal(t, [][2]int{{0, 1}, {1, 1}, {2, 1}, {3, 1}}, cells)

	cells = nil
	plotLine(edge{a: cellPoint(0, 0), b: cellPoint(1000, 0)}, 10, 5, func(x, y int) {
		cells = append(cells, [2]int{x, y})
	})
	require.Empty(t, cells, "far edges are skipped")
}
