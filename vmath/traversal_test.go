package vmath

import (
	"math/rand/v2"
	"testing"
)

type cell struct{ x, y int }

func collect(a, b Vector3) []cell {
	var cells []cell
	Traverse(a, b, func(x, y int) bool {
		cells = append(cells, cell{x, y})
		return true
	})
	return cells
}

func equalCells(a, b []cell) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTraverse_Lines(t *testing.T) {
	p := func(x, y int) Vector3 { return Vector3{X: FromInt(x), Y: FromInt(y)} }
	tests := []struct {
		name string
		a, b Vector3
		want []cell
	}{
		{"single cell", p(2, 2), p(2, 2), []cell{{2, 2}}},
		{"horizontal", p(0, 0), p(3, 0), []cell{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
		{"leftward", p(0, 0), p(-3, 0), []cell{{0, 0}, {-1, 0}, {-2, 0}, {-3, 0}}},
		{"vertical", p(1, 4), p(1, 2), []cell{{1, 4}, {1, 3}, {1, 2}}},
		{"diagonal", p(0, 0), p(2, 2), []cell{{0, 0}, {1, 1}, {2, 2}}},
		{"rounded endpoints", Vector3{X: FromFloat(0.49)}, Vector3{X: FromFloat(1.6)}, []cell{{0, 0}, {1, 0}, {2, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := collect(tt.a, tt.b); !equalCells(got, tt.want) {
				t.Errorf("Traverse(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTraverse_Connected(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	for i := 0; i < 2000; i++ {
		a := Vector3{X: rng.Int64N(FromInt(120)) - FromInt(60), Y: rng.Int64N(FromInt(60)) - FromInt(30)}
		b := Vector3{X: rng.Int64N(FromInt(120)) - FromInt(60), Y: rng.Int64N(FromInt(60)) - FromInt(30)}
		cells := collect(a, b)

		first, last := cells[0], cells[len(cells)-1]
		if want := (cell{int((a.X + Half) >> Shift), int((a.Y + Half) >> Shift)}); first != want {
			t.Fatalf("%v -> %v starts at %v, want %v", a, b, first, want)
		}
		if want := (cell{int((b.X + Half) >> Shift), int((b.Y + Half) >> Shift)}); last != want {
			t.Fatalf("%v -> %v ends at %v, want %v", a, b, last, want)
		}
		for j := 1; j < len(cells); j++ {
			dx, dy := cells[j].x-cells[j-1].x, cells[j].y-cells[j-1].y
			if dx < -1 || dx > 1 || dy < -1 || dy > 1 || (dx == 0 && dy == 0) {
				t.Fatalf("%v -> %v: step %v to %v is not to a neighbor", a, b, cells[j-1], cells[j])
			}
		}
	}
}

func TestTraverse_Stop(t *testing.T) {
	n := 0
	Traverse(Vector3{}, Vector3{X: FromInt(10)}, func(x, y int) bool {
		n++
		return n < 3
	})
	if n != 3 {
		t.Errorf("visited %d cells after stop, want 3", n)
	}
}

func TestTraverse_EndpointsMatchRaw(t *testing.T) {
	rng := rand.New(rand.NewPCG(15, 16))
	for i := 0; i < 500; i++ {
		a := Vector3{X: rng.Int64N(FromInt(80)), Y: rng.Int64N(FromInt(40))}
		b := Vector3{X: rng.Int64N(FromInt(80)), Y: rng.Int64N(FromInt(40))}
		cells := collect(a, b)
		ra, rb := V3ToRaw(a), V3ToRaw(b)
		if first := cells[0]; first != (cell{int(ra.X), int(ra.Y)}) {
			t.Fatalf("start cell %v, want raw %v", first, ra)
		}
		if last := cells[len(cells)-1]; last != (cell{int(rb.X), int(rb.Y)}) {
			t.Fatalf("end cell %v, want raw %v", last, rb)
		}
	}
}
