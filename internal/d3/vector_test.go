package d3

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

func TestTrianglePrimitives(t *testing.T) {
	const tol = 1e-6
	v0 := ms3.Vec{}
	v1 := ms3.Vec{X: 2}
	v2 := ms3.Vec{Y: 1}
	n := TriangleNormal(v0, v1, v2)
	if !EqualWithin(n, ms3.Vec{Z: 2}, tol) {
		t.Errorf("normal got %v, want (0,0,2)", n)
	}
	// Reversed winding flips the normal.
	nr := TriangleNormal(v0, v2, v1)
	if InnerProduct(n, nr) >= 0 {
		t.Errorf("reversed winding normal %v not opposite of %v", nr, n)
	}
	if got := TriangleArea(v0, v1, v2); math32.Abs(got-1) > tol {
		t.Errorf("area got %g, want 1", got)
	}
	if got := LongestEdge2(v0, v1, v2); math32.Abs(got-5) > tol {
		t.Errorf("longest edge2 got %g, want 5", got)
	}
	if got := TriangleAspect(v0, v1, v2); math32.Abs(got-0.4) > tol {
		t.Errorf("aspect got %g, want 0.4", got)
	}
	// Aspect is scale invariant.
	s0, s1, s2 := ms3.Scale(7, v0), ms3.Scale(7, v1), ms3.Scale(7, v2)
	if got := TriangleAspect(s0, s1, s2); math32.Abs(got-0.4) > 1e-5 {
		t.Errorf("scaled aspect got %g, want 0.4", got)
	}
	eq := TriangleAspect(ms3.Vec{}, ms3.Vec{X: 1}, ms3.Vec{X: .5, Y: math32.Sqrt(3) / 2})
	if math32.Abs(eq-math32.Sqrt(3)/2) > tol {
		t.Errorf("equilateral aspect got %g", eq)
	}
}

func TestLongestSide(t *testing.T) {
	a, b, c := ms3.Vec{}, ms3.Vec{X: 3}, ms3.Vec{X: 3, Y: 1}
	for _, test := range []struct {
		v    [3]ms3.Vec
		side int
	}{
		{v: [3]ms3.Vec{a, b, c}, side: 2},
		{v: [3]ms3.Vec{b, c, a}, side: 1},
		{v: [3]ms3.Vec{c, a, b}, side: 0},
	} {
		side, elen2 := LongestSide(test.v[0], test.v[1], test.v[2])
		if side != test.side {
			t.Errorf("longest side of %v got %d, want %d", test.v, side, test.side)
		}
		if math32.Abs(elen2-10) > 1e-6 {
			t.Errorf("longest side length2 got %g, want 10", elen2)
		}
	}
}

func TestMidpointLength(t *testing.T) {
	m := Midpoint(ms3.Vec{X: 1, Y: 2, Z: 3}, ms3.Vec{X: 3, Y: 2, Z: -3})
	if m != (ms3.Vec{X: 2, Y: 2}) {
		t.Errorf("midpoint got %v", m)
	}
	if got := Length(ms3.Vec{X: 3, Y: 4}); got != 5 {
		t.Errorf("length got %g, want 5", got)
	}
	if got := Distance2(ms3.Vec{X: 1}, ms3.Vec{Y: 1}); got != 2 {
		t.Errorf("distance2 got %g, want 2", got)
	}
}

func TestPlaneBasis(t *testing.T) {
	for _, n := range []ms3.Vec{{Z: 1}, {X: -3}, {X: 1, Y: 1, Z: 1}, {Y: 0.2, Z: -5}} {
		u, v := PlaneBasis(n)
		if math32.Abs(InnerProduct(u, n)) > 1e-5 || math32.Abs(InnerProduct(v, n)) > 1e-5 {
			t.Errorf("basis %v %v not orthogonal to %v", u, v, n)
		}
		if math32.Abs(InnerProduct(u, v)) > 1e-5 {
			t.Errorf("basis vectors %v %v not orthogonal", u, v)
		}
		if math32.Abs(Length(u)-1) > 1e-5 || math32.Abs(Length(v)-1) > 1e-5 {
			t.Errorf("basis vectors %v %v not unit", u, v)
		}
	}
}

func TestBounds(t *testing.T) {
	bb := Bounds([]ms3.Vec{{X: 1, Y: -1}, {Z: 4}, {X: -2, Y: 3}})
	if bb.Min != (ms3.Vec{X: -2, Y: -1}) || bb.Max != (ms3.Vec{X: 1, Y: 3, Z: 4}) {
		t.Errorf("bounds got %+v", bb)
	}
	if Bounds(nil) != (ms3.Box{}) {
		t.Error("empty bounds not zero")
	}
}
