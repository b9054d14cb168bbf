package d3

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

// Bounds returns the bounding box of a set of points.
// An empty set returns the zero box.
func Bounds(vs []ms3.Vec) ms3.Box {
	if len(vs) == 0 {
		return ms3.Box{}
	}
	bb := ms3.Box{Min: vs[0], Max: vs[0]}
	for _, v := range vs[1:] {
		bb.Min = ms3.MinElem(bb.Min, v)
		bb.Max = ms3.MaxElem(bb.Max, v)
	}
	return bb
}

// PlaneBasis returns two unit vectors u, v orthogonal to n and to each other.
// n need not be normalized but must be non-zero.
func PlaneBasis(n ms3.Vec) (u, v ms3.Vec) {
	n = ms3.Unit(n)
	// Pick the axis least aligned with n to avoid a degenerate cross product.
	ax, ay, az := math32.Abs(n.X), math32.Abs(n.Y), math32.Abs(n.Z)
	var ref ms3.Vec
	switch {
	case ax <= ay && ax <= az:
		ref = ms3.Vec{X: 1}
	case ay <= az:
		ref = ms3.Vec{Y: 1}
	default:
		ref = ms3.Vec{Z: 1}
	}
	u = ms3.Unit(CrossProduct(n, ref))
	v = CrossProduct(n, u)
	return u, v
}

// Project returns the coordinates of p in the plane spanned by u and v.
func Project(p, u, v ms3.Vec) (x, y float32) {
	return InnerProduct(p, u), InnerProduct(p, v)
}
