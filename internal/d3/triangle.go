package d3

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

// TriangleNormal returns (v1-v0)×(v2-v0). Its length is twice the
// triangle area and its direction follows the vertex winding.
func TriangleNormal(v0, v1, v2 ms3.Vec) ms3.Vec {
	return CrossProduct(ms3.Sub(v1, v0), ms3.Sub(v2, v0))
}

// TriangleArea returns the area of triangle v0,v1,v2.
func TriangleArea(v0, v1, v2 ms3.Vec) float32 {
	return .5 * Length(TriangleNormal(v0, v1, v2))
}

// LongestSide returns the side number s of the longest edge, where side s
// runs from vertex s to vertex (s+1)%3, and its squared length.
func LongestSide(v0, v1, v2 ms3.Vec) (side int, elen2 float32) {
	d0, d1, d2 := Distance2(v0, v1), Distance2(v1, v2), Distance2(v2, v0)
	switch {
	case d0 > d1 && d0 > d2:
		return 0, d0
	case d1 > d2:
		return 1, d1
	default:
		return 2, d2
	}
}

// LongestEdge2 returns the squared length of the longest triangle edge.
func LongestEdge2(v0, v1, v2 ms3.Vec) float32 {
	d0, d1, d2 := Distance2(v0, v1), Distance2(v1, v2), Distance2(v2, v0)
	return math32.Max(d0, math32.Max(d1, d2))
}

// TriangleAspect returns 2*area divided by the longest squared edge length.
// It does not depend on scale or winding. An equilateral triangle has
// aspect sqrt(3)/2 and slivers approach zero.
func TriangleAspect(v0, v1, v2 ms3.Vec) float32 {
	area := TriangleArea(v0, v1, v2)
	return 2 * area / LongestEdge2(v0, v1, v2)
}
