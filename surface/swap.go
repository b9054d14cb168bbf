package surface

import (
	"github.com/benmwebb/ChimeraX/internal/d3"
	"github.com/chewxy/math32"
)

// DefaultMinAspect is the aspect ratio below which the rearrangement pass
// tries to swap the longest edge of a triangle.
const DefaultMinAspect = .2

// swapEdges replaces internal edges by the diagonal joining the opposite
// corners when the diagonal is shorter, until no such swap is accepted.
func (r *refiner) swapEdges() {
	m := r.m
	edgesToCheck := m.internalEdges()
	for len(edgesToCheck) > 0 {
		r.stats.SwapRounds++
		var checkAgain []triangleSide
		for _, ts := range edgesToCheck {
			ts1 := m.tn.at(ts)
			if ts1 == noSide || m.ta.unused(ts.triangle()) || m.ta.unused(ts1.triangle()) {
				continue
			}
			elen2 := m.sideLength2(ts)
			c0, c1 := m.thirdVertex(ts), m.thirdVertex(ts1)
			clen2 := d3.Distance2(m.va[c1], m.va[c0])
			if clen2 >= elen2 {
				continue
			}
			if !m.swapEdge(ts) {
				continue
			}
			r.stats.Swaps++
			t0, t1 := ts.triangle(), ts1.triangle()
			checkAgain = append(checkAgain, sideOf(t0, 0), sideOf(t0, 2), sideOf(t1, 0), sideOf(t1, 2))
		}
		edgesToCheck = checkAgain
	}
}

// swapEdge removes internal edge ts and adds the edge joining the opposite
// corners of the two triangles sharing it. The swap is refused if that edge
// already exists, if it lowers the smaller triangle aspect ratio or if the
// new edge leaves the quadrilateral. After a swap the two triangles keep their
// indices and sides 0 and 2 of each are the outer sides of the quadrilateral.
func (m *mesh) swapEdge(ts triangleSide) bool {
	t0 := ts.triangle()
	i0, i1 := m.edgeVertices(ts)
	c0 := m.thirdVertex(ts)

	ts1 := m.tn.at(ts)
	if ts1 == noSide {
		panic("bug: swapEdge called on boundary side")
	}
	t1 := ts1.triangle()
	c1 := m.thirdVertex(ts1)

	ts2, ts3 := m.tn.at(ts.next()), m.tn.at(ts1.next())
	if (ts2 != noSide && m.thirdVertex(ts2) == c1) ||
		(ts3 != noSide && m.thirdVertex(ts3) == c0) {
		return false // Swapped edge already exists.
	}

	v0, v1, v2, v3 := m.va[i0], m.va[i1], m.va[c0], m.va[c1]
	if math32.Min(d3.TriangleAspect(v0, v2, v3), d3.TriangleAspect(v1, v2, v3)) <
		math32.Min(d3.TriangleAspect(v0, v1, v2), d3.TriangleAspect(v0, v1, v3)) {
		return false
	}
	// v0 and v1 must lie on opposite sides of the new edge.
	n1 := d3.TriangleNormal(v0, v2, v3)
	n2 := d3.TriangleNormal(v1, v2, v3)
	if d3.InnerProduct(n1, n2) > 0 {
		return false
	}

	// Outer neighbors are read before any link is rewritten.
	tn0, tp0 := m.tn.at(ts.next()), m.tn.at(ts.prev())
	tn1, tp1 := m.tn.at(ts1.next()), m.tn.at(ts1.prev())

	m.ta[t0] = Triangle{i0, c1, c0}
	m.ta[t1] = Triangle{i1, c0, c1}

	m.tn.link(tn0, sideOf(t1, 0))
	m.tn.link(tp0, sideOf(t0, 2))
	m.tn.link(tn1, sideOf(t0, 0))
	m.tn.link(tp1, sideOf(t1, 2))
	m.tn.link(sideOf(t0, 1), sideOf(t1, 1))
	return true
}

// rearrangeEdges makes one pass over the triangles trying to swap the
// longest edge of each triangle with aspect ratio below minAspect.
// Slivers pinned by close boundary vertices may remain.
func (r *refiner) rearrangeEdges(minAspect float32) {
	m := r.m
	for t := range m.ta {
		if m.ta.unused(t) {
			continue
		}
		v0, v1, v2 := m.corners(t)
		s, elen2 := d3.LongestSide(v0, v1, v2)
		ts := sideOf(t, s)
		if m.tn.at(ts) == noSide {
			continue
		}
		aspect := 2 * d3.TriangleArea(v0, v1, v2) / elen2
		if aspect >= minAspect {
			continue
		}
		if m.swapEdge(ts) {
			r.stats.Rearranged++
		}
	}
}
