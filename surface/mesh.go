package surface

import (
	"github.com/benmwebb/ChimeraX/internal/d3"
	"github.com/soypat/glgl/math/ms3"
)

// Triangle is an ordered triple of vertex indices. Side s of a triangle runs
// from vertex s to vertex (s+1)%3 and the cyclic order sets the orientation.
// A triangle whose first index is -1 is unused and is skipped by all passes.
type Triangle [3]int

// unusedIndex marks a removed triangle in its first vertex slot.
const unusedIndex = -1

// Unused reports whether t is marked as removed.
func (t Triangle) Unused() bool { return t[0] == unusedIndex }

// varray is the growable vertex storage. Slots are overwritten in place and
// appended to, never deleted until compaction.
type varray []ms3.Vec

func (va *varray) push(v ms3.Vec) int {
	*va = append(*va, v)
	return len(*va) - 1
}

// tarray is the growable triangle storage.
type tarray []Triangle

func (ta *tarray) push(t Triangle) int {
	*ta = append(*ta, t)
	return len(*ta) - 1
}

func (ta tarray) unused(t int) bool { return ta[t].Unused() }

// triangleSide encodes side s of triangle t as 3*t+s.
type triangleSide int

// noSide is the neighbor of a boundary side.
const noSide triangleSide = -1

func sideOf(t, s int) triangleSide { return triangleSide(3*t + s) }

func (ts triangleSide) triangle() int { return int(ts) / 3 }
func (ts triangleSide) side() int     { return int(ts) % 3 }

func (ts triangleSide) next() triangleSide { return sideOf(ts.triangle(), (ts.side()+1)%3) }
func (ts triangleSide) prev() triangleSide { return sideOf(ts.triangle(), (ts.side()+2)%3) }

// mesh is the working state of one refinement: private copies of the
// caller's arrays plus the adjacency index over them.
type mesh struct {
	va varray
	ta tarray
	tn neighbors
}

// newMesh copies vertices and triangles so the caller's slices are never modified.
func newMesh(vertices []ms3.Vec, triangles []Triangle) *mesh {
	m := &mesh{
		va: make(varray, len(vertices), 2*len(vertices)+1),
		ta: make(tarray, len(triangles), 2*len(triangles)+1),
	}
	copy(m.va, vertices)
	copy(m.ta, triangles)
	return m
}

// edgeVertices returns the two end vertex indices of side ts in triangle order.
func (m *mesh) edgeVertices(ts triangleSide) (i0, i1 int) {
	tri := &m.ta[ts.triangle()]
	s := ts.side()
	return tri[s], tri[(s+1)%3]
}

// thirdVertex returns the triangle corner not on side ts.
func (m *mesh) thirdVertex(ts triangleSide) int {
	return m.ta[ts.triangle()][(ts.side()+2)%3]
}

func (m *mesh) sideLength2(ts triangleSide) float32 {
	i0, i1 := m.edgeVertices(ts)
	return d3.Distance2(m.va[i0], m.va[i1])
}

func (m *mesh) corners(t int) (v0, v1, v2 ms3.Vec) {
	tri := &m.ta[t]
	return m.va[tri[0]], m.va[tri[1]], m.va[tri[2]]
}

// maxBoundaryEdgeLength2 returns the squared length of the longest boundary edge.
func (m *mesh) maxBoundaryEdgeLength2() float32 {
	var mx float32
	for t := range m.ta {
		if m.ta.unused(t) {
			continue
		}
		for s := 0; s < 3; s++ {
			ts := sideOf(t, s)
			if m.tn.at(ts) != noSide {
				continue
			}
			if d2 := m.sideLength2(ts); d2 > mx {
				mx = d2
			}
		}
	}
	return mx
}

// internalEdges lists one side of every internal edge, the one whose
// start vertex index is the smaller.
func (m *mesh) internalEdges() []triangleSide {
	var tslist []triangleSide
	for t := range m.ta {
		if m.ta.unused(t) {
			continue
		}
		for s := 0; s < 3; s++ {
			ts := sideOf(t, s)
			i0, i1 := m.edgeVertices(ts)
			if i0 < i1 && m.tn.at(ts) != noSide {
				tslist = append(tslist, ts)
			}
		}
	}
	return tslist
}
