package surface

import (
	"github.com/benmwebb/ChimeraX/internal/d3"
	"github.com/chewxy/math32"
)

// binFraction is the split point bin size as a fraction of the target edge length.
const binFraction = .7

// splitBin is an integer grid cell holding at most one split point per run.
type splitBin [3]int

// splitLongEdges splits internal edges until all are shorter than sqrt(elength2).
// elength2 must be larger than about 2/3 of the longest boundary edge length
// squared, otherwise the halving can go on forever.
func (r *refiner) splitLongEdges(elength2 float32) {
	m := r.m
	binSize := binFraction * math32.Sqrt(elength2)
	splitPoints := make(map[splitBin]struct{})
	edgesToCheck := m.internalEdges()
	for len(edgesToCheck) > 0 {
		r.stats.SplitRounds++
		var newEdges []triangleSide
		for _, ts := range edgesToCheck {
			if m.tn.at(ts) == noSide || m.sideLength2(ts) <= elength2 {
				continue
			}
			i0, i1 := m.edgeVertices(ts)
			vmid := d3.Midpoint(m.va[i0], m.va[i1])
			bin := splitBin{int(vmid.X / binSize), int(vmid.Y / binSize), int(vmid.Z / binSize)}
			if _, ok := splitPoints[bin]; ok {
				continue
			}
			splitPoints[bin] = struct{}{}
			newEdges = m.splitEdge(ts, newEdges)
			r.stats.Splits++
		}
		edgesToCheck = newEdges
	}
}

// splitEdge inserts the midpoint of internal edge ts and replaces the two
// triangles sharing the edge with four. The four edges around the new vertex
// are appended to newEdges.
func (m *mesh) splitEdge(ts triangleSide, newEdges []triangleSide) []triangleSide {
	if m.tn.at(ts) == noSide {
		panic("bug: splitEdge called on boundary side")
	}
	i0, i1 := m.edgeVertices(ts)
	i := m.va.push(d3.Midpoint(m.va[i0], m.va[i1]))

	// t0 = (i0,i1,c0) becomes (i0,i,c0) plus new (i,i1,c0).
	t0 := ts.triangle()
	c0 := m.thirdVertex(ts)
	m.ta[t0][ts.next().side()] = i
	tnew0 := m.ta.push(Triangle{i, i1, c0})

	// t1 = (i1,i0,c1) becomes (i,i0,c1) plus new (i1,i,c1).
	ts1 := m.tn.at(ts)
	t1 := ts1.triangle()
	c1 := m.thirdVertex(ts1)
	m.ta[t1][ts1.side()] = i
	tnew1 := m.ta.push(Triangle{i1, i, c1})

	m.tn.extend(2)
	m.tn.link(sideOf(tnew0, 0), sideOf(tnew1, 0))
	m.tn.link(sideOf(tnew0, 1), m.tn.at(ts.next()))
	m.tn.link(sideOf(tnew0, 2), ts.next())
	m.tn.link(sideOf(tnew1, 2), m.tn.at(ts1.prev()))
	m.tn.link(sideOf(tnew1, 1), ts1.prev())

	return append(newEdges, ts, sideOf(tnew0, 0), ts.next(), ts1.prev())
}
