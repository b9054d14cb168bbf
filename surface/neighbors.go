package surface

import (
	"errors"
	"fmt"
)

var (
	// ErrNonManifold is wrapped by EdgeError.
	ErrNonManifold = errors.New("non-manifold triangulation")
	// ErrCorruptTopology is returned when the incrementally maintained
	// triangle adjacency disagrees with the triangle array.
	ErrCorruptTopology = errors.New("corrupt triangle adjacency")
	// ErrBadIndex is returned for a triangle vertex index out of range.
	ErrBadIndex = errors.New("triangle vertex index out of range")
)

// EdgeError reports two triangles that traverse the same edge in the same
// direction. Such input is either non-manifold or has inconsistent
// orientation and cannot be refined.
type EdgeError struct {
	// Edge is the directed edge as a pair of vertex indices.
	Edge [2]int
	// First and Second are the offending triangle indices and
	// FirstSide and SecondSide the side of each that runs along Edge.
	First, Second         int
	FirstSide, SecondSide int
	// Vertex indices of the two triangles.
	FirstTriangle, SecondTriangle Triangle
}

func (e *EdgeError) Error() string {
	return fmt.Sprintf("two triangles (%d.%d %d %d %d and %d.%d %d %d %d) traverse edge (%d - %d) in same direction",
		e.First, e.FirstSide, e.FirstTriangle[0], e.FirstTriangle[1], e.FirstTriangle[2],
		e.Second, e.SecondSide, e.SecondTriangle[0], e.SecondTriangle[1], e.SecondTriangle[2],
		e.Edge[0], e.Edge[1])
}

func (e *EdgeError) Unwrap() error { return ErrNonManifold }

// neighbors maps each triangle side to the side of the adjoining triangle
// that runs along the same edge in the opposite direction, or noSide.
type neighbors struct {
	nt []triangleSide
}

func newNeighbors(ntri int) neighbors {
	tn := neighbors{nt: make([]triangleSide, 3*ntri)}
	for i := range tn.nt {
		tn.nt[i] = noSide
	}
	return tn
}

func (tn *neighbors) at(ts triangleSide) triangleSide { return tn.nt[ts] }

// extend makes room for ntri more triangles. New sides have no neighbor.
func (tn *neighbors) extend(ntri int) {
	for i := 0; i < 3*ntri; i++ {
		tn.nt = append(tn.nt, noSide)
	}
}

// link records ts0 and ts1 as neighbors of each other. Either may be noSide
// in which case only the other side is set.
func (tn *neighbors) link(ts0, ts1 triangleSide) {
	if ts0 != noSide {
		tn.nt[ts0] = ts1
	}
	if ts1 != noSide {
		tn.nt[ts1] = ts0
	}
}

// edgeMap maps a directed edge (i0, i1) to the triangle side traversing it.
type edgeMap map[[2]int]triangleSide

func calculateEdgeMap(ta tarray) (edgeMap, error) {
	em := make(edgeMap, 3*len(ta))
	for t := range ta {
		if ta.unused(t) {
			continue
		}
		tri := ta[t]
		for s := 0; s < 3; s++ {
			e := [2]int{tri[s], tri[(s+1)%3]}
			tsp, ok := em[e]
			if !ok {
				em[e] = sideOf(t, s)
				continue
			}
			tp := tsp.triangle()
			return nil, &EdgeError{
				Edge:           e,
				First:          tp,
				FirstSide:      tsp.side(),
				FirstTriangle:  ta[tp],
				Second:         t,
				SecondSide:     s,
				SecondTriangle: tri,
			}
		}
	}
	return em, nil
}

// calculateTriangleNeighbors builds the adjacency index from scratch.
func calculateTriangleNeighbors(ta tarray) (neighbors, error) {
	em, err := calculateEdgeMap(ta)
	if err != nil {
		return neighbors{}, err
	}
	tn := newNeighbors(len(ta))
	for t := range ta {
		if ta.unused(t) {
			continue
		}
		tri := ta[t]
		for s := 0; s < 3; s++ {
			erev := [2]int{tri[(s+1)%3], tri[s]}
			ts1, ok := em[erev]
			if !ok {
				ts1 = noSide
			}
			tn.link(sideOf(t, s), ts1)
		}
	}
	return tn, nil
}

// checkNeighbors compares the adjacency index against one rebuilt from the
// triangle array and verifies it is symmetric.
func (m *mesh) checkNeighbors() error {
	if len(m.tn.nt) != 3*len(m.ta) {
		return fmt.Errorf("%d triangle sides for %d triangles: %w", len(m.tn.nt), len(m.ta), ErrCorruptTopology)
	}
	tn2, err := calculateTriangleNeighbors(m.ta)
	if err != nil {
		return fmt.Errorf("%v: %w", err, ErrCorruptTopology)
	}
	for t := range m.ta {
		if m.ta.unused(t) {
			continue
		}
		for s := 0; s < 3; s++ {
			ts := sideOf(t, s)
			got, want := m.tn.at(ts), tn2.at(ts)
			if got != want {
				return fmt.Errorf("triangle %d side %d neighbor %d should be %d: %w", t, s, got, want, ErrCorruptTopology)
			}
			if got != noSide && m.tn.at(got) != ts {
				return fmt.Errorf("triangle %d side %d neighbor %d is not reciprocal: %w", t, s, got, ErrCorruptTopology)
			}
		}
	}
	return nil
}
