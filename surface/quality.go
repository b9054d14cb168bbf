package surface

import (
	"sort"

	"github.com/benmwebb/ChimeraX/internal/d3"
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

// Quality summarizes triangle shape and edge lengths of a mesh.
type Quality struct {
	Triangles     int
	InternalEdges int
	BoundaryEdges int
	// BoundaryVertices is the number of distinct vertices on boundary edges.
	BoundaryVertices int
	// Aspect ratio is 2*area over longest squared edge length.
	MinAspect  float32
	MeanAspect float32
	// Longest squared edge lengths.
	MaxInternalEdge2 float32
	MaxBoundaryEdge2 float32
}

// MeasureQuality computes Quality for a mesh. Unused triangles are ignored.
func MeasureQuality(vertices []ms3.Vec, triangles []Triangle) (Quality, error) {
	if err := checkIndices(len(vertices), triangles); err != nil {
		return Quality{}, err
	}
	tn, err := calculateTriangleNeighbors(triangles)
	if err != nil {
		return Quality{}, err
	}
	m := &mesh{va: vertices, ta: triangles, tn: tn}
	q := Quality{MinAspect: math32.Inf(1)}
	boundary := make(map[int]struct{})
	var aspectSum float64
	for t := range m.ta {
		if m.ta.unused(t) {
			continue
		}
		q.Triangles++
		aspect := d3.TriangleAspect(m.corners(t))
		q.MinAspect = math32.Min(q.MinAspect, aspect)
		aspectSum += float64(aspect)
		for s := 0; s < 3; s++ {
			ts := sideOf(t, s)
			d2 := m.sideLength2(ts)
			if m.tn.at(ts) != noSide {
				// Each internal edge is seen from both sides.
				if ts < m.tn.at(ts) {
					q.InternalEdges++
				}
				q.MaxInternalEdge2 = math32.Max(q.MaxInternalEdge2, d2)
				continue
			}
			q.BoundaryEdges++
			q.MaxBoundaryEdge2 = math32.Max(q.MaxBoundaryEdge2, d2)
			i0, i1 := m.edgeVertices(ts)
			boundary[i0] = struct{}{}
			boundary[i1] = struct{}{}
		}
	}
	if q.Triangles == 0 {
		q.MinAspect = 0
		return q, nil
	}
	q.MeanAspect = float32(aspectSum / float64(q.Triangles))
	q.BoundaryVertices = len(boundary)
	return q, nil
}

// BoundaryVertices returns the sorted indices of vertices lying on an edge
// used by only one triangle.
func BoundaryVertices(triangles []Triangle) ([]int, error) {
	tn, err := calculateTriangleNeighbors(triangles)
	if err != nil {
		return nil, err
	}
	seen := make(map[int]struct{})
	var bv []int
	for t, tri := range triangles {
		if tri.Unused() {
			continue
		}
		for s := 0; s < 3; s++ {
			if tn.at(sideOf(t, s)) != noSide {
				continue
			}
			for _, i := range [2]int{tri[s], tri[(s+1)%3]} {
				if _, ok := seen[i]; !ok {
					seen[i] = struct{}{}
					bv = append(bv, i)
				}
			}
		}
	}
	sort.Ints(bv)
	return bv, nil
}
