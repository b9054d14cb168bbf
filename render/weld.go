package render

import (
	"github.com/benmwebb/ChimeraX/internal/d3"
	"github.com/soypat/glgl/math/ms3"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

var _ kdtree.Interface = weldVertices{}

// weldVertex is a distinct corner position. idx is its order of first
// appearance in the triangle soup.
type weldVertex struct {
	pos r3.Vec
	idx int
}

func (p *weldVertex) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(*weldVertex)
	switch d {
	case 0:
		return p.pos.X - q.pos.X
	case 1:
		return p.pos.Y - q.pos.Y
	case 2:
		return p.pos.Z - q.pos.Z
	}
	panic("unreachable")
}

func (p *weldVertex) Dims() int { return 3 }

func (p *weldVertex) Distance(c kdtree.Comparable) float64 {
	q := c.(*weldVertex)
	return r3.Norm2(r3.Sub(p.pos, q.pos))
}

// weldVertices implements kdtree.Interface so the tree is built balanced
// in one go regardless of the order corners arrive in.
type weldVertices []weldVertex

func (wv weldVertices) Index(i int) kdtree.Comparable { return &wv[i] }

func (wv weldVertices) Len() int { return len(wv) }

// Pivot partitions the list based on the dimension specified.
func (wv weldVertices) Pivot(d kdtree.Dim) int {
	p := weldPlane{dim: d, vertices: wv}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

func (wv weldVertices) Slice(start, end int) kdtree.Interface { return wv[start:end] }

type weldPlane struct {
	dim      kdtree.Dim
	vertices weldVertices
}

func (p weldPlane) Less(i, j int) bool {
	return p.vertices[i].Compare(&p.vertices[j], p.dim) < 0
}
func (p weldPlane) Swap(i, j int) {
	p.vertices[i], p.vertices[j] = p.vertices[j], p.vertices[i]
}
func (p weldPlane) Len() int { return len(p.vertices) }
func (p weldPlane) Slice(start, end int) kdtree.SortSlicer {
	p.vertices = p.vertices[start:end]
	return p
}

// newWeldTree builds a balanced kd-tree over distinct points. Entry i of
// points gets idx i.
func newWeldTree(points []ms3.Vec) *kdtree.Tree {
	wv := make(weldVertices, len(points))
	for i, p := range points {
		wv[i] = weldVertex{pos: d3.R3(p), idx: i}
	}
	return kdtree.New(wv, false)
}

// weld merges corners closer than tol. It returns the merged vertices in
// order of first appearance and the vertex index of each corner. A point
// within tol of an earlier kept vertex is merged into the first such vertex.
func weld(corners []ms3.Vec, tol float32) (vertices []ms3.Vec, index []int) {
	// Exact duplicates are the common case in STL and need no tree query.
	cache := make(map[ms3.Vec]int, len(corners)/2)
	var distinct []ms3.Vec
	cornerID := make([]int, len(corners))
	for i, c := range corners {
		id, ok := cache[c]
		if !ok {
			id = len(distinct)
			cache[c] = id
			distinct = append(distinct, c)
		}
		cornerID[i] = id
	}

	rep := make([]int, len(distinct))
	for i := range rep {
		rep[i] = -1
	}
	var tree *kdtree.Tree
	tol2 := float64(tol) * float64(tol)
	if tol2 > 0 && len(distinct) > 1 {
		tree = newWeldTree(distinct)
	}
	for i, p := range distinct {
		if rep[i] >= 0 {
			continue
		}
		rep[i] = len(vertices)
		vertices = append(vertices, p)
		if tree == nil {
			continue
		}
		keep := kdtree.NewDistKeeper(tol2)
		tree.NearestSet(keep, &weldVertex{pos: d3.R3(p)})
		for _, cd := range keep.Heap {
			if cd.Comparable == nil {
				continue // sentinel holding the distance bound
			}
			if j := cd.Comparable.(*weldVertex).idx; rep[j] < 0 {
				rep[j] = rep[i]
			}
		}
	}

	index = make([]int, len(corners))
	for i, id := range cornerID {
		index[i] = rep[id]
	}
	return vertices, index
}
