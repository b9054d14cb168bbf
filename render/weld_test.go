package render

import (
	"testing"

	"github.com/soypat/glgl/math/ms3"
	"gonum.org/v1/gonum/spatial/kdtree"
)

func treeDepth(n *kdtree.Node) int {
	if n == nil {
		return 0
	}
	l, r := treeDepth(n.Left), treeDepth(n.Right)
	if l > r {
		return l + 1
	}
	return r + 1
}

func TestWeldTreeBalancedOnSortedInput(t *testing.T) {
	// Points arriving in sweep order, the worst case for incremental insertion.
	const n = 1 << 12
	pts := make([]ms3.Vec, n)
	for i := range pts {
		pts[i] = ms3.Vec{X: float32(i), Y: float32(i % 7)}
	}
	tree := newWeldTree(pts)
	if tree.Len() != n {
		t.Fatalf("tree holds %d points, want %d", tree.Len(), n)
	}
	// log2(n) is 12; a list-like tree would be n deep.
	if depth := treeDepth(tree.Root); depth > 3*12 {
		t.Errorf("tree depth %d for %d sorted points", depth, n)
	}
}

func TestWeld(t *testing.T) {
	const tol = 1e-3
	corners := []ms3.Vec{
		{}, {X: 1}, {Y: 1},
		{X: 1}, {X: 1 + tol/2, Y: 1}, {Y: 1 + tol/4},
		{}, {X: 5e-4}, {X: 1},
	}
	vertices, index := weld(corners, tol)
	wantV := []ms3.Vec{{}, {X: 1}, {Y: 1}, {X: 1 + tol/2, Y: 1}}
	wantI := []int{0, 1, 2, 1, 3, 2, 0, 0, 1}
	if len(vertices) != len(wantV) {
		t.Fatalf("got %d vertices %v, want %v", len(vertices), vertices, wantV)
	}
	for i := range wantV {
		if vertices[i] != wantV[i] {
			t.Errorf("vertex %d got %v, want %v", i, vertices[i], wantV[i])
		}
	}
	for i := range wantI {
		if index[i] != wantI[i] {
			t.Errorf("corner %d got vertex %d, want %d", i, index[i], wantI[i])
		}
	}
	// Zero tolerance merges exact duplicates only.
	vertices, index = weld(corners, 0)
	if len(vertices) != 6 || index[3] != 1 || index[7] != 5 {
		t.Errorf("exact weld got %d vertices, index %v", len(vertices), index)
	}
}
