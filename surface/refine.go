package surface

import (
	"errors"
	"fmt"
	"log"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

// Parms configures RefineMesh.
type Parms struct {
	// SubdivisionFactor sets how many times finer the interior edges are than
	// the longest boundary edge. Must be positive.
	SubdivisionFactor float32
	// MinAspect is the aspect ratio under which the final pass tries to swap
	// a triangle's longest edge. Zero selects DefaultMinAspect, a negative
	// value disables the pass.
	MinAspect float32
	// Check rebuilds the adjacency after each pass and compares it with the
	// incrementally maintained one. Slow, meant for debugging.
	Check bool
	// Logger receives a line per pass when not nil.
	Logger *log.Logger
}

// Stats counts the work done by RefineMesh.
type Stats struct {
	// TargetLength2 is the squared edge length splitting aims below.
	TargetLength2 float32
	Splits        int
	SplitRounds   int
	Swaps         int
	SwapRounds    int
	// Rearranged counts swaps done by the slender triangle pass.
	Rearranged       int
	RemovedVertices  int
	RemovedTriangles int
}

// Result is a refined mesh. The slices are owned by the caller.
type Result struct {
	Vertices  []ms3.Vec
	Triangles []Triangle
	Stats     Stats
}

type refiner struct {
	m     *mesh
	p     Parms
	stats Stats
}

// RefineMesh retriangulates a planar triangulated patch into triangles of
// near uniform size. Boundary vertices are neither moved nor added to and
// triangle orientation is kept. The input slices are not modified.
//
// Interior edges are split until shorter than the target length
// sqrt(1.5)*L/SubdivisionFactor where L is the longest boundary edge, then
// edges are swapped for shorter diagonals, then slender triangles get one
// more chance at a swap. Unused vertices are dropped from the result.
//
// An error wrapping ErrNonManifold (an *EdgeError) is returned if two
// triangles traverse an edge in the same direction.
func RefineMesh(vertices []ms3.Vec, triangles []Triangle, p Parms) (Result, error) {
	if !(p.SubdivisionFactor > 0) {
		return Result{}, fmt.Errorf("subdivision factor must be positive, got %g", p.SubdivisionFactor)
	}
	if p.MinAspect == 0 {
		p.MinAspect = DefaultMinAspect
	}
	if err := checkIndices(len(vertices), triangles); err != nil {
		return Result{}, err
	}
	if len(triangles) == 0 {
		return Result{Vertices: []ms3.Vec{}, Triangles: []Triangle{}}, nil
	}
	r := refiner{m: newMesh(vertices, triangles), p: p}
	if err := r.refine(); err != nil {
		return Result{}, err
	}
	return Result{Vertices: r.m.va, Triangles: r.m.ta, Stats: r.stats}, nil
}

// Refine is RefineMesh with default parameters.
func Refine(vertices []ms3.Vec, triangles []Triangle, subdivisionFactor float32) ([]ms3.Vec, []Triangle, error) {
	result, err := RefineMesh(vertices, triangles, Parms{SubdivisionFactor: subdivisionFactor})
	if err != nil {
		return nil, nil, err
	}
	return result.Vertices, result.Triangles, nil
}

// MustRefine is like Refine but panics on error.
func MustRefine(vertices []ms3.Vec, triangles []Triangle, subdivisionFactor float32) ([]ms3.Vec, []Triangle) {
	rv, rt, err := Refine(vertices, triangles, subdivisionFactor)
	if err != nil {
		panic(err)
	}
	return rv, rt
}

// RefineFlat refines a mesh given as flat arrays of n×3 vertex coordinates
// and m×3 triangle vertex indices and returns the result in the same layout.
func RefineFlat(vertices []float32, triangles []int32, subdivisionFactor float32) ([]float32, []int32, error) {
	if len(vertices)%3 != 0 {
		return nil, nil, fmt.Errorf("vertex array length %d not a multiple of 3", len(vertices))
	} else if len(triangles)%3 != 0 {
		return nil, nil, fmt.Errorf("triangle array length %d not a multiple of 3", len(triangles))
	}
	vs := make([]ms3.Vec, len(vertices)/3)
	for i := range vs {
		vs[i] = ms3.Vec{X: vertices[3*i], Y: vertices[3*i+1], Z: vertices[3*i+2]}
	}
	ts := make([]Triangle, len(triangles)/3)
	for i := range ts {
		ts[i] = Triangle{int(triangles[3*i]), int(triangles[3*i+1]), int(triangles[3*i+2])}
	}
	rv, rt, err := Refine(vs, ts, subdivisionFactor)
	if err != nil {
		return nil, nil, err
	}
	fv := make([]float32, 0, 3*len(rv))
	for _, v := range rv {
		fv = append(fv, v.X, v.Y, v.Z)
	}
	ft := make([]int32, 0, 3*len(rt))
	for _, t := range rt {
		ft = append(ft, int32(t[0]), int32(t[1]), int32(t[2]))
	}
	return fv, ft, nil
}

func (r *refiner) refine() (err error) {
	m := r.m
	m.tn, err = calculateTriangleNeighbors(m.ta)
	if err != nil {
		return err
	}

	melength2 := m.maxBoundaryEdgeLength2()
	f := r.p.SubdivisionFactor
	elength2 := 1.5 * melength2 / (f * f)
	r.stats.TargetLength2 = elength2
	if elength2 > 0 {
		r.splitLongEdges(elength2)
		r.logf("%d splits in %d rounds, target edge length %g", r.stats.Splits, r.stats.SplitRounds, math32.Sqrt(elength2))
		if err = r.check("split"); err != nil {
			return err
		}
	} else {
		r.logf("no boundary edges, skipping splits")
	}

	r.swapEdges()
	r.logf("%d swaps in %d rounds", r.stats.Swaps, r.stats.SwapRounds)
	if err = r.check("swap"); err != nil {
		return err
	}

	if r.p.MinAspect > 0 {
		r.rearrangeEdges(r.p.MinAspect)
		r.logf("%d slender triangles rearranged", r.stats.Rearranged)
		if err = r.check("rearrange"); err != nil {
			return err
		}
	}

	r.stats.RemovedVertices, r.stats.RemovedTriangles = m.removeUnused()
	r.logf("%d vertices, %d triangles", len(m.va), len(m.ta))
	return nil
}

func (r *refiner) check(pass string) error {
	if !r.p.Check {
		return nil
	}
	if err := r.m.checkNeighbors(); err != nil {
		return fmt.Errorf("after %s: %w", pass, err)
	}
	return nil
}

func (r *refiner) logf(format string, args ...interface{}) {
	if r.p.Logger != nil {
		r.p.Logger.Printf(format, args...)
	}
}

func checkIndices(nv int, triangles []Triangle) error {
	for t, tri := range triangles {
		if tri.Unused() {
			continue
		}
		for _, i := range tri {
			if i < 0 || i >= nv {
				return fmt.Errorf("triangle %d %v with %d vertices: %w", t, tri, nv, ErrBadIndex)
			}
		}
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[2] == tri[0] {
			return fmt.Errorf("triangle %d %v repeats a vertex: %w", t, tri, ErrBadIndex)
		}
	}
	return nil
}

// Validate checks that every triangle references existing vertices and that
// no two triangles traverse an edge in the same direction.
func Validate(vertices []ms3.Vec, triangles []Triangle) error {
	if err := checkIndices(len(vertices), triangles); err != nil {
		return err
	}
	_, err := calculateEdgeMap(triangles)
	return err
}

// IsNonManifold reports whether err was caused by a directed edge shared by two triangles.
func IsNonManifold(err error) bool {
	return errors.Is(err, ErrNonManifold)
}
