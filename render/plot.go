package render

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/benmwebb/ChimeraX/internal/d2"
	"github.com/benmwebb/ChimeraX/internal/d3"
	"github.com/benmwebb/ChimeraX/surface"
	"github.com/soypat/glgl/math/ms3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// PlotWireframe draws the triangle edges of a mesh projected onto the plane
// normal to its average facet normal. Boundary vertices are marked.
// The output format follows the path extension (png, svg, pdf...).
func PlotWireframe(path string, vertices []ms3.Vec, triangles []surface.Triangle) error {
	if err := surface.Validate(vertices, triangles); err != nil {
		return err
	}
	var normal ms3.Vec
	nt := 0
	for _, tri := range triangles {
		if tri.Unused() {
			continue
		}
		normal = ms3.Add(normal, d3.TriangleNormal(vertices[tri[0]], vertices[tri[1]], vertices[tri[2]]))
		nt++
	}
	if nt == 0 {
		return errors.New("no triangles to plot")
	}
	if d3.Length(normal) == 0 {
		normal = ms3.Vec{Z: 1}
	}
	u, v := d3.PlaneBasis(normal)
	var projected []r2.Vec
	project := func(i int) plotter.XY {
		x, y := d3.Project(vertices[i], u, v)
		pt := r2.Vec{X: float64(x), Y: float64(y)}
		projected = append(projected, pt)
		return plotter.XY(pt)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%d triangles", nt)
	p.X.Label.Text = "u"
	p.Y.Label.Text = "v"
	edgeColor := color.Gray{Y: 60}
	for _, tri := range triangles {
		if tri.Unused() {
			continue
		}
		pts := plotter.XYs{project(tri[0]), project(tri[1]), project(tri[2]), project(tri[0])}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		l.LineStyle.Width = vg.Points(0.5)
		l.LineStyle.Color = edgeColor
		p.Add(l)
	}

	boundary, err := surface.BoundaryVertices(triangles)
	if err != nil {
		return err
	}
	if len(boundary) > 0 {
		pts := make(plotter.XYs, len(boundary))
		for i, vi := range boundary {
			pts[i] = project(vi)
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(1.5)
		s.GlyphStyle.Color = color.RGBA{R: 0x46, G: 0x89, B: 0x66, A: 0xff}
		p.Add(s)
	}

	// Equal scale on both axes so the triangles are not distorted.
	box := d2.BoundPoints(projected).Square(1.05)
	p.X.Min, p.X.Max = box.Min.X, box.Max.X
	p.Y.Min, p.Y.Max = box.Min.Y, box.Max.Y
	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}
