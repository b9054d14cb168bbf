// Command refinecap retriangulates the planar cap stored in a binary STL
// file so its triangles are of near uniform size.
//
//	refinecap [flags] in.stl out.stl
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/benmwebb/ChimeraX/internal/d3"
	"github.com/benmwebb/ChimeraX/render"
	"github.com/benmwebb/ChimeraX/surface"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("refinecap: ")
	if err := run(os.Args[1:], os.Stderr); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, logOut io.Writer) error {
	fs := flag.NewFlagSet("refinecap", flag.ContinueOnError)
	fs.SetOutput(logOut)
	var (
		factor    = fs.Float64("factor", 1, "subdivision factor, interior edges are about this many times shorter than the longest boundary edge")
		minAspect = fs.Float64("minaspect", float64(surface.DefaultMinAspect), "aspect ratio under which slender triangles get a last swap, negative disables")
		weld      = fs.Float64("weld", 0, "distance under which STL corners are merged, 0 picks one from the shortest edge")
		pngPath   = fs.String("png", "", "write a shaded snapshot of the refined cap to this PNG file")
		plotPath  = fs.String("plot", "", "write a wireframe plot of the refined cap (png, svg or pdf)")
		check     = fs.Bool("check", false, "verify triangle adjacency after every pass")
		verbose   = fs.Bool("v", false, "log progress of each pass")
	)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: refinecap [flags] in.stl out.stl")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("expected input and output STL paths, got %d arguments", fs.NArg())
	}
	logger := log.New(logOut, "refinecap: ", 0)

	fp, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	vertices, triangles, err := render.ReadSTL(fp, float32(*weld))
	fp.Close()
	if err != nil {
		return fmt.Errorf("reading %s: %w", fs.Arg(0), err)
	}
	before, err := surface.MeasureQuality(vertices, triangles)
	if err != nil {
		return err
	}
	bb := d3.Bounds(vertices)
	logger.Printf("read %d vertices, %d triangles, bounds %v to %v", len(vertices), len(triangles), bb.Min, bb.Max)
	logger.Printf("input: %s", qualityString(before))

	parms := surface.Parms{
		SubdivisionFactor: float32(*factor),
		MinAspect:         float32(*minAspect),
		Check:             *check,
	}
	if *verbose {
		parms.Logger = logger
	}
	result, err := surface.RefineMesh(vertices, triangles, parms)
	if err != nil {
		return err
	}
	after, err := surface.MeasureQuality(result.Vertices, result.Triangles)
	if err != nil {
		return err
	}
	logger.Printf("output: %s", qualityString(after))
	st := result.Stats
	logger.Printf("%d splits, %d swaps, %d rearranged", st.Splits, st.Swaps, st.Rearranged)

	out, err := os.Create(fs.Arg(1))
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err = render.WriteSTL(out, result.Vertices, result.Triangles); err != nil {
		return err
	}
	if *pngPath != "" {
		if err = render.Snapshot(*pngPath, result.Vertices, result.Triangles, 768, 432); err != nil {
			return err
		}
	}
	if *plotPath != "" {
		if err = render.PlotWireframe(*plotPath, result.Vertices, result.Triangles); err != nil {
			return err
		}
	}
	return out.Close()
}

func qualityString(q surface.Quality) string {
	return fmt.Sprintf("%d triangles, %d boundary vertices, aspect min %.3f mean %.3f",
		q.Triangles, q.BoundaryVertices, q.MinAspect, q.MeanAspect)
}
