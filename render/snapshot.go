package render

import (
	"errors"

	"github.com/benmwebb/ChimeraX/internal/d3"
	"github.com/benmwebb/ChimeraX/surface"
	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/soypat/glgl/math/ms3"
)

// Snapshot renders the mesh seen from the side its triangles face and
// saves the image as a PNG file.
func Snapshot(path string, vertices []ms3.Vec, triangles []surface.Triangle, width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.New("snapshot dimensions must be positive")
	}
	if err := surface.Validate(vertices, triangles); err != nil {
		return err
	}
	var (
		faces  []*fauxgl.Triangle
		normal ms3.Vec
	)
	for _, tri := range triangles {
		if tri.Unused() {
			continue
		}
		v0, v1, v2 := vertices[tri[0]], vertices[tri[1]], vertices[tri[2]]
		normal = ms3.Add(normal, d3.TriangleNormal(v0, v1, v2))
		faces = append(faces, fauxgl.NewTriangleForPoints(fauxVec(v0), fauxVec(v1), fauxVec(v2)))
	}
	if len(faces) == 0 {
		return errors.New("no triangles to render")
	}
	if d3.Length(normal) == 0 {
		normal = ms3.Vec{Z: 1}
	}
	normal = ms3.Unit(normal)
	upv, _ := d3.PlaneBasis(normal)
	const (
		scale = 2  // supersampling
		fovy  = 30 // vertical field of view in degrees
		near  = 1
		far   = 10
	)
	var (
		eye    = fauxVec(ms3.Scale(4, normal))
		center = fauxgl.V(0, 0, 0)
		up     = fauxVec(upv)
		light  = eye.Normalize()
		color  = fauxgl.HexColor("#468966")
	)
	mesh := fauxgl.NewTriangleMesh(faces)
	// fit mesh in a bi-unit cube centered at the origin
	mesh.BiUnitCube()
	context := fauxgl.NewContext(width*scale, height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(width) / float64(height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, near, far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = color
	context.Shader = shader
	context.DrawMesh(mesh)
	// downsample image for antialiasing
	image := context.Image()
	image = resize.Resize(uint(width), uint(height), image, resize.Bilinear)
	return fauxgl.SavePNG(path, image)
}

func fauxVec(v ms3.Vec) fauxgl.Vector {
	return fauxgl.V(float64(v.X), float64(v.Y), float64(v.Z))
}
