package render

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/benmwebb/ChimeraX/internal/d3"
	"github.com/benmwebb/ChimeraX/surface"
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

const stlTriangleSize = 50

// WriteSTL writes the used triangles of an indexed mesh to w in binary STL
// format and returns the number of triangles written.
func WriteSTL(w io.Writer, vertices []ms3.Vec, triangles []surface.Triangle) (int, error) {
	nt := 0
	for _, tri := range triangles {
		if !tri.Unused() {
			nt++
		}
	}
	if nt == 0 {
		return 0, errors.New("empty triangle slice")
	}
	bw := bufio.NewWriter(w)
	header := stlHeader{
		Count: uint32(nt),
	}
	if err := binary.Write(bw, binary.LittleEndian, &header); err != nil {
		return 0, err
	}
	var (
		b [stlTriangleSize]byte
		d stlTriangle
	)
	for i, tri := range triangles {
		if tri.Unused() {
			continue
		}
		for _, vi := range tri {
			if vi < 0 || vi >= len(vertices) {
				return 0, fmt.Errorf("triangle %d references vertex %d out of %d", i, vi, len(vertices))
			}
		}
		v0, v1, v2 := vertices[tri[0]], vertices[tri[1]], vertices[tri[2]]
		n := d3.TriangleNormal(v0, v1, v2)
		if d3.Length(n) != 0 {
			n = ms3.Unit(n)
		}
		d.Normal = vecTo3F32(n)
		d.Vertex1 = vecTo3F32(v0)
		d.Vertex2 = vecTo3F32(v1)
		d.Vertex3 = vecTo3F32(v2)
		d.put(b[:])
		if _, err := bw.Write(b[:]); err != nil {
			return 0, err
		}
	}
	return nt, bw.Flush()
}

// ReadSTL reads a binary STL stream and returns it as an indexed mesh.
// Corners closer than weldTol are merged into a single vertex. A zero
// weldTol selects 1/256 of the shortest edge in the file. Triangles that
// collapse after welding are dropped.
func ReadSTL(r io.Reader, weldTol float32) ([]ms3.Vec, []surface.Triangle, error) {
	if weldTol < 0 || math32.IsNaN(weldTol) {
		return nil, nil, fmt.Errorf("invalid weld tolerance %g", weldTol)
	}
	soup, err := readBinarySTL(bufio.NewReader(r))
	if err != nil {
		return nil, nil, err
	}
	if weldTol == 0 {
		minDist2 := math32.Inf(1)
		for _, d := range soup {
			minDist2 = math32.Min(minDist2, d3.Distance2(vecFrom3F32(d.Vertex1), vecFrom3F32(d.Vertex2)))
			minDist2 = math32.Min(minDist2, d3.Distance2(vecFrom3F32(d.Vertex2), vecFrom3F32(d.Vertex3)))
			minDist2 = math32.Min(minDist2, d3.Distance2(vecFrom3F32(d.Vertex3), vecFrom3F32(d.Vertex1)))
		}
		weldTol = math32.Sqrt(minDist2) / 256
	}
	corners := make([]ms3.Vec, 0, 3*len(soup))
	for _, d := range soup {
		corners = append(corners, vecFrom3F32(d.Vertex1), vecFrom3F32(d.Vertex2), vecFrom3F32(d.Vertex3))
	}
	vertices, index := weld(corners, weldTol)
	triangles := make([]surface.Triangle, 0, len(soup))
	for i := 0; i < len(index); i += 3 {
		tri := surface.Triangle{index[i], index[i+1], index[i+2]}
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[2] == tri[0] {
			continue
		}
		triangles = append(triangles, tri)
	}
	return vertices, triangles, nil
}

// stlHeader defines the STL file header.
type stlHeader struct {
	_     [80]uint8 // Header
	Count uint32    // Number of triangles
}

func readBinarySTL(r io.Reader) (output []stlTriangle, readErr error) {
	var header stlHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, errors.New("encountered EOF while reading STL header")
		}
		return nil, errors.New("STL header read failed: " + err.Error())
	}
	if header.Count == 0 {
		return nil, errors.New("STL header indicates 0 triangles present")
	}
	var (
		buf [stlTriangleSize]byte
		d   stlTriangle
		i   int
	)
	defer func() {
		if readErr != nil {
			readErr = fmt.Errorf("%d/%d STL triangles read: %w", i+1, header.Count, readErr)
		}
	}()
	for i = 0; i < int(header.Count); i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, err
		}
		d.get(buf[:])
		if err := d.validate(); err != nil {
			return nil, err
		}
		output = append(output, d)
	}
	return output, nil
}

// stlTriangle defines the triangle data within an STL file.
type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
	_       uint16 // Attribute byte count
}

func (t stlTriangle) put(b []byte) {
	if len(b) < stlTriangleSize {
		panic("need length 50 to marshal stlTriangle")
	}
	put3F32(b, t.Normal)
	put3F32(b[12:], t.Vertex1)
	put3F32(b[24:], t.Vertex2)
	put3F32(b[36:], t.Vertex3)
	binary.LittleEndian.PutUint16(b[48:], 0)
}

func (t *stlTriangle) get(b []byte) {
	if len(b) < stlTriangleSize {
		panic("need length 50 to unmarshal stlTriangle")
	}
	get3F32(b, &t.Normal)
	get3F32(b[12:], &t.Vertex1)
	get3F32(b[24:], &t.Vertex2)
	get3F32(b[36:], &t.Vertex3)
	// no attributes supported.
}

// validate rejects non-finite data. The stored normal is not compared
// against the winding since only the corner order is used.
func (t stlTriangle) validate() error {
	if bad3F32(t.Normal) {
		return errors.New("inf/NaN STL triangle normal")
	}
	if bad3F32(t.Vertex1) || bad3F32(t.Vertex2) || bad3F32(t.Vertex3) {
		return errors.New("inf/NaN STL triangle vertex")
	}
	return nil
}

func put3F32(b []byte, f [3]float32) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math.Float32bits(f[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(f[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(f[2]))
}

func get3F32(b []byte, f *[3]float32) {
	_ = b[11] // early bounds check
	f[0] = math.Float32frombits(binary.LittleEndian.Uint32(b))
	f[1] = math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
	f[2] = math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
}

func bad3F32(f [3]float32) bool {
	return !d3.IsFinite(vecFrom3F32(f))
}

func vecTo3F32(v ms3.Vec) [3]float32 { return [3]float32{v.X, v.Y, v.Z} }

func vecFrom3F32(f [3]float32) ms3.Vec { return ms3.Vec{X: f[0], Y: f[1], Z: f[2]} }
