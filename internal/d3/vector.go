package d3

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Single precision vector routines used by the mesh code.
// Vertices are stored as ms3.Vec so working precision is float32.

// Distance2 returns the squared distance between u and v.
func Distance2(u, v ms3.Vec) float32 {
	x, y, z := u.X-v.X, u.Y-v.Y, u.Z-v.Z
	return x*x + y*y + z*z
}

// InnerProduct returns u·v.
func InnerProduct(u, v ms3.Vec) float32 {
	return u.X*v.X + u.Y*v.Y + u.Z*v.Z
}

// CrossProduct returns u×v.
func CrossProduct(u, v ms3.Vec) ms3.Vec {
	return ms3.Cross(u, v)
}

// Length returns the Euclidean norm of v. The sum of squares is
// accumulated in float64 and the result cast back to float32.
func Length(v ms3.Vec) float32 {
	return float32(r3.Norm(R3(v)))
}

// Midpoint returns the component-wise average of u and v.
func Midpoint(u, v ms3.Vec) ms3.Vec {
	return ms3.Vec{
		X: .5 * (u.X + v.X),
		Y: .5 * (u.Y + v.Y),
		Z: .5 * (u.Z + v.Z),
	}
}

// R3 widens v to a float64 vector.
func R3(v ms3.Vec) r3.Vec {
	return r3.Vec{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

// EqualWithin reports whether all components of a and b differ by at most tol.
func EqualWithin(a, b ms3.Vec, tol float32) bool {
	return math32.Abs(a.X-b.X) <= tol &&
		math32.Abs(a.Y-b.Y) <= tol &&
		math32.Abs(a.Z-b.Z) <= tol
}

// IsFinite returns false if any component of v is NaN or infinite.
func IsFinite(v ms3.Vec) bool {
	return !(math32.IsNaN(v.X) || math32.IsInf(v.X, 0) ||
		math32.IsNaN(v.Y) || math32.IsInf(v.Y, 0) ||
		math32.IsNaN(v.Z) || math32.IsInf(v.Z, 0))
}
