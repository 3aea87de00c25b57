package icosa

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Normalization picks the divisor applied to each vertex's summed normal.
type Normalization int

const (
	// SharedDivisor divides every vertex sum by the length of vertex 0's sum.
	// This matches the reference output; on the regular icosahedron all sums
	// have the same length so it is also a unit normal.
	SharedDivisor Normalization = iota
	// PerVertex divides each sum by its own length.
	PerVertex
)

func (n Normalization) String() string {
	switch n {
	case SharedDivisor:
		return "shared"
	case PerVertex:
		return "per-vertex"
	default:
		return fmt.Sprintf("Normalization(%d)", int(n))
	}
}

// Sums returns, for each vertex, the sum of its 5 incident face normals.
func Sums() [NumVertices]mgl64.Vec3 {
	fn := FaceNormals()
	var sums [NumVertices]mgl64.Vec3
	for vi, inc := range Incidence() {
		for _, fi := range inc {
			sums[vi] = sums[vi].Add(fn[fi])
		}
	}
	return sums
}

// Divisor is the length vertex sums are divided by under SharedDivisor.
func Divisor() float64 {
	s := Sums()
	return s[0].Len()
}

// VertexNormals returns the averaged normal of every vertex in index order.
func VertexNormals(mode Normalization) [NumVertices]mgl64.Vec3 {
	sums := Sums()
	shared := sums[0].Len()
	var ns [NumVertices]mgl64.Vec3
	for i, s := range sums {
		d := shared
		if mode == PerVertex {
			d = s.Len()
		}
		ns[i] = mgl64.Vec3{s[0] / d, s[1] / d, s[2] / d}
	}
	return ns
}

// Format renders v as "(x, y, z)" with enough digits to round trip.
func Format(v mgl64.Vec3) string {
	return fmt.Sprintf("(%.16g, %.16g, %.16g)", v[0], v[1], v[2])
}
