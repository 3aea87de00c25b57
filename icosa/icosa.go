// Package icosa holds the fixed geometry of the D20 (a regular icosahedron)
// and computes its face and averaged vertex normals.
package icosa

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	phi    = (1 + math.Sqrt(5)) / 2
	golden = phi / 2
)

// Face is an ordered triple of vertex indices. The winding sets the sign of
// the face normal.
type Face [3]int

// NumVertices and NumFaces size the tables; each vertex touches
// FacesPerVertex faces.
const (
	NumVertices    = 12
	NumFaces       = 20
	FacesPerVertex = 5
)

var vertices = [NumVertices]mgl64.Vec3{
	// top
	{0, -golden, 0.5},
	{-golden, -0.5, 0},
	{0, -golden, -0.5},
	{golden, -0.5, 0},
	{0.5, 0, golden},
	{-0.5, 0, golden},
	// bottom
	{0, golden, -0.5},
	{0.5, 0, -golden},
	{-0.5, 0, -golden},
	{-golden, 0.5, 0},
	{0, golden, 0.5},
	{golden, 0.5, 0},
}

var faces = [NumFaces]Face{
	// around vertex 0
	{0, 1, 2},
	{0, 2, 3},
	{0, 3, 4},
	{0, 4, 5},
	{0, 5, 1},
	// around vertex 6
	{6, 7, 8},
	{6, 8, 9},
	{6, 9, 10},
	{6, 10, 11},
	{6, 11, 7},
	// middle band
	{1, 8, 2},
	{2, 8, 7},
	{2, 7, 3},
	{3, 7, 11},
	{3, 11, 4},
	{4, 11, 10},
	{4, 10, 5},
	{5, 10, 9},
	{5, 9, 1},
	{1, 9, 8},
}

// Phi returns the golden ratio.
func Phi() float64 { return phi }

// Golden returns the coordinate scale φ/2.
func Golden() float64 { return golden }

// Vertices returns a copy of the vertex table.
func Vertices() [NumVertices]mgl64.Vec3 { return vertices }

// Faces returns a copy of the face table.
func Faces() [NumFaces]Face { return faces }

// Centroid of the vertex set. The table is centered so this is the origin.
func Centroid() mgl64.Vec3 {
	var c mgl64.Vec3
	for _, v := range vertices {
		c = c.Add(v)
	}
	return c.Mul(1. / NumVertices)
}

// FaceNormal is cross(a-b, b-c) for face (a,b,c). Not normalized.
func FaceNormal(f Face) mgl64.Vec3 {
	a, b, c := vertices[f[0]], vertices[f[1]], vertices[f[2]]
	return a.Sub(b).Cross(b.Sub(c))
}

// FaceNormals returns the unnormalized normal of every face, in face table
// order.
func FaceNormals() [NumFaces]mgl64.Vec3 {
	var ns [NumFaces]mgl64.Vec3
	for i, f := range faces {
		ns[i] = FaceNormal(f)
	}
	return ns
}

// Incidence maps each vertex to the faces containing it, in ascending face
// order. It is found by scanning the face table, so it can't drift from it.
func Incidence() [NumVertices][FacesPerVertex]int {
	var inc [NumVertices][FacesPerVertex]int
	var counts [NumVertices]int
	for fi, f := range faces {
		for _, vi := range f {
			if counts[vi] == FacesPerVertex {
				panic("icosa: vertex in more than 5 faces")
			}
			inc[vi][counts[vi]] = fi
			counts[vi]++
		}
	}
	return inc
}

// Edges returns the 30 undirected edges as (low, high) index pairs, in the
// order they are first met walking the face table.
func Edges() [][2]int {
	seen := make(map[[2]int]bool)
	edges := make([][2]int, 0, 30)
	for _, f := range faces {
		for i := range f {
			a, b := f[i], f[(i+1)%3]
			if a > b {
				a, b = b, a
			}
			e := [2]int{a, b}
			if !seen[e] {
				seen[e] = true
				edges = append(edges, e)
			}
		}
	}
	return edges
}
