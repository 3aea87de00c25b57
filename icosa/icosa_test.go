package icosa

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const eps = 1e-9

func near(a, b mgl64.Vec3, tol float64) bool {
	return a.Sub(b).Len() <= tol
}

func TestGolden(t *testing.T) {
	if math.Abs(Phi()-1.6180339887498949) > 1e-15 {
		t.Errorf("expected phi 1.6180339887498949, got %v", Phi())
	}
	if math.Abs(Golden()-0.8090169943749475) > 1e-15 {
		t.Errorf("expected golden 0.8090169943749475, got %v", Golden())
	}
}

func TestFirstFaceNormal(t *testing.T) {
	v := Vertices()
	if !near(v[0], mgl64.Vec3{0, -0.8090169944, 0.5}, 1e-10) {
		t.Errorf("vertex 0: got %v", v[0])
	}
	if !near(v[1], mgl64.Vec3{-0.8090169944, -0.5, 0}, 1e-10) {
		t.Errorf("vertex 1: got %v", v[1])
	}
	if !near(v[2], mgl64.Vec3{0, -0.8090169944, -0.5}, 1e-10) {
		t.Errorf("vertex 2: got %v", v[2])
	}

	n := FaceNormals()[0]
	expected := mgl64.Vec3{-0.3090169943749474, -0.8090169943749475, 0}
	if !near(n, expected, 1e-12) {
		t.Errorf("face 0 normal: expected %v, got %v", expected, n)
	}
}

func TestFaceNormalsPointOutward(t *testing.T) {
	c := Centroid()
	if c.Len() > 1e-15 {
		t.Fatalf("expected centered vertices, centroid %v", c)
	}
	v := Vertices()
	for i, n := range FaceNormals() {
		for _, vi := range faces[i] {
			if d := n.Dot(v[vi].Sub(c)); d <= 0 {
				t.Errorf("face %d %v: normal %v points inward at vertex %d (dot %v)", i, faces[i], n, vi, d)
			}
		}
	}
}

func TestReversedWindingFlipsNormal(t *testing.T) {
	f := faces[7]
	n := FaceNormal(f)
	r := FaceNormal(Face{f[2], f[1], f[0]})
	if !near(n.Add(r), mgl64.Vec3{}, 1e-12) {
		t.Errorf("expected %v and %v to cancel", n, r)
	}
}

func TestEdgeLengths(t *testing.T) {
	edges := Edges()
	if len(edges) != 30 {
		t.Fatalf("expected 30 edges, got %d", len(edges))
	}
	v := Vertices()
	for _, e := range edges {
		if l := v[e[0]].Sub(v[e[1]]).Len(); math.Abs(l-1) > eps {
			t.Errorf("edge %v: expected length 1, got %v", e, l)
		}
	}
}

var literalIncidence = [NumVertices][FacesPerVertex]int{
	{0, 1, 2, 3, 4},
	{0, 4, 10, 18, 19},
	{0, 1, 10, 11, 12},
	{1, 2, 12, 13, 14},
	{2, 3, 14, 15, 16},
	{3, 4, 16, 17, 18},
	{5, 6, 7, 8, 9},
	{5, 9, 11, 12, 13},
	{5, 6, 10, 11, 19},
	{6, 7, 17, 18, 19},
	{7, 8, 15, 16, 17},
	{8, 9, 13, 14, 15},
}

func TestIncidence(t *testing.T) {
	inc := Incidence()
	if inc != literalIncidence {
		t.Fatalf("incidence mismatch:\nexpected %v\ngot      %v", literalIncidence, inc)
	}
	var perFace [NumFaces]map[int]bool
	for vi, fs := range inc {
		seen := make(map[int]bool)
		for _, fi := range fs {
			if seen[fi] {
				t.Errorf("vertex %d lists face %d twice", vi, fi)
			}
			seen[fi] = true
			if perFace[fi] == nil {
				perFace[fi] = make(map[int]bool)
			}
			perFace[fi][vi] = true
		}
	}
	for fi, vs := range perFace {
		if len(vs) != 3 {
			t.Errorf("face %d: expected 3 incident vertices, got %d", fi, len(vs))
		}
	}
}

func TestVertexNormalsUnit(t *testing.T) {
	if d := Divisor(); d == 0 {
		t.Fatal("zero divisor")
	}
	for _, mode := range []Normalization{SharedDivisor, PerVertex} {
		for i, n := range VertexNormals(mode) {
			if l := n.Len(); math.Abs(l-1) > eps {
				t.Errorf("%v: vertex %d normal %v has length %v", mode, i, n, l)
			}
		}
	}
}

func TestSharedDivisorMatchesPerVertex(t *testing.T) {
	shared := VertexNormals(SharedDivisor)
	own := VertexNormals(PerVertex)
	for i := range shared {
		if !near(shared[i], own[i], 1e-12) {
			t.Errorf("vertex %d: shared %v, per-vertex %v", i, shared[i], own[i])
		}
	}
	sums := Sums()
	for i, s := range sums {
		if math.Abs(s.Len()-sums[0].Len()) > 1e-12 {
			t.Errorf("vertex %d sum length %v differs from vertex 0's %v", i, s.Len(), sums[0].Len())
		}
	}
}

func TestVertexNormalsAlongPosition(t *testing.T) {
	v := Vertices()
	for i, n := range VertexNormals(SharedDivisor) {
		want := v[i].Normalize()
		if !near(n, want, 1e-12) {
			t.Errorf("vertex %d: expected %v, got %v", i, want, n)
		}
	}
	n0 := VertexNormals(SharedDivisor)[0]
	if !near(n0, mgl64.Vec3{0, -0.85065080835204, 0.5257311121191336}, 1e-12) {
		t.Errorf("vertex 0 normal: got %v", n0)
	}
}

func TestVertexNormalsDeterministic(t *testing.T) {
	if VertexNormals(SharedDivisor) != VertexNormals(SharedDivisor) {
		t.Error("two runs produced different normals")
	}
}

func TestTablesAreCopies(t *testing.T) {
	v := Vertices()
	v[0] = mgl64.Vec3{9, 9, 9}
	f := Faces()
	f[0] = Face{11, 11, 11}
	if Vertices()[0] == v[0] || Faces()[0] == f[0] {
		t.Error("package tables were mutated through a returned copy")
	}
}

func TestFormat(t *testing.T) {
	got := Format(mgl64.Vec3{0, -0.5, 0.25})
	if got != "(0, -0.5, 0.25)" {
		t.Errorf("expected (0, -0.5, 0.25), got %s", got)
	}
	if s := PerVertex.String(); s != "per-vertex" {
		t.Errorf("expected per-vertex, got %s", s)
	}
}
