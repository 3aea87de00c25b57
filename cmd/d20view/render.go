package main

import (
	"image"
	"image/color"
	"math"
	"sort"

	"fortio.org/terminal/ansipixels"
	"github.com/carmendolina/gdev30/icosa"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	ambient   = 0.1
	distance  = 3.0
	shininess = 32
	// radians each die turns about its own axis per frame
	spinStep = 1. / 60

	innerScale = 0.4
	outerScale = 0.9
)

// Diffuse and specular weights with the light off and on. Off still keeps
// a little diffuse so the die reads against a dark background.
var (
	dimLight    = lightLevel{diffuse: 0.15}
	brightLight = lightLevel{diffuse: 0.9, specular: 1}
)

type lightLevel struct{ diffuse, specular float64 }

var litBackground = color.RGBA{26, 13, 38, 255}

type faceInfo struct {
	idx  int
	avgZ float64
}

// Tints for colored mode, one per band of 5 faces (top cap, bottom cap,
// and the two halves of the middle band).
var bandColors = [4]color.NRGBA{
	{200, 50, 50, 255},  // top - red
	{50, 200, 50, 255},  // bottom - green
	{50, 50, 200, 255},  // band - blue
	{200, 200, 50, 255}, // band - yellow
}

var (
	grey    = color.NRGBA{220, 220, 220, 255}
	white   = color.NRGBA{255, 255, 255, 255}
	outline = color.NRGBA{40, 40, 40, 255}
)

// die is one scaled D20. Normals rotate with the positions so shading
// follows the die.
type die struct {
	verts   [icosa.NumVertices]mgl64.Vec3
	normals [icosa.NumVertices]mgl64.Vec3
	spin    mgl64.Quat
}

func newDie(scale float64, axis mgl64.Vec3) *die {
	d := &die{
		normals: icosa.VertexNormals(icosa.SharedDivisor),
		spin:    mgl64.QuatRotate(spinStep, axis.Normalize()),
	}
	for i, v := range icosa.Vertices() {
		d.verts[i] = v.Mul(scale)
	}
	return d
}

func (d *die) transform(f func(mgl64.Vec3) mgl64.Vec3) {
	for i := range d.verts {
		d.verts[i] = f(d.verts[i])
		d.normals[i] = f(d.normals[i])
	}
}

// layer is one die as it will be drawn this frame.
type layer struct {
	d    *die
	wire bool
}

// scene is a small D20 spinning inside a big one the other way round.
// Turning the light on also makes the big one see-through.
type scene struct {
	faces [icosa.NumFaces]icosa.Face
	edges [][2]int
	inner *die
	outer *die

	light   mgl64.Vec3
	lightOn bool
	colored bool
	wire    bool
}

func newScene(colored bool) *scene {
	axis := mgl64.Vec3{1, -1, -1}
	return &scene{
		faces:   icosa.Faces(),
		edges:   icosa.Edges(),
		inner:   newDie(innerScale, axis),
		outer:   newDie(outerScale, axis.Mul(-1)),
		light:   mgl64.Vec3{1, -1, -2},
		colored: colored,
	}
}

func rotation(ax, ay, az float64) mgl64.Mat3 {
	return mgl64.Rotate3DZ(az).Mul3(mgl64.Rotate3DY(ay)).Mul3(mgl64.Rotate3DX(ax))
}

// rotate turns the whole scene, both dies together.
func (s *scene) rotate(ax, ay, az float64) {
	m := rotation(ax, ay, az)
	s.inner.transform(m.Mul3x1)
	s.outer.transform(m.Mul3x1)
}

// step advances each die's own spin by one frame.
func (s *scene) step() {
	s.inner.transform(s.inner.spin.Rotate)
	s.outer.transform(s.outer.spin.Rotate)
}

func (s *scene) toggleLight() bool {
	s.lightOn = !s.lightOn
	return s.lightOn
}

// layers lists what to draw, back to front. With the light off the big die
// is solid and hides the small one entirely.
func (s *scene) layers() []layer {
	if s.wire {
		return []layer{{s.inner, true}, {s.outer, true}}
	}
	if !s.lightOn {
		return []layer{{s.outer, false}}
	}
	return []layer{{s.inner, false}, {s.outer, true}}
}

func (s *scene) background(def color.RGBA) color.RGBA {
	if s.lightOn {
		return litBackground
	}
	return def
}

// intensity of face i of d: Blinn-Phong with the face's averaged vertex
// normal, viewed from the projection's eye point.
func (s *scene) intensity(d *die, i int) float64 {
	lv := dimLight
	if s.lightOn {
		lv = brightLight
	}
	var n, center mgl64.Vec3
	for _, vi := range s.faces[i] {
		n = n.Add(d.normals[vi])
		center = center.Add(d.verts[vi])
	}
	n = n.Normalize()
	center = center.Mul(1. / 3)
	l := s.light.Sub(center).Normalize()
	k := ambient + lv.diffuse*max(0, n.Dot(l))
	if lv.specular > 0 {
		eye := mgl64.Vec3{0, 0, -distance}.Sub(center).Normalize()
		h := l.Add(eye).Normalize()
		k += lv.specular * math.Pow(max(0, n.Dot(h)), shininess)
	}
	return min(1, k)
}

func (s *scene) faceColor(d *die, i int) color.NRGBA {
	base := grey
	if s.colored {
		base = bandColors[i/icosa.FacesPerVertex]
	}
	return shade(base, s.intensity(d, i))
}

func shade(c color.NRGBA, k float64) color.NRGBA {
	return color.NRGBA{
		uint8(float64(c.R) * k),
		uint8(float64(c.G) * k),
		uint8(float64(c.B) * k),
		c.A,
	}
}

func project(v mgl64.Vec3, width, height int, scale float64) (int, int) {
	scale = float64(width) / scale
	x := v[0] / (v[2] + distance) * scale
	y := v[1] / (v[2] + distance) * scale

	xc := int(x) + width/2
	yc := int(y) + height
	return xc, yc
}

func points(d *die, width, height int, scale float64) [][2]int {
	pts := make([][2]int, len(d.verts))
	for j, v := range d.verts {
		pts[j][0], pts[j][1] = project(v, width, height, scale)
	}
	return pts
}

// depthOrder returns the face indices of d farthest first.
func (s *scene) depthOrder(d *die) []int {
	finfos := make([]faceInfo, 0, len(s.faces))
	for i, f := range s.faces {
		sum := 0.0
		for _, vi := range f {
			sum += d.verts[vi][2]
		}
		finfos = append(finfos, faceInfo{i, sum / float64(len(f))})
	}
	sort.Slice(finfos, func(i, j int) bool { return finfos[i].avgZ > finfos[j].avgZ })
	order := make([]int, len(finfos))
	for i, fi := range finfos {
		order[i] = fi.idx
	}
	return order
}

func (s *scene) draw(img *image.NRGBA, width, height int, scale float64) {
	for _, l := range s.layers() {
		pts := points(l.d, width, height, scale)
		if l.wire {
			s.drawWire(img, pts)
			continue
		}
		s.drawFaces(img, l.d, pts)
	}
}

func (s *scene) drawFaces(img *image.NRGBA, d *die, pts [][2]int) {
	for _, i := range s.depthOrder(d) {
		f := s.faces[i]
		poly := make([][2]int, 0, 3)
		for _, vi := range f {
			poly = append(poly, pts[vi])
		}
		fillPolygon(img, poly, s.faceColor(d, i))
	}
}

func (s *scene) drawWire(img *image.NRGBA, pts [][2]int) {
	for _, e := range s.edges {
		x0, y0 := pts[e[0]][0], pts[e[0]][1]
		x1, y1 := pts[e[1]][0], pts[e[1]][1]
		ansipixels.DrawLine(img, float64(x0), float64(y0), float64(x1), float64(y1), white)
	}
}

// fillPolygon fills a convex polygon on an NRGBA image using a scanline
// pass, then outlines it.
func fillPolygon(img *image.NRGBA, poly [][2]int, col color.NRGBA) {
	if len(poly) < 3 {
		return
	}
	minY := poly[0][1]
	maxY := poly[0][1]
	for _, p := range poly {
		minY = min(minY, p[1])
		maxY = max(maxY, p[1])
	}
	if minY > img.Rect.Max.Y-1 || maxY < img.Rect.Min.Y {
		return
	}
	minY = max(minY, img.Rect.Min.Y)
	maxY = min(maxY, img.Rect.Max.Y-1)

	n := len(poly)
	for y := minY; y <= maxY; y++ {
		var xs []float64
		fy := float64(y)
		for i := range n {
			x0 := float64(poly[i][0])
			y0 := float64(poly[i][1])
			x1 := float64(poly[(i+1)%n][0])
			y1 := float64(poly[(i+1)%n][1])
			// lower endpoint in, upper endpoint out, so shared vertices count once
			if (fy >= y0 && fy < y1) || (fy >= y1 && fy < y0) {
				xs = append(xs, x0+(fy-y0)*(x1-x0)/(y1-y0))
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Float64s(xs)
		for i := 0; i < len(xs)-1; i += 2 {
			xStart := max(int(math.Ceil(xs[i])), img.Rect.Min.X)
			xEnd := min(int(math.Floor(xs[i+1])), img.Rect.Max.X-1)
			for x := xStart; x <= xEnd; x++ {
				img.SetNRGBA(x, y, col)
			}
		}
	}
	for i := range poly {
		x0, y0 := poly[i][0], poly[i][1]
		x1, y1 := poly[(i+1)%n][0], poly[(i+1)%n][1]
		ansipixels.DrawLine(img, float64(x0), float64(y0), float64(x1), float64(y1), outline)
	}
}
