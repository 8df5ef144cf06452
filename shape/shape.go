// Package shape holds a polygon in the flat form the tessellator works on,
// along with readers for the file formats the earcut command accepts.
package shape

import (
	"math"

	"github.com/osuushi/earcut"
	"github.com/osuushi/earcut/geo"
	"github.com/twpayne/go-geom"
)

type Point struct {
	X float64
	Y float64
}

type Triangle struct {
	A, B, C Point
}

// Shape is a polygon with holes. Data holds Dim coordinates per vertex, the
// outer ring first. Holes holds the vertex index each hole starts at.
type Shape struct {
	Data  []float64 `yaml:"data"`
	Holes []int     `yaml:"holes"`
	Dim   int       `yaml:"dim"`
}

// FromRings builds a shape from rings of vertices, outer ring first.
func FromRings(rings [][][]float64) Shape {
	data, holes, dim := earcut.Flatten(rings)
	return Shape{Data: data, Holes: holes, Dim: dim}
}

// FromPolygon builds a shape from a go-geom polygon. The coordinates are
// shared, not copied.
func FromPolygon(p *geom.Polygon) Shape {
	data, holes, dim := geo.Flatten(p)
	return Shape{Data: data, Holes: holes, Dim: dim}
}

func (s Shape) dim() int {
	if s.Dim == 0 {
		return 2
	}
	return s.Dim
}

func (s Shape) Vertices() int {
	return len(s.Data) / s.dim()
}

func (s Shape) NumRings() int {
	if len(s.Data) == 0 {
		return 0
	}
	return len(s.Holes) + 1
}

// Ring returns the range of vertex indices of ring i, where ring 0 is the
// outer ring.
func (s Shape) Ring(i int) (start, end int) {
	if i > 0 {
		start = s.Holes[i-1]
	}
	end = s.Vertices()
	if i < len(s.Holes) {
		end = s.Holes[i]
	}
	return start, end
}

// Point returns vertex i, projected onto the plane.
func (s Shape) Point(i int) Point {
	offset := i * s.dim()
	return Point{s.Data[offset], s.Data[offset+1]}
}

// Points returns the vertices of ring i.
func (s Shape) Points(ring int) []Point {
	start, end := s.Ring(ring)
	points := make([]Point, 0, end-start)
	for i := start; i < end; i++ {
		points = append(points, s.Point(i))
	}
	return points
}

// Bounds returns the corners of the bounding box of all vertices. An empty
// shape has an inverted, infinite box.
func (s Shape) Bounds() (min, max Point) {
	min = Point{math.Inf(1), math.Inf(1)}
	max = Point{math.Inf(-1), math.Inf(-1)}
	for i := 0; i < s.Vertices(); i++ {
		p := s.Point(i)
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// ContainsPoint tells whether p is inside the shape by the even-odd rule,
// counting every ring.
func (s Shape) ContainsPoint(p Point) bool {
	return s.CrossingCount(p)%2 == 1
}

// Crossing count helper for even odd rule: the number of ring edges crossed
// by a ray going right from p.
func (s Shape) CrossingCount(p Point) int {
	crossingCount := 0
	for ring := 0; ring < s.NumRings(); ring++ {
		points := s.Points(ring)
		for i, vertex := range points {
			next := points[(i+1)%len(points)]
			if (vertex.Y > p.Y) != (next.Y > p.Y) &&
				p.X < (next.X-vertex.X)*(p.Y-vertex.Y)/(next.Y-vertex.Y)+vertex.X {
				crossingCount++
			}
		}
	}
	return crossingCount
}

// Tessellate triangulates the shape.
func (s Shape) Tessellate(opts ...earcut.Option) ([]int, error) {
	return earcut.Tessellate(s.Data, s.Holes, s.Dim, opts...)
}

// Deviation measures how well triangles cover the shape. See
// earcut.Deviation.
func (s Shape) Deviation(triangles []int) (float64, error) {
	return earcut.Deviation(s.Data, triangles, s.Holes, s.Dim)
}

// Triangles resolves a list of index triples to their points.
func (s Shape) Triangles(indices []int) []Triangle {
	triangles := make([]Triangle, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		triangles = append(triangles, Triangle{
			A: s.Point(indices[i]),
			B: s.Point(indices[i+1]),
			C: s.Point(indices[i+2]),
		})
	}
	return triangles
}

// Signed area of the triangle, positive when counterclockwise with y up.
func (t Triangle) SignedArea() float64 {
	return ((t.B.X-t.A.X)*(t.C.Y-t.A.Y) - (t.B.Y-t.A.Y)*(t.C.X-t.A.X)) / 2
}
