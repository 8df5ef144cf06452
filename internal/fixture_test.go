package internal

import (
	"embed"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"gopkg.in/yaml.v3"
)

// Fixtures are SVG files in testdata/, loaded by name without the extension.
// This is not a real SVG reader: it takes every <polygon> in document order,
// the first one being the outer ring and the rest holes. If anything goes
// wrong, it dies.

//go:embed testdata
var fixtures embed.FS

type testPolygon struct {
	data  []float64
	holes []int
}

func (p testPolygon) vertices() int {
	return len(p.data) / 2
}

// Vertex ranges of each ring, outer first.
func (p testPolygon) rings() [][2]int {
	bounds := append([]int{0}, p.holes...)
	bounds = append(bounds, p.vertices())
	rings := make([][2]int, 0, len(bounds)-1)
	for i := 0; i < len(bounds)-1; i++ {
		rings = append(rings, [2]int{bounds[i], bounds[i+1]})
	}
	return rings
}

func (p testPolygon) addRing(points [][2]float64) testPolygon {
	if len(p.data) > 0 {
		p.holes = append(p.holes, p.vertices())
	}
	for _, point := range points {
		p.data = append(p.data, point[0], point[1])
	}
	return p
}

func loadFixture(name string) testPolygon {
	fixture, err := fixtures.Open("testdata/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}
	defer fixture.Close()

	rootEl, err := svgparser.Parse(fixture, true)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}

	polygonEls := rootEl.FindAll("polygon")
	if len(polygonEls) == 0 {
		log.Fatalf("No polygons found in fixture %q", name)
	}

	var result testPolygon
	for _, polygonEl := range polygonEls {
		var points [][2]float64
		for _, pointString := range strings.Fields(polygonEl.Attributes["points"]) {
			coords := strings.Split(pointString, ",")
			if len(coords) != 2 {
				log.Fatalf("Invalid point string %q", pointString)
			}
			x, err := strconv.ParseFloat(coords[0], 64)
			if err != nil {
				log.Fatalf("Invalid x value %q: %v", coords[0], err)
			}
			y, err := strconv.ParseFloat(coords[1], 64)
			if err != nil {
				log.Fatalf("Invalid y value %q: %v", coords[1], err)
			}
			points = append(points, [2]float64{x, y})
		}
		result = result.addRing(points)
	}
	return result
}

type fixtureExpectation struct {
	Vertices     int     `yaml:"vertices"`
	Triangles    int     `yaml:"triangles"`
	MaxDeviation float64 `yaml:"max_deviation"`
}

func loadExpectations() map[string]fixtureExpectation {
	raw, err := fixtures.ReadFile("testdata/expected.yaml")
	if err != nil {
		log.Fatalf("Could not load expectations: %v", err)
	}
	var expectations map[string]fixtureExpectation
	if err := yaml.Unmarshal(raw, &expectations); err != nil {
		log.Fatalf("Failed to parse expectations: %v", err)
	}
	return expectations
}

// Some ad hoc code specified fixtures

func starPoints(cx, cy, outerRadius, innerRadius float64, points int) [][2]float64 {
	var result [][2]float64
	for i := 0; i < 2*points; i++ {
		radius := outerRadius
		if i%2 == 1 {
			radius = innerRadius
		}
		angle := math.Pi * float64(i) / float64(points)
		result = append(result, [2]float64{cx + radius*math.Cos(angle), cy + radius*math.Sin(angle)})
	}
	return result
}

func reversed(points [][2]float64) [][2]float64 {
	result := make([][2]float64, len(points))
	for i, p := range points {
		result[len(points)-1-i] = p
	}
	return result
}

func simpleStar() testPolygon {
	return testPolygon{}.addRing(starPoints(0, 0, 5, 2, 5))
}

func squareWithHole() testPolygon {
	return testPolygon{}.
		addRing([][2]float64{{-5, -5}, {5, -5}, {5, 5}, {-5, 5}}).
		addRing([][2]float64{{-2, -2}, {-2, 2}, {2, 2}, {2, -2}})
}

// The winding of holes doesn't matter, so this one is given the same way as
// the outer ring.
func starOutline() testPolygon {
	return testPolygon{}.
		addRing(starPoints(0, 0, 10, 5, 5)).
		addRing(starPoints(0, 0, 8, 3, 5))
}

func starWithHoles() testPolygon {
	return testPolygon{}.
		addRing(starPoints(0, 0, 10, 7, 5)).
		addRing(reversed(starPoints(1.5, 5, 2, 1, 5))).
		addRing(reversed(starPoints(1.8, -5, 2, 1, 5))).
		addRing(starPoints(-3, 0, 3, 1, 5))
}

// A regular polygon with n vertices, which is convex and has no collinear
// points.
func regularPolygon(n int, radius float64) testPolygon {
	var points [][2]float64
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		points = append(points, [2]float64{radius * math.Cos(angle), radius * math.Sin(angle)})
	}
	return testPolygon{}.addRing(points)
}
