package internal

// This contains no actual tests. It is just a helper for testing triangulation
// validity.

import (
	"math"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to check that a triangulation is valid. The rules are:
// 1. Indices come in triples and refer to vertices of the polygon.
// 2. Every triangle is counterclockwise (y up) and has nonzero area.
// 3. No triangle appears twice.
// 4. The triangles cover the polygon's area, as measured by Deviation.
func assertValidTriangulation(t *testing.T, polygon testPolygon, triangles []int, maxDeviation float64) {
	t.Helper()
	require.Zero(t, len(triangles)%3, "index count is not a multiple of 3")

	n := polygon.vertices()
	seen := map[[3]int]bool{}
	for i := 0; i < len(triangles); i += 3 {
		tri := [3]int{triangles[i], triangles[i+1], triangles[i+2]}
		for _, v := range tri {
			require.True(t, v >= 0 && v < n, "index %d out of range in triangle %v", v, tri)
		}
		require.Greater(t, triangleCross(polygon.data, tri), 0.0, "clockwise or flat triangle %v", tri)

		key := normalizedTriangle(tri)
		require.False(t, seen[key], "triangle %v appears twice", tri)
		seen[key] = true
	}

	deviation := Deviation(polygon.data, polygon.holes, 2, triangles)
	assert.LessOrEqual(t, deviation, maxDeviation, "triangles don't cover the polygon: %s", spew.Sdump(triangles))
}

// Twice the signed area of a triangle, positive when counterclockwise.
func triangleCross(data []float64, tri [3]int) float64 {
	ax, ay := data[2*tri[0]], data[2*tri[0]+1]
	bx, by := data[2*tri[1]], data[2*tri[1]+1]
	cx, cy := data[2*tri[2]], data[2*tri[2]+1]
	return (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
}

// Rotate the triangle so its smallest index is first. Winding is preserved.
func normalizedTriangle(tri [3]int) [3]int {
	for tri[0] > tri[1] || tri[0] > tri[2] {
		tri = [3]int{tri[1], tri[2], tri[0]}
	}
	return tri
}

// Even-odd point in polygon over all of the polygon's rings.
func (p testPolygon) containsPoint(x, y float64) bool {
	inside := false
	for _, ring := range p.rings() {
		start, end := ring[0], ring[1]
		for i, j := start, end-1; i < end; j, i = i, i+1 {
			xi, yi := p.data[2*i], p.data[2*i+1]
			xj, yj := p.data[2*j], p.data[2*j+1]
			if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
				inside = !inside
			}
		}
	}
	return inside
}

func trianglesContainPoint(data []float64, triangles []int, x, y float64) bool {
	for i := 0; i < len(triangles); i += 3 {
		ax, ay := data[2*triangles[i]], data[2*triangles[i]+1]
		bx, by := data[2*triangles[i+1]], data[2*triangles[i+1]+1]
		cx, cy := data[2*triangles[i+2]], data[2*triangles[i+2]+1]
		d1 := (bx-ax)*(y-ay) - (by-ay)*(x-ax)
		d2 := (cx-bx)*(y-by) - (cy-by)*(x-bx)
		d3 := (ax-cx)*(y-cy) - (ay-cy)*(x-cx)
		hasNeg := d1 < 0 || d2 < 0 || d3 < 0
		hasPos := d1 > 0 || d2 > 0 || d3 > 0
		if !(hasNeg && hasPos) {
			return true
		}
	}
	return false
}

// Sample a grid over the polygon's bounding box and check that the triangles
// cover exactly the points the polygon contains.
func validatePolygonBySampling(t *testing.T, polygon testPolygon, triangles []int) {
	t.Helper()
	minX, minY, maxX, maxY := math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)
	for i := 0; i < len(polygon.data); i += 2 {
		minX = math.Min(minX, polygon.data[i])
		minY = math.Min(minY, polygon.data[i+1])
		maxX = math.Max(maxX, polygon.data[i])
		maxY = math.Max(maxY, polygon.data[i+1])
	}

	// Pad the bounding box by 10%
	xPadding := (maxX - minX) * 0.1
	yPadding := (maxY - minY) * 0.1
	minX -= xPadding
	minY -= yPadding
	maxX += xPadding
	maxY += yPadding

	step := math.Max(maxX-minX, maxY-minY) / 50
	// Shift the grid off the round numbers the fixtures are made of, so that
	// samples don't land on edges.
	offset := step / math.Pi

	failures := 0
	for y := minY + offset; y <= maxY; y += step {
		for x := minX + offset; x <= maxX; x += step {
			expected := polygon.containsPoint(x, y)
			actual := trianglesContainPoint(polygon.data, triangles, x, y)
			if expected != actual {
				failures++
				assert.Equal(t, expected, actual, "coverage differs at (%v, %v)", x, y)
				if failures > 10 {
					t.FailNow()
				}
			}
		}
	}
}
