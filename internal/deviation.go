package internal

import "math"

// Deviation measures how well triangles cover the polygon described by data
// and holeIndices: the difference between the covered area and the polygon's
// area, relative to the polygon's area. Zero means a perfect triangulation.
// Returns -1 when there is no data at all. Malformed input panics with an
// *InvalidInputError, and indices outside of data with a TessellateError.
//
// Sums are done in float64 whatever T is, so float32 input doesn't lose the
// comparison to rounding in the accumulators.
func Deviation[T Float](data []T, holeIndices []int, dim int, triangles []int) float64 {
	if len(data) == 0 {
		return -1
	}
	validate(len(data), holeIndices, dim)
	if len(triangles)%3 != 0 {
		fatalf("triangle list has %d indices, not a multiple of 3", len(triangles))
	}

	outerLen := len(data)
	if len(holeIndices) > 0 {
		outerLen = holeIndices[0] * dim
	}

	polygonArea := math.Abs(signedArea64(data, 0, outerLen, dim))
	for i, hole := range holeIndices {
		start := hole * dim
		end := len(data)
		if i < len(holeIndices)-1 {
			end = holeIndices[i+1] * dim
		}
		polygonArea -= math.Abs(signedArea64(data, start, end, dim))
	}

	vertices := len(data) / dim
	trianglesArea := 0.0
	for i := 0; i < len(triangles); i += 3 {
		for _, v := range triangles[i : i+3] {
			if v < 0 || v >= vertices {
				fatalf("triangle %d refers to vertex %d, outside of [0, %d)", i/3, v, vertices)
			}
		}
		a := triangles[i] * dim
		b := triangles[i+1] * dim
		c := triangles[i+2] * dim
		trianglesArea += math.Abs(
			(float64(data[a])-float64(data[c]))*(float64(data[b+1])-float64(data[a+1])) -
				(float64(data[a])-float64(data[b]))*(float64(data[c+1])-float64(data[a+1])))
	}

	if polygonArea == 0 && trianglesArea == 0 {
		return 0
	}
	return math.Abs((trianglesArea - polygonArea) / polygonArea)
}

func signedArea64[T Float](data []T, start, end, dim int) float64 {
	var sum float64
	for i, j := start, end-dim; i < end; i += dim {
		sum += (float64(data[j]) - float64(data[i])) * (float64(data[i+1]) + float64(data[j+1]))
		j = i
	}
	return sum
}
