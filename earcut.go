// Package earcut triangulates polygons by ear clipping.
//
// A polygon is given as a flat slice of coordinates, dim values per vertex,
// with the outer ring first and each hole after it. Holes are located by the
// vertex index they start at. The result is a flat slice of vertex indices,
// three per triangle.
//
// Only the first two coordinates of each vertex are looked at; any others are
// carried along so the output indices can be used with the original data.
// Input with duplicate points, collinear runs and moderate self-intersection
// is expected, and produces a best-effort triangulation rather than an error.
package earcut

import (
	"github.com/osuushi/earcut/internal"
)

type Float = internal.Float

// InvalidInputError is returned when the input doesn't describe a polygon at
// all: a bad dimension, a coordinate count that isn't a multiple of it, or
// hole indices that are out of range or out of order.
type InvalidInputError = internal.InvalidInputError

// Tessellate triangulates a polygon. dim is the number of coordinates per
// vertex, and defaults to 2 when zero. holeIndices holds the vertex index at
// which each hole starts, in ascending order.
//
// Empty data yields an empty result. Errors are only returned for malformed
// input; see InvalidInputError.
func Tessellate[T Float](data []T, holeIndices []int, dim int, opts ...Option) (result []int, err error) {
	if dim == 0 {
		dim = 2
	}
	if len(data) == 0 {
		return []int{}, nil
	}

	cfg := internal.DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	defer func() {
		recoveredErr := internal.HandleTessellatePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	return internal.Tessellate(data, holeIndices, dim, cfg), nil
}

// Deviation reports how far triangles is from covering exactly the polygon:
// |covered area - polygon area| / polygon area. Zero is a perfect fit. It
// returns -1 when data is empty.
//
// The polygon is checked the same way Tessellate checks it. A triangle list
// whose length isn't a multiple of 3, or that refers to a vertex outside of
// data, is an error too.
func Deviation[T Float](data []T, triangles []int, holeIndices []int, dim int) (deviation float64, err error) {
	if dim == 0 {
		dim = 2
	}
	defer func() {
		recoveredErr := internal.HandleTessellatePanicRecover(recover())
		if recoveredErr != nil {
			deviation = 0
			err = recoveredErr
		}
	}()
	return internal.Deviation(data, holeIndices, dim, triangles), nil
}

// Flatten converts a polygon given as rings of vertices, outer ring first, to
// the flat form Tessellate takes. The dimension is taken from the first vertex;
// shorter vertices are padded with zeros and longer ones truncated. Empty rings
// are skipped.
func Flatten[T Float](rings [][][]T) (data []T, holeIndices []int, dim int) {
	for _, ring := range rings {
		if len(ring) > 0 {
			dim = len(ring[0])
			break
		}
	}

	holeIndices = []int{}
	vertices := 0
	for _, ring := range rings {
		if len(ring) == 0 {
			continue
		}
		if vertices > 0 {
			holeIndices = append(holeIndices, vertices)
		}
		for _, vertex := range ring {
			for d := 0; d < dim; d++ {
				if d < len(vertex) {
					data = append(data, vertex[d])
				} else {
					data = append(data, 0)
				}
			}
			vertices++
		}
	}
	return data, holeIndices, dim
}
