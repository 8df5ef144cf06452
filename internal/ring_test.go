package internal

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestTessellator(data []float64, dim int) *tessellator[float64] {
	return &tessellator[float64]{
		data:      data,
		dim:       dim,
		tolerance: DefaultTolerance,
		maxDepth:  DefaultMaxDepth,
		log:       zap.NewNop(),
		nodes:     newNodeSlab[float64](len(data) / dim),
	}
}

// Vertex indices of a ring, starting at start.
func ringIndices[T Float](start *Node[T]) []int {
	var result []int
	p := start
	for {
		result = append(result, p.I)
		p = p.Next
		if p == start {
			return result
		}
	}
}

func assertRingLinks[T Float](t *testing.T, start *Node[T]) {
	t.Helper()
	p := start
	for {
		require.Same(t, p, p.Next.Prev)
		require.Same(t, p, p.Prev.Next)
		p = p.Next
		if p == start {
			return
		}
	}
}

func rotatePoint(x, y, angle float64) (float64, float64) {
	sin, cos := math.Sincos(angle)
	return x*cos - y*sin, x*sin + y*cos
}

func TestSignedArea(t *testing.T) {
	for cwI := 0; cwI < 2; cwI++ {
		cwI := cwI // import into inner scope
		t.Run(fmt.Sprintf("With %s triangles", []string{"CCW", "CW"}[cwI]), func(t *testing.T) {
			data := []float64{0, -1, 1, 0, 0, 1}
			// Clockwise rings have negative area, so sign is -1 for CW = 1
			sign := 1 - 2*float64(cwI)
			if cwI == 1 {
				data = []float64{1, 0, 0, -1, 0, 1}
			}
			assertArea := func(expected float64) {
				// SignedArea is twice the area
				assert.InDelta(t, sign*2*expected, SignedArea(data, 0, len(data), 2), 1e-9)
			}
			assertArea(1)

			// Stretch the triangle out
			for i := 1; i < len(data); i += 2 {
				data[i] *= 2
			}
			assertArea(2)

			// Rotate the triangle repeatedly by a weird angle
			angle := math.Pi / 7
			for i := 0; i < 14; i++ {
				for j := 0; j < len(data); j += 2 {
					data[j], data[j+1] = rotatePoint(data[j], data[j+1], angle)
				}
				assertArea(2)
			}

			// Translate the triangle and do the whole rotation thing again
			for j := 0; j < len(data); j += 2 {
				data[j] += 5
				data[j+1] += 3
			}
			for i := 0; i < 14; i++ {
				for j := 0; j < len(data); j += 2 {
					data[j], data[j+1] = rotatePoint(data[j], data[j+1], angle)
				}
				assertArea(2)
			}
		})
	}
}

func TestSignedArea_Stride(t *testing.T) {
	// The third coordinate must not affect anything
	data := []float64{0, 0, 7, 10, 0, -3, 10, 10, 100, 0, 10, 42}
	assert.Equal(t, 200.0, SignedArea(data, 0, len(data), 3))

	// A sub range is its own closed ring
	data = []float64{9, 9, 0, 0, 10, 0, 10, 10, 0, 10, 9, 9}
	assert.Equal(t, 200.0, SignedArea(data, 2, 10, 2))
}

func TestLinkedList(t *testing.T) {
	ccw := []float64{0, 0, 10, 0, 10, 10, 0, 10}
	cw := []float64{0, 10, 10, 10, 10, 0, 0, 0}

	t.Run("empty range", func(t *testing.T) {
		tess := newTestTessellator(ccw, 2)
		assert.Nil(t, tess.linkedList(0, 0, true))
	})

	t.Run("keeps order when winding matches", func(t *testing.T) {
		tess := newTestTessellator(ccw, 2)
		last := tess.linkedList(0, len(ccw), true)
		assertRingLinks(t, last)
		assert.Equal(t, []int{3, 0, 1, 2}, ringIndices(last))
	})

	t.Run("reverses when winding doesn't match", func(t *testing.T) {
		tess := newTestTessellator(cw, 2)
		last := tess.linkedList(0, len(cw), true)
		assertRingLinks(t, last)
		assert.Equal(t, []int{0, 3, 2, 1}, ringIndices(last))
	})

	t.Run("holes wind the other way", func(t *testing.T) {
		tess := newTestTessellator(ccw, 2)
		last := tess.linkedList(0, len(ccw), false)
		assert.Equal(t, []int{0, 3, 2, 1}, ringIndices(last))
	})

	t.Run("drops closing point", func(t *testing.T) {
		closed := append(append([]float64{}, ccw...), 0, 0)
		tess := newTestTessellator(closed, 2)
		last := tess.linkedList(0, len(closed), true)
		assertRingLinks(t, last)
		assert.Equal(t, 4, ringLen(last))
	})

	t.Run("single point", func(t *testing.T) {
		tess := newTestTessellator([]float64{1, 2}, 2)
		last := tess.linkedList(0, 2, true)
		require.NotNil(t, last)
		assert.Same(t, last, last.Next)
		assert.Same(t, last, last.Prev)
	})
}

func TestRemoveNode(t *testing.T) {
	tess := newTestTessellator([]float64{0, 0, 10, 0, 10, 10, 0, 10}, 2)
	last := tess.linkedList(0, 8, true)
	tess.invSize = 0.1
	tess.indexCurve(last)

	victim := last.Next
	removeNode(victim)
	assertRingLinks(t, last)
	assert.Equal(t, 3, ringLen(last))

	// The z-order list doesn't contain it anymore either
	p := last
	for p.PrevZ != nil {
		p = p.PrevZ
	}
	for ; p != nil; p = p.NextZ {
		assert.NotSame(t, victim, p)
	}
}

func TestSplitPolygon(t *testing.T) {
	data := []float64{0, 0, 10, 0, 10, 10, 0, 10, -5, 5}
	tess := newTestTessellator(data, 2)
	last := tess.linkedList(0, len(data), true)
	require.Equal(t, 5, ringLen(last))

	var a, b *Node[float64]
	for p := last; a == nil || b == nil; p = p.Next {
		switch p.I {
		case 0:
			a = p
		case 2:
			b = p
		}
	}

	c := tess.splitPolygon(a, b)
	assertRingLinks(t, a)
	assertRingLinks(t, c)

	// Both rings carry a copy of each endpoint
	assert.ElementsMatch(t, []int{0, 2, 3, 4}, ringIndices(a))
	assert.ElementsMatch(t, []int{2, 0, 1}, ringIndices(c))
	assert.Equal(t, 2, c.I)
	assert.NotSame(t, b, c)
}

func TestNodeSlab(t *testing.T) {
	slab := newNodeSlab[float64](2)
	nodes := map[*Node[float64]]bool{}
	for i := 0; i < 3*minNodeChunk; i++ {
		n := slab.alloc(i, float64(i), 0)
		assert.Equal(t, i, n.I)
		assert.Equal(t, zUnset, n.Z)
		nodes[n] = true
	}
	assert.Len(t, nodes, 3*minNodeChunk)
}

func TestNodeString(t *testing.T) {
	n := &Node[float64]{I: 4, X: 1.5, Y: 2}
	assert.Equal(t, "#4(1.5, 2)", n.String())
}

func TestNodeField(t *testing.T) {
	tess := newTestTessellator(nil, 2)
	n := &Node[float64]{I: 4, X: 1.5, Y: 2}

	named := namedNode[float64]{names: &tess.names, node: n}
	assert.Regexp(t, `^\w+#4\(1\.5, 2\)$`, named.String())
	assert.Equal(t, named.String(), named.String())
	assert.Equal(t, "Ø", namedNode[float64]{names: &tess.names}.String())

	// Nothing is named until the field is written
	tess.nodeField("node", &Node[float64]{I: 5})
	assert.Equal(t, 1, tess.names.Len())
}
