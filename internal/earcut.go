package internal

import (
	"github.com/osuushi/earcut/internal/dbg"
	"go.uber.org/zap"
)

// The ear clipping engine. A single call to Tessellate owns a tessellator,
// which holds the source data, the node slab and the output.
type tessellator[T Float] struct {
	data      []T
	dim       int
	tolerance T
	maxDepth  int
	log       *zap.Logger
	// Log names for nodes, dropped along with the nodes after the call
	names dbg.Names

	nodes nodeSlab[T]

	// Z-order index parameters. invSize is zero when the index is disabled.
	minX, minY, invSize T

	triangles []int
}

// Clipping runs in passes. Each pass sweeps the ring cutting ears until a
// full sweep cuts nothing, and then hands over to the next pass, which tries
// something more drastic.
type pass int

const (
	// Plain ear clipping. The z-order index is (re)built on entry.
	passEars pass = iota
	// The ring has been cleaned of degenerate points and is retried.
	passFiltered
	// Small self-intersections have been cut off and the ring is retried.
	passCured
)

func (p pass) String() string {
	switch p {
	case passEars:
		return "ears"
	case passFiltered:
		return "filtered"
	case passCured:
		return "cured"
	}
	return "unknown"
}

// Tessellate triangulates the polygon in data, whose holes start at the given
// vertex indices, and returns vertex index triples. Input that breaks the
// preconditions panics with an *InvalidInputError.
func Tessellate[T Float](data []T, holeIndices []int, dim int, cfg Config) []int {
	validate(len(data), holeIndices, dim)

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	t := &tessellator[T]{
		data:      data,
		dim:       dim,
		tolerance: T(cfg.Tolerance),
		maxDepth:  cfg.MaxDepth,
		log:       logger,
		nodes:     newNodeSlab[T](len(data)/dim + 2*len(holeIndices)),
	}
	return t.run(holeIndices, cfg.IndexThreshold)
}

func (t *tessellator[T]) run(holeIndices []int, indexThreshold int) []int {
	hasHoles := len(holeIndices) > 0
	outerLen := len(t.data)
	if hasHoles {
		outerLen = holeIndices[0] * t.dim
	}

	vertices := len(t.data) / t.dim
	if n := vertices + 2*len(holeIndices) - 2; n > 0 {
		t.triangles = make([]int, 0, 3*n)
	} else {
		t.triangles = []int{}
	}

	outer := t.linkedList(0, outerLen, true)
	if outer == nil || outer.Next == outer.Prev {
		return t.triangles
	}

	if hasHoles {
		outer = t.eliminateHoles(holeIndices, outer)
	}

	// If the shape is not too simple, use the z-order index. Its parameters
	// come from the outer ring's bounding box.
	if indexThreshold >= 0 && len(t.data) > indexThreshold*t.dim {
		t.computeBounds(outerLen)
	}

	t.earcutLinked(outer, passEars, 0)
	return t.triangles
}

// Set up the z-order index from the bounding box of data[:outerLen]
func (t *tessellator[T]) computeBounds(outerLen int) {
	minX, minY := t.data[0], t.data[1]
	maxX, maxY := minX, minY
	for i := t.dim; i < outerLen; i += t.dim {
		x := t.data[i]
		y := t.data[i+1]
		minX = min(minX, x)
		minY = min(minY, y)
		maxX = max(maxX, x)
		maxY = max(maxY, y)
	}

	t.minX = minX
	t.minY = minY
	if size := max(maxX-minX, maxY-minY); size != 0 {
		t.invSize = 1 / size
	}
}

func (t *tessellator[T]) nodeField(key string, n *Node[T]) zap.Field {
	return zap.Stringer(key, namedNode[T]{names: &t.names, node: n})
}

func (t *tessellator[T]) emit(a, b, c *Node[T]) {
	t.triangles = append(t.triangles, a.I, b.I, c.I)
}

// Main ear slicing loop. depth counts the diagonal splits above this ring.
func (t *tessellator[T]) earcutLinked(ear *Node[T], p pass, depth int) {
	if ear == nil {
		return
	}

	hashed := t.invSize != 0
	if p == passEars && hashed {
		t.indexCurve(ear)
	}

	stop := ear

	// Iterate through ears, slicing them one by one
	for ear.Prev != ear.Next {
		prev := ear.Prev
		next := ear.Next

		var isEar bool
		if hashed {
			isEar = t.isEarHashed(ear)
		} else {
			isEar = isEarPlain(ear)
		}

		if isEar {
			t.emit(prev, ear, next)
			removeNode(ear)

			// Skipping the next vertex leads to fewer sliver triangles
			ear = next.Next
			stop = next.Next
			continue
		}

		ear = next

		// A full sweep without finding an ear. Escalate.
		if ear == stop {
			if ce := t.log.Check(zap.DebugLevel, "no ear found in sweep"); ce != nil {
				ce.Write(
					zap.Stringer("pass", p),
					zap.Int("depth", depth),
					zap.Int("nodes", ringLen(ear)),
					t.nodeField("node", ear),
				)
			}

			switch p {
			case passEars:
				// Try filtering points and slicing again
				t.earcutLinked(t.filterPoints(ear, nil), passFiltered, depth)
			case passFiltered:
				// Cure small self-intersections, then slice again
				ear = t.cureLocalIntersections(t.filterPoints(ear, nil))
				t.earcutLinked(ear, passCured, depth)
			case passCured:
				// As a last resort, split the polygon in two and slice each half
				t.splitEarcut(ear, depth)
			}
			return
		}
	}
}

// Check whether the node forms a valid ear with its neighbors, by scanning
// the whole ring for points inside it.
func isEarPlain[T Float](ear *Node[T]) bool {
	a := ear.Prev
	b := ear
	c := ear.Next

	if area(a, b, c) >= 0 {
		return false // reflex, can't be an ear
	}

	// Now make sure we don't have other points inside the potential ear
	p := ear.Next.Next
	for p != ear.Prev {
		if pointInTriangle(a.X, a.Y, b.X, b.Y, c.X, c.Y, p.X, p.Y) &&
			area(p.Prev, p, p.Next) >= 0 {
			return false
		}
		p = p.Next
	}
	return true
}

// Same as isEarPlain, but only looks at points whose z-order code falls in
// the range covered by the ear's bounding box.
func (t *tessellator[T]) isEarHashed(ear *Node[T]) bool {
	a := ear.Prev
	b := ear
	c := ear.Next

	if area(a, b, c) >= 0 {
		return false // reflex, can't be an ear
	}

	// Triangle bounding box
	minTX := min(a.X, b.X, c.X)
	minTY := min(a.Y, b.Y, c.Y)
	maxTX := max(a.X, b.X, c.X)
	maxTY := max(a.Y, b.Y, c.Y)

	// Z-order range for the current triangle bbox
	minZ := zOrder(minTX, minTY, t.minX, t.minY, t.invSize)
	maxZ := zOrder(maxTX, maxTY, t.minX, t.minY, t.invSize)

	blocks := func(n *Node[T]) bool {
		return n != ear.Prev && n != ear.Next &&
			pointInTriangle(a.X, a.Y, b.X, b.Y, c.X, c.Y, n.X, n.Y) &&
			area(n.Prev, n, n.Next) >= 0
	}

	p := ear.PrevZ
	n := ear.NextZ

	// Look for points inside the triangle in both directions
	for p != nil && p.Z >= minZ && n != nil && n.Z <= maxZ {
		if blocks(p) {
			return false
		}
		p = p.PrevZ

		if blocks(n) {
			return false
		}
		n = n.NextZ
	}

	// Look for remaining points in decreasing z-order
	for p != nil && p.Z >= minZ {
		if blocks(p) {
			return false
		}
		p = p.PrevZ
	}

	// Look for remaining points in increasing z-order
	for n != nil && n.Z <= maxZ {
		if blocks(n) {
			return false
		}
		n = n.NextZ
	}

	return true
}

// Go through all ring nodes and cure small local self-intersections: where
// the edges around a vertex cross each other, cut off the little triangle
// they form.
func (t *tessellator[T]) cureLocalIntersections(start *Node[T]) *Node[T] {
	if start == nil {
		return nil
	}

	p := start
	for {
		a := p.Prev
		b := p.Next.Next

		if !t.equals(a, b) && intersects(a, p, p.Next, b) && locallyInside(a, b) && locallyInside(b, a) {
			t.emit(a, p, b)

			// Remove the two nodes involved
			removeNode(p)
			removeNode(p.Next)

			p = b
			start = b
		}
		p = p.Next
		if p == start {
			break
		}
	}

	return t.filterPoints(p, nil)
}

// Try splitting the ring in two along a valid diagonal, and triangulate the
// halves independently.
func (t *tessellator[T]) splitEarcut(start *Node[T], depth int) {
	if depth >= t.maxDepth {
		t.log.Warn("split depth limit reached, abandoning ring",
			zap.Int("depth", depth),
			zap.Int("nodes", ringLen(start)),
		)
		return
	}

	// Look for a valid diagonal that divides the polygon into two
	a := start
	for {
		b := a.Next.Next
		for b != a.Prev {
			if a.I != b.I && t.isValidDiagonal(a, b) {
				c := t.splitPolygon(a, b)

				// Filter collinear points around the cuts
				a = t.filterPoints(a, a.Next)
				c = t.filterPoints(c, c.Next)

				t.log.Debug("split ring along diagonal",
					zap.Int("depth", depth),
					t.nodeField("a", a),
					t.nodeField("c", c),
				)

				t.earcutLinked(a, passEars, depth+1)
				t.earcutLinked(c, passEars, depth+1)
				return
			}
			b = b.Next
		}
		a = a.Next
		if a == start {
			return
		}
	}
}
