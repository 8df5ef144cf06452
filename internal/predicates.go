package internal

// Geometric predicates over ring nodes. The engine works in a winding where
// convex corners have negative area; linkedList arranges the rings so that
// this holds for the outer ring and so that holes come out the other way.

// Twice the signed area of the triangle pqr.
func area[T Float](p, q, r *Node[T]) T {
	return (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)
}

// Check if a point lies within a triangle, boundary included.
func pointInTriangle[T Float](ax, ay, bx, by, cx, cy, px, py T) bool {
	return (cx-px)*(ay-py) >= (ax-px)*(cy-py) &&
		(ax-px)*(by-py) >= (bx-px)*(ay-py) &&
		(bx-px)*(cy-py) >= (cx-px)*(by-py)
}

func sign[T Float](v T) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// For collinear p, q, r: does q lie on the segment pr?
func onSegment[T Float](p, q, r *Node[T]) bool {
	return q.X <= max(p.X, r.X) && q.X >= min(p.X, r.X) &&
		q.Y <= max(p.Y, r.Y) && q.Y >= min(p.Y, r.Y)
}

// Check if segments p1q1 and p2q2 intersect, touching included.
func intersects[T Float](p1, q1, p2, q2 *Node[T]) bool {
	o1 := sign(area(p1, q1, p2))
	o2 := sign(area(p1, q1, q2))
	o3 := sign(area(p2, q2, p1))
	o4 := sign(area(p2, q2, q1))

	if o1 != o2 && o3 != o4 {
		return true
	}

	// Collinear special cases
	if o1 == 0 && onSegment(p1, p2, q1) {
		return true
	}
	if o2 == 0 && onSegment(p1, q2, q1) {
		return true
	}
	if o3 == 0 && onSegment(p2, p1, q2) {
		return true
	}
	if o4 == 0 && onSegment(p2, q1, q2) {
		return true
	}
	return false
}

// Check if the diagonal ab crosses any edge of the ring. Edges that share a
// vertex index with the diagonal are ignored, since they always touch it.
func intersectsPolygon[T Float](a, b *Node[T]) bool {
	p := a
	for {
		if p.I != a.I && p.Next.I != a.I && p.I != b.I && p.Next.I != b.I &&
			intersects(p, p.Next, a, b) {
			return true
		}
		p = p.Next
		if p == a {
			return false
		}
	}
}

// Check if the diagonal ab leaves a into the inside of the ring, judging only
// by the two edges at a.
func locallyInside[T Float](a, b *Node[T]) bool {
	if area(a.Prev, a, a.Next) < 0 {
		return area(a, b, a.Next) >= 0 && area(a, a.Prev, b) >= 0
	}
	return area(a, b, a.Prev) < 0 || area(a, a.Next, b) < 0
}

// Check if the midpoint of the diagonal ab is inside the ring, by the even-odd
// rule.
func middleInside[T Float](a, b *Node[T]) bool {
	p := a
	inside := false
	px := (a.X + b.X) / 2
	py := (a.Y + b.Y) / 2
	for {
		if (p.Y > py) != (p.Next.Y > py) && p.Next.Y != p.Y &&
			px < (p.Next.X-p.X)*(py-p.Y)/(p.Next.Y-p.Y)+p.X {
			inside = !inside
		}
		p = p.Next
		if p == a {
			return inside
		}
	}
}

// Check if the diagonal ab can be used to split the ring in two.
func (t *tessellator[T]) isValidDiagonal(a, b *Node[T]) bool {
	// Not an existing edge, and doesn't cross one
	if a.Next.I == b.I || a.Prev.I == b.I || intersectsPolygon(a, b) {
		return false
	}

	// Locally visible from both ends and inside, without leaving two
	// zero-area sectors facing each other
	if locallyInside(a, b) && locallyInside(b, a) && middleInside(a, b) &&
		(area(a.Prev, a, b.Prev) != 0 || area(a, b.Prev, b) != 0) {
		return true
	}

	// A zero-length diagonal is fine between two convex corners
	return t.equals(a, b) && area(a.Prev, a, a.Next) > 0 && area(b.Prev, b, b.Next) > 0
}

// Check if the sector at vertex m contains the sector at vertex p, where m
// and p are at the same coordinates.
func sectorContainsSector[T Float](m, p *Node[T]) bool {
	return area(m.Prev, m, p.Prev) < 0 && area(p.Next, m, m.Next) < 0
}

// Find the leftmost node of a ring, breaking ties by lowest y.
func getLeftmost[T Float](start *Node[T]) *Node[T] {
	p := start
	leftmost := start
	for {
		if p.X < leftmost.X || (p.X == leftmost.X && p.Y < leftmost.Y) {
			leftmost = p
		}
		p = p.Next
		if p == start {
			return leftmost
		}
	}
}
