package internal

// SignedArea is twice the signed area of the ring stored in data[start:end]
// with the given stride. The ring is implicitly closed. Positive rings run
// counter-clockwise when y points up, which is clockwise on a y-down screen.
func SignedArea[T Float](data []T, start, end, dim int) T {
	var sum T
	for i, j := start, end-dim; i < end; i += dim {
		sum += (data[j] - data[i]) * (data[i+1] + data[j+1])
		j = i
	}
	return sum
}

// Create a ring from the vertices in data[start:end], in the requested
// winding, and return its last node. Returns nil for an empty range.
func (t *tessellator[T]) linkedList(start, end int, clockwise bool) *Node[T] {
	var last *Node[T]

	if clockwise == (SignedArea(t.data, start, end, t.dim) > 0) {
		for i := start; i < end; i += t.dim {
			last = t.insertNode(i, last)
		}
	} else {
		for i := end - t.dim; i >= start; i -= t.dim {
			last = t.insertNode(i, last)
		}
	}

	// Closed rings repeat their first point at the end. Drop the repeat.
	if last != nil && t.equals(last, last.Next) {
		removeNode(last)
		last = last.Next
	}
	return last
}

// Create a node for the vertex at data[offset] and link it in after last.
func (t *tessellator[T]) insertNode(offset int, last *Node[T]) *Node[T] {
	p := t.nodes.alloc(offset/t.dim, t.data[offset], t.data[offset+1])
	if last == nil {
		p.Prev = p
		p.Next = p
	} else {
		p.Next = last.Next
		p.Prev = last
		last.Next.Prev = p
		last.Next = p
	}
	return p
}

// Unlink a node from its ring and from the z-order list. The node's own links
// are left alone, so callers can keep walking from it.
func removeNode[T Float](p *Node[T]) {
	p.Next.Prev = p.Prev
	p.Prev.Next = p.Next

	if p.PrevZ != nil {
		p.PrevZ.NextZ = p.NextZ
	}
	if p.NextZ != nil {
		p.NextZ.PrevZ = p.PrevZ
	}
}

// Link two vertices with a pair of coincident edges. If a and b are on the
// same ring, this splits it in two. If they are on different rings (outer and
// hole), it merges them into one. Both endpoints are duplicated, and the
// returned node is the duplicate of b, which sits on the ring that does not
// contain a.
func (t *tessellator[T]) splitPolygon(a, b *Node[T]) *Node[T] {
	/*
		before:  ... ap -> a -> an ...      ... bp -> b -> bn ...
		after:   ... ap -> a -> b -> bn ...
		         ... bp -> b2 -> a2 -> an ...
	*/
	a2 := t.nodes.alloc(a.I, a.X, a.Y)
	b2 := t.nodes.alloc(b.I, b.X, b.Y)
	an := a.Next
	bp := b.Prev

	a.Next = b
	b.Prev = a

	a2.Next = an
	an.Prev = a2

	b2.Next = a2
	a2.Prev = b2

	bp.Next = b2
	b2.Prev = bp

	return b2
}

// Count the nodes in a ring.
func ringLen[T Float](start *Node[T]) int {
	if start == nil {
		return 0
	}
	n := 0
	p := start
	for {
		n++
		p = p.Next
		if p == start {
			return n
		}
	}
}
