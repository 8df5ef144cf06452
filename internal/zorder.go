package internal

// The z-order index speeds up the "is anything inside this ear" check on big
// polygons. Every node gets a Morton code computed from its position in the
// bounding box, and the ring is threaded a second time through PrevZ/NextZ in
// code order. Any point inside an ear's bounding box has a code between the
// codes of the box's corners, so the check only has to walk that stretch of
// the list.

// Resolution of the grid the coordinates are snapped to before interleaving.
const zGrid = 32767

// Compute the Morton code of a point, given the bounding box origin and the
// inverse of the bounding box's larger side.
func zOrder[T Float](x, y, minX, minY, invSize T) int64 {
	// Coords are transformed into non-negative 15 bit integers
	xi := int32(zGrid * (x - minX) * invSize)
	yi := int32(zGrid * (y - minY) * invSize)

	xi = (xi | (xi << 8)) & 0x00FF00FF
	xi = (xi | (xi << 4)) & 0x0F0F0F0F
	xi = (xi | (xi << 2)) & 0x33333333
	xi = (xi | (xi << 1)) & 0x55555555

	yi = (yi | (yi << 8)) & 0x00FF00FF
	yi = (yi | (yi << 4)) & 0x0F0F0F0F
	yi = (yi | (yi << 2)) & 0x33333333
	yi = (yi | (yi << 1)) & 0x55555555

	return int64(xi | (yi << 1))
}

// Hash every node of the ring that doesn't have a code yet, then link and sort
// the z-order list.
func (t *tessellator[T]) indexCurve(start *Node[T]) {
	p := start
	for {
		if p.Z == zUnset {
			p.Z = zOrder(p.X, p.Y, t.minX, t.minY, t.invSize)
		}
		p.PrevZ = p.Prev
		p.NextZ = p.Next
		p = p.Next
		if p == start {
			break
		}
	}

	// Cut the circle open so the list has ends
	p.PrevZ.NextZ = nil
	p.PrevZ = nil

	sortLinked(p)
}

// Sort a nil terminated z-order list in place and return its new head. This
// is Simon Tatham's bottom-up linked list merge sort: runs of size 1, 2, 4...
// are merged until a single pass does only one merge. Ties keep their order.
func sortLinked[T Float](list *Node[T]) *Node[T] {
	inSize := 1
	for {
		p := list
		list = nil
		var tail *Node[T]
		numMerges := 0

		for p != nil {
			numMerges++
			q := p
			pSize := 0
			for i := 0; i < inSize; i++ {
				pSize++
				q = q.NextZ
				if q == nil {
					break
				}
			}
			qSize := inSize

			for pSize > 0 || (qSize > 0 && q != nil) {
				var e *Node[T]
				if pSize != 0 && (qSize == 0 || q == nil || p.Z <= q.Z) {
					e = p
					p = p.NextZ
					pSize--
				} else {
					e = q
					q = q.NextZ
					qSize--
				}

				if tail != nil {
					tail.NextZ = e
				} else {
					list = e
				}
				e.PrevZ = tail
				tail = e
			}
			p = q
		}

		tail.NextZ = nil
		inSize *= 2

		if numMerges <= 1 {
			return list
		}
	}
}
