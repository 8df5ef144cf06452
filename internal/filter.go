package internal

// Remove duplicate and collinear points from the ring, starting at start and
// going around until end is reached without a removal. end defaults to start.
// Steiner points are never treated as duplicates, since they stand for a
// hole.
//
// Returns the node the scan ended on, which is always still in the ring, or
// nil if the ring collapsed to a single point.
func (t *tessellator[T]) filterPoints(start, end *Node[T]) *Node[T] {
	if start == nil {
		return nil
	}
	if end == nil {
		end = start
	}

	p := start
	for {
		again := false

		if !p.Steiner && (t.equals(p, p.Next) || area(p.Prev, p, p.Next) == 0) {
			removeNode(p)
			// The removed node can't be the end marker anymore; back up and
			// re-check its predecessor, whose neighborhood just changed.
			p = p.Prev
			end = p
			if p == p.Next {
				return nil
			}
			again = true
		} else {
			p = p.Next
		}

		if !again && p == end {
			return end
		}
	}
}
