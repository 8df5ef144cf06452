package internal

import (
	"math"

	"golang.org/x/exp/slices"
)

// Link every hole into the outer ring with a bridge, producing a single ring
// that ear clipping can consume. holeIndices are vertex indices where each
// hole starts; the last hole runs to the end of the data.
func (t *tessellator[T]) eliminateHoles(holeIndices []int, outer *Node[T]) *Node[T] {
	queue := make([]*Node[T], 0, len(holeIndices))
	for i, hole := range holeIndices {
		start := hole * t.dim
		end := len(t.data)
		if i < len(holeIndices)-1 {
			end = holeIndices[i+1] * t.dim
		}
		list := t.linkedList(start, end, false)
		if list == nil {
			continue
		}
		if list == list.Next {
			// A hole with a single point is kept as a point the triangulation
			// must go through.
			list.Steiner = true
		}
		queue = append(queue, getLeftmost(list))
	}

	// Process holes from left to right. Holes further left can end up being
	// bridged to, so they have to be part of the outer ring by then. Ties keep
	// their input order.
	slices.SortStableFunc(queue, func(a, b *Node[T]) bool {
		return a.X < b.X
	})

	for _, hole := range queue {
		outer = t.eliminateHole(hole, outer)
		if outer != nil {
			outer = t.filterPoints(outer, outer.Next)
		}
		if outer == nil {
			t.log.Debug("outer ring collapsed while merging holes")
			return nil
		}
	}
	return outer
}

// Find a bridge between the hole and the outer ring and link them through it.
// A hole with no possible bridge is dropped. Returns a node that is still on
// the merged ring.
func (t *tessellator[T]) eliminateHole(hole, outer *Node[T]) *Node[T] {
	bridge := findHoleBridge(hole, outer)
	if bridge == nil {
		t.log.Debug("no bridge for hole, dropping it", t.nodeField("hole", hole))
		return outer
	}

	bridgeReverse := t.splitPolygon(bridge, hole)

	// Filter collinear points around the cuts
	filtered := t.filterPoints(bridge, bridge.Next)
	t.filterPoints(bridgeReverse, bridgeReverse.Next)

	if outer == bridge {
		return filtered
	}
	return outer
}

// David Eberly's algorithm for finding a bridge between a hole and the outer
// polygon: https://www.geometrictools.com/Documentation/TriangulationByEarClipping.pdf
func findHoleBridge[T Float](hole, outer *Node[T]) *Node[T] {
	p := outer
	hx := hole.X
	hy := hole.Y
	qx := T(math.Inf(-1))
	var m *Node[T]

	// Find a segment intersected by a ray from the hole's leftmost point to the
	// left. The segment's endpoint with lesser x will be the potential
	// connection point.
	for {
		if hy <= p.Y && hy >= p.Next.Y && p.Next.Y != p.Y {
			x := p.X + (hy-p.Y)*(p.Next.X-p.X)/(p.Next.Y-p.Y)
			if x <= hx && x > qx {
				qx = x
				if x == hx {
					// The hole touches the outer ring at a vertex
					if hy == p.Y {
						return p
					}
					if hy == p.Next.Y {
						return p.Next
					}
				}
				if p.X < p.Next.X {
					m = p
				} else {
					m = p.Next
				}
			}
		}
		p = p.Next
		if p == outer {
			break
		}
	}

	if m == nil {
		return nil
	}

	if hx == qx {
		// The hole touches the outer segment; pick the leftmost endpoint
		return m
	}

	// Look for points inside the triangle formed by the hole point, the
	// segment intersection and the endpoint. If there are none, the endpoint is
	// a valid connection. Otherwise use the point with the minimum angle to the
	// ray.
	/*
		     m
		     |\
		     | \   p
		     |  \
		  qx +---h
	*/
	stop := m
	mx := m.X
	my := m.Y
	tanMin := T(math.Inf(1))

	ax, cx := qx, hx
	if hy < my {
		ax, cx = hx, qx
	}

	p = m
	for {
		if hx >= p.X && p.X >= mx && hx != p.X &&
			pointInTriangle(ax, hy, mx, my, cx, hy, p.X, p.Y) {

			tan := abs(hy-p.Y) / (hx - p.X)

			if locallyInside(p, hole) &&
				(tan < tanMin || (tan == tanMin && (p.X > m.X || (p.X == m.X && sectorContainsSector(m, p))))) {
				m = p
				tanMin = tan
			}
		}

		p = p.Next
		if p == stop {
			return m
		}
	}
}

func abs[T Float](v T) T {
	if v < 0 {
		return -v
	}
	return v
}
