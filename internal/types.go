package internal

import (
	"fmt"
	"math"

	"github.com/osuushi/earcut/internal/dbg"
	"golang.org/x/exp/constraints"
)

// Float is the set of coordinate types the kernel operates on. All the
// geometry is done in the caller's precision; nothing is converted to float64
// behind their back.
type Float interface {
	constraints.Float
}

// zUnset marks a node whose z-order hash has not been computed. Real hashes
// are 32 bit values, so they can never collide with it.
const zUnset int64 = math.MinInt64

// Node is one occurrence of a vertex in a polygon ring.
//
// Rings are circular doubly linked lists through Prev and Next. There is no
// head; any node can be used to enter a ring. Splitting a ring (to merge a
// hole, or to cut along a diagonal) duplicates the two endpoints, so the same
// vertex index can appear on more than one node.
//
// PrevZ and NextZ form a second, nil terminated list over the same nodes,
// sorted by Z. They are only meaningful after indexCurve has run over the
// ring.
type Node[T Float] struct {
	I       int // vertex index, which is what ends up in the output
	X, Y    T
	Z       int64
	Steiner bool

	Prev, Next   *Node[T]
	PrevZ, NextZ *Node[T]
}

func (n *Node[T]) String() string {
	return fmt.Sprintf("#%d(%v, %v)", n.I, n.X, n.Y)
}

// A node in a log field, with a readable name so that duplicates made by
// splits can be told apart. Names are only made up when the field is
// actually written.
type namedNode[T Float] struct {
	names *dbg.Names
	node  *Node[T]
}

func (n namedNode[T]) String() string {
	if n.node == nil {
		return n.names.Name(nil)
	}
	return n.names.Name(n.node) + n.node.String()
}

// Nodes are allocated from chunks so that a large polygon doesn't turn into
// a large number of tiny allocations. Chunks are never reallocated, so
// pointers into them stay valid, and the whole thing is dropped when the call
// that owns it returns.
type nodeSlab[T Float] struct {
	free      []Node[T]
	chunkSize int
}

const minNodeChunk = 64

func newNodeSlab[T Float](capacity int) nodeSlab[T] {
	if capacity < minNodeChunk {
		capacity = minNodeChunk
	}
	return nodeSlab[T]{chunkSize: capacity}
}

func (s *nodeSlab[T]) alloc(i int, x, y T) *Node[T] {
	if len(s.free) == 0 {
		s.free = make([]Node[T], s.chunkSize)
		// Later chunks only hold duplicates made by splits, of which there are
		// far fewer than original vertices.
		s.chunkSize = minNodeChunk
	}
	n := &s.free[0]
	s.free = s.free[1:]
	n.I = i
	n.X = x
	n.Y = y
	n.Z = zUnset
	return n
}
