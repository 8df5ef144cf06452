package internal

// To compensate for imprecision in floats, point equality is tolerance based.
// Everything else (signs of areas, orderings) is exact, because that is what
// keeps the predicates consistent with each other.
func Equal[T Float](a, b, tolerance T) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tolerance
}

func (t *tessellator[T]) equals(a, b *Node[T]) bool {
	return Equal(a.X, b.X, t.tolerance) && Equal(a.Y, b.Y, t.tolerance)
}
