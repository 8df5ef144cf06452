package internal

import (
	"fmt"

	"github.com/pkg/errors"
)

// InvalidInputError reports input that breaks the preconditions of
// Tessellate. Nothing is computed for such input.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "earcut: invalid input: " + e.Reason
}

func invalidInput(format string, args ...interface{}) {
	panic(TessellateError(errors.WithStack(&InvalidInputError{Reason: fmt.Sprintf(format, args...)})))
}

// Check the shape of the input. dataLen is the number of coordinates.
func validate(dataLen int, holeIndices []int, dim int) {
	if dim < 2 {
		invalidInput("dimension %d is less than 2", dim)
	}
	if dataLen%dim != 0 {
		invalidInput("%d coordinates is not a multiple of dimension %d", dataLen, dim)
	}

	vertices := dataLen / dim
	prev := 0
	for i, h := range holeIndices {
		if h <= 0 || h >= vertices {
			invalidInput("hole %d starts at vertex %d, outside of (0, %d)", i, h, vertices)
		}
		if i > 0 && h <= prev {
			invalidInput("hole %d starts at vertex %d, not after hole %d at %d", i, h, i-1, prev)
		}
		prev = h
	}
}
