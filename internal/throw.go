package internal

import (
	"runtime"

	"github.com/pkg/errors"
)

// Threading errors through every recursive pass of the clipper would bury the
// geometry under plumbing. Instead the kernel panics with a TessellateError
// and the public API recovers it into an ordinary error.

// TessellateError is what the kernel panics with.
type TessellateError error

// Panic with a TessellateError.
func fatalf(format string, args ...interface{}) {
	panic(TessellateError(errors.Errorf(format, args...)))
}

// HandleTessellatePanicRecover turns a recovered value back into an error.
// Anything that isn't an error raised by the kernel, including runtime errors
// such as nil dereferences, is re-panicked.
func HandleTessellatePanicRecover(r interface{}) error {
	if r == nil {
		return nil
	}
	if _, ok := r.(runtime.Error); ok {
		panic(r)
	}
	if err, ok := r.(TessellateError); ok {
		return err
	}
	panic(r)
}
