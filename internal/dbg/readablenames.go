// Package dbg turns pointers into names a person can tell apart in a log.
package dbg

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/logrusorgru/aurora"
)

func init() {
	// Names depend on the order they are requested in, so don't let them look
	// stable across runs.
	petname.NonDeterministicMode()
}

// Names hands out readable names for pointers, the same one every time it's
// asked about the same pointer. It holds on to everything it has named, so
// keep one only as long as the objects it names. The zero value is ready to
// use, and a Names is safe for concurrent use.
type Names struct {
	mu   sync.Mutex
	memo map[interface{}]string
}

// Name returns the name of obj. Nil pointers are named "Ø".
func (n *Names) Name(obj interface{}) string {
	if obj == nil {
		return "Ø"
	}
	if v := reflect.ValueOf(obj); v.Kind() == reflect.Ptr && v.IsNil() {
		return "Ø"
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if r, ok := n.memo[obj]; ok {
		return r
	}
	if n.memo == nil {
		n.memo = make(map[interface{}]string)
	}
	r := fmt.Sprintf("%s%s", title(petname.Adjective()), title(petname.Name()))
	n.memo[obj] = r
	return r
}

// Len is the number of objects named so far.
func (n *Names) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.memo)
}

// Highlight colors a name for terminal output. Steiner points and ordinary
// vertices get different colors.
func Highlight(name string, steiner bool) string {
	if steiner {
		return aurora.Magenta(name).String()
	}
	return aurora.Cyan(name).String()
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
