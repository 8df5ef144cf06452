package internal

import "go.uber.org/zap"

const (
	// DefaultTolerance is the distance under which two coordinates are
	// considered the same point.
	DefaultTolerance = 1e-9

	// DefaultIndexThreshold is the vertex count above which ear checks go
	// through the z-order index instead of scanning the whole ring.
	DefaultIndexThreshold = 80

	// DefaultMaxDepth bounds how many times a ring can be split along a
	// diagonal and re-clipped. Real polygons stay in single digits.
	DefaultMaxDepth = 512
)

// Config controls a single tessellation call.
type Config struct {
	// Tolerance for point equality. Zero means exact comparison.
	Tolerance float64 `yaml:"tolerance"`
	// IndexThreshold is the vertex count a polygon must exceed before the
	// z-order index is used. A negative value never uses it.
	IndexThreshold int `yaml:"index_threshold"`
	// MaxDepth is the deepest chain of diagonal splits allowed. Past it, the
	// remaining ring is abandoned and a warning is logged.
	MaxDepth int `yaml:"max_depth"`

	Logger *zap.Logger `yaml:"-"`
}

func DefaultConfig() Config {
	return Config{
		Tolerance:      DefaultTolerance,
		IndexThreshold: DefaultIndexThreshold,
		MaxDepth:       DefaultMaxDepth,
		Logger:         zap.NewNop(),
	}
}
