package earcut

import (
	"github.com/osuushi/earcut/internal"
	"go.uber.org/zap"
)

// Config holds every tunable of a Tessellate call. It can be loaded from YAML.
type Config = internal.Config

// DefaultConfig is what Tessellate uses when no options are given.
func DefaultConfig() Config {
	return internal.DefaultConfig()
}

// Option adjusts the Config of a single Tessellate call.
type Option func(*Config)

// WithLogger sends the clipper's diagnostics to logger. They are all at debug
// level, except for the warning logged when the split depth limit is hit.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) {
		if logger == nil {
			logger = zap.NewNop()
		}
		c.Logger = logger
	}
}

// WithTolerance sets the distance under which two points are the same point.
func WithTolerance(tolerance float64) Option {
	return func(c *Config) {
		c.Tolerance = tolerance
	}
}

// WithIndexThreshold sets the number of vertices above which the z-order index
// is used. Negative disables the index.
func WithIndexThreshold(vertices int) Option {
	return func(c *Config) {
		c.IndexThreshold = vertices
	}
}

// WithMaxDepth bounds the number of nested diagonal splits.
func WithMaxDepth(depth int) Option {
	return func(c *Config) {
		c.MaxDepth = depth
	}
}

// WithConfig replaces the whole configuration. A nil logger in cfg keeps the
// current one.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		logger := c.Logger
		*c = cfg
		if c.Logger == nil {
			c.Logger = logger
		}
	}
}
