package model

const defaultMaxRefDepth = 64

// Options configures an Engine.
type Options struct {
	// MaxRefDepth caps how many named-model references may be expanded along
	// a single path. Self-referential models hit this limit and fail with
	// ErrRefDepthExceeded instead of recursing forever.
	MaxRefDepth int
}

func (o Options) withDefaults() Options {
	if o.MaxRefDepth <= 0 {
		o.MaxRefDepth = defaultMaxRefDepth
	}
	return o
}
