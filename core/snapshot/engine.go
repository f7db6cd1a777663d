package snapshot

// DefaultMaxDepth bounds the playlist parent chain.
const DefaultMaxDepth = 64

// Engine extracts snapshots. It holds no per-request state and may be
// shared; every call is one sequential traversal.
type Engine struct {
	strategy Strategy
	maxDepth int
	progress func(done, total int)
}

// Option configures an Engine.
type Option func(*Engine)

// WithStrategy selects the default extraction strategy.
func WithStrategy(s Strategy) Option {
	return func(e *Engine) { e.strategy = s }
}

// WithMaxDepth bounds the parent chain; n <= 0 removes the bound and leaves
// only the revisit guard.
func WithMaxDepth(n int) Option {
	return func(e *Engine) { e.maxDepth = n }
}

// WithProgress registers a hook called after each member of a top-level
// track walk.
func WithProgress(fn func(done, total int)) Option {
	return func(e *Engine) { e.progress = fn }
}

// New creates an Engine using the explicit strategy by default.
func New(opts ...Option) *Engine {
	e := &Engine{strategy: Explicit, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Strategy returns the engine's strategy.
func (e *Engine) Strategy() Strategy { return e.strategy }

// WithStrategy returns a copy of e using s.
func (e *Engine) WithStrategy(s Strategy) *Engine {
	c := *e
	c.strategy = s
	return &c
}

// WithProgress returns a copy of e reporting top-level walks to fn.
func (e *Engine) WithProgress(fn func(done, total int)) *Engine {
	c := *e
	c.progress = fn
	return &c
}
