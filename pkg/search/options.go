package search

// Options configures a search. Use the With* functions to set fields.
type Options struct {
	// MaxExpansions bounds the number of A* expansions. Zero means unbounded.
	MaxExpansions int
	// MaxPasses bounds the number of Bellman-Ford relaxation passes.
	// Zero means the default of N-1.
	MaxPasses int
	// StrictHeuristic makes A* refuse exponents for which the default
	// heuristic is not consistent.
	StrictHeuristic bool

	weight    any // func(u, v ID) float64
	heuristic any // func(u ID) float64
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the zero-budget, default-cost configuration.
func DefaultOptions() Options {
	return Options{}
}

func newOptions(opts []Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithWeight replaces the edge weight D(u, v, k) with fn. fn is called with
// the edge endpoints in relaxation direction and may return negative values,
// which Bellman-Ford reports as a negative cycle.
func WithWeight[ID comparable](fn func(u, v ID) float64) Option {
	return func(o *Options) { o.weight = fn }
}

// WithHeuristic replaces the A* heuristic D(u, t, k) with fn.
func WithHeuristic[ID comparable](fn func(u ID) float64) Option {
	return func(o *Options) { o.heuristic = fn }
}

// WithMaxExpansions aborts A* once n vertices have been expanded without
// reaching the target. n <= 0 disables the budget.
func WithMaxExpansions(n int) Option {
	return func(o *Options) { o.MaxExpansions = max(n, 0) }
}

// WithMaxPasses aborts Bellman-Ford if it has not converged after n passes.
// n <= 0 disables the budget.
func WithMaxPasses(n int) Option {
	return func(o *Options) { o.MaxPasses = max(n, 0) }
}

// WithStrictHeuristic refuses A* searches whose exponent lies in (0, 1).
// It has no effect when a custom heuristic is installed.
func WithStrictHeuristic() Option {
	return func(o *Options) { o.StrictHeuristic = true }
}
