package repair

// DefaultMaxIterations bounds the repair loop when no ceiling is
// configured. The terminate-if-unchanged and terminate-on-regression exits
// make the loop finite for any rule table; the ceiling guards against
// slow plateaus, not true non-termination.
const DefaultMaxIterations = 20

// Options controls repair session behavior.
type Options struct {
	// MaxIterations is the loop ceiling per file. Zero or negative means
	// DefaultMaxIterations.
	MaxIterations int

	// KeepSnapshots leaves the sidecar snapshot behind after a completed
	// session instead of removing it.
	KeepSnapshots bool
}

// DefaultOptions returns sensible repair defaults.
func DefaultOptions() Options {
	return Options{
		MaxIterations: DefaultMaxIterations,
		KeepSnapshots: false,
	}
}

// effectiveMaxIterations returns the iteration ceiling, defaulting if unset.
func (o Options) effectiveMaxIterations() int {
	if o.MaxIterations <= 0 {
		return DefaultMaxIterations
	}
	return o.MaxIterations
}
