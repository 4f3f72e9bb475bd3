package engine

// Fallback values applied when neither the per-pass options nor the engine
// configuration pin one down.
const (
	DefaultConcurrency   = 4
	DefaultPageLimit     = 100
	DefaultRatePerSecond = 60
)

// Options tune a single synchronization pass. The zero value delegates every
// knob to the engine-wide configuration.
type Options struct {
	// Concurrency caps the number of updates applied in parallel.
	Concurrency int
	// Limit caps the page size requested from the PageSource.
	Limit int
	// IgnoreCredentialNotFound turns a missing remote credential from a unit
	// failure into a skipped remote write: matching and the capability
	// invocation are bypassed, the local reference update still happens.
	IgnoreCredentialNotFound bool
}

// withDefaults folds engine-wide defaults into per-pass options and clamps
// the result to usable values.
func (o Options) withDefaults(defaults Options) Options {
	if o.Concurrency <= 0 {
		o.Concurrency = defaults.Concurrency
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.Limit <= 0 {
		o.Limit = defaults.Limit
	}
	if o.Limit <= 0 {
		o.Limit = DefaultPageLimit
	}
	if defaults.IgnoreCredentialNotFound {
		o.IgnoreCredentialNotFound = true
	}

	return o
}
