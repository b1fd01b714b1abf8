package audit

// Options controls how the audit JSON document is written. Mirrors the
// DefaultXxx/WithXxx functional-options shape of config/config.go.
type Options struct {
	// Standalone wraps the JSON document in a browser IIFE instead of
	// emitting bare JSON.
	Standalone bool
}

// DefaultOptions returns the library-mode default: bare JSON, no wrapper.
func DefaultOptions() *Options {
	return &Options{Standalone: false}
}

// WithStandalone returns new Options with Standalone set, the CLI's
// "--standalone" flag.
func WithStandalone() *Options {
	return &Options{Standalone: true}
}
