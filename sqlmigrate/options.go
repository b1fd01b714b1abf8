package sqlmigrate

// Options controls emission behavior via a DefaultXxx/WithXxx functional-
// options shape, mirrored by audit.Options for the audit writers.
type Options struct {
	// Destructive permits DROP TABLE / DROP COLUMN emission and the other
	// destructive entries; without it Validate refuses every destructive
	// entry. Irreconcilable entries (adding a unique constraint among them)
	// are refused either way.
	Destructive bool
}

// DefaultOptions returns the conservative default: destructive changes
// refused.
func DefaultOptions() *Options {
	return &Options{Destructive: false}
}

// WithDestructive returns a copy of o with destructive changes permitted,
// the CLI's "--destructive" flag.
func (o *Options) WithDestructive() *Options {
	tmp := *o
	tmp.Destructive = true
	return &tmp
}
