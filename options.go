package bimap

import "log/slog"

// An Option configures optional behavior of a BiMap.
type Option func(m *mapShared)

// WithName provides a name to the map for use in debugging and logging.
func WithName(name string) Option {
	return func(m *mapShared) {
		m.name = name
	}
}

// WithCapacity preallocates room for n pairs.
func WithCapacity(n int) Option {
	return func(m *mapShared) {
		m.capacity = n
	}
}

// WithInvariantChecks makes the map validate both of its indexes after every mutation and panic if they are
// inconsistent. Each check costs O(n log n); use it in tests and while debugging comparators.
func WithInvariantChecks() Option {
	return func(m *mapShared) {
		m.checkInvariants = true
	}
}

// WithLogger sets the logger used for debug output. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *mapShared) {
		m.base = logger
	}
}
