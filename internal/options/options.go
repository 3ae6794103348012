// Package options implements generic functional options for configuring
// values at construction time, such as the comparator and ordering mode of a
// dictionary.
package options

// Option configures a target of type T. A nil Option is ignored by Apply.
type Option[T any] func(T) error

// New wraps a configuration function that may reject its input.
func New[T any](fn func(T) error) Option[T] {
	return fn
}

// NoError wraps a configuration function that cannot fail.
func NoError[T any](fn func(T)) Option[T] {
	return func(target T) error {
		fn(target)
		return nil
	}
}

// Apply runs opts against target in order and stops at the first error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(target); err != nil {
			return err
		}
	}

	return nil
}
