// Package options implements the functional options used by the reader, the
// writer and the builder.
package options

import "fmt"

// Option configures a target of type T, a pointer to one of the config structs.
type Option[T any] func(T) error

// New creates an option from a function that may reject its input.
func New[T any](fn func(T) error) Option[T] {
	return fn
}

// NoError creates an option from a function that cannot fail.
func NoError[T any](fn func(T)) Option[T] {
	return func(target T) error {
		fn(target)
		return nil
	}
}

// Apply runs opts against target in order. It stops at the first rejected
// option and reports its 1-based position. Nil options are skipped.
func Apply[T any](target T, opts ...Option[T]) error {
	for i, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(target); err != nil {
			return fmt.Errorf("option %d: %w", i+1, err)
		}
	}

	return nil
}
