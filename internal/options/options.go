// Package options implements generic functional options shared by the
// encoder and envelope configuration.
package options

// Option configures a target of type T. Options are applied in order and
// the first failing option aborts configuration.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a plain function to the Option interface.
type Func[T any] struct {
	applyFunc func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New creates an option from a function that may reject its input.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// NoError creates an option from a setter that cannot fail.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}

// Apply applies opts to target in order, stopping at the first error.
// Nil options are skipped so callers can build option lists conditionally.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}

// Join merges several option lists into one, preserving order. Later options
// override earlier ones when they touch the same setting.
func Join[T any](lists ...[]Option[T]) []Option[T] {
	n := 0
	for _, l := range lists {
		n += len(l)
	}

	out := make([]Option[T], 0, n)
	for _, l := range lists {
		out = append(out, l...)
	}

	return out
}
