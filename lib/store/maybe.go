package store

// Maybe is an optional value: either Some(v) or None. It distinguishes
// "no value present / cleared" from a valid zero value, which matters for
// change streams that must be able to emit "key was cleared" as a distinct,
// observable event rather than silence.
type Maybe[T any] struct {
	value   T
	present bool
}

// Some wraps a present value.
func Some[T any](value T) Maybe[T] {
	return Maybe[T]{value: value, present: true}
}

// None is the explicit absence marker.
func None[T any]() Maybe[T] {
	return Maybe[T]{}
}

// Unwrap returns the value and whether it is present.
func (m Maybe[T]) Unwrap() (T, bool) {
	return m.value, m.present
}

// IsSome reports whether a value is present.
func (m Maybe[T]) IsSome() bool {
	return m.present
}

// IsNone reports whether the value is absent.
func (m Maybe[T]) IsNone() bool {
	return !m.present
}

// OrZero returns the value, or the zero value of T if absent.
func (m Maybe[T]) OrZero() T {
	return m.value
}
