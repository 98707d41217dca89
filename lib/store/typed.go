package store

import (
	"github.com/ValentinKolb/rKV/lib/codec"
)

// Typed access on top of the byte-level IStore. The store itself only ever
// handles opaque byte slices; the concrete value type is recovered here, at
// the call site, through the key's static type parameter and the store's
// codec.

// SetValue encodes value with the store's codec and writes it under key.
func SetValue[T any](s IStore, key TypedKey[T], value T) error {
	raw, err := s.Codec().Encode(value)
	if err != nil {
		return err
	}
	return s.Set(key.Key, Some(raw))
}

// ClearValue removes the value stored under key.
func ClearValue[T any](s IStore, key TypedKey[T]) error {
	return s.Set(key.Key, None[[]byte]())
}

// GetValue reads and decodes the value stored under key. The boolean return
// value indicates whether a value was found; a stored value that fails to
// decode counts as not found.
func GetValue[T any](s IStore, key TypedKey[T]) (T, bool, error) {
	var zero T

	raw, err := s.Get(key.Key)
	if err != nil {
		return zero, false, err
	}

	b, ok := raw.Unwrap()
	if !ok {
		return zero, false, nil
	}

	var value T
	if err := s.Codec().Decode(b, &value); err != nil {
		// decoding failures are normalized to absence
		return zero, false, nil
	}
	return value, true, nil
}

// HasValue reports whether GetValue would find a value under key.
func HasValue[T any](s IStore, key TypedKey[T]) (bool, error) {
	_, loaded, err := GetValue(s, key)
	return loaded, err
}

// ObserveValue subscribes to the change stream of key and decodes every
// emission to T. Emissions that fail to decode are delivered as None.
func ObserveValue[T any](s IStore, key TypedKey[T]) (*TypedSubscription[T], error) {
	raw, err := s.Observe(key.Key)
	if err != nil {
		return nil, err
	}
	return newTypedSubscription[T](raw, s.Codec()), nil
}

// --------------------------------------------------------------------------
// Typed Subscription
// --------------------------------------------------------------------------

// TypedSubscription adapts a raw Subscription to a stream of decoded values.
// It shares the raw subscription's lifecycle: once the underlying stream
// terminates, C is closed and Err reports the terminal error.
type TypedSubscription[T any] struct {
	raw   *Subscription
	codec codec.ICodec
	ch    chan Maybe[T]
}

func newTypedSubscription[T any](raw *Subscription, c codec.ICodec) *TypedSubscription[T] {
	sub := &TypedSubscription[T]{
		raw:   raw,
		codec: c,
		ch:    make(chan Maybe[T], subscriptionBuffer),
	}
	go sub.pump()
	return sub
}

// C returns the receive channel of decoded emissions. The channel is closed
// when the underlying subscription terminates.
func (s *TypedSubscription[T]) C() <-chan Maybe[T] {
	return s.ch
}

// Err returns the terminal error of the underlying subscription.
func (s *TypedSubscription[T]) Err() error {
	return s.raw.Err()
}

// Cancel detaches the subscription from its stream.
func (s *TypedSubscription[T]) Cancel() {
	s.raw.Cancel()
}

// pump decodes raw emissions into the typed channel. Like the raw
// subscription it never blocks on a slow consumer: when the typed buffer is
// full the oldest emission is dropped.
func (s *TypedSubscription[T]) pump() {
	defer close(s.ch)

	for raw := range s.raw.C() {
		v := s.decode(raw)
		for {
			select {
			case s.ch <- v:
			default:
				// buffer full, drop the oldest emission and retry
				select {
				case <-s.ch:
				default:
				}
				continue
			}
			break
		}
	}
}

func (s *TypedSubscription[T]) decode(raw Maybe[[]byte]) Maybe[T] {
	b, ok := raw.Unwrap()
	if !ok {
		return None[T]()
	}

	var value T
	if err := s.codec.Decode(b, &value); err != nil {
		return None[T]()
	}
	return Some(value)
}
