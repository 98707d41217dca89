package store

import (
	"github.com/ValentinKolb/rKV/lib/backend"
)

// Key identifies a stored value and routes it to the backend selected by its
// kind. Keys are defined statically by the application; the store treats a
// Key as an immutable routing token. Two keys with the same name address the
// same logical value, so names must be globally unique per value.
type Key struct {
	// Name is the globally unique name of the value.
	Name string
	// Kind selects which backend owns the value.
	Kind backend.Kind
	// SyncNow requires writes to be flushed durably before Set returns.
	// If false, a write may be persisted asynchronously.
	SyncNow bool
}

// TypedKey carries the value's Go type alongside the routing information, so
// the typed accessor functions (SetValue, GetValue, ObserveValue, ...) can
// recover the concrete type through the store's codec at the call site.
type TypedKey[T any] struct {
	Key
}

// KeyOption configures optional Key attributes.
type KeyOption func(*Key)

// WithSyncNow makes every write to the key durable before returning.
func WithSyncNow() KeyOption {
	return func(k *Key) {
		k.SyncNow = true
	}
}

// NewKey creates a typed key with the given name and backend kind.
func NewKey[T any](name string, kind backend.Kind, opts ...KeyOption) TypedKey[T] {
	k := Key{
		Name: name,
		Kind: kind,
	}
	for _, opt := range opts {
		opt(&k)
	}
	return TypedKey[T]{Key: k}
}
