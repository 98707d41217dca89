package store

import (
	"errors"

	"github.com/ValentinKolb/rKV/lib/backend"
	"github.com/ValentinKolb/rKV/lib/codec"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IStore is the interface of the rKV store: a process-local key-value store
// that routes each key to one of several backends, publishes changes to
// per-key streams, and supports a one-way destroy lifecycle.
//
// This is the byte-level contract; typed access on top of it is provided by
// the generic package functions SetValue, GetValue, HasValue, ClearValue and
// ObserveValue.
type IStore interface {
	// Set writes the value for a key (Some stores, None clears) to the
	// backend selected by the key's kind and publishes the new value to the
	// key's change stream if one exists. After the store is destroyed, Set is
	// a no-op for storage but still surfaces the destroyed condition to an
	// existing subscriber of the key.
	Set(key Key, value Maybe[[]byte]) (err error)
	// Get returns the stored value for a key. A destroyed store and a failed
	// decode both yield None rather than an error.
	Get(key Key) (value Maybe[[]byte], err error)
	// Has reports whether Get would produce a present value.
	Has(key Key) (loaded bool, err error)
	// Observe returns a subscription on the key's change stream. The first
	// emission is always the current value (or None); after the store is
	// destroyed the subscription is already terminated with ErrStoreDestroyed.
	Observe(key Key) (sub *Subscription, err error)
	// RemoveAll wipes the entire contents of every backend in kinds and then
	// notifies every registered change stream with None.
	RemoveAll(kinds ...backend.Kind) (err error)
	// Destroy irreversibly wipes all backends and fails every change stream
	// with ErrStoreDestroyed. Idempotent.
	Destroy() (err error)
	// Close releases backend resources without wiping data.
	Close() (err error)
	// Codec returns the codec used by the typed accessor functions.
	Codec() codec.ICodec
	// Info returns metadata about the store.
	Info() (info Info)
}

// Info holds metadata about a store instance.
type Info struct {
	Destroyed bool     `json:"destroyed"`
	Observers int      `json:"observers"`
	Kinds     []string `json:"kinds"`
}

// --------------------------------------------------------------------------
// Errors
// --------------------------------------------------------------------------

var (
	// ErrStoreDestroyed is the terminal failure delivered to change stream
	// subscribers once the store has been destroyed. Get, Has and Set never
	// return it; they degrade to absence / no-op instead.
	ErrStoreDestroyed = errors.New("store is destroyed")

	// ErrUnableToCreateObserver signals a programming-invariant violation in
	// the observer registry's creation path. It is not reachable under
	// correct locking.
	ErrUnableToCreateObserver = errors.New("unable to create observer")
)
