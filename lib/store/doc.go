// Package store provides a process-local, multi-backend key-value store with
// reactive change notification and a one-way destroy lifecycle. It serves as
// the orchestration layer over the backend.IBackend implementations: each key
// declares which backend owns it, and the store routes every operation
// accordingly.
//
// The package focuses on:
//   - Routing operations to the correct backend by the key's declared kind
//   - Per-key replay-latest change streams, so callers can subscribe to a
//     value instead of polling it
//   - A destroyed lifecycle flag that irreversibly wipes all backends and
//     fails future stream operations
//   - Typed access through generic accessor functions and a pluggable codec
//
// Key Components:
//
//   - IStore Interface: The byte-level contract of the store. Values are
//     Maybe[[]byte] so that "no value / cleared" is distinct from any valid
//     stored value, including an empty one.
//
//   - Key / TypedKey: Immutable routing tokens. A key carries its globally
//     unique name, its backend kind, and a per-key durability requirement
//     (SyncNow). TypedKey additionally carries the value's Go type for the
//     typed accessors.
//
//   - Change Streams: Per-key replay-latest broadcast streams. A new
//     subscription immediately receives the current value as its first
//     emission, then every subsequent write in applied order. Slow consumers
//     never block publishers; when a subscriber's buffer is full the oldest
//     emission is dropped.
//
//   - Observer Registry: Lazily creates and caches at most one change stream
//     per key name, using a double-checked creation pattern (read-locked
//     lookup, unlocked priming read, write-locked re-check-then-insert).
//
// Concurrency Model:
//
//	Two independent reader/writer locks guard disjoint state. The access
//	lock protects the destroyed flag and all backend I/O: Get, Has and the
//	destroyed check of Observe take the read side, while Set, RemoveAll and
//	Destroy take the write side so the destroyed check is atomic with the
//	mutation. The registry lock only guards the stream map and is never held
//	across backend I/O, so slow backends cannot serialize unrelated keys'
//	subscriptions.
//
// Failure Semantics:
//
//	Lifecycle failures propagate only through subscriptions: after Destroy,
//	Get and Has return absence, Set is a storage no-op, and only change
//	streams terminate with ErrStoreDestroyed. Decode and decryption failures
//	are normalized to absence at the backend boundary and never surface as
//	errors.
package store
