package store

import (
	"sync"
)

// observerRegistry lazily creates, caches, and serves one change stream per
// key name. Streams are never removed individually; the registry lives as
// long as the store.
//
// The registry has its own reader/writer lock, independent of the store's
// access lock. The two are never held in a nested order that could deadlock:
// the registry lock is acquired and released strictly within registry
// operations, and backend I/O never happens while it is held.
type observerRegistry struct {
	mu      sync.RWMutex
	streams map[string]*changeStream
}

func newObserverRegistry() *observerRegistry {
	return &observerRegistry{
		streams: make(map[string]*changeStream),
	}
}

// lookup is the uncontended fast path: a read-locked map access for the
// common case of a long-lived stream being reused by many callers.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (r *observerRegistry) lookup(name string) (*changeStream, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.streams[name]
	return st, ok
}

// broadcast publishes v to every registered stream.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (r *observerRegistry) broadcast(v Maybe[[]byte]) {
	for _, st := range r.snapshot() {
		st.publish(v)
	}
}

// failAll terminates every registered stream with err.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (r *observerRegistry) failAll(err error) {
	for _, st := range r.snapshot() {
		st.fail(err)
	}
}

// size returns the number of registered streams.
func (r *observerRegistry) size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.streams)
}

// snapshot copies the current stream set, so publishing happens outside the
// registry lock.
func (r *observerRegistry) snapshot() []*changeStream {
	r.mu.RLock()
	defer r.mu.RUnlock()

	streams := make([]*changeStream, 0, len(r.streams))
	for _, st := range r.streams {
		streams = append(streams, st)
	}
	return streams
}

// observerFor returns the change stream for a key, creating it lazily.
//
// Creation follows a race-collapsing double-checked pattern:
//  1. optimistic read-locked lookup (the fast path above)
//  2. unlocked priming read of the key's current value, so backend I/O never
//     happens while the registry lock is held
//  3. write-locked re-check-then-insert, so concurrent creators collapse
//     into a single winner
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (s *storeImpl) observerFor(key Key) (*changeStream, error) {
	// (1) fast path
	if st, ok := s.registry.lookup(key.Name); ok {
		return st, nil
	}

	// (2) prime with the current value before taking the write lock
	current, err := s.Get(key)
	if err != nil {
		return nil, err
	}

	r := s.registry
	r.mu.Lock()
	defer r.mu.Unlock()

	// (3) re-check: another caller may have won the race in the meantime
	if st, ok := r.streams[key.Name]; ok {
		return st, nil
	}

	st := newChangeStream(current)
	r.streams[key.Name] = st

	// The entry must be locatable immediately after the insert; anything
	// else is a programming defect, not a recoverable condition.
	if registered, ok := r.streams[key.Name]; !ok || registered != st {
		return nil, ErrUnableToCreateObserver
	}

	// A destroy can interleave between the caller's destroyed check and this
	// insert. A stream created after the transition must not outlive it: it
	// was not part of the destroy's fail-all sweep, so it is failed here.
	s.accessMu.RLock()
	destroyed := s.destroyed
	s.accessMu.RUnlock()
	if destroyed {
		st.fail(ErrStoreDestroyed)
	}

	metricStreamsCreated.Inc()
	return st, nil
}
