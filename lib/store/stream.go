package store

import (
	"sync"
)

// subscriptionBuffer is the per-subscriber channel capacity. When a
// subscriber falls this far behind, the oldest buffered emission is dropped:
// the stream is replay-latest, so only the most recent value matters to a
// consumer that cannot keep up, and slow subscribers must never block
// publishers.
const subscriptionBuffer = 16

// --------------------------------------------------------------------------
// Change Stream
// --------------------------------------------------------------------------

// changeStream is a single-producer-at-a-time, multi-consumer, replay-latest
// broadcast stream for one key: an atomically maintained "latest value" slot
// plus the set of registered subscriber channels.
//
// A stream is created lazily, lives for the registry's lifetime and is never
// removed individually. It is invalidated exactly once, when the whole store
// is destroyed.
type changeStream struct {
	mu      sync.Mutex
	latest  Maybe[[]byte]
	subs    map[*Subscription]struct{}
	failure error
}

// newChangeStream creates a stream primed with the given current value.
func newChangeStream(current Maybe[[]byte]) *changeStream {
	return &changeStream{
		latest: current,
		subs:   make(map[*Subscription]struct{}),
	}
}

// subscribe registers a new subscriber. The subscriber immediately receives
// the latest value as its first emission. On an already failed stream the
// returned subscription is terminated right away.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (st *changeStream) subscribe() *Subscription {
	st.mu.Lock()
	defer st.mu.Unlock()

	sub := &Subscription{
		stream: st,
		ch:     make(chan Maybe[[]byte], subscriptionBuffer),
	}

	if st.failure != nil {
		sub.failure = st.failure
		close(sub.ch)
		return sub
	}

	st.subs[sub] = struct{}{}
	sub.offer(st.latest)
	return sub
}

// publish stores v in the latest-value slot and pushes it to every
// subscriber without ever blocking on a slow consumer. Publishing to a
// failed stream is a no-op.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (st *changeStream) publish(v Maybe[[]byte]) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.failure != nil {
		return
	}

	st.latest = v
	for sub := range st.subs {
		sub.offer(v)
	}
}

// fail terminates the stream exactly once: every subscription's channel is
// closed with err as its terminal error, and all later publishes are ignored.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (st *changeStream) fail(err error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.failure != nil {
		return
	}

	st.failure = err
	st.latest = None[[]byte]()
	for sub := range st.subs {
		sub.failure = err
		close(sub.ch)
		delete(st.subs, sub)
	}
}

// --------------------------------------------------------------------------
// Subscription
// --------------------------------------------------------------------------

// Subscription is one consumer's handle on a change stream. Emissions are
// received from C; once C is closed, Err reports why the stream ended
// (ErrStoreDestroyed after a destroy, nil after a Cancel).
type Subscription struct {
	stream   *changeStream // nil for pre-terminated subscriptions
	ch       chan Maybe[[]byte]
	failure  error
	canceled bool
}

// C returns the receive channel of the subscription. The channel is closed
// when the subscription terminates.
func (s *Subscription) C() <-chan Maybe[[]byte] {
	return s.ch
}

// Err returns the terminal error of the subscription. It is meaningful after
// C has been closed; a canceled subscription terminates with a nil error.
func (s *Subscription) Err() error {
	if s.stream == nil {
		return s.failure
	}
	s.stream.mu.Lock()
	defer s.stream.mu.Unlock()
	return s.failure
}

// Cancel detaches the subscription from its stream and closes C.
// Canceling an already terminated subscription is a no-op. The stream itself
// lives on for other subscribers.
func (s *Subscription) Cancel() {
	if s.stream == nil {
		return
	}
	s.stream.mu.Lock()
	defer s.stream.mu.Unlock()

	if s.canceled || s.failure != nil {
		return
	}
	s.canceled = true
	delete(s.stream.subs, s)
	close(s.ch)
}

// offer pushes v into the subscription's buffer without blocking. When the
// buffer is full the oldest emission is dropped first (drop-oldest policy).
//
// Must be called with the stream's mutex held, so there is never more than
// one concurrent producer per subscription.
func (s *Subscription) offer(v Maybe[[]byte]) {
	for {
		select {
		case s.ch <- v:
			return
		default:
		}
		// buffer full, drop the oldest buffered emission and retry
		select {
		case <-s.ch:
		default:
		}
	}
}

// terminatedSubscription creates a subscription that is already closed with
// the given terminal error. Used when observing a destroyed store.
func terminatedSubscription(err error) *Subscription {
	sub := &Subscription{
		ch:      make(chan Maybe[[]byte]),
		failure: err,
	}
	close(sub.ch)
	return sub
}
