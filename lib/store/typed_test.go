package store

import (
	"errors"
	"testing"
	"time"

	"github.com/ValentinKolb/rKV/lib/backend"
)

type session struct {
	Token   string `json:"token"`
	UserID  int    `json:"user_id"`
	Refresh bool   `json:"refresh"`
}

func recvTyped[T any](t *testing.T, sub *TypedSubscription[T]) Maybe[T] {
	t.Helper()
	select {
	case v, ok := <-sub.C():
		if !ok {
			t.Fatalf("typed stream terminated unexpectedly (err=%v)", sub.Err())
		}
		return v
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for typed emission")
	}
	return None[T]()
}

func TestTypedRoundTrip(t *testing.T) {
	s := newTestStore(t)
	key := NewKey[session]("current-session", backend.KindEncryptedPersistent)

	stored := session{Token: "abc123", UserID: 42, Refresh: true}
	if err := SetValue(s, key, stored); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}

	got, loaded, err := GetValue(s, key)
	if err != nil {
		t.Fatalf("GetValue failed: %v", err)
	}
	if !loaded {
		t.Fatalf("Expected a value after SetValue")
	}
	if got != stored {
		t.Errorf("Expected %+v, got %+v", stored, got)
	}

	if loaded, err := HasValue(s, key); err != nil || !loaded {
		t.Errorf("Expected HasValue to report true (err=%v)", err)
	}
}

func TestTypedClear(t *testing.T) {
	s := newTestStore(t)
	key := NewKey[int]("counter", backend.KindMemory)

	if err := SetValue(s, key, 7); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	if err := ClearValue(s, key); err != nil {
		t.Fatalf("ClearValue failed: %v", err)
	}

	got, loaded, err := GetValue(s, key)
	if err != nil {
		t.Fatalf("GetValue failed: %v", err)
	}
	if loaded {
		t.Errorf("Expected absence after ClearValue, got %d", got)
	}
}

func TestTypedZeroValueIsPresent(t *testing.T) {
	s := newTestStore(t)
	key := NewKey[int]("zero", backend.KindMemory)

	// a stored zero value is distinct from absence
	if err := SetValue(s, key, 0); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}

	got, loaded, err := GetValue(s, key)
	if err != nil {
		t.Fatalf("GetValue failed: %v", err)
	}
	if !loaded {
		t.Fatalf("Expected the stored zero to count as present")
	}
	if got != 0 {
		t.Errorf("Expected 0, got %d", got)
	}
}

func TestTypedUndecodableIsAbsent(t *testing.T) {
	s := newTestStore(t)
	key := NewKey[session]("corrupted", backend.KindMemory)

	// bypass the typed layer and store bytes the codec cannot decode
	if err := s.Set(key.Key, Some([]byte("{not-json!"))); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	_, loaded, err := GetValue(s, key)
	if err != nil {
		t.Fatalf("GetValue must not surface decode failures, got %v", err)
	}
	if loaded {
		t.Errorf("Expected an undecodable value to read as absent")
	}

	if loaded, err := HasValue(s, key); err != nil || loaded {
		t.Errorf("Expected HasValue to report false (err=%v)", err)
	}
}

func TestObserveValue(t *testing.T) {
	s := newTestStore(t)
	key := NewKey[session]("watched-session", backend.KindMemory)

	sub, err := ObserveValue(s, key)
	if err != nil {
		t.Fatalf("ObserveValue failed: %v", err)
	}
	defer sub.Cancel()

	// priming emission: absence
	if first := recvTyped(t, sub); first.IsSome() {
		t.Fatalf("Expected first typed emission to be absence")
	}

	stored := session{Token: "abc123", UserID: 1}
	if err := SetValue(s, key, stored); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}

	emission := recvTyped(t, sub)
	got, ok := emission.Unwrap()
	if !ok {
		t.Fatalf("Expected a decoded value")
	}
	if got != stored {
		t.Errorf("Expected %+v, got %+v", stored, got)
	}

	if err := ClearValue(s, key); err != nil {
		t.Fatalf("ClearValue failed: %v", err)
	}
	if emission := recvTyped(t, sub); emission.IsSome() {
		t.Errorf("Expected a cleared emission after ClearValue")
	}
}

func TestObserveValueUndecodableEmission(t *testing.T) {
	s := newTestStore(t)
	key := NewKey[session]("watched-corrupt", backend.KindMemory)

	sub, err := ObserveValue(s, key)
	if err != nil {
		t.Fatalf("ObserveValue failed: %v", err)
	}
	defer sub.Cancel()

	recvTyped(t, sub) // priming emission

	// raw bytes the codec cannot decode arrive as an absent emission
	if err := s.Set(key.Key, Some([]byte("garbage"))); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if emission := recvTyped(t, sub); emission.IsSome() {
		t.Errorf("Expected an undecodable emission to be delivered as absence")
	}
}

func TestObserveValueTerminatesOnDestroy(t *testing.T) {
	s := newTestStore(t)
	key := NewKey[string]("typed-doomed", backend.KindMemory)

	sub, err := ObserveValue(s, key)
	if err != nil {
		t.Fatalf("ObserveValue failed: %v", err)
	}
	recvTyped(t, sub)

	if err := s.Destroy(); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-sub.C():
			if ok {
				continue
			}
			if err := sub.Err(); !errors.Is(err, ErrStoreDestroyed) {
				t.Errorf("Expected ErrStoreDestroyed, got %v", err)
			}
			return
		case <-deadline:
			t.Fatalf("timed out waiting for typed stream termination")
		}
	}
}
