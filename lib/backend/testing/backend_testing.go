package testing

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/ValentinKolb/rKV/lib/backend"
)

// BackendFactory is a function that creates a new instance of an IBackend
// implementation
type BackendFactory func() backend.IBackend

// RunBackendTests runs a comprehensive test suite for an IBackend
// implementation.
func RunBackendTests(t *testing.T, name string, factory BackendFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Set&Get", func(t *testing.T) {
			testSetGet(t, factory())
		})

		t.Run("Delete", func(t *testing.T) {
			testDelete(t, factory())
		})

		t.Run("SyncNow", func(t *testing.T) {
			testSyncNow(t, factory())
		})

		t.Run("Destroy", func(t *testing.T) {
			testDestroy(t, factory())
		})

		t.Run("EdgeCases", func(t *testing.T) {
			testEdgeCases(t, factory())
		})

		t.Run("ConcurrentAccess", func(t *testing.T) {
			testConcurrentAccess(t, factory())
		})

		t.Run("RealisticUsage", func(t *testing.T) {
			testRealisticUsage(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testSetGet(t *testing.T, b backend.IBackend) {
	defer b.Close()

	testKey := "test-key"
	testValue1 := []byte("test-value1")
	testValue2 := []byte("test-value2")

	if err := b.Set(testKey, testValue1, false); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	result, loaded, err := b.Get(testKey)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !loaded {
		t.Errorf("Expected key %s to exist after Set", testKey)
	}
	if !bytes.Equal(result, testValue1) {
		t.Errorf("Expected value %s, got %s", testValue1, result)
	}

	// overwrite
	if err := b.Set(testKey, testValue2, false); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	result, loaded, err = b.Get(testKey)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !loaded {
		t.Errorf("Expected key %s to exist after Set", testKey)
	}
	if !bytes.Equal(result, testValue2) {
		t.Errorf("Expected value %s, got %s", testValue2, result)
	}

	_, loaded, err = b.Get("nonexistent-key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if loaded {
		t.Errorf("Expected nonexistent key to return loaded=false")
	}

	// mutating the returned slice must not affect the stored value
	retrievedValue, _, _ := b.Get(testKey)
	retrievedValue[0] = 'X'

	originalValue, _, _ := b.Get(testKey)
	if bytes.Equal(retrievedValue, originalValue) {
		t.Errorf("Get should return a copy, not a reference to the stored value")
	}
}

func testDelete(t *testing.T, b backend.IBackend) {
	defer b.Close()

	testKey := "delete-key"
	testValue := []byte("delete-value")

	if err := b.Set(testKey, testValue, false); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := b.Delete(testKey, false); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, loaded, err := b.Get(testKey)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if loaded {
		t.Errorf("Expected key %s to be gone after Delete", testKey)
	}

	// deleting a missing key is not an error
	if err := b.Delete("nonexistent-key", false); err != nil {
		t.Errorf("Delete of nonexistent key should not fail, got: %v", err)
	}
}

func testSyncNow(t *testing.T, b backend.IBackend) {
	defer b.Close()

	// the durability hint must not change observable behavior
	testKey := "sync-key"
	testValue := []byte("sync-value")

	if err := b.Set(testKey, testValue, true); err != nil {
		t.Fatalf("Set with syncNow failed: %v", err)
	}

	result, loaded, err := b.Get(testKey)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !loaded || !bytes.Equal(result, testValue) {
		t.Errorf("Expected value %s after synced Set, got %s (loaded=%v)", testValue, result, loaded)
	}

	if err := b.Delete(testKey, true); err != nil {
		t.Fatalf("Delete with syncNow failed: %v", err)
	}

	_, loaded, _ = b.Get(testKey)
	if loaded {
		t.Errorf("Expected key %s to be gone after synced Delete", testKey)
	}
}

func testDestroy(t *testing.T, b backend.IBackend) {
	defer b.Close()

	numKeys := 100
	for i := 0; i < numKeys; i++ {
		key := fmt.Sprintf("destroy-key-%d", i)
		value := []byte(fmt.Sprintf("destroy-value-%d", i))
		if err := b.Set(key, value, false); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	if err := b.Destroy(); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}

	for i := 0; i < numKeys; i++ {
		key := fmt.Sprintf("destroy-key-%d", i)
		_, loaded, err := b.Get(key)
		if err != nil {
			t.Fatalf("Get failed after Destroy: %v", err)
		}
		if loaded {
			t.Errorf("Expected key %s to be gone after Destroy", key)
		}
	}

	// the backend must remain usable after a wipe
	if err := b.Set("post-destroy-key", []byte("post-destroy-value"), false); err != nil {
		t.Errorf("Set after Destroy failed: %v", err)
	}

	result, loaded, _ := b.Get("post-destroy-key")
	if !loaded || !bytes.Equal(result, []byte("post-destroy-value")) {
		t.Errorf("Expected backend to be writable after Destroy")
	}
}

func testEdgeCases(t *testing.T, b backend.IBackend) {
	defer b.Close()

	// empty value is a valid value, distinct from a missing key
	if err := b.Set("empty-value-key", []byte{}, false); err != nil {
		t.Fatalf("Set with empty value failed: %v", err)
	}
	result, loaded, err := b.Get("empty-value-key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !loaded {
		t.Errorf("Expected empty value to be loadable")
	}
	if len(result) != 0 {
		t.Errorf("Expected empty value, got %v", result)
	}

	// keys with path-hostile and non-ASCII characters
	hostileKeys := []string{
		"key/with/slashes",
		"key.with.dots",
		"../escape-attempt",
		"key with spaces",
		"schlüssel-Ümläute",
		"key\x00with\x00nulls",
	}
	for _, key := range hostileKeys {
		value := []byte("value-for-" + key)
		if err := b.Set(key, value, false); err != nil {
			t.Fatalf("Set with key %q failed: %v", key, err)
		}
		result, loaded, err := b.Get(key)
		if err != nil {
			t.Fatalf("Get with key %q failed: %v", key, err)
		}
		if !loaded || !bytes.Equal(result, value) {
			t.Errorf("Round trip for key %q failed (loaded=%v)", key, loaded)
		}
	}

	// large value
	largeValue := make([]byte, 1<<20)
	for i := range largeValue {
		largeValue[i] = byte(i % 251)
	}
	if err := b.Set("large-value-key", largeValue, false); err != nil {
		t.Fatalf("Set with large value failed: %v", err)
	}
	result, loaded, _ = b.Get("large-value-key")
	if !loaded || !bytes.Equal(result, largeValue) {
		t.Errorf("Large value round trip failed")
	}
}

func testConcurrentAccess(t *testing.T, b backend.IBackend) {
	defer b.Close()

	numGoroutines := 8
	numOpsPerGoroutine := 200

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for g := 0; g < numGoroutines; g++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < numOpsPerGoroutine; i++ {
				key := fmt.Sprintf("concurrent-key-%d-%d", id, i)
				value := []byte(fmt.Sprintf("concurrent-value-%d-%d", id, i))

				if err := b.Set(key, value, false); err != nil {
					t.Errorf("Concurrent Set failed: %v", err)
					return
				}

				result, loaded, err := b.Get(key)
				if err != nil {
					t.Errorf("Concurrent Get failed: %v", err)
					return
				}
				if !loaded || !bytes.Equal(result, value) {
					t.Errorf("Concurrent round trip for key %s failed", key)
					return
				}

				if i%3 == 0 {
					if err := b.Delete(key, false); err != nil {
						t.Errorf("Concurrent Delete failed: %v", err)
						return
					}
				}
			}
		}(g)
	}

	wg.Wait()
}

func testRealisticUsage(t *testing.T, b backend.IBackend) {
	defer b.Close()

	// a session-store-like usage pattern: many writes, reads and overwrites
	// on a small key set
	keys := []string{"session", "settings", "cache", "token", "profile"}

	for round := 0; round < 50; round++ {
		for i, key := range keys {
			value := []byte(fmt.Sprintf("round-%d-value-%d", round, i))
			sync := i%2 == 0
			if err := b.Set(key, value, sync); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
		}

		for i, key := range keys {
			expected := []byte(fmt.Sprintf("round-%d-value-%d", round, i))
			result, loaded, err := b.Get(key)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if !loaded || !bytes.Equal(result, expected) {
				t.Fatalf("Round %d: expected %s for key %s, got %s", round, expected, key, result)
			}
		}

		if round%10 == 9 {
			if err := b.Delete(keys[round%len(keys)], false); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
		}
	}
}
