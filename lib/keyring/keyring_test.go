package keyring

import (
	"bytes"
	"os"
	"runtime"
	"sync"
	"testing"
)

// TestGetOrCreateIdempotent tests that repeated calls return the same key
func TestGetOrCreateIdempotent(t *testing.T) {
	k, err := NewFileKeyring(t.TempDir())
	if err != nil {
		t.Fatalf("create keyring: %v", err)
	}

	key1, err := k.GetOrCreateKey("rkv", "storage")
	if err != nil {
		t.Fatalf("GetOrCreateKey failed: %v", err)
	}
	if len(key1) != KeySize {
		t.Fatalf("Expected %d byte key, got %d", KeySize, len(key1))
	}

	key2, err := k.GetOrCreateKey("rkv", "storage")
	if err != nil {
		t.Fatalf("GetOrCreateKey failed: %v", err)
	}
	if !bytes.Equal(key1, key2) {
		t.Errorf("Repeated GetOrCreateKey returned different keys")
	}
}

// TestDistinctIdentifiers tests that different (namespace, id) pairs get
// different keys
func TestDistinctIdentifiers(t *testing.T) {
	k, err := NewFileKeyring(t.TempDir())
	if err != nil {
		t.Fatalf("create keyring: %v", err)
	}

	key1, _ := k.GetOrCreateKey("rkv", "storage")
	key2, _ := k.GetOrCreateKey("rkv", "other")
	key3, _ := k.GetOrCreateKey("other", "storage")

	if bytes.Equal(key1, key2) || bytes.Equal(key1, key3) {
		t.Errorf("Different identifiers must yield different keys")
	}
}

// TestPersistsAcrossRestart tests that a fresh keyring over the same
// directory returns the same key
func TestPersistsAcrossRestart(t *testing.T) {
	dir := t.TempDir()

	k1, err := NewFileKeyring(dir)
	if err != nil {
		t.Fatalf("create keyring: %v", err)
	}
	key1, err := k1.GetOrCreateKey("rkv", "storage")
	if err != nil {
		t.Fatalf("GetOrCreateKey failed: %v", err)
	}

	k2, err := NewFileKeyring(dir)
	if err != nil {
		t.Fatalf("reopen keyring: %v", err)
	}
	key2, err := k2.GetOrCreateKey("rkv", "storage")
	if err != nil {
		t.Fatalf("GetOrCreateKey failed: %v", err)
	}

	if !bytes.Equal(key1, key2) {
		t.Errorf("Key did not survive a restart")
	}
}

// TestKeyFilePermissions tests that key files are private
func TestKeyFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}

	dir := t.TempDir()
	k, err := NewFileKeyring(dir)
	if err != nil {
		t.Fatalf("create keyring: %v", err)
	}
	if _, err := k.GetOrCreateKey("rkv", "storage"); err != nil {
		t.Fatalf("GetOrCreateKey failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("Expected exactly one key file (err=%v)", err)
	}
	info, err := entries[0].Info()
	if err != nil {
		t.Fatalf("stat key file: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("Expected key file mode 0600, got %v", info.Mode().Perm())
	}
}

// TestConcurrentAccess tests that concurrent callers all observe the same key
func TestConcurrentAccess(t *testing.T) {
	k, err := NewFileKeyring(t.TempDir())
	if err != nil {
		t.Fatalf("create keyring: %v", err)
	}

	numGoroutines := 16
	keys := make([][]byte, numGoroutines)

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for g := 0; g < numGoroutines; g++ {
		go func(i int) {
			defer wg.Done()
			key, err := k.GetOrCreateKey("rkv", "storage")
			if err != nil {
				t.Errorf("GetOrCreateKey failed: %v", err)
				return
			}
			keys[i] = key
		}(g)
	}
	wg.Wait()

	for i := 1; i < numGoroutines; i++ {
		if !bytes.Equal(keys[0], keys[i]) {
			t.Fatalf("Goroutine %d observed a different key", i)
		}
	}
}

// TestStaticKeyring tests the fixed-key provider
func TestStaticKeyring(t *testing.T) {
	fixed := bytes.Repeat([]byte{0x42}, KeySize)
	k := NewStaticKeyring(fixed)

	key, err := k.GetOrCreateKey("any", "thing")
	if err != nil {
		t.Fatalf("GetOrCreateKey failed: %v", err)
	}
	if !bytes.Equal(key, fixed) {
		t.Errorf("Static keyring returned a different key")
	}

	// mutating the returned key must not affect later calls
	key[0] ^= 0xff
	again, _ := k.GetOrCreateKey("any", "thing")
	if !bytes.Equal(again, fixed) {
		t.Errorf("Returned key is not a private copy")
	}
}
