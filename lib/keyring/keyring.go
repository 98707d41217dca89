package keyring

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// KeySize is the length of generated symmetric keys in bytes (AES-256).
const KeySize = 32

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IKeyProvider supplies stable symmetric secret keys, creating them on first
// use. GetOrCreateKey is idempotent: for the same (namespace, id) pair it
// always returns the same key, across calls and across process restarts.
type IKeyProvider interface {
	GetOrCreateKey(namespace, id string) (key []byte, err error)
}

// --------------------------------------------------------------------------
// File-Backed Implementation
// --------------------------------------------------------------------------

// fileKeyring implements IKeyProvider with one key file per (namespace, id)
// pair inside a dedicated directory.
type fileKeyring struct {
	dir   string
	mu    sync.Mutex
	cache map[string][]byte
}

// NewFileKeyring creates a key provider that persists keys under dir.
// The directory is created if it does not exist.
func NewFileKeyring(dir string) (IKeyProvider, error) {
	if dir == "" {
		return nil, fmt.Errorf("keyring directory must not be empty")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create keyring directory: %w", err)
	}
	return &fileKeyring{
		dir:   dir,
		cache: make(map[string][]byte),
	}, nil
}

// GetOrCreateKey loads the key for (namespace, id), generating and persisting
// a fresh random key on first use.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (k *fileKeyring) GetOrCreateKey(namespace, id string) ([]byte, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	name := namespace + "." + id
	if key, ok := k.cache[name]; ok {
		return keyCopy(key), nil
	}

	path := filepath.Join(k.dir, name+".key")

	// Fast path: the key already exists on disk
	if key, err := os.ReadFile(path); err == nil {
		if len(key) != KeySize {
			return nil, fmt.Errorf("key file %s has invalid size %d (expected %d)", path, len(key), KeySize)
		}
		k.cache[name] = key
		return keyCopy(key), nil
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	// First use: generate and persist a fresh key
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}

	// The key must be durable before anything is encrypted with it, otherwise
	// a crash could leave ciphertexts without the key that opens them.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create key file: %w", err)
	}
	if _, err := f.Write(key); err != nil {
		f.Close()
		return nil, fmt.Errorf("write key file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return nil, fmt.Errorf("sync key file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close key file: %w", err)
	}

	k.cache[name] = key
	return keyCopy(key), nil
}

// --------------------------------------------------------------------------
// Static Implementation (for testing and embedding)
// --------------------------------------------------------------------------

// staticKeyring implements IKeyProvider with a single fixed key.
type staticKeyring struct {
	key []byte
}

// NewStaticKeyring creates a key provider that always returns the given key,
// regardless of namespace and id. Intended for tests and for applications
// that obtain their key from an external facility.
func NewStaticKeyring(key []byte) IKeyProvider {
	return &staticKeyring{key: keyCopy(key)}
}

func (k *staticKeyring) GetOrCreateKey(_, _ string) ([]byte, error) {
	return keyCopy(k.key), nil
}

// keyCopy returns a private copy so callers can never mutate cached keys.
func keyCopy(key []byte) []byte {
	c := make([]byte, len(key))
	copy(c, key)
	return c
}
