package filebackend

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ValentinKolb/rKV/lib/backend"
	"github.com/puzpuzpuz/xsync/v3"
)

const (
	// fileSuffix is appended to every entry file so unrelated files in the
	// data directory are never mistaken for entries.
	fileSuffix = ".kv"

	// fileMode is the permission mode for entry files.
	fileMode = 0o600
	// dirMode is the permission mode for the data directory.
	dirMode = 0o700
)

// backendImpl implements backend.IBackend with one file per key.
type backendImpl struct {
	dir string

	// cache is a read-through cache of entry values, so repeated reads of the
	// same key do not touch the disk.
	cache *xsync.MapOf[string, []byte]

	// mu guards Destroy (which removes and recreates the data directory)
	// against concurrent file operations. Normal operations take the read
	// side, Destroy takes the write side.
	mu sync.RWMutex
}

// New creates a new file-based backend rooted at dir.
// The directory is created if it does not exist.
func New(dir string) (backend.IBackend, error) {
	if dir == "" {
		return nil, backend.NewError(backend.RetCInvalidOperation, "data directory must not be empty")
	}
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, backend.NewError(backend.RetCIOError, fmt.Sprintf("create data directory: %v", err))
	}

	return &backendImpl{
		dir:   dir,
		cache: xsync.NewMapOf[string, []byte](),
	}, nil
}

// fileName maps a key to its on-disk file name. Keys are base64 encoded so
// arbitrary key names can never escape the data directory or collide with
// file system semantics.
func (b *backendImpl) fileName(key string) string {
	return filepath.Join(b.dir, base64.RawURLEncoding.EncodeToString([]byte(key))+fileSuffix)
}

// syncDir flushes directory metadata so renames and removals are durable.
func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}

// --------------------------------------------------------------------------
// Interface Methods (docu see backend/interface.go)
// --------------------------------------------------------------------------

// Set writes the value via a temp file and an atomic rename, so a crash can
// never leave a half-written entry behind.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (b *backendImpl) Set(key string, value []byte, syncNow bool) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	tmp, err := os.CreateTemp(b.dir, "write-*.tmp")
	if err != nil {
		return backend.NewError(backend.RetCIOError, fmt.Sprintf("create temp file: %v", err))
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return backend.NewError(backend.RetCIOError, fmt.Sprintf("write temp file: %v", err))
	}

	if syncNow {
		if err := tmp.Sync(); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return backend.NewError(backend.RetCIOError, fmt.Sprintf("sync temp file: %v", err))
		}
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return backend.NewError(backend.RetCIOError, fmt.Sprintf("close temp file: %v", err))
	}

	if err := os.Rename(tmpName, b.fileName(key)); err != nil {
		os.Remove(tmpName)
		return backend.NewError(backend.RetCIOError, fmt.Sprintf("rename temp file: %v", err))
	}

	if syncNow {
		if err := syncDir(b.dir); err != nil {
			return backend.NewError(backend.RetCIOError, fmt.Sprintf("sync data directory: %v", err))
		}
	}

	// Copy value so the cached slice stays immutable
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)
	b.cache.Store(key, valueCopy)

	return nil
}

// Delete removes the entry file for a key. Deleting a missing key is a no-op.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (b *backendImpl) Delete(key string, syncNow bool) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	b.cache.Delete(key)

	if err := os.Remove(b.fileName(key)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return backend.NewError(backend.RetCIOError, fmt.Sprintf("remove entry file: %v", err))
	}

	if syncNow {
		if err := syncDir(b.dir); err != nil {
			return backend.NewError(backend.RetCIOError, fmt.Sprintf("sync data directory: %v", err))
		}
	}

	return nil
}

// Get returns the value for a key, serving from the in-process cache when
// possible and falling back to the entry file otherwise.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (b *backendImpl) Get(key string) ([]byte, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if value, loaded := b.cache.Load(key); loaded {
		valueCopy := make([]byte, len(value))
		copy(valueCopy, value)
		return valueCopy, true, nil
	}

	value, err := os.ReadFile(b.fileName(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, backend.NewError(backend.RetCIOError, fmt.Sprintf("read entry file: %v", err))
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)
	b.cache.Store(key, valueCopy)

	return value, true, nil
}

// Destroy removes the whole data directory and recreates it empty.
// The removal is synced durably, independent of any syncNow hint.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (b *backendImpl) Destroy() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cache.Clear()

	if err := os.RemoveAll(b.dir); err != nil {
		return backend.NewError(backend.RetCIOError, fmt.Sprintf("remove data directory: %v", err))
	}
	if err := os.MkdirAll(b.dir, dirMode); err != nil {
		return backend.NewError(backend.RetCIOError, fmt.Sprintf("recreate data directory: %v", err))
	}
	if err := syncDir(filepath.Dir(b.dir)); err != nil {
		return backend.NewError(backend.RetCIOError, fmt.Sprintf("sync parent directory: %v", err))
	}

	return nil
}

func (b *backendImpl) Close() error {
	b.cache.Clear()
	return nil
}
