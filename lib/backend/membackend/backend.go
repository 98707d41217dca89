package membackend

import (
	"github.com/ValentinKolb/rKV/lib/backend"
	"github.com/puzpuzpuz/xsync/v3"
)

// backendImpl implements backend.IBackend with a concurrent in-memory map.
type backendImpl struct {
	data *xsync.MapOf[string, []byte]
}

// New creates a new in-memory backend. Contents are lost when the process
// exits; the syncNow durability hint is a no-op for this backend.
func New() backend.IBackend {
	return &backendImpl{
		data: xsync.NewMapOf[string, []byte](),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see backend/interface.go)
// --------------------------------------------------------------------------

func (b *backendImpl) Set(key string, value []byte, _ bool) error {
	// Copy value to prevent memory corruption by the caller
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)
	b.data.Store(key, valueCopy)
	return nil
}

func (b *backendImpl) Delete(key string, _ bool) error {
	b.data.Delete(key)
	return nil
}

func (b *backendImpl) Get(key string) ([]byte, bool, error) {
	value, loaded := b.data.Load(key)
	if !loaded {
		return nil, false, nil
	}

	// Copy value so the stored slice stays immutable
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)
	return valueCopy, true, nil
}

func (b *backendImpl) Destroy() error {
	b.data.Clear()
	return nil
}

func (b *backendImpl) Close() error {
	return nil
}
