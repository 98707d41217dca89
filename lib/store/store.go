package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/ValentinKolb/rKV/lib/backend"
	"github.com/ValentinKolb/rKV/lib/backend/cryptbackend"
	"github.com/ValentinKolb/rKV/lib/backend/filebackend"
	"github.com/ValentinKolb/rKV/lib/backend/membackend"
	"github.com/ValentinKolb/rKV/lib/codec"
	"github.com/ValentinKolb/rKV/lib/keyring"
	"github.com/rs/zerolog"
)

// --------------------------------------------------------------------------
// Store Implementation
// --------------------------------------------------------------------------

// storeImpl implements IStore. Two independent reader/writer locks guard
// disjoint state: accessMu protects the destroyed flag and all backend I/O,
// while the observer registry carries its own lock (see observer.go).
type storeImpl struct {
	backends map[backend.Kind]backend.IBackend
	codec    codec.ICodec
	logger   zerolog.Logger
	registry *observerRegistry

	// accessMu readers: Get, Has, Observe's destroyed check.
	// accessMu writers: Set, RemoveAll, Destroy - the destroyed check must be
	// atomic with the backend mutation.
	accessMu  sync.RWMutex
	destroyed bool
}

// Options configures optional store behavior.
type Options struct {
	// Codec used by the typed accessor functions. Defaults to JSON.
	Codec codec.ICodec
	// Logger for store lifecycle events. Defaults to a disabled logger.
	Logger *zerolog.Logger
}

// New creates a store over the given backends. A backend must be configured
// for every kind; operations on a kind without a backend fail with an
// InvalidOperation error.
func New(backends map[backend.Kind]backend.IBackend, opts *Options) (IStore, error) {
	if opts == nil {
		opts = &Options{}
	}

	for _, kind := range backend.AllKinds() {
		if backends[kind] == nil {
			return nil, backend.NewError(backend.RetCInvalidOperation, fmt.Sprintf("no backend configured for kind %s", kind))
		}
	}

	c := opts.Codec
	if c == nil {
		c = codec.NewJSONCodec()
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	return &storeImpl{
		backends: backends,
		codec:    c,
		logger:   logger,
		registry: newObserverRegistry(),
	}, nil
}

// Open creates a store with the default backend assembly rooted at dataDir:
// a plaintext file backend under dataDir/plain, an encrypted file backend
// under dataDir/encrypted with its key in dataDir/keys, and an in-memory
// backend.
func Open(dataDir string, opts *Options) (IStore, error) {
	plain, err := filebackend.New(filepath.Join(dataDir, "plain"))
	if err != nil {
		return nil, err
	}

	encrypted, err := filebackend.New(filepath.Join(dataDir, "encrypted"))
	if err != nil {
		return nil, err
	}

	keys, err := keyring.NewFileKeyring(filepath.Join(dataDir, "keys"))
	if err != nil {
		return nil, err
	}

	crypt, err := cryptbackend.New(encrypted, keys)
	if err != nil {
		return nil, err
	}

	return New(map[backend.Kind]backend.IBackend{
		backend.KindPersistent:          plain,
		backend.KindEncryptedPersistent: crypt,
		backend.KindMemory:              membackend.New(),
	}, opts)
}

// backendFor resolves the backend owning a kind.
func (s *storeImpl) backendFor(kind backend.Kind) (backend.IBackend, error) {
	b, ok := s.backends[kind]
	if !ok || b == nil {
		return nil, backend.NewError(backend.RetCInvalidOperation, fmt.Sprintf("no backend configured for kind %s", kind))
	}
	return b, nil
}

// wipeLocked destroys the backends of the given kinds.
// Must be called with accessMu held for writing.
func (s *storeImpl) wipeLocked(kinds []backend.Kind) error {
	var errs []error
	for _, kind := range kinds {
		b, err := s.backendFor(kind)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := b.Destroy(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Set(key Key, value Maybe[[]byte]) error {
	s.accessMu.Lock()

	if s.destroyed {
		s.accessMu.Unlock()
		// Storage stays untouched, but an existing subscriber of the key
		// must still see the destroyed condition.
		if st, ok := s.registry.lookup(key.Name); ok {
			st.fail(ErrStoreDestroyed)
		}
		return nil
	}

	b, err := s.backendFor(key.Kind)
	if err != nil {
		s.accessMu.Unlock()
		return err
	}

	if v, ok := value.Unwrap(); ok {
		err = b.Set(key.Name, v, key.SyncNow)
	} else {
		err = b.Delete(key.Name, key.SyncNow)
	}
	s.accessMu.Unlock()

	if err != nil {
		metricSetErrors.Inc()
		return err
	}
	metricSetOps.Inc()

	// Notify after the write's critical section, synchronously from within
	// this call: writes that complete in sequence reach each subscriber in
	// exactly that sequence, with no drops and no reordering.
	if st, ok := s.registry.lookup(key.Name); ok {
		st.publish(value)
	}

	return nil
}

func (s *storeImpl) Get(key Key) (Maybe[[]byte], error) {
	s.accessMu.RLock()
	defer s.accessMu.RUnlock()

	if s.destroyed {
		return None[[]byte](), nil
	}

	b, err := s.backendFor(key.Kind)
	if err != nil {
		return None[[]byte](), err
	}

	value, loaded, err := b.Get(key.Name)
	if err != nil {
		return None[[]byte](), err
	}
	metricGetOps.Inc()

	if !loaded {
		return None[[]byte](), nil
	}
	return Some(value), nil
}

func (s *storeImpl) Has(key Key) (bool, error) {
	value, err := s.Get(key)
	if err != nil {
		return false, err
	}
	return value.IsSome(), nil
}

func (s *storeImpl) Observe(key Key) (*Subscription, error) {
	s.accessMu.RLock()
	destroyed := s.destroyed
	s.accessMu.RUnlock()

	if destroyed {
		return terminatedSubscription(ErrStoreDestroyed), nil
	}

	st, err := s.observerFor(key)
	if err != nil {
		return nil, err
	}
	metricObserveOps.Inc()

	return st.subscribe(), nil
}

func (s *storeImpl) RemoveAll(kinds ...backend.Kind) error {
	s.accessMu.Lock()

	if s.destroyed {
		s.accessMu.Unlock()
		return nil
	}

	err := s.wipeLocked(kinds)
	s.accessMu.Unlock()
	metricRemoveAllOps.Inc()

	// Every registered stream is notified with "cleared", not only those
	// whose backend was wiped.
	s.registry.broadcast(None[[]byte]())

	s.logger.Info().Strs("kinds", kindNames(kinds)).Msg("backends wiped")
	return err
}

func (s *storeImpl) Destroy() error {
	s.accessMu.Lock()

	// idempotent: only the first call transitions and wipes
	if s.destroyed {
		s.accessMu.Unlock()
		return nil
	}
	s.destroyed = true

	err := s.wipeLocked(backend.AllKinds())
	s.accessMu.Unlock()
	metricDestroyOps.Inc()

	// All streams emit "cleared" once, then terminate with the destroyed
	// failure. The transition is irreversible.
	s.registry.broadcast(None[[]byte]())
	s.registry.failAll(ErrStoreDestroyed)

	s.logger.Info().Msg("store destroyed")
	return err
}

func (s *storeImpl) Close() error {
	var errs []error
	for _, kind := range backend.AllKinds() {
		if b := s.backends[kind]; b != nil {
			if err := b.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (s *storeImpl) Codec() codec.ICodec {
	return s.codec
}

func (s *storeImpl) Info() Info {
	s.accessMu.RLock()
	destroyed := s.destroyed
	s.accessMu.RUnlock()

	return Info{
		Destroyed: destroyed,
		Observers: s.registry.size(),
		Kinds:     kindNames(backend.AllKinds()),
	}
}

func kindNames(kinds []backend.Kind) []string {
	names := make([]string, len(kinds))
	for i, kind := range kinds {
		names[i] = kind.String()
	}
	return names
}
