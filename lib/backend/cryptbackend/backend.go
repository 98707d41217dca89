package cryptbackend

import (
	"fmt"

	"github.com/ValentinKolb/rKV/lib/backend"
	"github.com/ValentinKolb/rKV/lib/envelope"
	"github.com/ValentinKolb/rKV/lib/keyring"
)

const (
	// keyNamespace and keyID identify the symmetric key this backend
	// requests from the key provider.
	keyNamespace = "rkv"
	keyID        = "storage"
)

// backendImpl implements backend.IBackend by wrapping values in an
// authenticated-encryption envelope before handing them to an inner
// persistent backend.
type backendImpl struct {
	inner backend.IBackend
	keys  keyring.IKeyProvider
}

// New creates an encrypted backend on top of inner, sourcing its symmetric
// key from the given provider. The key is requested on every operation, so
// the provider decides whether to cache it.
func New(inner backend.IBackend, keys keyring.IKeyProvider) (backend.IBackend, error) {
	if inner == nil {
		return nil, backend.NewError(backend.RetCInvalidOperation, "inner backend must not be nil")
	}
	if keys == nil {
		return nil, backend.NewError(backend.RetCInvalidOperation, "key provider must not be nil")
	}
	return &backendImpl{
		inner: inner,
		keys:  keys,
	}, nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see backend/interface.go)
// --------------------------------------------------------------------------

// Set wraps the value in an envelope and stores the envelope string under the
// key. The syncNow hint is passed through to the inner backend.
func (b *backendImpl) Set(key string, value []byte, syncNow bool) error {
	secret, err := b.keys.GetOrCreateKey(keyNamespace, keyID)
	if err != nil {
		return backend.NewError(backend.RetCInternalError, fmt.Sprintf("obtain key: %v", err))
	}

	env, err := envelope.Wrap(value, secret)
	if err != nil {
		return backend.NewError(backend.RetCInternalError, fmt.Sprintf("wrap value: %v", err))
	}

	return b.inner.Set(key, []byte(env), syncNow)
}

func (b *backendImpl) Delete(key string, syncNow bool) error {
	return b.inner.Delete(key, syncNow)
}

// Get loads the envelope string for the key and unwraps it. A missing entry,
// a malformed envelope, and a failed authentication tag all yield "not found":
// corruption is never surfaced as an error to the caller.
func (b *backendImpl) Get(key string) ([]byte, bool, error) {
	stored, loaded, err := b.inner.Get(key)
	if err != nil || !loaded {
		return nil, false, err
	}

	secret, err := b.keys.GetOrCreateKey(keyNamespace, keyID)
	if err != nil {
		return nil, false, backend.NewError(backend.RetCInternalError, fmt.Sprintf("obtain key: %v", err))
	}

	plaintext, ok := envelope.Unwrap(string(stored), secret)
	if !ok {
		return nil, false, nil
	}
	return plaintext, true, nil
}

// Destroy wipes the inner backend. Durability is the inner backend's
// responsibility and is required there independent of any syncNow hint.
func (b *backendImpl) Destroy() error {
	return b.inner.Destroy()
}

func (b *backendImpl) Close() error {
	return b.inner.Close()
}
