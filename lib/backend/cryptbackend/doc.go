// Package cryptbackend implements the backend.IBackend interface as an
// authenticated-encryption layer over any persistent backend.
//
// Every Set wraps the plaintext value in an AES-GCM envelope (see the
// envelope package) using a symmetric key from the configured key provider,
// and stores the resulting envelope string under the original key name.
// Every Get unwraps the stored envelope; a missing entry, a malformed
// envelope, and a failed authentication tag are all normalized to "not
// found", so callers cannot distinguish tampered data from absent data.
//
// The key provider is consulted on every operation rather than once at
// construction. This keeps the backend free of key state and leaves caching
// policy to the provider.
//
// Thread Safety:
//
//	The backend itself is stateless; concurrency guarantees are those of the
//	inner backend and the key provider.
package cryptbackend
