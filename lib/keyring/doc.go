// Package keyring supplies the symmetric secret keys used by the encrypted
// backend. Keys are identified by a (namespace, id) pair and created lazily
// on first use.
//
// Key Components:
//
//   - IKeyProvider: The provider contract. GetOrCreateKey is idempotent and
//     stable across process restarts, which is what makes encrypted values
//     readable after a restart.
//
//   - File Keyring: Persists one 32-byte random key per (namespace, id) pair
//     as a mode-0600 file, fsynced on creation so a key can never be lost
//     after data has been encrypted with it.
//
//   - Static Keyring: Returns a single fixed key. Used in tests and by
//     applications that source their key from an external secure facility.
//
// Thread Safety:
//
//	All implementations are safe for concurrent use.
package keyring
