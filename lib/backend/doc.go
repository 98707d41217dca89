// Package backend defines the storage capability shared by all rKV storage
// media. It provides the IBackend interface, the closed set of backend kinds
// used for routing, and a unified error type for backend failures.
//
// The package focuses on:
//   - A minimal three-operation storage contract (Set, Get, Delete) plus a
//     whole-namespace Destroy used for the store's one-way lifecycle
//   - A durability hint (syncNow) that lets callers decide per write whether
//     the operation must be flushed before returning
//   - Typed error reporting through RetCode-based errors
//
// Key Components:
//
//   - IBackend Interface: The core abstraction implemented by every storage
//     medium. The store routes each key to exactly one backend based on the
//     key's declared kind and depends only on this contract.
//
//   - Kind: The fixed identifier selecting which backend owns a given key.
//     Kinds also drive bulk operations: wiping "all persistent data" is
//     expressed as a set of kinds rather than an enumeration of keys.
//
//   - Error System: A structured error reporting mechanism using typed error
//     codes and descriptive messages, mirroring the style used throughout rKV.
//
// Implementations:
//
//	The package includes three implementations of the IBackend interface:
//
//	- Memory Backend (membackend): Pure in-memory storage backed by a
//	  concurrent map. Contents do not survive a process restart.
//	  Available in the "github.com/ValentinKolb/rKV/lib/backend/membackend" package.
//
//	- File Backend (filebackend): Plaintext persistent storage with one file
//	  per key and optional fsync durability.
//	  Available in the "github.com/ValentinKolb/rKV/lib/backend/filebackend" package.
//
//	- Encrypted Backend (cryptbackend): Authenticated-encryption layer over any
//	  persistent backend, using the envelope and keyring packages.
//	  Available in the "github.com/ValentinKolb/rKV/lib/backend/cryptbackend" package.
//
// Thread Safety:
//
//	All implementations are safe for concurrent use by multiple goroutines.
package backend
