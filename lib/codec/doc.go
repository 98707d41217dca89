// Package codec provides value serialization for the rKV store. It defines a
// common interface and multiple implementations for converting typed values
// to and from the byte representation the storage backends persist.
//
// The package focuses on:
//   - Providing a consistent interface for different serialization formats
//   - Keeping the store itself codec-agnostic: the router only ever handles
//     opaque byte slices, typed access happens at the call site
//
// Key Components:
//
//   - ICodec: Core interface that all codec implementations must satisfy.
//
//   - jsonCodecImpl: Implementation using JSON encoding. Human readable when
//     inspecting plaintext persistent files, interoperable with other
//     systems, and the default codec of the store.
//
//   - gobCodecImpl: Implementation using Go's built-in gob encoding. More
//     compact for large Go-native structures, but not readable by non-Go
//     tooling.
//
// Thread Safety:
//
//	All codec implementations are stateless and safe for concurrent use
//	across multiple goroutines without additional synchronization.
package codec
