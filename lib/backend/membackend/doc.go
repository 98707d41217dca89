// Package membackend implements the backend.IBackend interface with a pure
// in-memory storage medium. Data is held in a concurrent map and is not
// persisted between process restarts.
//
// Key Features:
//   - Lock-free concurrent access through xsync.MapOf
//   - Defensive copying of values on both read and write paths
//   - Constant-time Destroy that clears the whole map
//
// Implementation Details:
//
//   - The syncNow durability hint is ignored: there is nothing to flush for
//     an in-memory medium, so every write is trivially "durable" for the
//     lifetime of the process.
//
//   - Values are copied on Set and Get so that neither the caller nor the
//     backend can mutate the other's view of the data.
//
// Thread Safety:
//
//	All operations are safe for concurrent use by multiple goroutines.
package membackend
