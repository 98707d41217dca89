// Package filebackend implements the backend.IBackend interface with plaintext
// persistent storage: one file per key inside a dedicated data directory.
//
// Key Features:
//   - Atomic writes through temp-file-plus-rename, so entries can never be
//     observed half written after a crash
//   - Per-write durability control: syncNow=true flushes the entry file and
//     the directory metadata before the write returns
//   - A read-through in-process cache so hot keys are served from memory
//
// Implementation Details:
//
//   - File Naming: Key names are base64 (URL alphabet, no padding) encoded
//     before being used as file names. This keeps arbitrary key strings from
//     escaping the data directory or colliding with path separators, while
//     remaining reversible for debugging.
//
//   - Durability: With syncNow=false the write still goes through the atomic
//     rename, but fsync is skipped and the operating system may flush the data
//     asynchronously. Destroy always syncs, because a wipe must survive an
//     immediate process termination.
//
// Thread Safety:
//
//	All operations are safe for concurrent use. A reader/writer lock
//	serializes Destroy against in-flight file operations; everything else
//	proceeds concurrently.
package filebackend
