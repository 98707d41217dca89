// Package cmd implements the command-line interface for the rKV key-value
// store. It provides a hierarchical command structure with operations for
// reading, writing and watching keys across the configured backends.
//
// The package is organized into several subpackages:
//
//   - kv: Commands for key-value store operations (get, set, del, watch, etc.)
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See rkv -help for a list of all commands.
package cmd
