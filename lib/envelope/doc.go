// Package envelope implements the authenticated-encryption envelope used by
// the encrypted backend. It wraps a byte payload with AES-GCM and serializes
// the result as a single storable string.
//
// Envelope Layout:
//
//	base64( iv(12) || authTag(16) || ciphertext(variable) )
//
// The three parts are concatenated in exactly this order and split back by
// fixed offsets. The sizes are the conventional AES-GCM sizes and are fixed
// for round-trip compatibility: an envelope written by one process version
// must be readable by any other.
//
// Failure Semantics:
//
//	Unwrap never raises on bad input. A malformed, truncated, or tampered
//	envelope yields "no value" - from a reader's point of view a corrupted
//	ciphertext is indistinguishable from a value that was never written.
//	There is no retry logic: a failed authenticated decryption is terminal
//	for that read.
//
// Thread Safety:
//
//	Wrap and Unwrap are stateless and safe for concurrent use.
package envelope
