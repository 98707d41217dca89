package envelope

import (
	"bytes"
	"encoding/base64"
	"testing"
)

var testKey = bytes.Repeat([]byte{0x42}, 32)

// TestRoundTrip tests that plaintexts survive a wrap/unwrap cycle
func TestRoundTrip(t *testing.T) {
	plaintexts := [][]byte{
		[]byte("hello world"),
		[]byte(""),
		[]byte("a"),
		bytes.Repeat([]byte{0x00}, 1024),
		bytes.Repeat([]byte{0xff}, 100000),
	}

	for i, plaintext := range plaintexts {
		env, err := Wrap(plaintext, testKey)
		if err != nil {
			t.Fatalf("Wrap of plaintext %d failed: %v", i, err)
		}

		result, ok := Unwrap(env, testKey)
		if !ok {
			t.Fatalf("Unwrap of plaintext %d failed", i)
		}
		if !bytes.Equal(result, plaintext) {
			t.Errorf("Plaintext %d doesn't match after round trip", i)
		}
	}
}

// TestFreshIV tests that wrapping the same plaintext twice yields different
// envelopes (the IV must never repeat)
func TestFreshIV(t *testing.T) {
	plaintext := []byte("same plaintext")

	env1, err := Wrap(plaintext, testKey)
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}
	env2, err := Wrap(plaintext, testKey)
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}

	if env1 == env2 {
		t.Errorf("Two wraps of the same plaintext produced identical envelopes")
	}
}

// TestUnwrapGarbage tests that malformed envelopes unwrap to absence
func TestUnwrapGarbage(t *testing.T) {
	inputs := []string{
		"",
		"not base64 !!!",
		base64.RawStdEncoding.EncodeToString([]byte("short")),
		base64.RawStdEncoding.EncodeToString(bytes.Repeat([]byte{0x01}, IVSize+TagSize-1)), // one byte short of the prefix
		base64.RawStdEncoding.EncodeToString(bytes.Repeat([]byte{0x01}, IVSize+TagSize)),   // prefix only, no valid tag
		base64.RawStdEncoding.EncodeToString(bytes.Repeat([]byte{0x01}, 64)),
	}

	for i, input := range inputs {
		if result, ok := Unwrap(input, testKey); ok {
			t.Errorf("Input %d unexpectedly unwrapped to %q", i, result)
		}
	}
}

// TestUnwrapTruncated tests that truncating a valid envelope yields absence
func TestUnwrapTruncated(t *testing.T) {
	env, err := Wrap([]byte("truncate me"), testKey)
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}

	for cut := 1; cut < len(env); cut += 4 {
		if _, ok := Unwrap(env[:len(env)-cut], testKey); ok {
			t.Errorf("Envelope truncated by %d bytes unexpectedly unwrapped", cut)
		}
	}
}

// TestUnwrapBitFlip tests that flipping any region of the payload
// (iv, tag or ciphertext) yields absence
func TestUnwrapBitFlip(t *testing.T) {
	env, err := Wrap([]byte("flip me"), testKey)
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}

	payload, err := base64.RawStdEncoding.DecodeString(env)
	if err != nil {
		t.Fatalf("decode envelope: %v", err)
	}

	for i := range payload {
		flipped := make([]byte, len(payload))
		copy(flipped, payload)
		flipped[i] ^= 0x01

		if _, ok := Unwrap(base64.RawStdEncoding.EncodeToString(flipped), testKey); ok {
			t.Errorf("Envelope with bit flip at byte %d unexpectedly unwrapped", i)
		}
	}
}

// TestWrongKey tests that an envelope is not readable with a different key
func TestWrongKey(t *testing.T) {
	env, err := Wrap([]byte("keyed"), testKey)
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}

	otherKey := bytes.Repeat([]byte{0x23}, 32)
	if _, ok := Unwrap(env, otherKey); ok {
		t.Errorf("Envelope unexpectedly unwrapped with a different key")
	}
}

// TestKeySizes tests all valid AES key lengths plus an invalid one
func TestKeySizes(t *testing.T) {
	for _, size := range []int{16, 24, 32} {
		key := bytes.Repeat([]byte{0x11}, size)
		env, err := Wrap([]byte("sized"), key)
		if err != nil {
			t.Fatalf("Wrap with %d byte key failed: %v", size, err)
		}
		if result, ok := Unwrap(env, key); !ok || !bytes.Equal(result, []byte("sized")) {
			t.Errorf("Round trip with %d byte key failed", size)
		}
	}

	if _, err := Wrap([]byte("x"), []byte("tooshort")); err == nil {
		t.Errorf("Wrap with invalid key length should fail")
	}
}

// TestEnvelopeLayout pins the wire layout: iv || tag || ciphertext with the
// documented sizes. A layout change would break persisted data.
func TestEnvelopeLayout(t *testing.T) {
	plaintext := []byte("layout")

	env, err := Wrap(plaintext, testKey)
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}

	payload, err := base64.RawStdEncoding.DecodeString(env)
	if err != nil {
		t.Fatalf("envelope is not raw std base64: %v", err)
	}

	expectedLen := IVSize + TagSize + len(plaintext)
	if len(payload) != expectedLen {
		t.Errorf("Expected payload length %d, got %d", expectedLen, len(payload))
	}
}
