package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// Fixed envelope layout sizes. These must never change: persisted envelopes
// are only readable with the exact sizes they were written with.
const (
	// IVSize is the length of the initialization vector in bytes
	// (the standard AES-GCM nonce size).
	IVSize = 12
	// TagSize is the length of the authentication tag in bytes.
	TagSize = 16
)

// Wrap encrypts plaintext with AES-GCM under the given key and returns the
// envelope string: base64 of iv || authTag || ciphertext in that fixed order.
//
// A fresh random IV is generated for every call. An IV must never be reused
// with the same key, so envelopes are not deterministic: wrapping the same
// plaintext twice yields two different strings.
//
// The key must be a valid AES key length (16/24/32 bytes).
func Wrap(plaintext, key []byte) (string, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return "", err
	}

	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("generate iv: %w", err)
	}

	// Seal returns ciphertext || tag; the envelope layout wants the tag
	// directly after the iv, so the two parts are reordered here.
	sealed := aead.Seal(nil, iv, plaintext, nil)
	ciphertext := sealed[:len(sealed)-TagSize]
	tag := sealed[len(sealed)-TagSize:]

	payload := make([]byte, 0, IVSize+TagSize+len(ciphertext))
	payload = append(payload, iv...)
	payload = append(payload, tag...)
	payload = append(payload, ciphertext...)

	return base64.RawStdEncoding.EncodeToString(payload), nil
}

// Unwrap decrypts an envelope string produced by Wrap.
//
// The boolean return value indicates whether a plaintext could be recovered.
// Any failure - bad base64, a truncated payload, or a failed authentication
// tag - yields (nil, false). Corruption and tampering are indistinguishable
// from "not present" at this layer, so no error is ever returned to callers.
func Unwrap(env string, key []byte) ([]byte, bool) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, false
	}

	payload, err := base64.RawStdEncoding.DecodeString(env)
	if err != nil {
		return nil, false
	}
	if len(payload) < IVSize+TagSize {
		return nil, false
	}

	// Split by fixed offsets: iv || tag || ciphertext
	iv := payload[:IVSize]
	tag := payload[IVSize : IVSize+TagSize]
	ciphertext := payload[IVSize+TagSize:]

	// Reassemble into the ciphertext || tag order Open expects
	sealed := make([]byte, 0, len(ciphertext)+TagSize)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := aead.Open(nil, iv, sealed, nil)
	if err != nil {
		return nil, false
	}
	return plaintext, true
}

// newAEAD builds the AES-GCM cipher for a raw AES key.
func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}
	return aead, nil
}
