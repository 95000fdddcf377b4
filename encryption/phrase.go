// Package encryption seals and opens the Sinkproof verification phrase
// with AES-256-GCM.
//
// The phrase is a compiled-in constant shared by the seal and open paths.
// A password is considered verified when the key derived from it opens a
// previously sealed blob and the recovered plaintext equals the phrase;
// the AEAD tag check is what actually rejects wrong keys.
//
// # Blob layout
//
// A sealed blob is the raw concatenation
//
//	nonce (12 bytes) ‖ ciphertext ‖ authentication tag (16 bytes)
//
// A fresh random nonce is generated for every [SealPhrase] call, so two
// seals under the same key produce different blobs.  With 96-bit random
// nonces the collision probability becomes non-negligible after roughly
// 2^32 seals under one key; Sinkproof seals once per record, far below
// that threshold.
package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
)

// VerificationPhrase is the fixed plaintext sealed into every record.
// It must be byte-identical across the hash and verify paths; changing it
// invalidates every previously produced record.
const VerificationPhrase = "No vendo cigarros sueltos"

const (
	// nonceSize is the AES-GCM nonce length in bytes.
	nonceSize = 12

	// tagSize is the AES-GCM authentication tag length in bytes (128 bits).
	tagSize = 16

	// keySize is the AES-256 key length in bytes.
	keySize = 32
)

// SealPhrase encrypts [VerificationPhrase] under key with AES-256-GCM and
// returns the nonce ‖ ciphertext ‖ tag blob.
//
// The key is normalized to 32 bytes first (see [normalizeKey]); any
// non-empty key is accepted.
func SealPhrase(key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}

	gcm, err := newGCM(normalizeKey(key))
	if err != nil {
		return nil, err
	}

	nonce, err := randomBytes(nonceSize)
	if err != nil {
		return nil, err
	}

	// gcm.Seal appends the tag after the ciphertext: sealed = ciphertext ‖ tag.
	sealed := gcm.Seal(nil, nonce, []byte(VerificationPhrase), nil)
	return append(nonce, sealed...), nil
}

// OpenPhrase decrypts a blob produced by [SealPhrase] and returns the
// recovered plaintext.
//
// The key undergoes the same normalization as in SealPhrase.  Returns
// [ErrBlobTooShort] if blob cannot contain a nonce and a tag, and
// [ErrDecryptionFailed] if the authentication tag does not verify —
// which is what a key derived from a wrong password produces.
func OpenPhrase(key, blob []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	if len(blob) < nonceSize+tagSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d",
			ErrBlobTooShort, len(blob), nonceSize+tagSize)
	}

	gcm, err := newGCM(normalizeKey(key))
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, blob[:nonceSize], blob[nonceSize:], nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

// normalizeKey coerces key to exactly 32 bytes: longer keys are truncated
// to their first 32 bytes, shorter keys are replaced by their SHA-256
// digest (which is 32 bytes, so one step suffices).  The rule is part of
// the record format and must be preserved bit-for-bit for previously
// stored records to remain verifiable.
func normalizeKey(key []byte) []byte {
	for len(key) != keySize {
		if len(key) > keySize {
			key = key[:keySize]
			continue
		}
		sum := sha256.Sum256(key)
		key = sum[:]
	}
	return key
}

// newGCM builds an AES-256-GCM AEAD for a 32-byte key.
func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("encryption: failed to create AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCMWithTagSize(block, tagSize)
	if err != nil {
		return nil, fmt.Errorf("encryption: failed to initialise AES-GCM: %w", err)
	}
	return gcm, nil
}

// randomBytes returns n cryptographically random bytes from crypto/rand.
func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("encryption: failed to generate %d random bytes: %w", n, err)
	}
	return b, nil
}
