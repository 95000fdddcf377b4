package encryption

import "errors"

// Sentinel errors returned by seal and open operations.
//
// Callers should use errors.Is for comparisons:
//
//	_, err := encryption.OpenPhrase(key, blob)
//	if errors.Is(err, encryption.ErrDecryptionFailed) {
//	    // wrong key — for Sinkproof this means a wrong password
//	}
var (
	// ErrDecryptionFailed is returned when the AES-GCM authentication tag
	// does not verify.  The blob was sealed under a different key or has
	// been tampered with; the cipher cannot tell the two apart.
	ErrDecryptionFailed = errors.New("encryption: authentication failed")

	// ErrBlobTooShort is returned when a blob is too short to contain the
	// 12-byte nonce and 16-byte tag.
	ErrBlobTooShort = errors.New("encryption: sealed blob too short")

	// ErrEmptyKey is returned when a nil or zero-length key is provided.
	ErrEmptyKey = errors.New("encryption: key must not be empty")
)
