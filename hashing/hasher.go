package hashing

import "strings"

// DriverName identifies a hashing algorithm driver.
// Using a named string type prevents accidental confusion with plain strings.
type DriverName string

const (
	// DriverSinkproof selects the native Sinkproof driver.
	DriverSinkproof DriverName = "sinkproof"
	// DriverArgon2id selects the Argon2id driver.
	DriverArgon2id DriverName = "argon2id"
	// DriverBcrypt selects the bcrypt driver.
	DriverBcrypt DriverName = "bcrypt"
)

// Hasher is the core interface satisfied by all password-hashing drivers.
//
// All implementations must be safe for concurrent use by multiple goroutines.
type Hasher interface {
	// Make hashes a plaintext password and returns the encoded hash string.
	// A fresh cryptographic salt is generated for every call, so two calls
	// with the same password will produce different outputs.
	Make(password string) (string, error)

	// Check verifies that password matches the previously encoded hash.
	// Returns (true, nil) on match, (false, nil) on mismatch, or
	// (false, err) if the hash is structurally invalid.
	Check(password, hash string) (bool, error)

	// NeedsRehash returns true when the hash was produced with parameters
	// that differ from the hasher's current configuration.  Callers should
	// re-hash the password on next successful login when this returns true.
	NeedsRehash(hash string) (bool, error)

	// Info extracts metadata from an encoded hash string without verifying it.
	// Useful for auditing, migration tooling, or logging.
	Info(hash string) (HashInfo, error)

	// Driver returns the DriverName implemented by this hasher.
	Driver() DriverName
}

// HashInfo carries metadata parsed from an encoded hash string.
type HashInfo struct {
	// Driver is the hashing algorithm that produced the hash.
	Driver DriverName

	// Params holds algorithm-specific parameters extracted from the hash string.
	//
	// For Sinkproof records:
	//   "version"   → string
	//   "threads"   → int
	//   "memory_mb" → int
	//
	// For Argon2id:
	//   "version" → int    (Argon2 version number, typically 19)
	//   "memory"  → uint32 (KiB)
	//   "time"    → uint32 (iterations)
	//   "threads" → uint8  (degree of parallelism)
	//   "key_len" → uint32 (output key length in bytes)
	//
	// For bcrypt:
	//   "cost" → int
	Params map[string]any
}

// DetectDriver inspects a hash string and returns the [DriverName] that
// produced it.  It is a best-effort heuristic based on the hash prefix and
// does not verify the hash itself.
//
// The second return value is false when the hash format is not recognised.
func DetectDriver(hash string) (DriverName, bool) {
	switch {
	case strings.HasPrefix(hash, recordTag+":"):
		return DriverSinkproof, true
	case strings.HasPrefix(hash, "$argon2id$"):
		return DriverArgon2id, true
	// bcrypt hashes start with $2a$, $2b$, or $2y$
	case strings.HasPrefix(hash, "$2a$"),
		strings.HasPrefix(hash, "$2b$"),
		strings.HasPrefix(hash, "$2y$"):
		return DriverBcrypt, true
	default:
		return "", false
	}
}
