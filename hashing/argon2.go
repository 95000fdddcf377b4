package hashing

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	// DefaultArgon2Memory is the default memory cost in KiB (64 MiB).
	DefaultArgon2Memory uint32 = 64 * 1024

	// DefaultArgon2Time is the default number of iterations.
	DefaultArgon2Time uint32 = 3

	// DefaultArgon2Threads is the default degree of parallelism.
	DefaultArgon2Threads uint8 = 2

	// DefaultArgon2KeyLen is the default output key length in bytes.
	DefaultArgon2KeyLen uint32 = 32

	// DefaultArgon2SaltLen is the default random salt length in bytes.
	DefaultArgon2SaltLen uint32 = 16
)

// Argon2Options configures an [Argon2idHasher].
//
// All parameters are encoded into the output hash string (PHC format), so
// changing them only affects newly produced hashes.
type Argon2Options struct {
	// Memory is the memory cost in KiB.  Minimum: 8 × Threads.
	Memory uint32

	// Time is the number of passes over memory.  Minimum: 1.
	Time uint32

	// Threads is the degree of parallelism.  Minimum: 1.
	Threads uint8

	// KeyLen is the length of the derived key in bytes.
	KeyLen uint32

	// SaltLen is the length of the random salt in bytes.  Minimum: 8.
	SaltLen uint32
}

// DefaultArgon2Options returns Argon2Options with the recommended defaults.
func DefaultArgon2Options() Argon2Options {
	return Argon2Options{
		Memory:  DefaultArgon2Memory,
		Time:    DefaultArgon2Time,
		Threads: DefaultArgon2Threads,
		KeyLen:  DefaultArgon2KeyLen,
		SaltLen: DefaultArgon2SaltLen,
	}
}

// Argon2idHasher hashes passwords using the Argon2id algorithm.
//
// It exists alongside [SinkproofHasher] so that hashes produced by a
// conventional KDF can still be verified through the same [Manager],
// typically while migrating a credential store to Sinkproof records.
//
// Output format: PHC string ($argon2id$v=19$m=…,t=…,p=…$<salt>$<hash>).
//
// # Thread safety
//
// Argon2idHasher is immutable after construction and safe for concurrent use.
type Argon2idHasher struct {
	opts Argon2Options
}

// NewArgon2idHasher constructs an Argon2idHasher with the given options.
// Use [DefaultArgon2Options] for recommended defaults.
func NewArgon2idHasher(opts Argon2Options) (*Argon2idHasher, error) {
	if opts.Time < 1 {
		return nil, fmt.Errorf("%w: argon2 time must be ≥ 1, got %d", ErrInvalidOption, opts.Time)
	}
	if opts.Threads < 1 {
		return nil, fmt.Errorf("%w: argon2 threads must be ≥ 1, got %d", ErrInvalidOption, opts.Threads)
	}
	if opts.Memory < 8*uint32(opts.Threads) {
		return nil, fmt.Errorf("%w: argon2 memory (%d KiB) must be ≥ 8×threads (%d KiB)",
			ErrInvalidOption, opts.Memory, 8*uint32(opts.Threads))
	}
	if opts.KeyLen < 4 {
		return nil, fmt.Errorf("%w: argon2 key_len must be ≥ 4, got %d", ErrInvalidOption, opts.KeyLen)
	}
	if opts.SaltLen < 8 {
		return nil, fmt.Errorf("%w: argon2 salt_len must be ≥ 8, got %d", ErrInvalidOption, opts.SaltLen)
	}
	return &Argon2idHasher{opts: opts}, nil
}

// Driver returns [DriverArgon2id].
func (h *Argon2idHasher) Driver() DriverName { return DriverArgon2id }

// Options returns the current Argon2 parameter set.
func (h *Argon2idHasher) Options() Argon2Options { return h.opts }

// Make hashes password with Argon2id and returns a PHC-formatted string.
// A fresh random salt of the configured length is generated for each call.
func (h *Argon2idHasher) Make(password string) (string, error) {
	salt, err := randomSalt(int(h.opts.SaltLen))
	if err != nil {
		return "", err
	}
	key := argon2.IDKey(
		[]byte(password), salt,
		h.opts.Time, h.opts.Memory, h.opts.Threads, h.opts.KeyLen,
	)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.opts.Memory, h.opts.Time, h.opts.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Check verifies that password matches the Argon2id PHC hash.  The cost
// parameters are read from the hash string itself.
//
// Comparison of the recomputed key is performed in constant time.
func (h *Argon2idHasher) Check(password, hash string) (bool, error) {
	p, err := decodePHC(hash)
	if err != nil {
		return false, err
	}
	computed := argon2.IDKey([]byte(password), p.salt, p.time, p.memory, p.threads, p.keyLen)
	return subtle.ConstantTimeCompare(computed, p.hash) == 1, nil
}

// NeedsRehash returns true if any parameter stored in hash differs from
// the hasher's current configuration.
func (h *Argon2idHasher) NeedsRehash(hash string) (bool, error) {
	p, err := decodePHC(hash)
	if err != nil {
		return false, err
	}
	return p.memory != h.opts.Memory ||
		p.time != h.opts.Time ||
		p.threads != h.opts.Threads ||
		p.keyLen != h.opts.KeyLen, nil
}

// Info parses the PHC string and returns the encoded parameters.
func (h *Argon2idHasher) Info(hash string) (HashInfo, error) {
	p, err := decodePHC(hash)
	if err != nil {
		return HashInfo{}, err
	}
	return HashInfo{
		Driver: DriverArgon2id,
		Params: map[string]any{
			"version": int(p.version),
			"memory":  p.memory,
			"time":    p.time,
			"threads": p.threads,
			"key_len": p.keyLen,
		},
	}, nil
}

// phcParams holds parameters and raw values decoded from a PHC hash string.
type phcParams struct {
	version uint32
	memory  uint32
	time    uint32
	threads uint8
	keyLen  uint32
	salt    []byte
	hash    []byte
}

// decodePHC parses an Argon2id PHC hash string:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<salt>$<hash>
func decodePHC(encoded string) (*phcParams, error) {
	// Split on "$"; the leading "$" produces an empty first element.
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, fmt.Errorf("%w: expected 5-segment PHC string, got %d segments",
			ErrInvalidRecord, len(parts)-1)
	}
	if parts[1] != string(DriverArgon2id) {
		return nil, fmt.Errorf("%w: hash variant %q is not argon2id", ErrAlgorithmMismatch, parts[1])
	}

	version, err := parsePHCValue(parts[2], "v")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	kvs := strings.Split(parts[3], ",")
	if len(kvs) != 3 {
		return nil, fmt.Errorf("%w: malformed parameter segment %q", ErrInvalidRecord, parts[3])
	}
	memory, err := parsePHCValue(kvs[0], "m")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	time, err := parsePHCValue(kvs[1], "t")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	threads, err := parsePHCValue(kvs[2], "p")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid salt base64: %v", ErrInvalidRecord, err)
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid hash base64: %v", ErrInvalidRecord, err)
	}

	return &phcParams{
		version: uint32(version),
		memory:  uint32(memory),
		time:    uint32(time),
		threads: uint8(threads),
		keyLen:  uint32(len(hash)),
		salt:    salt,
		hash:    hash,
	}, nil
}

// parsePHCValue parses a "key=value" segment and returns the uint64 value.
func parsePHCValue(s, key string) (uint64, error) {
	prefix := key + "="
	if !strings.HasPrefix(s, prefix) {
		return 0, fmt.Errorf("expected %q prefix in %q", prefix, s)
	}
	return strconv.ParseUint(s[len(prefix):], 10, 32)
}
