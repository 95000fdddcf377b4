package hashing

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/sinkproof/sinkproof/encryption"
)

const (
	// saltSize is the length of the random salt stored in every record.
	saltSize = 32

	// DefaultSinkproofThreads is the default number of parallel
	// memory-fill workers.
	DefaultSinkproofThreads = 4

	// DefaultSinkproofMemoryMB is the default memory budget per worker in
	// megabytes.  Total peak memory for one call is Threads × MemoryMB MB.
	DefaultSinkproofMemoryMB = 16
)

// ──────────────────────────────────────────────────────────────────────────────
// Engine
// ──────────────────────────────────────────────────────────────────────────────

// Hash derives a Sinkproof record for password.
//
// It generates a fresh 32-byte salt, runs threads parallel memory-fill
// workers with a budget of memoryMB megabytes each, derives a 32-byte key
// from the worker digests in ascending index order, and seals the
// verification phrase under that key.  The digests and the key are
// discarded before Hash returns; only the salt and the sealed phrase are
// retained in the record.
//
// Returns [ErrInvalidOption] if threads or memoryMB is not positive, and
// [ErrWorkerFailure] if any worker aborts (no partial record is returned).
func Hash(password string, threads, memoryMB int) (*Record, error) {
	if threads <= 0 {
		return nil, fmt.Errorf("%w: threads must be > 0, got %d", ErrInvalidOption, threads)
	}
	if memoryMB <= 0 {
		return nil, fmt.Errorf("%w: memory_mb must be > 0, got %d", ErrInvalidOption, memoryMB)
	}

	salt, err := randomSalt(saltSize)
	if err != nil {
		return nil, err
	}

	key, err := deriveKey(password, salt, threads, memoryMB*1024*1024)
	if err != nil {
		return nil, err
	}

	ciphertext, err := encryption.SealPhrase(key)
	if err != nil {
		return nil, err
	}

	return &Record{
		Version:    RecordVersion,
		Threads:    threads,
		MemoryMB:   memoryMB,
		Salt:       salt,
		Ciphertext: ciphertext,
	}, nil
}

// Verify checks password against the serialized record recordText.
//
// The key is recomputed with the record's stored salt and cost parameters
// and used to open the sealed phrase.  A wrong password produces a wrong
// key, the AEAD tag check fails, and Verify returns (false, nil) — never
// an error.  Errors are reserved for malformed records
// ([ErrInvalidRecord]) and aborted workers ([ErrWorkerFailure]).
func Verify(password, recordText string) (bool, error) {
	rec, err := ParseRecord(recordText)
	if err != nil {
		return false, err
	}

	key, err := deriveKey(password, rec.Salt, rec.Threads, rec.MemoryMB*1024*1024)
	if err != nil {
		return false, err
	}

	plaintext, err := encryption.OpenPhrase(key, rec.Ciphertext)
	if err != nil {
		// Failed authentication means a wrong key, i.e. a wrong password.
		return false, nil
	}
	return string(plaintext) == encryption.VerificationPhrase, nil
}

// deriveKey runs the parallel memory-fill fan-out and combines the worker
// digests into a 32-byte key.
//
// Workers share only the read-only password and salt; each writes its own
// slot of the digests slice, so no synchronisation beyond the join is
// needed.  A panicking worker is captured and surfaced as
// [ErrWorkerFailure]; the first failure wins and the call returns nothing.
// The digests are hashed in ascending worker index order — concatenation
// order changes the key, so the order is part of the record format.
func deriveKey(password string, salt []byte, threads, budgetBytes int) ([]byte, error) {
	digests := make([][]byte, threads)

	var g errgroup.Group
	for i := 0; i < threads; i++ {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: worker %d: %v", ErrWorkerFailure, i, r)
				}
			}()
			digests[i] = fillDigest(password, salt, uint64(i), budgetBytes)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	h := sha256.New()
	for _, d := range digests {
		h.Write(d)
	}
	return h.Sum(nil), nil
}

// randomSalt returns n cryptographically random bytes.
func randomSalt(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("hashing: failed to generate salt: %w", err)
	}
	return b, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Driver
// ──────────────────────────────────────────────────────────────────────────────

// SinkproofOptions configures a [SinkproofHasher].
//
// Both parameters are written into every record, so changing them only
// affects newly produced records; existing records remain verifiable
// because verification reads the parameters back from the record itself.
type SinkproofOptions struct {
	// Threads is the number of parallel memory-fill workers.
	// Minimum: 1.  Default: [DefaultSinkproofThreads].
	Threads int

	// MemoryMB is the memory budget per worker in megabytes.
	// Minimum: 1.  Default: [DefaultSinkproofMemoryMB].
	MemoryMB int
}

// DefaultSinkproofOptions returns SinkproofOptions with the package
// defaults.
func DefaultSinkproofOptions() SinkproofOptions {
	return SinkproofOptions{
		Threads:  DefaultSinkproofThreads,
		MemoryMB: DefaultSinkproofMemoryMB,
	}
}

// SinkproofHasher is the [Hasher] driver for the native Sinkproof scheme.
//
// # Thread safety
//
// SinkproofHasher is immutable after construction and safe for concurrent
// use.  Each Make or Check call runs its own worker goroutines and shares
// no state with other calls.
type SinkproofHasher struct {
	opts SinkproofOptions
}

// NewSinkproofHasher constructs a SinkproofHasher with the given options.
// Returns [ErrInvalidOption] if either parameter is not positive.
func NewSinkproofHasher(opts SinkproofOptions) (*SinkproofHasher, error) {
	if opts.Threads < 1 {
		return nil, fmt.Errorf("%w: sinkproof threads must be ≥ 1, got %d",
			ErrInvalidOption, opts.Threads)
	}
	if opts.MemoryMB < 1 {
		return nil, fmt.Errorf("%w: sinkproof memory_mb must be ≥ 1, got %d",
			ErrInvalidOption, opts.MemoryMB)
	}
	return &SinkproofHasher{opts: opts}, nil
}

// Driver returns [DriverSinkproof].
func (h *SinkproofHasher) Driver() DriverName { return DriverSinkproof }

// Options returns the current parameter set.
func (h *SinkproofHasher) Options() SinkproofOptions { return h.opts }

// Make hashes password with the configured cost parameters and returns the
// serialized record text.
func (h *SinkproofHasher) Make(password string) (string, error) {
	rec, err := Hash(password, h.opts.Threads, h.opts.MemoryMB)
	if err != nil {
		return "", err
	}
	return rec.String(), nil
}

// Check verifies password against a serialized record.  The cost
// parameters are read from the record itself, so verification works
// correctly even when the hasher's options have changed.
func (h *SinkproofHasher) Check(password, hash string) (bool, error) {
	if d, ok := DetectDriver(hash); !ok || d != DriverSinkproof {
		return false, fmt.Errorf("%w: hash is not a Sinkproof record", ErrAlgorithmMismatch)
	}
	return Verify(password, hash)
}

// NeedsRehash returns true if the record's version or cost parameters
// differ from the hasher's current configuration.
func (h *SinkproofHasher) NeedsRehash(hash string) (bool, error) {
	rec, err := h.parseOwn(hash)
	if err != nil {
		return false, err
	}
	return rec.Version != RecordVersion ||
		rec.Threads != h.opts.Threads ||
		rec.MemoryMB != h.opts.MemoryMB, nil
}

// Info parses a serialized record and returns its encoded parameters.
//
// Returned [HashInfo].Params:
//   - "version"   → string
//   - "threads"   → int
//   - "memory_mb" → int
func (h *SinkproofHasher) Info(hash string) (HashInfo, error) {
	rec, err := h.parseOwn(hash)
	if err != nil {
		return HashInfo{}, err
	}
	return HashInfo{
		Driver: DriverSinkproof,
		Params: map[string]any{
			"version":   rec.Version,
			"threads":   rec.Threads,
			"memory_mb": rec.MemoryMB,
		},
	}, nil
}

func (h *SinkproofHasher) parseOwn(hash string) (*Record, error) {
	if d, ok := DetectDriver(hash); !ok || d != DriverSinkproof {
		return nil, fmt.Errorf("%w: hash is not a Sinkproof record", ErrAlgorithmMismatch)
	}
	return ParseRecord(hash)
}
