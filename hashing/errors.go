package hashing

import "errors"

// Sentinel errors returned by hashing operations.
//
// Use [errors.Is] for comparisons:
//
//	_, err := hashing.Hash(password, 0, 64)
//	if errors.Is(err, hashing.ErrInvalidOption) {
//	    // configuration was rejected before any work started
//	}
var (
	// ErrInvalidOption is returned when an operation is invoked with a
	// parameter outside the allowed range — zero threads, zero memory, or
	// a driver constructor option that fails validation.  Rejected before
	// any work starts; never retried.
	ErrInvalidOption = errors.New("hashing: invalid option value")

	// ErrInvalidRecord is returned when a hash string cannot be parsed:
	// wrong field count, wrong leading tag, non-numeric parameters, or
	// invalid base64.  The wrapped message names the offending field.
	ErrInvalidRecord = errors.New("hashing: invalid or unrecognised hash string")

	// ErrWorkerFailure is returned when a parallel digest computation
	// aborts.  The whole Hash or Verify call fails; no partial result is
	// produced.  A re-invocation by the caller is a fresh independent
	// attempt.
	ErrWorkerFailure = errors.New("hashing: memory-fill worker aborted")

	// ErrDriverNotFound is returned by [Manager.Driver] or indirectly by
	// [Manager.Make] / [Manager.Check] when the requested driver has not
	// been registered.
	ErrDriverNotFound = errors.New("hashing: driver not found")

	// ErrEmptyDriverName is returned by [Manager.RegisterDriver] when the
	// supplied driver name is an empty string.
	ErrEmptyDriverName = errors.New("hashing: driver name must not be empty")

	// ErrNilHasher is returned by [Manager.RegisterDriver] when a nil
	// [Hasher] is supplied.
	ErrNilHasher = errors.New("hashing: hasher must not be nil")

	// ErrAlgorithmMismatch is returned by a [Hasher]'s Check, NeedsRehash,
	// or Info method when the hash string was produced by a different
	// algorithm than the one implemented by that hasher.
	ErrAlgorithmMismatch = errors.New("hashing: hash was produced by a different algorithm")
)
