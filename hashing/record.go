package hashing

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const (
	// recordTag is the literal first field of every serialized record.
	recordTag = "Sinkproof"

	// RecordVersion is the format version written into new records.
	RecordVersion = "v1"
)

// A Record is the persisted form of a completed Sinkproof hash operation:
// the format version, the cost parameters needed to recompute the key, the
// salt, and the encrypted verification phrase.  Records are immutable once
// constructed; the only operations on them are [Record.String] and
// [ParseRecord].
//
// The derived key itself is never stored — possession of a Record reveals
// nothing about the password beyond what a brute-force recomputation of
// the scheme would cost.
type Record struct {
	// Version is the format version, "v1" for records produced by this
	// package.
	Version string

	// Threads is the number of parallel memory-fill workers used.
	Threads int

	// MemoryMB is the memory budget per worker in megabytes.
	MemoryMB int

	// Salt is the 32-byte random salt generated when the record was made.
	Salt []byte

	// Ciphertext is the sealed verification phrase:
	// 12-byte nonce ‖ ciphertext ‖ 16-byte authentication tag.
	Ciphertext []byte
}

// String serialises the record in the canonical colon-delimited text form:
//
//	Sinkproof:<version>:<threads>:<memory_mb>:<salt_base64>:<ciphertext_base64>
//
// Both binary fields use the standard base64 alphabet, so no ':' ever
// appears inside a field and the output always splits into exactly six
// parts.
func (r *Record) String() string {
	return strings.Join([]string{
		recordTag,
		r.Version,
		strconv.Itoa(r.Threads),
		strconv.Itoa(r.MemoryMB),
		base64.StdEncoding.EncodeToString(r.Salt),
		base64.StdEncoding.EncodeToString(r.Ciphertext),
	}, ":")
}

// ParseRecord parses the canonical text form produced by [Record.String].
//
// All violations return an error wrapping [ErrInvalidRecord] that names
// the offending field: wrong field count, wrong leading tag, non-numeric
// threads or memory, or invalid base64.  Parsing is purely structural —
// it does not reject zero cost parameters, so a parsed record is not
// guaranteed to verify.
func ParseRecord(text string) (*Record, error) {
	parts := strings.Split(text, ":")
	if len(parts) != 6 {
		return nil, fmt.Errorf("%w: expected 6 colon-delimited fields, got %d",
			ErrInvalidRecord, len(parts))
	}
	if parts[0] != recordTag {
		return nil, fmt.Errorf("%w: leading tag is %q, want %q",
			ErrInvalidRecord, parts[0], recordTag)
	}

	threads, err := strconv.ParseUint(parts[2], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: threads field %q is not a non-negative integer",
			ErrInvalidRecord, parts[2])
	}
	memoryMB, err := strconv.ParseUint(parts[3], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: memory field %q is not a non-negative integer",
			ErrInvalidRecord, parts[3])
	}

	salt, err := base64.StdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, fmt.Errorf("%w: salt field is not valid base64: %v",
			ErrInvalidRecord, err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, fmt.Errorf("%w: ciphertext field is not valid base64: %v",
			ErrInvalidRecord, err)
	}

	return &Record{
		Version:    parts[1],
		Threads:    int(threads),
		MemoryMB:   int(memoryMB),
		Salt:       salt,
		Ciphertext: ciphertext,
	}, nil
}
