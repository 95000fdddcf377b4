package hashing

import (
	"crypto/sha256"
	"encoding/binary"
)

const (
	// digestSize is the size of one table entry (SHA-256 output).
	digestSize = sha256.Size

	// workerOutputSize is the fixed size of a worker's result: the last
	// tailEntries table entries concatenated.
	workerOutputSize = 512
	tailEntries      = workerOutputSize / digestSize
)

// fillDigest is the per-worker memory-fill function.  It chains SHA-256
// over an append-only table until roughly budgetBytes of digests have been
// produced, mixing each new digest with earlier table entries, and returns
// the concatenation of the last 16 entries as a 512-byte digest.
//
// fillDigest is exactly reproducible: identical inputs always yield an
// identical output.  Verification correctness depends on this, so every
// mixing step below is part of the record format and must not change.
//
// For each iteration i:
//
//  1. h = SHA-256(h_prev ‖ le64(i))
//  2. h is XORed with the table entry at position i mod len(table)
//  3. every 100th iteration, h is rotated left by (i mod 16)+1 bytes
//  4. h is appended to the table
//  5. past i=1000, every 500th iteration remixes h with a distant table
//     entry; the remixed value feeds the next iteration while the table
//     keeps the pre-remix entry
//
// The table is a single flat byte arena indexed by entry number, not a
// slice of slices, so the fill stays cache-friendly and the memory cost
// is one contiguous allocation of ~budgetBytes.
func fillDigest(password string, salt []byte, index uint64, budgetBytes int) []byte {
	var le [8]byte
	binary.LittleEndian.PutUint64(le[:], index)

	h := sha256.New()
	h.Write([]byte(password))
	h.Write(salt)
	h.Write(le[:])
	cur := h.Sum(nil)

	// Each iteration contributes one 32-byte entry; a budget below 32
	// bytes means zero iterations and the output is h0 repeated.
	iterations := budgetBytes / digestSize
	table := make([]byte, 0, iterations*digestSize)

	var buf [digestSize + 8]byte
	for i := 0; i < iterations; i++ {
		copy(buf[:digestSize], cur)
		binary.LittleEndian.PutUint64(buf[digestSize:], uint64(i))
		sum := sha256.Sum256(buf[:])
		cur = sum[:]

		if n := len(table) / digestSize; n > 0 {
			entry := table[(i%n)*digestSize:]
			for j := 0; j < digestSize; j++ {
				cur[j] ^= entry[j]
			}
		}

		if i%100 == 0 {
			rotateLeft(cur, i%16+1)
		}

		table = append(table, cur...)

		if i > 1000 && i%500 == 0 {
			n := len(table) / digestSize
			distant := table[((i/2)%n)*digestSize:]
			h := sha256.New()
			h.Write(cur)
			h.Write(distant[:digestSize])
			cur = h.Sum(nil)
		}
	}

	entries := len(table) / digestSize
	start := 0
	if entries > tailEntries {
		start = entries - tailEntries
	}

	out := make([]byte, 0, workerOutputSize+digestSize)
	out = append(out, table[start*digestSize:]...)
	for len(out) < workerOutputSize {
		out = append(out, cur...)
	}
	return out[:workerOutputSize]
}

// rotateLeft rotates b in place by n positions, 0 < n ≤ len(b).
func rotateLeft(b []byte, n int) {
	tmp := make([]byte, n)
	copy(tmp, b[:n])
	copy(b, b[n:])
	copy(b[len(b)-n:], tmp)
}
