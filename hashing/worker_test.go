package hashing

import (
	"bytes"
	"testing"
)

// worker_test exercises the unexported memory-fill function directly, since
// every stored record depends on its output being exactly reproducible.

func TestFillDigest_Deterministic(t *testing.T) {
	salt := []byte{1, 2, 3, 4}

	for _, budget := range []int{0, 16, 32, 1024, 64 * 1024, 1024 * 1024} {
		out1 := fillDigest("test-password", salt, 0, budget)
		out2 := fillDigest("test-password", salt, 0, budget)

		if len(out1) != workerOutputSize {
			t.Errorf("budget %d: output is %d bytes, want %d", budget, len(out1), workerOutputSize)
		}
		if !bytes.Equal(out1, out2) {
			t.Errorf("budget %d: identical inputs produced different digests", budget)
		}
	}
}

func TestFillDigest_IndexSensitivity(t *testing.T) {
	salt := []byte{1, 2, 3, 4}

	out0 := fillDigest("test-password", salt, 0, 1024)
	out1 := fillDigest("test-password", salt, 1, 1024)

	if bytes.Equal(out0, out1) {
		t.Error("different thread indices produced identical digests")
	}
}

func TestFillDigest_PasswordAndSaltSensitivity(t *testing.T) {
	salt := []byte{1, 2, 3, 4}

	base := fillDigest("test-password", salt, 0, 1024)

	if bytes.Equal(base, fillDigest("test-passworD", salt, 0, 1024)) {
		t.Error("different passwords produced identical digests")
	}
	if bytes.Equal(base, fillDigest("test-password", []byte{4, 3, 2, 1}, 0, 1024)) {
		t.Error("different salts produced identical digests")
	}
}

func TestFillDigest_TinyBudget(t *testing.T) {
	// A budget below one digest size means zero iterations: the output is
	// the initial hash repeated out to 512 bytes.
	out := fillDigest("pw", []byte("salt"), 0, 31)
	if len(out) != workerOutputSize {
		t.Fatalf("output is %d bytes, want %d", len(out), workerOutputSize)
	}
	for i := digestSize; i < workerOutputSize; i++ {
		if out[i] != out[i%digestSize] {
			t.Fatalf("zero-iteration output is not a repetition of h0 at byte %d", i)
		}
	}
}

func TestFillDigest_PaddedTail(t *testing.T) {
	// 4 iterations → 4 table entries: the output must start with those
	// entries and pad with the final one.
	out := fillDigest("pw", []byte("salt"), 0, 4*digestSize)
	if len(out) != workerOutputSize {
		t.Fatalf("output is %d bytes, want %d", len(out), workerOutputSize)
	}
	last := out[3*digestSize : 4*digestSize]
	for i := 4 * digestSize; i < workerOutputSize; i += digestSize {
		end := i + digestSize
		if end > workerOutputSize {
			end = workerOutputSize
		}
		if !bytes.Equal(out[i:end], last[:end-i]) {
			t.Fatalf("padding at offset %d does not repeat the final entry", i)
		}
	}
}

func TestFillDigest_RemixPathDeterministic(t *testing.T) {
	// 2048 iterations crosses the i>1000 remix threshold.
	salt := []byte("remix-salt")
	budget := 2048 * digestSize

	out1 := fillDigest("pw", salt, 3, budget)
	out2 := fillDigest("pw", salt, 3, budget)
	if !bytes.Equal(out1, out2) {
		t.Error("remix path is not deterministic")
	}
}

func TestRotateLeft(t *testing.T) {
	tests := []struct {
		in   []byte
		n    int
		want []byte
	}{
		{[]byte{1, 2, 3, 4}, 1, []byte{2, 3, 4, 1}},
		{[]byte{1, 2, 3, 4}, 3, []byte{4, 1, 2, 3}},
		{[]byte{1, 2, 3, 4}, 4, []byte{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		b := append([]byte(nil), tt.in...)
		rotateLeft(b, tt.n)
		if !bytes.Equal(b, tt.want) {
			t.Errorf("rotateLeft(%v, %d) = %v, want %v", tt.in, tt.n, b, tt.want)
		}
	}
}
