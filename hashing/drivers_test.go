package hashing_test

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/sinkproof/sinkproof/hashing"
)

// fastArgon2Opts returns minimal Argon2 parameters for unit tests.
func fastArgon2Opts() hashing.Argon2Options {
	return hashing.Argon2Options{
		Memory:  8 * 2, // 8 × Threads minimum
		Time:    1,
		Threads: 2,
		KeyLen:  16,
		SaltLen: 8,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Argon2id driver
// ──────────────────────────────────────────────────────────────────────────────

func TestNewArgon2idHasher_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts hashing.Argon2Options
	}{
		{"time=0", hashing.Argon2Options{Memory: 64, Time: 0, Threads: 1, KeyLen: 16, SaltLen: 8}},
		{"threads=0", hashing.Argon2Options{Memory: 64, Time: 1, Threads: 0, KeyLen: 16, SaltLen: 8}},
		{"memory too low", hashing.Argon2Options{Memory: 1, Time: 1, Threads: 2, KeyLen: 16, SaltLen: 8}},
		{"key_len<4", hashing.Argon2Options{Memory: 64, Time: 1, Threads: 1, KeyLen: 3, SaltLen: 8}},
		{"salt_len<8", hashing.Argon2Options{Memory: 64, Time: 1, Threads: 1, KeyLen: 16, SaltLen: 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := hashing.NewArgon2idHasher(tt.opts)
			if !errors.Is(err, hashing.ErrInvalidOption) {
				t.Errorf("expected ErrInvalidOption, got %v", err)
			}
		})
	}
}

func TestArgon2idHasher_MakeCheck(t *testing.T) {
	h, err := hashing.NewArgon2idHasher(fastArgon2Opts())
	if err != nil {
		t.Fatalf("NewArgon2idHasher: %v", err)
	}

	hash, err := h.Make("argon-password")
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$") {
		t.Errorf("hash %q lacks PHC prefix", hash)
	}

	ok, err := h.Check("argon-password", hash)
	if err != nil || !ok {
		t.Errorf("correct password: ok=%v err=%v", ok, err)
	}
	ok, err = h.Check("wrong-password", hash)
	if err != nil || ok {
		t.Errorf("wrong password: ok=%v err=%v", ok, err)
	}
}

func TestArgon2idHasher_NeedsRehashAndInfo(t *testing.T) {
	h, err := hashing.NewArgon2idHasher(fastArgon2Opts())
	if err != nil {
		t.Fatalf("NewArgon2idHasher: %v", err)
	}
	hash, err := h.Make("pw")
	if err != nil {
		t.Fatalf("Make: %v", err)
	}

	needs, err := h.NeedsRehash(hash)
	if err != nil || needs {
		t.Errorf("fresh hash: needs=%v err=%v", needs, err)
	}

	stronger, _ := hashing.NewArgon2idHasher(hashing.DefaultArgon2Options())
	needs, err = stronger.NeedsRehash(hash)
	if err != nil || !needs {
		t.Errorf("weaker hash under stronger config: needs=%v err=%v", needs, err)
	}

	info, err := h.Info(hash)
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.Driver != hashing.DriverArgon2id {
		t.Errorf("driver = %q, want argon2id", info.Driver)
	}
	if got := info.Params["time"]; got != uint32(1) {
		t.Errorf(`Params["time"] = %v, want 1`, got)
	}
}

func TestArgon2idHasher_MalformedHash(t *testing.T) {
	h, err := hashing.NewArgon2idHasher(fastArgon2Opts())
	if err != nil {
		t.Fatalf("NewArgon2idHasher: %v", err)
	}
	for _, bad := range []string{
		"",
		"$argon2id$v=19$m=16,t=1$c2FsdA$aGFzaA",    // missing p
		"$argon2id$v=19$m=16,t=1,p=2$!!$aGFzaA",    // bad salt
		"$argon2id$v=x$m=16,t=1,p=2$c2FsdA$aGFzaA", // bad version
	} {
		if _, err := h.Check("pw", bad); !errors.Is(err, hashing.ErrInvalidRecord) {
			t.Errorf("Check(%q) error = %v, want ErrInvalidRecord", bad, err)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Bcrypt driver
// ──────────────────────────────────────────────────────────────────────────────

func TestBcryptHasher_MakeCheck(t *testing.T) {
	h, err := hashing.NewBcryptHasher(hashing.BcryptOptions{Cost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("NewBcryptHasher: %v", err)
	}

	hash, err := h.Make("bcrypt-password")
	if err != nil {
		t.Fatalf("Make: %v", err)
	}

	ok, err := h.Check("bcrypt-password", hash)
	if err != nil || !ok {
		t.Errorf("correct password: ok=%v err=%v", ok, err)
	}
	ok, err = h.Check("wrong-password", hash)
	if err != nil || ok {
		t.Errorf("wrong password: ok=%v err=%v", ok, err)
	}
}

func TestNewBcryptHasher_InvalidCost(t *testing.T) {
	for _, cost := range []int{bcrypt.MinCost - 1, bcrypt.MaxCost + 1} {
		_, err := hashing.NewBcryptHasher(hashing.BcryptOptions{Cost: cost})
		if !errors.Is(err, hashing.ErrInvalidOption) {
			t.Errorf("cost %d: expected ErrInvalidOption, got %v", cost, err)
		}
	}
}

func TestBcryptHasher_NeedsRehash(t *testing.T) {
	weak, _ := hashing.NewBcryptHasher(hashing.BcryptOptions{Cost: bcrypt.MinCost})
	hash, err := weak.Make("pw")
	if err != nil {
		t.Fatalf("Make: %v", err)
	}

	strong, _ := hashing.NewBcryptHasher(hashing.BcryptOptions{Cost: bcrypt.MinCost + 1})
	needs, err := strong.NeedsRehash(hash)
	if err != nil || !needs {
		t.Errorf("weaker hash under stronger config: needs=%v err=%v", needs, err)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// DetectDriver
// ──────────────────────────────────────────────────────────────────────────────

func TestDetectDriver(t *testing.T) {
	tests := []struct {
		hash string
		want hashing.DriverName
		ok   bool
	}{
		{"Sinkproof:v1:2:1:AQID:BAUG", hashing.DriverSinkproof, true},
		{"$argon2id$v=19$m=16,t=1,p=2$c2FsdA$aGFzaA", hashing.DriverArgon2id, true},
		{"$2b$12$abcdefghijklmnopqrstuv", hashing.DriverBcrypt, true},
		{"$2a$10$abcdefghijklmnopqrstuv", hashing.DriverBcrypt, true},
		{"$2y$10$abcdefghijklmnopqrstuv", hashing.DriverBcrypt, true},
		{"Sinkproofish:v1:...", "", false},
		{"plain-text", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := hashing.DetectDriver(tt.hash)
		if got != tt.want || ok != tt.ok {
			t.Errorf("DetectDriver(%q) = (%q, %v), want (%q, %v)", tt.hash, got, ok, tt.want, tt.ok)
		}
	}
}
