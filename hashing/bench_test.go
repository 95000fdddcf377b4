package hashing_test

import (
	"testing"

	"github.com/sinkproof/sinkproof/hashing"
)

// Benchmarks use a 1 MB budget so a run stays in the tens of milliseconds;
// scale --threads/--memory mentally, cost is linear in the memory budget.

func BenchmarkHash_1Thread_1MB(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := hashing.Hash("bench-password", 1, 1); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkHash_4Threads_1MB(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := hashing.Hash("bench-password", 4, 1); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkVerify_2Threads_1MB(b *testing.B) {
	rec, err := hashing.Hash("bench-password", 2, 1)
	if err != nil {
		b.Fatal(err)
	}
	text := rec.String()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := hashing.Verify("bench-password", text); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseRecord(b *testing.B) {
	rec, err := hashing.Hash("bench-password", 2, 1)
	if err != nil {
		b.Fatal(err)
	}
	text := rec.String()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := hashing.ParseRecord(text); err != nil {
			b.Fatal(err)
		}
	}
}
