// Package hashing implements the Sinkproof password-verification scheme:
// a memory-hard, multi-threaded derivation that turns a password and a
// random salt into a symmetric key, which is then used to encrypt a fixed
// verification phrase.  A password verifies iff re-deriving the key from
// the candidate password decrypts and authenticates the stored phrase.
//
// # Architecture
//
// The central abstraction is the [Hasher] interface.  Three drivers ship
// with this package:
//
//   - [SinkproofHasher] — the native scheme (default)
//   - [Argon2idHasher] — Argon2id, PHC string format
//   - [BcryptHasher] — bcrypt, Modular Crypt Format
//
// The conventional drivers exist so that credential stores containing a
// mix of formats can be verified through one entry point, e.g. during a
// migration to Sinkproof records.  All three implement [Hasher], so
// callers can depend on the interface rather than a concrete type.
//
// The [Manager] is a driver registry and dispatcher.  Register named
// [Hasher] implementations, designate one as the default, then delegate
// hashing operations through the Manager.  [Manager.CheckWithDetect]
// dispatches on the hash prefix, so records from all drivers can coexist.
//
// # Quick start
//
//	m, err := hashing.NewDefaultManager()
//	if err != nil { log.Fatal(err) }
//
//	record, _ := m.Make("my-secret-password")
//	ok, _    := m.Check("my-secret-password", record)
//
// Or call the scheme directly:
//
//	rec, err := hashing.Hash("my-secret-password", 4, 64)
//	ok, err  := hashing.Verify("my-secret-password", rec.String())
//
// # Cost model
//
// One Hash or Verify call spawns one worker goroutine per configured
// thread; each fills roughly memory_mb megabytes with chained SHA-256
// state.  Peak memory is therefore threads × memory_mb MB and wall-clock
// time is linear in memory_mb (threads add parallel, not additive, cost).
// Fill tables are discarded when the call returns: the scheme's
// memory-hardness exists only for the duration of a single invocation,
// and no resistance to dedicated parallel hardware is claimed.
// Verification rests on the AEAD tag check in package encryption and is
// not constant-time.
package hashing
