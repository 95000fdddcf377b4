package hashing

import (
	"fmt"
	"sync"
)

// Manager is a thread-safe driver registry and dispatcher for password
// hashing.  Register one or more named [Hasher] implementations, nominate
// a default driver, and call [Manager.Make] / [Manager.Check] /
// [Manager.NeedsRehash] through the Manager for day-to-day operations.
//
// # Thread safety
//
// All Manager methods are safe for concurrent use by multiple goroutines.
// A [sync.RWMutex] serialises writes (RegisterDriver, SetDefaultDriver)
// while allowing concurrent reads (Make, Check, etc.).
type Manager struct {
	mu      sync.RWMutex
	drivers map[DriverName]Hasher
	def     DriverName
}

// NewManager creates an empty Manager with the given default driver name.
// Drivers must be registered with [Manager.RegisterDriver] before any
// hashing operation is invoked through the Manager.
//
// Use [NewDefaultManager] for the batteries-included variant.
func NewManager(defaultDriver DriverName) *Manager {
	return &Manager{
		drivers: make(map[DriverName]Hasher),
		def:     defaultDriver,
	}
}

// NewDefaultManager creates a Manager with all three built-in drivers
// pre-registered using their recommended default options.  The default
// driver is [DriverSinkproof]; the Argon2id and bcrypt drivers remain
// available through [Manager.CheckWithDetect] for verifying legacy hashes.
func NewDefaultManager() (*Manager, error) {
	sinkH, err := NewSinkproofHasher(DefaultSinkproofOptions())
	if err != nil {
		return nil, fmt.Errorf("hashing: failed to create default sinkproof hasher: %w", err)
	}
	argonH, err := NewArgon2idHasher(DefaultArgon2Options())
	if err != nil {
		return nil, fmt.Errorf("hashing: failed to create default argon2id hasher: %w", err)
	}
	bcryptH, err := NewBcryptHasher(DefaultBcryptOptions())
	if err != nil {
		return nil, fmt.Errorf("hashing: failed to create default bcrypt hasher: %w", err)
	}

	m := NewManager(DriverSinkproof)
	_ = m.RegisterDriver(DriverSinkproof, sinkH)
	_ = m.RegisterDriver(DriverArgon2id, argonH)
	_ = m.RegisterDriver(DriverBcrypt, bcryptH)
	return m, nil
}

// RegisterDriver adds or replaces a named hasher in the Manager.
// It is safe to call while other goroutines are using the Manager.
func (m *Manager) RegisterDriver(name DriverName, h Hasher) error {
	if name == "" {
		return ErrEmptyDriverName
	}
	if h == nil {
		return ErrNilHasher
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[name] = h
	return nil
}

// Driver returns the [Hasher] registered under name, or [ErrDriverNotFound]
// if no such driver has been registered.
func (m *Manager) Driver(name DriverName) (Hasher, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.drivers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDriverNotFound, name)
	}
	return h, nil
}

// SetDefaultDriver changes the driver used by [Manager.Make],
// [Manager.Check], and [Manager.NeedsRehash].  The named driver must
// already be registered.
func (m *Manager) SetDefaultDriver(name DriverName) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drivers[name]; !ok {
		return fmt.Errorf("%w: %q is not registered; call RegisterDriver first",
			ErrDriverNotFound, name)
	}
	m.def = name
	return nil
}

// DefaultDriver returns the name of the currently configured default driver.
func (m *Manager) DefaultDriver() DriverName {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.def
}

// HasDriver reports whether a driver with the given name is registered.
func (m *Manager) HasDriver(name DriverName) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.drivers[name]
	return ok
}

// Make hashes password using the default driver.
func (m *Manager) Make(password string) (string, error) {
	h, err := m.resolveDefault()
	if err != nil {
		return "", err
	}
	return h.Make(password)
}

// Check verifies password against hash using the default driver.
//
// To verify a hash produced by a specific (non-default) driver, use
// [Manager.Driver] or [Manager.CheckWithDetect].
func (m *Manager) Check(password, hash string) (bool, error) {
	h, err := m.resolveDefault()
	if err != nil {
		return false, err
	}
	return h.Check(password, hash)
}

// CheckWithDetect verifies password against hash by automatically
// detecting which driver produced the hash.  This is the entry point for
// credential stores where Sinkproof records coexist with legacy Argon2id
// or bcrypt hashes.
//
// Returns [ErrDriverNotFound] if the detected driver is not registered,
// or [ErrInvalidRecord] if the hash format is unrecognised.
func (m *Manager) CheckWithDetect(password, hash string) (bool, error) {
	h, err := m.resolveByHash(hash)
	if err != nil {
		return false, err
	}
	return h.Check(password, hash)
}

// NeedsRehash reports whether hash should be re-hashed.
//
// It returns true when the hash was produced by a different driver than
// the current default, or by the default driver with different parameters.
// On the next successful login, callers should call [Manager.Make] and
// persist the new hash when this returns true.
func (m *Manager) NeedsRehash(hash string) (bool, error) {
	detected, ok := DetectDriver(hash)
	if !ok {
		return false, ErrInvalidRecord
	}

	m.mu.RLock()
	def := m.def
	m.mu.RUnlock()

	// Different driver → always needs rehash to match the current default.
	if detected != def {
		return true, nil
	}

	h, err := m.Driver(detected)
	if err != nil {
		return false, err
	}
	return h.NeedsRehash(hash)
}

// Info extracts metadata from hash using the default driver.
func (m *Manager) Info(hash string) (HashInfo, error) {
	h, err := m.resolveDefault()
	if err != nil {
		return HashInfo{}, err
	}
	return h.Info(hash)
}

// InfoWithDetect extracts metadata from hash by automatically detecting
// which driver produced it.
func (m *Manager) InfoWithDetect(hash string) (HashInfo, error) {
	h, err := m.resolveByHash(hash)
	if err != nil {
		return HashInfo{}, err
	}
	return h.Info(hash)
}

func (m *Manager) resolveDefault() (Hasher, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.drivers[m.def]
	if !ok {
		return nil, fmt.Errorf("%w: default driver %q has not been registered",
			ErrDriverNotFound, m.def)
	}
	return h, nil
}

func (m *Manager) resolveByHash(hash string) (Hasher, error) {
	name, ok := DetectDriver(hash)
	if !ok {
		return nil, fmt.Errorf("%w: unrecognised hash format", ErrInvalidRecord)
	}
	return m.Driver(name)
}
