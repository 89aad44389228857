// Package hash provides helpers for hashing and verifying secrets.
//
// Typical usage is for password hashing: store only the hash, then verify user
// input by comparing the plaintext against the stored hash. Implementations
// (like bcrypt) live in this package behind a small interface.
package hash

// Hash is the contract shared by all hashers in this package.
type Hash interface {
	// Hash produces an opaque hash for the given plaintext.
	Hash(plaintext string) ([]byte, error)
	// Verify reports whether plaintext matches the previously produced hash.
	Verify(hashed, plaintext string) bool
}
