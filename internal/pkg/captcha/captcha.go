// Package captcha validates CAPTCHA answers submitted alongside requests.
//
// Challenge generation and rendering happen outside this service; the caller
// submits both the token it solved and the expected value, and the validator
// only decides whether they match.
package captcha

import "crypto/subtle"

// Validator decides whether a submitted CAPTCHA token matches the expected value.
type Validator interface {
	// Validate reports whether token matches expected. Absent values never match.
	Validate(token, expected string) bool
}

// Equal is a Validator backed by a constant-time string comparison.
type Equal struct{}

// NewEqual returns an equality-based CAPTCHA validator.
func NewEqual() *Equal {
	return &Equal{}
}

// Validate reports whether token matches expected.
func (*Equal) Validate(token, expected string) bool {
	if token == "" || expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(expected)) == 1
}
