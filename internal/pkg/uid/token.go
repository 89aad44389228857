package uid

import (
	"crypto/rand"
	"encoding/base64"
)

// randRead is swapped in tests to exercise the failure branch.
var randRead = rand.Read

// SecureToken generates opaque, unguessable tokens for short-lived handles.
//
// Tokens carry no structure at all: no timestamp, no node identity, no
// counter. Handle values must not be predictable or collidable under
// concurrent requests, so every byte comes from crypto/rand.
type SecureToken struct {
	size int
}

// DefaultTokenSize is the number of random bytes per token (256 bits).
const DefaultTokenSize = 32

// NewSecureToken returns a token generator producing size random bytes per
// token, base64url-encoded. Sizes below 16 bytes are raised to DefaultTokenSize.
func NewSecureToken(size int) *SecureToken {
	if size < 16 {
		size = DefaultTokenSize
	}
	return &SecureToken{size: size}
}

// Generate returns a new random token. The kernel entropy source failing is
// unrecoverable; any token minted without it would be guessable, so Generate
// panics rather than degrade.
func (g *SecureToken) Generate() string {
	buf := make([]byte, g.size)
	if _, err := randRead(buf); err != nil {
		panic("uid: crypto/rand unavailable: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}
