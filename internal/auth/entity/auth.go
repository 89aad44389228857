package entity

import "time"

// Credential is the durable record for one account.
//
// Records are append-only: once created, username and password hash never
// change in this service.
type Credential struct {
	ID           string
	Username     string
	PasswordHash string
	// TOTPSecret holds the AES-GCM encrypted TOTP seed. Empty means the
	// account has no second factor enrolled.
	TOTPSecret []byte
	CreatedAt  time.Time
}

// Enrolled reports whether the account has a second factor.
func (c Credential) Enrolled() bool {
	return len(c.TOTPSecret) > 0
}

// PendingLogin links a password-verified login attempt to its outstanding
// second-factor check. It is stored keyed by the HMAC of the handle and is
// consumed at most once.
type PendingLogin struct {
	Username           string
	VerifiedPasswordAt time.Time
}
