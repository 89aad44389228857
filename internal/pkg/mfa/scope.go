package mfa

// Purpose identifies the MFA encryption purpose.
type Purpose string

// PurposeTOTPSeed scopes encryption to TOTP seeds.
const PurposeTOTPSeed Purpose = "totp_seed"

// Scope binds encryption to MFA-specific identifiers.
// This is used as AAD (Additional Authenticated Data) in AES-GCM, so a
// ciphertext sealed for one account cannot be opened for another.
type Scope struct {
	// Username is the account identifier for scoping.
	Username string
	// Purpose is the encryption purpose.
	Purpose Purpose
}
