// Package session stores pending logins between the password check and the
// second factor verification.
//
// Entries are keyed by the HMAC of the handle given to the client, never by
// the handle itself, so a leaked store dump cannot be replayed. Every backend
// honors the same contract: Get peeks without removing, Consume removes
// atomically, and both report goerror.ErrNotFound for absent, expired, or
// already consumed entries.
package session
