// Package otp provides helpers for generating and validating one-time
// passwords (OTP), focused on TOTP (time-based OTP).
//
// This is typically used for 2FA flows: generate a secret and provisioning URI
// for an authenticator app, then validate user-provided codes against the
// stored secret within a configured time-step window.
package otp
