package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/authgate/internal/pkg/goerror"
	"github.com/shandysiswandi/authgate/internal/pkg/mfa"
)

type Verify2FAInput struct {
	Handle string `validate:"required"`
	Code   string `validate:"required"`
}

type Verify2FAOutput struct {
	Username string
}

// Verify2FA finalizes a pending login by checking a TOTP code against the
// account's enrolled secret.
//
// A wrong code leaves the handle alive for another try within its TTL. A
// correct code consumes the handle atomically, so only one of two concurrent
// calls with the same handle can authenticate.
func (s *Usecase) Verify2FA(ctx context.Context, in Verify2FAInput) (*Verify2FAOutput, error) {
	ctx, span := s.startSpan(ctx, "Verify2FA")
	defer span.End()

	in.Code = strings.TrimSpace(in.Code)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if !isValidTOTPCode(in.Code) {
		slog.WarnContext(ctx, "malformed totp code on verify")
		return nil, goerror.NewBusiness(msgRejected, goerror.CodeUnauthorized)
	}

	handleHash, err := s.hmac.Hash(in.Handle)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash pending login handle", "error", err)
		return nil, goerror.NewServer(err)
	}

	pending, err := s.pending.Get(ctx, string(handleHash))
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "verify attempt with unknown or expired handle")
		return nil, goerror.NewBusiness(msgRejected, goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get pending login", "error", err)
		return nil, goerror.NewServer(err)
	}

	cred, err := s.repoDB.GetCredentialByUsername(ctx, pending.Username)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "pending login references missing credential", "username", pending.Username)
		return nil, goerror.NewBusiness(msgRejected, goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get credential", "error", err)
		return nil, goerror.NewServer(err)
	}

	secret, err := s.encryptor.Decrypt(cred.TOTPSecret, mfa.Scope{
		Username: cred.Username,
		Purpose:  mfa.PurposeTOTPSeed,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to decrypt totp secret", "username", cred.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.totp.Validate(in.Code, string(secret), s.clock.Now()) {
		slog.WarnContext(ctx, "totp code mismatch", "username", cred.Username)
		return nil, goerror.NewBusiness(msgRejected, goerror.CodeUnauthorized)
	}

	// Consume after the code check so a wrong guess does not burn the handle.
	// The compare-and-delete inside Consume decides races between concurrent
	// verifications of the same handle.
	if _, err := s.pending.Consume(ctx, string(handleHash)); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			slog.WarnContext(ctx, "pending login already consumed", "username", cred.Username)
			return nil, goerror.NewBusiness(msgRejected, goerror.CodeUnauthorized)
		}

		slog.ErrorContext(ctx, "failed to consume pending login", "error", err)
		return nil, goerror.NewServer(err)
	}

	s.publishLoggedIn(ctx, cred.Username, "totp")

	return &Verify2FAOutput{Username: cred.Username}, nil
}

// isValidTOTPCode reports whether a code looks like a 6-digit TOTP code.
func isValidTOTPCode(code string) bool {
	if len(code) != 6 {
		return false
	}

	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}

	return true
}
