package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/authgate/internal/auth/entity"
	"github.com/shandysiswandi/authgate/internal/pkg/goerror"
)

type LoginInput struct {
	Username        string `validate:"required"`
	Password        string `validate:"required"`
	Captcha         string `validate:"required"`
	CaptchaExpected string `validate:"required"`
}

type LoginOutput struct {
	// SecondFactorRequired reports whether the caller must complete a TOTP
	// challenge. When false the attempt is already authenticated.
	SecondFactorRequired bool
	// Handle is the opaque single-use reference for the pending login. Empty
	// unless SecondFactorRequired is true.
	Handle   string
	Username string
}

// Login verifies a username and password behind a captcha gate.
//
// Every failure path returns the same business error so callers cannot tell
// an unknown username from a wrong password.
func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	in.Username = strings.TrimSpace(in.Username)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if !s.captcha.Validate(in.Captcha, in.CaptchaExpected) {
		slog.WarnContext(ctx, "captcha mismatch on login", "username", in.Username)
		return nil, goerror.NewBusiness("invalid captcha", goerror.CodeInvalidInput)
	}

	cred, err := s.repoDB.GetCredentialByUsername(ctx, in.Username)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "login attempt for unknown username")
		return nil, goerror.NewBusiness(msgRejected, goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get credential", "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.bcrypt.Verify(cred.PasswordHash, in.Password) {
		slog.WarnContext(ctx, "password mismatch", "username", in.Username)
		return nil, goerror.NewBusiness(msgRejected, goerror.CodeUnauthorized)
	}

	if !cred.Enrolled() {
		s.publishLoggedIn(ctx, cred.Username, "password")

		return &LoginOutput{Username: cred.Username}, nil
	}

	handle := s.token.Generate()

	handleHash, err := s.hmac.Hash(handle)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash pending login handle", "error", err)
		return nil, goerror.NewServer(err)
	}

	pending := entity.PendingLogin{
		Username:           cred.Username,
		VerifiedPasswordAt: s.clock.Now(),
	}
	if err := s.pending.Save(ctx, string(handleHash), pending, s.pendingTTL()); err != nil {
		slog.ErrorContext(ctx, "failed to save pending login", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LoginOutput{
		SecondFactorRequired: true,
		Handle:               handle,
		Username:             cred.Username,
	}, nil
}

func (s *Usecase) publishLoggedIn(ctx context.Context, username, method string) {
	evt := LoggedInEvent{Username: username, Method: method, At: s.clock.Now()}

	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishLoggedIn(ctx, evt); err != nil {
			slog.ErrorContext(ctx, "failed to publish login event", "username", evt.Username, "error", err)
		}
		return nil
	})
}
