package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/authgate/internal/auth/entity"
	"github.com/shandysiswandi/authgate/internal/pkg/goerror"
	"github.com/shandysiswandi/authgate/internal/pkg/mfa"
)

type SignupInput struct {
	Username        string `validate:"required,min=3,max=64"`
	Password        string `validate:"required,password"`
	Captcha         string `validate:"required"`
	CaptchaExpected string `validate:"required"`
}

type SignupOutput struct {
	Username string
	// EnrollmentSecret is the raw base32 TOTP seed, exposed exactly once so
	// the caller can enroll an authenticator app.
	EnrollmentSecret string
	ProvisioningURI  string
}

// Signup creates a credential record and enrolls a TOTP second factor.
//
// The check-and-insert on username is atomic; a duplicate never leaves a
// partial record behind.
func (s *Usecase) Signup(ctx context.Context, in SignupInput) (*SignupOutput, error) {
	ctx, span := s.startSpan(ctx, "Signup")
	defer span.End()

	in.Username = strings.TrimSpace(in.Username)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if !s.captcha.Validate(in.Captcha, in.CaptchaExpected) {
		slog.WarnContext(ctx, "captcha mismatch on signup", "username", in.Username)
		return nil, goerror.NewBusiness("invalid captcha", goerror.CodeInvalidInput)
	}

	secret, uri, err := s.totp.Generate(in.Username)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate totp secret", "username", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	encryptedSecret, err := s.encryptor.Encrypt([]byte(secret), mfa.Scope{
		Username: in.Username,
		Purpose:  mfa.PurposeTOTPSeed,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to encrypt totp secret", "username", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	hashedPassword, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	err = s.repoDB.CreateCredential(ctx, entity.Credential{
		ID:           s.uuid.Generate(),
		Username:     in.Username,
		PasswordHash: string(hashedPassword),
		TOTPSecret:   encryptedSecret,
		CreatedAt:    s.clock.Now(),
	})
	if errors.Is(err, goerror.ErrConflict) {
		slog.WarnContext(ctx, "username already taken", "username", in.Username)
		return nil, goerror.NewBusiness("username already taken", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create credential", "username", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.publishSignedUp(ctx, in.Username)

	return &SignupOutput{
		Username:         in.Username,
		EnrollmentSecret: secret,
		ProvisioningURI:  uri,
	}, nil
}

func (s *Usecase) publishSignedUp(ctx context.Context, username string) {
	evt := SignedUpEvent{Username: username, At: s.clock.Now()}

	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishSignedUp(ctx, evt); err != nil {
			slog.ErrorContext(ctx, "failed to publish signup event", "username", evt.Username, "error", err)
		}
		return nil
	})
}
