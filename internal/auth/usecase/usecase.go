package usecase

import (
	"context"
	"time"

	"github.com/shandysiswandi/authgate/internal/auth/entity"
	"github.com/shandysiswandi/authgate/internal/pkg/captcha"
	"github.com/shandysiswandi/authgate/internal/pkg/clock"
	"github.com/shandysiswandi/authgate/internal/pkg/config"
	"github.com/shandysiswandi/authgate/internal/pkg/goroutine"
	"github.com/shandysiswandi/authgate/internal/pkg/hash"
	"github.com/shandysiswandi/authgate/internal/pkg/instrument"
	"github.com/shandysiswandi/authgate/internal/pkg/mfa"
	"github.com/shandysiswandi/authgate/internal/pkg/otp"
	"github.com/shandysiswandi/authgate/internal/pkg/uid"
	"github.com/shandysiswandi/authgate/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// msgRejected is the single outward message for every authentication failure:
// unknown user, wrong password, invalid or expired handle, wrong code. Keeping
// one shape prevents username enumeration.
const msgRejected = "invalid credentials"

const defaultPendingTTL = 5 * time.Minute

// SignedUpEvent is emitted after a credential record is created.
type SignedUpEvent struct {
	Username string
	At       time.Time
}

// LoggedInEvent is emitted after a login attempt fully authenticates.
type LoggedInEvent struct {
	Username string
	// Method is "password" or "totp" depending on how the attempt finalized.
	Method string
	At     time.Time
}

type repoMessaging interface {
	PublishSignedUp(ctx context.Context, msg SignedUpEvent) error
	PublishLoggedIn(ctx context.Context, msg LoggedInEvent) error
}

type repoDB interface {
	CreateCredential(ctx context.Context, in entity.Credential) error
	GetCredentialByUsername(ctx context.Context, username string) (*entity.Credential, error)
}

// pendingStore holds pending logins keyed by the HMAC of the handle.
//
// Get peeks without removing. Consume removes atomically and returns
// goerror.ErrNotFound when the entry is absent, expired, or already consumed
// by a concurrent call.
type pendingStore interface {
	Save(ctx context.Context, handleHash string, in entity.PendingLogin, ttl time.Duration) error
	Get(ctx context.Context, handleHash string) (*entity.PendingLogin, error)
	Consume(ctx context.Context, handleHash string) (*entity.PendingLogin, error)
}

type Usecase struct {
	repoDB        repoDB
	pending       pendingStore
	repoMessaging repoMessaging
	validator     validator.Validator
	captcha       captcha.Validator
	bcrypt        hash.Hash
	hmac          hash.Hash
	encryptor     mfa.Encryptor
	totp          otp.OTP
	uuid          uid.StringID
	token         uid.StringID
	clock         clock.Clocker
	cfg           config.Config
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	Pending       pendingStore
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Captcha       captcha.Validator
	Bcrypt        hash.Hash
	HMAC          hash.Hash
	Encryptor     mfa.Encryptor
	Totp          otp.OTP
	// UUID mints credential record identifiers.
	UUID uid.StringID
	// Token mints unguessable pending-login handles.
	Token      uid.StringID
	Clock      clock.Clocker
	Config     config.Config
	Instrument instrument.Instrumentation
	Goroutine  *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		pending:       dep.Pending,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		captcha:       dep.Captcha,
		bcrypt:        dep.Bcrypt,
		hmac:          dep.HMAC,
		encryptor:     dep.Encryptor,
		totp:          dep.Totp,
		uuid:          dep.UUID,
		token:         dep.Token,
		clock:         dep.Clock,
		cfg:           dep.Config,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}

func (s *Usecase) pendingTTL() time.Duration {
	if s.cfg == nil {
		return defaultPendingTTL
	}

	if ttl := s.cfg.GetMinute("modules.auth.pending_ttl_minutes"); ttl > 0 {
		return ttl
	}

	return defaultPendingTTL
}
