package auth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/authgate/internal/auth/entity"
	"github.com/shandysiswandi/authgate/internal/auth/inbound"
	"github.com/shandysiswandi/authgate/internal/auth/outbound/db"
	"github.com/shandysiswandi/authgate/internal/auth/outbound/mq"
	"github.com/shandysiswandi/authgate/internal/auth/usecase"
	"github.com/shandysiswandi/authgate/internal/pkg/captcha"
	"github.com/shandysiswandi/authgate/internal/pkg/clock"
	"github.com/shandysiswandi/authgate/internal/pkg/config"
	"github.com/shandysiswandi/authgate/internal/pkg/goroutine"
	"github.com/shandysiswandi/authgate/internal/pkg/hash"
	"github.com/shandysiswandi/authgate/internal/pkg/instrument"
	"github.com/shandysiswandi/authgate/internal/pkg/messaging"
	"github.com/shandysiswandi/authgate/internal/pkg/mfa"
	"github.com/shandysiswandi/authgate/internal/pkg/otp"
	"github.com/shandysiswandi/authgate/internal/pkg/ratelimit"
	"github.com/shandysiswandi/authgate/internal/pkg/router"
	"github.com/shandysiswandi/authgate/internal/pkg/uid"
	"github.com/shandysiswandi/authgate/internal/pkg/validator"
)

// PendingStore keeps password-verified logins waiting for their second
// factor. Implementations live in outbound/session.
type PendingStore interface {
	Save(ctx context.Context, handleHash string, in entity.PendingLogin, ttl time.Duration) error
	Get(ctx context.Context, handleHash string) (*entity.PendingLogin, error)
	Consume(ctx context.Context, handleHash string) (*entity.PendingLogin, error)
}

type Dependency struct {
	DBConn       *pgxpool.Pool              `validate:"required"`
	Pending      PendingStore               `validate:"required"`
	Goroutine    *goroutine.Manager         `validate:"required"`
	Router       *router.Router             `validate:"required"`
	Messaging    messaging.Messaging        `validate:"required"`
	Config       config.Config              `validate:"required"`
	Instrument   instrument.Instrumentation `validate:"required"`
	UUID         uid.StringID               `validate:"required"`
	Token        uid.StringID               `validate:"required"`
	HMAC         hash.Hash                  `validate:"required"`
	Bcrypt       hash.Hash                  `validate:"required"`
	Captcha      captcha.Validator          `validate:"required"`
	MFAEncryptor mfa.Encryptor              `validate:"required"`
	Clock        clock.Clocker              `validate:"required"`
	Totp         otp.OTP                    `validate:"required"`
	Validator    validator.Validator        `validate:"required"`
	// RateLimiter throttles signup and login; nil disables throttling.
	RateLimiter ratelimit.Limiter
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbAuth := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbAuth,
		Pending:       dep.Pending,
		RepoMessaging: repoMsg,
		Validator:     dep.Validator,
		Captcha:       dep.Captcha,
		Bcrypt:        dep.Bcrypt,
		HMAC:          dep.HMAC,
		Encryptor:     dep.MFAEncryptor,
		Totp:          dep.Totp,
		UUID:          dep.UUID,
		Token:         dep.Token,
		Clock:         dep.Clock,
		Config:        dep.Config,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, dep.RateLimiter)

	return nil
}
