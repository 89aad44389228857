package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/authgate/internal/auth"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.auth.enabled") {
		if err := auth.New(auth.Dependency{
			Config:       a.config,
			Instrument:   a.ins,
			UUID:         a.uuid,
			Token:        a.token,
			Bcrypt:       a.bcrypt,
			HMAC:         a.hmac,
			Captcha:      a.captcha,
			MFAEncryptor: a.mfaEncryptor,
			Clock:        a.clock,
			Validator:    a.validator,
			Router:       a.router,
			Totp:         a.totp,
			DBConn:       a.dbConn,
			Pending:      a.pending,
			Messaging:    a.messaging,
			Goroutine:    a.goroutine,
			RateLimiter:  a.limiter,
		}); err != nil {
			slog.Error("failed to init module auth", "error", err)
			os.Exit(1)
		}
	}
}
