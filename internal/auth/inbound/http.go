package inbound

import (
	"context"

	"github.com/shandysiswandi/authgate/internal/auth/usecase"
	"github.com/shandysiswandi/authgate/internal/pkg/ratelimit"
	"github.com/shandysiswandi/authgate/internal/pkg/router"
)

type uc interface {
	Signup(ctx context.Context, in usecase.SignupInput) (*usecase.SignupOutput, error)
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	Verify2FA(ctx context.Context, in usecase.Verify2FAInput) (*usecase.Verify2FAOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc, limiter ratelimit.Limiter) {
	end := &HTTPEndpoint{uc: uc}

	// Only the credential endpoints are throttled. The second factor step is
	// already gated by the single-use handle.
	rl := router.RateLimit(limiter)

	r.POST("/api/v1/auth/signup", end.Signup, rl)
	r.POST("/api/v1/auth/login", end.Login, rl)
	r.POST("/api/v1/auth/login/2fa", end.Verify2FA)
}
