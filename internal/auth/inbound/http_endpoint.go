package inbound

import (
	"github.com/shandysiswandi/authgate/internal/auth/usecase"
	"github.com/shandysiswandi/authgate/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the authentication workflows.
type HTTPEndpoint struct {
	uc uc
}

// Signup registers a new account and returns its TOTP enrollment material.
func (h *HTTPEndpoint) Signup(r *router.Request) (any, error) {
	var req SignupRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Signup(r.Context(), usecase.SignupInput{
		Username:        req.Username,
		Password:        req.Password,
		Captcha:         req.Captcha,
		CaptchaExpected: req.CaptchaExpected,
	})
	if err != nil {
		return nil, err
	}

	return SignupResponse{
		Username:        resp.Username,
		TotpSecret:      resp.EnrollmentSecret,
		ProvisioningURI: resp.ProvisioningURI,
	}, nil
}

// Login checks a username and password and, for enrolled accounts, returns a
// single-use challenge token for the second factor.
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Username:        req.Username,
		Password:        req.Password,
		Captcha:         req.Captcha,
		CaptchaExpected: req.CaptchaExpected,
	})
	if err != nil {
		return nil, err
	}

	out := LoginResponse{MfaRequired: resp.SecondFactorRequired}
	if resp.SecondFactorRequired {
		out.ChallengeToken = resp.Handle
	} else {
		out.Username = resp.Username
	}

	return out, nil
}

// Verify2FA completes a pending login by verifying a TOTP code.
func (h *HTTPEndpoint) Verify2FA(r *router.Request) (any, error) {
	var req Verify2FARequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Verify2FA(r.Context(), usecase.Verify2FAInput{
		Handle: req.ChallengeToken,
		Code:   req.Code,
	})
	if err != nil {
		return nil, err
	}

	return Verify2FAResponse{Username: resp.Username}, nil
}
