package inbound

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/authgate/internal/auth/usecase"
	"github.com/shandysiswandi/authgate/internal/pkg/clock"
	"github.com/shandysiswandi/authgate/internal/pkg/goerror"
	"github.com/shandysiswandi/authgate/internal/pkg/instrument"
	"github.com/shandysiswandi/authgate/internal/pkg/ratelimit"
	"github.com/shandysiswandi/authgate/internal/pkg/router"
	"github.com/shandysiswandi/authgate/internal/pkg/uid"
)

type stubUC struct {
	signup    func(ctx context.Context, in usecase.SignupInput) (*usecase.SignupOutput, error)
	login     func(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	verify2FA func(ctx context.Context, in usecase.Verify2FAInput) (*usecase.Verify2FAOutput, error)
}

func (s *stubUC) Signup(ctx context.Context, in usecase.SignupInput) (*usecase.SignupOutput, error) {
	return s.signup(ctx, in)
}

func (s *stubUC) Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error) {
	return s.login(ctx, in)
}

func (s *stubUC) Verify2FA(ctx context.Context, in usecase.Verify2FAInput) (*usecase.Verify2FAOutput, error) {
	return s.verify2FA(ctx, in)
}

func newTestRouter(uc uc) *router.Router {
	r := router.NewRouter(router.Config{
		UUID:       uid.NewUUID(),
		Instrument: instrument.NewNoop(),
	})
	RegisterHTTPEndpoint(r, uc, nil)

	return r
}

func TestSignupEndpoint(t *testing.T) {
	stub := &stubUC{
		signup: func(_ context.Context, in usecase.SignupInput) (*usecase.SignupOutput, error) {
			if in.Username != "alice" || in.Password != "Abcdefghijk1" {
				t.Fatalf("unexpected input %+v", in)
			}
			return &usecase.SignupOutput{
				Username:         "alice",
				EnrollmentSecret: "JBSWY3DPEHPK3PXP",
				ProvisioningURI:  "otpauth://totp/AuthGate:alice?secret=JBSWY3DPEHPK3PXP",
			}, nil
		},
	}

	body := `{"username":"alice","password":"Abcdefghijk1","captcha":"7","captcha_expected":"7"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()

	newTestRouter(stub).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data SignupResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Data.TotpSecret != "JBSWY3DPEHPK3PXP" {
		t.Fatalf("unexpected secret %q", resp.Data.TotpSecret)
	}
	if !strings.HasPrefix(resp.Data.ProvisioningURI, "otpauth://totp/") {
		t.Fatalf("unexpected uri %q", resp.Data.ProvisioningURI)
	}
}

func TestLoginEndpointChallenge(t *testing.T) {
	stub := &stubUC{
		login: func(_ context.Context, _ usecase.LoginInput) (*usecase.LoginOutput, error) {
			return &usecase.LoginOutput{
				SecondFactorRequired: true,
				Handle:               "opaque-handle",
				Username:             "alice",
			}, nil
		},
	}

	body := `{"username":"alice","password":"Abcdefghijk1","captcha":"7","captcha_expected":"7"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	newTestRouter(stub).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data LoginResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Data.MfaRequired {
		t.Fatalf("expected mfa challenge")
	}
	if resp.Data.ChallengeToken != "opaque-handle" {
		t.Fatalf("unexpected token %q", resp.Data.ChallengeToken)
	}
	// The username is withheld until the second factor completes.
	if resp.Data.Username != "" {
		t.Fatalf("username leaked in challenge response")
	}
}

func TestLoginEndpointRejection(t *testing.T) {
	stub := &stubUC{
		login: func(_ context.Context, _ usecase.LoginInput) (*usecase.LoginOutput, error) {
			return nil, goerror.NewBusiness("invalid credentials", goerror.CodeUnauthorized)
		},
	}

	body := `{"username":"mallory","password":"Wrongpassword1","captcha":"7","captcha_expected":"7"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	newTestRouter(stub).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Message != "invalid credentials" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestVerify2FAEndpoint(t *testing.T) {
	stub := &stubUC{
		verify2FA: func(_ context.Context, in usecase.Verify2FAInput) (*usecase.Verify2FAOutput, error) {
			if in.Handle != "opaque-handle" || in.Code != "123456" {
				t.Fatalf("unexpected input %+v", in)
			}
			return &usecase.Verify2FAOutput{Username: "alice"}, nil
		},
	}

	body := `{"challenge_token":"opaque-handle","code":"123456"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login/2fa", strings.NewReader(body))
	rec := httptest.NewRecorder()

	newTestRouter(stub).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data Verify2FAResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Data.Username != "alice" {
		t.Fatalf("unexpected username %q", resp.Data.Username)
	}
}

func TestRateLimitCoversOnlyCredentialEndpoints(t *testing.T) {
	stub := &stubUC{
		login: func(_ context.Context, _ usecase.LoginInput) (*usecase.LoginOutput, error) {
			return nil, goerror.NewBusiness("invalid credentials", goerror.CodeUnauthorized)
		},
	}

	r := router.NewRouter(router.Config{
		UUID:       uid.NewUUID(),
		Instrument: instrument.NewNoop(),
	})
	limiter := ratelimit.NewMemory(5, 15*time.Minute, clock.New())
	defer limiter.Close()
	RegisterHTTPEndpoint(r, stub, limiter)
	r.GET("/health", func(_ *router.Request) (any, error) {
		return map[string]string{"status": "ok"}, nil
	})

	body := `{"username":"mallory","password":"Wrongpassword1","captcha":"7","captcha_expected":"7"}`
	for i := range 6 {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
		req.RemoteAddr = "10.0.0.9:51234"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		want := http.StatusUnauthorized
		if i == 5 {
			want = http.StatusTooManyRequests
		}
		if rec.Code != want {
			t.Fatalf("login attempt %d status = %d, want %d", i+1, rec.Code, want)
		}
	}

	// Health checks from the same client keep working while login is throttled.
	for i := range 6 {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "10.0.0.9:51234"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("health check %d status = %d, want %d", i+1, rec.Code, http.StatusOK)
		}
	}
}

func TestEndpointsRejectMalformedBody(t *testing.T) {
	stub := &stubUC{}

	for _, path := range []string{
		"/api/v1/auth/signup",
		"/api/v1/auth/login",
		"/api/v1/auth/login/2fa",
	} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"username":`))
		rec := httptest.NewRecorder()

		newTestRouter(stub).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d: %s", path, rec.Code, rec.Body.String())
		}
	}
}
