package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/authgate/internal/pkg/clock"
	"github.com/shandysiswandi/authgate/internal/pkg/goerror"
	"github.com/shandysiswandi/authgate/internal/pkg/instrument"
	"github.com/shandysiswandi/authgate/internal/pkg/ratelimit"
	"github.com/shandysiswandi/authgate/internal/pkg/uid"
)

func newTestRouter() *Router {
	return NewRouter(Config{
		UUID:       uid.NewUUID(),
		Instrument: instrument.NewNoop(),
	})
}

func TestRouter_SuccessEnvelope(t *testing.T) {
	r := newTestRouter()
	r.GET("/ping", func(_ *Request) (any, error) {
		return map[string]string{"pong": "ok"}, nil
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp struct {
		Message string         `json:"message"`
		Data    map[string]any `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("response is not json: %v", err)
	}

	if resp.Data["pong"] != "ok" {
		t.Fatalf("unexpected data: %v", resp.Data)
	}
}

func TestRouter_ErrorEnvelope(t *testing.T) {
	r := newTestRouter()
	r.POST("/boom", func(_ *Request) (any, error) {
		return nil, goerror.NewBusiness("invalid credentials", goerror.CodeUnauthorized)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/boom", strings.NewReader("{}")))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	if !strings.Contains(rec.Body.String(), "invalid credentials") {
		t.Fatalf("body missing message: %s", rec.Body.String())
	}
}

func TestRouter_NotFound(t *testing.T) {
	r := newTestRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRouter_RateLimitPerRoute(t *testing.T) {
	limiter := ratelimit.NewMemory(1, time.Minute, clock.New())
	defer limiter.Close()

	r := newTestRouter()
	r.GET("/ping", func(_ *Request) (any, error) {
		return map[string]string{"pong": "ok"}, nil
	}, RateLimit(limiter))
	r.GET("/health", func(_ *Request) (any, error) {
		return map[string]string{"status": "ok"}, nil
	})

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.9:51234"
	r.ServeHTTP(first, req)

	if first.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want %d", first.Code, http.StatusOK)
	}

	second := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req2.RemoteAddr = "10.0.0.9:51235"
	r.ServeHTTP(second, req2)

	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want %d", second.Code, http.StatusTooManyRequests)
	}

	if second.Result().Header.Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header on throttled response")
	}

	// Routes without the middleware share nothing with the limited one.
	for i := range 3 {
		rec := httptest.NewRecorder()
		hreq := httptest.NewRequest(http.MethodGet, "/health", nil)
		hreq.RemoteAddr = "10.0.0.9:51236"
		r.ServeHTTP(rec, hreq)

		if rec.Code != http.StatusOK {
			t.Fatalf("health request %d status = %d, want %d", i+1, rec.Code, http.StatusOK)
		}
	}
}

func TestRequest_DecodeBody(t *testing.T) {
	body := strings.NewReader(`{"username":"alice"}`)
	req := &Request{Request: httptest.NewRequest(http.MethodPost, "/x", body)}

	var dst struct {
		Username string `json:"username"`
	}
	if err := req.DecodeBody(&dst); err != nil {
		t.Fatalf("DecodeBody returned error: %v", err)
	}
	if dst.Username != "alice" {
		t.Fatalf("Username = %q, want alice", dst.Username)
	}

	bad := &Request{Request: httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"unknown":1}`))}
	if err := bad.DecodeBody(&dst); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestChain_Order(t *testing.T) {
	var order []string

	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		order = append(order, "handler")
	}), mw("outer"), mw("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil).WithContext(context.Background()))

	want := []string{"outer", "inner", "handler"}
	for i, name := range want {
		if order[i] != name {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
