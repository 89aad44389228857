package config

import (
	"testing"
	"time"
)

const testYAML = `
app:
  name: authgate
  debug: true
auth:
  password_cost: 12
  pending_ttl_minute: 5
  totp_skew: 1
  seed_key: QUJDREVGR0hJSktMTU5PUFFSU1RVVldYWVowMTIzNDU=
server:
  shutdown_second: 10
  origins: http://localhost:3000,http://localhost:8080
`

func newTestConfig(t *testing.T) *Viper {
	t.Helper()

	cfg, err := NewViperFromBytes("yaml", []byte(testYAML))
	if err != nil {
		t.Fatalf("NewViperFromBytes returned error: %v", err)
	}

	return cfg
}

func TestViper_TypedGetters(t *testing.T) {
	cfg := newTestConfig(t)

	if got := cfg.GetString("app.name"); got != "authgate" {
		t.Errorf("GetString() = %q, want %q", got, "authgate")
	}

	if !cfg.GetBool("app.debug") {
		t.Error("GetBool() = false, want true")
	}

	if got := cfg.GetInt("auth.password_cost"); got != 12 {
		t.Errorf("GetInt() = %d, want 12", got)
	}

	if got := cfg.GetUint("auth.totp_skew"); got != 1 {
		t.Errorf("GetUint() = %d, want 1", got)
	}

	if got := cfg.GetMinute("auth.pending_ttl_minute"); got != 5*time.Minute {
		t.Errorf("GetMinute() = %v, want 5m", got)
	}

	if got := cfg.GetSecond("server.shutdown_second"); got != 10*time.Second {
		t.Errorf("GetSecond() = %v, want 10s", got)
	}
}

func TestViper_GetBinary(t *testing.T) {
	cfg := newTestConfig(t)

	key := cfg.GetBinary("auth.seed_key")
	if len(key) != 32 {
		t.Fatalf("GetBinary() returned %d bytes, want 32", len(key))
	}

	if cfg.GetBinary("server.origins") != nil {
		t.Error("GetBinary() on non-base64 value should return nil")
	}
}

func TestViper_GetArray(t *testing.T) {
	cfg := newTestConfig(t)

	origins := cfg.GetArray("server.origins")
	if len(origins) != 2 || origins[0] != "http://localhost:3000" {
		t.Fatalf("GetArray() = %v", origins)
	}
}

func TestNewViperFromBytes_Invalid(t *testing.T) {
	if _, err := NewViperFromBytes("", []byte("{}")); err == nil {
		t.Fatal("expected error for empty config type")
	}

	if _, err := NewViperFromBytes("yaml", []byte("a: [unclosed")); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}
