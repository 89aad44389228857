package instrument

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func newCaptureLogger(maskFields []string) (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	jsonHandler := slog.NewJSONHandler(buf, nil)

	handler := &contextHandler{
		Handler:     &maskHandler{handler: jsonHandler, maskKeys: buildMaskKeys(maskFields)},
		serviceName: "authgate",
	}

	return slog.New(handler), buf
}

func TestMaskHandler_RedactsSensitiveKeys(t *testing.T) {
	logger, buf := newCaptureLogger([]string{"password", "captcha", "code"})

	logger.Info("login attempt", "username", "alice", "password", "Sup3rSecretPwd", "code", "123456")

	out := buf.String()

	if strings.Contains(out, "Sup3rSecretPwd") || strings.Contains(out, "123456") {
		t.Fatalf("sensitive values leaked into log output: %s", out)
	}

	if !strings.Contains(out, `"username":"alice"`) {
		t.Fatalf("non-sensitive attrs should pass through: %s", out)
	}

	if !strings.Contains(out, `"password":"***"`) {
		t.Fatalf("masked key should be replaced with ***: %s", out)
	}
}

func TestMaskHandler_RedactsNestedJSON(t *testing.T) {
	logger, buf := newCaptureLogger([]string{"password"})

	logger.Info("payload", "body", `{"username":"alice","password":"Sup3rSecretPwd"}`)

	if strings.Contains(buf.String(), "Sup3rSecretPwd") {
		t.Fatalf("nested json value leaked: %s", buf.String())
	}
}

func TestContextHandler_AddsCorrelationID(t *testing.T) {
	logger, buf := newCaptureLogger(nil)

	ctx := SetCorrelationID(context.Background(), "cid-123")
	logger.InfoContext(ctx, "hello")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log output is not json: %v", err)
	}

	if rec["_cID"] != "cid-123" {
		t.Fatalf("expected correlation id attr, got %v", rec)
	}

	if rec["service"] != "authgate" {
		t.Fatalf("expected service attr, got %v", rec)
	}
}

func TestGetCorrelationID_Absent(t *testing.T) {
	if got := GetCorrelationID(context.Background()); got != "" {
		t.Fatalf("expected empty correlation id, got %q", got)
	}
}
