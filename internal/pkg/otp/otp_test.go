package otp

import (
	"strings"
	"testing"
	"time"

	pqotp "github.com/pquerna/otp"
)

func TestTOTP_GenerateAndValidate(t *testing.T) {
	o := NewTOTP("authgate", 30, 1, pqotp.DigitsSix)

	secret, uri, err := o.Generate("alice")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if secret == "" {
		t.Fatal("expected a non-empty secret")
	}

	if !strings.HasPrefix(uri, "otpauth://totp/") {
		t.Fatalf("unexpected provisioning uri: %s", uri)
	}

	now := time.Now()

	code, err := o.GenerateCode(secret, now)
	if err != nil {
		t.Fatalf("GenerateCode returned error: %v", err)
	}

	if len(code) != 6 {
		t.Fatalf("expected a 6-digit code, got %q", code)
	}

	if !o.Validate(code, secret, now) {
		t.Fatal("expected current code to validate")
	}
}

func TestTOTP_ValidateWindow(t *testing.T) {
	o := NewTOTP("authgate", 30, 1, pqotp.DigitsSix)

	secret, _, err := o.Generate("alice")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	now := time.Now()

	code, err := o.GenerateCode(secret, now)
	if err != nil {
		t.Fatalf("GenerateCode returned error: %v", err)
	}

	if !o.Validate(code, secret, now.Add(30*time.Second)) {
		t.Fatal("expected code from previous step to validate within skew")
	}

	if !o.Validate(code, secret, now.Add(-30*time.Second)) {
		t.Fatal("expected code from next step to validate within skew")
	}

	if o.Validate(code, secret, now.Add(5*time.Minute)) {
		t.Fatal("expected stale code outside the window to be rejected")
	}
}

func TestTOTP_ValidateRejectsGarbage(t *testing.T) {
	o := NewTOTP("authgate", 30, 1, pqotp.DigitsSix)

	secret, _, err := o.Generate("alice")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if o.Validate("not-a-code", secret, time.Now()) {
		t.Fatal("expected malformed code to be rejected")
	}
}

func TestTOTP_ProvisioningURI(t *testing.T) {
	o := NewTOTP("authgate", 30, 1, pqotp.DigitsSix)

	uri := o.ProvisioningURI("alice", "JBSWY3DPEHPK3PXP")

	if !strings.HasPrefix(uri, "otpauth://totp/authgate:alice?") {
		t.Fatalf("unexpected uri prefix: %s", uri)
	}

	for _, want := range []string{"secret=JBSWY3DPEHPK3PXP", "issuer=authgate", "period=30", "digits=6", "algorithm=SHA1"} {
		if !strings.Contains(uri, want) {
			t.Fatalf("uri missing %q: %s", want, uri)
		}
	}
}
