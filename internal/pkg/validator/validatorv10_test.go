package validator

import (
	"errors"
	"testing"
)

type signupForm struct {
	Username string `validate:"required,min=3"`
	Password string `validate:"required,password"`
}

func TestV10Validator_Validate(t *testing.T) {
	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator returned error: %v", err)
	}

	tests := []struct {
		name    string
		in      signupForm
		wantErr bool
	}{
		{
			name: "valid",
			in:   signupForm{Username: "alice", Password: "Sup3rSecretPwd"},
		},
		{
			name:    "too short",
			in:      signupForm{Username: "alice", Password: "short1A"},
			wantErr: true,
		},
		{
			name:    "missing uppercase",
			in:      signupForm{Username: "alice", Password: "alllowercase123"},
			wantErr: true,
		},
		{
			name:    "missing lowercase",
			in:      signupForm{Username: "alice", Password: "ALLUPPERCASE123"},
			wantErr: true,
		},
		{
			name:    "missing digit",
			in:      signupForm{Username: "alice", Password: "NoDigitsHereAtAll"},
			wantErr: true,
		},
		{
			name: "exactly twelve characters",
			in:   signupForm{Username: "alice", Password: "Abcdefghijk1"},
		},
		{
			name:    "missing username",
			in:      signupForm{Password: "Sup3rSecretPwd"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestV10Validator_FieldMessages(t *testing.T) {
	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator returned error: %v", err)
	}

	err = v.Validate(signupForm{Username: "alice", Password: "weak"})

	var verr V10ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected V10ValidationError, got %T", err)
	}

	if _, ok := verr.Values()["password"]; !ok {
		t.Fatalf("expected a password field message, got %v", verr.Values())
	}
}

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Abcdefghijk1", true},
		{"Abcdefghijk", false},
		{"abcdefghijk1", false},
		{"ABCDEFGHIJK1", false},
		{"123456789012", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isStrongPassword(tt.password); got != tt.want {
			t.Errorf("isStrongPassword(%q) = %v, want %v", tt.password, got, tt.want)
		}
	}
}
