package messaging

import (
	"context"
	"errors"
	"testing"
)

func TestNewFromDriver(t *testing.T) {
	tests := []struct {
		name    string
		driver  string
		wantErr error
	}{
		{name: "noop", driver: "noop"},
		{name: "empty defaults to noop", driver: ""},
		{name: "kafka without brokers", driver: "kafka", wantErr: ErrKafkaBrokersRequired},
		{name: "nats without url", driver: "nats", wantErr: ErrNATSURLRequired},
		{name: "unknown", driver: "rabbitmq", wantErr: ErrUnknownDriver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewFromDriver(tt.driver, FactoryOptions{})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewFromDriver(%q) error = %v, want %v", tt.driver, err, tt.wantErr)
			}
			if tt.wantErr == nil && m == nil {
				t.Fatal("expected a messaging client")
			}
		})
	}
}

func TestNoop_Publish(t *testing.T) {
	n := NewNoop()

	res, err := n.Publish(context.Background(), "auth.signup", OutgoingMessage{Body: []byte(`{}`)})
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}

	if res.Topic != "auth.signup" {
		t.Fatalf("Topic = %q, want auth.signup", res.Topic)
	}

	if err := n.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
}
