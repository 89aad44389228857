package messaging

import (
	"context"
	"time"
)

// Noop is a messaging implementation that drops every message.
//
// Useful for local development and tests where no broker is running.
type Noop struct{}

// NewNoop constructs a Noop messaging client.
func NewNoop() *Noop {
	return &Noop{}
}

// Publish drops the message and reports success.
func (*Noop) Publish(_ context.Context, destination string, _ OutgoingMessage) (PublishResult, error) {
	return PublishResult{
		Topic:     destination,
		Timestamp: time.Now(),
	}, nil
}

// Close is a no-op.
func (*Noop) Close() error {
	return nil
}
