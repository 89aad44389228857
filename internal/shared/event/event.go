// Package event defines the message contracts published by this service.
// Consumers in other services decode against these shapes, so changes here
// must stay backward compatible.
package event

import "time"

const (
	SignupDestination = "auth.signup"
	LoginDestination  = "auth.login"
)

type SignupMessage struct {
	Username string    `json:"username"`
	At       time.Time `json:"at"`
}

type LoginMessage struct {
	Username string    `json:"username"`
	Method   string    `json:"method"`
	At       time.Time `json:"at"`
}
