package screen

import "github.com/aretw0/aura/pkg/domain"

// FailureError is returned by a command that failed. Message is the Error value
// written to the slot; it is empty when the command was refused before any call
// and the slot holds Content. Err is the underlying cause, if any.
type FailureError struct {
	Screen  string
	Message domain.Message
	Err     error
}

func (e *FailureError) Error() string {
	msg := e.Screen
	if e.Message != "" {
		msg += ": " + string(e.Message)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FailureError) Unwrap() error { return e.Err }
