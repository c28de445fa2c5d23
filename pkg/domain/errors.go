package domain

import (
	"errors"
	"fmt"
)

// ErrInFlight is returned when a command is ignored because a previous one has not resolved.
var ErrInFlight = errors.New("operation already in flight")

// ErrSuperseded is returned by a command whose result was replaced by a newer invocation.
var ErrSuperseded = errors.New("operation superseded")

// ErrScreenClosed is returned by commands issued after the screen was torn down.
var ErrScreenClosed = errors.New("screen closed")

// ErrInvalidAmount is returned when an amount is not a positive decimal.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrNoPrimaryAccount is returned when an accounts list has no primary account.
var ErrNoPrimaryAccount = errors.New("no primary account")

// ErrInvalidSession is returned when a screen is built without a user id.
var ErrInvalidSession = errors.New("invalid session")

// Ledger errors. Refusals (everything but ErrCustomerNotFound on a lookup) are answered
// to clients as a logical failure, not as a server error.
var (
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSameAccount       = errors.New("sender and recipient are the same")
)

// NetworkError is the closed taxonomy of failures at the network boundary.
type NetworkError interface {
	error
	networkError()
}

// ServerError means the bank answered with a failure status.
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string { return fmt.Sprintf("server error: status %d", e.StatusCode) }
func (*ServerError) networkError()   {}

// ConnectivityError means the round trip could not complete. Exactly one flag is set.
type ConnectivityError struct {
	TimedOut          bool
	ConnectionRefused bool
	Cause             error
}

func (e *ConnectivityError) Error() string {
	if e.TimedOut {
		return "connectivity error: timed out"
	}
	return "connectivity error: connection refused"
}

func (e *ConnectivityError) Unwrap() error { return e.Cause }
func (*ConnectivityError) networkError()   {}

// UnknownError is any other failure.
type UnknownError struct {
	Cause error
}

func (e *UnknownError) Error() string {
	if e.Cause == nil {
		return "unknown network error"
	}
	return "unknown network error: " + e.Cause.Error()
}

func (e *UnknownError) Unwrap() error { return e.Cause }
func (*UnknownError) networkError()   {}

// AsNetworkError extracts the NetworkError in err's chain. Anything else,
// including nil, becomes an UnknownError.
func AsNetworkError(err error) NetworkError {
	var ne NetworkError
	if errors.As(err, &ne) {
		return ne
	}
	return &UnknownError{Cause: err}
}
