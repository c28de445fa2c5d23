package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"

	"github.com/aretw0/aura/pkg/domain"
)

// StatusError is raised by the client when the bank answers with a non-2xx status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string { return fmt.Sprintf("unexpected status %d", e.StatusCode) }

// Classify maps a raw failure into the closed NetworkError taxonomy.
// It is total: every input, nil included, yields a NetworkError.
func Classify(err error) domain.NetworkError {
	var ne domain.NetworkError
	if errors.As(err, &ne) {
		return ne
	}

	var status *StatusError
	if errors.As(err, &status) {
		return &domain.ServerError{StatusCode: status.StatusCode}
	}

	if isTimeout(err) {
		return &domain.ConnectivityError{TimedOut: true, Cause: err}
	}
	if isUnreachable(err) {
		return &domain.ConnectivityError{ConnectionRefused: true, Cause: err}
	}

	return &domain.UnknownError{Cause: err}
}

func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, syscall.ETIMEDOUT) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isUnreachable(err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ENETUNREACH),
		errors.Is(err, syscall.EHOSTUNREACH):
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}
