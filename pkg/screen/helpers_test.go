package screen_test

import (
	"context"
	"sync"

	"github.com/aretw0/aura/pkg/domain"
)

// recorder collects transition events in the order they were emitted.
type recorder struct {
	mu     sync.Mutex
	events []domain.TransitionEvent
}

func (r *recorder) hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.events = append(r.events, *e)
		},
	}
}

func (r *recorder) kinds() []domain.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Kind, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.To)
	}
	return out
}

func (r *recorder) messages() []domain.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Message, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Message)
	}
	return out
}

type stubLogin struct {
	resp  domain.LoginResponse
	err   error
	gate  chan struct{}
	calls chan domain.LoginRequest
}

func (s *stubLogin) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	if s.calls != nil {
		s.calls <- req
	}
	if s.gate != nil {
		select {
		case <-s.gate:
		case <-ctx.Done():
			return domain.LoginResponse{}, ctx.Err()
		}
	}
	return s.resp, s.err
}

type stubHome struct {
	mu       sync.Mutex
	accounts []domain.UserAccount
	err      error
	gates    []chan struct{}
	started  chan string
}

func (s *stubHome) FetchAccounts(ctx context.Context, userID string) ([]domain.UserAccount, error) {
	s.mu.Lock()
	var gate chan struct{}
	if len(s.gates) > 0 {
		gate, s.gates = s.gates[0], s.gates[1:]
	}
	accounts, err := s.accounts, s.err
	s.mu.Unlock()

	if s.started != nil {
		s.started <- userID
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return accounts, err
}

type stubTransfer struct {
	resp  domain.TransferResponse
	err   error
	gate  chan struct{}
	calls chan domain.TransferRequest
}

func (s *stubTransfer) Transfer(ctx context.Context, req domain.TransferRequest) (domain.TransferResponse, error) {
	if s.calls != nil {
		s.calls <- req
	}
	if s.gate != nil {
		select {
		case <-s.gate:
		case <-ctx.Done():
			return domain.TransferResponse{}, ctx.Err()
		}
	}
	return s.resp, s.err
}
