package screen

import (
	"context"

	"github.com/aretw0/aura/pkg/domain"
)

// LoginRepository authenticates credentials.
type LoginRepository interface {
	Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
}

// Login is the login screen. It starts in Content{FieldsValid: false, Granted: false}.
type Login struct {
	m    *machine[domain.LoginContent]
	repo LoginRepository
}

// NewLogin creates a login screen backed by repo.
func NewLogin(repo LoginRepository, opts ...Option) *Login {
	return &Login{
		m:    newMachine("login", "", domain.Content(domain.LoginContent{}), newConfig(opts)),
		repo: repo,
	}
}

// State returns the current value of the screen.
func (s *Login) State() domain.LCE[domain.LoginContent] { return s.m.slot.Get() }

// Watch streams state values until ctx is done or the screen is closed.
func (s *Login) Watch(ctx context.Context) <-chan domain.LCE[domain.LoginContent] {
	return s.m.slot.Watch(ctx)
}

// CheckFields records whether both fields are filled and reports it.
func (s *Login) CheckFields(id, password string) bool {
	valid := id != "" && password != ""
	_ = s.m.write(context.Background(), domain.Content(domain.LoginContent{FieldsValid: valid}))
	return valid
}

// Submit authenticates id and password. On success it returns the session the
// Home and Transfer screens are built from.
func (s *Login) Submit(ctx context.Context, id, password string) (domain.Session, error) {
	callCtx, token, err := s.m.begin(ctx, ignoreWhileInFlight, domain.Loading[domain.LoginContent](domain.MsgLoginInProgress))
	if err != nil {
		return domain.Session{}, err
	}

	resp, err := s.repo.Login(callCtx, domain.LoginRequest{ID: id, Password: password})

	var next domain.LCE[domain.LoginContent]
	switch {
	case err != nil:
		next = domain.Failed[domain.LoginContent](domain.LoginFailures.For(err))
	case resp.Granted():
		next = domain.Content(domain.LoginContent{FieldsValid: true, Granted: true})
	default:
		next = domain.Failed[domain.LoginContent](domain.MsgLoginFailed)
	}

	if ferr := s.m.finish(ctx, token, next); ferr != nil {
		return domain.Session{}, ferr
	}
	if !next.IsContent() {
		return domain.Session{}, &FailureError{Screen: s.m.name, Message: next.Message, Err: err}
	}
	return domain.NewSession(id), nil
}

// Close cancels any in-flight call and releases watchers.
func (s *Login) Close() { s.m.close() }
