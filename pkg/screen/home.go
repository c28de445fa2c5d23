package screen

import (
	"context"

	"github.com/aretw0/aura/pkg/domain"
)

// HomeRepository lists the accounts of a user.
type HomeRepository interface {
	FetchAccounts(ctx context.Context, userID string) ([]domain.UserAccount, error)
}

// Home shows the balance of the primary account. It starts in Loading until the
// first Refresh resolves.
type Home struct {
	m       *machine[domain.HomeContent]
	repo    HomeRepository
	session domain.Session
}

// NewHome creates the home screen for an authenticated session.
func NewHome(session domain.Session, repo HomeRepository, opts ...Option) (*Home, error) {
	if !session.Valid() {
		return nil, domain.ErrInvalidSession
	}
	return &Home{
		m:       newMachine("home", session.UserID, domain.Loading[domain.HomeContent](domain.MsgHomeLoading), newConfig(opts)),
		repo:    repo,
		session: session,
	}, nil
}

// Session returns the session the screen belongs to.
func (s *Home) Session() domain.Session { return s.session }

// State returns the current value of the screen.
func (s *Home) State() domain.LCE[domain.HomeContent] { return s.m.slot.Get() }

// Watch streams state values until ctx is done or the screen is closed.
func (s *Home) Watch(ctx context.Context) <-chan domain.LCE[domain.HomeContent] {
	return s.m.slot.Watch(ctx)
}

// Refresh fetches the accounts and publishes the primary balance. A Refresh
// issued while another is in flight cancels the older one, which then returns
// domain.ErrSuperseded.
func (s *Home) Refresh(ctx context.Context) (domain.HomeContent, error) {
	callCtx, token, err := s.m.begin(ctx, replaceInFlight, domain.Loading[domain.HomeContent](domain.MsgHomeLoading))
	if err != nil {
		return domain.HomeContent{}, err
	}

	accounts, err := s.repo.FetchAccounts(callCtx, s.session.UserID)

	var next domain.LCE[domain.HomeContent]
	if err != nil {
		next = domain.Failed[domain.HomeContent](domain.HomeFailures.For(err))
	} else if primary, ok := domain.PrimaryAccount(accounts); ok {
		next = domain.Content(domain.HomeContent{Balance: primary.Balance})
	} else {
		next = domain.Failed[domain.HomeContent](domain.MsgNoPrimaryAccount)
		err = domain.ErrNoPrimaryAccount
	}

	if ferr := s.m.finish(ctx, token, next); ferr != nil {
		return domain.HomeContent{}, ferr
	}
	if !next.IsContent() {
		return domain.HomeContent{}, &FailureError{Screen: s.m.name, Message: next.Message, Err: err}
	}
	return next.Data, nil
}

// Close cancels any in-flight call and releases watchers.
func (s *Home) Close() { s.m.close() }
