package screen

import (
	"context"

	"github.com/aretw0/aura/pkg/domain"
)

// TransferRepository moves money between accounts.
type TransferRepository interface {
	Transfer(ctx context.Context, req domain.TransferRequest) (domain.TransferResponse, error)
}

// Transfer is the transfer screen. It starts in Content{FieldsValid: false, Succeeded: false}.
type Transfer struct {
	m       *machine[domain.TransferContent]
	repo    TransferRepository
	session domain.Session
}

// NewTransfer creates the transfer screen for an authenticated session.
func NewTransfer(session domain.Session, repo TransferRepository, opts ...Option) (*Transfer, error) {
	if !session.Valid() {
		return nil, domain.ErrInvalidSession
	}
	return &Transfer{
		m:       newMachine("transfer", session.UserID, domain.Content(domain.TransferContent{}), newConfig(opts)),
		repo:    repo,
		session: session,
	}, nil
}

// Session returns the session the screen belongs to.
func (s *Transfer) Session() domain.Session { return s.session }

// State returns the current value of the screen.
func (s *Transfer) State() domain.LCE[domain.TransferContent] { return s.m.slot.Get() }

// Watch streams state values until ctx is done or the screen is closed.
func (s *Transfer) Watch(ctx context.Context) <-chan domain.LCE[domain.TransferContent] {
	return s.m.slot.Watch(ctx)
}

// CheckFields records whether the recipient is filled and the amount parses, and reports it.
func (s *Transfer) CheckFields(recipient, amount string) bool {
	valid := fieldsValid(recipient, amount)
	_ = s.m.write(context.Background(), domain.Content(domain.TransferContent{FieldsValid: valid}))
	return valid
}

func fieldsValid(recipient, amount string) bool {
	if recipient == "" {
		return false
	}
	_, err := ParseAmount(amount)
	return err == nil
}

// Submit sends amount from the session user to recipient. Invalid fields are
// rejected without a network call: the screen shows Content{} and the returned
// FailureError carries no message. While a transfer is in flight every Submit
// returns domain.ErrInFlight.
func (s *Transfer) Submit(ctx context.Context, recipient, amount string) error {
	value, err := ParseAmount(amount)
	if recipient == "" || err != nil {
		if rerr := s.m.reject(ctx, domain.Content(domain.TransferContent{})); rerr != nil {
			return rerr
		}
		if err == nil {
			err = domain.ErrInvalidAmount
		}
		return &FailureError{Screen: s.m.name, Err: err}
	}

	callCtx, token, err := s.m.begin(ctx, ignoreWhileInFlight, domain.Loading[domain.TransferContent](domain.MsgTransferInProgress))
	if err != nil {
		return err
	}

	resp, err := s.repo.Transfer(callCtx, domain.TransferRequest{
		SenderID:    s.session.UserID,
		RecipientID: recipient,
		Amount:      value,
	})

	var next domain.LCE[domain.TransferContent]
	switch {
	case err != nil:
		next = domain.Failed[domain.TransferContent](domain.TransferFailures.For(err))
	case resp.Succeeded():
		next = domain.Content(domain.TransferContent{FieldsValid: true, Succeeded: true})
	default:
		next = domain.Failed[domain.TransferContent](domain.MsgTransferRefused)
	}

	if ferr := s.m.finish(ctx, token, next); ferr != nil {
		return ferr
	}
	if !next.IsContent() {
		return &FailureError{Screen: s.m.name, Message: next.Message, Err: err}
	}
	return nil
}

// Close cancels any in-flight call and releases watchers.
func (s *Transfer) Close() { s.m.close() }
