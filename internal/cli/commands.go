package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/aura/internal/presentation/tui"
	"github.com/aretw0/aura/pkg/domain"
	"github.com/aretw0/aura/pkg/screen"
)

// Login authenticates id and returns the session, reporting failures with the
// login screen message.
func (e *Env) Login(ctx context.Context, id, password string) (domain.Session, error) {
	s := e.App.LoginScreen()
	defer s.Close()

	if !s.CheckFields(id, password) {
		return domain.Session{}, fmt.Errorf("user id and password are required")
	}
	session, err := s.Submit(ctx, id, password)
	if err != nil {
		e.Logger.Debug("Login failed", "user_id", id, "err", err)
		return domain.Session{}, fmt.Errorf("%s", s.State().Message)
	}
	return session, nil
}

// Balance fetches the primary balance of session.
func (e *Env) Balance(ctx context.Context, session domain.Session) (domain.HomeContent, error) {
	h, err := e.App.HomeScreen(session)
	if err != nil {
		return domain.HomeContent{}, err
	}
	defer h.Close()

	content, err := h.Refresh(ctx)
	if err != nil {
		e.Logger.Debug("Refresh failed", "user_id", session.UserID, "err", err)
		return domain.HomeContent{}, fmt.Errorf("%s", h.State().Message)
	}
	return content, nil
}

// Transfer sends amount to recipient on behalf of session.
func (e *Env) Transfer(ctx context.Context, session domain.Session, recipient, amount string) error {
	t, err := e.App.TransferScreen(session)
	if err != nil {
		return err
	}
	defer t.Close()

	if !t.CheckFields(recipient, amount) {
		return fmt.Errorf("invalid transfer: recipient %q amount %q", recipient, amount)
	}
	if err := t.Submit(ctx, recipient, amount); err != nil {
		e.Logger.Debug("Transfer failed", "user_id", session.UserID, "err", err)
		return fmt.Errorf("%s", t.State().Message)
	}
	return nil
}

// Statement renders the balance of session as markdown.
func Statement(session domain.Session, content domain.HomeContent) string {
	return fmt.Sprintf("# %s\n\n| Account | Balance |\n|---|---:|\n| Primary | %s |\n",
		session.UserID, screen.DisplayBalance(content.Balance))
}

// RunLogin checks credentials and reports the result.
func (e *Env) RunLogin(ctx context.Context, id, password string) error {
	if _, err := e.Login(ctx, id, password); err != nil {
		return err
	}
	printSystemMessage(e.Out, "Login granted for '%s'.", id)
	return nil
}

// RunBalance logs in and prints the account statement.
func (e *Env) RunBalance(ctx context.Context, id, password string, plain bool) error {
	session, err := e.Login(ctx, id, password)
	if err != nil {
		return err
	}
	content, err := e.Balance(ctx, session)
	if err != nil {
		return err
	}

	md := Statement(session, content)
	if !plain {
		if rendered, err := tui.NewRenderer()(md); err == nil {
			md = rendered
		}
	}
	fmt.Fprintln(e.Out, md)
	return nil
}

// RunTransfer logs in, sends the transfer and prints the refreshed balance.
func (e *Env) RunTransfer(ctx context.Context, id, password, recipient, amount string) error {
	session, err := e.Login(ctx, id, password)
	if err != nil {
		return err
	}
	if err := e.Transfer(ctx, session, recipient, amount); err != nil {
		return err
	}
	printSystemMessage(e.Out, "Transferred %s to '%s'.", amount, recipient)

	content, err := e.Balance(ctx, session)
	if err != nil {
		return err
	}
	printSystemMessage(e.Out, "New balance: %s", screen.DisplayBalance(content.Balance))
	return nil
}
