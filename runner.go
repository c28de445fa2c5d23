package aura

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/aura/pkg/domain"
	"github.com/aretw0/aura/pkg/screen"
)

// Runner drives the login, home and transfer screens over line-based IO.
// This allows for easy testing and integration with different frontends.
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool

	// Renderer transforms markdown before output (e.g. to ANSI).
	Renderer ContentRenderer
	// Stylize decorates a status line according to the state it reports.
	Stylize func(kind domain.Kind, text string) string
	// Password reads a secret. Defaults to a plain line read from Input.
	Password func(prompt string) (string, error)

	lines *bufio.Reader
}

// ContentRenderer is a function that transforms the content before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// errQuit ends the loop without error.
var errQuit = errors.New("quit")

// Run executes the interactive loop until the user quits or Input is exhausted.
func (r *Runner) Run(ctx context.Context, app *App) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	r.lines = bufio.NewReader(r.Input)

	if !r.Headless {
		fmt.Fprintln(r.Output, "--- Aura ---")
	}

	for {
		session, err := r.login(ctx, app)
		if err != nil {
			return ignoreQuit(err)
		}
		if err := r.home(ctx, app, session); err != nil {
			return ignoreQuit(err)
		}
		fmt.Fprintln(r.Output, "Disconnected.")
	}
}

func (r *Runner) login(ctx context.Context, app *App) (domain.Session, error) {
	s := app.LoginScreen()
	defer s.Close()

	for {
		id, err := r.ask("User id: ")
		if err != nil {
			return domain.Session{}, err
		}
		password, err := r.secret("Password: ")
		if err != nil {
			return domain.Session{}, err
		}
		if !s.CheckFields(id, password) {
			r.status(domain.KindError, "Both fields are required.")
			continue
		}

		session, err := s.Submit(ctx, id, password)
		if err == nil {
			r.status(domain.KindContent, "Welcome, "+id+".")
			return session, nil
		}
		if ctx.Err() != nil {
			return domain.Session{}, ctx.Err()
		}
		r.status(domain.KindError, string(s.State().Message))

		ok, err := r.confirm("Try again? [Y/n] ", true)
		if err != nil {
			return domain.Session{}, err
		}
		if !ok {
			return domain.Session{}, errQuit
		}
	}
}

func (r *Runner) home(ctx context.Context, app *App, session domain.Session) error {
	h, err := app.HomeScreen(session)
	if err != nil {
		return err
	}
	defer h.Close()

	r.refresh(ctx, h)
	for {
		choice, err := r.menu(h.State())
		if err != nil {
			return err
		}
		switch choice {
		case "r":
			r.refresh(ctx, h)
		case "t":
			if !h.State().IsContent() {
				continue
			}
			done, err := r.transfer(ctx, app, session)
			if err != nil {
				return err
			}
			if done {
				r.refresh(ctx, h)
			}
		case "d":
			return nil
		case "q":
			return errQuit
		}
	}
}

func (r *Runner) refresh(ctx context.Context, h *screen.Home) {
	r.status(domain.KindLoading, string(domain.MsgHomeLoading)+"...")
	content, err := h.Refresh(ctx)
	if err != nil {
		r.status(domain.KindError, string(h.State().Message))
		return
	}
	r.markdown(fmt.Sprintf("## Primary account\n\nBalance: **%s**\n", screen.DisplayBalance(content.Balance)))
}

// transfer runs the transfer screen once and reports whether money moved.
func (r *Runner) transfer(ctx context.Context, app *App, session domain.Session) (bool, error) {
	t, err := app.TransferScreen(session)
	if err != nil {
		return false, err
	}
	defer t.Close()

	recipient, err := r.ask("Recipient id: ")
	if err != nil {
		return false, err
	}
	amount, err := r.ask("Amount: ")
	if err != nil {
		return false, err
	}
	if !t.CheckFields(recipient, amount) {
		r.status(domain.KindError, "Enter a recipient and a positive amount such as 12.50.")
		return false, nil
	}

	if err := t.Submit(ctx, recipient, amount); err != nil {
		r.status(domain.KindError, string(t.State().Message))
		return false, nil
	}
	r.status(domain.KindContent, "Transfer sent.")
	return true, nil
}

func (r *Runner) menu(state domain.LCE[domain.HomeContent]) (string, error) {
	prompt := "[t]ransfer [r]efresh [d]isconnect [q]uit > "
	if state.IsError() {
		prompt = "[r] try again [d]isconnect [q]uit > "
	}
	choice, err := r.ask(prompt)
	return strings.ToLower(choice), err
}

func (r *Runner) markdown(md string) {
	out := md
	if r.Renderer != nil {
		if rendered, err := r.Renderer(md); err == nil {
			out = rendered
		}
	}
	fmt.Fprintln(r.Output, strings.TrimSpace(out))
}

func (r *Runner) status(kind domain.Kind, text string) {
	if r.Stylize != nil {
		text = r.Stylize(kind, text)
	}
	fmt.Fprintln(r.Output, text)
}

// readLine returns the next input line without its line ending.
func (r *Runner) readLine(prompt string) (string, error) {
	if !r.Headless {
		fmt.Fprint(r.Output, prompt)
	}
	text, err := r.lines.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && text != "") {
		if errors.Is(err, io.EOF) {
			return "", errQuit
		}
		return "", fmt.Errorf("input error: %w", err)
	}
	text = strings.TrimSuffix(text, "\n")
	return strings.TrimSuffix(text, "\r"), nil
}

func (r *Runner) ask(prompt string) (string, error) {
	text, err := r.readLine(prompt)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "exit" || text == "quit" {
		return "", errQuit
	}
	return text, nil
}

// secret reads a password verbatim: no trimming and no quit words.
func (r *Runner) secret(prompt string) (string, error) {
	if r.Password == nil {
		return r.readLine(prompt)
	}
	return r.Password(prompt)
}

func (r *Runner) confirm(prompt string, def bool) (bool, error) {
	answer, err := r.ask(prompt)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func ignoreQuit(err error) error {
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}
