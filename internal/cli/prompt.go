package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// passwordReader returns a reader that hides input when in is a terminal,
// or nil so callers fall back to plain line reads.
func passwordReader(in *os.File, out io.Writer) func(prompt string) (string, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}
	return func(prompt string) (string, error) {
		fmt.Fprint(out, prompt)
		secret, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(secret), nil
	}
}

// ResolvePassword returns password, or prompts for it on stdin when empty.
func ResolvePassword(password string) (string, error) {
	if password != "" {
		return password, nil
	}
	read := passwordReader(os.Stdin, os.Stderr)
	if read == nil {
		return "", fmt.Errorf("password is required (use --password or a terminal)")
	}
	return read("Password: ")
}
