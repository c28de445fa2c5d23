package cli

import (
	"context"
	"os"

	"github.com/aretw0/aura"
	"github.com/aretw0/aura/internal/presentation/tui"
)

// RunInteractive drives the screens on the terminal until the user quits or
// the process is interrupted.
func (e *Env) RunInteractive(headless bool) error {
	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	r := &aura.Runner{
		Input:    os.Stdin,
		Output:   e.Out,
		Headless: headless,
		Password: passwordReader(os.Stdin, e.Out),
	}
	if !headless {
		tui.PrintBanner(e.Out)
		r.Renderer = tui.NewRenderer()
		r.Stylize = tui.Stylize
	}

	err := r.Run(sigCtx, e.App)
	if sig := sigCtx.Signal(); sig != nil {
		printSystemMessage(e.Out, "Interrupted (%v).", sig)
	}
	return handleExecutionError(err)
}
