package tui

import (
	"github.com/muesli/termenv"

	"github.com/aretw0/aura/pkg/domain"
)

// Stylize colours a status line by the LCE kind it reports.
func Stylize(kind domain.Kind, text string) string {
	return StylizeWith(termenv.ColorProfile(), kind, text)
}

// StylizeWith is Stylize for an explicit colour profile.
func StylizeWith(p termenv.Profile, kind domain.Kind, text string) string {
	s := p.String(text)
	switch kind {
	case domain.KindLoading:
		return s.Foreground(p.Color("#fbbf24")).Italic().String()
	case domain.KindError:
		return s.Foreground(p.Color("#f87171")).Bold().String()
	default:
		return s.Foreground(p.Color("#34d399")).String()
	}
}
