package cmd

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorAccent    = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
)

type styles struct {
	renderer    *lipgloss.Renderer
	errorHeader lipgloss.Style
	message     lipgloss.Style
	gutter      lipgloss.Style
	caret       lipgloss.Style
	banner      lipgloss.Style
	header      lipgloss.Style
	name        lipgloss.Style
	kind        lipgloss.Style
	muted       lipgloss.Style
	cell        lipgloss.Style
}

// newStyles creates styles rendering to w. color is "auto", "always" or "never".
func newStyles(w io.Writer, color string) *styles {
	r := lipgloss.NewRenderer(w)
	switch color {
	case "never":
		r.SetColorProfile(termenv.Ascii)
	case "always":
		r.SetColorProfile(termenv.TrueColor)
	}

	return &styles{
		renderer:    r,
		errorHeader: r.NewStyle().Bold(true).Foreground(colorError),
		message:     r.NewStyle().Foreground(colorError),
		gutter:      r.NewStyle().Foreground(colorMuted),
		caret:       r.NewStyle().Bold(true).Foreground(colorAccent),
		banner:      r.NewStyle().Bold(true).Foreground(colorPrimary),
		header:      r.NewStyle().Bold(true).Foreground(colorPrimary),
		name:        r.NewStyle().Foreground(colorSecondary),
		kind:        r.NewStyle().Foreground(colorAccent),
		muted:       r.NewStyle().Foreground(colorMuted).Italic(true),
		cell:        r.NewStyle().Padding(0, 1),
	}
}
