package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the text styles used around tables.
type Styles struct {
	Title lipgloss.Style
	Muted lipgloss.Style
}

// NewStyles returns styles bound to w. Colour is dropped when w is not a
// terminal or NO_COLOR is set.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	if termenv.EnvNoColor() {
		r.SetColorProfile(termenv.Ascii)
	}
	return Styles{
		Title: r.NewStyle().Bold(true),
		Muted: r.NewStyle().Faint(true),
	}
}
