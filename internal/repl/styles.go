package repl

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles holds the renderers for banner and notices.
// With color disabled, or when out is not a terminal, text passes through
// unchanged.
type styles struct {
	title  func(...string) string
	hint   func(...string) string
	notice func(...string) string
}

func newStyles(out io.Writer, color bool) styles {
	if !color {
		plain := func(s ...string) string {
			if len(s) == 0 {
				return ""
			}
			return s[0]
		}
		return styles{title: plain, hint: plain, notice: plain}
	}

	r := lipgloss.NewRenderer(out)
	return styles{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Render,
		hint:   r.NewStyle().Faint(true).Render,
		notice: r.NewStyle().Foreground(lipgloss.Color("203")).Render,
	}
}
