package timer

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ayoisaiah/ontask/internal/models"
)

const (
	padding  = 2
	maxWidth = 60
)

type styles struct {
	base      lipgloss.Style
	main      lipgloss.Style
	secondary lipgloss.Style
	hint      lipgloss.Style
	errorMsg  lipgloss.Style
	status    map[models.Status]lipgloss.Style
}

func newStyles(darkTheme bool) styles {
	fg := lipgloss.Color("#ABB2BF")
	muted := lipgloss.Color("#636B78")

	if !darkTheme {
		fg = lipgloss.Color("#383A42")
		muted = lipgloss.Color("#A0A1A7")
	}

	badge := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("#282C34")).
			Background(lipgloss.Color(c)).
			Padding(0, 1).
			MarginRight(1)
	}

	return styles{
		base:      lipgloss.NewStyle().Padding(1, padding),
		main:      lipgloss.NewStyle().Foreground(fg).Bold(true),
		secondary: lipgloss.NewStyle().Foreground(fg),
		hint:      lipgloss.NewStyle().Foreground(muted),
		errorMsg:  lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75")),
		status: map[models.Status]lipgloss.Style{
			models.OnTask:        badge("#98C379"),
			models.OffTask:       badge("#E06C75"),
			models.Transitioning: badge("#56B6C2"),
		},
	}
}

func (s styles) badge(status models.Status) string {
	st, ok := s.status[status]
	if !ok {
		return string(status)
	}

	return st.Render(status.Label())
}
