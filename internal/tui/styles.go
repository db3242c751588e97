package tui

import (
	"github.com/charmbracelet/lipgloss"

	"pomo/internal/timer"
)

// styles carries every lipgloss style the views draw with, derived from one
// base16 theme so a custom scheme recolors the whole UI.
type styles struct {
	theme Theme

	title    lipgloss.Style
	muted    lipgloss.Style
	normal   lipgloss.Style
	selected lipgloss.Style
	success  lipgloss.Style
	errText  lipgloss.Style
	panel    lipgloss.Style
	footer   lipgloss.Style

	focus     lipgloss.Style
	shortRest lipgloss.Style
	longRest  lipgloss.Style
}

func newStyles(theme Theme) styles {
	fg := lipgloss.Color(theme.Base05)
	muted := lipgloss.Color(theme.Base03)

	return styles{
		theme: theme,

		title:    lipgloss.NewStyle().Bold(true).Foreground(fg),
		muted:    lipgloss.NewStyle().Foreground(muted),
		normal:   lipgloss.NewStyle().Foreground(fg),
		selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Base0B)),
		success:  lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Base0B)),
		errText:  lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Base08)),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(1, 2),
		footer: lipgloss.NewStyle().Foreground(muted).Padding(0, 1),

		focus:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Base07)),
		shortRest: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Base0B)),
		longRest:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Base0C)),
	}
}

// periodStyle picks the accent for the active period, matching the
// focus/break/long-break colors of the timer display.
func (s styles) periodStyle(p timer.Period) lipgloss.Style {
	switch p {
	case timer.PeriodShortBreak:
		return s.shortRest
	case timer.PeriodLongBreak:
		return s.longRest
	default:
		return s.focus
	}
}
