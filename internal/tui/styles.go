package tui

import "github.com/charmbracelet/lipgloss"

type palette struct {
	accent  lipgloss.Color
	accent2 lipgloss.Color
	text    lipgloss.Color
	dim     lipgloss.Color
	success lipgloss.Color
	warning lipgloss.Color
	err     lipgloss.Color
}

var (
	darkPalette = palette{
		accent:  lipgloss.Color("#FF6B6B"),
		accent2: lipgloss.Color("#4ECDC4"),
		text:    lipgloss.Color("#F1FAEE"),
		dim:     lipgloss.Color("#6C757D"),
		success: lipgloss.Color("#95E1A3"),
		warning: lipgloss.Color("#FFE66D"),
		err:     lipgloss.Color("#FF6B6B"),
	}
	lightPalette = palette{
		accent:  lipgloss.Color("#D62828"),
		accent2: lipgloss.Color("#1D7874"),
		text:    lipgloss.Color("#1B1B1E"),
		dim:     lipgloss.Color("#8D99AE"),
		success: lipgloss.Color("#2A9D8F"),
		warning: lipgloss.Color("#E76F51"),
		err:     lipgloss.Color("#D62828"),
	}
)

// Styles for the TUI, rebuilt when the theme changes.
type styles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	text     lipgloss.Style
	dim      lipgloss.Style
	success  lipgloss.Style
	warning  lipgloss.Style
	err      lipgloss.Style
	active   lipgloss.Style
	category lipgloss.Style
	sidebar  lipgloss.Style
	box      lipgloss.Style
}

func newStyles(dark bool) styles {
	p := lightPalette
	if dark {
		p = darkPalette
	}
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(p.accent).MarginBottom(1),
		subtitle: lipgloss.NewStyle().Foreground(p.accent2),
		text:     lipgloss.NewStyle().Foreground(p.text),
		dim:      lipgloss.NewStyle().Foreground(p.dim),
		success:  lipgloss.NewStyle().Foreground(p.success),
		warning:  lipgloss.NewStyle().Foreground(p.warning),
		err:      lipgloss.NewStyle().Foreground(p.err),
		active:   lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		category: lipgloss.NewStyle().Bold(true).Foreground(p.accent2),
		sidebar: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(p.dim).
			PaddingRight(2).
			MarginRight(2),
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.accent2).
			Padding(1, 2),
	}
}
