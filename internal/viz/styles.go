package viz

import "github.com/charmbracelet/lipgloss"

type styles struct {
	canvas  lipgloss.Style
	stats   lipgloss.Style
	header  lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	running lipgloss.Style
	paused  lipgloss.Style
	graph   lipgloss.Style
	help    lipgloss.Style
	overlay lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		canvas:  lipgloss.NewStyle().Foreground(t.Bodies).Padding(0, 1),
		stats:   lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(t.Border).Padding(0, 2).Width(40),
		header:  lipgloss.NewStyle().Foreground(t.Accent).Bold(true).MarginBottom(1),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		running: lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		paused:  lipgloss.NewStyle().Bold(true).Foreground(t.Warn),
		graph:   lipgloss.NewStyle().Foreground(t.Accent).Padding(1, 0),
		help:    lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		overlay: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Foreground(t.Text).Padding(1, 2),
	}
}
