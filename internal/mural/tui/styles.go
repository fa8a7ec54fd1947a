package tui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Header   lipgloss.Style
	Title    lipgloss.Style
	Selected lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Action   lipgloss.Style
	Modal    lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#9aa3b7")).Background(lipgloss.Color("#151922")).Padding(0, 1),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e6e9f0")),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f5a623")),
		Normal:   lipgloss.NewStyle().Foreground(lipgloss.Color("#c8cdd8")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7385")),
		Action:   lipgloss.NewStyle().Foreground(lipgloss.Color("#5fb3f9")),
		Modal:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#9aa3b7")).Padding(0, 1),
	}
}
