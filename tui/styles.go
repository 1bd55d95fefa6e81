package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#7c5cff")
	muted  = lipgloss.Color("241")
	danger = lipgloss.Color("203")
	good   = lipgloss.Color("78")
)

var styles = struct {
	title     lipgloss.Style
	subtle    lipgloss.Style
	label     lipgloss.Style
	dropdown  lipgloss.Style
	candidate lipgloss.Style
	selected  lipgloss.Style
	card      lipgloss.Style
	cardFocus lipgloss.Style
	price     lipgloss.Style
	favorite  lipgloss.Style
	errorText lipgloss.Style
	okText    lipgloss.Style
	dialog    lipgloss.Style
	overlay   lipgloss.Style
}{
	title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
	subtle:   lipgloss.NewStyle().Foreground(muted),
	label:    lipgloss.NewStyle().Foreground(muted).Width(10),
	dropdown: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1).MarginLeft(2),
	candidate: lipgloss.NewStyle().
		PaddingLeft(1),
	selected: lipgloss.NewStyle().
		PaddingLeft(1).
		Bold(true).
		Foreground(accent).
		Background(lipgloss.Color("236")),
	card: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(muted).
		Padding(0, 1),
	cardFocus: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1),
	price:     lipgloss.NewStyle().Bold(true).Foreground(good),
	favorite:  lipgloss.NewStyle().Foreground(danger),
	errorText: lipgloss.NewStyle().Foreground(danger),
	okText:    lipgloss.NewStyle().Foreground(good),
	dialog: lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(accent).
		Padding(1, 2),
	overlay: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("230")).
		Background(accent).
		Padding(0, 2),
}
